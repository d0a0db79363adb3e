package ddg

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteDOT writes the graph in Graphviz format. When cycles is non-nil it is
// indexed by node ID and shown on every node.
func (g *Graph) WriteDOT(w io.Writer, name string, cycles []int) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "digraph %s {\n", quote(name))
	fmt.Fprintln(bw, "  rankdir=TB;")
	fmt.Fprintln(bw, "  node [shape=box, fontname=\"monospace\"];")

	for _, n := range g.Nodes {
		label := n.String()
		if cycles != nil && n.ID < len(cycles) {
			label = fmt.Sprintf("%s\\ncycle %d", label, cycles[n.ID])
		}
		if n.HasCriticality {
			label = fmt.Sprintf("%s\\ncriticality %d", label, n.Criticality)
		}
		attrs := ""
		if n.IsSynthetic() {
			attrs = ", shape=ellipse, style=filled, fillcolor=lightgrey"
		}
		fmt.Fprintf(bw, "  n%d [label=%s%s];\n", n.ID, quote(label), attrs)
	}
	for _, e := range g.Edges() {
		style := ""
		switch e.Kind {
		case WAR:
			style = ", style=dashed"
		case Order:
			style = ", style=dotted"
		}
		label := fmt.Sprintf("%s %d", e.Kind, e.Latency)
		if e.Kind != Order {
			label = fmt.Sprintf("%s %s %d", e.Cause, e.Kind, e.Latency)
		}
		fmt.Fprintf(bw, "  n%d -> n%d [label=%s%s];\n", e.From.ID, e.To.ID, quote(label), style)
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
