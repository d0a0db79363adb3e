package ddg

import (
	"fmt"
	"sort"

	"github.com/specialistvlad/qcsched/internal/ir"
)

// Kind classifies the dependency an edge represents.
type Kind int

const (
	// RAW is a true dependency: the successor reads what the predecessor wrote.
	RAW Kind = iota
	// WAW is an output dependency.
	WAW
	// WAR is an anti-dependency: the successor overwrites what the
	// predecessor read.
	WAR
	// Order edges connect statements to Source and Sink.
	Order
)

func (k Kind) String() string {
	switch k {
	case RAW:
		return "RAW"
	case WAW:
		return "WAW"
	case WAR:
		return "WAR"
	case Order:
		return "order"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// NodeKind distinguishes the synthetic nodes from statement nodes.
type NodeKind int

const (
	StatementNode NodeKind = iota
	SourceNode
	SinkNode
)

// Node is a vertex of the graph.
type Node struct {
	// ID indexes the node in Graph.Nodes. Source is 0, statements follow in
	// block order and Sink is last.
	ID int
	// Order is the original position of the statement in its block; -1 for
	// Source and len(statements) for Sink.
	Order     int
	Kind      NodeKind
	Statement *ir.Statement

	Preds []*Edge
	Succs []*Edge

	// Criticality is the length of the longest dependency path from the node
	// to the end of the graph. It is only valid while HasCriticality is set.
	Criticality    int
	HasCriticality bool
}

// IsSynthetic reports whether the node is Source or Sink.
func (n *Node) IsSynthetic() bool {
	return n.Kind != StatementNode
}

// Duration returns the statement duration, or 0 for synthetic nodes.
func (n *Node) Duration() int {
	if n.Statement == nil {
		return 0
	}
	return n.Statement.Duration
}

func (n *Node) String() string {
	switch n.Kind {
	case SourceNode:
		return "SOURCE"
	case SinkNode:
		return "SINK"
	default:
		return fmt.Sprintf("#%d %s", n.Order, n.Statement)
	}
}

// Edge is a directed dependency between two nodes.
type Edge struct {
	From    *Node
	To      *Node
	Kind    Kind
	Latency int
	// Cause is the operand that gave rise to the dependency. It is the zero
	// Ref for Order edges.
	Cause ir.Ref
}

func (e *Edge) String() string {
	return fmt.Sprintf("%d -> %d (%s, %d)", e.From.ID, e.To.ID, e.Kind, e.Latency)
}

// Graph is the dependency graph of one block.
type Graph struct {
	Block  *ir.Block
	Nodes  []*Node
	Source *Node
	Sink   *Node
	// Reversed is set on graphs produced by Reverse. In a reversed graph
	// Source is the node that was Sink in the original.
	Reversed bool

	edgeCount int
}

// Statements returns the statement nodes in block order.
func (g *Graph) Statements() []*Node {
	out := make([]*Node, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		if !n.IsSynthetic() {
			out = append(out, n)
		}
	}
	return out
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// Edges returns every edge ordered by (From.ID, To.ID).
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, 0, g.edgeCount)
	for _, n := range g.Nodes {
		out = append(out, n.Succs...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].From.ID != out[j].From.ID {
			return out[i].From.ID < out[j].From.ID
		}
		return out[i].To.ID < out[j].To.ID
	})
	return out
}

// Edge returns the edge from -> to, or nil.
func (g *Graph) Edge(from, to *Node) *Edge {
	for _, e := range from.Succs {
		if e.To == to {
			return e
		}
	}
	return nil
}

// addEdge links from -> to. A second dependency between the same pair keeps
// the larger latency.
func (g *Graph) addEdge(from, to *Node, kind Kind, latency int, cause ir.Ref) *Edge {
	if from == to {
		return nil
	}
	if latency < 0 {
		latency = 0
	}
	if e := g.Edge(from, to); e != nil {
		if latency > e.Latency {
			e.Latency = latency
			e.Kind = kind
			e.Cause = cause
		}
		return e
	}
	e := &Edge{From: from, To: to, Kind: kind, Latency: latency, Cause: cause}
	from.Succs = append(from.Succs, e)
	to.Preds = append(to.Preds, e)
	g.edgeCount++
	return e
}

// ClearCriticality drops the criticality annotation from every node.
func (g *Graph) ClearCriticality() {
	for _, n := range g.Nodes {
		n.Criticality = 0
		n.HasCriticality = false
	}
}

// Clear releases the graph. It must not be used afterwards.
func (g *Graph) Clear() {
	for _, n := range g.Nodes {
		n.Preds = nil
		n.Succs = nil
		n.Statement = nil
	}
	g.Nodes = nil
	g.Source = nil
	g.Sink = nil
	g.Block = nil
	g.edgeCount = 0
}
