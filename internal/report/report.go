// Package report renders scheduling results for humans.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/specialistvlad/qcsched/internal/ir"
	"github.com/specialistvlad/qcsched/internal/pass"
)

type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	cycle  lipgloss.Style
	note   lipgloss.Style
	box    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")),
		header: r.NewStyle().Foreground(lipgloss.Color("#888888")),
		cycle:  r.NewStyle().Width(7).Align(lipgloss.Right).Foreground(lipgloss.Color("#AAAAAA")),
		note:   r.NewStyle().Foreground(lipgloss.Color("#888888")),
		box:    r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1),
	}
}

// Render writes one box per scheduled block listing its statements in
// cycle order. Colors are used only when w is a terminal.
func Render(w io.Writer, res *pass.Result) error {
	st := newStyles(lipgloss.NewRenderer(w))

	var out []string
	out = append(out, st.header.Render(fmt.Sprintf("Scheduled %d block(s), %s.", len(res.Blocks), res.Direction)))
	for _, b := range res.Blocks {
		out = append(out, st.box.Render(renderBlock(st, b)))
	}
	_, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, out...))
	return err
}

func renderBlock(st styles, b pass.BlockResult) string {
	lines := []string{
		st.title.Render(b.Name) + st.note.Render(fmt.Sprintf("  span %d, %d edge(s)", b.Span, b.Edges)),
		st.header.Render(fmt.Sprintf("%7s  %s", "cycle", "statement")),
	}
	for _, s := range ordered(b.Block) {
		lines = append(lines, st.cycle.Render(fmt.Sprint(s.Cycle))+"  "+s.String())
	}
	if len(b.Block.Statements) == 0 {
		lines = append(lines, st.note.Render("(empty)"))
	}
	if b.DOTPath != "" {
		lines = append(lines, st.note.Render("graph: "+b.DOTPath))
	}
	return strings.Join(lines, "\n")
}

// ordered returns the statements sorted by cycle, keeping program order
// among statements that start together.
func ordered(b *ir.Block) []*ir.Statement {
	stmts := append([]*ir.Statement(nil), b.Statements...)
	sort.SliceStable(stmts, func(i, j int) bool {
		return stmts[i].Cycle < stmts[j].Cycle
	})
	return stmts
}
