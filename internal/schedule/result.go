package schedule

import (
	"github.com/specialistvlad/qcsched/internal/ddg"
)

// Schedule is the outcome of one Run: a cycle per node, indexed by node ID.
type Schedule struct {
	Graph  *ddg.Graph
	Cycles []int
}

// Cycle returns the cycle assigned to n.
func (s *Schedule) Cycle(n *ddg.Node) int {
	return s.Cycles[n.ID]
}

// Span returns the distance between Source and Sink.
func (s *Schedule) Span() int {
	d := s.Cycles[s.Graph.Sink.ID] - s.Cycles[s.Graph.Source.ID]
	if d < 0 {
		return -d
	}
	return d
}

// ConvertCycles shifts every cycle so that the earliest one equals origin.
// Backward runs produce non-positive cycles; after conversion both
// directions use the same increasing convention.
func (s *Schedule) ConvertCycles(origin int) {
	if len(s.Cycles) == 0 {
		return
	}
	lowest := s.Cycles[0]
	for _, c := range s.Cycles[1:] {
		lowest = min(lowest, c)
	}
	shift := origin - lowest
	for i := range s.Cycles {
		s.Cycles[i] += shift
	}
}

// Apply writes the cycles onto the statements and marks the block as
// scheduled.
func (s *Schedule) Apply() {
	for _, n := range s.Graph.Nodes {
		if n.IsSynthetic() {
			continue
		}
		n.Statement.Cycle = s.Cycles[n.ID]
	}
	if b := s.Graph.Block; b != nil {
		b.Span = s.Span()
		b.CyclesValid = true
	}
}
