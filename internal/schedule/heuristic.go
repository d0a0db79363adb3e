package schedule

import (
	"cmp"

	"github.com/specialistvlad/qcsched/internal/ddg"
)

// Heuristic orders ready nodes. Compare returns a negative number when a
// should be placed before b, a positive number when b should go first and
// zero when the heuristic has no preference. Ties are broken by statement
// order.
type Heuristic interface {
	Compare(a, b *ddg.Node) int
}

// Trivial has no preference, so statements keep their original order.
type Trivial struct{}

func (Trivial) Compare(_, _ *ddg.Node) int { return 0 }

// CriticalPath places the node with the longest remaining path first.
type CriticalPath struct{}

func (CriticalPath) Compare(a, b *ddg.Node) int {
	return cmp.Compare(b.Criticality, a.Criticality)
}

// DeepCriticality extends CriticalPath: on equal criticality it follows the
// most critical successor of each node and compares those, until the chains
// differ or meet.
type DeepCriticality struct{}

func (DeepCriticality) Compare(a, b *ddg.Node) int {
	for a != nil && b != nil && a != b {
		if c := cmp.Compare(b.Criticality, a.Criticality); c != 0 {
			return c
		}
		a, b = mostCritical(a), mostCritical(b)
	}
	return 0
}

// mostCritical returns the successor with the highest criticality, the
// lowest order winning ties.
func mostCritical(n *ddg.Node) *ddg.Node {
	var best *ddg.Node
	for _, e := range n.Succs {
		s := e.To
		switch {
		case best == nil,
			s.Criticality > best.Criticality,
			s.Criticality == best.Criticality && s.Order < best.Order:
			best = s
		}
	}
	return best
}
