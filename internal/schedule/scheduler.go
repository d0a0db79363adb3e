package schedule

import (
	"context"
	"fmt"
	"sort"

	"github.com/specialistvlad/qcsched/internal/ctxlog"
	"github.com/specialistvlad/qcsched/internal/ddg"
	"github.com/specialistvlad/qcsched/internal/resource"
)

// Scheduler places the nodes of one graph. Regular graphs are scheduled
// forward from Source at cycle 0; reversed graphs backward from their
// Source (the original Sink) at cycle 0.
type Scheduler[H Heuristic] struct {
	graph     *ddg.Graph
	state     *resource.State
	heuristic H
	direction resource.Direction
}

// New returns a scheduler for g. A nil or empty state places no resource
// constraints. The state is exclusively owned by the scheduler during Run.
func New[H Heuristic](g *ddg.Graph, state *resource.State, h H) *Scheduler[H] {
	dir := resource.Forward
	if g.Reversed {
		dir = resource.Backward
	}
	return &Scheduler[H]{graph: g, state: state, heuristic: h, direction: dir}
}

// Direction returns the direction in which cycles are presented.
func (s *Scheduler[H]) Direction() resource.Direction {
	return s.direction
}

// Run schedules every node. maxBlockCycles bounds how long a node may wait
// past its dependency bound for resources; 0 disables the bound.
func (s *Scheduler[H]) Run(ctx context.Context, maxBlockCycles int) (*Schedule, error) {
	logger := ctxlog.FromContext(ctx)
	g := s.graph
	blockName := ""
	if g.Block != nil {
		blockName = g.Block.Name
	}

	if s.constrained() && s.state.Direction() != s.direction {
		return nil, fmt.Errorf("block %q: resource state is %s but scheduling runs %s: %w",
			blockName, s.state.Direction(), s.direction, resource.ErrDirection)
	}

	forward := s.direction != resource.Backward
	step := 1
	if !forward {
		step = -1
	}

	n := len(g.Nodes)
	sched := &Schedule{Graph: g, Cycles: make([]int, n)}
	pending := make([]int, n)
	bound := make([]int, n)
	for _, node := range g.Nodes {
		pending[node.ID] = len(node.Preds)
	}

	var ready []*ddg.Node
	remaining := n
	place := func(node *ddg.Node, cycle int) {
		sched.Cycles[node.ID] = cycle
		remaining--
		for _, e := range node.Succs {
			id := e.To.ID
			b := cycle + e.Latency
			if !forward {
				b = cycle - e.Latency
			}
			if pending[id] == len(e.To.Preds) || (forward && b > bound[id]) || (!forward && b < bound[id]) {
				bound[id] = b
			}
			pending[id]--
			if pending[id] == 0 {
				ready = append(ready, e.To)
			}
		}
	}

	place(g.Source, 0)
	curr := 0
	for remaining > 0 {
		if len(ready) == 0 {
			return nil, fmt.Errorf("block %q: dependency graph is not acyclic", blockName)
		}

		candidates, next := s.candidates(ready, bound, curr)
		if len(candidates) == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			curr = next
			continue
		}

		var chosen *ddg.Node
		for _, c := range candidates {
			ok, err := s.available(curr, c)
			if err != nil {
				return nil, fmt.Errorf("block %q: scheduling %s at cycle %d: %w", blockName, c, curr, err)
			}
			if ok {
				chosen = c
				break
			}
		}

		if chosen != nil {
			if err := s.reserve(curr, chosen); err != nil {
				return nil, fmt.Errorf("block %q: %w", blockName, err)
			}
			place(chosen, curr)
			ready = remove(ready, chosen)
			logger.Debug("Placed statement.", "block", blockName, "node", chosen.String(), "cycle", curr, "bound", bound[chosen.ID])
			continue
		}

		if maxBlockCycles > 0 {
			for _, c := range candidates {
				waited := curr - bound[c.ID]
				if !forward {
					waited = -waited
				}
				if waited >= maxBlockCycles {
					return nil, &DeadlockError{
						Block:     blockName,
						Statement: c.Statement,
						Bound:     bound[c.ID],
						Cycle:     curr,
						Limit:     maxBlockCycles,
					}
				}
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		curr += step
	}
	return sched, nil
}

// candidates returns the ready nodes whose dependency bound has been reached
// at curr, in priority order. When there are none it also returns the
// nearest bound to jump to.
func (s *Scheduler[H]) candidates(ready []*ddg.Node, bound []int, curr int) ([]*ddg.Node, int) {
	forward := s.direction != resource.Backward
	reached := func(b int) bool {
		if forward {
			return b <= curr
		}
		return b >= curr
	}

	var out []*ddg.Node
	for _, node := range ready {
		if reached(bound[node.ID]) {
			out = append(out, node)
		}
	}
	if len(out) == 0 {
		next := bound[ready[0].ID]
		for _, node := range ready[1:] {
			b := bound[node.ID]
			if (forward && b < next) || (!forward && b > next) {
				next = b
			}
		}
		return nil, next
	}
	sort.SliceStable(out, func(i, j int) bool {
		return s.less(out[i], out[j])
	})
	return out, curr
}

func (s *Scheduler[H]) less(a, b *ddg.Node) bool {
	if c := s.heuristic.Compare(a, b); c != 0 {
		return c < 0
	}
	if s.graph.Reversed {
		return a.Order > b.Order
	}
	return a.Order < b.Order
}

func (s *Scheduler[H]) constrained() bool {
	return s.state != nil && s.state.Len() > 0
}

func (s *Scheduler[H]) available(cycle int, node *ddg.Node) (bool, error) {
	if node.IsSynthetic() || !s.constrained() {
		return true, nil
	}
	return s.state.Available(cycle, node.Statement)
}

func (s *Scheduler[H]) reserve(cycle int, node *ddg.Node) error {
	if node.IsSynthetic() || !s.constrained() {
		return nil
	}
	return s.state.Reserve(cycle, node.Statement)
}

func remove(nodes []*ddg.Node, n *ddg.Node) []*ddg.Node {
	for i, m := range nodes {
		if m == n {
			return append(nodes[:i], nodes[i+1:]...)
		}
	}
	return nodes
}
