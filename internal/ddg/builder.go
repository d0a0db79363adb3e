package ddg

import (
	"context"

	"github.com/specialistvlad/qcsched/internal/ctxlog"
	"github.com/specialistvlad/qcsched/internal/ir"
)

// LatencyFunc returns the minimum distance in cycles between the start of
// from and the start of to for a dependency of the given kind.
type LatencyFunc func(kind Kind, from, to *ir.Statement) int

// DefaultLatency waits for the producer to complete on true and output
// dependencies, and allows anti-dependent statements to start together.
func DefaultLatency(kind Kind, from, _ *ir.Statement) int {
	if kind == WAR {
		return 0
	}
	return from.Duration
}

// Commuter decides whether two statements accessing ref in the same
// commuting mode may be reordered.
type Commuter interface {
	Commutes(a, b *ir.Statement, ref ir.Ref, mode ir.AccessMode) bool
}

// CommuterFunc adapts a function to the Commuter interface.
type CommuterFunc func(a, b *ir.Statement, ref ir.Ref, mode ir.AccessMode) bool

func (f CommuterFunc) Commutes(a, b *ir.Statement, ref ir.Ref, mode ir.AccessMode) bool {
	return f(a, b, ref, mode)
}

// ModeCommuter treats equal commuting access modes as sufficient.
type ModeCommuter struct{}

func (ModeCommuter) Commutes(_, _ *ir.Statement, _ ir.Ref, _ ir.AccessMode) bool {
	return true
}

// Options controls graph construction.
type Options struct {
	// CommuteSingleQubit enables commutation for statements with at most one
	// qubit operand.
	CommuteSingleQubit bool
	// CommuteMultiQubit enables commutation for statements with several
	// qubit operands.
	CommuteMultiQubit bool
	// Commuter is consulted for every pair that would share a commuting
	// group. Defaults to ModeCommuter.
	Commuter Commuter
	// Latency defaults to DefaultLatency.
	Latency LatencyFunc
}

// tracker follows the accesses to one operand. Consecutive accesses that may
// be reordered among themselves form a group; every member of a group
// depends on every member of the group before it.
type tracker struct {
	mode     ir.AccessMode
	current  []*Node
	prevMode ir.AccessMode
	previous []*Node
}

type builder struct {
	opts     Options
	graph    *Graph
	trackers map[ir.Ref]*tracker
	touched  []ir.Ref
}

// Build constructs the dependency graph of block.
func Build(ctx context.Context, block *ir.Block, opts Options) *Graph {
	logger := ctxlog.FromContext(ctx)
	if opts.Commuter == nil {
		opts.Commuter = ModeCommuter{}
	}
	if opts.Latency == nil {
		opts.Latency = DefaultLatency
	}

	n := len(block.Statements)
	g := &Graph{Block: block, Nodes: make([]*Node, 0, n+2)}
	g.Source = &Node{ID: 0, Order: -1, Kind: SourceNode}
	g.Nodes = append(g.Nodes, g.Source)
	for i, s := range block.Statements {
		g.Nodes = append(g.Nodes, &Node{ID: i + 1, Order: i, Kind: StatementNode, Statement: s})
	}
	g.Sink = &Node{ID: n + 1, Order: n, Kind: SinkNode}
	g.Nodes = append(g.Nodes, g.Sink)

	b := &builder{opts: opts, graph: g, trackers: make(map[ir.Ref]*tracker)}
	for _, node := range g.Nodes[1 : n+1] {
		for _, op := range b.accesses(node) {
			b.access(node, op.Ref, op.Mode)
		}
	}
	b.close()

	logger.Debug("Build: Dependency graph constructed.", "block", block.Name, "nodes", len(g.Nodes), "edges", g.edgeCount)
	return g
}

func (b *builder) commutationEnabled(s *ir.Statement) bool {
	if len(s.Qubits()) > 1 {
		return b.opts.CommuteMultiQubit
	}
	return b.opts.CommuteSingleQubit
}

// accesses lists the operands a statement touches, with effective modes.
// A register named more than once is accessed once, in Write mode unless
// every mention agrees.
func (b *builder) accesses(n *Node) []ir.Operand {
	s := n.Statement
	var ops []ir.Operand
	index := make(map[ir.Ref]int)
	add := func(ref ir.Ref, mode ir.AccessMode) {
		if i, seen := index[ref]; seen {
			if ops[i].Mode != mode {
				ops[i].Mode = ir.Write
			}
			return
		}
		index[ref] = len(ops)
		ops = append(ops, ir.Operand{Ref: ref, Mode: mode})
	}

	commute := b.commutationEnabled(s)
	for _, op := range s.Operands {
		mode := op.Mode
		if mode.IsCommuting() && !commute {
			mode = ir.Write
		}
		add(op.Ref, mode)
	}
	if s.Condition != nil {
		for _, bit := range s.Condition.Bregs {
			add(ir.Ref{Kind: ir.Breg, Index: bit}, ir.Read)
		}
	}

	// A barrier that names its operands is scoped to them and is ordered
	// against global barriers like any other statement.
	order := ir.Ref{Kind: ir.Ordering}
	global := s.IsStructured() || (s.Barrier && len(s.Operands) == 0)
	if !global {
		add(order, ir.Read)
		return ops
	}
	add(order, ir.Write)
	for _, ref := range b.touched {
		add(ref, ir.Write)
	}
	return ops
}

func dependency(prev, next ir.AccessMode) Kind {
	switch {
	case prev == ir.Read:
		return WAR
	case next == ir.Read:
		return RAW
	default:
		return WAW
	}
}

func (b *builder) access(n *Node, ref ir.Ref, mode ir.AccessMode) {
	t, ok := b.trackers[ref]
	if !ok {
		t = &tracker{}
		b.trackers[ref] = t
		if ref.Kind != ir.Ordering {
			b.touched = append(b.touched, ref)
		}
	}

	if b.joins(t, n, ref, mode) {
		b.link(t.previous, n, dependency(t.prevMode, mode), ref)
		t.current = append(t.current, n)
		return
	}

	b.link(t.current, n, dependency(t.mode, mode), ref)
	t.prevMode, t.previous = t.mode, t.current
	t.mode, t.current = mode, []*Node{n}
}

func (b *builder) joins(t *tracker, n *Node, ref ir.Ref, mode ir.AccessMode) bool {
	if len(t.current) == 0 || t.mode != mode {
		return false
	}
	if mode == ir.Read {
		return true
	}
	if !mode.IsCommuting() {
		return false
	}
	for _, m := range t.current {
		if !b.opts.Commuter.Commutes(m.Statement, n.Statement, ref, mode) {
			return false
		}
	}
	return true
}

func (b *builder) link(from []*Node, to *Node, kind Kind, cause ir.Ref) {
	for _, f := range from {
		b.graph.addEdge(f, to, kind, b.opts.Latency(kind, f.Statement, to.Statement), cause)
	}
}

// close connects Source to every statement and every statement to Sink.
func (b *builder) close() {
	g := b.graph
	stmts := g.Nodes[1 : len(g.Nodes)-1]
	if len(stmts) == 0 {
		g.addEdge(g.Source, g.Sink, Order, 0, ir.Ref{})
		return
	}
	for _, n := range stmts {
		g.addEdge(g.Source, n, Order, 0, ir.Ref{})
		g.addEdge(n, g.Sink, Order, n.Duration(), ir.Ref{})
	}
}
