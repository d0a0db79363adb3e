package schedule

import (
	"testing"

	"github.com/specialistvlad/qcsched/internal/ddg"
	"github.com/stretchr/testify/assert"
)

func link(from, to *ddg.Node) {
	e := &ddg.Edge{From: from, To: to, Kind: ddg.RAW}
	from.Succs = append(from.Succs, e)
	to.Preds = append(to.Preds, e)
}

func TestHeuristics(t *testing.T) {
	t.Parallel()

	sink := &ddg.Node{ID: 9, Order: 9, Kind: ddg.SinkNode}
	a := &ddg.Node{ID: 1, Order: 0, Criticality: 5}
	b := &ddg.Node{ID: 2, Order: 1, Criticality: 5}
	a2 := &ddg.Node{ID: 3, Order: 2, Criticality: 3}
	b2 := &ddg.Node{ID: 4, Order: 3, Criticality: 3}
	a3 := &ddg.Node{ID: 5, Order: 4, Criticality: 1}
	b3 := &ddg.Node{ID: 6, Order: 5, Criticality: 2}
	link(a, a2)
	link(a2, a3)
	link(a3, sink)
	link(b, b2)
	link(b2, b3)
	link(b3, sink)

	assert.Zero(t, Trivial{}.Compare(a, b))
	assert.Zero(t, CriticalPath{}.Compare(a, b))
	assert.Negative(t, CriticalPath{}.Compare(a, a2))
	assert.Positive(t, CriticalPath{}.Compare(a3, b3))

	assert.Positive(t, DeepCriticality{}.Compare(a, b), "b's chain is more critical two levels down")
	assert.Negative(t, DeepCriticality{}.Compare(b, a))
	assert.Zero(t, DeepCriticality{}.Compare(a, a))
	assert.Zero(t, DeepCriticality{}.Compare(a3, a3))

	assert.Same(t, a2, mostCritical(a))
	assert.Nil(t, mostCritical(sink))
}
