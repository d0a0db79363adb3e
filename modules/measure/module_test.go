package measure

import (
	"testing"

	"github.com/specialistvlad/qcsched/internal/ir"
	"github.com/specialistvlad/qcsched/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResource(t *testing.T, dir resource.Direction, cfg map[string]any) resource.Resource {
	t.Helper()
	r, err := New(&resource.Context{TypeName: TypeName, InstanceName: "feedlines", Config: resource.NewConfig(cfg)})
	require.NoError(t, err)
	require.NoError(t, r.Initialize(dir))
	return r
}

func measure(q int) *ir.Statement {
	return &ir.Statement{Name: "measure", Duration: 3, Operands: []ir.Operand{ir.Q(q), ir.C(q)}}
}

var oneUnit = map[string]any{
	"units": map[string]any{"fl0": map[string]any{"qubits": []any{0, 1, 2}}},
}

func TestMeasure_Forward(t *testing.T) {
	t.Parallel()
	r := newResource(t, resource.Forward, oneUnit)

	ok, err := r.Gate(0, measure(0), true)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = r.Gate(0, measure(1), true)
	require.NoError(t, err)
	assert.True(t, ok, "measurements starting together share the unit")

	ok, err = r.Gate(1, measure(2), false)
	require.NoError(t, err)
	assert.False(t, ok, "a staggered start must wait")

	ok, err = r.Gate(1, &ir.Statement{Name: "x", Duration: 1, Operands: []ir.Operand{ir.Q(2)}}, false)
	require.NoError(t, err)
	assert.True(t, ok, "only measurements are constrained")

	ok, err = r.Gate(3, measure(2), false)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMeasure_Backward(t *testing.T) {
	t.Parallel()
	r := newResource(t, resource.Backward, oneUnit)

	ok, err := r.Gate(0, measure(0), true)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = r.Gate(-3, measure(1), true)
	require.NoError(t, err)
	require.True(t, ok)

	// Joining the group at -3 with a longer measurement would run into the
	// group at 0.
	long := &ir.Statement{Name: "measure", Duration: 4, Operands: []ir.Operand{ir.Q(2)}}
	ok, err = r.Gate(-3, long, false)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.Gate(-3, measure(2), false)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMeasure_OtherUnitsIndependent(t *testing.T) {
	t.Parallel()
	r := newResource(t, resource.Forward, map[string]any{
		"units": map[string]any{
			"fl0": map[string]any{"qubits": []any{0}},
			"fl1": map[string]any{"qubits": []any{1}},
		},
		"operations": []any{"measure", "measz"},
	})

	_, err := r.Gate(0, measure(0), true)
	require.NoError(t, err)
	ok, err := r.Gate(1, &ir.Statement{Name: "measz", Duration: 3, Operands: []ir.Operand{ir.Q(1)}}, false)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = r.Gate(1, &ir.Statement{Name: "measz", Duration: 3, Operands: []ir.Operand{ir.Q(0)}}, false)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMeasure_Configuration(t *testing.T) {
	t.Parallel()
	r, err := New(&resource.Context{TypeName: TypeName, InstanceName: "feedlines"})
	require.NoError(t, err)
	var cfgErr *resource.ConfigError
	assert.ErrorAs(t, r.Initialize(resource.Forward), &cfgErr)
}
