package channel

import (
	"testing"

	"github.com/specialistvlad/qcsched/internal/ir"
	"github.com/specialistvlad/qcsched/internal/platform"
	"github.com/specialistvlad/qcsched/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResource(t *testing.T, dir resource.Direction, cfg map[string]any) (resource.Resource, error) {
	t.Helper()
	p := platform.New("test")
	p.QubitCount = 4
	r, err := New(&resource.Context{TypeName: TypeName, InstanceName: "awg", Platform: p, Config: resource.NewConfig(cfg)})
	require.NoError(t, err)
	return r, r.Initialize(dir)
}

func gate(name string, duration int, qubits ...int) *ir.Statement {
	s := &ir.Statement{Name: name, Duration: duration}
	for _, q := range qubits {
		s.Operands = append(s.Operands, ir.Q(q))
	}
	return s
}

var twoInstruments = map[string]any{
	"instruments": map[string]any{
		"awg0": map[string]any{"qubits": []any{0, 1}},
		"awg1": map[string]any{"qubits": []any{2, 3}},
	},
}

func TestChannel_Forward(t *testing.T) {
	t.Parallel()
	r, err := newResource(t, resource.Forward, twoInstruments)
	require.NoError(t, err)

	ok, err := r.Gate(0, gate("x", 2, 0), true)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = r.Gate(1, gate("x", 2, 1), true)
	require.NoError(t, err)
	assert.True(t, ok, "the same operation may share the instrument")

	ok, err = r.Gate(2, gate("y", 1, 0), false)
	require.NoError(t, err)
	assert.False(t, ok, "y overlaps the second x on awg0")

	ok, err = r.Gate(2, gate("y", 1, 2), false)
	require.NoError(t, err)
	assert.True(t, ok, "awg1 is idle")

	ok, err = r.Gate(3, gate("y", 1, 0), false)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestChannel_Backward(t *testing.T) {
	t.Parallel()
	r, err := newResource(t, resource.Backward, twoInstruments)
	require.NoError(t, err)

	ok, err := r.Gate(0, gate("x", 1, 0), true)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = r.Gate(-1, gate("y", 2, 1), false)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.Gate(-2, gate("y", 2, 1), false)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestChannel_OperationFilter(t *testing.T) {
	t.Parallel()
	cfg := map[string]any{
		"instruments": twoInstruments["instruments"],
		"operations":  []any{"x", "y"},
	}
	r, err := newResource(t, resource.Forward, cfg)
	require.NoError(t, err)

	_, err = r.Gate(0, gate("x", 4, 0), true)
	require.NoError(t, err)
	ok, err := r.Gate(1, gate("measure", 4, 1), false)
	require.NoError(t, err)
	assert.True(t, ok, "measure is not constrained")
}

func TestChannel_Configuration(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		cfg  map[string]any
	}{
		{name: "missing instruments", cfg: nil},
		{name: "qubit out of range", cfg: map[string]any{"instruments": map[string]any{"a": map[string]any{"qubits": []any{9}}}}},
		{name: "qubit on two instruments", cfg: map[string]any{"instruments": map[string]any{
			"a": map[string]any{"qubits": []any{0}},
			"b": map[string]any{"qubits": []any{0}},
		}}},
		{name: "unknown key", cfg: map[string]any{"instrument": map[string]any{}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := newResource(t, resource.Forward, tc.cfg)
			var cfgErr *resource.ConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestChannel_CloneIsIndependent(t *testing.T) {
	t.Parallel()
	r, err := newResource(t, resource.Forward, twoInstruments)
	require.NoError(t, err)

	c := r.Clone()
	_, err = c.Gate(0, gate("x", 5, 0), true)
	require.NoError(t, err)

	ok, err := r.Gate(0, gate("y", 1, 0), false)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = c.Gate(0, gate("y", 1, 0), false)
	require.NoError(t, err)
	assert.False(t, ok)
}
