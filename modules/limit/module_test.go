package limit

import (
	"testing"

	"github.com/specialistvlad/qcsched/internal/ir"
	"github.com/specialistvlad/qcsched/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResource(t *testing.T, dir resource.Direction, cfg map[string]any) (resource.Resource, error) {
	t.Helper()
	r, err := New(&resource.Context{TypeName: TypeName, InstanceName: "cap", Config: resource.NewConfig(cfg)})
	require.NoError(t, err)
	return r, r.Initialize(dir)
}

func x(q, duration int) *ir.Statement {
	return &ir.Statement{Name: "x", Duration: duration, Operands: []ir.Operand{ir.Q(q)}}
}

func TestLimit_Forward(t *testing.T) {
	t.Parallel()
	r, err := newResource(t, resource.Forward, map[string]any{"max": 2})
	require.NoError(t, err)

	for q := 0; q < 2; q++ {
		ok, err := r.Gate(0, x(q, 2), true)
		require.NoError(t, err)
		require.True(t, ok)
	}
	ok, err := r.Gate(1, x(2, 1), false)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.Gate(2, x(2, 1), false)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLimit_Backward(t *testing.T) {
	t.Parallel()
	r, err := newResource(t, resource.Backward, map[string]any{"max": 1})
	require.NoError(t, err)

	ok, err := r.Gate(0, x(0, 1), true)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = r.Gate(-1, x(1, 2), false)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.Gate(-1, x(1, 1), false)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLimit_ZeroNeverAdmits(t *testing.T) {
	t.Parallel()
	r, err := newResource(t, resource.Forward, map[string]any{"max": 0, "operations": []any{"x"}})
	require.NoError(t, err)

	ok, err := r.Gate(0, x(0, 1), false)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.Gate(0, &ir.Statement{Name: "y", Duration: 1, Operands: []ir.Operand{ir.Q(0)}}, false)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLimit_Configuration(t *testing.T) {
	t.Parallel()
	var cfgErr *resource.ConfigError

	_, err := newResource(t, resource.Forward, map[string]any{})
	assert.ErrorAs(t, err, &cfgErr)

	_, err = newResource(t, resource.Forward, map[string]any{"max": -1})
	assert.ErrorAs(t, err, &cfgErr)
}
