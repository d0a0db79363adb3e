package registry_test

import (
	"context"
	"testing"

	"github.com/specialistvlad/qcsched/internal/platform"
	"github.com/specialistvlad/qcsched/internal/registry"
	"github.com/specialistvlad/qcsched/internal/resource"
	"github.com/specialistvlad/qcsched/modules/limit"
	"github.com/specialistvlad/qcsched/modules/qubit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFactory() *registry.Factory {
	return registry.NewFactory(&qubit.Module{}, &limit.Module{})
}

func TestManager_LoadFlat(t *testing.T) {
	t.Parallel()

	m := registry.NewManager(newFactory(), nil)
	require.NoError(t, m.Load(map[string]any{"qubit": map[string]any{}}))

	specs := m.Specs()
	require.Len(t, specs, 1)
	assert.Equal(t, "qubit", specs[0].Name)
	assert.Equal(t, "qubit", specs[0].Type)

	state, err := m.Build(context.Background(), resource.Forward)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Len())
	assert.Equal(t, resource.Forward, state.Direction())
}

func TestManager_LoadExtended(t *testing.T) {
	t.Parallel()

	p := platform.New("test")
	p.Architecture = "cc"
	m := registry.NewManager(newFactory(), p)
	require.NoError(t, m.Load(map[string]any{
		"dnu": []any{"limit"},
		"resources": map[string]any{
			"qubits": map[string]any{"type": "qubit"},
			"cap":    map[string]any{"type": "limit", "config": map[string]any{"max": 2}},
		},
	}))

	assert.Equal(t, "cc", m.Architecture())
	assert.Equal(t, []string{"limit"}, m.DNU())
	specs := m.Specs()
	require.Len(t, specs, 2)
	assert.Equal(t, "cap", specs[0].Name)
	assert.Equal(t, "qubits", specs[1].Name)

	state, err := m.Build(context.Background(), resource.Backward)
	require.NoError(t, err)
	require.Equal(t, 2, state.Len())
	assert.Equal(t, "dnu.limit", state.Resources()[0].Context().TypeName)
	assert.Equal(t, "cap", state.Resources()[0].Context().InstanceName)
	assert.Same(t, p, state.Resources()[0].Context().Platform)
}

func TestManager_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		cfg      map[string]any
		loadErr  bool
		buildErr error
	}{
		{
			name:    "unexpected top-level key",
			cfg:     map[string]any{"resources": map[string]any{}, "extra": 1},
			loadErr: true,
		},
		{
			name:    "entry without object",
			cfg:     map[string]any{"resources": map[string]any{"q": "qubit"}},
			loadErr: true,
		},
		{
			name:    "missing type",
			cfg:     map[string]any{"resources": map[string]any{"q": map[string]any{}}},
			loadErr: true,
		},
		{
			name:    "unexpected entry key",
			cfg:     map[string]any{"resources": map[string]any{"q": map[string]any{"type": "qubit", "cfg": 1}}},
			loadErr: true,
		},
		{
			name:    "dnu must be a list",
			cfg:     map[string]any{"dnu": "limit", "resources": map[string]any{}},
			loadErr: true,
		},
		{
			name:     "unknown type",
			cfg:      map[string]any{"laser": map[string]any{}},
			buildErr: resource.ErrUnknownType,
		},
		{
			name:     "do-not-use type without allow-list",
			cfg:      map[string]any{"resources": map[string]any{"c": map[string]any{"type": "limit", "config": map[string]any{"max": 1}}}},
			buildErr: resource.ErrUnknownType,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m := registry.NewManager(newFactory(), nil)
			err := m.Load(tc.cfg)
			if tc.loadErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			_, err = m.Build(context.Background(), resource.Forward)
			assert.ErrorIs(t, err, tc.buildErr)
		})
	}

	t.Run("configuration error is typed", func(t *testing.T) {
		t.Parallel()
		m := registry.NewManager(newFactory(), nil)
		require.NoError(t, m.Load(map[string]any{"qubit": map[string]any{"unexpected": true}}))
		_, err := m.Build(context.Background(), resource.Forward)
		var cfgErr *resource.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "qubit", cfgErr.Resource)
	})

	t.Run("duplicate instance", func(t *testing.T) {
		t.Parallel()
		m := registry.NewManager(newFactory(), nil)
		require.NoError(t, m.Add(registry.Spec{Name: "q", Type: "qubit"}))
		assert.Error(t, m.Add(registry.Spec{Name: "q", Type: "qubit"}))
	})
}

func TestBuildState_NoConfiguration(t *testing.T) {
	t.Parallel()

	state, err := registry.BuildState(context.Background(), newFactory(), platform.New("bare"), resource.Forward)
	require.NoError(t, err)
	assert.Equal(t, 0, state.Len())
}
