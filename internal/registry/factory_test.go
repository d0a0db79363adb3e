package registry_test

import (
	"bytes"
	"testing"

	"github.com/specialistvlad/qcsched/internal/registry"
	"github.com/specialistvlad/qcsched/internal/resource"
	"github.com/specialistvlad/qcsched/modules/limit"
	"github.com/specialistvlad/qcsched/modules/qubit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(ctx *resource.Context) (resource.Resource, error) {
	return qubit.New(ctx)
}

type extraModule struct {
	names []string
}

func (m *extraModule) Register(f *registry.Factory) {
	for _, n := range m.names {
		f.Register(n, "docs for "+n, noop)
	}
}

func TestFactory_Register(t *testing.T) {
	t.Parallel()

	f := registry.NewFactory(&qubit.Module{}, &limit.Module{})
	assert.Equal(t, []string{"dnu.limit", "qubit"}, f.TypeNames())

	reg, ok := f.Lookup("qubit")
	require.True(t, ok)
	assert.Equal(t, "qubit", reg.TypeName)
	assert.NotEmpty(t, reg.Docs)

	assert.Panics(t, func() { f.Register("qubit", "", noop) })
}

func TestFactory_Resolve(t *testing.T) {
	t.Parallel()

	f := registry.NewFactory(&extraModule{names: []string{
		"qubit",
		"arch.cc.qubit",
		"arch.cc.dnu.channel",
		"dnu.channel",
		"dnu.limit",
		"measure",
	}})

	testCases := []struct {
		name     string
		typeName string
		arch     string
		dnu      []string
		want     string
		wantErr  bool
	}{
		{name: "plain", typeName: "measure", arch: "cc", want: "measure"},
		{name: "architecture specific wins", typeName: "qubit", arch: "cc", want: "arch.cc.qubit"},
		{name: "generic without architecture", typeName: "qubit", want: "qubit"},
		{name: "other architecture falls back", typeName: "qubit", arch: "cc-light", want: "qubit"},
		{name: "dnu architecture variant", typeName: "channel", arch: "cc", dnu: []string{"channel"}, want: "arch.cc.dnu.channel"},
		{name: "dnu generic variant", typeName: "channel", dnu: []string{"channel"}, want: "dnu.channel"},
		{name: "dnu not allowed", typeName: "channel", arch: "cc", wantErr: true},
		{name: "qualified dnu allowed", typeName: "dnu.limit", dnu: []string{"limit"}, want: "dnu.limit"},
		{name: "qualified dnu not allowed", typeName: "dnu.limit", wantErr: true},
		{name: "qualified architecture", typeName: "arch.cc.qubit", arch: "cc", want: "arch.cc.qubit"},
		{name: "qualified architecture mismatch", typeName: "arch.cc.qubit", arch: "other", wantErr: true},
		{name: "malformed architecture", typeName: "arch.qubit", wantErr: true},
		{name: "unknown", typeName: "laser", arch: "cc", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			reg, err := f.Resolve(tc.typeName, tc.arch, tc.dnu)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, reg.TypeName)
		})
	}

	t.Run("unknown type is typed", func(t *testing.T) {
		t.Parallel()
		_, err := f.Resolve("laser", "", nil)
		assert.ErrorIs(t, err, resource.ErrUnknownType)
	})

	t.Run("dnu hint", func(t *testing.T) {
		t.Parallel()
		_, err := f.Resolve("limit", "", nil)
		require.ErrorIs(t, err, resource.ErrUnknownType)
		assert.Contains(t, err.Error(), "do-not-use")
	})
}

func TestFactory_DumpDocs(t *testing.T) {
	t.Parallel()

	f := registry.NewFactory(&extraModule{names: []string{"b", "a"}})
	var buf bytes.Buffer
	f.DumpDocs(&buf)
	assert.Equal(t, "a\n-\n  docs for a\n\nb\n-\n  docs for b\n", buf.String())
}
