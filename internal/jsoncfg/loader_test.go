package jsoncfg

import (
	"path/filepath"
	"testing"

	"github.com/specialistvlad/qcsched/internal/ir"
	"github.com/specialistvlad/qcsched/internal/platform"
	"github.com/specialistvlad/qcsched/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `{
  "eqasm_compiler": "cc",
  "hardware_settings": {"qubit_number": 7, "cycle_time": 20},
  "instructions": {
    "cz q0,q1": {"duration": 80},
    "cz": {"duration": 40, "prototype": ["Z:qubit", "Z:qubit"]},
    "x q3": {"duration": 60},
    "measure": {"duration": 300, "prototype": ["M:qubit", "W:creg"]}
  },
  "resources": {
    "qubit": {},
    "dnu.limit": {"max": 2}
  }
}`

func TestLoader_Load(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)
	dir := testutil.WriteFiles(t, map[string]string{"cc.json": doc})

	model, err := NewLoader().Load(ctx, filepath.Join(dir, "cc.json"))
	require.Error(t, err, "M is not an access mode")
	assert.Nil(t, model)

	fixed := testutil.WriteFiles(t, map[string]string{"cc.json": `{
  "name": "cc_light",
  "architecture": "cc",
  "hardware_settings": {"qubit_number": 7, "cycle_time": 20},
  "instructions": {
    "cz q0,q1": {"duration": 80},
    "cz": {"duration": 40, "prototype": ["Z:qubit", "Z:qubit"]},
    "x q3": {"duration": 60},
    "measure": {"duration": 300, "prototype": ["W:qubit", "W:creg"]}
  },
  "resources": {"qubit": {}, "dnu.limit": {"max": 2}}
}`})
	model, err = NewLoader().Load(ctx, filepath.Join(fixed, "cc.json"))
	require.NoError(t, err)

	p := model.Platform
	assert.Equal(t, "cc_light", p.Name)
	assert.Equal(t, "cc", p.Architecture)
	assert.Equal(t, 7, p.QubitCount)
	assert.Equal(t, 20, p.CycleTimeNs)
	assert.Equal(t, []string{"cz", "measure", "x"}, p.InstructionNames())
	assert.Equal(t, &platform.Instruction{Name: "cz", DurationNs: 40, OperandModes: []ir.AccessMode{ir.CommuteZ, ir.CommuteZ}}, p.Instructions["cz"])
	assert.Equal(t, 60, p.Instructions["x"].DurationNs)
	assert.Equal(t, []ir.AccessMode{ir.Write}, p.Instructions["measure"].OperandModes)
	assert.Equal(t, map[string]any{"qubit": map[string]any{}, "dnu.limit": map[string]any{"max": float64(2)}}, p.Resources)
}

func TestDecode(t *testing.T) {
	t.Parallel()

	p, err := Decode([]byte(`{"eqasm_compiler": "qx", "instructions": {"x": {"duration": 1}}}`), "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", p.Name)
	assert.Equal(t, "qx", p.Architecture)
	assert.Equal(t, 1, p.CycleTimeNs)
	assert.Nil(t, p.Resources)

	tests := map[string]struct {
		src  string
		want string
	}{
		"invalid":            {`{"a":`, "invalid json"},
		"array":              {`[1, 2]`, "must be a json object"},
		"instruction scalar": {`{"instructions": {"x": 3}}`, "definition must be an object"},
		"resources scalar":   {`{"resources": 3}`, "resources must be an object"},
		"zero cycle time":    {`{"hardware_settings": {"cycle_time": 0}}`, "cycle_time must be positive"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode([]byte(tc.src), "p")
			assert.ErrorContains(t, err, tc.want)
		})
	}
}
