package hcl

import (
	"testing"

	"github.com/specialistvlad/qcsched/internal/ir"
	"github.com/specialistvlad/qcsched/internal/platform"
	"github.com/specialistvlad/qcsched/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const platformHCL = `
platform "cc_light" {
  architecture = "cc"
  cycle_time   = 20
  qubits       = 3

  resources = {
    qubit = {}
    "dnu.limit" = { max = 1, operations = ["cz"] }
  }

  instruction "x" {
    duration = 20
  }
  instruction "cz" {
    duration      = 40
    operand_modes = ["Z", "Z"]
  }
  instruction "measure" {
    duration = 60
  }
}
`

const kernelHCL = `
kernel "main" {
  gate "x" { qubits = [0] }
  gate "cz" { qubits = [0, 1] }
  gate "measure" {
    qubits = [0]
    cregs  = [0]
    bregs  = [0]
  }
  barrier {}
  wait {
    cycles = 2
    qubits = [1]
  }
  if {
    condition = [0]
    gate "x" { qubits = [1] }
    elif {
      condition = [1]
      negate    = true
      gate "cz" { qubits = [1, 2] }
    }
    else {
      gate "x" {
        qubits    = [2]
        condition = [0]
      }
    }
  }
  loop {
    count = 3
    gate "x" { qubits = [2] }
  }
}
`

func TestLoader_Load(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	dir := testutil.WriteFiles(t, map[string]string{
		"platform.hcl":     platformHCL,
		"kernels/main.hcl": kernelHCL,
		"notes.txt":        "ignored",
	})

	model, err := NewLoader().Load(ctx, dir)
	require.NoError(t, err)

	p := model.Platform
	require.NotNil(t, p)
	assert.Equal(t, "cc_light", p.Name)
	assert.Equal(t, "cc", p.Architecture)
	assert.Equal(t, 20, p.CycleTimeNs)
	assert.Equal(t, 3, p.QubitCount)
	assert.Equal(t, []string{"cz", "measure", "x"}, p.InstructionNames())
	assert.Equal(t, &platform.Instruction{
		Name: "cz", DurationNs: 40, OperandModes: []ir.AccessMode{ir.CommuteZ, ir.CommuteZ},
	}, p.Instructions["cz"])
	assert.Equal(t, map[string]any{
		"qubit":     map[string]any{},
		"dnu.limit": map[string]any{"max": float64(1), "operations": []any{"cz"}},
	}, p.Resources)

	require.Len(t, model.Kernels, 1)
	k := model.Kernels[0]
	assert.Equal(t, "main", k.Name)

	var got []string
	for _, s := range k.Statements {
		got = append(got, s.String())
	}
	assert.Equal(t, []string{"x q[0]", "cz q[0], q[1]", "measure q[0], c[0], b[0]", "barrier", "wait q[1]", "if", "loop"}, got)
	assert.Equal(t, 2, k.Statements[4].Duration)

	ifelse, ok := k.Statements[5].Structure.(*ir.IfElse)
	require.True(t, ok)
	require.Len(t, ifelse.Branches, 2)
	assert.Equal(t, "main.if5.then", ifelse.Branches[0].Body.Name)
	assert.Equal(t, &ir.Condition{Bregs: []int{0}}, ifelse.Branches[0].Condition)
	assert.Equal(t, "main.if5.elif1", ifelse.Branches[1].Body.Name)
	assert.Equal(t, &ir.Condition{Bregs: []int{1}, Negate: true}, ifelse.Branches[1].Condition)
	require.NotNil(t, ifelse.Else)
	assert.Equal(t, "main.if5.else", ifelse.Else.Name)
	assert.Equal(t, "cond(b[0]) x q[2]", ifelse.Else.Statements[0].String())

	loop, ok := k.Statements[6].Structure.(*ir.Loop)
	require.True(t, ok)
	assert.Equal(t, 3, loop.Count)
	assert.Equal(t, "main.loop6.body", loop.Body.Name)
	assert.Len(t, loop.Body.Statements, 1)

	// The loaded program decorates cleanly against its own platform.
	require.NoError(t, p.DecorateBlock(k))
	assert.Equal(t, 2, k.Statements[1].Duration)
	assert.Equal(t, ir.CommuteZ, k.Statements[1].Operands[0].Mode)
}

func TestLoader_LoadBytes_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", `kernel "k" {`, "failed to parse"},
		{"unknown top-level block", `step "x" {}`, "failed to decode"},
		{"unknown statement", "kernel \"k\" {\n  swap {}\n}\n", "Unsupported block type"},
		{"two platforms", "platform \"a\" {}\nplatform \"b\" {}\n", `Duplicate "platform" block`},
		{"bad mode", "platform \"p\" {\n  instruction \"x\" {\n    duration = 1\n    operand_modes = [\"Q\"]\n  }\n}\n", "unknown operand access mode"},
		{"zero cycle time", `platform "p" { cycle_time = 0 }`, "cycle_time must be positive"},
		{"resources not an object", `platform "p" { resources = [1] }`, "resources must be an object"},
		{"if without condition", "kernel \"k\" {\n  if {\n    gate \"x\" { qubits = [0] }\n  }\n}\n", "Missing condition"},
		{"loop without bound", "kernel \"k\" {\n  loop {\n    gate \"x\" { qubits = [0] }\n  }\n}\n", "Invalid loop"},
		{"negative wait", "kernel \"k\" {\n  wait { cycles = -1 }\n}\n", "Invalid wait"},
		{"qubits not numbers", "kernel \"k\" {\n  gate \"x\" { qubits = [\"a\"] }\n}\n", "Unsuitable value type"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewLoader().LoadBytes([]byte(tc.src), "test.hcl")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.want)
		})
	}
}

func TestLoader_Load_DuplicateKernelAcrossFiles(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	dir := testutil.WriteFiles(t, map[string]string{
		"a.hcl": `kernel "k" {}`,
		"b.hcl": `kernel "k" {}`,
	})
	_, err := NewLoader().Load(ctx, dir)
	assert.ErrorContains(t, err, `kernel "k" defined twice`)

	_, err = NewLoader().Load(ctx, dir+"/missing.hcl")
	assert.ErrorContains(t, err, "error accessing path")
}
