package platform

import (
	"testing"

	"github.com/specialistvlad/qcsched/internal/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlatform() *Platform {
	p := New("p")
	p.CycleTimeNs = 20
	p.QubitCount = 2
	p.AddInstruction(&Instruction{Name: "x", DurationNs: 30})
	p.AddInstruction(&Instruction{Name: "cz", DurationNs: 40, OperandModes: []ir.AccessMode{ir.CommuteZ}})
	p.AddInstruction(&Instruction{Name: "fence", Barrier: true})
	return p
}

func TestPlatform_Cycles(t *testing.T) {
	t.Parallel()

	p := testPlatform()
	assert.Equal(t, 0, p.Cycles(0))
	assert.Equal(t, 0, p.Cycles(-5))
	assert.Equal(t, 1, p.Cycles(1))
	assert.Equal(t, 1, p.Cycles(20))
	assert.Equal(t, 2, p.Cycles(21))

	p.CycleTimeNs = 0
	assert.Equal(t, 21, p.Cycles(21))
}

func TestPlatform_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, testPlatform().Validate())

	p := testPlatform()
	p.CycleTimeNs = 0
	p.QubitCount = -1
	p.AddInstruction(&Instruction{Name: "y", DurationNs: -1})
	err := p.Validate()
	assert.ErrorContains(t, err, `invalid platform "p"`)
	assert.ErrorContains(t, err, "cycle_time must be positive")
	assert.ErrorContains(t, err, "qubit count must not be negative")
	assert.ErrorContains(t, err, `instruction "y": duration must not be negative`)

	assert.Equal(t, []string{"cz", "fence", "x", "y"}, p.InstructionNames())
}

func TestPlatform_Decorate(t *testing.T) {
	t.Parallel()
	p := testPlatform()

	cz := &ir.Statement{Name: "cz", Operands: []ir.Operand{ir.Q(0), ir.C(0), ir.Q(1)}}
	require.NoError(t, p.Decorate(cz))
	assert.Equal(t, 2, cz.Duration)
	assert.Equal(t, ir.CommuteZ, cz.Operands[0].Mode)
	assert.Equal(t, ir.Write, cz.Operands[1].Mode)
	assert.Equal(t, ir.Write, cz.Operands[2].Mode, "missing modes default to write")

	fence := &ir.Statement{Name: "fence"}
	require.NoError(t, p.Decorate(fence))
	assert.True(t, fence.Barrier)
	assert.Equal(t, 0, fence.Duration)

	assert.ErrorContains(t, p.Decorate(&ir.Statement{Name: "swap"}), `instruction "swap" is not defined by platform "p"`)
	assert.ErrorContains(t, p.Decorate(&ir.Statement{Name: "x", Operands: []ir.Operand{ir.Q(2)}}), "qubit 2 out of range [0, 2)")
}

func TestPlatform_DecorateBlock(t *testing.T) {
	t.Parallel()
	p := testPlatform()

	then := ir.NewBlock("k.then").Add(
		&ir.Statement{Name: "x", Operands: []ir.Operand{ir.Q(0)}},
		&ir.Statement{Name: "swap"},
	)
	ifelse := &ir.Statement{Name: "if", Duration: 7, Structure: &ir.IfElse{
		Branches: []ir.Branch{{Condition: &ir.Condition{Bregs: []int{0}}, Body: then}},
	}}
	k := ir.NewBlock("k").Add(
		ir.NewWait(3),
		ir.NewBarrier(),
		ifelse,
		&ir.Statement{Name: "bogus"},
	)

	err := p.DecorateBlock(k)
	assert.ErrorContains(t, err, `block "k", statement 3: instruction "bogus"`)
	assert.ErrorContains(t, err, `block "k.then", statement 1: instruction "swap"`)

	assert.Equal(t, 3, k.Statements[0].Duration, "undefined builtins keep their duration")
	assert.Equal(t, 0, ifelse.Duration)
	assert.True(t, ifelse.Barrier)
	assert.Equal(t, 2, then.Statements[0].Duration)

	p.AddInstruction(&Instruction{Name: ir.WaitName, DurationNs: 100})
	w := ir.NewWait(3)
	require.NoError(t, p.DecorateBlock(ir.NewBlock("w").Add(w)))
	assert.Equal(t, 5, w.Duration, "a platform definition overrides the builtin")
}
