package testutil

import (
	"github.com/specialistvlad/qcsched/internal/ir"
	"github.com/specialistvlad/qcsched/internal/platform"
)

// Gate returns an undecorated statement on the given qubits.
func Gate(name string, qubits ...int) *ir.Statement {
	s := &ir.Statement{Name: name}
	for _, q := range qubits {
		s.Operands = append(s.Operands, ir.Q(q))
	}
	return s
}

// Measure returns a measurement of qubit q into creg q.
func Measure(q int) *ir.Statement {
	return &ir.Statement{Name: "measure", Operands: []ir.Operand{ir.Q(q), ir.C(q)}}
}

// Platform returns a five-qubit platform with a 20ns cycle:
//
//	x, y  20ns   single-qubit
//	rz    20ns   single-qubit, Z-commuting
//	cz    40ns   two-qubit, Z-commuting on both qubits
//	measure 60ns
//
// and a flat resource configuration with only the qubit resource.
func Platform() *platform.Platform {
	p := platform.New("test")
	p.CycleTimeNs = 20
	p.QubitCount = 5
	p.AddInstruction(&platform.Instruction{Name: "x", DurationNs: 20})
	p.AddInstruction(&platform.Instruction{Name: "y", DurationNs: 20})
	p.AddInstruction(&platform.Instruction{Name: "rz", DurationNs: 20, OperandModes: []ir.AccessMode{ir.CommuteZ}})
	p.AddInstruction(&platform.Instruction{Name: "cz", DurationNs: 40, OperandModes: []ir.AccessMode{ir.CommuteZ, ir.CommuteZ}})
	p.AddInstruction(&platform.Instruction{Name: "measure", DurationNs: 60})
	p.Resources = map[string]any{"qubit": map[string]any{}}
	return p
}

// Cycles returns the scheduled cycle of every statement of b, in order.
func Cycles(b *ir.Block) []int {
	out := make([]int, len(b.Statements))
	for i, s := range b.Statements {
		out[i] = s.Cycle
	}
	return out
}
