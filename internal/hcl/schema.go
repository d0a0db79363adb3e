package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// fileSchema lists the top-level blocks allowed in a file.
var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "platform", LabelNames: []string{"name"}},
		{Type: "kernel", LabelNames: []string{"name"}},
	},
}

// statementBlocks are the statement kinds allowed in any statement body.
var statementBlocks = []hcl.BlockHeaderSchema{
	{Type: "gate", LabelNames: []string{"name"}},
	{Type: "barrier"},
	{Type: "wait"},
	{Type: "if"},
	{Type: "loop"},
}

var conditionAttributes = []hcl.AttributeSchema{
	{Name: "condition"},
	{Name: "negate"},
}

// platformBody is the body of a platform block. The name comes from the
// block label.
type platformBody struct {
	Architecture string              `hcl:"architecture,optional"`
	CycleTime    *int                `hcl:"cycle_time,optional"`
	Qubits       int                 `hcl:"qubits,optional"`
	Resources    hcl.Expression      `hcl:"resources,optional"`
	Instructions []*instructionBlock `hcl:"instruction,block"`
}

type instructionBlock struct {
	Name         string   `hcl:"name,label"`
	Duration     int      `hcl:"duration"`
	OperandModes []string `hcl:"operand_modes,optional"`
	Barrier      bool     `hcl:"barrier,optional"`
}

type gateBody struct {
	Qubits    []int `hcl:"qubits,optional"`
	Cregs     []int `hcl:"cregs,optional"`
	ReadCregs []int `hcl:"read_cregs,optional"`
	Bregs     []int `hcl:"bregs,optional"`
	Condition []int `hcl:"condition,optional"`
	Negate    bool  `hcl:"negate,optional"`
}

type barrierBody struct {
	Qubits []int `hcl:"qubits,optional"`
	Cregs  []int `hcl:"cregs,optional"`
}

type waitBody struct {
	Cycles int   `hcl:"cycles"`
	Qubits []int `hcl:"qubits,optional"`
}
