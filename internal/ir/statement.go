package ir

import (
	"fmt"
	"strings"
)

// Condition gates execution of a statement on the value of one or more bit
// registers. A nil Condition means "always".
type Condition struct {
	Bregs  []int
	Negate bool
}

func (c *Condition) String() string {
	if c == nil {
		return ""
	}
	parts := make([]string, len(c.Bregs))
	for i, b := range c.Bregs {
		parts[i] = fmt.Sprintf("b[%d]", b)
	}
	s := strings.Join(parts, "&")
	if c.Negate {
		return "!(" + s + ")"
	}
	return s
}

// Structure is implemented by control-flow constructs that own sub-blocks.
type Structure interface {
	SubBlocks() []*Block
	Kind() string
}

// Branch is a single conditional arm of an IfElse.
type Branch struct {
	Condition *Condition
	Body      *Block
}

// IfElse is an if / else-if / else chain.
type IfElse struct {
	Branches []Branch
	Else     *Block
}

func (s *IfElse) Kind() string { return "if" }

func (s *IfElse) SubBlocks() []*Block {
	blocks := make([]*Block, 0, len(s.Branches)+1)
	for _, b := range s.Branches {
		if b.Body != nil {
			blocks = append(blocks, b.Body)
		}
	}
	if s.Else != nil {
		blocks = append(blocks, s.Else)
	}
	return blocks
}

// Loop is a static (Count > 0) or dynamic (Condition != nil) loop.
type Loop struct {
	Count     int
	Condition *Condition
	Body      *Block
}

func (s *Loop) Kind() string { return "loop" }

func (s *Loop) SubBlocks() []*Block {
	if s.Body == nil {
		return nil
	}
	return []*Block{s.Body}
}

// Statement is one schedulable unit of a block.
type Statement struct {
	Name      string
	Operands  []Operand
	Condition *Condition
	// Duration is the platform-specific duration in cycles.
	Duration int
	// Barrier statements order every statement around them. A barrier
	// without operands acts on everything touched so far in its block.
	Barrier bool
	// Structure is non-nil for control-flow statements.
	Structure Structure

	// Cycle is assigned by the scheduler.
	Cycle int
}

// Qubits returns the qubit indices used by the statement, in operand order.
func (s *Statement) Qubits() []int {
	var qs []int
	for _, op := range s.Operands {
		if op.Kind == Qubit {
			qs = append(qs, op.Index)
		}
	}
	return qs
}

// IsStructured reports whether the statement owns sub-blocks.
func (s *Statement) IsStructured() bool {
	return s.Structure != nil
}

func (s *Statement) String() string {
	var sb strings.Builder
	if s.Condition != nil {
		sb.WriteString("cond(")
		sb.WriteString(s.Condition.String())
		sb.WriteString(") ")
	}
	if s.Structure != nil {
		sb.WriteString(s.Structure.Kind())
	} else {
		sb.WriteString(s.Name)
	}
	for i, op := range s.Operands {
		if i == 0 {
			sb.WriteRune(' ')
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(op.String())
	}
	return sb.String()
}

// Names of the builtin statements. They need no platform definition.
const (
	BarrierName = "barrier"
	WaitName    = "wait"
)

// NewBarrier returns a zero-duration barrier on ops. Without operands the
// barrier orders the whole block.
func NewBarrier(ops ...Operand) *Statement {
	return &Statement{Name: BarrierName, Operands: ops, Barrier: true}
}

// NewWait returns a barrier that lasts the given number of cycles.
func NewWait(cycles int, ops ...Operand) *Statement {
	return &Statement{Name: WaitName, Operands: ops, Barrier: true, Duration: cycles}
}

// IsBuiltin reports whether the statement is a barrier or wait created
// without a platform definition, or a structured statement.
func (s *Statement) IsBuiltin() bool {
	if s.Structure != nil {
		return true
	}
	return s.Barrier && (s.Name == BarrierName || s.Name == WaitName)
}
