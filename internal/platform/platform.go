package platform

import (
	"errors"
	"fmt"
	"sort"

	"github.com/specialistvlad/qcsched/internal/ir"
)

// Instruction is the platform definition of a single instruction.
type Instruction struct {
	Name       string
	DurationNs int
	// OperandModes lists the access mode for each qubit operand, by
	// position. Missing entries default to ir.Write.
	OperandModes []ir.AccessMode
	Barrier      bool
}

// Platform is the format-agnostic platform model.
type Platform struct {
	Name         string
	Architecture string
	CycleTimeNs  int
	QubitCount   int
	Instructions map[string]*Instruction
	// Resources is the raw resource configuration, in either the flat or
	// the extended shape understood by registry.Manager.
	Resources map[string]any
}

// New returns an empty platform with initialized maps.
func New(name string) *Platform {
	return &Platform{
		Name:         name,
		CycleTimeNs:  1,
		Instructions: make(map[string]*Instruction),
	}
}

// AddInstruction registers an instruction definition, replacing any
// previous definition with the same name.
func (p *Platform) AddInstruction(in *Instruction) {
	if p.Instructions == nil {
		p.Instructions = make(map[string]*Instruction)
	}
	p.Instructions[in.Name] = in
}

// Validate checks the platform for internal consistency.
func (p *Platform) Validate() error {
	var errs []error
	if p.CycleTimeNs <= 0 {
		errs = append(errs, fmt.Errorf("cycle_time must be positive, got %d", p.CycleTimeNs))
	}
	if p.QubitCount < 0 {
		errs = append(errs, fmt.Errorf("qubit count must not be negative, got %d", p.QubitCount))
	}
	for _, name := range p.InstructionNames() {
		in := p.Instructions[name]
		if in.DurationNs < 0 {
			errs = append(errs, fmt.Errorf("instruction %q: duration must not be negative, got %d", name, in.DurationNs))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid platform %q: %w", p.Name, errors.Join(errs...))
	}
	return nil
}

// InstructionNames returns the defined instruction names in sorted order.
func (p *Platform) InstructionNames() []string {
	names := make([]string, 0, len(p.Instructions))
	for name := range p.Instructions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Cycles converts a duration in nanoseconds to whole cycles, rounding up.
func (p *Platform) Cycles(ns int) int {
	if ns <= 0 {
		return 0
	}
	ct := p.CycleTimeNs
	if ct <= 0 {
		ct = 1
	}
	return (ns + ct - 1) / ct
}

// Decorate fills in the platform-specific parts of a statement: its duration
// in cycles, the access mode of each qubit operand, and the barrier flag.
func (p *Platform) Decorate(s *ir.Statement) error {
	in, ok := p.Instructions[s.Name]
	if !ok {
		return fmt.Errorf("instruction %q is not defined by platform %q", s.Name, p.Name)
	}
	s.Duration = p.Cycles(in.DurationNs)
	s.Barrier = s.Barrier || in.Barrier

	qi := 0
	for i, op := range s.Operands {
		if op.Kind != ir.Qubit {
			continue
		}
		if p.QubitCount > 0 && (op.Index < 0 || op.Index >= p.QubitCount) {
			return fmt.Errorf("instruction %q: qubit %d out of range [0, %d)", s.Name, op.Index, p.QubitCount)
		}
		if qi < len(in.OperandModes) {
			s.Operands[i].Mode = in.OperandModes[qi]
		}
		qi++
	}
	return nil
}

// DecorateBlock decorates every statement of b and its nested blocks.
// Builtin statements keep their own duration unless the platform defines
// an instruction of the same name; structured statements take no time in
// their parent block.
func (p *Platform) DecorateBlock(b *ir.Block) error {
	var errs []error
	b.Walk(func(blk *ir.Block) {
		for i, s := range blk.Statements {
			if s.Structure != nil {
				s.Duration = 0
				s.Barrier = true
				continue
			}
			if _, defined := p.Instructions[s.Name]; !defined && s.IsBuiltin() {
				continue
			}
			if err := p.Decorate(s); err != nil {
				errs = append(errs, fmt.Errorf("block %q, statement %d: %w", blk.Name, i, err))
			}
		}
	})
	return errors.Join(errs...)
}
