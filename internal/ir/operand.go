package ir

import (
	"fmt"
	"strings"
)

// OperandKind identifies the register file an operand refers to.
type OperandKind int

const (
	Qubit OperandKind = iota
	Creg
	Breg
	// Ordering is the catch-all operand used for effects that cannot be
	// pinned to a specific register, such as barriers.
	Ordering
)

func (k OperandKind) String() string {
	switch k {
	case Qubit:
		return "q"
	case Creg:
		return "c"
	case Breg:
		return "b"
	case Ordering:
		return "order"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// AccessMode describes how a statement touches an operand.
type AccessMode int

const (
	Write AccessMode = iota
	Read
	CommuteX
	CommuteY
	CommuteZ
)

func (m AccessMode) String() string {
	switch m {
	case Write:
		return "W"
	case Read:
		return "R"
	case CommuteX:
		return "X"
	case CommuteY:
		return "Y"
	case CommuteZ:
		return "Z"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// IsCommuting reports whether the mode is one of the Pauli commutation modes.
func (m AccessMode) IsCommuting() bool {
	return m == CommuteX || m == CommuteY || m == CommuteZ
}

// ParseAccessMode accepts the single letter forms used in platform files
// ("W", "R", "X", "Y", "Z"), case-insensitively.
func ParseAccessMode(s string) (AccessMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "W", "WRITE":
		return Write, nil
	case "R", "READ":
		return Read, nil
	case "X":
		return CommuteX, nil
	case "Y":
		return CommuteY, nil
	case "Z":
		return CommuteZ, nil
	default:
		return Write, fmt.Errorf("unknown operand access mode %q", s)
	}
}

// Ref identifies a single register, independent of how it is accessed.
type Ref struct {
	Kind  OperandKind
	Index int
}

func (r Ref) String() string {
	if r.Kind == Ordering {
		return r.Kind.String()
	}
	return fmt.Sprintf("%s[%d]", r.Kind, r.Index)
}

// Operand is a register reference together with its access mode.
type Operand struct {
	Ref
	Mode AccessMode
}

// Q returns a qubit operand accessed in Write mode.
func Q(index int) Operand {
	return Operand{Ref: Ref{Kind: Qubit, Index: index}, Mode: Write}
}

// C returns a classical register operand accessed in Write mode.
func C(index int) Operand {
	return Operand{Ref: Ref{Kind: Creg, Index: index}, Mode: Write}
}

// B returns a bit register operand accessed in Write mode.
func B(index int) Operand {
	return Operand{Ref: Ref{Kind: Breg, Index: index}, Mode: Write}
}

// With returns a copy of the operand accessed in the given mode.
func (o Operand) With(mode AccessMode) Operand {
	o.Mode = mode
	return o
}

func (o Operand) String() string {
	if o.Mode == Write {
		return o.Ref.String()
	}
	return o.Ref.String() + ":" + o.Mode.String()
}
