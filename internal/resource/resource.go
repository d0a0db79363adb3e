package resource

import (
	"fmt"
	"io"

	"github.com/specialistvlad/qcsched/internal/ir"
	"github.com/specialistvlad/qcsched/internal/platform"
)

// Direction is the monotonicity contract a resource enforces on the cycles
// presented to it.
type Direction int

const (
	Undefined Direction = iota
	Forward
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "undefined"
	}
}

// Context is the immutable identity of a resource instance.
type Context struct {
	TypeName     string
	InstanceName string
	Platform     *platform.Platform
	Config       Config
}

// Resource is a pluggable constraint checker.
type Resource interface {
	// Context returns the immutable identity of the resource.
	Context() *Context
	// Initialize parses the configuration and fixes the direction. It must
	// be called exactly once.
	Initialize(dir Direction) error
	// Gate reports whether stmt can be placed at cycle. With commit set and
	// a positive answer, the reservation is recorded.
	Gate(cycle int, stmt *ir.Statement, commit bool) (bool, error)
	// Clone returns an independent deep copy, including mutable state.
	Clone() Resource

	DumpDocs(w io.Writer)
	DumpConfig(w io.Writer, prefix string)
	DumpState(w io.Writer, prefix string)
}

// Base carries the bookkeeping shared by every resource: its context and the
// direction contract. Concrete resources embed it and call Present at the
// top of Gate with the commit flag they were given.
type Base struct {
	ctx         *Context
	direction   Direction
	initialized bool
	presented   bool
	last        int
}

// NewBase returns a Base for the given context.
func NewBase(ctx *Context) Base {
	return Base{ctx: ctx}
}

func (b *Base) Context() *Context {
	return b.ctx
}

// Name returns the instance name of the resource.
func (b *Base) Name() string {
	if b.ctx == nil {
		return ""
	}
	return b.ctx.InstanceName
}

// Direction returns the direction fixed by Initialize.
func (b *Base) Direction() Direction {
	return b.direction
}

// Forward reports whether the resource is scheduled in the forward direction.
// Undefined is treated as forward by resources that need a time arrow.
func (b *Base) Forward() bool {
	return b.direction != Backward
}

// InitDirection fixes the direction. It fails when called twice.
func (b *Base) InitDirection(dir Direction) error {
	if b.initialized {
		return fmt.Errorf("resource %q initialized twice", b.Name())
	}
	b.direction = dir
	b.initialized = true
	return nil
}

// Present validates a cycle against the direction contract. Only committed
// cycles are recorded, so a query leaves the resource untouched.
func (b *Base) Present(cycle int, commit bool) error {
	if !b.initialized {
		return fmt.Errorf("resource %q: %w", b.Name(), ErrNotInitialized)
	}
	if b.presented {
		switch {
		case b.direction == Forward && cycle < b.last,
			b.direction == Backward && cycle > b.last:
			return &DirectionError{Resource: b.Name(), Direction: b.direction, Last: b.last, Presented: cycle}
		}
	}
	if commit {
		b.presented = true
		b.last = cycle
	}
	return nil
}

// DumpConfig writes the resource identity and its raw configuration.
func (b *Base) DumpConfig(w io.Writer, prefix string) {
	if b.ctx == nil {
		return
	}
	fmt.Fprintf(w, "%sresource %s (type %s, direction %s)\n", prefix, b.ctx.InstanceName, b.ctx.TypeName, b.direction)
	b.ctx.Config.Dump(w, prefix+"  ")
}
