package resource

import (
	"fmt"
	"io"

	"github.com/specialistvlad/qcsched/internal/ir"
)

// State is an ordered collection of initialized resources sharing one
// direction. An empty State places no constraints.
type State struct {
	direction Direction
	resources []Resource
	broken    bool
}

// NewState returns an empty State for the given direction.
func NewState(dir Direction) *State {
	return &State{direction: dir}
}

// Add appends an initialized resource.
func (s *State) Add(r Resource) {
	s.resources = append(s.resources, r)
}

// Direction returns the direction every resource in the State was
// initialized with.
func (s *State) Direction() Direction {
	return s.direction
}

// Resources returns the resources in insertion order.
func (s *State) Resources() []Resource {
	return s.resources
}

// Len returns the number of resources.
func (s *State) Len() int {
	return len(s.resources)
}

// IsBroken reports whether the State has been poisoned.
func (s *State) IsBroken() bool {
	return s.broken
}

// Available reports whether stmt can be placed at cycle on every resource.
// It stops at the first resource that refuses.
func (s *State) Available(cycle int, stmt *ir.Statement) (bool, error) {
	if s.broken {
		return false, ErrStateBroken
	}
	for _, r := range s.resources {
		ok, err := r.Gate(cycle, stmt, false)
		if err != nil {
			s.broken = true
			return false, fmt.Errorf("querying resource %q: %w", r.Context().InstanceName, err)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Reserve commits stmt at cycle on every resource. Any refusal at this
// point is unexpected and poisons the State.
func (s *State) Reserve(cycle int, stmt *ir.Statement) error {
	if s.broken {
		return ErrStateBroken
	}
	for _, r := range s.resources {
		name := r.Context().InstanceName
		ok, err := r.Gate(cycle, stmt, true)
		if err != nil {
			s.broken = true
			return fmt.Errorf("reserving %q at cycle %d on resource %q: %w", stmt, cycle, name, err)
		}
		if !ok {
			s.broken = true
			return fmt.Errorf("resource %q refused reservation of %q at cycle %d: %w", name, stmt, cycle, ErrStateBroken)
		}
	}
	return nil
}

// Clone returns a deep copy. The copy never aliases the original's mutable
// resource state.
func (s *State) Clone() *State {
	c := &State{
		direction: s.direction,
		broken:    s.broken,
		resources: make([]Resource, len(s.resources)),
	}
	for i, r := range s.resources {
		c.resources[i] = r.Clone()
	}
	return c
}

// Dump writes the configuration and state of every resource.
func (s *State) Dump(w io.Writer) {
	fmt.Fprintf(w, "resource state (%s, %d resources)", s.direction, len(s.resources))
	if s.broken {
		fmt.Fprint(w, " BROKEN")
	}
	fmt.Fprintln(w)
	for _, r := range s.resources {
		r.DumpConfig(w, "  ")
		r.DumpState(w, "    ")
	}
}
