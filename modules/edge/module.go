package edge

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/specialistvlad/qcsched/internal/ir"
	"github.com/specialistvlad/qcsched/internal/registry"
	"github.com/specialistvlad/qcsched/internal/resource"
)

// TypeName is the configuration name of this resource.
const TypeName = "edge"

const docs = `Models crosstalk between qubit-coupling edges. A two-qubit statement uses
the edge between its qubits; it may not overlap in time with a statement on
any edge listed as conflicting. Conflicts are symmetric.

Configuration:
  edges:      map of edge name to {qubits: [a, b], conflicts: [edge names...]}
  operations: optional list of instruction names to constrain.`

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the resource type with the factory.
func (m *Module) Register(f *registry.Factory) {
	f.Register(TypeName, docs, New)
}

// Edge is the configuration of one coupling edge.
type Edge struct {
	Qubits    []int    `yaml:"qubits"`
	Conflicts []string `yaml:"conflicts"`
}

// Config is the configuration of the edge resource.
type Config struct {
	Edges      map[string]Edge `yaml:"edges"`
	Operations []string        `yaml:"operations"`
}

type pair struct{ a, b int }

func newPair(a, b int) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a, b}
}

// Resource keeps the reserved windows of every edge.
type Resource struct {
	resource.Base
	ops       resource.OperationSet
	byQubits  map[pair]string
	conflicts map[string][]string
	windows   map[string]resource.Windows
}

// New constructs an uninitialized edge resource.
func New(ctx *resource.Context) (resource.Resource, error) {
	return &Resource{Base: resource.NewBase(ctx)}, nil
}

func (r *Resource) Initialize(dir resource.Direction) error {
	if err := r.InitDirection(dir); err != nil {
		return err
	}
	var cfg Config
	if err := r.Context().Config.Decode(&cfg); err != nil {
		return &resource.ConfigError{Resource: r.Name(), Err: err}
	}
	if len(cfg.Edges) == 0 {
		return &resource.ConfigError{Resource: r.Name(), Err: errors.New("at least one edge is required")}
	}

	r.ops = resource.NewOperationSet(cfg.Operations)
	r.byQubits = make(map[pair]string, len(cfg.Edges))
	r.windows = make(map[string]resource.Windows, len(cfg.Edges))
	sets := make(map[string]map[string]bool, len(cfg.Edges))

	names := make([]string, 0, len(cfg.Edges))
	for name := range cfg.Edges {
		names = append(names, name)
		sets[name] = make(map[string]bool)
	}
	sort.Strings(names)
	for _, name := range names {
		e := cfg.Edges[name]
		if len(e.Qubits) != 2 || e.Qubits[0] == e.Qubits[1] {
			return &resource.ConfigError{Resource: r.Name(), Err: fmt.Errorf("edge %q: expected two distinct qubits, got %v", name, e.Qubits)}
		}
		p := newPair(e.Qubits[0], e.Qubits[1])
		if prev, dup := r.byQubits[p]; dup {
			return &resource.ConfigError{Resource: r.Name(), Err: fmt.Errorf("edges %q and %q connect the same qubits", prev, name)}
		}
		r.byQubits[p] = name
		for _, other := range e.Conflicts {
			if _, ok := cfg.Edges[other]; !ok {
				return &resource.ConfigError{Resource: r.Name(), Err: fmt.Errorf("edge %q: unknown conflicting edge %q", name, other)}
			}
			if other == name {
				continue
			}
			sets[name][other] = true
			sets[other][name] = true
		}
		r.windows[name] = nil
	}

	r.conflicts = make(map[string][]string, len(sets))
	for name, set := range sets {
		list := make([]string, 0, len(set))
		for other := range set {
			list = append(list, other)
		}
		sort.Strings(list)
		r.conflicts[name] = list
	}
	return nil
}

func (r *Resource) edgeOf(stmt *ir.Statement) (string, bool) {
	qubits := stmt.Qubits()
	if len(qubits) != 2 {
		return "", false
	}
	name, ok := r.byQubits[newPair(qubits[0], qubits[1])]
	return name, ok
}

func (r *Resource) Gate(cycle int, stmt *ir.Statement, commit bool) (bool, error) {
	if err := r.Present(cycle, commit); err != nil {
		return false, err
	}
	if stmt.Duration == 0 || !r.ops.Match(stmt.Name) {
		return true, nil
	}
	name, ok := r.edgeOf(stmt)
	if !ok {
		return true, nil
	}
	end := cycle + stmt.Duration
	for _, other := range r.conflicts[name] {
		if r.windows[other].ConflictsWith(cycle, end, "") {
			return false, nil
		}
	}
	if commit {
		r.windows[name] = append(r.windows[name], resource.Window{Start: cycle, End: end, Op: stmt.Name})
	}
	return true, nil
}

func (r *Resource) Clone() resource.Resource {
	c := &Resource{
		Base:      r.Base,
		ops:       r.ops,
		byQubits:  r.byQubits,
		conflicts: r.conflicts,
		windows:   make(map[string]resource.Windows, len(r.windows)),
	}
	for name, ws := range r.windows {
		c.windows[name] = ws.Clone()
	}
	return c
}

func (r *Resource) DumpDocs(w io.Writer) {
	fmt.Fprintln(w, docs)
}

func (r *Resource) DumpState(w io.Writer, prefix string) {
	names := make([]string, 0, len(r.windows))
	for name := range r.windows {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if len(r.windows[name]) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s%s:\n", prefix, name)
		r.windows[name].Dump(w, prefix+"  ")
	}
}
