package measure

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
const TypeName = "measure"

const docs = `Models measurement units (feedlines). Measurements on qubits that share a
unit may run concurrently only when they start in the same cycle; otherwise
they are serialized.

Configuration:
  units:      map of unit name to {qubits: [int...]}
  operations: instruction names treated as measurements (default [measure]).`

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the resource type with the factory.
func (m *Module) Register(f *registry.Factory) {
	f.Register(TypeName, docs, New)
}

// Unit is the configuration of one measurement unit.
type Unit struct {
	Qubits []int `yaml:"qubits"`
}

// Config is the configuration of the measure resource.
type Config struct {
	Units      map[string]Unit `yaml:"units"`
	Operations []string        `yaml:"operations"`
}

// Resource keeps the measurement windows of every unit. A window groups all
// measurements that started together.
type Resource struct {
	resource.Base
	ops     resource.OperationSet
	unitOf  map[int]string
	windows map[string]resource.Windows
}

// New constructs an uninitialized measure resource.
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
	if len(cfg.Units) == 0 {
		return &resource.ConfigError{Resource: r.Name(), Err: errors.New("at least one unit is required")}
	}
	if len(cfg.Operations) == 0 {
		cfg.Operations = []string{"measure"}
	}

	r.ops = resource.NewOperationSet(cfg.Operations)
	r.unitOf = make(map[int]string)
	r.windows = make(map[string]resource.Windows, len(cfg.Units))
	names := make([]string, 0, len(cfg.Units))
	for name := range cfg.Units {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, q := range cfg.Units[name].Qubits {
			if q < 0 {
				return &resource.ConfigError{Resource: r.Name(), Err: fmt.Errorf("unit %q: negative qubit %d", name, q)}
			}
			if prev, dup := r.unitOf[q]; dup {
				return &resource.ConfigError{Resource: r.Name(), Err: fmt.Errorf("qubit %d assigned to both %q and %q", q, prev, name)}
			}
			r.unitOf[q] = name
		}
		r.windows[name] = nil
	}
	return nil
}

func (r *Resource) units(stmt *ir.Statement) []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range stmt.Qubits() {
		if name, ok := r.unitOf[q]; ok && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

func (r *Resource) Gate(cycle int, stmt *ir.Statement, commit bool) (bool, error) {
	if err := r.Present(cycle, commit); err != nil {
		return false, err
	}
	if stmt.Duration == 0 || !r.ops.Match(stmt.Name) {
		return true, nil
	}
	end := cycle + stmt.Duration
	units := r.units(stmt)
	for _, name := range units {
		for _, w := range r.windows[name] {
			if w.Start != cycle && w.Overlaps(cycle, end) {
				return false, nil
			}
		}
	}
	if !commit {
		return true, nil
	}
	for _, name := range units {
		r.windows[name] = join(r.windows[name], cycle, end)
	}
	return true, nil
}

// join adds [start, end) to the window starting at start, or opens a new one.
func join(ws resource.Windows, start, end int) resource.Windows {
	for i := range ws {
		if ws[i].Start == start {
			ws[i].End = max(ws[i].End, end)
			return ws
		}
	}
	return append(ws, resource.Window{Start: start, End: end})
}

func (r *Resource) Clone() resource.Resource {
	c := &Resource{
		Base:    r.Base,
		ops:     r.ops,
		unitOf:  r.unitOf,
		windows: make(map[string]resource.Windows, len(r.windows)),
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
		fmt.Fprintf(w, "%s%s:\n", prefix, name)
		r.windows[name].Dump(w, prefix+"  ")
	}
}
