package channel

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
const TypeName = "channel"

const docs = `Models shared control instruments (for example AWG channels). Each
instrument drives a set of qubits; statements on qubits of the same
instrument may only overlap in time when they are the same operation.

Configuration:
  instruments: map of instrument name to {qubits: [int...]}
  operations:  optional list of instruction names to constrain; all
               statements are constrained when omitted.`

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the resource type with the factory.
func (m *Module) Register(f *registry.Factory) {
	f.Register(TypeName, docs, New)
}

// Instrument is the configuration of a single control instrument.
type Instrument struct {
	Qubits []int `yaml:"qubits"`
}

// Config is the configuration of the channel resource.
type Config struct {
	Instruments map[string]Instrument `yaml:"instruments"`
	Operations  []string              `yaml:"operations"`
}

// Resource keeps the reserved windows of every instrument.
type Resource struct {
	resource.Base
	ops     resource.OperationSet
	owner   map[int]string
	windows map[string]resource.Windows
}

// New constructs an uninitialized channel resource.
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
	if len(cfg.Instruments) == 0 {
		return &resource.ConfigError{Resource: r.Name(), Err: errors.New("at least one instrument is required")}
	}

	r.ops = resource.NewOperationSet(cfg.Operations)
	r.owner = make(map[int]string)
	r.windows = make(map[string]resource.Windows, len(cfg.Instruments))

	names := make([]string, 0, len(cfg.Instruments))
	for name := range cfg.Instruments {
		names = append(names, name)
	}
	sort.Strings(names)
	qubitCount := 0
	if p := r.Context().Platform; p != nil {
		qubitCount = p.QubitCount
	}
	for _, name := range names {
		for _, q := range cfg.Instruments[name].Qubits {
			if q < 0 || (qubitCount > 0 && q >= qubitCount) {
				return &resource.ConfigError{Resource: r.Name(), Err: fmt.Errorf("instrument %q: qubit %d out of range", name, q)}
			}
			if prev, dup := r.owner[q]; dup {
				return &resource.ConfigError{Resource: r.Name(), Err: fmt.Errorf("qubit %d assigned to both %q and %q", q, prev, name)}
			}
			r.owner[q] = name
		}
		r.windows[name] = nil
	}
	return nil
}

func (r *Resource) instruments(stmt *ir.Statement) []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range stmt.Qubits() {
		if name, ok := r.owner[q]; ok && !seen[name] {
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
	instruments := r.instruments(stmt)
	for _, name := range instruments {
		if r.windows[name].ConflictsWith(cycle, end, stmt.Name) {
			return false, nil
		}
	}
	if commit {
		for _, name := range instruments {
			r.windows[name] = append(r.windows[name], resource.Window{Start: cycle, End: end, Op: stmt.Name})
		}
	}
	return true, nil
}

func (r *Resource) Clone() resource.Resource {
	c := &Resource{
		Base:    r.Base,
		ops:     r.ops,
		owner:   r.owner,
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
