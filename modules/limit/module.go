package limit

import (
	"errors"
	"fmt"
	"io"

	"github.com/specialistvlad/qcsched/internal/ir"
	"github.com/specialistvlad/qcsched/internal/registry"
	"github.com/specialistvlad/qcsched/internal/resource"
)

// TypeName is the fully qualified configuration name of this resource. It is
// a do-not-use type and must be listed in the dnu allow-list to be resolved.
const TypeName = "dnu.limit"

const docs = `Experimental. Caps the number of concurrently executing statements.

Configuration:
  max:        maximum number of overlapping statements (required, >= 0)
  operations: optional list of instruction names to count; all statements
              are counted when omitted.`

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the resource type with the factory.
func (m *Module) Register(f *registry.Factory) {
	f.Register(TypeName, docs, New)
}

// Config is the configuration of the limit resource.
type Config struct {
	Max        *int     `yaml:"max"`
	Operations []string `yaml:"operations"`
}

// Resource counts overlapping reservations.
type Resource struct {
	resource.Base
	max     int
	ops     resource.OperationSet
	windows resource.Windows
}

// New constructs an uninitialized limit resource.
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
	if cfg.Max == nil {
		return &resource.ConfigError{Resource: r.Name(), Err: errors.New("max is required")}
	}
	if *cfg.Max < 0 {
		return &resource.ConfigError{Resource: r.Name(), Err: fmt.Errorf("max must not be negative, got %d", *cfg.Max)}
	}
	r.max = *cfg.Max
	r.ops = resource.NewOperationSet(cfg.Operations)
	return nil
}

func (r *Resource) Gate(cycle int, stmt *ir.Statement, commit bool) (bool, error) {
	if err := r.Present(cycle, commit); err != nil {
		return false, err
	}
	if stmt.Duration == 0 || !r.ops.Match(stmt.Name) {
		return true, nil
	}
	end := cycle + stmt.Duration
	if r.windows.MaxConcurrency(cycle, end) >= r.max {
		return false, nil
	}
	if commit {
		r.windows = append(r.windows, resource.Window{Start: cycle, End: end, Op: stmt.Name})
	}
	return true, nil
}

func (r *Resource) Clone() resource.Resource {
	return &Resource{
		Base:    r.Base,
		max:     r.max,
		ops:     r.ops,
		windows: r.windows.Clone(),
	}
}

func (r *Resource) DumpDocs(w io.Writer) {
	fmt.Fprintln(w, docs)
}

func (r *Resource) DumpState(w io.Writer, prefix string) {
	fmt.Fprintf(w, "%smax %d, %d reservation(s)\n", prefix, r.max, len(r.windows))
	r.windows.Dump(w, prefix+"  ")
}
