package qubit

import (
	"fmt"
	"io"
	"sort"

	"github.com/specialistvlad/qcsched/internal/ir"
	"github.com/specialistvlad/qcsched/internal/registry"
	"github.com/specialistvlad/qcsched/internal/resource"
)

// TypeName is the configuration name of this resource.
const TypeName = "qubit"

const docs = `Models every qubit as a resource that is used by at most one statement at
a time. A statement occupies its qubits for its full duration. Takes no
configuration.`

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the resource type with the factory.
func (m *Module) Register(f *registry.Factory) {
	f.Register(TypeName, docs, New)
}

// Config is the (empty) configuration of the qubit resource.
type Config struct{}

// Resource tracks, per qubit, the cycle bound of the statements reserved so
// far. Forward it is the cycle the qubit becomes free; backward it is the
// earliest cycle any reserved statement starts.
type Resource struct {
	resource.Base
	bound map[int]int
}

// New constructs an uninitialized qubit resource.
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
	r.bound = make(map[int]int)
	return nil
}

func (r *Resource) Gate(cycle int, stmt *ir.Statement, commit bool) (bool, error) {
	if err := r.Present(cycle, commit); err != nil {
		return false, err
	}
	qubits := stmt.Qubits()
	for _, q := range qubits {
		b, busy := r.bound[q]
		if !busy {
			continue
		}
		if r.Forward() && cycle < b {
			return false, nil
		}
		if !r.Forward() && cycle+stmt.Duration > b {
			return false, nil
		}
	}
	if !commit {
		return true, nil
	}
	for _, q := range qubits {
		if r.Forward() {
			r.bound[q] = cycle + stmt.Duration
		} else {
			r.bound[q] = cycle
		}
	}
	return true, nil
}

func (r *Resource) Clone() resource.Resource {
	c := &Resource{Base: r.Base, bound: make(map[int]int, len(r.bound))}
	for q, b := range r.bound {
		c.bound[q] = b
	}
	return c
}

func (r *Resource) DumpDocs(w io.Writer) {
	fmt.Fprintln(w, docs)
}

func (r *Resource) DumpState(w io.Writer, prefix string) {
	label := "free from"
	if !r.Forward() {
		label = "busy from"
	}
	qubits := make([]int, 0, len(r.bound))
	for q := range r.bound {
		qubits = append(qubits, q)
	}
	sort.Ints(qubits)
	for _, q := range qubits {
		fmt.Fprintf(w, "%sq%d: %s cycle %d\n", prefix, q, label, r.bound[q])
	}
}
