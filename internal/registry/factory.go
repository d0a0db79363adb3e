package registry

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sort"
	"strings"

	"github.com/specialistvlad/qcsched/internal/resource"
)

// Constructor creates an uninitialized resource for the given context.
type Constructor func(ctx *resource.Context) (resource.Resource, error)

// Registration holds the compiled Go parts of a resource type.
type Registration struct {
	TypeName string
	Docs     string
	New      Constructor
}

// Module is the interface that all resource providers must implement to be registered.
type Module interface {
	Register(f *Factory)
}

// Factory holds all registered resource types for a single application instance.
type Factory struct {
	types map[string]*Registration
}

// NewFactory creates a Factory and registers every given module.
func NewFactory(modules ...Module) *Factory {
	f := &Factory{types: make(map[string]*Registration)}
	for _, m := range modules {
		m.Register(f)
	}
	return f
}

// Register adds a resource type. Registering the same name twice is a
// programming error.
func (f *Factory) Register(typeName, docs string, ctor Constructor) {
	if _, exists := f.types[typeName]; exists {
		panic(fmt.Sprintf("resource type '%s' already registered", typeName))
	}
	slog.Debug("Registering resource type.", "type", typeName)
	f.types[typeName] = &Registration{TypeName: typeName, Docs: docs, New: ctor}
}

// Lookup returns the registration for a fully qualified type name.
func (f *Factory) Lookup(typeName string) (*Registration, bool) {
	reg, ok := f.types[typeName]
	return reg, ok
}

// TypeNames returns every registered type name in sorted order.
func (f *Factory) TypeNames() []string {
	names := make([]string, 0, len(f.types))
	for name := range f.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve maps the type name used in a configuration to a registration.
//
// Unqualified names are looked up as arch.<arch>.<type> before <type>. When
// the type is on the dnu allow-list, the dnu variants (arch.<arch>.dnu.<type>
// and dnu.<type>) take precedence. Qualified names are used as written, but a
// dnu type must still be on the allow-list.
func (f *Factory) Resolve(typeName, architecture string, dnu []string) (*Registration, error) {
	if strings.HasPrefix(typeName, "arch.") || strings.HasPrefix(typeName, "dnu.") {
		return f.resolveQualified(typeName, architecture, dnu)
	}

	var candidates []string
	isDNU := slices.Contains(dnu, typeName)
	if architecture != "" {
		if isDNU {
			candidates = append(candidates, "arch."+architecture+".dnu."+typeName)
		}
		candidates = append(candidates, "arch."+architecture+"."+typeName)
	}
	if isDNU {
		candidates = append(candidates, "dnu."+typeName)
	}
	candidates = append(candidates, typeName)

	for _, name := range candidates {
		if reg, ok := f.types[name]; ok {
			return reg, nil
		}
	}
	if !isDNU && f.hasDNUVariant(typeName, architecture) {
		return nil, fmt.Errorf("%w %q: only a do-not-use implementation exists; add %q to the dnu list to enable it", resource.ErrUnknownType, typeName, typeName)
	}
	return nil, fmt.Errorf("%w %q (tried %s)", resource.ErrUnknownType, typeName, strings.Join(candidates, ", "))
}

func (f *Factory) resolveQualified(typeName, architecture string, dnu []string) (*Registration, error) {
	rest := typeName
	if after, ok := strings.CutPrefix(rest, "arch."); ok {
		arch, inner, found := strings.Cut(after, ".")
		if !found || arch == "" || inner == "" {
			return nil, fmt.Errorf("%w %q: malformed architecture namespace", resource.ErrUnknownType, typeName)
		}
		if architecture != "" && arch != architecture {
			return nil, fmt.Errorf("resource type %q belongs to architecture %q, but the platform architecture is %q", typeName, arch, architecture)
		}
		rest = inner
	}
	if base, ok := strings.CutPrefix(rest, "dnu."); ok && !slices.Contains(dnu, base) {
		return nil, fmt.Errorf("resource type %q is do-not-use; add %q to the dnu list to enable it", typeName, base)
	}
	reg, ok := f.types[typeName]
	if !ok {
		return nil, fmt.Errorf("%w %q", resource.ErrUnknownType, typeName)
	}
	return reg, nil
}

func (f *Factory) hasDNUVariant(typeName, architecture string) bool {
	if _, ok := f.types["dnu."+typeName]; ok {
		return true
	}
	if architecture == "" {
		return false
	}
	_, ok := f.types["arch."+architecture+".dnu."+typeName]
	return ok
}

// DumpDocs writes the documentation of every registered type.
func (f *Factory) DumpDocs(w io.Writer) {
	for i, name := range f.TypeNames() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		reg := f.types[name]
		fmt.Fprintf(w, "%s\n", name)
		fmt.Fprintf(w, "%s\n", strings.Repeat("-", len(name)))
		for _, line := range strings.Split(strings.TrimSpace(reg.Docs), "\n") {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}
