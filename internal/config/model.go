package config

import (
	"context"
	"fmt"

	"github.com/specialistvlad/qcsched/internal/ir"
	"github.com/specialistvlad/qcsched/internal/platform"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given files or directories and
	// translates it into the format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// Model is the unified, format-agnostic representation of everything the
// scheduler needs: the platform and the kernels of one program.
type Model struct {
	Platform *platform.Platform
	Kernels  []*ir.Block
}

// Merge folds other into m. At most one of them may define a platform, and
// kernel names must stay unique.
func (m *Model) Merge(other *Model) error {
	if other == nil {
		return nil
	}
	if other.Platform != nil {
		if m.Platform != nil {
			return fmt.Errorf("platform defined twice: %q and %q", m.Platform.Name, other.Platform.Name)
		}
		m.Platform = other.Platform
	}
	seen := make(map[string]bool, len(m.Kernels))
	for _, k := range m.Kernels {
		seen[k.Name] = true
	}
	for _, k := range other.Kernels {
		if seen[k.Name] {
			return fmt.Errorf("kernel %q defined twice", k.Name)
		}
		seen[k.Name] = true
		m.Kernels = append(m.Kernels, k)
	}
	return nil
}

// Program returns the kernels as a named program.
func (m *Model) Program(name string) *ir.Program {
	return &ir.Program{Name: name, Kernels: m.Kernels}
}
