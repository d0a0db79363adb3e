package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/specialistvlad/qcsched/internal/ctxlog"
	"github.com/specialistvlad/qcsched/internal/platform"
	"github.com/specialistvlad/qcsched/internal/resource"
)

// Spec describes a single resource instance to build.
type Spec struct {
	Name   string
	Type   string
	Config resource.Config
}

// Manager turns resource configuration into a resource.State.
type Manager struct {
	factory      *Factory
	platform     *platform.Platform
	architecture string
	dnu          []string
	specs        []Spec
}

// NewManager returns an empty Manager. The architecture defaults to the
// platform's.
func NewManager(f *Factory, p *platform.Platform) *Manager {
	m := &Manager{factory: f, platform: p}
	if p != nil {
		m.architecture = p.Architecture
	}
	return m
}

// Architecture returns the architecture used for type resolution.
func (m *Manager) Architecture() string {
	return m.architecture
}

// DNU returns the do-not-use allow-list.
func (m *Manager) DNU() []string {
	return m.dnu
}

// Specs returns the resource instances in build order.
func (m *Manager) Specs() []Spec {
	return m.specs
}

// Add appends a resource instance. Instance names must be unique.
func (m *Manager) Add(spec Spec) error {
	if spec.Name == "" {
		return errors.New("resource instance name must not be empty")
	}
	if spec.Type == "" {
		return fmt.Errorf("resource %q: type must not be empty", spec.Name)
	}
	for _, s := range m.specs {
		if s.Name == spec.Name {
			return fmt.Errorf("duplicate resource instance name %q", spec.Name)
		}
	}
	m.specs = append(m.specs, spec)
	return nil
}

// Load parses a configuration in either supported shape.
//
// The flat shape maps type names directly to their configuration:
//
//	{"qubit": {}, "channel": {...}}
//
// The extended shape names the architecture, the do-not-use allow-list and
// uniquely named instances:
//
//	{"architecture": "cc", "dnu": ["limit"],
//	 "resources": {"q": {"type": "qubit", "config": {}}}}
func (m *Manager) Load(cfg map[string]any) error {
	if raw, ok := cfg["resources"]; ok {
		if _, isMap := raw.(map[string]any); isMap {
			return m.loadExtended(cfg)
		}
	}
	return m.loadFlat(cfg)
}

func (m *Manager) loadFlat(cfg map[string]any) error {
	for _, name := range sortedKeys(cfg) {
		if err := m.Add(Spec{Name: name, Type: name, Config: resource.NewConfig(cfg[name])}); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) loadExtended(cfg map[string]any) error {
	for _, key := range sortedKeys(cfg) {
		switch key {
		case "architecture":
			arch, ok := cfg[key].(string)
			if !ok {
				return fmt.Errorf("resource configuration: 'architecture' must be a string, got %T", cfg[key])
			}
			if arch != "" {
				m.architecture = arch
			}
		case "dnu":
			list, err := stringList(cfg[key])
			if err != nil {
				return fmt.Errorf("resource configuration: 'dnu': %w", err)
			}
			m.dnu = list
		case "resources":
		default:
			return fmt.Errorf("resource configuration: unexpected key %q", key)
		}
	}

	resources := cfg["resources"].(map[string]any)
	for _, name := range sortedKeys(resources) {
		entry, ok := resources[name].(map[string]any)
		if !ok {
			return fmt.Errorf("resource %q: expected an object with 'type' and 'config', got %T", name, resources[name])
		}
		spec := Spec{Name: name}
		for _, key := range sortedKeys(entry) {
			switch key {
			case "type":
				t, ok := entry[key].(string)
				if !ok {
					return fmt.Errorf("resource %q: 'type' must be a string, got %T", name, entry[key])
				}
				spec.Type = t
			case "config":
				spec.Config = resource.NewConfig(entry[key])
			default:
				return fmt.Errorf("resource %q: unexpected key %q", name, key)
			}
		}
		if err := m.Add(spec); err != nil {
			return err
		}
	}
	return nil
}

// Build constructs every configured resource and initializes it with dir.
func (m *Manager) Build(ctx context.Context, dir resource.Direction) (*resource.State, error) {
	logger := ctxlog.FromContext(ctx)
	state := resource.NewState(dir)

	for _, spec := range m.specs {
		reg, err := m.factory.Resolve(spec.Type, m.architecture, m.dnu)
		if err != nil {
			return nil, fmt.Errorf("resource %q: %w", spec.Name, err)
		}
		rctx := &resource.Context{
			TypeName:     reg.TypeName,
			InstanceName: spec.Name,
			Platform:     m.platform,
			Config:       spec.Config,
		}
		r, err := reg.New(rctx)
		if err != nil {
			return nil, fmt.Errorf("constructing resource %q: %w", spec.Name, err)
		}
		if err := r.Initialize(dir); err != nil {
			return nil, fmt.Errorf("initializing resource %q: %w", spec.Name, err)
		}
		logger.Debug("Resource built.", "name", spec.Name, "type", reg.TypeName, "direction", dir.String())
		state.Add(r)
	}

	logger.Debug("Resource state built.", "resources", state.Len(), "architecture", m.architecture)
	return state, nil
}

// BuildState is a convenience wrapper that loads the platform's resource
// configuration and builds a State for dir.
func BuildState(ctx context.Context, f *Factory, p *platform.Platform, dir resource.Direction) (*resource.State, error) {
	m := NewManager(f, p)
	if p != nil && len(p.Resources) > 0 {
		if err := m.Load(p.Resources); err != nil {
			return nil, err
		}
	}
	return m.Build(ctx, dir)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func stringList(v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return t, nil
	case []any:
		out := make([]string, 0, len(t))
		for i, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("element %d must be a string, got %T", i, e)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a list of strings, got %T", v)
	}
}
