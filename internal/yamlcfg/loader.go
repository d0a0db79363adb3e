// Package yamlcfg loads platform definitions from YAML files.
//
//	name: cc_light
//	architecture: cc
//	cycle_time: 20
//	qubits: 7
//	instructions:
//	  cz: {duration: 40, operand_modes: [Z, Z]}
//	resources:
//	  qubit: {}
package yamlcfg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/qcsched/internal/config"
	"github.com/specialistvlad/qcsched/internal/ctxlog"
	"github.com/specialistvlad/qcsched/internal/ir"
	"github.com/specialistvlad/qcsched/internal/platform"
	"gopkg.in/yaml.v3"
)

type platformFile struct {
	Name         string                     `yaml:"name"`
	Architecture string                     `yaml:"architecture"`
	CycleTime    *int                       `yaml:"cycle_time"`
	Qubits       int                        `yaml:"qubits"`
	Instructions map[string]instructionFile `yaml:"instructions"`
	Resources    map[string]any             `yaml:"resources"`
}

type instructionFile struct {
	Duration     int      `yaml:"duration"`
	OperandModes []string `yaml:"operand_modes"`
	Barrier      bool     `yaml:"barrier"`
}

// Loader reads a platform from YAML.
type Loader struct{}

// NewLoader creates a new YAML platform loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load reads exactly one YAML platform file.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	if len(paths) != 1 {
		return nil, fmt.Errorf("yaml loader expects exactly one platform file, got %d", len(paths))
	}
	data, err := os.ReadFile(paths[0])
	if err != nil {
		return nil, fmt.Errorf("reading platform file: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(paths[0]), filepath.Ext(paths[0]))
	p, err := Decode(data, name)
	if err != nil {
		return nil, fmt.Errorf("platform file %s: %w", paths[0], err)
	}
	ctxlog.FromContext(ctx).Debug("Loaded YAML platform.", "name", p.Name, "instructions", len(p.Instructions))
	return &config.Model{Platform: p}, nil
}

// Decode parses a YAML platform document. Unknown keys are rejected.
// defaultName is used when the document has no name.
func Decode(data []byte, defaultName string) (*platform.Platform, error) {
	var f platformFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}

	name := f.Name
	if name == "" {
		name = defaultName
	}
	p := platform.New(name)
	p.Architecture = f.Architecture
	p.QubitCount = f.Qubits
	if f.CycleTime != nil {
		p.CycleTimeNs = *f.CycleTime
	}
	p.Resources = f.Resources

	var errs []error
	for in, def := range f.Instructions {
		instr := &platform.Instruction{Name: in, DurationNs: def.Duration, Barrier: def.Barrier}
		for _, m := range def.OperandModes {
			mode, err := ir.ParseAccessMode(m)
			if err != nil {
				errs = append(errs, fmt.Errorf("instruction %q: %w", in, err))
				continue
			}
			instr.OperandModes = append(instr.OperandModes, mode)
		}
		p.AddInstruction(instr)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
