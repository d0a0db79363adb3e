// Package jsoncfg loads platform definitions from OpenQL-style JSON files.
//
// The recognized keys are:
//
//	name                            platform name, defaults to the file name
//	eqasm_compiler | architecture   architecture name
//	hardware_settings.qubit_number  number of qubits
//	hardware_settings.cycle_time    cycle time in nanoseconds
//	instructions.<name>.duration    duration in nanoseconds
//	instructions.<name>.prototype   operand prototypes such as "Z:qubit"
//	instructions.<name>.barrier     barrier flag
//	resources                       resource configuration
//
// Instruction keys may carry a specialization ("cz q0,q1"); only the name
// up to the first space is used, and a generic definition wins over a
// specialized one.
package jsoncfg

import (
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
	"github.com/tidwall/gjson"
)

// Loader reads a platform from JSON.
type Loader struct{}

// NewLoader creates a new JSON platform loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load reads exactly one JSON platform file.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	if len(paths) != 1 {
		return nil, fmt.Errorf("json loader expects exactly one platform file, got %d", len(paths))
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
	ctxlog.FromContext(ctx).Debug("Loaded JSON platform.", "name", p.Name, "instructions", len(p.Instructions))
	return &config.Model{Platform: p}, nil
}

// Decode parses a JSON platform document.
func Decode(data []byte, defaultName string) (*platform.Platform, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid json")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, errors.New("platform document must be a json object")
	}

	name := doc.Get("name").String()
	if name == "" {
		name = defaultName
	}
	p := platform.New(name)
	p.Architecture = doc.Get("architecture").String()
	if p.Architecture == "" {
		p.Architecture = doc.Get("eqasm_compiler").String()
	}
	p.QubitCount = int(doc.Get("hardware_settings.qubit_number").Int())
	if ct := doc.Get("hardware_settings.cycle_time"); ct.Exists() {
		p.CycleTimeNs = int(ct.Int())
	}

	var errs []error
	specialized := make(map[string]bool)
	doc.Get("instructions").ForEach(func(key, value gjson.Result) bool {
		full := strings.TrimSpace(key.String())
		base, _, isSpecialized := strings.Cut(full, " ")
		if _, seen := p.Instructions[base]; seen && (isSpecialized || !specialized[base]) {
			return true
		}
		instr, err := decodeInstruction(base, value)
		if err != nil {
			errs = append(errs, fmt.Errorf("instruction %q: %w", full, err))
			return true
		}
		specialized[base] = isSpecialized
		p.AddInstruction(instr)
		return true
	})
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if res := doc.Get("resources"); res.Exists() {
		m, ok := res.Value().(map[string]any)
		if !ok {
			return nil, fmt.Errorf("resources must be an object, got %s", res.Type)
		}
		p.Resources = m
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func decodeInstruction(name string, v gjson.Result) (*platform.Instruction, error) {
	if !v.IsObject() {
		return nil, errors.New("definition must be an object")
	}
	instr := &platform.Instruction{
		Name:       name,
		DurationNs: int(v.Get("duration").Int()),
		Barrier:    v.Get("barrier").Bool(),
	}

	var err error
	v.Get("prototype").ForEach(func(_, proto gjson.Result) bool {
		mode, kind, _ := strings.Cut(proto.String(), ":")
		if kind != "" && kind != "qubit" {
			return true
		}
		var m ir.AccessMode
		if m, err = ir.ParseAccessMode(mode); err != nil {
			return false
		}
		instr.OperandModes = append(instr.OperandModes, m)
		return true
	})
	return instr, err
}
