package pass

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/specialistvlad/qcsched/internal/ddg"
)

// Target selects the scheduling direction.
type Target int

const (
	ASAP Target = iota
	ALAP
)

func (t Target) String() string {
	if t == ALAP {
		return "alap"
	}
	return "asap"
}

// ParseTarget accepts "asap" and "alap".
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asap":
		return ASAP, nil
	case "alap":
		return ALAP, nil
	default:
		return ASAP, fmt.Errorf("unknown scheduler target %q (want asap or alap)", s)
	}
}

// HeuristicKind selects the priority heuristic.
type HeuristicKind int

const (
	HeuristicNone HeuristicKind = iota
	HeuristicCriticalPath
	HeuristicDeepCriticality
)

func (h HeuristicKind) String() string {
	switch h {
	case HeuristicCriticalPath:
		return "critical_path"
	case HeuristicDeepCriticality:
		return "deep_criticality"
	default:
		return "none"
	}
}

// ParseHeuristic accepts "none", "critical_path" and "deep_criticality".
func ParseHeuristic(s string) (HeuristicKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "trivial":
		return HeuristicNone, nil
	case "critical_path":
		return HeuristicCriticalPath, nil
	case "deep_criticality":
		return HeuristicDeepCriticality, nil
	default:
		return HeuristicNone, fmt.Errorf("unknown scheduler heuristic %q (want none, critical_path or deep_criticality)", s)
	}
}

// DefaultMaxBlockCycles is the default deadlock bound.
const DefaultMaxBlockCycles = 10000

// Options configures a scheduling pass.
type Options struct {
	ResourceConstraints bool
	Target              Target
	Heuristic           HeuristicKind
	CommuteMultiQubit   bool
	CommuteSingleQubit  bool
	// MaxBlockCycles bounds the resource wait per statement; 0 disables it.
	MaxBlockCycles int
	WriteDOTGraphs bool
	OutputDir      string
	// Workers limits concurrently scheduled blocks.
	Workers int
	// Origin is the cycle of the first statement of every block.
	Origin int

	Commuter ddg.Commuter
	Latency  ddg.LatencyFunc
}

// DefaultOptions returns resource-constrained ASAP scheduling with the
// default deadlock bound.
func DefaultOptions() Options {
	return Options{
		ResourceConstraints: true,
		Target:              ASAP,
		Heuristic:           HeuristicNone,
		MaxBlockCycles:      DefaultMaxBlockCycles,
		OutputDir:           ".",
		Workers:             runtime.NumCPU(),
	}
}

// Validate checks the options for consistency.
func (o Options) Validate() error {
	var errs []error
	if o.MaxBlockCycles < 0 {
		errs = append(errs, fmt.Errorf("max block cycles must not be negative, got %d", o.MaxBlockCycles))
	}
	if o.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", o.Workers))
	}
	if o.WriteDOTGraphs && o.OutputDir == "" {
		errs = append(errs, errors.New("an output directory is required to write DOT graphs"))
	}
	return errors.Join(errs...)
}

func (o Options) graphOptions() ddg.Options {
	return ddg.Options{
		CommuteSingleQubit: o.CommuteSingleQubit,
		CommuteMultiQubit:  o.CommuteMultiQubit,
		Commuter:           o.Commuter,
		Latency:            o.Latency,
	}
}
