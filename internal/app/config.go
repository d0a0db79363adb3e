package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/qcsched/internal/pass"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ProgramPaths are HCL files or directories holding kernels. They may
	// also hold the platform.
	ProgramPaths []string
	// PlatformPath is an optional .hcl, .yaml, .yml or .json platform file.
	PlatformPath string
	// ProgramName defaults to the base name of the first program path.
	ProgramName string

	Target              string
	Heuristic           string
	ResourceConstraints bool
	CommuteSingleQubit  bool
	CommuteMultiQubit   bool
	MaxBlockCycles      int
	Origin              int
	Workers             int
	WriteDOT            bool
	OutputDir           string

	LogFormat string
	LogLevel  string
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() Config {
	def := pass.DefaultOptions()
	return Config{
		Target:              def.Target.String(),
		Heuristic:           def.Heuristic.String(),
		ResourceConstraints: def.ResourceConstraints,
		MaxBlockCycles:      def.MaxBlockCycles,
		Workers:             def.Workers,
		OutputDir:           def.OutputDir,
		LogFormat:           "text",
		LogLevel:            "info",
	}
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.ProgramPaths) == 0 {
		return nil, errors.New("at least one program path is required")
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	opts, err := cfg.PassOptions()
	if err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// PassOptions translates the configuration into scheduling options.
func (c *Config) PassOptions() (pass.Options, error) {
	opts := pass.DefaultOptions()
	target, err := pass.ParseTarget(c.Target)
	if err != nil {
		return opts, err
	}
	heuristic, err := pass.ParseHeuristic(c.Heuristic)
	if err != nil {
		return opts, err
	}
	opts.Target = target
	opts.Heuristic = heuristic
	opts.ResourceConstraints = c.ResourceConstraints
	opts.CommuteSingleQubit = c.CommuteSingleQubit
	opts.CommuteMultiQubit = c.CommuteMultiQubit
	opts.MaxBlockCycles = c.MaxBlockCycles
	opts.Origin = c.Origin
	opts.Workers = c.Workers
	opts.WriteDOTGraphs = c.WriteDOT
	opts.OutputDir = c.OutputDir
	return opts, nil
}
