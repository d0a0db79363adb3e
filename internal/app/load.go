package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/qcsched/internal/config"
	"github.com/specialistvlad/qcsched/internal/ctxlog"
	"github.com/specialistvlad/qcsched/internal/hcl"
	"github.com/specialistvlad/qcsched/internal/jsoncfg"
	"github.com/specialistvlad/qcsched/internal/yamlcfg"
)

// loaderFor picks the platform loader by file extension.
func loaderFor(path string) (config.Loader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case hcl.Extension:
		return hcl.NewLoader(), nil
	case ".yaml", ".yml":
		return yamlcfg.NewLoader(), nil
	case ".json":
		return jsoncfg.NewLoader(), nil
	default:
		return nil, fmt.Errorf("unsupported platform file %q: expected .hcl, .yaml, .yml or .json", path)
	}
}

// load reads the program files and the optional platform file into one
// model. Exactly one platform must be defined across all of them.
func load(ctx context.Context, cfg *Config) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	model, err := hcl.NewLoader().Load(ctx, cfg.ProgramPaths...)
	if err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}
	logger.Debug("Program files loaded.", "kernels", len(model.Kernels))

	if cfg.PlatformPath != "" {
		loader, err := loaderFor(cfg.PlatformPath)
		if err != nil {
			return nil, err
		}
		pm, err := loader.Load(ctx, cfg.PlatformPath)
		if err != nil {
			return nil, fmt.Errorf("loading platform: %w", err)
		}
		if err := model.Merge(pm); err != nil {
			return nil, err
		}
	}

	if model.Platform == nil {
		return nil, errors.New("no platform defined: pass a platform file or add a platform block to the program")
	}
	if len(model.Kernels) == 0 {
		logger.Warn("Program defines no kernels.")
	}
	return model, nil
}

func programName(cfg *Config) string {
	if cfg.ProgramName != "" {
		return cfg.ProgramName
	}
	base := filepath.Base(filepath.Clean(cfg.ProgramPaths[0]))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
