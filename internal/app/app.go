package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/qcsched/internal/config"
	"github.com/specialistvlad/qcsched/internal/ctxlog"
	"github.com/specialistvlad/qcsched/internal/ir"
	"github.com/specialistvlad/qcsched/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	factory *registry.Factory
	model   *config.Model
	program *ir.Program
}

// NewApp loads the platform and program described by cfg. The report is
// written to outW and logs to logW. Without modules every core resource
// type is available.
func NewApp(outW, logW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	factory := NewFactory(modules...)
	logger.Debug("Resource types registered.", "types", factory.TypeNames())

	model, err := load(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Configuration loaded and translated into unified model.",
		"platform", model.Platform.Name,
		"kernels", len(model.Kernels),
	)

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		factory: factory,
		model:   model,
		program: model.Program(programName(cfg)),
	}, nil
}

// Program returns the loaded program. This is primarily for testing.
func (a *App) Program() *ir.Program {
	return a.program
}

// Factory returns the resource factory. This is primarily for testing.
func (a *App) Factory() *registry.Factory {
	return a.factory
}
