package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/qcsched/internal/ctxlog"
	"github.com/specialistvlad/qcsched/internal/pass"
	"github.com/specialistvlad/qcsched/internal/report"
)

// Run schedules every block of the loaded program and writes the report.
func (a *App) Run(ctx context.Context) (*pass.Result, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	opts, err := a.config.PassOptions()
	if err != nil {
		return nil, err
	}
	res, err := pass.Run(ctx, a.program, a.model.Platform, a.factory, opts)
	if err != nil {
		return nil, fmt.Errorf("scheduling failed: %w", err)
	}
	if err := report.Render(a.outW, res); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return res, nil
}
