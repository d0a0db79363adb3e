package pass

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/qcsched/internal/ctxlog"
	"github.com/specialistvlad/qcsched/internal/ddg"
	"github.com/specialistvlad/qcsched/internal/ir"
	"github.com/specialistvlad/qcsched/internal/platform"
	"github.com/specialistvlad/qcsched/internal/registry"
	"github.com/specialistvlad/qcsched/internal/resource"
	"github.com/specialistvlad/qcsched/internal/schedule"
	"golang.org/x/sync/errgroup"
)

// BlockResult summarizes one scheduled block.
type BlockResult struct {
	Block *ir.Block
	// Name is the block name made unique within the program.
	Name    string
	Span    int
	Edges   int
	DOTPath string
}

// Result is the outcome of a scheduling pass.
type Result struct {
	Direction resource.Direction
	Blocks    []BlockResult
}

// Run decorates the program with platform timing and schedules every block.
// Scheduling is all-or-nothing per block: a failing block is reported and
// its statements keep CyclesValid unset.
func Run(ctx context.Context, program *ir.Program, p *platform.Platform, f *registry.Factory, opts Options) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scheduling options: %w", err)
	}
	for _, k := range program.Kernels {
		if err := p.DecorateBlock(k); err != nil {
			return nil, err
		}
	}

	dir := resource.Forward
	if opts.Target == ALAP {
		dir = resource.Backward
	}
	base, err := baseState(ctx, p, f, opts, dir)
	if err != nil {
		return nil, err
	}

	blocks := program.Blocks()
	names := uniqueNames(blocks, nil)
	files := uniqueNames(blocks, fileName)
	results := make([]BlockResult, len(blocks))
	logger.Info("Starting scheduling pass.",
		"program", program.Name,
		"blocks", len(blocks),
		"target", opts.Target.String(),
		"heuristic", opts.Heuristic.String(),
		"resources", base.Len(),
		"workers", opts.Workers,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, b := range blocks {
		state := base.Clone()
		g.Go(func() error {
			res, err := scheduleBlock(gctx, b, names[i], files[i], state, opts)
			if err != nil {
				return fmt.Errorf("scheduling block %q: %w", names[i], err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("Scheduling pass complete.", "program", program.Name, "blocks", len(blocks))
	return &Result{Direction: dir, Blocks: results}, nil
}

func baseState(ctx context.Context, p *platform.Platform, f *registry.Factory, opts Options, dir resource.Direction) (*resource.State, error) {
	logger := ctxlog.FromContext(ctx)
	if !opts.ResourceConstraints {
		logger.Debug("Resource constraints disabled.")
		return resource.NewState(dir), nil
	}
	if len(p.Resources) == 0 {
		logger.Warn("Resource constraints enabled but the platform configures no resources.", "platform", p.Name)
	}
	state, err := registry.BuildState(ctx, f, p, dir)
	if err != nil {
		return nil, fmt.Errorf("building resource state: %w", err)
	}
	return state, nil
}

func scheduleBlock(ctx context.Context, b *ir.Block, name, file string, state *resource.State, opts Options) (BlockResult, error) {
	ctx, logger := ctxlog.With(ctx, "block", name)
	if len(b.Statements) == 0 {
		logger.Warn("Block has no statements.")
	}

	g := ddg.Build(ctx, b, opts.graphOptions())
	defer g.Clear()
	target := g
	if opts.Target == ALAP {
		target = g.Reverse()
		defer target.Clear()
	}

	sched, err := scheduleGraph(ctx, target, state, opts)
	if err != nil {
		return BlockResult{}, err
	}
	sched.ConvertCycles(opts.Origin)
	sched.Apply()

	res := BlockResult{Block: b, Name: name, Span: b.Span, Edges: g.EdgeCount()}
	if opts.WriteDOTGraphs {
		path, err := writeDOT(g, name, file, sched.Cycles, opts.OutputDir)
		if err != nil {
			return BlockResult{}, err
		}
		res.DOTPath = path
		logger.Debug("Wrote dependency graph.", "path", path)
	}
	if state.Len() > 0 && logger.Enabled(ctx, slog.LevelDebug) {
		var buf bytes.Buffer
		state.Dump(&buf)
		logger.Debug("Resource state after scheduling.", "state", buf.String())
	}

	logger.Info("Scheduled block.", "statements", len(b.Statements), "span", b.Span)
	return res, nil
}

// scheduleGraph runs the configured heuristic over g. The criticality
// annotation the heuristics read lives only for the duration of the run.
func scheduleGraph(ctx context.Context, g *ddg.Graph, state *resource.State, opts Options) (*schedule.Schedule, error) {
	if opts.Heuristic != HeuristicNone {
		if err := schedule.Criticality(ctx, g); err != nil {
			return nil, err
		}
		defer g.ClearCriticality()
	}

	switch opts.Heuristic {
	case HeuristicCriticalPath:
		return run(ctx, g, state, schedule.CriticalPath{}, opts.MaxBlockCycles)
	case HeuristicDeepCriticality:
		return run(ctx, g, state, schedule.DeepCriticality{}, opts.MaxBlockCycles)
	default:
		return run(ctx, g, state, schedule.Trivial{}, opts.MaxBlockCycles)
	}
}

func run[H schedule.Heuristic](ctx context.Context, g *ddg.Graph, state *resource.State, h H, maxBlockCycles int) (*schedule.Schedule, error) {
	return schedule.New(g, state, h).Run(ctx, maxBlockCycles)
}

func writeDOT(g *ddg.Graph, name, file string, cycles []int, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(dir, file+".dot")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating DOT file: %w", err)
	}
	if err := g.WriteDOT(f, name, cycles); err != nil {
		f.Close()
		return "", fmt.Errorf("writing DOT file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing DOT file %s: %w", path, err)
	}
	return path, nil
}

func fileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '_'
		}
		return r
	}, name)
}

// uniqueNames gives every block a distinct name, suffixing repeats with _1,
// _2 and so on in program order. A non-nil transform is applied before
// uniqueness is checked.
func uniqueNames(blocks []*ir.Block, transform func(string) string) []string {
	used := make(map[string]bool, len(blocks))
	names := make([]string, len(blocks))
	for i, b := range blocks {
		base := b.Name
		if base == "" {
			base = "block"
		}
		if transform != nil {
			base = transform(base)
		}
		name := base
		for n := 1; used[name]; n++ {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		used[name] = true
		names[i] = name
	}
	return names
}
