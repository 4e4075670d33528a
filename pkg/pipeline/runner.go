package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mlortz/sankey/pkg/dataset"
	"github.com/mlortz/sankey/pkg/observability"
	"github.com/mlortz/sankey/pkg/sankey"
)

// Runner executes the pipeline. It is stateless except for the logger -
// it doesn't store pipeline results, so one Runner can serve many runs.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	return &Runner{Logger: applyLogger(logger)}
}

// Execute runs the complete load → compute → render pipeline.
// Registered observability hooks receive start and completion events
// for every stage.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if !opts.validated {
		if err := opts.ValidateAndSetDefaults(); err != nil {
			return nil, err
		}
	}

	result := &Result{}
	hooks := observability.Pipeline()

	loadStart := time.Now()
	hooks.OnLoadStart(ctx, opts.Input)
	records, err := r.Load(opts)
	result.Stats.LoadTime = time.Since(loadStart)
	hooks.OnLoadComplete(ctx, opts.Input, len(records), result.Stats.LoadTime, err)
	if err != nil {
		return nil, err
	}
	result.Records = records
	result.Stats.RecordCount = len(records)

	r.Logger.Info("loaded records",
		"records", len(records),
		"duration", result.Stats.LoadTime)

	computeStart := time.Now()
	hooks.OnComputeStart(ctx, len(records))
	d, err := r.Compute(records, opts)
	result.Stats.ComputeTime = time.Since(computeStart)
	if d != nil {
		result.Stats.StripCount = len(d.Strips)
	}
	hooks.OnComputeComplete(ctx, result.Stats.StripCount, result.Stats.ComputeTime, err)
	if err != nil {
		return nil, err
	}
	result.Diagram = d

	r.Logger.Info("computed layout",
		"left", len(d.LeftBands),
		"right", len(d.RightBands),
		"strips", len(d.Strips),
		"duration", result.Stats.ComputeTime)

	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, err := Render(d, opts.Formats, opts.Render...)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the observation records for a run. Records supplied
// directly win over the CSV path.
func (r *Runner) Load(opts Options) ([]sankey.Record, error) {
	if opts.Records != nil {
		return opts.Records, nil
	}
	return dataset.LoadCSV(opts.Input, opts.CSV)
}

// Compute resolves ordering and runs the core layout computation.
func (r *Runner) Compute(records []sankey.Record, opts Options) (*sankey.Diagram, error) {
	diagramOpts := opts.Diagram
	if opts.OrderByWeight {
		if len(diagramOpts.LeftOrder) == 0 {
			diagramOpts.LeftOrder = sankey.LabelsByWeight(records, sankey.SideLeft)
		}
		if len(diagramOpts.RightOrder) == 0 {
			diagramOpts.RightOrder = sankey.LabelsByWeight(records, sankey.SideRight)
		}
	}

	return sankey.Compute(records, diagramOpts)
}
