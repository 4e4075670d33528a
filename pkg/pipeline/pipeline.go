// Package pipeline provides the load → compute → render pipeline for
// sankey diagrams.
//
// This package implements the complete pipeline used by the CLI and the
// preview server. By centralizing this logic, we ensure consistent
// behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read observation records from a CSV file
//  2. Compute: run the layout computation (validation, aggregation,
//     band stacking, strip geometry)
//  3. Render: generate output in the requested formats
//
// Each stage can be run independently or as part of the complete
// pipeline. The whole computation is one synchronous batch pass; there
// is no concurrency and no shared state across invocations.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Input:   "flows.csv",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/mlortz/sankey/pkg/dataset"
	"github.com/mlortz/sankey/pkg/errors"
	"github.com/mlortz/sankey/pkg/render"
	"github.com/mlortz/sankey/pkg/sankey"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// DefaultFormat is used when no formats are requested.
const DefaultFormat = FormatSVG

// Options contains all configuration for one pipeline run.
type Options struct {
	// Load options. Input is the CSV path; Records may be supplied
	// directly instead, in which case Input is ignored.
	Input   string
	Records []sankey.Record
	CSV     dataset.CSVOptions

	// Compute options.
	Diagram sankey.Options

	// OrderByWeight stacks each side's categories by descending
	// cumulative weight instead of first-occurrence order. Ignored for
	// a side with an explicit order in Diagram.
	OrderByWeight bool

	// Render options.
	Formats []string
	Render  []render.Option

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks option consistency and fills defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Input == "" && o.Records == nil {
		return errors.New(errors.ErrCodeInvalidOption, "no input: set Input or Records")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat,
				"invalid format: %q (must be one of: svg, png, pdf, json)", f)
		}
	}
	if o.CSV == (dataset.CSVOptions{}) {
		o.CSV = dataset.DefaultCSVOptions()
	}
	o.validated = true
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Records is the loaded observation set.
	Records []sankey.Record

	// Diagram is the computed geometry.
	Diagram *sankey.Diagram

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RecordCount int
	StripCount  int
	LoadTime    time.Duration
	ComputeTime time.Duration
	RenderTime  time.Duration
}

// Render generates output artifacts in the requested formats.
func Render(d *sankey.Diagram, formats []string, opts ...render.Option) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = render.RenderSVG(d, opts...)
		case FormatPNG:
			data, err = render.RenderPNG(d, opts...)
		case FormatPDF:
			data, err = render.RenderPDF(d, opts...)
		case FormatJSON:
			data, err = render.RenderJSON(d)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRender, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// applyLogger returns a usable logger even when the runner has none.
func applyLogger(l *log.Logger) *log.Logger {
	if l == nil {
		return log.Default()
	}
	return l
}
