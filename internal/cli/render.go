package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mlortz/sankey/pkg/dataset"
	"github.com/mlortz/sankey/pkg/pipeline"
	"github.com/mlortz/sankey/pkg/render"
	"github.com/mlortz/sankey/pkg/sankey"
)

// renderOpts holds the command-line flags for the render command.
// These options control the diagram layout, appearance, and output formats.
type renderOpts struct {
	output        string   // output file path (or base path for multiple formats)
	formats       []string // output formats: "svg", "png", "pdf", "json"
	configPath    string   // optional TOML configuration file
	leftOrder     []string // bottom-to-top stacking order for the left side
	rightOrder    []string // bottom-to-top stacking order for the right side
	aspect        float64  // vertical extent in units of the horizontal extent
	gap           float64  // inter-band gap as a fraction of the side total
	rightColor    bool     // color strips by their right label
	percent       bool     // format value annotations as percentages
	orderByWeight bool     // stack categories by descending cumulative weight
	width         float64  // viewport width in pixels
	height        float64  // viewport height in pixels
	leftTitle     string   // title above the left axis
	rightTitle    string   // title above the right axis
	flowAlpha     float64  // strip fill opacity
	fontSize      float64  // base font size in points
	delimiter     string   // CSV field delimiter
	noHeader      bool     // treat the first CSV row as data
}

// newRenderCmd creates the render command for generating diagram outputs.
// It supports multiple output formats (SVG, PNG, PDF, JSON) in one run.
//
// Default settings:
//   - format: svg
//   - aspect: 4, gap: 0.02 (the core layout defaults)
//   - width: 800px, height: 600px
//
// Flags override values from --config when both are given.
func newRenderCmd() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		delimiter: ",",
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a flow dataset to one or more diagram files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return runRender(cmd.Context(), cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple formats)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "TOML configuration file")
	cmd.Flags().StringSliceVar(&opts.leftOrder, "left-order", nil, "left side stacking order, bottom to top")
	cmd.Flags().StringSliceVar(&opts.rightOrder, "right-order", nil, "right side stacking order, bottom to top")
	cmd.Flags().Float64Var(&opts.aspect, "aspect", 0, "vertical extent in units of the horizontal extent (default 4)")
	cmd.Flags().Float64Var(&opts.gap, "gap", -1, "gap between stacked bands as a fraction of the side total (default 0.02)")
	cmd.Flags().BoolVar(&opts.rightColor, "right-color", false, "color strips by their right label")
	cmd.Flags().BoolVar(&opts.percent, "percent", false, "format value annotations as percentages")
	cmd.Flags().BoolVar(&opts.orderByWeight, "order-by-weight", false, "stack categories by descending cumulative weight")
	cmd.Flags().Float64Var(&opts.width, "width", render.DefaultWidth, "frame width")
	cmd.Flags().Float64Var(&opts.height, "height", render.DefaultHeight, "frame height")
	cmd.Flags().StringVar(&opts.leftTitle, "left-title", "", "title above the left axis")
	cmd.Flags().StringVar(&opts.rightTitle, "right-title", "", "title above the right axis")
	cmd.Flags().Float64Var(&opts.flowAlpha, "flow-alpha", 0, "strip fill opacity (default 0.6)")
	cmd.Flags().Float64Var(&opts.fontSize, "font-size", 0, "base font size in points (default 14)")
	cmd.Flags().StringVar(&opts.delimiter, "delimiter", opts.delimiter, "CSV field delimiter")
	cmd.Flags().BoolVar(&opts.noHeader, "no-header", false, "treat the first CSV row as data")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// validateFormats checks that all requested formats are valid.
// It returns an error if any format is not supported by the pipeline.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !pipeline.ValidFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'svg', 'png', 'pdf', or 'json')", f)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input file
// paths. If output is empty, it strips the extension from input. If
// output has a format extension (.svg, .pdf, etc.), it strips that
// extension. This is used when generating multiple output files.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath builds the file path for one rendered format.
// A single requested format keeps the explicit --output path verbatim;
// multiple formats share a base path and get their format as extension.
func outputPath(output, input, format string, multi bool) string {
	if !multi && output != "" {
		return output
	}
	return basePath(output, input) + "." + format
}

// runRender loads the dataset, computes the layout, renders all
// requested formats, and writes each artifact next to the input file
// (or to --output). Flags override --config values when both are set.
func runRender(ctx context.Context, cmd *cobra.Command, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	pipeOpts, err := buildPipelineOptions(cmd, input, opts)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	runner := pipeline.NewRunner(logger)

	// PDF conversion shells out to rsvg-convert, which can take a moment.
	var sp *Spinner
	if hasFormat(opts.formats, pipeline.FormatPDF) {
		sp = newSpinnerWithContext(ctx, "converting with rsvg-convert")
		sp.Start()
	}

	result, err := runner.Execute(ctx, pipeOpts)
	if sp != nil {
		sp.Stop()
	}
	if err != nil {
		return err
	}

	multi := len(opts.formats) > 1
	formats := make([]string, 0, len(result.Artifacts))
	for format := range result.Artifacts {
		formats = append(formats, format)
	}
	sort.Strings(formats)

	for _, format := range formats {
		path := outputPath(opts.output, input, format, multi)
		if err := writeFile(path, result.Artifacts[format]); err != nil {
			return err
		}
		logger.Debugf("Generated %s: %d bytes", format, len(result.Artifacts[format]))
		printFile(path)
	}

	prog.done(fmt.Sprintf("Rendered %d format(s) from %d records", len(formats), result.Stats.RecordCount))
	return nil
}

// buildPipelineOptions merges the optional TOML config with the
// command-line flags. Flags that were explicitly set win over config
// values; unset flags defer to the config, then to core defaults.
func buildPipelineOptions(cmd *cobra.Command, input string, opts *renderOpts) (pipeline.Options, error) {
	var diagram sankey.Options
	var renderOptions []render.Option

	if opts.configPath != "" {
		cfg, err := dataset.LoadConfig(opts.configPath)
		if err != nil {
			return pipeline.Options{}, err
		}
		diagram = cfg.DiagramOptions()
		renderOptions = cfg.RenderOptions()
	}

	flags := cmd.Flags()
	if flags.Changed("left-order") {
		diagram.LeftOrder = opts.leftOrder
	}
	if flags.Changed("right-order") {
		diagram.RightOrder = opts.rightOrder
	}
	if flags.Changed("aspect") {
		diagram.Aspect = opts.aspect
	}
	if flags.Changed("gap") {
		diagram.GapFraction = opts.gap
	}
	if flags.Changed("right-color") {
		diagram.RightColor = opts.rightColor
	}
	if flags.Changed("percent") {
		diagram.PercentValues = opts.percent
	}

	renderOptions = append(renderOptions, render.WithSize(opts.width, opts.height))
	if opts.leftTitle != "" || opts.rightTitle != "" {
		renderOptions = append(renderOptions, render.WithTitles(opts.leftTitle, opts.rightTitle))
	}
	if flags.Changed("flow-alpha") {
		renderOptions = append(renderOptions, render.WithFlowAlpha(opts.flowAlpha))
	}
	if flags.Changed("font-size") {
		renderOptions = append(renderOptions, render.WithFontSize(opts.fontSize))
	}

	csvOpts := dataset.DefaultCSVOptions()
	if opts.delimiter != "" {
		csvOpts.Delimiter = rune(opts.delimiter[0])
	}
	if opts.noHeader {
		csvOpts.HasHeader = false
	}

	return pipeline.Options{
		Input:         input,
		CSV:           csvOpts,
		Diagram:       diagram,
		OrderByWeight: opts.orderByWeight,
		Formats:       opts.formats,
		Render:        renderOptions,
	}, nil
}

// hasFormat reports whether formats contains format.
func hasFormat(formats []string, format string) bool {
	for _, f := range formats {
		if f == format {
			return true
		}
	}
	return false
}

// writeFile writes data to path, creating parent directories as needed.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
