package sankey

import (
	"fmt"
	"math"
	"strings"

	"github.com/mlortz/sankey/pkg/errors"
	"github.com/mlortz/sankey/pkg/sankey/palette"
)

// Default option values. See [Options].
const (
	DefaultAspect      = 4.0
	DefaultGapFraction = 0.02
)

// Options configures one diagram computation. The zero value is valid:
// label orders are derived from first occurrence in the data, colors are
// generated from an evenly-spaced hue palette, and numeric defaults are
// filled in by [Compute]. All options are resolved once at the start of
// the computation and never re-derived mid-algorithm.
type Options struct {
	// LeftOrder and RightOrder fix the stacking order per side, bottom to
	// top. When set they must match the data's distinct labels exactly.
	// When empty the order is derived from first occurrence.
	LeftOrder  []string
	RightOrder []string

	// Colors maps every label to a hex color ("#1b9e77"). When set it
	// must cover every label on both sides. When nil a palette is
	// generated.
	Colors map[string]string

	// Aspect is the vertical extent of the diagram in units of its
	// horizontal extent. Must be positive. Default 4.
	Aspect float64

	// GapFraction is the padding inserted between adjacent stacked bands,
	// as a fraction of the side's total weight. Must be non-negative.
	// Default 0.02.
	GapFraction float64

	// RightColor colors each strip by its right label instead of its
	// left label.
	RightColor bool

	// PercentValues formats value annotations as percentages instead of
	// raw numbers. Weights should already be normalized to fractions.
	PercentValues bool
}

// Diagram is the computed geometry for one sankey diagram. All
// coordinates are in weight units; XMax is the horizontal extent derived
// from the taller side and the aspect ratio. A Diagram is immutable once
// returned from [Compute].
type Diagram struct {
	LeftBands  []Band
	RightBands []Band
	Strips     []Strip

	LeftLabels  []string
	RightLabels []string
	Colors      map[string]string

	LeftTop  float64 // top edge of the left stack
	RightTop float64 // top edge of the right stack
	TopEdge  float64 // max of the two sides
	XMax     float64 // TopEdge / Aspect

	PercentValues bool
}

// Compute runs the full layout computation: validation, aggregation,
// band stacking, and strip geometry. It is a pure function of records
// and opts; repeated calls with identical inputs yield identical output.
//
// Errors:
//   - NULL_IN_DATA: a record has an empty left or right label (checked
//     first, before any aggregation)
//   - LABEL_MISMATCH: a declared label order does not match the data
//   - INCOMPLETE_COLORS: a supplied color map misses a label
//   - INVALID_COLOR: a supplied color does not parse as hex
//   - INVALID_OPTION: non-positive aspect or negative gap fraction
//   - INVALID_INPUT: a record carries a negative weight
func Compute(records []Record, opts Options) (*Diagram, error) {
	if err := checkNulls(records); err != nil {
		return nil, err
	}
	opts, err := withDefaults(opts)
	if err != nil {
		return nil, err
	}
	if err := checkWeights(records); err != nil {
		return nil, err
	}

	leftLabels, err := resolveLabels(opts.LeftOrder, records, SideLeft)
	if err != nil {
		return nil, err
	}
	rightLabels, err := resolveLabels(opts.RightOrder, records, SideRight)
	if err != nil {
		return nil, err
	}

	colors, err := resolveColors(labelUnion(leftLabels, rightLabels), opts.Colors)
	if err != nil {
		return nil, err
	}

	f := aggregate(records, leftLabels, rightLabels)

	leftBands, leftTop := stackBands(leftLabels, f.leftMarginal, f.leftTotal, opts.GapFraction)
	rightBands, rightTop := stackBands(rightLabels, f.rightMarginal, f.rightTotal, opts.GapFraction)

	// The two sides usually end at the same height, but not when the left
	// and right weight totals differ. Scale from the taller one.
	topEdge := math.Max(leftTop, rightTop)
	xMax := topEdge / opts.Aspect

	return &Diagram{
		LeftBands:     leftBands,
		RightBands:    rightBands,
		Strips:        buildStrips(f, leftBands, rightBands, xMax, colors, opts.RightColor),
		LeftLabels:    leftLabels,
		RightLabels:   rightLabels,
		Colors:        colors,
		LeftTop:       leftTop,
		RightTop:      rightTop,
		TopEdge:       topEdge,
		XMax:          xMax,
		PercentValues: opts.PercentValues,
	}, nil
}

// withDefaults fills in numeric defaults and validates option ranges.
func withDefaults(opts Options) (Options, error) {
	if opts.Aspect == 0 {
		opts.Aspect = DefaultAspect
	}
	if opts.Aspect <= 0 {
		return opts, errors.New(errors.ErrCodeInvalidOption,
			"aspect must be positive, got %g", opts.Aspect)
	}
	if opts.GapFraction == 0 {
		opts.GapFraction = DefaultGapFraction
	}
	if opts.GapFraction < 0 {
		return opts, errors.New(errors.ErrCodeInvalidOption,
			"gap fraction must be non-negative, got %g", opts.GapFraction)
	}
	return opts, nil
}

// checkWeights rejects negative weights. Zero weights are legal and
// produce zero-height bands and strips.
func checkWeights(records []Record) error {
	for i, r := range records {
		if r.LeftWeight < 0 || r.RightWeight < 0 {
			return errors.New(errors.ErrCodeInvalidInput,
				"record %d has a negative weight", i)
		}
	}
	return nil
}

// labelUnion returns the left labels followed by the right labels not
// already present, preserving order.
func labelUnion(left, right []string) []string {
	seen := make(map[string]struct{}, len(left)+len(right))
	union := make([]string, 0, len(left)+len(right))
	for _, l := range left {
		if _, ok := seen[l]; !ok {
			seen[l] = struct{}{}
			union = append(union, l)
		}
	}
	for _, l := range right {
		if _, ok := seen[l]; !ok {
			seen[l] = struct{}{}
			union = append(union, l)
		}
	}
	return union
}

// resolveColors validates a caller-supplied color map against the label
// union, or generates a palette when none is supplied.
func resolveColors(labels []string, supplied map[string]string) (map[string]string, error) {
	if len(supplied) == 0 {
		generated := palette.Generate(len(labels))
		colors := make(map[string]string, len(labels))
		for i, l := range labels {
			colors[l] = generated[i]
		}
		return colors, nil
	}

	var missing []string
	colors := make(map[string]string, len(labels))
	for _, l := range labels {
		hex, ok := supplied[l]
		if !ok {
			missing = append(missing, l)
			continue
		}
		normalized, err := palette.Normalize(hex)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidColor, err,
				"color for label %q", l)
		}
		colors[l] = normalized
	}
	if len(missing) > 0 {
		return nil, errors.New(errors.ErrCodeIncompleteColors,
			"color map missing values: %s", strings.Join(missing, ","))
	}
	return colors, nil
}

// FormatValue renders a value annotation for a band or strip. With
// percent set, v is treated as a fraction and shown with one decimal as
// a percentage; otherwise it is shown raw with one decimal. label may be
// empty for strip annotations.
func FormatValue(label string, v float64, percent bool) string {
	var value string
	if percent {
		value = fmt.Sprintf("%.1f%%", v*100)
	} else {
		value = fmt.Sprintf("%.1f", v)
	}
	if label == "" {
		return value
	}
	return label + " " + value
}
