// Package sankey computes two-sided flow diagram layouts.
//
// A sankey diagram shows how weight flows from a set of left-side
// categories to a set of right-side categories. Each input [Record] pairs
// one left label with one right label and carries a weight for each edge
// of the flow. The package aggregates records per (left, right) pair,
// stacks each side's categories into non-overlapping vertical bands, and
// produces a smoothed ribbon ("strip") between the two bands of every
// pair that has at least one record.
//
// # Pipeline
//
// [Compute] runs the full computation in one deterministic batch pass:
//
//  1. Validate: reject empty labels and declared label lists that do not
//     match the data.
//  2. Aggregate: per-pair left/right weight sums and per-category
//     marginal totals.
//  3. Stack: vertical band extents per side, with a proportional gap
//     between consecutive bands.
//  4. Strips: consume sub-intervals from the running band bottoms in
//     stacking order and emit smoothed boundary curves.
//
// The resulting [Diagram] is pure geometry plus resolved labels and
// colors. Rendering to SVG, PNG, PDF, or JSON lives in pkg/render.
//
// # Determinism
//
// Band stacking order is exactly the caller-resolved label order (first
// label lowest), and strips are emitted in nested left-then-right label
// order. Identical records and options always produce identical output.
//
// # Usage
//
//	records, err := sankey.Records(
//	    []string{"a", "a", "b"},
//	    []string{"x", "y", "x"},
//	    []float64{3, 1, 2},
//	    nil,
//	)
//	if err != nil { ... }
//	d, err := sankey.Compute(records, sankey.Options{})
//	if err != nil { ... }
//	svg := render.RenderSVG(d)
package sankey
