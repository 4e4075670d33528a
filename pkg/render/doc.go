// Package render provides output format renderers for sankey diagrams.
//
// # Overview
//
// A renderer transforms a computed [sankey.Diagram] into a final output
// format. This package provides:
//
//   - SVG: scalable vector graphics, the primary format
//   - PNG: native raster output drawn with fogleman/gg
//   - PDF: print-ready output (requires rsvg-convert)
//   - JSON: geometry export for external tools
//
// # Layout model
//
// All renderers share one pixel mapping: the diagram's weight-unit
// geometry is placed in a plot area inside the frame, with side margins
// reserved for category labels and headroom for the optional stack
// titles. Band bars hug the plot edges, strips fill the span between
// them, and value annotations follow the diagram's formatting mode.
//
// Basic usage:
//
//	svg := render.RenderSVG(d,
//	    render.WithTitles("2019", "2023"),
//	    render.WithSize(1200, 900),
//	)
//
// # PDF Output
//
// [RenderPDF] renders SVG first and converts it via rsvg-convert, which
// must be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// # Adding New Formats
//
// To add a new output format:
//
//  1. Create a renderer function: func RenderFoo(d *sankey.Diagram, opts ...Option) ([]byte, error)
//  2. Build a frame with newFrame to reuse the shared pixel mapping
//  3. Register the format in internal/cli for CLI support
package render
