package render

import (
	"bytes"
	"fmt"

	"github.com/mlortz/sankey/pkg/sankey"
)

// RenderSVG renders the diagram as an SVG document.
//
// Band bars hug both edges of the plot area, each labeled with its
// category name and total. Strips are closed paths built from the
// smoothed boundary curves, filled with the strip color at the flow
// alpha. Value annotations appear at both ends of a strip unless the
// flow is below the negligible-label threshold, in which case only the
// text is suppressed, never the geometry.
func RenderSVG(d *sankey.Diagram, opts ...Option) []byte {
	r := newRenderer(opts...)
	f := newFrame(d, r)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, r.height, r.width, r.height)
	fmt.Fprintf(&buf, `  <g font-family="%s" font-size="%.1f">`+"\n", r.fontFamily, r.fontSize)

	renderStrips(&buf, f, r)
	renderBands(&buf, f, r)
	renderStripValues(&buf, f, r)
	renderTitles(&buf, f, r)

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func renderBands(buf *bytes.Buffer, f frame, r renderer) {
	d := f.d
	for _, b := range d.LeftBands {
		renderBand(buf, f, r, b, sankey.SideLeft)
	}
	for _, b := range d.RightBands {
		renderBand(buf, f, r, b, sankey.SideRight)
	}
}

func renderBand(buf *bytes.Buffer, f frame, r renderer, b sankey.Band, side sankey.Side) {
	d := f.d
	barX := f.x(0) - f.barWidth()
	labelX := f.x(0) - f.labelOffset()
	anchor := "end"
	if side == sankey.SideRight {
		barX = f.x(d.XMax)
		labelX = f.x(d.XMax) + f.labelOffset()
		anchor = "start"
	}

	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" fill-opacity="0.99"/>`+"\n",
		barX, f.y(b.Top), f.barWidth(), b.Height()*f.sy, d.Colors[b.Label])
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="%s" dominant-baseline="middle" font-size="%.1f">%s</text>`+"\n",
		labelX, f.y(b.CenterY()), anchor, r.fontSize+1,
		escape(sankey.FormatValue(b.Label, b.Total, d.PercentValues)))
}

func renderStrips(buf *bytes.Buffer, f frame, r renderer) {
	for _, s := range f.d.Strips {
		fmt.Fprintf(buf, `    <path d="%s" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-width="0.5"/>`+"\n",
			stripPath(f, s), s.Color, r.flowAlpha, s.Color)
	}
}

// stripPath traces the lower boundary left to right, then the upper
// boundary right to left, and closes.
func stripPath(f frame, s sankey.Strip) string {
	var path bytes.Buffer
	for i := range s.X {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&path, "%s%.2f %.2f ", cmd, f.x(s.X[i]), f.y(s.Lower[i]))
	}
	for i := len(s.X) - 1; i >= 0; i-- {
		fmt.Fprintf(&path, "L%.2f %.2f ", f.x(s.X[i]), f.y(s.Upper[i]))
	}
	path.WriteString("Z")
	return path.String()
}

func renderStripValues(buf *bytes.Buffer, f frame, r renderer) {
	d := f.d
	for _, s := range d.Strips {
		if !s.HasValueLabel() {
			continue
		}
		last := len(s.X) - 1
		text := escape(sankey.FormatValue("", s.LeftSum, d.PercentValues))
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="start" dominant-baseline="middle">%s</text>`+"\n",
			f.x(0)+4, f.y((s.Lower[0]+s.Upper[0])/2), text)
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="end" dominant-baseline="middle">%s</text>`+"\n",
			f.x(d.XMax)-4, f.y((s.Lower[last]+s.Upper[last])/2), text)
	}
}

func renderTitles(buf *bytes.Buffer, f frame, r renderer) {
	d := f.d
	titleY := f.y(titleRise * d.TopEdge)
	if r.leftTitle != "" {
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="end" dominant-baseline="middle" font-size="%.1f">%s</text>`+"\n",
			f.x(0), titleY, r.fontSize+2, escape(r.leftTitle))
	}
	if r.rightTitle != "" {
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="start" dominant-baseline="middle" font-size="%.1f">%s</text>`+"\n",
			f.x(d.XMax), titleY, r.fontSize+2, escape(r.rightTitle))
	}
}

// escape sanitizes text content for SVG markup.
func escape(s string) string {
	var buf bytes.Buffer
	for _, c := range s {
		switch c {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(c)
		}
	}
	return buf.String()
}
