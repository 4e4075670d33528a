package render

import (
	"bytes"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/mlortz/sankey/pkg/errors"
	"github.com/mlortz/sankey/pkg/fonts"
	"github.com/mlortz/sankey/pkg/sankey"
	"github.com/mlortz/sankey/pkg/sankey/palette"
)

// RenderPNG renders the diagram as a PNG image, drawn natively with
// fogleman/gg and the embedded Go Regular font. The scale option
// multiplies the frame size for higher resolution output (default 2x).
func RenderPNG(d *sankey.Diagram, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	r.width *= r.scale
	r.height *= r.scale
	r.fontSize *= r.scale
	f := newFrame(d, r)

	dc := gg.NewContext(int(r.width), int(r.height))
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	faces, err := newFaces(r.fontSize)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "load embedded font")
	}

	drawStrips(dc, f, r)
	drawBands(dc, f, r, faces)
	drawStripValues(dc, f, faces)
	drawTitles(dc, f, r, faces)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "encode png")
	}
	return buf.Bytes(), nil
}

// faces holds the three text sizes a diagram uses: strip values, band
// labels (+1), and titles (+2).
type faces struct {
	value font.Face
	band  font.Face
	title font.Face
}

func newFaces(base float64) (faces, error) {
	var f faces
	var err error
	if f.value, err = fonts.RegularFace(base); err != nil {
		return faces{}, err
	}
	if f.band, err = fonts.RegularFace(base + 1); err != nil {
		return faces{}, err
	}
	if f.title, err = fonts.RegularFace(base + 2); err != nil {
		return faces{}, err
	}
	return f, nil
}

func drawStrips(dc *gg.Context, f frame, r renderer) {
	for _, s := range f.d.Strips {
		red, green, blue := palette.RGB(s.Color)

		dc.NewSubPath()
		for i := range s.X {
			if i == 0 {
				dc.MoveTo(f.x(s.X[i]), f.y(s.Lower[i]))
				continue
			}
			dc.LineTo(f.x(s.X[i]), f.y(s.Lower[i]))
		}
		for i := len(s.X) - 1; i >= 0; i-- {
			dc.LineTo(f.x(s.X[i]), f.y(s.Upper[i]))
		}
		dc.ClosePath()

		dc.SetRGBA(red, green, blue, r.flowAlpha)
		dc.FillPreserve()
		dc.SetLineWidth(0.5 * r.scale)
		dc.Stroke()
	}
}

func drawBands(dc *gg.Context, f frame, r renderer, fc faces) {
	d := f.d
	dc.SetFontFace(fc.band)
	for _, b := range d.LeftBands {
		red, green, blue := palette.RGB(d.Colors[b.Label])
		dc.SetRGBA(red, green, blue, 0.99)
		dc.DrawRectangle(f.x(0)-f.barWidth(), f.y(b.Top), f.barWidth(), b.Height()*f.sy)
		dc.Fill()

		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(sankey.FormatValue(b.Label, b.Total, d.PercentValues),
			f.x(0)-f.labelOffset(), f.y(b.CenterY()), 1, 0.5)
	}
	for _, b := range d.RightBands {
		red, green, blue := palette.RGB(d.Colors[b.Label])
		dc.SetRGBA(red, green, blue, 0.99)
		dc.DrawRectangle(f.x(d.XMax), f.y(b.Top), f.barWidth(), b.Height()*f.sy)
		dc.Fill()

		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(sankey.FormatValue(b.Label, b.Total, d.PercentValues),
			f.x(d.XMax)+f.labelOffset(), f.y(b.CenterY()), 0, 0.5)
	}
}

func drawStripValues(dc *gg.Context, f frame, fc faces) {
	d := f.d
	dc.SetFontFace(fc.value)
	dc.SetRGB(0, 0, 0)
	for _, s := range d.Strips {
		if !s.HasValueLabel() {
			continue
		}
		last := len(s.X) - 1
		text := sankey.FormatValue("", s.LeftSum, d.PercentValues)
		dc.DrawStringAnchored(text, f.x(0)+4, f.y((s.Lower[0]+s.Upper[0])/2), 0, 0.5)
		dc.DrawStringAnchored(text, f.x(d.XMax)-4, f.y((s.Lower[last]+s.Upper[last])/2), 1, 0.5)
	}
}

func drawTitles(dc *gg.Context, f frame, r renderer, fc faces) {
	d := f.d
	dc.SetFontFace(fc.title)
	dc.SetRGB(0, 0, 0)
	titleY := f.y(titleRise * d.TopEdge)
	if r.leftTitle != "" {
		dc.DrawStringAnchored(r.leftTitle, f.x(0), titleY, 1, 0.5)
	}
	if r.rightTitle != "" {
		dc.DrawStringAnchored(r.rightTitle, f.x(d.XMax), titleY, 0, 0.5)
	}
}
