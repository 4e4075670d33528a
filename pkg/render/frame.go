package render

import "github.com/mlortz/sankey/pkg/sankey"

// Default frame dimensions and text sizing.
const (
	DefaultWidth     = 800.0
	DefaultHeight    = 600.0
	DefaultFlowAlpha = 0.60
	DefaultFontSize  = 14.0
)

// Plot proportions. Band bars and label offsets are fractions of the
// diagram's horizontal extent, margins are fractions of the frame.
const (
	barWidthFrac     = 0.02
	labelOffsetFrac  = 0.05
	titleRise        = 1.03
	sideMarginFrac   = 0.18
	topMarginFrac    = 0.08
	bottomMarginFrac = 0.03
)

// Option configures rendering. Options are shared by all formats; PNG
// additionally honors [WithScale].
type Option func(*renderer)

type renderer struct {
	width, height float64
	flowAlpha     float64
	fontSize      float64
	fontFamily    string
	leftTitle     string
	rightTitle    string
	scale         float64
}

// WithSize sets the frame dimensions in pixels (default 800x600).
func WithSize(w, h float64) Option {
	return func(r *renderer) { r.width, r.height = w, h }
}

// WithTitles sets the optional stack titles drawn above each side's
// topmost band. Empty strings draw nothing.
func WithTitles(left, right string) Option {
	return func(r *renderer) { r.leftTitle, r.rightTitle = left, right }
}

// WithFlowAlpha sets the strip fill opacity (default 0.60).
func WithFlowAlpha(a float64) Option {
	return func(r *renderer) { r.flowAlpha = a }
}

// WithFontSize sets the base font size in pixels (default 14). Band
// labels render one size larger, titles two sizes larger.
func WithFontSize(s float64) Option {
	return func(r *renderer) { r.fontSize = s }
}

// WithFontFamily sets the SVG font family (default "sans-serif").
// PNG output always uses the embedded Go Regular face.
func WithFontFamily(name string) Option {
	return func(r *renderer) { r.fontFamily = name }
}

// WithScale sets the PNG resolution multiplier (default 2.0 for 2x).
func WithScale(s float64) Option {
	return func(r *renderer) { r.scale = s }
}

func newRenderer(opts ...Option) renderer {
	r := renderer{
		width:      DefaultWidth,
		height:     DefaultHeight,
		flowAlpha:  DefaultFlowAlpha,
		fontSize:   DefaultFontSize,
		fontFamily: "sans-serif",
		scale:      2.0,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// frame maps diagram coordinates (weight units, y growing upward) onto
// pixel coordinates (y growing downward).
type frame struct {
	d       *sankey.Diagram
	w, h    float64
	marginX float64
	sx, sy  float64
	baseY   float64
}

func newFrame(d *sankey.Diagram, r renderer) frame {
	f := frame{
		d:       d,
		w:       r.width,
		h:       r.height,
		marginX: sideMarginFrac * r.width,
	}
	plotW := r.width * (1 - 2*sideMarginFrac)
	plotH := r.height * (1 - topMarginFrac - bottomMarginFrac)
	// A zero-weight diagram has no extent; collapse the mapping instead
	// of dividing by zero.
	if d.XMax > 0 {
		f.sx = plotW / d.XMax
	}
	if d.TopEdge > 0 {
		f.sy = plotH / (titleRise * d.TopEdge)
	}
	f.baseY = r.height * (1 - bottomMarginFrac)
	return f
}

// x maps a diagram x coordinate to pixels.
func (f frame) x(x float64) float64 { return f.marginX + x*f.sx }

// y maps a diagram y coordinate to pixels.
func (f frame) y(y float64) float64 { return f.baseY - y*f.sy }

// barWidth is the pixel width of a band bar.
func (f frame) barWidth() float64 { return barWidthFrac * f.d.XMax * f.sx }

// labelOffset is the horizontal pixel gap between a bar and its label.
func (f frame) labelOffset() float64 { return labelOffsetFrac * f.d.XMax * f.sx }
