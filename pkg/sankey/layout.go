package sankey

// Band is the vertical rectangle one category occupies on one side of the
// diagram. Bottom and Top are in weight units; Total is the category's
// marginal weight on that side.
type Band struct {
	Label  string
	Bottom float64
	Top    float64
	Total  float64
}

// Height returns the vertical span of the band.
func (b Band) Height() float64 { return b.Top - b.Bottom }

// CenterY returns the vertical center point of the band.
func (b Band) CenterY() float64 { return (b.Bottom + b.Top) / 2 }

// stackBands computes band extents for one side. Bands are stacked in
// label order starting at bottom 0, with a gap of gapFraction times the
// side's total weight between consecutive bands. The gap is never applied
// before the first band or after the last. The returned topEdge is the
// top of the last band, which equals the sum of marginals plus
// gapFraction*total*(len(labels)-1).
func stackBands(labels []string, marginals []float64, total, gapFraction float64) ([]Band, float64) {
	bands := make([]Band, len(labels))
	gap := gapFraction * total

	var topEdge float64
	for i, l := range labels {
		b := Band{Label: l, Total: marginals[i]}
		if i > 0 {
			b.Bottom = bands[i-1].Top + gap
		}
		b.Top = b.Bottom + b.Total
		bands[i] = b
		topEdge = b.Top
	}
	return bands, topEdge
}
