package sankey

const (
	// halfSamples is the number of raw samples per side of the step
	// function a strip boundary starts from.
	halfSamples = 50

	// kernelWidth and kernelWeight define the moving-average smoothing
	// kernel. kernelWeight*kernelWidth = 1, so the kernel preserves flat
	// segments exactly and never overshoots the step endpoints.
	kernelWidth  = 20
	kernelWeight = 0.05

	// MinLabeledFlow is the smallest left-edge flow that still gets a
	// numeric value annotation when rendered. Smaller flows keep their
	// geometry but drop the text to avoid clutter.
	MinLabeledFlow = 0.01
)

// Strip is the flow ribbon connecting one left category to one right
// category. X holds the horizontal sample positions from the left edge to
// the right edge; Lower and Upper are the smoothed boundary curves at
// those positions. The strip's height at the left edge is LeftSum and at
// the right edge RightSum.
type Strip struct {
	Left     string
	Right    string
	LeftSum  float64
	RightSum float64
	Color    string

	X     []float64
	Lower []float64
	Upper []float64
}

// HasValueLabel reports whether the strip is large enough to carry a
// numeric annotation when rendered.
func (s Strip) HasValueLabel() bool { return s.LeftSum > MinLabeledFlow }

// buildStrips emits one strip per (left, right) pair with at least one
// record, iterating left labels then right labels in stacking order. Each
// strip consumes a sub-interval from the running bottom of its two bands;
// the running bottoms advance immediately after each strip so the next
// pair against the same band starts directly above. The iteration order
// is what makes the accumulation deterministic.
//
// The passed band slices are not modified; the builder owns its own
// offset accumulators for the duration of the call.
func buildStrips(f *flows, leftBands, rightBands []Band, xMax float64, colors map[string]string, rightColor bool) []Strip {
	leftBottom := make([]float64, len(leftBands))
	for i, b := range leftBands {
		leftBottom[i] = b.Bottom
	}
	rightBottom := make([]float64, len(rightBands))
	for j, b := range rightBands {
		rightBottom[j] = b.Bottom
	}

	var strips []Strip
	for i, lb := range leftBands {
		for j, rb := range rightBands {
			if f.count[i][j] == 0 {
				continue
			}

			lower := smoothStep(leftBottom[i], rightBottom[j])
			upper := smoothStep(leftBottom[i]+f.leftSum[i][j], rightBottom[j]+f.rightSum[i][j])

			leftBottom[i] += f.leftSum[i][j]
			rightBottom[j] += f.rightSum[i][j]

			colorLabel := lb.Label
			if rightColor {
				colorLabel = rb.Label
			}

			strips = append(strips, Strip{
				Left:     lb.Label,
				Right:    rb.Label,
				LeftSum:  f.leftSum[i][j],
				RightSum: f.rightSum[i][j],
				Color:    colors[colorLabel],
				X:        linspace(0, xMax, len(lower)),
				Lower:    lower,
				Upper:    upper,
			})
		}
	}
	return strips
}

// smoothStep builds a boundary curve transitioning from left to right: a
// step function flat at left for the first half of the span and flat at
// right for the second half, smoothed by two moving-average passes. The
// result stays within [min(left,right), max(left,right)] and meets the
// step values at both endpoints.
func smoothStep(left, right float64) []float64 {
	ys := make([]float64, 2*halfSamples)
	for i := 0; i < halfSamples; i++ {
		ys[i] = left
		ys[halfSamples+i] = right
	}
	ys = convolveValid(ys, kernelWidth, kernelWeight)
	ys = convolveValid(ys, kernelWidth, kernelWeight)
	return ys
}

// convolveValid convolves xs with a constant kernel of the given width
// and per-tap weight, keeping only fully-overlapping positions.
func convolveValid(xs []float64, width int, weight float64) []float64 {
	out := make([]float64, len(xs)-width+1)
	for i := range out {
		var sum float64
		for j := 0; j < width; j++ {
			sum += xs[i+j]
		}
		out[i] = weight * sum
	}
	return out
}

// linspace returns n evenly spaced samples from lo to hi inclusive.
func linspace(lo, hi float64, n int) []float64 {
	xs := make([]float64, n)
	if n == 1 {
		xs[0] = lo
		return xs
	}
	step := (hi - lo) / float64(n-1)
	for i := range xs {
		xs[i] = lo + float64(i)*step
	}
	return xs
}
