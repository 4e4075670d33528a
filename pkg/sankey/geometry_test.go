package sankey

import (
	"math"
	"testing"
)

func TestSmoothStep(t *testing.T) {
	tests := []struct {
		name        string
		left, right float64
	}{
		{name: "rising", left: 0, right: 5},
		{name: "falling", left: 5, right: 0},
		{name: "flat", left: 3, right: 3},
		{name: "small difference", left: 1.0, right: 1.001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ys := smoothStep(tt.left, tt.right)

			wantLen := 2*halfSamples - 2*(kernelWidth-1)
			if len(ys) != wantLen {
				t.Fatalf("len = %d, want %d", len(ys), wantLen)
			}

			// The kernel only ever sees the flat region at either edge,
			// so the endpoints match the step values.
			if math.Abs(ys[0]-tt.left) > 1e-12 {
				t.Errorf("ys[0] = %v, want %v", ys[0], tt.left)
			}
			if math.Abs(ys[len(ys)-1]-tt.right) > 1e-12 {
				t.Errorf("ys[last] = %v, want %v", ys[len(ys)-1], tt.right)
			}

			// No overshoot beyond [min, max].
			lo := math.Min(tt.left, tt.right)
			hi := math.Max(tt.left, tt.right)
			for i, y := range ys {
				if y < lo-1e-12 || y > hi+1e-12 {
					t.Errorf("ys[%d] = %v overshoots [%v, %v]", i, y, lo, hi)
				}
			}

			// Monotone transition in the direction of the step.
			for i := 1; i < len(ys); i++ {
				if tt.left <= tt.right && ys[i] < ys[i-1]-1e-12 {
					t.Errorf("ys not non-decreasing at %d: %v -> %v", i, ys[i-1], ys[i])
				}
				if tt.left >= tt.right && ys[i] > ys[i-1]+1e-12 {
					t.Errorf("ys not non-increasing at %d: %v -> %v", i, ys[i-1], ys[i])
				}
			}
		})
	}
}

func TestConvolveValid(t *testing.T) {
	// A width-2 mean kernel over a ramp keeps the ramp, shortened by one.
	got := convolveValid([]float64{0, 2, 4, 6}, 2, 0.5)
	want := []float64{1, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLinspace(t *testing.T) {
	xs := linspace(0, 10, 5)
	want := []float64{0, 2.5, 5, 7.5, 10}
	for i := range want {
		if math.Abs(xs[i]-want[i]) > 1e-12 {
			t.Errorf("xs[%d] = %v, want %v", i, xs[i], want[i])
		}
	}

	if xs := linspace(3, 9, 1); xs[0] != 3 {
		t.Errorf("single sample = %v, want 3", xs[0])
	}
}

func TestBuildStripsAdvancesOffsets(t *testing.T) {
	// Two left labels flowing into one right label: the second strip must
	// start where the first one ended on the shared right band.
	records, err := Records(
		[]string{"a", "b"},
		[]string{"x", "x"},
		[]float64{3, 2},
		nil,
	)
	if err != nil {
		t.Fatalf("Records() error: %v", err)
	}

	leftLabels := []string{"a", "b"}
	rightLabels := []string{"x"}
	f := aggregate(records, leftLabels, rightLabels)
	leftBands, _ := stackBands(leftLabels, f.leftMarginal, f.leftTotal, 0.02)
	rightBands, _ := stackBands(rightLabels, f.rightMarginal, f.rightTotal, 0.02)

	colors := map[string]string{"a": "#111111", "b": "#222222", "x": "#333333"}
	strips := buildStrips(f, leftBands, rightBands, 1.0, colors, false)

	if len(strips) != 2 {
		t.Fatalf("got %d strips, want 2", len(strips))
	}

	first, second := strips[0], strips[1]
	if first.Left != "a" || second.Left != "b" {
		t.Fatalf("strip order = %s,%s, want a,b", first.Left, second.Left)
	}

	// First strip spans [0, 3] at the right edge; second starts at 3.
	last := len(first.Upper) - 1
	if first.Lower[last] != 0 || first.Upper[last] != 3 {
		t.Errorf("first strip right edge = [%v, %v], want [0, 3]",
			first.Lower[last], first.Upper[last])
	}
	if second.Lower[last] != 3 || second.Upper[last] != 5 {
		t.Errorf("second strip right edge = [%v, %v], want [3, 5]",
			second.Lower[last], second.Upper[last])
	}

	// Strips never overlap on the shared band.
	if second.Lower[last] < first.Upper[last]-1e-12 {
		t.Error("second strip overlaps the first on the right band")
	}

	// Passed bands stay pristine; the builder owns its own offsets.
	if rightBands[0].Bottom != 0 {
		t.Errorf("rightBands[0].Bottom mutated to %v", rightBands[0].Bottom)
	}

	// Strips are colored by their left label by default.
	if first.Color != "#111111" || second.Color != "#222222" {
		t.Errorf("strip colors = %s,%s, want left-label colors", first.Color, second.Color)
	}
}

func TestBuildStripsRightColor(t *testing.T) {
	records, err := Records([]string{"a"}, []string{"x"}, []float64{1}, nil)
	if err != nil {
		t.Fatalf("Records() error: %v", err)
	}
	f := aggregate(records, []string{"a"}, []string{"x"})
	leftBands, _ := stackBands([]string{"a"}, f.leftMarginal, f.leftTotal, 0.02)
	rightBands, _ := stackBands([]string{"x"}, f.rightMarginal, f.rightTotal, 0.02)

	colors := map[string]string{"a": "#111111", "x": "#333333"}
	strips := buildStrips(f, leftBands, rightBands, 1.0, colors, true)
	if strips[0].Color != "#333333" {
		t.Errorf("Color = %s, want right-label color", strips[0].Color)
	}
}

func TestHasValueLabel(t *testing.T) {
	if (Strip{LeftSum: 0.005}).HasValueLabel() {
		t.Error("tiny flow should not carry a value label")
	}
	if !(Strip{LeftSum: 0.5}).HasValueLabel() {
		t.Error("normal flow should carry a value label")
	}
}
