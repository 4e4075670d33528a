package sankey

import (
	"math"
	"testing"
)

func TestStackBands(t *testing.T) {
	tests := []struct {
		name      string
		labels    []string
		marginals []float64
		total     float64
		gap       float64
		want      []Band
		wantTop   float64
	}{
		{
			name:      "single band starts at zero",
			labels:    []string{"a"},
			marginals: []float64{5},
			total:     5,
			gap:       0.02,
			want:      []Band{{Label: "a", Bottom: 0, Top: 5, Total: 5}},
			wantTop:   5,
		},
		{
			name:      "gap inserted between consecutive bands",
			labels:    []string{"a", "b"},
			marginals: []float64{3, 2},
			total:     5,
			gap:       0.02,
			want: []Band{
				{Label: "a", Bottom: 0, Top: 3, Total: 3},
				{Label: "b", Bottom: 3.1, Top: 5.1, Total: 2},
			},
			wantTop: 5.1,
		},
		{
			name:      "zero-weight band is legal",
			labels:    []string{"a", "empty", "b"},
			marginals: []float64{2, 0, 2},
			total:     4,
			gap:       0.02,
			want: []Band{
				{Label: "a", Bottom: 0, Top: 2, Total: 2},
				{Label: "empty", Bottom: 2.08, Top: 2.08, Total: 0},
				{Label: "b", Bottom: 2.16, Top: 4.16, Total: 2},
			},
			wantTop: 4.16,
		},
		{
			name:      "zero gap fraction stacks flush",
			labels:    []string{"a", "b"},
			marginals: []float64{1, 1},
			total:     2,
			gap:       0,
			want: []Band{
				{Label: "a", Bottom: 0, Top: 1, Total: 1},
				{Label: "b", Bottom: 1, Top: 2, Total: 1},
			},
			wantTop: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bands, top := stackBands(tt.labels, tt.marginals, tt.total, tt.gap)
			if len(bands) != len(tt.want) {
				t.Fatalf("got %d bands, want %d", len(bands), len(tt.want))
			}
			for i, b := range bands {
				w := tt.want[i]
				if b.Label != w.Label ||
					math.Abs(b.Bottom-w.Bottom) > 1e-12 ||
					math.Abs(b.Top-w.Top) > 1e-12 ||
					b.Total != w.Total {
					t.Errorf("band[%d] = %+v, want %+v", i, b, w)
				}
			}
			if math.Abs(top-tt.wantTop) > 1e-12 {
				t.Errorf("topEdge = %v, want %v", top, tt.wantTop)
			}
		})
	}
}

func TestStackBandsInvariants(t *testing.T) {
	labels := []string{"a", "b", "c", "d"}
	marginals := []float64{4, 0.5, 3, 2}
	total := 9.5
	gap := 0.02

	bands, top := stackBands(labels, marginals, total, gap)

	// top >= bottom for every band.
	for i, b := range bands {
		if b.Top < b.Bottom {
			t.Errorf("band[%d] inverted: %+v", i, b)
		}
	}

	// Consecutive bands never overlap and are separated by exactly the gap.
	for i := 1; i < len(bands); i++ {
		sep := bands[i].Bottom - bands[i-1].Top
		if math.Abs(sep-gap*total) > 1e-12 {
			t.Errorf("separation between band %d and %d = %v, want %v", i-1, i, sep, gap*total)
		}
	}

	// topEdge = sum of marginals + gap*total*(n-1).
	var sum float64
	for _, m := range marginals {
		sum += m
	}
	want := sum + gap*total*float64(len(labels)-1)
	if math.Abs(top-want) > 1e-12 {
		t.Errorf("topEdge = %v, want %v", top, want)
	}
}

func TestBandHelpers(t *testing.T) {
	b := Band{Bottom: 2, Top: 6}
	if b.Height() != 4 {
		t.Errorf("Height() = %v, want 4", b.Height())
	}
	if b.CenterY() != 4 {
		t.Errorf("CenterY() = %v, want 4", b.CenterY())
	}
}
