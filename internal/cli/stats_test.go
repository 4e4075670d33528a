package cli

import (
	"testing"

	"github.com/mlortz/sankey/pkg/sankey"
)

func TestSideTotals(t *testing.T) {
	records := []sankey.Record{
		{Left: "a", Right: "x", LeftWeight: 2, RightWeight: 3},
		{Left: "a", Right: "y", LeftWeight: 1, RightWeight: 1},
		{Left: "b", Right: "x", LeftWeight: 5, RightWeight: 5},
	}

	left := sideTotals(records, sankey.SideLeft)
	if left["a"] != 3 || left["b"] != 5 {
		t.Errorf("left totals = %v, want a:3 b:5", left)
	}

	right := sideTotals(records, sankey.SideRight)
	if right["x"] != 8 || right["y"] != 1 {
		t.Errorf("right totals = %v, want x:8 y:1", right)
	}
}

func TestDistinctPairs(t *testing.T) {
	records := []sankey.Record{
		{Left: "a", Right: "x", LeftWeight: 1, RightWeight: 1},
		{Left: "a", Right: "x", LeftWeight: 2, RightWeight: 2},
		{Left: "a", Right: "y", LeftWeight: 1, RightWeight: 1},
		{Left: "b", Right: "x", LeftWeight: 1, RightWeight: 1},
	}

	if got := distinctPairs(records); got != 3 {
		t.Errorf("distinctPairs() = %d, want 3", got)
	}
}

func TestSumTotals(t *testing.T) {
	totals := map[string]float64{"a": 1.5, "b": 2.5}
	if got := sumTotals(totals); got != 4 {
		t.Errorf("sumTotals() = %g, want 4", got)
	}
}

func TestFormatWeight(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{4, "4"},
		{1.5, "1.5"},
		{0, "0"},
	}

	for _, tt := range tests {
		if got := formatWeight(tt.in); got != tt.want {
			t.Errorf("formatWeight(%g) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPairTotals(t *testing.T) {
	records := []sankey.Record{
		{Left: "a", Right: "x", LeftWeight: 1, RightWeight: 1},
		{Left: "b", Right: "x", LeftWeight: 5, RightWeight: 5},
		{Left: "a", Right: "x", LeftWeight: 2, RightWeight: 2},
	}

	flows := pairTotals(records)
	if len(flows) != 2 {
		t.Fatalf("got %d flows, want 2", len(flows))
	}
	if flows[0].left != "b" || flows[0].sum != 5 {
		t.Errorf("flows[0] = %+v, want b→x sum 5", flows[0])
	}
	if flows[1].left != "a" || flows[1].sum != 3 {
		t.Errorf("flows[1] = %+v, want a→x sum 3", flows[1])
	}
}
