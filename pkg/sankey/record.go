package sankey

import "github.com/mlortz/sankey/pkg/errors"

// Record is one observation of flow from a left category to a right
// category. LeftWeight is the magnitude of the flow at the left edge and
// RightWeight at the right edge; the two may differ when the quantity
// changes across the flow.
//
// An empty Left or Right label is treated as a null value and rejected by
// [Compute] before any aggregation runs.
type Record struct {
	Left        string
	Right       string
	LeftWeight  float64
	RightWeight float64
}

// Records assembles a record slice from parallel label and weight slices.
//
// left and right must have equal length. leftWeight may be nil, in which
// case every record gets weight 1. rightWeight may be nil, in which case
// each record's right weight defaults to its left weight. When supplied,
// weight slices must match the label slices in length.
func Records(left, right []string, leftWeight, rightWeight []float64) ([]Record, error) {
	if len(left) != len(right) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"left and right must have equal length: %d != %d", len(left), len(right))
	}
	if leftWeight != nil && len(leftWeight) != len(left) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"leftWeight length %d does not match %d records", len(leftWeight), len(left))
	}
	if rightWeight != nil && len(rightWeight) != len(left) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"rightWeight length %d does not match %d records", len(rightWeight), len(left))
	}

	records := make([]Record, len(left))
	for i := range left {
		r := Record{Left: left[i], Right: right[i], LeftWeight: 1}
		if leftWeight != nil {
			r.LeftWeight = leftWeight[i]
		}
		r.RightWeight = r.LeftWeight
		if rightWeight != nil {
			r.RightWeight = rightWeight[i]
		}
		records[i] = r
	}
	return records, nil
}

// Side identifies one side of the diagram.
type Side int

const (
	// SideLeft is the left (source) side of the diagram.
	SideLeft Side = iota
	// SideRight is the right (target) side of the diagram.
	SideRight
)

// String returns "left" or "right".
func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// label returns the record's label on side s.
func (s Side) label(r Record) string {
	if s == SideRight {
		return r.Right
	}
	return r.Left
}

// weight returns the record's weight on side s.
func (s Side) weight(r Record) float64 {
	if s == SideRight {
		return r.RightWeight
	}
	return r.LeftWeight
}
