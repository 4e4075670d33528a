package sankey

import "sort"

// flows holds the aggregated weight sums for the full cross product of
// left and right labels, indexed [left][right] in stacking order. It is
// computed once per diagram and read-only afterwards.
type flows struct {
	leftSum  [][]float64 // summed LeftWeight per (left, right) pair
	rightSum [][]float64 // summed RightWeight per (left, right) pair
	count    [][]int     // matching record count per pair

	leftMarginal  []float64 // total LeftWeight per left label
	rightMarginal []float64 // total RightWeight per right label
	leftTotal     float64
	rightTotal    float64
}

// aggregate groups records by (left, right) pair and sums the weight
// columns. Pairs with no matching records sum to zero. Pure function of
// the records and the two label orderings.
func aggregate(records []Record, leftLabels, rightLabels []string) *flows {
	leftIdx := indexOf(leftLabels)
	rightIdx := indexOf(rightLabels)

	f := &flows{
		leftSum:       makeMatrix(len(leftLabels), len(rightLabels)),
		rightSum:      makeMatrix(len(leftLabels), len(rightLabels)),
		count:         makeIntMatrix(len(leftLabels), len(rightLabels)),
		leftMarginal:  make([]float64, len(leftLabels)),
		rightMarginal: make([]float64, len(rightLabels)),
	}

	for _, r := range records {
		i, j := leftIdx[r.Left], rightIdx[r.Right]
		f.leftSum[i][j] += r.LeftWeight
		f.rightSum[i][j] += r.RightWeight
		f.count[i][j]++
		f.leftMarginal[i] += r.LeftWeight
		f.rightMarginal[j] += r.RightWeight
		f.leftTotal += r.LeftWeight
		f.rightTotal += r.RightWeight
	}
	return f
}

func indexOf(labels []string) map[string]int {
	idx := make(map[string]int, len(labels))
	for i, l := range labels {
		idx[l] = i
	}
	return idx
}

func makeMatrix(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

func makeIntMatrix(rows, cols int) [][]int {
	m := make([][]int, rows)
	for i := range m {
		m[i] = make([]int, cols)
	}
	return m
}

// LabelsByWeight returns the distinct labels on side s ordered by
// descending cumulative weight. Ties keep first-occurrence order. Use the
// result as Options.LeftOrder or Options.RightOrder to stack the heaviest
// category at the bottom.
func LabelsByWeight(records []Record, s Side) []string {
	labels := distinctLabels(records, s)
	totals := make(map[string]float64, len(labels))
	for _, r := range records {
		totals[s.label(r)] += s.weight(r)
	}
	sort.SliceStable(labels, func(i, j int) bool {
		return totals[labels[i]] > totals[labels[j]]
	})
	return labels
}
