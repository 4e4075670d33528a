package sankey

import (
	"strings"

	"github.com/mlortz/sankey/pkg/errors"
)

// maxReportedLabels caps how many labels a mismatch error lists per set.
const maxReportedLabels = 20

// checkNulls rejects any record with an empty left or right label.
// This check runs before all other processing.
func checkNulls(records []Record) error {
	for i, r := range records {
		if r.Left == "" || r.Right == "" {
			return errors.New(errors.ErrCodeNullInData,
				"record %d has a null category; sankey diagrams do not support null values", i)
		}
	}
	return nil
}

// distinctLabels returns the distinct labels on side s in first-occurrence order.
func distinctLabels(records []Record, s Side) []string {
	seen := make(map[string]struct{}, len(records))
	var labels []string
	for _, r := range records {
		l := s.label(r)
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		labels = append(labels, l)
	}
	return labels
}

// resolveLabels returns the stacking order for side s. With no declared
// labels the order is derived from first occurrence in the data.
// Declared labels must match the observed set exactly; ordering is the
// caller's and is never sorted.
func resolveLabels(declared []string, records []Record, s Side) ([]string, error) {
	observed := distinctLabels(records, s)
	if len(declared) == 0 {
		return observed, nil
	}

	declaredSet := make(map[string]struct{}, len(declared))
	for _, l := range declared {
		declaredSet[l] = struct{}{}
	}
	observedSet := make(map[string]struct{}, len(observed))
	for _, l := range observed {
		observedSet[l] = struct{}{}
	}

	if !sameSet(declaredSet, observedSet) {
		return nil, errors.New(errors.ErrCodeLabelMismatch,
			"%s labels and data do not match. Labels: %s. Data: %s",
			s, truncatedList(declared), truncatedList(observed))
	}
	return declared, nil
}

func sameSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// truncatedList joins at most maxReportedLabels labels for error messages.
func truncatedList(labels []string) string {
	if len(labels) > maxReportedLabels {
		return strings.Join(labels[:maxReportedLabels], ",") + ",..."
	}
	return strings.Join(labels, ",")
}
