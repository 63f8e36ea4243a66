package analysis

import (
	"sort"

	"goeda/domain/core"
)

// OtherLabel is the aggregate bucket for collapsed categories.
const OtherLabel = "Other"

// countValues tallies non-missing values and records first-seen order.
// Missing cells (empty strings) are not counted.
func countValues(values []string) (map[string]int, []string) {
	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		if v == "" {
			continue
		}
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	return counts, order
}

// rankByFrequency returns values ordered by descending count. Equal counts
// keep first-seen order; the stable sort pins this down deterministically.
func rankByFrequency(counts map[string]int, firstSeen []string) []string {
	ranked := make([]string, len(firstSeen))
	copy(ranked, firstSeen)
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})
	return ranked
}

// ReduceCardinality collapses a categorical column to its top
// (maxCategories - 1) most frequent values; every other value, including
// missing markers, is relabeled to "Other". The input is never mutated.
//
// A column whose distinct non-missing count already fits within
// maxCategories is returned unchanged. maxCategories == 1 collapses all
// values to "Other". Frequency ties rank by first appearance in the column.
func ReduceCardinality(values []string, maxCategories int) ([]string, bool, error) {
	if maxCategories < 1 {
		return nil, false, core.NewInvalidParameterError("max_categories", maxCategories)
	}

	out := make([]string, len(values))
	copy(out, values)

	if len(values) == 0 {
		return out, false, nil
	}

	counts, firstSeen := countValues(values)
	if len(counts) <= maxCategories {
		return out, false, nil
	}

	ranked := rankByFrequency(counts, firstSeen)
	top := make(map[string]struct{}, maxCategories-1)
	for _, v := range ranked[:maxCategories-1] {
		top[v] = struct{}{}
	}

	for i, v := range out {
		if _, keep := top[v]; !keep {
			out[i] = OtherLabel
		}
	}
	return out, true, nil
}
