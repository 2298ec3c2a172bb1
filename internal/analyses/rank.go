package analyses

import "sort"

// DefaultTopK caps how many sections an analysis returns.
const DefaultTopK = 10

// rankSections orders sections by score descending, keeps the first limit
// entries and assigns dense 1-based ranks. The sort is stable so tied scores
// keep their insertion order.
func rankSections(sections []scoredSection, limit int) []DocumentSection {
	if limit <= 0 {
		limit = DefaultTopK
	}

	sorted := make([]scoredSection, len(sections))
	copy(sorted, sections)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	out := make([]DocumentSection, 0, len(sorted))
	for i, s := range sorted {
		out = append(out, DocumentSection{
			Page:    s.Page,
			Rank:    i + 1,
			Score:   s.Score,
			Text:    s.Text,
			Summary: s.Summary,
		})
	}
	return out
}
