package output

import (
	"sort"
)

// SortEntries sorts entries by weight DESC, path ASC
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		// Primary: weight DESC
		if entries[i].Weight != entries[j].Weight {
			return entries[i].Weight > entries[j].Weight
		}
		// Secondary: path ASC
		return entries[i].Path < entries[j].Path
	})
}

// Summarize totals the weight of entries.
func Summarize(entries []Entry) Summary {
	s := Summary{Paths: len(entries)}
	for _, e := range entries {
		s.TotalWeight += e.Weight
	}
	return s
}

// Top returns the n heaviest entries with their share of the total weight.
// entries must already be sorted; n <= 0 keeps everything.
func Top(entries []Entry, n int) []Row {
	total := Summarize(entries).TotalWeight
	if n <= 0 || n > len(entries) {
		n = len(entries)
	}

	rows := make([]Row, n)
	for i := 0; i < n; i++ {
		rows[i].Entry = entries[i]
		if total > 0 {
			rows[i].Share = RoundFloat(float64(entries[i].Weight) / float64(total))
		}
	}
	return rows
}
