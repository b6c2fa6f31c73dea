package vocab

import "sort"

// Result is a ranked vocabulary.
type Result struct {
	// Entries holds the emitted entries in final order.
	Entries []Entry
	// Distinct is the number of entries before truncation.
	Distinct int
	// SizeTruncated reports that max vocab removed entries and min count did not cut earlier.
	SizeTruncated bool
	// CountTruncated reports that the min count threshold ended the vocabulary.
	CountTruncated bool
}

// Emitted returns the number of entries to write.
func (r Result) Emitted() int {
	return len(r.Entries)
}

// Rank sorts entries and applies the size cap and count threshold.
//
// When maxVocab cuts the vocabulary, entries are first ordered by count alone so
// that ties at the boundary are not settled alphabetically. The kept prefix is then
// sorted again by count and word. maxVocab 0 disables the cap and minCount <= 1
// disables the threshold. entries is reordered in place.
func Rank(entries []Entry, maxVocab, minCount int64) Result {
	res := Result{Distinct: len(entries)}

	limit := len(entries)
	if maxVocab > 0 && maxVocab < int64(len(entries)) {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Count > entries[j].Count
		})
		limit = int(maxVocab)
	}

	kept := entries[:limit]
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].Count != kept[j].Count {
			return kept[i].Count > kept[j].Count
		}
		return kept[i].Word < kept[j].Word
	})

	n := 0
	for ; n < len(kept); n++ {
		if kept[n].Count < minCount {
			res.CountTruncated = true
			break
		}
	}
	res.Entries = kept[:n]
	res.SizeTruncated = !res.CountTruncated && limit < len(entries)
	return res
}
