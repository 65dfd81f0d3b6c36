package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/bitreel/internal/domain"
)

// FilterResult is a history record matched by a query
type FilterResult struct {
	Record         domain.JobRecord
	MatchedIndexes []int // positions in Haystack that matched
	Haystack       string
	Score          int
}

// historyIndex implements sahilm/fuzzy.Source over job records
type historyIndex struct {
	records []domain.JobRecord
	lower   []string // pre-computed "direction source -> dest"
}

func newHistoryIndex(records []domain.JobRecord) *historyIndex {
	idx := &historyIndex{records: records, lower: make([]string, len(records))}
	for i, r := range records {
		idx.lower[i] = strings.ToLower(Haystack(r))
	}
	return idx
}

// String returns the searchable text at index i (implements fuzzy.Source)
func (idx *historyIndex) String(i int) string { return idx.lower[i] }

// Len returns the number of records (implements fuzzy.Source)
func (idx *historyIndex) Len() int { return len(idx.records) }

// Haystack is the text a history query is matched against
func Haystack(r domain.JobRecord) string {
	return string(r.Direction) + " " + r.Source + " -> " + r.Dest
}

// FilterHistory fuzzy-matches query against direction and paths of each
// record. Results are best match first; an empty query returns every
// record in its original order.
func FilterHistory(query string, records []domain.JobRecord) []FilterResult {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]FilterResult, len(records))
		for i, r := range records {
			out[i] = FilterResult{Record: r, Haystack: Haystack(r)}
		}
		return out
	}

	idx := newHistoryIndex(records)
	matches := fuzzy.FindFrom(strings.ToLower(query), idx)

	out := make([]FilterResult, 0, len(matches))
	for _, m := range matches {
		r := records[m.Index]
		out = append(out, FilterResult{
			Record:         r,
			MatchedIndexes: m.MatchedIndexes,
			Haystack:       Haystack(r),
			Score:          m.Score,
		})
	}
	return out
}
