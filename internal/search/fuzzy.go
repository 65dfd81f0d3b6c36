package search

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxSuggestions bounds how many alternatives Suggest returns
const maxSuggestions = 3

// Suggest returns files next to a missing path whose names look like the
// requested one: either the name is a fold-insensitive subsequence of the
// candidate, or it is within a small edit distance of it.
func Suggest(missing string) []string {
	dir := filepath.Dir(missing)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return SuggestFrom(filepath.Base(missing), names, dir)
}

// SuggestFrom ranks names against base and joins the winners onto dir
func SuggestFrom(base string, names []string, dir string) []string {
	type candidate struct {
		name     string
		distance int
	}

	lowerBase := strings.ToLower(base)
	budget := allowedEdits(len([]rune(base)))
	seen := make(map[string]bool)
	var found []candidate

	for _, r := range fuzzy.RankFindFold(base, names) {
		seen[r.Target] = true
		found = append(found, candidate{r.Target, r.Distance})
	}
	for _, n := range names {
		if seen[n] {
			continue
		}
		if d := fuzzy.LevenshteinDistance(lowerBase, strings.ToLower(n)); d <= budget {
			found = append(found, candidate{n, d})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].distance != found[j].distance {
			return found[i].distance < found[j].distance
		}
		return found[i].name < found[j].name
	})

	var out []string
	for _, c := range found {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, filepath.Join(dir, c.name))
	}
	return out
}

// allowedEdits returns the typo budget for a name of the given length
func allowedEdits(length int) int {
	switch {
	case length <= 3:
		return 0
	case length <= 8:
		return 1
	default:
		return 2
	}
}
