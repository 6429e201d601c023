package query

import (
	"sort"

	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/domain"
)

// Facets are the selectable values of each dimension, always taken from the
// unfiltered catalog so deselecting a value never hides it.
type Facets struct {
	Years          []int          `json:"years"`
	Languages      []string       `json:"languages"`
	Categories     []string       `json:"categories"`
	Tags           []string       `json:"tags"`
	CategoryCounts map[string]int `json:"category_counts"`
}

// Derive computes facets over the full collection.
func Derive(records []domain.Project) Facets {
	years := map[int]struct{}{}
	langs := map[string]struct{}{}
	cats := map[string]struct{}{}
	tags := map[string]struct{}{}
	counts := make(map[string]int)

	for _, p := range records {
		years[p.Year] = struct{}{}
		for _, l := range languagesOf(p) {
			langs[l] = struct{}{}
		}
		cats[p.Category] = struct{}{}
		for _, t := range p.Tags {
			tags[t] = struct{}{}
		}
		counts[p.Category]++
	}

	f := Facets{
		Years:          make([]int, 0, len(years)),
		Languages:      sortedKeys(langs),
		Categories:     sortedKeys(cats),
		Tags:           sortedKeys(tags),
		CategoryCounts: counts,
	}
	for y := range years {
		f.Years = append(f.Years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(f.Years)))
	return f
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
