package query

import "strings"

// PageSizes are the page sizes offered to visitors. The first is the default.
var PageSizes = []int{6, 12, 24, 48}

// DefaultPageSize is used whenever a caller asks for a non-positive size.
const DefaultPageSize = 6

// KnownLanguages are the tech/tag values treated as programming languages.
var KnownLanguages = []string{
	"Go",
	"Rust",
	"Python",
	"TypeScript",
	"JavaScript",
	"Java",
	"C#",
	"C++",
	"Ruby",
	"PHP",
	"Swift",
	"Kotlin",
	"Elixir",
	"Scala",
	"Flutter",
}

// Criteria is the set of user-chosen filters. An empty dimension places no constraint.
type Criteria struct {
	Search     string   `json:"search"`
	Years      []int    `json:"years"`
	Categories []string `json:"categories"`
	Languages  []string `json:"languages"`
	Tags       []string `json:"tags"`
}

// HasActiveFilters reports whether any facet (not the search term) is selected.
func (c Criteria) HasActiveFilters() bool {
	return len(c.Years)+len(c.Categories)+len(c.Languages)+len(c.Tags) > 0
}

// Page is the requested window. Index is 1-based.
type Page struct {
	Size  int `json:"size"`
	Index int `json:"index"`
}

// NormalizeSearch trims and lower-cases a search term.
func NormalizeSearch(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

func isKnownLanguage(v string) bool {
	for _, l := range KnownLanguages {
		if l == v {
			return true
		}
	}
	return false
}
