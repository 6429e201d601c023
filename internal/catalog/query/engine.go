// Package query turns a flat project collection and user criteria into a
// deterministic, page-bounded result. It performs no I/O and never mutates
// its inputs, so it is safe to call concurrently.
package query

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/domain"
)

// Result is one page of matches plus facet metadata for the whole catalog.
type Result struct {
	Items        []domain.Project `json:"items"`
	Facets       Facets           `json:"facets"`
	TotalMatched int              `json:"total_matched"`
	TotalAll     int              `json:"total_all"`
	PageIndex    int              `json:"page_index"`
	PageCount    int              `json:"page_count"`
	PageSize     int              `json:"page_size"`
	StartIndex   int              `json:"start_index"`
	EndIndex     int              `json:"end_index"`
}

// Run sorts, filters and paginates records.
func Run(records []domain.Project, c Criteria, p Page) Result {
	sorted := Sort(records)
	matched := Filter(sorted, c)

	size := p.Size
	if size <= 0 {
		size = DefaultPageSize
	}

	pageCount := (len(matched) + size - 1) / size
	index := clampPage(p.Index, pageCount)

	start := (index - 1) * size
	if start > len(matched) {
		start = len(matched)
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}

	items := make([]domain.Project, end-start)
	copy(items, matched[start:end])

	return Result{
		Items:        items,
		Facets:       Derive(records),
		TotalMatched: len(matched),
		TotalAll:     len(records),
		PageIndex:    index,
		PageCount:    pageCount,
		PageSize:     size,
		StartIndex:   start,
		EndIndex:     end,
	}
}

// clampPage bounds index into [1, max(1, pageCount)].
func clampPage(index, pageCount int) int {
	last := pageCount
	if last < 1 {
		last = 1
	}
	if index < 1 {
		return 1
	}
	if index > last {
		return last
	}
	return index
}

// Sort returns a copy ordered featured first, then newest year, then title
// (case-insensitive, English collation). Equal keys keep their input order.
func Sort(records []domain.Project) []domain.Project {
	out := make([]domain.Project, len(records))
	copy(out, records)

	// Collators keep internal buffers, one per call.
	col := collate.New(language.English, collate.IgnoreCase)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Featured != b.Featured {
			return a.Featured
		}
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		return col.CompareString(a.Title, b.Title) < 0
	})
	return out
}

// Filter keeps records matching every non-empty dimension of c. Within a
// dimension any selected value matches.
func Filter(records []domain.Project, c Criteria) []domain.Project {
	term := NormalizeSearch(c.Search)
	out := make([]domain.Project, 0, len(records))
	for _, p := range records {
		if matches(p, c, term) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p domain.Project, c Criteria, term string) bool {
	if term != "" && !strings.Contains(searchCorpus(p), term) {
		return false
	}
	if len(c.Years) > 0 && !containsInt(c.Years, p.Year) {
		return false
	}
	if len(c.Categories) > 0 && !containsString(c.Categories, p.Category) {
		return false
	}
	if len(c.Languages) > 0 && !includesAny(languagesOf(p), c.Languages) {
		return false
	}
	if len(c.Tags) > 0 && !includesAny(p.Tags, c.Tags) {
		return false
	}
	return true
}

// searchCorpus is rebuilt for every record on every call.
func searchCorpus(p domain.Project) string {
	parts := []string{
		p.Title,
		p.Summary,
		p.Description,
		p.Category,
		strings.Join(p.Tags, " "),
		strings.Join(p.Tech, " "),
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// languagesOf is the tech stack plus any tags that name a known language.
func languagesOf(p domain.Project) []string {
	out := make([]string, 0, len(p.Tech)+len(p.Tags))
	out = append(out, p.Tech...)
	for _, t := range p.Tags {
		if isKnownLanguage(t) {
			out = append(out, t)
		}
	}
	return out
}

func includesAny(haystack, needles []string) bool {
	for _, n := range needles {
		if containsString(haystack, n) {
			return true
		}
	}
	return false
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func containsInt(list []int, v int) bool {
	for _, n := range list {
		if n == v {
			return true
		}
	}
	return false
}

// ParseYears converts facet values such as "2023" into integers, skipping junk.
func ParseYears(values []string) []int {
	out := make([]int, 0, len(values))
	for _, v := range values {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}
