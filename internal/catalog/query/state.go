package query

import "github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/domain"

// State is a visitor's browse session. Any change to the criteria or the page
// size sends the visitor back to page 1; navigation is clamped on Run.
type State struct {
	criteria Criteria
	pageSize int
	page     int
}

// NewState starts on page 1 with the given size (or the default).
func NewState(pageSize int) State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return State{pageSize: pageSize, page: 1}
}

func (s State) Criteria() Criteria { return s.criteria }
func (s State) PageSize() int      { return s.pageSize }
func (s State) Page() int          { return s.page }

func (s *State) SetSearch(term string) {
	if NormalizeSearch(term) != NormalizeSearch(s.criteria.Search) {
		s.page = 1
	}
	s.criteria.Search = term
}

func (s *State) SetPageSize(size int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	s.pageSize = size
	s.page = 1
}

func (s *State) ToggleYear(year int) {
	s.criteria.Years = toggleInt(s.criteria.Years, year)
	s.page = 1
}

func (s *State) ToggleCategory(v string) {
	s.criteria.Categories = toggleString(s.criteria.Categories, v)
	s.page = 1
}

func (s *State) ToggleLanguage(v string) {
	s.criteria.Languages = toggleString(s.criteria.Languages, v)
	s.page = 1
}

func (s *State) ToggleTag(v string) {
	s.criteria.Tags = toggleString(s.criteria.Tags, v)
	s.page = 1
}

// ClearFilters drops every facet selection but keeps the search term.
func (s *State) ClearFilters() {
	s.criteria.Years = nil
	s.criteria.Categories = nil
	s.criteria.Languages = nil
	s.criteria.Tags = nil
	s.page = 1
}

// GoToPage requests a page; out-of-range values are clamped when the state runs.
func (s *State) GoToPage(page int) {
	if page < 1 {
		page = 1
	}
	s.page = page
}

func (s *State) Next() { s.page++ }

func (s *State) Prev() {
	if s.page > 1 {
		s.page--
	}
}

// Run evaluates the state against records and re-clamps the stored page so
// later Next/Prev calls start from a valid position.
func (s *State) Run(records []domain.Project) Result {
	res := Run(records, s.criteria, Page{Size: s.pageSize, Index: s.page})
	s.page = res.PageIndex
	return res
}

func toggleString(list []string, v string) []string {
	for i, s := range list {
		if s == v {
			out := append([]string(nil), list[:i]...)
			return append(out, list[i+1:]...)
		}
	}
	return append(append([]string(nil), list...), v)
}

func toggleInt(list []int, v int) []int {
	for i, n := range list {
		if n == v {
			out := append([]int(nil), list[:i]...)
			return append(out, list[i+1:]...)
		}
	}
	return append(append([]int(nil), list...), v)
}
