package query_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/domain"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/query"
)

func catalogOf(n int) []domain.Project {
	out := make([]domain.Project, n)
	for i := range out {
		p := project(fmt.Sprintf("p%02d", i), fmt.Sprintf("Project %02d", i), 2020+i%3, false)
		if i%2 == 0 {
			p.Category = "Web"
		}
		out[i] = p
	}
	return out
}

func TestStateResetsPage(t *testing.T) {
	records := catalogOf(30)

	t.Run("toggling a facet returns to page one", func(t *testing.T) {
		s := query.NewState(6)
		s.GoToPage(3)
		s.ToggleCategory("Web")
		assert.Equal(t, 1, s.Page())
		assert.Equal(t, []string{"Web"}, s.Criteria().Categories)
	})

	t.Run("changing page size returns to page one", func(t *testing.T) {
		s := query.NewState(6)
		s.GoToPage(4)
		s.SetPageSize(12)
		assert.Equal(t, 1, s.Page())
		assert.Equal(t, 12, s.PageSize())
	})

	t.Run("same normalized search keeps the page", func(t *testing.T) {
		s := query.NewState(6)
		s.SetSearch("project")
		s.GoToPage(2)
		s.SetSearch("  PROJECT ")
		assert.Equal(t, 2, s.Page())
		s.SetSearch("project 1")
		assert.Equal(t, 1, s.Page())
	})

	t.Run("toggle twice deselects", func(t *testing.T) {
		s := query.NewState(6)
		s.ToggleYear(2021)
		s.ToggleYear(2021)
		s.ToggleTag("x")
		s.ToggleLanguage("Go")
		assert.Empty(t, s.Criteria().Years)
		assert.True(t, s.Criteria().HasActiveFilters())
		s.ClearFilters()
		assert.False(t, s.Criteria().HasActiveFilters())
	})

	t.Run("run re-clamps when results shrink", func(t *testing.T) {
		s := query.NewState(6)
		s.GoToPage(5)
		res := s.Run(records)
		assert.Equal(t, 5, res.PageIndex)

		s.SetSearch("project 0")
		s.GoToPage(9)
		res = s.Run(records)
		assert.Equal(t, res.PageCount, res.PageIndex)
		assert.Equal(t, res.PageIndex, s.Page())
	})

	t.Run("next and prev stay in bounds", func(t *testing.T) {
		s := query.NewState(24)
		s.Prev()
		assert.Equal(t, 1, s.Page())
		s.Next()
		s.Next()
		res := s.Run(records)
		assert.Equal(t, 2, res.PageIndex)
		assert.Equal(t, 2, s.Page())
	})
}

func TestSummarize(t *testing.T) {
	records := []domain.Project{
		project("z", "Zeta", 2022, false),
		project("a", "Alpha", 2023, true),
	}
	records[1].Category = "Web"

	st := query.Summarize(records)
	assert.Equal(t, 2, st.Total)
	assert.Equal(t, 1, st.Featured)
	assert.Equal(t, 2, st.Categories)
	if assert.NotNil(t, st.Latest) {
		assert.Equal(t, "Alpha", st.Latest.Title)
	}

	assert.Nil(t, query.Summarize(nil).Latest)
}

func TestSummarize_LatestIgnoresFeatured(t *testing.T) {
	st := query.Summarize([]domain.Project{
		project("old", "Old Featured", 2019, true),
		project("new", "Brand New", 2025, false),
		project("also", "Another New", 2025, false),
	})
	if assert.NotNil(t, st.Latest) {
		assert.Equal(t, "Another New", st.Latest.Title, "same year falls back to title order")
	}
}

func TestPrimaryLanguage(t *testing.T) {
	p := domain.Project{Tech: []string{"Postgres", "Rust"}, Category: "Infra"}
	assert.Equal(t, "Rust", query.PrimaryLanguage(p))

	p = domain.Project{Tech: []string{"Postgres"}, Tags: []string{"Elixir"}}
	assert.Equal(t, "Elixir", query.PrimaryLanguage(p))

	p = domain.Project{Tech: []string{"Postgres"}}
	assert.Equal(t, "Postgres", query.PrimaryLanguage(p))

	p = domain.Project{Category: "Infra"}
	assert.Equal(t, "Infra", query.PrimaryLanguage(p))
}
