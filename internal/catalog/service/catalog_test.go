package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/domain"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/query"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/service"
)

type fakeReader struct {
	projects []domain.Project
	err      error
}

func (r fakeReader) AllProjects(context.Context) ([]domain.Project, error) {
	return r.projects, r.err
}

func (r fakeReader) ProjectBySlug(_ context.Context, slug string) (domain.Project, error) {
	for _, p := range r.projects {
		if p.Slug == slug {
			return p, nil
		}
	}
	return domain.Project{}, domain.ErrNotFound
}

func tenProjects() []domain.Project {
	out := make([]domain.Project, 10)
	for i := range out {
		out[i] = domain.Project{
			Slug:     fmt.Sprintf("p-%02d", i),
			Title:    fmt.Sprintf("Project %02d", i),
			Category: "Web",
			Year:     2020,
			Tech:     []string{"Go"},
		}
	}
	return out
}

func TestCatalog_BrowseClampsPage(t *testing.T) {
	c := service.NewCatalog(fakeReader{projects: tenProjects()})
	state := query.NewState(6)
	state.GoToPage(5)

	res, err := c.Browse(context.Background(), &state)
	require.NoError(t, err)
	assert.Equal(t, 2, res.PageIndex)
	assert.Equal(t, 2, res.PageCount)
	assert.Len(t, res.Items, 4)
	assert.Equal(t, 2, state.Page())
}

func TestCatalog_ReadErrorsPropagate(t *testing.T) {
	c := service.NewCatalog(fakeReader{err: errors.New("db down")})
	state := query.NewState(6)

	_, err := c.Browse(context.Background(), &state)
	assert.Error(t, err)
	_, err = c.Stats(context.Background())
	assert.Error(t, err)
	_, err = c.All(context.Background())
	assert.Error(t, err)
}

func TestCatalog_ProjectAndAll(t *testing.T) {
	records := []domain.Project{
		{Slug: "zeta", Title: "Zeta", Year: 2022, Category: "Data"},
		{Slug: "alpha", Title: "Alpha", Year: 2023, Featured: true, Category: "Web"},
	}
	c := service.NewCatalog(fakeReader{projects: records})
	ctx := context.Background()

	all, err := c.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alpha", all[0].Slug)
	assert.Equal(t, "zeta", all[1].Slug)

	p, err := c.Project(ctx, "zeta")
	require.NoError(t, err)
	assert.Equal(t, "Zeta", p.Title)

	_, err = c.Project(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	st, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Total)
	assert.Equal(t, 1, st.Featured)
	assert.Equal(t, 2, st.Categories)
}
