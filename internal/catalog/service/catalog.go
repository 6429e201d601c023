package service

import (
	"context"

	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/domain"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/query"
)

// Reader is the cached read side of the record store.
type Reader interface {
	AllProjects(ctx context.Context) ([]domain.Project, error)
	ProjectBySlug(ctx context.Context, slug string) (domain.Project, error)
}

// Catalog answers public read queries.
type Catalog struct {
	reader Reader
}

func NewCatalog(reader Reader) *Catalog {
	return &Catalog{reader: reader}
}

// Browse runs state against the full collection. The stored page is clamped
// in place when the result has fewer pages.
func (c *Catalog) Browse(ctx context.Context, state *query.State) (query.Result, error) {
	records, err := c.reader.AllProjects(ctx)
	if err != nil {
		return query.Result{}, err
	}
	return state.Run(records), nil
}

func (c *Catalog) Project(ctx context.Context, slug string) (domain.Project, error) {
	return c.reader.ProjectBySlug(ctx, slug)
}

func (c *Catalog) Stats(ctx context.Context) (query.Stats, error) {
	records, err := c.reader.AllProjects(ctx)
	if err != nil {
		return query.Stats{}, err
	}
	return query.Summarize(records), nil
}

// All returns every project in display order, for the admin list.
func (c *Catalog) All(ctx context.Context) ([]domain.Project, error) {
	records, err := c.reader.AllProjects(ctx)
	if err != nil {
		return nil, err
	}
	return query.Sort(records), nil
}
