package http

import (
	"context"

	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/domain"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/query"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/service"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/validation"
)

// Catalog is the read side served to visitors.
type Catalog interface {
	Browse(ctx context.Context, state *query.State) (query.Result, error)
	Project(ctx context.Context, slug string) (domain.Project, error)
	Stats(ctx context.Context) (query.Stats, error)
	All(ctx context.Context) ([]domain.Project, error)
}

// Mutations is the admin write side.
type Mutations interface {
	Create(ctx context.Context, form validation.Form, file *service.ImageFile) service.Outcome
	Update(ctx context.Context, form validation.Form, file *service.ImageFile) service.Outcome
	Delete(ctx context.Context, form validation.Form) service.Outcome
}

// Handler bundles the dependencies for catalog HTTP endpoints.
type Handler struct {
	catalog       Catalog
	mutations     Mutations
	maxImageBytes int64
}

func New(catalog Catalog, mutations Mutations, maxImageBytes int64) *Handler {
	if maxImageBytes <= 0 {
		maxImageBytes = validation.DefaultMaxImageBytes
	}
	return &Handler{catalog: catalog, mutations: mutations, maxImageBytes: maxImageBytes}
}
