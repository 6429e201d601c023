package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/domain"
)

const projectColumns = `id::text, slug, title, summary, description, category, year, status,
       tech, tags, links, featured, metrics, image, created_at, updated_at`

// ProjectRepository provides persistence operations for catalog projects.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// List returns every project in display order.
func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	q := `
SELECT ` + projectColumns + `
FROM projects
ORDER BY featured DESC, year DESC, lower(title) ASC, created_at ASC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to load projects: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	return out, nil
}

// GetBySlug returns domain.ErrNotFound when no project has the slug.
func (r *ProjectRepository) GetBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	q := `
SELECT ` + projectColumns + `
FROM projects
WHERE slug = $1;
`
	p, err := scanProject(r.db.QueryRowContext(ctx, q, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	return &p, nil
}

// Insert creates a project and returns the stored row.
func (r *ProjectRepository) Insert(ctx context.Context, in domain.ProjectInput) (*domain.Project, error) {
	q := `
INSERT INTO projects (slug, title, summary, description, category, year, status,
                      tech, tags, links, featured, metrics, image)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING ` + projectColumns + `;
`
	args, err := inputArgs(in)
	if err != nil {
		return nil, err
	}
	args = append(args, nullable(in.ImageURL))

	p, err := scanProject(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", mapWriteErr(err))
	}
	return &p, nil
}

// Update rewrites every editable column of the project with id. The image
// column is only touched when img says so.
func (r *ProjectRepository) Update(ctx context.Context, id string, in domain.ProjectInput, img domain.ImageChange) (*domain.Project, error) {
	args, err := inputArgs(in)
	if err != nil {
		return nil, err
	}

	sets := []string{
		"slug = $1", "title = $2", "summary = $3", "description = $4", "category = $5",
		"year = $6", "status = $7", "tech = $8", "tags = $9", "links = $10",
		"featured = $11", "metrics = $12",
	}
	switch img.Mode {
	case domain.ImageSet:
		args = append(args, img.URL)
		sets = append(sets, "image = $"+strconv.Itoa(len(args)))
	case domain.ImageClear:
		sets = append(sets, "image = NULL")
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	q := `
UPDATE projects
SET ` + strings.Join(sets, ", ") + `
WHERE id = $` + strconv.Itoa(len(args)) + `::uuid
RETURNING ` + projectColumns + `;
`
	p, err := scanProject(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", mapWriteErr(err))
	}
	return &p, nil
}

// Delete removes the project with id. Deleting a missing id is not an error.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM projects WHERE id = $1::uuid;`
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// UpsertBySlug inserts a project or overwrites the one sharing its slug.
func (r *ProjectRepository) UpsertBySlug(ctx context.Context, in domain.ProjectInput) (*domain.Project, error) {
	q := `
INSERT INTO projects (slug, title, summary, description, category, year, status,
                      tech, tags, links, featured, metrics, image)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (slug) DO UPDATE
SET title = EXCLUDED.title,
    summary = EXCLUDED.summary,
    description = EXCLUDED.description,
    category = EXCLUDED.category,
    year = EXCLUDED.year,
    status = EXCLUDED.status,
    tech = EXCLUDED.tech,
    tags = EXCLUDED.tags,
    links = EXCLUDED.links,
    featured = EXCLUDED.featured,
    metrics = EXCLUDED.metrics,
    image = EXCLUDED.image,
    updated_at = now()
RETURNING ` + projectColumns + `;
`
	args, err := inputArgs(in)
	if err != nil {
		return nil, err
	}
	args = append(args, nullable(in.ImageURL))

	p, err := scanProject(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert project %s: %w", in.Slug, err)
	}
	return &p, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(s scanner) (domain.Project, error) {
	var (
		p              domain.Project
		status         string
		tech, tags     pq.StringArray
		links          []byte
		metrics, image sql.NullString
	)
	err := s.Scan(
		&p.ID, &p.Slug, &p.Title, &p.Summary, &p.Description, &p.Category, &p.Year, &status,
		&tech, &tags, &links, &p.Featured, &metrics, &image, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Project{}, err
	}

	p.Status = domain.Status(status)
	p.Tech = []string(tech)
	if p.Tech == nil {
		p.Tech = []string{}
	}
	if len(tags) > 0 {
		p.Tags = []string(tags)
	}
	if len(links) > 0 {
		if err := json.Unmarshal(links, &p.Links); err != nil {
			return domain.Project{}, fmt.Errorf("decode links: %w", err)
		}
	}
	if p.Links == nil {
		p.Links = []domain.Link{}
	}
	if metrics.Valid {
		p.Metrics = &metrics.String
	}
	if image.Valid {
		p.Image = &image.String
	}
	return p, nil
}

// inputArgs returns $1..$12 shared by insert, update and upsert.
func inputArgs(in domain.ProjectInput) ([]any, error) {
	links, err := json.Marshal(in.Links)
	if err != nil {
		return nil, fmt.Errorf("encode links: %w", err)
	}
	var tags any
	if len(in.Tags) > 0 {
		tags = pq.Array(in.Tags)
	}
	return []any{
		in.Slug,
		in.Title,
		in.Summary,
		in.Description,
		in.Category,
		in.Year,
		string(in.Status),
		pq.Array(in.Tech),
		tags,
		links,
		in.Featured,
		nullable(in.Metrics),
	}, nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// mapWriteErr turns a unique violation on slug into domain.ErrSlugTaken.
func mapWriteErr(err error) error {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrSlugTaken
	}
	return err
}
