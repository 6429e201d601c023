package repository

import (
	"context"
	"fmt"
)

// Schema creates the projects table when it does not exist yet.
const Schema = `
CREATE TABLE IF NOT EXISTS projects (
    id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    slug        text NOT NULL UNIQUE,
    title       text NOT NULL,
    summary     text NOT NULL,
    description text NOT NULL,
    category    text NOT NULL,
    year        integer NOT NULL CHECK (year >= 1900),
    status      text NOT NULL CHECK (status IN ('Shipped', 'In Beta', 'Exploration')),
    tech        text[] NOT NULL,
    tags        text[],
    links       jsonb NOT NULL DEFAULT '[]'::jsonb,
    featured    boolean NOT NULL DEFAULT false,
    metrics     text,
    image       text,
    created_at  timestamptz NOT NULL DEFAULT now(),
    updated_at  timestamptz NOT NULL DEFAULT now()
);
`

// Migrate applies Schema.
func (r *ProjectRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("migrate projects: %w", err)
	}
	return nil
}
