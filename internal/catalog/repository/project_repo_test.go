package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/domain"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/repository"
)

var columns = []string{
	"id", "slug", "title", "summary", "description", "category", "year", "status",
	"tech", "tags", "links", "featured", "metrics", "image", "created_at", "updated_at",
}

func setupProjectRepo(t *testing.T) (*repository.ProjectRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := repository.NewProjectRepository(db)
	return repo, mock, db
}

func sampleInput() domain.ProjectInput {
	return domain.ProjectInput{
		Slug:        "atlas",
		Title:       "Atlas",
		Summary:     "Trip planner",
		Description: "Plans trips",
		Category:    "Web",
		Year:        2023,
		Status:      domain.StatusShipped,
		Tech:        []string{"Go", "Postgres"},
		Links:       []domain.Link{{Label: "Live", Href: "https://atlas.example.com"}},
	}
}

func atlasRow(now time.Time, image any) *sqlmock.Rows {
	return sqlmock.NewRows(columns).AddRow(
		"7b1f3a8e-0000-4000-8000-000000000001", "atlas", "Atlas", "Trip planner", "Plans trips", "Web",
		2023, "Shipped", "{Go,Postgres}", nil, []byte(`[{"label":"Live","href":"https://atlas.example.com"}]`),
		true, nil, image, now, now,
	)
}

func TestProjectRepository_List(t *testing.T) {
	repo, mock, db := setupProjectRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(columns).
		AddRow("id-1", "atlas", "Atlas", "s", "d", "Web", 2023, "Shipped", "{Go}", "{maps,travel}",
			[]byte(`[{"label":"Live","href":"https://a.example.com"}]`), true, "12k users", nil, now, now).
		AddRow("id-2", "zeta", "Zeta", "s", "d", "Data", 2022, "In Beta", "{Rust}", nil,
			[]byte(`[]`), false, nil, "https://cdn.example.com/z.png", now, now)

	mock.ExpectQuery(`SELECT .+ FROM projects\s+ORDER BY featured DESC, year DESC, lower\(title\) ASC`).
		WillReturnRows(rows)

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "atlas", items[0].Slug)
	assert.Equal(t, []string{"Go"}, items[0].Tech)
	assert.Equal(t, []string{"maps", "travel"}, items[0].Tags)
	assert.Equal(t, []domain.Link{{Label: "Live", Href: "https://a.example.com"}}, items[0].Links)
	require.NotNil(t, items[0].Metrics)
	assert.Equal(t, "12k users", *items[0].Metrics)
	assert.Nil(t, items[0].Image)

	assert.Equal(t, domain.StatusInBeta, items[1].Status)
	assert.Nil(t, items[1].Tags)
	require.NotNil(t, items[1].Image)
	assert.Equal(t, "https://cdn.example.com/z.png", *items[1].Image)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_ListError(t *testing.T) {
	repo, mock, db := setupProjectRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM projects`).WillReturnError(errors.New("connection reset"))

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load projects")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_GetBySlug(t *testing.T) {
	repo, mock, db := setupProjectRepo(t)
	defer db.Close()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM projects\s+WHERE slug = \$1`).
			WithArgs("atlas").
			WillReturnRows(atlasRow(time.Now(), nil))

		p, err := repo.GetBySlug(context.Background(), "atlas")
		require.NoError(t, err)
		assert.Equal(t, "Atlas", p.Title)
		assert.True(t, p.Featured)
	})

	t.Run("absent is ErrNotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM projects\s+WHERE slug = \$1`).
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.GetBySlug(context.Background(), "ghost")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_Insert(t *testing.T) {
	repo, mock, db := setupProjectRepo(t)
	defer db.Close()

	t.Run("inserts with resolved image", func(t *testing.T) {
		in := sampleInput()
		img := "https://cdn.example.com/atlas/1.png"
		in.ImageURL = &img

		mock.ExpectQuery(`INSERT INTO projects`).
			WithArgs(
				"atlas", "Atlas", "Trip planner", "Plans trips", "Web", 2023, "Shipped",
				sqlmock.AnyArg(), // tech
				nil,              // tags
				sqlmock.AnyArg(), // links JSONB
				false,
				nil, // metrics
				img,
			).
			WillReturnRows(atlasRow(time.Now(), img))

		p, err := repo.Insert(context.Background(), in)
		require.NoError(t, err)
		require.NotNil(t, p.Image)
		assert.Equal(t, img, *p.Image)
	})

	t.Run("duplicate slug maps to ErrSlugTaken", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO projects`).
			WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

		_, err := repo.Insert(context.Background(), sampleInput())
		assert.ErrorIs(t, err, domain.ErrSlugTaken)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_Update(t *testing.T) {
	repo, mock, db := setupProjectRepo(t)
	defer db.Close()

	t.Run("keep leaves image column alone", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE projects\s+SET slug = \$1, .+metrics = \$12, updated_at = now\(\)\s+WHERE id = \$13::uuid`).
			WillReturnRows(atlasRow(time.Now(), "https://cdn.example.com/old.png"))

		p, err := repo.Update(context.Background(), "id-1", sampleInput(), domain.ImageChange{Mode: domain.ImageKeep})
		require.NoError(t, err)
		require.NotNil(t, p.Image)
	})

	t.Run("set writes the new url", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE projects\s+SET .+metrics = \$12, image = \$13, updated_at = now\(\)\s+WHERE id = \$14::uuid`).
			WithArgs(
				"atlas", "Atlas", "Trip planner", "Plans trips", "Web", 2023, "Shipped",
				sqlmock.AnyArg(), nil, sqlmock.AnyArg(), false, nil,
				"https://cdn.example.com/new.png", "id-1",
			).
			WillReturnRows(atlasRow(time.Now(), "https://cdn.example.com/new.png"))

		p, err := repo.Update(context.Background(), "id-1", sampleInput(),
			domain.ImageChange{Mode: domain.ImageSet, URL: "https://cdn.example.com/new.png"})
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/new.png", *p.Image)
	})

	t.Run("clear nulls the image", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE projects\s+SET .+image = NULL, updated_at = now\(\)\s+WHERE id = \$13::uuid`).
			WillReturnRows(atlasRow(time.Now(), nil))

		p, err := repo.Update(context.Background(), "id-1", sampleInput(), domain.ImageChange{Mode: domain.ImageClear})
		require.NoError(t, err)
		assert.Nil(t, p.Image)
	})

	t.Run("missing id", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE projects`).WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.Update(context.Background(), "nope", sampleInput(), domain.ImageChange{})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_Delete(t *testing.T) {
	repo, mock, db := setupProjectRepo(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM projects WHERE id = \$1::uuid`).
		WithArgs("id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "id-1"))

	mock.ExpectExec(`DELETE FROM projects`).
		WithArgs("id-2").
		WillReturnError(errors.New("permission denied"))
	err := repo.Delete(context.Background(), "id-2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete project")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_UpsertBySlug(t *testing.T) {
	repo, mock, db := setupProjectRepo(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO projects .+ON CONFLICT \(slug\) DO UPDATE`).
		WillReturnRows(atlasRow(time.Now(), nil))

	p, err := repo.UpsertBySlug(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.Equal(t, "atlas", p.Slug)
	require.NoError(t, mock.ExpectationsWereMet())
}
