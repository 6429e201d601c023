package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/GoSim-25-26J-441/showcase-backend/config"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/auth"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/domain"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/repository"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/storage/postgres"
)

type upserter interface {
	UpsertBySlug(ctx context.Context, in domain.ProjectInput) (*domain.Project, error)
}

func main() {
	migrate := flag.Bool("migrate", false, "create tables before seeding")
	flag.Parse()

	os.Exit(run(*migrate))
}

// run returns the process exit code so deferred cleanup always happens.
func run(migrate bool) int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("[error] config: %v", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		log.Printf("[error] database: %v", err)
		return 1
	}
	defer db.Close()

	repo := repository.NewProjectRepository(db)

	if migrate {
		if err := repo.Migrate(ctx); err != nil {
			log.Printf("[error] migrate projects: %v", err)
			return 1
		}
		if _, err := db.ExecContext(ctx, auth.UsersSchema); err != nil {
			log.Printf("[error] migrate users: %v", err)
			return 1
		}
		log.Printf("[info] schema ready")
	}

	if failures := seed(ctx, repo, seedProjects); failures > 0 {
		log.Printf("seeding completed with %d error(s)", failures)
		return 1
	}
	log.Printf("seeding completed successfully for %d projects", len(seedProjects))
	return 0
}

// seed upserts every project and reports how many failed.
func seed(ctx context.Context, store upserter, projects []domain.ProjectInput) int {
	failures := 0
	for _, in := range projects {
		if _, err := store.UpsertBySlug(ctx, in); err != nil {
			failures++
			log.Printf("[error] seed %s: %v", in.Slug, err)
			continue
		}
		log.Printf("[info] seeded %s", in.Slug)
	}
	return failures
}
