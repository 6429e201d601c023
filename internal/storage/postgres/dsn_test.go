package postgres_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GoSim-25-26J-441/showcase-backend/config"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/storage/postgres"
)

func TestDSN(t *testing.T) {
	cfg := &config.DatabaseConfig{Host: "db", Port: 5433, User: "app", Password: "secret", Name: "showcase"}
	assert.Equal(t, "host=db port=5433 user=app password=secret dbname=showcase sslmode=disable", postgres.DSN(cfg))

	cfg.SSLMode = "require"
	assert.Contains(t, postgres.DSN(cfg), "sslmode=require")

	cfg.DSN = "postgres://app@db/showcase"
	assert.Equal(t, "postgres://app@db/showcase", postgres.DSN(cfg))
}
