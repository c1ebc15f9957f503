// Package testhelper wires repository tests to a real PostgreSQL instance.
// Tests are skipped unless TEST_DATABASE_DSN points at a disposable
// database, so the default `go test ./...` run needs no infrastructure.
package testhelper

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/sisregip/sisregip-backend/internal/adapter/postgres"
)

var (
	migrateOnce sync.Once
	migrateErr  error
)

// SetupTestDB connects to TEST_DATABASE_DSN, applies goose migrations (once
// for the whole test run), and returns a pgxpool.Pool closed via t.Cleanup.
// Skips the calling test when the variable is unset.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set; skipping database integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	migrateOnce.Do(func() {
		migrateErr = postgres.Migrate(ctx, dsn)
	})
	if migrateErr != nil {
		t.Fatalf("testhelper: migrate test DB: %v", migrateErr)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("testhelper: create pgxpool: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

// UniqueName returns a name that no other test run can collide with, for
// tables with unique natural keys (usuario.nome, active protocolo.prot).
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}
