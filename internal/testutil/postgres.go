// Package testutil starts a throwaway Postgres for integration tests.
package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"ai-transcript-notes-be/internal/model"
	"ai-transcript-notes-be/pkg/database"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

var (
	once     sync.Once
	sharedDB *gorm.DB
	startErr error
)

// NewTestDB returns a migrated database with empty tables. The container is started once per
// test binary and reaped by testcontainers when the binary exits. Tests are skipped when
// Docker is unavailable.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	once.Do(func() {
		sharedDB, startErr = start()
	})
	require.NoError(t, startErr, "failed to start postgres container")

	require.NoError(t, sharedDB.Exec(
		"TRUNCATE TABLE note_entities, entities, messages RESTART IDENTITY CASCADE",
	).Error)
	return sharedDB
}

func start() (*gorm.DB, error) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(
		ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("notes"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, err
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		return nil, err
	}
	if err := model.AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
