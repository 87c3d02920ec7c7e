package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs the goose migrations against a real Postgres when TEST_DATABASE_URL
// is set, then checks the models line up with the SQL schema.
func TestPostgresMigrations(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := Open(context.Background(), dsn, Options{Migrate: true})
	require.NoError(t, err)
	defer func() { _ = Close(db) }()

	for _, model := range Models() {
		assert.True(t, db.Migrator().HasTable(model), "missing table for %T", model)
	}
	require.NoError(t, Ping(context.Background(), db))
}
