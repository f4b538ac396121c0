package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestListMigrationFiles(t *testing.T) {
	t.Run("returns only .sql files, sorted", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"002_plans.sql", "001_users.sql", "README.md", ".001_users.sql.swp"} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- noop"), 0o644))
		}
		require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))

		files, err := listMigrationFiles(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"001_users.sql", "002_plans.sql"}, files)
	})

	t.Run("missing directory is an error", func(t *testing.T) {
		_, err := listMigrationFiles(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})
}

func TestRunMigrationsWithoutPool(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil, zap.NewNop()))
}
