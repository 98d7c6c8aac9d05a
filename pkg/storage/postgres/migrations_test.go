package postgres

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsEmbedded(t *testing.T) {
	files, err := fs.Glob(migrations, "migrations/*.sql")
	require.NoError(t, err)
	require.Equal(t, []string{"migrations/00001_init.sql", "migrations/00002_applications.sql"}, files)

	cases := map[string][]string{
		"migrations/00001_init.sql":         {"users", "cvs", "cv_versions", "cv_customizations", "suggestions"},
		"migrations/00002_applications.sql": {"cover_letters", "job_applications"},
	}
	for file, tables := range cases {
		t.Run(file, func(t *testing.T) {
			body, err := fs.ReadFile(migrations, file)
			require.NoError(t, err)
			for _, table := range tables {
				assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS "+table+" (")
			}
			assert.Contains(t, string(body), "-- +goose Up")
			assert.Contains(t, string(body), "-- +goose Down")
		})
	}
}
