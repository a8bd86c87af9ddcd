package database

import (
	"io/fs"
	"os"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE"} {
		// t.Setenv вернет исходное значение после теста
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg := LoadConfig()

	assert.Equal(t, Config{
		Host:     "localhost",
		Port:     "5432",
		User:     "postgres",
		Password: "postgres",
		DBName:   "blog",
		SSLMode:  "disable",
	}, cfg)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "blog")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "blog_test")
	t.Setenv("DB_SSLMODE", "require")

	cfg := LoadConfig()

	assert.Equal(t, "host=db port=6543 user=blog password=pw dbname=blog_test sslmode=require", cfg.DSN())
}

func TestMigrationsEmbedded(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"migrations/000001_create_users.up.sql",
		"migrations/000001_create_users.down.sql",
		"migrations/000002_create_posts.up.sql",
		"migrations/000002_create_posts.down.sql",
	}, files)
}

// заголовок и текст поста не ограничены по длине на уровне схемы
func TestPostsMigration_UnboundedText(t *testing.T) {
	up, err := migrationsFS.ReadFile("migrations/000002_create_posts.up.sql")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`(?m)^\s*title\s+TEXT NOT NULL`), string(up))
	assert.Regexp(t, regexp.MustCompile(`(?m)^\s*content\s+TEXT NOT NULL`), string(up))
	assert.NotContains(t, string(up), "VARCHAR(")
}
