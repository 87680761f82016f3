package db

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/reply-warden/internal/config"
)

func TestDSN(t *testing.T) {
	got := DSN(&config.DBConfig{Host: "db", Port: 5433, Username: "u", Password: "p", Database: "replies"})
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=replies sslmode=disable", got)

	got = DSN(&config.DBConfig{Host: "db", Port: 5432, Username: "u", Database: "r", SSLMode: "require"})
	assert.True(t, strings.HasSuffix(got, "sslmode=require"))
}

func TestMigrations_UniqueReplyPerReview(t *testing.T) {
	up, err := fs.ReadFile(migrationsFS, "migrations/000001_init_reviews.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "UNIQUE (review_id)")

	entries, err := fs.ReadDir(migrationsFS, "migrations")
	require.NoError(t, err)
	var ups, downs int
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs++
		}
	}
	assert.Equal(t, ups, downs, "every migration needs a down file")
}
