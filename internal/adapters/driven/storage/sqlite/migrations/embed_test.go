package migrations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedFS_ContainsMigrationFiles(t *testing.T) {
	entries, err := FS.ReadDir(".")
	require.NoError(t, err)

	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	assert.Contains(t, names, "001_submissions.sql")
}

func TestEmbeddedFS_MigrationHasGooseDirectives(t *testing.T) {
	content, err := FS.ReadFile("001_submissions.sql")
	require.NoError(t, err)

	text := string(content)
	assert.True(t, strings.Contains(text, "-- +goose Up"))
	assert.True(t, strings.Contains(text, "-- +goose Down"))
	assert.Contains(t, text, "CREATE TABLE IF NOT EXISTS submissions")
	assert.NotContains(t, text, "api_key", "credentials are never stored")
	assert.NotContains(t, text, "password")
}
