package accounts_test

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accounts "github.com/goliatone/go-accounts"
)

// The migration client consumes the embedded tree rooted at
// data/sql/migrations; a rename there breaks startup, not compilation.
func TestGetMigrationsFS(t *testing.T) {
	sub, err := fs.Sub(accounts.GetMigrationsFS(), "data/sql/migrations")
	require.NoError(t, err)

	entries, err := fs.ReadDir(sub, ".")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	found := false
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), "_create_users.up.sql") {
			found = true
		}
	}
	assert.True(t, found, "users table migration should be embedded")
}
