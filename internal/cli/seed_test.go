package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_ReportsCollectionCounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")

	out, err := runCommand(t, "seed", "--backend", "sqlite", "--db", path)
	require.NoError(t, err)
	assert.Contains(t, out, "profiles")
	assert.Contains(t, out, "4 rows")
	assert.Contains(t, out, "transport_requests")
	assert.Contains(t, out, "3 rows")
}

func TestSeed_LeavesExistingDataUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")

	_, err := runCommand(t, "seed", "--backend", "sqlite", "--db", path)
	require.NoError(t, err)

	out, err := runCommand(t, "seed", "--backend", "sqlite", "--db", path)
	require.NoError(t, err)
	assert.Contains(t, out, "4 rows", "a second run must not duplicate rows")
}
