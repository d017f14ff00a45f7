package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the CLI with args and returns captured stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRoot_RejectsUnknownBackend(t *testing.T) {
	_, err := runCommand(t, "seed", "--backend", "redis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid backend")
}

func TestSeed_PrintsEveryCollection(t *testing.T) {
	out, err := runCommand(t, "seed", "--backend", "memory")
	require.NoError(t, err)

	for _, name := range []string{"users", "profiles", "wallets", "transport_requests", "disputes"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "4 rows", "profiles seed with four rows")
}
