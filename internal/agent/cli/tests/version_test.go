package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-inotebook/internal/agent/cli"
)

func TestNewVersionCmd_PrintsVersionAndDate(t *testing.T) {
	out, err := run(cli.NewVersionCmd("1.2.3", "2026-01-16"))
	require.NoError(t, err)
	assert.Equal(t, "version=1.2.3\nbuild_date=2026-01-16\n", out)
}

func TestNewRootCmd_VersionSkipsCredsLoading(t *testing.T) {
	root := cli.NewRootCmd("1.2.3", "2026-01-16")
	// битый путь не мешает version
	out, err := run(root, "--credentials", "/nonexistent/dir/creds.json", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "version=1.2.3")
}
