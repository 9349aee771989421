package tests

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-inotebook/internal/agent/config"
)

func TestDefaultPath_ReturnsPathInHomeDir(t *testing.T) {
	p, err := config.DefaultPath()
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".inotebook", "credentials.json"), p)
}

func TestLoad_FileNotExists_ReturnsEmptyCredentials(t *testing.T) {
	creds, err := config.Load(filepath.Join(t.TempDir(), "no-such-file.json"))
	require.NoError(t, err)
	require.NotNil(t, creds)
	assert.Empty(t, creds.Token)
}

func TestLoad_BadJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "creds.json")
	require.NoError(t, os.WriteFile(p, []byte("{not json"), 0o600))

	_, err := config.Load(p)
	require.Error(t, err)
}

func TestSaveLoadClear(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "creds.json")
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

	in := &config.Credentials{Token: "tok", ExpiresAt: exp, UserID: "u1", Name: "Ana", Email: "a@x.com"}
	require.NoError(t, config.Save(p, in))

	if runtime.GOOS != "windows" {
		st, err := os.Stat(p)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), st.Mode().Perm())

		dst, err := os.Stat(filepath.Dir(p))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o700), dst.Mode().Perm())
	}

	out, err := config.Load(p)
	require.NoError(t, err)
	assert.Equal(t, in.Token, out.Token)
	assert.True(t, exp.Equal(out.ExpiresAt))
	assert.Equal(t, in.Email, out.Email)

	require.NoError(t, config.Clear(p))
	_, err = os.Stat(p)
	assert.True(t, os.IsNotExist(err))

	// повторное удаление — не ошибка
	require.NoError(t, config.Clear(p))
}

func TestCredentials_Valid(t *testing.T) {
	now := time.Now()

	assert.False(t, (*config.Credentials)(nil).Valid(now))
	assert.False(t, (&config.Credentials{}).Valid(now))
	assert.True(t, (&config.Credentials{Token: "t"}).Valid(now))
	assert.True(t, (&config.Credentials{Token: "t", ExpiresAt: now.Add(time.Minute)}).Valid(now))
	assert.False(t, (&config.Credentials{Token: "t", ExpiresAt: now.Add(-time.Minute)}).Valid(now))
}
