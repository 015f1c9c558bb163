package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/searchlist/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"SEARCHLIST_ENV_FILE=", "SEARCHLIST_SERVER=https://api.example.com"})
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.App.Server)
	assert.Equal(t, search.DefaultDebounce, cfg.App.Debounce)
	assert.Equal(t, search.DefaultTimeout, cfg.App.Timeout)
	assert.Equal(t, defaultPoll, cfg.App.Poll)
	assert.False(t, strings.HasPrefix(cfg.App.SnapshotDir, "~"), "snapshot dir should be expanded: %s", cfg.App.SnapshotDir)
	assert.NoError(t, Validate(cfg))
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	environ := []string{
		"SEARCHLIST_SERVER=https://env.example.com",
		"SEARCHLIST_SCREEN=feed",
		"SEARCHLIST_DEBOUNCE=2s",
		"SEARCHLIST_USER=7",
		"SEARCHLIST_SNAPSHOT_DIR=",
	}
	args := []string{"--server", "https://flag.example.com", "--screen", "circles", "--footer", "--width", "80"}
	cfg, err := LoadArgs(args, environ)
	require.NoError(t, err)

	assert.Equal(t, "https://flag.example.com", cfg.App.Server)
	assert.Equal(t, "circles", cfg.App.Screen)
	assert.Equal(t, 2*time.Second, cfg.App.Debounce)
	assert.Equal(t, 7, cfg.App.UserID)
	assert.Equal(t, "", cfg.App.SnapshotDir)
	assert.True(t, cfg.App.ShowFooter)
	assert.Equal(t, 80, cfg.App.Width)
	assert.Equal(t, "80", cfg.Flags["width"])
	assert.Equal(t, args, cfg.Args)
}

func TestEnvFileFillsMissingVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "searchlist.env")
	require.NoError(t, os.WriteFile(path, []byte("SEARCHLIST_SERVER=https://file.example.com\nSEARCHLIST_TOKEN=from-file\nSEARCHLIST_SCREEN=library\n"), 0o600))

	cfg, err := LoadArgs([]string{"--env-file=" + path}, []string{"SEARCHLIST_SCREEN=partners"})
	require.NoError(t, err)

	assert.Equal(t, "https://file.example.com", cfg.App.Server)
	assert.Equal(t, "from-file", cfg.App.Token)
	assert.Equal(t, "partners", cfg.App.Screen, "process environment wins over the env file")
	assert.Equal(t, path, cfg.EnvFile)
}

func TestExplicitMissingEnvFileFails(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")
	_, err := LoadArgs([]string{"--env-file", missing}, nil)
	assert.Error(t, err)
}

func TestLoadArgsRejectsNegativeDimensions(t *testing.T) {
	_, err := LoadArgs([]string{"--height", "-1"}, []string{"SEARCHLIST_ENV_FILE="})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"SEARCHLIST_ENV_FILE="})
	require.NoError(t, err)
	assert.Error(t, Validate(cfg), "server is required")

	cfg.App.Server = "ftp://example.com"
	assert.Error(t, Validate(cfg))

	cfg.App.Server = "http://localhost:8080/api"
	assert.NoError(t, Validate(cfg))

	cfg.App.Debounce = 0
	assert.Error(t, Validate(cfg))
}
