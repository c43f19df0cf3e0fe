package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("loads values", func(t *testing.T) {
		os.Args = []string{"cli", "-config", writeConfig(t, `{
			"server_endpoint_addr": "www.example:9000",
			"online_check_interval": "10s",
			"database_path": "x.db",
			"export_dir": "dl"
		}`)}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.ServerEndpointAddr)
		assert.Equal(t, 10*time.Second, cfg.OnlineCheckInterval)
		assert.Equal(t, "x.db", cfg.DatabasePath)
		assert.Equal(t, "dl", cfg.ExportDir)
	})

	t.Run("explicit empty address selects demo", func(t *testing.T) {
		os.Args = []string{"cli", "-c", writeConfig(t, `{"server_endpoint_addr": ""}`)}

		cfg := &Config{ServerEndpointAddr: "host:1", OnlineCheckInterval: time.Second, DatabasePath: "a.db"}
		parseJson(cfg)

		assert.True(t, cfg.MockMode())
		assert.Equal(t, time.Second, cfg.OnlineCheckInterval)
		assert.Equal(t, "a.db", cfg.DatabasePath)
	})

	t.Run("no config flag leaves values", func(t *testing.T) {
		os.Args = []string{"cli"}

		cfg := &Config{ServerEndpointAddr: "defaults:1234", OnlineCheckInterval: 42 * time.Second}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.ServerEndpointAddr)
		assert.Equal(t, 42*time.Second, cfg.OnlineCheckInterval)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		os.Args = []string{"cli", "-config", writeConfig(t, `{ not json`)}
		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"cli", "-config", filepath.Join(t.TempDir(), "nope.json")}
		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
