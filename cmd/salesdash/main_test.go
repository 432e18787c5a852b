package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenLog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	log, err := openLog(dir, "debug")
	require.NoError(t, err)
	log.Debug("hello")
	// stderr cannot be synced when it is a pipe or terminal; the file sink
	// writes through unbuffered.
	_ = log.Sync()

	target, err := os.Readlink(filepath.Join(dir, "latest"))
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, target))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)

	// A second run replaces the symlink.
	_, err = openLog(dir, "info")
	require.NoError(t, err)

	_, err = openLog("", "loud")
	assert.True(t, usageErr.Has(err))
}

func TestRootLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "salesdash.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("[server]\naddress = \"127.0.0.1:9999\"\n"), 0644))

	c := &rootConfig{ConfigPath: configPath, DataDir: "/tmp/shards", Debug: true}
	require.NoError(t, c.load())
	assert.Equal(t, "127.0.0.1:9999", c.Config.Server.Address)
	assert.Equal(t, "/tmp/shards", c.Config.Data.Dir.String())
	assert.Equal(t, "debug", c.Config.Log.Level)
	assert.NotNil(t, c.Log)

	require.NoError(t, os.WriteFile(configPath, []byte("[server]\nport = 1\n"), 0644))
	err := (&rootConfig{ConfigPath: configPath}).load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")
}

func TestCommands(t *testing.T) {
	cmd := newRootCommand()
	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "export", "summary"}, names)
}
