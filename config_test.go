package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig("")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Svnlook)
	assert.Equal(t, 1, cfg.Start)
	assert.Equal(t, -1, cfg.Stop)
}

func TestNewConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "svnlook-go.yml")
	contents := "svnlook: /opt/svn/bin/svnlook\n" +
		"stderr: inherit\n" +
		"start-revision: 10\n" +
		"stop-revision: 20\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	cfg, err := NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/svn/bin/svnlook", cfg.Svnlook)
	assert.Equal(t, "inherit", cfg.Stderr)
	assert.Equal(t, 10, cfg.Start)
	assert.Equal(t, 20, cfg.Stop)
	assert.Equal(t, path, cfg.Filename)
}

func TestNewConfigMissingFile(t *testing.T) {
	_, err := NewConfig(filepath.Join(t.TempDir(), "no-such.yml"))
	assert.Error(t, err)
}

func TestNewConfigBadYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "svnlook-go.yml")
	require.NoError(t, os.WriteFile(path, []byte(": not yaml ["), 0644))

	_, err := NewConfig(path)
	assert.Error(t, err)
}
