package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 10, cfg.PostsPerPage)
	assert.Equal(t, 30, cfg.TitleChars)
	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTTL.Std())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
addr: ":9000"
posts_per_page: 5
title_chars: 15
auth:
  access_ttl: 10m
  refresh_ttl: 48h
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 5, cfg.PostsPerPage)
	assert.Equal(t, 15, cfg.TitleChars)
	assert.Equal(t, 10*time.Minute, cfg.Auth.AccessTTL.Std())
	assert.Equal(t, 48*time.Hour, cfg.Auth.RefreshTTL.Std())
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.PostsPerPage)
}

func TestLoadRejectsNonPositivePageSize(t *testing.T) {
	path := writeConfig(t, "posts_per_page: 0\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, "posts_per_page")
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := writeConfig(t, "auth:\n  access_ttl: soon\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, "invalid duration")
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("INKWELL_ADDR", ":7777")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7777", cfg.Addr)
}
