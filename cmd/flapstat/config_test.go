package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := loadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Port)
	assert.Equal(t, 38400, cfg.BaudRate)
	assert.False(t, cfg.Demo)
	assert.Equal(t, filepath.Join(home, ".cache", "flapstat"), cfg.CacheDir)
	assert.Equal(t, 2*time.Minute, cfg.SubscriberRate)
	assert.Equal(t, time.Hour, cfg.ChannelRate)
	assert.Equal(t, 5*time.Minute, cfg.VideoPollRate)
	assert.Equal(t, 30*time.Minute, cfg.VideoStatsRate)
	assert.Equal(t, 3, cfg.RecentDays)
	assert.Equal(t, 0, cfg.RecentHours)
	assert.Equal(t, 2*time.Second, cfg.Dwell)
	assert.True(t, cfg.SubscriberPrefix)
	assert.True(t, cfg.SubscriberDiff)
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(
		"port: /dev/ttyUSB1\n"+
			"dwell: 5s\n"+
			"subscriber-rate: 90s\n"+
			"recent-hours: 12\n"+
			"subscriber-diff: false\n",
	), 0644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyUSB1", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.Dwell)
	assert.Equal(t, 90*time.Second, cfg.SubscriberRate)
	assert.Equal(t, 12, cfg.RecentHours)
	assert.False(t, cfg.SubscriberDiff)

	// Untouched keys keep their defaults.
	assert.Equal(t, time.Hour, cfg.ChannelRate)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FLAPSTAT_VIDEO_POLL_RATE", "45s")
	t.Setenv("FLAPSTAT_DEMO", "true")

	cfg, err := loadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 45*time.Second, cfg.VideoPollRate)
	assert.True(t, cfg.Demo)
}

func TestLoadConfigRejectsNonPositiveRate(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("channel-rate: 0s\n"), 0644))

	_, err := loadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel-rate")
}

func TestLoadConfigExpandsCacheDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("FLAPSTAT_CACHE_DIR", "~/stats-cache")

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "stats-cache"), cfg.CacheDir)
}
