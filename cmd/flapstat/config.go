package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/flapstat/flapstat/internal/app"
	"github.com/flapstat/flapstat/internal/display"
)

const (
	defaultSubscriberRate = 2 * time.Minute
	defaultChannelRate    = time.Hour
	defaultVideoPollRate  = 5 * time.Minute
	defaultVideoStatsRate = 30 * time.Minute
	defaultRecentDays     = 3
	defaultRecentHours    = 0
	defaultDwell          = 2 * time.Second
)

// fileConfig is the viper-shaped configuration.
// It is package-private to keep defaults and shape local to the CLI entrypoint.
type fileConfig struct {
	Port             string        `mapstructure:"port"`
	BaudRate         int           `mapstructure:"baud-rate"`
	Demo             bool          `mapstructure:"demo"`
	Intro            bool          `mapstructure:"intro"`
	Offline          bool          `mapstructure:"offline"`
	CacheDir         string        `mapstructure:"cache-dir"`
	SubscriberRate   time.Duration `mapstructure:"subscriber-rate"`
	ChannelRate      time.Duration `mapstructure:"channel-rate"`
	VideoPollRate    time.Duration `mapstructure:"video-poll-rate"`
	VideoStatsRate   time.Duration `mapstructure:"video-stats-rate"`
	RecentDays       int           `mapstructure:"recent-days"`
	RecentHours      int           `mapstructure:"recent-hours"`
	Dwell            time.Duration `mapstructure:"dwell"`
	SubscriberPrefix bool          `mapstructure:"subscriber-prefix"`
	SubscriberDiff   bool          `mapstructure:"subscriber-diff"`
}

func loadConfig(configPath string) (app.Config, error) {
	var fc fileConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return app.Config{}, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("FLAPSTAT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("port", "")
	v.SetDefault("baud-rate", display.DefaultBaudRate)
	v.SetDefault("demo", false)
	v.SetDefault("intro", false)
	v.SetDefault("offline", false)
	v.SetDefault("cache-dir", filepath.Join(home, ".cache", "flapstat"))
	v.SetDefault("subscriber-rate", defaultSubscriberRate)
	v.SetDefault("channel-rate", defaultChannelRate)
	v.SetDefault("video-poll-rate", defaultVideoPollRate)
	v.SetDefault("video-stats-rate", defaultVideoStatsRate)
	v.SetDefault("recent-days", defaultRecentDays)
	v.SetDefault("recent-hours", defaultRecentHours)
	v.SetDefault("dwell", defaultDwell)
	v.SetDefault("subscriber-prefix", true)
	v.SetDefault("subscriber-diff", true)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "flapstat", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return app.Config{}, err
		}
	}

	if err := v.Unmarshal(&fc); err != nil {
		return app.Config{}, err
	}

	// A non-positive rate would make its tracker due on every pass and spin
	// the scheduler.
	for _, rate := range []struct {
		name string
		d    time.Duration
	}{
		{"subscriber-rate", fc.SubscriberRate},
		{"channel-rate", fc.ChannelRate},
		{"video-poll-rate", fc.VideoPollRate},
		{"video-stats-rate", fc.VideoStatsRate},
	} {
		if rate.d <= 0 {
			return app.Config{}, fmt.Errorf("invalid %s: %s", rate.name, rate.d)
		}
	}
	if fc.Dwell < 0 {
		return app.Config{}, fmt.Errorf("invalid dwell: %s", fc.Dwell)
	}
	if fc.RecentDays < 0 || fc.RecentHours < 0 {
		return app.Config{}, fmt.Errorf("invalid recency window: %dd%dh", fc.RecentDays, fc.RecentHours)
	}

	// Expand ~ in cache-dir
	if strings.HasPrefix(fc.CacheDir, "~/") {
		fc.CacheDir = filepath.Join(home, fc.CacheDir[2:])
	}

	return app.Config{
		Port:             fc.Port,
		BaudRate:         fc.BaudRate,
		Demo:             fc.Demo,
		Intro:            fc.Intro,
		Offline:          fc.Offline,
		CacheDir:         fc.CacheDir,
		SubscriberRate:   fc.SubscriberRate,
		ChannelRate:      fc.ChannelRate,
		VideoPollRate:    fc.VideoPollRate,
		VideoStatsRate:   fc.VideoStatsRate,
		RecentDays:       fc.RecentDays,
		RecentHours:      fc.RecentHours,
		Dwell:            fc.Dwell,
		SubscriberPrefix: fc.SubscriberPrefix,
		SubscriberDiff:   fc.SubscriberDiff,
	}, nil
}
