package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/flapstat/flapstat/internal/app"
)

var (
	flagConfig  string
	flagPort    string
	flagDemo    bool
	flagIntro   bool
	flagOffline bool
	flagVerbose bool

	rootCmd = &cobra.Command{
		Use:   "flapstat <api-key> <channel-id>",
		Short: "flapstat shows YouTube channel statistics on a split-flap display",
		Long: `flapstat polls the YouTube Data API for a channel's statistics and shows
them on a serial split-flap display: subscriber count with gains, channel
totals, and the statistics of a recently published video at a faster rate.

Run with --demo to render the flap pages to the terminal without hardware.`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flagConfig)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			cfg.APIKey = args[0]
			cfg.ChannelID = args[1]
			cfg.Version = version

			// Flags win over config file and environment.
			if flagPort != "" {
				cfg.Port = flagPort
			}
			cfg.Demo = cfg.Demo || flagDemo
			cfg.Intro = cfg.Intro || flagIntro
			cfg.Offline = cfg.Offline || flagOffline

			level := slog.LevelInfo
			if flagVerbose {
				level = slog.LevelDebug
			}
			cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx, cfg)
		},
	}
)

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, buildTime)

	rootCmd.Flags().StringVarP(&flagPort, "port", "p", "", "serial port device or 1-based index (default: first discovered port)")
	rootCmd.Flags().BoolVar(&flagDemo, "demo", false, "run without hardware, rendering flap pages to stdout")
	rootCmd.Flags().BoolVar(&flagIntro, "intro", false, "show the intro banner before tracking starts")
	rootCmd.Flags().BoolVar(&flagOffline, "offline", false, "replay cached API responses instead of fetching")
	rootCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "config file (default is $HOME/.config/flapstat/config.yml)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
