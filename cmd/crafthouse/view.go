package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/YuShigurey/learn-bevy/internal/config"
	"github.com/YuShigurey/learn-bevy/internal/logging"
	"github.com/YuShigurey/learn-bevy/pkg/viewer"
)

func newViewCmd(a *app, mode viewer.Mode, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(mode),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runViewer(ctx, a, mode)
		},
	}
}

func runViewer(ctx context.Context, a *app, mode viewer.Mode) error {
	logger := logging.Component(a.logger, string(mode))

	v, err := viewer.New(mode, a.cfg, logger)
	if err != nil {
		return err
	}

	if a.configPath != "" {
		cfgLogger := logging.Component(a.logger, "config")
		config.Watch(a.v, v.Reload, func(err error) {
			cfgLogger.Warn().Err(err).Msg("Config change rejected")
		})
		cfgLogger.Info().Str("path", a.configPath).Msg("Watching config file")
	}

	return v.Run(ctx)
}
