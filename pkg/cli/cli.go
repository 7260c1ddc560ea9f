package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/availiq/availiq/pkg/cli/config"
	"github.com/availiq/availiq/pkg/utils/logging"
)

func Run(ctx context.Context, args []string, version string) error {
	var loggerCfg config.Logger
	var sentryCfg config.Sentry
	var closers []func()

	flags := loggerCfg.Flags()
	flags = append(flags, sentryCfg.Flags()...)

	app := &cli.Command{
		Name:    "availiq",
		Usage:   "AvailabilityIQ daily availability polling bot",
		Version: version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logCloser, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closers = append(closers, logCloser)

			sentryCloser, err := sentryCfg.Configure(version)
			if err != nil {
				return ctx, err
			}
			closers = append(closers, sentryCloser)

			logging.Default().Info("Starting availiq", "version", version, "logger", loggerCfg)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdDispatch(),
			cmdSummary(),
			cmdStatus(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}
