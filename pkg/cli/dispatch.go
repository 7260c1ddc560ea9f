package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/availiq/availiq/pkg/cli/config"
	"github.com/availiq/availiq/pkg/domain/types"
	"github.com/availiq/availiq/pkg/usecase"
	"github.com/availiq/availiq/pkg/utils/logging"
)

func cmdDispatch() *cli.Command {
	var label string
	var appCfg config.AppConfig
	var repoCfg config.Repository
	var slackCfg config.Slack

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "label",
			Aliases:     []string{"l"},
			Usage:       "Label of a configured dispatch run (e.g. 9AM)",
			Required:    true,
			Sources:     cli.EnvVars("AVAILIQ_DISPATCH_LABEL"),
			Destination: &label,
		},
	}
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:  "dispatch",
		Usage: "Run one poll dispatch pass over the active roster",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			pollCfg, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load application configuration")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			slackSvc, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize slack service")
			}

			uc := usecase.New(repo, pollCfg, slackSvc)

			report, err := uc.Dispatch.RunDispatch(ctx, types.RunLabel(label))
			if err != nil {
				return goerr.Wrap(err, "dispatch run failed", goerr.V("label", label))
			}

			logging.Default().Info("dispatch run completed",
				"run_id", report.RunID,
				"poll_id", report.PollID,
				"label", report.Label,
				"sent", report.Sent,
				"skipped", report.Skipped,
				"failed", report.Failed,
			)
			return nil
		},
	}
}
