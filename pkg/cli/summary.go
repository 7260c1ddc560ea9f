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

func cmdSummary() *cli.Command {
	var pollID string
	var appCfg config.AppConfig
	var repoCfg config.Repository
	var slackCfg config.Slack

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "poll-id",
			Usage:       "Poll day to summarize, yyyy-MM-dd (default: today)",
			Destination: &pollID,
		},
	}
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:  "summary",
		Usage: "Send the non-responder digest to the leadership channel",
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

			id := types.PollID(pollID)
			if id == "" {
				id = uc.Status.TodayPollID()
			}

			if err := uc.Summary.SendNonResponderSummary(ctx, id); err != nil {
				return goerr.Wrap(err, "summary delivery failed", goerr.V("poll_id", id))
			}

			logging.Default().Info("non-responder summary sent", "poll_id", id)
			return nil
		},
	}
}
