package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/availiq/availiq/pkg/cli/config"
	"github.com/availiq/availiq/pkg/domain/model"
	"github.com/availiq/availiq/pkg/domain/types"
	"github.com/availiq/availiq/pkg/usecase"
	"github.com/availiq/availiq/pkg/utils/logging"
	"github.com/availiq/availiq/pkg/utils/safe"
)

func cmdStatus() *cli.Command {
	var pollID string
	var appCfg config.AppConfig
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "poll-id",
			Usage:       "Poll day to show, yyyy-MM-dd (default: today)",
			Destination: &pollID,
		},
	}
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "status",
		Usage: "Show per-member availability for one poll day",
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

			// Read path only, no chat client needed
			uc := usecase.New(repo, pollCfg, nil)

			id := types.PollID(pollID)
			if id == "" {
				id = uc.Status.TodayPollID()
			}

			statuses, err := uc.Status.CurrentStatus(ctx, id)
			if err != nil {
				return goerr.Wrap(err, "failed to query status", goerr.V("poll_id", id))
			}

			printStatusTable(id, statuses)
			return nil
		},
	}
}

func printStatusTable(pollID types.PollID, statuses []*model.MemberStatus) {
	bold := color.New(color.Bold)
	bold.Printf("Availability for %s\n\n", pollID) //nolint:errcheck // terminal output

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MEMBER\tEMAIL\tSTATUS\tHOURS\tNOTES")

	responded := 0
	for _, st := range statuses {
		hours := ""
		if st.StartTime != "" || st.EndTime != "" {
			hours = fmt.Sprintf("%s-%s", st.StartTime, st.EndTime)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			st.DisplayName, st.Email, colorStatus(st.CurrentStatus), hours, st.Notes)
		if st.Responded() {
			responded++
		}
	}
	safe.Flush(context.Background(), w)

	fmt.Printf("\n%d/%d responded\n", responded, len(statuses))
}

func colorStatus(status types.AvailabilityStatus) string {
	switch status {
	case types.StatusAvailable:
		return color.GreenString(string(status))
	case types.StatusLimited:
		return color.YellowString(string(status))
	case types.StatusUnavailable:
		return color.RedString(string(status))
	case types.StatusNoResponse:
		return color.HiBlackString(string(status))
	default:
		return string(status)
	}
}
