package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/availiq/availiq/pkg/domain/model"
	"github.com/availiq/availiq/pkg/domain/model/config"
	"github.com/availiq/availiq/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	slacksvc "github.com/availiq/availiq/pkg/service/slack"
)

type SummaryUseCase struct {
	cfg      *config.PollConfig
	slackSvc slacksvc.Service
	status   *StatusUseCase
}

func NewSummaryUseCase(cfg *config.PollConfig, slackSvc slacksvc.Service, status *StatusUseCase) *SummaryUseCase {
	return &SummaryUseCase{cfg: cfg, slackSvc: slackSvc, status: status}
}

// SendNonResponderSummary posts the non-responder digest for one poll to the
// leadership channel. A delivery failure is surfaced to the caller; nothing
// is retried here.
func (uc *SummaryUseCase) SendNonResponderSummary(ctx context.Context, pollID types.PollID) error {
	if err := pollID.Validate(); err != nil {
		return err
	}

	pending, err := uc.status.NonResponders(ctx, pollID)
	if err != nil {
		return err
	}

	digest := formatDigest(pollID, pending)
	if err := uc.slackSvc.PostText(ctx, uc.cfg.LeadershipChannelID, digest); err != nil {
		return goerr.Wrap(err, "failed to deliver non-responder summary",
			goerr.V("poll_id", pollID),
			goerr.V("channel", uc.cfg.LeadershipChannelID),
		)
	}

	return nil
}

func formatDigest(pollID types.PollID, pending []*model.Member) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "AvailabilityIQ – Non-Responders (%s)\n", pollID)

	if len(pending) == 0 {
		sb.WriteString("All polled team members have responded.")
		return sb.String()
	}

	for _, m := range pending {
		fmt.Fprintf(&sb, "• %s (%s)\n", m.DisplayName, m.Email)
	}

	return strings.TrimRight(sb.String(), "\n")
}
