package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/availiq/availiq/pkg/domain/interfaces"
	"github.com/availiq/availiq/pkg/domain/model"
	"github.com/availiq/availiq/pkg/domain/model/config"
	"github.com/availiq/availiq/pkg/domain/types"
	"github.com/availiq/availiq/pkg/utils/logging"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	slacksvc "github.com/availiq/availiq/pkg/service/slack"
)

// dispatchConcurrency caps parallel chat sends per run.
const dispatchConcurrency = 4

type DispatchUseCase struct {
	repo     interfaces.Repository
	cfg      *config.PollConfig
	slackSvc slacksvc.Service
	clock    func() time.Time
}

func NewDispatchUseCase(repo interfaces.Repository, cfg *config.PollConfig, slackSvc slacksvc.Service, clock func() time.Time) *DispatchUseCase {
	return &DispatchUseCase{
		repo:     repo,
		cfg:      cfg,
		slackSvc: slackSvc,
		clock:    clock,
	}
}

// DispatchReport summarizes one poll run over the active roster.
type DispatchReport struct {
	RunID   string         `json:"run_id"`
	PollID  types.PollID   `json:"poll_id"`
	Label   types.RunLabel `json:"label"`
	Sent    int            `json:"sent"`
	Skipped int            `json:"skipped"`
	Failed  int            `json:"failed"`
}

// RunDispatch sends today's poll card to every reachable roster member who
// has not already responded for today's poll. Send failures are isolated per
// member and logged as FAILED; only roster or response reads abort the run.
func (uc *DispatchUseCase) RunDispatch(ctx context.Context, label types.RunLabel) (*DispatchReport, error) {
	if err := label.Validate(); err != nil {
		return nil, err
	}
	if !uc.cfg.HasRun(label) {
		return nil, goerr.Wrap(ErrUnknownRunLabel, "no dispatch run configured for label",
			goerr.V("label", label),
		)
	}

	pollID := model.TodayPollID(uc.clock(), uc.cfg.Location)
	report := &DispatchReport{
		RunID:  uuid.NewString(),
		PollID: pollID,
		Label:  label,
	}

	logger := logging.From(ctx).With("run_id", report.RunID, "poll_id", pollID, "label", label)

	members, err := uc.repo.Roster().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list roster for dispatch", goerr.V("poll_id", pollID))
	}

	responses, err := uc.repo.Response().ListByPoll(ctx, pollID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list responses for dispatch", goerr.V("poll_id", pollID))
	}
	responded := model.ResolveResponses(responses)

	blocks := buildPollCardBlocks(pollID)
	fallback := pollCardFallbackText(pollID)

	var mu sync.Mutex
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(dispatchConcurrency)

	for _, member := range members {
		if !member.Reachable() {
			continue
		}
		if _, ok := responded[member.Email.Normalize()]; ok {
			mu.Lock()
			report.Skipped++
			mu.Unlock()
			continue
		}

		eg.Go(func() error {
			outcome := types.SentOutcome(label)
			sendErr := uc.slackSvc.PostBlocks(ctx, member.ConversationHandle, blocks, fallback)
			if sendErr != nil {
				outcome = types.DispatchOutcomeFailed
				logger.Warn("failed to send poll card",
					"email", member.Email,
					"error", sendErr,
				)
			}

			entry := &model.DispatchEntry{
				Date:               pollID,
				PollID:             pollID,
				Email:              member.Email,
				ConversationHandle: member.ConversationHandle,
				SentAt:             uc.clock().UTC(),
				Outcome:            outcome,
			}
			if sendErr != nil {
				entry.Error = sendErr.Error()
			}
			if logErr := uc.repo.DispatchLog().Append(ctx, entry); logErr != nil {
				logger.Warn("failed to record dispatch outcome",
					"email", member.Email,
					"error", logErr,
				)
			}

			mu.Lock()
			if outcome.IsSent() {
				report.Sent++
			} else {
				report.Failed++
			}
			mu.Unlock()

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	logger.Info("dispatch run finished",
		"sent", report.Sent,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)

	return report, nil
}
