package usecase

import (
	"context"
	"time"

	"github.com/availiq/availiq/pkg/domain/interfaces"
	"github.com/availiq/availiq/pkg/domain/model"
	"github.com/availiq/availiq/pkg/domain/model/config"
	"github.com/availiq/availiq/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type StatusUseCase struct {
	repo  interfaces.Repository
	cfg   *config.PollConfig
	clock func() time.Time
}

func NewStatusUseCase(repo interfaces.Repository, cfg *config.PollConfig, clock func() time.Time) *StatusUseCase {
	return &StatusUseCase{repo: repo, cfg: cfg, clock: clock}
}

// TodayPollID returns the poll identity for the current day in the
// configured time zone.
func (uc *StatusUseCase) TodayPollID() types.PollID {
	return model.TodayPollID(uc.clock(), uc.cfg.Location)
}

// CurrentStatus joins the active roster against the response log for one
// poll. Every reachable member appears exactly once, in roster order;
// members with no effective response carry StatusNoResponse.
func (uc *StatusUseCase) CurrentStatus(ctx context.Context, pollID types.PollID) ([]*model.MemberStatus, error) {
	if err := pollID.Validate(); err != nil {
		return nil, err
	}

	members, err := uc.repo.Roster().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list roster for status", goerr.V("poll_id", pollID))
	}

	responses, err := uc.repo.Response().ListByPoll(ctx, pollID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list responses for status", goerr.V("poll_id", pollID))
	}
	resolved := model.ResolveResponses(responses)

	statuses := make([]*model.MemberStatus, 0, len(members))
	for _, m := range members {
		if !m.Reachable() {
			continue
		}
		statuses = append(statuses, model.NewMemberStatus(m, resolved[m.Email.Normalize()]))
	}

	return statuses, nil
}

// NonResponders returns the reachable members with no effective response for
// the poll, in roster order.
func (uc *StatusUseCase) NonResponders(ctx context.Context, pollID types.PollID) ([]*model.Member, error) {
	members, err := uc.repo.Roster().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list roster for non-responders", goerr.V("poll_id", pollID))
	}

	responses, err := uc.repo.Response().ListByPoll(ctx, pollID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list responses for non-responders", goerr.V("poll_id", pollID))
	}
	resolved := model.ResolveResponses(responses)

	var pending []*model.Member
	for _, m := range members {
		if !m.Reachable() {
			continue
		}
		if _, ok := resolved[m.Email.Normalize()]; !ok {
			pending = append(pending, m)
		}
	}

	return pending, nil
}
