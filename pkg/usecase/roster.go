package usecase

import (
	"context"
	"fmt"

	"github.com/availiq/availiq/pkg/domain/interfaces"
	"github.com/availiq/availiq/pkg/domain/model"
	"github.com/availiq/availiq/pkg/domain/model/config"
	"github.com/availiq/availiq/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type RosterUseCase struct {
	repo interfaces.Repository
	cfg  *config.PollConfig
}

func NewRosterUseCase(repo interfaces.Repository, cfg *config.PollConfig) *RosterUseCase {
	return &RosterUseCase{repo: repo, cfg: cfg}
}

// Enroll adds or refreshes a roster member. The email must be on the
// allow-list; anyone else gets ErrUnauthorizedEnrollment and no roster write.
func (uc *RosterUseCase) Enroll(ctx context.Context, email types.EmailAddress, displayName, handle string) (*model.Member, error) {
	email = email.Normalize()
	if err := email.Validate(); err != nil {
		return nil, err
	}

	if !uc.cfg.IsAllowed(email) {
		return nil, goerr.Wrap(ErrUnauthorizedEnrollment, "enrollment refused",
			goerr.V("email", email),
		)
	}

	member := &model.Member{
		Email:              email,
		DisplayName:        displayName,
		ConversationHandle: handle,
		Active:             true,
	}
	if member.DisplayName == "" {
		member.DisplayName = string(email)
	}

	if err := uc.repo.Roster().Upsert(ctx, member); err != nil {
		return nil, goerr.Wrap(err, "failed to enroll member", goerr.V("email", email))
	}

	return member, nil
}

// IsAllowed reports whether the email is on the enrollment allow-list.
func (uc *RosterUseCase) IsAllowed(email types.EmailAddress) bool {
	return uc.cfg.IsAllowed(email.Normalize())
}

// Deactivate flips a member to inactive so dispatch and summaries skip them.
// The row stays in the roster and re-enrolling reactivates it.
func (uc *RosterUseCase) Deactivate(ctx context.Context, email types.EmailAddress) error {
	member, err := uc.repo.Roster().Get(ctx, email)
	if err != nil {
		return err
	}

	member.Active = false
	if err := uc.repo.Roster().Upsert(ctx, member); err != nil {
		return goerr.Wrap(err, "failed to deactivate member", goerr.V("email", email))
	}

	return nil
}

// ListActive returns the members eligible for polling, in roster order.
// Inactive members and members without a conversation handle are excluded.
func (uc *RosterUseCase) ListActive(ctx context.Context) ([]*model.Member, error) {
	members, err := uc.repo.Roster().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list roster")
	}

	active := make([]*model.Member, 0, len(members))
	for _, m := range members {
		if m.Reachable() {
			active = append(active, m)
		}
	}

	return active, nil
}

// EnrollmentAck is the message shown to a member after a successful "register".
func EnrollmentAck(member *model.Member) string {
	return fmt.Sprintf("You're registered for daily availability polls, %s. You'll get the next poll automatically.", member.DisplayName)
}
