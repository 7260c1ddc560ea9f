package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/availiq/availiq/pkg/domain/interfaces"
	"github.com/availiq/availiq/pkg/domain/model"
	"github.com/availiq/availiq/pkg/domain/model/config"
	"github.com/availiq/availiq/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type ResponseUseCase struct {
	repo  interfaces.Repository
	cfg   *config.PollConfig
	clock func() time.Time
}

func NewResponseUseCase(repo interfaces.Repository, cfg *config.PollConfig, clock func() time.Time) *ResponseUseCase {
	return &ResponseUseCase{repo: repo, cfg: cfg, clock: clock}
}

// RecordInput is one poll answer as it arrives from the chat surface.
// PollID may be empty, in which case the response records against today.
type RecordInput struct {
	PollID             types.PollID
	Email              types.EmailAddress
	DisplayName        string
	Status             types.AvailabilityStatus
	StartTime          string
	EndTime            string
	Notes              string
	ConversationHandle string
}

// Record appends a response row. Re-submissions append a new row rather than
// updating in place; readers resolve to the latest row per member.
func (uc *ResponseUseCase) Record(ctx context.Context, in RecordInput) (string, error) {
	pollID := in.PollID
	if pollID == "" {
		pollID = model.TodayPollID(uc.clock(), uc.cfg.Location)
	}

	response := &model.PollResponse{
		Date:               pollID,
		PollID:             pollID,
		Email:              in.Email.Normalize(),
		DisplayName:        in.DisplayName,
		Status:             in.Status,
		StartTime:          in.StartTime,
		EndTime:            in.EndTime,
		Notes:              in.Notes,
		RespondedAt:        uc.clock().UTC(),
		ConversationHandle: in.ConversationHandle,
	}
	if response.DisplayName == "" {
		response.DisplayName = string(response.Email)
	}

	if err := response.Validate(); err != nil {
		return "", err
	}

	if err := uc.repo.Response().Append(ctx, response); err != nil {
		return "", goerr.Wrap(err, "failed to record response",
			goerr.V("poll_id", pollID),
			goerr.V("email", response.Email),
		)
	}

	return fmt.Sprintf("Recorded: %s. Thank you!", response.Status), nil
}
