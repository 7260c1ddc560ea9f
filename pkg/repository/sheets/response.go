package sheets

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/availiq/availiq/pkg/domain/model"
	"github.com/availiq/availiq/pkg/domain/types"
)

type responseRepository struct {
	sheets *Sheets
}

func (r *responseRepository) Append(ctx context.Context, response *model.PollResponse) error {
	row := []interface{}{
		response.Date.String(),
		response.PollID.String(),
		response.Email.String(),
		response.DisplayName,
		response.Status.String(),
		response.StartTime,
		response.EndTime,
		response.Notes,
		response.RespondedAt.UTC().Format(time.RFC3339),
		response.ConversationHandle,
	}

	if err := r.sheets.appendRow(ctx, responsesTab, row); err != nil {
		return goerr.Wrap(err, "failed to append response",
			goerr.V("pollID", response.PollID),
			goerr.V("email", response.Email),
		)
	}
	return nil
}

func (r *responseRepository) ListByPoll(ctx context.Context, pollID types.PollID) ([]*model.PollResponse, error) {
	rows, err := r.sheets.getRows(ctx, responsesTab)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to scan responses", goerr.V("pollID", pollID))
	}

	responses := make([]*model.PollResponse, 0)
	for _, row := range rows {
		if types.PollID(cell(row, 1)) != pollID {
			continue
		}

		respondedAt, _ := time.Parse(time.RFC3339, cell(row, 8))
		responses = append(responses, &model.PollResponse{
			Date:               types.PollID(cell(row, 0)),
			PollID:             types.PollID(cell(row, 1)),
			Email:              types.EmailAddress(cell(row, 2)),
			DisplayName:        cell(row, 3),
			Status:             types.AvailabilityStatus(cell(row, 4)),
			StartTime:          cell(row, 5),
			EndTime:            cell(row, 6),
			Notes:              cell(row, 7),
			RespondedAt:        respondedAt,
			ConversationHandle: cell(row, 9),
		})
	}
	return responses, nil
}
