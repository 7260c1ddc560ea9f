package sheets

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/availiq/availiq/pkg/domain/model"
	"github.com/availiq/availiq/pkg/domain/types"
)

type dispatchLogRepository struct {
	sheets *Sheets
}

func (r *dispatchLogRepository) Append(ctx context.Context, entry *model.DispatchEntry) error {
	row := []interface{}{
		entry.Date.String(),
		entry.PollID.String(),
		entry.Email.String(),
		entry.ConversationHandle,
		entry.SentAt.UTC().Format(time.RFC3339),
		entry.Outcome.String(),
		entry.Error,
	}

	if err := r.sheets.appendRow(ctx, pollLogTab, row); err != nil {
		return goerr.Wrap(err, "failed to append dispatch log entry",
			goerr.V("pollID", entry.PollID),
			goerr.V("email", entry.Email),
		)
	}
	return nil
}

func (r *dispatchLogRepository) ListByPoll(ctx context.Context, pollID types.PollID) ([]*model.DispatchEntry, error) {
	rows, err := r.sheets.getRows(ctx, pollLogTab)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to scan dispatch log", goerr.V("pollID", pollID))
	}

	entries := make([]*model.DispatchEntry, 0)
	for _, row := range rows {
		if types.PollID(cell(row, 1)) != pollID {
			continue
		}

		sentAt, _ := time.Parse(time.RFC3339, cell(row, 4))
		entries = append(entries, &model.DispatchEntry{
			Date:               types.PollID(cell(row, 0)),
			PollID:             types.PollID(cell(row, 1)),
			Email:              types.EmailAddress(cell(row, 2)),
			ConversationHandle: cell(row, 3),
			SentAt:             sentAt,
			Outcome:            types.DispatchOutcome(cell(row, 5)),
			Error:              cell(row, 6),
		})
	}
	return entries, nil
}
