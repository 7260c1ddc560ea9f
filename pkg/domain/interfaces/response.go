package interfaces

import (
	"context"

	"github.com/availiq/availiq/pkg/domain/model"
	"github.com/availiq/availiq/pkg/domain/types"
)

// ResponseRepository defines the interface for the append-only response log
type ResponseRepository interface {
	// Append adds a response row. Rows are never mutated or deleted, and
	// duplicate (pollID, email) pairs are permitted.
	Append(ctx context.Context, response *model.PollResponse) error

	// ListByPoll returns all response rows for the poll in append order.
	// Append order is the tie-break for last-write-wins resolution.
	ListByPoll(ctx context.Context, pollID types.PollID) ([]*model.PollResponse, error)
}
