package interfaces

import (
	"context"

	"github.com/availiq/availiq/pkg/domain/model"
	"github.com/availiq/availiq/pkg/domain/types"
)

// DispatchLogRepository defines the interface for the append-only send log
type DispatchLogRepository interface {
	// Append adds a dispatch log row
	Append(ctx context.Context, entry *model.DispatchEntry) error

	// ListByPoll returns all dispatch log rows for the poll in append order
	ListByPoll(ctx context.Context, pollID types.PollID) ([]*model.DispatchEntry, error)
}
