package memory

import (
	"context"
	"sync"

	"github.com/availiq/availiq/pkg/domain/model"
	"github.com/availiq/availiq/pkg/domain/types"
)

type dispatchLogRepository struct {
	mu      sync.RWMutex
	entries []*model.DispatchEntry
}

func newDispatchLogRepository() *dispatchLogRepository {
	return &dispatchLogRepository{}
}

func copyEntry(e *model.DispatchEntry) *model.DispatchEntry {
	copied := *e
	return &copied
}

func (r *dispatchLogRepository) Append(ctx context.Context, entry *model.DispatchEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, copyEntry(entry))
	return nil
}

func (r *dispatchLogRepository) ListByPoll(ctx context.Context, pollID types.PollID) ([]*model.DispatchEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.DispatchEntry, 0)
	for _, e := range r.entries {
		if e.PollID == pollID {
			result = append(result, copyEntry(e))
		}
	}

	return result, nil
}
