package memory

import (
	"context"
	"sync"

	"github.com/availiq/availiq/pkg/domain/model"
	"github.com/availiq/availiq/pkg/domain/types"
)

type responseRepository struct {
	mu        sync.RWMutex
	responses []*model.PollResponse
}

func newResponseRepository() *responseRepository {
	return &responseRepository{}
}

func copyResponse(r *model.PollResponse) *model.PollResponse {
	copied := *r
	return &copied
}

func (r *responseRepository) Append(ctx context.Context, response *model.PollResponse) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.responses = append(r.responses, copyResponse(response))
	return nil
}

func (r *responseRepository) ListByPoll(ctx context.Context, pollID types.PollID) ([]*model.PollResponse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.PollResponse, 0)
	for _, resp := range r.responses {
		if resp.PollID == pollID {
			result = append(result, copyResponse(resp))
		}
	}

	return result, nil
}
