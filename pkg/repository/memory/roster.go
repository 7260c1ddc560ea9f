package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/availiq/availiq/pkg/domain/interfaces"
	"github.com/availiq/availiq/pkg/domain/model"
	"github.com/availiq/availiq/pkg/domain/types"
)

type rosterRepository struct {
	mu sync.RWMutex

	// members holds rows in insertion order; index maps the normalized
	// email to the row's position so upserts replace in place.
	members []*model.Member
	index   map[types.EmailAddress]int
}

func newRosterRepository() *rosterRepository {
	return &rosterRepository{
		index: make(map[types.EmailAddress]int),
	}
}

func copyMember(m *model.Member) *model.Member {
	copied := *m
	return &copied
}

func (r *rosterRepository) Upsert(ctx context.Context, member *model.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := member.Email.Normalize()
	stored := copyMember(member)

	if pos, exists := r.index[key]; exists {
		r.members[pos] = stored
		return nil
	}

	r.index[key] = len(r.members)
	r.members = append(r.members, stored)
	return nil
}

func (r *rosterRepository) Get(ctx context.Context, email types.EmailAddress) (*model.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, exists := r.index[email.Normalize()]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrMemberNotFound, "member not in roster", goerr.V("email", email))
	}

	return copyMember(r.members[pos]), nil
}

func (r *rosterRepository) List(ctx context.Context) ([]*model.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Member, len(r.members))
	for i, m := range r.members {
		result[i] = copyMember(m)
	}

	return result, nil
}
