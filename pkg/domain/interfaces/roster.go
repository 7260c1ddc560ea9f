package interfaces

import (
	"context"

	"github.com/availiq/availiq/pkg/domain/model"
	"github.com/availiq/availiq/pkg/domain/types"
)

// RosterRepository defines the interface for roster persistence.
// The roster is the one table with in-place updates: Upsert replaces the
// row matched by normalized email rather than appending a duplicate.
type RosterRepository interface {
	// Upsert creates or replaces the roster row for member.Email
	// (case-insensitive match). After any sequence of upserts there is
	// exactly one row per normalized email.
	Upsert(ctx context.Context, member *model.Member) error

	// Get retrieves the roster row by normalized email.
	// Returns ErrMemberNotFound if no row matches.
	Get(ctx context.Context, email types.EmailAddress) (*model.Member, error)

	// List returns all roster rows in insertion order
	List(ctx context.Context) ([]*model.Member, error)
}
