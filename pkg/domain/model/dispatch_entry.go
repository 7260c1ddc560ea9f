package model

import (
	"time"

	"github.com/availiq/availiq/pkg/domain/types"
)

// DispatchEntry is one append-only row of the send log: a single poll
// prompt attempt to one member under one run label. The log itself does not
// enforce per-(member, label, day) uniqueness; the dispatch engine's skip
// check is the only guard against duplicates.
type DispatchEntry struct {
	Date               types.PollID
	PollID             types.PollID
	Email              types.EmailAddress
	ConversationHandle string
	SentAt             time.Time
	Outcome            types.DispatchOutcome
	Error              string
}
