package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/availiq/availiq/pkg/domain/types"
)

// PollResponse is one append-only row of the response log. The logical key
// is (PollID, Email) but the log permits duplicates; readers resolve to the
// last-written row for a pair (see ResolveResponses).
type PollResponse struct {
	Date               types.PollID
	PollID             types.PollID
	Email              types.EmailAddress
	DisplayName        string
	Status             types.AvailabilityStatus
	StartTime          string
	EndTime            string
	Notes              string
	RespondedAt        time.Time
	ConversationHandle string
}

// Validate checks the fields required for appending a response row.
// Status is intentionally NOT restricted to the known set.
func (r *PollResponse) Validate() error {
	if err := r.PollID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid response poll ID")
	}
	if err := r.Email.Validate(); err != nil {
		return goerr.Wrap(err, "invalid response email")
	}
	if r.Status == "" {
		return goerr.New("response status is required", goerr.V("email", r.Email), goerr.V("pollID", r.PollID))
	}
	return nil
}

// ResolveResponses reduces an append-ordered response log to the effective
// row per member: the last-written row for each normalized email wins,
// matching most-recent-submission-wins for members who resubmit.
func ResolveResponses(responses []*PollResponse) map[types.EmailAddress]*PollResponse {
	resolved := make(map[types.EmailAddress]*PollResponse, len(responses))
	for _, r := range responses {
		resolved[r.Email.Normalize()] = r
	}
	return resolved
}
