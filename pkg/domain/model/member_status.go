package model

import (
	"time"

	"github.com/availiq/availiq/pkg/domain/types"
)

// MemberStatus is the derived per-member view for one poll day. It is
// recomputed from the roster and response log on every read, never stored.
type MemberStatus struct {
	Email              types.EmailAddress
	DisplayName        string
	ConversationHandle string
	Active             bool
	CurrentStatus      types.AvailabilityStatus
	LastRespondedAt    time.Time
	Notes              string
	StartTime          string
	EndTime            string
}

// NewMemberStatus joins a roster entry with its resolved response row.
// A nil response yields NO_RESPONSE with empty detail fields.
func NewMemberStatus(member *Member, resolved *PollResponse) *MemberStatus {
	st := &MemberStatus{
		Email:              member.Email,
		DisplayName:        member.DisplayName,
		ConversationHandle: member.ConversationHandle,
		Active:             member.Active,
		CurrentStatus:      types.StatusNoResponse,
	}
	if resolved != nil {
		st.CurrentStatus = resolved.Status
		st.LastRespondedAt = resolved.RespondedAt
		st.Notes = resolved.Notes
		st.StartTime = resolved.StartTime
		st.EndTime = resolved.EndTime
	}
	return st
}

// Responded checks whether the member has an effective response
func (s *MemberStatus) Responded() bool {
	return s.CurrentStatus != types.StatusNoResponse
}
