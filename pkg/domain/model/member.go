package model

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/availiq/availiq/pkg/domain/types"
)

// Member is one roster entry: an enrolled team member keyed by email.
// ConversationHandle is the opaque chat delivery address (the Slack DM
// channel ID here); it stays empty until the member has enrolled.
// Members are never hard-deleted, deactivation flips Active to false.
type Member struct {
	Email              types.EmailAddress
	DisplayName        string
	ConversationHandle string
	Active             bool
}

// Validate checks if the Member is valid
func (m *Member) Validate() error {
	if err := m.Email.Validate(); err != nil {
		return goerr.Wrap(err, "invalid member email")
	}
	if m.DisplayName == "" {
		return goerr.New("member display name is required", goerr.V("email", m.Email))
	}
	return nil
}

// Reachable checks whether the member can receive a poll prompt
func (m *Member) Reachable() bool {
	return m.Active && m.ConversationHandle != ""
}
