package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// EmailAddress identifies a team member. Comparison is always done on the
// normalized (lowercased, trimmed) form.
type EmailAddress string

// Normalize returns the canonical form used for roster matching
func (e EmailAddress) Normalize() EmailAddress {
	return EmailAddress(strings.ToLower(strings.TrimSpace(string(e))))
}

// Validate checks if the EmailAddress is plausible
func (e EmailAddress) Validate() error {
	s := string(e.Normalize())
	if s == "" {
		return goerr.New("email address cannot be empty")
	}
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return goerr.New("malformed email address", goerr.V("email", s))
	}
	return nil
}

// String returns the string representation of EmailAddress
func (e EmailAddress) String() string {
	return string(e)
}
