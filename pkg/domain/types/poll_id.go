package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// PollID identifies one calendar day's poll cycle. It is the date formatted
// as yyyy-MM-dd in the configured time zone, never a stored entity.
type PollID string

var pollIDPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Validate checks if the PollID has the canonical date format
func (p PollID) Validate() error {
	if p == "" {
		return goerr.New("poll ID cannot be empty")
	}
	if !pollIDPattern.MatchString(string(p)) {
		return goerr.New("poll ID must be formatted as yyyy-MM-dd", goerr.V("pollID", p))
	}
	return nil
}

// String returns the string representation of PollID
func (p PollID) String() string {
	return string(p)
}
