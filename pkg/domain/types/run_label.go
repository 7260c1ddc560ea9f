package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// RunLabel distinguishes independent scheduled dispatch passes within the
// same day (e.g. "9AM" for the initial run, "12PM" for the reminder).
type RunLabel string

var runLabelPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// Validate checks if the RunLabel is valid
func (r RunLabel) Validate() error {
	if r == "" {
		return goerr.New("run label cannot be empty")
	}
	if !runLabelPattern.MatchString(string(r)) {
		return goerr.New("run label must be alphanumeric with hyphens or underscores", goerr.V("label", r))
	}
	return nil
}

// String returns the string representation of RunLabel
func (r RunLabel) String() string {
	return string(r)
}
