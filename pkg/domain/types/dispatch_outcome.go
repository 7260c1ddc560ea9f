package types

import "strings"

// DispatchOutcome records the result of one poll prompt send attempt.
// Successful sends are tagged with the run label ("SENT_9AM"), failures are
// recorded as "FAILED" with the error detail kept alongside in the log row.
type DispatchOutcome string

const (
	sentOutcomePrefix = "SENT_"

	DispatchOutcomeFailed DispatchOutcome = "FAILED"
)

// SentOutcome builds the outcome value for a successful send under a run label
func SentOutcome(label RunLabel) DispatchOutcome {
	return DispatchOutcome(sentOutcomePrefix + label.String())
}

// IsSent checks if the outcome records a successful send
func (o DispatchOutcome) IsSent() bool {
	return strings.HasPrefix(string(o), sentOutcomePrefix)
}

// String returns the string representation of the dispatch outcome
func (o DispatchOutcome) String() string {
	return string(o)
}
