package types

// AvailabilityStatus represents a member's answer to the daily poll.
//
// The type is deliberately open: the transport may deliver status values
// outside the three known ones and they are stored verbatim. Readers must
// use IsKnown to decide whether a value belongs to the closed set; an
// unrecognized value is treated as a distinct bucket, never an error.
type AvailabilityStatus string

const (
	StatusAvailable   AvailabilityStatus = "AVAILABLE"
	StatusLimited     AvailabilityStatus = "LIMITED"
	StatusUnavailable AvailabilityStatus = "UNAVAILABLE"

	// StatusNoResponse is derived on the read side only; it is never stored.
	StatusNoResponse AvailabilityStatus = "NO_RESPONSE"
)

// KnownStatuses returns the statuses a member can submit via the poll card
func KnownStatuses() []AvailabilityStatus {
	return []AvailabilityStatus{
		StatusAvailable,
		StatusLimited,
		StatusUnavailable,
	}
}

// IsKnown checks if the status is one of the three submittable values
func (s AvailabilityStatus) IsKnown() bool {
	switch s {
	case StatusAvailable, StatusLimited, StatusUnavailable:
		return true
	default:
		return false
	}
}

// String returns the string representation of the availability status
func (s AvailabilityStatus) String() string {
	return string(s)
}
