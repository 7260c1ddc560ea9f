package config

import (
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/availiq/availiq/pkg/domain/types"
)

// DayTime is a time of day with minute resolution, interpreted in the
// poll's configured time zone.
type DayTime struct {
	Hour   int
	Minute int
}

// ParseDayTime parses "HH:MM" into a DayTime
func ParseDayTime(s string) (DayTime, error) {
	var d DayTime
	if _, err := fmt.Sscanf(s, "%d:%d", &d.Hour, &d.Minute); err != nil {
		return DayTime{}, goerr.Wrap(err, "time must be formatted as HH:MM", goerr.V("time", s))
	}
	if d.Hour < 0 || d.Hour > 23 || d.Minute < 0 || d.Minute > 59 {
		return DayTime{}, goerr.New("time out of range", goerr.V("time", s))
	}
	return d, nil
}

// MinuteOfDay returns the minutes elapsed since midnight
func (d DayTime) MinuteOfDay() int {
	return d.Hour*60 + d.Minute
}

// String returns the "HH:MM" representation
func (d DayTime) String() string {
	return fmt.Sprintf("%02d:%02d", d.Hour, d.Minute)
}

// DispatchRun is one scheduled dispatch pass: a run label and the local
// wall-clock time it fires at.
type DispatchRun struct {
	Label types.RunLabel
	At    DayTime
}

// PollConfig is the resolved application configuration, constructed once at
// process start and passed by reference into component constructors.
type PollConfig struct {
	// Location is the fixed time zone all poll identity derivation uses
	Location *time.Location

	// LeadershipChannelID is the single destination of the daily digest
	LeadershipChannelID string

	// allowedEmails is the enrollment allow-list, keyed by normalized email
	allowedEmails map[types.EmailAddress]struct{}

	// Runs are the scheduled dispatch passes, in firing order
	Runs []DispatchRun

	// SummaryAt is when the non-responder digest fires
	SummaryAt DayTime
}

// New builds a PollConfig. The allow-list is normalized on the way in.
func New(loc *time.Location, leadershipChannelID string, allowed []types.EmailAddress, runs []DispatchRun, summaryAt DayTime) *PollConfig {
	set := make(map[types.EmailAddress]struct{}, len(allowed))
	for _, e := range allowed {
		set[e.Normalize()] = struct{}{}
	}
	return &PollConfig{
		Location:            loc,
		LeadershipChannelID: leadershipChannelID,
		allowedEmails:       set,
		Runs:                runs,
		SummaryAt:           summaryAt,
	}
}

// IsAllowed checks the enrollment allow-list, case-insensitively
func (c *PollConfig) IsAllowed(email types.EmailAddress) bool {
	_, ok := c.allowedEmails[email.Normalize()]
	return ok
}

// AllowedCount returns the size of the allow-list
func (c *PollConfig) AllowedCount() int {
	return len(c.allowedEmails)
}

// HasRun reports whether a dispatch run with the given label is configured
func (c *PollConfig) HasRun(label types.RunLabel) bool {
	for _, run := range c.Runs {
		if run.Label == label {
			return true
		}
	}
	return false
}
