package model

import (
	"time"

	"github.com/availiq/availiq/pkg/domain/types"
)

// TodayPollID derives the canonical identifier of the current day's poll:
// the calendar date in the given time zone formatted as yyyy-MM-dd.
//
// The value depends only on the date component after time-zone conversion,
// so any two calls within the same calendar day in that zone agree, DST
// shifts included. All response and dispatch-log rows of a day carry this
// same identifier regardless of the hour they were written.
func TodayPollID(now time.Time, loc *time.Location) types.PollID {
	return types.PollID(now.In(loc).Format(time.DateOnly))
}
