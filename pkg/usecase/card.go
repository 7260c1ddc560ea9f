package usecase

import (
	"fmt"

	"github.com/availiq/availiq/pkg/domain/types"
	"github.com/slack-go/slack"
)

// Action and block identifiers shared with the interaction webhook. Button
// values carry the poll ID so a late click still records against the day the
// card was sent for.
const (
	ActionIDStatusAvailable   = "availiq_status_available"
	ActionIDStatusLimited     = "availiq_status_limited"
	ActionIDStatusUnavailable = "availiq_status_unavailable"

	BlockIDStartTime = "availiq_start_time"
	BlockIDEndTime   = "availiq_end_time"
	BlockIDNotes     = "availiq_notes"

	ActionIDStartTime = "start_time"
	ActionIDEndTime   = "end_time"
	ActionIDNotes     = "notes"
)

// StatusForActionID maps a poll card button to the status it records.
func StatusForActionID(actionID string) (types.AvailabilityStatus, bool) {
	switch actionID {
	case ActionIDStatusAvailable:
		return types.StatusAvailable, true
	case ActionIDStatusLimited:
		return types.StatusLimited, true
	case ActionIDStatusUnavailable:
		return types.StatusUnavailable, true
	default:
		return "", false
	}
}

func buildPollCardBlocks(pollID types.PollID) []slack.Block {
	header := slack.NewHeaderBlock(
		slack.NewTextBlockObject(slack.PlainTextType, fmt.Sprintf("📋 Daily Availability Poll (%s)", pollID), true, false),
	)
	prompt := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, "What's your availability today? Pick a status, and optionally fill in your hours and notes first.", false, false),
		nil, nil,
	)

	startInput := slack.NewInputBlock(
		BlockIDStartTime,
		slack.NewTextBlockObject(slack.PlainTextType, "Start time", false, false),
		slack.NewTextBlockObject(slack.PlainTextType, "e.g. 09:00", false, false),
		slack.NewPlainTextInputBlockElement(slack.NewTextBlockObject(slack.PlainTextType, "09:00", false, false), ActionIDStartTime),
	)
	startInput.Optional = true
	endInput := slack.NewInputBlock(
		BlockIDEndTime,
		slack.NewTextBlockObject(slack.PlainTextType, "End time", false, false),
		slack.NewTextBlockObject(slack.PlainTextType, "e.g. 17:00", false, false),
		slack.NewPlainTextInputBlockElement(slack.NewTextBlockObject(slack.PlainTextType, "17:00", false, false), ActionIDEndTime),
	)
	endInput.Optional = true
	notesInput := slack.NewInputBlock(
		BlockIDNotes,
		slack.NewTextBlockObject(slack.PlainTextType, "Notes", false, false),
		slack.NewTextBlockObject(slack.PlainTextType, "Anything the team should know", false, false),
		slack.NewPlainTextInputBlockElement(slack.NewTextBlockObject(slack.PlainTextType, "Optional", false, false), ActionIDNotes),
	)
	notesInput.Optional = true

	available := slack.NewButtonBlockElement(ActionIDStatusAvailable, string(pollID),
		slack.NewTextBlockObject(slack.PlainTextType, "✅ Available", true, false))
	available.Style = slack.StylePrimary
	limited := slack.NewButtonBlockElement(ActionIDStatusLimited, string(pollID),
		slack.NewTextBlockObject(slack.PlainTextType, "⚠️ Limited", true, false))
	unavailable := slack.NewButtonBlockElement(ActionIDStatusUnavailable, string(pollID),
		slack.NewTextBlockObject(slack.PlainTextType, "❌ Unavailable", true, false))
	unavailable.Style = slack.StyleDanger

	return []slack.Block{
		header,
		prompt,
		startInput,
		endInput,
		notesInput,
		slack.NewActionBlock("availiq_status_actions", available, limited, unavailable),
	}
}

func pollCardFallbackText(pollID types.PollID) string {
	return fmt.Sprintf("Daily Availability Poll (%s)", pollID)
}
