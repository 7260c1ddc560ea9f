package usecase

import (
	"context"
	"strings"

	"github.com/availiq/availiq/pkg/domain/types"
	"github.com/availiq/availiq/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"

	slacksvc "github.com/availiq/availiq/pkg/service/slack"
)

const helpText = "Send `register` to enroll in daily availability polls. " +
	"Once enrolled you'll get a poll card here each morning; answer with the buttons on the card."

type SlackUseCases struct {
	roster   *RosterUseCase
	response *ResponseUseCase
	slackSvc slacksvc.Service
}

func NewSlackUseCases(roster *RosterUseCase, response *ResponseUseCase, slackSvc slacksvc.Service) *SlackUseCases {
	return &SlackUseCases{
		roster:   roster,
		response: response,
		slackSvc: slackSvc,
	}
}

// HandleMessage processes a direct message to the bot. Senders off the
// allow-list get a refusal no matter what they sent; "register" (case and
// whitespace insensitive) enrolls the sender; anything else gets usage help.
func (uc *SlackUseCases) HandleMessage(ctx context.Context, event *slackevents.MessageEvent) error {
	// Drop bot and edited messages so we never answer ourselves.
	if event.BotID != "" || event.User == "" || event.SubType != "" {
		return nil
	}

	user, err := uc.slackSvc.GetUserInfo(ctx, event.User)
	if err != nil {
		return goerr.Wrap(err, "failed to look up message sender", goerr.V("user_id", event.User))
	}

	if !uc.roster.IsAllowed(types.EmailAddress(user.Email)) {
		logging.From(ctx).Warn("message from unauthorized sender refused", "email", user.Email, "user_id", event.User)
		return uc.slackSvc.PostText(ctx, event.Channel,
			"Sorry, your account isn't on the polling roster allow-list. Ask your lead to add you.")
	}

	if !strings.EqualFold(strings.TrimSpace(event.Text), "register") {
		return uc.slackSvc.PostText(ctx, event.Channel, helpText)
	}

	member, err := uc.roster.Enroll(ctx, types.EmailAddress(user.Email), user.DisplayName, event.Channel)
	if err != nil {
		return err
	}

	return uc.slackSvc.PostText(ctx, event.Channel, EnrollmentAck(member))
}

// HandleBotJoined posts enrollment instructions when the bot is added to a
// channel or conversation.
func (uc *SlackUseCases) HandleBotJoined(ctx context.Context, channelID string) error {
	return uc.slackSvc.PostText(ctx, channelID,
		"👋 I'm AvailabilityIQ. DM me `register` to enroll in daily availability polls.")
}

// HandleInteraction records a poll card answer. The button's action ID carries
// the status and its value carries the poll day the card was sent for.
func (uc *SlackUseCases) HandleInteraction(ctx context.Context, callback *slack.InteractionCallback) error {
	if callback.Type != slack.InteractionTypeBlockActions || len(callback.ActionCallback.BlockActions) == 0 {
		return nil
	}

	action := callback.ActionCallback.BlockActions[0]
	status, ok := StatusForActionID(action.ActionID)
	if !ok {
		return nil
	}

	user, err := uc.slackSvc.GetUserInfo(ctx, callback.User.ID)
	if err != nil {
		return goerr.Wrap(err, "failed to look up user for response", goerr.V("user_id", callback.User.ID))
	}

	in := RecordInput{
		PollID:             types.PollID(action.Value),
		Email:              types.EmailAddress(user.Email),
		DisplayName:        user.DisplayName,
		Status:             status,
		StartTime:          uc.stateValue(callback, BlockIDStartTime, ActionIDStartTime),
		EndTime:            uc.stateValue(callback, BlockIDEndTime, ActionIDEndTime),
		Notes:              uc.stateValue(callback, BlockIDNotes, ActionIDNotes),
		ConversationHandle: callback.Channel.ID,
	}

	ack, err := uc.response.Record(ctx, in)
	if err != nil {
		// The user still gets a reply; the click itself cannot be retried.
		if callback.Channel.ID != "" {
			_ = uc.slackSvc.PostText(ctx, callback.Channel.ID,
				"Thanks! We couldn't record that response, please try again shortly.")
		}
		return err
	}

	return uc.slackSvc.PostText(ctx, callback.Channel.ID, ack)
}

func (uc *SlackUseCases) stateValue(callback *slack.InteractionCallback, blockID, actionID string) string {
	if callback.BlockActionState == nil {
		return ""
	}
	if block, ok := callback.BlockActionState.Values[blockID]; ok {
		if v, ok := block[actionID]; ok {
			return strings.TrimSpace(v.Value)
		}
	}
	return ""
}
