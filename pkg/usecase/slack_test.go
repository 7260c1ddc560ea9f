package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/availiq/availiq/pkg/domain/types"
	"github.com/availiq/availiq/pkg/usecase"
	"github.com/m-mizutani/gt"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"

	slacksvc "github.com/availiq/availiq/pkg/service/slack"
)

func TestHandleMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("register enrolls the sender via their profile email", func(t *testing.T) {
		mock := &mockSlackService{}
		uc, repo := newTestUseCases(t, mock, "alice@example.com")

		err := uc.Slack.HandleMessage(ctx, &slackevents.MessageEvent{
			User:    "U123",
			Channel: "D999",
			Text:    "  Register  ",
		})
		gt.NoError(t, err).Required()

		member, err := repo.Roster().Get(ctx, "alice@example.com")
		gt.NoError(t, err).Required()
		gt.Value(t, member.ConversationHandle).Equal("D999")
		gt.Value(t, member.DisplayName).Equal("Alice Example")

		gt.Array(t, mock.textPosts).Length(1)
		gt.Value(t, mock.textPosts[0].channelID).Equal("D999")
		gt.Bool(t, strings.Contains(mock.textPosts[0].text, "registered")).True()
	})

	t.Run("unlisted sender gets a refusal, not an error", func(t *testing.T) {
		mock := &mockSlackService{
			getUserInfoFn: func(ctx context.Context, userID string) (*slacksvc.User, error) {
				return &slacksvc.User{ID: userID, DisplayName: "Mallory", Email: "mallory@example.com"}, nil
			},
		}
		uc, _ := newTestUseCases(t, mock, "alice@example.com")

		err := uc.Slack.HandleMessage(ctx, &slackevents.MessageEvent{
			User:    "U666",
			Channel: "D666",
			Text:    "register",
		})
		gt.NoError(t, err).Required()
		gt.Array(t, mock.textPosts).Length(1)
		gt.Bool(t, strings.Contains(mock.textPosts[0].text, "allow-list")).True()
	})

	t.Run("unlisted sender is refused even for free text", func(t *testing.T) {
		mock := &mockSlackService{
			getUserInfoFn: func(ctx context.Context, userID string) (*slacksvc.User, error) {
				return &slacksvc.User{ID: userID, DisplayName: "Mallory", Email: "mallory@example.com"}, nil
			},
		}
		uc, repo := newTestUseCases(t, mock, "alice@example.com")

		err := uc.Slack.HandleMessage(ctx, &slackevents.MessageEvent{
			User:    "U666",
			Channel: "D666",
			Text:    "hello",
		})
		gt.NoError(t, err).Required()
		gt.Array(t, mock.textPosts).Length(1)
		gt.Bool(t, strings.Contains(mock.textPosts[0].text, "allow-list")).True()

		members, err := repo.Roster().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, members).Length(0)
	})

	t.Run("anything else gets usage help", func(t *testing.T) {
		mock := &mockSlackService{}
		uc, _ := newTestUseCases(t, mock, "alice@example.com")

		err := uc.Slack.HandleMessage(ctx, &slackevents.MessageEvent{
			User:    "U123",
			Channel: "D999",
			Text:    "hello?",
		})
		gt.NoError(t, err).Required()
		gt.Array(t, mock.textPosts).Length(1)
		gt.Bool(t, strings.Contains(mock.textPosts[0].text, "register")).True()
	})

	t.Run("bot messages are ignored", func(t *testing.T) {
		mock := &mockSlackService{}
		uc, _ := newTestUseCases(t, mock, "alice@example.com")

		err := uc.Slack.HandleMessage(ctx, &slackevents.MessageEvent{
			BotID:   "B123",
			Channel: "D999",
			Text:    "register",
		})
		gt.NoError(t, err).Required()
		gt.Array(t, mock.textPosts).Length(0)
	})
}

func TestHandleInteraction(t *testing.T) {
	ctx := context.Background()

	newCallback := func(actionID, value string) *slack.InteractionCallback {
		cb := &slack.InteractionCallback{
			User:    slack.User{ID: "U123"},
			Channel: slack.Channel{},
			ActionCallback: slack.ActionCallbacks{
				BlockActions: []*slack.BlockAction{
					{ActionID: actionID, Value: value},
				},
			},
			BlockActionState: &slack.BlockActionStates{
				Values: map[string]map[string]slack.BlockAction{
					usecase.BlockIDStartTime: {usecase.ActionIDStartTime: {Value: "09:30"}},
					usecase.BlockIDEndTime:   {usecase.ActionIDEndTime: {Value: "15:00"}},
					usecase.BlockIDNotes:     {usecase.ActionIDNotes: {Value: "leaving early"}},
				},
			},
		}
		cb.Type = slack.InteractionTypeBlockActions
		cb.Channel.ID = "D999"
		return cb
	}

	t.Run("button click records status with form inputs", func(t *testing.T) {
		mock := &mockSlackService{}
		uc, repo := newTestUseCases(t, mock, "alice@example.com")

		err := uc.Slack.HandleInteraction(ctx, newCallback(usecase.ActionIDStatusLimited, "2025-06-02"))
		gt.NoError(t, err).Required()

		rows, err := repo.Response().ListByPoll(ctx, testPollID)
		gt.NoError(t, err).Required()
		gt.Array(t, rows).Length(1)
		gt.Value(t, rows[0].Email).Equal("alice@example.com")
		gt.Value(t, rows[0].Status).Equal(types.StatusLimited)
		gt.Value(t, rows[0].StartTime).Equal("09:30")
		gt.Value(t, rows[0].EndTime).Equal("15:00")
		gt.Value(t, rows[0].Notes).Equal("leaving early")

		gt.Array(t, mock.textPosts).Length(1)
		gt.Value(t, mock.textPosts[0].text).Equal("Recorded: LIMITED. Thank you!")
	})

	t.Run("card poll day wins over the current day", func(t *testing.T) {
		mock := &mockSlackService{}
		uc, repo := newTestUseCases(t, mock, "alice@example.com")

		err := uc.Slack.HandleInteraction(ctx, newCallback(usecase.ActionIDStatusAvailable, "2025-06-01"))
		gt.NoError(t, err).Required()

		rows, err := repo.Response().ListByPoll(ctx, "2025-06-01")
		gt.NoError(t, err).Required()
		gt.Array(t, rows).Length(1)
	})

	t.Run("malformed card value still gets a reply", func(t *testing.T) {
		mock := &mockSlackService{}
		uc, repo := newTestUseCases(t, mock, "alice@example.com")

		err := uc.Slack.HandleInteraction(ctx, newCallback(usecase.ActionIDStatusAvailable, "June 2nd"))
		gt.Error(t, err)

		rows, err := repo.Response().ListByPoll(ctx, testPollID)
		gt.NoError(t, err).Required()
		gt.Array(t, rows).Length(0)
		gt.Array(t, mock.textPosts).Length(1)
		gt.Value(t, mock.textPosts[0].channelID).Equal("D999")
	})

	t.Run("unknown action IDs are ignored", func(t *testing.T) {
		mock := &mockSlackService{}
		uc, repo := newTestUseCases(t, mock, "alice@example.com")

		err := uc.Slack.HandleInteraction(ctx, newCallback("some_other_action", "x"))
		gt.NoError(t, err).Required()

		rows, err := repo.Response().ListByPoll(ctx, testPollID)
		gt.NoError(t, err).Required()
		gt.Array(t, rows).Length(0)
		gt.Array(t, mock.textPosts).Length(0)
	})
}

func TestBuildPollCardBlocks(t *testing.T) {
	blocks := usecase.BuildPollCardBlocks("2025-06-02")
	gt.Array(t, blocks).Length(6)

	actions := gt.Cast[*slack.ActionBlock](t, blocks[5])
	gt.Array(t, actions.Elements.ElementSet).Length(3)
	for _, el := range actions.Elements.ElementSet {
		button := gt.Cast[*slack.ButtonBlockElement](t, el)
		gt.Value(t, button.Value).Equal("2025-06-02")
		_, ok := usecase.StatusForActionID(button.ActionID)
		gt.Bool(t, ok).True()
	}
}
