package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/availiq/availiq/pkg/domain/model"
	"github.com/availiq/availiq/pkg/domain/types"
	"github.com/availiq/availiq/pkg/usecase"
	"github.com/m-mizutani/gt"
	"github.com/slack-go/slack"
)

func seedMember(t *testing.T, uc *usecase.UseCases, email types.EmailAddress, handle string) {
	t.Helper()
	_, err := uc.Roster.Enroll(context.Background(), email, "", handle)
	gt.NoError(t, err).Required()
}

func TestRunDispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("sends one card per reachable member", func(t *testing.T) {
		mock := &mockSlackService{}
		uc, repo := newTestUseCases(t, mock, "a@example.com", "b@example.com")
		seedMember(t, uc, "a@example.com", "D1")
		seedMember(t, uc, "b@example.com", "D2")

		report, err := uc.Dispatch.RunDispatch(ctx, "MORNING")
		gt.NoError(t, err).Required()
		gt.Value(t, report.PollID).Equal(testPollID)
		gt.Value(t, report.Sent).Equal(2)
		gt.Value(t, report.Skipped).Equal(0)
		gt.Value(t, report.Failed).Equal(0)
		gt.Value(t, report.RunID).NotEqual("")
		gt.Array(t, mock.blockPosts).Length(2)

		entries, err := repo.DispatchLog().ListByPoll(ctx, testPollID)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(2)
		for _, e := range entries {
			gt.Value(t, e.Outcome).Equal(types.SentOutcome("MORNING"))
			gt.Bool(t, e.Outcome.IsSent()).True()
		}
	})

	t.Run("members who already responded are skipped", func(t *testing.T) {
		mock := &mockSlackService{}
		uc, repo := newTestUseCases(t, mock, "a@example.com", "b@example.com")
		seedMember(t, uc, "a@example.com", "D1")
		seedMember(t, uc, "b@example.com", "D2")

		_, err := uc.Response.Record(ctx, usecase.RecordInput{
			Email:  "a@example.com",
			Status: types.StatusAvailable,
		})
		gt.NoError(t, err).Required()

		report, err := uc.Dispatch.RunDispatch(ctx, "MIDDAY")
		gt.NoError(t, err).Required()
		gt.Value(t, report.Sent).Equal(1)
		gt.Value(t, report.Skipped).Equal(1)
		gt.Array(t, mock.blockPosts).Length(1)
		gt.Value(t, mock.blockPosts[0].channelID).Equal("D2")

		entries, err := repo.DispatchLog().ListByPoll(ctx, testPollID)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(1)
		gt.Value(t, entries[0].Email).Equal("b@example.com")
		gt.Value(t, entries[0].Outcome).Equal(types.SentOutcome("MIDDAY"))
	})

	t.Run("send failure is isolated and logged as FAILED", func(t *testing.T) {
		mock := &mockSlackService{
			postBlocksFn: func(ctx context.Context, channelID string, blocks []slack.Block, fallbackText string) error {
				if channelID == "D1" {
					return errors.New("channel_not_found")
				}
				return nil
			},
		}
		uc, repo := newTestUseCases(t, mock, "a@example.com", "b@example.com")
		seedMember(t, uc, "a@example.com", "D1")
		seedMember(t, uc, "b@example.com", "D2")

		report, err := uc.Dispatch.RunDispatch(ctx, "MORNING")
		gt.NoError(t, err).Required()
		gt.Value(t, report.Sent).Equal(1)
		gt.Value(t, report.Failed).Equal(1)

		entries, err := repo.DispatchLog().ListByPoll(ctx, testPollID)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(2)

		byEmail := map[types.EmailAddress]*model.DispatchEntry{}
		for _, e := range entries {
			byEmail[e.Email] = e
		}
		gt.Value(t, byEmail["a@example.com"].Outcome).Equal(types.DispatchOutcomeFailed)
		gt.Value(t, byEmail["a@example.com"].Error).NotEqual("")
		gt.Value(t, byEmail["b@example.com"].Outcome).Equal(types.SentOutcome("MORNING"))
	})

	t.Run("inactive members are not prompted", func(t *testing.T) {
		mock := &mockSlackService{}
		uc, _ := newTestUseCases(t, mock, "a@example.com", "b@example.com")
		seedMember(t, uc, "a@example.com", "D1")
		seedMember(t, uc, "b@example.com", "D2")
		gt.NoError(t, uc.Roster.Deactivate(ctx, "b@example.com")).Required()

		report, err := uc.Dispatch.RunDispatch(ctx, "MORNING")
		gt.NoError(t, err).Required()
		gt.Value(t, report.Sent).Equal(1)
		gt.Array(t, mock.blockPosts).Length(1)
		gt.Value(t, mock.blockPosts[0].channelID).Equal("D1")
	})

	t.Run("repeated run converges to one prompt per member", func(t *testing.T) {
		mock := &mockSlackService{}
		uc, _ := newTestUseCases(t, mock, "a@example.com")
		seedMember(t, uc, "a@example.com", "D1")

		_, err := uc.Dispatch.RunDispatch(ctx, "MORNING")
		gt.NoError(t, err).Required()
		_, err = uc.Response.Record(ctx, usecase.RecordInput{Email: "a@example.com", Status: types.StatusLimited})
		gt.NoError(t, err).Required()

		report, err := uc.Dispatch.RunDispatch(ctx, "MORNING")
		gt.NoError(t, err).Required()
		gt.Value(t, report.Sent).Equal(0)
		gt.Value(t, report.Skipped).Equal(1)
		gt.Array(t, mock.blockPosts).Length(1)
	})

	t.Run("invalid label is rejected", func(t *testing.T) {
		uc, _ := newTestUseCases(t, &mockSlackService{})
		_, err := uc.Dispatch.RunDispatch(ctx, "bad label!")
		gt.Error(t, err)
	})

	t.Run("unconfigured label is rejected before any send", func(t *testing.T) {
		mock := &mockSlackService{}
		uc, _ := newTestUseCases(t, mock, "a@example.com")
		seedMember(t, uc, "a@example.com", "D1")

		_, err := uc.Dispatch.RunDispatch(ctx, "EVENING")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrUnknownRunLabel)).True()
		gt.Array(t, mock.blockPosts).Length(0)
	})
}
