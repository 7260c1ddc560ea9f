package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/availiq/availiq/pkg/domain/types"
	"github.com/availiq/availiq/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestCurrentStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("every reachable member appears once in roster order", func(t *testing.T) {
		uc, _ := newTestUseCases(t, &mockSlackService{}, "a@example.com", "b@example.com", "c@example.com")
		seedMember(t, uc, "a@example.com", "D1")
		seedMember(t, uc, "b@example.com", "D2")
		seedMember(t, uc, "c@example.com", "D3")

		_, err := uc.Response.Record(ctx, usecase.RecordInput{Email: "b@example.com", Status: types.StatusLimited, StartTime: "10:00"})
		gt.NoError(t, err).Required()

		statuses, err := uc.Status.CurrentStatus(ctx, testPollID)
		gt.NoError(t, err).Required()
		gt.Array(t, statuses).Length(3)

		gt.Value(t, statuses[0].Email).Equal("a@example.com")
		gt.Value(t, statuses[0].CurrentStatus).Equal(types.StatusNoResponse)
		gt.Bool(t, statuses[0].Responded()).False()

		gt.Value(t, statuses[1].Email).Equal("b@example.com")
		gt.Value(t, statuses[1].CurrentStatus).Equal(types.StatusLimited)
		gt.Value(t, statuses[1].StartTime).Equal("10:00")
		gt.Bool(t, statuses[1].Responded()).True()

		gt.Value(t, statuses[2].CurrentStatus).Equal(types.StatusNoResponse)
	})

	t.Run("last submission wins for resubmitters", func(t *testing.T) {
		uc, _ := newTestUseCases(t, &mockSlackService{}, "a@example.com")
		seedMember(t, uc, "a@example.com", "D1")

		_, err := uc.Response.Record(ctx, usecase.RecordInput{Email: "a@example.com", Status: types.StatusAvailable})
		gt.NoError(t, err).Required()
		_, err = uc.Response.Record(ctx, usecase.RecordInput{Email: "a@example.com", Status: types.StatusUnavailable})
		gt.NoError(t, err).Required()

		statuses, err := uc.Status.CurrentStatus(ctx, testPollID)
		gt.NoError(t, err).Required()
		gt.Array(t, statuses).Length(1)
		gt.Value(t, statuses[0].CurrentStatus).Equal(types.StatusUnavailable)
	})

	t.Run("responses from off-roster members are ignored", func(t *testing.T) {
		uc, _ := newTestUseCases(t, &mockSlackService{}, "a@example.com")
		seedMember(t, uc, "a@example.com", "D1")

		_, err := uc.Response.Record(ctx, usecase.RecordInput{Email: "stranger@example.com", Status: types.StatusAvailable})
		gt.NoError(t, err).Required()

		statuses, err := uc.Status.CurrentStatus(ctx, testPollID)
		gt.NoError(t, err).Required()
		gt.Array(t, statuses).Length(1)
		gt.Value(t, statuses[0].Email).Equal("a@example.com")
	})

	t.Run("mixed roster with a resubmitter", func(t *testing.T) {
		emails := []types.EmailAddress{"a@example.com", "b@example.com", "c@example.com", "d@example.com", "e@example.com"}
		uc, _ := newTestUseCases(t, &mockSlackService{}, emails...)
		for i, email := range emails {
			seedMember(t, uc, email, fmt.Sprintf("D%d", i+1))
		}

		_, err := uc.Response.Record(ctx, usecase.RecordInput{Email: "a@example.com", Status: types.StatusAvailable})
		gt.NoError(t, err).Required()
		_, err = uc.Response.Record(ctx, usecase.RecordInput{Email: "b@example.com", Status: types.StatusLimited})
		gt.NoError(t, err).Required()
		_, err = uc.Response.Record(ctx, usecase.RecordInput{Email: "c@example.com", Status: types.StatusAvailable})
		gt.NoError(t, err).Required()
		_, err = uc.Response.Record(ctx, usecase.RecordInput{Email: "c@example.com", Status: types.StatusUnavailable})
		gt.NoError(t, err).Required()

		statuses, err := uc.Status.CurrentStatus(ctx, testPollID)
		gt.NoError(t, err).Required()
		gt.Array(t, statuses).Length(5)
		gt.Value(t, statuses[0].CurrentStatus).Equal(types.StatusAvailable)
		gt.Value(t, statuses[1].CurrentStatus).Equal(types.StatusLimited)
		gt.Value(t, statuses[2].CurrentStatus).Equal(types.StatusUnavailable)
		gt.Value(t, statuses[3].CurrentStatus).Equal(types.StatusNoResponse)
		gt.Value(t, statuses[4].CurrentStatus).Equal(types.StatusNoResponse)

		pending, err := uc.Status.NonResponders(ctx, testPollID)
		gt.NoError(t, err).Required()
		gt.Array(t, pending).Length(2)
		gt.Value(t, pending[0].Email).Equal("d@example.com")
		gt.Value(t, pending[1].Email).Equal("e@example.com")
	})

	t.Run("malformed poll ID is rejected", func(t *testing.T) {
		uc, _ := newTestUseCases(t, &mockSlackService{})
		_, err := uc.Status.CurrentStatus(ctx, "today")
		gt.Error(t, err)
	})
}

func TestNonResponders(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCases(t, &mockSlackService{}, "a@example.com", "b@example.com", "c@example.com")
	seedMember(t, uc, "a@example.com", "D1")
	seedMember(t, uc, "b@example.com", "D2")
	seedMember(t, uc, "c@example.com", "D3")

	_, err := uc.Response.Record(ctx, usecase.RecordInput{Email: "B@Example.com", Status: types.StatusAvailable})
	gt.NoError(t, err).Required()

	pending, err := uc.Status.NonResponders(ctx, testPollID)
	gt.NoError(t, err).Required()
	gt.Array(t, pending).Length(2)
	gt.Value(t, pending[0].Email).Equal("a@example.com")
	gt.Value(t, pending[1].Email).Equal("c@example.com")
}

func TestTodayPollID(t *testing.T) {
	uc, _ := newTestUseCases(t, &mockSlackService{})
	gt.Value(t, uc.Status.TodayPollID()).Equal(testPollID)
}
