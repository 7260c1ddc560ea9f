package usecase_test

import (
	"context"
	"testing"

	"github.com/availiq/availiq/pkg/domain/types"
	"github.com/availiq/availiq/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestResponseRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to today's poll in the configured zone", func(t *testing.T) {
		uc, repo := newTestUseCases(t, &mockSlackService{}, "a@example.com")

		ack, err := uc.Response.Record(ctx, usecase.RecordInput{
			Email:  "A@Example.com",
			Status: types.StatusAvailable,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, ack).Equal("Recorded: AVAILABLE. Thank you!")

		rows, err := repo.Response().ListByPoll(ctx, testPollID)
		gt.NoError(t, err).Required()
		gt.Array(t, rows).Length(1)
		gt.Value(t, rows[0].Email).Equal("a@example.com")
		gt.Value(t, rows[0].PollID).Equal(testPollID)
	})

	t.Run("explicit poll ID records against that day", func(t *testing.T) {
		uc, repo := newTestUseCases(t, &mockSlackService{}, "a@example.com")

		_, err := uc.Response.Record(ctx, usecase.RecordInput{
			PollID: "2025-06-01",
			Email:  "a@example.com",
			Status: types.StatusUnavailable,
		})
		gt.NoError(t, err).Required()

		rows, err := repo.Response().ListByPoll(ctx, "2025-06-01")
		gt.NoError(t, err).Required()
		gt.Array(t, rows).Length(1)

		today, err := repo.Response().ListByPoll(ctx, testPollID)
		gt.NoError(t, err).Required()
		gt.Array(t, today).Length(0)
	})

	t.Run("resubmission appends a second row", func(t *testing.T) {
		uc, repo := newTestUseCases(t, &mockSlackService{}, "a@example.com")

		_, err := uc.Response.Record(ctx, usecase.RecordInput{Email: "a@example.com", Status: types.StatusAvailable})
		gt.NoError(t, err).Required()
		_, err = uc.Response.Record(ctx, usecase.RecordInput{Email: "a@example.com", Status: types.StatusUnavailable, Notes: "dentist"})
		gt.NoError(t, err).Required()

		rows, err := repo.Response().ListByPoll(ctx, testPollID)
		gt.NoError(t, err).Required()
		gt.Array(t, rows).Length(2)
		gt.Value(t, rows[1].Status).Equal(types.StatusUnavailable)
		gt.Value(t, rows[1].Notes).Equal("dentist")
	})

	t.Run("unrecognized status is stored verbatim", func(t *testing.T) {
		uc, repo := newTestUseCases(t, &mockSlackService{}, "a@example.com")

		ack, err := uc.Response.Record(ctx, usecase.RecordInput{Email: "a@example.com", Status: "SICK"})
		gt.NoError(t, err).Required()
		gt.Value(t, ack).Equal("Recorded: SICK. Thank you!")

		rows, err := repo.Response().ListByPoll(ctx, testPollID)
		gt.NoError(t, err).Required()
		gt.Value(t, rows[0].Status).Equal(types.AvailabilityStatus("SICK"))
	})

	t.Run("missing status is rejected", func(t *testing.T) {
		uc, _ := newTestUseCases(t, &mockSlackService{}, "a@example.com")
		_, err := uc.Response.Record(ctx, usecase.RecordInput{Email: "a@example.com"})
		gt.Error(t, err)
	})

	t.Run("malformed poll ID is rejected", func(t *testing.T) {
		uc, _ := newTestUseCases(t, &mockSlackService{}, "a@example.com")
		_, err := uc.Response.Record(ctx, usecase.RecordInput{PollID: "June 2nd", Email: "a@example.com", Status: types.StatusAvailable})
		gt.Error(t, err)
	})
}
