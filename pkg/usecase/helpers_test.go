package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/availiq/availiq/pkg/domain/model/config"
	"github.com/availiq/availiq/pkg/domain/types"
	"github.com/availiq/availiq/pkg/repository/memory"
	"github.com/availiq/availiq/pkg/usecase"
	"github.com/m-mizutani/gt"
	"github.com/slack-go/slack"

	slacksvc "github.com/availiq/availiq/pkg/service/slack"
)

type textPost struct {
	channelID string
	text      string
}

type blockPost struct {
	channelID string
	blocks    []slack.Block
	fallback  string
}

type mockSlackService struct {
	postBlocksFn  func(ctx context.Context, channelID string, blocks []slack.Block, fallbackText string) error
	postTextFn    func(ctx context.Context, channelID string, text string) error
	getUserInfoFn func(ctx context.Context, userID string) (*slacksvc.User, error)

	textPosts  []textPost
	blockPosts []blockPost
}

func (m *mockSlackService) PostBlocks(ctx context.Context, channelID string, blocks []slack.Block, fallbackText string) error {
	if m.postBlocksFn != nil {
		if err := m.postBlocksFn(ctx, channelID, blocks, fallbackText); err != nil {
			return err
		}
	}
	m.blockPosts = append(m.blockPosts, blockPost{channelID: channelID, blocks: blocks, fallback: fallbackText})
	return nil
}

func (m *mockSlackService) PostText(ctx context.Context, channelID string, text string) error {
	if m.postTextFn != nil {
		if err := m.postTextFn(ctx, channelID, text); err != nil {
			return err
		}
	}
	m.textPosts = append(m.textPosts, textPost{channelID: channelID, text: text})
	return nil
}

func (m *mockSlackService) GetUserInfo(ctx context.Context, userID string) (*slacksvc.User, error) {
	if m.getUserInfoFn != nil {
		return m.getUserInfoFn(ctx, userID)
	}
	return &slacksvc.User{
		ID:          userID,
		DisplayName: "Alice Example",
		Email:       "alice@example.com",
	}, nil
}

// testNow pins every test to the same poll day: 2025-06-02 in New York.
var testNow = time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)

const testPollID = types.PollID("2025-06-02")

func testConfig(t *testing.T, allowed ...types.EmailAddress) *config.PollConfig {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	gt.NoError(t, err).Required()

	morning, err := config.ParseDayTime("09:00")
	gt.NoError(t, err).Required()
	midday, err := config.ParseDayTime("12:00")
	gt.NoError(t, err).Required()
	summaryAt, err := config.ParseDayTime("12:05")
	gt.NoError(t, err).Required()

	return config.New(loc, "C_LEADERSHIP", allowed, []config.DispatchRun{
		{Label: "MORNING", At: morning},
		{Label: "MIDDAY", At: midday},
	}, summaryAt)
}

func newTestUseCases(t *testing.T, mock *mockSlackService, allowed ...types.EmailAddress) (*usecase.UseCases, *memory.Memory) {
	t.Helper()
	repo := memory.New()
	cfg := testConfig(t, allowed...)
	uc := usecase.New(repo, cfg, mock, usecase.WithClock(func() time.Time { return testNow }))
	return uc, repo
}
