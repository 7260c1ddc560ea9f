package slack

import (
	"context"

	"github.com/slack-go/slack"
)

// Service provides the narrow Slack API surface the poll engine needs.
// Conversation handles stored in the roster are Slack channel IDs (the
// member's DM channel for prompts, a regular channel for the digest).
type Service interface {
	// PostBlocks sends a Block Kit message to a conversation. fallbackText
	// is used by notifications and clients that cannot render blocks.
	PostBlocks(ctx context.Context, channelID string, blocks []slack.Block, fallbackText string) error

	// PostText sends a plain text message to a conversation
	PostText(ctx context.Context, channelID string, text string) error

	// GetUserInfo retrieves profile information for a Slack user ID
	GetUserInfo(ctx context.Context, userID string) (*User, error)
}

// User is the subset of a Slack user profile the roster needs
type User struct {
	ID          string
	DisplayName string
	Email       string
}
