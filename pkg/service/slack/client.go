package slack

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// client implements Service interface
type client struct {
	api *slack.Client
}

// New creates a new Slack service with the provided bot token
func New(token string) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}

	return &client{api: slack.New(token)}, nil
}

func (c *client) PostBlocks(ctx context.Context, channelID string, blocks []slack.Block, fallbackText string) error {
	_, _, err := c.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(fallbackText, false),
		slack.MsgOptionBlocks(blocks...),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post Slack message", goerr.V("channelID", channelID))
	}
	return nil
}

func (c *client) PostText(ctx context.Context, channelID string, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post Slack message", goerr.V("channelID", channelID))
	}
	return nil
}

func (c *client) GetUserInfo(ctx context.Context, userID string) (*User, error) {
	user, err := c.api.GetUserInfoContext(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get user info", goerr.V("user_id", userID))
	}

	name := user.Profile.DisplayName
	if name == "" {
		name = user.RealName
	}

	return &User{
		ID:          user.ID,
		DisplayName: name,
		Email:       user.Profile.Email,
	}, nil
}
