package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	slacksvc "github.com/availiq/availiq/pkg/service/slack"
)

type Slack struct {
	botToken      string
	signingSecret string
	botUserID     string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token",
			Category:    "Slack",
			Sources:     cli.EnvVars("AVAILIQ_SLACK_BOT_TOKEN"),
			Destination: &x.botToken,
		},
		&cli.StringFlag{
			Name:        "slack-signing-secret",
			Usage:       "Slack Signing Secret (for webhook verification)",
			Category:    "Slack",
			Sources:     cli.EnvVars("AVAILIQ_SLACK_SIGNING_SECRET"),
			Destination: &x.signingSecret,
		},
		&cli.StringFlag{
			Name:        "slack-bot-user-id",
			Usage:       "Bot user ID, used to recognize the bot being added to a channel",
			Category:    "Slack",
			Sources:     cli.EnvVars("AVAILIQ_SLACK_BOT_USER_ID"),
			Destination: &x.botUserID,
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.Int("signing-secret.len", len(x.signingSecret)),
		slog.String("bot-user-id", x.botUserID),
	)
}

// Configure builds the Slack service client
func (x *Slack) Configure() (slacksvc.Service, error) {
	if x.botToken == "" {
		return nil, goerr.New("slack-bot-token is required")
	}
	return slacksvc.New(x.botToken)
}

// SigningSecret returns the Slack signing secret
func (x *Slack) SigningSecret() string {
	return x.signingSecret
}

// BotUserID returns the bot's own user ID
func (x *Slack) BotUserID() string {
	return x.botUserID
}

// IsWebhookConfigured checks if the webhook secret is set
func (x *Slack) IsWebhookConfigured() bool {
	return x.signingSecret != ""
}
