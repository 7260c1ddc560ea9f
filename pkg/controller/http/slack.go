package http

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack/slackevents"

	"github.com/availiq/availiq/pkg/usecase"
	"github.com/availiq/availiq/pkg/utils/async"
	"github.com/availiq/availiq/pkg/utils/errutil"
	"github.com/availiq/availiq/pkg/utils/logging"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const slackBodyKey contextKey = "slack_body"

// verifySlackSignature verifies the Slack request signature
func verifySlackSignature(signingSecret, timestamp, signature string, body []byte) error {
	if timestamp == "" {
		return goerr.New("missing timestamp")
	}

	if signature == "" {
		return goerr.New("missing signature")
	}

	// Check timestamp to prevent replay attacks (within 5 minutes)
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return goerr.Wrap(err, "invalid timestamp")
	}

	now := time.Now().Unix()
	if now-ts > 60*5 {
		return goerr.New("timestamp too old", goerr.V("timestamp", timestamp), goerr.V("now", now))
	}

	baseString := fmt.Sprintf("v0:%s:%s", timestamp, body)
	mac := hmac.New(sha256.New, []byte(signingSecret))
	if _, err := mac.Write([]byte(baseString)); err != nil {
		return goerr.Wrap(err, "failed to compute HMAC")
	}
	expectedSignature := "v0=" + hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expectedSignature), []byte(signature)) {
		return goerr.New("signature mismatch")
	}

	return nil
}

// SlackSignatureMiddleware creates a middleware that verifies Slack request signatures
func SlackSignatureMiddleware(signingSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			body, err := io.ReadAll(r.Body)
			if err != nil {
				errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
				return
			}
			defer func() {
				if err := r.Body.Close(); err != nil {
					logging.From(ctx).Error("failed to close request body", "error", err)
				}
			}()

			timestamp := r.Header.Get("X-Slack-Request-Timestamp")
			signature := r.Header.Get("X-Slack-Signature")

			if err := verifySlackSignature(signingSecret, timestamp, signature, body); err != nil {
				errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "slack signature verification failed"), http.StatusUnauthorized)
				return
			}

			// Store body in context for later use and restore it to the request
			ctx = context.WithValue(ctx, slackBodyKey, body)
			r.Body = io.NopCloser(bytes.NewBuffer(body))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SlackEventHandler handles Slack Events API webhook requests
type SlackEventHandler struct {
	slackUC   *usecase.SlackUseCases
	botUserID string
}

func NewSlackEventHandler(slackUC *usecase.SlackUseCases, botUserID string) *SlackEventHandler {
	return &SlackEventHandler{
		slackUC:   slackUC,
		botUserID: botUserID,
	}
}

// ServeHTTP handles Slack webhook requests
func (h *SlackEventHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Body already verified by middleware
	body, err := io.ReadAll(r.Body)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}

	eventsAPIEvent, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse slack event"), http.StatusBadRequest)
		return
	}

	switch eventsAPIEvent.Type {
	case slackevents.URLVerification:
		var resp *slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to unmarshal challenge"), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(resp.Challenge)); err != nil {
			logging.From(ctx).Error("failed to write challenge response", "error", err)
		}
		return

	case slackevents.CallbackEvent:
		// Return 200 immediately to satisfy Slack's 3-second timeout requirement
		w.WriteHeader(http.StatusOK)

		async.Dispatch(ctx, func(ctx context.Context) error {
			return h.handleCallback(ctx, &eventsAPIEvent)
		})

	default:
		logging.From(ctx).Warn("unknown slack event type", "type", eventsAPIEvent.Type)
		w.WriteHeader(http.StatusOK)
	}
}

func (h *SlackEventHandler) handleCallback(ctx context.Context, event *slackevents.EventsAPIEvent) error {
	switch ev := event.InnerEvent.Data.(type) {
	case *slackevents.MessageEvent:
		// Enrollment and help only make sense in a direct message
		if ev.ChannelType != "im" {
			return nil
		}
		if err := h.slackUC.HandleMessage(ctx, ev); err != nil {
			return goerr.Wrap(err, "failed to handle message event")
		}

	case *slackevents.MemberJoinedChannelEvent:
		if h.botUserID == "" || ev.User != h.botUserID {
			return nil
		}
		if err := h.slackUC.HandleBotJoined(ctx, ev.Channel); err != nil {
			return goerr.Wrap(err, "failed to handle member_joined_channel event")
		}

	default:
		logging.From(ctx).Debug("ignoring slack inner event", "type", event.InnerEvent.Type)
	}

	return nil
}
