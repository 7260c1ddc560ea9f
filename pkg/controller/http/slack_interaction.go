package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/availiq/availiq/pkg/usecase"
	"github.com/availiq/availiq/pkg/utils/errutil"
	"github.com/availiq/availiq/pkg/utils/logging"
)

// SlackInteractionHandler handles Slack interactive component payloads
// (poll card button clicks)
type SlackInteractionHandler struct {
	slackUC *usecase.SlackUseCases
}

func NewSlackInteractionHandler(slackUC *usecase.SlackUseCases) *SlackInteractionHandler {
	return &SlackInteractionHandler{
		slackUC: slackUC,
	}
}

// ServeHTTP handles Slack interaction webhook requests
func (h *SlackInteractionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Slack sends interaction payloads as application/x-www-form-urlencoded
	// with a "payload" field containing JSON
	payload := r.FormValue("payload")
	if payload == "" {
		errutil.HandleHTTP(ctx, w, goerr.New("missing payload field in interaction request"), http.StatusBadRequest)
		return
	}

	var callback slack.InteractionCallback
	if err := json.Unmarshal([]byte(payload), &callback); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse interaction payload"), http.StatusBadRequest)
		return
	}

	if err := h.slackUC.HandleInteraction(ctx, &callback); err != nil {
		// Ack Slack anyway; the click is not retryable from their side
		logging.From(ctx).Error("failed to handle slack interaction",
			"error", err,
			"user_id", callback.User.ID,
		)
	}

	w.WriteHeader(http.StatusOK)
}
