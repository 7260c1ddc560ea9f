package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/availiq/availiq/pkg/domain/types"
	"github.com/availiq/availiq/pkg/usecase"
	"github.com/availiq/availiq/pkg/utils/errutil"
	"github.com/availiq/availiq/pkg/utils/logging"
)

type memberStatusResponse struct {
	Email              string `json:"email"`
	DisplayName        string `json:"display_name"`
	ConversationHandle string `json:"conversation_handle"`
	Active             bool   `json:"active"`
	CurrentStatus      string `json:"current_status"`
	StartTime          string `json:"start_time,omitempty"`
	EndTime            string `json:"end_time,omitempty"`
	Notes              string `json:"notes,omitempty"`
	LastRespondedAt    string `json:"last_responded_at,omitempty"`
}

type statusResponse struct {
	Source  string                 `json:"source"`
	PollID  types.PollID           `json:"poll_id"`
	Members []memberStatusResponse `json:"members"`
}

// statusHandler serves the dashboard's availability view. A failing store
// degrades to an empty fallback payload with HTTP 200 so the dashboard can
// render its cached last-known state instead of an error page.
func statusHandler(statusUC *usecase.StatusUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		pollID := types.PollID(r.URL.Query().Get("poll_id"))
		if pollID == "" {
			pollID = statusUC.TodayPollID()
		}
		if err := pollID.Validate(); err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid poll_id query parameter"), http.StatusBadRequest)
			return
		}

		resp := statusResponse{
			Source:  "live",
			PollID:  pollID,
			Members: []memberStatusResponse{},
		}

		statuses, err := statusUC.CurrentStatus(ctx, pollID)
		if err != nil {
			logging.From(ctx).Error("status query fell back to empty payload",
				"poll_id", pollID,
				"error", err.Error(),
			)
			resp.Source = "fallback"
		} else {
			for _, st := range statuses {
				m := memberStatusResponse{
					Email:              string(st.Email),
					DisplayName:        st.DisplayName,
					ConversationHandle: st.ConversationHandle,
					Active:             st.Active,
					CurrentStatus:      string(st.CurrentStatus),
					StartTime:          st.StartTime,
					EndTime:            st.EndTime,
					Notes:              st.Notes,
				}
				if !st.LastRespondedAt.IsZero() {
					m.LastRespondedAt = st.LastRespondedAt.UTC().Format(time.RFC3339)
				}
				resp.Members = append(resp.Members, m)
			}
		}

		data, err := json.Marshal(resp)
		if err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal status response"), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data) //nolint:errcheck // header already committed
	}
}
