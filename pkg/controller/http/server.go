package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/availiq/availiq/pkg/usecase"
	"github.com/availiq/availiq/pkg/utils/logging"
)

type Server struct {
	router             *chi.Mux
	uc                 *usecase.UseCases
	slackSigningSecret string
	botUserID          string
}

type Options func(*Server)

// WithBotUserID tells the event webhook which member_joined_channel events
// are the bot itself being added to a conversation.
func WithBotUserID(userID string) Options {
	return func(s *Server) {
		s.botUserID = userID
	}
}

func New(uc *usecase.UseCases, slackSigningSecret string, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:             r,
		uc:                 uc,
		slackSigningSecret: slackSigningSecret,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	// Slack webhooks - no auth, signature verification only
	r.Route("/hooks/slack", func(r chi.Router) {
		r.Use(SlackSignatureMiddleware(s.slackSigningSecret))

		r.Post("/event", NewSlackEventHandler(uc.Slack, s.botUserID).ServeHTTP)
		r.Post("/interaction", NewSlackInteractionHandler(uc.Slack).ServeHTTP)
	})

	// Dashboard query path
	r.Get("/api/status", statusHandler(uc.Status))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK")) //nolint:errcheck // header already committed
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
