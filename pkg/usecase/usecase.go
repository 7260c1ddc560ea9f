package usecase

import (
	"time"

	"github.com/availiq/availiq/pkg/domain/interfaces"
	"github.com/availiq/availiq/pkg/domain/model/config"
	slacksvc "github.com/availiq/availiq/pkg/service/slack"
)

type UseCases struct {
	repo  interfaces.Repository
	cfg   *config.PollConfig
	clock func() time.Time

	Roster   *RosterUseCase
	Dispatch *DispatchUseCase
	Response *ResponseUseCase
	Status   *StatusUseCase
	Summary  *SummaryUseCase
	Slack    *SlackUseCases
}

type Option func(*UseCases)

// WithClock overrides the wall clock, used by tests to pin the poll day
func WithClock(clock func() time.Time) Option {
	return func(uc *UseCases) {
		uc.clock = clock
	}
}

func New(repo interfaces.Repository, cfg *config.PollConfig, slackSvc slacksvc.Service, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:  repo,
		cfg:   cfg,
		clock: time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Roster = NewRosterUseCase(repo, cfg)
	uc.Status = NewStatusUseCase(repo, cfg, uc.clock)
	uc.Response = NewResponseUseCase(repo, cfg, uc.clock)
	uc.Dispatch = NewDispatchUseCase(repo, cfg, slackSvc, uc.clock)
	uc.Summary = NewSummaryUseCase(cfg, slackSvc, uc.Status)
	uc.Slack = NewSlackUseCases(uc.Roster, uc.Response, slackSvc)

	return uc
}
