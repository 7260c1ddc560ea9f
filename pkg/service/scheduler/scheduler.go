package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/availiq/availiq/pkg/domain/model"
	"github.com/availiq/availiq/pkg/domain/model/config"
	"github.com/availiq/availiq/pkg/domain/types"
	"github.com/availiq/availiq/pkg/usecase"
	"github.com/availiq/availiq/pkg/utils/logging"
)

const defaultTickInterval = 30 * time.Second

const summaryJob = "summary"

// Scheduler fires the configured dispatch runs and the non-responder summary
// at their local wall-clock times. A job fires once it is at-or-past its
// time, and at most once per poll day; the latch is in-memory, so a restart
// may re-fire a passed slot. Re-fired dispatch runs are harmless for members
// who already responded, the skip check drops them.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
type Scheduler struct {
	cfg      *config.PollConfig
	uc       *usecase.UseCases
	interval time.Duration
	clock    func() time.Time

	fired  map[string]struct{}
	stopCh chan struct{}
	doneCh chan struct{}
}

type Option func(*Scheduler)

// WithTickInterval overrides how often the scheduler checks the clock
func WithTickInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		s.interval = d
	}
}

// WithClock overrides the wall clock, used by tests
func WithClock(clock func() time.Time) Option {
	return func(s *Scheduler) {
		s.clock = clock
	}
}

func New(cfg *config.PollConfig, uc *usecase.UseCases, opts ...Option) *Scheduler {
	s := &Scheduler{
		cfg:      cfg,
		uc:       uc,
		interval: defaultTickInterval,
		clock:    time.Now,
		fired:    make(map[string]struct{}),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins the scheduling loop in a background goroutine
func (s *Scheduler) Start(ctx context.Context) error {
	logging.Default().Info("scheduler starting",
		"runs", len(s.cfg.Runs),
		"summary_at", s.cfg.SummaryAt.String(),
		"interval", s.interval.String(),
	)

	go s.run(ctx)

	return nil
}

// Stop signals the scheduler to stop and waits for completion
func (s *Scheduler) Stop() {
	close(s.stopCh)
	<-s.doneCh
	logging.Default().Info("scheduler stopped")
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.doneCh)

	s.tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick(ctx)

		case <-s.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("scheduler context cancelled")
			return
		}
	}
}

// tick fires every due job exactly once, then drops latch entries from past
// poll days.
func (s *Scheduler) tick(ctx context.Context) {
	now := s.clock().In(s.cfg.Location)
	pollID := model.TodayPollID(now, s.cfg.Location)
	minute := now.Hour()*60 + now.Minute()

	for _, run := range s.cfg.Runs {
		if minute < run.At.MinuteOfDay() {
			continue
		}
		if !s.latch(pollID, string(run.Label)) {
			continue
		}
		s.fireDispatch(ctx, run.Label)
	}

	if minute >= s.cfg.SummaryAt.MinuteOfDay() && s.latch(pollID, summaryJob) {
		s.fireSummary(ctx, pollID)
	}

	s.prune(pollID)
}

// latch reports whether the job still needs to fire today, and marks it
// fired. A job marks fired before it runs: a failed run waits for the next
// day rather than retrying every tick.
func (s *Scheduler) latch(pollID types.PollID, job string) bool {
	key := fmt.Sprintf("%s/%s", pollID, job)
	if _, ok := s.fired[key]; ok {
		return false
	}
	s.fired[key] = struct{}{}
	return true
}

func (s *Scheduler) prune(pollID types.PollID) {
	prefix := string(pollID) + "/"
	for key := range s.fired {
		if len(key) < len(prefix) || key[:len(prefix)] != prefix {
			delete(s.fired, key)
		}
	}
}

func (s *Scheduler) fireDispatch(ctx context.Context, label types.RunLabel) {
	report, err := s.uc.Dispatch.RunDispatch(ctx, label)
	if err != nil {
		logging.Default().Error("scheduled dispatch run failed",
			"label", label,
			"error", err.Error(),
		)
		return
	}

	logging.Default().Info("scheduled dispatch run completed",
		"label", label,
		"poll_id", report.PollID,
		"sent", report.Sent,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)
}

func (s *Scheduler) fireSummary(ctx context.Context, pollID types.PollID) {
	if err := s.uc.Summary.SendNonResponderSummary(ctx, pollID); err != nil {
		logging.Default().Error("scheduled summary failed",
			"poll_id", pollID,
			"error", err.Error(),
		)
		return
	}

	logging.Default().Info("scheduled summary delivered", "poll_id", pollID)
}
