package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// PollScheduler drives the repeating due-detection tick. It owns exactly one
// cron engine at a time; SetInterval stops the old engine (waiting for a
// running tick to finish) before starting the replacement, so a stale timer
// never coexists with a fresh one. Ticks never overlap: the single @every
// job's next run is only armed after the previous body returns, which cron
// guarantees per entry.
type PollScheduler struct {
	mu         sync.Mutex
	cronEngine *cron.Cron
	job        func()
	interval   time.Duration
	logger     *logrus.Logger
}

func NewPollScheduler(job func(), interval time.Duration, logger *logrus.Logger) *PollScheduler {
	return &PollScheduler{
		job:      job,
		interval: interval,
		logger:   logger,
	}
}

// Start arms the repeating tick. It is an error to call Start twice without
// an intervening Stop.
func (s *PollScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cronEngine != nil {
		return fmt.Errorf("poll scheduler already started")
	}
	engine, err := s.newEngine(s.interval)
	if err != nil {
		return err
	}
	s.cronEngine = engine
	s.cronEngine.Start()
	s.logger.WithField("interval", s.interval.String()).Info("Poll scheduler started")
	return nil
}

// SetInterval atomically replaces the repeating timer with one of the given
// period. A no-op when the period is unchanged or the scheduler is stopped.
func (s *PollScheduler) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cronEngine == nil || d == s.interval {
		s.interval = d
		return
	}

	engine, err := s.newEngine(d)
	if err != nil {
		s.logger.WithError(err).Error("Could not build replacement poll timer; keeping current one")
		return
	}

	ctx := s.cronEngine.Stop()
	<-ctx.Done() // wait for a running tick to finish

	s.cronEngine = engine
	s.interval = d
	s.cronEngine.Start()
	s.logger.WithField("interval", d.String()).Info("Poll interval changed")
}

// Stop cancels the repeating timer and waits for a running tick.
func (s *PollScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cronEngine == nil {
		return
	}
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.cronEngine = nil
	s.logger.Info("Poll scheduler stopped")
}

func (s *PollScheduler) newEngine(d time.Duration) (*cron.Cron, error) {
	engine := cron.New(cron.WithLocation(time.Local))
	if _, err := engine.AddFunc(fmt.Sprintf("@every %s", d), s.job); err != nil {
		return nil, fmt.Errorf("failed to add poll job: %w", err)
	}
	return engine, nil
}
