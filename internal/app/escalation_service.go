package app

import (
	"sync"
	"time"

	"gitremind/internal/domain/alert"
	"gitremind/internal/domain/reminder"
	"gitremind/internal/domain/settings"

	"github.com/sirupsen/logrus"
)

// EscalationService owns the per-reminder alert lifecycle: which stage a
// reminder is at, which alert is currently visible, and which one-shot timers
// are armed for future stages. All state lives on this struct; timer
// callbacks re-enter through the mutex.
type EscalationService struct {
	notifier alert.Notifier
	fallback alert.Notifier
	settings settings.Store
	logger   *logrus.Logger

	mu      sync.Mutex
	stages  map[string]int         // reminder id -> last shown stage
	dismiss map[string]*time.Timer // auto-dismiss timer per live alert
	pending map[string]*time.Timer // next-stage timer per reminder id

	// now is swappable for tests.
	now func() time.Time
}

func NewEscalationService(
	notifier alert.Notifier,
	fallback alert.Notifier,
	settingsStore settings.Store,
	logger *logrus.Logger,
) *EscalationService {
	return &EscalationService{
		notifier: notifier,
		fallback: fallback,
		settings: settingsStore,
		logger:   logger,
		stages:   make(map[string]int),
		dismiss:  make(map[string]*time.Timer),
		pending:  make(map[string]*time.Timer),
		now:      time.Now,
	}
}

// Show displays an alert for the reminder, replacing any live alert for the
// same id. When progressive is set and the stage is not terminal, the next
// stage is scheduled relative to the event time.
func (s *EscalationService) Show(r reminder.Reminder, progressive bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	// At most one live alert per reminder id.
	if t, ok := s.dismiss[r.ID]; ok {
		t.Stop()
		delete(s.dismiss, r.ID)
		s.notifier.Dismiss(r.ID)
	}

	stage := s.stages[r.ID] + 1
	s.stages[r.ID] = stage

	event, eventErr := r.When()
	if eventErr != nil {
		s.logger.WithError(eventErr).WithField("reminder_id", r.ID).
			Warn("Alert has unparseable event time; showing without countdown or escalation")
	}

	cfg := s.loadSettings()
	a := alert.Alert{
		ID:       r.ID,
		Title:    alert.Title(r.Title, stage, progressive),
		Urgency:  alert.UrgencyFor(r.Type, stage),
		Sound:    cfg.PlaySoundOnNotification,
		Duration: s.alertDuration(r, cfg),
	}
	if eventErr == nil {
		a.Body = alert.Body(r.Type, r.Description, stage, event, now)
	} else {
		a.Body = r.Description
	}

	if err := s.notifier.Show(a); err != nil {
		s.logger.WithError(err).WithField("reminder_id", r.ID).
			Warn("Alert delivery failed; falling back to degraded notice")
		if fbErr := s.fallback.Show(a); fbErr != nil {
			s.logger.WithError(fbErr).WithField("reminder_id", r.ID).
				Error("Fallback alert delivery failed; alert lost")
		}
	}

	id := r.ID
	s.dismiss[id] = time.AfterFunc(a.Duration, func() {
		s.autoDismiss(id)
	})

	if progressive && stage < alert.StageStartingNow && eventErr == nil {
		s.scheduleNextStage(r, stage, event, now)
	}
}

// CancelFor drops all escalation state and timers for a reminder id. Called
// on reminder deletion so a stale alert can never fire for a removed record.
func (s *EscalationService) CancelFor(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(id)
}

// Reset cancels every outstanding timer and clears all stage tracking.
func (s *EscalationService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.stages {
		s.cancelLocked(id)
	}
	for id := range s.dismiss {
		s.cancelLocked(id)
	}
	for id := range s.pending {
		s.cancelLocked(id)
	}
}

// Shutdown is Reset under a clearer name for process exit.
func (s *EscalationService) Shutdown() {
	s.Reset()
}

// nextStageTime computes the absolute fire time for the stage after the one
// just shown. The second return is false at or beyond the terminal stage.
//
// stage 1 -> event-24h, falling back to event-3h once that has passed;
// stage 2 -> event-1h; stage 3 -> the event itself.
func nextStageTime(shownStage int, event, now time.Time) (time.Time, bool) {
	switch shownStage {
	case alert.StageInitial:
		target := event.AddDate(0, 0, -1)
		if target.Before(now) {
			target = event.Add(-3 * time.Hour)
		}
		return target, true
	case alert.StageReminder:
		return event.Add(-time.Hour), true
	case alert.StageFinal:
		return event, true
	default:
		return time.Time{}, false
	}
}

func (s *EscalationService) scheduleNextStage(r reminder.Reminder, shownStage int, event, now time.Time) {
	target, ok := nextStageTime(shownStage, event, now)
	if !ok {
		return
	}
	// A target already in the past is skipped, not fired immediately.
	if !target.After(now) {
		return
	}

	if t, ok := s.pending[r.ID]; ok {
		t.Stop()
	}
	s.pending[r.ID] = time.AfterFunc(target.Sub(now), func() {
		s.mu.Lock()
		delete(s.pending, r.ID)
		s.mu.Unlock()
		s.Show(r, true)
	})

	s.logger.WithFields(logrus.Fields{
		"reminder_id": r.ID,
		"after_stage": shownStage,
		"fire_at":     target.Format(time.RFC3339),
	}).Debug("Scheduled next escalation stage")
}

func (s *EscalationService) autoDismiss(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.dismiss[id]; !ok {
		return
	}
	delete(s.dismiss, id)
	s.notifier.Dismiss(id)
}

func (s *EscalationService) cancelLocked(id string) {
	if t, ok := s.pending[id]; ok {
		t.Stop()
		delete(s.pending, id)
	}
	if t, ok := s.dismiss[id]; ok {
		t.Stop()
		delete(s.dismiss, id)
		s.notifier.Dismiss(id)
	}
	delete(s.stages, id)
}

func (s *EscalationService) loadSettings() settings.Settings {
	cfg, err := s.settings.LoadSettings()
	if err != nil {
		return settings.Default()
	}
	return cfg
}

func (s *EscalationService) alertDuration(r reminder.Reminder, cfg settings.Settings) time.Duration {
	seconds := r.NotificationDuration
	if seconds <= 0 {
		seconds = cfg.DefaultNotificationDuration
	}
	if seconds <= 0 {
		seconds = settings.Default().DefaultNotificationDuration
	}
	return time.Duration(seconds) * time.Second
}
