package app

import (
	"time"

	"gitremind/internal/domain/reminder"
	"gitremind/internal/domain/settings"

	"github.com/sirupsen/logrus"
)

// DueService runs the body of one poll tick: load the reminder snapshot,
// expand and detect what is newly due, raise alerts, and persist the flipped
// notified flags in a single batched write.
type DueService struct {
	store     reminder.Store
	settings  settings.Store
	escalator *EscalationService
	logger    *logrus.Logger

	now func() time.Time
}

func NewDueService(
	store reminder.Store,
	settingsStore settings.Store,
	escalator *EscalationService,
	logger *logrus.Logger,
) *DueService {
	return &DueService{
		store:     store,
		settings:  settingsStore,
		escalator: escalator,
		logger:    logger,
		now:       time.Now,
	}
}

// RunCheck executes one due-detection cycle. Errors never escape: a failed
// load degrades to an empty set for this tick and a failed save keeps the
// in-memory state, both logged only.
func (s *DueService) RunCheck() {
	now := s.now()

	reminders, err := s.store.Load()
	if err != nil {
		s.logger.WithError(err).Warn("Could not load reminders; skipping this tick")
		return
	}
	if len(reminders) == 0 {
		return
	}

	cfg, err := s.settings.LoadSettings()
	if err != nil {
		cfg = settings.Default()
	}
	interval := cfg.CheckInterval
	if interval <= 0 {
		interval = settings.Default().CheckInterval
	}

	result := reminder.Detect(reminders, now, time.Duration(interval)*time.Second)
	if result.Skipped > 0 {
		s.logger.WithField("count", result.Skipped).Debug("Skipped reminders with malformed fields")
	}

	for _, occ := range result.Due {
		s.logger.WithFields(logrus.Fields{
			"reminder_id": occ.OriginalID,
			"occurrence":  occ.ID,
			"due_at":      occ.Date + " " + occ.Time,
		}).Info("Reminder due")
		s.escalator.Show(occ.Reminder, false)
	}

	if result.Changed {
		if err := s.store.Save(reminders); err != nil {
			s.logger.WithError(err).Error("Could not persist notified flags")
		}
	}
}
