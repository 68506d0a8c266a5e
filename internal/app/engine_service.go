package app

import (
	"fmt"
	"time"

	"gitremind/internal/domain/reminder"
	"gitremind/internal/domain/settings"

	"github.com/sirupsen/logrus"
)

// EngineService is the command interface exposed to the presentation
// collaborator. Every call is advisory: internal failures are converted to a
// sentinel return (nil, false or the unchanged state), never propagated.
type EngineService interface {
	Reminders() []reminder.Reminder
	SaveReminder(r reminder.Reminder) *reminder.Reminder
	DeleteReminder(id string) bool
	Settings() settings.Settings
	SaveSettings(p settings.Patch) settings.Settings
	ResetApp() bool
	ScheduleProgressiveNotification(r reminder.Reminder) bool
}

// Resetter clears all persisted state.
type Resetter interface {
	Reset() error
}

// IntervalSetter re-arms the poll loop with a new period.
type IntervalSetter interface {
	SetInterval(d time.Duration)
}

// EngineServiceImpl implements EngineService over the store and the
// escalation/poll components.
type EngineServiceImpl struct {
	store     reminder.Store
	settings  settings.Store
	resetter  Resetter
	escalator *EscalationService
	poll      IntervalSetter
	logger    *logrus.Logger

	// newID assigns ids at creation; swappable for tests.
	newID func() string
}

func NewEngineService(
	store reminder.Store,
	settingsStore settings.Store,
	resetter Resetter,
	escalator *EscalationService,
	poll IntervalSetter,
	logger *logrus.Logger,
) *EngineServiceImpl {
	return &EngineServiceImpl{
		store:     store,
		settings:  settingsStore,
		resetter:  resetter,
		escalator: escalator,
		poll:      poll,
		logger:    logger,
		newID: func() string {
			return fmt.Sprintf("%d", time.Now().UnixMilli())
		},
	}
}

// Reminders returns the full persisted collection; empty on store failure.
func (s *EngineServiceImpl) Reminders() []reminder.Reminder {
	reminders, err := s.store.Load()
	if err != nil {
		s.logger.WithError(err).Warn("Could not load reminders")
		return []reminder.Reminder{}
	}
	return reminders
}

// SaveReminder creates or replaces a record. A record without an id gets a
// creation-timestamp id; a record with an unknown id is appended.
func (s *EngineServiceImpl) SaveReminder(r reminder.Reminder) *reminder.Reminder {
	reminders, err := s.store.Load()
	if err != nil {
		s.logger.WithError(err).Warn("Could not load reminders for save")
		return nil
	}

	if r.ID == "" {
		r.ID = s.newID()
		reminders = append(reminders, r)
	} else {
		replaced := false
		for i := range reminders {
			if reminders[i].ID == r.ID {
				reminders[i] = r
				replaced = true
				break
			}
		}
		if !replaced {
			reminders = append(reminders, r)
		}
	}

	if err := s.store.Save(reminders); err != nil {
		s.logger.WithError(err).Error("Could not persist reminder")
		return nil
	}
	return &r
}

// DeleteReminder removes a record by id and cancels any outstanding
// escalation timers for it.
func (s *EngineServiceImpl) DeleteReminder(id string) bool {
	reminders, err := s.store.Load()
	if err != nil {
		s.logger.WithError(err).Warn("Could not load reminders for delete")
		return false
	}

	kept := reminders[:0]
	for _, r := range reminders {
		if r.ID != id {
			kept = append(kept, r)
		}
	}

	if err := s.store.Save(kept); err != nil {
		s.logger.WithError(err).Error("Could not persist reminder deletion")
		return false
	}

	s.escalator.CancelFor(id)
	return true
}

// Settings returns the current settings document, defaults on failure.
func (s *EngineServiceImpl) Settings() settings.Settings {
	cfg, err := s.settings.LoadSettings()
	if err != nil {
		s.logger.WithError(err).Warn("Could not load settings")
		return settings.Default()
	}
	return cfg
}

// SaveSettings merges a partial update and persists the result. When the
// poll interval changed, the running poll timer is replaced atomically.
func (s *EngineServiceImpl) SaveSettings(p settings.Patch) settings.Settings {
	current := s.Settings()
	merged := current.Apply(p)

	if err := s.settings.SaveSettings(merged); err != nil {
		s.logger.WithError(err).Error("Could not persist settings; keeping in-memory state")
	}

	if p.CheckInterval != nil && merged.CheckInterval != current.CheckInterval && merged.CheckInterval > 0 {
		s.poll.SetInterval(time.Duration(merged.CheckInterval) * time.Second)
	}

	return merged
}

// ResetApp clears all persisted state, drops every escalation timer and
// restores the default poll interval.
func (s *EngineServiceImpl) ResetApp() bool {
	if err := s.resetter.Reset(); err != nil {
		s.logger.WithError(err).Error("Could not reset persisted state")
		return false
	}
	s.escalator.Reset()
	s.poll.SetInterval(time.Duration(settings.Default().CheckInterval) * time.Second)
	s.logger.Info("Application state reset")
	return true
}

// ScheduleProgressiveNotification starts (or advances) the escalation chain
// for a reminder. Rejected when the event time cannot be parsed, since no
// stage target could ever be computed from it.
func (s *EngineServiceImpl) ScheduleProgressiveNotification(r reminder.Reminder) bool {
	if _, err := r.When(); err != nil {
		s.logger.WithError(err).WithField("reminder_id", r.ID).
			Warn("Rejecting progressive notification with malformed event time")
		return false
	}
	s.escalator.Show(r, true)
	return true
}
