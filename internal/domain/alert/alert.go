package alert

import "time"

// Stage is a position in the progressive-notification escalation sequence.
const (
	StageInitial     = 1
	StageReminder    = 2
	StageFinal       = 3
	StageStartingNow = 4 // terminal
)

// Urgency is the severity hint passed to the alert surface.
type Urgency string

const (
	UrgencyNormal   Urgency = "normal"
	UrgencyCritical Urgency = "critical"
)

// Alert is one rendered notification handed to a delivery channel. ID is the
// reminder (or occurrence) id; a channel must keep at most one live alert per
// id and replace the previous one on a repeated Show.
type Alert struct {
	ID       string
	Title    string
	Body     string
	Urgency  Urgency
	Sound    bool
	Duration time.Duration // visible lifetime before auto-dismissal
}

// Notifier is an alert delivery channel. Implementations must tolerate
// Dismiss for ids they have never shown.
type Notifier interface {
	Show(a Alert) error
	Dismiss(id string)
}

// StagePrefix returns the title prefix used on progressive alerts.
func StagePrefix(stage int) string {
	switch stage {
	case StageInitial:
		return "[Initial] "
	case StageReminder:
		return "[Reminder] "
	case StageFinal:
		return "[Final Reminder] "
	case StageStartingNow:
		return "[Starting Now] "
	default:
		return "[Reminder] "
	}
}

// UrgencyFor escalates to critical at stage 3, or already at stage 2 for
// deadline reminders.
func UrgencyFor(reminderType string, stage int) Urgency {
	if stage >= StageFinal {
		return UrgencyCritical
	}
	if reminderType == "deadline" && stage >= StageReminder {
		return UrgencyCritical
	}
	return UrgencyNormal
}
