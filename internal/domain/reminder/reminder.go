package reminder

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the naive local calendar date carried on a record.
	DateLayout = "2006-01-02"
	// TimeLayout is the naive local clock time carried on a record.
	TimeLayout = "15:04"
)

// Pattern names a recurrence frequency.
type Pattern string

const (
	PatternDaily   Pattern = "daily"
	PatternWeekly  Pattern = "weekly"
	PatternMonthly Pattern = "monthly"
	PatternYearly  Pattern = "yearly"
)

// EndMode says how a recurring series terminates.
type EndMode string

const (
	EndNever  EndMode = "never"
	EndAfter  EndMode = "after"
	EndOnDate EndMode = "on-date"
)

// Reminder is the persisted record. Date and Time are naive local strings;
// no timezone or offset is stored.
type Reminder struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Type        string  `json:"reminderType,omitempty"`
	IsRecurring bool    `json:"isRecurring"`
	Pattern     Pattern `json:"recurrencePattern,omitempty"`
	// Weekdays holds weekday indices 0-6 (Sunday=0); weekly pattern only.
	Weekdays []int `json:"weekdays,omitempty"`
	// MonthDay is the target day-of-month 1-31; monthly pattern only.
	MonthDay    int     `json:"monthDay,omitempty"`
	End         EndMode `json:"recurrenceEnd,omitempty"`
	Occurrences int     `json:"occurrences,omitempty"`
	EndDate     string  `json:"endDate,omitempty"`
	Notified    bool    `json:"notified"`
	// NotificationDuration is how long an alert stays visible, in seconds.
	// Zero means the global default applies.
	NotificationDuration int `json:"notificationDuration,omitempty"`
}

// When combines Date and Time into a naive local instant.
func (r *Reminder) When() (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+"T"+TimeLayout, r.Date+"T"+r.Time, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("reminder %s has malformed date/time %q %q: %w", r.ID, r.Date, r.Time, err)
	}
	return t, nil
}

// Occurrence is one concrete materialization of a Reminder. It is derived
// on every evaluation cycle and never persisted. The embedded Reminder is a
// copy with Date/Time rewritten to the occurrence instant, ID replaced by a
// synthesized one and Notified set relative to "now" at expansion time.
type Occurrence struct {
	Reminder
	OriginalID  string `json:"originalId"`
	IsGenerated bool   `json:"isGeneratedOccurrence"`
}

// Store is the durable record set. Load and Save move the whole collection;
// there are no partial updates.
type Store interface {
	Load() ([]Reminder, error)
	Save(reminders []Reminder) error
}
