package reminder

import (
	"fmt"
	"time"
)

const (
	// MaxOccurrences caps a single expansion regardless of end bounds.
	MaxOccurrences = 20
	// GraceWindow lets the most recent just-passed occurrence through the
	// inclusion filter so a barely-missed event can still be evaluated.
	GraceWindow = 60 * time.Second
	// DefaultHorizon bounds open-ended series relative to "now".
	DefaultHorizon = 1 // years
)

// Expand turns a reminder into its bounded, ordered occurrence sequence.
// A non-recurring reminder expands to exactly one occurrence: itself.
func Expand(r Reminder, now time.Time) ([]Occurrence, error) {
	base, err := r.When()
	if err != nil {
		return nil, err
	}

	if !r.IsRecurring {
		occ := Occurrence{Reminder: r, OriginalID: r.ID}
		return []Occurrence{occ}, nil
	}

	// Effective end bound. A pure occurrence cap ("after") runs unbounded in
	// time; everything else gets either the explicit end date or the default
	// one-year horizon from now.
	var end time.Time
	bounded := true
	switch {
	case r.End == EndOnDate && r.EndDate != "":
		end, err = time.ParseInLocation(DateLayout+"T15:04:05", r.EndDate+"T23:59:59", time.Local)
		if err != nil {
			return nil, fmt.Errorf("reminder %s has malformed end date %q: %w", r.ID, r.EndDate, err)
		}
	case r.End == EndAfter && r.Occurrences > 0:
		bounded = false
	default:
		end = now.AddDate(DefaultHorizon, 0, 0)
	}

	cutoff := now.Add(-GraceWindow)
	var occurrences []Occurrence
	current := base
	count := 0

	for (r.End != EndAfter || count < r.Occurrences) &&
		count < MaxOccurrences &&
		(!bounded || !current.After(end)) {

		if count == 0 || !current.Before(cutoff) {
			occ := Occurrence{Reminder: r, OriginalID: r.ID, IsGenerated: count > 0}
			occ.ID = fmt.Sprintf("%s-%d", r.ID, count)
			occ.Date = current.Format(DateLayout)
			occ.Time = current.Format(TimeLayout)
			// Pre-computed hint for due detection: an occurrence counts as
			// already handled when it is older than the grace window or when
			// the owning record has fired for the current cycle. Without the
			// second clause two back-to-back detection passes over the same
			// snapshot would fire twice.
			occ.Notified = r.Notified || current.Before(cutoff)
			occurrences = append(occurrences, occ)
		}

		count++
		current = nextOccurrence(current, &r)
	}

	return occurrences, nil
}

// nextOccurrence advances one step along the recurrence rule, keeping the
// time of day unchanged.
func nextOccurrence(t time.Time, r *Reminder) time.Time {
	switch r.Pattern {
	case PatternWeekly:
		return nextWeekly(t, r.Weekdays)
	case PatternMonthly:
		return nextMonthly(t, r.MonthDay)
	case PatternYearly:
		return nextYearly(t)
	default: // daily and anything unrecognized
		return t.AddDate(0, 0, 1)
	}
}

func nextWeekly(t time.Time, weekdays []int) time.Time {
	if len(weekdays) == 0 {
		return t.AddDate(0, 0, 7)
	}
	current := int(t.Weekday())
	daysToAdd := 1
	for !containsDay(weekdays, (current+daysToAdd)%7) && daysToAdd < 7 {
		daysToAdd++
	}
	return t.AddDate(0, 0, daysToAdd)
}

func nextMonthly(t time.Time, monthDay int) time.Time {
	target := t.Day()
	if monthDay > 0 {
		target = monthDay
	}
	year, month := t.Year(), t.Month()+1
	last := lastDayOfMonth(year, month)
	if target > last {
		target = last
	}
	return time.Date(year, month, target, t.Hour(), t.Minute(), t.Second(), 0, t.Location())
}

// nextYearly clamps Feb 29 to Feb 28 on non-leap target years rather than
// letting date normalization roll into March.
func nextYearly(t time.Time) time.Time {
	year := t.Year() + 1
	day := t.Day()
	if t.Month() == time.February && day == 29 {
		if last := lastDayOfMonth(year, time.February); day > last {
			day = last
		}
	}
	return time.Date(year, t.Month(), day, t.Hour(), t.Minute(), t.Second(), 0, t.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
