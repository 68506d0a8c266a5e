package alert

import (
	"fmt"
	"time"
)

// contentKey selects a body formatter by reminder type and stage. An empty
// type or zero stage acts as a wildcard during lookup.
type contentKey struct {
	reminderType string
	stage        int
}

// formatFunc renders an alert body from the reminder description and the
// event instant.
type formatFunc func(description string, event, now time.Time) string

// contestNames maps coding-contest reminder types to display names.
var contestNames = map[string]string{
	"leetcode":   "LeetCode",
	"codechef":   "CodeChef",
	"codeforces": "CodeForces",
	"gfg":        "GeeksForGeeks",
	"coding":     "Coding",
}

var bodyFormats = map[contentKey]formatFunc{
	{"meeting", StageFinal}: func(desc string, event, now time.Time) string {
		return appendLine(desc, "Your meeting starts soon. "+Countdown(event, now))
	},
	{"meeting", StageStartingNow}: func(desc string, event, now time.Time) string {
		return appendLine(desc, "Your meeting is starting now.")
	},
	{"deadline", StageReminder}: func(desc string, event, now time.Time) string {
		return appendLine(desc, "Deadline approaching. "+Countdown(event, now))
	},
	{"deadline", StageFinal}: func(desc string, event, now time.Time) string {
		return appendLine(desc, "Final call before the deadline. "+Countdown(event, now))
	},
	{"deadline", StageStartingNow}: func(desc string, event, now time.Time) string {
		return appendLine(desc, "The deadline is now.")
	},
}

// Body renders the alert body for a reminder type at a given stage. Contest
// types always carry a countdown; other types fall back to their lookup
// entry or the bare description.
func Body(reminderType, description string, stage int, event, now time.Time) string {
	if name, isContest := contestNames[reminderType]; isContest {
		switch stage {
		case StageInitial:
			return appendLine(description, fmt.Sprintf("Prepare for this %s contest! %s", name, Countdown(event, now)))
		case StageStartingNow:
			return appendLine(description, "Contest is starting now! Good luck!")
		default:
			return appendLine(description, Countdown(event, now))
		}
	}
	if format, ok := bodyFormats[contentKey{reminderType, stage}]; ok {
		return format(description, event, now)
	}
	return description
}

// Title prepends the stage marker on progressive alerts.
func Title(title string, stage int, progressive bool) string {
	if !progressive {
		return title
	}
	return StagePrefix(stage) + title
}

// Countdown renders the remaining time until the event, coarsest two units.
func Countdown(event, now time.Time) string {
	diff := event.Sub(now)
	if diff <= 0 {
		return "Starting now"
	}

	days := int(diff.Hours()) / 24
	hours := int(diff.Hours()) % 24
	minutes := int(diff.Minutes()) % 60

	switch {
	case days > 0:
		s := fmt.Sprintf("Starts in %d %s", days, plural("day", days))
		if hours > 0 {
			s += fmt.Sprintf(" %d %s", hours, plural("hour", hours))
		}
		return s
	case hours > 0:
		s := fmt.Sprintf("Starts in %d %s", hours, plural("hour", hours))
		if minutes > 0 {
			s += fmt.Sprintf(" %d %s", minutes, plural("minute", minutes))
		}
		return s
	default:
		if minutes < 1 {
			minutes = 1
		}
		return fmt.Sprintf("Starts in %d %s", minutes, plural("minute", minutes))
	}
}

func appendLine(desc, line string) string {
	if desc == "" {
		return line
	}
	return desc + "\n" + line
}

func plural(unit string, n int) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
