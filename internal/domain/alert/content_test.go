package alert

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCountdown(t *testing.T) {
	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.Local)

	cases := []struct {
		name  string
		event time.Time
		want  string
	}{
		{"days and hours", now.Add(50 * time.Hour), "Starts in 2 days 2 hours"},
		{"single day", now.Add(24 * time.Hour), "Starts in 1 day"},
		{"hours and minutes", now.Add(90 * time.Minute), "Starts in 1 hour 30 minutes"},
		{"minutes only", now.Add(5 * time.Minute), "Starts in 5 minutes"},
		{"under a minute", now.Add(10 * time.Second), "Starts in 1 minute"},
		{"already started", now.Add(-time.Minute), "Starting now"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Countdown(tc.event, now))
		})
	}
}

func TestBodyContestTypesCarryCountdown(t *testing.T) {
	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.Local)
	event := now.Add(2 * time.Hour)

	body := Body("leetcode", "Weekly contest 400", StageInitial, event, now)
	require.Contains(t, body, "Weekly contest 400")
	require.Contains(t, body, "Prepare for this LeetCode contest!")
	require.Contains(t, body, "Starts in 2 hours")

	body = Body("codeforces", "", StageStartingNow, event, now)
	require.Equal(t, "Contest is starting now! Good luck!", body)
}

func TestBodyPlainTypeFallsBackToDescription(t *testing.T) {
	now := time.Now()
	require.Equal(t, "water the plants", Body("personal", "water the plants", StageInitial, now, now))
}

func TestTitleStagePrefixOnlyWhenProgressive(t *testing.T) {
	require.Equal(t, "Standup", Title("Standup", StageInitial, false))
	require.Equal(t, "[Final Reminder] Standup", Title("Standup", StageFinal, true))
	require.True(t, strings.HasPrefix(Title("Standup", StageStartingNow, true), "[Starting Now] "))
}

func TestUrgencyEscalation(t *testing.T) {
	require.Equal(t, UrgencyNormal, UrgencyFor("meeting", StageReminder))
	require.Equal(t, UrgencyCritical, UrgencyFor("meeting", StageFinal))
	require.Equal(t, UrgencyCritical, UrgencyFor("deadline", StageReminder))
	require.Equal(t, UrgencyNormal, UrgencyFor("deadline", StageInitial))
}
