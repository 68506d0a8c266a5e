package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDetectDailyRecurringDueWithinWindow(t *testing.T) {
	reminders := []Reminder{{
		ID:          "1709521200000",
		Title:       "Standup",
		Date:        "2024-03-04",
		Time:        "09:00",
		IsRecurring: true,
		Pattern:     PatternDaily,
	}}

	now := localTime("2024-03-05T09:00:05")
	res := Detect(reminders, now, 10*time.Second)

	require.Len(t, res.Due, 1)
	require.Equal(t, "2024-03-05", res.Due[0].Date)
	require.Equal(t, "1709521200000", res.Due[0].OriginalID)
	require.True(t, res.Changed)
	require.True(t, reminders[0].Notified, "owning reminder carries the notified flag")
}

func TestDetectOutsidePollWindowIsMissed(t *testing.T) {
	// Due at T, evaluated at T+10s with a 5s poll interval: the occurrence
	// falls outside the catch window and is silently missed, no backfill.
	reminders := []Reminder{{
		ID:    "1",
		Title: "One-off",
		Date:  "2024-03-05",
		Time:  "09:00",
	}}

	res := Detect(reminders, localTime("2024-03-05T09:00:10"), 5*time.Second)
	require.Empty(t, res.Due)
	require.False(t, res.Changed)
	require.False(t, reminders[0].Notified)
}

func TestDetectInsidePollWindow(t *testing.T) {
	reminders := []Reminder{{
		ID:    "1",
		Title: "One-off",
		Date:  "2024-03-05",
		Time:  "09:00",
	}}

	res := Detect(reminders, localTime("2024-03-05T09:00:03"), 5*time.Second)
	require.Len(t, res.Due, 1)
	require.True(t, reminders[0].Notified)
}

func TestDetectIdempotentWithoutTimeAdvance(t *testing.T) {
	reminders := []Reminder{
		{
			ID:    "once",
			Date:  "2024-03-05",
			Time:  "09:00",
			Title: "One-off",
		},
		{
			ID:          "daily",
			Date:        "2024-03-04",
			Time:        "09:00",
			Title:       "Standup",
			IsRecurring: true,
			Pattern:     PatternDaily,
		},
	}

	now := localTime("2024-03-05T09:00:03")
	first := Detect(reminders, now, 10*time.Second)
	require.Len(t, first.Due, 2)

	second := Detect(reminders, now, 10*time.Second)
	require.Empty(t, second.Due)
	require.False(t, second.Changed)
}

func TestDetectSkipsMalformedRecords(t *testing.T) {
	reminders := []Reminder{
		{ID: "bad", Date: "garbage", Time: "09:00"},
		{ID: "good", Date: "2024-03-05", Time: "09:00"},
	}

	res := Detect(reminders, localTime("2024-03-05T09:00:02"), 5*time.Second)
	require.Len(t, res.Due, 1)
	require.Equal(t, "good", res.Due[0].ID)
	require.Equal(t, 1, res.Skipped)
}

func TestDetectAtMostOneFiringPerReminder(t *testing.T) {
	// Duplicate ids in the snapshot must not double-fire.
	reminders := []Reminder{
		{ID: "dup", Date: "2024-03-05", Time: "09:00"},
		{ID: "dup", Date: "2024-03-05", Time: "09:00"},
	}

	res := Detect(reminders, localTime("2024-03-05T09:00:02"), 5*time.Second)
	require.Len(t, res.Due, 1)
}

func TestDetectIgnoresAlreadyNotified(t *testing.T) {
	reminders := []Reminder{{
		ID:       "1",
		Date:     "2024-03-05",
		Time:     "09:00",
		Notified: true,
	}}

	res := Detect(reminders, localTime("2024-03-05T09:00:02"), 5*time.Second)
	require.Empty(t, res.Due)
}
