package app

import (
	"testing"
	"time"

	"gitremind/internal/domain/reminder"

	"github.com/stretchr/testify/require"
)

func TestRunCheckFiresAndPersistsOnce(t *testing.T) {
	st := newMemStore()
	st.cfg.CheckInterval = 10
	st.reminders = []reminder.Reminder{{
		ID:          "standup",
		Title:       "Standup",
		Date:        "2024-03-04",
		Time:        "09:00",
		IsRecurring: true,
		Pattern:     reminder.PatternDaily,
	}}

	n := &fakeNotifier{}
	esc := newTestEscalator(n, &fakeNotifier{})
	svc := NewDueService(st, st, esc, testLogger())
	svc.now = func() time.Time { return localTime("2024-03-05T09:00:05") }
	esc.now = svc.now

	svc.RunCheck()

	alerts := n.alerts()
	require.Len(t, alerts, 1)
	require.Equal(t, "Standup", alerts[0].Title)
	require.True(t, st.reminders[0].Notified, "notified flag persisted in the batched save")

	// Same snapshot, same instant: nothing new fires.
	svc.RunCheck()
	require.Len(t, n.alerts(), 1)
}

func TestRunCheckSurvivesLoadFailure(t *testing.T) {
	st := newMemStore()
	st.failLoad = true

	n := &fakeNotifier{}
	svc := NewDueService(st, st, newTestEscalator(n, &fakeNotifier{}), testLogger())

	require.NotPanics(t, svc.RunCheck)
	require.Empty(t, n.alerts())
}

func TestRunCheckNoSaveWithoutFirings(t *testing.T) {
	st := newMemStore()
	st.failSave = true // would error if a save were attempted
	st.reminders = []reminder.Reminder{{
		ID:    "future",
		Title: "Later",
		Date:  "2030-01-01",
		Time:  "09:00",
	}}

	svc := NewDueService(st, st, newTestEscalator(&fakeNotifier{}, &fakeNotifier{}), testLogger())
	svc.now = func() time.Time { return localTime("2024-03-05T09:00:05") }

	require.NotPanics(t, svc.RunCheck)
}
