package store

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"gitremind/internal/domain/reminder"
	"gitremind/internal/domain/settings"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	fs, err := NewFileStore(t.TempDir(), logger)
	require.NoError(t, err)
	return fs
}

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	fs := newTestFileStore(t)

	reminders, err := fs.Load()
	require.NoError(t, err)
	require.Empty(t, reminders)
}

func TestLoadCorruptFileDegradesToEmpty(t *testing.T) {
	fs := newTestFileStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(fs.dir, remindersFile), []byte("{not json"), 0o644))

	reminders, err := fs.Load()
	require.NoError(t, err)
	require.Empty(t, reminders)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	fs := newTestFileStore(t)

	in := []reminder.Reminder{
		{ID: "1", Title: "Standup", Date: "2024-03-04", Time: "09:00", IsRecurring: true, Pattern: reminder.PatternDaily},
		{ID: "2", Title: "Dentist", Date: "2024-04-12", Time: "15:30", Notified: true},
	}
	require.NoError(t, fs.Save(in))

	out, err := fs.Load()
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestLoadSettingsDefaultsAndRoundtrip(t *testing.T) {
	fs := newTestFileStore(t)

	cfg, err := fs.LoadSettings()
	require.NoError(t, err)
	require.Equal(t, settings.Default(), cfg)

	cfg.CheckInterval = 60
	cfg.PlaySoundOnNotification = false
	require.NoError(t, fs.SaveSettings(cfg))

	loaded, err := fs.LoadSettings()
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestResetRemovesBothDocuments(t *testing.T) {
	fs := newTestFileStore(t)
	require.NoError(t, fs.Save([]reminder.Reminder{{ID: "1"}}))
	require.NoError(t, fs.SaveSettings(settings.Default()))

	require.NoError(t, fs.Reset())

	_, err := os.Stat(filepath.Join(fs.dir, remindersFile))
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(fs.dir, settingsFile))
	require.True(t, os.IsNotExist(err))

	// Reset on an already-clean directory is a no-op.
	require.NoError(t, fs.Reset())
}
