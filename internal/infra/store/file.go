package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gitremind/internal/domain/reminder"
	"gitremind/internal/domain/settings"

	"github.com/sirupsen/logrus"
)

const (
	remindersFile = "reminders.json"
	settingsFile  = "settings.json"
)

// FileStore persists the reminder collection and the settings document as
// two JSON files, each written by whole-document replace. A missing or
// unreadable file degrades to the empty collection (or default settings)
// instead of failing the caller.
type FileStore struct {
	dir    string
	logger *logrus.Logger
}

func NewFileStore(dir string, logger *logrus.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

// Load reads the full reminder collection. A corrupt document is logged and
// treated as empty so the poll loop keeps running.
func (f *FileStore) Load() ([]reminder.Reminder, error) {
	path := filepath.Join(f.dir, remindersFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []reminder.Reminder{}, nil
		}
		f.logger.WithError(err).WithField("path", path).Warn("Reminder store unreadable; treating as empty")
		return []reminder.Reminder{}, nil
	}

	var reminders []reminder.Reminder
	if err := json.Unmarshal(data, &reminders); err != nil {
		f.logger.WithError(err).WithField("path", path).Warn("Reminder store corrupt; treating as empty")
		return []reminder.Reminder{}, nil
	}
	return reminders, nil
}

// Save replaces the whole reminder document.
func (f *FileStore) Save(reminders []reminder.Reminder) error {
	data, err := json.MarshalIndent(reminders, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode reminders: %w", err)
	}
	path := filepath.Join(f.dir, remindersFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// LoadSettings reads the settings document, applying defaults for any field
// the stored document does not carry.
func (f *FileStore) LoadSettings() (settings.Settings, error) {
	cfg := settings.Default()
	path := filepath.Join(f.dir, settingsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		f.logger.WithError(err).WithField("path", path).Warn("Settings store unreadable; using defaults")
		return cfg, nil
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		f.logger.WithError(err).WithField("path", path).Warn("Settings store corrupt; using defaults")
		return settings.Default(), nil
	}
	return cfg, nil
}

// SaveSettings replaces the whole settings document.
func (f *FileStore) SaveSettings(s settings.Settings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	path := filepath.Join(f.dir, settingsFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Reset removes both persisted documents.
func (f *FileStore) Reset() error {
	for _, name := range []string{remindersFile, settingsFile} {
		path := filepath.Join(f.dir, name)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}
	return nil
}
