package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"gitremind/internal/domain/reminder"
	"gitremind/internal/domain/settings"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/sirupsen/logrus"
)

const (
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 25
	defaultConnMaxLifetime = 5 * time.Minute
	defaultConnMaxIdleTime = 1 * time.Minute

	docReminders = "reminders"
	docSettings  = "settings"
)

// PostgresStore keeps the same whole-document contract as the file store but
// holds each document as a jsonb row, replaced inside a transaction. Useful
// when the engine runs on a host where local files are not durable.
type PostgresStore struct {
	db     *sql.DB
	logger *logrus.Logger
}

// NewPostgresStore opens a connection, pings it and ensures the documents
// table exists.
func NewPostgresStore(dataSourceName string, logger *logrus.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)
	db.SetConnMaxIdleTime(defaultConnMaxIdleTime)

	if err = db.Ping(); err != nil {
		db.Close() // Close the connection if ping fails
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS documents (
            name       TEXT PRIMARY KEY,
            payload    JSONB NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure documents table: %w", err)
	}

	return &PostgresStore{db: db, logger: logger}, nil
}

func (p *PostgresStore) Close() error {
	return p.db.Close()
}

func (p *PostgresStore) Load() ([]reminder.Reminder, error) {
	var payload []byte
	err := p.db.QueryRow(`SELECT payload FROM documents WHERE name = $1`, docReminders).Scan(&payload)
	if err == sql.ErrNoRows {
		return []reminder.Reminder{}, nil
	}
	if err != nil {
		p.logger.WithError(err).Warn("Reminder document unreadable; treating as empty")
		return []reminder.Reminder{}, nil
	}

	var reminders []reminder.Reminder
	if err := json.Unmarshal(payload, &reminders); err != nil {
		p.logger.WithError(err).Warn("Reminder document corrupt; treating as empty")
		return []reminder.Reminder{}, nil
	}
	return reminders, nil
}

func (p *PostgresStore) Save(reminders []reminder.Reminder) error {
	payload, err := json.Marshal(reminders)
	if err != nil {
		return fmt.Errorf("failed to encode reminders: %w", err)
	}
	return p.replace(docReminders, payload)
}

func (p *PostgresStore) LoadSettings() (settings.Settings, error) {
	cfg := settings.Default()
	var payload []byte
	err := p.db.QueryRow(`SELECT payload FROM documents WHERE name = $1`, docSettings).Scan(&payload)
	if err == sql.ErrNoRows {
		return cfg, nil
	}
	if err != nil {
		p.logger.WithError(err).Warn("Settings document unreadable; using defaults")
		return cfg, nil
	}
	if err := json.Unmarshal(payload, &cfg); err != nil {
		p.logger.WithError(err).Warn("Settings document corrupt; using defaults")
		return settings.Default(), nil
	}
	return cfg, nil
}

func (p *PostgresStore) SaveSettings(s settings.Settings) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return p.replace(docSettings, payload)
}

// Reset drops both documents.
func (p *PostgresStore) Reset() error {
	if _, err := p.db.Exec(`DELETE FROM documents WHERE name IN ($1, $2)`, docReminders, docSettings); err != nil {
		return fmt.Errorf("failed to reset documents: %w", err)
	}
	return nil
}

// replace swaps a document wholesale, mirroring the file store's
// whole-document overwrite semantics.
func (p *PostgresStore) replace(name string, payload []byte) error {
	tx, err := p.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
        INSERT INTO documents (name, payload, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`,
		name, payload)
	if err != nil {
		return fmt.Errorf("failed to replace document %s: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit document %s: %w", name, err)
	}
	return nil
}
