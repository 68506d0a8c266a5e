package notify

import (
	"gitremind/internal/domain/alert"

	"github.com/sirupsen/logrus"
)

// LogNotifier is the degraded alert channel: it writes the alert to the log
// so nothing is lost when no richer surface is available.
type LogNotifier struct {
	logger *logrus.Logger
}

func NewLogNotifier(logger *logrus.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Show(a alert.Alert) error {
	entry := l.logger.WithFields(logrus.Fields{
		"alert_id": a.ID,
		"title":    a.Title,
		"body":     a.Body,
	})
	if a.Urgency == alert.UrgencyCritical {
		entry.Warn("ALERT")
	} else {
		entry.Info("ALERT")
	}
	return nil
}

func (l *LogNotifier) Dismiss(string) {}
