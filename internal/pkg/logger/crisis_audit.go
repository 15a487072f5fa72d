package logger

import (
	"time"

	"staystrong-chat-be/pkg/safety"
)

// CrisisAuditLogger records every crisis match to its own file. It never reads back.
type CrisisAuditLogger struct {
	log ILogger
}

func NewCrisisAuditLogger(log ILogger) *CrisisAuditLogger {
	return &CrisisAuditLogger{log: log}
}

func (a *CrisisAuditLogger) RecordCrisis(ev safety.CrisisEvent) {
	a.log.Warn("CRISIS_AUDIT", "Crisis pattern matched", map[string]interface{}{
		"detected_at": ev.Time.UTC().Format(time.RFC3339Nano),
		"trigger":     ev.Trigger,
		"text":        ev.Text,
		"phase":       string(ev.Phase),
	})
}
