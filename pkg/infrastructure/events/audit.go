package events

import (
	"go.uber.org/zap"
)

// AuditLogger writes every event it is subscribed to as a debug log entry
type AuditLogger struct {
	logger *zap.Logger
}

// NewAuditLogger creates an audit handler logging to logger
func NewAuditLogger(logger *zap.Logger) *AuditLogger {
	return &AuditLogger{logger: logger}
}

var _ Handler = (*AuditLogger)(nil)

func (a *AuditLogger) CanHandle(eventType string) bool {
	return true
}

func (a *AuditLogger) Handle(event Event) error {
	a.logger.Debug("session event",
		zap.String("session", event.SessionID()),
		zap.String("type", event.Type()),
		zap.Int("version", event.Version()),
		zap.Any("data", event.Data()))
	return nil
}
