// Package envelope - Request audit logging
package envelope

import (
	"time"

	"go.uber.org/zap"

	"translation-quote/internal/logging"
)

// AuditEntry is a log entry for one API call
type AuditEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id,omitempty"`
	Method      string    `json:"method"`
	Route       string    `json:"route"`
	Status      int       `json:"status"`
	Fingerprint string    `json:"fingerprint,omitempty"`
	ClientIP    string    `json:"client_ip,omitempty"`
	UserAgent   string    `json:"user_agent,omitempty"`
	DurationMs  int64     `json:"duration_ms"`
}

// Success reports whether the call returned a non-error status
func (e AuditEntry) Success() bool {
	return e.Status < 400
}

// AuditLogger records API calls for audit and replay
type AuditLogger interface {
	Log(entry AuditEntry)
}

// ZapAuditLogger writes entries through the global zap logger
type ZapAuditLogger struct{}

// Log logs an audit entry
func (ZapAuditLogger) Log(entry AuditEntry) {
	fields := []zap.Field{
		zap.String("request_id", entry.RequestID),
		zap.String("method", entry.Method),
		zap.String("route", entry.Route),
		zap.Int("status", entry.Status),
		zap.Int64("duration_ms", entry.DurationMs),
		zap.String("client_ip", entry.ClientIP),
	}
	if entry.Fingerprint != "" {
		fields = append(fields, zap.String("fingerprint", entry.Fingerprint))
	}
	if entry.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", entry.UserAgent))
	}
	if entry.Success() {
		logging.Info("api call", fields...)
		return
	}
	logging.Warn("api call failed", fields...)
}
