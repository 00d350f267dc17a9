package csrf

import (
	"log/slog"
	"time"
)

// SecurityEvent is a structured record of one verification or issuance.
type SecurityEvent struct {
	EventType string // "issued", "accepted" or "rejected"
	Timestamp time.Time
	RequestID string
	Method    string
	Path      string
	Reason    string // internal failure label, never sent to the client
	Token     string // redacted on output
	Algorithm Algorithm
}

// LogValue implements slog.LogValuer and redacts the token.
func (e SecurityEvent) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("event", e.EventType),
		slog.Time("timestamp", e.Timestamp),
		slog.String("request_id", e.RequestID),
		slog.String("method", e.Method),
		slog.String("path", e.Path),
		slog.String("reason", e.Reason),
		slog.String("token", redactToken(e.Token)),
		slog.String("algorithm", e.Algorithm.String()),
	)
}

// redactToken keeps a short prefix of the token. The prefix is the
// expiration, which is not secret.
func redactToken(token string) string {
	if len(token) == 0 {
		return ""
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:8] + "..."
}

func logSecurityEvent(logger *slog.Logger, event SecurityEvent) {
	if logger == nil {
		return
	}

	switch event.EventType {
	case "rejected":
		logger.Warn("csrf verification failed", "csrf_event", event)
	case "accepted":
		logger.Info("csrf verification succeeded", "csrf_event", event)
	default:
		logger.Debug("csrf token issued", "csrf_event", event)
	}
}
