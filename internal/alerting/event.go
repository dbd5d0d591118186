package alerting

import (
	"strings"
	"time"
)

type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ParseSeverity reads a configured threshold, defaulting to warning for
// unrecognized values.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return SeverityDebug
	case "info":
		return SeverityInfo
	case "warning", "warn":
		return SeverityWarning
	case "error":
		return SeverityError
	case "critical":
		return SeverityCritical
	default:
		return SeverityWarning
	}
}

// Event is one alert. It is immutable once created and handed to the
// emitter; the pipeline never persists events itself.
type Event struct {
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"-"`
	Provider  string    `json:"provider,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEvent(title, message string, severity Severity, provider string) Event {
	return Event{
		Title:     title,
		Message:   message,
		Severity:  severity,
		Provider:  provider,
		Timestamp: time.Now().UTC(),
	}
}
