package alerting

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Channel delivers an event to one notification target.
type Channel interface {
	Name() string
	Send(ctx context.Context, event Event) error
}

// WebhookChannel posts events as JSON to a configured URL (chat webhook,
// incident tool, etc).
type WebhookChannel struct {
	url    string
	client *http.Client
}

func NewWebhookChannel(url string, client *http.Client) *WebhookChannel {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &WebhookChannel{url: url, client: client}
}

func (c *WebhookChannel) Name() string {
	return "webhook"
}

type webhookPayload struct {
	Title     string `json:"title"`
	Message   string `json:"message"`
	Severity  string `json:"severity"`
	Provider  string `json:"provider,omitempty"`
	Timestamp string `json:"timestamp"`
}

func (c *WebhookChannel) Send(ctx context.Context, event Event) error {
	body, err := json.Marshal(webhookPayload{
		Title:     event.Title,
		Message:   event.Message,
		Severity:  event.Severity.String(),
		Provider:  event.Provider,
		Timestamp: event.Timestamp.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return &webhookError{status: resp.StatusCode}
	}
	return nil
}

type webhookError struct {
	status int
}

func (e *webhookError) Error() string {
	return "webhook returned status " + http.StatusText(e.status)
}

// LogChannel writes events through the structured logger. It exists so a
// deployment with no external channels still has a durable alert trail
// beyond the emitter's own log line.
type LogChannel struct {
	log zerolog.Logger
}

func NewLogChannel(log zerolog.Logger) *LogChannel {
	return &LogChannel{log: log.With().Str("component", "alerts").Logger()}
}

func (c *LogChannel) Name() string {
	return "log"
}

func (c *LogChannel) Send(ctx context.Context, event Event) error {
	c.log.WithLevel(zerologLevel(event.Severity)).
		Str("title", event.Title).
		Str("provider", event.Provider).
		Str("severity", event.Severity.String()).
		Msg(event.Message)
	return nil
}

func zerologLevel(s Severity) zerolog.Level {
	switch s {
	case SeverityDebug:
		return zerolog.DebugLevel
	case SeverityInfo:
		return zerolog.InfoLevel
	case SeverityWarning:
		return zerolog.WarnLevel
	case SeverityError:
		return zerolog.ErrorLevel
	case SeverityCritical:
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}
