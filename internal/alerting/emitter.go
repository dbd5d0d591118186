package alerting

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Emitter fans alert events out to the configured channels. Emit never
// blocks the caller on channel delivery: events at or above the threshold
// are dispatched on their own goroutines with a bounded timeout.
type Emitter struct {
	log       zerolog.Logger
	channels  []Channel
	threshold Severity
	timeout   time.Duration
	wg        sync.WaitGroup
}

type EmitterConfig struct {
	Channels  []Channel
	Threshold Severity
	// DispatchTimeout bounds each channel delivery. Zero means 10s.
	DispatchTimeout time.Duration
}

func NewEmitter(log zerolog.Logger, cfg EmitterConfig) *Emitter {
	timeout := cfg.DispatchTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Emitter{
		log:       log.With().Str("component", "emitter").Logger(),
		channels:  cfg.Channels,
		threshold: cfg.Threshold,
		timeout:   timeout,
	}
}

func (e *Emitter) Emit(event Event) {
	AlertsTotal.WithLabelValues(event.Severity.String()).Inc()

	e.log.WithLevel(zerologLevel(event.Severity)).
		Str("title", event.Title).
		Str("provider", event.Provider).
		Msg(event.Message)

	if event.Severity < e.threshold {
		return
	}

	for _, ch := range e.channels {
		e.wg.Add(1)
		go func(ch Channel) {
			defer e.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
			defer cancel()
			if err := ch.Send(ctx, event); err != nil {
				e.log.Warn().Err(err).Str("channel", ch.Name()).Msg("alert dispatch failed")
			}
		}(ch)
	}
}

// Flush blocks until all in-flight dispatches complete. Used on shutdown
// and in tests.
func (e *Emitter) Flush() {
	e.wg.Wait()
}
