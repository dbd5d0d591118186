package service

import (
	"context"
	"time"

	"github.com/skylens/airmarket/internal/providers"
)

const healthProbeTimeout = 3 * time.Second

type ComponentStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Health probes each collaborator independently and reports per-component
// status. A degraded component never fails another component's probe.
func (s *DataService) Health(ctx context.Context) (map[string]ComponentStatus, bool) {
	report := make(map[string]ComponentStatus)
	healthy := true

	probe := func(name string, fn func(ctx context.Context) error) {
		probeCtx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
		defer cancel()

		if err := fn(probeCtx); err != nil {
			report[name] = ComponentStatus{Status: "degraded", Error: err.Error()}
			healthy = false
			return
		}
		report[name] = ComponentStatus{Status: "ok"}
	}

	probe("cache", s.cfg.Cache.Ping)

	for _, p := range s.cfg.Providers {
		checker, ok := p.(providers.HealthChecker)
		if !ok {
			report["provider:"+p.Name()] = ComponentStatus{Status: "ok"}
			continue
		}
		probe("provider:"+p.Name(), checker.Healthcheck)
	}

	// The generator cannot fail; it is listed so operators see the floor.
	report["mock"] = ComponentStatus{Status: "ok"}

	return report, healthy
}
