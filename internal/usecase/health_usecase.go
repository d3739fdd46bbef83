package usecase

import (
	"context"
	"sort"
	"time"
)

// HealthCheckFunc probes one backing service.
type HealthCheckFunc func(ctx context.Context) error

type HealthUsecase interface {
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	checks map[string]HealthCheckFunc
	// Optional services are reported but do not make the service unhealthy.
	optional map[string]bool
}

func NewHealthUsecase(required, optional map[string]HealthCheckFunc) HealthUsecase {
	u := &healthUsecase{
		checks:   make(map[string]HealthCheckFunc, len(required)+len(optional)),
		optional: make(map[string]bool, len(optional)),
	}
	for name, fn := range required {
		u.checks[name] = fn
	}
	for name, fn := range optional {
		u.checks[name] = fn
		u.optional[name] = true
	}
	return u
}

// Check runs every probe with a short timeout. The bool is false when a
// required dependency is down.
func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	names := make([]string, 0, len(u.checks))
	for name := range u.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := map[string]string{"status": "ok"}
	healthy := true
	for _, name := range names {
		checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := u.checks[name](checkCtx)
		cancel()

		switch {
		case err == nil:
			status[name] = "ok"
		case u.optional[name]:
			status[name] = "degraded"
		default:
			status[name] = "down"
			healthy = false
		}
	}
	if !healthy {
		status["status"] = "unavailable"
	}
	return status, healthy
}
