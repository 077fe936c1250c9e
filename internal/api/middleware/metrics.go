package middleware

import (
	"context"
	"net/http"
	"sync/atomic"
)

// Counters holds process-wide request counters exposed on /metrics.
type Counters struct {
	Requests     atomic.Int64
	ClientErrors atomic.Int64
	ServerErrors atomic.Int64
	// AuthFailures counts requests rejected by Authenticate. Handler-level 403s
	// such as quota rejections are client errors only.
	AuthFailures atomic.Int64
}

// Snapshot returns the current counter values keyed by metric name.
func (c *Counters) Snapshot() map[string]int64 {
	return map[string]int64{
		"request_count":      c.Requests.Load(),
		"client_error_count": c.ClientErrors.Load(),
		"server_error_count": c.ServerErrors.Load(),
		"auth_failure_count": c.AuthFailures.Load(),
	}
}

// MetricsCollector counts requests by outcome.
type MetricsCollector struct {
	counters *Counters
}

func NewMetricsCollector(counters *Counters) *MetricsCollector {
	return &MetricsCollector{counters: counters}
}

func (mc *MetricsCollector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mc.counters.Requests.Add(1)

		rw := newResponseWriter(w)
		rejected := new(bool)
		next.ServeHTTP(rw, r.WithContext(context.WithValue(r.Context(), authFailureContextKey, rejected)))

		if *rejected {
			mc.counters.AuthFailures.Add(1)
		}

		switch {
		case rw.statusCode >= 500:
			mc.counters.ServerErrors.Add(1)
		case rw.statusCode >= 400:
			mc.counters.ClientErrors.Add(1)
		}
	})
}

func markAuthFailure(ctx context.Context) {
	if rejected, ok := ctx.Value(authFailureContextKey).(*bool); ok {
		*rejected = true
	}
}
