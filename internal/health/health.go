// Package health checks connectivity to the completion provider.
// It is invoked on demand and never from the lookup path.
package health

import (
	"context"
	"time"

	"github.com/pricofy/barcode-lookup/internal/completion"
)

// DefaultTimeout bounds a check.
const DefaultTimeout = 5 * time.Second

// Status values.
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)

// Pinger is the capability a check needs.
type Pinger interface {
	Ping(ctx context.Context) error
	Name() string
}

// Report is the result of a check.
type Report struct {
	Status    string `json:"status"`
	Provider  string `json:"provider"`
	LatencyMS int64  `json:"latencyMs"`

	// Error is a coarse failure category, never the raw upstream message.
	Error string `json:"error,omitempty"`
}

// Check pings the provider once.
func Check(ctx context.Context, p Pinger, timeout time.Duration) Report {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := p.Ping(ctx)
	report := Report{
		Status:    StatusOK,
		Provider:  p.Name(),
		LatencyMS: time.Since(start).Milliseconds(),
	}
	if err != nil {
		report.Status = StatusUnavailable
		report.Error = string(completion.Classify(err))
	}
	return report
}

// Healthy reports whether the check succeeded.
func (r Report) Healthy() bool {
	return r.Status == StatusOK
}
