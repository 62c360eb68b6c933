package mediaapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"mivideo/internal/logging"
	"mivideo/internal/services"
)

// Default retry schedule for platform API calls. Only timeouts are retried;
// HTTP status failures and other transport errors propagate immediately.
const (
	MaxAttempts    = 3
	InitialBackoff = time.Second
	MaxBackoff     = 10 * time.Second
)

// RetryPolicy is the schedule a retried call follows. Zero fields take the
// package defaults, so the zero value is the production schedule.
type RetryPolicy struct {
	Attempts       int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.Attempts <= 0 {
		p.Attempts = MaxAttempts
	}
	if p.InitialBackoff <= 0 {
		p.InitialBackoff = InitialBackoff
	}
	if p.MaxBackoff <= 0 {
		p.MaxBackoff = MaxBackoff
	}
	return p
}

// SleepWithContext blocks for the given duration, returning early if the
// context is cancelled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// IsTimeout reports whether err represents a request timeout, the one failure
// class that warrants an automatic retry.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, services.ErrTimeout) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Do invokes fn up to the policy's attempt cap, backing off exponentially
// between timeout failures. The final timeout surfaces wrapped in
// ErrRetryExhausted; any non-timeout failure returns on the spot.
func (p RetryPolicy) Do(ctx context.Context, logger *slog.Logger, component, operation string, fn func() error) error {
	p = p.withDefaults()
	if logger == nil {
		logger = logging.NewNop()
	}

	backoff := p.InitialBackoff
	var lastErr error
	for attempt := 1; attempt <= p.Attempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !IsTimeout(lastErr) {
			return lastErr
		}
		if attempt == p.Attempts {
			break
		}
		logger.Warn("request timed out; retrying",
			logging.String("operation", operation),
			logging.Int("attempt", attempt),
			logging.Duration("backoff", backoff),
			logging.Error(lastErr),
		)
		if err := SleepWithContext(ctx, backoff); err != nil {
			return err
		}
		backoff *= 2
		if backoff > p.MaxBackoff {
			backoff = p.MaxBackoff
		}
	}
	return services.Wrap(services.ErrRetryExhausted, component, operation,
		fmt.Sprintf("%d attempts", p.Attempts), lastErr)
}
