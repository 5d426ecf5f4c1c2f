package crawl

import (
	"context"
	"time"

	tccs "github.com/Trantu1102/NB-TCCS"
)

// retry calls fn until it succeeds or MaxAttempts is reached, sleeping
// attempt*RetryDelay after each failed attempt. Every attempt fetches the
// page again, so pages without content are retried too. Validation failures
// are returned at once.
func (b *Batch) retry(ctx context.Context, rawURL string, fn func(ctx context.Context) error) error {
	attempts := b.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	delay := b.RetryDelay
	if delay <= 0 {
		delay = DefaultRetryDelay
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == attempts || !retryable(err) {
			break
		}

		if b.Logger != nil {
			b.Logger.Warn("retry",
				"url", rawURL,
				"attempt", attempt,
				"of", attempts,
				"err", err,
			)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * delay):
		}
	}

	return lastErr
}

func retryable(err error) bool {
	return tccs.ErrorCode(err) != tccs.EINVALID
}
