// Package slog provides logging decorators for tccs services.
package slog

import (
	"context"
	"log/slog"
	"time"

	tccs "github.com/Trantu1102/NB-TCCS"
)

var _ tccs.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher logs every page fetch: the URL, the page size and how
// long it took. Failures also carry the application error code so proxy
// exhaustion (fetch) can be told apart from cancellations (internal).
type LoggingFetcher struct {
	next   tccs.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher wraps next.
func NewLoggingFetcher(next tccs.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
		}
		if err != nil {
			attrs = append(attrs, "code", tccs.ErrorCode(err), "err", err)
		}
		f.logger.Info("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close closes the wrapped fetcher, logging any error it returns.
func (f *LoggingFetcher) Close() error {
	err := f.next.Close()
	if err != nil {
		f.logger.Warn("close fetcher", "err", err)
	}
	return err
}
