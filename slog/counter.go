package slog

import (
	"log/slog"
	"time"

	tccs "github.com/Trantu1102/NB-TCCS"
)

// Ensure LoggingImageCounter implements tccs.ImageCounter.
var _ tccs.ImageCounter = (*LoggingImageCounter)(nil)

// LoggingImageCounter wraps an ImageCounter with logging.
type LoggingImageCounter struct {
	next   tccs.ImageCounter
	logger *slog.Logger
}

// NewLoggingImageCounter creates a new LoggingImageCounter.
func NewLoggingImageCounter(next tccs.ImageCounter, logger *slog.Logger) *LoggingImageCounter {
	return &LoggingImageCounter{next: next, logger: logger}
}

// CountImages delegates to the wrapped counter and logs the totals.
func (c *LoggingImageCounter) CountImages(html string, articleType string) (count tccs.ImageCount) {
	defer func(begin time.Time) {
		c.logger.Info("count images",
			"type", articleType,
			"khai_thac", count.KhaiThac,
			"tu_lieu", count.TuLieu,
			"tac_gia", count.TacGia,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return c.next.CountImages(html, articleType)
}
