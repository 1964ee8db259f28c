// Package slog provides logging decorators for domain services.
package slog

import (
	"context"
	"log/slog"
	"time"

	nport "github.com/ChipDale729/nport-viewer"
)

// Ensure LoggingHoldingsService implements nport.HoldingsService.
var _ nport.HoldingsService = (*LoggingHoldingsService)(nil)

// LoggingHoldingsService wraps a HoldingsService with per-lookup logging.
type LoggingHoldingsService struct {
	next   nport.HoldingsService
	logger *slog.Logger
}

// NewLoggingHoldingsService creates a new LoggingHoldingsService.
func NewLoggingHoldingsService(next nport.HoldingsService, logger *slog.Logger) *LoggingHoldingsService {
	return &LoggingHoldingsService{next: next, logger: logger}
}

// LatestHoldings delegates to the wrapped service and logs the lookup.
func (s *LoggingHoldingsService) LatestHoldings(ctx context.Context, cik nport.CIK) (report *nport.HoldingsReport, err error) {
	defer func(begin time.Time) {
		count := 0
		if report != nil {
			count = report.Count
		}
		s.logger.Info("holdings lookup",
			"cik", string(cik),
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.LatestHoldings(ctx, cik)
}
