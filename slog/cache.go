package slog

import (
	"log/slog"

	nport "github.com/ChipDale729/nport-viewer"
)

// Ensure LoggingHoldingsCache implements nport.HoldingsCache.
var _ nport.HoldingsCache = (*LoggingHoldingsCache)(nil)

// LoggingHoldingsCache wraps a HoldingsCache with hit/miss logging.
type LoggingHoldingsCache struct {
	next   nport.HoldingsCache
	logger *slog.Logger
}

// NewLoggingHoldingsCache creates a new LoggingHoldingsCache.
func NewLoggingHoldingsCache(next nport.HoldingsCache, logger *slog.Logger) *LoggingHoldingsCache {
	return &LoggingHoldingsCache{next: next, logger: logger}
}

// Get delegates to the wrapped cache and logs the outcome.
func (c *LoggingHoldingsCache) Get(cik nport.CIK) (*nport.HoldingsReport, bool) {
	report, ok := c.next.Get(cik)
	c.logger.Debug("cache lookup", "cik", string(cik), "hit", ok)
	return report, ok
}

// Set delegates to the wrapped cache.
func (c *LoggingHoldingsCache) Set(cik nport.CIK, report *nport.HoldingsReport) {
	c.next.Set(cik, report)
	c.logger.Debug("cache store", "cik", string(cik))
}
