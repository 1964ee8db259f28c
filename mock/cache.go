package mock

import nport "github.com/ChipDale729/nport-viewer"

var _ nport.HoldingsCache = (*HoldingsCache)(nil)

// HoldingsCache is a mock implementation of nport.HoldingsCache.
type HoldingsCache struct {
	GetFn func(cik nport.CIK) (*nport.HoldingsReport, bool)
	SetFn func(cik nport.CIK, report *nport.HoldingsReport)
}

func (c *HoldingsCache) Get(cik nport.CIK) (*nport.HoldingsReport, bool) {
	return c.GetFn(cik)
}

func (c *HoldingsCache) Set(cik nport.CIK, report *nport.HoldingsReport) {
	c.SetFn(cik, report)
}
