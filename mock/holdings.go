package mock

import (
	"context"

	nport "github.com/ChipDale729/nport-viewer"
)

var _ nport.HoldingsService = (*HoldingsService)(nil)

// HoldingsService is a mock implementation of nport.HoldingsService.
type HoldingsService struct {
	LatestHoldingsFn func(ctx context.Context, cik nport.CIK) (*nport.HoldingsReport, error)
}

func (s *HoldingsService) LatestHoldings(ctx context.Context, cik nport.CIK) (*nport.HoldingsReport, error) {
	return s.LatestHoldingsFn(ctx, cik)
}
