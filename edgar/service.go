package edgar

import (
	"context"

	nport "github.com/ChipDale729/nport-viewer"
)

// Ensure Service implements nport.HoldingsService at compile time.
var _ nport.HoldingsService = (*Service)(nil)

// Service orchestrates one holdings lookup: submissions metadata, filing
// selection, document resolution, the mandatory document fetch, and
// extraction. Each lookup is synchronous with no retries; cancellation
// comes from the context. A Service is safe for concurrent use.
type Service struct {
	Submissions nport.SubmissionsService
	Documents   nport.DocumentFetcher
	Extractor   nport.Extractor
	Resolver    *Resolver
}

// LatestHoldings returns the extracted holdings of the most recent
// NPORT-P filing for cik.
func (s *Service) LatestHoldings(ctx context.Context, cik nport.CIK) (*nport.HoldingsReport, error) {
	subs, err := s.Submissions.Submissions(ctx, cik)
	if err != nil {
		return nil, err
	}

	filing, err := s.Resolver.LatestFiling(subs)
	if err != nil {
		return nil, err
	}

	loc := s.Resolver.Resolve(ctx, cik, filing)

	body, finalURL, err := s.Documents.FetchDocument(ctx, loc.DocumentURL)
	if err != nil {
		return nil, err
	}

	holdings, err := s.Extractor.Extract(body)
	if err != nil || len(holdings) == 0 {
		return nil, nport.Errorf(nport.EUNPARSABLE, "Could not extract Part C holdings from HTML at %s.", finalURL)
	}

	asOf := filing.ReportDate
	if asOf == "" {
		asOf = filing.FilingDate
	}

	return &nport.HoldingsReport{
		CIK:       cik,
		Accession: filing.Accession,
		AsOf:      asOf,
		FilingURL: finalURL,
		XMLURL:    "",
		Count:     len(holdings),
		Holdings:  holdings,
	}, nil
}
