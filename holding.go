package nport

import "context"

// Holding is one security position extracted from a filing table.
// Balance and ValueUSD are normalized decimal strings, not numbers:
// the source text is preserved apart from formatting cleanup and no
// arithmetic is ever performed on them.
type Holding struct {
	CUSIP    string `json:"cusip"`
	Name     string `json:"name"`
	Balance  string `json:"balance"`
	ValueUSD string `json:"valueUsd"`
}

// HoldingsReport is the assembled result of one holdings lookup.
type HoldingsReport struct {
	CIK       CIK       `json:"cik"`
	Accession string    `json:"accession"`
	AsOf      string    `json:"asOf"`
	FilingURL string    `json:"filingUrl"`
	XMLURL    string    `json:"xmlUrl"`
	Count     int       `json:"count"`
	Holdings  []Holding `json:"holdings"`
}

// Extractor extracts holdings from a filing document body.
type Extractor interface {
	// Extract scans every table in the document, classifies holdings
	// tables heuristically, and returns the rows in document order with
	// duplicates removed. Malformed rows and tables are skipped, never
	// reported; an empty result is valid. The only error is a document
	// body that cannot be parsed at all.
	Extract(body []byte) ([]Holding, error)
}

// HoldingsService is the one operation the system exposes: the latest
// public NPORT-P holdings for a filer.
type HoldingsService interface {
	// LatestHoldings returns the extracted holdings of the most recent
	// NPORT-P filing for cik.
	// Returns ENOTFOUND when the filer has no NPORT-P filing, EUPSTREAM
	// when submission metadata is malformed, EFETCH when the filing
	// document cannot be fetched, and EUNPARSABLE when the document
	// yields zero holdings.
	LatestHoldings(ctx context.Context, cik CIK) (*HoldingsReport, error)
}
