package nport

import "context"

// Filing identifies one filing in a filer's submission history.
type Filing struct {
	// Accession is the dashed accession number, e.g. "0001752724-25-119791".
	Accession string `json:"accession"`

	// PrimaryDocument is the file name EDGAR designates as primary,
	// e.g. "primary_doc.xml". May be empty.
	PrimaryDocument string `json:"primaryDocument"`

	// ReportDate is the period-of-report date as published, possibly empty.
	ReportDate string `json:"reportDate"`

	// FilingDate is the acceptance date as published, possibly empty.
	FilingDate string `json:"filingDate"`
}

// Submissions holds the recent-filings portion of an EDGAR submissions
// payload. EDGAR publishes it as parallel arrays indexed by filing.
type Submissions struct {
	// HasRecent reports whether the payload carried a recent-filings
	// block at all. A payload without one is malformed for our purposes.
	HasRecent bool

	Forms            []string
	AccessionNumbers []string
	PrimaryDocuments []string
	ReportDates      []string
	FilingDates      []string
}

// DocumentLocation is a resolved filing document: the archive folder it
// lives in and the concrete document URL to fetch.
type DocumentLocation struct {
	FolderURL   string `json:"folderUrl"`
	DocumentURL string `json:"documentUrl"`
}

// SubmissionsService retrieves a filer's submission history.
type SubmissionsService interface {
	// Submissions fetches and decodes the submission metadata for cik.
	// Returns EFETCH when the request fails and EUPSTREAM when the
	// payload cannot be decoded.
	Submissions(ctx context.Context, cik CIK) (*Submissions, error)
}

// DocumentFetcher retrieves a filing document body.
type DocumentFetcher interface {
	// FetchDocument fetches url and returns the body together with the
	// final URL after redirects. Returns EFETCH on any failure; this is
	// the one fetch in the pipeline whose failure surfaces to callers.
	FetchDocument(ctx context.Context, url string) (body []byte, finalURL string, err error)
}

// Prober confirms that a candidate URL serves a document.
type Prober interface {
	// Probe fetches url and reports whether it succeeded. On success it
	// returns the final URL after redirects, which may differ from url.
	// Probes are best-effort: failures are swallowed, never returned.
	Probe(ctx context.Context, url string) (finalURL string, ok bool)
}

// DirectoryLister lists the file names in a filing's archive folder.
type DirectoryLister interface {
	// List returns the file names in the folder, in listing order.
	// Listing is best-effort: total failure yields an empty slice and a
	// nil error so resolution can fall through to its last resort.
	List(ctx context.Context, folderURL string) ([]string, error)
}
