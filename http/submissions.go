package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	nport "github.com/ChipDale729/nport-viewer"
)

// DefaultSubmissionsBase is where EDGAR serves submission metadata.
// Base URLs end with a slash.
const DefaultSubmissionsBase = "https://data.sec.gov/"

// Ensure SubmissionsService implements nport.SubmissionsService.
var _ nport.SubmissionsService = (*SubmissionsService)(nil)

// SubmissionsService fetches filer submission metadata from EDGAR.
type SubmissionsService struct {
	client *Client
	base   string
}

// NewSubmissionsService creates a SubmissionsService backed by client.
// If base is empty, DefaultSubmissionsBase is used.
func NewSubmissionsService(client *Client, base string) *SubmissionsService {
	if base == "" {
		base = DefaultSubmissionsBase
	}
	return &SubmissionsService{client: client, base: base}
}

// submissionsPayload mirrors the slice of the EDGAR submissions JSON this
// service reads. Recent filings are published as parallel arrays indexed
// by filing; a pointer distinguishes an absent recent block from an empty
// one.
type submissionsPayload struct {
	Filings struct {
		Recent *struct {
			Form            []string `json:"form"`
			AccessionNumber []string `json:"accessionNumber"`
			PrimaryDocument []string `json:"primaryDocument"`
			ReportDate      []string `json:"reportDate"`
			FilingDate      []string `json:"filingDate"`
		} `json:"recent"`
	} `json:"filings"`
}

// Submissions fetches and decodes the submission metadata for cik.
func (s *SubmissionsService) Submissions(ctx context.Context, cik nport.CIK) (*nport.Submissions, error) {
	url := fmt.Sprintf("%ssubmissions/CIK%s.json", s.base, cik)

	resp, err := s.client.get(ctx, url)
	if err != nil {
		return nil, nport.Errorf(nport.EFETCH, "SEC request failed at %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nport.Errorf(nport.EFETCH, "SEC request failed (%d) at %s", resp.StatusCode, url)
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, nport.Errorf(nport.EFETCH, "SEC request failed at %s", url)
	}

	var payload submissionsPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, nport.Errorf(nport.EUPSTREAM, "Unexpected SEC submissions shape.")
	}

	recent := payload.Filings.Recent
	if recent == nil {
		return &nport.Submissions{}, nil
	}

	return &nport.Submissions{
		HasRecent:        true,
		Forms:            recent.Form,
		AccessionNumbers: recent.AccessionNumber,
		PrimaryDocuments: recent.PrimaryDocument,
		ReportDates:      recent.ReportDate,
		FilingDates:      recent.FilingDate,
	}, nil
}
