// Package edgar resolves EDGAR filings and orchestrates holdings lookups.
// It combines the submissions metadata service, the document resolver, the
// document fetcher, and the extraction engine behind the domain's one
// exposed operation.
package edgar

import (
	"context"
	"fmt"
	"sort"
	"strings"

	nport "github.com/ChipDale729/nport-viewer"
)

// DefaultArchivesBase is the EDGAR archive root. Base URLs end with a slash.
const DefaultArchivesBase = "https://www.sec.gov/Archives/"

// DefaultFormType is the form tag selected from a filer's history.
const DefaultFormType = "NPORT-P"

// candidateKeywords sort a folder listing name ahead of its peers during
// document resolution.
var candidateKeywords = []string{"primary", "nport"}

// Resolver picks a filer's latest NPORT-P filing and resolves which
// document in its archive folder is the HTML document to parse.
//
// Filers publish the primary document inconsistently: sometimes it is the
// HTML itself, sometimes an XML manifest with an HTML sibling, sometimes
// the HTML is only discoverable through the folder listing. Resolution
// tries those shapes in order and degrades to a verbatim URL join, leaving
// any failure to the mandatory document fetch downstream.
type Resolver struct {
	Prober   nport.Prober
	Listings nport.DirectoryLister

	// ArchivesBase overrides DefaultArchivesBase, ending with a slash.
	ArchivesBase string

	// FormType overrides DefaultFormType. Compared case-insensitively.
	FormType string
}

// LatestFiling selects the most recent filing whose form tag equals the
// target type, scanning the published list in order. Returns EUPSTREAM
// when the metadata lacks a recent-filings block and ENOTFOUND when no
// filing matches. Ragged parallel arrays degrade to empty fields.
func (r *Resolver) LatestFiling(subs *nport.Submissions) (*nport.Filing, error) {
	if subs == nil || !subs.HasRecent {
		return nil, nport.Errorf(nport.EUPSTREAM, "Unexpected SEC submissions shape.")
	}

	formType := r.formType()
	for i, form := range subs.Forms {
		if !strings.EqualFold(form, formType) {
			continue
		}
		return &nport.Filing{
			Accession:       at(subs.AccessionNumbers, i),
			PrimaryDocument: at(subs.PrimaryDocuments, i),
			ReportDate:      at(subs.ReportDates, i),
			FilingDate:      at(subs.FilingDates, i),
		}, nil
	}
	return nil, nport.Errorf(nport.ENOTFOUND, "No public %s filings found for this CIK.", formType)
}

// FolderURL computes the archive folder for a filing: leading zeros
// stripped from the CIK, dashes stripped from the accession number.
func (r *Resolver) FolderURL(cik nport.CIK, accession string) string {
	base := r.ArchivesBase
	if base == "" {
		base = DefaultArchivesBase
	}
	return fmt.Sprintf("%sedgar/data/%s/%s/", base, cik.Strip(), strings.ReplaceAll(accession, "-", ""))
}

// Resolve determines the filing's document location. It performs at most
// one listing fetch and three probes; probe and listing failures are
// swallowed, so Resolve always yields a location.
func (r *Resolver) Resolve(ctx context.Context, cik nport.CIK, filing *nport.Filing) *nport.DocumentLocation {
	folder := r.FolderURL(cik, filing.Accession)
	return &nport.DocumentLocation{
		FolderURL:   folder,
		DocumentURL: r.documentURL(ctx, folder, filing.PrimaryDocument),
	}
}

// documentURL applies the resolution priority order: the primary document
// when already HTML, an .html/.htm sibling of an XML primary, the best
// folder listing candidate, and finally the verbatim join.
func (r *Resolver) documentURL(ctx context.Context, folderURL, primary string) string {
	if isHTMLName(primary) {
		return folderURL + primary
	}

	if strings.HasSuffix(strings.ToLower(primary), ".xml") {
		stem := primary[:len(primary)-len(".xml")]
		for _, ext := range []string{".html", ".htm"} {
			if finalURL, ok := r.Prober.Probe(ctx, folderURL+stem+ext); ok {
				return finalURL
			}
		}
	}

	if cands := r.htmlCandidates(ctx, folderURL, primary); len(cands) > 0 {
		if finalURL, ok := r.Prober.Probe(ctx, folderURL+cands[0]); ok {
			return finalURL
		}
	}

	return folderURL + primary
}

// htmlCandidates lists the HTML file names in the filing folder ordered by
// relevance: the declared primary document first when it is HTML, then
// keyword-bearing names, ties broken alphabetically. With nothing in the
// listing the primary document itself is the last candidate.
func (r *Resolver) htmlCandidates(ctx context.Context, folderURL, primary string) []string {
	names, _ := r.Listings.List(ctx, folderURL)

	var cands []string
	if isHTMLName(primary) {
		cands = append(cands, primary)
	}
	for _, n := range names {
		if isHTMLName(n) && !contains(cands, n) {
			cands = append(cands, n)
		}
	}

	sort.SliceStable(cands, func(i, j int) bool {
		ki, kj := hasCandidateKeyword(cands[i]), hasCandidateKeyword(cands[j])
		if ki != kj {
			return ki
		}
		return strings.ToLower(cands[i]) < strings.ToLower(cands[j])
	})

	if len(cands) == 0 && primary != "" {
		return []string{primary}
	}
	return cands
}

func (r *Resolver) formType() string {
	if r.FormType != "" {
		return r.FormType
	}
	return DefaultFormType
}

// at indexes a possibly ragged parallel array, yielding "" out of range.
func at(arr []string, i int) string {
	if i < 0 || i >= len(arr) {
		return ""
	}
	return arr[i]
}

func isHTMLName(name string) bool {
	n := strings.ToLower(name)
	return strings.HasSuffix(n, ".htm") || strings.HasSuffix(n, ".html")
}

func hasCandidateKeyword(name string) bool {
	n := strings.ToLower(name)
	for _, kw := range candidateKeywords {
		if strings.Contains(n, kw) {
			return true
		}
	}
	return false
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
