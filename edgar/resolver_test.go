package edgar_test

import (
	"context"
	"testing"

	nport "github.com/ChipDale729/nport-viewer"
	"github.com/ChipDale729/nport-viewer/edgar"
	"github.com/ChipDale729/nport-viewer/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_LatestFiling(t *testing.T) {
	t.Parallel()

	t.Run("selects the first NPORT-P entry regardless of position", func(t *testing.T) {
		t.Parallel()

		subs := &nport.Submissions{
			HasRecent:        true,
			Forms:            []string{"10-K", "nport-p", "NPORT-P"},
			AccessionNumbers: []string{"0000000000-25-000001", "0000000000-25-000002", "0000000000-25-000003"},
			PrimaryDocuments: []string{"report.htm", "primary_doc.xml", "other.xml"},
			ReportDates:      []string{"2024-12-31", "2025-06-30", "2025-03-31"},
			FilingDates:      []string{"2025-02-01", "2025-08-22", "2025-05-20"},
		}

		filing, err := (&edgar.Resolver{}).LatestFiling(subs)

		require.NoError(t, err)
		assert.Equal(t, "0000000000-25-000002", filing.Accession)
		assert.Equal(t, "primary_doc.xml", filing.PrimaryDocument)
		assert.Equal(t, "2025-06-30", filing.ReportDate)
		assert.Equal(t, "2025-08-22", filing.FilingDate)
	})

	t.Run("returns ENOTFOUND when no filing matches", func(t *testing.T) {
		t.Parallel()

		subs := &nport.Submissions{
			HasRecent: true,
			Forms:     []string{"10-K", "NPORT-EX"},
		}

		_, err := (&edgar.Resolver{}).LatestFiling(subs)

		require.Error(t, err)
		assert.Equal(t, nport.ENOTFOUND, nport.ErrorCode(err))
		assert.Equal(t, "No public NPORT-P filings found for this CIK.", nport.ErrorMessage(err))
	})

	t.Run("returns EUPSTREAM without a recent block", func(t *testing.T) {
		t.Parallel()

		_, err := (&edgar.Resolver{}).LatestFiling(&nport.Submissions{})

		require.Error(t, err)
		assert.Equal(t, nport.EUPSTREAM, nport.ErrorCode(err))
		assert.Equal(t, "Unexpected SEC submissions shape.", nport.ErrorMessage(err))
	})

	t.Run("degrades ragged arrays to empty fields", func(t *testing.T) {
		t.Parallel()

		subs := &nport.Submissions{
			HasRecent:        true,
			Forms:            []string{"NPORT-P"},
			AccessionNumbers: []string{"0000000000-25-000001"},
		}

		filing, err := (&edgar.Resolver{}).LatestFiling(subs)

		require.NoError(t, err)
		assert.Equal(t, "0000000000-25-000001", filing.Accession)
		assert.Empty(t, filing.PrimaryDocument)
		assert.Empty(t, filing.ReportDate)
		assert.Empty(t, filing.FilingDate)
	})

	t.Run("honors a custom form type", func(t *testing.T) {
		t.Parallel()

		subs := &nport.Submissions{
			HasRecent:        true,
			Forms:            []string{"NPORT-P", "N-CEN"},
			AccessionNumbers: []string{"a", "b"},
		}

		filing, err := (&edgar.Resolver{FormType: "N-CEN"}).LatestFiling(subs)

		require.NoError(t, err)
		assert.Equal(t, "b", filing.Accession)
	})
}

func TestResolver_FolderURL(t *testing.T) {
	t.Parallel()

	url := (&edgar.Resolver{}).FolderURL(nport.CIK("0001166559"), "0001752724-25-119791")

	assert.Equal(t, "https://www.sec.gov/Archives/edgar/data/1166559/000175272425119791/", url)
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	const folder = "https://www.sec.gov/Archives/edgar/data/1166559/000175272425119791/"

	t.Run("uses an HTML primary document without probing", func(t *testing.T) {
		t.Parallel()

		probed := false
		resolver := &edgar.Resolver{
			Prober: &mock.Prober{ProbeFn: func(ctx context.Context, url string) (string, bool) {
				probed = true
				return "", false
			}},
			Listings: &mock.DirectoryLister{ListFn: func(ctx context.Context, folderURL string) ([]string, error) {
				return nil, nil
			}},
		}

		loc := resolver.Resolve(context.Background(), nport.CIK("0001166559"), &nport.Filing{
			Accession:       "0001752724-25-119791",
			PrimaryDocument: "nport.HTM",
		})

		assert.Equal(t, folder, loc.FolderURL)
		assert.Equal(t, folder+"nport.HTM", loc.DocumentURL)
		assert.False(t, probed)
	})

	t.Run("probes html then htm siblings of an XML primary", func(t *testing.T) {
		t.Parallel()

		var probes []string
		resolver := &edgar.Resolver{
			Prober: &mock.Prober{ProbeFn: func(ctx context.Context, url string) (string, bool) {
				probes = append(probes, url)
				if url == folder+"primary_doc.htm" {
					return url, true
				}
				return "", false
			}},
			Listings: &mock.DirectoryLister{ListFn: func(ctx context.Context, folderURL string) ([]string, error) {
				return nil, nil
			}},
		}

		loc := resolver.Resolve(context.Background(), nport.CIK("0001166559"), &nport.Filing{
			Accession:       "0001752724-25-119791",
			PrimaryDocument: "primary_doc.xml",
		})

		assert.Equal(t, folder+"primary_doc.htm", loc.DocumentURL)
		assert.Equal(t, []string{folder + "primary_doc.html", folder + "primary_doc.htm"}, probes)
	})

	t.Run("uses the probe's final URL after redirects", func(t *testing.T) {
		t.Parallel()

		resolver := &edgar.Resolver{
			Prober: &mock.Prober{ProbeFn: func(ctx context.Context, url string) (string, bool) {
				return folder + "redirected.html", true
			}},
			Listings: &mock.DirectoryLister{ListFn: func(ctx context.Context, folderURL string) ([]string, error) {
				return nil, nil
			}},
		}

		loc := resolver.Resolve(context.Background(), nport.CIK("0001166559"), &nport.Filing{
			Accession:       "0001752724-25-119791",
			PrimaryDocument: "primary_doc.xml",
		})

		assert.Equal(t, folder+"redirected.html", loc.DocumentURL)
	})

	t.Run("probes the best listing candidate for a non-HTML primary", func(t *testing.T) {
		t.Parallel()

		var probes []string
		resolver := &edgar.Resolver{
			Prober: &mock.Prober{ProbeFn: func(ctx context.Context, url string) (string, bool) {
				probes = append(probes, url)
				return url, true
			}},
			Listings: &mock.DirectoryLister{ListFn: func(ctx context.Context, folderURL string) ([]string, error) {
				return []string{"zz.htm", "filing.txt", "nport_render.html", "aa.htm"}, nil
			}},
		}

		loc := resolver.Resolve(context.Background(), nport.CIK("0001166559"), &nport.Filing{
			Accession:       "0001752724-25-119791",
			PrimaryDocument: "filing.txt",
		})

		// Keyword-bearing names sort first; only the top candidate is probed.
		assert.Equal(t, folder+"nport_render.html", loc.DocumentURL)
		assert.Equal(t, []string{folder + "nport_render.html"}, probes)
	})

	t.Run("breaks candidate ties alphabetically", func(t *testing.T) {
		t.Parallel()

		var probes []string
		resolver := &edgar.Resolver{
			Prober: &mock.Prober{ProbeFn: func(ctx context.Context, url string) (string, bool) {
				probes = append(probes, url)
				return url, true
			}},
			Listings: &mock.DirectoryLister{ListFn: func(ctx context.Context, folderURL string) ([]string, error) {
				return []string{"beta.htm", "Alpha.htm"}, nil
			}},
		}

		loc := resolver.Resolve(context.Background(), nport.CIK("0001166559"), &nport.Filing{
			Accession:       "0001752724-25-119791",
			PrimaryDocument: "filing.txt",
		})

		assert.Equal(t, folder+"Alpha.htm", loc.DocumentURL)
		assert.Len(t, probes, 1)
	})

	t.Run("falls back to the verbatim join when everything fails", func(t *testing.T) {
		t.Parallel()

		var probes []string
		listings := 0
		resolver := &edgar.Resolver{
			Prober: &mock.Prober{ProbeFn: func(ctx context.Context, url string) (string, bool) {
				probes = append(probes, url)
				return "", false
			}},
			Listings: &mock.DirectoryLister{ListFn: func(ctx context.Context, folderURL string) ([]string, error) {
				listings++
				return nil, nil
			}},
		}

		loc := resolver.Resolve(context.Background(), nport.CIK("0001166559"), &nport.Filing{
			Accession:       "0001752724-25-119791",
			PrimaryDocument: "primary_doc.xml",
		})

		assert.Equal(t, folder+"primary_doc.xml", loc.DocumentURL)

		// Worst case: the html and htm siblings, then the primary itself
		// once the empty listing leaves it as the only candidate.
		assert.Equal(t, []string{
			folder + "primary_doc.html",
			folder + "primary_doc.htm",
			folder + "primary_doc.xml",
		}, probes)
		assert.Equal(t, 1, listings)
	})

	t.Run("treats a failed listing as empty", func(t *testing.T) {
		t.Parallel()

		resolver := &edgar.Resolver{
			Prober: &mock.Prober{ProbeFn: func(ctx context.Context, url string) (string, bool) {
				return "", false
			}},
			Listings: &mock.DirectoryLister{ListFn: func(ctx context.Context, folderURL string) ([]string, error) {
				return nil, nport.Errorf(nport.EFETCH, "listing unavailable")
			}},
		}

		loc := resolver.Resolve(context.Background(), nport.CIK("0001166559"), &nport.Filing{
			Accession:       "0001752724-25-119791",
			PrimaryDocument: "holdings.txt",
		})

		assert.Equal(t, folder+"holdings.txt", loc.DocumentURL)
	})
}
