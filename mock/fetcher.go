package mock

import (
	"context"

	nport "github.com/ChipDale729/nport-viewer"
)

var _ nport.DocumentFetcher = (*DocumentFetcher)(nil)

// DocumentFetcher is a mock implementation of nport.DocumentFetcher.
type DocumentFetcher struct {
	FetchDocumentFn func(ctx context.Context, url string) ([]byte, string, error)
}

func (f *DocumentFetcher) FetchDocument(ctx context.Context, url string) ([]byte, string, error) {
	return f.FetchDocumentFn(ctx, url)
}
