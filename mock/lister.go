package mock

import (
	"context"

	nport "github.com/ChipDale729/nport-viewer"
)

var _ nport.DirectoryLister = (*DirectoryLister)(nil)

// DirectoryLister is a mock implementation of nport.DirectoryLister.
type DirectoryLister struct {
	ListFn func(ctx context.Context, folderURL string) ([]string, error)
}

func (l *DirectoryLister) List(ctx context.Context, folderURL string) ([]string, error) {
	return l.ListFn(ctx, folderURL)
}
