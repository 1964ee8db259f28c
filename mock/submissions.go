package mock

import (
	"context"

	nport "github.com/ChipDale729/nport-viewer"
)

var _ nport.SubmissionsService = (*SubmissionsService)(nil)

// SubmissionsService is a mock implementation of nport.SubmissionsService.
type SubmissionsService struct {
	SubmissionsFn func(ctx context.Context, cik nport.CIK) (*nport.Submissions, error)
}

func (s *SubmissionsService) Submissions(ctx context.Context, cik nport.CIK) (*nport.Submissions, error) {
	return s.SubmissionsFn(ctx, cik)
}
