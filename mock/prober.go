package mock

import (
	"context"

	nport "github.com/ChipDale729/nport-viewer"
)

var _ nport.Prober = (*Prober)(nil)

// Prober is a mock implementation of nport.Prober.
type Prober struct {
	ProbeFn func(ctx context.Context, url string) (string, bool)
}

func (p *Prober) Probe(ctx context.Context, url string) (string, bool) {
	return p.ProbeFn(ctx, url)
}
