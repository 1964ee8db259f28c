package mock

import nport "github.com/ChipDale729/nport-viewer"

var _ nport.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of nport.Extractor.
type Extractor struct {
	ExtractFn func(body []byte) ([]nport.Holding, error)
}

func (e *Extractor) Extract(body []byte) ([]nport.Holding, error) {
	return e.ExtractFn(body)
}
