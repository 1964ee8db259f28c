package mock

import nport "github.com/ChipDale729/nport-viewer"

var _ nport.Converter = (*Converter)(nil)

// Converter is a mock implementation of nport.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
