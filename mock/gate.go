package mock

import nport "github.com/ChipDale729/nport-viewer"

var _ nport.Gate = (*Gate)(nil)

// Gate is a mock implementation of nport.Gate.
type Gate struct {
	AllowFn func(key string) bool
}

func (g *Gate) Allow(key string) bool {
	return g.AllowFn(key)
}
