package nport

// Gate is an admission-control gate. The web layer asks it before serving
// a request; the lookup pipeline is unaware of it.
type Gate interface {
	// Allow reports whether the caller identified by key may proceed.
	Allow(key string) bool
}
