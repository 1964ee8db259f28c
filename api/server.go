// Package api provides the HTTP web layer: the JSON holdings API, a
// health check, and the embedded browser UI.
package api

import (
	"context"
	"embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	nport "github.com/ChipDale729/nport-viewer"
	"github.com/cespare/xxhash/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/singleflight"
)

//go:embed index.html
var indexFS embed.FS

var indexTmpl = template.Must(template.ParseFS(indexFS, "index.html"))

// Server is the HTTP API server. Lookups go through the injected cache
// first; misses are collapsed per CIK so concurrent requests for the same
// fund produce a single EDGAR round trip.
type Server struct {
	router chi.Router

	holdings nport.HoldingsService
	cache    nport.HoldingsCache

	healthGate   nport.Gate
	holdingsGate nport.Gate
	logger       *slog.Logger

	group singleflight.Group
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for request-level events.
// Defaults to slog.Default() if not specified.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithHealthGate rate-limits the health endpoint. A nil gate admits
// every request.
func WithHealthGate(gate nport.Gate) Option {
	return func(s *Server) {
		s.healthGate = gate
	}
}

// WithHoldingsGate rate-limits the holdings endpoint. A nil gate admits
// every request.
func WithHoldingsGate(gate nport.Gate) Option {
	return func(s *Server) {
		s.holdingsGate = gate
	}
}

// NewServer creates a configured Server backed by holdings and cache.
// Wire gocache.New for an in-memory cache.
func NewServer(holdings nport.HoldingsService, cache nport.HoldingsCache, opts ...Option) *Server {
	s := &Server{
		holdings: holdings,
		cache:    cache,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Router returns the chi router, for tests and embedding.
func (s *Server) Router() chi.Router {
	return s.router
}

// ServeHTTP makes Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled or the listener
// fails, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && err != http.ErrServerClosed {
			return nport.Errorf(nport.EINTERNAL, "server failed: %s", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// routes configures all routes and middleware.
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// The UI page is exempt from rate limiting.
	r.Get("/", s.handleIndex)

	r.Group(func(r chi.Router) {
		r.Use(s.gated(s.healthGate))
		r.Get("/api/health", s.handleHealth)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.gated(s.holdingsGate))
		r.Get("/api/holdings/{cik}", s.handleHoldings)
	})

	return r
}

// gated builds middleware that asks gate before admitting a request.
func (s *Server) gated(gate nport.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if gate != nil && !gate.Allow(clientKey(r)) {
				writeJSON(w, http.StatusTooManyRequests, errorResponse{
					Error:  "Rate limit exceeded. Try again soon.",
					Detail: "Too many requests",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientKey identifies the caller for rate limiting. RealIP has already
// folded X-Forwarded-For into RemoteAddr when present.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, nil); err != nil {
		s.logger.Error("render index", "err", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request) {
	cik, err := nport.ParseCIK(chi.URLParam(r, "cik"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	if report, ok := s.cache.Get(cik); ok {
		s.writeReport(w, r, report)
		return
	}

	v, err, _ := s.group.Do(string(cik), func() (any, error) {
		// A concurrent flight may have filled the cache while we waited.
		if report, ok := s.cache.Get(cik); ok {
			return report, nil
		}
		report, err := s.holdings.LatestHoldings(r.Context(), cik)
		if err != nil {
			return nil, err
		}
		s.cache.Set(cik, report)
		return report, nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeReport(w, r, v.(*nport.HoldingsReport))
}

// writeReport encodes the report with a strong ETag and honors
// If-None-Match revalidation.
func (s *Server) writeReport(w http.ResponseWriter, r *http.Request, report *nport.HoldingsReport) {
	body, err := json.Marshal(report)
	if err != nil {
		s.writeError(w, err)
		return
	}

	etag := fmt.Sprintf("%q", hashContent(body))
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFromCode(nport.ErrorCode(err))
	if status == http.StatusInternalServerError {
		s.logger.Error("holdings request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Error: nport.ErrorMessage(err)})
}

// statusFromCode maps domain error codes to HTTP statuses.
func statusFromCode(code string) int {
	switch code {
	case nport.EINVALID:
		return http.StatusBadRequest
	case nport.ENOTFOUND:
		return http.StatusNotFound
	case nport.EFETCH, nport.EUPSTREAM, nport.EUNPARSABLE:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content []byte) string {
	h := xxhash.Sum64(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}
