package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	nport "github.com/ChipDale729/nport-viewer"
	"github.com/ChipDale729/nport-viewer/api"
	"github.com/ChipDale729/nport-viewer/edgar"
	"github.com/ChipDale729/nport-viewer/gocache"
	"github.com/ChipDale729/nport-viewer/goquery"
	nporthttp "github.com/ChipDale729/nport-viewer/http"
	"github.com/ChipDale729/nport-viewer/ratelimit"
	nportslog "github.com/ChipDale729/nport-viewer/slog"
	"github.com/ChipDale729/nport-viewer/sqlite"
	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database backing the persistent cache, when enabled.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// CLI defines the daemon's flags for Kong. A config file named by --config
// seeds flag defaults; explicit flags and environment variables win.
type CLI struct {
	Addr          string          `default:":3000" env:"NPORT_ADDR" help:"HTTP listen address"`
	UserAgent     string          `env:"SEC_USER_AGENT" help:"User-Agent sent to EDGAR; SEC fair-access guidance expects a contact address"`
	Timeout       time.Duration   `default:"30s" help:"Per-request timeout for EDGAR calls"`
	CacheTTL      time.Duration   `name:"cache-ttl" default:"30m" help:"How long holdings reports stay cached"`
	CacheSize     int             `name:"cache-size" default:"128" help:"Soft cap on in-memory cached reports"`
	CacheDB       string          `name:"cache-db" env:"NPORT_CACHE_DB" help:"SQLite database path for a persistent cache (empty keeps the cache in memory)"`
	HealthLimit   int             `name:"health-limit" default:"30" help:"Health endpoint requests per minute per client (0 disables)"`
	HoldingsLimit int             `name:"holdings-limit" default:"10" help:"Holdings endpoint requests per minute per client (0 disables)"`
	Debug         bool            `help:"Log at debug level, including cache hits and misses"`
	Config        kong.ConfigFlag `short:"c" help:"YAML config file whose values seed flag defaults"`
}

// ConfigLoader reads a YAML config file into a Kong resolver. Keys match
// flag names, with dashes or underscores.
func ConfigLoader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	var f kong.ResolverFunc = func(context *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		if v, ok := values[flag.Name]; ok {
			return v, nil
		}
		if v, ok := values[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
			return v, nil
		}
		return nil, nil
	}
	return f, nil
}

// Run executes the daemon with the given arguments, serving until ctx is
// canceled.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("nportd"),
		kong.Description("Serve the latest SEC N-PORT holdings over HTTP"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Configuration(ConfigLoader),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// EDGAR collaborators
	clientOpts := []nporthttp.Option{nporthttp.WithTimeout(cli.Timeout)}
	if cli.UserAgent != "" {
		clientOpts = append(clientOpts, nporthttp.WithUserAgent(cli.UserAgent))
	}
	client := nporthttp.NewClient(clientOpts...)

	resolver := &edgar.Resolver{
		Prober:   client,
		Listings: nporthttp.NewDirectoryLister(client),
	}

	service := &edgar.Service{
		Submissions: nporthttp.NewSubmissionsService(client, ""),
		Documents:   client,
		Extractor:   goquery.NewExtractor(),
		Resolver:    resolver,
	}
	holdings := nportslog.NewLoggingHoldingsService(service, logger)

	// Cache: persistent when a database path is given, in-memory otherwise.
	var cache nport.HoldingsCache
	if cli.CacheDB != "" {
		m.DB = sqlite.NewDB(cli.CacheDB)
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open cache database at %q: %w", cli.CacheDB, err)
		}
		defer m.Close()

		sqlCache := sqlite.NewHoldingsCache(m.DB, cli.CacheTTL)
		if purged, err := sqlCache.PurgeExpired(ctx); err != nil {
			logger.Warn("cache purge failed", "err", err)
		} else if purged > 0 {
			logger.Info("purged expired cache entries", "count", purged)
		}
		cache = sqlCache
	} else {
		cache = gocache.New(cli.CacheTTL, cli.CacheSize)
	}

	srv := api.NewServer(holdings, nportslog.NewLoggingHoldingsCache(cache, logger),
		api.WithLogger(logger),
		api.WithHealthGate(gateFor(cli.HealthLimit)),
		api.WithHoldingsGate(gateFor(cli.HoldingsLimit)),
	)

	logger.Info("listening", "addr", cli.Addr)
	return srv.ListenAndServe(ctx, cli.Addr)
}

// gateFor builds a per-client gate for n requests per minute. Zero or
// negative n disables the gate.
func gateFor(n int) nport.Gate {
	if n <= 0 {
		return nil
	}
	return ratelimit.PerMinute(n)
}
