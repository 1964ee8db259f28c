package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ChipDale729/nport-viewer/edgar"
	"github.com/ChipDale729/nport-viewer/goquery"
	"github.com/ChipDale729/nport-viewer/htmltomarkdown"
	nporthttp "github.com/ChipDale729/nport-viewer/http"
	"github.com/alecthomas/kong"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("nport"),
		kong.Description("Inspect SEC EDGAR N-PORT filings from the command line"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'nport --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Wire EDGAR collaborators
	clientOpts := []nporthttp.Option{nporthttp.WithTimeout(cli.Timeout)}
	if cli.UserAgent != "" {
		clientOpts = append(clientOpts, nporthttp.WithUserAgent(cli.UserAgent))
	}
	client := nporthttp.NewClient(clientOpts...)

	deps.Submissions = nporthttp.NewSubmissionsService(client, "")
	deps.Documents = client
	deps.Resolver = &edgar.Resolver{
		Prober:   client,
		Listings: nporthttp.NewDirectoryLister(client),
	}
	deps.Holdings = &edgar.Service{
		Submissions: deps.Submissions,
		Documents:   deps.Documents,
		Extractor:   goquery.NewExtractor(),
		Resolver:    deps.Resolver,
	}
	deps.Converter = htmltomarkdown.NewConverter()

	return kongCtx.Run(deps)
}
