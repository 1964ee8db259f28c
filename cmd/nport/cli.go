package main

import (
	"context"
	"io"
	"time"

	nport "github.com/ChipDale729/nport-viewer"
	"github.com/ChipDale729/nport-viewer/edgar"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdout      io.Writer
	Stderr      io.Writer
	Holdings    nport.HoldingsService
	Submissions nport.SubmissionsService
	Documents   nport.DocumentFetcher
	Resolver    *edgar.Resolver
	Converter   nport.Converter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Timeout   time.Duration `default:"30s" help:"Per-request timeout for EDGAR calls"`
	UserAgent string        `env:"SEC_USER_AGENT" help:"User-Agent sent to EDGAR; SEC fair-access guidance expects a contact address"`

	Holdings HoldingsCmd `cmd:"" help:"Fetch the latest N-PORT holdings for a fund"`
	Resolve  ResolveCmd  `cmd:"" help:"Resolve the latest filing's archive folder and document URLs"`
	Doc      DocCmd      `cmd:"" help:"Print the latest filing document"`
}

// HoldingsCmd is the "holdings" subcommand.
type HoldingsCmd struct {
	CIK  string `arg:"" help:"Fund CIK, up to 10 digits"`
	JSON bool   `help:"Emit the report as JSON"`
}

// ResolveCmd is the "resolve" subcommand.
type ResolveCmd struct {
	CIK string `arg:"" help:"Fund CIK, up to 10 digits"`
}

// DocCmd is the "doc" subcommand.
type DocCmd struct {
	CIK      string `arg:"" help:"Fund CIK, up to 10 digits"`
	Markdown bool   `short:"m" help:"Convert the document to Markdown"`
}

// latestFiling picks the newest filing for cik and resolves its document
// location.
func latestFiling(deps *Dependencies, cik nport.CIK) (*nport.Filing, *nport.DocumentLocation, error) {
	subs, err := deps.Submissions.Submissions(deps.Ctx, cik)
	if err != nil {
		return nil, nil, err
	}

	filing, err := deps.Resolver.LatestFiling(subs)
	if err != nil {
		return nil, nil, err
	}

	return filing, deps.Resolver.Resolve(deps.Ctx, cik, filing), nil
}
