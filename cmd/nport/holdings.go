package main

import (
	"encoding/json"
	"fmt"

	nport "github.com/ChipDale729/nport-viewer"
)

// Run executes the holdings command.
func (c *HoldingsCmd) Run(deps *Dependencies) error {
	cik, err := nport.ParseCIK(c.CIK)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nport.ErrorMessage(err))
		return err
	}

	report, err := deps.Holdings.LatestHoldings(deps.Ctx, cik)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nport.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(deps.Stdout, "CIK %s  accession %s", report.CIK, report.Accession)
	if report.AsOf != "" {
		fmt.Fprintf(deps.Stdout, "  as of %s", report.AsOf)
	}
	fmt.Fprintln(deps.Stdout)
	if report.FilingURL != "" {
		fmt.Fprintln(deps.Stdout, report.FilingURL)
	}
	fmt.Fprintln(deps.Stdout)

	fmt.Fprintf(deps.Stdout, "%-12s  %-44s  %16s  %18s\n", "CUSIP", "NAME", "BALANCE", "VALUE (USD)")
	for _, h := range report.Holdings {
		fmt.Fprintf(deps.Stdout, "%-12s  %-44s  %16s  %18s\n", h.CUSIP, h.Name, h.Balance, h.ValueUSD)
	}
	fmt.Fprintf(deps.Stdout, "\n%d holdings\n", report.Count)

	return nil
}
