package main

import (
	"fmt"

	nport "github.com/ChipDale729/nport-viewer"
)

// Run executes the resolve command.
func (c *ResolveCmd) Run(deps *Dependencies) error {
	cik, err := nport.ParseCIK(c.CIK)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nport.ErrorMessage(err))
		return err
	}

	filing, loc, err := latestFiling(deps, cik)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nport.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Accession:   %s\n", filing.Accession)
	if filing.ReportDate != "" {
		fmt.Fprintf(deps.Stdout, "Report date: %s\n", filing.ReportDate)
	}
	if filing.FilingDate != "" {
		fmt.Fprintf(deps.Stdout, "Filing date: %s\n", filing.FilingDate)
	}
	fmt.Fprintf(deps.Stdout, "Folder:      %s\n", loc.FolderURL)
	fmt.Fprintf(deps.Stdout, "Document:    %s\n", loc.DocumentURL)

	return nil
}
