package main

import (
	"fmt"

	nport "github.com/ChipDale729/nport-viewer"
)

// Run executes the doc command.
func (c *DocCmd) Run(deps *Dependencies) error {
	cik, err := nport.ParseCIK(c.CIK)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nport.ErrorMessage(err))
		return err
	}

	_, loc, err := latestFiling(deps, cik)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nport.ErrorMessage(err))
		return err
	}

	body, _, err := deps.Documents.FetchDocument(deps.Ctx, loc.DocumentURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nport.ErrorMessage(err))
		return err
	}

	if c.Markdown {
		md, err := deps.Converter.Convert(string(body))
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", nport.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, md)
		return nil
	}

	_, err = deps.Stdout.Write(body)
	return err
}
