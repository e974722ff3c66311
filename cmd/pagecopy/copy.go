package main

import (
	"fmt"

	"github.com/fwojciec/pagecopy"
)

// Run executes the copy command.
func (c *CopyCmd) Run(deps *Dependencies) error {
	doc, err := loadDocument(deps, c.PageFlags, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagecopy.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, doc.Body)

	if c.Tokens && deps.TokenCounter != nil {
		n, err := deps.TokenCounter.CountDocument(deps.Ctx, doc)
		if err != nil {
			return fmt.Errorf("counting tokens: %w", err)
		}
		fmt.Fprintf(deps.Stderr, "%d tokens\n", n)
	}
	return nil
}
