package main

import (
	"fmt"

	"github.com/fwojciec/pagecopy"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	doc, err := loadDocument(deps, c.PageFlags, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagecopy.ErrorMessage(err))
		return err
	}

	answer, err := deps.Asker.Ask(deps.Ctx, doc, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagecopy.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
