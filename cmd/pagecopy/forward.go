package main

import (
	"fmt"

	"github.com/fwojciec/pagecopy"
)

// Run executes the forward command.
func (c *ForwardCmd) Run(deps *Dependencies) error {
	assistant, ok := pagecopy.AssistantByName(c.Assistant)
	if !ok {
		return pagecopy.Errorf(pagecopy.EINVALID, "unknown assistant %q", c.Assistant)
	}

	doc, err := loadDocument(deps, c.PageFlags, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagecopy.ErrorMessage(err))
		return err
	}

	target, err := pagecopy.AssistantURL(assistant, doc)
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, target)
	return nil
}
