package mock

import "github.com/fwojciec/pagecopy"

var _ pagecopy.Converter = (*Converter)(nil)

// Converter is a mock implementation of pagecopy.Converter.
type Converter struct {
	ConvertFn func(root pagecopy.ContentNode) (string, error)
}

func (c *Converter) Convert(root pagecopy.ContentNode) (string, error) {
	return c.ConvertFn(root)
}
