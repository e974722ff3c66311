package mock

import "github.com/fwojciec/pagecopy"

var _ pagecopy.FrameworkDetector = (*FrameworkDetector)(nil)

// FrameworkDetector is a mock implementation of pagecopy.FrameworkDetector.
type FrameworkDetector struct {
	DetectFn func(tree pagecopy.Tree) pagecopy.Framework
}

func (d *FrameworkDetector) Detect(tree pagecopy.Tree) pagecopy.Framework {
	return d.DetectFn(tree)
}
