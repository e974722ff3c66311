package mock

import "github.com/fwojciec/pagecopy"

var _ pagecopy.MountHost = (*MountHost)(nil)

// MountHost is a mock implementation of pagecopy.MountHost.
type MountHost struct {
	LocationFn      func() string
	FindFn          func(scope pagecopy.ContentNode, selector string) pagecopy.ContentNode
	CloneFn         func(n pagecopy.ContentNode) (pagecopy.Fragment, error)
	ContainsFn      func(ancestor, n pagecopy.ContentNode) bool
	VisibleFn       func(n pagecopy.ContentNode) bool
	ViewportWidthFn func() int
	MountFn         func(region pagecopy.ContentNode, spec pagecopy.MountSpec) (pagecopy.ContentNode, error)
	UnmountFn       func(owned pagecopy.ContentNode) error
}

func (h *MountHost) Location() string {
	return h.LocationFn()
}

func (h *MountHost) Find(scope pagecopy.ContentNode, selector string) pagecopy.ContentNode {
	return h.FindFn(scope, selector)
}

func (h *MountHost) Clone(n pagecopy.ContentNode) (pagecopy.Fragment, error) {
	return h.CloneFn(n)
}

func (h *MountHost) Contains(ancestor, n pagecopy.ContentNode) bool {
	return h.ContainsFn(ancestor, n)
}

func (h *MountHost) Visible(n pagecopy.ContentNode) bool {
	return h.VisibleFn(n)
}

func (h *MountHost) ViewportWidth() int {
	return h.ViewportWidthFn()
}

func (h *MountHost) Mount(region pagecopy.ContentNode, spec pagecopy.MountSpec) (pagecopy.ContentNode, error) {
	return h.MountFn(region, spec)
}

func (h *MountHost) Unmount(owned pagecopy.ContentNode) error {
	return h.UnmountFn(owned)
}
