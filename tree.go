package pagecopy

import (
	"sort"
	"strings"
	"time"
)

// Tree is the live rendered content tree of the current page.
// The tree is owned by the host; callers only read it and copy out of it.
type Tree interface {
	// Location returns the current page location.
	Location() string

	// Find returns the first node matching the CSS selector, searching
	// below scope, or the whole tree when scope is nil.
	// Returns nil if nothing matches.
	Find(scope ContentNode, selector string) ContentNode

	// Clone returns an exclusively owned deep copy of n.
	Clone(n ContentNode) (Fragment, error)
}

// MountHost is a Tree that also accepts a single widget mount.
type MountHost interface {
	Tree

	// Contains reports whether n is ancestor itself or one of its descendants
	// in the current tree.
	Contains(ancestor, n ContentNode) bool

	// Visible reports whether n has a non-zero rendered size and is not
	// display-suppressed.
	Visible(n ContentNode) bool

	// ViewportWidth returns the layout viewport width in CSS pixels,
	// or 0 when the host has no viewport.
	ViewportWidth() int

	// Mount inserts a new container element as the first child of region
	// and returns it.
	Mount(region ContentNode, spec MountSpec) (ContentNode, error)

	// Unmount removes a container previously returned by Mount. Removing a
	// container that is no longer in the tree is not an error.
	Unmount(owned ContentNode) error
}

// MountSpec describes the container created by MountHost.Mount.
type MountSpec struct {
	// ID is the element id of the container.
	ID string

	// InstanceID is stamped on the container to identify this mount.
	InstanceID string

	// Style is applied inline to the container.
	Style Style

	// Actions lists the menu entries the chrome should offer.
	Actions []Action
}

// InstanceAttr is the attribute carrying MountSpec.InstanceID.
const InstanceAttr = "data-pagecopy-instance"

// MountRecord represents the single live widget attachment.
type MountRecord struct {
	MountPointID string
	InstanceID   string
	Host         ContentNode
	Owned        ContentNode
	MountedAt    time.Time
}

// Style is a set of inline style properties keyed by their DOM property
// name (e.g. "zIndex").
type Style map[string]string

// CSS renders the style as an inline style attribute value with
// properties in sorted order and names converted to CSS case.
func (s Style) CSS() string {
	if len(s) == 0 {
		return ""
	}
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, cssName(k)+": "+s[k])
	}
	return strings.Join(parts, "; ")
}

// cssName converts a DOM style property name to its CSS form:
// zIndex becomes z-index.
func cssName(prop string) string {
	var sb strings.Builder
	for _, r := range prop {
		if r >= 'A' && r <= 'Z' {
			sb.WriteByte('-')
			sb.WriteRune(r + ('a' - 'A'))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
