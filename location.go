package pagecopy

import (
	"net/url"
	"strings"
)

// LogicalPath reduces a location to the part that identifies a logical
// page: scheme, host and path. Fragment and query are dropped, so two
// locations differing only past '#' or '?' share a logical path.
// Unparseable locations fall back to cutting at the first '?' or '#'.
func LogicalPath(location string) string {
	u, err := url.Parse(location)
	if err != nil {
		if i := strings.IndexAny(location, "?#"); i >= 0 {
			return location[:i]
		}
		return location
	}
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}

// SamePage reports whether two locations refer to the same logical page.
func SamePage(a, b string) bool {
	return LogicalPath(a) == LogicalPath(b)
}
