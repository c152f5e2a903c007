package nav

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Route maps a URL path, or a doublestar glob such as "/documentation/**",
// to a navigation item ID.
type Route struct {
	Pattern string `json:"pattern"`
	ItemID  string `json:"item_id"`
}

// DefaultRoutes is the site's built-in path table.
func DefaultRoutes() []Route {
	return []Route{
		{Pattern: "/", ItemID: "1"},
		{Pattern: "/history", ItemID: "2"},
		{Pattern: "/settings", ItemID: "3"},
		{Pattern: "/documentation", ItemID: "4"},
	}
}

// RouteTable resolves request paths to item IDs. Exact paths win over
// globs; globs are tried in table order; the fallback, if set, applies last.
type RouteTable struct {
	exact    map[string]string
	globs    []Route
	fallback string
}

// NewRouteTable builds a table from routes. fallback may be empty.
func NewRouteTable(routes []Route, fallback string) (*RouteTable, error) {
	t := &RouteTable{exact: make(map[string]string), fallback: fallback}
	for _, r := range routes {
		if r.Pattern == "" || r.ItemID == "" {
			return nil, fmt.Errorf("route %q -> %q: pattern and item are required", r.Pattern, r.ItemID)
		}
		if !isGlob(r.Pattern) {
			p := normalizePath(r.Pattern)
			if _, dup := t.exact[p]; !dup {
				t.exact[p] = r.ItemID
			}
			continue
		}
		if !doublestar.ValidatePattern(r.Pattern) {
			return nil, fmt.Errorf("route %q: invalid glob pattern", r.Pattern)
		}
		t.globs = append(t.globs, r)
	}
	return t, nil
}

// MustRouteTable is NewRouteTable for static tables known to be valid.
func MustRouteTable(routes []Route, fallback string) *RouteTable {
	t, err := NewRouteTable(routes, fallback)
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve returns the item ID for path.
func (t *RouteTable) Resolve(path string) (string, bool) {
	if id, ok := t.Match(path); ok {
		return id, true
	}
	if t.fallback != "" {
		return t.fallback, true
	}
	return "", false
}

// Match is Resolve without the fallback: it reports whether an exact or
// glob route names path.
func (t *RouteTable) Match(path string) (string, bool) {
	p := normalizePath(path)
	if id, ok := t.exact[p]; ok {
		return id, true
	}
	for _, r := range t.globs {
		if ok, _ := doublestar.Match(r.Pattern, p); ok {
			return r.ItemID, true
		}
	}
	return "", false
}

// Fallback returns the fallback item ID, or "" when unmatched paths resolve
// to nothing.
func (t *RouteTable) Fallback() string { return t.fallback }

func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// normalizePath treats "" as "/" and drops a trailing slash.
func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			return "/"
		}
	}
	return p
}
