package navigation

import "strings"

// Table maps a URL's first path segment to the Requirement guarding the
// module. Built once from the menu at startup and never mutated afterwards,
// so it is safe for concurrent reads.
type Table struct {
	entries map[string]Requirement
}

// BuildTable derives the route permission table from menu entries. Entries
// without a URL are skipped; entries without a requirement are recorded as
// unrestricted so their segment still counts as a known module.
func BuildTable(menu []Entry) Table {
	entries := make(map[string]Requirement, len(menu))
	for _, e := range menu {
		segment := firstSegment(e.URL)
		if segment == "" {
			continue
		}
		if _, exists := entries[segment]; exists {
			continue
		}
		entries[segment] = e.Requirement
	}
	return Table{entries: entries}
}

// Lookup returns the requirement for a path segment. The second result is
// false for unmapped segments, which the authorizer treats as unrestricted.
func (t Table) Lookup(segment string) (Requirement, bool) {
	req, ok := t.entries[segment]
	return req, ok
}

// Segments returns the mapped module segments.
func (t Table) Segments() []string {
	out := make([]string, 0, len(t.entries))
	for s := range t.entries {
		out = append(out, s)
	}
	return out
}

func firstSegment(path string) string {
	path = strings.TrimPrefix(path, "/")
	if idx := strings.IndexByte(path, '/'); idx >= 0 {
		path = path[:idx]
	}
	return path
}
