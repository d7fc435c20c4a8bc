// Package redirects implements longest-prefix path rewriting keyed on a
// compiling module's subject path, used during late resolution to retarget
// a symbol before the term-stack interpreter evaluates it.
package redirects

import "sort"

// entry is one (before -> after) rewrite, kept in a slice sorted
// lexicographically by before so that reverse iteration visits the most
// specific (longest) prefix first; the resolve/compute algorithms depend
// on that ascending key order.
type entry struct {
	before string
	after  string
}

// RedirectSet is the per-path projection produced by Redirects.Compute:
// only the entries relevant to one compiling module.
type RedirectSet struct {
	entries []entry
}

// Resolve rewrites path by its longest matching "before" prefix, or
// returns it unchanged if no redirect applies. A prefix matches only on a
// segment boundary: "x/y" matches "x/y", "x/y/z" and "x/y:T", not "x/yz".
func (rs *RedirectSet) Resolve(path string) string {
	for i := len(rs.entries) - 1; i >= 0; i-- {
		e := rs.entries[i]
		if hasSegmentPrefix(path, e.before) {
			return e.after + path[len(e.before):]
		}
	}
	return path
}

func (rs *RedirectSet) insertOrAssign(before, after string) {
	i := sort.Search(len(rs.entries), func(i int) bool { return rs.entries[i].before >= before })
	if i < len(rs.entries) && rs.entries[i].before == before {
		rs.entries[i].after = after
		return
	}
	rs.entries = append(rs.entries, entry{})
	copy(rs.entries[i+1:], rs.entries[i:])
	rs.entries[i] = entry{before: before, after: after}
}

// subjectEntry is one (subject, before) -> after rewrite.
type subjectEntry struct {
	subject string
	before  string
	after   string
}

// Redirects is the domain-wide table of path rewrites, keyed by the
// compiling module's subject path plus the before-path being rewritten.
type Redirects struct {
	entries []subjectEntry
}

// New returns an empty Redirects table.
func New() *Redirects {
	return &Redirects{}
}

// Add inserts or overwrites the (subject, before) -> after rewrite.
func (r *Redirects) Add(subject, before, after string) {
	key := func(e subjectEntry) bool {
		if e.subject != subject {
			return e.subject > subject
		}
		return e.before >= before
	}
	i := sort.Search(len(r.entries), func(i int) bool { return key(r.entries[i]) })
	if i < len(r.entries) && r.entries[i].subject == subject && r.entries[i].before == before {
		r.entries[i].after = after
		return
	}
	r.entries = append(r.entries, subjectEntry{})
	copy(r.entries[i+1:], r.entries[i:])
	r.entries[i] = subjectEntry{subject: subject, before: before, after: after}
}

// Compute projects the table to the RedirectSet applicable to path: every
// entry whose subject is a prefix of path, with more-specific subjects
// shadowing less-specific ones for the same before-path.
func (r *Redirects) Compute(path string) *RedirectSet {
	result := &RedirectSet{}
	sorted := make([]subjectEntry, len(r.entries))
	copy(sorted, r.entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].subject != sorted[j].subject {
			return sorted[i].subject < sorted[j].subject
		}
		return sorted[i].before < sorted[j].before
	})
	for _, e := range sorted {
		if hasPrefix(path, e.subject) {
			result.insertOrAssign(e.before, e.after)
		}
	}
	return result
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

// hasSegmentPrefix is hasPrefix where the byte following prefix in s, if
// any, must not continue an identifier.
func hasSegmentPrefix(s, prefix string) bool {
	if !hasPrefix(s, prefix) {
		return false
	}
	if len(s) == len(prefix) || prefix == "" {
		return true
	}
	c := s[len(prefix)]
	return !(c == '_' || c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z')
}
