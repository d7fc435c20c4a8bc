package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// Schema is the stable identifier stamped on every Diagnostic, analogous to
// a wire-format version tag.
const Schema = "yama.diagnostic/v1"

// Diagnostic is the canonical structured error value produced anywhere in
// the loading/resolution core. *Diagnostic implements error itself, so it
// can be recovered from a wrapped error chain with AsDiagnostic.
type Diagnostic struct {
	Schema    string         `json:"schema"`
	Kind      Kind           `json:"kind"`
	Message   string         `json:"message"`
	Specifier string         `json:"specifier,omitempty"`
	Path      string         `json:"path,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

// New constructs a Diagnostic of the given kind.
func New(kind Kind, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Schema:  Schema,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithSpecifier attaches the offending specifier text to the diagnostic.
func (d *Diagnostic) WithSpecifier(spec string) *Diagnostic {
	d.Specifier = spec
	return d
}

// WithPath attaches the offending parcel/module path to the diagnostic.
func (d *Diagnostic) WithPath(path string) *Diagnostic {
	d.Path = path
	return d
}

// WithData attaches a single structured key/value to the diagnostic.
func (d *Diagnostic) WithData(key string, value any) *Diagnostic {
	if d.Data == nil {
		d.Data = make(map[string]any)
	}
	d.Data[key] = value
	return d
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	var b strings.Builder
	b.WriteString(string(d.Kind))
	b.WriteString(": ")
	b.WriteString(d.Message)
	if d.Specifier != "" {
		fmt.Fprintf(&b, " (specifier %q)", d.Specifier)
	}
	if d.Path != "" {
		fmt.Fprintf(&b, " (path %q)", d.Path)
	}
	return b.String()
}

// AsDiagnostic extracts a *Diagnostic from an error chain.
func AsDiagnostic(err error) (*Diagnostic, bool) {
	var d *Diagnostic
	ok := stderrors.As(err, &d)
	return d, ok
}

// Session accumulates diagnostics the way a loading/resolution session
// does: the first error sets a failure flag, but later operations may still
// append diagnostics when doing so is cheap and safe (each
// mismatching type argument reported individually before the session
// short-circuits).
type Session struct {
	diags  []*Diagnostic
	failed bool
}

// NewSession returns a fresh, unfailed diagnostic session.
func NewSession() *Session {
	return &Session{}
}

// Report appends a diagnostic and marks the session failed.
func (s *Session) Report(d *Diagnostic) {
	s.diags = append(s.diags, d)
	s.failed = true
}

// Failed reports whether any diagnostic has been recorded.
func (s *Session) Failed() bool {
	return s.failed
}

// Reset clears the session back to a clean, unfailed state, as happens at
// the start of every Import/Load request.
func (s *Session) Reset() {
	s.diags = nil
	s.failed = false
}

// Diagnostics returns the accumulated diagnostics in report order.
func (s *Session) Diagnostics() []*Diagnostic {
	return s.diags
}

// First returns the first reported diagnostic, if any.
func (s *Session) First() *Diagnostic {
	if len(s.diags) == 0 {
		return nil
	}
	return s.diags[0]
}

// SortedKinds returns the distinct kinds reported this session, sorted,
// useful for deterministic test assertions over multi-diagnostic sessions.
func (s *Session) SortedKinds() []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range s.diags {
		k := string(d.Kind)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
