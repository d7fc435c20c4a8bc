package specifier

import (
	"strings"

	"github.com/tirous-coded/yama/internal/errors"
	"github.com/tirous-coded/yama/internal/redirects"
)

// MustBe constrains what kind of specifier Solver.Solve will accept.
type MustBe int

const (
	MustBeEither MustBe = iota
	MustBePath
	MustBeType
)

// Env carries the optional substitution inputs for Solve: a `%here`
// parcel path, a `$Self` type fullname, a `$<Ident>` type-parameter map,
// and a Redirects set applied to paths as they enter a type (the `:`
// transition). All fields are optional; when absent, substitution is
// skipped and the raw identifier is preserved, so an env-less Solver
// yields only syntactic validation and normalization, the mode
// DefBuilder relies on. A $<Ident> reference does fail when TypeParams
// is present but lacks the name.
type Env struct {
	Here       string
	HasHere    bool
	Self       string
	HasSelf    bool
	TypeParams map[string]string
	Redirects  *redirects.RedirectSet
}

// scope tracks the specifier currently being assembled at one nesting
// level (the top-level specifier, or one generic argument / call-suffix
// param / call-suffix return type nested inside it).
type scope struct {
	text   string
	isType bool
	used   bool
	parts  []string
}

// Solver normalizes (substitutes `%here`/`$Self`/`$<Ident>` and applies
// redirects to) a raw specifier, producing its canonical text plus kind
// tag: a Listener that emits normalized text as it walks the parse.
type Solver struct {
	env   Env
	input string
	cur   *scope
	stack []*scope
	err   error
}

// NewSolver returns a Solver substituting with env.
func NewSolver(env Env) *Solver {
	return &Solver{env: env}
}

// Solve parses and normalizes input, requiring the result to match
// mustBe (MustBeEither accepts either kind).
func (s *Solver) Solve(input string, mustBe MustBe) (Spec, error) {
	s.input = input
	s.cur = &scope{}
	s.stack = nil
	s.err = nil

	if !Parse(input, s) {
		if s.err == nil {
			s.err = errors.New(errors.IllegalSpecifier, "syntax error in specifier").WithSpecifier(input)
		}
		return Spec{}, s.err
	}
	if s.err != nil {
		return Spec{}, s.err
	}

	kind := Path
	if s.cur.isType {
		kind = TypeFullname
	}
	switch mustBe {
	case MustBePath:
		if kind != Path {
			return Spec{}, errors.New(errors.IllegalSpecifier, "expected a path specifier, got a type fullname").WithSpecifier(input)
		}
	case MustBeType:
		if kind != TypeFullname {
			return Spec{}, errors.New(errors.IllegalSpecifier, "expected a type fullname specifier, got a path").WithSpecifier(input)
		}
	}
	return Spec{text: s.cur.text, kind: kind}, nil
}

func (s *Solver) fail(format string, args ...any) {
	if s.err == nil {
		s.err = errors.New(errors.IllegalSpecifier, format, args...).WithSpecifier(s.input)
	}
}

// SyntaxErr implements Listener.
func (s *Solver) SyntaxErr() {
	s.fail("syntax error in specifier")
}

// RootID implements Listener, substituting `%here`/`$Self`/`$<Ident>`.
func (s *Solver) RootID(id string) {
	if s.err != nil {
		return
	}
	s.cur.used = true

	switch {
	case id == "%here":
		if !s.env.HasHere {
			s.cur.text = id
			s.cur.isType = false
			return
		}
		s.cur.text = s.env.Here
		s.cur.isType = false
	case id == "$Self":
		if !s.env.HasSelf {
			s.cur.text = id
			s.cur.isType = true
			return
		}
		s.cur.text = s.env.Self
		s.cur.isType = true
	case strings.HasPrefix(id, "$"):
		name := id[1:]
		if s.env.TypeParams == nil {
			s.cur.text = id
			s.cur.isType = true
			return
		}
		val, ok := s.env.TypeParams[name]
		if !ok {
			s.fail("unresolved type parameter reference %q", id)
			return
		}
		s.cur.text = val
		s.cur.isType = true
	default:
		s.cur.text = id
		s.cur.isType = false
	}
}

// SlashID implements Listener.
func (s *Solver) SlashID(id string) {
	if s.err != nil {
		return
	}
	if s.cur.isType {
		s.fail("'/' may only follow a path, not a type (at %q)", id)
		return
	}
	s.cur.text += "/" + id
}

// ColonID implements Listener: entering type context triggers redirect
// application on the path accumulated so far.
func (s *Solver) ColonID(id string) {
	if s.err != nil {
		return
	}
	if s.cur.isType {
		s.fail("':' may only follow a path, not a type (at %q)", id)
		return
	}
	base := s.cur.text
	if s.env.Redirects != nil {
		base = s.env.Redirects.Resolve(base)
	}
	s.cur.text = base + ":" + id
	s.cur.isType = true
}

// DblColonID implements Listener.
func (s *Solver) DblColonID(id string) {
	if s.err != nil {
		return
	}
	if !s.cur.isType {
		s.fail("'::' may only follow a type, not a path (at %q)", id)
		return
	}
	s.cur.text += "::" + id
}

// OpenArgs implements Listener, beginning a generic argument list.
func (s *Solver) OpenArgs() {
	if s.err != nil {
		return
	}
	if !s.cur.isType {
		s.fail("'[' may only follow a type")
		return
	}
	s.stack = append(s.stack, s.cur)
	s.cur = &scope{}
}

// ArgsDelim implements Listener.
func (s *Solver) ArgsDelim() {
	if s.err != nil {
		return
	}
	parent := s.stack[len(s.stack)-1]
	parent.parts = append(parent.parts, s.cur.text)
	s.cur = &scope{}
}

// CloseArgs implements Listener.
func (s *Solver) CloseArgs() {
	if s.err != nil {
		return
	}
	n := len(s.stack)
	parent := s.stack[n-1]
	s.stack = s.stack[:n-1]
	if s.cur.used {
		parent.parts = append(parent.parts, s.cur.text)
	}
	parent.text += "[" + strings.Join(parent.parts, ",") + "]"
	parent.parts = nil
	s.cur = parent
}

// OpenCallSuff implements Listener, beginning a `(T1, …) -> R` suffix.
func (s *Solver) OpenCallSuff() {
	if s.err != nil {
		return
	}
	s.stack = append(s.stack, s.cur)
	s.cur = &scope{}
}

// CallSuffDelim implements Listener.
func (s *Solver) CallSuffDelim() {
	if s.err != nil {
		return
	}
	parent := s.stack[len(s.stack)-1]
	if s.cur.used {
		parent.parts = append(parent.parts, s.cur.text)
	}
	s.cur = &scope{}
}

// CallSuffReturn implements Listener, finalizing the param list (if any)
// and beginning the return type.
func (s *Solver) CallSuffReturn() {
	if s.err != nil {
		return
	}
	parent := s.stack[len(s.stack)-1]
	if s.cur.used {
		parent.parts = append(parent.parts, s.cur.text)
	}
	s.cur = &scope{}
}

// CloseCallSuff implements Listener.
func (s *Solver) CloseCallSuff() {
	if s.err != nil {
		return
	}
	n := len(s.stack)
	parent := s.stack[n-1]
	s.stack = s.stack[:n-1]
	retText := s.cur.text
	parent.text += "(" + strings.Join(parent.parts, ", ") + ") -> " + retText
	parent.parts = nil
	s.cur = parent
}
