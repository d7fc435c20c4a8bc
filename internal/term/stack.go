package term

import (
	"github.com/tirous-coded/yama/internal/errors"
	"github.com/tirous-coded/yama/internal/parcel"
	"github.com/tirous-coded/yama/internal/typeobj"
)

// Env carries the term-stack session's optional environment: a `%here`
// parcel path and a `$Self` type, consulted by the Here/Self/TypeParam ops.
type Env struct {
	Here    string
	HasHere bool
	Self    *typeobj.Type
	HasSelf bool
}

// Callbacks lets a Stack drive a load manager without importing it
// (avoiding an import cycle: loadmgr imports term, not the reverse).
type Callbacks struct {
	// ImportParcel stages (or fetches an already-bound) parcel at path.
	// It applies no redirects to path; late resolution rewrites a symbol
	// through its parcel's RedirectSet before the symbol is evaluated.
	ImportParcel func(path string) (*parcel.Parcel, error)
	// LookupType finds localName in p's module-info.
	LookupType func(p *parcel.Parcel, localName string) (*parcel.TypeInfo, bool)
	// Materialize runs type-data generation + early resolution for a
	// non-generic type, or for a fully-applied generic instantiation.
	Materialize func(p *parcel.Parcel, info *parcel.TypeInfo, typeArgs []*typeobj.Type) (*typeobj.Type, error)
}

// Stack is one term-stack interpreter session.
type Stack struct {
	terms     []Term
	env       Env
	cb        Callbacks
	errPrefix string
	err       error
}

// NewStack returns a Stack session with the given environment, callbacks,
// and error-message prefix (used to format diagnostics).
func NewStack(env Env, cb Callbacks, errPrefix string) *Stack {
	return &Stack{env: env, cb: cb, errPrefix: errPrefix}
}

// Err returns the first error recorded by any op in this session, if any.
func (s *Stack) Err() error { return s.err }

// Result returns the single remaining term, or the Error term if the
// stack is empty or holds more than one term.
func (s *Stack) Result() Term {
	if len(s.terms) != 1 {
		return errTerm()
	}
	return s.terms[0]
}

// Fail records a session error if none is recorded yet (exported for
// Driver's SyntaxErr).
func (s *Stack) Fail(format string, args ...any) {
	s.fail(format, args...)
}

func (s *Stack) fail(format string, args ...any) {
	if s.err == nil {
		s.err = errors.New(errors.IllegalSpecifier, s.errPrefix+": "+format, args...)
	}
}

func (s *Stack) push(t Term) { s.terms = append(s.terms, t) }

func (s *Stack) pop() Term {
	if len(s.terms) == 0 {
		return errTerm()
	}
	n := len(s.terms) - 1
	t := s.terms[n]
	s.terms = s.terms[:n]
	return t
}

func (s *Stack) top() Term {
	if len(s.terms) == 0 {
		return errTerm()
	}
	return s.terms[len(s.terms)-1]
}

// Root pushes a plain identifier as a root path.
func (s *Stack) Root(id string) {
	s.push(pathTerm(id))
}

// Here pushes the environment's `%here` parcel path.
func (s *Stack) Here() {
	if !s.env.HasHere {
		s.fail("%%here has no value in this environment")
		s.push(errTerm())
		return
	}
	s.push(pathTerm(s.env.Here))
}

// Self pushes the environment's `$Self` type.
func (s *Stack) Self() {
	if !s.env.HasSelf {
		s.fail("$Self has no value in this environment")
		s.push(errTerm())
		return
	}
	s.push(concreteTerm(s.env.Self))
}

// TypeParam pushes the type bound to `$id` on the environment's self type.
func (s *Stack) TypeParam(id string) {
	if !s.env.HasSelf {
		s.fail("$%s has no value in this environment", id)
		s.push(errTerm())
		return
	}
	self := s.env.Self
	for i, tp := range self.Info.TypeParams {
		if tp.Name == id && i < len(self.TypeArgs) {
			s.push(concreteTerm(self.TypeArgs[i]))
			return
		}
	}
	s.fail("no type parameter named %q on %s", id, self.Fullname())
	s.push(errTerm())
}

// Subdir extends the top Path term with a "/"-separated segment.
func (s *Stack) Subdir(id string) {
	top := s.pop()
	if top.IsError() {
		s.push(top)
		return
	}
	if top.Kind != KPath {
		s.fail("'/' requires a path on the stack")
		s.push(errTerm())
		return
	}
	s.push(pathTerm(top.Path + "/" + id))
}

// ImportParcel stages the parcel named by the top Path term, leaving the
// path unchanged on the stack.
func (s *Stack) ImportParcel() {
	top := s.top()
	if top.IsError() {
		return
	}
	if top.Kind != KPath {
		s.pop()
		s.fail("import requires a path on the stack")
		s.push(errTerm())
		return
	}
	if _, err := s.cb.ImportParcel(top.Path); err != nil {
		s.pop()
		s.fail("importing %q: %v", top.Path, err)
		s.push(errTerm())
	}
}

// TypeInParcel imports the parcel named by the top Path term and looks up
// id in its module, pushing Generic or Concrete as appropriate.
func (s *Stack) TypeInParcel(id string) {
	top := s.pop()
	if top.IsError() {
		s.push(top)
		return
	}
	if top.Kind != KPath {
		s.fail("':' requires a path on the stack")
		s.push(errTerm())
		return
	}
	p, err := s.cb.ImportParcel(top.Path)
	if err != nil {
		s.fail("importing %q: %v", top.Path, err)
		s.push(errTerm())
		return
	}
	info, ok := s.cb.LookupType(p, id)
	if !ok {
		s.fail("no type named %q in parcel %q", id, top.Path)
		s.push(errTerm())
		return
	}
	if info.IsGeneric() {
		s.push(genericTerm(p, info, top.Path+":"+id))
		return
	}
	ty, err := s.cb.Materialize(p, info, nil)
	if err != nil {
		s.fail("materializing %q: %v", top.Path+":"+id, err)
		s.push(errTerm())
		return
	}
	s.push(concreteTerm(ty))
}

// Member resolves member id on the top Concrete (owner) term.
func (s *Stack) Member(id string) {
	top := s.pop()
	if top.IsError() {
		s.push(top)
		return
	}
	if top.Kind != KConcrete {
		s.fail("'::' requires a concrete type on the stack")
		s.push(errTerm())
		return
	}
	owner := top.Type
	if owner.IsMember() {
		s.fail("%s is itself a member and cannot have members", owner.Fullname())
		s.push(errTerm())
		return
	}
	if member, ok := owner.MemberByName(id); ok {
		s.push(concreteTerm(member))
		return
	}
	s.fail("%s has no member named %q", owner.Fullname(), id)
	s.push(errTerm())
}

// BeginArgs marks the top term as awaiting a generic argument list.
func (s *Stack) BeginArgs() {
	if len(s.terms) == 0 {
		s.fail("'[' requires a type on the stack")
		s.push(errTerm())
		return
	}
	s.terms[len(s.terms)-1].Awaiting = true
}

// EndArgs pops the marked Generic term and every arg above it, validates
// the argument list, and pushes the concrete instantiation.
func (s *Stack) EndArgs() {
	markIdx := -1
	for i := len(s.terms) - 1; i >= 0; i-- {
		if s.terms[i].Awaiting {
			markIdx = i
			break
		}
	}
	if markIdx < 0 {
		s.fail("']' with no matching '['")
		s.push(errTerm())
		return
	}
	gen := s.terms[markIdx]
	args := append([]Term(nil), s.terms[markIdx+1:]...)
	s.terms = s.terms[:markIdx]

	if gen.IsError() {
		s.push(errTerm())
		return
	}
	if gen.Kind != KGeneric {
		s.fail("'[...]' requires a generic type")
		s.push(errTerm())
		return
	}
	if len(args) != len(gen.Info.TypeParams) {
		s.fail("%s expects %d type argument(s), got %d", gen.Path, len(gen.Info.TypeParams), len(args))
		s.push(errTerm())
		return
	}
	typeArgs := make([]*typeobj.Type, len(args))
	for i, a := range args {
		if a.IsError() {
			s.push(errTerm())
			return
		}
		if a.Kind != KConcrete {
			s.fail("type argument %d of %s must be concrete, not %s", i, gen.Path, a.Kind)
			s.push(errTerm())
			return
		}
		typeArgs[i] = a.Type
	}
	ty, err := s.cb.Materialize(gen.Parcel, gen.Info, typeArgs)
	if err != nil {
		s.fail("materializing %s[...]: %v", gen.Path, err)
		s.push(errTerm())
		return
	}
	s.push(concreteTerm(ty))
}
