package loadmgr

import (
	"regexp"
	"strings"

	"github.com/tirous-coded/yama/internal/errors"
	"github.com/tirous-coded/yama/internal/parcel"
	"github.com/tirous-coded/yama/internal/specifier"
	"github.com/tirous-coded/yama/internal/typeobj"
)

// rootTypeParamRef matches a bare "$Ident" symbol with nothing else
// around it: an immediate reference to a type parameter (or $Self) at
// the specifier's tree root, disallowed as a type parameter's own
// constraint.
var rootTypeParamRef = regexp.MustCompile(`^\$[A-Za-z_][A-Za-z0-9_]*$`)

// runChecks runs the post-resolution checks over every Type staged
// this session.
func (s *session) runChecks() {
	s.checkConstraintTypeLegality()
	s.checkConstraintEnforcement()
	s.checkCallSuffConformance()
}

func (s *session) checkConstraintTypeLegality() {
	for _, t := range s.stagingTypes.Values() {
		for _, tp := range t.Info.TypeParams {
			entry := t.Info.Consts.At(tp.ConstraintConst)
			if entry.Kind != parcel.ConstRefSym {
				s.fail(errors.IllegalConstraint, "type parameter %s's constraint on %s is not a type reference", tp.Name, t.Fullname())
				continue
			}
			base, _, _ := specifier.SplitCallSuffix(entry.RefSym)
			if rootTypeParamRef.MatchString(base) {
				s.fail(errors.IllegalConstraint, "type parameter %s's constraint on %s directly references a type parameter", tp.Name, t.Fullname())
				continue
			}
			resolved := t.Resolved[tp.ConstraintConst]
			if resolved.Kind != typeobj.RType || resolved.Type == nil {
				s.fail(errors.IllegalConstraint, "type parameter %s's constraint on %s did not resolve to a type", tp.Name, t.Fullname())
				continue
			}
			if resolved.Type.Info.Kind != parcel.Protocol {
				s.fail(errors.IllegalConstraint, "type parameter %s's constraint %s on %s is not a protocol", tp.Name, resolved.Type.Fullname(), t.Fullname())
			}
		}
	}
}

func (s *session) checkConstraintEnforcement() {
	for _, t := range s.stagingTypes.Values() {
		if len(t.TypeArgs) == 0 || len(t.TypeArgs) != len(t.Info.TypeParams) {
			continue
		}
		for i, tp := range t.Info.TypeParams {
			constraint := t.Resolved[tp.ConstraintConst]
			if constraint.Kind != typeobj.RType || constraint.Type == nil {
				continue // already reported by checkConstraintTypeLegality
			}
			arg := t.TypeArgs[i]
			if !s.mgr.conform.Conforms(arg, constraint.Type) {
				s.fail(errors.TypeArgsError, "type argument %s does not conform to constraint %s for parameter %s of %s",
					arg.Fullname(), constraint.Type.Fullname(), tp.Name, t.Fullname())
			}
		}
	}
}

// checkCallSuffConformance: for any ref-constant whose
// original symbol carried a call suffix, the resolved Type's own call
// signature must match it textually. The declared suffix's $Self forms
// are normalized with a Solver bound to this Type's self before
// comparison, since conformance here is purely textual (no redirects:
// any redirect rewriting already happened once, upfront, during the
// const's own resolution).
func (s *session) checkCallSuffConformance() {
	for _, t := range s.stagingTypes.Values() {
		for i := 0; i < t.Info.Consts.Len(); i++ {
			rc := t.Resolved[i]
			if rc.CallSuff == "" || rc.Kind != typeobj.RType || rc.Type == nil {
				continue
			}
			entry := t.Info.Consts.At(i)
			sig, ok := rc.Type.ResolvedCallSig()
			if !ok {
				s.fail(errors.NonCallableType, "%s in %s has a call suffix but its resolved type is not callable", entry.RefSym, t.Fullname())
				continue
			}
			expected := formatCallSig(sig)

			env := specifier.Env{Self: t.SelfType().Fullname(), HasSelf: true}
			solved, err := specifier.NewSolver(env).Solve(entry.RefSym, specifier.MustBeEither)
			if err != nil {
				s.fail(errors.IllegalSpecifier, "%v", err)
				continue
			}
			actual, hasSuff := solved.CallSuff()
			if !hasSuff || actual != expected {
				s.fail(errors.TypeArgsError, "%s in %s declares call suffix %s, but resolved type has %s", entry.RefSym, t.Fullname(), actual, expected)
			}
		}
	}
}

func formatCallSig(sig typeobj.CallSig) string {
	return "(" + strings.Join(sig.Params, ", ") + ") -> " + sig.Return
}
