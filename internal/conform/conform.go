// Package conform implements the structural conformance check: whether
// a Type conforms to a Protocol, with $Self-aware member type matching,
// memoized per (X,P) pair.
package conform

import (
	"strings"
	"sync"

	"github.com/tirous-coded/yama/internal/parcel"
	"github.com/tirous-coded/yama/internal/specifier"
	"github.com/tirous-coded/yama/internal/typeobj"
)

// Checker memoizes conformance verdicts per (X,P) pair in a string-keyed
// cache, guarded by a mutex since a Checker is shared across a Domain's
// concurrent load sessions.
type Checker struct {
	mu    sync.Mutex
	cache map[string]bool
}

// New returns an empty Checker.
func New() *Checker {
	return &Checker{cache: make(map[string]bool)}
}

// Conforms reports whether x conforms to protocol p: for every member M
// of p, x must have a member of the same local name
// whose return type and parameter types match M's, with any "$Self" in
// M's symbol text substituted with x.SelfType() before comparison.
func (c *Checker) Conforms(x, p *typeobj.Type) bool {
	key := x.Fullname() + ":" + p.Fullname()

	c.mu.Lock()
	if v, ok := c.cache[key]; ok {
		c.mu.Unlock()
		return v
	}
	c.mu.Unlock()

	result := c.conformsUncached(x, p)

	c.mu.Lock()
	c.cache[key] = result
	c.mu.Unlock()

	return result
}

func (c *Checker) conformsUncached(x, p *typeobj.Type) bool {
	for _, idx := range p.Info.Members {
		rc := p.Resolved[idx]
		if rc.Kind != typeobj.RType || rc.Type == nil {
			continue
		}
		method := rc.Type
		name := method.Info.LocalName
		if i := strings.LastIndex(name, "::"); i >= 0 {
			name = name[i+2:]
		}
		xMethod, ok := x.MemberByName(name)
		if !ok {
			return false
		}
		if !callSigConforms(x, method, xMethod) {
			return false
		}
	}
	return true
}

// callSigConforms checks that candidate's call signature matches want's,
// where want belongs to the protocol side (its unresolved symbol text may
// reference $Self) and candidate belongs to x's side.
func callSigConforms(x, want, candidate *typeobj.Type) bool {
	if want.Info.CallSig == nil || candidate.Info.CallSig == nil {
		return want.Info.CallSig == nil && candidate.Info.CallSig == nil
	}
	wantParams := want.Info.CallSig.ParamConsts
	candParams := candidate.Info.CallSig.ParamConsts
	if len(wantParams) != len(candParams) {
		return false
	}
	for i, wIdx := range wantParams {
		if !symbolMatches(x, want, wIdx, candidate, candParams[i]) {
			return false
		}
	}
	return symbolMatches(x, want, want.Info.CallSig.ReturnConst, candidate, candidate.Info.CallSig.ReturnConst)
}

// symbolMatches compares want's raw symbol text (constant wIdx in want's
// own constant table) against candidate's resolved type (constant cIdx in
// candidate's own constant table), applying $Self substitution to want's
// side first when its text contains "$Self".
func symbolMatches(x, want *typeobj.Type, wIdx int, candidate *typeobj.Type, cIdx int) bool {
	candResolved := candidate.Resolved[cIdx]
	if candResolved.Kind != typeobj.RType || candResolved.Type == nil {
		return false
	}

	wantEntry := want.Info.Consts.At(wIdx)
	if wantEntry.Kind != parcel.ConstRefSym {
		return false
	}

	if strings.Contains(wantEntry.RefSym, "$Self") {
		solved, ok := solveWithSelf(wantEntry.RefSym, x.SelfType())
		if !ok {
			return false
		}
		return solved == candResolved.Type.Fullname()
	}

	wantResolved := want.Resolved[wIdx]
	if wantResolved.Kind != typeobj.RType || wantResolved.Type == nil {
		return false
	}
	return wantResolved.Type.Equal(candResolved.Type)
}

// solveWithSelf re-solves a protocol member's raw symbol text with $Self
// bound to self, returning its resolved fullname.
func solveWithSelf(raw string, self *typeobj.Type) (string, bool) {
	env := specifier.Env{Self: self.Fullname(), HasSelf: true}
	s := specifier.NewSolver(env)
	spec, err := s.Solve(raw, specifier.MustBeType)
	if err != nil {
		return "", false
	}
	return spec.String(), true
}
