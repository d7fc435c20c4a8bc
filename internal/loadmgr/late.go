package loadmgr

import (
	"github.com/tirous-coded/yama/internal/errors"
	"github.com/tirous-coded/yama/internal/specifier"
	"github.com/tirous-coded/yama/internal/term"
	"github.com/tirous-coded/yama/internal/typeobj"
)

// drainLateResolveQueue processes queued Types FIFO until the queue is
// empty, resolving each unresolved ref-constant slot in turn while the
// session is still healthy. Resolution may itself enqueue further Types
// (newly discovered modules), which are drained before returning; once
// the session has failed the loop keeps popping without resolving, so
// the queue always ends empty.
func (s *session) drainLateResolveQueue() {
	for len(s.lateQueue) > 0 {
		t := s.lateQueue[0]
		s.lateQueue = s.lateQueue[1:]
		if s.diag.Failed() {
			continue
		}
		s.lateResolveType(t)
	}
}

func (s *session) lateResolveType(t *typeobj.Type) {
	for i := 0; i < t.Info.Consts.Len(); i++ {
		if t.Resolved[i].Kind != typeobj.RUnresolved {
			continue
		}
		s.lateResolveRefConst(t, i)
		if s.diag.Failed() {
			return
		}
	}
}

func (s *session) lateResolveRefConst(t *typeobj.Type, idx int) {
	entry := t.Info.Consts.At(idx)

	redirected := t.Parcel.Redirects.Resolve(entry.RefSym)
	base, callSuff, hasCallSuff := specifier.SplitCallSuffix(redirected)

	env := term.Env{Here: t.Parcel.Path, HasHere: true, Self: t.SelfType(), HasSelf: true}
	stack := term.NewStack(env, s.callbacks(), s.errPrefix)
	driver := term.NewDriver(stack)
	result := driver.Eval(base)

	if stack.Err() != nil {
		s.fail(errors.TypeNotFound, "resolving %q in %s: %v", entry.RefSym, t.Fullname(), stack.Err())
		return
	}
	if result.Kind != term.KConcrete {
		s.fail(errors.IllegalSpecifier, "%q in %s does not resolve to a concrete type", entry.RefSym, t.Fullname())
		return
	}

	rc := typeobj.ResolvedConst{Kind: typeobj.RType, Type: result.Type}
	if hasCallSuff {
		rc.CallSuff = callSuff
	}
	t.Resolved[idx] = rc
}
