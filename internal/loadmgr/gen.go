package loadmgr

import (
	"regexp"
	"strings"

	"github.com/tirous-coded/yama/internal/errors"
	"github.com/tirous-coded/yama/internal/parcel"
	"github.com/tirous-coded/yama/internal/specifier"
	"github.com/tirous-coded/yama/internal/typeobj"
)

// selfForm matches a ref-constant symbol of the form "$Self" or
// "$Self::Member" with no further path/type syntax after it, the signal
// that the constant is early-resolvable.
var selfForm = regexp.MustCompile(`^\$Self(::([^\[\]:/]+))?$`)

// materializeOwner is the term.Callbacks.Materialize implementation:
// generates (or fetches the already-staged) Type data for a non-member
// type.
func (s *session) materializeOwner(p *parcel.Parcel, info *parcel.TypeInfo, typeArgs []*typeobj.Type) (*typeobj.Type, error) {
	return s.genTypeData(p, info, typeArgs, nil), nil
}

// genTypeData materializes one type: dedup-by-fullname,
// stage before resolving, enqueue for late resolution, generate member
// type data (owners only), then run early resolution: first over any
// newly generated members, then over the type itself (so "$Self::Member"
// references on the owner can find already-staged siblings).
func (s *session) genTypeData(p *parcel.Parcel, info *parcel.TypeInfo, typeArgs []*typeobj.Type, owner *typeobj.Type) *typeobj.Type {
	candidate := typeobj.New(p, info, typeArgs, owner)
	fullname := candidate.Fullname()

	if existing, ok := s.stagingTypes.Fetch(fullname, false); ok {
		return existing
	}
	if err := s.stagingTypes.Push(candidate); err != nil {
		s.fail(errors.InternalError, "staging %q: %v", fullname, err)
		return candidate
	}
	s.lateQueue = append(s.lateQueue, candidate)

	var members []*typeobj.Type
	if info.IsOwner() {
		members = s.genMemberTypeData(p, info, candidate)
	}
	for _, m := range members {
		s.earlyResolveConsts(m)
	}
	if owner == nil {
		s.earlyResolveConsts(candidate) // members are resolved by their owner's loop above
	}
	return candidate
}

// genMemberTypeData generates Type data for every member of owner
// registered in p's module under the "OwnerLocalName::Member" naming
// convention, pushing each to staging and enqueuing it for late
// resolution, but deferring their own early resolution to the caller
// (so all siblings exist before any of them resolve "$Self::Sibling").
func (s *session) genMemberTypeData(p *parcel.Parcel, ownerInfo *parcel.TypeInfo, owner *typeobj.Type) []*typeobj.Type {
	prefix := ownerInfo.LocalName + "::"
	var members []*typeobj.Type
	for _, name := range p.Module.Names() {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		suffix := name[len(prefix):]
		if strings.Contains(suffix, "::") {
			continue // not an immediate member
		}
		memberInfo, _ := p.Module.ByName(name)
		memberType := s.genTypeData(p, memberInfo, nil, owner)
		members = append(members, memberType)
		bindOwnerMemberSlot(owner, suffix, memberType)
	}
	return members
}

// bindOwnerMemberSlot resolves owner's "$Self::suffix" ref-constant slot
// (if any, among its declared Members indices) to memberType, ahead of
// the generic early-resolution pass.
func bindOwnerMemberSlot(owner *typeobj.Type, suffix string, memberType *typeobj.Type) {
	for _, idx := range owner.Info.Members {
		entry := owner.Info.Consts.At(idx)
		if entry.Kind != parcel.ConstRefSym {
			continue
		}
		if m := selfForm.FindStringSubmatch(entry.RefSym); m != nil && m[2] == suffix {
			owner.Resolved[idx] = typeobj.ResolvedConst{Kind: typeobj.RType, Type: memberType}
			return
		}
	}
}

// earlyResolveConsts runs the early-resolution pass over t's own constant
// table: scalar slots copy their value directly; "$Self"/"$Self::Member"
// ref-constants resolve via t.SelfType(); everything else is left
// RUnresolved for late resolution.
func (s *session) earlyResolveConsts(t *typeobj.Type) {
	self := t.SelfType()
	for i := 0; i < t.Info.Consts.Len(); i++ {
		if t.Resolved[i].Kind == typeobj.RType {
			continue // already bound by bindOwnerMemberSlot
		}
		entry := t.Info.Consts.At(i)
		switch entry.Kind {
		case parcel.ConstInt:
			t.Resolved[i] = typeobj.ResolvedConst{Kind: typeobj.RInt, Int: entry.Int}
		case parcel.ConstUInt:
			t.Resolved[i] = typeobj.ResolvedConst{Kind: typeobj.RUInt, UInt: entry.UInt}
		case parcel.ConstFloat:
			t.Resolved[i] = typeobj.ResolvedConst{Kind: typeobj.RFloat, Float: entry.Float}
		case parcel.ConstBool:
			t.Resolved[i] = typeobj.ResolvedConst{Kind: typeobj.RBool, Bool: entry.Bool}
		case parcel.ConstRune:
			t.Resolved[i] = typeobj.ResolvedConst{Kind: typeobj.RRune, Rune: entry.Rune}
		case parcel.ConstRefSym:
			s.earlyResolveRefSym(t, i, entry.RefSym, self)
		}
	}
}

func (s *session) earlyResolveRefSym(t *typeobj.Type, idx int, raw string, self *typeobj.Type) {
	base, callSuff, hasCallSuff := specifier.SplitCallSuffix(raw)
	m := selfForm.FindStringSubmatch(base)
	if m == nil {
		return // not an early-resolvable form; left RUnresolved for late resolution
	}
	var target *typeobj.Type
	if m[1] == "" {
		target = self
	} else {
		fullname := self.Fullname() + "::" + m[2]
		found, ok := s.stagingTypes.Fetch(fullname, false)
		if !ok {
			s.fail(errors.InternalError, "early resolution: %q not yet staged", fullname)
			return
		}
		target = found
	}
	rc := typeobj.ResolvedConst{Kind: typeobj.RType, Type: target}
	if hasCallSuff {
		rc.CallSuff = callSuff
	}
	t.Resolved[idx] = rc
}
