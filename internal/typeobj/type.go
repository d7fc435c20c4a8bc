// Package typeobj implements the materialized runtime type: a Parcel's
// TypeInfo instantiated with type-arguments (if generic) and a resolved
// constants array parallel to its ConstTableInfo.
package typeobj

import (
	"strings"

	"github.com/tirous-coded/yama/internal/parcel"
)

// Type is the materialized runtime type object. Once committed to a
// domain's Area, a Type is immutable: its Resolved array is frozen
// before publication.
type Type struct {
	Parcel   *parcel.Parcel
	Info     *parcel.TypeInfo
	TypeArgs []*Type // concrete generic instantiation arguments, if any
	Owner    *Type   // back-reference for member types; nil for owners
	Resolved []ResolvedConst

	fullname string
	hasName  bool
}

// New constructs an un-resolved Type object: Resolved is pre-sized to
// exactly Info's constant table length, but every slot starts
// RUnresolved.
func New(p *parcel.Parcel, info *parcel.TypeInfo, typeArgs []*Type, owner *Type) *Type {
	resolved := make([]ResolvedConst, info.Consts.Len())
	for i := range resolved {
		resolved[i].Kind = RUnresolved
	}
	return &Type{
		Parcel:   p,
		Info:     info,
		TypeArgs: typeArgs,
		Owner:    owner,
		Resolved: resolved,
	}
}

// IsGeneric reports whether this type is a concrete generic instantiation.
func (t *Type) IsGeneric() bool { return len(t.TypeArgs) > 0 }

// IsMember reports whether this type is a member of an owner type.
func (t *Type) IsMember() bool { return t.Owner != nil }

// SelfType returns the type that `$Self` resolves to when resolving
// constants local to t: for an owner, itself; for a member, its owner.
func (t *Type) SelfType() *Type {
	if t.Owner != nil {
		return t.Owner
	}
	return t
}

// memberLocalName returns the unqualified member name (the part of
// Info.LocalName after the last "::"), or the whole LocalName if it has
// no "::".
func (t *Type) memberLocalName() string {
	name := t.Info.LocalName
	idx := strings.LastIndex(name, "::")
	if idx < 0 {
		return name
	}
	return name[idx+2:]
}

// Fullname computes (and caches) the canonical, fully-substituted
// specifier naming this type: path, colon, owner name, optional
// bracketed type-argument pack, optional "::Member" extension.
func (t *Type) Fullname() string {
	if t.hasName {
		return t.fullname
	}
	var b strings.Builder
	if t.Owner != nil {
		b.WriteString(t.Owner.Fullname())
		b.WriteString("::")
		b.WriteString(t.memberLocalName())
	} else {
		b.WriteString(t.Parcel.Path)
		b.WriteString(":")
		b.WriteString(t.Info.LocalName)
		if t.IsGeneric() {
			b.WriteString("[")
			for i, a := range t.TypeArgs {
				if i > 0 {
					b.WriteString(",")
				}
				b.WriteString(a.Fullname())
			}
			b.WriteString("]")
		}
	}
	t.fullname = b.String()
	t.hasName = true
	return t.fullname
}

// Name implements area.Named so a *Type can live in an Area[Named].
func (t *Type) Name() string { return t.Fullname() }

// MemberByName resolves the member of t with the given unqualified local
// name, scanning t's resolved-constants array for the RType member whose
// own local name (after its last "::") matches.
func (t *Type) MemberByName(name string) (*Type, bool) {
	for _, idx := range t.Info.Members {
		rc := t.Resolved[idx]
		if rc.Kind == RType && rc.Type != nil && rc.Type.memberLocalName() == name {
			return rc.Type, true
		}
	}
	return nil, false
}

// Equal reports type identity by fullname comparison: two Type objects
// compare equal iff their fullnames compare equal.
func (t *Type) Equal(o *Type) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.Fullname() == o.Fullname()
}

// CallSig describes a callable type's parameter and return type fullnames,
// resolved from its TypeInfo.CallSig constant indices.
type CallSig struct {
	Params []string
	Return string
}

// ResolvedCallSig returns t's call signature with every constant-index
// resolved to its Type's fullname, or ok=false if t is not callable.
func (t *Type) ResolvedCallSig() (CallSig, bool) {
	if t.Info.CallSig == nil {
		return CallSig{}, false
	}
	sig := CallSig{Params: make([]string, len(t.Info.CallSig.ParamConsts))}
	for i, idx := range t.Info.CallSig.ParamConsts {
		if t.Resolved[idx].Type != nil {
			sig.Params[i] = t.Resolved[idx].Type.Fullname()
		}
	}
	if rt := t.Resolved[t.Info.CallSig.ReturnConst].Type; rt != nil {
		sig.Return = rt.Fullname()
	}
	return sig, true
}
