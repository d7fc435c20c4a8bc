package conform

import (
	"testing"

	"github.com/tirous-coded/yama/internal/parcel"
	"github.com/tirous-coded/yama/internal/typeobj"
)

// buildOwner constructs a non-generic owner Type with a single member
// method of the given local name, whose call signature has no parameters
// and a return-type constant built from retRefSym (and, if retResolved is
// non-nil, that constant's Resolved slot set to point at it, simulating
// a member that has already undergone early resolution).
func buildOwner(p *parcel.Parcel, ownerName, methodName, retRefSym string, retResolved *typeobj.Type) *typeobj.Type {
	methodInfo := &parcel.TypeInfo{
		LocalName: ownerName + "::" + methodName,
		Kind:      parcel.Method,
		CallSig:   &parcel.CallSigInfo{ParamConsts: nil, ReturnConst: 0},
		OwnerConst: 0,
	}
	methodInfo.Consts.Add(parcel.ConstEntry{Kind: parcel.ConstRefSym, RefSym: retRefSym})

	ownerInfo := &parcel.TypeInfo{
		LocalName:  ownerName,
		Kind:       parcel.Struct,
		OwnerConst: -1,
		Members:    []int{0},
	}
	memberConstIdx := ownerInfo.Consts.Add(parcel.ConstEntry{Kind: parcel.ConstRefSym, RefSym: ownerName + "::" + methodName})
	if memberConstIdx != 0 {
		panic("expected member const at index 0")
	}

	owner := typeobj.New(p, ownerInfo, nil, nil)
	method := typeobj.New(p, methodInfo, nil, owner)
	if retResolved != nil {
		method.Resolved[0] = typeobj.ResolvedConst{Kind: typeobj.RType, Type: retResolved}
	}
	owner.Resolved[0] = typeobj.ResolvedConst{Kind: typeobj.RType, Type: method}
	return owner
}

func buildProtocol(p *parcel.Parcel, protoName, methodName string) *typeobj.Type {
	return buildOwner(p, protoName, methodName, "$Self", nil)
}

func newParcel() *parcel.Parcel {
	return parcel.New("dep", parcel.NewModuleInfo(), parcel.Metadata{}, nil)
}

func TestConformsWhenCloneReturnsSelf(t *testing.T) {
	p := newParcel()
	proto := buildProtocol(p, "Cloneable", "clone")

	x := buildOwner(p, "S", "clone", "dep:S", nil)
	// clone's declared return type is S itself; patch the self-reference
	// in now that x exists.
	method, _ := x.MemberByName("clone")
	method.Resolved[0] = typeobj.ResolvedConst{Kind: typeobj.RType, Type: x}

	c := New()
	if !c.Conforms(x, proto) {
		t.Error("expected S to conform to Cloneable (clone returns S == $Self)")
	}
}

func TestDoesNotConformWhenCloneReturnsOtherType(t *testing.T) {
	p := newParcel()
	proto := buildProtocol(p, "Cloneable", "clone")

	intInfo := &parcel.TypeInfo{LocalName: "Int", Kind: parcel.Primitive, OwnerConst: -1}
	intTy := typeobj.New(p, intInfo, nil, nil)

	x := buildOwner(p, "T", "clone", "dep:Int", intTy)

	c := New()
	if c.Conforms(x, proto) {
		t.Error("expected T to NOT conform to Cloneable (clone returns Int, not $Self)")
	}
}

func TestDoesNotConformWhenMemberMissing(t *testing.T) {
	p := newParcel()
	proto := buildProtocol(p, "Cloneable", "clone")

	emptyInfo := &parcel.TypeInfo{LocalName: "Empty", Kind: parcel.Struct, OwnerConst: -1}
	empty := typeobj.New(p, emptyInfo, nil, nil)

	c := New()
	if c.Conforms(empty, proto) {
		t.Error("expected Empty to NOT conform (no clone member at all)")
	}
}

func TestConformsIsMemoized(t *testing.T) {
	p := newParcel()
	proto := buildProtocol(p, "Cloneable", "clone")
	x := buildOwner(p, "S", "clone", "dep:S", nil)
	method, _ := x.MemberByName("clone")
	method.Resolved[0] = typeobj.ResolvedConst{Kind: typeobj.RType, Type: x}

	c := New()
	first := c.Conforms(x, proto)
	key := x.Fullname() + ":" + proto.Fullname()
	if _, ok := c.cache[key]; !ok {
		t.Fatal("expected cache entry after first Conforms call")
	}
	second := c.Conforms(x, proto)
	if first != second {
		t.Error("memoized result should match first computed result")
	}
}
