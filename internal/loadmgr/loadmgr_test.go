package loadmgr

import (
	"testing"

	"github.com/tirous-coded/yama/internal/area"
	"github.com/tirous-coded/yama/internal/conform"
	"github.com/tirous-coded/yama/internal/parcel"
	"github.com/tirous-coded/yama/internal/redirects"
	"github.com/tirous-coded/yama/internal/typeobj"
)

// harness bundles a Manager with its persistent commit areas and a
// bindings table, for constructing small closed-world fixtures.
type harness struct {
	mgr           *Manager
	bindings      map[string]*parcel.Parcel
	commitParcels *area.Area[*parcel.Parcel]
	commitTypes   *area.Area[*typeobj.Type]
}

func newHarness() *harness {
	h := &harness{bindings: make(map[string]*parcel.Parcel)}
	h.commitParcels = area.New[*parcel.Parcel]()
	h.commitTypes = area.New[*typeobj.Type]()
	binder := BinderFunc(func(path string) (*parcel.Parcel, bool) {
		p, ok := h.bindings[path]
		return p, ok
	})
	h.mgr = New(h.commitParcels, h.commitTypes, binder, conform.New())
	return h
}

func (h *harness) bind(path string, module *parcel.ModuleInfo) *parcel.Parcel {
	p := parcel.New(path, module, parcel.Metadata{}, &redirects.RedirectSet{})
	h.bindings[path] = p
	return p
}

func TestImportBindsAndStagesParcel(t *testing.T) {
	h := newHarness()
	h.bind("dep", parcel.NewModuleInfo())

	p, err := h.mgr.Import("dep")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if p.Path != "dep" {
		t.Errorf("p.Path = %q, want dep", p.Path)
	}

	// Re-importing should find it already committed upstream.
	p2, err := h.mgr.Import("dep")
	if err != nil {
		t.Fatalf("second Import: %v", err)
	}
	if p2 != p {
		t.Error("expected the same *parcel.Parcel instance on re-import")
	}
}

func TestImportUnknownParcelFails(t *testing.T) {
	h := newHarness()
	if _, err := h.mgr.Import("nosuch"); err == nil {
		t.Error("expected error importing an unbound parcel")
	}
}

func TestLoadSimpleStruct(t *testing.T) {
	h := newHarness()
	mod := parcel.NewModuleInfo()
	mod.Add(&parcel.TypeInfo{LocalName: "Foo", Kind: parcel.Struct, OwnerConst: -1})
	h.bind("dep", mod)

	ty, err := h.mgr.Load("dep:Foo")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ty.Fullname() != "dep:Foo" {
		t.Errorf("Fullname() = %q, want dep:Foo", ty.Fullname())
	}
}

func TestLoadUnknownTypeFails(t *testing.T) {
	h := newHarness()
	h.bind("dep", parcel.NewModuleInfo())
	if _, err := h.mgr.Load("dep:Nope"); err == nil {
		t.Error("expected error loading an undeclared type")
	}
}

// buildGenericFixture registers a trivially-satisfiable protocol "Anything" (no
// members, so every type conforms to it) plus a generic struct "Box"
// with one type parameter T constrained by "dep:Anything", and a
// concrete struct "Foo" to instantiate Box with.
func buildGenericFixture(mod *parcel.ModuleInfo) {
	mod.Add(&parcel.TypeInfo{LocalName: "Anything", Kind: parcel.Protocol, OwnerConst: -1})
	mod.Add(&parcel.TypeInfo{LocalName: "Foo", Kind: parcel.Struct, OwnerConst: -1})

	boxInfo := &parcel.TypeInfo{LocalName: "Box", Kind: parcel.Struct, OwnerConst: -1}
	constraintIdx := boxInfo.Consts.Add(parcel.ConstEntry{Kind: parcel.ConstRefSym, RefSym: "dep:Anything"})
	boxInfo.TypeParams = []parcel.TypeParamInfo{{Name: "T", ConstraintConst: constraintIdx}}
	mod.Add(boxInfo)
}

func TestLoadGenericInstantiation(t *testing.T) {
	h := newHarness()
	mod := parcel.NewModuleInfo()
	buildGenericFixture(mod)
	h.bind("dep", mod)

	ty, err := h.mgr.Load("dep:Box[dep:Foo]")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ty.Fullname() != "dep:Box[dep:Foo]" {
		t.Errorf("Fullname() = %q, want dep:Box[dep:Foo]", ty.Fullname())
	}
}

func TestConstraintLegalityRejectsNonProtocolConstraint(t *testing.T) {
	h := newHarness()
	mod := parcel.NewModuleInfo()
	mod.Add(&parcel.TypeInfo{LocalName: "Foo", Kind: parcel.Struct, OwnerConst: -1})

	boxInfo := &parcel.TypeInfo{LocalName: "Box", Kind: parcel.Struct, OwnerConst: -1}
	constraintIdx := boxInfo.Consts.Add(parcel.ConstEntry{Kind: parcel.ConstRefSym, RefSym: "dep:Foo"})
	boxInfo.TypeParams = []parcel.TypeParamInfo{{Name: "T", ConstraintConst: constraintIdx}}
	mod.Add(boxInfo)
	h.bind("dep", mod)

	if _, err := h.mgr.Load("dep:Box[dep:Foo]"); err == nil {
		t.Error("expected IllegalConstraint error: Foo is a Struct, not a Protocol")
	}
}

func TestConstraintEnforcementRejectsNonConformingArg(t *testing.T) {
	h := newHarness()
	mod := parcel.NewModuleInfo()

	// Cloneable protocol with one method "clone(self) -> $Self".
	cloneableInfo := &parcel.TypeInfo{LocalName: "Cloneable", Kind: parcel.Protocol, OwnerConst: -1}
	cloneMethodInfo := &parcel.TypeInfo{
		LocalName: "Cloneable::clone",
		Kind:      parcel.Method,
		CallSig:   &parcel.CallSigInfo{ReturnConst: 0},
	}
	cloneMethodInfo.Consts.Add(parcel.ConstEntry{Kind: parcel.ConstRefSym, RefSym: "$Self"})
	memberIdx := cloneableInfo.Consts.Add(parcel.ConstEntry{Kind: parcel.ConstRefSym, RefSym: "$Self::clone"})
	cloneableInfo.Members = []int{memberIdx}
	mod.Add(cloneableInfo)
	mod.Add(cloneMethodInfo)

	// NonCloneable struct with no members at all: does not conform.
	mod.Add(&parcel.TypeInfo{LocalName: "NonCloneable", Kind: parcel.Struct, OwnerConst: -1})

	boxInfo := &parcel.TypeInfo{LocalName: "Box", Kind: parcel.Struct, OwnerConst: -1}
	constraintIdx := boxInfo.Consts.Add(parcel.ConstEntry{Kind: parcel.ConstRefSym, RefSym: "dep:Cloneable"})
	boxInfo.TypeParams = []parcel.TypeParamInfo{{Name: "T", ConstraintConst: constraintIdx}}
	mod.Add(boxInfo)

	h.bind("dep", mod)

	if _, err := h.mgr.Load("dep:Box[dep:NonCloneable]"); err == nil {
		t.Error("expected TypeArgsError: NonCloneable does not conform to Cloneable")
	}
}

func TestLoadResolvesSelfReferencingMember(t *testing.T) {
	h := newHarness()
	mod := parcel.NewModuleInfo()

	sInfo := &parcel.TypeInfo{LocalName: "S", Kind: parcel.Struct, OwnerConst: -1}
	cloneMethodInfo := &parcel.TypeInfo{
		LocalName: "S::clone",
		Kind:      parcel.Method,
		CallSig:   &parcel.CallSigInfo{ReturnConst: 0},
	}
	cloneMethodInfo.Consts.Add(parcel.ConstEntry{Kind: parcel.ConstRefSym, RefSym: "$Self"})
	memberIdx := sInfo.Consts.Add(parcel.ConstEntry{Kind: parcel.ConstRefSym, RefSym: "$Self::clone"})
	sInfo.Members = []int{memberIdx}
	mod.Add(sInfo)
	mod.Add(cloneMethodInfo)
	h.bind("dep", mod)

	s, err := h.mgr.Load("dep:S")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	clone, ok := s.MemberByName("clone")
	if !ok {
		t.Fatal("expected S to have a clone member")
	}
	retType := clone.Resolved[0]
	if retType.Kind != typeobj.RType || retType.Type == nil {
		t.Fatalf("clone's return const not resolved: %+v", retType)
	}
	if !retType.Type.Equal(s) {
		t.Errorf("clone's return type = %s, want %s (self)", retType.Type.Fullname(), s.Fullname())
	}
}
