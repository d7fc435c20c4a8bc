package term

import (
	"fmt"
	"testing"

	"github.com/tirous-coded/yama/internal/parcel"
	"github.com/tirous-coded/yama/internal/typeobj"
)

// fixture builds a tiny closed world: parcel "dep" with a non-generic
// struct "Foo" (no members) and a generic struct "Box" with one type
// parameter "T", plus parcel "yama" with primitive "Int".
type fixture struct {
	dep  *parcel.Parcel
	yama *parcel.Parcel
}

func newFixture() *fixture {
	depMod := parcel.NewModuleInfo()
	fooInfo := &parcel.TypeInfo{LocalName: "Foo", Kind: parcel.Struct, OwnerConst: -1}
	depMod.Add(fooInfo)
	boxInfo := &parcel.TypeInfo{
		LocalName:  "Box",
		Kind:       parcel.Struct,
		OwnerConst: -1,
		TypeParams: []parcel.TypeParamInfo{{Name: "T", ConstraintConst: -1}},
	}
	depMod.Add(boxInfo)
	dep := parcel.New("dep", depMod, parcel.Metadata{SelfName: "self"}, nil)

	yamaMod := parcel.NewModuleInfo()
	yamaMod.Add(&parcel.TypeInfo{LocalName: "Int", Kind: parcel.Primitive, OwnerConst: -1})
	yama := parcel.New("yama", yamaMod, parcel.Metadata{SelfName: "self"}, nil)

	return &fixture{dep: dep, yama: yama}
}

func (f *fixture) callbacks() Callbacks {
	parcels := map[string]*parcel.Parcel{"dep": f.dep, "yama": f.yama, "self": f.dep}
	return Callbacks{
		ImportParcel: func(path string) (*parcel.Parcel, error) {
			if p, ok := parcels[path]; ok {
				return p, nil
			}
			return nil, fmt.Errorf("no such parcel %q", path)
		},
		LookupType: func(p *parcel.Parcel, localName string) (*parcel.TypeInfo, bool) {
			return p.Module.ByName(localName)
		},
		Materialize: func(p *parcel.Parcel, info *parcel.TypeInfo, typeArgs []*typeobj.Type) (*typeobj.Type, error) {
			return typeobj.New(p, info, typeArgs, nil), nil
		},
	}
}

func TestDriverPlainPath(t *testing.T) {
	f := newFixture()
	stack := NewStack(Env{}, f.callbacks(), "test")
	d := NewDriver(stack)
	result := d.Eval("dep")
	if result.Kind != KPath || result.Path != "dep" {
		t.Errorf("got %+v, want Path(dep)", result)
	}
}

func TestDriverConcreteType(t *testing.T) {
	f := newFixture()
	stack := NewStack(Env{}, f.callbacks(), "test")
	d := NewDriver(stack)
	result := d.Eval("dep:Foo")
	if result.Kind != KConcrete {
		t.Fatalf("got %+v, want Concrete", result)
	}
	if result.Type.Fullname() != "dep:Foo" {
		t.Errorf("fullname = %q, want dep:Foo", result.Type.Fullname())
	}
}

func TestDriverGenericInstantiation(t *testing.T) {
	f := newFixture()
	stack := NewStack(Env{}, f.callbacks(), "test")
	d := NewDriver(stack)
	result := d.Eval("dep:Box[dep:Foo]")
	if result.Kind != KConcrete {
		t.Fatalf("got %+v, want Concrete", result)
	}
	if result.Type.Fullname() != "dep:Box[dep:Foo]" {
		t.Errorf("fullname = %q, want dep:Box[dep:Foo]", result.Type.Fullname())
	}
}

func TestDriverGenericArgCountMismatch(t *testing.T) {
	f := newFixture()
	stack := NewStack(Env{}, f.callbacks(), "test")
	d := NewDriver(stack)
	result := d.Eval("dep:Box[dep:Foo,dep:Foo]")
	if result.Kind != KError {
		t.Errorf("got %+v, want Error (arg count mismatch)", result)
	}
	if stack.Err() == nil {
		t.Error("expected stack.Err() to be set")
	}
}

func TestDriverUnknownTypeFails(t *testing.T) {
	f := newFixture()
	stack := NewStack(Env{}, f.callbacks(), "test")
	d := NewDriver(stack)
	result := d.Eval("dep:Nonexistent")
	if result.Kind != KError {
		t.Errorf("got %+v, want Error", result)
	}
}

func TestDriverHereAndSelf(t *testing.T) {
	f := newFixture()
	selfTy := typeobj.New(f.dep, &parcel.TypeInfo{LocalName: "Foo", OwnerConst: -1}, nil, nil)
	env := Env{Here: "dep", HasHere: true, Self: selfTy, HasSelf: true}
	stack := NewStack(env, f.callbacks(), "test")
	d := NewDriver(stack)

	if r := d.Eval("%here"); r.Kind != KPath || r.Path != "dep" {
		t.Errorf("%%here: got %+v", r)
	}

	stack2 := NewStack(env, f.callbacks(), "test")
	d2 := NewDriver(stack2)
	if r := d2.Eval("$Self"); r.Kind != KConcrete || !r.Type.Equal(selfTy) {
		t.Errorf("$Self: got %+v", r)
	}
}

func TestStackImportParcelStagesTopPath(t *testing.T) {
	f := newFixture()
	var imported []string
	cb := f.callbacks()
	inner := cb.ImportParcel
	cb.ImportParcel = func(path string) (*parcel.Parcel, error) {
		imported = append(imported, path)
		return inner(path)
	}

	stack := NewStack(Env{}, cb, "test")
	d := NewDriver(stack)
	result := d.Eval("dep")
	if result.Kind != KPath {
		t.Fatalf("result = %v, want Path", result.Kind)
	}

	stack.ImportParcel()
	if stack.Err() != nil {
		t.Fatalf("ImportParcel: %v", stack.Err())
	}
	if len(imported) != 1 || imported[0] != "dep" {
		t.Errorf("imported = %v, want [dep]", imported)
	}
	// The path term stays on the stack, unchanged.
	if got := stack.Result(); got.Kind != KPath || got.Path != "dep" {
		t.Errorf("Result() = %+v, want Path(dep)", got)
	}
}

func TestStackImportParcelUnknownPathFails(t *testing.T) {
	f := newFixture()
	stack := NewStack(Env{}, f.callbacks(), "test")
	d := NewDriver(stack)
	d.Eval("nosuch")

	stack.ImportParcel()
	if stack.Err() == nil {
		t.Fatal("expected error importing an unbound path")
	}
	if got := stack.Result(); !got.IsError() {
		t.Errorf("Result() = %+v, want the Error term", got)
	}
}
