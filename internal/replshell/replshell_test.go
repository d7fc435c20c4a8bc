package replshell

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tirous-coded/yama/internal/context"
	"github.com/tirous-coded/yama/internal/domain"
	"github.com/tirous-coded/yama/internal/parcel"
)

func TestDispatchImportAndLoad(t *testing.T) {
	d := domain.New()
	ctx := context.New(d)
	mod := parcel.NewModuleInfo()
	mod.Add(&parcel.TypeInfo{LocalName: "Foo", Kind: parcel.Struct, OwnerConst: -1})
	if err := d.BindParcelDef("dep", mod, parcel.Metadata{}); err != nil {
		t.Fatalf("BindParcelDef: %v", err)
	}
	sh := New(d, ctx, func([]byte) (*parcel.ModuleInfo, error) { return nil, nil })

	var out bytes.Buffer
	sh.dispatch([]string{"import", "dep"}, &out)
	if !strings.Contains(out.String(), "imported dep") {
		t.Errorf("output = %q, want mention of imported dep", out.String())
	}

	out.Reset()
	sh.dispatch([]string{"load", "dep:Foo"}, &out)
	if !strings.Contains(out.String(), "loaded dep:Foo") {
		t.Errorf("output = %q, want mention of loaded dep:Foo", out.String())
	}
}

func TestDispatchRedirect(t *testing.T) {
	d := domain.New()
	ctx := context.New(d)
	sh := New(d, ctx, func([]byte) (*parcel.ModuleInfo, error) { return nil, nil })

	var out bytes.Buffer
	sh.dispatch([]string{"redirect", "consumer", "old:Foo", "new:Foo"}, &out)
	if !strings.Contains(out.String(), "redirect added") {
		t.Errorf("output = %q, want confirmation", out.String())
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	d := domain.New()
	ctx := context.New(d)
	sh := New(d, ctx, func([]byte) (*parcel.ModuleInfo, error) { return nil, nil })

	var out bytes.Buffer
	sh.dispatch([]string{"frobnicate"}, &out)
	if !strings.Contains(out.String(), "unknown command") {
		t.Errorf("output = %q, want unknown-command warning", out.String())
	}
}
