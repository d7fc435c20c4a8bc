package compile

import (
	"fmt"
	"strings"
	"testing"

	"github.com/tirous-coded/yama/internal/domain"
	"github.com/tirous-coded/yama/internal/parcel"
)

// stubParse builds a Unit whose ModuleInfo has one struct per name in
// src.Text's comma-separated "structs" line and whose Imports are the
// comma-separated "imports" line, a minimal stand-in for a real grammar.
func stubParse(src Source) (*Unit, error) {
	mod := parcel.NewModuleInfo()
	var imports []string
	for _, line := range strings.Split(src.Text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "structs:"):
			for _, name := range strings.Split(strings.TrimPrefix(line, "structs:"), ",") {
				name = strings.TrimSpace(name)
				if name == "" {
					continue
				}
				mod.Add(&parcel.TypeInfo{LocalName: name, Kind: parcel.Struct, OwnerConst: -1})
			}
		case strings.HasPrefix(line, "imports:"):
			for _, p := range strings.Split(strings.TrimPrefix(line, "imports:"), ",") {
				p = strings.TrimSpace(p)
				if p != "" {
					imports = append(imports, p)
				}
			}
		}
	}
	return &Unit{Module: mod, Imports: imports}, nil
}

func TestCompileSingleModule(t *testing.T) {
	d := domain.New()
	c := NewCompiler(d, stubParse)
	c.AddSource(Source{Path: "a", Text: "structs: Foo"})

	if _, err := c.Compile("a"); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if _, err := d.Import("a"); err != nil {
		t.Fatalf("Import after Compile: %v", err)
	}
}

func TestCompileToleratesMutualCycle(t *testing.T) {
	d := domain.New()
	c := NewCompiler(d, stubParse)
	c.AddSource(Source{Path: "a", Text: "structs: Foo\nimports: b"})
	c.AddSource(Source{Path: "b", Text: "structs: Bar\nimports: a"})

	if _, err := c.Compile("a"); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if _, ok := d.FetchParcel("a"); !ok {
		t.Error("a not bound after Compile")
	}
	if _, ok := d.FetchParcel("b"); !ok {
		t.Error("b not bound after Compile (cycle should not block binding)")
	}
}

func TestCompileAllImportsEveryRegisteredSource(t *testing.T) {
	d := domain.New()
	c := NewCompiler(d, stubParse)
	c.AddSource(Source{Path: "a", Text: "structs: Foo"})
	c.AddSource(Source{Path: "b", Text: "structs: Bar"})

	if err := c.CompileAll(); err != nil {
		t.Fatalf("CompileAll: %v", err)
	}
	if _, err := d.Load("a:Foo"); err != nil {
		t.Errorf("a:Foo not loadable: %v", err)
	}
	if _, err := d.Load("b:Bar"); err != nil {
		t.Errorf("b:Bar not loadable: %v", err)
	}
}

func failingParse(src Source) (*Unit, error) {
	if src.Path == "bad" {
		return nil, fmt.Errorf("syntax error in %q", src.Path)
	}
	return stubParse(src)
}

func TestCompileAbortsWholeRequestOnSiblingFailure(t *testing.T) {
	d := domain.New()
	c := NewCompiler(d, failingParse)
	c.AddSource(Source{Path: "good", Text: "structs: Foo\nimports: bad"})
	c.AddSource(Source{Path: "bad", Text: "structs: Bar"})

	if _, err := c.Compile("good"); err == nil {
		t.Fatal("expected Compile to fail when a transitively-imported sibling fails to parse")
	}
	if _, ok := d.FetchParcel("good"); ok {
		t.Error("good should not be bound: the whole compile request must abort on sibling failure")
	}
}
