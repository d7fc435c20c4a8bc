package parcel

import "testing"

func TestParseAndBuildParcelDefDocument(t *testing.T) {
	const src = `
structs:
  - name: Box
    typeParams:
      - name: T
        constraint: dep:Anything
    params:
      - name: value
        type: $T
    methods:
      - name: unwrap
        returns: $T
protocols:
  - name: Anything
fns:
  - name: identity
    returns: dep:Box[dep:Anything]
`
	doc, err := ParseParcelDefDocument([]byte(src))
	if err != nil {
		t.Fatalf("ParseParcelDefDocument: %v", err)
	}
	mod, err := doc.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	box, ok := mod.ByName("Box")
	if !ok {
		t.Fatal("Box not registered")
	}
	if len(box.TypeParams) != 1 || box.TypeParams[0].Name != "T" {
		t.Errorf("Box.TypeParams = %+v", box.TypeParams)
	}
	if len(box.Params) != 1 || box.Params[0].Name != "value" {
		t.Errorf("Box.Params = %+v", box.Params)
	}
	if _, ok := mod.ByName("Box::unwrap"); !ok {
		t.Error("Box::unwrap not registered")
	}
	if _, ok := mod.ByName("Anything"); !ok {
		t.Error("Anything not registered")
	}
	if _, ok := mod.ByName("identity"); !ok {
		t.Error("identity not registered")
	}
}

func TestParseParcelDefDocumentRejectsMalformedYAML(t *testing.T) {
	if _, err := ParseParcelDefDocument([]byte("structs: [not, a, map]")); err == nil {
		t.Error("expected error parsing malformed document")
	}
}
