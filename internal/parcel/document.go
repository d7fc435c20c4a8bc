package parcel

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParcelDefDocument is the YAML front end over DefBuilder, the CLI's
// on-ramp to binding parcel definitions from files rather than Go call
// sites.
type ParcelDefDocument struct {
	Structs   []structDef   `yaml:"structs"`
	Protocols []protocolDef `yaml:"protocols"`
	Fns       []fnDef       `yaml:"fns"`
}

type structDef struct {
	Name       string      `yaml:"name"`
	TypeParams []tparamDef `yaml:"typeParams"`
	Params     []paramDef  `yaml:"params"`
	Methods    []methodDef `yaml:"methods"`
	Refs       []string    `yaml:"refs"`
}

type protocolDef struct {
	Name       string      `yaml:"name"`
	TypeParams []tparamDef `yaml:"typeParams"`
	Methods    []methodDef `yaml:"methods"`
}

type fnDef struct {
	Name       string `yaml:"name"`
	ReturnType string `yaml:"returns"`
}

type methodDef struct {
	Name       string `yaml:"name"`
	ReturnType string `yaml:"returns"`
}

type tparamDef struct {
	Name       string `yaml:"name"`
	Constraint string `yaml:"constraint"`
}

type paramDef struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// ParseParcelDefDocument parses a YAML parcel-definition document.
func ParseParcelDefDocument(data []byte) (*ParcelDefDocument, error) {
	var doc ParcelDefDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parcel: parsing definition document: %w", err)
	}
	return &doc, nil
}

// Build replays the document's declarations through a fresh DefBuilder,
// returning the constructed ModuleInfo, or the first error encountered.
func (doc *ParcelDefDocument) Build() (*ModuleInfo, error) {
	b := NewDefBuilder()

	for _, s := range doc.Structs {
		if _, err := b.AddStruct(s.Name); err != nil {
			return nil, err
		}
	}
	for _, p := range doc.Protocols {
		if _, err := b.AddProtocol(p.Name); err != nil {
			return nil, err
		}
	}
	for _, s := range doc.Structs {
		if err := applyOwnerBody(b, s.Name, s.TypeParams, s.Params, s.Methods, s.Refs); err != nil {
			return nil, err
		}
	}
	for _, p := range doc.Protocols {
		if err := applyOwnerBody(b, p.Name, p.TypeParams, nil, nil, nil); err != nil {
			return nil, err
		}
		for _, m := range p.Methods {
			if _, err := b.AddMethodReq(p.Name, m.Name, m.ReturnType); err != nil {
				return nil, err
			}
		}
	}
	for _, f := range doc.Fns {
		if _, err := b.AddFn(f.Name, f.ReturnType); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// applyOwnerBody declares typeParams, params, and (for non-protocol
// owners) methods on an already-registered owner type.
func applyOwnerBody(b *DefBuilder, owner string, typeParams []tparamDef, params []paramDef, methods []methodDef, refs []string) error {
	for _, tp := range typeParams {
		if _, err := b.AddTypeParam(owner, tp.Name, tp.Constraint); err != nil {
			return err
		}
	}
	for _, p := range params {
		if _, err := b.AddParam(owner, p.Name, p.Type); err != nil {
			return err
		}
	}
	for _, m := range methods {
		if _, err := b.AddMethod(owner, m.Name, m.ReturnType); err != nil {
			return err
		}
	}
	for _, r := range refs {
		if _, err := b.AddRef(owner, r); err != nil {
			return err
		}
	}
	return nil
}
