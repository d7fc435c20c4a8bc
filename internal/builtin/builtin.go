// Package builtin defines the "yama" parcel that every other parcel
// implicitly depends on: the primitive scalar types plus the universal
// protocol Any. Its ModuleInfo is installed directly into a domain's
// commits area at construction time, before any user parcel binds.
package builtin

import "github.com/tirous-coded/yama/internal/parcel"

// Path is the reserved import path every parcel implicitly depends on.
const Path = "yama"

// primitiveNames are the scalar primitive types exposed by the yama
// parcel.
var primitiveNames = []string{"None", "Int", "UInt", "Float", "Bool", "Char", "Type"}

// anyProtocolName is the universal protocol: zero required members, so
// every Type trivially conforms to it (internal/conform.Conforms scans
// p.Info.Members, and an empty Members slice is vacuously satisfied).
const anyProtocolName = "Any"

// NewModule builds the yama parcel's ModuleInfo: one Primitive TypeInfo
// per entry in primitiveNames, plus the Any protocol with no declared
// members.
func NewModule() *parcel.ModuleInfo {
	b := parcel.NewDefBuilder()
	mod := b.Build()
	for _, name := range primitiveNames {
		mod.Add(&parcel.TypeInfo{LocalName: name, Kind: parcel.Primitive, OwnerConst: -1})
	}
	if _, err := b.AddProtocol(anyProtocolName); err != nil {
		panic("builtin: " + err.Error()) // registration of a fixed, known-good set cannot fail
	}
	return mod
}

// AnyFullname is the fully-qualified name of the universal protocol, for
// callers (e.g. a missing-constraint default) that need to reference it
// directly.
const AnyFullname = Path + ":" + anyProtocolName
