package parcel

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tirous-coded/yama/internal/specifier"
)

// maxPerType caps the number of type-parameters or the number of
// ordinary parameters a single TypeInfo may declare.
const maxPerType = 24

// rootTypeParamRef matches a bare "$Ident" symbol with nothing else
// around it, disallowed as a type parameter's own constraint (a
// constraint may not refer to a type parameter at its root).
var rootTypeParamRef = regexp.MustCompile(`^\$[A-Za-z_][A-Za-z0-9_]*$`)

// DefBuilder is the write-only front end for constructing a ModuleInfo:
// single-purpose AddX mutators over a backing store, each failing closed
// on conflict. It does not model function bodies/native callbacks: those
// belong to the bytecode-interpreter layer.
type DefBuilder struct {
	mod *ModuleInfo
}

// NewDefBuilder returns a builder over a fresh, empty ModuleInfo.
func NewDefBuilder() *DefBuilder {
	return &DefBuilder{mod: NewModuleInfo()}
}

// Build returns the ModuleInfo constructed so far. The builder remains
// usable after calling Build.
func (b *DefBuilder) Build() *ModuleInfo { return b.mod }

// solveSymbol runs sym through a Solver with no environment, yielding
// only syntactic validation and normalization.
func (b *DefBuilder) solveSymbol(sym string) (string, error) {
	spec, err := specifier.NewSolver(specifier.Env{}).Solve(sym, specifier.MustBeEither)
	if err != nil {
		return "", err
	}
	return spec.String(), nil
}

// AddStruct registers a new owner Struct type, failing on name conflict
// or on the reserved identifier "Self".
func (b *DefBuilder) AddStruct(name string) (int, error) {
	return b.addOwner(name, Struct)
}

// AddProtocol registers a new owner Protocol type, failing on name
// conflict or on the reserved identifier "Self".
func (b *DefBuilder) AddProtocol(name string) (int, error) {
	return b.addOwner(name, Protocol)
}

func (b *DefBuilder) addOwner(name string, kind Kind) (int, error) {
	if name == "Self" {
		return -1, fmt.Errorf("parcel: %q is a reserved identifier", name)
	}
	if _, exists := b.mod.ByName(name); exists {
		return -1, fmt.Errorf("parcel: type %q already defined", name)
	}
	idx := b.mod.Add(&TypeInfo{LocalName: name, Kind: kind, OwnerConst: -1})
	if idx < 0 {
		return -1, fmt.Errorf("parcel: type %q already defined", name)
	}
	return idx, nil
}

// AddFn registers a free function's type data under name, with the
// given return-type symbol.
func (b *DefBuilder) AddFn(name, returnTypeSym string) (int, error) {
	return b.addCallable(name, "", returnTypeSym, Function)
}

// AddMethod registers a concrete method "owner::name" with the given
// return-type symbol, and links it into owner's Members.
func (b *DefBuilder) AddMethod(owner, name, returnTypeSym string) (int, error) {
	return b.addCallable(owner+"::"+name, owner, returnTypeSym, Method)
}

// AddMethodReq registers a protocol's required-method signature. It is
// stored identically to a concrete AddMethod: the conformance check
// looks a protocol's members up through the same "Owner::member"
// TypeInfo shape a struct's own methods
// use, so a "requirement" and an "implementation" share one
// representation; only which owner Kind they're attached to
// distinguishes them.
func (b *DefBuilder) AddMethodReq(owner, name, returnTypeSym string) (int, error) {
	return b.addCallable(owner+"::"+name, owner, returnTypeSym, Method)
}

func (b *DefBuilder) addCallable(fullLocalName, owner, returnTypeSym string, kind Kind) (int, error) {
	if _, exists := b.mod.ByName(fullLocalName); exists {
		return -1, fmt.Errorf("parcel: type %q already defined", fullLocalName)
	}
	retSym, err := b.solveSymbol(returnTypeSym)
	if err != nil {
		return -1, fmt.Errorf("parcel: return type of %q: %w", fullLocalName, err)
	}
	info := &TypeInfo{LocalName: fullLocalName, Kind: kind, OwnerConst: -1}
	retIdx := info.Consts.Add(ConstEntry{Kind: ConstRefSym, RefSym: retSym})
	info.CallSig = &CallSigInfo{ReturnConst: retIdx}
	idx := b.mod.Add(info)
	if idx < 0 {
		return -1, fmt.Errorf("parcel: type %q already defined", fullLocalName)
	}
	if owner != "" {
		ownerInfo, ok := b.mod.ByName(owner)
		if !ok {
			return -1, fmt.Errorf("parcel: no such owner type %q", owner)
		}
		memberSym, err := b.solveSymbol("$Self::" + methodLocalName(fullLocalName))
		if err != nil {
			return -1, fmt.Errorf("parcel: member reference for %q: %w", fullLocalName, err)
		}
		memberIdx := ownerInfo.Consts.Add(ConstEntry{Kind: ConstRefSym, RefSym: memberSym})
		ownerInfo.Members = append(ownerInfo.Members, memberIdx)
	}
	return idx, nil
}

func methodLocalName(fullLocalName string) string {
	if i := strings.LastIndex(fullLocalName, "::"); i >= 0 {
		return fullLocalName[i+2:]
	}
	return fullLocalName
}

// AddTypeParam declares type parameter name on typeName, constrained by
// constraintSym, failing on name collision with an existing member,
// parameter or type-param, on a root type-parameter reference in the
// constraint, or once typeName already has maxPerType type parameters.
func (b *DefBuilder) AddTypeParam(typeName, name, constraintSym string) (int, error) {
	info, ok := b.mod.ByName(typeName)
	if !ok {
		return -1, fmt.Errorf("parcel: no such type %q", typeName)
	}
	if name == "Self" {
		return -1, fmt.Errorf("parcel: %q is a reserved identifier", name)
	}
	for _, tp := range info.TypeParams {
		if tp.Name == name {
			return -1, fmt.Errorf("parcel: type parameter %q already declared on %q", name, typeName)
		}
	}
	for _, p := range info.Params {
		if p.Name == name {
			return -1, fmt.Errorf("parcel: %q collides with a parameter of %q", name, typeName)
		}
	}
	if _, ok := b.mod.ByName(typeName + "::" + name); ok {
		return -1, fmt.Errorf("parcel: %q collides with a member of %q", name, typeName)
	}
	if len(info.TypeParams) >= maxPerType {
		return -1, fmt.Errorf("parcel: %q already has %d type parameters", typeName, maxPerType)
	}
	solved, err := b.solveSymbol(constraintSym)
	if err != nil {
		return -1, fmt.Errorf("parcel: constraint of %q on %q: %w", name, typeName, err)
	}
	if rootTypeParamRef.MatchString(solved) {
		return -1, fmt.Errorf("parcel: constraint of %q on %q cannot reference a type parameter at its root", name, typeName)
	}
	idx := info.Consts.Add(ConstEntry{Kind: ConstRefSym, RefSym: solved})
	info.TypeParams = append(info.TypeParams, TypeParamInfo{Name: name, ConstraintConst: idx})
	return len(info.TypeParams) - 1, nil
}

// AddParam declares ordinary parameter name on typeName with the given
// type symbol, failing on name collision or once typeName already has
// maxPerType parameters.
func (b *DefBuilder) AddParam(typeName, name, typeSym string) (int, error) {
	info, ok := b.mod.ByName(typeName)
	if !ok {
		return -1, fmt.Errorf("parcel: no such type %q", typeName)
	}
	if name == "Self" {
		return -1, fmt.Errorf("parcel: %q is a reserved identifier", name)
	}
	for _, p := range info.Params {
		if p.Name == name {
			return -1, fmt.Errorf("parcel: parameter %q already declared on %q", name, typeName)
		}
	}
	for _, tp := range info.TypeParams {
		if tp.Name == name {
			return -1, fmt.Errorf("parcel: %q collides with a type parameter of %q", name, typeName)
		}
	}
	if len(info.Params) >= maxPerType {
		return -1, fmt.Errorf("parcel: %q already has %d parameters", typeName, maxPerType)
	}
	solved, err := b.solveSymbol(typeSym)
	if err != nil {
		return -1, fmt.Errorf("parcel: type of parameter %q on %q: %w", name, typeName, err)
	}
	idx := info.Consts.Add(ConstEntry{Kind: ConstRefSym, RefSym: solved})
	info.Params = append(info.Params, ParamInfo{Name: name, TypeConst: idx})
	return len(info.Params) - 1, nil
}

// AddRef adds a bare ref-constant sym to typeName's constant table,
// returning its (deduplicated) index.
func (b *DefBuilder) AddRef(typeName, sym string) (int, error) {
	info, ok := b.mod.ByName(typeName)
	if !ok {
		return -1, fmt.Errorf("parcel: no such type %q", typeName)
	}
	solved, err := b.solveSymbol(sym)
	if err != nil {
		return -1, fmt.Errorf("parcel: ref %q on %q: %w", sym, typeName, err)
	}
	return info.Consts.Add(ConstEntry{Kind: ConstRefSym, RefSym: solved}), nil
}
