package parcel

import "strings"

// Kind classifies one TypeInfo.
type Kind int

const (
	Primitive Kind = iota
	Function
	Method
	Struct
	Protocol
)

func (k Kind) String() string {
	switch k {
	case Primitive:
		return "Primitive"
	case Function:
		return "Function"
	case Method:
		return "Method"
	case Struct:
		return "Struct"
	case Protocol:
		return "Protocol"
	default:
		return "Kind(?)"
	}
}

// ParamInfo is one ordered parameter of a Struct/Function/Method: a local
// name plus a constant-index into the owning TypeInfo's ConstTableInfo
// holding its (unresolved) type specifier.
type ParamInfo struct {
	Name      string
	TypeConst int
}

// TypeParamInfo is one ordered type parameter: a local name plus a
// constant-index holding its (unresolved) constraint specifier.
type TypeParamInfo struct {
	Name            string
	ConstraintConst int
}

// CallSigInfo is an ordered list of parameter constant-indices plus a
// return constant-index, present on Function/Method TypeInfos.
type CallSigInfo struct {
	ParamConsts []int
	ReturnConst int
}

// TypeInfo is the static description of one type: local
// name, kind, optional call signature, ordered parameters, optional
// ordered type-parameters, optional owner constant-index (for members),
// ordered member constant-indices, and its ConstTableInfo.
type TypeInfo struct {
	LocalName  string
	Kind       Kind
	CallSig    *CallSigInfo
	Params     []ParamInfo
	TypeParams []TypeParamInfo
	OwnerConst int // -1 if this is an owner (non-member)
	Members    []int
	Consts     ConstTableInfo
}

// IsOwner reports whether the type is an owner: its local name contains
// no "::".
func (t *TypeInfo) IsOwner() bool {
	return !strings.Contains(t.LocalName, "::")
}

// IsGeneric reports whether the type declares any type parameters.
func (t *TypeInfo) IsGeneric() bool {
	return len(t.TypeParams) > 0
}
