// Package errors provides the centralized error-kind taxonomy used across
// the Yama loading/resolution core. Every fallible operation in the
// specifier/term/loadmgr/domain packages reports through this taxonomy so
// diagnostics stay uniform from lexing all the way to domain commit.
package errors

// Kind identifies the category of a Yama diagnostic. Kinds are meanings,
// not Go types; every package constructs *Diagnostic values tagged with
// one of these.
type Kind string

const (
	// IllegalSpecifier indicates a syntax or semantic violation in a specifier.
	IllegalSpecifier Kind = "IllegalSpecifier"

	// IllegalConstraint indicates a type-parameter constraint is not a
	// protocol, or references a type parameter at its root.
	IllegalConstraint Kind = "IllegalConstraint"

	// PathBindError indicates an attempt to bind a parcel at an illegal or
	// reserved path.
	PathBindError Kind = "PathBindError"

	// TypeArgsError indicates a type-argument count or constraint mismatch.
	TypeArgsError Kind = "TypeArgsError"

	// ParcelNotFound indicates an import path does not resolve to any bound
	// parcel.
	ParcelNotFound Kind = "ParcelNotFound"

	// TypeNotFound indicates a fullname does not resolve to any type.
	TypeNotFound Kind = "TypeNotFound"

	// ParamNotFound indicates an out-of-bounds parameter query.
	ParamNotFound Kind = "ParamNotFound"

	// NameConflict indicates a duplicate identifier where uniqueness is
	// required.
	NameConflict Kind = "NameConflict"

	// LimitReached indicates a static cap was exceeded (e.g. 24 parameters).
	LimitReached Kind = "LimitReached"

	// ConcreteType indicates an operation expected a concrete type but found
	// a generic one.
	ConcreteType Kind = "ConcreteType"

	// GenericType indicates an operation expected a generic type but found a
	// concrete one.
	GenericType Kind = "GenericType"

	// MemberType indicates an operation disallowed on members (e.g. cannot
	// directly instantiate).
	MemberType Kind = "MemberType"

	// NonCallableType indicates a call-signature operation on a type with no
	// call signature.
	NonCallableType Kind = "NonCallableType"

	// TypeCannotHaveMembers indicates a member lookup on a type whose kind
	// admits no members.
	TypeCannotHaveMembers Kind = "TypeCannotHaveMembers"

	// ProtocolType indicates an operation expected a non-protocol type but
	// found a protocol.
	ProtocolType Kind = "ProtocolType"

	// NonProtocolType indicates a constraint-sensitive operation found a
	// non-protocol type where a protocol was required.
	NonProtocolType Kind = "NonProtocolType"

	// InternalError indicates an invariant violation; this should never
	// surface from correctly-driven code.
	InternalError Kind = "InternalError"
)
