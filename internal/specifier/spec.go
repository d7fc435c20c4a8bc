package specifier

// Kind tags a Spec as either a path or a type fullname.
type Kind int

const (
	Path Kind = iota
	TypeFullname
)

func (k Kind) String() string {
	switch k {
	case Path:
		return "Path"
	case TypeFullname:
		return "TypeFullname"
	default:
		return "Kind(?)"
	}
}

// Spec is a normalized textual reference. The normalized form is
// canonical, so string equality implies specifier equality. Construct
// one via Solver.Solve; the zero value is not a valid Spec.
type Spec struct {
	text string
	kind Kind
}

// String returns the full normalized specifier text.
func (s Spec) String() string { return s.text }

// Kind reports whether s is a path or a type fullname.
func (s Spec) Kind() Kind { return s.kind }

// IsPath reports whether s is a path specifier.
func (s Spec) IsPath() bool { return s.kind == Path }

// IsType reports whether s is a type fullname specifier.
func (s Spec) IsType() bool { return s.kind == TypeFullname }

// Base returns s with any trailing call suffix `(T1, …) -> R` removed.
func (s Spec) Base() string {
	base, _, ok := splitCallSuff(s.text)
	if !ok {
		return s.text
	}
	return base
}

// CallSuff returns s's trailing call suffix text (including the enclosing
// parens and arrow), if any. "Has call suffix" is a pure syntactic check
// on the normalized form.
func (s Spec) CallSuff() (string, bool) {
	_, suff, ok := splitCallSuff(s.text)
	return suff, ok
}

// SplitCallSuffix locates text's top-level call suffix (if any) and
// returns its base and suffix separately, for callers (e.g. late
// resolution) operating on raw, not-yet-solved specifier text.
func SplitCallSuffix(text string) (base, suff string, ok bool) {
	return splitCallSuff(text)
}

// splitCallSuff locates the top-level call suffix: the first '(' at
// bracket-depth zero (a '(' nested inside a generic argument list's own
// call suffix doesn't count).
func splitCallSuff(text string) (base, suff string, ok bool) {
	depth := 0
	for i, r := range text {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case '(':
			if depth == 0 {
				return text[:i], text[i:], true
			}
		}
	}
	return text, "", false
}

// pathFast/typeFast construct a Spec from an already-normalized string,
// skipping re-solving. Solver.Solve builds its result Spec directly and
// does not call them.
func pathFast(normalized string) Spec { return Spec{text: normalized, kind: Path} }
func typeFast(normalized string) Spec { return Spec{text: normalized, kind: TypeFullname} }
