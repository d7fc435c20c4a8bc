package parcel

// ConstKind tags one ConstEntry's variant.
type ConstKind int

const (
	ConstInt ConstKind = iota
	ConstUInt
	ConstFloat
	ConstBool
	ConstRune
	ConstRefSym
)

func (k ConstKind) String() string {
	switch k {
	case ConstInt:
		return "Int"
	case ConstUInt:
		return "UInt"
	case ConstFloat:
		return "Float"
	case ConstBool:
		return "Bool"
	case ConstRune:
		return "Rune"
	case ConstRefSym:
		return "RefSym"
	default:
		return "ConstKind(?)"
	}
}

// ConstEntry is a tagged union: a scalar value, or a
// RefSym carrying an unresolved specifier string (a call suffix, if any,
// stays part of RefSym; resolution splits it off into the resolved
// constant's CallSuff for the call-signature conformance check).
type ConstEntry struct {
	Kind    ConstKind
	Int     int64
	UInt    uint64
	Float   float64
	Bool    bool
	Rune    rune
	RefSym string
}

// Equal reports structural equality, used by ConstTableInfo.Add to
// deduplicate entries on insertion.
func (e ConstEntry) Equal(o ConstEntry) bool {
	if e.Kind != o.Kind {
		return false
	}
	switch e.Kind {
	case ConstInt:
		return e.Int == o.Int
	case ConstUInt:
		return e.UInt == o.UInt
	case ConstFloat:
		return e.Float == o.Float
	case ConstBool:
		return e.Bool == o.Bool
	case ConstRune:
		return e.Rune == o.Rune
	case ConstRefSym:
		return e.RefSym == o.RefSym
	default:
		return false
	}
}

// ConstTableInfo is the append-only, deduplicated ordered sequence of
// constant entries backing one TypeInfo.
type ConstTableInfo struct {
	entries []ConstEntry
}

// Add inserts entry if no structurally-equal entry already exists,
// returning its index either way: duplicates are deduplicated on
// insertion by structural equality.
func (t *ConstTableInfo) Add(entry ConstEntry) int {
	for i, e := range t.entries {
		if e.Equal(entry) {
			return i
		}
	}
	t.entries = append(t.entries, entry)
	return len(t.entries) - 1
}

// Len returns the number of distinct entries.
func (t *ConstTableInfo) Len() int { return len(t.entries) }

// At returns the entry at index i.
func (t *ConstTableInfo) At(i int) ConstEntry { return t.entries[i] }

// Entries returns the backing slice; callers must not mutate it.
func (t *ConstTableInfo) Entries() []ConstEntry { return t.entries }
