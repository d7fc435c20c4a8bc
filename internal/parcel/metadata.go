// Package parcel holds the static, pre-load representation of a Yama
// parcel: its metadata, module-info/type-info tables, constant-table-info,
// and the write-only builder used to construct them.
package parcel

// Metadata is the immutable per-parcel record: its reserved self-name and
// an ordered set of dep-names, each eventually bound to an installed
// parcel's ID by the domain loader.
type Metadata struct {
	SelfName string
	Deps     []string
}

// HasDep reports whether name is a declared dep-name (including the
// reserved "yama" builtin dep, which every parcel implicitly carries).
func (m Metadata) HasDep(name string) bool {
	if name == "yama" {
		return true
	}
	for _, d := range m.Deps {
		if d == name {
			return true
		}
	}
	return false
}
