package parcel

// ModuleInfo is the collection of TypeInfo records belonging to one
// compiled/bound module, keyed by local (unqualified) name and also by a
// per-module integer local ID ("lid").
type ModuleInfo struct {
	byName map[string]int
	byLID  []*TypeInfo
}

// NewModuleInfo returns an empty ModuleInfo.
func NewModuleInfo() *ModuleInfo {
	return &ModuleInfo{byName: make(map[string]int)}
}

// Add registers info under a freshly assigned lid, failing (returning -1)
// if LocalName already exists.
func (m *ModuleInfo) Add(info *TypeInfo) int {
	if _, exists := m.byName[info.LocalName]; exists {
		return -1
	}
	lid := len(m.byLID)
	m.byLID = append(m.byLID, info)
	m.byName[info.LocalName] = lid
	return lid
}

// ByName looks up a TypeInfo by its local name.
func (m *ModuleInfo) ByName(name string) (*TypeInfo, bool) {
	lid, ok := m.byName[name]
	if !ok {
		return nil, false
	}
	return m.byLID[lid], true
}

// ByLID looks up a TypeInfo by its local ID.
func (m *ModuleInfo) ByLID(lid int) (*TypeInfo, bool) {
	if lid < 0 || lid >= len(m.byLID) {
		return nil, false
	}
	return m.byLID[lid], true
}

// Names returns every registered local name, in registration order.
func (m *ModuleInfo) Names() []string {
	out := make([]string, len(m.byLID))
	for i, info := range m.byLID {
		out[i] = info.LocalName
	}
	return out
}
