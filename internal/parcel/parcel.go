package parcel

import "github.com/tirous-coded/yama/internal/redirects"

// Parcel is the runtime binding of a parcel definition to a path: a path
// string, its process-wide ID, the module-info it was compiled/bound
// from, and the RedirectSet computed for it from the domain's redirect
// table at bind time. Once bound, a Parcel's RedirectSet is treated as
// immutable.
type Parcel struct {
	Path      string
	ID        ID
	Module    *ModuleInfo
	Meta      Metadata
	Redirects *redirects.RedirectSet
}

// New returns a freshly bound Parcel at path, allocating a new
// process-wide ID. redirectSet is the domain-wide Redirects table's
// projection for path (see redirects.Redirects.Compute); pass an empty
// &redirects.RedirectSet{} when no redirects apply.
func New(path string, module *ModuleInfo, meta Metadata, redirectSet *redirects.RedirectSet) *Parcel {
	if redirectSet == nil {
		redirectSet = &redirects.RedirectSet{}
	}
	return &Parcel{
		Path:      path,
		ID:        NextID(),
		Module:    module,
		Meta:      meta,
		Redirects: redirectSet,
	}
}

// Name implements area.Named so a *Parcel can live in an Area[T Named].
func (p *Parcel) Name() string { return p.Path }
