// Package domain implements the globally-shared, thread-safe domain
// loader: parcel bindings, domain-wide redirects, the staging/commit
// areas, and the Import/Load entry points that drive the load manager
// under the domain's two-lock discipline.
package domain

import (
	"fmt"
	"sync"

	"github.com/tirous-coded/yama/internal/area"
	"github.com/tirous-coded/yama/internal/builtin"
	"github.com/tirous-coded/yama/internal/conform"
	"github.com/tirous-coded/yama/internal/errors"
	"github.com/tirous-coded/yama/internal/loadmgr"
	"github.com/tirous-coded/yama/internal/parcel"
	"github.com/tirous-coded/yama/internal/redirects"
	"github.com/tirous-coded/yama/internal/specifier"
	"github.com/tirous-coded/yama/internal/typeobj"
)

// Domain is the globally shared, thread-safe module/parcel loader.
// accessLock protects reads of the commit areas and the
// commit step of a session; updateLock serializes whole Import/Load
// sessions and guards bindings/redirects/the load manager's staging
// state. A single Go call cannot yield control mid-session, so Import and
// Load hold both locks for the session's full duration rather than
// narrowing accessLock to just the final commit (see DESIGN.md).
type Domain struct {
	accessLock sync.RWMutex
	updateLock sync.Mutex

	bindings  map[string]*parcel.Parcel
	redirects *redirects.Redirects

	commitParcels *area.Area[*parcel.Parcel]
	commitTypes   *area.Area[*typeobj.Type]

	conform *conform.Checker
	manager *loadmgr.Manager
}

// New returns a Domain with the builtin "yama" parcel already bound and
// published.
func New() *Domain {
	d := &Domain{}
	d.resetLocked()
	return d
}

func (d *Domain) resetLocked() {
	d.bindings = make(map[string]*parcel.Parcel)
	d.redirects = redirects.New()
	d.commitParcels = area.New[*parcel.Parcel]()
	d.commitTypes = area.New[*typeobj.Type]()
	d.conform = conform.New()
	d.manager = loadmgr.New(d.commitParcels, d.commitTypes, d, d.conform)
	d.installBuiltin()
}

// installBuiltin binds and directly publishes the yama parcel: its types
// carry no ref-constants needing resolution, so there is no session to
// run; it is installed straight into commits.
func (d *Domain) installBuiltin() {
	mod := builtin.NewModule()
	p := parcel.New(builtin.Path, mod, parcel.Metadata{SelfName: builtin.Path}, d.redirects.Compute(builtin.Path))
	d.bindings[builtin.Path] = p
	_ = d.commitParcels.Push(p)
}

// Bind implements loadmgr.Binder against this domain's bindings table.
func (d *Domain) Bind(path string) (*parcel.Parcel, bool) {
	p, ok := d.bindings[path]
	return p, ok
}

// BindParcelDef installs a new parcel definition at path, computing its
// RedirectSet from the domain's current redirect table. Fails if path is
// already bound.
func (d *Domain) BindParcelDef(path string, module *parcel.ModuleInfo, meta parcel.Metadata) error {
	d.updateLock.Lock()
	defer d.updateLock.Unlock()

	if path == builtin.Path {
		return errors.New(errors.PathBindError, "%q is reserved for the builtin parcel", path)
	}
	if _, err := specifier.NewSolver(specifier.Env{}).Solve(path, specifier.MustBePath); err != nil {
		return errors.New(errors.PathBindError, "%q is not a legal parcel path: %v", path, err)
	}
	if _, exists := d.bindings[path]; exists {
		return fmt.Errorf("domain: %q is already bound", path)
	}
	d.bindings[path] = parcel.New(path, module, meta, d.redirects.Compute(path))
	return nil
}

// AddRedirect inserts a (subject, before) -> after rewrite into the
// domain-wide redirect table. Already-bound parcels keep the RedirectSet
// computed at their own bind time; a redirect added later affects only
// later binds.
func (d *Domain) AddRedirect(subject, before, after string) {
	d.updateLock.Lock()
	defer d.updateLock.Unlock()
	d.redirects.Add(subject, before, after)
}

// Import runs the full import session protocol and publishes its
// result.
func (d *Domain) Import(path string) (*parcel.Parcel, error) {
	d.updateLock.Lock()
	defer d.updateLock.Unlock()
	d.accessLock.Lock()
	defer d.accessLock.Unlock()
	return d.manager.Import(path)
}

// Load runs the full load session protocol and publishes its result.
func (d *Domain) Load(fullname string) (*typeobj.Type, error) {
	d.updateLock.Lock()
	defer d.updateLock.Unlock()
	d.accessLock.Lock()
	defer d.accessLock.Unlock()
	return d.manager.Load(fullname)
}

// FetchParcel reads a previously-committed Parcel without starting a
// session.
func (d *Domain) FetchParcel(path string) (*parcel.Parcel, bool) {
	d.accessLock.RLock()
	defer d.accessLock.RUnlock()
	return d.commitParcels.Fetch(path, true)
}

// FetchType reads a previously-committed Type without starting a
// session.
func (d *Domain) FetchType(fullname string) (*typeobj.Type, bool) {
	d.accessLock.RLock()
	defer d.accessLock.RUnlock()
	return d.commitTypes.Fetch(fullname, true)
}

// Reset discards all bindings, redirects, and committed Parcels/Types,
// then reinstalls the builtin parcel, as if the Domain were freshly
// constructed.
func (d *Domain) Reset() {
	d.updateLock.Lock()
	defer d.updateLock.Unlock()
	d.accessLock.Lock()
	defer d.accessLock.Unlock()
	d.resetLocked()
}

// CommitParcels exposes this domain's published Parcel area as a
// read-only upstream for a context.Context.
func (d *Domain) CommitParcels() *area.Area[*parcel.Parcel] { return d.commitParcels }

// CommitTypes exposes this domain's published Type area as a read-only
// upstream for a context.Context.
func (d *Domain) CommitTypes() *area.Area[*typeobj.Type] { return d.commitTypes }
