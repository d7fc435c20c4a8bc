package loadmgr

import (
	"github.com/tirous-coded/yama/internal/area"
	"github.com/tirous-coded/yama/internal/errors"
	"github.com/tirous-coded/yama/internal/parcel"
	"github.com/tirous-coded/yama/internal/term"
	"github.com/tirous-coded/yama/internal/typeobj"
)

// session is one Import/Load request's working state: a fresh staging
// Area chained to the Manager's persistent commits, a FIFO of Types
// awaiting late resolution, and a diagnostic Session whose single
// failure flag collapses every error path.
type session struct {
	mgr            *Manager
	stagingParcels *area.Area[*parcel.Parcel]
	stagingTypes   *area.Area[*typeobj.Type]
	lateQueue      []*typeobj.Type
	diag           *errors.Session
	errPrefix      string
}

func (m *Manager) newSession(errPrefix string) *session {
	return &session{
		mgr:            m,
		stagingParcels: area.Chained(m.commitParcels),
		stagingTypes:   area.Chained(m.commitTypes),
		diag:           errors.NewSession(),
		errPrefix:      errPrefix,
	}
}

// conclude commits both staging areas if the session has not failed, or
// discards them (without propagating to the persistent commits) if it
// has. The caller is expected to hold
// the owning domain's write lock around the whole Import/Load call.
func (s *session) conclude() error {
	if s.diag.Failed() {
		s.stagingTypes.Discard(false)
		s.stagingParcels.Discard(false)
		return nil
	}
	if err := s.stagingTypes.Commit(); err != nil {
		return err
	}
	if err := s.stagingParcels.Commit(); err != nil {
		return err
	}
	return nil
}

func (s *session) fail(kind errors.Kind, format string, args ...any) {
	s.diag.Report(errors.New(kind, s.errPrefix+": "+format, args...))
}

// callbacks wires a term.Stack to this session's staging/generation
// logic.
func (s *session) callbacks() term.Callbacks {
	return term.Callbacks{
		ImportParcel: s.importParcel,
		LookupType:   s.lookupType,
		Materialize:  s.materializeOwner,
	}
}

// importTopLevel drives a bare import(path) request: evaluate the
// specifier to a Path term, then run the ImportParcel stack op to bind
// and stage the parcel it names.
func (s *session) importTopLevel(path string) *parcel.Parcel {
	stack := term.NewStack(term.Env{}, s.callbacks(), s.errPrefix)
	driver := term.NewDriver(stack)
	result := driver.Eval(path)
	if stack.Err() != nil {
		s.diag.Report(errors.New(errors.ParcelNotFound, stack.Err().Error()).WithPath(path))
		return nil
	}
	if result.Kind != term.KPath {
		s.fail(errors.IllegalSpecifier, "%q does not name a parcel", path)
		return nil
	}
	stack.ImportParcel()
	if stack.Err() != nil {
		s.diag.Report(errors.New(errors.ParcelNotFound, stack.Err().Error()).WithPath(path))
		return nil
	}
	p, ok := s.stagingParcels.Fetch(result.Path, false)
	if !ok {
		s.fail(errors.ParcelNotFound, "no parcel bound at %q", result.Path)
		return nil
	}
	return p
}

// loadTopLevel drives a bare load(fullname) request, expecting a
// Concrete term.
func (s *session) loadTopLevel(fullname string) *typeobj.Type {
	stack := term.NewStack(term.Env{}, s.callbacks(), s.errPrefix)
	driver := term.NewDriver(stack)
	result := driver.Eval(fullname)
	if stack.Err() != nil {
		s.diag.Report(errors.New(errors.TypeNotFound, stack.Err().Error()).WithSpecifier(fullname))
		return nil
	}
	if result.Kind != term.KConcrete {
		s.fail(errors.IllegalSpecifier, "%q does not name a concrete type", fullname)
		return nil
	}
	return result.Type
}

// importParcel is the term.Callbacks.ImportParcel implementation: fetch
// the already-staged parcel, or bind and stage a new one.
func (s *session) importParcel(path string) (*parcel.Parcel, error) {
	if p, ok := s.stagingParcels.Fetch(path, false); ok {
		return p, nil
	}
	p, ok := s.mgr.binder.Bind(path)
	if !ok {
		return nil, errors.New(errors.ParcelNotFound, "no parcel bound at %q", path).WithPath(path)
	}
	if err := s.stagingParcels.Push(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *session) lookupType(p *parcel.Parcel, localName string) (*parcel.TypeInfo, bool) {
	return p.Module.ByName(localName)
}
