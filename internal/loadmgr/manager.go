// Package loadmgr implements the load manager: the Import/Load session
// protocol that drives a term-stack interpretation, generates and
// resolves type data, runs post-resolution conformance checks, and
// commits or discards the session's staging area.
package loadmgr

import (
	"github.com/tirous-coded/yama/internal/area"
	"github.com/tirous-coded/yama/internal/conform"
	"github.com/tirous-coded/yama/internal/parcel"
	"github.com/tirous-coded/yama/internal/typeobj"
)

// Binder resolves a request path to its bound (but not-yet-staged)
// Parcel.
type Binder interface {
	Bind(path string) (*parcel.Parcel, bool)
}

// BinderFunc adapts a function to Binder.
type BinderFunc func(path string) (*parcel.Parcel, bool)

// Bind implements Binder.
func (f BinderFunc) Bind(path string) (*parcel.Parcel, bool) { return f(path) }

// Manager orchestrates Import/Load requests against a domain's persistent
// commit areas. A Manager is safe for concurrent use
// only to the extent its caller (domain.Domain) serializes mutating
// requests under its own update lock; Manager itself holds no lock.
type Manager struct {
	commitParcels *area.Area[*parcel.Parcel]
	commitTypes   *area.Area[*typeobj.Type]
	binder        Binder
	conform       *conform.Checker
}

// New returns a Manager operating against the given persistent commit
// areas, resolving import paths via binder, and memoizing conformance
// checks in checker.
func New(commitParcels *area.Area[*parcel.Parcel], commitTypes *area.Area[*typeobj.Type], binder Binder, checker *conform.Checker) *Manager {
	return &Manager{
		commitParcels: commitParcels,
		commitTypes:   commitTypes,
		binder:        binder,
		conform:       checker,
	}
}

// Import runs the full session protocol for a parcel-import request,
// returning the bound Parcel on success.
func (m *Manager) Import(path string) (*parcel.Parcel, error) {
	s := m.newSession("import \"" + path + "\"")
	p := s.importTopLevel(path)
	s.drainLateResolveQueue()
	s.runChecks()
	if err := s.conclude(); err != nil {
		return nil, err
	}
	if s.diag.Failed() || p == nil {
		return nil, s.diag.First()
	}
	return p, nil
}

// Load runs the full session protocol for a type-load request,
// returning the materialized Type on success.
func (m *Manager) Load(fullname string) (*typeobj.Type, error) {
	s := m.newSession("load \"" + fullname + "\"")
	t := s.loadTopLevel(fullname)
	s.drainLateResolveQueue()
	s.runChecks()
	if err := s.conclude(); err != nil {
		return nil, err
	}
	if s.diag.Failed() || t == nil {
		return nil, s.diag.First()
	}
	return t, nil
}
