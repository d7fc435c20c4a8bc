// Package context implements the per-execution-context loader:
// unsynchronized, with a local commits cache and an upstream pointer to
// a domain (or another context) consulted on miss.
package context

import (
	"github.com/tirous-coded/yama/internal/area"
	"github.com/tirous-coded/yama/internal/parcel"
	"github.com/tirous-coded/yama/internal/typeobj"
)

// Upstream is whatever a Context delegates Import/Load to: a
// *domain.Domain, or another *Context. Its own published Areas are never
// touched directly: a Context keeps its own, separate local cache, since
// chaining directly to Upstream's commit Area would make Push fail with
// "already committed upstream" the moment Upstream itself publishes the
// same resource.
type Upstream interface {
	Import(path string) (*parcel.Parcel, error)
	Load(fullname string) (*typeobj.Type, error)
}

// Context is one execution context's unsynchronized view of the loader:
// a local cache of everything it has itself imported/loaded, falling
// through to Upstream on a local miss and caching the result. Concurrent
// calls on one Context are undefined behavior; Context does not defend
// against them.
type Context struct {
	upstream Upstream
	parcels  *area.Area[*parcel.Parcel]
	types    *area.Area[*typeobj.Type]
}

// New returns a Context delegating to upstream.
func New(upstream Upstream) *Context {
	return &Context{
		upstream: upstream,
		parcels:  area.New[*parcel.Parcel](),
		types:    area.New[*typeobj.Type](),
	}
}

// Import returns the locally-cached Parcel at path, or delegates to
// Upstream and caches the result.
func (c *Context) Import(path string) (*parcel.Parcel, error) {
	if p, ok := c.parcels.Fetch(path, true); ok {
		return p, nil
	}
	p, err := c.upstream.Import(path)
	if err != nil {
		return nil, err
	}
	_ = c.parcels.Push(p)
	return p, nil
}

// Load returns the locally-cached Type named fullname, or delegates to
// Upstream and caches the result.
func (c *Context) Load(fullname string) (*typeobj.Type, error) {
	if t, ok := c.types.Fetch(fullname, true); ok {
		return t, nil
	}
	t, err := c.upstream.Load(fullname)
	if err != nil {
		return nil, err
	}
	_ = c.types.Push(t)
	return t, nil
}

// FetchParcel consults this Context's local cache only.
func (c *Context) FetchParcel(path string) (*parcel.Parcel, bool) {
	return c.parcels.Fetch(path, true)
}

// FetchType consults this Context's local cache only.
func (c *Context) FetchType(fullname string) (*typeobj.Type, bool) {
	return c.types.Fetch(fullname, true)
}

// ParcelIterator walks the Parcels a Context has itself imported.
type ParcelIterator struct {
	items []*parcel.Parcel
	pos   int
}

// Parcels returns an iterator over this Context's local commits,
// snapshotted at call time.
func (c *Context) Parcels() *ParcelIterator {
	values := c.parcels.Values()
	return &ParcelIterator{items: values}
}

// Next advances the iterator, returning (parcel, true) or (nil, false)
// once exhausted.
func (it *ParcelIterator) Next() (*parcel.Parcel, bool) {
	if it.pos >= len(it.items) {
		return nil, false
	}
	p := it.items[it.pos]
	it.pos++
	return p, true
}
