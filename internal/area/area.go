// Package area implements a two-layer keyed staging/commit cache: a
// local map consulted first, an optional upstream Area consulted on
// miss, and atomic commit-or-discard semantics for publishing (or
// rolling back) a batch of resources as a unit.
package area

import "fmt"

// Named is anything an Area can store, keyed by its own name.
type Named interface {
	Name() string
}

// Area is a two-layer keyed store of T, chained to an optional upstream
// Area.
type Area[T Named] struct {
	local    map[string]T
	upstream *Area[T]
}

// New returns an empty Area with no upstream.
func New[T Named]() *Area[T] {
	return &Area[T]{local: make(map[string]T)}
}

// Chained returns an empty Area backed by upstream on miss.
func Chained[T Named](upstream *Area[T]) *Area[T] {
	return &Area[T]{local: make(map[string]T), upstream: upstream}
}

// Fetch consults local first, then upstream unless localOnly is set.
func (a *Area[T]) Fetch(name string, localOnly bool) (T, bool) {
	if v, ok := a.local[name]; ok {
		return v, true
	}
	if !localOnly && a.upstream != nil {
		return a.upstream.Fetch(name, false)
	}
	var zero T
	return zero, false
}

// Push inserts resource locally, failing if the name already exists in
// either layer.
func (a *Area[T]) Push(resource T) error {
	name := resource.Name()
	if _, ok := a.local[name]; ok {
		return fmt.Errorf("area: %q already staged locally", name)
	}
	if a.upstream != nil {
		if _, ok := a.upstream.Fetch(name, false); ok {
			return fmt.Errorf("area: %q already committed upstream", name)
		}
	}
	a.local[name] = resource
	return nil
}

// Discard clears local contents. If propagate is set, it also discards
// the upstream Area (recursively).
func (a *Area[T]) Discard(propagate bool) {
	a.local = make(map[string]T)
	if propagate && a.upstream != nil {
		a.upstream.Discard(true)
	}
}

// Commit merges all local entries into upstream atomically: it fails (and
// leaves both layers unchanged) if any local key already exists upstream;
// otherwise every local entry moves upstream and local becomes empty.
func (a *Area[T]) Commit() error {
	if a.upstream == nil {
		return fmt.Errorf("area: commit requires an upstream area")
	}
	for name := range a.local {
		if _, ok := a.upstream.local[name]; ok {
			return fmt.Errorf("area: commit precondition violated: %q already exists upstream", name)
		}
	}
	for name, v := range a.local {
		a.upstream.local[name] = v
	}
	a.local = make(map[string]T)
	return nil
}

// Len returns the number of locally-staged entries (not counting upstream).
func (a *Area[T]) Len() int { return len(a.local) }

// Names returns the locally-staged names.
func (a *Area[T]) Names() []string {
	out := make([]string, 0, len(a.local))
	for name := range a.local {
		out = append(out, name)
	}
	return out
}

// Values returns the locally-staged resources, for callers (e.g. a load
// session's post-resolution checks) that need to scan everything just
// staged rather than look up one name at a time.
func (a *Area[T]) Values() []T {
	out := make([]T, 0, len(a.local))
	for _, v := range a.local {
		out = append(out, v)
	}
	return out
}
