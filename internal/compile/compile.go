// Package compile implements the compiler↔loader integration: a minimal
// front end that parses declarative source units, binds their produced
// module-infos into a Domain ahead of any load session, and then drives
// the ordinary Import/Load entry points a running program would use. A
// failure anywhere in the transitive compile set aborts the whole
// top-level request.
package compile

import (
	"fmt"

	"github.com/tirous-coded/yama/internal/parcel"
)

// Source is one named unit of declarative source text.
type Source struct {
	Path string
	Text string
}

// Unit is what parsing one Source produces: its module-info (still
// carrying unresolved ref-constants; resolution is the load manager's
// job, not the parser's) and the import paths it declares.
type Unit struct {
	Module  *parcel.ModuleInfo
	Imports []string
}

// Parse turns a Source's declarative text into a Unit. Parse is the seam
// a concrete front end plugs into; tests and cmd/yama supply their own.
type Parse func(Source) (*Unit, error)

// Domain is the subset of *domain.Domain a Compiler drives.
type Domain interface {
	BindParcelDef(path string, module *parcel.ModuleInfo, meta parcel.Metadata) error
	FetchParcel(path string) (*parcel.Parcel, bool)
	Import(path string) (*parcel.Parcel, error)
}

// Compiler recursively compiles a set of registered Sources against a
// Domain.
type Compiler struct {
	domain  Domain
	parse   Parse
	sources map[string]Source
	units   map[string]*Unit
}

// NewCompiler returns a Compiler driving domain, parsing source text with
// parse.
func NewCompiler(domain Domain, parse Parse) *Compiler {
	return &Compiler{
		domain:  domain,
		parse:   parse,
		sources: make(map[string]Source),
		units:   make(map[string]*Unit),
	}
}

// AddSource registers src as available to be compiled when its path is
// first needed.
func (c *Compiler) AddSource(src Source) {
	c.sources[src.Path] = src
}

// Compile binds every Source transitively reachable from entry (tolerant
// of cycles among them), then Imports entry followed by every other
// module this Compiler has parsed, each in its own import session, and
// returns entry's Parcel.
func (c *Compiler) Compile(entry string) (*parcel.Parcel, error) {
	if err := c.compileAll(entry, map[string]bool{}); err != nil {
		return nil, err
	}
	p, err := c.domain.Import(entry)
	if err != nil {
		return nil, err
	}
	for path := range c.units {
		if _, err := c.domain.Import(path); err != nil {
			return nil, fmt.Errorf("compile: importing %q: %w", path, err)
		}
	}
	return p, nil
}

// CompileAll binds and imports every registered Source, not just those
// reachable from one entry point, for batch compilation of an entire
// source directory.
func (c *Compiler) CompileAll() error {
	for path := range c.sources {
		if err := c.compileAll(path, map[string]bool{}); err != nil {
			return err
		}
	}
	for path := range c.sources {
		if _, err := c.domain.Import(path); err != nil {
			return fmt.Errorf("compile: importing %q: %w", path, err)
		}
	}
	return nil
}

// compileAll parses and binds path and everything it transitively
// imports, in dependency order, tolerating cycles by skipping a path
// already being visited on the current DFS branch.
func (c *Compiler) compileAll(path string, visiting map[string]bool) error {
	if _, ok := c.domain.FetchParcel(path); ok {
		return nil // already bound (builtin, or an earlier compile request)
	}
	if _, ok := c.units[path]; ok {
		return nil // already parsed+bound this request
	}
	if visiting[path] {
		return nil // cycle between compiling modules: tolerated
	}
	src, ok := c.sources[path]
	if !ok {
		return nil // not a registered compiling module; Domain decides at Import time
	}

	visiting[path] = true
	unit, err := c.parse(src)
	if err != nil {
		return fmt.Errorf("compile: parsing %q: %w", path, err)
	}
	c.units[path] = unit

	for _, imp := range unit.Imports {
		if err := c.compileAll(imp, visiting); err != nil {
			return err
		}
	}
	delete(visiting, path)

	if err := c.domain.BindParcelDef(path, unit.Module, parcel.Metadata{SelfName: path, Deps: unit.Imports}); err != nil {
		return fmt.Errorf("compile: binding %q: %w", path, err)
	}
	return nil
}
