package term

import (
	"strings"

	"github.com/tirous-coded/yama/internal/specifier"
)

// Driver replays the flat specifier.Listener event stream produced by
// re-parsing a specifier's normalized base text (call suffix, if any,
// already stripped) as a sequence of Stack ops.
type Driver struct {
	stack *Stack
}

// NewDriver returns a Driver that replays events onto stack.
func NewDriver(stack *Stack) *Driver {
	return &Driver{stack: stack}
}

// Eval drives the normalized specifier's base text (its call suffix, if
// any, already stripped by the caller) through the stack and returns the
// resulting single term.
func (d *Driver) Eval(base string) Term {
	if !specifier.Parse(base, d) {
		return errTerm()
	}
	return d.stack.Result()
}

// RootID implements specifier.Listener.
func (d *Driver) RootID(id string) {
	switch {
	case id == "%here":
		d.stack.Here()
	case id == "$Self":
		d.stack.Self()
	case strings.HasPrefix(id, "$"):
		d.stack.TypeParam(id[1:])
	default:
		d.stack.Root(id)
	}
}

// SlashID implements specifier.Listener.
func (d *Driver) SlashID(id string) { d.stack.Subdir(id) }

// ColonID implements specifier.Listener.
func (d *Driver) ColonID(id string) { d.stack.TypeInParcel(id) }

// DblColonID implements specifier.Listener.
func (d *Driver) DblColonID(id string) { d.stack.Member(id) }

// OpenArgs implements specifier.Listener.
func (d *Driver) OpenArgs() { d.stack.BeginArgs() }

// ArgsDelim implements specifier.Listener: no stack effect, each argument
// term is simply pushed in sequence between delimiters.
func (d *Driver) ArgsDelim() {}

// CloseArgs implements specifier.Listener.
func (d *Driver) CloseArgs() { d.stack.EndArgs() }

// SyntaxErr implements specifier.Listener.
func (d *Driver) SyntaxErr() { d.stack.Fail("syntax error") }

// OpenCallSuff, CallSuffDelim, CallSuffReturn, CloseCallSuff implement
// specifier.Listener but are no-ops: the driver only ever evaluates a
// specifier's Base() text, with any call suffix checked separately by
// textual comparison.
func (d *Driver) OpenCallSuff()   {}
func (d *Driver) CallSuffDelim()  {}
func (d *Driver) CallSuffReturn() {}
func (d *Driver) CloseCallSuff()  {}
