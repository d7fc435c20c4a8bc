// Package replshell provides a liner-based interactive front end over a
// domain.Domain/context.Context pair: "import <path>", "load <fullname>",
// "bind <path> <file>", "redirect <subject> <before> <after>" commands
// against the live domain.
package replshell

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/tirous-coded/yama/internal/context"
	"github.com/tirous-coded/yama/internal/parcel"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// Domain is the subset of *domain.Domain a Shell drives directly (import
// and load go through a per-session context.Context instead, so they
// share that context's local cache).
type Domain interface {
	BindParcelDef(path string, module *parcel.ModuleInfo, meta parcel.Metadata) error
	AddRedirect(subject, before, after string)
}

// Shell is one interactive REPL session over a Domain.
type Shell struct {
	domain Domain
	ctx    *context.Context
	parse  func([]byte) (*parcel.ModuleInfo, error)
}

// New returns a Shell driving domain through the caller-supplied ctx, using
// parseDoc (typically parcel.ParseParcelDefDocument composed with
// ParcelDefDocument.Build) to turn a bound file's bytes into a
// ModuleInfo.
func New(domain Domain, ctx *context.Context, parseDoc func([]byte) (*parcel.ModuleInfo, error)) *Shell {
	return &Shell{domain: domain, ctx: ctx, parse: parseDoc}
}

// Start runs the REPL loop until EOF or a "quit" command.
func (s *Shell) Start(out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(false)

	historyFile := filepath.Join(os.TempDir(), ".yama_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	fmt.Fprintf(out, "%s\n", bold("yama"))
	fmt.Fprintln(out, dim("commands: import <path>, load <fullname>, bind <path> <file>, redirect <subject> <before> <after>, quit"))

	line.SetCompleter(func(in string) []string {
		commands := []string{"import", "load", "bind", "redirect", "quit"}
		var out []string
		for _, c := range commands {
			if strings.HasPrefix(c, in) {
				out = append(out, c)
			}
		}
		return out
	})

	for {
		input, err := line.Prompt(cyan("yama> "))
		if err == io.EOF {
			fmt.Fprintln(out, green("goodbye"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("error"), err)
			continue
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		s.dispatch(strings.Fields(input), out)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

func (s *Shell) dispatch(fields []string, out io.Writer) {
	if len(fields) == 0 {
		return
	}
	switch fields[0] {
	case "quit", "exit":
		os.Exit(0)
	case "import":
		s.cmdImport(fields, out)
	case "load":
		s.cmdLoad(fields, out)
	case "bind":
		s.cmdBind(fields, out)
	case "redirect":
		s.cmdRedirect(fields, out)
	default:
		fmt.Fprintf(out, "%s: unknown command %q\n", yellow("warning"), fields[0])
	}
}

func (s *Shell) cmdImport(fields []string, out io.Writer) {
	if len(fields) != 2 {
		fmt.Fprintln(out, "usage: import <path>")
		return
	}
	p, err := s.ctx.Import(fields[1])
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("error"), err)
		return
	}
	fmt.Fprintf(out, "%s %s\n", green("imported"), p.Path)
}

func (s *Shell) cmdLoad(fields []string, out io.Writer) {
	if len(fields) != 2 {
		fmt.Fprintln(out, "usage: load <fullname>")
		return
	}
	t, err := s.ctx.Load(fields[1])
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("error"), err)
		return
	}
	fmt.Fprintf(out, "%s %s\n", green("loaded"), t.Fullname())
}

func (s *Shell) cmdBind(fields []string, out io.Writer) {
	if len(fields) != 3 {
		fmt.Fprintln(out, "usage: bind <path> <file>")
		return
	}
	data, err := os.ReadFile(fields[2])
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("error"), err)
		return
	}
	mod, err := s.parse(data)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("error"), err)
		return
	}
	if err := s.domain.BindParcelDef(fields[1], mod, parcel.Metadata{SelfName: fields[1]}); err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("error"), err)
		return
	}
	fmt.Fprintf(out, "%s %s\n", green("bound"), fields[1])
}

func (s *Shell) cmdRedirect(fields []string, out io.Writer) {
	if len(fields) != 4 {
		fmt.Fprintln(out, "usage: redirect <subject> <before> <after>")
		return
	}
	s.domain.AddRedirect(fields[1], fields[2], fields[3])
	fmt.Fprintf(out, "%s %s: %s -> %s\n", green("redirect added"), fields[1], fields[2], fields[3])
}
