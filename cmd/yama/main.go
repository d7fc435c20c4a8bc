// Command yama is the CLI front end for the runtime core: binding
// parcel definitions, adding redirects, importing/loading, and an
// interactive REPL.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/tirous-coded/yama/internal/context"
	"github.com/tirous-coded/yama/internal/domain"
	"github.com/tirous-coded/yama/internal/parcel"
	"github.com/tirous-coded/yama/internal/replshell"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("%s %s\n", bold("yama"), version)
	case "help", "-h", "--help":
		printHelp()
	case "repl":
		runRepl()
	case "bind":
		runBind(os.Args[2:])
	case "redirect":
		runRedirect(os.Args[2:])
	case "check":
		runCheck(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("error"), os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(bold("yama") + " - Yama runtime core CLI")
	fmt.Println("usage:")
	fmt.Println("  yama repl                                  start an interactive domain REPL")
	fmt.Println("  yama bind <path> <file.yaml>                bind a parcel definition at path")
	fmt.Println("  yama redirect <subject> <before> <after>   add a redirect")
	fmt.Println("  yama check <path> <file.yaml> <fullname>   bind then load, reporting errors")
	fmt.Println("  yama version                                print version info")
}

func runRepl() {
	d := domain.New()
	ctx := context.New(d)
	sh := replshell.New(d, ctx, parseDocBytes)
	sh.Start(os.Stdout)
}

func runBind(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: yama bind <path> <file.yaml>")
		os.Exit(1)
	}
	d := domain.New()
	mod, err := parseDocFile(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
		os.Exit(1)
	}
	if err := d.BindParcelDef(args[0], mod, parcel.Metadata{SelfName: args[0]}); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
		os.Exit(1)
	}
	fmt.Printf("%s %s\n", green("bound"), args[0])
}

func runRedirect(args []string) {
	if len(args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: yama redirect <subject> <before> <after>")
		os.Exit(1)
	}
	d := domain.New()
	d.AddRedirect(args[0], args[1], args[2])
	fmt.Printf("%s %s: %s -> %s\n", green("redirect added"), args[0], args[1], args[2])
}

func runCheck(args []string) {
	if len(args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: yama check <path> <file.yaml> <fullname>")
		os.Exit(1)
	}
	d := domain.New()
	mod, err := parseDocFile(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
		os.Exit(1)
	}
	if err := d.BindParcelDef(args[0], mod, parcel.Metadata{SelfName: args[0]}); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
		os.Exit(1)
	}
	ty, err := d.Load(args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
		os.Exit(1)
	}
	fmt.Printf("%s %s\n", green("ok"), ty.Fullname())
}

func parseDocBytes(data []byte) (*parcel.ModuleInfo, error) {
	doc, err := parcel.ParseParcelDefDocument(data)
	if err != nil {
		return nil, err
	}
	return doc.Build()
}

func parseDocFile(path string) (*parcel.ModuleInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseDocBytes(data)
}
