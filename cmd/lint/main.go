package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/module-linking/core"
	"github.com/wippyai/module-linking/linking"
	"github.com/wippyai/module-linking/stream"
	"github.com/wippyai/module-linking/version"
)

type coreFiles []string

func (c *coreFiles) String() string { return strings.Join(*c, ",") }

func (c *coreFiles) Set(v string) error {
	*c = append(*c, v)
	return nil
}

func main() {
	var cores coreFiles
	var (
		defsFile    = flag.String("defs", "", "Path to a JSON definition stream")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose validation logging")
	)
	flag.Var(&cores, "core", "Core wasm file to pre-register as an outer module (repeatable)")
	flag.Parse()

	if *defsFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: lint -defs <tree.json> [-core lib.wasm]...")
		fmt.Fprintln(os.Stderr, "       lint -defs <tree.json> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		linking.SetLogger(logger)
	}

	if *interactive {
		if err := runInteractive(*defsFile, cores); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*defsFile, cores); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(defsFile string, cores []string) error {
	mt, coreNames, err := validate(defsFile, cores)
	if err != nil {
		return err
	}

	st := newStyles(term.IsTerminal(int(os.Stdout.Fd())))

	fmt.Printf("%s %s\n", st.title.Render("Module"), defsFile)
	for i, name := range coreNames {
		fmt.Printf("  outer module[%d]: %s\n", i, name)
	}
	fmt.Printf("\nImports: %d\n", len(mt.Imports))
	for _, name := range sortedNames(mt.Imports) {
		line := fmt.Sprintf("  %s: %s", st.name.Render(name), formatType(st, mt.Imports[name], "  "))
		if base, ver, ok := version.Parse(name); ok {
			line += st.note.Render(fmt.Sprintf("  (%s, v%s)", base, ver))
		}
		fmt.Println(line)
	}
	fmt.Printf("\nExports: %d\n", len(mt.Exports))
	printEntries(st, mt.Exports, "  ")
	return nil
}

// validate compiles the core modules into a parent scope, decodes the
// definition stream, and checks it as a child of that scope. Outer
// aliases in the stream can then reach the pre-registered core modules.
func validate(defsFile string, cores []string) (linking.ModuleType, []string, error) {
	ctx := context.Background()

	parent := linking.NewScope(nil)
	names := make([]string, 0, len(cores))
	for _, path := range cores {
		data, err := os.ReadFile(path)
		if err != nil {
			return linking.ModuleType{}, nil, fmt.Errorf("read core module: %w", err)
		}
		ct, err := core.ModuleType(ctx, data)
		if err != nil {
			return linking.ModuleType{}, nil, err
		}
		parent.Declare(linking.KindModule, ct)
		names = append(names, path)
	}

	f, err := os.Open(defsFile)
	if err != nil {
		return linking.ModuleType{}, nil, fmt.Errorf("read definitions: %w", err)
	}
	defer f.Close()

	defs, err := stream.Decode(f)
	if err != nil {
		return linking.ModuleType{}, nil, err
	}

	mt, err := linking.ValidateModule(defs, parent)
	if err != nil {
		return linking.ModuleType{}, nil, err
	}
	return mt, names, nil
}

func printEntries(st styles, m map[string]linking.DefType, indent string) {
	for _, name := range sortedNames(m) {
		fmt.Printf("%s%s: %s\n", indent, st.name.Render(name), formatType(st, m[name], indent))
	}
}

func sortedNames(m map[string]linking.DefType) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type styles struct {
	title lipgloss.Style
	name  lipgloss.Style
	kind  lipgloss.Style
	leaf  lipgloss.Style
	note  lipgloss.Style
}

func newStyles(tty bool) styles {
	if !tty {
		plain := lipgloss.NewStyle()
		return styles{title: plain, name: plain, kind: plain, leaf: plain, note: plain}
	}
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		name: lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98")),
		kind: lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		leaf: lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")),
		note: lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
	}
}

// formatType renders a definition type on one line for leaves and as an
// indented block for instance and module types.
func formatType(st styles, ty linking.DefType, indent string) string {
	switch t := ty.(type) {
	case linking.FuncType:
		return st.kind.Render("func") + st.leaf.Render(signature(t))

	case linking.TableType:
		elem := "funcref"
		if t.Elem == linking.RefExtern {
			elem = "externref"
		}
		return st.kind.Render("table") + st.leaf.Render(" "+elem+" "+limitsStr(t.Limits))

	case linking.MemoryType:
		return st.kind.Render("memory") + st.leaf.Render(" "+limitsStr(t.Limits))

	case linking.GlobalType:
		mut := ""
		if t.Mutable {
			mut = "mut "
		}
		return st.kind.Render("global") + st.leaf.Render(" "+mut+t.Val.String())

	case linking.InstanceType:
		return st.kind.Render("instance") + formatEntries(st, t.Exports, indent+"  ")

	case linking.ModuleType:
		var b strings.Builder
		b.WriteString(st.kind.Render("module"))
		if len(t.Imports) > 0 {
			b.WriteString("\n" + indent + "  imports:")
			b.WriteString(formatEntries(st, t.Imports, indent+"    "))
		}
		if len(t.Exports) > 0 {
			b.WriteString("\n" + indent + "  exports:")
			b.WriteString(formatEntries(st, t.Exports, indent+"    "))
		}
		return b.String()

	default:
		return fmt.Sprintf("%T", ty)
	}
}

func formatEntries(st styles, m map[string]linking.DefType, indent string) string {
	var b strings.Builder
	for _, name := range sortedNames(m) {
		b.WriteString("\n" + indent + st.name.Render(name) + ": " + formatType(st, m[name], indent))
	}
	return b.String()
}

func signature(f linking.FuncType) string {
	var params []string
	for _, p := range f.Params {
		params = append(params, p.String())
	}
	sig := "(" + strings.Join(params, ", ") + ")"
	if len(f.Results) > 0 {
		var results []string
		for _, r := range f.Results {
			results = append(results, r.String())
		}
		sig += " -> " + strings.Join(results, ", ")
	}
	return sig
}

func limitsStr(l linking.Limits) string {
	if l.Max != nil {
		return fmt.Sprintf("[%d, %d]", l.Min, *l.Max)
	}
	return fmt.Sprintf("[%d, ∞)", l.Min)
}
