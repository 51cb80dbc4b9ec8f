package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/straumann-tools/ldep/pkg/depgraph"
	"github.com/straumann-tools/ldep/pkg/scanner"
	"github.com/straumann-tools/ldep/pkg/utils"
	"github.com/straumann-tools/ldep/pkg/writer"
)

var (
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	bannerFmt = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
)

func usage() {
	fmt.Fprintf(os.Stderr, "\nUsage: %s [flags] [nm_files]\n\n", os.Args[0])
	fmt.Fprint(os.Stderr, "  Object file dependency analysis; the input files must be\n")
	fmt.Fprint(os.Stderr, "  created with 'nm -g -fposix'.\n\n")
	fmt.Fprint(os.Stderr, "  If no nm_files are given, stdin is used. The first nm_file is special:\n")
	fmt.Fprint(os.Stderr, "  it lists MANDATORY objects/symbols (the application's files); objects\n")
	fmt.Fprint(os.Stderr, "  added by later files are optional unless a mandatory object depends\n")
	fmt.Fprint(os.Stderr, "  on one, in which case it becomes mandatory too.\n\n")
	flag.PrintDefaults()
}

func main() {
	os.Exit(run())
}

func run() int {
	var (
		scriptFile   = flag.String("e", "", "emit a linker script with EXTERN statements on success")
		removalFile  = flag.String("r", "", "un-link the objects named (one per line) in this file from Optional")
		entrySym     = flag.String("A", "", "use this symbol's definer as the Application seed instead of the first listing")
		logFile      = flag.String("o", "", "redirect log output to this file instead of stdout")
		lenient      = flag.Bool("f", false, "lenient scanner: accept local symbols and unrecognized types as imports")
		multipleDefs = flag.Bool("m", false, "check for symbols defined in multiple objects")
		interactive  = flag.Bool("i", false, "enter the interactive query loop")
		showDeps     = flag.Bool("d", false, "show all module dependencies (huge output)")
		showSyms     = flag.Bool("s", false, "show all symbol info (huge output)")
		logLink      = flag.Bool("l", false, "log info about the linking process")
		logUnlink    = flag.Bool("u", false, "log info about the unlinking process")
		quiet        = flag.Bool("q", false, "quiet: just build the database and do basic checks")
	)
	flag.Usage = usage
	flag.Parse()

	logWriter := io.Writer(os.Stdout)
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, errStyle.Render("opening log file: "+err.Error()))
			return 1
		}
		defer f.Close()
		logWriter = f
	}

	level := zap.WarnLevel
	if *logLink || *logUnlink {
		level = zap.DebugLevel
	}
	zlog := newLogger(logWriter, level)
	defer zlog.Sync()
	depgraph.SetLogger(zlog)
	log := zlog.Sugar()
	log.Debugw("starting ingest", "files", flag.Args())

	g := depgraph.New(*lenient, *logLink || *logUnlink)

	files := flag.Args()
	if len(files) == 0 {
		files = []string{"<stdin>"}
	}

	var appBoundary *depgraph.Object
	for _, name := range files {
		r, closer, err := openInput(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, errStyle.Render("opening "+name+": "+err.Error()))
			return 1
		}
		if err := scanner.Scan(r, name, *lenient, g); err != nil {
			fmt.Fprintln(os.Stderr, errStyle.Render("scanning "+name+": "+err.Error()))
			if closer != nil {
				closer.Close()
			}
			return 1
		}
		if closer != nil {
			closer.Close()
		}
		if appBoundary == nil && len(g.Objects) > 0 {
			appBoundary = g.Objects[len(g.Objects)-1]
		}
	}

	g.FinishIngest()

	fmt.Fprintln(logWriter, bannerFmt.Render("Looking for UNDEFINED symbols:"))
	for _, ref := range g.UndefinedPod().Exports {
		fmt.Fprintf(logWriter, " - '%s'\n", ref.Sym.Name)
	}
	fmt.Fprintln(logWriter, "done")

	utils.Assertf(g.CheckObjectPointers() == nil, "object pointer sanity check failed before linking")

	if *entrySym != "" {
		if err := g.SeedFromEntrySymbol(*entrySym); err != nil {
			fmt.Fprintln(os.Stderr, errStyle.Render(err.Error()))
			return 1
		}
	} else {
		g.SeedFromWatermark(appBoundary)
	}

	if *quiet {
		fmt.Fprintln(logWriter, "OK, that's it for now")
		return 0
	}

	if *showSyms {
		for _, name := range g.SortedSymbolNames() {
			sym, _ := g.LookupSymbol(name)
			depgraph.TrackSym(logWriter, sym)
		}
	}

	if *showDeps {
		for _, f := range g.Objects {
			fmt.Fprintf(logWriter, "\nFlat dependency list for objects requiring: %s\n", f.DisplayName())
			depgraph.TrackObj(logWriter, f)
		}
	}

	fmt.Fprintln(logWriter, "Removing undefined symbols")
	g.PruneUndefined()

	if *removalFile != "" {
		if err := processRemovalList(g, *removalFile, logWriter); err != nil {
			fmt.Fprintln(os.Stderr, errStyle.Render(err.Error()))
			return 1
		}
	}

	if *multipleDefs {
		depgraph.CheckMultipleDefs(logWriter, g.Application)
		depgraph.CheckMultipleDefs(logWriter, g.Optional)
	}

	if *interactive {
		if err := repl(g, os.Stdin, os.Stderr); err != nil {
			fmt.Fprintln(os.Stderr, errStyle.Render(err.Error()))
			return 1
		}
	}

	utils.Assertf(g.CheckObjectPointers() == nil, "object pointer sanity check failed after linking")

	if *scriptFile != "" {
		fmt.Fprintf(logWriter, "Writing linker script to '%s'...", *scriptFile)
		f, err := os.Create(*scriptFile)
		if err != nil {
			fmt.Fprintln(logWriter, "opening file failed.")
			fmt.Fprintln(os.Stderr, errStyle.Render(err.Error()))
			return 1
		}
		err = writer.WriteScript(f, buildScriptViews(g), false)
		f.Close()
		if err != nil {
			fmt.Fprintln(os.Stderr, errStyle.Render(err.Error()))
			return 1
		}
		fmt.Fprintln(logWriter, "done.")
	}

	return 0
}

// newLogger builds a logger that writes plain diagnostic lines to w at
// or above level; it is routed to the same destination as the human-
// readable report via the "-o" flag.
func newLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	encoder := zapcore.NewConsoleEncoder(cfg)
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core)
}

func openInput(name string) (io.Reader, io.Closer, error) {
	if name == "<stdin>" {
		return os.Stdin, nil, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func processRemovalList(g *depgraph.Graph, path string, log io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening removal list: %w", err)
	}
	defer f.Close()

	seen := utils.NewMapSet[string]()
	s := bufio.NewScanner(f)
	for s.Scan() {
		name := strings.TrimSpace(s.Text())
		if name == "" || seen.Contains(name) {
			continue
		}
		seen.Add(name)

		matches, err := g.FindObjects(name)
		if err != nil {
			fmt.Fprintf(log, "skipping '%s': %s\n", name, err)
			continue
		}
		if len(matches) == 0 {
			fmt.Fprintf(log, "object '%s' not found, skipping\n", name)
			continue
		}
		for _, obj := range matches {
			if g.UnlinkObject(obj) {
				fmt.Fprintln(log, warnStyle.Render(fmt.Sprintf("removal of '%s' rejected: needed by the application", obj.DisplayName())))
			}
		}
	}
	return s.Err()
}

func buildScriptViews(g *depgraph.Graph) []writer.LinkSetView {
	toView := func(set *depgraph.LinkSet) writer.LinkSetView {
		v := writer.LinkSetView{Name: set.Name}
		for _, obj := range set.Members {
			ov := writer.ObjectView{DisplayName: obj.DisplayName()}
			for _, ex := range obj.Exports {
				ov.Exports = append(ov.Exports, ex.Sym.Name)
			}
			v.Members = append(v.Members, ov)
		}
		return v
	}
	return []writer.LinkSetView{toView(g.Application), toView(g.Optional)}
}

// repl implements the "-i" interactive query loop: read queries from
// r until a single "." line, dispatching bracketed object names to
// TrackObj (disambiguating by numbered choice when more than one
// object matches) and everything else to TrackSym.
func repl(g *depgraph.Graph, r io.Reader, w io.Writer) error {
	in := bufio.NewScanner(r)

	prompt := func() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Query database (enter single '.' to quit) for")
		fmt.Fprintln(w, " A) Symbols, e.g. 'printf'")
		fmt.Fprintln(w, " B) Objects, e.g. '[printf.o]', 'libc.a[printf.o]'")
	}

	prompt()
	for in.Scan() {
		line := strings.TrimSpace(in.Text())
		if line == "." {
			return nil
		}
		if line == "" {
			prompt()
			continue
		}

		if strings.HasSuffix(line, "]") {
			matches, err := g.FindObjects(line)
			if err != nil {
				fmt.Fprintf(w, "object '%s' not found, try again.\n", line)
				continue
			}
			if len(matches) == 0 {
				fmt.Fprintf(w, "object '%s' not found, try again.\n", line)
				continue
			}

			choice := 0
			if len(matches) > 1 {
				fmt.Fprintln(w, "multiple instances found, make a choice:")
				for i, obj := range matches {
					fmt.Fprintf(w, "%d) - %s\n", i, obj.DisplayName())
				}
				c, ok, quit := readChoice(in, w, len(matches))
				if quit {
					return nil
				}
				if !ok {
					fmt.Fprintln(w, "bailing out")
					return nil
				}
				choice = c
			}
			depgraph.TrackObj(w, matches[choice])
			continue
		}

		sym, ok := g.LookupSymbol(line)
		if !ok {
			fmt.Fprintf(w, "Symbol '%s' not found, try again\n", line)
			continue
		}
		depgraph.TrackSym(w, sym)
	}
	return in.Err()
}

func readChoice(in *bufio.Scanner, w io.Writer, nf int) (choice int, ok bool, quit bool) {
	for {
		if !in.Scan() {
			return 0, false, false
		}
		line := in.Text()
		if line == "." {
			return 0, false, true
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || n < 0 || n >= nf {
			if line == "" {
				return 0, false, false
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Invalid Choice, try again")
			continue
		}
		return n, true, false
	}
}

