// Command widgetreplace searches and replaces text in editor JSON documents
// without touching widget references.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/tidwall/pretty"

	engine "github.com/42atomys/go-widget-replace"
	"github.com/42atomys/go-widget-replace/internal/config"
	"github.com/42atomys/go-widget-replace/jsondoc"
)

// Version information (set via ldflags during build).
var version = "dev"

const usage = `usage: widgetreplace <command> [flags] <file.json|->

commands:
  count        print the number of occurrences
  list         print every occurrence with its location
  replace      replace the occurrence at -index
  replace-all  replace every occurrence
  version      print the version

flags:
`

// errUsage marks errors caused by bad invocation.
var errUsage = errors.New("usage error")

type options struct {
	configPath  string
	slots       string
	logLevel    string
	pretty      bool
	search      string
	replacement string
	index       int
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	engine.ConfigureLogging(stderr)

	if err := execute(args, stdin, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, errUsage) {
			return 2
		}
		return 1
	}
	return 0
}

func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("%w: missing command", errUsage)
	}
	command := args[0]
	if command == "version" {
		fmt.Fprintf(stdout, "widgetreplace %s\n", version)
		return nil
	}

	opts, fs := newFlagSet(stderr)
	if err := fs.Parse(args[1:]); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("%w: expected exactly one input file", errUsage)
	}

	cfg, err := resolveConfig(opts, fs)
	if err != nil {
		return err
	}
	if level, ok := engine.ParseLogLevel(cfg.LogLevel); ok {
		engine.SetLogLevel(level)
	}

	raw, err := readInput(fs.Arg(0), stdin)
	if err != nil {
		return err
	}
	slog.Debug("document loaded", "path", fs.Arg(0), "bytes", len(raw), "slots", cfg.Slots)

	schema := jsondoc.Schema{Slots: cfg.Slots}
	switch command {
	case "count":
		return runCount(stdout, raw, schema, opts)
	case "list":
		return runList(stdout, raw, schema, opts)
	case "replace":
		return runReplace(stdout, stderr, raw, schema, opts, cfg.Pretty)
	case "replace-all":
		return runReplaceAll(stdout, stderr, raw, schema, opts, cfg.Pretty)
	default:
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func newFlagSet(stderr io.Writer) (*options, *flag.FlagSet) {
	opts := &options{}
	fs := flag.NewFlagSet("widgetreplace", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.configPath, "config", "", "Path to a TOML or YAML configuration file")
	fs.StringVar(&opts.slots, "slots", "", "Comma separated slot paths, overrides the configuration")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.BoolVar(&opts.pretty, "pretty", false, "Indent JSON output")
	fs.StringVar(&opts.search, "search", "", "Literal text to search for")
	fs.StringVar(&opts.replacement, "replace", "", "Replacement text")
	fs.IntVar(&opts.index, "index", 0, "Zero-based occurrence to replace")
	return opts, fs
}

// resolveConfig loads the configuration file, then applies flags that were
// set explicitly.
func resolveConfig(opts *options, fs *flag.FlagSet) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return config.Config{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "slots":
			cfg.Slots = splitSlots(opts.slots)
		case "log-level":
			cfg.LogLevel = opts.logLevel
		case "pretty":
			cfg.Pretty = opts.pretty
		}
	})

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("%w: %v", errUsage, err)
	}
	return cfg, nil
}

func splitSlots(s string) []string {
	var slots []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			slots = append(slots, part)
		}
	}
	return slots
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func requireSearch(opts *options) error {
	if opts.search == "" {
		return fmt.Errorf("%w: -search is required", errUsage)
	}
	return nil
}

func runCount(stdout io.Writer, raw []byte, schema jsondoc.Schema, opts *options) error {
	if err := requireSearch(opts); err != nil {
		return err
	}
	n, err := jsondoc.Count(raw, schema, opts.search)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, n)
	return nil
}

func runList(stdout io.Writer, raw []byte, schema jsondoc.Schema, opts *options) error {
	if err := requireSearch(opts); err != nil {
		return err
	}
	occ, err := jsondoc.Occurrences(raw, schema, opts.search)
	if err != nil {
		return err
	}
	for _, o := range occ {
		fmt.Fprintf(stdout, "%d\t%s[%d]\t%d\n", o.Index, o.Slot, o.Item, o.UTF16)
	}
	return nil
}

func runReplace(stdout, stderr io.Writer, raw []byte, schema jsondoc.Schema, opts *options, indent bool) error {
	if err := requireSearch(opts); err != nil {
		return err
	}
	count, err := jsondoc.Count(raw, schema, opts.search)
	if err != nil {
		return err
	}
	if count == 0 {
		return engine.ErrNoMatches
	}
	if opts.index < 0 || opts.index >= count {
		return fmt.Errorf("%w: index %d of %d", engine.ErrStaleIndex, opts.index, count)
	}

	out, index, newCount, err := jsondoc.ReplaceOne(raw, schema, opts.search, opts.replacement, opts.index, count)
	if err != nil {
		return err
	}
	slog.Debug("replaced occurrence", "search", opts.search, "index", opts.index, "count", newCount)

	if err := writeJSON(stdout, out, indent); err != nil {
		return err
	}
	writePosition(stderr, index, newCount)
	return nil
}

func runReplaceAll(stdout, stderr io.Writer, raw []byte, schema jsondoc.Schema, opts *options, indent bool) error {
	if err := requireSearch(opts); err != nil {
		return err
	}
	out, count, err := jsondoc.ReplaceAll(raw, schema, opts.search, opts.replacement)
	if err != nil {
		return err
	}
	slog.Debug("replaced all occurrences", "search", opts.search, "count", count)

	if err := writeJSON(stdout, out, indent); err != nil {
		return err
	}
	writePosition(stderr, 0, count)
	return nil
}

func writeJSON(w io.Writer, data []byte, indent bool) error {
	if indent {
		data = pretty.Pretty(data)
	} else if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	_, err := w.Write(data)
	return err
}

// writePosition prints the one-based position the way the editor shows it.
func writePosition(w io.Writer, index, count int) {
	current := index + 1
	if current > count {
		current = count
	}
	fmt.Fprintf(w, "%d of %d\n", current, count)
}
