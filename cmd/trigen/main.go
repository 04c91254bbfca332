// trigen renders triangle and pyramid text patterns.
//
// Usage:
//
//	trigen --shape pyramid --rows 5 --symbol '#'
//	trigen --shape inverted-left --rows 3 --format json
//	trigen shapes
//	trigen serve --addr :8080
//	trigen form
//
// Generated patterns are stored when --save is given (CLI) or by default in
// serve and form modes; pass --no-store to run those without a database.
// The store is configured through DB_URL, DB_NAME and COLLECTION_NAME,
// read from the environment or a .env file.
//
// Output formats (auto-detected):
//
//	terminal  — styled, framed output (default when TTY)
//	plain     — the pattern verbatim (default when piped)
//	json      — structured JSON for automation
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/dkoosis/trigen/internal/config"
	"github.com/dkoosis/trigen/internal/form"
	"github.com/dkoosis/trigen/internal/service"
	"github.com/dkoosis/trigen/internal/store"
	"github.com/dkoosis/trigen/internal/version"
	"github.com/dkoosis/trigen/internal/web"
	"github.com/dkoosis/trigen/pkg/render"
	"github.com/dkoosis/trigen/pkg/shape"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(stderr, "trigen: %v\n", err)
		return 1
	}
	settings := config.LoadSettings()

	if len(args) > 0 {
		switch args[0] {
		case "shapes":
			return runShapes(stdout)
		case "serve":
			return runServe(ctx, args[1:], settings, stderr)
		case "form":
			return runForm(ctx, args[1:], settings, stderr)
		}
	}
	return runGenerate(ctx, args, settings, stdout, stderr)
}

func runGenerate(ctx context.Context, args []string, settings *config.Settings, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("trigen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	shapeFlag := fs.String("shape", settings.Shape, "Pattern shape (see 'trigen shapes')")
	rowsFlag := fs.String("rows", strconv.Itoa(settings.Rows), "Number of rows")
	symbolFlag := fs.String("symbol", settings.Symbol, "Fill symbol (single character)")
	formatFlag := fs.String("format", "auto", "Output format: auto, terminal, plain, json")
	themeFlag := fs.String("theme", settings.Theme, "Theme: "+strings.Join(render.ThemeNames(), ", "))
	saveFlag := fs.Bool("save", false, "Store the pattern (requires DB_URL, DB_NAME, COLLECTION_NAME)")
	versionFlag := fs.Bool("version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *versionFlag {
		fmt.Fprintln(stdout, version.String())
		return 0
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "trigen: unknown command %q (expected shapes, serve or form)\n", fs.Arg(0))
		return 2
	}

	mode := resolveFormat(*formatFlag, stdout)
	if mode != "terminal" && mode != "plain" && mode != "json" {
		fmt.Fprintf(stderr, "trigen: unknown format %q (expected auto, terminal, plain, json)\n", *formatFlag)
		return 2
	}

	opts := service.Options{MaxRows: settings.MaxRows, GateOnStore: settings.GateOnStore}
	if *saveFlag {
		st, code := openStore(settings, stderr)
		if st == nil {
			return code
		}
		defer closeStore(st, stderr)
		opts.Store = st
	}

	out, err := service.New(opts).Generate(ctx, shape.Input{Shape: *shapeFlag, Rows: *rowsFlag, Symbol: *symbolFlag})
	if err != nil {
		fmt.Fprintf(stderr, "trigen: %v\n", err)
		return 2
	}

	if out.StoreErr != nil {
		fmt.Fprintf(stderr, "trigen: warning: pattern not stored: %v\n", out.StoreErr)
	}
	if !out.Visible() {
		return 1
	}

	theme := render.ThemeByName(*themeFlag)
	fmt.Fprint(stdout, render.ByName(mode, theme, termWidth(stdout)).Render(out.Pattern))
	return 0
}

func runShapes(stdout io.Writer) int {
	for _, s := range shape.All() {
		fmt.Fprintf(stdout, "%-17s %s\n", s, s.Label())
	}
	return 0
}

func runServe(ctx context.Context, args []string, settings *config.Settings, stderr io.Writer) int {
	fs := flag.NewFlagSet("trigen serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	addrFlag := fs.String("addr", settings.Addr, "HTTP listen address")
	noStoreFlag := fs.Bool("no-store", false, "Do not store generated patterns")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelInfo
	if settings.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	opts := service.Options{MaxRows: settings.MaxRows, GateOnStore: settings.GateOnStore}
	if !*noStoreFlag {
		st, code := openStore(settings, stderr)
		if st == nil {
			return code
		}
		defer closeStore(st, stderr)
		opts.Store = st
	}

	srv := web.NewServer(service.New(opts), settings, logger)
	if err := srv.ListenAndServe(ctx, *addrFlag); err != nil {
		logger.Error("server failed", "error", err)
		return 1
	}
	return 0
}

func runForm(ctx context.Context, args []string, settings *config.Settings, stderr io.Writer) int {
	fs := flag.NewFlagSet("trigen form", flag.ContinueOnError)
	fs.SetOutput(stderr)
	themeFlag := fs.String("theme", settings.Theme, "Theme: "+strings.Join(render.ThemeNames(), ", "))
	noStoreFlag := fs.Bool("no-store", false, "Do not store generated patterns")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	opts := service.Options{MaxRows: settings.MaxRows, GateOnStore: settings.GateOnStore}
	if !*noStoreFlag {
		st, code := openStore(settings, stderr)
		if st == nil {
			return code
		}
		defer closeStore(st, stderr)
		opts.Store = st
	}

	if err := form.Run(ctx, service.New(opts), settings, render.ThemeByName(*themeFlag)); err != nil {
		fmt.Fprintf(stderr, "trigen: %v\n", err)
		return 1
	}
	return 0
}

// openStore reads the store configuration and opens it.
// Returns (nil, exitCode) when persistence cannot be configured.
func openStore(settings *config.Settings, stderr io.Writer) (store.Store, int) {
	cfg, err := config.LoadStore(os.Getenv)
	if err != nil {
		var cfgErr *config.ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(stderr, "trigen: %v (set them or pass --no-store)\n", err)
		} else {
			fmt.Fprintf(stderr, "trigen: %v\n", err)
		}
		return nil, 1
	}
	st, err := store.Open(cfg, settings.StoreTimeout)
	if err != nil {
		fmt.Fprintf(stderr, "trigen: %v\n", err)
		return nil, 1
	}
	return st, 0
}

func closeStore(st store.Store, stderr io.Writer) {
	ctx, cancel := context.WithTimeout(context.Background(), config.DefaultStoreTimeout)
	defer cancel()
	if err := st.Close(ctx); err != nil {
		fmt.Fprintf(stderr, "trigen: closing store: %v\n", err)
	}
}

func resolveFormat(format string, w io.Writer) string {
	if format != "auto" {
		return format
	}
	// Auto-detect: TTY = terminal, piped = plain
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "terminal"
	}
	return "plain"
}

// termWidth returns the terminal width for w, defaulting to 80.
func termWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			return tw
		}
	}
	return 80
}
