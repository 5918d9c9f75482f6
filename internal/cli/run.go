// Package cli implements appdeckctl, an offline client operating directly
// on the app store.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/MrSnakeDoc/appdeck/internal/app"
	"github.com/MrSnakeDoc/appdeck/internal/config"
	"github.com/MrSnakeDoc/appdeck/internal/logger"
	"github.com/MrSnakeDoc/appdeck/internal/store"
	"github.com/MrSnakeDoc/appdeck/internal/utils"
	"github.com/MrSnakeDoc/appdeck/internal/version"
)

type globalFlags struct {
	dataFile string
	verbose  bool
	version  bool
}

func parseGlobalFlags(args []string) (globalFlags, []string, error) {
	fs := flag.NewFlagSet("appdeckctl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SetInterspersed(false) // stop at the command name

	var g globalFlags
	fs.StringVarP(&g.dataFile, "data-file", "f", "", "Use this JSON document (forces the file backend)")
	fs.BoolVarP(&g.verbose, "verbose", "v", false, "Log store activity to stderr")
	fs.BoolVar(&g.version, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return g, nil, err
	}
	return g, fs.Args(), nil
}

// Run is the main entry point. args excludes the program name.
// Returns the process exit code.
func Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	g, rest, err := parseGlobalFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(out)
			return 0
		}
		_, _ = fmt.Fprintln(errOut, "error:", err)
		printUsage(errOut)
		return 1
	}

	if g.version {
		_, _ = fmt.Fprintln(out, "appdeckctl", version.String())
		return 0
	}
	if len(rest) == 0 || rest[0] == "help" {
		printUsage(out)
		return 0
	}

	cmd := findCommand(rest[0])
	if cmd == nil {
		_, _ = fmt.Fprintf(errOut, "error: unknown command %q\n", rest[0])
		printUsage(errOut)
		return 1
	}

	var opts []config.Option
	if g.dataFile != "" {
		opts = append(opts, config.WithDataFile(g.dataFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		_, _ = fmt.Fprintln(errOut, "error:", err)
		return 1
	}

	log := logger.Nop()
	if g.verbose {
		log = logger.New("debug", true)
	}

	backend, client, err := app.OpenBackend(ctx, cfg, log)
	if err != nil {
		_, _ = fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	if client != nil {
		defer utils.Close(client)
	}

	env := &Env{Out: out, Err: errOut, Store: store.New(backend, log), Locale: cfg.SortLocale}
	return cmd.run(ctx, env, rest[1:])
}

func findCommand(name string) *Command {
	for _, c := range commands() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Usage: appdeckctl [--data-file path] [-v] <command> [args]")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Commands:")
	for _, c := range commands() {
		_, _ = fmt.Fprintln(w, c.helpLine())
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Without --data-file the store is chosen by APPDECK_STORE_BACKEND.")
}
