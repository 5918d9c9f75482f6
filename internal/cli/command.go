package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
	"golang.org/x/text/language"

	"github.com/MrSnakeDoc/appdeck/internal/store"
)

// Env is what a command runs against.
type Env struct {
	Out    io.Writer
	Err    io.Writer
	Store  *store.Store
	Locale language.Tag // name collation for list --sort
}

func (e *Env) Printf(format string, a ...any) { _, _ = fmt.Fprintf(e.Out, format, a...) }
func (e *Env) Println(a ...any)               { _, _ = fmt.Fprintln(e.Out, a...) }

// Command is one appdeckctl subcommand.
type Command struct {
	// Flags holds command-specific flags; nil means none.
	Flags *flag.FlagSet
	// Usage starts with the command name, e.g. "import <file> [flags]".
	Usage string
	// Short is the one-line description shown in the command list.
	Short string
	// Exec runs the command after flags are parsed.
	Exec func(ctx context.Context, env *Env, args []string) error
}

// Name returns the command name (first word of Usage).
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

func (c *Command) helpLine() string {
	return fmt.Sprintf("  %-28s %s", c.Usage, c.Short)
}

func (c *Command) printHelp(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Usage: appdeckctl", c.Usage)
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, c.Short)
	if c.Flags != nil && c.Flags.HasFlags() {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "Flags:")
		_, _ = fmt.Fprint(w, c.Flags.FlagUsages())
	}
}

// run parses flags and executes the command. Returns the exit code.
func (c *Command) run(ctx context.Context, env *Env, args []string) int {
	flags := c.Flags
	if flags == nil {
		flags = flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	}
	flags.SetOutput(io.Discard)

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.printHelp(env.Out)
			return 0
		}
		_, _ = fmt.Fprintln(env.Err, "error:", err)
		c.printHelp(env.Err)
		return 1
	}

	if err := c.Exec(ctx, env, flags.Args()); err != nil {
		_, _ = fmt.Fprintln(env.Err, "error:", err)
		return 1
	}
	return 0
}
