package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"
	"github.com/tailscale/hujson"

	"github.com/MrSnakeDoc/appdeck/internal/domain"
	"github.com/MrSnakeDoc/appdeck/internal/store/file"
)

// commands builds fresh flag sets on every call so Run can be invoked
// repeatedly, as tests do.
func commands() []*Command {
	return []*Command{
		listCommand(),
		{
			Usage: "tags",
			Short: "List distinct tags",
			Exec:  execTags,
		},
		exportCommand(),
		importCommand(),
		{
			Usage: "delete <id>",
			Short: "Delete an app",
			Exec:  execDelete,
		},
	}
}

func listCommand() *Command {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	sortBy := fs.String("sort", "", "Order by pinned, name or updated (default: insertion order)")
	typ := fs.String("type", "all", "Filter by type: all, web or local")
	tags := fs.StringSlice("tag", nil, "Keep apps with any of these tags (repeatable)")
	pinned := fs.Bool("pinned", false, "Only pinned apps")
	query := fs.StringP("query", "q", "", "Case-insensitive text search")
	asJSON := fs.Bool("json", false, "Print JSON instead of a table")

	return &Command{
		Flags: fs,
		Usage: "list [flags]",
		Short: "List apps",
		Exec: func(ctx context.Context, env *Env, _ []string) error {
			order, ok := domain.ParseSortOrder(*sortBy)
			if !ok {
				return fmt.Errorf("invalid --sort %q", *sortBy)
			}
			tf, ok := domain.ParseTypeFilter(*typ)
			if !ok {
				return fmt.Errorf("invalid --type %q", *typ)
			}

			apps, err := env.Store.List(ctx)
			if err != nil {
				return err
			}
			apps = domain.Query(apps, domain.Filter{
				Text:       *query,
				Type:       tf,
				Tags:       *tags,
				PinnedOnly: *pinned,
			}, order, env.Locale)

			if *asJSON {
				return printJSON(env, apps)
			}
			printTable(env, apps)
			return nil
		},
	}
}

func printTable(env *Env, apps []domain.App) {
	tw := tabwriter.NewWriter(env.Out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tTYPE\tPINNED\tTAGS\tURL")
	for _, a := range apps {
		pin := ""
		if a.IsPinned {
			pin = "*"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.Name, a.Type, pin, strings.Join(a.Tags, ","), a.URL)
	}
	_ = tw.Flush()
}

func printJSON(env *Env, v any) error {
	enc := json.NewEncoder(env.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func execTags(ctx context.Context, env *Env, _ []string) error {
	tags, err := env.Store.Tags(ctx)
	if err != nil {
		return err
	}
	for _, t := range tags {
		env.Println(t)
	}
	return nil
}

func exportCommand() *Command {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	output := fs.StringP("output", "o", "", "Write to this file instead of stdout")

	return &Command{
		Flags: fs,
		Usage: "export [-o file]",
		Short: "Export every app as JSON",
		Exec: func(ctx context.Context, env *Env, _ []string) error {
			apps, err := env.Store.Export(ctx)
			if err != nil {
				return err
			}
			data, err := file.Encode(&domain.Document{Apps: apps})
			if err != nil {
				return err
			}

			if *output == "" {
				_, err := env.Out.Write(data)
				return err
			}
			if err := atomic.WriteFile(*output, bytes.NewReader(data)); err != nil {
				return fmt.Errorf("failed to write %s: %w", *output, err)
			}
			_, _ = fmt.Fprintf(env.Err, "exported %d apps to %s\n", len(apps), *output)
			return nil
		},
	}
}

func importCommand() *Command {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	strategy := fs.String("strategy", string(domain.StrategySkip), "How to treat URLs already stored: skip or replace")

	return &Command{
		Flags: fs,
		Usage: "import <file> [flags]",
		Short: "Import apps from an export file",
		Exec: func(ctx context.Context, env *Env, args []string) error {
			if len(args) != 1 {
				return errors.New("import takes exactly one file")
			}
			st, ok := domain.ParseStrategy(*strategy)
			if !ok {
				return fmt.Errorf("invalid --strategy %q", *strategy)
			}

			candidates, err := readImportFile(args[0])
			if err != nil {
				return err
			}

			res, err := env.Store.Import(ctx, candidates, st)
			if err != nil {
				var ve *domain.ValidationError
				if errors.As(err, &ve) {
					for _, is := range ve.Issues {
						_, _ = fmt.Fprintf(env.Err, "  %s: %s\n", is.Field, is.Message)
					}
				}
				return err
			}
			env.Printf("imported %d, skipped %d\n", res.Imported, res.Skipped)
			return nil
		},
	}
}

// readImportFile accepts an export document ({"apps": [...]}) or a bare
// array, with JSONC comments allowed.
func readImportFile(path string) ([]domain.CreateInput, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	data, err := hujson.Standardize(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}

	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		var list []domain.CreateInput
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("invalid app list in %s: %w", path, err)
		}
		return list, nil
	}

	var doc struct {
		Apps []domain.CreateInput `json:"apps"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid export document in %s: %w", path, err)
	}
	if doc.Apps == nil {
		return nil, fmt.Errorf("%s has no \"apps\" list", path)
	}
	return doc.Apps, nil
}

func execDelete(ctx context.Context, env *Env, args []string) error {
	if len(args) != 1 {
		return errors.New("delete takes exactly one id")
	}
	removed, err := env.Store.Delete(ctx, args[0])
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, args[0])
	}
	env.Printf("deleted %s\n", args[0])
	return nil
}
