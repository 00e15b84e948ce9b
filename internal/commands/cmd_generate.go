package commands

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/hay-kot/fastcuid/internal/core/config"
	"github.com/hay-kot/fastcuid/internal/printer"
	"github.com/hay-kot/fastcuid/pkg/tmpl"
	"github.com/urfave/cli/v3"
)

type GenerateCmd struct {
	flags    *Flags
	count    int
	workers  int
	format   string
	template string
}

// NewGenerateCmd creates a new generate command
func NewGenerateCmd(flags *Flags) *GenerateCmd {
	return &GenerateCmd{flags: flags}
}

// Register adds the generate command to the application
func (cmd *GenerateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "generate",
		Aliases:   []string{"gen", "g"},
		Usage:     "Generate identifiers",
		UsageText: "fastcuid generate [options]",
		Description: `Generates one or more 24 character identifiers and writes them to stdout,
one per line.

Use --template to wrap each identifier, e.g. to emit SQL:

  fastcuid generate -n 3 --template "INSERT INTO users (id) VALUES ({{ sqlq .ID }});"

Templates receive .ID and .Index and may use the shq and sqlq quoting functions.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "count",
				Aliases:     []string{"n"},
				Usage:       "number of identifiers to generate",
				Value:       1,
				Destination: &cmd.count,
			},
			&cli.IntFlag{
				Name:        "workers",
				Aliases:     []string{"w"},
				Usage:       "number of goroutines (defaults to batch.workers from config)",
				Destination: &cmd.workers,
			},
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "output format (text, json)",
				Destination: &cmd.format,
			},
			&cli.StringFlag{
				Name:        "template",
				Aliases:     []string{"t"},
				Usage:       "Go template applied to each identifier (text format only)",
				Destination: &cmd.template,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *GenerateCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config

	if cmd.count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", cmd.count)
	}
	if cmd.count > cfg.Batch.MaxCount {
		return fmt.Errorf("count %d exceeds batch.max_count (%d)", cmd.count, cfg.Batch.MaxCount)
	}

	format := cmp.Or(cmd.format, cfg.Output.Format)
	if !config.IsValidFormat(format) {
		return fmt.Errorf("unknown format %q", format)
	}
	template := cmp.Or(cmd.template, cfg.Output.Template)
	if format == config.FormatJSON && template != "" {
		if cmd.template != "" {
			return fmt.Errorf("--template cannot be used with %s format", config.FormatJSON)
		}
		printer.Ctx(ctx).Warnf("output.template is ignored for %s output", config.FormatJSON)
	}

	svc := cmd.flags.Batch
	if cmd.workers > 0 {
		svc = NewBatchService(cmd.flags.Generator, cmd.workers)
	}

	ids, err := svc.Generate(ctx, cmd.count)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	out := c.Root().Writer
	if format == config.FormatJSON {
		return writeJSON(out, ids)
	}
	return writeText(out, ids, template)
}

func writeJSON(w io.Writer, ids []string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		IDs []string `json:"ids"`
	}{IDs: ids})
}

func writeText(w io.Writer, ids []string, template string) error {
	if template == "" {
		for _, id := range ids {
			if _, err := fmt.Fprintln(w, id); err != nil {
				return err
			}
		}
		return nil
	}

	t, err := tmpl.Parse(template)
	if err != nil {
		return err
	}

	for i, id := range ids {
		line, err := t.Execute(config.TemplateData{ID: id, Index: i})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}
