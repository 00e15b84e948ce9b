package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hay-kot/criterio"
	"github.com/hay-kot/fastcuid/internal/core/config"
	"github.com/hay-kot/fastcuid/internal/printer"
	"github.com/hay-kot/fastcuid/pkg/cuid2"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

type ValidateCmd struct {
	flags  *Flags
	format string
	stdin  io.Reader
}

// NewValidateCmd creates a new validate command
func NewValidateCmd(flags *Flags) *ValidateCmd {
	return &ValidateCmd{flags: flags, stdin: os.Stdin}
}

// Register adds the validate command to the application
func (cmd *ValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "validate",
		Usage:     "Check that identifiers are well formed",
		UsageText: "fastcuid validate [options] [ID...]",
		Description: `Checks each identifier for length, alphabet and a leading letter.

Identifiers are taken from the arguments, or read one per line from stdin
when no arguments are given and stdin is not a terminal.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       config.FormatText,
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ValidateCmd) run(ctx context.Context, c *cli.Command) error {
	ids := c.Args().Slice()
	if len(ids) == 0 {
		var err error
		ids, err = cmd.readInput()
		if err != nil {
			return err
		}
	}

	if len(ids) == 0 {
		return fmt.Errorf("no identifiers provided")
	}

	err := validateIDs(ids)

	if cmd.format == config.FormatJSON {
		if err := cmd.outputJSON(c.Root().Writer, ids, err); err != nil {
			return err
		}
	} else {
		cmd.outputText(printer.Ctx(ctx), ids, err)
	}

	if err != nil {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *ValidateCmd) readInput() ([]string, error) {
	if f, ok := cmd.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, fmt.Errorf("no input provided (stdin is a terminal); pass identifiers as arguments or pipe them in")
	}

	var ids []string
	scanner := bufio.NewScanner(cmd.stdin)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			ids = append(ids, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}

	return ids, nil
}

// validateIDs returns criterio field errors keyed by input position.
func validateIDs(ids []string) error {
	var errs criterio.FieldErrorsBuilder
	for i, id := range ids {
		if err := cuid2.Validate(id); err != nil {
			errs = errs.Append(fmt.Sprintf("ids[%d]", i), err)
		}
	}
	return errs.ToError()
}

func (cmd *ValidateCmd) outputJSON(w io.Writer, ids []string, validationErr error) error {
	type fieldError struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	}

	out := struct {
		Valid   bool         `json:"valid"`
		Checked int          `json:"checked"`
		Errors  []fieldError `json:"errors,omitempty"`
	}{
		Valid:   validationErr == nil,
		Checked: len(ids),
	}

	for _, fe := range extractFieldErrors(validationErr) {
		out.Errors = append(out.Errors, fieldError{Field: fe.Field, Message: fe.Err.Error()})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (cmd *ValidateCmd) outputText(p *printer.Printer, ids []string, validationErr error) {
	fieldErrs := extractFieldErrors(validationErr)
	if len(fieldErrs) == 0 {
		p.Successf("%d identifier(s) valid", len(ids))
		return
	}

	for _, fe := range fieldErrs {
		p.FailItem(fe.Field, fe.Err.Error())
	}
	p.Errorf("%d of %d identifier(s) invalid", len(fieldErrs), len(ids))
}
