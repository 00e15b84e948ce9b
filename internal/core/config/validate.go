package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/hay-kot/criterio"
	"github.com/hay-kot/fastcuid/pkg/cuid2"
	"github.com/hay-kot/fastcuid/pkg/tmpl"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// TemplateData defines the fields available to output templates.
type TemplateData struct {
	ID    string
	Index int
}

// ValidateDeep performs comprehensive validation of the configuration.
// Unlike Validate(), this checks file access and template syntax.
func (c *Config) ValidateDeep(configPath string) error {
	var errs criterio.FieldErrorsBuilder

	if configPath != "" {
		if info, err := os.Stat(configPath); err == nil {
			if info.IsDir() {
				errs = errs.Append("config", fmt.Errorf("%s is a directory, not a file", configPath))
			}
		} else if !os.IsNotExist(err) {
			errs = errs.Append("config", fmt.Errorf("cannot access %s: %w", configPath, err))
		}
	}

	if c.Output.Template != "" {
		if err := validateTemplate(c.Output.Template); err != nil {
			errs = errs.Append("output.template", fmt.Errorf("template error: %w", err))
		}
	}

	return c.validateFields(errs).ToError()
}

// Warnings returns non-fatal issues with the configuration.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Generator.RandomBytes < cuid2.DefaultRandomBytes {
		warnings = append(warnings, ValidationWarning{
			Category: "Generator",
			Item:     "random_bytes",
			Message:  fmt.Sprintf("%d is below the default of %d", c.Generator.RandomBytes, cuid2.DefaultRandomBytes),
		})
	}

	if c.Output.Template != "" && c.Output.Format == FormatJSON {
		warnings = append(warnings, ValidationWarning{
			Category: "Output",
			Item:     "template",
			Message:  "template is ignored when format is json",
		})
	}

	if limit := runtime.NumCPU() * 4; c.Batch.Workers > limit {
		warnings = append(warnings, ValidationWarning{
			Category: "Batch",
			Item:     "workers",
			Message:  fmt.Sprintf("%d workers exceeds %d (4x CPU count); extra workers only contend on the counter", c.Batch.Workers, limit),
		})
	}

	return warnings
}

// validateTemplate renders tmplStr against sample data.
func validateTemplate(tmplStr string) error {
	_, err := tmpl.Render(tmplStr, TemplateData{ID: "a" + strings.Repeat("0", cuid2.Length-1), Index: 0})
	return err
}

