// Package tmpl renders identifiers through user supplied Go templates.
package tmpl

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// shellQuote wraps s in single quotes, escaping embedded single quotes with
// the '\'' sequence.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// sqlQuote returns s as a SQL string literal.
func sqlQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

var funcs = template.FuncMap{
	"shq":  shellQuote,
	"sqlq": sqlQuote,
}

// Template is a parsed template that can be executed many times.
type Template struct {
	t *template.Template
}

// Parse compiles tmpl. Undefined keys are errors at execution time.
//
// Available template functions:
//   - shq: shell-quote a string
//   - sqlq: quote a string as a SQL literal
func Parse(tmpl string) (*Template, error) {
	t, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return &Template{t: t}, nil
}

// Execute renders the template with data.
func (t *Template) Execute(data any) (string, error) {
	var buf bytes.Buffer
	if err := t.t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

// Render parses and executes tmpl in one step.
func Render(tmpl string, data any) (string, error) {
	t, err := Parse(tmpl)
	if err != nil {
		return "", err
	}
	return t.Execute(data)
}
