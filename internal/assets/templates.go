// Package assets holds the embedded templates used for generated documents.
package assets

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

const reportTemplateName = "report.md.go.tmpl"

//go:embed templates/report.md.go.tmpl
var fallbackReportTemplate string

// ParseReportTemplate parses the report template at templatePath, falling
// back to the embedded one when the path is empty, missing or invalid.
func ParseReportTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, reportTemplateName, fallbackReportTemplate)
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"join":   strings.Join,
		"signed": signed,
	}
}

// signed formats v with two decimals and an explicit sign.
func signed(v float64) string {
	return fmt.Sprintf("%+.2f", v)
}

func parseTemplateWithFallback(templatePath string, fallbackName string, fallbackTemplate string) (*template.Template, error) {
	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			tmpl, err := template.New(filepath.Base(templatePath)).
				Funcs(funcMap()).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(fallbackName).
		Funcs(funcMap()).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}
