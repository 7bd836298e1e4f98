package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"

	"engulf/internal/errors"
	"engulf/internal/output"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// formatJSON formats the response as JSON
func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *TopResponseCLI:
		return formatTopHuman(v)
	case *ConfigShowResponse:
		return formatConfigHuman(v)
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatTopHuman(resp *TopResponseCLI) (string, error) {
	var b strings.Builder
	if err := output.WriteTable(&b, resp.Rows, resp.Summary, resp.width); err != nil {
		return "", err
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

func formatConfigHuman(resp *ConfigShowResponse) (string, error) {
	var b strings.Builder

	b.WriteString("engulf configuration\n")
	b.WriteString(strings.Repeat("─", 50) + "\n")

	switch {
	case resp.UsedDefaults:
		b.WriteString("Source: defaults (no config file found)\n")
	case resp.ConfigPath != "":
		fmt.Fprintf(&b, "Source: %s\n", resp.ConfigPath)
	}

	if len(resp.EnvOverrides) > 0 {
		b.WriteString("\nEnvironment overrides:\n")
		for _, ov := range resp.EnvOverrides {
			fmt.Fprintf(&b, "  %s=%s → %s\n", ov.Env, ov.Value, ov.Key)
		}
	}

	c := resp.Config
	groupBy := strings.Join(c.GroupBy, ",")
	if groupBy == "" {
		groupBy = "(none)"
	}
	maxDepth := fmt.Sprint(c.MaxDepth)
	if c.MaxDepth == 0 {
		maxDepth = "0 (unbounded)"
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "version: %d\n", c.Version)
	fmt.Fprintf(&b, "groupBy: %s\n", groupBy)
	fmt.Fprintf(&b, "maxDepth: %s\n", maxDepth)
	fmt.Fprintf(&b, "inputFormat: %s\n", c.InputFormat)
	fmt.Fprintf(&b, "outputFormat: %s\n", c.OutputFormat)
	fmt.Fprintf(&b, "top: %d\n", c.Top)
	b.WriteString("\nlogging:\n")
	fmt.Fprintf(&b, "  level: %s\n", c.Logging.Level)
	fmt.Fprintf(&b, "  format: %s", c.Logging.Format)

	return b.String(), nil
}

// reportError logs a failed command with its error code and suggested fixes.
func reportError(l *slog.Logger, err error) {
	attrs := []any{
		"code", string(errors.CodeOf(err)),
		"error", err.Error(),
	}
	var ee *errors.EngulfError
	if stderrors.As(err, &ee) && ee.Details != nil {
		attrs = append(attrs, "details", ee.Details)
	}
	if fixes := suggestedFixes(err); len(fixes) > 0 {
		hints := make([]string, len(fixes))
		for i, fix := range fixes {
			hints[i] = formatFix(fix)
		}
		attrs = append(attrs, "hint", strings.Join(hints, "; "))
	}
	l.Error("Command failed", attrs...)
}

func suggestedFixes(err error) []errors.FixAction {
	var ee *errors.EngulfError
	if stderrors.As(err, &ee) {
		return ee.SuggestedFixes
	}
	return nil
}

func formatFix(fix errors.FixAction) string {
	switch fix.Type {
	case errors.RunCommand:
		return fmt.Sprintf("run '%s': %s", fix.Command, fix.Description)
	case errors.ChangeFlag:
		return fmt.Sprintf("%s: %s", fix.Flag, fix.Description)
	default:
		return fix.Description
	}
}
