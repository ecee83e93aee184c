package format

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/speakeasy-api/lintconfig/resolver"
)

// TextFormatter renders a resolved configuration as aligned, human readable sections.
type TextFormatter struct {
	color bool
}

func NewTextFormatter(color bool) *TextFormatter {
	return &TextFormatter{color: color}
}

func (f *TextFormatter) render(style lipgloss.Style, s string) string {
	if !f.color {
		return s
	}
	return style.Render(s)
}

func (f *TextFormatter) heading(sb *strings.Builder, title string, count int) {
	if sb.Len() > 0 {
		sb.WriteString("\n")
	}
	fmt.Fprintf(sb, "%s %s\n", f.render(headingStyle, title), f.render(detailStyle, fmt.Sprintf("(%d)", count)))
}

// padded left-aligns value to width before styling so ANSI codes do not break the columns.
func (f *TextFormatter) padded(value string, width int) string {
	pad := strings.Repeat(" ", max(width-lipgloss.Width(value), 0))
	if style, ok := severityStyles[value]; ok {
		return f.render(style, value) + pad
	}
	return value + pad
}

func (f *TextFormatter) Format(cfg *resolver.ResolvedConfig) (string, error) {
	var sb strings.Builder

	rules := cfg.Rules()
	f.heading(&sb, "rules", rules.Len())
	for name, entry := range rules.All() {
		fmt.Fprintf(&sb, "  %s %s", f.padded(entry.Severity.String(), 5), name)
		if len(entry.Options) > 0 {
			opts, err := json.Marshal(entry.Options)
			if err != nil {
				return "", fmt.Errorf("rule %s: %w", name, err)
			}
			sb.WriteString(" ")
			sb.WriteString(f.render(detailStyle, string(opts)))
		}
		sb.WriteString("\n")
	}

	globals := cfg.Globals()
	f.heading(&sb, "globals", globals.Len())
	for name, access := range globals.All() {
		fmt.Fprintf(&sb, "  %s %s\n", f.padded(string(access), 8), name)
	}

	opts := cfg.ParserOptions()
	f.heading(&sb, "parser_options", opts.Len())
	for name, value := range opts.All() {
		encoded, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("parser option %s: %w", name, err)
		}
		fmt.Fprintf(&sb, "  %s: %s\n", name, encoded)
	}

	f.heading(&sb, "ignores", len(cfg.Ignores()))
	for _, p := range cfg.Ignores() {
		fmt.Fprintf(&sb, "  %s\n", p)
	}

	f.heading(&sb, "plugins", len(cfg.Plugins()))
	for _, p := range cfg.Plugins() {
		fmt.Fprintf(&sb, "  %s\n", p)
	}

	fmt.Fprintf(&sb, "\n%s\n", f.render(detailStyle, fmt.Sprintf("%d enabled rules, hash %s", len(cfg.EnabledRules()), cfg.Hash())))

	return sb.String(), nil
}
