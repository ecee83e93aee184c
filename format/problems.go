package format

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/speakeasy-api/lintconfig/validation"
)

// TextProblemFormatter lists one problem per line with aligned location and fragment columns.
type TextProblemFormatter struct{}

func NewTextProblemFormatter() *TextProblemFormatter {
	return &TextProblemFormatter{}
}

type problemRow struct {
	location string
	fragment string
	message  string
}

func (f *TextProblemFormatter) Format(problems []error) (string, error) {
	rows := make([]problemRow, 0, len(problems))
	locWidth, fragWidth := 0, 0

	for _, err := range problems {
		row := problemRow{location: "-", fragment: "-", message: err.Error()}

		var mErr *validation.MalformedFragmentError
		if errors.As(err, &mErr) {
			row.location = cmp.Or(mErr.Source, "-")
			row.fragment = mErr.Fragment
			row.message = describe(mErr)
		}

		locWidth = max(locWidth, len(row.location))
		fragWidth = max(fragWidth, len(row.fragment))
		rows = append(rows, row)
	}

	var sb strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&sb, "%-*s %-*s %s\n", locWidth, row.location, fragWidth, row.fragment, row.message)
	}

	if len(problems) > 0 {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "✖ %d problems\n", len(problems))
	}

	return sb.String(), nil
}

// describe renders the field and message of a malformed fragment error without repeating its location.
func describe(mErr *validation.MalformedFragmentError) string {
	switch {
	case mErr.Rule != "":
		return fmt.Sprintf("rule %q: %s", mErr.Rule, mErr.Message)
	case mErr.Field != "":
		return fmt.Sprintf("%s: %s", mErr.Field, mErr.Message)
	default:
		return mErr.Message
	}
}

type JSONProblemFormatter struct{}

func NewJSONProblemFormatter() *JSONProblemFormatter {
	return &JSONProblemFormatter{}
}

type jsonOutput struct {
	Problems []jsonProblem `json:"problems"`
	Summary  jsonSummary   `json:"summary"`
}

type jsonProblem struct {
	Fragment string `json:"fragment"`
	Field    string `json:"field,omitempty"`
	Rule     string `json:"rule,omitempty"`
	Message  string `json:"message"`
	Source   string `json:"source,omitempty"`
}

type jsonSummary struct {
	Total     int `json:"total"`
	Fragments int `json:"fragments"`
}

func (f *JSONProblemFormatter) Format(problems []error) (string, error) {
	output := jsonOutput{
		Problems: make([]jsonProblem, 0, len(problems)),
	}
	fragments := make(map[string]struct{})

	for _, err := range problems {
		var mErr *validation.MalformedFragmentError
		if errors.As(err, &mErr) {
			output.Problems = append(output.Problems, jsonProblem{
				Fragment: mErr.Fragment,
				Field:    mErr.Field,
				Rule:     mErr.Rule,
				Message:  mErr.Message,
				Source:   mErr.Source,
			})
			fragments[mErr.Fragment] = struct{}{}
		} else {
			output.Problems = append(output.Problems, jsonProblem{
				Fragment: "internal",
				Message:  err.Error(),
			})
			fragments["internal"] = struct{}{}
		}
	}

	output.Summary.Total = len(problems)
	output.Summary.Fragments = len(fragments)

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return "", err
	}

	return string(data) + "\n", nil
}

// SummaryFormatter formats problems as a per-fragment summary table.
type SummaryFormatter struct{}

// NewSummaryFormatter creates a new SummaryFormatter.
func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

type fragmentSummary struct {
	fragment string
	source   string
	count    int
}

// Format outputs a per-fragment summary table sorted by count descending.
func (f *SummaryFormatter) Format(problems []error) (string, error) {
	byFragment := make(map[string]*fragmentSummary)

	for _, err := range problems {
		name, source := "internal", ""
		var mErr *validation.MalformedFragmentError
		if errors.As(err, &mErr) {
			name = mErr.Fragment
			source, _, _ = strings.Cut(mErr.Source, ":")
		}

		fs, ok := byFragment[name]
		if !ok {
			fs = &fragmentSummary{fragment: name, source: source}
			byFragment[name] = fs
		}
		fs.count++
	}

	// Sort by count descending, then by fragment name
	sorted := make([]*fragmentSummary, 0, len(byFragment))
	for _, fs := range byFragment {
		sorted = append(sorted, fs)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].fragment < sorted[j].fragment
	})

	var sb strings.Builder

	fmt.Fprintf(&sb, "%-40s %-30s %8s\n", "Fragment", "File", "Problems")
	sb.WriteString(strings.Repeat("─", 80))
	sb.WriteString("\n")

	for _, fs := range sorted {
		fmt.Fprintf(&sb, "%-40s %-30s %8d\n", fs.fragment, cmp.Or(fs.source, "-"), fs.count)
	}

	sb.WriteString(strings.Repeat("─", 80))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "✖ %d problems across %d fragments\n", len(problems), len(byFragment))

	return sb.String(), nil
}
