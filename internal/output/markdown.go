package output

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"redmine-cli/internal/apperr"
)

// Markdowner is implemented by every result type.
type Markdowner interface {
	Markdown(meta Meta) string
}

// KV is one row of a field/value table.
type KV struct {
	Key   string
	Value string
}

// Table renders a pipe table.
func Table(headers []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString("|")
	for _, h := range headers {
		fmt.Fprintf(&b, " %s |", h)
	}
	b.WriteString("\n|")
	for range headers {
		b.WriteString("----|")
	}
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString("|")
		for _, cell := range row {
			fmt.Fprintf(&b, " %s |", escapeCell(cell))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// KVTable renders a two-column Field/Value table.
func KVTable(pairs []KV) string {
	var b strings.Builder
	b.WriteString("| Field | Value |\n")
	b.WriteString("|-------|-------|\n")
	for _, p := range pairs {
		fmt.Fprintf(&b, "| %s | %s |\n", p.Key, escapeCell(p.Value))
	}
	return b.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

// PaginationHint points at the next page, if there is one.
func PaginationHint(command string, meta Meta) string {
	if meta.NextOffset == nil {
		return ""
	}
	return fmt.Sprintf("*Use `%s --offset %d` for next page*", command, *meta.NextOffset)
}

// Truncate shortens s to max runes, ending in "..." when cut.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-3]) + "..."
}

// OrDash returns "-" for empty values.
func OrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// ErrorMarkdown renders an error as a blockquote.
func ErrorMarkdown(e *apperr.Error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "> **Error: %s**\n", e.Code())
	for _, line := range strings.Split(e.Error(), "\n") {
		fmt.Fprintf(&b, "> %s\n", line)
	}
	if e.Hint != "" {
		b.WriteString(">\n")
		fmt.Fprintf(&b, "> %s\n", e.Hint)
	}
	return b.String()
}
