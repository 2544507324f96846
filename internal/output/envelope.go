// Package output renders command results as Markdown or as a JSON envelope.
package output

import (
	"fmt"
	"strings"

	"redmine-cli/internal/apperr"
)

// Format selects the renderer.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat accepts the --format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatMarkdown, FormatJSON:
		return f, nil
	case "":
		return FormatMarkdown, nil
	}
	return "", apperr.Validationf("unknown output format: %q", s).
		WithHint("Use `--format markdown` or `--format json`.")
}

// Meta carries pagination details alongside the data.
type Meta struct {
	TotalCount *int `json:"total_count,omitempty"`
	Limit      *int `json:"limit,omitempty"`
	Offset     *int `json:"offset,omitempty"`
	NextOffset *int `json:"next_offset,omitempty"`
}

// Paginated builds list metadata. NextOffset is set only while more results
// remain past this page.
func Paginated(total, limit, offset int) Meta {
	m := Meta{TotalCount: &total, Limit: &limit, Offset: &offset}
	if next := offset + limit; next < total {
		m.NextOffset = &next
	}
	return m
}

// ErrorInfo is the error object of a failed envelope.
type ErrorInfo struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Envelope wraps every JSON response. Data and Error are written as null
// when absent.
type Envelope struct {
	OK    bool       `json:"ok"`
	Data  any        `json:"data"`
	Meta  Meta       `json:"meta"`
	Error *ErrorInfo `json:"error"`
}

func Success(data any, meta Meta) Envelope {
	return Envelope{OK: true, Data: data, Meta: meta}
}

func Failure(e *apperr.Error) Envelope {
	return Envelope{OK: false, Error: errorInfo(e)}
}

func errorInfo(e *apperr.Error) *ErrorInfo {
	info := &ErrorInfo{Code: e.Code(), Message: e.Error()}
	if e.Hint != "" || len(e.Details) > 0 || e.Status != 0 {
		info.Details = map[string]any{}
		for k, v := range e.Details {
			info.Details[k] = v
		}
		if e.Hint != "" {
			info.Details["hint"] = e.Hint
		}
		if e.Status != 0 {
			info.Details["status"] = e.Status
		}
	}
	return info
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// Range describes the 1-based window a list page covers, as "start-end of total".
func (m Meta) Range(shown int) string {
	offset := intOr(m.Offset, 0)
	total := intOr(m.TotalCount, shown)
	return fmt.Sprintf("%d-%d of %d", offset+1, offset+shown, total)
}
