package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"redmine-cli/internal/apperr"
)

// Render writes a successful result.
func Render(w io.Writer, f Format, data any, meta Meta) error {
	if f == FormatJSON {
		return writeJSON(w, Success(data, meta))
	}
	var text string
	if md, ok := data.(Markdowner); ok {
		text = md.Markdown(meta)
	} else {
		text = fmt.Sprintf("%v", data)
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := io.WriteString(w, text)
	return err
}

// RenderError writes e in the selected format.
func RenderError(w io.Writer, f Format, e *apperr.Error) error {
	if f == FormatJSON {
		return writeJSON(w, Failure(e))
	}
	_, err := io.WriteString(w, ErrorMarkdown(e))
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
