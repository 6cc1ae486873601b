package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Format is an output format.
type Format string

// Supported formats.
const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatNDJSON   Format = "ndjson"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
)

// ErrUnsupportedFormat is returned for unknown formats and for formats a
// renderer cannot produce.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Formats lists every format in help-text order.
func Formats() []Format {
	return []Format{FormatTable, FormatJSON, FormatNDJSON, FormatCSV, FormatMarkdown, FormatPDF}
}

// ParseFormat parses a format name; "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatNDJSON, FormatCSV, FormatMarkdown, FormatPDF:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// IsBinary reports whether the format produces non-text output.
func (f Format) IsBinary() bool {
	return f == FormatPDF
}

// Extension returns the conventional file extension, without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatTable:
		return "txt"
	default:
		return string(f)
	}
}

// Render writes doc to w in format.
func Render(w io.Writer, format Format, doc Document) error {
	switch format {
	case FormatTable:
		return renderTable(w, doc)
	case FormatMarkdown:
		return renderMarkdown(w, doc)
	case FormatJSON:
		return renderJSON(w, doc)
	case FormatNDJSON:
		return renderNDJSON(w, doc)
	case FormatCSV:
		return renderCSV(w, doc)
	case FormatPDF:
		return renderPDF(w, doc)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// RenderResult is NewDocument followed by Render.
func RenderResult(w io.Writer, format Format, in Input) error {
	return Render(w, format, NewDocument(in))
}
