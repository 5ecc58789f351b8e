package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/atikulmunna/logreport/internal/analyzer"
	"github.com/atikulmunna/logreport/internal/report"
)

// Renderer writes a generated report to an output stream.
type Renderer interface {
	Render(w io.Writer, res *analyzer.Result) error
}

// New returns the Renderer for format ("text" or "json").
// color only affects the text format.
func New(format string, color bool) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", "text":
		if color {
			return NewColorRenderer(), nil
		}
		return NewTextRenderer(), nil
	case "json":
		return NewJSONRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text or json)", format)
	}
}

// ---------------------------------------------------------------------------
// Text Renderer
// ---------------------------------------------------------------------------

// TextRenderer prints the report exactly as the report renders it.
type TextRenderer struct{}

func NewTextRenderer() *TextRenderer { return &TextRenderer{} }

func (r *TextRenderer) Render(w io.Writer, res *analyzer.Result) error {
	_, err := fmt.Fprintln(w, res.Text)
	return err
}

// ---------------------------------------------------------------------------
// Color Renderer (terminal output)
// ---------------------------------------------------------------------------

var (
	styleSummary = lipgloss.NewStyle().Bold(true)
	styleHeader  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true) // cyan
	styleTotals  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))           // yellow
)

// ColorRenderer highlights the summary, header and totals lines.
// Styling adds escape codes only, so column alignment is unchanged.
type ColorRenderer struct{}

func NewColorRenderer() *ColorRenderer { return &ColorRenderer{} }

func (r *ColorRenderer) Render(w io.Writer, res *analyzer.Result) error {
	lines := strings.Split(res.Text, "\n")
	for i, line := range lines {
		switch {
		case i == 0:
			lines[i] = styleSummary.Render(line)
		case i == 1:
			lines[i] = styleHeader.Render(line)
		case i == len(lines)-1 && len(lines) > 2:
			lines[i] = styleTotals.Render(line)
		}
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

// ---------------------------------------------------------------------------
// JSON Renderer (structured output for piping)
// ---------------------------------------------------------------------------

// JSONRenderer prints the report table and run statistics as one JSON object.
type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer { return &JSONRenderer{} }

// Document is the JSON shape written by JSONRenderer.
type Document struct {
	Report string         `json:"report"`
	Table  *report.Table  `json:"table,omitempty"`
	Text   string         `json:"text,omitempty"`
	Stats  analyzer.Stats `json:"stats"`
}

// NewDocument builds the JSON view of res.
func NewDocument(res *analyzer.Result) Document {
	doc := Document{Report: res.Report.Name(), Stats: res.Stats}
	if tab, ok := res.Report.(report.Tabular); ok {
		t := tab.Table()
		doc.Table = &t
	} else {
		doc.Text = res.Text
	}
	return doc
}

func (r *JSONRenderer) Render(w io.Writer, res *analyzer.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(res))
}
