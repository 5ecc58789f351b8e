package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/atikulmunna/logreport/internal/model"
)

// HandlersName is the registry name of the Handlers report.
const HandlersName = "handlers"

const (
	handlerColumnWidth = 20
	levelColumnWidth   = 8
	handlerHeader      = "HANDLER"
)

// Handlers counts requests per path and severity level.
type Handlers struct {
	counts map[string]map[model.Level]int
	total  int
}

func NewHandlers() *Handlers {
	return &Handlers{counts: make(map[string]map[model.Level]int)}
}

func (h *Handlers) Name() string { return HandlersName }

func (h *Handlers) Add(rec model.Record) {
	row, ok := h.counts[rec.Path]
	if !ok {
		row = make(map[model.Level]int, len(model.Levels))
		h.counts[rec.Path] = row
	}
	row[rec.Level]++
	h.total++
}

func (h *Handlers) Total() int { return h.total }

// Count returns the number of requests seen for path at level.
// Unseen paths and levels count as zero.
func (h *Handlers) Count(path string, level model.Level) int {
	return h.counts[path][level]
}

// Paths returns every observed path in ascending byte order.
func (h *Handlers) Paths() []string {
	paths := make([]string, 0, len(h.counts))
	for p := range h.counts {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Row is one path's counts in model.Levels order.
type Row struct {
	Handler string `json:"handler"`
	Counts  []int  `json:"counts"`
}

// Table is a structured snapshot of the report.
type Table struct {
	Total  int           `json:"total_requests"`
	Levels []model.Level `json:"levels"`
	Rows   []Row         `json:"rows"`
	Totals []int         `json:"totals"`
}

// Table builds the structured form of the report.
func (h *Handlers) Table() Table {
	t := Table{
		Total:  h.total,
		Levels: append([]model.Level(nil), model.Levels...),
		Rows:   []Row{},
		Totals: make([]int, len(model.Levels)),
	}

	for _, path := range h.Paths() {
		row := Row{Handler: path, Counts: make([]int, len(model.Levels))}
		for i, level := range model.Levels {
			n := h.Count(path, level)
			row.Counts[i] = n
			t.Totals[i] += n
		}
		t.Rows = append(t.Rows, row)
	}

	return t
}

// Render formats the report as a left-aligned table. Every cell is padded,
// including the last one on each line.
func (h *Handlers) Render() string {
	t := h.Table()

	lines := make([]string, 0, len(t.Rows)+3)
	lines = append(lines, fmt.Sprintf("Total requests: %d", t.Total))

	var b strings.Builder
	b.WriteString(pad(handlerHeader, handlerColumnWidth))
	for _, level := range t.Levels {
		b.WriteString(pad(string(level), levelColumnWidth))
	}
	lines = append(lines, b.String())

	for _, row := range t.Rows {
		lines = append(lines, formatRow(row.Handler, row.Counts))
	}
	lines = append(lines, formatRow("", t.Totals))

	return strings.Join(lines, "\n")
}

func formatRow(label string, counts []int) string {
	var b strings.Builder
	b.WriteString(pad(label, handlerColumnWidth))
	for _, n := range counts {
		b.WriteString(pad(strconv.Itoa(n), levelColumnWidth))
	}
	return b.String()
}

// pad left-justifies s to width without truncating longer values.
func pad(s string, width int) string {
	return fmt.Sprintf("%-*s", width, s)
}

// Tabular is implemented by reports that can expose a structured Table.
type Tabular interface {
	Table() Table
}
