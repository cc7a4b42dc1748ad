package export

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/imd-care/care-reports/pkg/models/domain"
)

// TableConfig maps page units onto monospace character cells
type TableConfig struct {
	UnitsPerChar   float64
	MinColumnWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		UnitsPerChar:   2,
		MinColumnWidth: 4,
	}
}

const pageTemplate = `{{define "table"}}{{$w := .Widths}}{{separator $w}}
{{formatRow $w .Header}}
{{separator $w}}
{{range .Rows}}{{formatRow $w .Cells}}{{if .Badge}} {{.Badge}}{{end}}
{{end}}{{separator $w}}

{{end}}{{range $i, $page := .Pages}}{{if $i}}{{pageBreak}}
{{end}}{{range $page.Blocks}}{{if .Table}}{{template "table" .Table}}{{else if eq .Align "center"}}{{center .Text}}
{{else}}{{.Text}}
{{end}}{{end}}{{end}}`

type textRow struct {
	Cells []string
	Badge string
}

type textTable struct {
	Widths []int
	Header []string
	Rows   []textRow
}

type textBlock struct {
	Text  string
	Align string
	Table *textTable
}

type textPage struct {
	Blocks []textBlock
}

type textDocument struct {
	Pages []textPage
}

type textExporter struct {
	config TableConfig
}

func NewTextExporter(config TableConfig) Exporter {
	if config.UnitsPerChar <= 0 {
		config.UnitsPerChar = DefaultTableConfig().UnitsPerChar
	}
	return &textExporter{config: config}
}

func (e *textExporter) Format() string      { return "text" }
func (e *textExporter) Extension() string   { return "txt" }
func (e *textExporter) ContentType() string { return "text/plain; charset=utf-8" }

// Export writes a monospace dump of every page. Table columns keep the
// proportions of the laid out widths.
func (e *textExporter) Export(w io.Writer, doc domain.Document) error {
	lineWidth := e.chars(doc.Geometry.PageWidth)

	funcMap := template.FuncMap{
		"formatRow": func(widths []int, cells []string) string {
			var b strings.Builder
			b.WriteString("|")
			for i, width := range widths {
				cell := ""
				if i < len(cells) {
					cell = truncate(cells[i], width)
				}
				fmt.Fprintf(&b, " %-*s |", width, cell)
			}
			return b.String()
		},
		"separator": func(widths []int) string {
			var b strings.Builder
			b.WriteString("+")
			for _, width := range widths {
				b.WriteString(strings.Repeat("-", width+2))
				b.WriteString("+")
			}
			return b.String()
		},
		"center": func(text string) string {
			pad := (lineWidth - utf8.RuneCountInString(text)) / 2
			if pad <= 0 {
				return text
			}
			return strings.Repeat(" ", pad) + text
		},
		"pageBreak": func() string {
			return strings.Repeat("=", lineWidth)
		},
	}

	t, err := template.New("document").Funcs(funcMap).Parse(pageTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(w, e.view(doc))
}

func (e *textExporter) chars(units float64) int {
	n := int(math.Round(units / e.config.UnitsPerChar))
	return max(n, e.config.MinColumnWidth)
}

func (e *textExporter) view(doc domain.Document) textDocument {
	out := textDocument{Pages: make([]textPage, 0, len(doc.Pages))}
	for _, p := range doc.Pages {
		var page textPage
		for _, cmd := range p.Commands {
			switch c := cmd.(type) {
			case domain.TextAt:
				page.Blocks = append(page.Blocks, textBlock{Text: c.Text, Align: string(c.Align)})
			case domain.Table:
				page.Blocks = append(page.Blocks, textBlock{Table: e.table(c)})
			}
		}
		out.Pages = append(out.Pages, page)
	}
	return out
}

func (e *textExporter) table(t domain.Table) *textTable {
	widths := make([]int, len(t.ColumnWidths))
	for i, w := range t.ColumnWidths {
		widths[i] = e.chars(w)
	}

	rows := make([]textRow, 0, len(t.Body))
	for _, r := range t.Body {
		row := textRow{Cells: r.Cells}
		if r.Badge != nil {
			row.Badge = r.Badge.Tone.String()
		}
		rows = append(rows, row)
	}
	return &textTable{Widths: widths, Header: t.Header, Rows: rows}
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "~"
}
