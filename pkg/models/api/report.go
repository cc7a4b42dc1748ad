package api

import "time"

// DateFilter bounds are "2006-01-02" dates or RFC3339 timestamps
type DateFilter struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

type ClinicalReportRequest struct {
	DateFilter
	Specialty string `json:"specialty,omitempty"`
	Search    string `json:"search,omitempty" validate:"max=200"`
	Tab       string `json:"tab,omitempty" validate:"omitempty,oneof=all admissions consultations appointments"`
	Preset    string `json:"preset,omitempty"`
}

type AdminReportRequest struct {
	DateFilter
	Title  string `json:"title,omitempty" validate:"max=120"`
	Period string `json:"period,omitempty" validate:"max=120"`
}

type Badge struct {
	Text string `json:"text"`
	Tone string `json:"tone"`
}

type Row struct {
	Cells []string `json:"cells"`
	Badge *Badge   `json:"badge,omitempty"`
}

type TableStyle struct {
	Theme          string   `json:"theme"`
	HeadFill       [3]uint8 `json:"head_fill"`
	HeadFontSize   float64  `json:"head_font_size"`
	BodyFontSize   float64  `json:"body_font_size"`
	CellPadding    float64  `json:"cell_padding"`
	HeaderRepeated bool     `json:"header_repeated,omitempty"`
}

// Command is a draw command tagged by kind. Text fields are set for "text",
// table fields for "table".
type Command struct {
	Kind     string  `json:"kind"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	FontSize float64 `json:"font_size,omitempty"`
	Text     string  `json:"text,omitempty"`
	Align    string  `json:"align,omitempty"`
	Height   float64 `json:"height,omitempty"`

	ColumnWidths []float64   `json:"column_widths,omitempty"`
	Header       []string    `json:"header,omitempty"`
	Rows         []Row       `json:"rows,omitempty"`
	HeaderHeight float64     `json:"header_height,omitempty"`
	RowHeight    float64     `json:"row_height,omitempty"`
	Style        *TableStyle `json:"style,omitempty"`
}

type Page struct {
	Index    int       `json:"index"`
	Commands []Command `json:"commands"`
}

type Geometry struct {
	PageWidth    float64 `json:"page_width"`
	PageHeight   float64 `json:"page_height"`
	MarginTop    float64 `json:"margin_top"`
	MarginRight  float64 `json:"margin_right"`
	MarginBottom float64 `json:"margin_bottom"`
	MarginLeft   float64 `json:"margin_left"`
}

type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	GeneratedAt time.Time `json:"generated_at"`
	Geometry    Geometry  `json:"geometry"`
	TotalPages  int       `json:"total_pages"`
	Pages       []Page    `json:"pages"`
}

type Preset struct {
	Name      string `json:"name"`
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
	Specialty string `json:"specialty"`
	Search    string `json:"search,omitempty"`
	Tab       string `json:"tab"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
