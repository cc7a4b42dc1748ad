package domain

import "time"

type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

type CommandKind string

const (
	CommandKindText  CommandKind = "text"
	CommandKindTable CommandKind = "table"
)

// DrawCommand is an abstract drawing instruction for the document renderer
type DrawCommand interface {
	Kind() CommandKind
	// Bottom is the lowest vertical offset the command occupies
	Bottom() float64
}

// TextAt places a single line of text. Y is the top of the line box.
type TextAt struct {
	X        float64
	Y        float64
	FontSize float64
	Text     string
	Align    Alignment
	Height   float64 // vertical advance of the line
}

func (t TextAt) Kind() CommandKind { return CommandKindText }

func (t TextAt) Bottom() float64 { return t.Y + t.Height }

type RGB struct {
	R, G, B uint8
}

// TableStyle carries rendering hints that do not affect layout
type TableStyle struct {
	Theme          string // striped, grid, plain
	HeadFill       RGB
	HeadFontSize   float64
	BodyFontSize   float64
	CellPadding    float64
	HeaderRepeated bool // header of a table continued from a previous page
}

// Table places a header row and a run of body rows. Rows of one section that
// land on different pages are emitted as separate Table commands.
type Table struct {
	X            float64
	Y            float64
	ColumnWidths []float64
	Header       []string
	Body         []Row
	HeaderHeight float64
	RowHeight    float64
	Style        TableStyle
}

func (t Table) Kind() CommandKind { return CommandKindTable }

func (t Table) Bottom() float64 {
	return t.Y + t.HeaderHeight + float64(len(t.Body))*t.RowHeight
}

type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Geometry is the fixed page size shared by every page of a document
type Geometry struct {
	PageWidth  float64
	PageHeight float64
	Margins    Margins
}

func (g Geometry) ContentWidth() float64 {
	return g.PageWidth - g.Margins.Left - g.Margins.Right
}

// BodyHeight is the vertical space between the top and bottom margins
func (g Geometry) BodyHeight() float64 {
	return g.PageHeight - g.Margins.Top - g.Margins.Bottom
}

// Page is one page of draw commands. CursorY is the vertical offset where the
// next command would be placed.
type Page struct {
	Index    int // 1-based
	Commands []DrawCommand
	CursorY  float64
}

// Document is a paginated report. TotalPages stays 0 until the footer pass.
type Document struct {
	ID          string
	Title       string
	GeneratedAt time.Time
	Geometry    Geometry
	Pages       []Page
	TotalPages  int
}

// Stamped reports whether the footer pass has run
func (d Document) Stamped() bool {
	return d.TotalPages > 0
}
