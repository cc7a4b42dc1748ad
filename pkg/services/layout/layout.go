package layout

import (
	"errors"
	"fmt"

	"github.com/imd-care/care-reports/pkg/models/domain"
)

var (
	// ErrRowTooTall means a section title, header and one row cannot share an
	// empty page, so pagination would never make progress
	ErrRowTooTall     = errors.New("content unit is taller than the page body")
	ErrInvalidMetrics = errors.New("invalid layout metrics")
)

// HeadingLine is a centered line placed at the top of the first page
type HeadingLine struct {
	Text     string
	FontSize float64
	Height   float64
}

// Options holds the fixed vertical metrics of one layout pass
type Options struct {
	TitleHeight   float64
	TitleFontSize float64
	HeaderHeight  float64
	RowHeight     float64
	SectionGap    float64
	Heading       []HeadingLine
	HeadingGap    float64 // space between the heading and the first section
	TableStyle    domain.TableStyle
}

// Layout places sections onto fixed-size pages. Rows are never split across
// pages; a table continued on a new page repeats its header. The returned
// document is not stamped: TotalPages is 0.
func Layout(sections []domain.Section, geometry domain.Geometry, opts Options) (domain.Document, error) {
	if err := validate(geometry, opts); err != nil {
		return domain.Document{}, err
	}

	b := newBuilder(geometry, opts)
	b.heading()
	for _, s := range sections {
		if err := b.section(s); err != nil {
			return domain.Document{}, fmt.Errorf("section %q: %w", s.Title, err)
		}
	}

	return domain.Document{
		Geometry: geometry,
		Pages:    b.finish(),
	}, nil
}

func validate(g domain.Geometry, opts Options) error {
	if g.PageWidth <= 0 || g.PageHeight <= 0 {
		return fmt.Errorf("page size %.1fx%.1f: %w", g.PageWidth, g.PageHeight, ErrInvalidMetrics)
	}
	if opts.RowHeight <= 0 || opts.HeaderHeight < 0 || opts.TitleHeight < 0 || opts.SectionGap < 0 {
		return fmt.Errorf("row height %.1f: %w", opts.RowHeight, ErrInvalidMetrics)
	}

	body := g.BodyHeight()
	if unit := opts.TitleHeight + opts.HeaderHeight + opts.RowHeight; unit > body {
		return fmt.Errorf("title+header+row %.1f exceeds body %.1f: %w", unit, body, ErrRowTooTall)
	}
	for _, line := range opts.Heading {
		if line.Height <= 0 || line.Height > body {
			return fmt.Errorf("heading line %q height %.1f: %w", line.Text, line.Height, ErrRowTooTall)
		}
	}
	return nil
}

// builder owns the cursor and the page list of a single layout call
type builder struct {
	geometry domain.Geometry
	opts     Options
	pages    []domain.Page
	current  domain.Page
	cursorY  float64
}

func newBuilder(g domain.Geometry, opts Options) *builder {
	return &builder{
		geometry: g,
		opts:     opts,
		current:  domain.Page{Index: 1},
		cursorY:  g.Margins.Top,
	}
}

func (b *builder) limit() float64 {
	return b.geometry.PageHeight - b.geometry.Margins.Bottom
}

func (b *builder) fits(height float64) bool {
	return b.cursorY+height <= b.limit()
}

func (b *builder) breakPage() {
	b.current.CursorY = b.cursorY
	b.pages = append(b.pages, b.current)
	b.current = domain.Page{Index: len(b.pages) + 1}
	b.cursorY = b.geometry.Margins.Top
}

func (b *builder) emit(cmd domain.DrawCommand) {
	b.current.Commands = append(b.current.Commands, cmd)
}

func (b *builder) heading() {
	if len(b.opts.Heading) == 0 {
		return
	}
	for _, line := range b.opts.Heading {
		if !b.fits(line.Height) {
			b.breakPage()
		}
		b.emit(domain.TextAt{
			X:        b.geometry.PageWidth / 2,
			Y:        b.cursorY,
			FontSize: line.FontSize,
			Text:     line.Text,
			Align:    domain.AlignCenter,
			Height:   line.Height,
		})
		b.cursorY += line.Height
	}
	b.cursorY += b.opts.HeadingGap
}

func (b *builder) section(s domain.Section) error {
	widths, err := ResolveColumnWidths(s.Columns, b.geometry.ContentWidth())
	if err != nil {
		return err
	}

	lead := b.opts.TitleHeight + b.opts.HeaderHeight
	if len(s.Rows) > 0 {
		lead += b.opts.RowHeight
	}
	if !b.fits(lead) {
		b.breakPage()
	}

	b.emit(domain.TextAt{
		X:        b.geometry.Margins.Left,
		Y:        b.cursorY,
		FontSize: b.opts.TitleFontSize,
		Text:     s.Title,
		Align:    domain.AlignLeft,
		Height:   b.opts.TitleHeight,
	})
	b.cursorY += b.opts.TitleHeight

	chunk := b.openTable(widths, s.Headers(), false)
	for _, row := range s.Rows {
		if !b.fits(b.opts.RowHeight) {
			b.emit(chunk)
			b.breakPage()
			chunk = b.openTable(widths, s.Headers(), true)
		}
		chunk.Body = append(chunk.Body, row)
		b.cursorY += b.opts.RowHeight
	}
	b.emit(chunk)

	b.cursorY += b.opts.SectionGap
	return nil
}

func (b *builder) openTable(widths []float64, header []string, repeated bool) domain.Table {
	style := b.opts.TableStyle
	style.HeaderRepeated = repeated

	t := domain.Table{
		X:            b.geometry.Margins.Left,
		Y:            b.cursorY,
		ColumnWidths: widths,
		Header:       header,
		HeaderHeight: b.opts.HeaderHeight,
		RowHeight:    b.opts.RowHeight,
		Style:        style,
	}
	b.cursorY += b.opts.HeaderHeight
	return t
}

func (b *builder) finish() []domain.Page {
	b.current.CursorY = b.cursorY
	return append(b.pages, b.current)
}
