package stamp

import (
	"fmt"

	"github.com/imd-care/care-reports/pkg/models/domain"
)

const (
	DefaultFontSize = 10
	// DefaultOffset is the distance of the footer line from the bottom edge
	DefaultOffset = 10
	// DefaultHeight is the line box height of the footer
	DefaultHeight = 4
)

type Options struct {
	FontSize float64
	Offset   float64
	Height   float64
}

func DefaultOptions() Options {
	return Options{
		FontSize: DefaultFontSize,
		Offset:   DefaultOffset,
		Height:   DefaultHeight,
	}
}

// FooterText is the page numbering label of page index out of total
func FooterText(index, total int) string {
	return fmt.Sprintf("Page %d of %d", index, total)
}

// Stamp appends a centered "Page i of N" footer to every page and sets
// TotalPages. Existing commands are left untouched and the input document is
// not modified.
func Stamp(doc domain.Document, opts Options) domain.Document {
	total := len(doc.Pages)
	out := doc
	out.TotalPages = total
	out.Pages = make([]domain.Page, total)

	for i, p := range doc.Pages {
		cmds := make([]domain.DrawCommand, 0, len(p.Commands)+1)
		cmds = append(cmds, p.Commands...)
		cmds = append(cmds, domain.TextAt{
			X:        doc.Geometry.PageWidth / 2,
			Y:        doc.Geometry.PageHeight - opts.Offset,
			FontSize: opts.FontSize,
			Text:     FooterText(p.Index, total),
			Align:    domain.AlignCenter,
			Height:   opts.Height,
		})

		p.Commands = cmds
		out.Pages[i] = p
	}
	return out
}
