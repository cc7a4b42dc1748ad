package adapters

import (
	"github.com/imd-care/care-reports/pkg/models/api"
	"github.com/imd-care/care-reports/pkg/models/domain"
)

func MapBadgeDomainToApi(b *domain.Badge) *api.Badge {
	if b == nil {
		return nil
	}
	return &api.Badge{Text: b.Text, Tone: b.Tone.String()}
}

func MapRowDomainToApi(r domain.Row) api.Row {
	return api.Row{
		Cells: append([]string{}, r.Cells...),
		Badge: MapBadgeDomainToApi(r.Badge),
	}
}

func MapTableStyleDomainToApi(s domain.TableStyle) *api.TableStyle {
	return &api.TableStyle{
		Theme:          s.Theme,
		HeadFill:       [3]uint8{s.HeadFill.R, s.HeadFill.G, s.HeadFill.B},
		HeadFontSize:   s.HeadFontSize,
		BodyFontSize:   s.BodyFontSize,
		CellPadding:    s.CellPadding,
		HeaderRepeated: s.HeaderRepeated,
	}
}

func MapCommandDomainToApi(c domain.DrawCommand) api.Command {
	switch cmd := c.(type) {
	case domain.TextAt:
		return api.Command{
			Kind:     string(cmd.Kind()),
			X:        cmd.X,
			Y:        cmd.Y,
			FontSize: cmd.FontSize,
			Text:     cmd.Text,
			Align:    string(cmd.Align),
			Height:   cmd.Height,
		}
	case domain.Table:
		rows := make([]api.Row, 0, len(cmd.Body))
		for _, r := range cmd.Body {
			rows = append(rows, MapRowDomainToApi(r))
		}
		return api.Command{
			Kind:         string(cmd.Kind()),
			X:            cmd.X,
			Y:            cmd.Y,
			ColumnWidths: append([]float64{}, cmd.ColumnWidths...),
			Header:       append([]string{}, cmd.Header...),
			Rows:         rows,
			HeaderHeight: cmd.HeaderHeight,
			RowHeight:    cmd.RowHeight,
			Style:        MapTableStyleDomainToApi(cmd.Style),
		}
	default:
		return api.Command{Kind: string(c.Kind())}
	}
}

func MapDocumentDomainToApi(doc domain.Document) api.Document {
	res := api.Document{
		ID:          doc.ID,
		Title:       doc.Title,
		GeneratedAt: doc.GeneratedAt,
		Geometry: api.Geometry{
			PageWidth:    doc.Geometry.PageWidth,
			PageHeight:   doc.Geometry.PageHeight,
			MarginTop:    doc.Geometry.Margins.Top,
			MarginRight:  doc.Geometry.Margins.Right,
			MarginBottom: doc.Geometry.Margins.Bottom,
			MarginLeft:   doc.Geometry.Margins.Left,
		},
		TotalPages: doc.TotalPages,
		Pages:      make([]api.Page, 0, len(doc.Pages)),
	}
	for _, p := range doc.Pages {
		page := api.Page{Index: p.Index, Commands: make([]api.Command, 0, len(p.Commands))}
		for _, c := range p.Commands {
			page.Commands = append(page.Commands, MapCommandDomainToApi(c))
		}
		res.Pages = append(res.Pages, page)
	}
	return res
}

func MapPresetToApi(name string, filter domain.FilterSpec, tab domain.ReportTab) api.Preset {
	return api.Preset{
		Name:      name,
		From:      FormatDateBound(filter.DateRange.From),
		To:        FormatDateBound(filter.DateRange.To),
		Specialty: filter.Specialty,
		Search:    filter.SearchQuery,
		Tab:       string(tab),
	}
}
