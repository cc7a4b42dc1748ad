package report

import (
	"github.com/imd-care/care-reports/pkg/models/domain"
	"github.com/imd-care/care-reports/pkg/services/config"
	"github.com/imd-care/care-reports/pkg/services/layout"
	"github.com/imd-care/care-reports/pkg/services/stamp"
)

func geometry(s *config.Settings) domain.Geometry {
	return domain.Geometry{
		PageWidth:  s.Page.Width,
		PageHeight: s.Page.Height,
		Margins: domain.Margins{
			Top:    s.Page.MarginTop,
			Right:  s.Page.MarginRight,
			Bottom: s.Page.MarginBottom,
			Left:   s.Page.MarginLeft,
		},
	}
}

func layoutOptions(s *config.Settings, heading []layout.HeadingLine) layout.Options {
	var fill domain.RGB
	if len(s.Table.HeadFill) == 3 {
		fill = domain.RGB{R: s.Table.HeadFill[0], G: s.Table.HeadFill[1], B: s.Table.HeadFill[2]}
	}

	return layout.Options{
		TitleHeight:   s.Metrics.TitleHeight,
		TitleFontSize: s.Fonts.SectionTitle,
		HeaderHeight:  s.Metrics.HeaderHeight,
		RowHeight:     s.Metrics.RowHeight,
		SectionGap:    s.Metrics.SectionGap,
		Heading:       heading,
		HeadingGap:    s.Metrics.HeadingGap,
		TableStyle: domain.TableStyle{
			Theme:        s.Table.Theme,
			HeadFill:     fill,
			HeadFontSize: s.Fonts.Header,
			BodyFontSize: s.Fonts.Body,
			CellPadding:  s.Table.CellPadding,
		},
	}
}

func stampOptions(s *config.Settings) stamp.Options {
	return stamp.Options{
		FontSize: s.Fonts.Footer,
		Offset:   s.Footer.Offset,
		Height:   s.Footer.Height,
	}
}
