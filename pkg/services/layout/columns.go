package layout

import (
	"errors"
	"fmt"

	"github.com/imd-care/care-reports/pkg/models/domain"
)

var ErrMultipleAutoColumns = errors.New("table has more than one auto-width column")

// ResolveColumnWidths returns the width of every column. Fixed columns keep
// their width; the auto column, if any, gets what is left of contentWidth,
// never less than zero.
func ResolveColumnWidths(columns []domain.Column, contentWidth float64) ([]float64, error) {
	widths := make([]float64, len(columns))
	fixed := 0.0
	auto := -1

	for i, c := range columns {
		if c.Auto {
			if auto >= 0 {
				return nil, fmt.Errorf("columns %d and %d: %w", auto, i, ErrMultipleAutoColumns)
			}
			auto = i
			continue
		}
		widths[i] = c.Width
		fixed += c.Width
	}

	if auto >= 0 {
		widths[auto] = max(contentWidth-fixed, 0)
	}
	return widths, nil
}
