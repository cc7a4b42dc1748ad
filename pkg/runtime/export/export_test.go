package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/imd-care/care-reports/pkg/models/api"
	"github.com/imd-care/care-reports/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() domain.Document {
	return domain.Document{
		ID:          "doc-1",
		Title:       "IMD-Care Report",
		GeneratedAt: time.Date(2024, 3, 1, 9, 5, 0, 0, time.UTC),
		Geometry:    domain.Geometry{PageWidth: 40, PageHeight: 100},
		TotalPages:  2,
		Pages: []domain.Page{
			{
				Index: 1,
				Commands: []domain.DrawCommand{
					domain.TextAt{Text: "Report", Align: domain.AlignCenter},
					domain.TextAt{Text: "Medical Consultations", Align: domain.AlignLeft},
					domain.Table{
						ColumnWidths: []float64{12, 8},
						Header:       []string{"Patient", "Urgency"},
						Body: []domain.Row{
							{Cells: []string{"Omar Haddad", "URGENT"}, Badge: &domain.Badge{Text: "urgent", Tone: domain.BadgeToneWarning}},
							{Cells: []string{"Sami", "ROUTINE"}},
						},
					},
					domain.TextAt{Text: "Page 1 of 2", Align: domain.AlignCenter},
				},
			},
			{
				Index: 2,
				Commands: []domain.DrawCommand{
					domain.TextAt{Text: "Page 2 of 2", Align: domain.AlignCenter},
				},
			},
		},
	}
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()

	t.Run("lists formats", func(t *testing.T) {
		assert.Equal(t, []string{"json", "text"}, r.Formats())
	})

	t.Run("get", func(t *testing.T) {
		e, err := r.Get("text")
		require.NoError(t, err)
		assert.Equal(t, "txt", e.Extension())
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := r.Get("pdf")
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})

	t.Run("duplicate", func(t *testing.T) {
		err := r.Register(NewJSONExporter())
		assert.ErrorContains(t, err, "already registered")
	})

	t.Run("nil exporter", func(t *testing.T) {
		assert.Error(t, NewRegistry().Register(nil))
	})
}

func TestArtifactName(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 5, 0, 0, time.UTC)

	assert.Equal(t, "imd-care-report-01-03-2024-0905.txt", ArtifactName(PrefixClinical, at, "txt"))
	assert.Equal(t, "imd-care-admin-report-01-03-2024-0905.json", ArtifactName(PrefixAdmin, at, "json"))
}

func TestTextExporter(t *testing.T) {
	var buf bytes.Buffer

	err := NewTextExporter(DefaultTableConfig()).Export(&buf, sampleDocument())

	require.NoError(t, err)
	lines := strings.Split(buf.String(), "\n")
	// 40 units at 2 units per char gives a 20 char line
	assert.Equal(t, "       Report", lines[0])
	assert.Equal(t, "Medical Consultations", lines[1])
	assert.Equal(t, "+--------+------+", lines[2])
	assert.Equal(t, "| Patie~ | Urg~ |", lines[3])
	assert.Equal(t, "+--------+------+", lines[4])
	assert.Equal(t, "| Omar ~ | URG~ | warning", lines[5])
	assert.Equal(t, "| Sami   | ROU~ |", lines[6])
	assert.Equal(t, "    Page 1 of 2", lines[9])
	assert.Contains(t, buf.String(), strings.Repeat("=", 20)+"\n"+"    Page 2 of 2\n")
}

func TestJSONExporter(t *testing.T) {
	var buf bytes.Buffer

	err := NewJSONExporter().Export(&buf, sampleDocument())
	require.NoError(t, err)

	var got api.Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "doc-1", got.ID)
	assert.Equal(t, 2, got.TotalPages)
	require.Len(t, got.Pages, 2)

	kinds := make([]string, 0, len(got.Pages[0].Commands))
	for _, c := range got.Pages[0].Commands {
		kinds = append(kinds, c.Kind)
	}
	assert.Equal(t, []string{"text", "text", "table", "text"}, kinds)
	assert.Equal(t, "warning", got.Pages[0].Commands[2].Rows[0].Badge.Tone)
}
