package export

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/imd-care/care-reports/pkg/adapters"
	"github.com/imd-care/care-reports/pkg/models/domain"
)

type jsonExporter struct{}

func NewJSONExporter() Exporter {
	return jsonExporter{}
}

func (jsonExporter) Format() string      { return "json" }
func (jsonExporter) Extension() string   { return "json" }
func (jsonExporter) ContentType() string { return "application/json" }

func (jsonExporter) Export(w io.Writer, doc domain.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(adapters.MapDocumentDomainToApi(doc)); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return nil
}
