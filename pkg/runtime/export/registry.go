package export

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/imd-care/care-reports/pkg/models/domain"
)

const (
	PrefixClinical = "imd-care-report"
	PrefixAdmin    = "imd-care-admin-report"

	artifactTimeLayout = "02-01-2006-1504"
)

var ErrUnknownFormat = errors.New("unknown export format")

// Exporter renders a stamped document into one output format
type Exporter interface {
	Format() string
	Extension() string
	ContentType() string
	Export(w io.Writer, doc domain.Document) error
}

// Registry manages the exporters available to the CLI and the HTTP handlers
type Registry interface {
	// Register adds an exporter under its format name
	Register(exporter Exporter) error
	// Get returns the exporter registered for format
	Get(format string) (Exporter, error)
	// Formats returns the registered format names in lexical order
	Formats() []string
}

type registry struct {
	mu        sync.RWMutex
	exporters map[string]Exporter
}

func NewRegistry() Registry {
	return &registry{
		exporters: make(map[string]Exporter),
	}
}

// DefaultRegistry holds the text and json exporters
func DefaultRegistry() Registry {
	r := NewRegistry()
	_ = r.Register(NewTextExporter(DefaultTableConfig()))
	_ = r.Register(NewJSONExporter())
	return r
}

func (r *registry) Register(exporter Exporter) error {
	if exporter == nil {
		return fmt.Errorf("exporter cannot be nil")
	}
	format := exporter.Format()
	if format == "" {
		return fmt.Errorf("format name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.exporters[format]; exists {
		return fmt.Errorf("format %q is already registered", format)
	}

	r.exporters[format] = exporter
	return nil
}

func (r *registry) Get(format string) (Exporter, error) {
	r.mu.RLock()
	exporter, exists := r.exporters[format]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	return exporter, nil
}

func (r *registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]string, 0, len(r.exporters))
	for format := range r.exporters {
		formats = append(formats, format)
	}
	slices.Sort(formats)
	return formats
}

// ArtifactName is the file name of an exported report, e.g.
// imd-care-report-01-03-2024-0905.txt
func ArtifactName(prefix string, t time.Time, ext string) string {
	return fmt.Sprintf("%s-%s.%s", prefix, t.Format(artifactTimeLayout), ext)
}
