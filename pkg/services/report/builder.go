package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/imd-care/care-reports/pkg/models/domain"
	"github.com/imd-care/care-reports/pkg/services/config"
	"github.com/imd-care/care-reports/pkg/services/filter"
	"github.com/imd-care/care-reports/pkg/services/layout"
	"github.com/imd-care/care-reports/pkg/services/sections"
	"github.com/imd-care/care-reports/pkg/services/stamp"
	"github.com/rs/zerolog"
)

const (
	KindClinical = "clinical"
	KindAdmin    = "admin"

	ClinicalTitle = "IMD-Care Report"
)

var ErrInvalidTab = errors.New("invalid report tab")

// ReportBuildError is the single failure a build call returns. No document
// accompanies it.
type ReportBuildError struct {
	Report string
	Err    error
}

func (e *ReportBuildError) Error() string {
	return fmt.Sprintf("failed to build %s report: %v", e.Report, e.Err)
}

func (e *ReportBuildError) Unwrap() error {
	return e.Err
}

type ClinicalRequest struct {
	Collections domain.Collections
	Filter      domain.FilterSpec
	Tab         domain.ReportTab
}

type AdminRequest struct {
	Collections domain.Collections
	DateRange   domain.DateRange
	// Title overrides the configured admin title
	Title string
	// PeriodLabel is printed verbatim under the title when set
	PeriodLabel string
}

type Builder struct {
	settings *config.Settings
	now      func() time.Time
	newID    func() string
}

type Option func(*Builder)

func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		b.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(b *Builder) {
		b.newID = newID
	}
}

func NewBuilder(settings *config.Settings, opts ...Option) *Builder {
	b := &Builder{
		settings: settings,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildClinical filters the collections, builds one section per non-empty
// collection of the selected tab, paginates and stamps the result.
func (b *Builder) BuildClinical(ctx context.Context, req ClinicalRequest) (doc domain.Document, err error) {
	defer b.guard(ctx, KindClinical, &doc, &err)
	logger := zerolog.Ctx(ctx)

	tab := req.Tab
	if tab == "" {
		tab = domain.ReportTabAll
	}
	if !tab.Valid() {
		return domain.Document{}, fmt.Errorf("%q: %w", tab, ErrInvalidTab)
	}

	sources := []struct {
		kind    domain.RecordKind
		records []domain.Record
	}{
		{domain.RecordKindAdmission, req.Collections.AdmissionRecords()},
		{domain.RecordKindConsultation, req.Collections.ConsultationRecords()},
		{domain.RecordKindAppointment, req.Collections.AppointmentRecords()},
	}

	var built []domain.Section
	for _, src := range sources {
		if !tab.Includes(src.kind) {
			continue
		}
		kept := filter.Filter(src.records, req.Filter)
		logger.Debug().
			Str("kind", string(src.kind)).
			Int("total", len(src.records)).
			Int("kept", len(kept)).
			Msg("filtered records")
		if len(kept) == 0 {
			continue
		}
		built = append(built, sections.Build(src.kind, kept))
	}

	generatedAt := b.now()
	heading := b.heading(ClinicalTitle, generatedAt, periodLine(req.Filter.DateRange, ""))
	return b.assemble(ctx, ClinicalTitle, generatedAt, built, heading)
}

// BuildAdmin applies the date range to admissions and consultations and
// builds the statistical sections of the administrative report.
func (b *Builder) BuildAdmin(ctx context.Context, req AdminRequest) (doc domain.Document, err error) {
	defer b.guard(ctx, KindAdmin, &doc, &err)

	inRange := filter.DatePredicate(req.DateRange)
	admissions := filter.Apply(req.Collections.AdmissionRecords(), inRange)
	consultations := filter.Apply(req.Collections.ConsultationRecords(), inRange)

	zerolog.Ctx(ctx).Debug().
		Int("admissions", len(admissions)).
		Int("consultations", len(consultations)).
		Msg("filtered admin records")

	built := []domain.Section{
		sections.Summary(admissions, consultations, b.settings.Admin.Capacity),
		sections.Departments(admissions, consultations, b.settings.Admin.Departments),
		sections.SafetyTypes(admissions),
		sections.Urgencies(consultations),
	}

	title := req.Title
	if title == "" {
		title = b.settings.Admin.Title
	}
	generatedAt := b.now()
	heading := b.heading(title, generatedAt, periodLine(req.DateRange, req.PeriodLabel))
	return b.assemble(ctx, title, generatedAt, built, heading)
}

func (b *Builder) assemble(
	ctx context.Context,
	title string,
	generatedAt time.Time,
	built []domain.Section,
	heading []layout.HeadingLine,
) (domain.Document, error) {
	doc, err := layout.Layout(built, geometry(b.settings), layoutOptions(b.settings, heading))
	if err != nil {
		return domain.Document{}, fmt.Errorf("layout: %w", err)
	}

	doc.ID = b.newID()
	doc.Title = title
	doc.GeneratedAt = generatedAt
	doc = stamp.Stamp(doc, stampOptions(b.settings))

	zerolog.Ctx(ctx).Debug().
		Str("document", doc.ID).
		Int("sections", len(built)).
		Int("pages", doc.TotalPages).
		Msg("report assembled")
	return doc, nil
}

// guard converts stage errors and panics into a ReportBuildError and drops
// any partial document
func (b *Builder) guard(ctx context.Context, report string, doc *domain.Document, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("panic: %v", r)
	}
	if *err == nil {
		return
	}

	*doc = domain.Document{}
	var buildErr *ReportBuildError
	if !errors.As(*err, &buildErr) {
		*err = &ReportBuildError{Report: report, Err: *err}
	}
	zerolog.Ctx(ctx).Error().
		Err(*err).
		Str("report", report).
		Msg("report build failed")
}

func (b *Builder) heading(title string, generatedAt time.Time, period string) []layout.HeadingLine {
	m, f := b.settings.Metrics, b.settings.Fonts
	lines := []layout.HeadingLine{
		{Text: title, FontSize: f.DocumentTitle, Height: m.HeadingHeight},
		{Text: "Generated on: " + generatedAt.Format(sections.DateTimeLayout), FontSize: f.Subtitle, Height: m.SubtitleHeight},
	}
	if period != "" {
		lines = append(lines, layout.HeadingLine{Text: period, FontSize: f.Subtitle, Height: m.SubtitleHeight})
	}
	return lines
}

func periodLine(r domain.DateRange, label string) string {
	if label != "" {
		return "Period: " + label
	}
	if !r.Bounded() {
		return ""
	}
	return fmt.Sprintf("Period: %s to %s", sections.FormatDate(*r.From), sections.FormatDate(*r.To))
}
