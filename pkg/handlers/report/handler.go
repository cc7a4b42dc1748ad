package report

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/imd-care/care-reports/pkg/adapters"
	"github.com/imd-care/care-reports/pkg/models/api"
	"github.com/imd-care/care-reports/pkg/models/domain"
	"github.com/imd-care/care-reports/pkg/runtime/export"
	"github.com/imd-care/care-reports/pkg/services/config"
	reportsvc "github.com/imd-care/care-reports/pkg/services/report"
	"github.com/rs/zerolog"
)

const defaultFormat = "json"

// CollectionSource supplies the record collections a report is built from
type CollectionSource interface {
	Collections(ctx context.Context) (domain.Collections, error)
}

type Builder interface {
	BuildClinical(ctx context.Context, req reportsvc.ClinicalRequest) (domain.Document, error)
	BuildAdmin(ctx context.Context, req reportsvc.AdminRequest) (domain.Document, error)
}

type Handler struct {
	records   CollectionSource
	builder   Builder
	presets   config.PresetRegistry
	exporters export.Registry
	validate  *validator.Validate
}

// NewHandler wires the report endpoints. presets may be nil when no preset
// file is configured.
func NewHandler(
	records CollectionSource,
	builder Builder,
	presets config.PresetRegistry,
	exporters export.Registry,
) *Handler {
	return &Handler{
		records:   records,
		builder:   builder,
		presets:   presets,
		exporters: exporters,
		validate:  validator.New(),
	}
}

func (h *Handler) ClinicalReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.ClinicalReportRequest
	if !h.decode(w, r, &req) {
		return
	}

	exporter, ok := h.exporter(w, r)
	if !ok {
		return
	}

	spec, tab, status, err := h.clinicalFilter(ctx, req)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	coll, err := h.records.Collections(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load records")
		writeError(w, http.StatusInternalServerError, "failed to load records")
		return
	}

	doc, err := h.builder.BuildClinical(ctx, reportsvc.ClinicalRequest{
		Collections: coll,
		Filter:      spec,
		Tab:         tab,
	})
	if err != nil {
		writeBuildError(w, err)
		return
	}

	h.write(ctx, w, exporter, export.PrefixClinical, doc)
}

func (h *Handler) AdminReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.AdminReportRequest
	if !h.decode(w, r, &req) {
		return
	}

	exporter, ok := h.exporter(w, r)
	if !ok {
		return
	}

	dates, err := adapters.ParseDateRange(req.From, req.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	coll, err := h.records.Collections(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load records")
		writeError(w, http.StatusInternalServerError, "failed to load records")
		return
	}

	doc, err := h.builder.BuildAdmin(ctx, reportsvc.AdminRequest{
		Collections: coll,
		DateRange:   dates,
		Title:       req.Title,
		PeriodLabel: req.Period,
	})
	if err != nil {
		writeBuildError(w, err)
		return
	}

	h.write(ctx, w, exporter, export.PrefixAdmin, doc)
}

func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	response := []api.Preset{}
	if h.presets != nil {
		names, err := h.presets.GetProfiles(ctx)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to list presets")
			return
		}
		for _, name := range names {
			p, err := h.presets.GetPreset(ctx, name)
			if err != nil {
				logger.Warn().Err(err).Str("preset", name).Msg("skipping invalid preset")
				continue
			}
			response = append(response, adapters.MapPresetToApi(p.Name, p.Filter, p.Tab))
		}
	}

	writeJSON(w, http.StatusOK, response)
}

// clinicalFilter resolves the preset, if any, and lays the request fields
// over it
func (h *Handler) clinicalFilter(
	ctx context.Context,
	req api.ClinicalReportRequest,
) (domain.FilterSpec, domain.ReportTab, int, error) {
	spec := domain.IdentityFilter()
	tab := domain.ReportTabAll

	if req.Preset != "" {
		if h.presets == nil {
			return spec, tab, http.StatusNotFound, config.ErrPresetNotFound
		}
		p, err := h.presets.GetPreset(ctx, req.Preset)
		if errors.Is(err, config.ErrPresetNotFound) {
			return spec, tab, http.StatusNotFound, err
		}
		if err != nil {
			return spec, tab, http.StatusInternalServerError, err
		}
		spec, tab = p.Filter, p.Tab
	}

	dates, err := adapters.ParseDateRange(req.From, req.To)
	if err != nil {
		return spec, tab, http.StatusBadRequest, err
	}
	if dates.From != nil {
		spec.DateRange.From = dates.From
	}
	if dates.To != nil {
		spec.DateRange.To = dates.To
	}
	if req.Specialty != "" {
		spec.Specialty = req.Specialty
	}
	if req.Search != "" {
		spec.SearchQuery = req.Search
	}
	if req.Tab != "" {
		tab = domain.ReportTab(req.Tab)
	}
	return spec, tab, http.StatusOK, nil
}

// decode reads an optional JSON body into dst and validates it
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func (h *Handler) exporter(w http.ResponseWriter, r *http.Request) (export.Exporter, bool) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = defaultFormat
	}
	exporter, err := h.exporters.Get(format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return exporter, true
}

func (h *Handler) write(ctx context.Context, w http.ResponseWriter, exporter export.Exporter, prefix string, doc domain.Document) {
	logger := zerolog.Ctx(ctx)

	var buf bytes.Buffer
	if err := exporter.Export(&buf, doc); err != nil {
		logger.Error().Err(err).Str("format", exporter.Format()).Msg("failed to export report")
		writeError(w, http.StatusInternalServerError, "failed to export report")
		return
	}

	name := export.ArtifactName(prefix, doc.GeneratedAt, exporter.Extension())
	w.Header().Set("Content-Type", exporter.ContentType())
	w.Header().Set("Content-Disposition", `inline; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Error().Err(err).Msg("failed to write report")
	}
}

func writeBuildError(w http.ResponseWriter, err error) {
	var buildErr *reportsvc.ReportBuildError
	if errors.As(err, &buildErr) {
		writeError(w, http.StatusUnprocessableEntity, buildErr.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, api.ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
