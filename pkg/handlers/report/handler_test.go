package report

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/imd-care/care-reports/pkg/models/api"
	"github.com/imd-care/care-reports/pkg/models/domain"
	"github.com/imd-care/care-reports/pkg/runtime/export"
	"github.com/imd-care/care-reports/pkg/services/config"
	reportsvc "github.com/imd-care/care-reports/pkg/services/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRecords struct {
	mock.Mock
}

func (m *mockRecords) Collections(ctx context.Context) (domain.Collections, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Collections), args.Error(1)
}

type mockBuilder struct {
	mock.Mock
}

func (m *mockBuilder) BuildClinical(ctx context.Context, req reportsvc.ClinicalRequest) (domain.Document, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Document), args.Error(1)
}

func (m *mockBuilder) BuildAdmin(ctx context.Context, req reportsvc.AdminRequest) (domain.Document, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Document), args.Error(1)
}

type mockPresets struct {
	mock.Mock
}

func (m *mockPresets) GetProfiles(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockPresets) GetPreset(ctx context.Context, name string) (*config.Preset, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.Preset), args.Error(1)
}

var generatedAt = time.Date(2024, 3, 1, 9, 5, 0, 0, time.UTC)

func stampedDoc() domain.Document {
	return domain.Document{
		ID:          "doc-1",
		Title:       "IMD-Care Report",
		GeneratedAt: generatedAt,
		Geometry:    domain.Geometry{PageWidth: 210, PageHeight: 297},
		TotalPages:  1,
		Pages: []domain.Page{{
			Index:    1,
			Commands: []domain.DrawCommand{domain.TextAt{Text: "Page 1 of 1", Align: domain.AlignCenter}},
		}},
	}
}

func sampleCollections() domain.Collections {
	return domain.Collections{
		Admissions: []domain.Admission{{ID: "a1", Name: "Omar Haddad", Department: "Neurology"}},
	}
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func endOfDay(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 23, 59, 59, 999999999, time.UTC)
	return &t
}

func TestClinicalReport(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		body           string
		setupMock      func(*mockRecords, *mockBuilder, *mockPresets)
		expectedStatus int
		expectedType   string
		expectedError  string
	}{
		{
			name: "json document",
			body: `{"from": "2024-02-01", "to": "2024-02-29", "specialty": "Neurology", "tab": "admissions"}`,
			setupMock: func(rec *mockRecords, b *mockBuilder, _ *mockPresets) {
				rec.On("Collections", mock.Anything).Return(sampleCollections(), nil)
				b.On("BuildClinical", mock.Anything, reportsvc.ClinicalRequest{
					Collections: sampleCollections(),
					Filter: domain.FilterSpec{
						DateRange: domain.DateRange{From: date(2024, 2, 1), To: endOfDay(2024, 2, 29)},
						Specialty: "Neurology",
					},
					Tab: domain.ReportTabAdmissions,
				}).Return(stampedDoc(), nil)
			},
			expectedStatus: http.StatusOK,
			expectedType:   "application/json",
		},
		{
			name:  "text document with empty body",
			query: "?format=text",
			setupMock: func(rec *mockRecords, b *mockBuilder, _ *mockPresets) {
				rec.On("Collections", mock.Anything).Return(sampleCollections(), nil)
				b.On("BuildClinical", mock.Anything, reportsvc.ClinicalRequest{
					Collections: sampleCollections(),
					Filter:      domain.IdentityFilter(),
					Tab:         domain.ReportTabAll,
				}).Return(stampedDoc(), nil)
			},
			expectedStatus: http.StatusOK,
			expectedType:   "text/plain; charset=utf-8",
		},
		{
			name: "preset with search override",
			body: `{"preset": "neuro", "search": "haddad"}`,
			setupMock: func(rec *mockRecords, b *mockBuilder, p *mockPresets) {
				p.On("GetPreset", mock.Anything, "neuro").Return(&config.Preset{
					Name:   "neuro",
					Filter: domain.FilterSpec{Specialty: "Neurology"},
					Tab:    domain.ReportTabConsultations,
				}, nil)
				rec.On("Collections", mock.Anything).Return(sampleCollections(), nil)
				b.On("BuildClinical", mock.Anything, reportsvc.ClinicalRequest{
					Collections: sampleCollections(),
					Filter:      domain.FilterSpec{Specialty: "Neurology", SearchQuery: "haddad"},
					Tab:         domain.ReportTabConsultations,
				}).Return(stampedDoc(), nil)
			},
			expectedStatus: http.StatusOK,
			expectedType:   "application/json",
		},
		{
			name: "unknown preset",
			body: `{"preset": "cardio"}`,
			setupMock: func(_ *mockRecords, _ *mockBuilder, p *mockPresets) {
				p.On("GetPreset", mock.Anything, "cardio").
					Return(nil, fmt.Errorf("cardio: %w", config.ErrPresetNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "preset not found",
		},
		{
			name:           "invalid tab",
			body:           `{"tab": "billing"}`,
			setupMock:      func(*mockRecords, *mockBuilder, *mockPresets) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Tab",
		},
		{
			name:           "invalid date",
			body:           `{"from": "yesterday"}`,
			setupMock:      func(*mockRecords, *mockBuilder, *mockPresets) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid date",
		},
		{
			name:           "malformed body",
			body:           `{"from": `,
			setupMock:      func(*mockRecords, *mockBuilder, *mockPresets) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid request body",
		},
		{
			name:           "unknown format",
			query:          "?format=pdf",
			setupMock:      func(*mockRecords, *mockBuilder, *mockPresets) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "unknown export format",
		},
		{
			name: "records unavailable",
			setupMock: func(rec *mockRecords, _ *mockBuilder, _ *mockPresets) {
				rec.On("Collections", mock.Anything).Return(domain.Collections{}, errors.New("disk I/O error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "failed to load records",
		},
		{
			name: "build failure",
			setupMock: func(rec *mockRecords, b *mockBuilder, _ *mockPresets) {
				rec.On("Collections", mock.Anything).Return(sampleCollections(), nil)
				b.On("BuildClinical", mock.Anything, mock.Anything).Return(domain.Document{},
					&reportsvc.ReportBuildError{Report: reportsvc.KindClinical, Err: errors.New("layout: row too tall")})
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "failed to build clinical report",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, builder, presets := new(mockRecords), new(mockBuilder), new(mockPresets)
			tt.setupMock(rec, builder, presets)
			h := NewHandler(rec, builder, presets, export.DefaultRegistry())

			req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/clinical"+tt.query, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			h.ClinicalReport(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				var resp api.ErrorResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Contains(t, resp.Error, tt.expectedError)
			} else {
				assert.Equal(t, tt.expectedType, w.Header().Get("Content-Type"))
				assert.Contains(t, w.Header().Get("Content-Disposition"), "imd-care-report-01-03-2024-0905")
				assert.Contains(t, w.Body.String(), "Page 1 of 1")
			}

			rec.AssertExpectations(t)
			builder.AssertExpectations(t)
			presets.AssertExpectations(t)
		})
	}
}

func TestAdminReport(t *testing.T) {
	rec, builder := new(mockRecords), new(mockBuilder)
	rec.On("Collections", mock.Anything).Return(sampleCollections(), nil)
	doc := stampedDoc()
	doc.Title = "Ward 4"
	builder.On("BuildAdmin", mock.Anything, reportsvc.AdminRequest{
		Collections: sampleCollections(),
		DateRange:   domain.DateRange{From: date(2024, 1, 1)},
		Title:       "Ward 4",
		PeriodLabel: "Q1 2024",
	}).Return(doc, nil)

	h := NewHandler(rec, builder, nil, export.DefaultRegistry())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/admin",
		strings.NewReader(`{"from": "2024-01-01", "title": "Ward 4", "period": "Q1 2024"}`))
	w := httptest.NewRecorder()

	h.AdminReport(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "imd-care-admin-report-01-03-2024-0905.json")

	var got api.Document
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "Ward 4", got.Title)
	assert.Equal(t, 1, got.TotalPages)
	builder.AssertExpectations(t)
}

func TestAdminReport_PeriodTooLong(t *testing.T) {
	h := NewHandler(new(mockRecords), new(mockBuilder), nil, export.DefaultRegistry())
	body := `{"period": "` + strings.Repeat("x", 121) + `"}`
	w := httptest.NewRecorder()

	h.AdminReport(w, httptest.NewRequest(http.MethodPost, "/api/v1/reports/admin", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Contains(t, resp.Error, "Period")
}

func TestListPresets(t *testing.T) {
	t.Run("lists valid presets", func(t *testing.T) {
		presets := new(mockPresets)
		presets.On("GetProfiles", mock.Anything).Return([]string{"neuro", "broken"}, nil)
		presets.On("GetPreset", mock.Anything, "neuro").Return(&config.Preset{
			Name:   "neuro",
			Filter: domain.FilterSpec{Specialty: "Neurology", DateRange: domain.DateRange{From: date(2024, 2, 1)}},
			Tab:    domain.ReportTabAll,
		}, nil)
		presets.On("GetPreset", mock.Anything, "broken").Return(nil, errors.New("bad date"))

		h := NewHandler(new(mockRecords), new(mockBuilder), presets, export.DefaultRegistry())
		w := httptest.NewRecorder()
		h.ListPresets(w, httptest.NewRequest(http.MethodGet, "/api/v1/presets", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var got []api.Preset
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Equal(t, []api.Preset{{
			Name:      "neuro",
			From:      "2024-02-01T00:00:00Z",
			Specialty: "Neurology",
			Tab:       "all",
		}}, got)
	})

	t.Run("no preset file", func(t *testing.T) {
		h := NewHandler(new(mockRecords), new(mockBuilder), nil, export.DefaultRegistry())
		w := httptest.NewRecorder()
		h.ListPresets(w, httptest.NewRequest(http.MethodGet, "/api/v1/presets", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})
}
