package batch

import (
	"bytes"
	"context"

	"github.com/imd-care/care-reports/pkg/models/domain"
	"github.com/imd-care/care-reports/pkg/runtime/export"
	"github.com/imd-care/care-reports/pkg/services/config"
	"github.com/imd-care/care-reports/pkg/services/report"
	"github.com/imd-care/care-reports/pkg/store/artifact"
	"github.com/rs/zerolog"
)

type Builder interface {
	BuildClinical(ctx context.Context, req report.ClinicalRequest) (domain.Document, error)
}

// Result is the outcome of one preset
type Result struct {
	Preset   string
	Location string
	Pages    int
	Err      error
}

type RunnerProgress struct {
	Processed int
	Total     int
	Result    Result
}

// Runner builds and saves one clinical report per preset over a shared
// snapshot of the record collections. Reports are built one at a time, in
// preset order.
type Runner struct {
	builder     Builder
	exporter    export.Exporter
	sink        artifact.Sink
	collections domain.Collections
	presets     []*config.Preset
	done        chan struct{}
	progress    chan RunnerProgress
}

func NewRunner(
	builder Builder,
	exporter export.Exporter,
	sink artifact.Sink,
	collections domain.Collections,
	presets []*config.Preset,
) *Runner {
	return &Runner{
		builder:     builder,
		exporter:    exporter,
		sink:        sink,
		collections: collections,
		presets:     presets,
		done:        make(chan struct{}),
		progress:    make(chan RunnerProgress, len(presets)),
	}
}

func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Progress yields one entry per processed preset and is closed when the run ends
func (r *Runner) Progress() <-chan RunnerProgress {
	return r.progress
}

func (r *Runner) Run(ctx context.Context) {
	logger := zerolog.Ctx(ctx)
	defer close(r.done)
	defer close(r.progress)

	for i, p := range r.presets {
		select {
		case <-ctx.Done():
			logger.Info().Int("processed", i).Msg("batch stopped")
			return
		default:
		}

		r.progress <- RunnerProgress{
			Processed: i + 1,
			Total:     len(r.presets),
			Result:    r.process(ctx, p),
		}
	}
}

func (r *Runner) process(ctx context.Context, p *config.Preset) Result {
	logger := zerolog.Ctx(ctx).With().Str("preset", p.Name).Logger()
	res := Result{Preset: p.Name}

	doc, err := r.builder.BuildClinical(ctx, report.ClinicalRequest{
		Collections: r.collections,
		Filter:      p.Filter,
		Tab:         p.Tab,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to build preset report")
		res.Err = err
		return res
	}

	var buf bytes.Buffer
	if err := r.exporter.Export(&buf, doc); err != nil {
		res.Err = err
		return res
	}

	name := export.ArtifactName(export.PrefixClinical+"-"+p.Name, doc.GeneratedAt, r.exporter.Extension())
	location, err := r.sink.Save(ctx, name, buf.Bytes())
	if err != nil {
		logger.Error().Err(err).Msg("failed to save preset report")
		res.Err = err
		return res
	}

	res.Location = location
	res.Pages = doc.TotalPages
	return res
}
