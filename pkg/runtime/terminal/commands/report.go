package commands

import (
	"bytes"
	"fmt"

	"github.com/imd-care/care-reports/pkg/adapters"
	"github.com/imd-care/care-reports/pkg/models/domain"
	"github.com/imd-care/care-reports/pkg/runtime/export"
	"github.com/imd-care/care-reports/pkg/services/batch"
	"github.com/imd-care/care-reports/pkg/services/config"
	"github.com/imd-care/care-reports/pkg/services/report"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// outputFlags are shared by the report subcommands
type outputFlags struct {
	format  string
	dir     string
	stdout  bool
	fixture string
}

func (o *outputFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.format, "format", "", "Output format (text, json); defaults to the configured format")
	cmd.Flags().StringVar(&o.dir, "out", "", "Directory to write the report to")
	cmd.Flags().BoolVar(&o.stdout, "stdout", false, "Write the report to standard output")
	cmd.Flags().StringVar(&o.fixture, "fixture", "", "Read records from a JSON fixture instead of the database")
}

func NewReportCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build clinical and administrative reports",
	}
	cmd.AddCommand(newClinicalCmd(env))
	cmd.AddCommand(newAdminCmd(env))
	cmd.AddCommand(newBatchCmd(env))
	return cmd
}

type ClinicalCmd struct {
	env       *Env
	output    outputFlags
	from      string
	to        string
	specialty string
	search    string
	tab       string
	preset    string
}

func newClinicalCmd(env *Env) *cobra.Command {
	cc := &ClinicalCmd{env: env}
	cmd := &cobra.Command{
		Use:   "clinical",
		Short: "Build the filtered clinical report",
		RunE:  cc.run,
	}

	cmd.Flags().StringVar(&cc.from, "from", "", "Start date, inclusive (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVar(&cc.to, "to", "", "End date, inclusive (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVar(&cc.specialty, "specialty", domain.SpecialtyAll, "Department or specialty")
	cmd.Flags().StringVar(&cc.search, "search", "", "Case-insensitive match on name, MRN or doctor")
	cmd.Flags().StringVar(&cc.tab, "tab", string(domain.ReportTabAll), "Sections to include (all, admissions, consultations, appointments)")
	cmd.Flags().StringVar(&cc.preset, "preset", "", "Named filter preset; explicit flags override it")
	cc.output.bind(cmd)

	return cmd
}

func (cc *ClinicalCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	settings, err := cc.env.Settings()
	if err != nil {
		return err
	}

	spec, tab, err := cc.filter(cmd)
	if err != nil {
		return err
	}

	coll, err := cc.env.Collections(ctx, cc.output.fixture)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	doc, err := report.NewBuilder(settings).BuildClinical(ctx, report.ClinicalRequest{
		Collections: coll,
		Filter:      spec,
		Tab:         tab,
	})
	if err != nil {
		return err
	}

	return emit(cmd, cc.env, settings, cc.output, export.PrefixClinical, doc)
}

// filter starts from the preset, when one is named, and applies the flags
// that were set explicitly
func (cc *ClinicalCmd) filter(cmd *cobra.Command) (domain.FilterSpec, domain.ReportTab, error) {
	spec := domain.IdentityFilter()
	tab := domain.ReportTabAll

	if cc.preset != "" {
		presets, err := cc.env.Presets()
		if err != nil {
			return spec, tab, err
		}
		p, err := presets.GetPreset(cmd.Context(), cc.preset)
		if err != nil {
			return spec, tab, err
		}
		spec, tab = p.Filter, p.Tab
	}

	flags := cmd.Flags()
	if flags.Changed("from") {
		dates, err := adapters.ParseDateRange(cc.from, "")
		if err != nil {
			return spec, tab, err
		}
		spec.DateRange.From = dates.From
	}
	if flags.Changed("to") {
		dates, err := adapters.ParseDateRange("", cc.to)
		if err != nil {
			return spec, tab, err
		}
		spec.DateRange.To = dates.To
	}
	if flags.Changed("specialty") {
		spec.Specialty = cc.specialty
	}
	if flags.Changed("search") {
		spec.SearchQuery = cc.search
	}
	if flags.Changed("tab") {
		tab = domain.ReportTab(cc.tab)
	}
	return spec, tab, nil
}

type AdminCmd struct {
	env    *Env
	output outputFlags
	from   string
	to     string
	period string
	title  string
}

func newAdminCmd(env *Env) *cobra.Command {
	ac := &AdminCmd{env: env}
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Build the administrative statistics report",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.from, "from", "", "Start date, inclusive (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVar(&ac.to, "to", "", "End date, inclusive (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVar(&ac.period, "period", "", "Period label printed under the title")
	cmd.Flags().StringVar(&ac.title, "title", "", "Report title; defaults to the configured admin title")
	ac.output.bind(cmd)

	return cmd
}

func (ac *AdminCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	settings, err := ac.env.Settings()
	if err != nil {
		return err
	}

	dates, err := adapters.ParseDateRange(ac.from, ac.to)
	if err != nil {
		return err
	}

	coll, err := ac.env.Collections(ctx, ac.output.fixture)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	doc, err := report.NewBuilder(settings).BuildAdmin(ctx, report.AdminRequest{
		Collections: coll,
		DateRange:   dates,
		Title:       ac.title,
		PeriodLabel: ac.period,
	})
	if err != nil {
		return err
	}

	return emit(cmd, ac.env, settings, ac.output, export.PrefixAdmin, doc)
}

type BatchCmd struct {
	env    *Env
	output outputFlags
}

func newBatchCmd(env *Env) *cobra.Command {
	bc := &BatchCmd{env: env}
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Build one clinical report per saved preset",
		RunE:  bc.run,
	}

	out := &bc.output
	cmd.Flags().StringVar(&out.format, "format", "", "Output format (text, json); defaults to the configured format")
	cmd.Flags().StringVar(&out.dir, "out", "", "Directory to write the reports to")
	cmd.Flags().StringVar(&out.fixture, "fixture", "", "Read records from a JSON fixture instead of the database")

	return cmd
}

func (bc *BatchCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	settings, err := bc.env.Settings()
	if err != nil {
		return err
	}

	format := bc.output.format
	if format == "" {
		format = settings.Output.Format
	}
	exporter, err := bc.env.Exporters.Get(format)
	if err != nil {
		return fmt.Errorf("%w (available: %v)", err, bc.env.Exporters.Formats())
	}

	registry, err := bc.env.Presets()
	if err != nil {
		return err
	}
	names, err := registry.GetProfiles(ctx)
	if err != nil {
		return err
	}
	var presets []*config.Preset
	for _, name := range names {
		p, err := registry.GetPreset(ctx, name)
		if err != nil {
			logger.Warn().Err(err).Str("preset", name).Msg("skipping invalid preset")
			continue
		}
		presets = append(presets, p)
	}
	if len(presets) == 0 {
		return fmt.Errorf("no valid presets in %s", bc.env.PresetsPath)
	}

	coll, err := bc.env.Collections(ctx, bc.output.fixture)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	sink, err := bc.env.Sink(ctx, settings, bc.output.dir)
	if err != nil {
		return err
	}

	runner := batch.NewRunner(report.NewBuilder(settings), exporter, sink, coll, presets)
	go runner.Run(ctx)

	failed := 0
	for p := range runner.Progress() {
		res := p.Result
		if res.Err != nil {
			failed++
			fmt.Fprintf(cmd.OutOrStdout(), "%s\tfailed: %v\n", res.Preset, res.Err)
			continue
		}
		logger.Debug().Int("processed", p.Processed).Int("total", p.Total).Msg("batch progress")
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", res.Preset, res.Location)
	}
	<-runner.Done()

	if failed > 0 {
		return fmt.Errorf("%d of %d preset reports failed", failed, len(presets))
	}
	return nil
}

// emit renders doc and writes it to stdout or to the configured sink
func emit(
	cmd *cobra.Command,
	env *Env,
	settings *config.Settings,
	out outputFlags,
	prefix string,
	doc domain.Document,
) error {
	ctx := cmd.Context()

	format := out.format
	if format == "" {
		format = settings.Output.Format
	}
	exporter, err := env.Exporters.Get(format)
	if err != nil {
		return fmt.Errorf("%w (available: %v)", err, env.Exporters.Formats())
	}

	if out.stdout {
		return exporter.Export(cmd.OutOrStdout(), doc)
	}

	var buf bytes.Buffer
	if err := exporter.Export(&buf, doc); err != nil {
		return err
	}

	sink, err := env.Sink(ctx, settings, out.dir)
	if err != nil {
		return err
	}
	location, err := sink.Save(ctx, export.ArtifactName(prefix, doc.GeneratedAt, exporter.Extension()), buf.Bytes())
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().
		Str("document", doc.ID).
		Int("pages", doc.TotalPages).
		Str("location", location).
		Msg("report exported")
	fmt.Fprintln(cmd.OutOrStdout(), location)
	return nil
}
