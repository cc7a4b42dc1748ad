package terminal

import (
	"context"
	"io"
	"os"

	"github.com/imd-care/care-reports/pkg/runtime/export"
	"github.com/imd-care/care-reports/pkg/runtime/terminal/commands"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	env     *commands.Env
	logs    io.Writer
	verbose bool
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Exporters export.Registry
	Output    io.Writer
	// Logs receives the structured log lines, stderr by default
	Logs io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logs == nil {
		opts.Logs = os.Stderr
	}
	if opts.Exporters == nil {
		opts.Exporters = export.DefaultRegistry()
	}

	cli := &CLI{
		env:  &commands.Env{Exporters: opts.Exporters},
		logs: opts.Logs,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args[1:]
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "care-reports",
		Short:         "Clinical report builder",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if cli.verbose {
				level = zerolog.DebugLevel
			}
			logger := zerolog.New(cli.logs).Level(level).With().Timestamp().Logger()
			cmd.SetContext(logger.WithContext(cmd.Context()))
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cli.env.SettingsPath, "settings", "", "Path to the settings file (yaml, toml or json)")
	flags.StringVar(&cli.env.DBPath, "db", commands.DefaultDBPath, "Path to the DuckDB record database")
	flags.StringVar(&cli.env.PresetsPath, "presets", commands.DefaultPresetsPath(), "Path to the filter preset file")
	flags.BoolVarP(&cli.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(commands.NewReportCmd(cli.env))
	cmd.AddCommand(commands.NewRecordsCmd(cli.env))
	cmd.AddCommand(commands.NewPresetsCmd(cli.env))

	return cmd
}
