package main

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/imd-care/care-reports/pkg/runtime/export"
	"github.com/imd-care/care-reports/pkg/server"
	"github.com/imd-care/care-reports/pkg/services/config"
	"github.com/imd-care/care-reports/pkg/services/report"
	"github.com/imd-care/care-reports/pkg/store/duckdb"
	"github.com/imd-care/care-reports/pkg/store/records"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const defaultDBPath = "care.db"

var (
	settingsPath string
	presetsPath  string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the IMD-Care report server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVar(&settingsPath, "settings", "", "Path to the report settings file")
	rootCmd.Flags().StringVar(&presetsPath, "presets", "", "Path to the filter presets file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadPresets opens the preset file when one is configured. A nil registry
// means the server runs without presets.
func loadPresets(ctx context.Context, path string) (config.PresetRegistry, []string, error) {
	if path == "" {
		return nil, nil, nil
	}
	presets, err := config.NewPresetRegistry(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read presets: %w", err)
	}
	names, err := presets.GetProfiles(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list presets: %w", err)
	}
	return presets, names, nil
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	presets, names, err := loadPresets(cmd.Context(), presetsPath)
	if err != nil {
		return err
	}
	if presets != nil {
		logger.Info().Strs("presets", names).Msgf("Presets at `%s` successfully loaded.", presetsPath)
	}

	dbPath := os.Getenv("CARE_DB_PATH")
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: dbPath})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	store, err := records.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create record store: %w", err)
	}

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	web := server.NewWebAPI(server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Records:   store,
			Builder:   report.NewBuilder(settings),
			Presets:   presets,
			Exporters: export.DefaultRegistry(),
			Logger:    logger,
		},
	})

	return web.Start()
}
