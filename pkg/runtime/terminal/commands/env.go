package commands

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/imd-care/care-reports/pkg/adapters"
	"github.com/imd-care/care-reports/pkg/models/domain"
	"github.com/imd-care/care-reports/pkg/runtime/export"
	"github.com/imd-care/care-reports/pkg/services/config"
	"github.com/imd-care/care-reports/pkg/store/artifact"
	"github.com/imd-care/care-reports/pkg/store/duckdb"
	"github.com/imd-care/care-reports/pkg/store/jsonfile"
	"github.com/imd-care/care-reports/pkg/store/records"
)

const (
	DefaultDBPath      = "care.db"
	DefaultPresetsFile = ".carereportcfg"
)

// Env carries the root flags and resolves the collaborators shared by the
// subcommands
type Env struct {
	SettingsPath string
	DBPath       string
	PresetsPath  string
	Exporters    export.Registry
}

// DefaultPresetsPath is ~/.carereportcfg, or the bare file name when the home
// directory is unknown
func DefaultPresetsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultPresetsFile
	}
	return filepath.Join(home, DefaultPresetsFile)
}

func (e *Env) Settings() (*config.Settings, error) {
	return config.LoadSettings(e.SettingsPath)
}

// OpenStore opens the DuckDB file. The caller closes the returned db.
func (e *Env) OpenStore() (records.Store, *sql.DB, error) {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: e.DBPath})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database %s: %w", e.DBPath, err)
	}
	store, err := records.NewStore(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return store, db, nil
}

// Collections reads the record collections from a JSON fixture when one is
// given, from the database otherwise
func (e *Env) Collections(ctx context.Context, fixture string) (domain.Collections, error) {
	if fixture != "" {
		set, err := jsonfile.Load(fixture)
		if err != nil {
			return domain.Collections{}, err
		}
		return adapters.MapRecordSetStoreToDomain(set), nil
	}

	store, db, err := e.OpenStore()
	if err != nil {
		return domain.Collections{}, err
	}
	defer db.Close()
	return store.Collections(ctx)
}

func (e *Env) Presets() (config.PresetRegistry, error) {
	reg, err := config.NewPresetRegistry(e.PresetsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets %s: %w", e.PresetsPath, err)
	}
	return reg, nil
}

// Sink picks the S3 bucket from settings when configured, a directory
// otherwise. dir overrides the configured output directory.
func (e *Env) Sink(ctx context.Context, settings *config.Settings, dir string) (artifact.Sink, error) {
	out := settings.Output
	if dir == "" && out.S3Bucket != "" {
		return artifact.NewS3SinkFromEnv(ctx, out.S3Bucket, out.S3Prefix, out.S3Region)
	}
	if dir == "" {
		dir = out.Dir
	}
	return artifact.NewFileSink(dir), nil
}
