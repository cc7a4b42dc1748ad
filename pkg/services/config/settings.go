package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/imd-care/care-reports/pkg/services/sections"
	"github.com/spf13/viper"
)

// Settings is the report builder configuration. Units are millimetres for
// geometry and points for font sizes.
type Settings struct {
	Page    PageSettings    `mapstructure:"page"`
	Metrics MetricsSettings `mapstructure:"metrics"`
	Fonts   FontSettings    `mapstructure:"fonts"`
	Table   TableSettings   `mapstructure:"table"`
	Footer  FooterSettings  `mapstructure:"footer"`
	Admin   AdminSettings   `mapstructure:"admin"`
	Output  OutputSettings  `mapstructure:"output"`
}

type PageSettings struct {
	Width        float64 `mapstructure:"width" validate:"gt=0"`
	Height       float64 `mapstructure:"height" validate:"gt=0"`
	MarginTop    float64 `mapstructure:"margin_top" validate:"gte=0"`
	MarginRight  float64 `mapstructure:"margin_right" validate:"gte=0"`
	MarginBottom float64 `mapstructure:"margin_bottom" validate:"gte=0"`
	MarginLeft   float64 `mapstructure:"margin_left" validate:"gte=0"`
}

type MetricsSettings struct {
	TitleHeight    float64 `mapstructure:"title_height" validate:"gte=0"`
	HeaderHeight   float64 `mapstructure:"header_height" validate:"gte=0"`
	RowHeight      float64 `mapstructure:"row_height" validate:"gt=0"`
	SectionGap     float64 `mapstructure:"section_gap" validate:"gte=0"`
	HeadingHeight  float64 `mapstructure:"heading_height" validate:"gt=0"`
	SubtitleHeight float64 `mapstructure:"subtitle_height" validate:"gt=0"`
	HeadingGap     float64 `mapstructure:"heading_gap" validate:"gte=0"`
}

type FontSettings struct {
	DocumentTitle float64 `mapstructure:"document_title" validate:"gt=0"`
	Subtitle      float64 `mapstructure:"subtitle" validate:"gt=0"`
	SectionTitle  float64 `mapstructure:"section_title" validate:"gt=0"`
	Header        float64 `mapstructure:"header" validate:"gt=0"`
	Body          float64 `mapstructure:"body" validate:"gt=0"`
	Footer        float64 `mapstructure:"footer" validate:"gt=0"`
}

type TableSettings struct {
	Theme       string  `mapstructure:"theme" validate:"oneof=striped grid plain"`
	HeadFill    []uint8 `mapstructure:"head_fill" validate:"len=3"`
	CellPadding float64 `mapstructure:"cell_padding" validate:"gte=0"`
}

type FooterSettings struct {
	Offset float64 `mapstructure:"offset" validate:"gte=0"`
	Height float64 `mapstructure:"height" validate:"gt=0"`
}

type AdminSettings struct {
	Title       string   `mapstructure:"title" validate:"required"`
	Capacity    int      `mapstructure:"capacity" validate:"gte=0"`
	Departments []string `mapstructure:"departments" validate:"dive,required"`
}

type OutputSettings struct {
	Format   string `mapstructure:"format" validate:"required"`
	Dir      string `mapstructure:"dir"`
	S3Bucket string `mapstructure:"s3_bucket"`
	S3Prefix string `mapstructure:"s3_prefix"`
	S3Region string `mapstructure:"s3_region"`
}

var defaults = map[string]any{
	"page.width":         210.0,
	"page.height":        297.0,
	"page.margin_top":    15.0,
	"page.margin_right":  14.0,
	"page.margin_bottom": 15.0,
	"page.margin_left":   14.0,

	"metrics.title_height":    10.0,
	"metrics.header_height":   6.0,
	"metrics.row_height":      6.0,
	"metrics.section_gap":     15.0,
	"metrics.heading_height":  10.0,
	"metrics.subtitle_height": 7.0,
	"metrics.heading_gap":     15.0,

	"fonts.document_title": 20.0,
	"fonts.subtitle":       12.0,
	"fonts.section_title":  14.0,
	"fonts.header":         10.0,
	"fonts.body":           9.0,
	"fonts.footer":         10.0,

	"table.theme":        "striped",
	"table.head_fill":    []uint8{63, 81, 181},
	"table.cell_padding": 2.0,

	"footer.offset": 10.0,
	"footer.height": 4.0,

	"admin.title":       "IMD-Care Administrative Report",
	"admin.capacity":    100,
	"admin.departments": sections.DefaultDepartments,

	"output.format": "text",
	"output.dir":    ".",
}

// DefaultSettings returns the built-in settings
func DefaultSettings() *Settings {
	cfg, err := LoadSettings("")
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadSettings reads the settings file at path on top of the defaults. An
// empty path yields the defaults.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	var cfg Settings
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &cfg, nil
}
