package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/imd-care/care-reports/pkg/adapters"
	"github.com/imd-care/care-reports/pkg/models/domain"
	"gopkg.in/ini.v1"
)

var ErrPresetNotFound = errors.New("preset not found")

// Preset is a named, saved filter
type Preset struct {
	Name   string
	Filter domain.FilterSpec
	Tab    domain.ReportTab
}

// PresetRegistry exposes the filter presets stored in an ini file, one
// section per preset
type PresetRegistry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetPreset(ctx context.Context, name string) (*Preset, error)
}

type iniRegistry struct {
	cfg *ini.File
}

func NewPresetRegistry(path string) (PresetRegistry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &iniRegistry{cfg: cfg}, nil
}

func (r *iniRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (r *iniRegistry) GetPreset(_ context.Context, name string) (*Preset, error) {
	section, err := r.cfg.GetSection(name)
	if err != nil || len(section.Keys()) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrPresetNotFound)
	}

	dates, err := adapters.ParseDateRange(section.Key("from").String(), section.Key("to").String())
	if err != nil {
		return nil, fmt.Errorf("preset %s: %w", name, err)
	}

	tab := domain.ReportTab(section.Key("tab").MustString(string(domain.ReportTabAll)))
	if !tab.Valid() {
		return nil, fmt.Errorf("preset %s: unknown tab %q", name, tab)
	}

	return &Preset{
		Name: name,
		Filter: domain.FilterSpec{
			DateRange:   dates,
			Specialty:   section.Key("specialty").MustString(domain.SpecialtyAll),
			SearchQuery: section.Key("search").String(),
		},
		Tab: tab,
	}, nil
}
