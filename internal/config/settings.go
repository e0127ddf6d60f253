package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/renato0307/roomsched/internal/domain"
)

// Defaults applied when neither settings.json nor the environment set a value
const (
	DefaultCandidateCap = 10
	DefaultDayEnd       = "22:00"
	DefaultDayStart     = "07:00"
	DefaultDriver       = "sqlite"
	DefaultListenAddr   = ":3000"
	DefaultMaxLogFiles  = 1000
	DefaultTimezone     = "Local"
)

// DatabaseSettings selects the persistence driver
type DatabaseSettings struct {
	DSN    string `json:"dsn,omitempty" mapstructure:"dsn"`
	Driver string `json:"driver,omitempty" mapstructure:"driver"`
}

// Settings represents the structure of $ROOMSCHED_HOME/settings.json
type Settings struct {
	Database            DatabaseSettings `json:"database" mapstructure:"database"`
	DayEnd              string           `json:"day_end,omitempty" mapstructure:"day_end"`
	DayStart            string           `json:"day_start,omitempty" mapstructure:"day_start"`
	Debug               bool             `json:"debug,omitempty" mapstructure:"debug"`
	DefaultCandidateCap int              `json:"default_candidate_cap,omitempty" mapstructure:"default_candidate_cap"`
	ListenAddr          string           `json:"listen_addr,omitempty" mapstructure:"listen_addr"`
	MaxLogFiles         int              `json:"max_log_files,omitempty" mapstructure:"max_log_files"`
	Timezone            string           `json:"timezone,omitempty" mapstructure:"timezone"`
}

// LoadSettings loads settings from $ROOMSCHED_HOME/settings.json with ROOMSCHED_* environment
// overrides (e.g. ROOMSCHED_DATABASE_DRIVER). A missing file is not an error.
func LoadSettings() (*Settings, error) {
	return loadSettingsFrom(GetSettingsPath())
}

func loadSettingsFrom(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	v.SetDefault("database.driver", DefaultDriver)
	v.SetDefault("database.dsn", "")
	v.SetDefault("day_end", DefaultDayEnd)
	v.SetDefault("day_start", DefaultDayStart)
	v.SetDefault("debug", false)
	v.SetDefault("default_candidate_cap", DefaultCandidateCap)
	v.SetDefault("listen_addr", DefaultListenAddr)
	v.SetDefault("max_log_files", DefaultMaxLogFiles)
	v.SetDefault("timezone", DefaultTimezone)

	v.SetEnvPrefix("ROOMSCHED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	if settings.Database.Driver == DefaultDriver && settings.Database.DSN == "" {
		settings.Database.DSN = GetDBPath()
	}
	settings.Database.DSN = ExpandPath(settings.Database.DSN)

	return &settings, nil
}

// Defaults returns the settings used when settings.json cannot be read
func Defaults() *Settings {
	return &Settings{
		Database:            DatabaseSettings{DSN: GetDBPath(), Driver: DefaultDriver},
		DayEnd:              DefaultDayEnd,
		DayStart:            DefaultDayStart,
		DefaultCandidateCap: DefaultCandidateCap,
		ListenAddr:          DefaultListenAddr,
		MaxLogFiles:         DefaultMaxLogFiles,
		Timezone:            DefaultTimezone,
	}
}

// Location resolves the facility time zone
func (s *Settings) Location() (*time.Location, error) {
	if s.Timezone == "" || s.Timezone == DefaultTimezone {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

// OperatingDay returns the facility operating hours in minutes since midnight
func (s *Settings) OperatingDay() (start, end int, err error) {
	if start, err = domain.ParseClock(s.DayStart); err != nil {
		return 0, 0, fmt.Errorf("invalid day_start: %w", err)
	}
	if end, err = domain.ParseClock(s.DayEnd); err != nil {
		return 0, 0, fmt.Errorf("invalid day_end: %w", err)
	}
	if start >= end {
		return 0, 0, fmt.Errorf("%w: day_start %s must be before day_end %s", domain.ErrValidation, s.DayStart, s.DayEnd)
	}
	return start, end, nil
}
