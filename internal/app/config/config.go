// Package config provides read-only access to application configuration,
// sourced from the store's config map with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/chronotask/chronotask/internal/domain/model"
)

// Config provides typed accessors over the store's config map plus
// environment overrides. This abstracts the configuration source so the
// use case layer never touches raw key/value strings.
type Config interface {
	DBPath() string
	WorkHoursStart() model.ClockTime
	WorkHoursEnd() model.ClockTime
	DefaultEstimateMinutes() int
	DefaultCurveType() string
	ConfigSource() string
}

// AppConfig is the concrete Config implementation, built by merging the
// built-in defaults (lowest precedence), a defaults file, the store's
// config map, and environment variables (highest precedence).
type AppConfig struct {
	dbPath                 string
	workHoursStart         model.ClockTime
	workHoursEnd           model.ClockTime
	defaultEstimateMinutes int
	defaultCurveType       string
	configSource           string
}

const (
	defaultDBPath               = "chronotask.db"
	defaultWorkHoursStartHour   = 9
	defaultWorkHoursEndHour     = 17
	defaultEstimateMinutesValue = 30
	defaultCurveTypeValue       = "linear"
)

// EnvDBPath, EnvWorkHoursStart, and EnvWorkHoursEnd are the environment
// variables consulted before store/defaults values (§2A).
const (
	EnvDBPath         = "CHRONOTASK_DB_PATH"
	EnvWorkHoursStart = "CHRONOTASK_WORK_HOURS_START"
	EnvWorkHoursEnd   = "CHRONOTASK_WORK_HOURS_END"
	EnvDefaultsFile   = "CHRONOTASK_DEFAULTS_FILE"
)

// DefaultsFile is the optional on-disk YAML defaults document. It sits
// below the store's config map and above AppConfig's own built-in
// defaults in precedence.
type DefaultsFile struct {
	DBPath                 string `yaml:"db_path"`
	WorkHoursStart         string `yaml:"work_hours_start"`
	WorkHoursEnd           string `yaml:"work_hours_end"`
	DefaultEstimateMinutes int    `yaml:"default_estimate_minutes"`
	DefaultCurveType       string `yaml:"curve_type"`
}

// LoadDefaultsFile reads and parses a YAML defaults file at path. A
// missing file is not an error — it yields a zero-value DefaultsFile,
// meaning "no overrides from this layer".
func LoadDefaultsFile(path string) (*DefaultsFile, error) {
	if path == "" {
		return &DefaultsFile{}, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &DefaultsFile{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read defaults file: %w", err)
	}

	var d DefaultsFile
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse defaults file: %w", err)
	}
	return &d, nil
}

// Load builds an AppConfig from the store's config map (as returned by
// repository.ConfigRepository.All), layering an optional YAML defaults
// file beneath it and applying environment overrides last. defaults may
// be nil, meaning no defaults-file layer.
func Load(storeConfig map[string]string, defaults *DefaultsFile) *AppConfig {
	c := &AppConfig{
		dbPath:                 defaultDBPath,
		workHoursStart:         model.ClockTime{Hour: defaultWorkHoursStartHour},
		workHoursEnd:           model.ClockTime{Hour: defaultWorkHoursEndHour},
		defaultEstimateMinutes: defaultEstimateMinutesValue,
		defaultCurveType:       defaultCurveTypeValue,
		configSource:           "default",
	}

	if defaults != nil {
		if defaults.DBPath != "" {
			c.dbPath = defaults.DBPath
			c.configSource = "defaults_file"
		}
		if defaults.WorkHoursStart != "" {
			if ct, err := model.ParseClockTime(defaults.WorkHoursStart); err == nil {
				c.workHoursStart = ct
				c.configSource = "defaults_file"
			}
		}
		if defaults.WorkHoursEnd != "" {
			if ct, err := model.ParseClockTime(defaults.WorkHoursEnd); err == nil {
				c.workHoursEnd = ct
				c.configSource = "defaults_file"
			}
		}
		if defaults.DefaultEstimateMinutes > 0 {
			c.defaultEstimateMinutes = defaults.DefaultEstimateMinutes
			c.configSource = "defaults_file"
		}
		if defaults.DefaultCurveType != "" {
			c.defaultCurveType = defaults.DefaultCurveType
			c.configSource = "defaults_file"
		}
	}

	if v, ok := storeConfig["db_path"]; ok && v != "" {
		c.dbPath = v
		c.configSource = "store"
	}
	if v, ok := storeConfig["work_hours_start"]; ok {
		if ct, err := model.ParseClockTime(v); err == nil {
			c.workHoursStart = ct
			c.configSource = "store"
		}
	}
	if v, ok := storeConfig["work_hours_end"]; ok {
		if ct, err := model.ParseClockTime(v); err == nil {
			c.workHoursEnd = ct
			c.configSource = "store"
		}
	}
	if v, ok := storeConfig["default_estimate_minutes"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.defaultEstimateMinutes = n
			c.configSource = "store"
		}
	}
	if v, ok := storeConfig["curve_type"]; ok && v != "" {
		c.defaultCurveType = v
		c.configSource = "store"
	}

	if v := os.Getenv(EnvDBPath); v != "" {
		c.dbPath = v
		c.configSource = "env"
	}
	if v := os.Getenv(EnvWorkHoursStart); v != "" {
		if ct, err := model.ParseClockTime(v); err == nil {
			c.workHoursStart = ct
			c.configSource = "env"
		}
	}
	if v := os.Getenv(EnvWorkHoursEnd); v != "" {
		if ct, err := model.ParseClockTime(v); err == nil {
			c.workHoursEnd = ct
			c.configSource = "env"
		}
	}

	return c
}

func (c *AppConfig) DBPath() string                 { return c.dbPath }
func (c *AppConfig) WorkHoursStart() model.ClockTime { return c.workHoursStart }
func (c *AppConfig) WorkHoursEnd() model.ClockTime   { return c.workHoursEnd }
func (c *AppConfig) DefaultEstimateMinutes() int     { return c.defaultEstimateMinutes }
func (c *AppConfig) DefaultCurveType() string        { return c.defaultCurveType }
func (c *AppConfig) ConfigSource() string            { return c.configSource }
