// Package config loads albedo's settings from defaults, the user's config
// file, a project overlay and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/albedo/internal/engine"
	"github.com/rshade/albedo/internal/export"
	"github.com/rshade/albedo/internal/logging"
)

// Default values written by `albedo config init`.
const (
	DefaultOutputFormat = "table"
	DefaultPrecision    = 2
	DefaultLogLevel     = "warn"
	DefaultLogFormat    = "console"
	DefaultUnit         = "ft2"

	// MaxPrecision bounds the number of decimals printed for amounts.
	MaxPrecision = 6

	configFileName = "config.yaml"
	configFilePerm = 0o600
	configDirPerm  = 0o700
)

// ErrUnknownKey is returned by Get and Set for keys outside the schema.
var ErrUnknownKey = errors.New("unknown configuration key")

// Config is the full albedo configuration.
type Config struct {
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
	Estimator EstimatorConfig `yaml:"estimator"`

	configPath string
}

// OutputConfig controls rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Precision     int    `yaml:"precision"`
}

// LoggingConfig controls diagnostics. An empty File logs to stderr.
type LoggingConfig struct {
	Level  string      `yaml:"level"`
	Format string      `yaml:"format"`
	File   string      `yaml:"file,omitempty"`
	Audit  AuditConfig `yaml:"audit,omitempty"`
}

// AuditConfig enables the JSON-lines audit trail of estimate runs.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	File    string `yaml:"file,omitempty"`
}

// EstimatorConfig holds estimate defaults and rate overrides. Rates are
// keyed by their YAML name, e.g. green_subsidy_rate; absent keys keep the
// built-in value.
type EstimatorConfig struct {
	Unit        string             `yaml:"unit"`
	Currency    string             `yaml:"currency"`
	CatalogFile string             `yaml:"catalog_file,omitempty"`
	Rates       map[string]float64 `yaml:"rates,omitempty"`
}

// Default returns a configuration holding only built-in defaults.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			DefaultFormat: DefaultOutputFormat,
			Precision:     DefaultPrecision,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Estimator: EstimatorConfig{
			Unit:     DefaultUnit,
			Currency: export.DefaultCurrency,
		},
	}
}

// New loads the user's configuration: defaults, then $ALBEDO_HOME/config.yaml
// when present, then .env and environment overrides. A config file that fails
// to parse is ignored and the defaults are kept.
func New() *Config {
	cfg := Default()
	dir, err := GetConfigDir()
	if err == nil {
		cfg.configPath = filepath.Join(dir, configFileName)
		if loadErr := cfg.Load(cfg.configPath); loadErr != nil && !errors.Is(loadErr, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Warning: ignoring config file %s: %v\n", cfg.configPath, loadErr)
			cfg = Default()
			cfg.configPath = filepath.Join(dir, configFileName)
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg
}

// Load reads path onto c. Keys absent from the file keep their current value.
func (c *Config) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// LoadFile returns the defaults overlaid with path alone, without environment
// overrides, ready to be edited and saved back. A missing file yields the
// defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	cfg.configPath = path
	if err := cfg.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return cfg, nil
}

// ConfigPath returns the file Save writes to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes the file Save writes to.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Save writes the configuration to ConfigPath, creating its directory.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("no configuration path set")
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), configDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, configFilePerm); err != nil {
		return fmt.Errorf("writing %s: %w", c.configPath, err)
	}
	return nil
}

// Validate checks every setting, returning all problems joined together.
func (c *Config) Validate() error {
	var errs []error

	if _, err := export.ParseFormat(c.Output.DefaultFormat); err != nil {
		errs = append(errs, fmt.Errorf("output.default_format: %w", err))
	}
	if c.Output.Precision < 0 || c.Output.Precision > MaxPrecision {
		errs = append(errs, fmt.Errorf("output.precision: must be between 0 and %d, got %d",
			MaxPrecision, c.Output.Precision))
	}

	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		errs = append(errs, fmt.Errorf("logging.level: invalid level %q", c.Logging.Level))
	}
	switch c.Logging.Format {
	case logging.FormatJSON, logging.FormatConsole, logging.FormatText:
	default:
		errs = append(errs, fmt.Errorf("logging.format: must be json, console or text, got %q", c.Logging.Format))
	}
	if c.Logging.Audit.Enabled && c.Logging.Audit.File == "" {
		errs = append(errs, errors.New("logging.audit.file: required when audit is enabled"))
	}

	if _, err := engine.ParseUnit(c.Estimator.Unit); err != nil {
		errs = append(errs, fmt.Errorf("estimator.unit: %w", err))
	}
	if _, err := c.Estimator.Params(); err != nil {
		errs = append(errs, fmt.Errorf("estimator.rates: %w", err))
	}

	return errors.Join(errs...)
}

// Params returns the built-in rates with the configured overrides applied.
func (e EstimatorConfig) Params() (engine.Params, error) {
	params := engine.DefaultParams()
	if len(e.Rates) == 0 {
		return params, nil
	}

	fields, err := rateFields(params)
	if err != nil {
		return params, err
	}
	for key, v := range e.Rates {
		if _, ok := fields[key]; !ok {
			return params, fmt.Errorf("%w: rates.%s", ErrUnknownKey, key)
		}
		fields[key] = v
	}
	raw, err := yaml.Marshal(fields)
	if err != nil {
		return params, err
	}
	if err = yaml.Unmarshal(raw, &params); err != nil {
		return params, err
	}
	if err = params.Validate(); err != nil {
		return params, err
	}
	return params, nil
}

// UnitOrDefault returns the configured unit, falling back to ft2.
func (e EstimatorConfig) UnitOrDefault() engine.Unit {
	u, err := engine.ParseUnit(e.Unit)
	if err != nil {
		return engine.UnitSqFt
	}
	return u
}

// Get returns the value at a dotted key such as output.precision or
// estimator.rates.green_subsidy_rate.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "output.default_format":
		return c.Output.DefaultFormat, nil
	case "output.precision":
		return strconv.Itoa(c.Output.Precision), nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.format":
		return c.Logging.Format, nil
	case "logging.file":
		return c.Logging.File, nil
	case "logging.audit.enabled":
		return strconv.FormatBool(c.Logging.Audit.Enabled), nil
	case "logging.audit.file":
		return c.Logging.Audit.File, nil
	case "estimator.unit":
		return c.Estimator.Unit, nil
	case "estimator.currency":
		return c.Estimator.Currency, nil
	case "estimator.catalog_file":
		return c.Estimator.CatalogFile, nil
	}
	if name, ok := strings.CutPrefix(key, "estimator.rates."); ok {
		params, err := c.Estimator.Params()
		if err != nil {
			return "", err
		}
		fields, err := rateFields(params)
		if err != nil {
			return "", err
		}
		v, found := fields[name]
		if !found {
			return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// Set assigns value to a dotted key. The result is not validated; call
// Validate before saving.
func (c *Config) Set(key, value string) error {
	switch key {
	case "output.default_format":
		c.Output.DefaultFormat = value
	case "output.precision":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("output.precision: %q is not an integer", value)
		}
		c.Output.Precision = n
	case "logging.level":
		c.Logging.Level = value
	case "logging.format":
		c.Logging.Format = value
	case "logging.file":
		c.Logging.File = value
	case "logging.audit.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("logging.audit.enabled: %q is not a boolean", value)
		}
		c.Logging.Audit.Enabled = b
	case "logging.audit.file":
		c.Logging.Audit.File = value
	case "estimator.unit":
		c.Estimator.Unit = value
	case "estimator.currency":
		c.Estimator.Currency = value
	case "estimator.catalog_file":
		c.Estimator.CatalogFile = value
	default:
		name, ok := strings.CutPrefix(key, "estimator.rates.")
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		fields, err := rateFields(engine.DefaultParams())
		if err != nil {
			return err
		}
		if _, found := fields[name]; !found {
			return fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: %q is not a number", key, value)
		}
		if c.Estimator.Rates == nil {
			c.Estimator.Rates = make(map[string]float64)
		}
		c.Estimator.Rates[name] = v
	}
	return nil
}

// Keys lists every settable key in a stable order.
func Keys() []string {
	keys := []string{
		"output.default_format",
		"output.precision",
		"logging.level",
		"logging.format",
		"logging.file",
		"logging.audit.enabled",
		"logging.audit.file",
		"estimator.unit",
		"estimator.currency",
		"estimator.catalog_file",
	}
	fields, _ := rateFields(engine.DefaultParams())
	rates := make([]string, 0, len(fields))
	for name := range fields {
		rates = append(rates, "estimator.rates."+name)
	}
	sort.Strings(rates)
	return append(keys, rates...)
}

func rateFields(p engine.Params) (map[string]float64, error) {
	raw, err := yaml.Marshal(p)
	if err != nil {
		return nil, err
	}
	var fields map[string]float64
	if err = yaml.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
