package config

import (
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv.
const (
	EnvHome         = "ALBEDO_HOME"
	EnvProjectDir   = "ALBEDO_PROJECT_DIR"
	EnvLogLevel     = "ALBEDO_LOG_LEVEL"
	EnvLogFormat    = "ALBEDO_LOG_FORMAT"
	EnvLogFile      = "ALBEDO_LOG_FILE"
	EnvOutputFormat = "ALBEDO_OUTPUT_FORMAT"
	EnvPrecision    = "ALBEDO_PRECISION"
	EnvUnit         = "ALBEDO_UNIT"
	EnvCurrency     = "ALBEDO_CURRENCY"
	EnvCatalog      = "ALBEDO_CATALOG"
)

// LoadDotEnv loads a .env file from the working directory into the process
// environment. Variables already set are not overridden and a missing file
// is not an error.
func LoadDotEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// ApplyEnv overlays environment settings onto c. Unparseable numbers are
// ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str(EnvLogLevel, &c.Logging.Level)
	str(EnvLogFormat, &c.Logging.Format)
	str(EnvLogFile, &c.Logging.File)
	str(EnvOutputFormat, &c.Output.DefaultFormat)
	str(EnvUnit, &c.Estimator.Unit)
	str(EnvCurrency, &c.Estimator.Currency)
	str(EnvCatalog, &c.Estimator.CatalogFile)

	if v, ok := lookup(EnvPrecision); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.Output.Precision = n
		}
	}
}
