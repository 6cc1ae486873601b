package config

import (
	"github.com/rshade/albedo/internal/logging"
)

// ToLoggingConfig converts the logging section into a logging.Config. A set
// File selects file output; otherwise logs go to stderr.
func (lc *LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// ToAuditConfig converts the audit section into a logging.AuditLoggerConfig.
func (lc *LoggingConfig) ToAuditConfig() logging.AuditLoggerConfig {
	return logging.AuditLoggerConfig{
		Enabled: lc.Audit.Enabled,
		File:    lc.Audit.File,
	}
}

// GetLoggingConfig returns a copy of the global Logging section. Flag
// overrides such as --debug are applied by the caller.
func GetLoggingConfig() LoggingConfig {
	return GetGlobalConfig().Logging
}
