package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/albedo/internal/catalog"
	"github.com/rshade/albedo/internal/config"
	"github.com/rshade/albedo/internal/engine"
	"github.com/rshade/albedo/internal/export"
	"github.com/rshade/albedo/internal/logging"
)

// outputFilePerm is the mode of files written by --out.
const outputFilePerm = 0o644

// ErrBinaryToTerminal is returned when a binary format would be written to a
// terminal.
var ErrBinaryToTerminal = errors.New("refusing to write binary output to a terminal, use --out FILE")

// auditContext holds common context for audit logging within a command.
type auditContext struct {
	logger  logging.AuditLogger
	traceID string
	params  map[string]string
	start   time.Time
	command string
}

// newAuditContext creates a new audit context.
func newAuditContext(ctx context.Context, command string, params map[string]string) *auditContext {
	return &auditContext{
		logger:  logging.AuditLoggerFromContext(ctx),
		traceID: logging.TraceIDFromContext(ctx),
		params:  params,
		start:   time.Now(),
		command: command,
	}
}

// logFailure logs an audit entry for a failed operation.
func (a *auditContext) logFailure(ctx context.Context, err error) {
	entry := logging.NewAuditEntry(a.command, a.traceID).
		WithParameters(a.params).
		WithError(err.Error()).
		WithDuration(a.start)
	a.logger.Log(ctx, *entry)
}

// logSuccess logs an audit entry for a successful operation.
func (a *auditContext) logSuccess(ctx context.Context, sites int, netTotal float64) {
	entry := logging.NewAuditEntry(a.command, a.traceID).
		WithParameters(a.params).
		WithSuccess(sites, netTotal).
		WithDuration(a.start)
	a.logger.Log(ctx, *entry)
}

// newService builds an estimation service from the configuration. catalogPath
// overrides estimator.catalog_file; with neither set the built-in catalog is
// used.
func newService(ctx context.Context, cfg *config.Config, catalogPath string, audit *auditContext) (*engine.Service, error) {
	log := logging.FromContext(ctx)

	params, err := cfg.Estimator.Params()
	if err != nil {
		audit.logFailure(ctx, err)
		return nil, fmt.Errorf("estimator rates: %w", err)
	}

	if catalogPath == "" {
		catalogPath = cfg.Estimator.CatalogFile
	}
	var cat *catalog.Catalog
	if catalogPath != "" {
		cat, err = catalog.LoadFile(catalogPath)
		if err != nil {
			log.Error().Ctx(ctx).Err(err).Str("catalog_path", catalogPath).Msg("failed to load catalog")
			audit.logFailure(ctx, err)
			return nil, fmt.Errorf("loading catalog: %w", err)
		}
		log.Debug().Ctx(ctx).Str("catalog_path", catalogPath).Int("options", cat.Len()).Msg("catalog loaded")
	}

	return engine.NewService(engine.NewEstimator(cat, engine.WithParams(params))), nil
}

// resolveFormat parses flagValue, falling back to the configured default
// format when the flag is empty.
func resolveFormat(flagValue string, cfg *config.Config) (export.Format, error) {
	if flagValue == "" {
		flagValue = cfg.Output.DefaultFormat
	}
	return export.ParseFormat(flagValue)
}

// openOutput returns the writer for rendered output: the --out file when set,
// otherwise the command's stdout. Binary formats are refused when stdout is a
// terminal.
func openOutput(cmd *cobra.Command, outPath string, format export.Format) (io.Writer, func() error, error) {
	if outPath == "" {
		w := cmd.OutOrStdout()
		if f, ok := w.(*os.File); ok && format.IsBinary() && isTerminal(f) {
			return nil, nil, ErrBinaryToTerminal
		}
		return w, func() error { return nil }, nil
	}

	f, err := os.OpenFile(outPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, outputFilePerm)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, f.Close, nil
}
