package logging

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"
)

// AuditEntry records one CLI operation.
type AuditEntry struct {
	Timestamp  time.Time         `json:"timestamp"`
	TraceID    string            `json:"trace_id,omitempty"`
	Command    string            `json:"command"`
	Parameters map[string]string `json:"parameters,omitempty"`
	Success    bool              `json:"success"`
	Error      string            `json:"error,omitempty"`
	DurationMS int64             `json:"duration_ms"`

	// Sites is the number of estimates produced; NetTotal their summed net cost.
	Sites    int     `json:"sites,omitempty"`
	NetTotal float64 `json:"net_total,omitempty"`
}

// NewAuditEntry starts an entry for command.
func NewAuditEntry(command, traceID string) *AuditEntry {
	return &AuditEntry{
		Timestamp: time.Now().UTC(),
		TraceID:   traceID,
		Command:   command,
	}
}

// WithParameters attaches the command parameters.
func (e *AuditEntry) WithParameters(p map[string]string) *AuditEntry {
	e.Parameters = p
	return e
}

// WithSuccess marks the entry successful.
func (e *AuditEntry) WithSuccess(sites int, netTotal float64) *AuditEntry {
	e.Success = true
	e.Sites = sites
	e.NetTotal = netTotal
	return e
}

// WithError marks the entry failed.
func (e *AuditEntry) WithError(msg string) *AuditEntry {
	e.Success = false
	e.Error = msg
	return e
}

// WithDuration sets the duration since start.
func (e *AuditEntry) WithDuration(start time.Time) *AuditEntry {
	e.DurationMS = time.Since(start).Milliseconds()
	return e
}

// AuditLogger persists audit entries.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditEntry)
	Close() error
}

// AuditLoggerConfig configures NewAuditLogger.
type AuditLoggerConfig struct {
	Enabled bool
	File    string
}

// NewAuditLogger returns a JSON-lines audit logger, or a no-op logger when
// auditing is disabled or the file cannot be opened.
func NewAuditLogger(cfg AuditLoggerConfig) AuditLogger {
	if !cfg.Enabled || cfg.File == "" {
		return nopAuditLogger{}
	}
	f, err := openLogFile(cfg.File)
	if err != nil {
		return nopAuditLogger{}
	}
	return &fileAuditLogger{file: f, enc: json.NewEncoder(f)}
}

type fileAuditLogger struct {
	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
}

func (l *fileAuditLogger) Log(ctx context.Context, entry AuditEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return
	}
	if err := l.enc.Encode(entry); err != nil {
		FromContext(ctx).Warn().Ctx(ctx).Err(err).Msg("writing audit entry")
	}
}

func (l *fileAuditLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

type nopAuditLogger struct{}

func (nopAuditLogger) Log(context.Context, AuditEntry) {}
func (nopAuditLogger) Close() error                    { return nil }

type auditLoggerKey struct{}

// ContextWithAuditLogger stores l in ctx.
func ContextWithAuditLogger(ctx context.Context, l AuditLogger) context.Context {
	return context.WithValue(ctx, auditLoggerKey{}, l)
}

// AuditLoggerFromContext returns the audit logger in ctx, or a no-op logger.
func AuditLoggerFromContext(ctx context.Context) AuditLogger {
	if ctx == nil {
		return nopAuditLogger{}
	}
	if l, ok := ctx.Value(auditLoggerKey{}).(AuditLogger); ok && l != nil {
		return l
	}
	return nopAuditLogger{}
}
