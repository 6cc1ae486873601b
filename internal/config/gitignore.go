package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rshade/albedo/internal/export"
)

const gitignoreName = ".gitignore"

// IgnoredPatterns lists what a project .albedo directory keeps out of
// version control: logs, the .env file and every quote format the export
// package can write. config.yaml is never ignored.
func IgnoredPatterns() []string {
	patterns := []string{"*.log", ".env", "exports/"}
	for _, f := range export.Formats() {
		patterns = append(patterns, "*."+f.Extension())
	}
	return patterns
}

// GitignoreContent returns the .gitignore written into project .albedo/
// directories.
func GitignoreContent() string {
	var b strings.Builder
	b.WriteString("# albedo project data: logs, secrets and exported quotes\n")
	for _, p := range IgnoredPatterns() {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	return b.String()
}

// EnsureGitignore writes dir/.gitignore if it is missing, creating dir as
// needed. An existing file is left alone. The result reports whether a file
// was written.
func EnsureGitignore(dir string) (bool, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return false, fmt.Errorf("creating project directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, gitignoreName)
	//nolint:gosec // .gitignore is meant to be readable by everyone.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("creating %s: %w", path, err)
	}

	_, writeErr := f.WriteString(GitignoreContent())
	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		return false, fmt.Errorf("writing %s: %w", path, writeErr)
	}
	return true, nil
}
