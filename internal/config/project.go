package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/rshade/albedo/internal/logging"
)

// ProjectDirName is the project-local configuration directory.
const ProjectDirName = ".albedo"

// resolvedProjectDir holds the project directory found at startup.
var (
	resolvedProjectDir   string       //nolint:gochecknoglobals // Set once at startup, read by config loaders
	resolvedProjectDirMu sync.RWMutex //nolint:gochecknoglobals // Protects resolvedProjectDir
)

// SetResolvedProjectDir stores the resolved project directory.
func SetResolvedProjectDir(dir string) {
	resolvedProjectDirMu.Lock()
	defer resolvedProjectDirMu.Unlock()
	resolvedProjectDir = dir
}

// GetResolvedProjectDir returns the stored project directory.
func GetResolvedProjectDir() string {
	resolvedProjectDirMu.RLock()
	defer resolvedProjectDirMu.RUnlock()
	return resolvedProjectDir
}

// ResolveProjectDir finds the project-local .albedo directory. It checks,
// in order:
//  1. flagValue (--project-dir)
//  2. ALBEDO_PROJECT_DIR
//  3. the nearest ancestor of startDir containing .albedo/
//
// The result is absolute, or empty when no project is found. Nothing is
// created.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}
	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}
	if startDir == "" {
		return ""
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	home, _ := GetConfigDir()
	for {
		candidate := filepath.Join(dir, ProjectDirName)
		// The user's global directory is not a project.
		if candidate != home {
			if info, statErr := os.Stat(candidate); statErr == nil && info.IsDir() {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// NewWithProjectDir loads the user configuration and shallow-merges
// projectDir/config.yaml on top, then reapplies environment overrides so
// they keep precedence. An empty projectDir behaves like New.
func NewWithProjectDir(ctx context.Context, projectDir string) *Config {
	cfg := New()
	if projectDir == "" {
		return cfg
	}

	overlayPath := filepath.Join(projectDir, configFileName)
	if _, err := os.Stat(overlayPath); err != nil {
		return cfg
	}

	merged := New()
	if err := ShallowMergeYAML(merged, overlayPath); err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using user config")
		return cfg
	}
	merged.ApplyEnv(os.LookupEnv)
	return merged
}

// toAbsProjectDir makes dir absolute and appends .albedo unless it already
// ends with it.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == ProjectDirName {
		return abs
	}
	return filepath.Join(abs, ProjectDirName)
}
