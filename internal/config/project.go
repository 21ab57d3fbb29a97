package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/rshade/vtable/internal/logging"
)

// ProjectFileName is the project-local overlay searched for from the working
// directory upwards.
const ProjectFileName = ".vtable.yaml"

// ProjectFileEnv overrides project file discovery.
const ProjectFileEnv = "VTABLE_PROJECT_FILE"

// errNoProjectFile is returned by findProjectFile when the walk reaches the root.
var errNoProjectFile = errors.New("no project file found")

// ResolveProjectFile determines the project overlay path.
// It checks (in order):
//  1. flagValue (--project-file CLI flag)
//  2. VTABLE_PROJECT_FILE env var
//  3. a .vtable.yaml walk-up from startDir
//
// Returns an absolute path or empty string if no project file is found.
func ResolveProjectFile(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbs(ctx, flagValue)
	}

	if envFile := os.Getenv(ProjectFileEnv); envFile != "" {
		return toAbs(ctx, envFile)
	}

	found, err := findProjectFile(startDir)
	if err != nil {
		if !errors.Is(err, errNoProjectFile) {
			logger := logging.FromContext(ctx)
			logger.Warn().
				Str("component", "config").
				Err(err).
				Str("start_dir", startDir).
				Msg("unexpected error during project file discovery")
		}
		return ""
	}
	return found
}

func findProjectFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, ProjectFileName)
		info, statErr := os.Stat(candidate)
		switch {
		case statErr == nil && !info.IsDir():
			return candidate, nil
		case statErr != nil && !os.IsNotExist(statErr):
			return "", statErr
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errNoProjectFile
		}
		dir = parent
	}
}

// NewWithProjectFile creates a Config by loading the user config then
// shallow-merging the project file on top. If projectFile is empty or the
// merged result is unusable, the user config is returned.
func NewWithProjectFile(ctx context.Context, projectFile string) (*Config, error) {
	cfg, err := New()
	if err != nil {
		return nil, err
	}

	if projectFile == "" {
		return cfg, nil
	}
	if _, statErr := os.Stat(projectFile); statErr != nil {
		return cfg, nil
	}

	merged := *cfg
	mergeErr := ShallowMergeYAML(&merged, projectFile)
	if mergeErr == nil {
		mergeErr = merged.ApplyEnv()
	}
	if mergeErr != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(mergeErr).
			Str("overlay_path", projectFile).
			Msg("failed to merge project config, using user config")
		return cfg, nil
	}
	merged.path = projectFile
	return &merged, nil
}

func toAbs(ctx context.Context, path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("path", path).
			Msg("failed to resolve absolute path for project file")
		return path
	}
	return abs
}
