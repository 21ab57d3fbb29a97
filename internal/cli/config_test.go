package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/vtable/internal/config"
)

// TestConfigInit_CreatesUserConfig verifies that "config init" writes the
// defaults and a .gitignore into VTABLE_HOME.
func TestConfigInit_CreatesUserConfig(t *testing.T) {
	home := setupCLITest(t)

	out, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")
	assert.Contains(t, out, "Created .gitignore")

	cfg, err := config.Load(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.CurrentVersion, cfg.Version)
	assert.Equal(t, 1, cfg.Table.RowHeight)

	gitignore, err := os.ReadFile(filepath.Join(home, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, config.GitignoreContent(), string(gitignore))
}

func TestConfigInit_RefusesOverwrite(t *testing.T) {
	setupCLITest(t)

	_, err := execute(t, "config", "init")
	require.NoError(t, err)

	_, err = execute(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "config", "init", "--force")
	require.NoError(t, err)
}

// TestConfigInit_ExistingGitignorePreserved verifies that running
// "config init --force" does NOT overwrite an existing .gitignore file.
func TestConfigInit_ExistingGitignorePreserved(t *testing.T) {
	home := setupCLITest(t)

	customContent := "# My custom gitignore\n*.secret\n"
	gitignorePath := filepath.Join(home, ".gitignore")
	require.NoError(t, os.WriteFile(gitignorePath, []byte(customContent), 0o644))

	out, err := execute(t, "config", "init", "--force")
	require.NoError(t, err)
	assert.NotContains(t, out, "Created .gitignore")

	data, err := os.ReadFile(gitignorePath)
	require.NoError(t, err)
	assert.Equal(t, customContent, string(data))
}

// TestConfigInit_RepairsBrokenConfig verifies init runs even when the existing
// configuration cannot be loaded.
func TestConfigInit_RepairsBrokenConfig(t *testing.T) {
	home := setupCLITest(t)
	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 9.0.0\n"), 0o600))

	out, err := execute(t, "config", "init", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Warning: ignoring configuration")

	_, err = config.Load(path)
	require.NoError(t, err)
}

func TestConfigInit_Project(t *testing.T) {
	setupCLITest(t)
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	out, err := execute(t, "config", "init", "--project")
	require.NoError(t, err)
	assert.Contains(t, out, "Project configuration initialized")

	data, err := os.ReadFile(filepath.Join(dir, config.ProjectFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "row_height: 1")
	assert.NotContains(t, string(data), "logging")
}

func TestConfigShow(t *testing.T) {
	setupCLITest(t)
	t.Setenv(config.EnvTheme, "light")

	out, err := execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "# source: defaults")
	assert.Contains(t, out, "theme: light")
}

func TestConfigShow_ProjectFile(t *testing.T) {
	setupCLITest(t)
	project := writeFile(t, config.ProjectFileName,
		"table:\n  row_height: 2\n  overscan: 0\n  scrollbar_size: 1\n  theme: plain\n")

	out, err := execute(t, "--project-file", project, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "# source: "+project)
	assert.Contains(t, out, "row_height: 2")
	assert.Contains(t, out, "theme: plain")
}

func TestConfigValidate(t *testing.T) {
	setupCLITest(t)

	tests := []struct {
		name    string
		content string
		wantIs  error
	}{
		{name: "valid", content: "version: 1.0.0\ntable:\n  row_height: 2\n"},
		{name: "bad range", content: "table:\n  overscan: -1\n", wantIs: config.ErrInvalidConfig},
		{name: "newer schema", content: "version: 2.0.0\n", wantIs: config.ErrIncompatibleConfig},
		{name: "bad yaml", content: "table: [\n", wantIs: config.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := writeFile(t, "config.yaml", tt.content)
			out, err := execute(t, "config", "validate", "--file", file)
			if tt.wantIs == nil {
				require.NoError(t, err)
				assert.Contains(t, out, "Configuration is valid")
				return
			}
			require.ErrorIs(t, err, tt.wantIs)
		})
	}
}

func TestConfigValidate_UnknownTheme(t *testing.T) {
	setupCLITest(t)
	file := writeFile(t, "config.yaml", "table:\n  theme: neon\n")

	_, err := execute(t, "config", "validate", "--file", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neon")
}

func TestConfigValidate_MissingFile(t *testing.T) {
	setupCLITest(t)

	_, err := execute(t, "config", "validate")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
