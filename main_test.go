package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codexport/internal/config"
	"codexport/internal/domain"
	"codexport/internal/ui"
	"codexport/internal/ui/state"
)

func parseFlags(t *testing.T, args ...string) (*cobra.Command, *options) {
	t.Helper()
	opts := &options{}
	cmd := &cobra.Command{Use: "codexport"}
	bindFlags(cmd, opts)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, opts
}

func TestLoadConfigDefaults(t *testing.T) {
	root := t.TempDir()
	cmd, opts := parseFlags(t, "--dir", root)

	cfg, err := loadConfig(cmd, opts)
	require.NoError(t, err)
	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, config.DefaultOutput, cfg.Output)
	assert.Empty(t, cfg.LogFile)
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	root := t.TempDir()
	content := "output = \"from-file.md\"\nlog_file = \"file.log\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, config.FileName), []byte(content), 0o644))

	cmd, opts := parseFlags(t, "-d", root)
	cfg, err := loadConfig(cmd, opts)
	require.NoError(t, err)
	assert.Equal(t, "from-file.md", cfg.Output)
	assert.Equal(t, "file.log", cfg.LogFile)

	cmd, opts = parseFlags(t, "-d", root, "-o", "flag.md", "--log", "flag.log")
	cfg, err = loadConfig(cmd, opts)
	require.NoError(t, err)
	assert.Equal(t, "flag.md", cfg.Output)
	assert.Equal(t, "flag.log", cfg.LogFile)
}

func TestLoadConfigExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("output = \"custom.md\"\n"), 0o644))

	cmd, opts := parseFlags(t, "--config", path)
	cfg, err := loadConfig(cmd, opts)
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.Root)
	assert.Equal(t, "custom.md", cfg.Output)

	cmd, opts = parseFlags(t, "--config", filepath.Join(t.TempDir(), "missing.toml"))
	_, err = loadConfig(cmd, opts)
	require.Error(t, err)
}

func TestRootCommandRejectsArguments(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"extra"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	require.Error(t, cmd.Execute())
}

func TestNewLoggerWritesToFile(t *testing.T) {
	logger, err := newLogger("")
	require.NoError(t, err)
	logger.Info("dropped")

	path := filepath.Join(t.TempDir(), "debug.log")
	logger, err = newLogger(path)
	require.NoError(t, err)
	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func reportFixture(t *testing.T) (*config.Config, *state.AppState) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("print(1)\n"), 0o644))

	cfg := config.DefaultConfig()
	cfg.Root = root
	cfg.Output = filepath.Join(root, "out.md")
	return cfg, state.NewAppState([]domain.Entry{{Path: "a.py"}})
}

func TestReportConfirmExports(t *testing.T) {
	cfg, appState := reportFixture(t)
	appState.SelectAll(true)

	var out bytes.Buffer
	require.NoError(t, report(&out, ui.OutcomeConfirm, appState, cfg, nil))
	assert.Equal(t, "\nExported 1 files to "+cfg.Output+"\n", out.String())

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.Equal(t, "# Code Export\n\n## a.py\n\n```Python\nprint(1)\n```\n\n", string(data))
}

func TestReportNothingSelected(t *testing.T) {
	for _, outcome := range []ui.Outcome{ui.OutcomeConfirm, ui.OutcomeQuit} {
		cfg, appState := reportFixture(t)

		var out bytes.Buffer
		require.NoError(t, report(&out, outcome, appState, cfg, nil))
		assert.Equal(t, "\nNo files were selected for export\n", out.String())
		assert.NoFileExists(t, cfg.Output)
	}
}

func TestReportQuitNeverExports(t *testing.T) {
	cfg, appState := reportFixture(t)
	appState.SelectAll(true)

	var out bytes.Buffer
	require.NoError(t, report(&out, ui.OutcomeQuit, appState, cfg, nil))
	assert.Equal(t, "\nExport cancelled, 1 selected files were not exported\n", out.String())
	assert.NoFileExists(t, cfg.Output)
}
