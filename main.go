package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"codexport/internal/config"
	"codexport/internal/discovery"
	"codexport/internal/export"
	"codexport/internal/ui"
	"codexport/internal/ui/state"
)

// version is set by the build process
var version = "dev"

// options holds the command line flags
type options struct {
	dir        string
	output     string
	configPath string
	logFile    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "codexport",
		Short: "Select text files in a terminal UI and export them to Markdown",
		Long: `codexport lists the text files below a directory, lets you pick some of
them, and writes their contents into a single Markdown document with one
fenced code block per file.`,
		Args:          cobra.NoArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd, opts)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
			return err
		},
	}

	bindFlags(cmd, opts)
	return cmd
}

func bindFlags(cmd *cobra.Command, opts *options) {
	flags := cmd.Flags()
	flags.StringVarP(&opts.dir, "dir", "d", ".", "directory to scan")
	flags.StringVarP(&opts.output, "output", "o", config.DefaultOutput, "file the export is written to")
	flags.StringVar(&opts.configPath, "config", "", "config file (default <dir>/"+config.FileName+")")
	flags.StringVar(&opts.logFile, "log", "", "write debug logs to this file")
}

func run(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("codexport needs an interactive terminal")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appState, err := scan(ctx, cfg, logger)
	if err != nil {
		return err
	}

	model := ui.NewModel(appState, ui.NewPreviewer(cfg.Root, cfg.UI.PreviewStyle, logger), logger)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("Error running program", zap.Error(err))
		return fmt.Errorf("error running program: %w", err)
	}
	logger.Info("UI exited", zap.Stringer("outcome", model.Outcome()))

	return report(cmd.OutOrStdout(), model.Outcome(), appState, cfg, logger)
}

// loadConfig layers the config file and the flags over the defaults
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	configSvc := config.NewConfigService()

	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = configSvc.LoadFromPath(opts.configPath)
	} else {
		cfg, err = configSvc.Load(opts.dir)
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if cfg.Root == "" || flags.Changed("dir") {
		cfg.Root = opts.dir
	}
	if flags.Changed("output") {
		cfg.Output = opts.output
	}
	if flags.Changed("log") {
		cfg.LogFile = opts.logFile
	}
	return cfg, nil
}

// newLogger returns a development logger writing to path, or a no-op logger
// when path is empty so the terminal UI is never disturbed
func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.InitialFields = map[string]interface{}{
		"appName":    "codexport",
		"appVersion": version,
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return logger, nil
}

// scan builds the selection state for the configured root
func scan(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*state.AppState, error) {
	result, err := discovery.NewDiscoveryService(logger, cfg.ExcludedPaths()).Scan(ctx, cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", cfg.Root, err)
	}
	logger.Info("Scan completed",
		zap.String("root", result.Root),
		zap.Int("dirs", result.Dirs),
		zap.Int("files", result.Files),
		zap.Int("skipped", result.Skipped))
	return state.NewAppState(result.Entries), nil
}

// report exports the selection after a confirm and prints the closing
// message. A quit never exports; with files selected it says so.
func report(w io.Writer, outcome ui.Outcome, appState *state.AppState, cfg *config.Config, logger *zap.Logger) error {
	selected := appState.SelectedCount()
	if selected == 0 {
		fmt.Fprintln(w, "\nNo files were selected for export")
		return nil
	}
	if outcome != ui.OutcomeConfirm {
		fmt.Fprintf(w, "\nExport cancelled, %d selected files were not exported\n", selected)
		return nil
	}

	outPath, err := cfg.OutputPath()
	if err != nil {
		return err
	}
	n, err := export.NewExporter(cfg.Root, logger).ExportFile(outPath, appState.Entries)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nExported %d files to %s\n", n, cfg.Output)
	return nil
}
