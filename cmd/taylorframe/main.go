package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"taylorframe/internal/app"
)

type options struct {
	rows     int
	cols     int
	dataDir  string
	packsDir string
	logPath  string
	logLevel string
	mode     string
	tutorial string
	theme    string

	envLoaded bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "taylorframe",
		Short:        "Keyboard-driven arithmetic grid with spoken feedback",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.envLoaded = godotenv.Load() == nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd, opts)
		},
	}
	addCommonFlags(root, opts)
	addRunFlags(root, opts)

	run := &cobra.Command{
		Use:   "run",
		Short: "Open the editor (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd, opts)
		},
	}
	addRunFlags(run, opts)

	root.AddCommand(run, newEvalCmd(), newTutorialsCmd(opts), newProgressCmd(opts))
	return root
}

func addCommonFlags(cmd *cobra.Command, opts *options) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.dataDir, "data-dir", "", "directory for state, snapshots and exports")
	pf.StringVar(&opts.packsDir, "packs", "", "directory scanned for tutorial packs")
	pf.StringVar(&opts.logPath, "log", "", "JSON log file (empty disables logging)")
	pf.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")
}

func addRunFlags(cmd *cobra.Command, opts *options) {
	f := cmd.Flags()
	f.IntVar(&opts.rows, "rows", app.DefaultRows, "grid rows")
	f.IntVar(&opts.cols, "cols", app.DefaultCols, "grid columns")
	f.StringVar(&opts.mode, "mode", "", "free or tutorial")
	f.StringVar(&opts.tutorial, "tutorial", "", "tutorial id to start with")
	f.StringVar(&opts.theme, "theme", "", "modern_arcade, high_contrast or retro_terminal")
}

// resolveConfig layers defaults, TAYLOR_* variables and explicitly set flags.
func resolveConfig(cmd *cobra.Command, opts *options) (app.Config, error) {
	cfg, err := app.LoadConfig(app.DefaultConfig())
	if err != nil {
		return app.Config{}, err
	}
	f := cmd.Flags()
	if f.Changed("rows") {
		cfg.Rows = opts.rows
	}
	if f.Changed("cols") {
		cfg.Cols = opts.cols
	}
	if f.Changed("data-dir") {
		cfg.DataDir = opts.dataDir
	}
	if f.Changed("packs") {
		cfg.PacksDir = opts.packsDir
	}
	if f.Changed("log") {
		cfg.LogPath = opts.logPath
	}
	if f.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if f.Changed("mode") {
		cfg.TutorialMode = app.ParseMode(opts.mode) == app.ModeTutorial
	}
	if f.Changed("tutorial") {
		cfg.Tutorial = opts.tutorial
	}
	if f.Changed("theme") {
		cfg.Theme = opts.theme
	}
	if err := cfg.Validate(); err != nil {
		return app.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
