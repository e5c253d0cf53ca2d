package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"taylorframe/internal/app"
	"taylorframe/internal/calc"
	"taylorframe/internal/state"
	"taylorframe/internal/telemetry"
	"taylorframe/internal/tutorial"
	"taylorframe/internal/ui"
)

func runEditor(cmd *cobra.Command, opts *options) error {
	ctx := cmd.Context()
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger, err := telemetry.NewLogger(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logger.Close()
	if !opts.envLoaded {
		logger.Debug("config.dotenv_missing", nil)
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("state.open_failed", map[string]any{"path": cfg.StatePath(), "error": err.Error()})
		return err
	}
	defer store.Close()

	lib, err := tutorial.LoadLibrary(ctx, tutorial.NewLoader(), cfg.PacksDir)
	if err != nil {
		logger.Error("tutorial.load_failed", map[string]any{"root": cfg.PacksDir, "error": err.Error()})
		return fmt.Errorf("load tutorials: %w", err)
	}
	logger.Info("tutorial.library", map[string]any{"tutorials": lib.Len(), "root": cfg.PacksDir})

	narrator := ui.NewStatusNarrator(logger)
	session, err := app.NewSession(cfg, app.Deps{
		Library:  lib,
		Store:    store,
		Logger:   logger,
		Narrator: narrator,
	})
	if err != nil {
		return err
	}
	defer session.Close()
	if err := session.Start(ctx); err != nil {
		return err
	}
	view := ui.New(session, ui.Options{Theme: cfg.Theme, Logger: logger, Narrator: narrator})
	return view.Run(ctx)
}

func openStore(ctx context.Context, cfg app.Config) (*state.SQLiteStore, error) {
	store, err := state.NewSQLite(cfg.StatePath())
	if err != nil {
		return nil, fmt.Errorf("open state: %w", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("migrate state: %w", err)
	}
	return store, nil
}

func newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate an arithmetic expression",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := calc.Eval(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), calc.Format(v))
			return nil
		},
	}
}

func newTutorialsCmd(opts *options) *cobra.Command {
	var difficulty string
	cmd := &cobra.Command{
		Use:   "tutorials",
		Short: "List available tutorials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			lib, err := tutorial.LoadLibrary(cmd.Context(), tutorial.NewLoader(), cfg.PacksDir)
			if err != nil {
				return fmt.Errorf("load tutorials: %w", err)
			}
			list := lib.All()
			if difficulty != "" {
				d, err := tutorial.ParseDifficulty(difficulty)
				if err != nil {
					return err
				}
				list = lib.ByDifficulty(d)
			}
			printTutorials(cmd.OutOrStdout(), list)
			return nil
		},
	}
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "easy, medium or hard")
	return cmd
}

func printTutorials(w io.Writer, list []tutorial.Tutorial) {
	for i, t := range list {
		fmt.Fprintf(w, "%2d. %-28s %-7s %d challenges  %s\n", i+1, t.ID, t.Difficulty, len(t.Challenges), t.Title)
	}
}

func newProgressCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show recorded sessions and tutorial progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			store, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()
			lib, err := tutorial.LoadLibrary(ctx, tutorial.NewLoader(), cfg.PacksDir)
			if err != nil {
				return fmt.Errorf("load tutorials: %w", err)
			}
			return printProgress(ctx, cmd.OutOrStdout(), store, lib)
		},
	}
}

func printProgress(ctx context.Context, w io.Writer, store state.Store, lib *tutorial.Library) error {
	sum, err := store.GetSummary(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Sessions:      %s\n", humanize.Comma(int64(sum.Sessions)))
	fmt.Fprintf(w, "Tutorial runs: %s (%s completed)\n", humanize.Comma(int64(sum.TutorialRuns)), humanize.Comma(int64(sum.Completed)))
	fmt.Fprintf(w, "Checks:        %s (%s passed)\n", humanize.Comma(int64(sum.Checks)), humanize.Comma(int64(sum.Passes)))

	last, err := store.GetLastRun(ctx)
	if err != nil {
		return err
	}
	if last != nil {
		status := fmt.Sprintf("stopped at challenge %d", last.ChallengeAt+1)
		if last.Completed {
			status = "completed"
		}
		fmt.Fprintf(w, "Last run:      %s, started %s, %s\n", last.TutorialID, humanize.Time(last.StartTS), status)
	}

	progress, err := store.GetTutorialProgressMap(ctx)
	if err != nil {
		return err
	}
	if len(progress) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	for _, t := range lib.All() {
		p, ok := progress[t.ID]
		if !ok {
			continue
		}
		best := "-"
		if p.BestAttempts > 0 {
			best = humanize.Comma(int64(p.BestAttempts))
		}
		fmt.Fprintf(w, "%-28s completed %dx, best %s attempts, last played %s\n",
			t.ID, p.CompletedCount, best, humanize.Time(p.LastPlayedTS))
	}
	return nil
}
