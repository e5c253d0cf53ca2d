package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"taylorframe/internal/app"
	"taylorframe/internal/calc"
	"taylorframe/internal/state"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestEvalCommand(t *testing.T) {
	out, err := execute(t, "eval", "2+3*4")
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if out != "14\n" {
		t.Fatalf("unexpected output %q", out)
	}

	out, err = execute(t, "eval", "sqrt(16)", "/", "8")
	if err != nil || out != "0.5\n" {
		t.Fatalf("expected joined args to evaluate to 0.5, got %q err=%v", out, err)
	}
}

func TestEvalCommandReportsError(t *testing.T) {
	_, err := execute(t, "eval", "1/0")
	if !errors.Is(err, calc.ErrDivisionByZero) {
		t.Fatalf("expected division by zero, got %v", err)
	}
}

func TestTutorialsCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "tutorials", "--data-dir", dir, "--packs", filepath.Join(dir, "packs"), "--difficulty", "HARD")
	if err != nil {
		t.Fatalf("tutorials: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 hard tutorials, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(out, "division-basics") || strings.Contains(out, "single-digit-addition") {
		t.Fatalf("unexpected listing:\n%s", out)
	}

	out, err = execute(t, "tutorials", "--data-dir", dir, "--packs", filepath.Join(dir, "packs"))
	if err != nil {
		t.Fatalf("tutorials: %v", err)
	}
	if n := len(strings.Split(strings.TrimSpace(out), "\n")); n != 9 {
		t.Fatalf("expected 9 tutorials, got %d", n)
	}
	if !strings.HasPrefix(out, " 1. single-digit-addition") {
		t.Fatalf("expected builtin order, got:\n%s", out)
	}
}

func TestTutorialsCommandRejectsDifficulty(t *testing.T) {
	dir := t.TempDir()
	if _, err := execute(t, "tutorials", "--data-dir", dir, "--difficulty", "extreme"); err == nil {
		t.Fatalf("expected unknown difficulty error")
	}
}

func TestProgressCommandEmpty(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "progress", "--data-dir", dir)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if !strings.Contains(out, "Sessions:      0") {
		t.Fatalf("expected zero sessions, got:\n%s", out)
	}
	if strings.Contains(out, "Last run") {
		t.Fatalf("fresh state must not report a last run:\n%s", out)
	}
}

func TestProgressCommandReportsRuns(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	store, err := state.NewSQLite(filepath.Join(dir, "state.db"))
	if err != nil {
		t.Fatal(err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatal(err)
	}
	now := time.Now().UTC()
	if err := store.StartSession(ctx, state.Session{ID: "s1", Mode: "tutorial", Rows: 18, Cols: 25, StartTS: now}); err != nil {
		t.Fatal(err)
	}
	runID, err := store.StartTutorialRun(ctx, state.TutorialRun{
		SessionID:  "s1",
		TutorialID: "single-digit-addition",
		Difficulty: "easy",
		Challenges: 1,
		StartTS:    now,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := store.RecordCheck(ctx, state.CheckAttempt{RunID: runID, Passed: true, Attempts: 3}); err != nil {
		t.Fatal(err)
	}
	if err := store.CompleteTutorialRun(ctx, runID, now); err != nil {
		t.Fatal(err)
	}
	if err := store.UpsertTutorialProgress(ctx, state.TutorialProgressUpdate{
		TutorialID:   "single-digit-addition",
		Completed:    true,
		Attempts:     3,
		LastPlayedTS: now,
	}); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "progress", "--data-dir", dir)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	for _, want := range []string{
		"Sessions:      1",
		"Tutorial runs: 1 (1 completed)",
		"Checks:        1 (1 passed)",
		"Last run:      single-digit-addition",
		"completed 1x, best 3 attempts",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestResolveConfigLayersFlagsOverEnv(t *testing.T) {
	t.Setenv("TAYLOR_ROWS", "10")
	t.Setenv("TAYLOR_COLS", "12")
	dir := t.TempDir()

	opts := &options{}
	cmd := &cobra.Command{Use: "test"}
	addCommonFlags(cmd, opts)
	addRunFlags(cmd, opts)
	if err := cmd.ParseFlags([]string{"--cols", "30", "--mode", "Tutorial", "--data-dir", dir, "--theme", "high_contrast"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Rows != 10 || cfg.Cols != 30 {
		t.Fatalf("expected env rows and flag cols, got %dx%d", cfg.Rows, cfg.Cols)
	}
	if !cfg.TutorialMode || cfg.Theme != "high_contrast" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.StatePath() != filepath.Join(dir, "state.db") {
		t.Fatalf("unexpected state path %q", cfg.StatePath())
	}
	if cfg.Editing.RepeatMS != app.DefaultRepeatMS {
		t.Fatalf("expected default repeat, got %d", cfg.Editing.RepeatMS)
	}
}

func TestResolveConfigRejectsBadFlag(t *testing.T) {
	opts := &options{}
	cmd := &cobra.Command{Use: "test"}
	addCommonFlags(cmd, opts)
	addRunFlags(cmd, opts)
	if err := cmd.ParseFlags([]string{"--rows", "0", "--data-dir", t.TempDir()}); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveConfig(cmd, opts); err == nil {
		t.Fatalf("expected invalid grid size")
	}
}
