package app

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"taylorframe/internal/state"
	"taylorframe/internal/term"
	"taylorframe/internal/tutorial"
)

type recorder struct {
	spoken []string
	cues   []Cue
}

func (r *recorder) Speak(text string) { r.spoken = append(r.spoken, text) }
func (r *recorder) Cue(c Cue)         { r.cues = append(r.cues, c) }

func (r *recorder) last() string {
	if len(r.spoken) == 0 {
		return ""
	}
	return r.spoken[len(r.spoken)-1]
}

func (r *recorder) said(text string) bool {
	for _, s := range r.spoken {
		if s == text {
			return true
		}
	}
	return false
}

func testLibrary(t *testing.T) *tutorial.Library {
	t.Helper()
	lib, err := tutorial.NewLibrary(tutorial.Pack{
		PackID: "test-pack",
		Tutorials: []tutorial.Tutorial{{
			ID:         "two-sums",
			Title:      "Two Sums",
			Difficulty: tutorial.Easy,
			Challenges: []tutorial.ChallengeDef{
				{Question: "28 + 17", Answer: "45", Hint: "add the tens first"},
				{Question: "2 + 3", Answer: "5", Explanation: "2 + 3 = 5."},
			},
		}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return lib
}

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func openStore(t *testing.T, cfg Config) *state.SQLiteStore {
	t.Helper()
	store, err := state.NewSQLite(cfg.StatePath())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatal(err)
	}
	return store
}

func newTestSession(t *testing.T, cfg Config, store Store) (*Session, *recorder) {
	t.Helper()
	rec := &recorder{}
	s, err := NewSession(cfg, Deps{Library: testLibrary(t), Store: store, Narrator: rec})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	return s, rec
}

func typeRow(s *Session, y int, text string) {
	for x, r := range text {
		_ = s.Grid().Set(x, y, r)
	}
}

func TestNewSessionRequiresNarrator(t *testing.T) {
	if _, err := NewSession(DefaultConfig(), Deps{Library: testLibrary(t)}); err == nil {
		t.Fatalf("expected error without narrator")
	}
}

func TestInsertWithAutoShift(t *testing.T) {
	cfg := testConfig(t)
	cfg.Editing.AutoShift = true
	s, rec := newTestSession(t, cfg, nil)

	s.Handle(term.Action{Kind: term.ActionInsert, Rune: '('})
	if s.Grid().Get(0, 0) != '(' || s.Grid().Cursor().X != 1 {
		t.Fatalf("expected input then shift, cursor %+v", s.Grid().Cursor())
	}
	if !rec.said("left paren") {
		t.Fatalf("expected spoken symbol word, got %q", rec.spoken)
	}
}

func TestMoveAtBoundaryIsSilent(t *testing.T) {
	s, rec := newTestSession(t, testConfig(t), nil)
	before := len(rec.spoken)
	s.Handle(term.Action{Kind: term.ActionMove, DX: -1})
	if len(rec.spoken) != before || s.Grid().Cursor().X != 0 {
		t.Fatalf("move off the grid must be a silent no-op")
	}
	s.Handle(term.Action{Kind: term.ActionMove, DX: 1})
	if rec.last() != "," {
		t.Fatalf("expected blank cell narration, got %q", rec.last())
	}
}

func TestSnapReadsStack(t *testing.T) {
	s, rec := newTestSession(t, testConfig(t), nil)
	typeRow(s, 4, "12-3")
	s.Handle(term.Action{Kind: term.ActionSnap, DY: 1})
	if c := s.Grid().Cursor(); c.Y != 4 {
		t.Fatalf("expected snap to row 4, got %+v", c)
	}
	if rec.last() != "12 minus 3" {
		t.Fatalf("unexpected stack read %q", rec.last())
	}
}

func TestPasteWritesRowsFromCursor(t *testing.T) {
	cfg := testConfig(t)
	cfg.Rows, cfg.Cols = 3, 6
	s, rec := newTestSession(t, cfg, nil)
	s.Grid().SetCursor(2, 1)

	s.Paste([]string{"28", "+17", "ignored"})
	if got := s.Grid().ExportRow(1); got != "  28" {
		t.Fatalf("row 1 = %q", got)
	}
	if got := s.Grid().ExportRow(2); got != "  +17" {
		t.Fatalf("row 2 = %q", got)
	}
	if c := s.Grid().Cursor(); c.X != 5 || c.Y != 2 {
		t.Fatalf("expected cursor after last cell, got %+v", c)
	}
	if rec.last() != "Pasted 5 characters" {
		t.Fatalf("unexpected narration %q", rec.last())
	}

	s.Grid().SetCursor(4, 0)
	s.Paste([]string{"12345"})
	if got := s.Grid().ExportRow(0); got != "    12" {
		t.Fatalf("overflow must be dropped, row 0 = %q", got)
	}
	if c := s.Grid().Cursor(); c.X != 5 || c.Y != 0 {
		t.Fatalf("cursor must stay in bounds, got %+v", c)
	}

	s.Paste(nil)
	if rec.last() != "Nothing pasted" {
		t.Fatalf("unexpected narration %q", rec.last())
	}
}

func TestDeleteModes(t *testing.T) {
	cfg := testConfig(t)
	s, rec := newTestSession(t, cfg, nil)
	typeRow(s, 0, "7")
	s.Grid().SetCursor(1, 0)
	s.Handle(term.Action{Kind: term.ActionDelete})
	if rec.last() != "," || s.Grid().Get(0, 0) != '7' {
		t.Fatalf("plain delete on blank must not touch neighbours")
	}

	cfg.Editing.SmartDelete = true
	s, rec = newTestSession(t, cfg, nil)
	typeRow(s, 0, "7")
	s.Grid().SetCursor(1, 0)
	s.Handle(term.Action{Kind: term.ActionDelete})
	if rec.last() != "Deleted" || !s.Grid().IsBlank(0, 0) || s.Grid().Cursor().X != 0 {
		t.Fatalf("smart delete should step left and delete, cursor %+v", s.Grid().Cursor())
	}
}

func TestFreeModeEvaluatesRow(t *testing.T) {
	s, rec := newTestSession(t, testConfig(t), nil)
	typeRow(s, 0, "2+3*4")
	s.Handle(term.Action{Kind: term.ActionCheck})
	if got := s.Grid().ExportRow(0); got != "2+3*4 = 14" {
		t.Fatalf("row after evaluate: %q", got)
	}
	if rec.last() != "equals 14" {
		t.Fatalf("unexpected narration %q", rec.last())
	}

	typeRow(s, 1, "1/0")
	s.Grid().SetCursor(0, 1)
	s.Handle(term.Action{Kind: term.ActionCheck})
	if rec.last() != "Error: division by zero" {
		t.Fatalf("unexpected error narration %q", rec.last())
	}
}

func TestTutorialModeChecksWholeGrid(t *testing.T) {
	cfg := testConfig(t)
	store := openStore(t, cfg)
	s, rec := newTestSession(t, cfg, store)
	ctx := context.Background()

	if err := s.StartTutorial(ctx, 0); err != nil {
		t.Fatalf("start tutorial: %v", err)
	}
	if s.Mode() != ModeTutorial || !rec.said("Challenge 1 of 2: 28 + 17") {
		t.Fatalf("expected first prompt, got %q", rec.spoken)
	}

	s.Handle(term.Action{Kind: term.ActionCheck})
	if rec.last() != "Please enter an answer in the grid first." {
		t.Fatalf("expected no-answer narration, got %q", rec.last())
	}

	for y, line := range []string{"  28", "+ 17", "----", "  45"} {
		typeRow(s, y, line)
	}
	s.Grid().SetCursor(0, 0)
	s.Handle(term.Action{Kind: term.ActionCheck})
	if !rec.said("Correct!") || rec.last() != "Challenge 2 of 2: 2 + 3" {
		t.Fatalf("expected correct then next prompt, got %q", rec.spoken)
	}
	if s.Grid().HasContent() {
		t.Fatalf("next challenge must start on a cleared grid")
	}

	typeRow(s, 2, "5")
	s.Handle(term.Action{Kind: term.ActionCheck})
	if !rec.said("Correct! 2 + 3 = 5.") || rec.last() != "Tutorial complete! You finished Two Sums." {
		t.Fatalf("expected completion, got %q", rec.spoken)
	}
	if s.Mode() != ModeFree {
		t.Fatalf("completion should return to free mode")
	}

	sum, err := store.GetSummary(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if sum.TutorialRuns != 1 || sum.Completed != 1 || sum.Checks != 2 || sum.Passes != 2 {
		t.Fatalf("unexpected summary %+v", sum)
	}
	progress, err := store.GetTutorialProgressMap(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if p := progress["two-sums"]; p.CompletedCount != 1 || p.BestAttempts != 5 {
		t.Fatalf("unexpected progress %+v", p)
	}
}

func TestHintOnlyInTutorial(t *testing.T) {
	s, rec := newTestSession(t, testConfig(t), nil)
	s.Handle(term.Action{Kind: term.ActionHint})
	if !strings.Contains(rec.last(), "during a tutorial") {
		t.Fatalf("unexpected free-mode hint narration %q", rec.last())
	}
	if err := s.ChooseTutorial(context.Background(), "1"); err != nil {
		t.Fatal(err)
	}
	s.Handle(term.Action{Kind: term.ActionHint})
	if rec.last() != "Hint: add the tens first" {
		t.Fatalf("unexpected hint %q", rec.last())
	}
	if s.Engine().Current().Attempts() != 0 {
		t.Fatalf("asking for a hint must not count an attempt")
	}
}

func TestChooseTutorial(t *testing.T) {
	s, _ := newTestSession(t, testConfig(t), nil)
	ctx := context.Background()
	for _, bad := range []string{"x", "-1", "2"} {
		if err := s.ChooseTutorial(ctx, bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
	if err := s.ChooseTutorial(ctx, " 1 "); err != nil || s.Mode() != ModeTutorial {
		t.Fatalf("expected tutorial mode, got %s %v", s.Mode(), err)
	}
	if err := s.ChooseTutorial(ctx, "0"); err != nil || s.Mode() != ModeFree {
		t.Fatalf("expected free mode, got %s %v", s.Mode(), err)
	}
	if got := s.TutorialMenu(); len(got) != 1 || got[0] != "1. Two Sums (easy)" {
		t.Fatalf("unexpected menu %q", got)
	}
}

func TestSettingsPersistAcrossSessions(t *testing.T) {
	cfg := testConfig(t)
	store := openStore(t, cfg)
	s, rec := newTestSession(t, cfg, store)
	s.Handle(term.Action{Kind: term.ActionToggleAutoShift})
	s.Handle(term.Action{Kind: term.ActionToggleFastMove})
	if rec.last() != "Fast move on" {
		t.Fatalf("unexpected toggle narration %q", rec.last())
	}

	again, _ := newTestSession(t, cfg, store)
	st := again.Status()
	if !st.AutoShift || st.SmartDelete || !st.FastMove {
		t.Fatalf("settings not restored: %+v", st)
	}
}

func TestResize(t *testing.T) {
	s, rec := newTestSession(t, testConfig(t), nil)
	typeRow(s, 0, "9")
	if err := s.Resize("3, x"); err == nil {
		t.Fatalf("expected parse error")
	}
	if rec.last() != "Invalid input. Grid size not changed." || s.Grid().Rows() != 18 {
		t.Fatalf("invalid resize must leave the grid alone")
	}
	if err := s.Resize("4,6"); err != nil {
		t.Fatal(err)
	}
	if s.Grid().Rows() != 4 || s.Grid().Cols() != 6 || s.Grid().HasContent() {
		t.Fatalf("resize should replace the grid")
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in         string
		rows, cols int
		ok         bool
	}{
		{"18,25", 18, 25, true},
		{" 3 , 4 ", 3, 4, true},
		{"0,4", 0, 0, false},
		{"3", 0, 0, false},
		{"3,4,5", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			rows, cols, err := ParseSize(tt.in)
			if (err == nil) != tt.ok || rows != tt.rows || cols != tt.cols {
				t.Fatalf("ParseSize(%q) = %d, %d, %v", tt.in, rows, cols, err)
			}
		})
	}
}

func TestSaveLoadExport(t *testing.T) {
	cfg := testConfig(t)
	s, rec := newTestSession(t, cfg, nil)
	typeRow(s, 1, "6*7")
	s.Grid().SetCursor(2, 1)
	s.Handle(term.Action{Kind: term.ActionSave})
	if rec.last() != "Saved" {
		t.Fatalf("unexpected save narration %q", rec.last())
	}
	s.Handle(term.Action{Kind: term.ActionClear})
	if err := s.StartTutorial(context.Background(), 0); err != nil {
		t.Fatal(err)
	}
	s.Handle(term.Action{Kind: term.ActionLoad})
	if s.Mode() != ModeFree {
		t.Fatalf("loading a frame should leave tutorial mode")
	}
	if s.Grid().ExportRow(1) != "6*7" || s.Grid().Cursor().X != 2 {
		t.Fatalf("load did not restore the frame")
	}
	if err := s.Export(filepath.Join(cfg.DataDir, "out", "frame.txt")); err != nil {
		t.Fatal(err)
	}
	if err := s.Load(filepath.Join(cfg.DataDir, "missing.json")); err == nil || rec.last() != "Load failed" {
		t.Fatalf("expected load failure narration, got %q", rec.last())
	}
}

func TestAllowMoveThrottle(t *testing.T) {
	s, _ := newTestSession(t, testConfig(t), nil)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	right := term.Action{Kind: term.ActionMove, DX: 1}
	down := term.Action{Kind: term.ActionMove, DY: 1}
	if !s.AllowMove(right, now) {
		t.Fatalf("first move must pass")
	}
	if s.AllowMove(right, now.Add(50*time.Millisecond)) {
		t.Fatalf("repeat inside the interval must be dropped")
	}
	if !s.AllowMove(down, now.Add(60*time.Millisecond)) {
		t.Fatalf("a new direction must pass inside the interval")
	}
	if !s.AllowMove(right, now.Add(70*time.Millisecond)) {
		t.Fatalf("switching back must pass inside the interval")
	}
	if !s.AllowMove(right, now.Add(170*time.Millisecond)) {
		t.Fatalf("repeat after the interval must pass")
	}
	if s.AllowMove(term.Action{Kind: term.ActionMove, DX: 1}, now.Add(171*time.Millisecond)) {
		t.Fatalf("same direction must stay throttled")
	}
	s.Handle(term.Action{Kind: term.ActionToggleFastMove})
	if !s.AllowMove(right, now.Add(172*time.Millisecond)) {
		t.Fatalf("fast move must not throttle")
	}
}

func TestHelpReadsKeyMap(t *testing.T) {
	s, rec := newTestSession(t, testConfig(t), nil)
	s.Handle(term.Action{Kind: term.ActionHelp})
	got := rec.last()
	for _, want := range []string{"F1: Show this help message.", "Ctrl + T: Hint.", "Paste: Write the pasted text"} {
		if !strings.Contains(got, want) {
			t.Fatalf("help %q missing %q", got, want)
		}
	}
}

func TestHandleEffects(t *testing.T) {
	s, _ := newTestSession(t, testConfig(t), nil)
	cases := map[term.ActionKind]Effect{
		term.ActionQuit:         EffectConfirmQuit,
		term.ActionResize:       EffectPromptResize,
		term.ActionTutorialMenu: EffectPromptTutorial,
		term.ActionHelp:         EffectNone,
	}
	for kind, want := range cases {
		if got := s.Handle(term.Action{Kind: kind}); got != want {
			t.Fatalf("%s: got effect %d, want %d", kind, got, want)
		}
	}
}
