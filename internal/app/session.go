package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"taylorframe/internal/calc"
	"taylorframe/internal/framefile"
	"taylorframe/internal/grid"
	"taylorframe/internal/nav"
	"taylorframe/internal/state"
	"taylorframe/internal/telemetry"
	"taylorframe/internal/term"
	"taylorframe/internal/tutorial"

	"github.com/google/uuid"
)

const (
	settingAutoShift   = "auto_shift"
	settingSmartDelete = "smart_delete"
	settingFastMove    = "fast_move"
)

const pasteHelp = "Paste: Write the pasted text from the cursor down."

// Deps are the collaborators a Session talks to. Store and Logger may be nil.
type Deps struct {
	Library  *tutorial.Library
	Store    Store
	Logger   *telemetry.Logger
	Narrator Narrator
}

// Session owns the grid and every object that reads or mutates it.
type Session struct {
	cfg     Config
	id      string
	grid    *grid.Grid
	nav     *nav.Navigator
	engine  *tutorial.Engine
	library *tutorial.Library
	store   Store
	logger  *telemetry.Logger
	out     Narrator

	mode        Mode
	autoShift   bool
	smartDelete bool
	fastMove    bool
	lastMove    time.Time
	lastDir     term.Action

	runID    int64
	runStart time.Time
}

func NewSession(cfg Config, deps Deps) (*Session, error) {
	if deps.Narrator == nil {
		return nil, errors.New("narrator is required")
	}
	if deps.Library == nil {
		return nil, errors.New("tutorial library is required")
	}
	g, err := grid.New(cfg.Rows, cfg.Cols)
	if err != nil {
		return nil, err
	}
	return &Session{
		cfg:         cfg,
		id:          uuid.NewString(),
		grid:        g,
		nav:         nav.New(g),
		engine:      tutorial.NewEngine(g),
		library:     deps.Library,
		store:       deps.Store,
		logger:      deps.Logger,
		out:         deps.Narrator,
		mode:        ModeFree,
		autoShift:   cfg.Editing.AutoShift,
		smartDelete: cfg.Editing.SmartDelete,
		fastMove:    cfg.Editing.FastMove,
	}, nil
}

func (s *Session) Grid() *grid.Grid         { return s.grid }
func (s *Session) Mode() Mode               { return s.mode }
func (s *Session) Engine() *tutorial.Engine { return s.engine }

// Start records the session, restores persisted toggles and enters the configured mode.
func (s *Session) Start(ctx context.Context) error {
	if s.store != nil {
		mode := ModeFree
		if s.cfg.TutorialMode {
			mode = ModeTutorial
		}
		if err := s.store.StartSession(ctx, state.Session{
			ID:      s.id,
			Mode:    string(mode),
			Rows:    s.grid.Rows(),
			Cols:    s.grid.Cols(),
			StartTS: time.Now().UTC(),
		}); err != nil {
			return fmt.Errorf("start session: %w", err)
		}
		settings, err := s.store.LoadSettings(ctx)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		s.applySettings(settings)
	}
	s.logger.Info("session.start", map[string]any{"session": s.id, "rows": s.grid.Rows(), "cols": s.grid.Cols()})

	if s.cfg.Tutorial != "" {
		def, ok := s.library.Find(s.cfg.Tutorial)
		if !ok {
			return fmt.Errorf("unknown tutorial %q", s.cfg.Tutorial)
		}
		s.startTutorial(ctx, def)
		return nil
	}
	if s.cfg.TutorialMode {
		return s.StartTutorial(ctx, 0)
	}
	s.out.Speak(fmt.Sprintf("Virtual Taylor frame, %d rows by %d columns. Press F1 for help.", s.grid.Rows(), s.grid.Cols()))
	return nil
}

func (s *Session) applySettings(values map[string]string) {
	read := func(key string, dst *bool) {
		if raw, ok := values[key]; ok {
			if v, err := strconv.ParseBool(raw); err == nil {
				*dst = v
			}
		}
	}
	read(settingAutoShift, &s.autoShift)
	read(settingSmartDelete, &s.smartDelete)
	read(settingFastMove, &s.fastMove)
}

func (s *Session) saveSettings() {
	if s.store == nil {
		return
	}
	err := s.store.SaveSettings(context.Background(), map[string]string{
		settingAutoShift:   strconv.FormatBool(s.autoShift),
		settingSmartDelete: strconv.FormatBool(s.smartDelete),
		settingFastMove:    strconv.FormatBool(s.fastMove),
	})
	if err != nil {
		s.logger.Error("settings.save_failed", map[string]any{"error": err.Error()})
	}
}

func (s *Session) Status() Status {
	c := s.grid.Cursor()
	st := Status{
		Mode:        s.mode,
		AutoShift:   s.autoShift,
		SmartDelete: s.smartDelete,
		FastMove:    s.fastMove,
		Rows:        s.grid.Rows(),
		Cols:        s.grid.Cols(),
		X:           c.X,
		Y:           c.Y,
	}
	if run := s.engine.Run(); run != nil && s.mode == ModeTutorial {
		st.Tutorial = run.Tutorial().Title
		st.Done, st.Total = run.Progress()
	}
	return st
}

// AllowMove throttles held-down movement: a repeat of the previous direction
// passes once per RepeatMS. A new direction always passes, as does anything
// while fast move is on.
func (s *Session) AllowMove(a term.Action, now time.Time) bool {
	dir := term.Action{Kind: a.Kind, DX: a.DX, DY: a.DY}
	repeat := dir == s.lastDir && !s.lastMove.IsZero()
	if !s.fastMove && repeat && now.Sub(s.lastMove) < time.Duration(s.cfg.Editing.RepeatMS)*time.Millisecond {
		return false
	}
	s.lastMove, s.lastDir = now, dir
	return true
}

func (s *Session) Handle(a term.Action) Effect {
	switch a.Kind {
	case term.ActionInsert:
		s.Input(a.Rune)
	case term.ActionMove:
		if res := s.nav.Move(a.DX, a.DY); res.Moved {
			s.narrateCell(res)
		}
	case term.ActionSnap:
		s.narrateSnap(s.nav.SnapToContent(a.DX, a.DY))
	case term.ActionNextStack:
		s.narrateCell(s.nav.MoveDownToNextStack())
	case term.ActionRowEdge:
		s.narrateCell(s.nav.MoveToEdge(nav.AxisX, a.DX))
	case term.ActionColumnEdge:
		s.narrateCell(s.nav.MoveToEdge(nav.AxisY, a.DY))
	case term.ActionCorner:
		s.narrateCell(s.nav.MoveToCorner(a.DX))
	case term.ActionContentRow:
		res := s.nav.MoveToNextContentRow(a.DY)
		if res.NoContent {
			s.out.Cue(CueBlank)
			s.out.Speak("No more content")
			break
		}
		s.narrateSnap(res)
	case term.ActionDelete:
		s.Delete()
	case term.ActionClear:
		s.Clear()
	case term.ActionCheck:
		s.CheckOrEvaluate()
	case term.ActionReadLine:
		s.ReadLine()
	case term.ActionHint:
		s.Hint()
	case term.ActionHelp:
		s.Help()
	case term.ActionToggleAutoShift:
		s.autoShift = !s.autoShift
		s.out.Speak("Auto shift " + onOff(s.autoShift))
		s.saveSettings()
	case term.ActionToggleSmartDelete:
		s.smartDelete = !s.smartDelete
		s.out.Speak("Smart delete " + onOff(s.smartDelete))
		s.saveSettings()
	case term.ActionToggleFastMove:
		s.fastMove = !s.fastMove
		s.out.Speak("Fast move " + onOff(s.fastMove))
		s.saveSettings()
	case term.ActionResize:
		s.out.Speak("Type in the values to resize and hit enter. Press Escape to cancel.")
		return EffectPromptResize
	case term.ActionTutorialMenu:
		s.out.Speak(s.tutorialMenuPrompt())
		return EffectPromptTutorial
	case term.ActionSave:
		s.Save(s.cfg.SnapshotPath)
	case term.ActionLoad:
		s.Load(s.cfg.SnapshotPath)
	case term.ActionExport:
		s.Export(s.cfg.ExportPath)
	case term.ActionQuit:
		s.out.Speak("Do you want to exit? Yes")
		return EffectConfirmQuit
	}
	return EffectNone
}

func (s *Session) narrateCell(res nav.Result) {
	s.out.Cue(CueMove)
	if res.Blank {
		s.out.Cue(CueBlank)
	} else {
		s.out.Cue(CueContent)
	}
	s.out.Speak(res.Spoken)
}

func (s *Session) narrateSnap(res nav.Result) {
	if res.Found {
		s.out.Cue(CueContent)
		s.out.Speak(res.Spoken)
		return
	}
	if res.Moved {
		s.narrateCell(res)
	}
}

func (s *Session) Input(r rune) {
	s.grid.Input(r)
	s.out.Cue(CueContent)
	s.out.Speak(nav.SpokenCell(r))
	if s.autoShift {
		if res := s.nav.Move(1, 0); res.Moved {
			s.narrateCell(res)
		}
	}
}

// Paste writes lines from the cursor down, one grid row per line and each starting at
// the cursor column. Cells past the grid edge are dropped. The cursor ends after the last
// written cell.
func (s *Session) Paste(lines []string) {
	start := s.grid.Cursor()
	x, y := start.X, start.Y
	written := 0
	for i, line := range lines {
		row := start.Y + i
		if row >= s.grid.Rows() {
			break
		}
		y, x = row, start.X
		for _, r := range line {
			if err := s.grid.Set(x, y, r); err != nil {
				break
			}
			x++
			written++
		}
	}
	s.logger.Debug("grid.paste", map[string]any{"lines": len(lines), "cells": written})
	if written == 0 {
		s.out.Cue(CueBlank)
		s.out.Speak("Nothing pasted")
		return
	}
	s.grid.SetCursor(min(x, s.grid.Cols()-1), y)
	s.out.Cue(CueContent)
	s.out.Speak(fmt.Sprintf("Pasted %d characters", written))
}

// Delete blanks the current cell. With smart delete on, a blank cell makes it step left first.
func (s *Session) Delete() {
	if s.grid.Delete() {
		s.out.Cue(CueBlank)
		s.out.Speak("Deleted")
		return
	}
	if s.smartDelete {
		s.nav.Move(-1, 0)
		if s.grid.Delete() {
			s.out.Cue(CueBlank)
			s.out.Speak("Deleted")
			return
		}
	}
	s.out.Cue(CueBlank)
	s.out.Speak(nav.SpokenCell(grid.Blank))
}

func (s *Session) Clear() {
	s.grid.Clear()
	s.out.Cue(CueBlank)
	s.out.Speak("Grid cleared")
}

func (s *Session) ReadLine() {
	text := s.nav.ReadLine()
	if text == "" {
		s.out.Cue(CueBlank)
		s.out.Speak("Empty line")
		return
	}
	s.out.Speak(text)
}

func (s *Session) CheckOrEvaluate() {
	if s.mode == ModeTutorial && s.engine.State() == tutorial.StatePresented {
		s.checkAnswer()
		return
	}
	s.evaluateRow()
}

func (s *Session) evaluateRow() {
	y := s.grid.Cursor().Y
	res, err := calc.EvaluateRow(s.grid, y)
	fields := map[string]any{"row": y, "expr": res.Expr}
	switch {
	case err == nil:
		fields["value"] = res.Value
		s.logger.Info("calc.evaluate", fields)
		s.out.Cue(CueSuccess)
		s.out.Speak("equals " + calc.Format(res.Value))
	case errors.Is(err, calc.ErrResultTooLong):
		fields["value"] = res.Value
		s.logger.Info("calc.result_too_long", fields)
		s.out.Cue(CueError)
		s.out.Speak("Result " + calc.Format(res.Value) + " does not fit on this row")
	case errors.Is(err, calc.ErrEmpty):
		s.out.Cue(CueError)
		s.out.Speak("Nothing to evaluate on this row")
	default:
		fields["error"] = err.Error()
		s.logger.Info("calc.error", fields)
		s.out.Cue(CueError)
		s.out.Speak("Error: " + calcMessage(err))
	}
}

func calcMessage(err error) string {
	switch {
	case errors.Is(err, calc.ErrInvalidCharacter):
		return "invalid character in expression"
	case errors.Is(err, calc.ErrDivisionByZero):
		return "division by zero"
	case errors.Is(err, calc.ErrUnknownName):
		return "unknown function or constant"
	case errors.Is(err, calc.ErrArity):
		return "wrong number of arguments"
	case errors.Is(err, calc.ErrMath):
		return "result is not a number"
	default:
		return "invalid expression"
	}
}

func (s *Session) checkAnswer() {
	out, err := s.engine.CheckAnswer()
	if err != nil {
		s.out.Cue(CueError)
		s.out.Speak("No challenge is active")
		return
	}
	fields := map[string]any{
		"session":   s.id,
		"challenge": out.Challenge,
		"outcome":   out.Kind.String(),
		"attempts":  out.Attempts,
		"evaluated": out.Evaluated,
		"row":       out.Row,
	}
	if out.NearMiss != nil {
		fields["near_miss_row"] = out.NearMiss.Row
		fields["near_miss_distance"] = out.NearMiss.Distance
	}
	s.logger.Info("tutorial.check", fields)

	switch out.Kind {
	case tutorial.OutcomeNoAnswer:
		s.out.Cue(CueError)
		s.out.Speak(out.Message)
		return
	case tutorial.OutcomeCorrect:
		s.recordCheck(out, true)
		s.out.Cue(CueSuccess)
		s.out.Speak(out.Message)
	default:
		s.recordCheck(out, false)
		s.out.Cue(CueError)
		s.out.Speak(out.Message)
		return
	}
	if out.Next == nil {
		return
	}
	s.out.Speak(out.Next.Message)
	if out.Next.Kind == tutorial.OutcomeComplete {
		s.completeTutorial()
	}
}

func (s *Session) recordCheck(out tutorial.Outcome, passed bool) {
	if s.store == nil || s.runID == 0 {
		return
	}
	err := s.store.RecordCheck(context.Background(), state.CheckAttempt{
		RunID:          s.runID,
		ChallengeIndex: out.Challenge,
		Passed:         passed,
		Row:            out.Row,
		Attempts:       out.Attempts,
	})
	if err != nil {
		s.logger.Error("store.record_check_failed", map[string]any{"error": err.Error()})
	}
}

func (s *Session) completeTutorial() {
	run := s.engine.Run()
	s.logger.Info("tutorial.complete", map[string]any{"tutorial": run.Tutorial().ID, "attempts": run.Attempts()})
	if s.store != nil && s.runID != 0 {
		ctx := context.Background()
		now := time.Now().UTC()
		if err := s.store.CompleteTutorialRun(ctx, s.runID, now); err != nil {
			s.logger.Error("store.complete_run_failed", map[string]any{"error": err.Error()})
		}
		if err := s.store.UpsertTutorialProgress(ctx, state.TutorialProgressUpdate{
			TutorialID:   run.Tutorial().ID,
			Completed:    true,
			Attempts:     run.Attempts(),
			LastPlayedTS: now,
		}); err != nil {
			s.logger.Error("store.progress_failed", map[string]any{"error": err.Error()})
		}
	}
	s.runID = 0
	s.mode = ModeFree
}

func (s *Session) Help() {
	lines := append(term.DefaultKeyMap().HelpLines(), pasteHelp)
	s.out.Speak(strings.Join(lines, "\n"))
}

func (s *Session) Hint() {
	if s.mode != ModeTutorial {
		s.out.Speak("Hints are available during a tutorial. Press F6 to choose one.")
		return
	}
	out, err := s.engine.OfferHint()
	if err != nil {
		s.out.Speak("No challenge is active")
		return
	}
	s.logger.Info("tutorial.hint", map[string]any{"challenge": out.Challenge, "attempts": out.Attempts})
	s.out.Speak("Hint: " + out.Message)
}

func (s *Session) tutorialMenuPrompt() string {
	var b strings.Builder
	b.WriteString("Choose a tutorial by number, 0 for free mode.")
	for i, t := range s.library.All() {
		fmt.Fprintf(&b, " %d: %s, %s.", i+1, t.Title, t.Difficulty)
	}
	return b.String()
}

func (s *Session) TutorialMenu() []string {
	all := s.library.All()
	out := make([]string, len(all))
	for i, t := range all {
		out[i] = fmt.Sprintf("%d. %s (%s)", i+1, t.Title, t.Difficulty)
	}
	return out
}

// ChooseTutorial handles the menu answer: 0 returns to free mode, N starts tutorial N.
func (s *Session) ChooseTutorial(ctx context.Context, input string) error {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 0 || n > s.library.Len() {
		s.out.Cue(CueError)
		s.out.Speak("Invalid choice.")
		return fmt.Errorf("invalid tutorial choice %q", input)
	}
	if n == 0 {
		s.StopTutorial()
		return nil
	}
	return s.StartTutorial(ctx, n-1)
}

func (s *Session) StartTutorial(ctx context.Context, index int) error {
	def, ok := s.library.At(index)
	if !ok {
		return fmt.Errorf("tutorial index %d out of range", index)
	}
	s.startTutorial(ctx, def)
	return nil
}

func (s *Session) startTutorial(ctx context.Context, def tutorial.Tutorial) {
	s.mode = ModeTutorial
	s.runID = 0
	s.runStart = time.Now().UTC()
	if s.store != nil {
		id, err := s.store.StartTutorialRun(ctx, state.TutorialRun{
			SessionID:  s.id,
			TutorialID: def.ID,
			Difficulty: string(def.Difficulty),
			Challenges: len(def.Challenges),
			StartTS:    s.runStart,
		})
		if err != nil {
			s.logger.Error("store.start_run_failed", map[string]any{"error": err.Error()})
		} else {
			s.runID = id
		}
	}
	s.logger.Info("tutorial.start", map[string]any{"session": s.id, "tutorial": def.ID})
	intro := def.Title + "."
	if def.Description != "" {
		intro += " " + def.Description
	}
	s.out.Speak(intro)
	out := s.engine.Start(def)
	s.out.Speak(out.Message)
	if out.Kind == tutorial.OutcomeComplete {
		s.completeTutorial()
	}
}

func (s *Session) StopTutorial() {
	if s.mode == ModeTutorial {
		s.logger.Info("tutorial.stop", map[string]any{"session": s.id})
	}
	s.engine.Stop()
	s.runID = 0
	s.mode = ModeFree
	s.out.Speak("Free mode.")
}

// Resize parses "rows,cols" and replaces the grid. Invalid input leaves the grid alone.
func (s *Session) Resize(input string) error {
	rows, cols, err := ParseSize(input)
	if err == nil {
		err = s.grid.Resize(rows, cols)
	}
	if err != nil {
		s.out.Cue(CueError)
		s.out.Speak("Invalid input. Grid size not changed.")
		return err
	}
	if s.mode == ModeTutorial {
		s.StopTutorial()
	}
	s.logger.Info("grid.resize", map[string]any{"rows": rows, "cols": cols})
	s.out.Speak("Grid resized")
	return nil
}

func ParseSize(input string) (int, int, error) {
	parts := strings.Split(input, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("size %q: want rows,cols", input)
	}
	rows, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("rows: %w", err)
	}
	cols, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("cols: %w", err)
	}
	if rows < 1 || cols < 1 {
		return 0, 0, fmt.Errorf("size %dx%d: %w", rows, cols, grid.ErrInvalidSize)
	}
	return rows, cols, nil
}

func (s *Session) Save(path string) error {
	if err := framefile.Save(path, s.grid); err != nil {
		s.fileError("save", path, err)
		return err
	}
	s.logger.Info("frame.save", map[string]any{"path": path})
	s.out.Speak("Saved")
	return nil
}

// Load replaces the grid with a saved snapshot. An active tutorial is abandoned.
func (s *Session) Load(path string) error {
	g, err := framefile.Load(path)
	if err != nil {
		s.fileError("load", path, err)
		return err
	}
	if s.mode == ModeTutorial {
		s.StopTutorial()
	}
	s.grid.Replace(g)
	s.logger.Info("frame.load", map[string]any{"path": path, "rows": g.Rows(), "cols": g.Cols()})
	s.out.Speak(fmt.Sprintf("Loaded, %d rows by %d columns", g.Rows(), g.Cols()))
	return nil
}

func (s *Session) Export(path string) error {
	if err := framefile.ExportText(path, s.grid); err != nil {
		s.fileError("export", path, err)
		return err
	}
	s.logger.Info("frame.export", map[string]any{"path": path})
	s.out.Speak("Exported")
	return nil
}

func (s *Session) fileError(op, path string, err error) {
	s.logger.Error("frame."+op+"_failed", map[string]any{"path": path, "error": err.Error()})
	s.out.Cue(CueError)
	s.out.Speak(strings.ToUpper(op[:1]) + op[1:] + " failed")
}

func (s *Session) Close() {
	s.logger.Info("session.end", map[string]any{"session": s.id})
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
