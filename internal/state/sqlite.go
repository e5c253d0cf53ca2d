package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps writes ordered on a single-user database.
	db.SetMaxOpenConns(1)
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			mode TEXT NOT NULL DEFAULT 'free',
			grid_rows INTEGER NOT NULL DEFAULT 0,
			grid_cols INTEGER NOT NULL DEFAULT 0,
			start_ts TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tutorial_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			tutorial_id TEXT NOT NULL,
			difficulty TEXT NOT NULL DEFAULT '',
			challenges INTEGER NOT NULL DEFAULT 0,
			start_ts TEXT NOT NULL,
			checks INTEGER NOT NULL DEFAULT 0,
			challenge_at INTEGER NOT NULL DEFAULT 0,
			completed_ts TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS check_attempts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL,
			challenge_index INTEGER NOT NULL,
			attempt_ts TEXT NOT NULL DEFAULT (datetime('now')),
			passed INTEGER NOT NULL,
			row_index INTEGER NOT NULL DEFAULT -1,
			attempts INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY(run_id) REFERENCES tutorial_runs(id)
		);`,
		`CREATE TABLE IF NOT EXISTS tutorial_progress (
			tutorial_id TEXT PRIMARY KEY,
			completed_count INTEGER NOT NULL DEFAULT 0,
			best_attempts INTEGER NOT NULL DEFAULT 0,
			last_played_ts TEXT NOT NULL DEFAULT '',
			last_completed_ts TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS app_settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) StartSession(ctx context.Context, session Session) error {
	id := strings.TrimSpace(session.ID)
	if id == "" {
		return errors.New("session id is required")
	}
	start := session.StartTS
	if start.IsZero() {
		start = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO sessions(id, mode, grid_rows, grid_cols, start_ts) VALUES(?,?,?,?,?)`,
		id,
		strings.TrimSpace(session.Mode),
		session.Rows,
		session.Cols,
		start.UTC().Format(timeLayout),
	)
	return err
}

func (s *SQLiteStore) StartTutorialRun(ctx context.Context, run TutorialRun) (int64, error) {
	start := run.StartTS
	if start.IsZero() {
		start = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tutorial_runs(session_id, tutorial_id, difficulty, challenges, start_ts) VALUES(?,?,?,?,?)`,
		run.SessionID,
		run.TutorialID,
		run.Difficulty,
		run.Challenges,
		start.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) RecordCheck(ctx context.Context, check CheckAttempt) error {
	passed := ifThen(check.Passed, 1, 0)
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO check_attempts(run_id, challenge_index, passed, row_index, attempts) VALUES(?,?,?,?,?)`,
		check.RunID, check.ChallengeIndex, passed, check.Row, check.Attempts,
	); err != nil {
		return err
	}
	at := check.ChallengeIndex
	if check.Passed {
		at++
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE tutorial_runs SET checks = checks + 1, challenge_at = MAX(challenge_at, ?) WHERE id = ?`,
		at, check.RunID,
	); err != nil {
		return err
	}
	return nil
}

func (s *SQLiteStore) CompleteTutorialRun(ctx context.Context, runID int64, at time.Time) error {
	if at.IsZero() {
		at = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE tutorial_runs SET completed_ts = ?, challenge_at = challenges WHERE id = ?`,
		at.UTC().Format(timeLayout), runID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("tutorial run %d not found", runID)
	}
	return nil
}

func (s *SQLiteStore) UpsertTutorialProgress(ctx context.Context, update TutorialProgressUpdate) error {
	tutorialID := strings.TrimSpace(update.TutorialID)
	if tutorialID == "" {
		return nil
	}
	playTS := update.LastPlayedTS
	if playTS.IsZero() {
		playTS = time.Now().UTC()
	}
	doneTS := ""
	bestAttempts := 0
	if update.Completed {
		doneTS = playTS.UTC().Format(timeLayout)
		bestAttempts = max(0, update.Attempts)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tutorial_progress(tutorial_id, completed_count, best_attempts, last_played_ts, last_completed_ts)
		VALUES(?, ?, ?, ?, ?)
		ON CONFLICT(tutorial_id) DO UPDATE SET
			completed_count = tutorial_progress.completed_count + excluded.completed_count,
			best_attempts = CASE
				WHEN excluded.best_attempts > 0 AND (tutorial_progress.best_attempts = 0 OR excluded.best_attempts < tutorial_progress.best_attempts) THEN excluded.best_attempts
				ELSE tutorial_progress.best_attempts
			END,
			last_played_ts = excluded.last_played_ts,
			last_completed_ts = CASE
				WHEN excluded.last_completed_ts <> '' THEN excluded.last_completed_ts
				ELSE tutorial_progress.last_completed_ts
			END
	`,
		tutorialID,
		ifThen(update.Completed, 1, 0),
		bestAttempts,
		playTS.UTC().Format(timeLayout),
		doneTS,
	)
	return err
}

func (s *SQLiteStore) GetTutorialProgressMap(ctx context.Context) (map[string]TutorialProgress, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tutorial_id, completed_count, best_attempts, last_played_ts, last_completed_ts
		FROM tutorial_progress
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]TutorialProgress{}
	for rows.Next() {
		var (
			p          TutorialProgress
			lastPlayed string
			lastDone   string
		)
		if err := rows.Scan(&p.TutorialID, &p.CompletedCount, &p.BestAttempts, &lastPlayed, &lastDone); err != nil {
			return nil, err
		}
		p.LastPlayedTS = parseTS(lastPlayed)
		p.LastCompletedTS = parseTS(lastDone)
		out[p.TutorialID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) SaveSettings(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	for key, value := range values {
		k := strings.TrimSpace(key)
		if k == "" {
			continue
		}
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO app_settings(key, value) VALUES(?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, k, value); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) LoadSettings(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM app_settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) GetSummary(ctx context.Context) (Summary, error) {
	var out Summary
	row := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM sessions),
			(SELECT COUNT(*) FROM tutorial_runs),
			(SELECT COUNT(*) FROM tutorial_runs WHERE completed_ts <> ''),
			(SELECT COUNT(*) FROM check_attempts),
			(SELECT COALESCE(SUM(passed),0) FROM check_attempts)
	`)
	if err := row.Scan(&out.Sessions, &out.TutorialRuns, &out.Completed, &out.Checks, &out.Passes); err != nil {
		return Summary{}, err
	}
	return out, nil
}

func (s *SQLiteStore) GetLastRun(ctx context.Context) (*LastRun, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT tutorial_id, start_ts, completed_ts, checks, challenge_at
		FROM tutorial_runs
		ORDER BY id DESC
		LIMIT 1
	`)
	var (
		out      LastRun
		startRaw string
		doneRaw  string
	)
	if err := row.Scan(&out.TutorialID, &startRaw, &doneRaw, &out.Checks, &out.ChallengeAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	out.StartTS = parseTS(startRaw)
	out.Completed = doneRaw != ""
	return &out, nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

func parseTS(raw string) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func ifThen(cond bool, yes, no int) int {
	if cond {
		return yes
	}
	return no
}
