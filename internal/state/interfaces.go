package state

import (
	"context"
	"time"
)

type Store interface {
	EnsureSchema(ctx context.Context) error
	StartSession(ctx context.Context, session Session) error
	StartTutorialRun(ctx context.Context, run TutorialRun) (int64, error)
	RecordCheck(ctx context.Context, check CheckAttempt) error
	CompleteTutorialRun(ctx context.Context, runID int64, at time.Time) error
	UpsertTutorialProgress(ctx context.Context, update TutorialProgressUpdate) error
	GetTutorialProgressMap(ctx context.Context) (map[string]TutorialProgress, error)
	SaveSettings(ctx context.Context, values map[string]string) error
	LoadSettings(ctx context.Context) (map[string]string, error)
	GetSummary(ctx context.Context) (Summary, error)
	GetLastRun(ctx context.Context) (*LastRun, error)
	Close() error
}

type Session struct {
	ID      string
	Mode    string
	Rows    int
	Cols    int
	StartTS time.Time
}

type TutorialRun struct {
	SessionID  string
	TutorialID string
	Difficulty string
	Challenges int
	StartTS    time.Time
}

// CheckAttempt is one answer check against a tutorial challenge.
// Attempts is the challenge's running attempt count after the check.
type CheckAttempt struct {
	RunID          int64
	ChallengeIndex int
	Passed         bool
	Row            int
	Attempts       int
}

type Summary struct {
	Sessions     int
	TutorialRuns int
	Completed    int
	Checks       int
	Passes       int
}

type LastRun struct {
	TutorialID  string
	StartTS     time.Time
	Completed   bool
	Checks      int
	ChallengeAt int
}

type TutorialProgress struct {
	TutorialID      string
	CompletedCount  int
	BestAttempts    int
	LastPlayedTS    time.Time
	LastCompletedTS time.Time
}

type TutorialProgressUpdate struct {
	TutorialID   string
	Completed    bool
	Attempts     int
	LastPlayedTS time.Time
}
