package app

import (
	"context"
	"time"

	"taylorframe/internal/state"
)

// Narrator receives everything the session wants the user to hear.
type Narrator interface {
	Speak(text string)
	Cue(c Cue)
}

type Store interface {
	StartSession(ctx context.Context, session state.Session) error
	StartTutorialRun(ctx context.Context, run state.TutorialRun) (int64, error)
	RecordCheck(ctx context.Context, check state.CheckAttempt) error
	CompleteTutorialRun(ctx context.Context, runID int64, at time.Time) error
	UpsertTutorialProgress(ctx context.Context, update state.TutorialProgressUpdate) error
	SaveSettings(ctx context.Context, values map[string]string) error
	LoadSettings(ctx context.Context) (map[string]string, error)
}
