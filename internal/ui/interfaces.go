package ui

import (
	"context"
	"time"

	"taylorframe/internal/app"
	"taylorframe/internal/grid"
	"taylorframe/internal/term"
)

// Controller is the session the view drives.
type Controller interface {
	Handle(a term.Action) app.Effect
	Paste(lines []string)
	AllowMove(a term.Action, now time.Time) bool
	Resize(input string) error
	ChooseTutorial(ctx context.Context, input string) error
	TutorialMenu() []string
	Status() app.Status
	Grid() *grid.Grid
}
