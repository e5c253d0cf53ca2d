package tutorial

import (
	"errors"
	"fmt"

	"taylorframe/internal/grading"
)

var ErrNotPresenting = errors.New("no challenge is being presented")

type State int

const (
	StateIdle State = iota
	StatePresented
	StateComplete
)

func (s State) String() string {
	switch s {
	case StatePresented:
		return "presented"
	case StateComplete:
		return "complete"
	default:
		return "idle"
	}
}

type OutcomeKind int

const (
	OutcomePrompt OutcomeKind = iota
	OutcomeCorrect
	OutcomeIncorrect
	OutcomeNoAnswer
	OutcomeHint
	OutcomeComplete
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomePrompt:
		return "prompt"
	case OutcomeCorrect:
		return "correct"
	case OutcomeIncorrect:
		return "incorrect"
	case OutcomeNoAnswer:
		return "no_answer"
	case OutcomeHint:
		return "hint"
	case OutcomeComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Outcome is what the presentation layer narrates after an engine call.
type Outcome struct {
	Kind        OutcomeKind
	Message     string
	Hint        string
	Explanation string
	Challenge   int // zero-based index of the challenge the outcome refers to
	Total       int
	Row         int // matching grid row for OutcomeCorrect, otherwise -1
	Attempts    int
	Evaluated   int
	NearMiss    *grading.NearMiss
	Next        *Outcome
}

const (
	msgNoAnswer = "Please enter an answer in the grid first."
	msgRetry    = "Not quite. Try again."
)

type Engine struct {
	board Board
	state State
	run   *Run
}

func NewEngine(board Board) *Engine {
	return &Engine{board: board}
}

func (e *Engine) State() State { return e.state }
func (e *Engine) Run() *Run    { return e.run }

// Current returns the challenge on screen, or nil outside StatePresented.
func (e *Engine) Current() *Challenge {
	if e.state != StatePresented {
		return nil
	}
	return e.run.Current()
}

func (e *Engine) Progress() (int, int) {
	if e.run == nil {
		return 0, 0
	}
	return e.run.Progress()
}

func (e *Engine) Start(def Tutorial) Outcome {
	e.run = NewRun(def)
	e.state = StatePresented
	out, _ := e.PresentNext()
	return out
}

func (e *Engine) Stop() {
	e.state = StateIdle
	e.run = nil
}

// PresentNext clears the board and prompts the current challenge, or completes the run.
func (e *Engine) PresentNext() (Outcome, error) {
	if e.run == nil {
		return Outcome{}, ErrNotPresenting
	}
	done, total := e.run.Progress()
	ch := e.run.Current()
	if ch == nil {
		e.state = StateComplete
		return Outcome{
			Kind:      OutcomeComplete,
			Message:   fmt.Sprintf("Tutorial complete! You finished %s.", e.run.Tutorial().Title),
			Challenge: done,
			Total:     total,
			Row:       -1,
		}, nil
	}
	e.board.Clear()
	e.board.ResetCursor()
	e.state = StatePresented
	return Outcome{
		Kind:      OutcomePrompt,
		Message:   fmt.Sprintf("Challenge %d of %d: %s", done+1, total, ch.Question()),
		Challenge: done,
		Total:     total,
		Row:       -1,
		Attempts:  ch.Attempts(),
	}, nil
}

// CheckAnswer scans every row of the board for the current answer.
func (e *Engine) CheckAnswer() (Outcome, error) {
	if e.state != StatePresented {
		return Outcome{}, ErrNotPresenting
	}
	ch := e.run.Current()
	idx, total := e.run.Progress()
	res := grading.Scan(e.board.Lines(), ch)
	out := Outcome{
		Challenge: idx,
		Total:     total,
		Row:       res.Row,
		Evaluated: res.Evaluated,
	}

	switch {
	case res.Matched:
		out.Kind = OutcomeCorrect
		out.Explanation = ch.Explanation()
		out.Message = "Correct!"
		if out.Explanation != "" {
			out.Message += " " + out.Explanation
		}
		out.Attempts = ch.Attempts()
		e.run.Advance()
		next, err := e.PresentNext()
		if err != nil {
			return out, err
		}
		out.Next = &next
	case res.Empty:
		out.Kind = OutcomeNoAnswer
		out.Message = msgNoAnswer
		out.Attempts = ch.Attempts()
	default:
		out.Kind = OutcomeIncorrect
		out.Attempts = ch.Attempts()
		out.Message = msgRetry
		if ch.NeedsHint() {
			out.Hint = ch.Hint()
			out.Message = "Not quite. Hint: " + out.Hint
		}
		if miss, ok := grading.Closest(res.Candidates, ch.Answer()); ok {
			out.NearMiss = &miss
		}
	}
	return out, nil
}

// OfferHint returns the current hint without touching attempt state.
func (e *Engine) OfferHint() (Outcome, error) {
	if e.state != StatePresented {
		return Outcome{}, ErrNotPresenting
	}
	ch := e.run.Current()
	idx, total := e.run.Progress()
	return Outcome{
		Kind:      OutcomeHint,
		Message:   ch.Hint(),
		Hint:      ch.Hint(),
		Challenge: idx,
		Total:     total,
		Row:       -1,
		Attempts:  ch.Attempts(),
	}, nil
}
