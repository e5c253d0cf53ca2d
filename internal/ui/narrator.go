package ui

import (
	"strings"

	"taylorframe/internal/app"
	"taylorframe/internal/telemetry"
)

const defaultHistory = 40

type Message struct {
	Text  string
	Error bool
}

// StatusNarrator stands in for a speech engine. Spoken text goes to the message panel.
type StatusNarrator struct {
	history   []Message
	max       int
	pendError bool
	beep      func()
	logger    *telemetry.Logger
}

func NewStatusNarrator(logger *telemetry.Logger) *StatusNarrator {
	return &StatusNarrator{max: defaultHistory, logger: logger}
}

func (n *StatusNarrator) SetBeep(fn func()) { n.beep = fn }

func (n *StatusNarrator) Speak(text string) {
	n.logger.Debug("narrate", map[string]any{"text": text})
	isErr := n.pendError
	n.pendError = false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		n.history = append(n.history, Message{Text: line, Error: isErr})
	}
	if over := len(n.history) - n.max; over > 0 {
		n.history = append([]Message(nil), n.history[over:]...)
	}
}

func (n *StatusNarrator) Cue(c app.Cue) {
	if c != app.CueError {
		return
	}
	n.pendError = true
	if n.beep != nil {
		n.beep()
	}
}

func (n *StatusNarrator) Recent(limit int) []Message {
	if limit <= 0 {
		return nil
	}
	if limit > len(n.history) {
		limit = len(n.history)
	}
	return n.history[len(n.history)-limit:]
}
