package ui

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

const maxPromptInput = 64

type promptKind int

const (
	promptNone promptKind = iota
	promptResize
	promptTutorial
	promptQuit
)

var (
	promptSubmit = key.NewBinding(key.WithKeys("enter"))
	promptCancel = key.NewBinding(key.WithKeys("esc"))
	promptToggle = key.NewBinding(key.WithKeys("left", "right", "up", "down", "tab"))
)

var quitOptions = []string{"Yes", "No"}

func (m *Model) openInput(kind promptKind, menu []string) tea.Cmd {
	m.prompt = kind
	m.menu = menu
	m.input.Reset()
	m.input.Placeholder = ""
	if kind == promptResize {
		m.input.Placeholder = "rows,cols"
	}
	return m.input.Focus()
}

func (m *Model) closePrompt() {
	m.prompt = promptNone
	m.menu = nil
	m.input.Blur()
}

func (m *Model) handlePromptKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.prompt == promptQuit {
		return m.handleQuitKey(msg)
	}
	switch {
	case key.Matches(msg, promptCancel):
		kind := m.prompt
		m.closePrompt()
		if kind == promptResize {
			m.narrator.Speak("Resizing canceled, returning to main window.")
		} else {
			m.narrator.Speak("Returning to main window.")
		}
		return m, nil
	case key.Matches(msg, promptSubmit):
		kind, value := m.prompt, m.input.Value()
		m.closePrompt()
		m.submit(kind, value)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submit(kind promptKind, value string) {
	if strings.TrimSpace(value) == "" {
		m.narrator.Speak("Returning to main window.")
		return
	}
	switch kind {
	case promptResize:
		if err := m.ctl.Resize(value); err != nil {
			m.logger.Info("ui.resize_rejected", map[string]any{"input": value, "error": err.Error()})
		}
	case promptTutorial:
		if err := m.ctl.ChooseTutorial(m.ctx, value); err != nil {
			m.logger.Info("ui.tutorial_rejected", map[string]any{"input": value, "error": err.Error()})
		}
	}
}

// handleQuitKey drives the exit confirmation. Yes is preselected.
func (m *Model) handleQuitKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, promptToggle):
		m.quitChoice = 1 - m.quitChoice
		m.narrator.Speak(quitOptions[m.quitChoice])
	case key.Matches(msg, promptSubmit):
		if m.quitChoice == 0 {
			m.quitting = true
			return m, tea.Quit
		}
		m.closePrompt()
		m.narrator.Speak("Returning to program")
	case key.Matches(msg, promptCancel):
		m.closePrompt()
		m.narrator.Speak("Returning to program")
	}
	return m, nil
}

func (m *Model) renderPrompt() string {
	var lines []string
	switch m.prompt {
	case promptNone:
		return ""
	case promptQuit:
		opts := make([]string, len(quitOptions))
		for i, o := range quitOptions {
			if i == m.quitChoice {
				opts[i] = "[" + o + "]"
			} else {
				opts[i] = " " + o + " "
			}
		}
		lines = []string{"Do you want to exit?", "", strings.Join(opts, "  ")}
	case promptResize:
		lines = []string{"Enter new grid size (rows,cols):", m.input.View()}
	case promptTutorial:
		lines = append(lines, m.menu...)
		lines = append(lines, "", "Tutorial number (0 for free mode):", m.input.View())
	}
	return m.theme.Overlay.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// composeOverlay centres overlay on base. Both are flattened to plain text.
func composeOverlay(base, overlay string, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return base
	}
	baseLines := strings.Split(ansi.Strip(base), "\n")
	for len(baseLines) < rows {
		baseLines = append(baseLines, "")
	}
	for i := 0; i < rows; i++ {
		baseLines[i] = padRune(baseLines[i], cols)
	}

	overlayLines := strings.Split(strings.TrimRight(ansi.Strip(overlay), "\n"), "\n")
	ow := 1
	for _, line := range overlayLines {
		ow = max(ow, len([]rune(line)))
	}
	ow = min(ow, cols)
	oh := min(len(overlayLines), rows)
	startRow := (rows - oh) / 2
	startCol := max(0, (cols-ow)/2)

	for i := 0; i < oh; i++ {
		dst := []rune(baseLines[startRow+i])
		src := []rune(padRune(overlayLines[i], ow))
		copy(dst[startCol:], src)
		baseLines[startRow+i] = string(dst)
	}
	return strings.Join(baseLines[:rows], "\n")
}
