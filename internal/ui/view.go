package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"taylorframe/internal/app"
	"taylorframe/internal/grid"
	"taylorframe/internal/telemetry"
	"taylorframe/internal/term"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/progress"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

type Options struct {
	Theme    string
	Logger   *telemetry.Logger
	Narrator *StatusNarrator
}

type Model struct {
	ctx      context.Context
	ctl      Controller
	narrator *StatusNarrator
	theme    Theme
	logger   *telemetry.Logger

	keys     term.KeyMap
	help     help.Model
	progress progress.Model
	input    textinput.Model

	cols, rows int
	prompt     promptKind
	quitChoice int
	menu       []string
	quitting   bool
}

func New(ctl Controller, opts Options) *Model {
	n := opts.Narrator
	if n == nil {
		n = NewStatusNarrator(opts.Logger)
	}
	theme := ThemeForVariant(opts.Theme)

	h := help.New()
	h.Styles = help.DefaultDarkStyles()

	bar := progress.New(
		progress.WithWidth(20),
		progress.WithColors(lipgloss.Color(theme.Progress[0]), lipgloss.Color(theme.Progress[1]), lipgloss.Color(theme.Progress[2])),
		progress.WithScaled(true),
	)

	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = maxPromptInput

	return &Model{
		ctx:      context.Background(),
		ctl:      ctl,
		narrator: n,
		theme:    theme,
		logger:   opts.Logger,
		keys:     term.DefaultKeyMap(),
		help:     h,
		progress: bar,
		input:    in,
	}
}

func (m *Model) Narrator() *StatusNarrator { return m.narrator }

// Run owns the terminal until the user confirms exit or ctx is cancelled.
func (m *Model) Run(ctx context.Context) error {
	m.ctx = ctx
	m.narrator.SetBeep(func() { _, _ = fmt.Fprint(os.Stderr, "\a") })
	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		return m, nil
	case tea.PasteMsg:
		return m.handlePaste(msg)
	case tea.KeyPressMsg:
		if m.prompt != promptNone {
			return m.handlePromptKey(msg)
		}
		return m.handleKey(msg)
	}
	if m.prompt == promptResize || m.prompt == promptTutorial {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handlePaste(msg tea.PasteMsg) (tea.Model, tea.Cmd) {
	switch m.prompt {
	case promptNone:
		m.ctl.Paste(term.PasteLines(msg.Content))
		return m, nil
	case promptQuit:
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	a := m.keys.Decode(msg)
	if a.Kind == term.ActionNone {
		return m, nil
	}
	if a.IsMovement() && !m.ctl.AllowMove(a, time.Now()) {
		return m, nil
	}
	switch m.ctl.Handle(a) {
	case app.EffectConfirmQuit:
		m.prompt = promptQuit
		m.quitChoice = 0
	case app.EffectPromptResize:
		return m, m.openInput(promptResize, nil)
	case app.EffectPromptTutorial:
		return m, m.openInput(promptTutorial, m.ctl.TutorialMenu())
	}
	return m, nil
}

func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.WindowTitle = "Taylor frame"
	if m.prompt == promptNone && !m.quitting {
		l := m.layout()
		if l.Mode != LayoutTooSmall {
			c := m.ctl.Grid().Cursor()
			v.Cursor = tea.NewCursor(l.CellOrigin(c.X, c.Y))
		}
	}
	return v
}

func (m *Model) size() (int, int) {
	cols, rows := m.cols, m.rows
	if cols < 1 {
		cols = 80
	}
	if rows < 1 {
		rows = 24
	}
	return cols, rows
}

func (m *Model) layout() Layout {
	cols, rows := m.size()
	g := m.ctl.Grid()
	return DetermineLayout(cols, rows, g.Rows(), g.Cols())
}

func (m *Model) render() string {
	if m.quitting {
		return ""
	}
	cols, rows := m.size()
	st := m.ctl.Status()
	l := m.layout()
	header := m.theme.Header.Render(padRune(trimForWidth(" "+headerText(st), cols), cols))

	if l.Mode == LayoutTooSmall {
		msg := fmt.Sprintf("Terminal too small: need %dx%d, have %dx%d", l.NeedCols, l.NeedRows, cols, rows)
		return header + "\n" + m.theme.Error.Render(trimForWidth(msg, cols))
	}

	gridPanel := m.drawPanel("Frame", m.gridLines(), l.GridW, l.GridH)
	msgPanel := m.drawPanel("Messages", m.messageLines(l.MsgW-2, l.MsgH-2), l.MsgW, l.MsgH)
	var body string
	if l.Mode == LayoutWide {
		body = lipgloss.JoinHorizontal(lipgloss.Top, gridPanel, " ", msgPanel)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, gridPanel, msgPanel)
	}
	base := strings.Join([]string{header, body, m.footer(st, cols)}, "\n")

	if overlay := m.renderPrompt(); overlay != "" {
		base = composeOverlay(base, overlay, cols, rows)
	}
	return base
}

func (m *Model) gridLines() []string {
	g := m.ctl.Grid()
	cur := g.Cursor()
	lines := make([]string, g.Rows())
	for y := range lines {
		var b strings.Builder
		for x := 0; x < g.Cols(); x++ {
			r := g.Get(x, y)
			style := m.theme.Cell
			if r == grid.Blank {
				r = '·'
				style = m.theme.Blank
			}
			if x == cur.X && y == cur.Y {
				style = m.theme.Cursor
			}
			b.WriteString(" ")
			b.WriteString(style.Render(string(r)))
		}
		b.WriteString(" ")
		lines[y] = b.String()
	}
	return lines
}

func (m *Model) messageLines(width, height int) []string {
	msgs := m.narrator.Recent(height)
	lines := make([]string, len(msgs))
	for i, msg := range msgs {
		style := m.theme.Message
		if i == len(msgs)-1 {
			style = m.theme.Latest
		}
		if msg.Error {
			style = m.theme.Error
		}
		lines[i] = style.Render(trimForWidth(" "+msg.Text, width))
	}
	return lines
}

func (m *Model) footer(st app.Status, cols int) string {
	line := m.help.View(m.keys)
	if st.Mode == app.ModeTutorial && st.Total > 0 {
		line = m.progress.ViewAs(float64(st.Done)/float64(st.Total)) + "  " + line
	}
	return m.theme.Status.Render(ansi.Truncate(line, cols, "…"))
}

func (m *Model) drawPanel(title string, lines []string, width, height int) string {
	width = max(4, width)
	height = max(3, height)
	innerW := width - 2
	innerH := height - 2
	b := m.theme.Border

	top := m.theme.Frame.Render(b.TopLeft + strings.Repeat(b.Top, innerW) + b.TopRight)
	if title != "" && innerW > 2 {
		t := trimForWidth(" "+title+" ", innerW-1)
		rest := innerW - 1 - len([]rune(t))
		top = m.theme.Frame.Render(b.TopLeft+b.Top) + m.theme.Title.Render(t) +
			m.theme.Frame.Render(strings.Repeat(b.Top, rest)+b.TopRight)
	}

	out := make([]string, 0, height)
	out = append(out, top)
	for row := 0; row < innerH; row++ {
		line := ""
		if row < len(lines) {
			line = lines[row]
		}
		out = append(out, m.theme.Frame.Render(b.Left)+fitWidth(line, innerW)+m.theme.Frame.Render(b.Right))
	}
	out = append(out, m.theme.Frame.Render(b.BottomLeft+strings.Repeat(b.Bottom, innerW)+b.BottomRight))
	return strings.Join(out, "\n")
}

func headerText(st app.Status) string {
	parts := []string{
		fmt.Sprintf("Taylor frame %dx%d", st.Rows, st.Cols),
		fmt.Sprintf("row %d col %d", st.Y+1, st.X+1),
	}
	if st.Mode == app.ModeTutorial && st.Tutorial != "" {
		parts = append(parts, fmt.Sprintf("%s %d/%d", st.Tutorial, st.Done, st.Total))
	} else {
		parts = append(parts, "free mode")
	}
	parts = append(parts,
		"shift:"+flag(st.AutoShift),
		"smart-del:"+flag(st.SmartDelete),
		"fast:"+flag(st.FastMove),
	)
	return strings.Join(parts, " | ")
}

func flag(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// fitWidth pads or cuts a styled line to exactly width cells.
func fitWidth(s string, width int) string {
	w := ansi.StringWidth(s)
	if w > width {
		return ansi.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-w)
}

func padRune(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(strings.ReplaceAll(s, "\t", "    "))
	if len(r) > width {
		r = r[:width]
	}
	if len(r) < width {
		r = append(r, []rune(strings.Repeat(" ", width-len(r)))...)
	}
	return string(r)
}

func trimForWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(strings.ReplaceAll(ansi.Strip(s), "\n", " "))
	if len(r) <= width {
		return string(r)
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
