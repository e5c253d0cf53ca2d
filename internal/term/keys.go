package term

import (
	"unicode"
	"unicode/utf8"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	SnapUp      key.Binding
	SnapDown    key.Binding
	SnapLeft    key.Binding
	SnapRight   key.Binding
	NextStack   key.Binding
	RowStart    key.Binding
	RowEnd      key.Binding
	GridStart   key.Binding
	GridEnd     key.Binding
	PrevContent key.Binding
	NextContent key.Binding
	ColumnTop   key.Binding
	ColumnEnd   key.Binding
	Delete      key.Binding
	Clear       key.Binding
	Check       key.Binding
	ReadLine    key.Binding
	Hint        key.Binding
	Help        key.Binding
	AutoShift   key.Binding
	SmartDelete key.Binding
	FastMove    key.Binding
	Resize      key.Binding
	Tutorials   key.Binding
	Save        key.Binding
	Load        key.Binding
	Export      key.Binding
	Quit        key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:          key.NewBinding(key.WithKeys("up"), key.WithHelp("Up", "Move cursor up")),
		Down:        key.NewBinding(key.WithKeys("down"), key.WithHelp("Down", "Move cursor down")),
		Left:        key.NewBinding(key.WithKeys("left"), key.WithHelp("Left", "Move cursor left")),
		Right:       key.NewBinding(key.WithKeys("right"), key.WithHelp("Right", "Move cursor right")),
		SnapUp:      key.NewBinding(key.WithKeys("ctrl+up"), key.WithHelp("Ctrl + Up", "Snap up to content")),
		SnapDown:    key.NewBinding(key.WithKeys("ctrl+down"), key.WithHelp("Ctrl + Down", "Snap down to content")),
		SnapLeft:    key.NewBinding(key.WithKeys("ctrl+left"), key.WithHelp("Ctrl + Left", "Snap left to content")),
		SnapRight:   key.NewBinding(key.WithKeys("ctrl+right"), key.WithHelp("Ctrl + Right", "Snap right to content")),
		NextStack:   key.NewBinding(key.WithKeys("shift+down", "enter"), key.WithHelp("Shift + Down or Enter", "Move to next stack")),
		RowStart:    key.NewBinding(key.WithKeys("home"), key.WithHelp("Home", "Move to start of row")),
		RowEnd:      key.NewBinding(key.WithKeys("end"), key.WithHelp("End", "Move to end of row")),
		GridStart:   key.NewBinding(key.WithKeys("ctrl+home"), key.WithHelp("Ctrl + Home", "Move to start of grid")),
		GridEnd:     key.NewBinding(key.WithKeys("ctrl+end"), key.WithHelp("Ctrl + End", "Move to end of grid")),
		PrevContent: key.NewBinding(key.WithKeys("pgup"), key.WithHelp("PageUp", "Move to previous row with content")),
		NextContent: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("PageDown", "Move to next row with content")),
		ColumnTop:   key.NewBinding(key.WithKeys("ctrl+pgup"), key.WithHelp("Ctrl + PageUp", "Move to top of column")),
		ColumnEnd:   key.NewBinding(key.WithKeys("ctrl+pgdown"), key.WithHelp("Ctrl + PageDown", "Move to bottom of column")),
		Delete:      key.NewBinding(key.WithKeys("backspace", "delete"), key.WithHelp("Backspace", "Delete content")),
		Clear:       key.NewBinding(key.WithKeys("ctrl+backspace", "ctrl+h"), key.WithHelp("Ctrl + Backspace", "Clear entire grid")),
		Check:       key.NewBinding(key.WithKeys("ctrl+enter", "ctrl+e"), key.WithHelp("Ctrl + Enter or Ctrl + E", "Check answer, or evaluate the row")),
		ReadLine:    key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("Ctrl + L", "Read the current line")),
		Hint:        key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("Ctrl + T", "Hint")),
		Help:        key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "Show this help message")),
		AutoShift:   key.NewBinding(key.WithKeys("f2"), key.WithHelp("F2", "Toggle auto-shift cursor")),
		SmartDelete: key.NewBinding(key.WithKeys("f3"), key.WithHelp("F3", "Toggle smart delete")),
		FastMove:    key.NewBinding(key.WithKeys("f4"), key.WithHelp("F4", "Toggle fast move")),
		Resize:      key.NewBinding(key.WithKeys("f5"), key.WithHelp("F5", "Resize grid")),
		Tutorials:   key.NewBinding(key.WithKeys("f6"), key.WithHelp("F6", "Choose a tutorial")),
		Save:        key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("Ctrl + S", "Save")),
		Load:        key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("Ctrl + O", "Load")),
		Export:      key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("Ctrl + X", "Export")),
		Quit:        key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("Escape", "Exit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Check, k.Hint, k.Tutorials, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Help, k.AutoShift, k.SmartDelete, k.FastMove, k.Resize, k.Tutorials},
		{k.Up, k.Down, k.Left, k.Right, k.SnapUp, k.SnapDown, k.SnapLeft, k.SnapRight, k.NextStack},
		{k.RowStart, k.RowEnd, k.GridStart, k.GridEnd, k.ColumnTop, k.ColumnEnd, k.PrevContent, k.NextContent},
		{k.Delete, k.Clear, k.Check, k.ReadLine, k.Hint, k.Save, k.Load, k.Export, k.Quit},
	}
}

// HelpLines renders every binding as "Key: description", in FullHelp order.
func (k KeyMap) HelpLines() []string {
	var out []string
	for _, group := range k.FullHelp() {
		for _, b := range group {
			h := b.Help()
			out = append(out, h.Key+": "+h.Desc+".")
		}
	}
	return out
}

type boundAction struct {
	binding key.Binding
	action  Action
}

func (k KeyMap) actions() []boundAction {
	return []boundAction{
		{k.Up, Action{Kind: ActionMove, DY: -1}},
		{k.Down, Action{Kind: ActionMove, DY: 1}},
		{k.Left, Action{Kind: ActionMove, DX: -1}},
		{k.Right, Action{Kind: ActionMove, DX: 1}},
		{k.SnapUp, Action{Kind: ActionSnap, DY: -1}},
		{k.SnapDown, Action{Kind: ActionSnap, DY: 1}},
		{k.SnapLeft, Action{Kind: ActionSnap, DX: -1}},
		{k.SnapRight, Action{Kind: ActionSnap, DX: 1}},
		{k.NextStack, Action{Kind: ActionNextStack}},
		{k.RowStart, Action{Kind: ActionRowEdge, DX: -1}},
		{k.RowEnd, Action{Kind: ActionRowEdge, DX: 1}},
		{k.GridStart, Action{Kind: ActionCorner, DX: -1, DY: -1}},
		{k.GridEnd, Action{Kind: ActionCorner, DX: 1, DY: 1}},
		{k.PrevContent, Action{Kind: ActionContentRow, DY: -1}},
		{k.NextContent, Action{Kind: ActionContentRow, DY: 1}},
		{k.ColumnTop, Action{Kind: ActionColumnEdge, DY: -1}},
		{k.ColumnEnd, Action{Kind: ActionColumnEdge, DY: 1}},
		{k.Delete, Action{Kind: ActionDelete}},
		{k.Clear, Action{Kind: ActionClear}},
		{k.Check, Action{Kind: ActionCheck}},
		{k.ReadLine, Action{Kind: ActionReadLine}},
		{k.Hint, Action{Kind: ActionHint}},
		{k.Help, Action{Kind: ActionHelp}},
		{k.AutoShift, Action{Kind: ActionToggleAutoShift}},
		{k.SmartDelete, Action{Kind: ActionToggleSmartDelete}},
		{k.FastMove, Action{Kind: ActionToggleFastMove}},
		{k.Resize, Action{Kind: ActionResize}},
		{k.Tutorials, Action{Kind: ActionTutorialMenu}},
		{k.Save, Action{Kind: ActionSave}},
		{k.Load, Action{Kind: ActionLoad}},
		{k.Export, Action{Kind: ActionExport}},
		{k.Quit, Action{Kind: ActionQuit}},
	}
}

// Decode maps a key press to the editor action it triggers.
// Unbound keys decode to ActionNone.
func (k KeyMap) Decode(msg tea.KeyPressMsg) Action {
	for _, ba := range k.actions() {
		if key.Matches(msg, ba.binding) {
			return ba.action
		}
	}
	if msg.Mod&(tea.ModCtrl|tea.ModAlt) != 0 {
		return Action{}
	}
	if utf8.RuneCountInString(msg.Text) != 1 {
		return Action{}
	}
	r, _ := utf8.DecodeRuneInString(msg.Text)
	if !unicode.IsPrint(r) {
		return Action{}
	}
	return Action{Kind: ActionInsert, Rune: r}
}
