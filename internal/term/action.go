package term

type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionInsert
	ActionMove
	ActionSnap
	ActionNextStack
	ActionRowEdge
	ActionColumnEdge
	ActionCorner
	ActionContentRow
	ActionDelete
	ActionClear
	ActionCheck
	ActionReadLine
	ActionHint
	ActionHelp
	ActionToggleAutoShift
	ActionToggleSmartDelete
	ActionToggleFastMove
	ActionResize
	ActionTutorialMenu
	ActionSave
	ActionLoad
	ActionExport
	ActionQuit
)

var actionNames = map[ActionKind]string{
	ActionNone:              "none",
	ActionInsert:            "insert",
	ActionMove:              "move",
	ActionSnap:              "snap",
	ActionNextStack:         "next_stack",
	ActionRowEdge:           "row_edge",
	ActionColumnEdge:        "column_edge",
	ActionCorner:            "corner",
	ActionContentRow:        "content_row",
	ActionDelete:            "delete",
	ActionClear:             "clear",
	ActionCheck:             "check",
	ActionReadLine:          "read_line",
	ActionHint:              "hint",
	ActionHelp:              "help",
	ActionToggleAutoShift:   "toggle_auto_shift",
	ActionToggleSmartDelete: "toggle_smart_delete",
	ActionToggleFastMove:    "toggle_fast_move",
	ActionResize:            "resize",
	ActionTutorialMenu:      "tutorial_menu",
	ActionSave:              "save",
	ActionLoad:              "load",
	ActionExport:            "export",
	ActionQuit:              "quit",
}

func (k ActionKind) String() string {
	if s, ok := actionNames[k]; ok {
		return s
	}
	return "unknown"
}

// Action is one decoded input. DX and DY carry direction for movement kinds.
type Action struct {
	Kind ActionKind
	DX   int
	DY   int
	Rune rune
}

// IsMovement reports whether a repeat throttle applies to the action.
func (a Action) IsMovement() bool {
	switch a.Kind {
	case ActionMove, ActionSnap, ActionNextStack, ActionContentRow:
		return true
	}
	return false
}
