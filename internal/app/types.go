package app

type Cue int

const (
	CueMove Cue = iota
	CueBlank
	CueContent
	CueSuccess
	CueError
)

func (c Cue) String() string {
	switch c {
	case CueMove:
		return "move"
	case CueBlank:
		return "blank"
	case CueContent:
		return "content"
	case CueSuccess:
		return "success"
	case CueError:
		return "error"
	default:
		return "unknown"
	}
}

// Effect tells the front end what to do after an action.
type Effect int

const (
	EffectNone Effect = iota
	EffectConfirmQuit
	EffectPromptResize
	EffectPromptTutorial
)

type Status struct {
	Mode        Mode
	Tutorial    string
	Done        int
	Total       int
	AutoShift   bool
	SmartDelete bool
	FastMove    bool
	Rows        int
	Cols        int
	X           int
	Y           int
}
