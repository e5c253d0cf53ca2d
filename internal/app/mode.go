package app

import "strings"

type Mode string

const (
	ModeFree     Mode = "free"
	ModeTutorial Mode = "tutorial"
)

// ParseMode maps user input to a mode. Unknown values mean free mode.
func ParseMode(raw string) Mode {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(ModeTutorial), "tutorials":
		return ModeTutorial
	default:
		return ModeFree
	}
}
