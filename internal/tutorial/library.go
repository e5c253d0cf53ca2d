package tutorial

import "fmt"

// Library is read-only after construction.
type Library struct {
	tutorials []Tutorial
}

// NewLibrary concatenates the tutorials of packs in order. Tutorial ids must be unique.
func NewLibrary(packs ...Pack) (*Library, error) {
	lib := &Library{}
	seen := map[string]string{}
	for _, p := range packs {
		for _, t := range p.Tutorials {
			if other, ok := seen[t.ID]; ok {
				return nil, fmt.Errorf("tutorial %q defined in both %s and %s", t.ID, other, p.PackID)
			}
			seen[t.ID] = p.PackID
			lib.tutorials = append(lib.tutorials, t)
		}
	}
	return lib, nil
}

func (l *Library) Len() int { return len(l.tutorials) }

func (l *Library) All() []Tutorial {
	return append([]Tutorial(nil), l.tutorials...)
}

func (l *Library) At(i int) (Tutorial, bool) {
	if i < 0 || i >= len(l.tutorials) {
		return Tutorial{}, false
	}
	return l.tutorials[i], true
}

func (l *Library) ByDifficulty(d Difficulty) []Tutorial {
	var out []Tutorial
	for _, t := range l.tutorials {
		if t.Difficulty == d {
			out = append(out, t)
		}
	}
	return out
}

func (l *Library) Find(id string) (Tutorial, bool) {
	for _, t := range l.tutorials {
		if t.ID == id {
			return t, true
		}
	}
	return Tutorial{}, false
}
