package tutorial

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	PackKind               = "tutorial_pack"
	SupportedSchemaVersion = 1
)

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{2,63}$`)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

// ParseDifficulty accepts any casing and surrounding spaces.
func ParseDifficulty(raw string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(raw)))
	if !d.Valid() {
		return "", fmt.Errorf("unknown difficulty %q", raw)
	}
	return d, nil
}

type Pack struct {
	Kind          string     `yaml:"kind"`
	SchemaVersion int        `yaml:"schema_version"`
	PackID        string     `yaml:"pack_id"`
	Name          string     `yaml:"name"`
	Version       string     `yaml:"version"`
	Tutorials     []Tutorial `yaml:"tutorials"`

	Path string `yaml:"-"`
}

type Tutorial struct {
	ID          string         `yaml:"id"`
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Difficulty  Difficulty     `yaml:"difficulty"`
	Challenges  []ChallengeDef `yaml:"challenges"`
}

// ChallengeDef is the immutable part of a challenge. Attempts live in Challenge.
type ChallengeDef struct {
	Question    string `yaml:"question"`
	Answer      string `yaml:"answer"`
	Hint        string `yaml:"hint"`
	Explanation string `yaml:"explanation"`
}

func (p Pack) Validate() error {
	if p.Kind != PackKind {
		return fmt.Errorf("kind must be %q", PackKind)
	}
	if p.SchemaVersion == 0 {
		return fmt.Errorf("schema_version is required")
	}
	if p.SchemaVersion > SupportedSchemaVersion {
		return fmt.Errorf("unsupported pack schema_version %d (max supported %d)", p.SchemaVersion, SupportedSchemaVersion)
	}
	if !idPattern.MatchString(p.PackID) {
		return fmt.Errorf("invalid pack_id %q", p.PackID)
	}
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Version == "" {
		return fmt.Errorf("version is required")
	}
	if len(p.Tutorials) == 0 {
		return fmt.Errorf("pack must contain at least one tutorial")
	}
	seen := map[string]struct{}{}
	for _, t := range p.Tutorials {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("tutorial %q: %w", t.ID, err)
		}
		if _, ok := seen[t.ID]; ok {
			return fmt.Errorf("duplicate tutorial id %q", t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}

func (t Tutorial) Validate() error {
	if !idPattern.MatchString(t.ID) {
		return fmt.Errorf("invalid id %q", t.ID)
	}
	if t.Title == "" {
		return fmt.Errorf("title is required")
	}
	if !t.Difficulty.Valid() {
		return fmt.Errorf("difficulty must be one of easy, medium, hard")
	}
	if len(t.Challenges) == 0 {
		return fmt.Errorf("challenges must contain at least one item")
	}
	for i, c := range t.Challenges {
		if strings.TrimSpace(c.Question) == "" {
			return fmt.Errorf("challenges[%d].question is required", i)
		}
		if strings.TrimSpace(c.Answer) == "" {
			return fmt.Errorf("challenges[%d].answer is required", i)
		}
	}
	return nil
}
