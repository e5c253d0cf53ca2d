package tutorial

import "taylorframe/internal/grading"

// HintThreshold is the attempt count from which a configured hint is offered.
const HintThreshold = 2

const fallbackHint = "Think carefully about the problem."

type Challenge struct {
	def      ChallengeDef
	attempts int
}

func NewChallenge(def ChallengeDef) *Challenge {
	return &Challenge{def: def}
}

func (c *Challenge) Question() string    { return c.def.Question }
func (c *Challenge) Answer() string      { return c.def.Answer }
func (c *Challenge) Explanation() string { return c.def.Explanation }
func (c *Challenge) Attempts() int       { return c.attempts }
func (c *Challenge) HasHint() bool       { return c.def.Hint != "" }

// CheckAnswer counts one attempt on every call, then compares normalized strings.
func (c *Challenge) CheckAnswer(candidate string) bool {
	c.attempts++
	return grading.Normalize(candidate) == grading.Normalize(c.def.Answer)
}

func (c *Challenge) NeedsHint() bool {
	return c.attempts >= HintThreshold && c.HasHint()
}

func (c *Challenge) Hint() string {
	if c.def.Hint == "" {
		return fallbackHint
	}
	return c.def.Hint
}
