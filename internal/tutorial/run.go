package tutorial

// Run is one pass through a tutorial. Progress only moves forward.
type Run struct {
	def        Tutorial
	challenges []*Challenge
	current    int
}

func NewRun(def Tutorial) *Run {
	r := &Run{def: def, challenges: make([]*Challenge, len(def.Challenges))}
	for i, c := range def.Challenges {
		r.challenges[i] = NewChallenge(c)
	}
	return r
}

func (r *Run) Tutorial() Tutorial { return r.def }

func (r *Run) Current() *Challenge {
	if r.current < len(r.challenges) {
		return r.challenges[r.current]
	}
	return nil
}

func (r *Run) Advance() {
	if r.current < len(r.challenges) {
		r.current++
	}
}

func (r *Run) IsComplete() bool {
	return r.current >= len(r.challenges)
}

// Progress returns (completed, total).
func (r *Run) Progress() (int, int) {
	return r.current, len(r.challenges)
}

func (r *Run) Attempts() int {
	n := 0
	for _, c := range r.challenges {
		n += c.Attempts()
	}
	return n
}
