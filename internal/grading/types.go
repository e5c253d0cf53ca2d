package grading

type Candidate struct {
	Row  int
	Text string
}

type Result struct {
	Matched    bool
	Row        int // matching row, -1 when there is none
	Evaluated  int // predicate calls made during the scan
	Empty      bool
	Candidates []Candidate
}

// NearMiss is the candidate closest to the expected answer.
type NearMiss struct {
	Row      int
	Text     string
	Distance int
}
