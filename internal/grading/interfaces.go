package grading

// Checker is an answer predicate. Every call counts as one attempt on the implementation side.
type Checker interface {
	CheckAnswer(candidate string) bool
}
