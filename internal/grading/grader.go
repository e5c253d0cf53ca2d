package grading

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

func Normalize(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "")
}

// Scan offers each non-empty row, top to bottom and trimmed, to c until one matches.
// Blank rows are skipped and never reach the predicate.
func Scan(rows []string, c Checker) Result {
	res := Result{Row: -1}
	for y, raw := range rows {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		res.Candidates = append(res.Candidates, Candidate{Row: y, Text: text})
		res.Evaluated++
		if c.CheckAnswer(text) {
			res.Matched = true
			res.Row = y
			return res
		}
	}
	res.Empty = len(res.Candidates) == 0
	return res
}

// Closest returns the candidate with the smallest edit distance to answer after normalization.
// ok is false when there are no candidates.
func Closest(candidates []Candidate, answer string) (NearMiss, bool) {
	want := Normalize(answer)
	best := NearMiss{Row: -1}
	found := false
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(Normalize(c.Text), want)
		if !found || d < best.Distance {
			best = NearMiss{Row: c.Row, Text: c.Text, Distance: d}
			found = true
		}
	}
	return best, found
}
