package nav

import (
	"strings"
	"unicode"

	"taylorframe/internal/grid"
)

var symbolWords = map[rune]string{
	'(': "left paren",
	')': "right paren",
	'[': "left bracket",
	']': "right bracket",
	'{': "left brace",
	'}': "right brace",
	'-': "minus",
	'^': "power",
	'*': "times",
}

// SpokenCell is the narration for a single cell. A blank cell is read as a pause.
func SpokenCell(r rune) string {
	if r == grid.Blank {
		return ","
	}
	if w, ok := symbolWords[r]; ok {
		return w
	}
	return string(r)
}

// ReadStack returns the tokens of the first contiguous run of non-blank cells in row,
// scanning from column 0. Symbols with a spoken name become their own token; every other
// run of characters is kept together so "28" reads as one number.
func ReadStack(row []rune) []string {
	var (
		tokens []string
		word   strings.Builder
		seen   bool
	)
	flush := func() {
		if word.Len() > 0 {
			tokens = append(tokens, word.String())
			word.Reset()
		}
	}
	for _, r := range row {
		if r == grid.Blank || unicode.IsSpace(r) {
			if seen {
				break
			}
			continue
		}
		seen = true
		if w, ok := symbolWords[r]; ok {
			flush()
			tokens = append(tokens, w)
			continue
		}
		word.WriteRune(r)
	}
	flush()
	return tokens
}

func Speak(tokens []string) string {
	return strings.Join(tokens, " ")
}
