package calc

import (
	"fmt"
	"strconv"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

func allowed(r rune) bool {
	if r < unicode.MaxASCII && (isDigit(r) || isLetter(r)) {
		return true
	}
	switch r {
	case ' ', '.', '+', '-', '*', '/', '(', ')', '^':
		return true
	}
	return false
}

func validate(expr string) error {
	for i, r := range expr {
		if !allowed(r) {
			return fmt.Errorf("%q at offset %d: %w", r, i, ErrInvalidCharacter)
		}
	}
	return nil
}

// lex splits expr into tokens. Commas separate function arguments; they are only reachable
// through Eval, rows never contain them because validate runs first.
func lex(expr string) ([]token, error) {
	var out []token
	src := []rune(expr)
	i := 0
	for i < len(src) {
		r := src[i]
		switch {
		case r == ' ' || r == '\t':
			i++
		case isDigit(r) || r == '.':
			start := i
			seenDot := false
			for i < len(src) && (isDigit(src[i]) || src[i] == '.') {
				if src[i] == '.' {
					if seenDot {
						break
					}
					seenDot = true
				}
				i++
			}
			text := string(src[start:i])
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, fmt.Errorf("number %q at offset %d: %w", text, start, ErrSyntax)
			}
			out = append(out, token{kind: tokNumber, text: text, num: v, pos: start})
		case isLetter(r):
			start := i
			for i < len(src) && (isLetter(src[i]) || isDigit(src[i])) {
				i++
			}
			out = append(out, token{kind: tokIdent, text: string(src[start:i]), pos: start})
		case r == '+' || r == '-' || r == '*' || r == '/' || r == '^':
			out = append(out, token{kind: tokOp, text: string(r), pos: i})
			i++
		case r == '(':
			out = append(out, token{kind: tokLParen, text: "(", pos: i})
			i++
		case r == ')':
			out = append(out, token{kind: tokRParen, text: ")", pos: i})
			i++
		case r == ',':
			out = append(out, token{kind: tokComma, text: ",", pos: i})
			i++
		default:
			return nil, fmt.Errorf("%q at offset %d: %w", r, i, ErrInvalidCharacter)
		}
	}
	out = append(out, token{kind: tokEOF, pos: len(src)})
	return out, nil
}

func isLetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
