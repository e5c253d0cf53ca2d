package calc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrInvalidCharacter = errors.New("invalid expression character")
	ErrSyntax           = errors.New("syntax error")
	ErrUnknownName      = errors.New("unknown name")
	ErrArity            = errors.New("wrong number of arguments")
	ErrDivisionByZero   = errors.New("division by zero")
	ErrMath             = errors.New("math error")
	ErrEmpty            = errors.New("empty expression")
	ErrResultTooLong    = errors.New("result does not fit in the row")
)

func Parse(expr string) (Node, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, ErrEmpty
	}
	toks, err := lex(expr)
	if err != nil {
		return nil, err
	}
	p := parser{toks: toks}
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, fmt.Errorf("unexpected %q at offset %d: %w", t.text, t.pos, ErrSyntax)
	}
	return n, nil
}

func Eval(expr string) (float64, error) {
	n, err := Parse(expr)
	if err != nil {
		return 0, err
	}
	return n.Eval()
}

// Format renders integral values without a fractional part or exponent
// up to 2^53, the largest range float64 holds exactly.
func Format(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) isOp(ops string) (byte, bool) {
	t := p.peek()
	if t.kind != tokOp || !strings.Contains(ops, t.text) {
		return 0, false
	}
	return t.text[0], true
}

// expr := term (('+'|'-') term)*
func (p *parser) parseExpr() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.isOp("+-")
		if !ok {
			return left, nil
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, Left: left, Right: right}
	}
}

// term := unary (('*'|'/') unary)*
func (p *parser) parseTerm() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.isOp("*/")
		if !ok {
			return left, nil
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, Left: left, Right: right}
	}
}

// unary := ('+'|'-') unary | power
func (p *parser) parseUnary() (Node, error) {
	if op, ok := p.isOp("+-"); ok {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Unary{Op: op, Operand: operand}, nil
	}
	return p.parsePower()
}

// power := primary ('^' unary)?
// The exponent is parsed as unary so 2^-1 works and 2^3^2 groups to the right.
func (p *parser) parsePower() (Node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if _, ok := p.isOp("^"); !ok {
		return base, nil
	}
	p.next()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return Binary{Op: '^', Left: base, Right: exp}, nil
}

func (p *parser) parsePrimary() (Node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return Number{Value: t.num}, nil
	case tokLParen:
		n, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if c := p.next(); c.kind != tokRParen {
			return nil, fmt.Errorf("missing ')' at offset %d: %w", c.pos, ErrSyntax)
		}
		return n, nil
	case tokIdent:
		if p.peek().kind == tokLParen {
			p.next()
			return p.parseCall(t)
		}
		v, ok := constants[strings.ToLower(t.text)]
		if !ok {
			return nil, fmt.Errorf("name %q: %w", t.text, ErrUnknownName)
		}
		return Const{Name: t.text, Value: v}, nil
	case tokEOF:
		return nil, fmt.Errorf("unexpected end of expression: %w", ErrSyntax)
	default:
		return nil, fmt.Errorf("unexpected %q at offset %d: %w", t.text, t.pos, ErrSyntax)
	}
}

func (p *parser) parseCall(name token) (Node, error) {
	var args []Node
	if p.peek().kind != tokRParen {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.peek().kind != tokComma {
				break
			}
			p.next()
		}
	}
	if c := p.next(); c.kind != tokRParen {
		return nil, fmt.Errorf("missing ')' after %s arguments: %w", name.text, ErrSyntax)
	}
	fn, err := lookupFunction(name.text, len(args))
	if err != nil {
		return nil, err
	}
	return Call{Name: name.text, Args: args, fn: fn}, nil
}
