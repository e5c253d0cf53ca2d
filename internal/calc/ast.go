package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Node is an evaluable expression tree.
type Node interface {
	Eval() (float64, error)
	String() string
}

type Number struct {
	Value float64
}

func (n Number) Eval() (float64, error) { return n.Value, nil }
func (n Number) String() string         { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

type Const struct {
	Name  string
	Value float64
}

func (c Const) Eval() (float64, error) { return c.Value, nil }
func (c Const) String() string         { return c.Name }

type Unary struct {
	Op      byte
	Operand Node
}

func (u Unary) Eval() (float64, error) {
	v, err := u.Operand.Eval()
	if err != nil {
		return 0, err
	}
	if u.Op == '-' {
		return -v, nil
	}
	return v, nil
}

func (u Unary) String() string { return "(" + string(u.Op) + u.Operand.String() + ")" }

type Binary struct {
	Op          byte
	Left, Right Node
}

func (b Binary) Eval() (float64, error) {
	l, err := b.Left.Eval()
	if err != nil {
		return 0, err
	}
	r, err := b.Right.Eval()
	if err != nil {
		return 0, err
	}
	var v float64
	switch b.Op {
	case '+':
		v = l + r
	case '-':
		v = l - r
	case '*':
		v = l * r
	case '/':
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		v = l / r
	case '^':
		v = math.Pow(l, r)
	default:
		return 0, fmt.Errorf("operator %q: %w", b.Op, ErrSyntax)
	}
	return checkFinite(v)
}

func (b Binary) String() string {
	return "(" + b.Left.String() + " " + string(b.Op) + " " + b.Right.String() + ")"
}

type Call struct {
	Name string
	Args []Node
	fn   function
}

func (c Call) Eval() (float64, error) {
	args := make([]float64, len(c.Args))
	for i, a := range c.Args {
		v, err := a.Eval()
		if err != nil {
			return 0, err
		}
		args[i] = v
	}
	v, err := c.fn.call(args)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", c.Name, err)
	}
	return checkFinite(v)
}

func (c Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

func checkFinite(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrMath
	}
	return v, nil
}
