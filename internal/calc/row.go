package calc

import (
	"fmt"
	"strings"

	"taylorframe/internal/grid"
)

type Result struct {
	Row      int
	Expr     string
	Value    float64
	Text     string // " = <value>", as written into the row
	Column   int    // first column of Text when inserted
	Inserted bool
}

// EvaluateRow evaluates the expression typed on row y and appends " = <value>" one cell past
// the last non-blank cell. When the text would overflow the row the result is returned together
// with ErrResultTooLong and the grid is left alone. Any other failure also leaves the grid alone.
func EvaluateRow(g *grid.Grid, y int) (Result, error) {
	if y < 0 || y >= g.Rows() {
		return Result{}, fmt.Errorf("row %d: %w", y, grid.ErrOutOfBounds)
	}
	expr := strings.TrimSpace(g.RowText(y))
	res := Result{Row: y, Expr: expr}
	if err := validate(expr); err != nil {
		return res, err
	}
	v, err := Eval(expr)
	if err != nil {
		return res, err
	}
	res.Value = v
	res.Text = " = " + Format(v)

	start := g.LastContentColumn(y) + 1
	text := []rune(res.Text)
	if start+len(text) > g.Cols() {
		return res, fmt.Errorf("%d cells needed from column %d of %d: %w", len(text), start, g.Cols(), ErrResultTooLong)
	}
	for i, r := range text {
		if err := g.Set(start+i, y, r); err != nil {
			return res, err
		}
	}
	res.Column = start
	res.Inserted = true
	return res, nil
}
