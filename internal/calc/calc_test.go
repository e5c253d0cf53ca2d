package calc

import (
	"errors"
	"math"
	"testing"

	"taylorframe/internal/grid"
)

func TestEval(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"10 - 4 + 6", 12},
		{"2^3^2", 512},
		{"-2^2", -4},
		{"2^-1", 0.5},
		{"--3", 3},
		{"7/2", 3.5},
		{"sqrt(16) + abs(-2)", 6},
		{"PI", math.Pi},
		{"max(1, 5, 3)", 5},
		{"pow(2, 10)", 1024},
		{"round(2.5)", 2},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Eval(tt.expr)
			if err != nil {
				t.Fatalf("eval: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		expr string
		want error
	}{
		{"", ErrEmpty},
		{"2+", ErrSyntax},
		{"(2+3", ErrSyntax},
		{"2 3", ErrSyntax},
		{"1/0", ErrDivisionByZero},
		{"sqrt(-1)", ErrMath},
		{"foo", ErrUnknownName},
		{"bar(1)", ErrUnknownName},
		{"sqrt(1, 2)", ErrArity},
		{"2;3", ErrInvalidCharacter},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := Eval(tt.expr)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	cases := map[float64]string{
		14:      "14",
		-3:      "-3",
		3.5:     "3.5",
		0.25:    "0.25",
		1e15:    "1000000000000000",
		1 << 50: "1125899906842624",
		-1e15:   "-1000000000000000",
		1e20:    "1e+20",
	}
	for v, want := range cases {
		if got := Format(v); got != want {
			t.Fatalf("Format(%v) = %q, want %q", v, got, want)
		}
	}
}

func rowGrid(t *testing.T, cols int, text string) *grid.Grid {
	t.Helper()
	g, err := grid.New(2, cols)
	if err != nil {
		t.Fatal(err)
	}
	for x, r := range text {
		if err := g.Set(x, 0, r); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestEvaluateRowAppendsResult(t *testing.T) {
	g := rowGrid(t, 12, "2+3*4")
	res, err := EvaluateRow(g, 0)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if res.Value != 14 || !res.Inserted || res.Column != 5 {
		t.Fatalf("unexpected result %+v", res)
	}
	if got := g.ExportRow(0); got != "2+3*4 = 14" {
		t.Fatalf("row after evaluation: %q", got)
	}
}

func TestEvaluateRowRejectsDisallowedCharacter(t *testing.T) {
	g := rowGrid(t, 12, "2+3;4")
	before := g.RowText(0)
	_, err := EvaluateRow(g, 0)
	if !errors.Is(err, ErrInvalidCharacter) {
		t.Fatalf("expected ErrInvalidCharacter, got %v", err)
	}
	if g.RowText(0) != before {
		t.Fatalf("grid must not change on failure")
	}
}

func TestEvaluateRowRejectsCommaInRow(t *testing.T) {
	g := rowGrid(t, 16, "max(1,2)")
	if _, err := EvaluateRow(g, 0); !errors.Is(err, ErrInvalidCharacter) {
		t.Fatalf("expected ErrInvalidCharacter, got %v", err)
	}
}

func TestEvaluateRowTooLong(t *testing.T) {
	g := rowGrid(t, 8, "12*12")
	before := g.RowText(0)
	res, err := EvaluateRow(g, 0)
	if !errors.Is(err, ErrResultTooLong) {
		t.Fatalf("expected ErrResultTooLong, got %v", err)
	}
	if res.Value != 144 || res.Inserted {
		t.Fatalf("expected value reported without insertion, got %+v", res)
	}
	if g.RowText(0) != before {
		t.Fatalf("grid must not change when the result does not fit")
	}
}

func TestEvaluateRowExactFit(t *testing.T) {
	g := rowGrid(t, 8, "2+2")
	res, err := EvaluateRow(g, 0)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !res.Inserted || g.RowText(0) != "2+2 = 4 " {
		t.Fatalf("unexpected row %q", g.RowText(0))
	}
}

func TestEvaluateRowLeadingBlanks(t *testing.T) {
	g := rowGrid(t, 12, "  5 - 8")
	res, err := EvaluateRow(g, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Expr != "5 - 8" || res.Text != " = -3" {
		t.Fatalf("unexpected result %+v", res)
	}
}
