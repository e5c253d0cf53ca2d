package grid

import (
	"errors"
	"fmt"
	"strings"
)

// Blank is the sentinel held by every empty cell.
const Blank = ' '

var (
	ErrOutOfBounds = errors.New("position out of bounds")
	ErrInvalidSize = errors.New("grid size must be at least 1x1")
)

type Cursor struct {
	X int
	Y int
}

type Grid struct {
	rows   int
	cols   int
	cells  [][]rune
	cursor Cursor
}

func New(rows, cols int) (*Grid, error) {
	g := &Grid{}
	if err := g.Resize(rows, cols); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.cols && y >= 0 && y < g.rows
}

// Get returns the cell content, or Blank when (x, y) is outside the grid.
func (g *Grid) Get(x, y int) rune {
	if !g.InBounds(x, y) {
		return Blank
	}
	return g.cells[y][x]
}

func (g *Grid) IsBlank(x, y int) bool {
	return g.Get(x, y) == Blank
}

func (g *Grid) Set(x, y int, r rune) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("set (%d,%d) in %dx%d grid: %w", x, y, g.rows, g.cols, ErrOutOfBounds)
	}
	if r == 0 {
		r = Blank
	}
	g.cells[y][x] = r
	return nil
}

func (g *Grid) Clear() {
	for y := range g.cells {
		for x := range g.cells[y] {
			g.cells[y][x] = Blank
		}
	}
}

// Resize replaces the buffer with a blank rows x cols grid and homes the cursor.
// Existing content is discarded.
func (g *Grid) Resize(rows, cols int) error {
	if rows < 1 || cols < 1 {
		return fmt.Errorf("resize to %dx%d: %w", rows, cols, ErrInvalidSize)
	}
	cells := make([][]rune, rows)
	for y := range cells {
		row := make([]rune, cols)
		for x := range row {
			row[x] = Blank
		}
		cells[y] = row
	}
	g.rows, g.cols, g.cells = rows, cols, cells
	g.cursor = Cursor{}
	return nil
}

func (g *Grid) Row(y int) []rune {
	if y < 0 || y >= g.rows {
		return nil
	}
	out := make([]rune, g.cols)
	copy(out, g.cells[y])
	return out
}

func (g *Grid) RowText(y int) string {
	if y < 0 || y >= g.rows {
		return ""
	}
	return string(g.cells[y])
}

// ExportRow is RowText with trailing blanks removed.
func (g *Grid) ExportRow(y int) string {
	return strings.TrimRight(g.RowText(y), string(Blank))
}

func (g *Grid) Lines() []string {
	out := make([]string, g.rows)
	for y := range out {
		out[y] = g.RowText(y)
	}
	return out
}

func (g *Grid) Text() string {
	rows := make([]string, g.rows)
	for y := range rows {
		rows[y] = g.ExportRow(y)
	}
	return strings.Join(rows, "\n")
}

func (g *Grid) RowHasContent(y int) bool {
	if y < 0 || y >= g.rows {
		return false
	}
	for _, r := range g.cells[y] {
		if r != Blank {
			return true
		}
	}
	return false
}

func (g *Grid) HasContent() bool {
	for y := 0; y < g.rows; y++ {
		if g.RowHasContent(y) {
			return true
		}
	}
	return false
}

func (g *Grid) LastContentColumn(y int) int {
	if y < 0 || y >= g.rows {
		return -1
	}
	for x := g.cols - 1; x >= 0; x-- {
		if g.cells[y][x] != Blank {
			return x
		}
	}
	return -1
}

func (g *Grid) Cursor() Cursor { return g.cursor }

// SetCursor moves the cursor when (x, y) is inside the grid and reports whether it did.
func (g *Grid) SetCursor(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	g.cursor = Cursor{X: x, Y: y}
	return true
}

func (g *Grid) ResetCursor() { g.cursor = Cursor{} }

func (g *Grid) Current() rune {
	return g.cells[g.cursor.Y][g.cursor.X]
}

func (g *Grid) Input(r rune) {
	g.cells[g.cursor.Y][g.cursor.X] = r
}

// Delete blanks the cell under the cursor and reports whether it held content.
func (g *Grid) Delete() bool {
	if g.Current() == Blank {
		return false
	}
	g.cells[g.cursor.Y][g.cursor.X] = Blank
	return true
}

// Replace takes over the size, content and cursor of src. src is not retained.
func (g *Grid) Replace(src *Grid) {
	cells := make([][]rune, src.rows)
	for y := range cells {
		cells[y] = append([]rune(nil), src.cells[y]...)
	}
	g.rows, g.cols, g.cells = src.rows, src.cols, cells
	g.cursor = src.cursor
}
