package nav

import "taylorframe/internal/grid"

type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Result describes where the cursor ended up, for narration by the caller.
type Result struct {
	Moved     bool
	X         int
	Y         int
	Cell      rune
	Blank     bool
	Spoken    string
	Found     bool
	NoContent bool
}

type Navigator struct {
	g *grid.Grid
}

func New(g *grid.Grid) *Navigator {
	return &Navigator{g: g}
}

func (n *Navigator) result(moved bool) Result {
	c := n.g.Cursor()
	cell := n.g.Get(c.X, c.Y)
	return Result{
		Moved:  moved,
		X:      c.X,
		Y:      c.Y,
		Cell:   cell,
		Blank:  cell == grid.Blank,
		Spoken: SpokenCell(cell),
	}
}

func (n *Navigator) Move(dx, dy int) Result {
	c := n.g.Cursor()
	moved := n.g.SetCursor(c.X+dx, c.Y+dy)
	return n.result(moved)
}

// SnapToContent walks in (dx, dy) until the first non-blank cell. When the walk runs off the
// grid without finding content the cursor stays on the last cell it visited, i.e. the boundary.
func (n *Navigator) SnapToContent(dx, dy int) Result {
	if dx == 0 && dy == 0 {
		return n.result(false)
	}
	start := n.g.Cursor()
	for {
		c := n.g.Cursor()
		nx, ny := c.X+dx, c.Y+dy
		if !n.g.InBounds(nx, ny) {
			break
		}
		n.g.SetCursor(nx, ny)
		if !n.g.IsBlank(nx, ny) {
			res := n.result(true)
			res.Found = true
			res.Spoken = n.ReadContentStack(ny)
			return res
		}
	}
	return n.result(n.g.Cursor() != start)
}

func (n *Navigator) ReadContentStack(y int) string {
	return Speak(ReadStack(n.g.Row(y)))
}

func (n *Navigator) ReadLine() string {
	return n.ReadContentStack(n.g.Cursor().Y)
}

// MoveToEdge jumps to the first or last column (AxisX) or row (AxisY) depending on the sign of dir.
func (n *Navigator) MoveToEdge(axis Axis, dir int) Result {
	c := n.g.Cursor()
	x, y := c.X, c.Y
	switch axis {
	case AxisX:
		x = edge(dir, n.g.Cols())
	case AxisY:
		y = edge(dir, n.g.Rows())
	}
	n.g.SetCursor(x, y)
	return n.result(n.g.Cursor() != c)
}

func (n *Navigator) MoveToCorner(dir int) Result {
	c := n.g.Cursor()
	n.g.SetCursor(edge(dir, n.g.Cols()), edge(dir, n.g.Rows()))
	return n.result(n.g.Cursor() != c)
}

func edge(dir, size int) int {
	if dir < 0 {
		return 0
	}
	return size - 1
}

// MoveDownToNextStack hops two rows down, to the column where content starts on the current row.
func (n *Navigator) MoveDownToNextStack() Result {
	c := n.g.Cursor()
	startX := 0
	for x := 0; x < n.g.Cols(); x++ {
		if !n.g.IsBlank(x, c.Y) {
			startX = x
			break
		}
	}
	n.g.SetCursor(startX, min(c.Y+2, n.g.Rows()-1))
	return n.result(n.g.Cursor() != c)
}

// MoveToNextContentRow scans rows in direction dir (-1 up, +1 down) and lands on column 0 of
// the first row holding content. NoContent is set when there is none.
func (n *Navigator) MoveToNextContentRow(dir int) Result {
	if dir == 0 {
		return n.result(false)
	}
	step := 1
	if dir < 0 {
		step = -1
	}
	c := n.g.Cursor()
	for y := c.Y + step; y >= 0 && y < n.g.Rows(); y += step {
		if n.g.RowHasContent(y) {
			n.g.SetCursor(0, y)
			res := n.result(true)
			res.Found = true
			res.Spoken = n.ReadContentStack(y)
			return res
		}
	}
	res := n.result(false)
	res.NoContent = true
	return res
}
