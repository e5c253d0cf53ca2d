package ui

const (
	cellWidth   = 2
	headerRows  = 1
	footerRows  = 1
	minMessages = 3
	sideMin     = 30
)

type LayoutMode int

const (
	LayoutWide LayoutMode = iota
	LayoutCompact
	LayoutTooSmall
)

// Layout places the grid box and the message panel between the header and footer lines.
type Layout struct {
	Mode     LayoutMode
	GridX    int // top-left corner of the grid border
	GridY    int
	GridW    int // including border
	GridH    int
	MsgX     int
	MsgY     int
	MsgW     int
	MsgH     int
	NeedCols int
	NeedRows int
}

// DetermineLayout puts messages beside the grid when there is room and below it otherwise.
func DetermineLayout(cols, rows, gridRows, gridCols int) Layout {
	gw := gridCols*cellWidth + 1 + 2
	gh := gridRows + 2
	l := Layout{GridX: 0, GridY: headerRows, GridW: gw, GridH: gh}
	body := rows - headerRows - footerRows

	if cols >= gw+1+sideMin && body >= gh {
		l.Mode = LayoutWide
		l.MsgX = gw + 1
		l.MsgY = headerRows
		l.MsgW = cols - l.MsgX
		l.MsgH = body
		return l
	}
	l.NeedCols = gw
	l.NeedRows = headerRows + gh + minMessages + footerRows
	if cols < l.NeedCols || rows < l.NeedRows {
		l.Mode = LayoutTooSmall
		return l
	}
	l.Mode = LayoutCompact
	l.MsgX = 0
	l.MsgY = headerRows + gh
	l.MsgW = cols
	l.MsgH = body - gh
	return l
}

func (l Layout) CellOrigin(x, y int) (int, int) {
	return l.GridX + 1 + 1 + x*cellWidth, l.GridY + 1 + y
}
