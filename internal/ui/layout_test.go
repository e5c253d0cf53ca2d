package ui

import "testing"

func TestDetermineLayout(t *testing.T) {
	// 25 columns need 25*2+3 = 53 screen columns, 18 rows need 20 screen rows.
	if got := DetermineLayout(120, 30, 18, 25); got.Mode != LayoutWide || got.MsgX != 54 || got.MsgH != 28 {
		t.Fatalf("expected wide layout, got %+v", got)
	}
	if got := DetermineLayout(60, 30, 18, 25); got.Mode != LayoutCompact || got.MsgY != 21 || got.MsgH != 8 {
		t.Fatalf("expected compact layout, got %+v", got)
	}
	if got := DetermineLayout(40, 30, 18, 25); got.Mode != LayoutTooSmall || got.NeedCols != 53 {
		t.Fatalf("expected too-small by width, got %+v", got)
	}
	if got := DetermineLayout(60, 24, 18, 25); got.Mode != LayoutTooSmall || got.NeedRows != 25 {
		t.Fatalf("expected too-small by height, got %+v", got)
	}
}

func TestCellOrigin(t *testing.T) {
	l := DetermineLayout(120, 30, 18, 25)
	if x, y := l.CellOrigin(0, 0); x != 2 || y != 2 {
		t.Fatalf("origin of (0,0) = %d,%d", x, y)
	}
	if x, y := l.CellOrigin(3, 5); x != 8 || y != 7 {
		t.Fatalf("origin of (3,5) = %d,%d", x, y)
	}
}
