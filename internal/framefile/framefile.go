// Package framefile saves and restores grid snapshots.
package framefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"taylorframe/internal/grid"
)

const Version = 1

var ErrInvalidSnapshot = errors.New("invalid snapshot")

type Cursor struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Snapshot is the on-disk form of a grid. Grid holds one full-width line per row.
type Snapshot struct {
	Version int      `json:"version"`
	Rows    int      `json:"rows"`
	Cols    int      `json:"cols"`
	Grid    []string `json:"grid"`
	Cursor  Cursor   `json:"cursor"`
}

func Capture(g *grid.Grid) Snapshot {
	c := g.Cursor()
	s := Snapshot{
		Version: Version,
		Rows:    g.Rows(),
		Cols:    g.Cols(),
		Grid:    make([]string, g.Rows()),
		Cursor:  Cursor{X: c.X, Y: c.Y},
	}
	for y := 0; y < g.Rows(); y++ {
		s.Grid[y] = g.RowText(y)
	}
	return s
}

func (s Snapshot) Validate() error {
	if s.Version < 1 || s.Version > Version {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, s.Version)
	}
	if s.Rows < 1 || s.Cols < 1 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidSnapshot, s.Rows, s.Cols)
	}
	if len(s.Grid) > s.Rows {
		return fmt.Errorf("%w: %d lines for %d rows", ErrInvalidSnapshot, len(s.Grid), s.Rows)
	}
	for y, line := range s.Grid {
		if n := len([]rune(line)); n > s.Cols {
			return fmt.Errorf("%w: line %d has %d cells, max %d", ErrInvalidSnapshot, y, n, s.Cols)
		}
	}
	if s.Cursor.X < 0 || s.Cursor.X >= s.Cols || s.Cursor.Y < 0 || s.Cursor.Y >= s.Rows {
		return fmt.Errorf("%w: cursor (%d,%d) outside grid", ErrInvalidSnapshot, s.Cursor.X, s.Cursor.Y)
	}
	return nil
}

// Restore builds a grid from s. Missing rows and short lines are blank.
func Restore(s Snapshot) (*grid.Grid, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	g, err := grid.New(s.Rows, s.Cols)
	if err != nil {
		return nil, err
	}
	for y, line := range s.Grid {
		for x, r := range []rune(line) {
			if err := g.Set(x, y, r); err != nil {
				return nil, err
			}
		}
	}
	g.SetCursor(s.Cursor.X, s.Cursor.Y)
	return g, nil
}

func Save(path string, g *grid.Grid) error {
	b, err := json.MarshalIndent(Capture(g), "", "  ")
	if err != nil {
		return err
	}
	return writeFile(path, append(b, '\n'))
}

func Load(path string) (*grid.Grid, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return Restore(s)
}

func ExportText(path string, g *grid.Grid) error {
	text := g.Text()
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return writeFile(path, []byte(text))
}

func writeFile(path string, b []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, b, 0o644)
}
