package mech

import (
	"strings"

	cerr "github.com/saeidalz13/mech-backend/internal/error"
)

// BodyCell is a cell of a part, module or assembled body.
type BodyCell uint8

const (
	CellEmpty BodyCell = iota
	CellFilled
	CellJoint
)

func (c BodyCell) String() string {
	switch c {
	case CellFilled:
		return "0"
	case CellJoint:
		return "="
	default:
		return "."
	}
}

// Layout is a parsed ASCII block.
type Layout = Grid[BodyCell]

// ParseLayout turns an ASCII block into a rectangular grid. Rows are padded
// on the right to the longest row (ignoring trailing whitespace). '0' is a
// filled cell, '=' a joint and '.' or ' ' empty. Any other character fails
// with ErrUnknownCell. With mirror the result is flipped horizontally.
func ParseLayout(key, source string, mirror bool) (Layout, error) {
	lines := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")

	w := 0
	for _, line := range lines {
		w = max(w, len([]rune(strings.TrimRight(line, " \t"))))
	}

	grid := NewGrid[BodyCell](w, len(lines))
	for y, line := range lines {
		runes := []rune(strings.TrimRight(line, " \t"))
		for x, r := range runes {
			switch r {
			case '0':
				grid.Cells[y][x] = CellFilled
			case '=':
				grid.Cells[y][x] = CellJoint
			case '.', ' ':
			default:
				return Layout{}, cerr.ErrUnknownCellType(r, key)
			}
		}
	}

	if mirror {
		grid = FlipH(grid)
	}
	return grid, nil
}

// FormatLayout is the inverse of ParseLayout, using '.' for empty cells.
func FormatLayout(g Layout) string {
	var sb strings.Builder
	for y, row := range g.Cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, cell := range row {
			sb.WriteString(cell.String())
		}
	}
	return sb.String()
}
