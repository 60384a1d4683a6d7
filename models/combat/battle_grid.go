package combat

import (
	"github.com/saeidalz13/mech-backend/models/mech"
)

// CellStatus is what the attacker knows about a cell of the defender.
// A cell only moves forward: unknown -> revealed -> destroyed, or
// unknown -> destroyed.
type CellStatus uint8

const (
	StatusNone CellStatus = iota
	StatusUnknown
	StatusRevealed
	StatusDestroyed
)

var statusSymbols = [...]string{
	StatusNone:      ".",
	StatusUnknown:   "?",
	StatusRevealed:  "O",
	StatusDestroyed: "X",
}

func (s CellStatus) String() string {
	if int(s) < len(statusSymbols) {
		return statusSymbols[s]
	}
	return "."
}

func (s CellStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *CellStatus) UnmarshalText(text []byte) (err error) {
	*s, err = lookupName[CellStatus](statusSymbols[:], text)
	return err
}

type BattleGrid struct {
	cells mech.Grid[CellStatus]
}

// NewBattleGrid starts every body cell of m as unknown.
func NewBattleGrid(m *mech.Mech) *BattleGrid {
	return &BattleGrid{
		cells: mech.Map(m.Body, func(c mech.BodyCell) CellStatus {
			if c == mech.CellEmpty {
				return StatusNone
			}
			return StatusUnknown
		}),
	}
}

func (g *BattleGrid) W() int { return g.cells.W }
func (g *BattleGrid) H() int { return g.cells.H }

func (g *BattleGrid) Status(p mech.Point) CellStatus {
	return g.cells.At(p)
}

// Reveal reports whether the cell moved from unknown to revealed.
func (g *BattleGrid) Reveal(p mech.Point) bool {
	if g.cells.At(p) != StatusUnknown {
		return false
	}
	g.cells.Cells[p.Y][p.X] = StatusRevealed
	return true
}

// Destroy reports whether the cell newly became destroyed.
func (g *BattleGrid) Destroy(p mech.Point) bool {
	switch g.cells.At(p) {
	case StatusUnknown, StatusRevealed:
		g.cells.Cells[p.Y][p.X] = StatusDestroyed
		return true
	default:
		return false
	}
}

// AllDestroyed is true for an empty slice.
func (g *BattleGrid) AllDestroyed(pts []mech.Point) bool {
	for _, p := range pts {
		if g.cells.At(p) != StatusDestroyed {
			return false
		}
	}
	return true
}

// Targets lists body cells that are not destroyed yet, row by row.
func (g *BattleGrid) Targets() []mech.Point {
	out := make([]mech.Point, 0, g.cells.W*g.cells.H)
	g.cells.Each(func(p mech.Point, s CellStatus) {
		if s != StatusDestroyed {
			out = append(out, p)
		}
	})
	return out
}

func (g *BattleGrid) Clone() *BattleGrid {
	return &BattleGrid{cells: g.cells.Clone()}
}

type Snapshot [][]CellStatus

func (g *BattleGrid) Snapshot() Snapshot {
	return Snapshot(g.cells.Clone().Cells)
}
