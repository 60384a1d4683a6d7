package mech

import "github.com/zyedidia/generic/mapset"

var neighbours = [...]Point{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}

// ExtendedBody is the body grid with every cell under a joint-tagged
// module turned into a joint, so such modules bridge limbs together.
func (m *Mech) ExtendedBody() Grid[BodyCell] {
	g := m.Body.Clone()
	for i, p := range m.Placements {
		if !p.Module.Has(CapJoint) {
			continue
		}
		for _, pt := range m.placementCells[i] {
			g.Cells[pt.Y][pt.X] = CellJoint
		}
	}
	return g
}

// Flood collects the cells 4-connected to start through cells of the
// same kind as start or joints, start included. An empty start yields
// nothing.
func Flood(g Grid[BodyCell], start Point) []Point {
	kind := g.At(start)
	if kind == CellEmpty {
		return nil
	}

	visited := mapset.New[Point]()
	visited.Put(start)
	queue := []Point{start}
	out := make([]Point, 0, 8)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		out = append(out, current)

		for _, d := range neighbours {
			next := current.Add(d)
			if visited.Has(next) {
				continue
			}
			cell := g.At(next)
			if cell == CellEmpty || (cell != kind && cell != CellJoint) {
				continue
			}
			visited.Put(next)
			queue = append(queue, next)
		}
	}
	return out
}

// PlacementRegion is the part owning the placement's anchor cell, or its
// first covered cell when the anchor falls on an empty module cell.
func (m *Mech) PlacementRegion(idx int) PartRegion {
	if r := m.Owners.At(m.Placements[idx].Anchor); r != RegionNone {
		if at, ok := m.PlacementAt(m.Placements[idx].Anchor); ok && at == idx {
			return r
		}
	}
	for _, pt := range m.placementCells[idx] {
		if r := m.Owners.At(pt); r != RegionNone {
			return r
		}
	}
	return RegionNone
}
