package mech

import (
	cerr "github.com/saeidalz13/mech-backend/internal/error"
)

// PartRegion records which body part owns a cell.
type PartRegion uint8

const (
	RegionNone PartRegion = iota
	RegionChest
	RegionHead
	RegionArmL
	RegionArmR
	RegionLegL
	RegionLegR
)

var regionNames = [...]string{
	RegionNone:  "none",
	RegionChest: "chest",
	RegionHead:  "head",
	RegionArmL:  "armL",
	RegionArmR:  "armR",
	RegionLegL:  "legL",
	RegionLegR:  "legR",
}

func (r PartRegion) String() string {
	if int(r) < len(regionNames) {
		return regionNames[r]
	}
	return "unknown"
}

func (r PartRegion) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// RegionOf maps a chest connector to the limb hanging off it.
func RegionOf(c Connector) PartRegion {
	switch c {
	case ConnHead:
		return RegionHead
	case ConnArmL:
		return RegionArmL
	case ConnArmR:
		return RegionArmR
	case ConnLegL:
		return RegionLegL
	case ConnLegR:
		return RegionLegR
	default:
		return RegionChest
	}
}

type OccupancyKind uint8

const (
	OccNone OccupancyKind = iota
	OccFree
	OccBlocked
	OccOccupied
)

// OccupancyCell is a cell of the module overlay: free body cell, blocked
// joint cell, or a cell taken by the placement at Index.
type OccupancyCell struct {
	Kind  OccupancyKind
	Index int
}

func Occupied(index int) OccupancyCell {
	return OccupancyCell{Kind: OccOccupied, Index: index}
}

type Parts struct {
	Head  *PartDefinition
	Chest *PartDefinition
	ArmL  *PartDefinition
	ArmR  *PartDefinition
	LegL  *PartDefinition
	LegR  *PartDefinition
}

// Placement is one module put on the body. The module cells are
// transformed and then shifted so the transformed pivot lands on Anchor.
type Placement struct {
	Module *ModuleDefinition
	Anchor Point
	Transform
}

// Layer returns the transformed module cells positioned on the body.
func (p Placement) Layer() Layer[BodyCell] {
	cells := ApplyTransform(p.Module.Cells, p.Transform)
	pivot := TransformPoint(p.Module.Pivot, p.Module.Cells.W, p.Module.Cells.H, p.Transform)
	return Layer[BodyCell]{Cells: cells, Offset: p.Anchor.Sub(pivot)}
}

// Cells lists the body coordinates the placement covers.
func (p Placement) Cells() []Point {
	layer := p.Layer()
	out := make([]Point, 0, p.Module.CellCount)
	layer.Cells.Each(func(pt Point, _ BodyCell) {
		out = append(out, pt.Add(layer.Offset))
	})
	return out
}

// Mech is an assembled body plus its placed modules. It is rebuilt from
// scratch on every change and never mutated afterwards.
type Mech struct {
	Parts      Parts
	Body       Grid[BodyCell]
	Owners     Grid[PartRegion]
	Occupancy  Grid[OccupancyCell]
	Connectors map[Connector]Point
	Placements []Placement

	placementCells [][]Point
}

type partLayer struct {
	part   *PartDefinition
	region PartRegion
	offset Point
}

// Assemble joins the parts at their connectors and places the modules in
// order. Any placement that does not fit fails with ErrInvalidPlacement.
func Assemble(parts Parts, placements []Placement) (*Mech, error) {
	chest := parts.Chest.Connections

	// the chest sits at the origin; each limb is shifted so its chest joint
	// lands next to the matching chest joint
	layers := []partLayer{
		{part: parts.Chest, region: RegionChest},
		{part: parts.Head, region: RegionHead, offset: chest[ConnHead].Sub(parts.Head.Connections[ConnChest]).Add(Point{Y: -1})},
		{part: parts.LegL, region: RegionLegL, offset: chest[ConnLegL].Sub(parts.LegL.Connections[ConnChest]).Add(Point{Y: 1})},
		{part: parts.LegR, region: RegionLegR, offset: chest[ConnLegR].Sub(parts.LegR.Connections[ConnChest]).Add(Point{Y: 1})},
		{part: parts.ArmL, region: RegionArmL, offset: chest[ConnArmL].Sub(parts.ArmL.Connections[ConnChest]).Add(Point{X: -1})},
		{part: parts.ArmR, region: RegionArmR, offset: chest[ConnArmR].Sub(parts.ArmR.Connections[ConnChest]).Add(Point{X: 1})},
	}

	bodyLayers := make([]Layer[BodyCell], len(layers))
	ownerLayers := make([]Layer[PartRegion], len(layers))
	for i, l := range layers {
		region := l.region
		bodyLayers[i] = Layer[BodyCell]{Cells: l.part.Cells, Offset: l.offset}
		ownerLayers[i] = Layer[PartRegion]{
			Cells: Map(l.part.Cells, func(c BodyCell) PartRegion {
				if c == CellEmpty {
					return RegionNone
				}
				return region
			}),
			Offset: l.offset,
		}
	}

	body, bounds := Flatten(bodyLayers...)
	owners, _ := Flatten(ownerLayers...)
	origin := Point{X: bounds.X, Y: bounds.Y}

	m := &Mech{
		Parts:      parts,
		Body:       body,
		Owners:     owners,
		Connectors: make(map[Connector]Point, len(LimbConnectors)),
	}
	for _, c := range LimbConnectors {
		m.Connectors[c] = chest[c].Sub(origin)
	}

	m.Occupancy = Map(body, baseOccupancy)
	for _, p := range placements {
		if !m.CanPlace(p) {
			return nil, cerr.ErrPlacementRejected(p.Module.Name, p.Anchor.X, p.Anchor.Y, p.Turns)
		}
		m.Placements = append(m.Placements, p)
		m.Occupancy = m.overlay()
	}

	m.placementCells = make([][]Point, len(m.Placements))
	for i, p := range m.Placements {
		m.placementCells[i] = p.Cells()
	}
	return m, nil
}

func baseOccupancy(c BodyCell) OccupancyCell {
	switch c {
	case CellFilled:
		return OccupancyCell{Kind: OccFree}
	case CellJoint:
		return OccupancyCell{Kind: OccBlocked}
	default:
		return OccupancyCell{}
	}
}

// overlay rebuilds the occupancy grid from the body and every placement,
// later placements winning.
func (m *Mech) overlay() Grid[OccupancyCell] {
	layers := make([]Layer[OccupancyCell], 0, len(m.Placements)+1)
	layers = append(layers, Layer[OccupancyCell]{Cells: Map(m.Body, baseOccupancy)})
	for i, p := range m.Placements {
		l := p.Layer()
		idx := i
		layers = append(layers, Layer[OccupancyCell]{
			Cells: Map(l.Cells, func(c BodyCell) OccupancyCell {
				if c == CellEmpty {
					return OccupancyCell{}
				}
				return Occupied(idx)
			}),
			Offset: l.Offset,
		})
	}
	grid, _ := Flatten(layers...)
	return grid
}

// CanPlace reports whether every cell of p lands on a free body cell.
func (m *Mech) CanPlace(p Placement) bool {
	if p.Module == nil {
		return false
	}
	for _, pt := range p.Cells() {
		if !m.Occupancy.InBounds(pt) {
			return false
		}
		if m.Occupancy.At(pt).Kind != OccFree {
			return false
		}
	}
	return true
}

// Place returns a new mech with p appended to the placements.
func (m *Mech) Place(p Placement) (*Mech, error) {
	if !m.CanPlace(p) {
		name := ""
		if p.Module != nil {
			name = p.Module.Name
		}
		return nil, cerr.ErrPlacementRejected(name, p.Anchor.X, p.Anchor.Y, p.Turns)
	}
	placements := append(m.PlacementsCopy(), p)
	return Assemble(m.Parts, placements)
}

// Remove returns a new mech without the placement at idx.
func (m *Mech) Remove(idx int) (*Mech, error) {
	if idx < 0 || idx >= len(m.Placements) {
		return nil, cerr.ErrPlacementIndex(idx, len(m.Placements))
	}
	placements := m.PlacementsCopy()
	placements = append(placements[:idx], placements[idx+1:]...)
	return Assemble(m.Parts, placements)
}

// Reset returns the bare body with no modules.
func (m *Mech) Reset() (*Mech, error) {
	return Assemble(m.Parts, nil)
}

func (m *Mech) PlacementsCopy() []Placement {
	out := make([]Placement, len(m.Placements))
	copy(out, m.Placements)
	return out
}

// PlacementCells lists the body cells covered by placement idx.
func (m *Mech) PlacementCells(idx int) []Point {
	return m.placementCells[idx]
}

// PlacementAt returns the index of the placement covering p.
func (m *Mech) PlacementAt(p Point) (int, bool) {
	cell := m.Occupancy.At(p)
	if cell.Kind != OccOccupied {
		return 0, false
	}
	return cell.Index, true
}

func (m *Mech) IsJoint(p Point) bool {
	return m.Body.At(p) == CellJoint
}

// HasCockpit reports whether any placed module carries the cockpit tag.
func (m *Mech) HasCockpit() bool {
	for _, p := range m.Placements {
		if p.Module.Has(CapCockpit) {
			return true
		}
	}
	return false
}

type Summary struct {
	Cost      int `json:"cost"`
	CostMax   int `json:"costMax"`
	BodyCells int `json:"bodyCells"`
	FreeCells int `json:"freeCells"`
}

func (m *Mech) Summary(costs Costs) Summary {
	s := Summary{CostMax: costs.Max, BodyCells: m.Body.Count()}
	m.Occupancy.Each(func(_ Point, c OccupancyCell) {
		if c.Kind == OccFree {
			s.FreeCells++
		}
	})
	s.Cost = s.BodyCells * costs.PerBodyCell
	for _, p := range m.Placements {
		s.Cost += p.Module.Cost
	}
	return s
}

// Validate is the finish-building gate: the mech must be affordable and
// carry a cockpit.
func (m *Mech) Validate(costs Costs) error {
	s := m.Summary(costs)
	if s.Cost > s.CostMax {
		return cerr.ErrMechOverBudget(s.Cost, s.CostMax)
	}
	if !m.HasCockpit() {
		return cerr.ErrMechNoCockpit()
	}
	return nil
}
