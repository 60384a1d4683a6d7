package mech

import (
	"strings"

	cerr "github.com/saeidalz13/mech-backend/internal/error"
)

type PartType uint8

const (
	PartHead PartType = iota
	PartChest
	PartArm
	PartLeg
)

var partTypeNames = [...]string{
	PartHead:  "head",
	PartChest: "chest",
	PartArm:   "arm",
	PartLeg:   "leg",
}

func (t PartType) String() string {
	if int(t) < len(partTypeNames) {
		return partTypeNames[t]
	}
	return "unknown"
}

func (t PartType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// KeyPrefix is the catalog namespace for the type, e.g. "arm ".
func (t PartType) KeyPrefix() string {
	return t.String() + " "
}

// Connector names a joint that links a limb to the chest.
type Connector uint8

const (
	ConnChest Connector = iota
	ConnHead
	ConnArmL
	ConnArmR
	ConnLegL
	ConnLegR
)

var connectorNames = [...]string{
	ConnChest: "chest",
	ConnHead:  "head",
	ConnArmL:  "armL",
	ConnArmR:  "armR",
	ConnLegL:  "legL",
	ConnLegR:  "legR",
}

func (c Connector) String() string {
	if int(c) < len(connectorNames) {
		return connectorNames[c]
	}
	return "unknown"
}

func (c Connector) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// LimbConnectors are the chest connectors in the order limbs are checked.
var LimbConnectors = []Connector{ConnHead, ConnArmL, ConnArmR, ConnLegL, ConnLegR}

type PartDefinition struct {
	Type        PartType            `json:"type"`
	Key         string              `json:"key"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Cost        int                 `json:"cost"`
	CellCount   int                 `json:"cellCount"`
	Mirrored    bool                `json:"mirrored"`
	Cells       Layout              `json:"-"`
	Connections map[Connector]Point `json:"connections"`
}

// jointScan is an ordered search for the first joint cell. The outer loop
// runs over columns when columnsOuter is set, otherwise over rows.
type jointScan struct {
	connector    Connector
	columnsOuter bool
	rows         func(w, h int) []int
	cols         func(w, h int) []int
}

func ascending(from, to int) []int {
	out := make([]int, 0, max(to-from, 0))
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}

func descending(from, to int) []int {
	out := make([]int, 0, max(from-to+1, 0))
	for i := from; i >= to; i-- {
		out = append(out, i)
	}
	return out
}

func allRows(_, h int) []int     { return ascending(0, h) }
func allRowsUp(_, h int) []int   { return descending(h-1, 0) }
func topHalfRows(_, h int) []int { return ascending(0, (h+1)/2) }
func allCols(w, _ int) []int     { return ascending(0, w) }
func allColsBack(w, _ int) []int { return descending(w-1, 0) }
func leftHalf(w, _ int) []int    { return ascending(0, (w+1)/2) }
func rightHalf(w, _ int) []int   { return descending(w-1, w/2) }

// midFirstCols starts at the horizontal midpoint and wraps around.
func midFirstCols(w, _ int) []int {
	out := make([]int, w)
	for x := range out {
		out[x] = (x + w/2) % w
	}
	return out
}

var chestScans = []jointScan{
	{connector: ConnArmL, columnsOuter: true, rows: allRows, cols: leftHalf},
	{connector: ConnArmR, columnsOuter: true, rows: allRows, cols: rightHalf},
	{connector: ConnLegL, rows: allRowsUp, cols: leftHalf},
	{connector: ConnLegR, rows: allRowsUp, cols: rightHalf},
	{connector: ConnHead, rows: topHalfRows, cols: midFirstCols},
}

var limbScans = map[PartType]jointScan{
	PartLeg:  {connector: ConnChest, rows: allRows, cols: allColsBack},
	PartArm:  {connector: ConnChest, columnsOuter: true, rows: allRows, cols: allColsBack},
	PartHead: {connector: ConnChest, rows: allRowsUp, cols: midFirstCols},
}

func (s jointScan) find(cells Layout) (Point, bool) {
	rows := s.rows(cells.W, cells.H)
	cols := s.cols(cells.W, cells.H)
	if s.columnsOuter {
		for _, x := range cols {
			for _, y := range rows {
				if cells.Cells[y][x] == CellJoint {
					return Point{X: x, Y: y}, true
				}
			}
		}
		return Point{}, false
	}
	for _, y := range rows {
		for _, x := range cols {
			if cells.Cells[y][x] == CellJoint {
				return Point{X: x, Y: y}, true
			}
		}
	}
	return Point{}, false
}

func scansFor(t PartType) []jointScan {
	if t == PartChest {
		return chestScans
	}
	return []jointScan{limbScans[t]}
}

// ParsePart parses a body part definition priced with the default costs.
func ParsePart(t PartType, key, source string, mirror bool) (*PartDefinition, error) {
	return DefaultCosts().ParsePart(t, key, source, mirror)
}

func (c Costs) ParsePart(t PartType, key, source string, mirror bool) (*PartDefinition, error) {
	def, err := splitDefinition(key, source)
	if err != nil {
		return nil, err
	}
	cells, err := ParseLayout(key, def.layout, mirror)
	if err != nil {
		return nil, err
	}

	part := &PartDefinition{
		Type:        t,
		Key:         key,
		Name:        strings.TrimPrefix(key, t.KeyPrefix()),
		Description: def.description,
		Mirrored:    mirror,
		Cells:       cells,
		CellCount:   cells.Count(),
		Connections: make(map[Connector]Point, len(LimbConnectors)),
	}

	for _, scan := range scansFor(t) {
		p, ok := scan.find(cells)
		if !ok {
			return nil, cerr.ErrConnectorNotFound(scan.connector.String(), key)
		}
		part.Connections[scan.connector] = p
	}

	cost, formula := parseCost(def.cost)
	if formula {
		cells.Each(func(_ Point, cell BodyCell) {
			if cell == CellJoint {
				cost += float64(c.PerJoint)
			} else {
				cost += float64(c.PerEmptyCell)
			}
		})
	}
	part.Cost = roundCost(cost)
	return part, nil
}
