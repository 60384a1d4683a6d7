package mech

import (
	"strconv"
	"strings"

	"github.com/zyedidia/generic/mapset"

	cerr "github.com/saeidalz13/mech-backend/internal/error"
)

type Capability uint8

const (
	CapCockpit Capability = iota
	CapHeatsink
	CapAttack
	CapRadar
	CapShield
	CapJoint
	CapArmour
	CapAwkward
	CapFlexible
	capCount
)

var capabilityNames = [...]string{
	CapCockpit:  "cockpit",
	CapHeatsink: "heatsink",
	CapAttack:   "attack",
	CapRadar:    "radar",
	CapShield:   "shield",
	CapJoint:    "joint",
	CapArmour:   "armour",
	CapAwkward:  "awkward",
	CapFlexible: "flexible",
}

func (c Capability) String() string {
	if c < capCount {
		return capabilityNames[c]
	}
	return "unknown"
}

func (c Capability) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ParseCapability reports false for tags the combat rules do not know.
func ParseCapability(tag string) (Capability, bool) {
	for i, name := range capabilityNames {
		if name == tag {
			return Capability(i), true
		}
	}
	return 0, false
}

type ModuleDefinition struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Cost        int    `json:"cost"`
	CellCount   int    `json:"cellCount"`
	Pivot       Point  `json:"pivot"`
	Cells       Layout `json:"-"`

	// Tags keeps the order the tags were written in, Caps the known ones.
	Tags []string               `json:"tags"`
	Caps mapset.Set[Capability] `json:"-"`
}

func (m *ModuleDefinition) Has(c Capability) bool {
	return m.Caps.Has(c)
}

// Capabilities lists the recognised tags in declaration order, repeats
// included.
func (m *ModuleDefinition) Capabilities() []Capability {
	caps := make([]Capability, 0, len(m.Tags))
	for _, tag := range m.Tags {
		if c, ok := ParseCapability(tag); ok {
			caps = append(caps, c)
		}
	}
	return caps
}

const moduleKeyPrefix = "module "

func ParseModule(key, source string) (*ModuleDefinition, error) {
	return DefaultCosts().ParseModule(key, source)
}

func (c Costs) ParseModule(key, source string) (*ModuleDefinition, error) {
	def, err := splitDefinition(key, source)
	if err != nil {
		return nil, err
	}
	cells, err := ParseLayout(key, def.layout, false)
	if err != nil {
		return nil, err
	}

	// modules are plain cells, joint behaviour comes from the joint tag
	var jointErr error
	cells.Each(func(_ Point, cell BodyCell) {
		if cell == CellJoint && jointErr == nil {
			jointErr = cerr.ErrUnknownCellType('=', key)
		}
	})
	if jointErr != nil {
		return nil, jointErr
	}

	module := &ModuleDefinition{
		Key:         key,
		Name:        strings.TrimPrefix(key, moduleKeyPrefix),
		Description: def.description,
		Cells:       cells,
		CellCount:   cells.Count(),
		Tags:        def.tags,
		Caps:        mapset.New[Capability](),
		Pivot:       Point{X: cells.W / 2, Y: cells.H / 2},
	}
	for _, tag := range module.Capabilities() {
		module.Caps.Put(tag)
	}

	if def.pivot != "" {
		pivot, err := parsePivot(def.pivot)
		if err != nil {
			return nil, cerr.ErrDefinitionPivot(key, def.pivot)
		}
		module.Pivot = pivot
	}

	cost, formula := parseCost(def.cost)
	if formula {
		cost += c.moduleCost(module)
	}
	module.Cost = roundCost(cost)
	return module, nil
}

func parsePivot(s string) (Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return Point{}, strconv.ErrSyntax
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return Point{}, err
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return Point{}, err
	}
	return Point{X: x, Y: y}, nil
}

func (c Costs) moduleCost(m *ModuleDefinition) float64 {
	caps := m.Capabilities()
	var cost float64

	for _, tag := range caps {
		switch tag {
		case CapAttack:
			cost += c.PerAttack
		case CapRadar:
			cost += c.PerRadar
		case CapShield:
			cost += c.PerShield
		case CapHeatsink:
			cost += c.PerHeatsink
		case CapCockpit, CapJoint, CapArmour, CapAwkward, CapFlexible:
		}
	}

	perCell := c.PerModuleCell
	for _, tag := range caps {
		switch tag {
		case CapCockpit:
			perCell += c.PerCockpitCell
		case CapArmour:
			perCell += c.PerArmourCell
		case CapJoint:
			perCell += c.PerJointExtendCell
		case CapAttack, CapRadar, CapShield, CapHeatsink, CapAwkward, CapFlexible:
		}
	}
	cost += perCell * float64(m.CellCount)

	for _, tag := range caps {
		switch tag {
		case CapAwkward:
			cost *= c.MultAwkward
		case CapFlexible:
			cost *= c.MultFlexible
		case CapCockpit, CapHeatsink, CapAttack, CapRadar, CapShield, CapJoint, CapArmour:
		}
	}
	return cost
}
