package combat

import (
	"github.com/saeidalz13/mech-backend/models/mech"
)

// Resources are a side's per-turn limits, derived from its live modules.
type Resources struct {
	AttacksMax int `json:"attacksMax"`
	ScansMax   int `json:"scansMax"`
	ShieldsAmt int `json:"shieldsAmt"`
	HeatMax    int `json:"heatMax"`
}

func ModuleDestroyed(m *mech.Mech, g *BattleGrid, idx int) bool {
	return g.AllDestroyed(m.PlacementCells(idx))
}

func ResourcesOf(m *mech.Mech, g *BattleGrid) Resources {
	var r Resources
	for i, p := range m.Placements {
		if ModuleDestroyed(m, g, i) {
			continue
		}
		for _, c := range p.Module.Capabilities() {
			switch c {
			case mech.CapCockpit:
				r.AttacksMax++
				r.HeatMax++
			case mech.CapHeatsink:
				r.HeatMax++
			case mech.CapAttack:
				r.AttacksMax++
			case mech.CapRadar:
				r.ScansMax++
			case mech.CapShield:
				r.ShieldsAmt++
			case mech.CapJoint, mech.CapArmour, mech.CapAwkward, mech.CapFlexible:
			}
		}
	}
	return r
}

// HasLiveCockpit is the sole survival condition of a mech.
func HasLiveCockpit(m *mech.Mech, g *BattleGrid) bool {
	for i, p := range m.Placements {
		if p.Module.Has(mech.CapCockpit) && !ModuleDestroyed(m, g, i) {
			return true
		}
	}
	return false
}

// Actions is one side's submission for a turn. Attacks resolve before
// scans, each in order.
type Actions struct {
	Attacks []mech.Point `json:"attacks"`
	Scans   []mech.Point `json:"scans"`
	Shield  bool         `json:"shield"`
}

// Heat is attacks + scans + the shield amount when the shield is on.
func (a Actions) Heat(r Resources) int {
	heat := len(a.Attacks) + len(a.Scans)
	if a.Shield {
		heat += r.ShieldsAmt
	}
	return heat
}

func (a Actions) clone() Actions {
	return Actions{
		Attacks: append([]mech.Point(nil), a.Attacks...),
		Scans:   append([]mech.Point(nil), a.Scans...),
		Shield:  a.Shield,
	}
}
