package combat

import (
	"github.com/saeidalz13/mech-backend/models/mech"
)

// Power tells which body parts are fed by a live cockpit.
type Power map[mech.PartRegion]bool

// SeverParts works out which limbs are cut off from the chest and which
// parts still have power, then destroys every filled cell of an unpowered
// part. It returns the cells it destroyed.
//
// A limb is severed when every cell reachable from its chest connector
// through joints is destroyed. Joint-tagged modules count as joints.
func SeverParts(m *mech.Mech, g *BattleGrid) (Power, []mech.Point) {
	extended := m.ExtendedBody()
	severed := make(map[mech.PartRegion]bool, len(mech.LimbConnectors))
	for _, c := range mech.LimbConnectors {
		severed[mech.RegionOf(c)] = g.AllDestroyed(mech.Flood(extended, m.Connectors[c]))
	}

	power := make(Power, len(mech.LimbConnectors)+1)
	for i, p := range m.Placements {
		if p.Module.Has(mech.CapCockpit) && !ModuleDestroyed(m, g, i) {
			power[m.PlacementRegion(i)] = true
		}
	}

	// every limb hangs off the chest, so the chest goes first
	chest := power[mech.RegionChest]
	for _, c := range mech.LimbConnectors {
		limb := mech.RegionOf(c)
		chest = chest || (power[limb] && !severed[limb])
	}
	power[mech.RegionChest] = chest
	for _, c := range mech.LimbConnectors {
		limb := mech.RegionOf(c)
		power[limb] = power[limb] || (chest && !severed[limb])
	}
	delete(power, mech.RegionNone)

	var destroyed []mech.Point
	m.Owners.Each(func(p mech.Point, region mech.PartRegion) {
		if power[region] || m.Body.At(p) != mech.CellFilled {
			return
		}
		if g.Destroy(p) {
			destroyed = append(destroyed, p)
		}
	})
	return power, destroyed
}
