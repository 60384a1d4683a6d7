package combat_test

import (
	"testing"

	"github.com/saeidalz13/mech-backend/models/combat"
	"github.com/saeidalz13/mech-backend/models/mech"
)

func TestSeverParts(t *testing.T) {
	catalog := testCatalog(t)

	tests := []struct {
		name              string
		modules           []mech.SavedModule
		destroy           []mech.Point
		expectedUnpowered []mech.PartRegion
		expectedDestroyed int
	}{
		{
			name:    "intact mech is fully powered",
			modules: []mech.SavedModule{cockpitChest},
		},
		{
			name:              "arm joint path destroyed",
			modules:           []mech.SavedModule{cockpitChest},
			destroy:           []mech.Point{pt(3, 3), pt(2, 3)},
			expectedUnpowered: []mech.PartRegion{mech.RegionArmL},
			expectedDestroyed: 5,
		},
		{
			name:    "half the joint path is not enough",
			modules: []mech.SavedModule{cockpitChest},
			destroy: []mech.Point{pt(3, 3)},
		},
		{
			name:    "joint module keeps the arm attached",
			modules: []mech.SavedModule{cockpitChest, {Name: "joint brace", X: 5, Y: 3}},
			destroy: []mech.Point{pt(3, 3), pt(2, 3)},
		},
		{
			name:              "cockpit lost",
			modules:           []mech.SavedModule{cockpitChest},
			destroy:           []mech.Point{pt(4, 4), pt(5, 4)},
			expectedUnpowered: []mech.PartRegion{mech.RegionChest, mech.RegionHead, mech.RegionArmL, mech.RegionArmR, mech.RegionLegL, mech.RegionLegR},
			expectedDestroyed: 36 - 2,
		},
		{
			name:              "cockpit in a severed arm powers only that arm",
			modules:           []mech.SavedModule{{Name: "cockpit", X: 1, Y: 4}},
			destroy:           []mech.Point{pt(3, 3), pt(2, 3)},
			expectedUnpowered: []mech.PartRegion{mech.RegionChest, mech.RegionHead, mech.RegionArmR, mech.RegionLegL, mech.RegionLegR},
			expectedDestroyed: 36 - 5,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m := basicMech(t, catalog, test.modules...)
			g := combat.NewBattleGrid(m)
			for _, p := range test.destroy {
				g.Destroy(p)
			}

			power, destroyed := combat.SeverParts(m, g)
			if len(destroyed) != test.expectedDestroyed {
				t.Fatalf("expected destroyed: %d\tgot: %d", test.expectedDestroyed, len(destroyed))
			}

			unpowered := make(map[mech.PartRegion]bool, len(test.expectedUnpowered))
			for _, r := range test.expectedUnpowered {
				unpowered[r] = true
			}
			for _, r := range []mech.PartRegion{mech.RegionChest, mech.RegionHead, mech.RegionArmL, mech.RegionArmR, mech.RegionLegL, mech.RegionLegR} {
				if power[r] == unpowered[r] {
					t.Fatalf("region %s expected powered: %t\tgot: %t", r, !unpowered[r], power[r])
				}
			}

			for _, p := range destroyed {
				if g.Status(p) != combat.StatusDestroyed {
					t.Fatalf("cell %v reported destroyed but is %s", p, g.Status(p))
				}
			}

			// severing twice finds nothing new
			if _, again := combat.SeverParts(m, g); len(again) != 0 {
				t.Fatalf("expected no new destruction, got %d cells", len(again))
			}
		})
	}
}
