package combat_test

import (
	"testing"

	"github.com/saeidalz13/mech-backend/content"
	"github.com/saeidalz13/mech-backend/models/mech"
)

var (
	cockpitChest = mech.SavedModule{Name: "cockpit", X: 5, Y: 4}
	laserChest   = mech.SavedModule{Name: "laser", X: 5, Y: 3}
	heatsinkArmL = mech.SavedModule{Name: "heatsink", X: 0, Y: 4}
)

func testCatalog(t *testing.T) *mech.Catalog {
	t.Helper()
	catalog, err := content.LoadCatalog(mech.DefaultCosts(), "")
	if err != nil {
		t.Fatal(err)
	}
	return catalog
}

// basicMech builds the all-basic body:
//
//	....000....
//	....0=0....
//	....0=0....
//	00==000==00
//	00.00000.00
//	0..0=0=0..0
//	....=.=....
//	...00.00...
//	...0...0...
//	...0...0...
func basicMech(t *testing.T, catalog *mech.Catalog, modules ...mech.SavedModule) *mech.Mech {
	t.Helper()
	m, err := catalog.LoadMech(mech.SavedMech{Head: "basic", Chest: "basic", Arms: "basic", Legs: "basic", Modules: modules})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func pt(x, y int) mech.Point {
	return mech.NewPoint(x, y)
}
