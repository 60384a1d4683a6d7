package combat_test

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	cerr "github.com/saeidalz13/mech-backend/internal/error"
	"github.com/saeidalz13/mech-backend/models/combat"
	"github.com/saeidalz13/mech-backend/models/mech"
)

func TestHeuristicPolicyStaysInBounds(t *testing.T) {
	catalog := testCatalog(t)
	target := combat.NewBattleGrid(basicMech(t, catalog, cockpitChest))
	target.Destroy(pt(5, 4))

	r := combat.Resources{AttacksMax: 3, ScansMax: 2, ShieldsAmt: 1, HeatMax: 4}
	policy := combat.NewHeuristicPolicy(combat.DefaultWeights())
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 200; i++ {
		a := policy.Choose(combat.PolicyState{Resources: r, Target: target.Clone()}, rng)
		if len(a.Attacks) > r.AttacksMax || len(a.Scans) > r.ScansMax {
			t.Fatalf("policy went over its slots: %+v", a)
		}

		seen := make(map[mech.Point]bool)
		for _, p := range append(append([]mech.Point{}, a.Attacks...), a.Scans...) {
			if seen[p] {
				t.Fatalf("target %v picked twice", p)
			}
			seen[p] = true
			if s := target.Status(p); s == combat.StatusNone || s == combat.StatusDestroyed {
				t.Fatalf("target %v is not a live body cell: %s", p, s)
			}
		}
	}
}

func TestHeuristicPolicyWeights(t *testing.T) {
	catalog := testCatalog(t)
	target := combat.NewBattleGrid(basicMech(t, catalog, cockpitChest))
	r := combat.Resources{AttacksMax: 2, ScansMax: 1, ShieldsAmt: 1, HeatMax: 5}

	always := combat.NewHeuristicPolicy(combat.Weights{ShieldWhenCool: 1})
	a := always.Choose(combat.PolicyState{Resources: r, Target: target}, rand.New(rand.NewSource(5)))
	if !a.Shield || len(a.Attacks) != 2 || len(a.Scans) != 1 {
		t.Fatalf("expected every slot used with the shield on, got %+v", a)
	}

	never := combat.NewHeuristicPolicy(combat.Weights{SkipSlot: 1})
	a = never.Choose(combat.PolicyState{Resources: r, Target: target}, rand.New(rand.NewSource(5)))
	if a.Shield || len(a.Attacks) != 0 || len(a.Scans) != 0 {
		t.Fatalf("expected an idle turn, got %+v", a)
	}
}

func TestScriptedPolicy(t *testing.T) {
	turns := []combat.Actions{
		{Attacks: []mech.Point{pt(1, 1)}},
		{Shield: true},
	}
	sp := &combat.ScriptedPolicy{Turns: turns}

	for i, want := range append(turns, combat.Actions{}, combat.Actions{}) {
		if got := sp.Choose(combat.PolicyState{}, nil); !reflect.DeepEqual(got, want) {
			t.Fatalf("turn %d expected: %+v\tgot: %+v", i, want, got)
		}
	}
}

func TestBoutManager(t *testing.T) {
	catalog := testCatalog(t)
	m := basicMech(t, catalog, cockpitChest)
	bm := combat.NewMechBoutManager(combat.WithSeed(11))

	b, err := bm.CreateBout(m, m, combat.WithUuid("bout-1"))
	if err != nil {
		t.Fatal(err)
	}
	if b.Uuid != "bout-1" || b.Seed() != 11 {
		t.Fatalf("options not applied, uuid: %s\tseed: %d", b.Uuid, b.Seed())
	}
	if bm.Count() != 1 {
		t.Fatalf("expected bouts: %d\tgot: %d", 1, bm.Count())
	}

	found, err := bm.GetBout("bout-1")
	if err != nil || found != b {
		t.Fatalf("expected to find the bout, err: %v", err)
	}

	if _, err := bm.CreateBout(basicMech(t, catalog), m); !errors.Is(err, cerr.ErrNoCockpit) {
		t.Fatalf("expected err: %v\tgot: %v", cerr.ErrNoCockpit, err)
	}
	if bm.Count() != 1 {
		t.Fatal("a rejected bout must not be stored")
	}

	bm.EndBout("bout-1")
	if _, err := bm.GetBout("bout-1"); !errors.Is(err, cerr.ErrBoutNotExist) {
		t.Fatalf("expected err: %v\tgot: %v", cerr.ErrBoutNotExist, err)
	}
}
