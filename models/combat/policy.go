package combat

import (
	"math/rand"

	"github.com/saeidalz13/mech-backend/models/mech"
)

// PolicyState is what a side may look at when choosing its actions.
// Target is a copy of the opponent's battle grid.
type PolicyState struct {
	Resources Resources
	Target    *BattleGrid
}

type ActionPolicy interface {
	Choose(state PolicyState, rng *rand.Rand) Actions
}

// Weights are the probabilities used by HeuristicPolicy.
type Weights struct {
	// shield chance when shields are cheaper than the heat capacity
	ShieldWhenCool float64 `yaml:"shieldWhenCool" json:"shieldWhenCool"`
	// shield chance when shields alone would overheat
	ShieldWhenHot float64 `yaml:"shieldWhenHot" json:"shieldWhenHot"`
	// chance to leave an attack or scan slot unused
	SkipSlot float64 `yaml:"skipSlot" json:"skipSlot"`
	// chance to hold back an action that pushes heat over the limit
	SkipOverheat float64 `yaml:"skipOverheat" json:"skipOverheat"`
}

func DefaultWeights() Weights {
	return Weights{
		ShieldWhenCool: 1.0 / 2,
		ShieldWhenHot:  1.0 / 6,
		SkipSlot:       1.0 / 3,
		SkipOverheat:   1.0 / 6,
	}
}

// HeuristicPolicy is the default enemy. It plays random targets and is
// not meant to be strong.
type HeuristicPolicy struct {
	Weights Weights
}

var _ ActionPolicy = (*HeuristicPolicy)(nil)

func NewHeuristicPolicy(w Weights) *HeuristicPolicy {
	return &HeuristicPolicy{Weights: w}
}

func chance(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}

func (hp *HeuristicPolicy) Choose(state PolicyState, rng *rand.Rand) Actions {
	r := state.Resources
	var actions Actions

	shields := 0
	if r.ShieldsAmt < r.HeatMax && chance(rng, hp.Weights.ShieldWhenCool) {
		shields = r.ShieldsAmt
	} else if r.ShieldsAmt > r.HeatMax && r.HeatMax > 1 && chance(rng, hp.Weights.ShieldWhenHot) {
		shields = r.ShieldsAmt
	}
	actions.Shield = shields > 0

	targets := state.Target.Targets()
	rng.Shuffle(len(targets), func(i, j int) { targets[i], targets[j] = targets[j], targets[i] })
	pop := func() (mech.Point, bool) {
		if len(targets) == 0 {
			return mech.Point{}, false
		}
		t := targets[len(targets)-1]
		targets = targets[:len(targets)-1]
		return t, true
	}

	for i := 0; i < r.AttacksMax; i++ {
		if chance(rng, hp.Weights.SkipSlot) {
			continue
		}
		over := r.HeatMax-shields-len(actions.Attacks) < 0
		if over && r.HeatMax <= 1 {
			continue
		}
		if over && chance(rng, hp.Weights.SkipOverheat) {
			continue
		}
		t, ok := pop()
		if !ok {
			break
		}
		actions.Attacks = append(actions.Attacks, t)
	}

	for i := 0; i < r.ScansMax; i++ {
		if chance(rng, hp.Weights.SkipSlot) {
			continue
		}
		over := r.HeatMax-shields-len(actions.Attacks)-len(actions.Scans) < 0
		if over && r.HeatMax <= 1 {
			continue
		}
		if over && chance(rng, hp.Weights.SkipOverheat) {
			continue
		}
		t, ok := pop()
		if !ok {
			break
		}
		actions.Scans = append(actions.Scans, t)
	}
	return actions
}

// ScriptedPolicy replays fixed actions, one per turn, then idles.
type ScriptedPolicy struct {
	Turns []Actions
	next  int
}

var _ ActionPolicy = (*ScriptedPolicy)(nil)

func (sp *ScriptedPolicy) Choose(PolicyState, *rand.Rand) Actions {
	if sp.next >= len(sp.Turns) {
		return Actions{}
	}
	a := sp.Turns[sp.next]
	sp.next++
	return a
}
