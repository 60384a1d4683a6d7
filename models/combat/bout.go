package combat

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	cerr "github.com/saeidalz13/mech-backend/internal/error"
	"github.com/saeidalz13/mech-backend/models/mech"
)

type Phase uint8

const (
	PhaseCollectingPlayerActions Phase = iota
	PhaseResolvingOverheat
	PhaseResolvingAttacks
	PhaseResolvingScans
	PhaseSevering
	PhaseCheckingWinLoss
	PhaseCollectingEnemyActions
	PhaseTerminal
)

var phaseNames = [...]string{
	PhaseCollectingPlayerActions: "collecting player actions",
	PhaseResolvingOverheat:       "resolving overheat",
	PhaseResolvingAttacks:        "resolving attacks",
	PhaseResolvingScans:          "resolving scans",
	PhaseSevering:                "severing",
	PhaseCheckingWinLoss:         "checking win/loss",
	PhaseCollectingEnemyActions:  "collecting enemy actions",
	PhaseTerminal:                "terminal",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Bout runs the turns between a player mech and an AI controlled enemy.
// grids[s] holds the damage side s has taken.
type Bout struct {
	Uuid string

	mechs   [2]*mech.Mech
	grids   [2]*BattleGrid
	shields [2]int
	pending *Actions

	policy ActionPolicy
	costs  mech.Costs
	seed   int64
	rng    *rand.Rand

	turn   int
	phase  Phase
	status Status
	mu     sync.Mutex
}

type Option func(*Bout)

// WithSeed makes the enemy and overheat picks reproducible.
func WithSeed(seed int64) Option {
	return func(b *Bout) {
		b.seed = seed
	}
}

func WithPolicy(policy ActionPolicy) Option {
	return func(b *Bout) {
		b.policy = policy
	}
}

func WithCosts(costs mech.Costs) Option {
	return func(b *Bout) {
		b.costs = costs
	}
}

func WithUuid(boutUuid string) Option {
	return func(b *Bout) {
		b.Uuid = boutUuid
	}
}

// NewBout refuses to start unless both mechs pass the finish-building
// gate, reporting ErrOverBudget or ErrNoCockpit.
func NewBout(player, enemy *mech.Mech, opts ...Option) (*Bout, error) {
	b := &Bout{
		Uuid:   uuid.NewString(),
		mechs:  [2]*mech.Mech{player, enemy},
		costs:  mech.DefaultCosts(),
		seed:   time.Now().UnixNano(),
		policy: NewHeuristicPolicy(DefaultWeights()),
	}
	for _, opt := range opts {
		opt(b)
	}

	for _, m := range b.mechs {
		if err := m.Validate(b.costs); err != nil {
			return nil, err
		}
	}

	b.rng = rand.New(rand.NewSource(b.seed))
	b.grids = [2]*BattleGrid{NewBattleGrid(player), NewBattleGrid(enemy)}
	return b, nil
}

func (b *Bout) Seed() int64 { return b.seed }

func (b *Bout) Mech(side Side) *mech.Mech {
	return b.mechs[side]
}

// BattleGrid returns a copy of the damage side has taken.
func (b *Bout) BattleGrid(side Side) *BattleGrid {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.grids[side].Clone()
}

func (b *Bout) Resources(side Side) Resources {
	b.mu.Lock()
	defer b.mu.Unlock()
	return ResourcesOf(b.mechs[side], b.grids[side])
}

func (b *Bout) Status() Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

func (b *Bout) Phase() Phase {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.phase
}

func (b *Bout) Turn() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.turn
}

// SubmitPlayerActions stores the player's actions for the next turn,
// replacing any earlier submission. Going over the heat capacity is
// allowed and is paid for with overheat damage.
func (b *Bout) SubmitPlayerActions(actions Actions) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.status != StatusOngoing {
		return cerr.ErrBoutFinished(b.Uuid)
	}
	if err := b.validateActions(SidePlayer, actions); err != nil {
		return err
	}

	a := actions.clone()
	b.pending = &a
	return nil
}

func (b *Bout) validateActions(side Side, actions Actions) error {
	r := ResourcesOf(b.mechs[side], b.grids[side])
	if len(actions.Attacks) > r.AttacksMax {
		return cerr.ErrTooManyActions("attacks", len(actions.Attacks), r.AttacksMax)
	}
	if len(actions.Scans) > r.ScansMax {
		return cerr.ErrTooManyActions("scans", len(actions.Scans), r.ScansMax)
	}
	if actions.Shield && r.ShieldsAmt == 0 {
		return cerr.ErrShieldUnavailable()
	}

	target := b.grids[side.Opponent()]
	for _, pts := range [][]mech.Point{actions.Attacks, actions.Scans} {
		for _, p := range pts {
			if target.Status(p) == StatusNone {
				return cerr.ErrXorYOutOfGridBound(p.X, p.Y)
			}
		}
	}
	return nil
}

// ResolveTurn plays the submitted player actions, then the enemy's, and
// returns every event in the order it happened. The enemy does not act
// once the bout is decided.
func (b *Bout) ResolveTurn() (TurnOutcome, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.status != StatusOngoing {
		return TurnOutcome{}, cerr.ErrBoutFinished(b.Uuid)
	}
	if b.pending == nil {
		return TurnOutcome{}, cerr.ErrActionsNotSubmitted(b.Uuid)
	}

	b.turn++
	out := TurnOutcome{Turn: b.turn}

	out.Actions[SidePlayer] = *b.pending
	b.pending = nil
	out.Events = b.resolveSide(SidePlayer, out.Actions[SidePlayer], out.Events)
	b.checkWinLoss()

	if b.status == StatusOngoing {
		b.phase = PhaseCollectingEnemyActions
		enemy := b.policy.Choose(PolicyState{
			Resources: ResourcesOf(b.mechs[SideEnemy], b.grids[SideEnemy]),
			Target:    b.grids[SidePlayer].Clone(),
		}, b.rng)
		out.Actions[SideEnemy] = enemy.clone()
		out.Events = b.resolveSide(SideEnemy, out.Actions[SideEnemy], out.Events)
		b.checkWinLoss()
	}

	out.Events = append(out.Events, Event{Kind: EventTurnResolved, Side: SidePlayer, Target: SidePlayer, Placement: -1})
	out.Grids = [2]Snapshot{b.grids[SidePlayer].Snapshot(), b.grids[SideEnemy].Snapshot()}
	out.Status = b.status

	if b.status == StatusOngoing {
		b.phase = PhaseCollectingPlayerActions
	} else {
		b.phase = PhaseTerminal
	}
	return out, nil
}

// Forfeit ends an ongoing bout as lost for the player.
func (b *Bout) Forfeit() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.status == StatusOngoing {
		b.status = StatusPlayerLost
		b.phase = PhaseTerminal
		b.pending = nil
	}
}

func (b *Bout) checkWinLoss() {
	b.phase = PhaseCheckingWinLoss
	switch {
	case !HasLiveCockpit(b.mechs[SidePlayer], b.grids[SidePlayer]):
		b.status = StatusPlayerLost
	case !HasLiveCockpit(b.mechs[SideEnemy], b.grids[SideEnemy]):
		b.status = StatusPlayerWon
	}
}

func (b *Bout) resolveSide(side Side, actions Actions, events []Event) []Event {
	opp := side.Opponent()
	own, foe := b.grids[side], b.grids[opp]
	attacker, defender := b.mechs[side], b.mechs[opp]

	r := ResourcesOf(attacker, own)
	b.shields[side] = 0
	if actions.Shield {
		b.shields[side] = r.ShieldsAmt
	}

	b.phase = PhaseResolvingOverheat
	overflow := actions.Heat(r) - r.HeatMax
	if overflow > 0 {
		victims := b.overheatTargets(side)
		for i := 0; i < overflow; i++ {
			e := Event{Kind: EventOverheated, Side: side, Target: side, Placement: -1}
			if i < len(victims) {
				idx := victims[i]
				e.Placement = idx
				e.Pos = attacker.Placements[idx].Anchor
				for _, p := range attacker.PlacementCells(idx) {
					own.Destroy(p)
				}
			}
			events = append(events, e)
		}
		b.phase = PhaseSevering
		events = severEvents(side, side, attacker, own, events)
	}

	if !HasLiveCockpit(attacker, own) {
		return events
	}

	b.phase = PhaseResolvingAttacks
	for _, p := range actions.Attacks {
		e := Event{Side: side, Target: opp, Pos: p, Placement: -1}
		switch {
		case b.shields[opp] > 0:
			b.shields[opp]--
			e.Kind = EventShielded
		case isModuleOrJoint(defender, p):
			foe.Destroy(p)
			e.Kind = EventHit
		default:
			foe.Destroy(p)
			e.Kind = EventMiss
		}
		events = append(events, e)
	}

	b.phase = PhaseResolvingScans
	for _, p := range actions.Scans {
		e := Event{Side: side, Target: opp, Pos: p, Placement: -1}
		if isModuleOrJoint(defender, p) {
			foe.Reveal(p)
			e.Kind = EventRevealed
		} else {
			foe.Destroy(p)
			e.Kind = EventMiss
		}
		events = append(events, e)
	}

	b.phase = PhaseSevering
	return severEvents(side, opp, defender, foe, events)
}

// overheatTargets orders the live modules that overheat burns first:
// heatsinks, then cockpits, each group shuffled.
func (b *Bout) overheatTargets(side Side) []int {
	m, g := b.mechs[side], b.grids[side]
	var heatsinks, cockpits []int
	for i, p := range m.Placements {
		if ModuleDestroyed(m, g, i) {
			continue
		}
		switch {
		case p.Module.Has(mech.CapHeatsink):
			heatsinks = append(heatsinks, i)
		case p.Module.Has(mech.CapCockpit):
			cockpits = append(cockpits, i)
		}
	}
	b.rng.Shuffle(len(heatsinks), func(i, j int) { heatsinks[i], heatsinks[j] = heatsinks[j], heatsinks[i] })
	b.rng.Shuffle(len(cockpits), func(i, j int) { cockpits[i], cockpits[j] = cockpits[j], cockpits[i] })
	return append(heatsinks, cockpits...)
}

func severEvents(side, target Side, m *mech.Mech, g *BattleGrid, events []Event) []Event {
	_, destroyed := SeverParts(m, g)
	for _, p := range destroyed {
		events = append(events, Event{Kind: EventSevered, Side: side, Target: target, Pos: p, Placement: -1})
	}
	return events
}

func isModuleOrJoint(m *mech.Mech, p mech.Point) bool {
	if m.IsJoint(p) {
		return true
	}
	_, ok := m.PlacementAt(p)
	return ok
}
