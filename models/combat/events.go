package combat

import (
	"fmt"

	"github.com/saeidalz13/mech-backend/models/mech"
)

// lookupName is the inverse of the String methods of the enums below.
func lookupName[T ~uint8](names []string, text []byte) (T, error) {
	for i, name := range names {
		if name == string(text) {
			return T(i), nil
		}
	}
	return 0, fmt.Errorf("unknown name %q", text)
}

type Side uint8

const (
	SidePlayer Side = iota
	SideEnemy
)

func (s Side) Opponent() Side {
	return 1 - s
}

var sideNames = [...]string{
	SidePlayer: "player",
	SideEnemy:  "enemy",
}

func (s Side) String() string {
	if s == SidePlayer {
		return sideNames[SidePlayer]
	}
	return sideNames[SideEnemy]
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(text []byte) (err error) {
	*s, err = lookupName[Side](sideNames[:], text)
	return err
}

type Status uint8

const (
	StatusOngoing Status = iota
	StatusPlayerWon
	StatusPlayerLost
)

var boutStatusNames = [...]string{
	StatusOngoing:    "ongoing",
	StatusPlayerWon:  "won",
	StatusPlayerLost: "lost",
}

func (s Status) String() string {
	if int(s) < len(boutStatusNames) {
		return boutStatusNames[s]
	}
	return "unknown"
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) (err error) {
	*s, err = lookupName[Status](boutStatusNames[:], text)
	return err
}

type EventKind uint8

const (
	EventOverheated EventKind = iota
	EventShielded
	EventHit
	EventMiss
	EventRevealed
	EventSevered
	EventTurnResolved
)

var eventNames = [...]string{
	EventOverheated:   "OVERHEATED",
	EventShielded:     "SHIELDED",
	EventHit:          "HIT",
	EventMiss:         "MISS",
	EventRevealed:     "REVEALED",
	EventSevered:      "SEVERED",
	EventTurnResolved: "TURN_RESOLVED",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "UNKNOWN"
}

func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *EventKind) UnmarshalText(text []byte) (err error) {
	*k, err = lookupName[EventKind](eventNames[:], text)
	return err
}

// Event is one already decided step of a turn, in resolution order.
// Side acted, Target is the side whose grid the event touched. Placement
// is the overheated module index, -1 when nothing was left to burn.
type Event struct {
	Kind      EventKind  `json:"kind"`
	Side      Side       `json:"side"`
	Target    Side       `json:"target"`
	Pos       mech.Point `json:"pos"`
	Placement int        `json:"placement"`
}

type TurnOutcome struct {
	Turn    int         `json:"turn"`
	Events  []Event     `json:"events"`
	Actions [2]Actions  `json:"actions"`
	Grids   [2]Snapshot `json:"grids"`
	Status  Status      `json:"status"`
}

// Count tallies events of one kind done by side.
func (o TurnOutcome) Count(side Side, kind EventKind) int {
	n := 0
	for _, e := range o.Events {
		if e.Side == side && e.Kind == kind {
			n++
		}
	}
	return n
}

// Log lists the event kinds done by side, e.g. [SHIELDED SHIELDED HIT].
func (o TurnOutcome) Log(side Side) []EventKind {
	var out []EventKind
	for _, e := range o.Events {
		if e.Side == side && e.Kind != EventTurnResolved && e.Kind != EventSevered {
			out = append(out, e.Kind)
		}
	}
	return out
}
