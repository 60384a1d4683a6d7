package connection

import (
	"github.com/saeidalz13/mech-backend/models/combat"
	"github.com/saeidalz13/mech-backend/models/mech"
)

// ReqCreateBout starts a bout against Enemy, or against the hangar mech
// EnemyMechId, or against a mirror of the player when both are empty.
type ReqCreateBout struct {
	Player      mech.SavedMech  `json:"player"`
	Enemy       *mech.SavedMech `json:"enemy,omitempty"`
	EnemyMechId string          `json:"enemy_mech_id,omitempty"`
	Seed        *int64          `json:"seed,omitempty"`
}

type ReqSubmitActions struct {
	Attacks []mech.Point `json:"attacks"`
	Scans   []mech.Point `json:"scans"`
	Shield  bool         `json:"shield"`
}

func (r ReqSubmitActions) Actions() combat.Actions {
	return combat.Actions{Attacks: r.Attacks, Scans: r.Scans, Shield: r.Shield}
}
