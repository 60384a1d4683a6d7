package connection

import (
	"github.com/saeidalz13/mech-backend/models/combat"
	"github.com/saeidalz13/mech-backend/models/mech"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespCreateBout struct {
	BoutUuid      string           `json:"bout_uuid"`
	Seed          int64            `json:"seed"`
	PlayerSummary mech.Summary     `json:"player_summary"`
	Resources     combat.Resources `json:"resources"`
	PlayerGrid    combat.Snapshot  `json:"player_grid"`
	EnemyGrid     combat.Snapshot  `json:"enemy_grid"`
}

type RespTurnResolved struct {
	Outcome   combat.TurnOutcome `json:"outcome"`
	Resources combat.Resources   `json:"resources"`
	Summary   map[string]int     `json:"summary"`
}

type RespEndBout struct {
	BoutUuid string        `json:"bout_uuid"`
	Status   combat.Status `json:"status"`
	Turns    int           `json:"turns"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}

var summaryKinds = []combat.EventKind{
	combat.EventOverheated,
	combat.EventShielded,
	combat.EventHit,
	combat.EventRevealed,
	combat.EventMiss,
}

// NewRespTurnResolved counts the player's events of each kind next to the
// full outcome.
func NewRespTurnResolved(outcome combat.TurnOutcome, resources combat.Resources) RespTurnResolved {
	summary := make(map[string]int, len(summaryKinds))
	for _, kind := range summaryKinds {
		summary[kind.String()] = outcome.Count(combat.SidePlayer, kind)
	}
	return RespTurnResolved{Outcome: outcome, Resources: resources, Summary: summary}
}
