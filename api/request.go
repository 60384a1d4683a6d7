package api

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/saeidalz13/mech-backend/db/sqlc"
	cerr "github.com/saeidalz13/mech-backend/internal/error"
	"github.com/saeidalz13/mech-backend/models/combat"
	mc "github.com/saeidalz13/mech-backend/models/connection"
	"github.com/saeidalz13/mech-backend/models/mech"
)

// MechLoader resolves a hangar id into a saved configuration.
type MechLoader interface {
	LoadMech(ctx context.Context, id string) (mech.SavedMech, error)
}

var _ MechLoader = (*sqlc.HangarManager)(nil)

var errNoHangar = errors.New("hangar is not configured on this server")

// Every incoming valid request carries the raw message; each handler
// decodes the payload it expects.
type Request struct {
	payload []byte
}

func NewRequest(payload ...[]byte) Request {
	var r Request
	if len(payload) != 0 {
		r.payload = payload[0]
	}
	return r
}

func decodePayload[T any](payload []byte) (T, error) {
	var msg mc.Message[T]
	if err := json.Unmarshal(payload, &msg); err != nil {
		var zero T
		return zero, err
	}
	return msg.Payload, nil
}

// HandleCreateBout assembles both mechs and registers a new bout. The
// enemy defaults to a copy of the player's mech.
func (r Request) HandleCreateBout(
	ctx context.Context,
	catalog *mech.Catalog,
	boutManager combat.BoutManager,
	hangar MechLoader,
) (*combat.Bout, mc.Message[mc.RespCreateBout]) {
	resp := mc.NewMessage[mc.RespCreateBout](mc.CodeCreateBout)

	req, err := decodePayload[mc.ReqCreateBout](r.payload)
	if err != nil {
		resp.AddError(err.Error(), "invalid create bout payload")
		return nil, resp
	}

	player, err := catalog.LoadMech(req.Player)
	if err != nil {
		resp.AddDomainError(err)
		return nil, resp
	}

	enemySaved := req.Player
	switch {
	case req.Enemy != nil:
		enemySaved = *req.Enemy
	case req.EnemyMechId != "":
		if hangar == nil {
			resp.AddError(errNoHangar.Error(), "Internal")
			return nil, resp
		}
		enemySaved, err = hangar.LoadMech(ctx, req.EnemyMechId)
		if err != nil {
			resp.AddDomainError(err)
			return nil, resp
		}
	}
	enemy, err := catalog.LoadMech(enemySaved)
	if err != nil {
		resp.AddDomainError(err)
		return nil, resp
	}

	var opts []combat.Option
	if req.Seed != nil {
		opts = append(opts, combat.WithSeed(*req.Seed))
	}
	bout, err := boutManager.CreateBout(player, enemy, opts...)
	if err != nil {
		resp.AddDomainError(err)
		return nil, resp
	}

	resp.AddPayload(mc.RespCreateBout{
		BoutUuid:      bout.Uuid,
		Seed:          bout.Seed(),
		PlayerSummary: player.Summary(catalog.Costs()),
		Resources:     bout.Resources(combat.SidePlayer),
		PlayerGrid:    bout.BattleGrid(combat.SidePlayer).Snapshot(),
		EnemyGrid:     bout.BattleGrid(combat.SideEnemy).Snapshot(),
	})
	log.Info().Str("bout", bout.Uuid).Int64("seed", bout.Seed()).Msg("bout created")
	return bout, resp
}

// HandleSubmitActions submits the player's actions and resolves the turn
// right away, the enemy answering in the same turn.
func (r Request) HandleSubmitActions(bout *combat.Bout) mc.Message[mc.RespTurnResolved] {
	resp := mc.NewMessage[mc.RespTurnResolved](mc.CodeTurnResolved)
	if bout == nil {
		resp.AddDomainError(cerr.ErrBoutNotExists(""))
		return resp
	}

	req, err := decodePayload[mc.ReqSubmitActions](r.payload)
	if err != nil {
		resp.AddError(err.Error(), "invalid submit actions payload")
		return resp
	}

	if err := bout.SubmitPlayerActions(req.Actions()); err != nil {
		resp.AddDomainError(err)
		return resp
	}
	outcome, err := bout.ResolveTurn()
	if err != nil {
		resp.AddDomainError(err)
		return resp
	}

	resp.AddPayload(mc.NewRespTurnResolved(outcome, bout.Resources(combat.SidePlayer)))
	log.Debug().
		Str("bout", bout.Uuid).
		Int("turn", outcome.Turn).
		Str("status", outcome.Status.String()).
		Int("events", len(outcome.Events)).
		Msg("turn resolved")
	return resp
}

func NewEndBoutMessage(bout *combat.Bout) mc.Message[mc.RespEndBout] {
	msg := mc.NewMessage[mc.RespEndBout](mc.CodeEndBout)
	msg.AddPayload(mc.RespEndBout{BoutUuid: bout.Uuid, Status: bout.Status(), Turns: bout.Turn()})
	return msg
}
