package sqlc

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	cerr "github.com/saeidalz13/mech-backend/internal/error"
	"github.com/saeidalz13/mech-backend/models/mech"
)

const (
	DefaultListLimit int32 = 20
	MaxListLimit     int32 = 100
)

// HangarManager stores saved mech configurations. Only the intent is
// stored; geometry is rebuilt from the catalog on load.
type HangarManager struct {
	queries Querier
}

func NewHangarManager(queries Querier) *HangarManager {
	return &HangarManager{queries: queries}
}

func (h *HangarManager) SaveMech(ctx context.Context, name string, saved mech.SavedMech) (Mech, error) {
	modules, err := json.Marshal(saved.Modules)
	if err != nil {
		return Mech{}, err
	}

	return h.queries.CreateMech(ctx, CreateMechParams{
		ID:      uuid.NewString(),
		Name:    name,
		Head:    saved.Head,
		Chest:   saved.Chest,
		Arms:    saved.Arms,
		Legs:    saved.Legs,
		Modules: pqtype.NullRawMessage{RawMessage: modules, Valid: true},
	})
}

func (h *HangarManager) GetMech(ctx context.Context, id string) (Mech, error) {
	row, err := h.queries.GetMech(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Mech{}, cerr.ErrMechNotExists(id)
	}
	return row, err
}

func (h *HangarManager) LoadMech(ctx context.Context, id string) (mech.SavedMech, error) {
	row, err := h.GetMech(ctx, id)
	if err != nil {
		return mech.SavedMech{}, err
	}
	return SavedMechOf(row)
}

func (h *HangarManager) ListMechs(ctx context.Context, limit, offset int32) ([]Mech, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	limit = min(limit, MaxListLimit)
	offset = max(offset, 0)
	return h.queries.ListMechs(ctx, ListMechsParams{Limit: limit, Offset: offset})
}

func (h *HangarManager) DeleteMech(ctx context.Context, id string) error {
	n, err := h.queries.DeleteMech(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return cerr.ErrMechNotExists(id)
	}
	return nil
}

func SavedMechOf(row Mech) (mech.SavedMech, error) {
	saved := mech.SavedMech{
		Head:    row.Head,
		Chest:   row.Chest,
		Arms:    row.Arms,
		Legs:    row.Legs,
		Modules: []mech.SavedModule{},
	}
	if row.Modules.Valid && len(row.Modules.RawMessage) > 0 {
		if err := json.Unmarshal(row.Modules.RawMessage, &saved.Modules); err != nil {
			return mech.SavedMech{}, err
		}
	}
	return saved, nil
}
