package sqlc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sqlc-dev/pqtype"
)

type AnalyticsManager struct {
	queries Querier
}

func NewAnalyticsManager(queries Querier) *AnalyticsManager {
	return &AnalyticsManager{queries: queries}
}

func (a *AnalyticsManager) IncrementBoutsStarted(ctx context.Context, serverIpNet pqtype.Inet) error {
	return a.queries.IncrementBoutsStarted(ctx, serverIpNet)
}

// A server that never started a bout has no row yet and reports zero.
func (a *AnalyticsManager) GetBoutsStarted(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	count, err := a.queries.GetBoutsStarted(ctx, serverIpNet)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return count, err
}
