package sqlc

import (
	"context"

	"github.com/sqlc-dev/pqtype"
)

// AnalyticsManager keeps per server counters keyed by the server ip.
type AnalyticsManager struct {
	queries Querier
}

func NewAnalyticsManager(queries Querier) *AnalyticsManager {
	return &AnalyticsManager{queries: queries}
}

func (a *AnalyticsManager) IncrementGamesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	return a.queries.AnalyticsIncrementGamesCreatedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) IncrementGamesFinishedCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	return a.queries.AnalyticsIncrementGamesFinishedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) GetGamesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	return a.queries.AnalyticsGetGamesCreatedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) GetGamesFinishedCount(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	return a.queries.AnalyticsGetGamesFinishedCount(ctx, serverIpNet)
}
