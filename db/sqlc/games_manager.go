package sqlc

import (
	"context"

	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battleship-cpu/internal/error"
	mb "github.com/saeidalz13/battleship-cpu/models/battleship"
)

const (
	DefaultGamesLimit int32 = 50
	MaxGamesLimit     int32 = 500
)

// GamesManager stores the history of finished games.
type GamesManager struct {
	queries Querier
}

func NewGamesManager(queries Querier) *GamesManager {
	return &GamesManager{queries: queries}
}

func (g *GamesManager) RecordGame(ctx context.Context, summary mb.GameSummary) (Game, error) {
	if !summary.Outcome.IsValid() {
		return Game{}, cerr.ErrInvalidOutcome(string(summary.Outcome))
	}
	if summary.DurationSeconds < 0 {
		summary.DurationSeconds = 0
	}

	return g.queries.CreateGame(ctx, CreateGameParams{
		ID:              uuid.New(),
		Outcome:         string(summary.Outcome),
		DurationSeconds: int32(summary.DurationSeconds),
	})
}

// ListGames returns the most recent games first. The limit is
// clamped to [1, MaxGamesLimit]; zero means DefaultGamesLimit.
func (g *GamesManager) ListGames(ctx context.Context, limit int32) ([]Game, error) {
	switch {
	case limit <= 0:
		limit = DefaultGamesLimit
	case limit > MaxGamesLimit:
		limit = MaxGamesLimit
	}
	return g.queries.ListGames(ctx, limit)
}

func (g *GamesManager) DeleteGame(ctx context.Context, gameId string) error {
	id, err := uuid.Parse(gameId)
	if err != nil {
		return cerr.ErrInvalidGameId(gameId)
	}

	deleted, err := g.queries.DeleteGame(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return cerr.ErrGameNotExists(gameId)
	}
	return nil
}
