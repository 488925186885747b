package api

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/saeidalz13/battleship-cpu/db/sqlc"
	mb "github.com/saeidalz13/battleship-cpu/models/battleship"
	"github.com/sqlc-dev/pqtype"
)

// AsyncRecorder persists finished games off the session goroutine.
// Failures are logged and never reach the game.
type AsyncRecorder struct {
	dbManager *sqlc.DbManager
	inet      pqtype.Inet
	wg        sync.WaitGroup
}

func NewAsyncRecorder(dbManager *sqlc.DbManager, inet pqtype.Inet) *AsyncRecorder {
	return &AsyncRecorder{dbManager: dbManager, inet: inet}
}

var _ mb.GameRecorder = (*AsyncRecorder)(nil)

func (r *AsyncRecorder) RecordGame(summary mb.GameSummary) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
		defer cancel()

		game, err := r.dbManager.Games.RecordGame(ctx, summary)
		if err != nil {
			log.Error("failed to record game", "outcome", summary.Outcome, "err", err)
			return
		}
		log.Info("game recorded", "id", game.ID, "outcome", game.Outcome, "duration", game.DurationSeconds)

		if err := r.dbManager.Analytics.IncrementGamesFinishedCount(ctx, r.inet); err != nil {
			// for now not failing the record for it
			log.Warn("failed to increment finished games", "err", err)
		}
	}()
}

// Wait blocks until every pending record has been written or failed.
func (r *AsyncRecorder) Wait() {
	r.wg.Wait()
}
