package sqlc

import "time"

const (
	QuerierCtxTimeout = time.Second * 10
)

type DbManager struct {
	Games     *GamesManager
	Analytics *AnalyticsManager
}

func NewDbManager(queries Querier) DbManager {
	return DbManager{
		Games:     NewGamesManager(queries),
		Analytics: NewAnalyticsManager(queries),
	}
}
