package api

import (
	"sync"

	mb "github.com/saeidalz13/battleship-cpu/models/battleship"
)

// GameManager indexes the live controllers by session id. A controller
// is only ever driven by its own session loop; the manager tracks it.
type GameManager struct {
	games map[string]*mb.GameController
	mu    sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games: make(map[string]*mb.GameController),
	}
}

func (gm *GameManager) AddGame(sessionId string, gc *mb.GameController) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	gm.games[sessionId] = gc
}

func (gm *GameManager) TerminateGame(sessionId string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	delete(gm.games, sessionId)
}

func (gm *GameManager) Count() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	return len(gm.games)
}
