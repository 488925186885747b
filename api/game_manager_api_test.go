package api

import (
	"testing"

	mb "github.com/saeidalz13/battleship-cpu/models/battleship"
	"github.com/stretchr/testify/assert"
)

func TestGameManager_AddAndTerminate(t *testing.T) {
	gm := NewGameManager()
	gc := mb.NewGameController(mb.NewPlayer(mb.ParticipantPlayer), mb.NewPlayer(mb.ParticipantComputer))

	gm.AddGame("a", gc)
	gm.AddGame("b", gc)
	gm.AddGame("a", gc)
	assert.Equal(t, 2, gm.Count())

	gm.TerminateGame("a")
	gm.TerminateGame("missing")
	assert.Equal(t, 1, gm.Count())
}
