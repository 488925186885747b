package battleship

import cerr "github.com/saeidalz13/battleship-cpu/internal/error"

type Phase string

const (
	PhaseSetup    Phase = "setup"
	PhasePlaying  Phase = "playing"
	PhaseGameOver Phase = "game_over"
)

func (p Phase) IsValid() bool {
	return p == PhaseSetup || p == PhasePlaying || p == PhaseGameOver
}

// GameState tracks the phase, whose turn it is and the winner.
// The winner is set exactly when the phase is GAME_OVER.
type GameState struct {
	phase         Phase
	currentPlayer Participant
	winner        Participant
}

func NewGameState() *GameState {
	return &GameState{phase: PhaseSetup}
}

// SetState rejects phases outside the enumerated set. GAME_OVER is
// only reachable through SetWinner; leaving it clears the winner.
func (gs *GameState) SetState(phase Phase) error {
	if !phase.IsValid() {
		return cerr.ErrInvalidGameState(string(phase))
	}
	if phase == PhaseGameOver && gs.winner == ParticipantNone {
		return cerr.ErrGameOverWithoutWinner()
	}
	if phase != PhaseGameOver {
		gs.winner = ParticipantNone
	}
	gs.phase = phase
	return nil
}

func (gs *GameState) State() Phase {
	return gs.phase
}

func (gs *GameState) IsState(phase Phase) bool {
	return gs.phase == phase
}

func (gs *GameState) IsPlaying() bool {
	return gs.phase == PhasePlaying
}

func (gs *GameState) SetCurrentPlayer(player Participant) {
	gs.currentPlayer = player
}

func (gs *GameState) CurrentPlayer() Participant {
	return gs.currentPlayer
}

// SetWinner also moves the game to GAME_OVER.
func (gs *GameState) SetWinner(winner Participant) error {
	if !winner.IsValid() {
		return cerr.ErrInvalidParticipant(string(winner))
	}
	gs.winner = winner
	gs.phase = PhaseGameOver
	return nil
}

func (gs *GameState) Winner() Participant {
	return gs.winner
}

func (gs *GameState) Reset() {
	gs.phase = PhaseSetup
	gs.currentPlayer = ParticipantNone
	gs.winner = ParticipantNone
}
