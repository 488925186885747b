package error

import (
	"errors"
	"fmt"
)

// Kinds callers can match with errors.Is.
var (
	ErrKindNotFound     = errors.New("not found")
	ErrKindInvalidInput = errors.New("invalid input")

	// GAME_OVER reached without naming who won
	ErrMissingWinner = errors.New("game over requires a winner")
)

const (
	ConstErrAttackFailed = "attack operation failed"
	ConstErrSetupFailed  = "fleet setup operation failed"
)

func ErrInvalidGameState(state string) error {
	return fmt.Errorf("invalid game state: %s", state)
}

func ErrGameOverWithoutWinner() error {
	return fmt.Errorf("cannot set state to game over directly, use SetWinner: %w", ErrMissingWinner)
}

func ErrInvalidParticipant(participant string) error {
	return fmt.Errorf("invalid participant: %s", participant)
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("session with this id was not found, id: %s", sessionId)
}

func ErrSessionIsNil(sessionId string) error {
	return fmt.Errorf("session with this id is nil, id: %s", sessionId)
}

func ErrGameNotExists(gameUuid string) error {
	return fmt.Errorf("game with this uuid does not exist, uuid: %s: %w", gameUuid, ErrKindNotFound)
}

func ErrXorYOutOfGridBound(x, y int) error {
	return fmt.Errorf("incoming x or y is out of game grid bound\tx: %d\ty: %d", x, y)
}

func ErrAttackPositionAlreadyFilled(x, y int) error {
	return fmt.Errorf("current position in grid already taken\tx: %d\ty: %d", x, y)
}

func ErrNotPlayerTurn() error {
	return fmt.Errorf("it is not the player's turn")
}

func ErrGameNotPlaying(state string) error {
	return fmt.Errorf("game is not in playing state, current state: %s", state)
}

func ErrGameNotInSetup(state string) error {
	return fmt.Errorf("fleet can only be changed during setup, current state: %s", state)
}

func ErrInputDetached() error {
	return fmt.Errorf("attack input is detached from the board")
}

func ErrShipNotPlaced(code uint8) error {
	return fmt.Errorf("ship is not placed on the board, code: %d", code)
}

func ErrInvalidShipPlacement(code uint8, x, y int) error {
	return fmt.Errorf("ship cannot be placed at this position, code: %d\tx: %d\ty: %d", code, x, y)
}

func ErrShipRotationFailed(code uint8) error {
	return fmt.Errorf("no valid position found to rotate ship, code: %d", code)
}

func ErrFleetPlacementFailed(attempts int) error {
	return fmt.Errorf("failed to place fleet after %d attempts", attempts)
}

func ErrBoardAlreadyPlayed(owner string) error {
	return fmt.Errorf("board of %s was already played on, deal a new round first", owner)
}

func ErrEmptyFleet() error {
	return fmt.Errorf("board has no ships; place the fleet before starting")
}

func ErrInvalidOutcome(outcome string) error {
	return fmt.Errorf("invalid game outcome: %s", outcome)
}

func ErrInvalidGameId(id string) error {
	return fmt.Errorf("invalid game id: %s: %w", id, ErrKindInvalidInput)
}

func ErrSignalAbsent() error {
	return fmt.Errorf("incoming req payload must contain 'code' field")
}
