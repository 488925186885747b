package connection

// Client to server
const (
	CodeRandomizeFleet uint8 = iota
	CodeMoveShip
	CodeRotateShip
	CodeStartGame
	CodeAttack
	CodeCancelGame
	CodeSoundToggle
)

// Server to client. Starts at 100 so both directions never share a code.
const (
	CodeSessionID uint8 = iota + 100
	CodeFleet
	CodeFillCell
	CodeVerifiedEmpty
	CodeNotification
	CodeSound
	CodeGameOver
	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent

	// a valid signal the game refused, e.g. attacking out of turn
	CodeError
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}
