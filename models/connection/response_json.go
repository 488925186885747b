package connection

import (
	mb "github.com/saeidalz13/battleship-cpu/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespFleet struct {
	Phase mb.Phase        `json:"phase"`
	Ships []mb.ShipLayout `json:"ships"`
}

type RespFillCell struct {
	Board mb.Participant `json:"board"`
	X     int            `json:"x"`
	Y     int            `json:"y"`
	Hit   bool           `json:"hit"`
}

type RespVerifiedEmpty struct {
	Board mb.Participant   `json:"board"`
	Cells []mb.Coordinates `json:"cells"`
}

type RespNotification struct {
	Message string `json:"message"`
}

type RespSound struct {
	Name mb.Sound `json:"name"`
}

type RespGameOver struct {
	Outcome         string         `json:"outcome"`
	Result          mb.GameOutcome `json:"result"`
	DurationSeconds int            `json:"duration_seconds"`
	Duration        string         `json:"duration"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
