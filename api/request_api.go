package api

import (
	"encoding/json"

	cerr "github.com/saeidalz13/battleship-cpu/internal/error"
	mb "github.com/saeidalz13/battleship-cpu/models/battleship"
	mc "github.com/saeidalz13/battleship-cpu/models/connection"
)

// RequestHandler turns one decoded client signal into a controller
// call. Successful game events reach the client through the outbox;
// the handlers only return what the client asked for directly.
type RequestHandler interface {
	HandleRandomizeFleet(gc *mb.GameController) mc.Message[mc.RespFleet]
	HandleMoveShip(gc *mb.GameController) mc.Message[mc.RespFleet]
	HandleRotateShip(gc *mb.GameController) mc.Message[mc.RespFleet]
	HandleStartGame(gc *mb.GameController) *mc.Message[mc.NoPayload]
	HandleAttack(gc *mb.GameController) *mc.Message[mc.NoPayload]
	HandleCancelGame(gc *mb.GameController) mc.Message[mc.RespFleet]
	HandleSoundToggle(outbox *Outbox) *mc.Message[mc.NoPayload]
}

// Request is one raw client frame: a Message whose payload type
// depends on its code.
type Request struct {
	payload []byte
}

var _ RequestHandler = Request{}

func NewRequest(payload []byte) Request {
	return Request{payload: payload}
}

func newErrorMessage(errorDetails, message string) *mc.Message[mc.NoPayload] {
	msg := mc.NewMessage[mc.NoPayload](mc.CodeError)
	msg.AddError(errorDetails, message)
	return &msg
}

func newFleetMessage(gc *mb.GameController) mc.Message[mc.RespFleet] {
	msg := mc.NewMessage[mc.RespFleet](mc.CodeFleet)
	msg.AddPayload(mc.RespFleet{
		Phase: gc.State().State(),
		Ships: gc.FleetLayout(mb.ParticipantPlayer),
	})
	return msg
}

func fleetWithError(gc *mb.GameController, err error) mc.Message[mc.RespFleet] {
	msg := newFleetMessage(gc)
	msg.AddError(err.Error(), cerr.ConstErrSetupFailed)
	return msg
}

func (r Request) HandleRandomizeFleet(gc *mb.GameController) mc.Message[mc.RespFleet] {
	if err := gc.RandomizeFleet(); err != nil {
		return fleetWithError(gc, err)
	}
	return newFleetMessage(gc)
}

func (r Request) HandleMoveShip(gc *mb.GameController) mc.Message[mc.RespFleet] {
	var msg mc.Message[mc.ReqMoveShip]
	if err := json.Unmarshal(r.payload, &msg); err != nil {
		return fleetWithError(gc, err)
	}

	req := msg.Payload
	if err := gc.MoveShip(mb.ShipCode(req.ShipCode), req.X, req.Y); err != nil {
		return fleetWithError(gc, err)
	}
	return newFleetMessage(gc)
}

func (r Request) HandleRotateShip(gc *mb.GameController) mc.Message[mc.RespFleet] {
	var msg mc.Message[mc.ReqRotateShip]
	if err := json.Unmarshal(r.payload, &msg); err != nil {
		return fleetWithError(gc, err)
	}

	if err := gc.RotateShip(mb.ShipCode(msg.Payload.ShipCode)); err != nil {
		return fleetWithError(gc, err)
	}
	return newFleetMessage(gc)
}

func (r Request) HandleStartGame(gc *mb.GameController) *mc.Message[mc.NoPayload] {
	if err := gc.Initialize(); err != nil {
		return newErrorMessage(err.Error(), cerr.ConstErrSetupFailed)
	}
	return nil
}

func (r Request) HandleAttack(gc *mb.GameController) *mc.Message[mc.NoPayload] {
	var msg mc.Message[mc.ReqAttack]
	if err := json.Unmarshal(r.payload, &msg); err != nil {
		return newErrorMessage(err.Error(), cerr.ConstErrAttackFailed)
	}

	req := msg.Payload
	if _, err := gc.HandlePlayerAttack(mb.AttackIntent{Row: req.Row, Col: req.Col}); err != nil {
		return newErrorMessage(err.Error(), cerr.ConstErrAttackFailed)
	}
	return nil
}

// HandleCancelGame abandons the current round and deals new fleets.
func (r Request) HandleCancelGame(gc *mb.GameController) mc.Message[mc.RespFleet] {
	if err := gc.NewRound(); err != nil {
		return fleetWithError(gc, err)
	}
	return newFleetMessage(gc)
}

func (r Request) HandleSoundToggle(outbox *Outbox) *mc.Message[mc.NoPayload] {
	var msg mc.Message[mc.ReqSoundToggle]
	if err := json.Unmarshal(r.payload, &msg); err != nil {
		return newErrorMessage(err.Error(), "")
	}
	outbox.SetSoundEnabled(msg.Payload.Enabled)
	return nil
}
