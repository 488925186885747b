package api

import (
	mb "github.com/saeidalz13/battleship-cpu/models/battleship"
	mc "github.com/saeidalz13/battleship-cpu/models/connection"
)

// Outbox collects what the controller renders during one event and
// hands it to the session loop, which writes it after the controller
// call returns. The controller never blocks on the network.
type Outbox struct {
	messages     []interface{}
	soundEnabled bool
}

func NewOutbox(soundEnabled bool) *Outbox {
	return &Outbox{
		messages:     make([]interface{}, 0, 8),
		soundEnabled: soundEnabled,
	}
}

var (
	_ mb.Presenter   = (*Outbox)(nil)
	_ mb.SoundPlayer = (*Outbox)(nil)
)

func (o *Outbox) SetSoundEnabled(enabled bool) {
	o.soundEnabled = enabled
}

func (o *Outbox) SoundEnabled() bool {
	return o.soundEnabled
}

func (o *Outbox) Push(msg interface{}) {
	o.messages = append(o.messages, msg)
}

// Drain returns the queued messages in order and empties the outbox.
func (o *Outbox) Drain() []interface{} {
	msgs := o.messages
	o.messages = make([]interface{}, 0, 8)
	return msgs
}

func (o *Outbox) FillCell(board mb.Participant, x, y int, hit bool) {
	msg := mc.NewMessage[mc.RespFillCell](mc.CodeFillCell)
	msg.AddPayload(mc.RespFillCell{Board: board, X: x, Y: y, Hit: hit})
	o.Push(msg)
}

func (o *Outbox) MarkVerifiedEmpty(board mb.Participant, cells []mb.Coordinates) {
	msg := mc.NewMessage[mc.RespVerifiedEmpty](mc.CodeVerifiedEmpty)
	msg.AddPayload(mc.RespVerifiedEmpty{Board: board, Cells: cells})
	o.Push(msg)
}

func (o *Outbox) Notify(message string) {
	msg := mc.NewMessage[mc.RespNotification](mc.CodeNotification)
	msg.AddPayload(mc.RespNotification{Message: message})
	o.Push(msg)
}

func (o *Outbox) ShowGameOver(outcome string, summary mb.GameSummary) {
	msg := mc.NewMessage[mc.RespGameOver](mc.CodeGameOver)
	msg.AddPayload(mc.RespGameOver{
		Outcome:         outcome,
		Result:          summary.Outcome,
		DurationSeconds: summary.DurationSeconds,
		Duration:        mb.FormatDuration(summary.DurationSeconds),
	})
	o.Push(msg)
}

func (o *Outbox) Play(sound mb.Sound) {
	if !o.soundEnabled {
		return
	}
	msg := mc.NewMessage[mc.RespSound](mc.CodeSound)
	msg.AddPayload(mc.RespSound{Name: sound})
	o.Push(msg)
}
