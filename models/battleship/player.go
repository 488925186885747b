package battleship

// Participant identifies which side of the table a player sits on.
type Participant string

const (
	ParticipantNone     Participant = ""
	ParticipantPlayer   Participant = "player"
	ParticipantComputer Participant = "computer"
)

func (p Participant) IsValid() bool {
	return p == ParticipantPlayer || p == ParticipantComputer
}

// Opponent returns the other participant. None has no opponent.
func (p Participant) Opponent() Participant {
	switch p {
	case ParticipantPlayer:
		return ParticipantComputer
	case ParticipantComputer:
		return ParticipantPlayer
	default:
		return ParticipantNone
	}
}

type Player struct {
	kind  Participant
	board *GameBoard
}

func NewPlayer(kind Participant) *Player {
	return &Player{
		kind:  kind,
		board: NewGameBoard(),
	}
}

func (p *Player) Kind() Participant {
	return p.kind
}

func (p *Player) Board() *GameBoard {
	return p.board
}

// Attack fires at the opponent's board and reports a hit.
// A player never fires at its own board.
func (p *Player) Attack(opponent *Player, x, y int) bool {
	if opponent == nil || opponent == p {
		return false
	}
	return opponent.board.ReceiveAttack(x, y)
}
