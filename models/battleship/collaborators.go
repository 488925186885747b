package battleship

// Sound is one of the fixed audio cues the controller emits.
type Sound string

const (
	SoundGameStarted Sound = "gameStarted"
	SoundWounded     Sound = "wounded"
	SoundKilled      Sound = "killed"
	SoundMissed      Sound = "missed"
	SoundWin         Sound = "win"
	SoundLose        Sound = "lose"
	SoundClick       Sound = "click"
)

type GameOutcome string

const (
	GameOutcomeWon  GameOutcome = "WON"
	GameOutcomeLost GameOutcome = "LOST"
)

func (o GameOutcome) IsValid() bool {
	return o == GameOutcomeWon || o == GameOutcomeLost
}

// GameSummary is what gets handed to persistence when a game ends.
// Outcome is from the human player's point of view.
type GameSummary struct {
	Outcome         GameOutcome `json:"outcome"`
	DurationSeconds int         `json:"duration_seconds"`
}

// Presenter renders the game. board names whose board the cell is on.
type Presenter interface {
	FillCell(board Participant, x, y int, hit bool)
	MarkVerifiedEmpty(board Participant, cells []Coordinates)
	Notify(message string)
	ShowGameOver(outcome string, summary GameSummary)
}

type SoundPlayer interface {
	Play(sound Sound)
}

// GameRecorder receives the summary of every finished game.
// Implementations must not block the caller.
type GameRecorder interface {
	RecordGame(summary GameSummary)
}

type noopPresenter struct{}

func (noopPresenter) FillCell(Participant, int, int, bool)        {}
func (noopPresenter) MarkVerifiedEmpty(Participant, []Coordinates) {}
func (noopPresenter) Notify(string)                                {}
func (noopPresenter) ShowGameOver(string, GameSummary)             {}

type noopSoundPlayer struct{}

func (noopSoundPlayer) Play(Sound) {}

type noopGameRecorder struct{}

func (noopGameRecorder) RecordGame(GameSummary) {}

var (
	_ Presenter    = noopPresenter{}
	_ SoundPlayer  = noopSoundPlayer{}
	_ GameRecorder = noopGameRecorder{}
)
