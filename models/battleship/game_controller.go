package battleship

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	cerr "github.com/saeidalz13/battleship-cpu/internal/error"
)

const (
	msgStartPlayerTurn   = "The game started, your turn."
	msgStartComputerTurn = "The game started, computer's turn."
	msgComputerTurn      = "Computer's turn, please wait."
	msgPlayerTurn        = "Your turn."
	msgPlayerWon         = "You won!"
	msgPlayerLost        = "You lose!"
)

// AttackIntent is a click on the opponent board in presentation
// coordinates: rows and columns start at 1, 0 is the label row.
type AttackIntent struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// PendingMove is the one scheduled computer move. The host loop waits
// until Due and then calls Tick.
type PendingMove struct {
	Due   time.Time
	Smart bool
}

// AttackReport describes a resolved attack.
type AttackReport struct {
	Attacker Participant
	X        int
	Y        int
	Hit      bool
	Sunk     bool
	GameOver bool
}

type ControllerOption func(*GameController)

func WithPresenter(p Presenter) ControllerOption {
	return func(gc *GameController) {
		if p != nil {
			gc.presenter = p
		}
	}
}

func WithSoundPlayer(s SoundPlayer) ControllerOption {
	return func(gc *GameController) {
		if s != nil {
			gc.sounds = s
		}
	}
}

func WithGameRecorder(r GameRecorder) ControllerOption {
	return func(gc *GameController) {
		if r != nil {
			gc.recorder = r
		}
	}
}

func WithRand(rng *rand.Rand) ControllerOption {
	return func(gc *GameController) {
		if rng != nil {
			gc.rng = rng
		}
	}
}

func WithClock(now func() time.Time) ControllerOption {
	return func(gc *GameController) {
		if now != nil {
			gc.now = now
		}
	}
}

// WithMarkVerifiedEmpty makes the presenter show the water around
// ships the human has sunk.
func WithMarkVerifiedEmpty(enabled bool) ControllerOption {
	return func(gc *GameController) {
		gc.markVerifiedEmpty = enabled
	}
}

// GameController runs one session of human against computer. It is
// not safe for concurrent use; the owner drives it from one goroutine.
type GameController struct {
	player   *Player
	computer *Player

	state *GameState
	ai    *ComputerAI

	presenter Presenter
	sounds    SoundPlayer
	recorder  GameRecorder
	rng       *rand.Rand
	now       func() time.Time

	pending   *PendingMove
	listening bool
	attacked  map[Participant]map[Coordinates]struct{}

	startTime time.Time

	markVerifiedEmpty bool
}

func NewGameController(player, computer *Player, opts ...ControllerOption) *GameController {
	gc := &GameController{
		player:    player,
		computer:  computer,
		state:     NewGameState(),
		ai:        NewComputerAI(),
		presenter: noopPresenter{},
		sounds:    noopSoundPlayer{},
		recorder:  noopGameRecorder{},
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(gc)
	}
	gc.resetAttacked()
	return gc
}

func (gc *GameController) State() *GameState {
	return gc.state
}

func (gc *GameController) AI() *ComputerAI {
	return gc.ai
}

func (gc *GameController) Player() *Player {
	return gc.player
}

func (gc *GameController) Computer() *Player {
	return gc.computer
}

// IsListening reports whether player attacks are accepted.
func (gc *GameController) IsListening() bool {
	return gc.listening
}

func (gc *GameController) Pending() (PendingMove, bool) {
	if gc.pending == nil {
		return PendingMove{}, false
	}
	return *gc.pending, true
}

func (gc *GameController) boardOf(p Participant) *GameBoard {
	if p == ParticipantComputer {
		return gc.computer.Board()
	}
	return gc.player.Board()
}

func (gc *GameController) resetAttacked() {
	gc.attacked = map[Participant]map[Coordinates]struct{}{
		ParticipantPlayer:   make(map[Coordinates]struct{}),
		ParticipantComputer: make(map[Coordinates]struct{}),
	}
}

// IsAttacked reports whether the cell on board has already been fired at.
func (gc *GameController) IsAttacked(board Participant, c Coordinates) bool {
	cells, prs := gc.attacked[board]
	if !prs {
		return false
	}
	_, hit := cells[c]
	return hit
}

// ---------------------------------------------------------------- setup

// NewRound discards both boards and lays out fresh random fleets.
func (gc *GameController) NewRound() error {
	gc.Reset()

	for _, p := range []*Player{gc.player, gc.computer} {
		if err := PlaceFleetRandomly(p.Board(), StandardFleet(), gc.rng); err != nil {
			return err
		}
	}
	return nil
}

// RandomizeFleet re-rolls the human fleet layout.
func (gc *GameController) RandomizeFleet() error {
	if !gc.state.IsState(PhaseSetup) {
		return cerr.ErrGameNotInSetup(string(gc.state.State()))
	}

	if err := PlaceFleetRandomly(gc.player.Board(), StandardFleet(), gc.rng); err != nil {
		return err
	}
	gc.sounds.Play(SoundClick)
	return nil
}

// ShipLayout is a placed ship as shown to its owner.
type ShipLayout struct {
	Code      ShipCode  `json:"code"`
	Name      string    `json:"name"`
	Length    int       `json:"length"`
	Hits      int       `json:"hits"`
	Placement Placement `json:"placement"`
}

// FleetLayout lists the ships on the board of p in placement order.
func (gc *GameController) FleetLayout(p Participant) []ShipLayout {
	board := gc.boardOf(p)
	ships := board.Ships()
	layout := make([]ShipLayout, 0, len(ships))
	for _, ship := range ships {
		pos, _ := board.ShipPosition(ship)
		layout = append(layout, ShipLayout{
			Code:      ship.Code(),
			Name:      ship.Name(),
			Length:    ship.Length(),
			Hits:      ship.Hits(),
			Placement: pos,
		})
	}
	return layout
}

func (gc *GameController) playerShipByCode(code ShipCode) (*Ship, error) {
	for _, ship := range gc.player.Board().Ships() {
		if ship.Code() == code {
			return ship, nil
		}
	}
	return nil, cerr.ErrShipNotPlaced(uint8(code))
}

// MoveShip drags a human ship to a new anchor during setup.
func (gc *GameController) MoveShip(code ShipCode, x, y int) error {
	if !gc.state.IsState(PhaseSetup) {
		return cerr.ErrGameNotInSetup(string(gc.state.State()))
	}
	ship, err := gc.playerShipByCode(code)
	if err != nil {
		return err
	}
	if !gc.player.Board().MoveShip(ship, x, y) {
		return cerr.ErrInvalidShipPlacement(uint8(code), x, y)
	}
	return nil
}

// RotateShip flips a human ship during setup.
func (gc *GameController) RotateShip(code ShipCode) error {
	if !gc.state.IsState(PhaseSetup) {
		return cerr.ErrGameNotInSetup(string(gc.state.State()))
	}
	ship, err := gc.playerShipByCode(code)
	if err != nil {
		return err
	}
	if !gc.player.Board().RotateShip(ship) {
		return cerr.ErrShipRotationFailed(uint8(code))
	}
	return nil
}

// ---------------------------------------------------------------- turns

// Initialize starts the battle with a random first player.
func (gc *GameController) Initialize() error {
	if !gc.state.IsState(PhaseSetup) {
		return cerr.ErrGameNotInSetup(string(gc.state.State()))
	}
	// an empty board counts as all sunk, which would end the game at once
	if len(gc.player.Board().Ships()) == 0 || len(gc.computer.Board().Ships()) == 0 {
		return cerr.ErrEmptyFleet()
	}
	// boards survive Reset; a new game needs fresh ships from NewRound
	for _, p := range []*Player{gc.player, gc.computer} {
		if !p.Board().IsUntouched() {
			return cerr.ErrBoardAlreadyPlayed(string(p.Kind()))
		}
	}

	starting := ParticipantComputer
	if gc.rng.Float64() > 0.5 {
		starting = ParticipantPlayer
	}
	gc.state.SetCurrentPlayer(starting)
	if err := gc.state.SetState(PhasePlaying); err != nil {
		return err
	}
	gc.startTime = gc.now()
	gc.resetAttacked()

	gc.sounds.Play(SoundGameStarted)
	if starting == ParticipantPlayer {
		gc.presenter.Notify(msgStartPlayerTurn)
	} else {
		gc.presenter.Notify(msgStartComputerTurn)
	}

	gc.listening = true

	if starting == ParticipantComputer {
		gc.scheduleComputerAttack()
	}
	return nil
}

// HandlePlayerAttack resolves a human click on the computer board.
// A hit keeps the turn; a miss hands it to the computer.
func (gc *GameController) HandlePlayerAttack(intent AttackIntent) (AttackReport, error) {
	if !gc.listening {
		return AttackReport{}, cerr.ErrInputDetached()
	}
	if !gc.state.IsPlaying() {
		return AttackReport{}, cerr.ErrGameNotPlaying(string(gc.state.State()))
	}
	if gc.state.CurrentPlayer() != ParticipantPlayer {
		return AttackReport{}, cerr.ErrNotPlayerTurn()
	}

	x, y := intent.Row-1, intent.Col-1
	if !InBounds(x, y) {
		return AttackReport{}, cerr.ErrXorYOutOfGridBound(x, y)
	}
	target := NewCoordinates(x, y)
	if gc.IsAttacked(ParticipantComputer, target) {
		return AttackReport{}, cerr.ErrAttackPositionAlreadyFilled(x, y)
	}

	gc.attacked[ParticipantComputer][target] = struct{}{}
	hit := gc.player.Attack(gc.computer, x, y)
	report := AttackReport{Attacker: ParticipantPlayer, X: x, Y: y, Hit: hit}

	var struck *Ship
	if hit {
		struck = gc.computer.Board().ShipAt(x, y)
		report.Sunk = struck != nil && struck.IsSunk()
	}

	gc.presenter.FillCell(ParticipantComputer, x, y, hit)
	gc.sounds.Play(attackSound(hit, report.Sunk))

	if report.Sunk {
		gc.markVerifiedEmptyCellsForSunkShip(struck, ParticipantComputer)
	}

	if gc.computer.Board().AreAllShipsSunk() {
		gc.endGame(ParticipantPlayer)
		report.GameOver = true
		return report, nil
	}

	if !hit {
		gc.state.SetCurrentPlayer(ParticipantComputer)
		gc.presenter.Notify(msgComputerTurn)
		gc.scheduleComputerAttack()
	}
	return report, nil
}

// scheduleComputerAttack replaces any pending computer move.
func (gc *GameController) scheduleComputerAttack() {
	gc.pending = nil

	smart := gc.ai.TargetShip() != nil
	delay := gc.ai.DelayTime(smart, gc.rng)
	gc.pending = &PendingMove{Due: gc.now().Add(delay), Smart: smart}
}

func (gc *GameController) cancelPending() {
	gc.pending = nil
}

// NextDue returns when the pending computer move should run.
func (gc *GameController) NextDue() (time.Time, bool) {
	if gc.pending == nil {
		return time.Time{}, false
	}
	return gc.pending.Due, true
}

// Tick runs the pending computer move if it is due at now.
func (gc *GameController) Tick(now time.Time) bool {
	if gc.pending == nil || now.Before(gc.pending.Due) {
		return false
	}
	return gc.RunPendingMove()
}

// RunPendingMove runs the pending computer move regardless of its due
// time. Every path re-checks the turn gates, so a stale move is a no-op.
func (gc *GameController) RunPendingMove() bool {
	if gc.pending == nil {
		return false
	}
	move := *gc.pending
	gc.pending = nil

	if move.Smart && gc.ai.IsHunting() {
		gc.executeSmartComputerAttack()
	} else {
		gc.executeComputerAttack()
	}
	return true
}

func (gc *GameController) computerMayAttack() bool {
	return gc.state.IsPlaying() && gc.state.CurrentPlayer() == ParticipantComputer
}

func (gc *GameController) isResolvedOnPlayerBoard(c Coordinates) bool {
	return gc.IsAttacked(ParticipantPlayer, c) || gc.player.Board().IsVerifiedEmpty(c.X, c.Y)
}

func (gc *GameController) executeComputerAttack() {
	if !gc.computerMayAttack() {
		return
	}

	target, ok := gc.ai.RandomTarget(gc.rng, func(c Coordinates) bool {
		return !gc.isResolvedOnPlayerBoard(c)
	})
	if !ok {
		log.Warn("computer found no cell to attack", "attacked", len(gc.attacked[ParticipantPlayer]))
		gc.handTurnToPlayer()
		return
	}

	gc.resolveComputerAttack(target, false)
}

func (gc *GameController) executeSmartComputerAttack() {
	if !gc.computerMayAttack() {
		return
	}

	if !gc.ai.IsHunting() {
		gc.ai.ResetSmartAttack()
		gc.scheduleComputerAttack()
		return
	}

	target, ok := gc.ai.NextSmartTarget(gc.isResolvedOnPlayerBoard, func(c Coordinates) bool {
		return gc.IsAttacked(ParticipantPlayer, c) && gc.player.Board().ShipAt(c.X, c.Y) == gc.ai.TargetShip()
	})
	if !ok {
		log.Debug("hunt exhausted, back to random search", "initial", gc.ai.InitialPosition())
		gc.ai.ResetSmartAttack()
		gc.executeComputerAttack()
		return
	}

	gc.resolveComputerAttack(target, true)
}

func (gc *GameController) resolveComputerAttack(target Coordinates, smart bool) {
	x, y := target.X, target.Y
	gc.attacked[ParticipantPlayer][target] = struct{}{}
	hit := gc.computer.Attack(gc.player, x, y)

	var struck *Ship
	sunk := false
	if hit {
		struck = gc.player.Board().ShipAt(x, y)
		sunk = struck != nil && struck.IsSunk()
	}
	log.Debug("computer attack", "x", x, "y", y, "hit", hit, "sunk", sunk, "smart", smart)

	gc.presenter.FillCell(ParticipantPlayer, x, y, hit)
	gc.sounds.Play(attackSound(hit, sunk))

	// the human board is never marked visually
	if sunk {
		gc.markVerifiedEmptyCellsForSunkShip(struck, ParticipantPlayer)
	}

	if gc.player.Board().AreAllShipsSunk() {
		gc.endGame(ParticipantComputer)
		return
	}

	if !hit {
		if smart {
			gc.ai.UpdateSmartAttackOnMiss()
		}
		gc.handTurnToPlayer()
		return
	}

	switch {
	case sunk:
		gc.ai.ResetSmartAttack()
	case smart:
		gc.ai.UpdateSmartAttackOnHit(x, y)
	default:
		gc.ai.PrepareSmartAttack(x, y, struck)
	}
	gc.scheduleComputerAttack()
}

func (gc *GameController) handTurnToPlayer() {
	gc.state.SetCurrentPlayer(ParticipantPlayer)
	gc.presenter.Notify(msgPlayerTurn)
}

func (gc *GameController) markVerifiedEmptyCellsForSunkShip(ship *Ship, board Participant) {
	gameBoard := gc.boardOf(board)
	pos, placed := gameBoard.ShipPosition(ship)
	if !placed {
		return
	}

	marked := gameBoard.MarkVerifiedEmptyCells(pos.X, pos.Y, pos.Orientation, ship.Length())
	if board == ParticipantComputer && gc.markVerifiedEmpty && len(marked) > 0 {
		gc.presenter.MarkVerifiedEmpty(board, marked)
	}
}

func attackSound(hit, sunk bool) Sound {
	switch {
	case hit && sunk:
		return SoundKilled
	case hit:
		return SoundWounded
	default:
		return SoundMissed
	}
}

// ---------------------------------------------------------------- end

func (gc *GameController) endGame(winner Participant) {
	if err := gc.state.SetWinner(winner); err != nil {
		log.Error("failed to set winner", "winner", winner, "err", err)
		return
	}

	gc.cancelPending()
	gc.listening = false

	outcome := msgPlayerLost
	sound := SoundLose
	summary := GameSummary{Outcome: GameOutcomeLost}
	if winner == ParticipantPlayer {
		outcome = msgPlayerWon
		sound = SoundWin
		summary.Outcome = GameOutcomeWon
	}
	if !gc.startTime.IsZero() {
		summary.DurationSeconds = int(gc.now().Sub(gc.startTime) / time.Second)
	}

	log.Info("game over", "winner", winner, "duration", FormatDuration(summary.DurationSeconds))

	gc.sounds.Play(sound)
	gc.presenter.ShowGameOver(outcome, summary)
	gc.presenter.Notify(outcome)
	gc.recorder.RecordGame(summary)
}

// Reset cancels the pending move first and detaches input second, so
// nothing can land on a board that is no longer in play. The boards
// keep their ships; NewRound deals fresh ones.
func (gc *GameController) Reset() {
	gc.cancelPending()
	gc.listening = false

	gc.state.Reset()
	gc.ai.Reset()
	gc.startTime = time.Time{}
	gc.resetAttacked()
}

func (gc *GameController) Cleanup() {
	gc.Reset()
}
