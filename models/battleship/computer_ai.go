package battleship

import (
	"math/rand"
	"time"
)

const (
	delayMin         = 500 * time.Millisecond
	delaySpreadSmart = 750 * time.Millisecond
	delaySpreadRand  = 1500 * time.Millisecond

	// Random draws before falling back to a full board scan.
	maxRandomTargetAttempts = BoardSize * BoardSize
)

// Probe order: Right, Up, Left, Down. Even indexes are horizontal.
var directionVectors = [4][2]int{
	{0, 1},
	{-1, 0},
	{0, -1},
	{1, 0},
}

// ComputerAI holds the hunt state of the computer opponent. With no
// target ship it searches randomly; after a hit it probes around the
// first hit until the ship sinks.
type ComputerAI struct {
	targetShip     *Ship
	initial        Coordinates
	current        Coordinates
	directionIndex int
	orientation    Orientation
}

func NewComputerAI() *ComputerAI {
	return &ComputerAI{}
}

func (ai *ComputerAI) TargetShip() *Ship {
	return ai.targetShip
}

func (ai *ComputerAI) InitialPosition() Coordinates {
	return ai.initial
}

func (ai *ComputerAI) CurrentPosition() Coordinates {
	return ai.current
}

func (ai *ComputerAI) DirectionIndex() int {
	return ai.directionIndex
}

func (ai *ComputerAI) Orientation() Orientation {
	return ai.orientation
}

// IsHunting reports whether a damaged ship is being finished off.
func (ai *ComputerAI) IsHunting() bool {
	return ai.targetShip != nil && !ai.targetShip.IsSunk()
}

// DelayTime paces the computer moves: 500-1250ms while hunting,
// 500-2000ms for random search.
func (ai *ComputerAI) DelayTime(smart bool, rng *rand.Rand) time.Duration {
	spread := delaySpreadRand
	if smart {
		spread = delaySpreadSmart
	}
	return delayMin + time.Duration(rng.Int63n(int64(spread)+1))
}

func (ai *ComputerAI) IsValidCell(x, y int) bool {
	return InBounds(x, y)
}

func (ai *ComputerAI) PrepareSmartAttack(x, y int, ship *Ship) {
	ai.targetShip = ship
	ai.initial = NewCoordinates(x, y)
	ai.current = NewCoordinates(x, y)
	ai.directionIndex = 0
	ai.orientation = OrientationNone
}

func (ai *ComputerAI) DirectionVector(index int) (dx, dy int) {
	v := directionVectors[((index%4)+4)%4]
	return v[0], v[1]
}

// UpdateSmartAttackOnHit follows the hit. The first follow-up hit
// fixes the axis of the ship.
func (ai *ComputerAI) UpdateSmartAttackOnHit(x, y int) {
	ai.current = NewCoordinates(x, y)
	if ai.orientation != OrientationNone {
		return
	}
	if ai.directionIndex%2 == 0 {
		ai.orientation = OrientationHorizontal
	} else {
		ai.orientation = OrientationVertical
	}
}

func (ai *ComputerAI) UpdateSmartAttackOnMiss() {
	ai.advance()
}

func (ai *ComputerAI) UpdateSmartAttackAfterInvalidMove() {
	ai.advance()
}

func (ai *ComputerAI) advance() {
	if ai.orientation != OrientationNone {
		ai.ResetSmartAttackToInitial()
		return
	}
	ai.directionIndex++
}

// ResetSmartAttackToInitial returns to the first hit and turns around
// along the fixed axis.
func (ai *ComputerAI) ResetSmartAttackToInitial() {
	ai.current = ai.initial
	if ai.orientation == OrientationHorizontal {
		ai.directionIndex = 2
	} else {
		ai.directionIndex = 3
	}
}

func (ai *ComputerAI) ResetSmartAttack() {
	ai.targetShip = nil
	ai.initial = Coordinates{}
	ai.current = Coordinates{}
	ai.directionIndex = 0
	ai.orientation = OrientationNone
}

func (ai *ComputerAI) Reset() {
	ai.ResetSmartAttack()
}

// NextSmartTarget returns the next cell to probe while hunting.
// isResolved reports cells that were already attacked or are known
// to be water. A resolved cell that is part of the target ship is
// walked over along the fixed axis; any other unusable cell counts as
// an invalid move. false means the hunt has nothing left to try.
func (ai *ComputerAI) NextSmartTarget(isResolved func(Coordinates) bool, isTargetHit func(Coordinates) bool) (Coordinates, bool) {
	if !ai.IsHunting() {
		return Coordinates{}, false
	}

	// two axis reversals plus four directions and every cell of the board
	// bounds the walk
	for steps := 0; steps < 2*BoardSize+8; steps++ {
		if ai.orientation == OrientationNone && ai.directionIndex > 3 {
			return Coordinates{}, false
		}

		dx, dy := ai.DirectionVector(ai.directionIndex)
		next := ai.current.Add(dx, dy)

		if !ai.IsValidCell(next.X, next.Y) {
			ai.UpdateSmartAttackAfterInvalidMove()
			continue
		}
		if !isResolved(next) {
			return next, true
		}
		if ai.orientation != OrientationNone && isTargetHit != nil && isTargetHit(next) {
			ai.current = next
			continue
		}
		ai.UpdateSmartAttackAfterInvalidMove()
	}
	return Coordinates{}, false
}

// RandomTarget samples candidate cells at random and falls back to a
// row-major scan when sampling stalls. false means no cell is left.
func (ai *ComputerAI) RandomTarget(rng *rand.Rand, isCandidate func(Coordinates) bool) (Coordinates, bool) {
	for attempts := 0; attempts < maxRandomTargetAttempts; attempts++ {
		c := NewCoordinates(rng.Intn(BoardSize), rng.Intn(BoardSize))
		if isCandidate(c) {
			return c, true
		}
	}

	for x := 0; x < BoardSize; x++ {
		for y := 0; y < BoardSize; y++ {
			c := NewCoordinates(x, y)
			if isCandidate(c) {
				return c, true
			}
		}
	}
	return Coordinates{}, false
}
