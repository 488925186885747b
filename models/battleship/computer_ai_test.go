package battleship

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputerAI_HorizontalFollowUp(t *testing.T) {
	// given
	ai := NewComputerAI()
	ship := NewShip(ShipCodeCruiser, 3)
	ai.PrepareSmartAttack(5, 5, ship)

	// when
	ai.UpdateSmartAttackOnHit(5, 6)

	// then
	assert.Equal(t, OrientationHorizontal, ai.Orientation())
	assert.Equal(t, Coordinates{X: 5, Y: 6}, ai.CurrentPosition())

	ai.UpdateSmartAttackOnMiss()
	assert.Equal(t, Coordinates{X: 5, Y: 5}, ai.CurrentPosition())
	assert.Equal(t, 2, ai.DirectionIndex())
}

func TestComputerAI_VerticalFollowUp(t *testing.T) {
	ai := NewComputerAI()
	ai.PrepareSmartAttack(5, 5, NewShip(ShipCodeCruiser, 3))

	ai.UpdateSmartAttackOnMiss()
	assert.Equal(t, 1, ai.DirectionIndex())
	assert.Equal(t, OrientationNone, ai.Orientation())

	ai.UpdateSmartAttackOnHit(4, 5)
	assert.Equal(t, OrientationVertical, ai.Orientation())

	ai.UpdateSmartAttackOnMiss()
	assert.Equal(t, Coordinates{X: 5, Y: 5}, ai.CurrentPosition())
	assert.Equal(t, 3, ai.DirectionIndex())
}

func TestComputerAI_DelayTime(t *testing.T) {
	ai := NewComputerAI()
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 500; i++ {
		smart := ai.DelayTime(true, rng)
		assert.GreaterOrEqual(t, smart, 500*time.Millisecond)
		assert.LessOrEqual(t, smart, 1250*time.Millisecond)

		random := ai.DelayTime(false, rng)
		assert.GreaterOrEqual(t, random, 500*time.Millisecond)
		assert.LessOrEqual(t, random, 2000*time.Millisecond)
	}
}

func TestComputerAI_NextSmartTarget(t *testing.T) {
	nothingResolved := func(Coordinates) bool { return false }

	t.Run("probes right first", func(t *testing.T) {
		ai := NewComputerAI()
		ai.PrepareSmartAttack(5, 5, NewShip(ShipCodeCruiser, 3))

		next, ok := ai.NextSmartTarget(nothingResolved, nothingResolved)

		require.True(t, ok)
		assert.Equal(t, Coordinates{X: 5, Y: 6}, next)
	})

	t.Run("skips directions leaving the board", func(t *testing.T) {
		ai := NewComputerAI()
		ai.PrepareSmartAttack(0, 9, NewShip(ShipCodeCruiser, 3))

		next, ok := ai.NextSmartTarget(nothingResolved, nothingResolved)

		require.True(t, ok)
		assert.Equal(t, Coordinates{X: 0, Y: 8}, next)
		assert.Equal(t, 2, ai.DirectionIndex())
	})

	t.Run("not hunting", func(t *testing.T) {
		_, ok := NewComputerAI().NextSmartTarget(nothingResolved, nothingResolved)
		assert.False(t, ok)
	})

	t.Run("every neighbour resolved", func(t *testing.T) {
		ai := NewComputerAI()
		ai.PrepareSmartAttack(5, 5, NewShip(ShipCodeCruiser, 3))
		allResolved := func(Coordinates) bool { return true }

		_, ok := ai.NextSmartTarget(allResolved, nothingResolved)
		assert.False(t, ok)
	})
}

// A hunt started on any cell of a ship sinks it in at most
// length+4 shots: three misses before the axis is known, one miss at
// the far end and the remaining cells of the ship.
func TestComputerAI_HuntConverges(t *testing.T) {
	placements := []Placement{
		{X: 4, Y: 3, Orientation: OrientationHorizontal},
		{X: 3, Y: 4, Orientation: OrientationVertical},
		{X: 0, Y: 0, Orientation: OrientationHorizontal},
		{X: 5, Y: 9, Orientation: OrientationVertical},
	}

	for length := 2; length <= 5; length++ {
		for _, p := range placements {
			for _, start := range Footprint(p.X, p.Y, p.Orientation, length) {
				// given
				board := NewGameBoard()
				ship := NewShip(ShipCode(length), length)
				require.True(t, board.PlaceShip(ship, p.X, p.Y, p.Orientation))

				resolved := map[Coordinates]bool{start: true}
				board.ReceiveAttack(start.X, start.Y)
				shots := 1

				ai := NewComputerAI()
				ai.PrepareSmartAttack(start.X, start.Y, ship)

				isResolved := func(c Coordinates) bool { return resolved[c] }
				isTargetHit := func(c Coordinates) bool { return resolved[c] && board.ShipAt(c.X, c.Y) == ship }

				// when
				for !ship.IsSunk() {
					next, ok := ai.NextSmartTarget(isResolved, isTargetHit)
					require.True(t, ok, "length %d start %+v", length, start)
					require.False(t, resolved[next], "cell %+v attacked twice", next)

					resolved[next] = true
					shots++
					if board.ReceiveAttack(next.X, next.Y) {
						ai.UpdateSmartAttackOnHit(next.X, next.Y)
					} else {
						ai.UpdateSmartAttackOnMiss()
					}
					require.LessOrEqual(t, shots, length+4)
				}

				// then
				assert.True(t, ship.IsSunk())
			}
		}
	}
}

func TestComputerAI_RandomTarget(t *testing.T) {
	ai := NewComputerAI()
	rng := rand.New(rand.NewSource(11))

	only := Coordinates{X: 7, Y: 3}
	target, ok := ai.RandomTarget(rng, func(c Coordinates) bool { return c == only })
	require.True(t, ok)
	assert.Equal(t, only, target)

	_, ok = ai.RandomTarget(rng, func(Coordinates) bool { return false })
	assert.False(t, ok)
}

func TestComputerAI_Reset(t *testing.T) {
	ai := NewComputerAI()
	ai.PrepareSmartAttack(2, 2, NewShip(ShipCodeDestroyer, 2))
	ai.UpdateSmartAttackOnHit(2, 3)

	ai.Reset()

	assert.Nil(t, ai.TargetShip())
	assert.False(t, ai.IsHunting())
	assert.Equal(t, OrientationNone, ai.Orientation())
	assert.Equal(t, 0, ai.DirectionIndex())
}
