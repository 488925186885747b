package battleship

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameBoard_AttackSinksShip(t *testing.T) {
	// given
	board := NewGameBoard()
	ship := NewShip(ShipCodeCruiser, 3)
	require.True(t, board.PlaceShip(ship, 0, 0, OrientationHorizontal))

	// when
	for y := 0; y < 3; y++ {
		assert.True(t, board.ReceiveAttack(0, y))
	}

	// then
	assert.True(t, ship.IsSunk())
	assert.True(t, board.AreAllShipsSunk())
}

func TestGameBoard_MissIsRecordedOnce(t *testing.T) {
	board := NewGameBoard()
	require.True(t, board.PlaceShip(NewShip(ShipCodeCruiser, 3), 0, 0, OrientationHorizontal))

	assert.False(t, board.ReceiveAttack(1, 1))
	assert.False(t, board.ReceiveAttack(1, 1))

	assert.Equal(t, []Coordinates{{X: 1, Y: 1}}, board.MissedAttacks())
	assert.True(t, board.IsMissed(1, 1))
	assert.False(t, board.AreAllShipsSunk())
}

func TestGameBoard_AttackOutOfBounds(t *testing.T) {
	board := NewGameBoard()

	assert.False(t, board.ReceiveAttack(-1, 0))
	assert.False(t, board.ReceiveAttack(0, BoardSize))
	assert.Empty(t, board.MissedAttacks())
}

func TestGameBoard_EmptyBoardIsAllSunk(t *testing.T) {
	assert.True(t, NewGameBoard().AreAllShipsSunk())
}

func TestGameBoard_PlaceShip(t *testing.T) {
	testCases := []struct {
		Name        string
		Setup       func(b *GameBoard)
		Ship        *Ship
		X, Y        int
		Orientation Orientation
		Expected    bool
	}{
		{
			Name:        "fits in the corner",
			Ship:        NewShip(ShipCodeCarrier, 5),
			X:           0,
			Y:           0,
			Orientation: OrientationHorizontal,
			Expected:    true,
		},
		{
			Name:        "runs past the last column",
			Ship:        NewShip(ShipCodeCarrier, 5),
			X:           0,
			Y:           8,
			Orientation: OrientationHorizontal,
			Expected:    false,
		},
		{
			Name:        "runs past the last row",
			Ship:        NewShip(ShipCodeCarrier, 5),
			X:           8,
			Y:           0,
			Orientation: OrientationVertical,
			Expected:    false,
		},
		{
			Name:        "no orientation",
			Ship:        NewShip(ShipCodeDestroyer, 2),
			Orientation: OrientationNone,
			Expected:    false,
		},
		{
			Name: "overlaps another ship",
			Setup: func(b *GameBoard) {
				b.PlaceShip(NewShip(ShipCodeDestroyer, 2), 0, 0, OrientationHorizontal)
			},
			Ship:        NewShip(ShipCodeCruiser, 3),
			X:           0,
			Y:           1,
			Orientation: OrientationVertical,
			Expected:    false,
		},
		{
			Name: "touches another ship diagonally",
			Setup: func(b *GameBoard) {
				b.PlaceShip(NewShip(ShipCodeDestroyer, 2), 0, 0, OrientationHorizontal)
			},
			Ship:        NewShip(ShipCodeCruiser, 3),
			X:           1,
			Y:           2,
			Orientation: OrientationHorizontal,
			Expected:    false,
		},
		{
			Name: "keeps one cell of water",
			Setup: func(b *GameBoard) {
				b.PlaceShip(NewShip(ShipCodeDestroyer, 2), 0, 0, OrientationHorizontal)
			},
			Ship:        NewShip(ShipCodeCruiser, 3),
			X:           2,
			Y:           0,
			Orientation: OrientationHorizontal,
			Expected:    true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			// given
			board := NewGameBoard()
			if tc.Setup != nil {
				tc.Setup(board)
			}
			shipsBefore := len(board.Ships())

			// when
			placed := board.PlaceShip(tc.Ship, tc.X, tc.Y, tc.Orientation)

			// then
			assert.Equal(t, tc.Expected, placed)
			if !tc.Expected {
				assert.Len(t, board.Ships(), shipsBefore)
				_, ok := board.ShipPosition(tc.Ship)
				assert.False(t, ok)
			}
		})
	}
}

func TestGameBoard_PlaceShipTwice(t *testing.T) {
	board := NewGameBoard()
	ship := NewShip(ShipCodeDestroyer, 2)

	require.True(t, board.PlaceShip(ship, 0, 0, OrientationHorizontal))
	assert.False(t, board.PlaceShip(ship, 5, 5, OrientationHorizontal))
	assert.Equal(t, ShipCodeDestroyer, board.CodeAt(0, 1))
	assert.Equal(t, PositionStateEmpty, board.CodeAt(5, 5))
}

func TestGameBoard_RemoveShip(t *testing.T) {
	board := NewGameBoard()
	ship := NewShip(ShipCodeCruiser, 3)
	require.True(t, board.PlaceShip(ship, 4, 4, OrientationVertical))

	assert.Same(t, ship, board.RemoveShip(ship))
	for x := 4; x < 7; x++ {
		assert.Nil(t, board.ShipAt(x, 4))
	}
	assert.Empty(t, board.Ships())
	assert.Nil(t, board.RemoveShip(ship))
}

func TestGameBoard_RemoveThenPlaceRestoresGrid(t *testing.T) {
	// given
	board := NewGameBoard()
	carrier := NewShip(ShipCodeCarrier, 5)
	cruiser := NewShip(ShipCodeCruiser, 3)
	require.True(t, board.PlaceShip(carrier, 2, 1, OrientationHorizontal))
	require.True(t, board.PlaceShip(cruiser, 5, 7, OrientationVertical))

	snapshot := func() [BoardSize][BoardSize]ShipCode {
		var grid [BoardSize][BoardSize]ShipCode
		for x := 0; x < BoardSize; x++ {
			for y := 0; y < BoardSize; y++ {
				grid[x][y] = board.CodeAt(x, y)
			}
		}
		return grid
	}
	before := snapshot()
	shipsBefore := board.Ships()
	posBefore, ok := board.ShipPosition(cruiser)
	require.True(t, ok)

	// when
	require.Same(t, cruiser, board.RemoveShip(cruiser))
	require.True(t, board.PlaceShip(cruiser, posBefore.X, posBefore.Y, posBefore.Orientation))

	// then
	assert.Equal(t, before, snapshot())
	assert.Equal(t, shipsBefore, board.Ships())
	posAfter, ok := board.ShipPosition(cruiser)
	require.True(t, ok)
	assert.Equal(t, posBefore, posAfter)
}

// x is the row and y the column, so a horizontal ship runs along y.
// A carrier anchored on row 8 at column 0 fits; on column 8 it does not.
func TestGameBoard_HorizontalRunsAlongColumns(t *testing.T) {
	board := NewGameBoard()
	carrier := NewShip(ShipCodeCarrier, 5)

	assert.False(t, board.PlaceShip(carrier, 0, 8, OrientationHorizontal))
	require.True(t, board.PlaceShip(carrier, 8, 0, OrientationHorizontal))
	for y := 0; y < 5; y++ {
		assert.Same(t, carrier, board.ShipAt(8, y))
	}
	assert.Nil(t, board.ShipAt(9, 0))
	assert.Equal(t, []Coordinates{{X: 8, Y: 0}, {X: 8, Y: 1}, {X: 8, Y: 2}, {X: 8, Y: 3}, {X: 8, Y: 4}},
		Footprint(8, 0, OrientationHorizontal, 5))
}

func TestGameBoard_IsUntouched(t *testing.T) {
	board := NewGameBoard()
	ship := NewShip(ShipCodeDestroyer, 2)
	require.True(t, board.PlaceShip(ship, 0, 0, OrientationHorizontal))
	assert.True(t, board.IsUntouched())

	t.Run("hit", func(t *testing.T) {
		hitBoard := NewGameBoard()
		require.True(t, hitBoard.PlaceShip(NewShip(ShipCodeDestroyer, 2), 0, 0, OrientationHorizontal))
		require.True(t, hitBoard.ReceiveAttack(0, 1))
		assert.False(t, hitBoard.IsUntouched())
	})

	t.Run("miss", func(t *testing.T) {
		require.False(t, board.ReceiveAttack(6, 6))
		assert.False(t, board.IsUntouched())
	})

	t.Run("cleared", func(t *testing.T) {
		board.Clear()
		assert.True(t, board.IsUntouched())
	})
}

func TestGameBoard_MoveShip(t *testing.T) {
	// given
	board := NewGameBoard()
	ship := NewShip(ShipCodeCruiser, 3)
	other := NewShip(ShipCodeDestroyer, 2)
	require.True(t, board.PlaceShip(ship, 0, 0, OrientationHorizontal))
	require.True(t, board.PlaceShip(other, 9, 8, OrientationHorizontal))

	// one cell to the right overlaps its own footprint
	assert.True(t, board.MoveShip(ship, 0, 1))
	pos, ok := board.ShipPosition(ship)
	require.True(t, ok)
	assert.Equal(t, Placement{X: 0, Y: 1, Orientation: OrientationHorizontal}, pos)
	assert.Nil(t, board.ShipAt(0, 0))

	// next to the destroyer is refused and nothing moves
	assert.False(t, board.MoveShip(ship, 8, 5))
	pos, _ = board.ShipPosition(ship)
	assert.Equal(t, 1, pos.Y)
	assert.Same(t, ship, board.ShipAt(0, 3))
}

func TestGameBoard_RotateShip(t *testing.T) {
	t.Run("rotates in place", func(t *testing.T) {
		board := NewGameBoard()
		ship := NewShip(ShipCodeCruiser, 3)
		require.True(t, board.PlaceShip(ship, 0, 0, OrientationHorizontal))

		assert.True(t, board.RotateShip(ship))

		pos, _ := board.ShipPosition(ship)
		assert.Equal(t, Placement{X: 0, Y: 0, Orientation: OrientationVertical}, pos)
		assert.Same(t, ship, board.ShipAt(2, 0))
		assert.Nil(t, board.ShipAt(0, 2))
	})

	t.Run("shifts the anchor when the turn would leave the board", func(t *testing.T) {
		board := NewGameBoard()
		ship := NewShip(ShipCodeCruiser, 3)
		require.True(t, board.PlaceShip(ship, 8, 0, OrientationHorizontal))
		board.ReceiveAttack(8, 0)

		assert.True(t, board.RotateShip(ship))

		pos, _ := board.ShipPosition(ship)
		assert.Equal(t, Placement{X: 7, Y: 0, Orientation: OrientationVertical}, pos)
		assert.Equal(t, 1, ship.Hits())
	})

	t.Run("fails when no anchor fits", func(t *testing.T) {
		board := NewGameBoard()
		ship := NewShip(ShipCodeCruiser, 3)
		require.True(t, board.PlaceShip(ship, 9, 0, OrientationHorizontal))

		assert.False(t, board.RotateShip(ship))

		pos, _ := board.ShipPosition(ship)
		assert.Equal(t, Placement{X: 9, Y: 0, Orientation: OrientationHorizontal}, pos)
	})

	t.Run("unplaced ship", func(t *testing.T) {
		assert.False(t, NewGameBoard().RotateShip(NewShip(ShipCodeDestroyer, 2)))
	})
}

func TestGameBoard_AdjacentCells(t *testing.T) {
	board := NewGameBoard()

	assert.Len(t, board.AdjacentCells(5, 5, OrientationHorizontal, 3), 12)
	assert.Len(t, board.AdjacentCells(0, 0, OrientationHorizontal, 2), 4)
	assert.Len(t, board.AdjacentCells(9, 9, OrientationVertical, 1), 3)
}

func TestGameBoard_MarkVerifiedEmptyCells(t *testing.T) {
	// given
	board := NewGameBoard()
	require.True(t, board.PlaceShip(NewShip(ShipCodeDestroyer, 2), 0, 0, OrientationHorizontal))
	board.ReceiveAttack(1, 1)

	// when
	marked := board.MarkVerifiedEmptyCells(0, 0, OrientationHorizontal, 2)

	// then
	assert.ElementsMatch(t, []Coordinates{{X: 0, Y: 2}, {X: 1, Y: 0}, {X: 1, Y: 2}}, marked)
	assert.True(t, board.IsVerifiedEmpty(0, 2))
	assert.False(t, board.IsVerifiedEmpty(1, 1))
	assert.False(t, board.IsVerifiedEmpty(0, 0))

	// marking again adds nothing new
	assert.Empty(t, board.MarkVerifiedEmptyCells(0, 0, OrientationHorizontal, 2))
	assert.Len(t, board.VerifiedEmptyCells(), 3)
}

func TestGameBoard_Clear(t *testing.T) {
	board := NewGameBoard()
	require.True(t, board.PlaceShip(NewShip(ShipCodeDestroyer, 2), 0, 0, OrientationHorizontal))
	board.ReceiveAttack(5, 5)
	board.MarkVerifiedEmptyCells(0, 0, OrientationHorizontal, 2)

	board.Clear()

	assert.Empty(t, board.Ships())
	assert.Empty(t, board.MissedAttacks())
	assert.Empty(t, board.VerifiedEmptyCells())
	assert.Equal(t, PositionStateEmpty, board.CodeAt(0, 0))
}
