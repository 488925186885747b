package battleship

import (
	"math/rand"

	cerr "github.com/saeidalz13/battleship-cpu/internal/error"
)

// Lengths of the standard fleet, largest first.
var StandardShipLengths = [5]int{5, 4, 3, 3, 2}

const maxFleetPlacementTries = 10000

// StandardFleet creates a fresh set of unplaced ships.
func StandardFleet() []*Ship {
	codes := [5]ShipCode{
		ShipCodeCarrier,
		ShipCodeBattleship,
		ShipCodeCruiser,
		ShipCodeSubmarine,
		ShipCodeDestroyer,
	}

	fleet := make([]*Ship, 0, len(codes))
	for i, code := range codes {
		fleet = append(fleet, NewShip(code, StandardShipLengths[i]))
	}
	return fleet
}

// PlaceFleetRandomly clears the board and drops every ship at a
// random valid anchor. Gives up after maxFleetPlacementTries draws.
func PlaceFleetRandomly(board *GameBoard, fleet []*Ship, rng *rand.Rand) error {
	board.Clear()
	tries := 0

	for _, ship := range fleet {
		for {
			if tries >= maxFleetPlacementTries {
				board.Clear()
				return cerr.ErrFleetPlacementFailed(tries)
			}
			tries++

			orientation := OrientationHorizontal
			if rng.Intn(2) == 0 {
				orientation = OrientationVertical
			}
			x := rng.Intn(BoardSize)
			y := rng.Intn(BoardSize)

			if board.PlaceShip(ship, x, y, orientation) {
				break
			}
		}
	}
	return nil
}
