package battleship

// Anchor offsets tried in order when a ship cannot rotate in place.
// Cardinal neighbours come before diagonal ones.
var rotationOffsets = [8][2]int{
	{0, 1}, {1, 0}, {0, -1}, {-1, 0},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// GameBoard is the defence grid of one player. The grid stores
// ship codes; ships and their placements live in side tables
// keyed by the same code.
type GameBoard struct {
	grid          [BoardSize][BoardSize]ShipCode
	ships         map[ShipCode]*Ship
	order         []ShipCode
	positions     map[ShipCode]Placement
	missedAttacks []Coordinates
	verifiedEmpty map[Coordinates]struct{}
	verifiedOrder []Coordinates
}

func NewGameBoard() *GameBoard {
	return &GameBoard{
		ships:         make(map[ShipCode]*Ship, 5),
		order:         make([]ShipCode, 0, 5),
		positions:     make(map[ShipCode]Placement, 5),
		missedAttacks: make([]Coordinates, 0, BoardSize*BoardSize),
		verifiedEmpty: make(map[Coordinates]struct{}),
		verifiedOrder: make([]Coordinates, 0),
	}
}

// PlaceShip puts the ship on the board if the placement is valid.
// The board is left untouched when it is not.
func (b *GameBoard) PlaceShip(ship *Ship, x, y int, orientation Orientation) bool {
	if ship == nil {
		return false
	}
	if _, placed := b.positions[ship.code]; placed {
		return false
	}
	if !b.IsValidPlacement(ship, x, y, orientation, nil) {
		return false
	}

	for _, c := range Footprint(x, y, orientation, ship.length) {
		b.grid[c.X][c.Y] = ship.code
	}
	b.ships[ship.code] = ship
	b.order = append(b.order, ship.code)
	b.positions[ship.code] = Placement{X: x, Y: y, Orientation: orientation}
	return true
}

// IsValidPlacement checks bounds, overlap and the one cell buffer
// around other ships. Cells taken by exclude are treated as water so
// a ship can be probed against its own current position.
func (b *GameBoard) IsValidPlacement(ship *Ship, x, y int, orientation Orientation, exclude *Ship) bool {
	if ship == nil || ship.length <= 0 {
		return false
	}
	if orientation != OrientationHorizontal && orientation != OrientationVertical {
		return false
	}

	var excluded ShipCode
	if exclude != nil {
		excluded = exclude.code
	}
	occupied := func(cx, cy int) bool {
		code := b.grid[cx][cy]
		return code != PositionStateEmpty && code != excluded
	}

	for _, c := range Footprint(x, y, orientation, ship.length) {
		if !InBounds(c.X, c.Y) {
			return false
		}
		if occupied(c.X, c.Y) {
			return false
		}

		// spacing: no other ship in the 8-neighbourhood
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				ax, ay := c.X+dx, c.Y+dy
				if InBounds(ax, ay) && occupied(ax, ay) {
					return false
				}
			}
		}
	}
	return true
}

// ReceiveAttack resolves a shot. It does not guard against a cell
// being attacked twice; that bookkeeping belongs to the caller.
func (b *GameBoard) ReceiveAttack(x, y int) bool {
	if !InBounds(x, y) {
		return false
	}

	code := b.grid[x][y]
	if code != PositionStateEmpty {
		b.ships[code].Hit()
		return true
	}

	c := NewCoordinates(x, y)
	if !b.IsMissed(x, y) {
		b.missedAttacks = append(b.missedAttacks, c)
	}
	return false
}

// AreAllShipsSunk is vacuously true on a board with no ships.
func (b *GameBoard) AreAllShipsSunk() bool {
	for _, code := range b.order {
		if !b.ships[code].IsSunk() {
			return false
		}
	}
	return true
}

// IsUntouched is true while no shot has landed on the board: no ship
// carries a hit and nothing was missed or marked around a wreck.
func (b *GameBoard) IsUntouched() bool {
	if len(b.missedAttacks) > 0 || len(b.verifiedOrder) > 0 {
		return false
	}
	for _, code := range b.order {
		if b.ships[code].Hits() > 0 {
			return false
		}
	}
	return true
}

// RemoveShip clears the ship from the board and returns it,
// or nil if it was never placed.
func (b *GameBoard) RemoveShip(ship *Ship) *Ship {
	if ship == nil {
		return nil
	}
	pos, placed := b.positions[ship.code]
	if !placed {
		return nil
	}

	for _, c := range Footprint(pos.X, pos.Y, pos.Orientation, ship.length) {
		b.grid[c.X][c.Y] = PositionStateEmpty
	}
	delete(b.positions, ship.code)
	delete(b.ships, ship.code)
	for i, code := range b.order {
		if code == ship.code {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return ship
}

func (b *GameBoard) ShipPosition(ship *Ship) (Placement, bool) {
	if ship == nil {
		return Placement{}, false
	}
	pos, placed := b.positions[ship.code]
	return pos, placed
}

// MoveShip relocates a placed ship keeping its orientation.
func (b *GameBoard) MoveShip(ship *Ship, x, y int) bool {
	pos, placed := b.ShipPosition(ship)
	if !placed {
		return false
	}
	if !b.IsValidPlacement(ship, x, y, pos.Orientation, ship) {
		return false
	}

	b.RemoveShip(ship)
	return b.PlaceShip(ship, x, y, pos.Orientation)
}

// RotateShip toggles the orientation of a placed ship. The current
// anchor is tried first, then the neighbouring anchors in
// rotationOffsets order. The same ship is re-placed so its hits survive.
func (b *GameBoard) RotateShip(ship *Ship) bool {
	pos, placed := b.ShipPosition(ship)
	if !placed {
		return false
	}
	next := pos.Orientation.Toggle()

	candidates := make([]Coordinates, 0, len(rotationOffsets)+1)
	candidates = append(candidates, NewCoordinates(pos.X, pos.Y))
	for _, off := range rotationOffsets {
		candidates = append(candidates, NewCoordinates(pos.X+off[0], pos.Y+off[1]))
	}

	for _, c := range candidates {
		if b.IsValidPlacement(ship, c.X, c.Y, next, ship) {
			b.RemoveShip(ship)
			return b.PlaceShip(ship, c.X, c.Y, next)
		}
	}
	return false
}

// ShipAt returns the ship covering the cell, or nil for water.
func (b *GameBoard) ShipAt(x, y int) *Ship {
	if !InBounds(x, y) {
		return nil
	}
	code := b.grid[x][y]
	if code == PositionStateEmpty {
		return nil
	}
	return b.ships[code]
}

// CodeAt returns the raw grid value of a cell.
func (b *GameBoard) CodeAt(x, y int) ShipCode {
	if !InBounds(x, y) {
		return PositionStateEmpty
	}
	return b.grid[x][y]
}

// Ships returns the placed ships in placement order.
func (b *GameBoard) Ships() []*Ship {
	ships := make([]*Ship, 0, len(b.order))
	for _, code := range b.order {
		ships = append(ships, b.ships[code])
	}
	return ships
}

func (b *GameBoard) MissedAttacks() []Coordinates {
	return append([]Coordinates(nil), b.missedAttacks...)
}

func (b *GameBoard) IsMissed(x, y int) bool {
	for _, m := range b.missedAttacks {
		if m.X == x && m.Y == y {
			return true
		}
	}
	return false
}

// AdjacentCells returns the de-duplicated 8-neighbourhood of a ship
// footprint, excluding the footprint itself and clipped to the board.
func (b *GameBoard) AdjacentCells(x, y int, orientation Orientation, length int) []Coordinates {
	footprint := Footprint(x, y, orientation, length)
	inFootprint := make(map[Coordinates]struct{}, len(footprint))
	for _, c := range footprint {
		inFootprint[c] = struct{}{}
	}

	seen := make(map[Coordinates]struct{})
	adjacent := make([]Coordinates, 0, 2*length+6)
	for _, c := range footprint {
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				n := c.Add(dx, dy)
				if !InBounds(n.X, n.Y) {
					continue
				}
				if _, own := inFootprint[n]; own {
					continue
				}
				if _, dup := seen[n]; dup {
					continue
				}
				seen[n] = struct{}{}
				adjacent = append(adjacent, n)
			}
		}
	}
	return adjacent
}

// MarkVerifiedEmptyCells records the buffer zone around a ship
// footprint as verified empty. Misses are left out. The newly
// marked cells are returned.
func (b *GameBoard) MarkVerifiedEmptyCells(x, y int, orientation Orientation, length int) []Coordinates {
	marked := make([]Coordinates, 0)
	for _, c := range b.AdjacentCells(x, y, orientation, length) {
		if _, prs := b.verifiedEmpty[c]; prs {
			continue
		}
		if b.IsMissed(c.X, c.Y) {
			continue
		}
		b.verifiedEmpty[c] = struct{}{}
		b.verifiedOrder = append(b.verifiedOrder, c)
		marked = append(marked, c)
	}
	return marked
}

func (b *GameBoard) IsVerifiedEmpty(x, y int) bool {
	_, prs := b.verifiedEmpty[NewCoordinates(x, y)]
	return prs
}

func (b *GameBoard) VerifiedEmptyCells() []Coordinates {
	return append([]Coordinates(nil), b.verifiedOrder...)
}

// Clear removes every ship and resets attack bookkeeping.
func (b *GameBoard) Clear() {
	*b = *NewGameBoard()
}
