package battleship

// BoardSize is the width and height of every game board.
const BoardSize int = 10

// Grid cells hold the code of the ship occupying them.
// Zero means the cell is water.
const PositionStateEmpty ShipCode = 0

type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewCoordinates(x, y int) Coordinates {
	return Coordinates{X: x, Y: y}
}

func (c Coordinates) Add(dx, dy int) Coordinates {
	return Coordinates{X: c.X + dx, Y: c.Y + dy}
}

// InBounds reports whether x (row) and y (column) are inside the board.
func InBounds(x, y int) bool {
	return x >= 0 && x < BoardSize && y >= 0 && y < BoardSize
}

type Orientation uint8

const (
	OrientationNone Orientation = iota
	OrientationHorizontal
	OrientationVertical
)

func (o Orientation) String() string {
	switch o {
	case OrientationHorizontal:
		return "horizontal"
	case OrientationVertical:
		return "vertical"
	default:
		return "none"
	}
}

// Toggle swaps horizontal and vertical. None stays none.
func (o Orientation) Toggle() Orientation {
	switch o {
	case OrientationHorizontal:
		return OrientationVertical
	case OrientationVertical:
		return OrientationHorizontal
	default:
		return OrientationNone
	}
}

func ParseOrientation(s string) Orientation {
	switch s {
	case "horizontal":
		return OrientationHorizontal
	case "vertical":
		return OrientationVertical
	default:
		return OrientationNone
	}
}

// Placement is the anchor and orientation of a placed ship.
type Placement struct {
	X           int         `json:"x"`
	Y           int         `json:"y"`
	Orientation Orientation `json:"orientation"`
}

// Footprint returns the cells a ship of the given length occupies.
// Cells may be out of bounds; callers validate.
func Footprint(x, y int, orientation Orientation, length int) []Coordinates {
	cells := make([]Coordinates, 0, length)
	for i := 0; i < length; i++ {
		switch orientation {
		case OrientationHorizontal:
			cells = append(cells, NewCoordinates(x, y+i))
		case OrientationVertical:
			cells = append(cells, NewCoordinates(x+i, y))
		}
	}
	return cells
}
