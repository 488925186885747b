package battleship

type ShipCode uint8

// Ship codes of the standard fleet. Each code is what
// the defence grid stores in the cells a ship covers.
const (
	ShipCodeCarrier ShipCode = iota + 1
	ShipCodeBattleship
	ShipCodeCruiser
	ShipCodeSubmarine
	ShipCodeDestroyer
)

var shipNames = map[ShipCode]string{
	ShipCodeCarrier:    "Carrier",
	ShipCodeBattleship: "Battleship",
	ShipCodeCruiser:    "Cruiser",
	ShipCodeSubmarine:  "Submarine",
	ShipCodeDestroyer:  "Destroyer",
}

type Ship struct {
	code   ShipCode
	length int
	hits   int
}

func NewShip(code ShipCode, length int) *Ship {
	return &Ship{
		code:   code,
		length: length,
		hits:   0,
	}
}

func (sh *Ship) Code() ShipCode {
	return sh.code
}

func (sh *Ship) Length() int {
	return sh.length
}

func (sh *Ship) Hits() int {
	return sh.hits
}

func (sh *Ship) Name() string {
	name, prs := shipNames[sh.code]
	if !prs {
		return "Ship"
	}
	return name
}

// Hit registers one hit. Hits never exceed the length of the ship.
func (sh *Ship) Hit() {
	if sh.hits < sh.length {
		sh.hits++
	}
}

func (sh *Ship) IsSunk() bool {
	return sh.hits >= sh.length
}
