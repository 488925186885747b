package connection

// ReqAttack uses the presentation grid of the client where row
// and column 0 hold the labels.
type ReqAttack struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type ReqMoveShip struct {
	ShipCode uint8 `json:"ship_code"`
	X        int   `json:"x"`
	Y        int   `json:"y"`
}

type ReqRotateShip struct {
	ShipCode uint8 `json:"ship_code"`
}

type ReqSoundToggle struct {
	Enabled bool `json:"enabled"`
}
