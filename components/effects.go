package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// FlashData whitens one fighter for a few frames after taking a hit.
type FlashData struct {
	PlayerIndex int
	Frames      int
}

var Flash = donburi.NewComponentType[FlashData]()

// ShakeData drives a decaying screen shake. Magnitude eases to zero; Phase
// flips the offset sign every frame.
type ShakeData struct {
	Magnitude *gween.Tween
	Phase     int
}

var Shake = donburi.NewComponentType[ShakeData]()

// FloatingTextData is a short-lived damage/block label rising off a fighter.
type FloatingTextData struct {
	Text  string
	X     float64
	BaseY float64
	Rise  *gween.Tween
	Done  bool
}

var FloatingText = donburi.NewComponentType[FloatingTextData]()
