package growth

import (
	"github.com/KirkDiggler/doodle-garden/internal/entities/creature"
	"github.com/KirkDiggler/doodle-garden/internal/entities/drawing"
)

// ApplyGrowthInput defines the request for growing a creature
type ApplyGrowthInput struct {
	CreatureID string
	Session    *drawing.Session
}

// ApplyGrowthOutput defines the response for growing a creature
type ApplyGrowthOutput struct {
	Entry      *creature.Entry
	Previous   creature.Stats
	Score      float64
	Multiplier float64
}

// PreviewGrowthInput defines the request for previewing a growth
type PreviewGrowthInput struct {
	Element creature.Element
	Session *drawing.Session
}

// PreviewGrowthOutput defines the response for previewing a growth
type PreviewGrowthOutput struct {
	Score      float64
	Multiplier float64
}
