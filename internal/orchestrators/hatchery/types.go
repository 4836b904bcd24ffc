package hatchery

import (
	"github.com/KirkDiggler/doodle-garden/internal/entities/creature"
	"github.com/KirkDiggler/doodle-garden/internal/entities/drawing"
)

// ClassifyInput defines the request for classifying a drawing
type ClassifyInput struct {
	Session *drawing.Session
}

// ClassifyOutput defines the response for classifying a drawing
type ClassifyOutput struct {
	Result    creature.ClassificationResult
	BaseStats creature.Stats
	Geometry  drawing.Geometry
}

// HatchInput defines the request for turning a drawing into a creature
type HatchInput struct {
	Session     *drawing.Session
	DisplayName string
	// DrawingImage overrides the rendered snapshot when set
	DrawingImage []byte
}

// HatchOutput defines the response for hatching a creature
type HatchOutput struct {
	Entry  *creature.Entry
	Result creature.ClassificationResult
}
