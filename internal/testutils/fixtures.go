package testutils

import (
	"time"

	"github.com/KirkDiggler/doodle-garden/internal/entities/creature"
	"github.com/KirkDiggler/doodle-garden/internal/entities/drawing"
)

// FixtureTime is the acquisition time used by fixtures
var FixtureTime = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

// CreateTestEntry creates a level one grass sprout with sensible defaults
func CreateTestEntry(id string) *creature.Entry {
	return &creature.Entry{
		ID:            id,
		Species:       creature.SpeciesSprout,
		Element:       creature.ElementGrass,
		DisplayName:   "Sprout Bud",
		Level:         1,
		MaxHealth:     50,
		Attack:        10,
		Defense:       12,
		CurrentHealth: 50,
		Color:         drawing.ColorGreen,
		DrawingImage:  []byte("\x89PNG\r\n\x1a\nfake-snapshot"),
		AcquiredAt:    FixtureTime,
		Confidence:    0.8,
	}
}

// CreateTestSession creates a session of straight horizontal strokes with
// the given lengths, stacked 10 units apart
func CreateTestSession(color drawing.Color, lengths ...float64) *drawing.Session {
	session := &drawing.Session{Color: color}
	for i, l := range lengths {
		y := float64(i * 10)
		session.Strokes = append(session.Strokes, drawing.Stroke{
			Points: []drawing.Point{{X: 0, Y: y}, {X: l, Y: y}},
		})
	}
	return session
}
