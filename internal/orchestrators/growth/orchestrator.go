// Package growth upgrades existing creatures from new drawing sessions
package growth

import (
	"context"
	"log/slog"
	"math"

	"github.com/KirkDiggler/doodle-garden/internal/entities/creature"
	"github.com/KirkDiggler/doodle-garden/internal/errors"
	"github.com/KirkDiggler/doodle-garden/internal/orchestrators/roster"
	"github.com/KirkDiggler/doodle-garden/internal/pkg/clock"
	"github.com/KirkDiggler/doodle-garden/internal/quality"
)

// Service defines the interface for growth operations
type Service interface {
	// ApplyGrowth scores the session and grows the creature by the resulting
	// multiplier. Either every stat updates and persists or nothing does.
	// Returns errors.FailedPrecondition for an empty session
	// Returns errors.NotFound for an unknown creature
	ApplyGrowth(ctx context.Context, input *ApplyGrowthInput) (*ApplyGrowthOutput, error)

	// PreviewGrowth reports the multiplier a session would earn without
	// touching the roster
	PreviewGrowth(ctx context.Context, input *PreviewGrowthInput) (*PreviewGrowthOutput, error)
}

// RosterUpdater is the part of the roster growth needs
type RosterUpdater interface {
	Update(ctx context.Context, id string, fn roster.MutateFunc) (*creature.Entry, error)
}

// Config holds the dependencies for the growth orchestrator
type Config struct {
	Roster RosterUpdater
	Scorer *quality.Scorer
	Clock  clock.Clock

	// ElementWeights scales the growth portion of the multiplier per
	// element. Missing elements weigh 1.
	ElementWeights map[creature.Element]float64
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Roster == nil {
		vb.RequiredField("Roster")
	}
	if c.Scorer == nil {
		vb.RequiredField("Scorer")
	}
	for element, w := range c.ElementWeights {
		if !element.IsValid() {
			vb.InvalidField("ElementWeights", "unknown element "+string(element))
			continue
		}
		errors.ValidateNonNegative("ElementWeights."+string(element), w, vb)
	}
	return vb.Build()
}

type orchestrator struct {
	roster  RosterUpdater
	scorer  *quality.Scorer
	clock   clock.Clock
	weights map[creature.Element]float64
}

// NewOrchestrator creates a new growth orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		roster:  cfg.Roster,
		scorer:  cfg.Scorer,
		clock:   cfg.Clock,
		weights: make(map[creature.Element]float64, len(cfg.ElementWeights)),
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	for element, w := range cfg.ElementWeights {
		o.weights[element] = w
	}

	return o, nil
}

// ApplyGrowth grows the creature from a scored drawing session
func (o *orchestrator) ApplyGrowth(ctx context.Context, input *ApplyGrowthInput) (*ApplyGrowthOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CreatureID == "" {
		return nil, errors.InvalidArgument("creature ID is required")
	}
	if input.Session.IsEmpty() {
		return nil, errors.FailedPrecondition("growth requires a drawing with at least one stroke").
			WithMeta("creature_id", input.CreatureID)
	}

	score, base := o.scorer.Rate(input.Session)

	var (
		previous   creature.Stats
		multiplier float64
	)
	entry, err := o.roster.Update(ctx, input.CreatureID, func(e *creature.Entry) error {
		previous = e.Stats()
		multiplier = o.weighted(e.Element, base)

		e.MaxHealth = grow(e.MaxHealth, multiplier)
		e.Attack = grow(e.Attack, multiplier)
		e.Defense = grow(e.Defense, multiplier)
		e.Heal()
		e.Level++
		e.GrowthCount++
		e.GrowthHistory = append(e.GrowthHistory, creature.GrowthRecord{
			At:         o.clock.Now().UTC(),
			Score:      score,
			Multiplier: multiplier,
			Level:      e.Level,
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to grow creature %s", input.CreatureID)
	}

	slog.InfoContext(ctx, "creature grew",
		"creature_id", entry.ID,
		"score", score,
		"multiplier", multiplier,
		"level", entry.Level,
		"max_health", entry.MaxHealth)

	return &ApplyGrowthOutput{
		Entry:      entry,
		Previous:   previous,
		Score:      score,
		Multiplier: multiplier,
	}, nil
}

// PreviewGrowth scores a session for an element without mutating anything
func (o *orchestrator) PreviewGrowth(_ context.Context, input *PreviewGrowthInput) (*PreviewGrowthOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Session.IsEmpty() {
		return nil, errors.FailedPrecondition("growth requires a drawing with at least one stroke")
	}

	score, base := o.scorer.Rate(input.Session)
	return &PreviewGrowthOutput{
		Score:      score,
		Multiplier: o.weighted(input.Element, base),
	}, nil
}

// weighted scales the part of the multiplier above 1 by the element weight
func (o *orchestrator) weighted(element creature.Element, multiplier float64) float64 {
	w, ok := o.weights[element]
	if !ok {
		return multiplier
	}
	return math.Max(1, 1+(multiplier-1)*w)
}

// grow multiplies a stat, rounding to nearest, never below 1 or the old value
func grow(stat int, multiplier float64) int {
	grown := int(math.Round(float64(stat) * multiplier))
	return max(grown, stat, 1)
}
