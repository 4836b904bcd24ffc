// Package hatchery turns finished drawing sessions into roster creatures
package hatchery

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/doodle-garden/internal/classifier"
	"github.com/KirkDiggler/doodle-garden/internal/entities/creature"
	"github.com/KirkDiggler/doodle-garden/internal/errors"
	"github.com/KirkDiggler/doodle-garden/internal/orchestrators/roster"
)

// Service defines the interface for hatching operations
type Service interface {
	// Classify reports what a drawing would hatch into without changing
	// the roster
	// Returns errors.FailedPrecondition for an empty session
	Classify(ctx context.Context, input *ClassifyInput) (*ClassifyOutput, error)

	// Hatch classifies the drawing and adds the creature to the roster
	// Returns errors.FailedPrecondition for an empty session
	// Returns errors.InvalidArgument for a color outside the palette
	Hatch(ctx context.Context, input *HatchInput) (*HatchOutput, error)
}

// RosterAdder is the part of the roster the hatchery needs
type RosterAdder interface {
	Add(ctx context.Context, input *roster.AddInput) (*creature.Entry, error)
}

// Config holds the dependencies for the hatchery
type Config struct {
	Roster     RosterAdder
	Classifier *classifier.Classifier
	DiceRoller dice.Roller

	// SnapshotSize is the rendered drawing size in pixels; zero skips
	// rendering
	SnapshotSize int
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
	if c.Classifier == nil {
		vb.RequiredField("Classifier")
	}
	if c.SnapshotSize != 0 {
		errors.ValidateRange("SnapshotSize", c.SnapshotSize, 2, 1024, vb)
	}
	return vb.Build()
}

type orchestrator struct {
	roster       RosterAdder
	classifier   *classifier.Classifier
	roller       dice.Roller
	snapshotSize int
}

// NewOrchestrator creates a new hatchery
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		roster:       cfg.Roster,
		classifier:   cfg.Classifier,
		roller:       cfg.DiceRoller,
		snapshotSize: cfg.SnapshotSize,
	}
	if o.roller == nil {
		o.roller = dice.DefaultRoller
	}
	return o, nil
}

// Classify runs the classifier and looks up the starting stats
func (o *orchestrator) Classify(_ context.Context, input *ClassifyInput) (*ClassifyOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Session.IsEmpty() {
		return nil, errors.FailedPrecondition("drawing session has no strokes")
	}

	result := o.classifier.Classify(input.Session)
	return &ClassifyOutput{
		Result:    result,
		BaseStats: creature.BaseStats(result.Species, result.Element),
		Geometry:  input.Session.Geometry(),
	}, nil
}

// Hatch classifies, names and registers a new creature
func (o *orchestrator) Hatch(ctx context.Context, input *HatchInput) (*HatchOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	classified, err := o.Classify(ctx, &ClassifyInput{Session: input.Session})
	if err != nil {
		return nil, err
	}
	result := classified.Result

	name := input.DisplayName
	if name == "" {
		name = o.nickname(ctx, result.Species)
	}

	image := input.DrawingImage
	if image == nil && o.snapshotSize > 0 {
		image, err = input.Session.Snapshot(o.snapshotSize)
		if err != nil {
			return nil, errors.Wrap(err, "failed to render drawing")
		}
	}

	entry, err := o.roster.Add(ctx, &roster.AddInput{
		Result:       result,
		BaseStats:    classified.BaseStats,
		Color:        input.Session.Color,
		DisplayName:  name,
		DrawingImage: image,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to add creature")
	}

	slog.InfoContext(ctx, "hatched creature",
		"creature_id", entry.ID,
		"species", result.Species,
		"element", result.Element,
		"confidence", result.Confidence)

	return &HatchOutput{Entry: entry, Result: result}, nil
}

// nickname rolls an epithet for the species. A failed roll falls back to
// the bare species title.
func (o *orchestrator) nickname(ctx context.Context, species creature.Species) string {
	pool := creature.Epithets()
	roll, err := o.roller.Roll(len(pool))
	if err != nil || roll < 1 || roll > len(pool) {
		slog.WarnContext(ctx, "nickname roll failed, using species name",
			"species", species,
			"roll", roll,
			"error", err)
		return species.Title()
	}
	return fmt.Sprintf("%s %s", species.Title(), pool[roll-1])
}
