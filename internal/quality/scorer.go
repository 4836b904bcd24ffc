// Package quality turns drawing geometry into a stat growth multiplier
package quality

import (
	"math"

	"github.com/KirkDiggler/doodle-garden/internal/entities/drawing"
	"github.com/KirkDiggler/doodle-garden/internal/errors"
)

// Config weights the geometry features and bounds the multiplier curve.
// Length is weighted above raw point count so stalling the pointer does not
// farm growth.
type Config struct {
	StrokeWeight float64
	LengthWeight float64
	PointWeight  float64

	MinScore float64
	MaxScore float64

	FloorMultiplier   float64
	CeilingMultiplier float64
}

// DefaultConfig returns the default scoring curve
func DefaultConfig() *Config {
	return &Config{
		StrokeWeight:      2.0,
		LengthWeight:      0.5,
		PointWeight:       0.1,
		MinScore:          20,
		MaxScore:          200,
		FloorMultiplier:   1.3,
		CeilingMultiplier: 1.8,
	}
}

// Validate ensures the configuration is usable
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateNonNegative("StrokeWeight", c.StrokeWeight, vb)
	errors.ValidateNonNegative("LengthWeight", c.LengthWeight, vb)
	errors.ValidateNonNegative("PointWeight", c.PointWeight, vb)
	if c.MaxScore <= c.MinScore {
		vb.Field("MaxScore", "must be greater than MinScore")
	}
	if c.FloorMultiplier < 1 {
		vb.Field("FloorMultiplier", "must be at least 1")
	}
	if c.CeilingMultiplier < c.FloorMultiplier {
		vb.Field("CeilingMultiplier", "must not be below FloorMultiplier")
	}
	return vb.Build()
}

// Scorer rates drawing sessions. It is stateless after construction.
type Scorer struct {
	cfg Config
}

// New creates a scorer. A nil config uses DefaultConfig.
func New(cfg *Config) (*Scorer, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid quality config")
	}

	return &Scorer{cfg: *cfg}, nil
}

// Score is a weighted sum of stroke count, total path length and point count.
// Geometry that does not produce a finite score counts as zero.
func (s *Scorer) Score(session *drawing.Session) float64 {
	g := session.Geometry()
	score := s.cfg.StrokeWeight*float64(g.StrokeCount) +
		s.cfg.LengthWeight*g.PathLength +
		s.cfg.PointWeight*float64(g.PointCount)
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0
	}
	return score
}

// Multiplier interpolates linearly from the floor multiplier at MinScore to
// the ceiling multiplier at MaxScore, clamping outside that band. NaN gets
// the floor.
func (s *Scorer) Multiplier(score float64) float64 {
	switch {
	case math.IsNaN(score), score <= s.cfg.MinScore:
		return s.cfg.FloorMultiplier
	case score >= s.cfg.MaxScore:
		return s.cfg.CeilingMultiplier
	}

	t := (score - s.cfg.MinScore) / (s.cfg.MaxScore - s.cfg.MinScore)
	return s.cfg.FloorMultiplier + t*(s.cfg.CeilingMultiplier-s.cfg.FloorMultiplier)
}

// Rate scores a session and returns both the score and its multiplier
func (s *Scorer) Rate(session *drawing.Session) (score, multiplier float64) {
	score = s.Score(session)
	return score, s.Multiplier(score)
}

// Config returns a copy of the scorer configuration
func (s *Scorer) Config() Config {
	return s.cfg
}
