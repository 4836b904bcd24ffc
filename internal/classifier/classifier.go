// Package classifier infers a creature species and element from a drawing
package classifier

import (
	"math"
	"sort"

	"github.com/KirkDiggler/doodle-garden/internal/entities/creature"
	"github.com/KirkDiggler/doodle-garden/internal/entities/drawing"
	"github.com/KirkDiggler/doodle-garden/internal/errors"
)

// Classifier maps a finished drawing session to a classification. It holds
// only configuration and is safe for concurrent use.
type Classifier struct {
	buckets           []Bucket
	defaultSpecies    creature.Species
	floor             float64
	minimalPathLength float64
}

// New creates a classifier. A nil config uses DefaultConfig.
func New(cfg *Config) (*Classifier, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid classifier config")
	}

	buckets := make([]Bucket, len(cfg.Buckets))
	copy(buckets, cfg.Buckets)

	return &Classifier{
		buckets:           buckets,
		defaultSpecies:    cfg.DefaultSpecies,
		floor:             cfg.ConfidenceFloor,
		minimalPathLength: cfg.MinimalPathLength,
	}, nil
}

// Classify never fails: the color picks the element, the aggregate geometry
// picks the species bucket, and geometry that fits no bucket is assigned to
// the nearest one.
func (c *Classifier) Classify(session *drawing.Session) creature.ClassificationResult {
	var color drawing.Color
	if session != nil {
		color = session.Color
	}
	result := creature.ClassificationResult{
		Species:    c.defaultSpecies,
		Element:    creature.ElementForColor(color),
		Confidence: c.floor,
	}

	g := session.Geometry()
	if g.StrokeCount == 0 || (g.StrokeCount == 1 && g.PathLength < c.minimalPathLength) {
		return result
	}
	if len(c.buckets) == 0 {
		return result
	}

	bestIdx := 0
	bestScore := math.Inf(-1)
	for i, b := range c.buckets {
		score := bucketScore(b, g)
		if score > bestScore {
			bestIdx, bestScore = i, score
		}
	}

	result.Species = c.buckets[bestIdx].Species
	result.Confidence = c.confidence(bestScore)
	return result
}

func (c *Classifier) confidence(score float64) float64 {
	centrality := math.Max(0, math.Min(1, score))
	return c.floor + (1-c.floor)*centrality
}

// bucketScore is the weakest centrality across the bucket's ranges. Feature
// order is fixed so the floating point result is reproducible.
func bucketScore(b Bucket, g drawing.Geometry) float64 {
	features := make([]string, 0, len(b.Ranges))
	for f := range b.Ranges {
		features = append(features, string(f))
	}
	sort.Strings(features)

	score := math.Inf(1)
	for _, name := range features {
		f := Feature(name)
		score = math.Min(score, b.Ranges[f].Centrality(f.Value(g)))
	}
	return score
}
