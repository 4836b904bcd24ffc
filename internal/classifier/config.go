package classifier

import (
	"math"

	"github.com/KirkDiggler/doodle-garden/internal/entities/creature"
	"github.com/KirkDiggler/doodle-garden/internal/entities/drawing"
	"github.com/KirkDiggler/doodle-garden/internal/errors"
)

// Feature names an aggregate geometry feature of a session
type Feature string

// Features available to buckets
const (
	FeatureStrokeCount Feature = "stroke_count"
	FeaturePathLength  Feature = "path_length"
	FeatureElongation  Feature = "elongation"
	FeatureDensity     Feature = "density"
)

// Value extracts the feature from a geometry summary
func (f Feature) Value(g drawing.Geometry) float64 {
	switch f {
	case FeatureStrokeCount:
		return float64(g.StrokeCount)
	case FeaturePathLength:
		return g.PathLength
	case FeatureElongation:
		return g.Elongation()
	case FeatureDensity:
		return g.Density()
	default:
		return 0
	}
}

// Range is a closed interval of feature values
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Centrality is 1 at the middle of the range, 0 at either edge and negative
// outside, falling off linearly with distance from the middle.
func (r Range) Centrality(x float64) float64 {
	half := (r.Max - r.Min) / 2
	center := r.Min + half
	if half <= 0 {
		if x == center {
			return 1
		}
		return -math.Abs(x - center)
	}
	return 1 - math.Abs(x-center)/half
}

// Bucket assigns a species to a region of feature space. Features without a
// range are unconstrained.
type Bucket struct {
	Species creature.Species  `json:"species"`
	Ranges  map[Feature]Range `json:"ranges"`
}

const (
	// DefaultConfidenceFloor is the confidence at a bucket boundary
	DefaultConfidenceFloor = 0.4

	// DefaultMinimalPathLength marks a single stroke too short to classify by shape
	DefaultMinimalPathLength = 5.0
)

// Config configures a Classifier
type Config struct {
	Buckets           []Bucket
	DefaultSpecies    creature.Species
	ConfidenceFloor   float64
	MinimalPathLength float64
}

// DefaultBuckets are tuned for the default 100 unit canvas
func DefaultBuckets() []Bucket {
	return []Bucket{
		{
			Species: creature.SpeciesSprout,
			Ranges: map[Feature]Range{
				FeatureStrokeCount: {Min: 1, Max: 4},
				FeaturePathLength:  {Min: 0, Max: 120},
			},
		},
		{
			Species: creature.SpeciesVine,
			Ranges: map[Feature]Range{
				FeatureStrokeCount: {Min: 1, Max: 4},
				FeaturePathLength:  {Min: 120, Max: 600},
				FeatureElongation:  {Min: 1.2, Max: 8},
			},
		},
		{
			Species: creature.SpeciesBloom,
			Ranges: map[Feature]Range{
				FeatureStrokeCount: {Min: 4, Max: 30},
				FeaturePathLength:  {Min: 0, Max: 900},
			},
		},
	}
}

// DefaultConfig returns the default classifier configuration
func DefaultConfig() *Config {
	return &Config{
		Buckets:           DefaultBuckets(),
		DefaultSpecies:    creature.SpeciesSprout,
		ConfidenceFloor:   DefaultConfidenceFloor,
		MinimalPathLength: DefaultMinimalPathLength,
	}
}

// Validate ensures the configuration is usable
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if !c.DefaultSpecies.IsValid() {
		vb.InvalidField("DefaultSpecies", string(c.DefaultSpecies))
	}
	errors.ValidateFloatRange("ConfidenceFloor", c.ConfidenceFloor, 0, 1, vb)
	errors.ValidateNonNegative("MinimalPathLength", c.MinimalPathLength, vb)
	for i, b := range c.Buckets {
		if !b.Species.IsValid() {
			vb.Fieldf("Buckets", "bucket %d has unknown species %q", i, b.Species)
		}
		if len(b.Ranges) == 0 {
			vb.Fieldf("Buckets", "bucket %d has no ranges", i)
		}
		for f, r := range b.Ranges {
			if r.Max < r.Min {
				vb.Fieldf("Buckets", "bucket %d range %s has max below min", i, f)
			}
		}
	}
	return vb.Build()
}
