// Package recorder accumulates raw pointer samples into the strokes of one
// drawing session.
package recorder

import (
	"math"

	"github.com/KirkDiggler/doodle-garden/internal/entities/drawing"
	"github.com/KirkDiggler/doodle-garden/internal/errors"
)

const (
	// DefaultMaxStrokes caps the strokes of a single session
	DefaultMaxStrokes = 20

	// MaxStrokesLimit is the largest configurable stroke ceiling
	MaxStrokesLimit = 100

	// DefaultMinPointDistance drops samples closer than this to the previous point
	DefaultMinPointDistance = 0.5

	// DefaultCanvasSize is the side length of the square drawing canvas
	DefaultCanvasSize = 100.0

	errEmptySession = "drawing session has no strokes"
)

// Config configures a Recorder
type Config struct {
	MaxStrokes       int
	MinPointDistance float64
	CanvasSize       float64
}

// DefaultConfig returns the recorder defaults
func DefaultConfig() *Config {
	return &Config{
		MaxStrokes:       DefaultMaxStrokes,
		MinPointDistance: DefaultMinPointDistance,
		CanvasSize:       DefaultCanvasSize,
	}
}

// Validate ensures the configuration is usable
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRange("MaxStrokes", c.MaxStrokes, 1, MaxStrokesLimit, vb)
	errors.ValidateNonNegative("MinPointDistance", c.MinPointDistance, vb)
	if c.CanvasSize <= 0 {
		vb.Field("CanvasSize", "must be positive")
	}
	return vb.Build()
}

// Recorder captures strokes for one drawing session at a time. It is not
// safe for concurrent use; input arrives from a single control flow.
type Recorder struct {
	cfg     Config
	strokes []drawing.Stroke
	open    []drawing.Point
	drawing bool
}

// New creates a recorder. A nil config uses DefaultConfig.
func New(cfg *Config) (*Recorder, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid recorder config")
	}

	return &Recorder{cfg: *cfg}, nil
}

// BeginStroke opens a new stroke. It returns false when the session already
// holds the maximum number of strokes. An already open stroke is finished first.
func (r *Recorder) BeginStroke() bool {
	if r.drawing {
		r.EndStroke()
	}
	if len(r.strokes) >= r.cfg.MaxStrokes {
		return false
	}

	r.drawing = true
	r.open = nil
	return true
}

// AddPoint appends a sample to the open stroke. Samples with no open stroke
// or within the minimum distance of the previous sample are dropped and
// reported as false.
func (r *Recorder) AddPoint(p drawing.Point) bool {
	if !r.drawing {
		return false
	}
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return false
	}

	p = r.clamp(p)
	if n := len(r.open); n > 0 && r.open[n-1].DistanceTo(p) < r.cfg.MinPointDistance {
		return false
	}

	r.open = append(r.open, p)
	return true
}

// EndStroke closes the open stroke. A stroke that collected no points is
// discarded. It returns true when a stroke was kept.
func (r *Recorder) EndStroke() bool {
	if !r.drawing {
		return false
	}
	r.drawing = false

	if len(r.open) == 0 {
		return false
	}

	r.strokes = append(r.strokes, drawing.Stroke{Points: r.open})
	r.open = nil
	return true
}

// Reset discards everything recorded so far
func (r *Recorder) Reset() {
	r.strokes = nil
	r.open = nil
	r.drawing = false
}

// StrokeCount returns the number of finished strokes
func (r *Recorder) StrokeCount() int {
	return len(r.strokes)
}

// Geometry summarizes the finished strokes recorded so far
func (r *Recorder) Geometry() drawing.Geometry {
	s := drawing.Session{Strokes: r.strokes}
	return s.Geometry()
}

// Finish closes any open stroke and returns the finished session with the
// chosen color, leaving the recorder empty for the next session. Finishing
// with no strokes is a FailedPrecondition error and keeps the recorder as is.
func (r *Recorder) Finish(color drawing.Color) (*drawing.Session, error) {
	if !color.IsValid() {
		return nil, errors.InvalidArgumentf("color %q is not in the palette", color)
	}
	if r.drawing {
		r.EndStroke()
	}
	if len(r.strokes) == 0 {
		return nil, errors.FailedPrecondition(errEmptySession)
	}

	session := &drawing.Session{
		Strokes: r.strokes,
		Color:   color,
	}
	r.Reset()

	return session, nil
}

// Record replays complete strokes through the recorder, applying the same
// filtering as live input, and finishes the session. Strokes past the
// maximum are dropped.
func (r *Recorder) Record(strokes [][]drawing.Point, color drawing.Color) (*drawing.Session, error) {
	r.Reset()
	for _, stroke := range strokes {
		if !r.BeginStroke() {
			break
		}
		for _, p := range stroke {
			r.AddPoint(p)
		}
		r.EndStroke()
	}
	return r.Finish(color)
}

func (r *Recorder) clamp(p drawing.Point) drawing.Point {
	size := r.cfg.CanvasSize
	return drawing.Point{
		X: math.Min(math.Max(p.X, 0), size),
		Y: math.Min(math.Max(p.Y, 0), size),
	}
}
