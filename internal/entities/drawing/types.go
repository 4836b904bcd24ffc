// Package drawing contains the geometric record of a freehand drawing session
package drawing

import (
	"math"
)

// Point is a coordinate on the drawing canvas
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo returns the euclidean distance between two points
func (p Point) DistanceTo(o Point) float64 {
	return math.Hypot(o.X-p.X, o.Y-p.Y)
}

// Stroke is one pointer-down to pointer-up path. A finished stroke always
// holds at least one point and is never modified afterwards.
type Stroke struct {
	Points []Point `json:"points"`
}

// Length returns the polyline length of the stroke
func (s Stroke) Length() float64 {
	var total float64
	for i := 1; i < len(s.Points); i++ {
		total += s.Points[i-1].DistanceTo(s.Points[i])
	}
	return total
}

// Session is the finished stroke list plus the chosen palette color
type Session struct {
	Strokes []Stroke `json:"strokes"`
	Color   Color    `json:"color"`
}

// IsEmpty reports whether the session has no strokes
func (s *Session) IsEmpty() bool {
	return s == nil || len(s.Strokes) == 0
}

// Bounds is an axis aligned bounding box
type Bounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width returns the horizontal extent
func (b Bounds) Width() float64 {
	return b.MaxX - b.MinX
}

// Height returns the vertical extent
func (b Bounds) Height() float64 {
	return b.MaxY - b.MinY
}

// Geometry summarizes a session with the aggregate features used for
// classification and quality scoring.
type Geometry struct {
	StrokeCount int     `json:"stroke_count"`
	PointCount  int     `json:"point_count"`
	PathLength  float64 `json:"path_length"`
	Bounds      Bounds  `json:"bounds"`
}

// minExtent keeps elongation finite for dots and straight lines
const minExtent = 1.0

// Elongation is max(width, height) / min(width, height), with the smaller
// extent floored at one canvas unit. A square drawing is 1.
func (g Geometry) Elongation() float64 {
	w, h := g.Bounds.Width(), g.Bounds.Height()
	long, short := math.Max(w, h), math.Min(w, h)
	short = math.Max(short, minExtent)
	long = math.Max(long, short)
	return long / short
}

// Density is the number of points per unit of path length
func (g Geometry) Density() float64 {
	if g.PathLength <= 0 {
		return float64(g.PointCount)
	}
	return float64(g.PointCount) / g.PathLength
}

// Geometry computes the aggregate features of the session
func (s *Session) Geometry() Geometry {
	var g Geometry
	if s.IsEmpty() {
		return g
	}

	first := true
	for _, stroke := range s.Strokes {
		if len(stroke.Points) == 0 {
			continue
		}
		g.StrokeCount++
		g.PointCount += len(stroke.Points)
		g.PathLength += stroke.Length()

		for _, p := range stroke.Points {
			if first {
				g.Bounds = Bounds{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
				first = false
				continue
			}
			g.Bounds.MinX = math.Min(g.Bounds.MinX, p.X)
			g.Bounds.MinY = math.Min(g.Bounds.MinY, p.Y)
			g.Bounds.MaxX = math.Max(g.Bounds.MaxX, p.X)
			g.Bounds.MaxY = math.Max(g.Bounds.MaxY, p.Y)
		}
	}

	return g
}
