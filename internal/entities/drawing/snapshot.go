package drawing

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/KirkDiggler/doodle-garden/internal/errors"
)

// DefaultSnapshotSize is the side length in pixels of a rendered snapshot
const DefaultSnapshotSize = 64

var inkColors = map[Color]color.RGBA{
	ColorRed:   {R: 0xd6, G: 0x3a, B: 0x2f, A: 0xff},
	ColorGreen: {R: 0x3b, G: 0x9a, B: 0x3c, A: 0xff},
	ColorBlue:  {R: 0x2f, G: 0x6f, B: 0xd6, A: 0xff},
}

// Snapshot renders the session as a square PNG, scaled to fit its bounds
func (s *Session) Snapshot(size int) ([]byte, error) {
	if size < 2 {
		return nil, errors.InvalidArgumentf("snapshot size must be at least 2, got %d", size)
	}
	if s.IsEmpty() {
		return nil, errors.FailedPrecondition("cannot snapshot an empty drawing")
	}

	ink, ok := inkColors[s.Color]
	if !ok {
		ink = color.RGBA{A: 0xff}
	}
	img := image.NewPaletted(image.Rect(0, 0, size, size), color.Palette{color.White, ink})

	bounds := s.Geometry().Bounds
	extent := math.Max(math.Max(bounds.Width(), bounds.Height()), 1)
	scale := float64(size-1) / extent
	project := func(p Point) (float64, float64) {
		return (p.X - bounds.MinX) * scale, (p.Y - bounds.MinY) * scale
	}

	for _, stroke := range s.Strokes {
		for i, p := range stroke.Points {
			x1, y1 := project(p)
			x0, y0 := x1, y1
			if i > 0 {
				x0, y0 = project(stroke.Points[i-1])
			}
			steps := int(math.Ceil(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))))
			for step := 0; step <= steps; step++ {
				t := 0.0
				if steps > 0 {
					t = float64(step) / float64(steps)
				}
				x := int(math.Round(x0 + (x1-x0)*t))
				y := int(math.Round(y0 + (y1-y0)*t))
				img.SetColorIndex(x, y, 1)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, "failed to encode snapshot")
	}
	return buf.Bytes(), nil
}
