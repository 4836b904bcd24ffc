package drawing

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/KirkDiggler/doodle-garden/internal/errors"
)

// Color is one of the fixed palette colors a player picks for a drawing
type Color string

// Palette colors
const (
	ColorRed   Color = "red"
	ColorGreen Color = "green"
	ColorBlue  Color = "blue"
)

// Palette lists every selectable color in display order
var Palette = []Color{ColorRed, ColorGreen, ColorBlue}

// IsValid reports whether the color is part of the palette
func (c Color) IsValid() bool {
	for _, p := range Palette {
		if c == p {
			return true
		}
	}
	return false
}

// String returns the color name
func (c Color) String() string {
	return string(c)
}

// ParseColor resolves player input to a palette color. Exact names win,
// then unique prefixes, then the closest name within a small edit distance.
func ParseColor(input string) (Color, error) {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" {
		return "", errors.InvalidArgument("color is required")
	}

	for _, c := range Palette {
		if in == string(c) {
			return c, nil
		}
	}

	var prefixed []Color
	for _, c := range Palette {
		if strings.HasPrefix(string(c), in) {
			prefixed = append(prefixed, c)
		}
	}
	if len(prefixed) == 1 {
		return prefixed[0], nil
	}

	best := Color("")
	bestDist := -1
	for _, c := range Palette {
		dist := levenshtein.ComputeDistance(in, string(c))
		if dist > editLimit(len(c)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = c, dist
		}
	}
	if best == "" {
		return "", errors.InvalidArgumentf("unknown color %q", input).
			WithMeta("palette", Palette)
	}

	return best, nil
}

func editLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	default:
		return 2
	}
}
