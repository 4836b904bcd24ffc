// Package creature contains the owned-creature value objects of the garden
package creature

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/KirkDiggler/doodle-garden/internal/entities/drawing"
	"github.com/KirkDiggler/doodle-garden/internal/errors"
)

// Species determines the base stat template and display identity
type Species string

// Known species
const (
	SpeciesSprout Species = "sprout"
	SpeciesVine   Species = "vine"
	SpeciesBloom  Species = "bloom"
)

// AllSpecies lists every species in catalog order
var AllSpecies = []Species{SpeciesSprout, SpeciesVine, SpeciesBloom}

// IsValid reports whether the species is known
func (s Species) IsValid() bool {
	for _, known := range AllSpecies {
		if s == known {
			return true
		}
	}
	return false
}

// Title returns the capitalized species name
func (s Species) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// ParseSpecies resolves typed input to a species, tolerating small typos
func ParseSpecies(input string) (Species, error) {
	in := strings.ToLower(strings.TrimSpace(input))
	for _, s := range AllSpecies {
		if in == string(s) {
			return s, nil
		}
	}
	for _, s := range AllSpecies {
		if len(in) >= 3 && levenshtein.ComputeDistance(in, string(s)) <= 1 {
			return s, nil
		}
	}
	return "", errors.InvalidArgumentf("unknown species %q", input)
}

// Element drives type interactions and growth weighting
type Element string

// Elements
const (
	ElementFire  Element = "fire"
	ElementGrass Element = "grass"
	ElementWater Element = "water"
)

// AllElements lists every element
var AllElements = []Element{ElementFire, ElementGrass, ElementWater}

// IsValid reports whether the element is known
func (e Element) IsValid() bool {
	for _, known := range AllElements {
		if e == known {
			return true
		}
	}
	return false
}

// ElementForColor maps a palette color to its element. Colors outside the
// palette resolve to grass.
func ElementForColor(c drawing.Color) Element {
	switch c {
	case drawing.ColorRed:
		return ElementFire
	case drawing.ColorBlue:
		return ElementWater
	default:
		return ElementGrass
	}
}

// ClassificationResult is the classifier's verdict for a drawing session.
// Confidence is advisory and always in [0,1].
type ClassificationResult struct {
	Species    Species `json:"species"`
	Element    Element `json:"element"`
	Confidence float64 `json:"confidence"`
}

// Stats is the stat tuple grown by drawing quality
type Stats struct {
	MaxHealth int `json:"maxHealth"`
	Attack    int `json:"attack"`
	Defense   int `json:"defense"`
}

// Validate ensures every stat is positive
func (s Stats) Validate() error {
	vb := errors.NewValidationBuilder()
	if s.MaxHealth <= 0 {
		vb.Field("MaxHealth", "must be positive")
	}
	if s.Attack <= 0 {
		vb.Field("Attack", "must be positive")
	}
	if s.Defense <= 0 {
		vb.Field("Defense", "must be positive")
	}
	return vb.Build()
}
