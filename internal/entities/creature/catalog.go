package creature

// speciesBase holds the level one stat template for each species
var speciesBase = map[Species]Stats{
	SpeciesSprout: {MaxHealth: 40, Attack: 10, Defense: 10},
	SpeciesVine:   {MaxHealth: 45, Attack: 14, Defense: 8},
	SpeciesBloom:  {MaxHealth: 55, Attack: 9, Defense: 13},
}

// elementBias nudges the species template toward the element's strength
var elementBias = map[Element]Stats{
	ElementFire:  {MaxHealth: 0, Attack: 3, Defense: 0},
	ElementGrass: {MaxHealth: 0, Attack: 0, Defense: 3},
	ElementWater: {MaxHealth: 8, Attack: 0, Defense: 0},
}

// BaseStats returns the starting stats for a species and element. Unknown
// species fall back to the sprout template.
func BaseStats(species Species, element Element) Stats {
	base, ok := speciesBase[species]
	if !ok {
		base = speciesBase[SpeciesSprout]
	}
	bias := elementBias[element]

	return Stats{
		MaxHealth: base.MaxHealth + bias.MaxHealth,
		Attack:    base.Attack + bias.Attack,
		Defense:   base.Defense + bias.Defense,
	}
}

// epithets are appended to the species title to name a new creature
var epithets = []string{
	"Bud", "Leaf", "Root", "Thorn", "Petal", "Seed",
	"Moss", "Fern", "Briar", "Clover", "Sap", "Twig",
}

// Epithets returns the nickname pool
func Epithets() []string {
	out := make([]string, len(epithets))
	copy(out, epithets)
	return out
}
