package creature_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/doodle-garden/internal/entities/creature"
	"github.com/KirkDiggler/doodle-garden/internal/entities/drawing"
	"github.com/KirkDiggler/doodle-garden/internal/errors"
)

type EntryTestSuite struct {
	suite.Suite
	entry *creature.Entry
}

func TestEntrySuite(t *testing.T) {
	suite.Run(t, new(EntryTestSuite))
}

func (s *EntryTestSuite) SetupTest() {
	s.entry = &creature.Entry{
		ID:            "plant_1",
		Species:       creature.SpeciesSprout,
		Element:       creature.ElementGrass,
		Level:         1,
		MaxHealth:     50,
		Attack:        10,
		Defense:       12,
		CurrentHealth: 50,
		DrawingImage:  []byte{0x89, 0x50, 0x4e, 0x47},
		GrowthHistory: []creature.GrowthRecord{{Level: 2, Multiplier: 1.5}},
	}
}

func (s *EntryTestSuite) TestSetHealthClamps() {
	s.entry.SetHealth(80)
	s.Equal(50, s.entry.CurrentHealth)

	s.entry.SetHealth(-5)
	s.Equal(0, s.entry.CurrentHealth)
	s.True(s.entry.IsFainted())

	s.entry.SetHealth(17)
	s.Equal(17, s.entry.CurrentHealth)

	s.entry.Heal()
	s.Equal(50, s.entry.CurrentHealth)
}

func (s *EntryTestSuite) TestCloneIsDeep() {
	c := s.entry.Clone()
	c.DrawingImage[0] = 0
	c.GrowthHistory[0].Level = 9
	c.Attack = 99

	s.Equal(byte(0x89), s.entry.DrawingImage[0])
	s.Equal(2, s.entry.GrowthHistory[0].Level)
	s.Equal(10, s.entry.Attack)
	s.Nil((*creature.Entry)(nil).Clone())
}

func (s *EntryTestSuite) TestRepair() {
	s.False(s.entry.Repair())

	s.entry.Level = 0
	s.entry.Defense = 0
	s.entry.CurrentHealth = 70
	s.entry.BattlesWon = -1

	s.True(s.entry.Repair())
	s.Equal(1, s.entry.Level)
	s.Equal(1, s.entry.Defense)
	s.Equal(50, s.entry.CurrentHealth)
	s.Equal(0, s.entry.BattlesWon)
}

func (s *EntryTestSuite) TestEntityIdentity() {
	s.Equal("plant_1", s.entry.GetID())
	s.Equal(creature.EntityType, s.entry.GetType())
}

func (s *EntryTestSuite) TestStatsValidate() {
	s.NoError(s.entry.Stats().Validate())

	err := creature.Stats{MaxHealth: 10}.Validate()
	s.True(errors.IsInvalidArgument(err))
}

func (s *EntryTestSuite) TestElementForColor() {
	s.Equal(creature.ElementFire, creature.ElementForColor(drawing.ColorRed))
	s.Equal(creature.ElementGrass, creature.ElementForColor(drawing.ColorGreen))
	s.Equal(creature.ElementWater, creature.ElementForColor(drawing.ColorBlue))
	s.Equal(creature.ElementGrass, creature.ElementForColor(drawing.Color("mauve")))
}

func (s *EntryTestSuite) TestBaseStats() {
	for _, species := range creature.AllSpecies {
		for _, element := range creature.AllElements {
			s.NoError(creature.BaseStats(species, element).Validate(), "%s/%s", species, element)
		}
	}

	fire := creature.BaseStats(creature.SpeciesVine, creature.ElementFire)
	grass := creature.BaseStats(creature.SpeciesVine, creature.ElementGrass)
	s.Greater(fire.Attack, grass.Attack)
	s.Equal(creature.BaseStats(creature.SpeciesSprout, creature.ElementGrass),
		creature.BaseStats(creature.Species("cactus"), creature.ElementGrass))
}

func (s *EntryTestSuite) TestParseSpecies() {
	sp, err := creature.ParseSpecies("Bloom")
	s.NoError(err)
	s.Equal(creature.SpeciesBloom, sp)

	sp, err = creature.ParseSpecies("vien")
	s.Error(err)
	s.Empty(sp)

	sp, err = creature.ParseSpecies("sprot")
	s.NoError(err)
	s.Equal(creature.SpeciesSprout, sp)
	s.Equal("Sprout", sp.Title())
}
