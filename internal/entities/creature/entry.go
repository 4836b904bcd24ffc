package creature

import (
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/doodle-garden/internal/entities/drawing"
)

// EntityType is the rpg-toolkit entity type of a roster creature
const EntityType = "plant"

var _ core.Entity = (*Entry)(nil)

// GrowthRecord is one applied growth upgrade
type GrowthRecord struct {
	At         time.Time `json:"at"`
	Score      float64   `json:"score"`
	Multiplier float64   `json:"multiplier"`
	Level      int       `json:"level"`
}

// Entry is one owned creature.
//
// CurrentHealth stays within [0, MaxHealth]. Level and GrowthCount only move
// upward.
type Entry struct {
	ID            string         `json:"id"`
	Species       Species        `json:"species"`
	Element       Element        `json:"element"`
	DisplayName   string         `json:"displayName"`
	Level         int            `json:"level"`
	MaxHealth     int            `json:"maxHealth"`
	Attack        int            `json:"attack"`
	Defense       int            `json:"defense"`
	CurrentHealth int            `json:"currentHealth"`
	Color         drawing.Color  `json:"color"`
	DrawingImage  []byte         `json:"drawingImage,omitempty"`
	AcquiredAt    time.Time      `json:"acquiredAt"`
	BattlesWon    int            `json:"battlesWon"`
	GrowthCount   int            `json:"growthCount"`
	GrowthHistory []GrowthRecord `json:"growthHistory,omitempty"`
	Confidence    float64        `json:"confidence"`
}

// GetID returns the creature id
func (e *Entry) GetID() string {
	return e.ID
}

// GetType returns the entity type for rpg-toolkit
func (e *Entry) GetType() string {
	return EntityType
}

// Stats returns the current stat tuple
func (e *Entry) Stats() Stats {
	return Stats{MaxHealth: e.MaxHealth, Attack: e.Attack, Defense: e.Defense}
}

// SetHealth sets current health clamped to [0, MaxHealth]
func (e *Entry) SetHealth(hp int) {
	switch {
	case hp < 0:
		e.CurrentHealth = 0
	case hp > e.MaxHealth:
		e.CurrentHealth = e.MaxHealth
	default:
		e.CurrentHealth = hp
	}
}

// Heal restores current health to the maximum
func (e *Entry) Heal() {
	e.CurrentHealth = e.MaxHealth
}

// IsFainted reports whether the creature has no health left
func (e *Entry) IsFainted() bool {
	return e.CurrentHealth <= 0
}

// Clone returns a deep copy of the entry
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	c := *e
	if e.DrawingImage != nil {
		c.DrawingImage = append([]byte(nil), e.DrawingImage...)
	}
	if e.GrowthHistory != nil {
		c.GrowthHistory = append([]GrowthRecord(nil), e.GrowthHistory...)
	}
	return &c
}

// Repair brings a loaded entry back within its invariants and reports
// whether anything changed.
func (e *Entry) Repair() bool {
	changed := false
	if e.Level < 1 {
		e.Level = 1
		changed = true
	}
	for _, stat := range []*int{&e.MaxHealth, &e.Attack, &e.Defense} {
		if *stat < 1 {
			*stat = 1
			changed = true
		}
	}
	if e.CurrentHealth < 0 || e.CurrentHealth > e.MaxHealth {
		e.SetHealth(e.CurrentHealth)
		changed = true
	}
	if e.BattlesWon < 0 {
		e.BattlesWon = 0
		changed = true
	}
	if e.GrowthCount < 0 {
		e.GrowthCount = 0
		changed = true
	}
	return changed
}
