// Package roster owns the player's creature collection, the battle
// selection and their persistence.
package roster

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/doodle-garden/internal/entities/creature"
	"github.com/KirkDiggler/doodle-garden/internal/entities/drawing"
	"github.com/KirkDiggler/doodle-garden/internal/errors"
	"github.com/KirkDiggler/doodle-garden/internal/pkg/clock"
	"github.com/KirkDiggler/doodle-garden/internal/pkg/idgen"
	rosterrepo "github.com/KirkDiggler/doodle-garden/internal/repositories/roster"
)

const (
	// IDPrefix prefixes generated creature ids
	IDPrefix = "plant"

	maxDisplayNameLength = 40

	errCreatureIDEmpty = "creature ID cannot be empty"
)

// Config holds the dependencies for the roster
type Config struct {
	Repository  rosterrepo.Repository
	EventBus    events.EventBus
	IDGenerator idgen.Generator
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	return vb.Build()
}

// Roster is the single owner of the creature collection. Every mutation is
// applied to a copy, persisted, and only then made visible, so a failed
// write leaves the in-memory roster matching the last stored record. All
// methods are safe for concurrent use; mutations are serialized.
type Roster struct {
	mu         sync.Mutex
	entries    []*creature.Entry
	selectedID string

	repo  rosterrepo.Repository
	bus   events.EventBus
	idGen idgen.Generator
	clock clock.Clock
}

// New creates the roster and loads the persisted record. A missing record
// yields an empty roster. A malformed record is logged and replaced by an
// empty roster; other storage failures are returned.
func New(ctx context.Context, cfg *Config) (*Roster, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	r := &Roster{
		repo:  cfg.Repository,
		bus:   cfg.EventBus,
		idGen: cfg.IDGenerator,
		clock: cfg.Clock,
	}
	if r.bus == nil {
		r.bus = events.NewBus()
	}
	if r.idGen == nil {
		r.idGen = idgen.NewUUID(IDPrefix)
	}
	if r.clock == nil {
		r.clock = clock.New()
	}

	if err := r.load(ctx); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Roster) load(ctx context.Context) error {
	out, err := r.repo.Load(ctx, rosterrepo.LoadInput{})
	if err != nil {
		if errors.IsDataLoss(err) {
			slog.WarnContext(ctx, "stored roster is corrupt, starting with an empty roster",
				"error", err.Error())
			r.entries = nil
			r.selectedID = ""
			return nil
		}
		return errors.Wrap(err, "failed to load roster")
	}

	entries, selected, issues := sanitize(out.Record)
	for _, issue := range issues {
		slog.WarnContext(ctx, "repaired stored roster",
			"creature_id", issue.CreatureID,
			"problem", issue.Problem)
	}

	r.entries = entries
	r.selectedID = selected

	slog.DebugContext(ctx, "loaded roster",
		"found", out.Found,
		"plants", len(entries),
		"selected_id", selected)

	return nil
}

// AddInput is everything needed to register a freshly classified creature
type AddInput struct {
	Result       creature.ClassificationResult
	BaseStats    creature.Stats
	Color        drawing.Color
	DisplayName  string
	DrawingImage []byte
}

// Validate checks the creature can be created
func (in *AddInput) Validate() error {
	vb := errors.NewValidationBuilder()
	if !in.Result.Species.IsValid() {
		vb.InvalidField("Species", string(in.Result.Species))
	}
	if !in.Result.Element.IsValid() {
		vb.InvalidField("Element", string(in.Result.Element))
	}
	errors.ValidateFloatRange("Confidence", in.Result.Confidence, 0, 1, vb)
	if !in.Color.IsValid() {
		vb.InvalidField("Color", string(in.Color))
	}
	if len(in.DisplayName) > maxDisplayNameLength {
		vb.Fieldf("DisplayName", "must be no more than %d characters", maxDisplayNameLength)
	}
	if err := in.BaseStats.Validate(); err != nil {
		vb.InvalidField("BaseStats", errors.GetMessage(err))
	}
	return vb.Build()
}

// Add creates a level one creature at full health, appends it and persists
func (r *Roster) Add(ctx context.Context, input *AddInput) (*creature.Entry, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.DisplayName)
	if name == "" {
		name = input.Result.Species.Title()
	}

	var image []byte
	if len(input.DrawingImage) > 0 {
		image = append([]byte(nil), input.DrawingImage...)
	}

	r.mu.Lock()
	entry := &creature.Entry{
		ID:            r.idGen.Generate(),
		Species:       input.Result.Species,
		Element:       input.Result.Element,
		DisplayName:   name,
		Level:         1,
		MaxHealth:     input.BaseStats.MaxHealth,
		Attack:        input.BaseStats.Attack,
		Defense:       input.BaseStats.Defense,
		CurrentHealth: input.BaseStats.MaxHealth,
		Color:         input.Color,
		DrawingImage:  image,
		AcquiredAt:    r.clock.Now().UTC(),
		Confidence:    input.Result.Confidence,
	}
	if r.indexOf(entry.ID) >= 0 {
		r.mu.Unlock()
		return nil, errors.AlreadyExistsf("creature with ID %s already exists", entry.ID)
	}

	entries := make([]*creature.Entry, 0, len(r.entries)+1)
	entries = append(entries, r.entries...)
	entries = append(entries, entry)

	if err := r.commit(ctx, entries, r.selectedID); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	r.mu.Unlock()

	slog.DebugContext(ctx, "added creature",
		"creature_id", entry.ID,
		"species", entry.Species,
		"element", entry.Element)

	r.publish(ctx, []change{{EventCreatureAdded, entry}})
	return entry.Clone(), nil
}

// Get returns a copy of the creature, or false when the id is unknown
func (r *Roster) Get(id string) (*creature.Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, false
	}
	return r.entries[idx].Clone(), true
}

// List returns copies of every creature in acquisition order
func (r *Roster) List() []*creature.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*creature.Entry, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Clone()
	}
	return out
}

// Count returns the number of creatures
func (r *Roster) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// SelectedID returns the explicitly selected id, empty when none
func (r *Roster) SelectedID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.selectedID
}

// Selected returns the creature chosen for battle, falling back to the first
// creature when none is explicitly selected
func (r *Roster) Selected() (*creature.Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if idx := r.indexOf(r.selectedID); idx >= 0 {
		return r.entries[idx].Clone(), true
	}
	if len(r.entries) > 0 {
		return r.entries[0].Clone(), true
	}
	return nil, false
}

// Select marks a creature for battle. An unknown id is a NotFound error and
// leaves the previous selection in place.
func (r *Roster) Select(ctx context.Context, id string) error {
	if id == "" {
		return errors.InvalidArgument(errCreatureIDEmpty)
	}

	r.mu.Lock()
	idx := r.indexOf(id)
	if idx < 0 {
		r.mu.Unlock()
		return unknownCreature(id)
	}
	entry := r.entries[idx]
	if r.selectedID == id {
		r.mu.Unlock()
		return nil
	}
	if err := r.commit(ctx, r.entries, id); err != nil {
		r.mu.Unlock()
		return err
	}
	r.mu.Unlock()

	slog.DebugContext(ctx, "selected creature", "creature_id", id)
	r.publish(ctx, []change{{EventSelectionChanged, entry}})
	return nil
}

// RecordVictory increments the creature's battle wins
func (r *Roster) RecordVictory(ctx context.Context, id string) (*creature.Entry, error) {
	return r.Update(ctx, id, func(e *creature.Entry) error {
		e.BattlesWon++
		return nil
	})
}

// Heal restores one creature to full health
func (r *Roster) Heal(ctx context.Context, id string) (*creature.Entry, error) {
	return r.Update(ctx, id, func(e *creature.Entry) error {
		e.Heal()
		return nil
	})
}

// UpdateHealth sets current health, clamped to [0, MaxHealth]
func (r *Roster) UpdateHealth(ctx context.Context, id string, hp int) (*creature.Entry, error) {
	return r.Update(ctx, id, func(e *creature.Entry) error {
		e.SetHealth(hp)
		return nil
	})
}

// Rename changes the creature's display name
func (r *Roster) Rename(ctx context.Context, id, name string) (*creature.Entry, error) {
	name = strings.TrimSpace(name)
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("DisplayName", name, vb)
	if len(name) > maxDisplayNameLength {
		vb.Fieldf("DisplayName", "must be no more than %d characters", maxDisplayNameLength)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	return r.Update(ctx, id, func(e *creature.Entry) error {
		e.DisplayName = name
		return nil
	})
}

// HealAll restores every creature to full health in one write and returns
// the creatures that were healed
func (r *Roster) HealAll(ctx context.Context) ([]*creature.Entry, error) {
	r.mu.Lock()
	entries := make([]*creature.Entry, len(r.entries))
	var changes []change
	for i, e := range r.entries {
		if e.CurrentHealth == e.MaxHealth {
			entries[i] = e
			continue
		}
		healed := e.Clone()
		healed.Heal()
		entries[i] = healed
		changes = append(changes, change{EventCreatureUpdated, healed})
	}

	if len(changes) == 0 {
		r.mu.Unlock()
		return nil, nil
	}
	if err := r.commit(ctx, entries, r.selectedID); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	r.mu.Unlock()

	slog.DebugContext(ctx, "healed all creatures", "healed", len(changes))
	r.publish(ctx, changes)

	out := make([]*creature.Entry, len(changes))
	for i, c := range changes {
		out[i] = c.entry.Clone()
	}
	return out, nil
}

// Remove permanently deletes a creature, clearing the selection if it
// pointed at it
func (r *Roster) Remove(ctx context.Context, id string) (*creature.Entry, error) {
	if id == "" {
		return nil, errors.InvalidArgument(errCreatureIDEmpty)
	}

	r.mu.Lock()
	idx := r.indexOf(id)
	if idx < 0 {
		r.mu.Unlock()
		return nil, unknownCreature(id)
	}
	removed := r.entries[idx]

	entries := make([]*creature.Entry, 0, len(r.entries)-1)
	entries = append(entries, r.entries[:idx]...)
	entries = append(entries, r.entries[idx+1:]...)

	selected := r.selectedID
	if selected == id {
		selected = ""
	}

	if err := r.commit(ctx, entries, selected); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	r.mu.Unlock()

	slog.DebugContext(ctx, "removed creature", "creature_id", id)
	r.publish(ctx, []change{{EventCreatureRemoved, removed}})
	return removed.Clone(), nil
}

// Flush writes the current roster to the store. Loading repairs the record
// in memory only; Flush makes the repair durable.
func (r *Roster) Flush(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.commit(ctx, r.entries, r.selectedID)
}

// MutateFunc edits a private copy of a creature
type MutateFunc func(entry *creature.Entry) error

// Update applies fn to a copy of the creature and persists the result. If fn
// fails, the result breaks an invariant, or the write fails, nothing changes.
func (r *Roster) Update(ctx context.Context, id string, fn MutateFunc) (*creature.Entry, error) {
	if id == "" {
		return nil, errors.InvalidArgument(errCreatureIDEmpty)
	}
	if fn == nil {
		return nil, errors.InvalidArgument("mutate func is required")
	}

	r.mu.Lock()
	idx := r.indexOf(id)
	if idx < 0 {
		r.mu.Unlock()
		return nil, unknownCreature(id)
	}

	before := r.entries[idx]
	after := before.Clone()
	if err := fn(after); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	if err := checkTransition(before, after); err != nil {
		r.mu.Unlock()
		return nil, err
	}

	entries := make([]*creature.Entry, len(r.entries))
	copy(entries, r.entries)
	entries[idx] = after

	if err := r.commit(ctx, entries, r.selectedID); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	r.mu.Unlock()

	slog.DebugContext(ctx, "updated creature",
		"creature_id", id,
		"level", after.Level,
		"current_health", after.CurrentHealth)

	r.publish(ctx, []change{{EventCreatureUpdated, after}})
	return after.Clone(), nil
}

// checkTransition guards the entry invariants across a mutation
func checkTransition(before, after *creature.Entry) error {
	vb := errors.NewValidationBuilder()
	if after.ID != before.ID {
		vb.Field("ID", "cannot change")
	}
	if after.Level < before.Level {
		vb.Field("Level", "cannot decrease")
	}
	if after.GrowthCount < before.GrowthCount {
		vb.Field("GrowthCount", "cannot decrease")
	}
	if after.BattlesWon < before.BattlesWon {
		vb.Field("BattlesWon", "cannot decrease")
	}
	if after.MaxHealth < before.MaxHealth {
		vb.Field("MaxHealth", "cannot decrease")
	}
	if after.Attack < before.Attack {
		vb.Field("Attack", "cannot decrease")
	}
	if after.Defense < before.Defense {
		vb.Field("Defense", "cannot decrease")
	}
	if err := after.Stats().Validate(); err != nil {
		vb.InvalidField("Stats", errors.GetMessage(err))
	}
	if after.CurrentHealth < 0 || after.CurrentHealth > after.MaxHealth {
		vb.Fieldf("CurrentHealth", "must be between 0 and %d", after.MaxHealth)
	}
	return vb.Build()
}

// commit persists the candidate state and makes it current. Callers hold mu.
func (r *Roster) commit(ctx context.Context, entries []*creature.Entry, selected string) error {
	record := &rosterrepo.Record{
		Plants:          entries,
		SelectedPlantID: selected,
	}
	if _, err := r.repo.Save(ctx, rosterrepo.SaveInput{Record: record}); err != nil {
		slog.ErrorContext(ctx, "failed to persist roster",
			"plants", len(entries),
			"error", err.Error())
		return errors.Wrap(err, "failed to persist roster")
	}

	r.entries = entries
	r.selectedID = selected
	return nil
}

// indexOf returns the slice position of id or -1. Callers hold mu.
func (r *Roster) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, e := range r.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func unknownCreature(id string) error {
	return errors.NotFoundf("creature with ID %s not found", id).
		WithMeta("creature_id", id)
}
