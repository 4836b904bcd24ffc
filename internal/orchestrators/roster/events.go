package roster

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/doodle-garden/internal/entities/creature"
)

// Change notification event types. The event source is a snapshot of the
// affected creature.
const (
	EventCreatureAdded    = "roster.creature_added"
	EventCreatureUpdated  = "roster.creature_updated"
	EventCreatureRemoved  = "roster.creature_removed"
	EventSelectionChanged = "roster.selection_changed"
)

// ChangeHandler receives the affected creature of a roster change
type ChangeHandler func(ctx context.Context, entry *creature.Entry) error

// EntryFromEvent extracts the creature snapshot carried by a roster event
func EntryFromEvent(event events.Event) (*creature.Entry, bool) {
	if event == nil {
		return nil, false
	}
	entry, ok := event.Source().(*creature.Entry)
	return entry, ok && entry != nil
}

// Subscribe registers a handler for one event type and returns the
// subscription id
func (r *Roster) Subscribe(eventType string, handler ChangeHandler) string {
	return r.bus.SubscribeFunc(eventType, 0, func(ctx context.Context, event events.Event) error {
		entry, ok := EntryFromEvent(event)
		if !ok {
			return nil
		}
		return handler(ctx, entry)
	})
}

// Unsubscribe removes a subscription created by Subscribe
func (r *Roster) Unsubscribe(subscriptionID string) error {
	return r.bus.Unsubscribe(subscriptionID)
}

type change struct {
	eventType string
	entry     *creature.Entry
}

// publish runs outside the roster lock so handlers may read the roster
func (r *Roster) publish(ctx context.Context, changes []change) {
	for _, c := range changes {
		event := events.NewGameEvent(c.eventType, c.entry.Clone(), nil)
		if err := r.bus.Publish(ctx, event); err != nil {
			slog.WarnContext(ctx, "roster change handler failed",
				"event_type", c.eventType,
				"creature_id", c.entry.ID,
				"error", err.Error())
		}
	}
}
