package roster

import (
	"github.com/KirkDiggler/doodle-garden/internal/entities/creature"
	rosterrepo "github.com/KirkDiggler/doodle-garden/internal/repositories/roster"
)

// Issue is one problem found in a stored roster record
type Issue struct {
	CreatureID string
	Problem    string
}

// Issue problems
const (
	ProblemMissingID         = "missing id"
	ProblemDuplicateID       = "duplicate id"
	ProblemOutOfRange        = "fields out of range"
	ProblemDanglingSelection = "selection references unknown creature"
)

// Diagnose lists what loading the record would repair, without changing it
func Diagnose(record *rosterrepo.Record) []Issue {
	_, _, issues := sanitize(record)
	return issues
}

// sanitize returns repaired copies of the record's entries and selection.
// The first entry with a given id wins.
func sanitize(record *rosterrepo.Record) ([]*creature.Entry, string, []Issue) {
	if record == nil {
		return nil, "", nil
	}

	var issues []Issue
	seen := make(map[string]bool, len(record.Plants))
	entries := make([]*creature.Entry, 0, len(record.Plants))
	for _, stored := range record.Plants {
		switch {
		case stored == nil:
			continue
		case stored.ID == "":
			issues = append(issues, Issue{Problem: ProblemMissingID})
			continue
		case seen[stored.ID]:
			issues = append(issues, Issue{CreatureID: stored.ID, Problem: ProblemDuplicateID})
			continue
		}
		seen[stored.ID] = true

		entry := stored.Clone()
		if entry.Repair() {
			issues = append(issues, Issue{CreatureID: entry.ID, Problem: ProblemOutOfRange})
		}
		entries = append(entries, entry)
	}

	selected := record.SelectedPlantID
	if selected != "" && !seen[selected] {
		issues = append(issues, Issue{CreatureID: selected, Problem: ProblemDanglingSelection})
		selected = ""
	}

	return entries, selected, issues
}
