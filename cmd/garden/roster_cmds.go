package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/doodle-garden/internal/entities/creature"
	"github.com/KirkDiggler/doodle-garden/internal/errors"
	"github.com/KirkDiggler/doodle-garden/internal/orchestrators/roster"
)

var confirmRelease bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the creatures in the roster, optionally of one species",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var showCmd = &cobra.Command{
	Use:   "show [creature]",
	Short: "Show one creature, the selected one by default",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShow,
}

var selectCmd = &cobra.Command{
	Use:   "select <creature>",
	Short: "Choose the creature that goes into battle",
	Args:  cobra.ExactArgs(1),
	RunE:  runSelect,
}

var renameCmd = &cobra.Command{
	Use:   "rename <creature> <name>",
	Short: "Change a creature's display name",
	Args:  cobra.ExactArgs(2),
	RunE:  runRename,
}

var releaseCmd = &cobra.Command{
	Use:   "release <creature>",
	Short: "Permanently remove a creature",
	Args:  cobra.ExactArgs(1),
	RunE:  runRelease,
}

var speciesFilter string

func init() {
	listCmd.Flags().StringVar(&speciesFilter, "species", "", "only list creatures of this species (sprout, vine or bloom)")
	releaseCmd.Flags().BoolVar(&confirmRelease, "yes", false, "confirm the permanent removal")
}

// resolveCreature finds a creature by exact id or unique id prefix
func resolveCreature(r *roster.Roster, ref string) (*creature.Entry, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.InvalidArgument("creature ID cannot be empty")
	}
	if entry, ok := r.Get(ref); ok {
		return entry, nil
	}

	var matches []*creature.Entry
	for _, e := range r.List() {
		if strings.HasPrefix(e.ID, ref) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return nil, errors.NotFoundf("creature with ID %s not found", ref).WithMeta("creature_id", ref)
	case 1:
		return matches[0], nil
	default:
		return nil, errors.InvalidArgumentf("creature ID prefix %s matches %d creatures", ref, len(matches))
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}

	entries := a.roster.List()
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "The garden is empty. Hatch a drawing to get started.")
		return nil
	}

	if speciesFilter != "" {
		species, err := creature.ParseSpecies(speciesFilter)
		if err != nil {
			return err
		}
		filtered := entries[:0]
		for _, e := range entries {
			if e.Species == species {
				filtered = append(filtered, e)
			}
		}
		if len(filtered) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No %s creatures in the garden.\n", species)
			return nil
		}
		entries = filtered
	}

	selectedID := ""
	if selected, ok := a.roster.Selected(); ok {
		selectedID = selected.ID
	}
	return printTable(cmd.OutOrStdout(), entries, selectedID)
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}

	selected, hasSelected := a.roster.Selected()
	var entry *creature.Entry
	if len(args) == 0 {
		if !hasSelected {
			return errors.NotFound("the roster is empty")
		}
		entry = selected
	} else {
		entry, err = resolveCreature(a.roster, args[0])
		if err != nil {
			return err
		}
	}

	printEntry(cmd.OutOrStdout(), entry, hasSelected && selected.ID == entry.ID)
	return nil
}

func runSelect(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	entry, err := resolveCreature(a.roster, args[0])
	if err != nil {
		return err
	}

	if err := a.roster.Select(cmd.Context(), entry.ID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is ready for battle\n", entry.DisplayName)
	return nil
}

func runRename(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	entry, err := resolveCreature(a.roster, args[0])
	if err != nil {
		return err
	}

	renamed, err := a.roster.Rename(cmd.Context(), entry.ID, args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is now called %s\n", entry.DisplayName, renamed.DisplayName)
	return nil
}

func runRelease(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	entry, err := resolveCreature(a.roster, args[0])
	if err != nil {
		return err
	}
	if !confirmRelease {
		return errors.FailedPrecondition("releasing is permanent, pass --yes to confirm").
			WithMeta("creature_id", entry.ID)
	}

	if _, err := a.roster.Remove(cmd.Context(), entry.ID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s was released\n", entry.DisplayName)
	return nil
}
