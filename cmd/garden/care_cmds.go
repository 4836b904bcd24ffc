package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/doodle-garden/internal/errors"
)

var healAll bool

var healCmd = &cobra.Command{
	Use:   "heal [creature]",
	Short: "Restore a creature, or the whole roster, to full health",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHeal,
}

var damageCmd = &cobra.Command{
	Use:   "damage <creature> <amount>",
	Short: "Apply battle damage to a creature",
	Args:  cobra.ExactArgs(2),
	RunE:  runDamage,
}

var victoryCmd = &cobra.Command{
	Use:   "victory [creature]",
	Short: "Record a battle win, for the selected creature by default",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runVictory,
}

func init() {
	healCmd.Flags().BoolVar(&healAll, "all", false, "heal every creature")
}

func runHeal(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	if healAll {
		if len(args) > 0 {
			return errors.InvalidArgument("use either a creature or --all")
		}
		healed, err := a.roster.HealAll(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Healed %d creatures\n", len(healed))
		return nil
	}

	if len(args) == 0 {
		return errors.InvalidArgument("name a creature or pass --all")
	}
	entry, err := resolveCreature(a.roster, args[0])
	if err != nil {
		return err
	}
	healed, err := a.roster.Heal(cmd.Context(), entry.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s is at %s\n", healed.DisplayName, healthText(healed))
	return nil
}

func runDamage(cmd *cobra.Command, args []string) error {
	amount, err := strconv.Atoi(args[1])
	if err != nil || amount < 0 {
		return errors.InvalidArgumentf("damage must be a non-negative integer, got %q", args[1])
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	entry, err := resolveCreature(a.roster, args[0])
	if err != nil {
		return err
	}

	hurt, err := a.roster.UpdateHealth(cmd.Context(), entry.ID, entry.CurrentHealth-amount)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is at %s\n", hurt.DisplayName, healthText(hurt))
	return nil
}

func runVictory(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}

	id := ""
	if len(args) == 0 {
		selected, ok := a.roster.Selected()
		if !ok {
			return errors.NotFound("the roster is empty")
		}
		id = selected.ID
	} else {
		entry, err := resolveCreature(a.roster, args[0])
		if err != nil {
			return err
		}
		id = entry.ID
	}

	won, err := a.roster.RecordVictory(cmd.Context(), id)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s has won %d battles\n", won.DisplayName, won.BattlesWon)
	return nil
}
