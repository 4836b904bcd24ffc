package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/doodle-garden/internal/errors"
	"github.com/KirkDiggler/doodle-garden/internal/orchestrators/roster"
	rosterrepo "github.com/KirkDiggler/doodle-garden/internal/repositories/roster"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the stored roster for corruption",
	Long: `Doctor reads the stored roster record and reports anything loading would
have to repair: undecodable data, missing or duplicate ids, out of range
fields and a selection of an unknown creature. With --fix, a corrupt record
is replaced by an empty roster and repairable records are rewritten.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "rewrite the stored roster with repairs applied")
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	w := cmd.OutOrStdout()

	a, err := openStore(ctx)
	if err != nil {
		return err
	}

	out, err := a.repo.Load(ctx, rosterrepo.LoadInput{})
	if err != nil {
		if !errors.IsDataLoss(err) {
			return err
		}
		fmt.Fprintf(w, "✗ Stored roster is corrupt: %v\n", err)
		if !doctorFix {
			return errors.DataLoss("stored roster is corrupt, run doctor --fix to reset it")
		}
		if _, err := a.repo.Save(ctx, rosterrepo.SaveInput{Record: &rosterrepo.Record{}}); err != nil {
			return err
		}
		fmt.Fprintln(w, "Reset to an empty roster")
		return nil
	}

	if !out.Found {
		fmt.Fprintln(w, "No roster stored yet")
		return nil
	}

	issues := roster.Diagnose(out.Record)
	fmt.Fprintf(w, "Checked %d creatures, found %d problems\n", len(out.Record.Plants), len(issues))
	if len(issues) == 0 {
		return nil
	}

	for _, issue := range issues {
		id := issue.CreatureID
		if id == "" {
			id = "(no id)"
		}
		fmt.Fprintf(w, "  - %s: %s\n", id, issue.Problem)
	}

	if !doctorFix {
		return errors.FailedPrecondition("stored roster needs repair, run doctor --fix")
	}

	app, err := openApp(ctx)
	if err != nil {
		return err
	}
	if err := app.roster.Flush(ctx); err != nil {
		return err
	}
	fmt.Fprintln(w, "Repaired")
	return nil
}
