package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/doodle-garden/internal/classifier"
	"github.com/KirkDiggler/doodle-garden/internal/entities/creature"
	"github.com/KirkDiggler/doodle-garden/internal/orchestrators/growth"
	"github.com/KirkDiggler/doodle-garden/internal/orchestrators/hatchery"
)

var (
	colorFlag   string
	nameFlag    string
	noSnapshot  bool
	previewFlag bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify <drawing>",
	Short: "Show what a drawing would hatch into",
	Args:  cobra.ExactArgs(1),
	RunE:  runClassify,
}

var hatchCmd = &cobra.Command{
	Use:   "hatch <drawing>",
	Short: "Turn a drawing into a new creature",
	Args:  cobra.ExactArgs(1),
	RunE:  runHatch,
}

var growCmd = &cobra.Command{
	Use:   "grow <creature> <drawing>",
	Short: "Grow a creature with a new drawing",
	Long: `Grow scores the drawing and multiplies the creature's stats by the
resulting multiplier. The creature is fully healed and gains a level.`,
	Args: cobra.ExactArgs(2),
	RunE: runGrow,
}

func init() {
	for _, cmd := range []*cobra.Command{classifyCmd, hatchCmd, growCmd} {
		cmd.Flags().StringVar(&colorFlag, "color", "", "override the drawing color (red, green or blue)")
	}
	hatchCmd.Flags().StringVar(&nameFlag, "name", "", "display name; a nickname is rolled when empty")
	hatchCmd.Flags().BoolVar(&noSnapshot, "no-snapshot", false, "do not store a rendered snapshot of the drawing")
	growCmd.Flags().BoolVar(&previewFlag, "preview", false, "show the multiplier without growing")
}

func runClassify(cmd *cobra.Command, args []string) error {
	session, err := readDrawing(args[0], colorFlag, cmd.InOrStdin(), cfg.MaxStrokes)
	if err != nil {
		return err
	}

	cls, err := classifier.New(nil)
	if err != nil {
		return err
	}
	result := cls.Classify(session)

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Species:     %s\n", result.Species.Title())
	fmt.Fprintf(w, "Element:     %s\n", result.Element)
	fmt.Fprintf(w, "Confidence:  %s\n", percent(result.Confidence))
	printStats(w, creature.BaseStats(result.Species, result.Element))
	printGeometry(w, session.Geometry())
	return nil
}

func runHatch(cmd *cobra.Command, args []string) error {
	session, err := readDrawing(args[0], colorFlag, cmd.InOrStdin(), cfg.MaxStrokes)
	if err != nil {
		return err
	}
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}

	input := &hatchery.HatchInput{Session: session, DisplayName: nameFlag}
	if noSnapshot {
		input.DrawingImage = []byte{}
	}
	out, err := a.hatchery.Hatch(cmd.Context(), input)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Hatched a %s %s!\n\n", out.Result.Element, out.Result.Species)
	printEntry(w, out.Entry, out.Entry.ID == a.roster.SelectedID())
	return nil
}

func runGrow(cmd *cobra.Command, args []string) error {
	session, err := readDrawing(args[1], colorFlag, cmd.InOrStdin(), cfg.MaxStrokes)
	if err != nil {
		return err
	}
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	entry, err := resolveCreature(a.roster, args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if previewFlag {
		out, err := a.growth.PreviewGrowth(cmd.Context(), &growth.PreviewGrowthInput{
			Element: entry.Element,
			Session: session,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Score %.1f would grow %s by x%.2f\n", out.Score, entry.DisplayName, out.Multiplier)
		return nil
	}

	out, err := a.growth.ApplyGrowth(cmd.Context(), &growth.ApplyGrowthInput{
		CreatureID: entry.ID,
		Session:    session,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s grew to level %d (score %.1f, x%.2f)\n",
		out.Entry.DisplayName, out.Entry.Level, out.Score, out.Multiplier)
	fmt.Fprintf(w, "HP %d -> %d  ATK %d -> %d  DEF %d -> %d\n",
		out.Previous.MaxHealth, out.Entry.MaxHealth,
		out.Previous.Attack, out.Entry.Attack,
		out.Previous.Defense, out.Entry.Defense)
	return nil
}
