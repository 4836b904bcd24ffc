package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/KirkDiggler/doodle-garden/internal/entities/creature"
	"github.com/KirkDiggler/doodle-garden/internal/entities/drawing"
)

func percent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

func healthText(e *creature.Entry) string {
	text := fmt.Sprintf("%d/%d", e.CurrentHealth, e.MaxHealth)
	if e.IsFainted() {
		text += " fainted"
	}
	return text
}

func printGeometry(w io.Writer, g drawing.Geometry) {
	fmt.Fprintf(w, "Strokes:     %d (%s points)\n", g.StrokeCount, humanize.Comma(int64(g.PointCount)))
	fmt.Fprintf(w, "Path length: %.1f\n", g.PathLength)
	fmt.Fprintf(w, "Elongation:  %.2f\n", g.Elongation())
}

func printStats(w io.Writer, s creature.Stats) {
	fmt.Fprintf(w, "Stats:       HP %d  ATK %d  DEF %d\n", s.MaxHealth, s.Attack, s.Defense)
}

// printEntry writes the full creature card
func printEntry(w io.Writer, e *creature.Entry, selected bool) {
	title := e.DisplayName
	if selected {
		title += " (selected)"
	}
	fmt.Fprintf(w, "%s\n%s\n", title, strings.Repeat("-", len(title)))
	fmt.Fprintf(w, "ID:          %s\n", e.ID)
	fmt.Fprintf(w, "Species:     %s\n", e.Species.Title())
	fmt.Fprintf(w, "Element:     %s\n", e.Element)
	fmt.Fprintf(w, "Level:       %d\n", e.Level)
	fmt.Fprintf(w, "Health:      %s\n", healthText(e))
	printStats(w, e.Stats())
	fmt.Fprintf(w, "Battles won: %d\n", e.BattlesWon)
	fmt.Fprintf(w, "Color:       %s\n", e.Color)
	fmt.Fprintf(w, "Confidence:  %s\n", percent(e.Confidence))
	fmt.Fprintf(w, "Acquired:    %s\n", humanize.Time(e.AcquiredAt))
	if len(e.DrawingImage) > 0 {
		fmt.Fprintf(w, "Drawing:     %s snapshot\n", humanize.Bytes(uint64(len(e.DrawingImage))))
	}
	if len(e.GrowthHistory) > 0 {
		fmt.Fprintf(w, "Growth:      %d\n", e.GrowthCount)
		for _, g := range e.GrowthHistory {
			fmt.Fprintf(w, "  %s level %d, score %.1f, x%.2f\n",
				humanize.Time(g.At), g.Level, g.Score, g.Multiplier)
		}
	}
}

// printTable writes one row per creature
func printTable(w io.Writer, entries []*creature.Entry, selectedID string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tNAME\tSPECIES\tELEMENT\tLVL\tHP\tATK\tDEF\tWINS\tACQUIRED")
	for _, e := range entries {
		marker := ""
		if e.ID == selectedID {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\t%d\t%d\t%d\t%s\n",
			marker, e.ID, e.DisplayName, e.Species, e.Element, e.Level,
			healthText(e), e.Attack, e.Defense, e.BattlesWon, humanize.Time(e.AcquiredAt))
	}
	return tw.Flush()
}
