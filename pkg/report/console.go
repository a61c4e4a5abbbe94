package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/unklstewy/flyby/pkg/geoloc"
	"github.com/unklstewy/flyby/pkg/opensky"
)

// Console writes a styled plain-terminal report to w. Rendering never
// fails; a snapshot with zero aircraft still produces a full report.
func Console(w io.Writer, snap *opensky.Snapshot, loc geoloc.Location, radiusKm float64) {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	metaStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	craftStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	fieldStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	groundStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	countStyle := lipgloss.NewStyle().Bold(true)

	fmt.Fprintln(w, titleStyle.Render("✈ Aircraft overhead"))
	fmt.Fprintln(w, metaStyle.Render("  "+headline(loc, radiusKm)))
	fmt.Fprintln(w, metaStyle.Render("  Snapshot "+snap.Time.UTC().Format("2006-01-02 15:04:05 MST")))
	fmt.Fprintln(w)

	rows := BuildRows(snap, loc.Coordinate)
	for _, r := range rows {
		label := craftStyle.Render(r.Label)
		if r.Ground {
			label += " " + groundStyle.Render("[on ground]")
		}
		fmt.Fprintf(w, "  %s  %s\n", label, metaStyle.Render(r.ICAO24+"  "+r.Country))
		fmt.Fprintf(w, "    %s %s   %s %s   %s %s\n",
			fieldStyle.Render("Altitude:"), r.Altitude,
			fieldStyle.Render("Speed:"), r.Speed,
			fieldStyle.Render("Track:"), r.Track)
		line := fmt.Sprintf("    %s %s", fieldStyle.Render("Climb:"), r.Climb)
		if r.Distance != "" {
			line += fmt.Sprintf("   %s %s", fieldStyle.Render("Distance:"), r.Distance)
		}
		fmt.Fprintln(w, line)
		fmt.Fprintln(w)
	}

	if len(rows) == 0 {
		fmt.Fprintln(w, emptyStyle.Render("  No aircraft detected in the search area"))
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, countStyle.Render(countLine(len(rows))))
}
