package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/unklstewy/flyby/pkg/geoloc"
	"github.com/unklstewy/flyby/pkg/opensky"
	"github.com/unklstewy/flyby/pkg/report"
)

// listHeight is how many aircraft the list shows before scrolling.
const listHeight = 10

// tuiModel browses a single snapshot. It never re-polls the API; the
// snapshot on screen is exactly what the run fetched (or read from cache).
type tuiModel struct {
	rows     []report.Row
	loc      geoloc.Location
	radiusKm float64
	taken    time.Time
	selected int
}

func newTUIModel(snap *opensky.Snapshot, loc geoloc.Location, radiusKm float64) tuiModel {
	return tuiModel{
		rows:     report.BuildRows(snap, loc.Coordinate),
		loc:      loc,
		radiusKm: radiusKm,
		taken:    snap.Time.UTC(),
	}
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(m.rows)-1 {
				m.selected++
			}
		case "home", "g":
			m.selected = 0
		case "end", "G":
			if len(m.rows) > 0 {
				m.selected = len(m.rows) - 1
			}
		}
	}
	return m, nil
}

func (m tuiModel) View() string {
	var s strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)
	metaStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	s.WriteString(titleStyle.Render("FLYBY SNAPSHOT"))
	s.WriteString("\n\n")
	s.WriteString(metaStyle.Render(fmt.Sprintf("%s (%s)  radius %.1f km", m.loc.Coordinate, m.loc.Method, m.radiusKm)))
	s.WriteString("\n")
	s.WriteString(metaStyle.Render("Snapshot " + m.taken.Format("2006-01-02 15:04:05 MST")))
	s.WriteString("\n\n")

	s.WriteString(headerStyle.Render("Aircraft:"))
	s.WriteString(fmt.Sprintf(" (%d)\n\n", len(m.rows)))

	if len(m.rows) == 0 {
		s.WriteString(dimStyle.Render("  No aircraft detected in the search area"))
		s.WriteString("\n\n")
		s.WriteString(dimStyle.Render("Q: Quit"))
		return s.String()
	}

	// Keep the selection visible inside a fixed-height window.
	start := 0
	if m.selected > listHeight/2 && len(m.rows) > listHeight {
		start = m.selected - listHeight/2
	}
	end := start + listHeight
	if end > len(m.rows) {
		end = len(m.rows)
		if end-listHeight > 0 {
			start = end - listHeight
		} else {
			start = 0
		}
	}

	for i := start; i < end; i++ {
		r := m.rows[i]

		prefix := "  "
		if i == m.selected {
			prefix = "→ "
		}

		marker := ""
		if r.Ground {
			marker = " [GND]"
		}

		line := fmt.Sprintf("%s%-9s %-20s %8s %8s %12s%s",
			prefix, r.Label, r.Country, r.Altitude, r.Speed, r.Distance, marker)

		if i == m.selected {
			line = lipgloss.NewStyle().
				Background(lipgloss.Color("237")).
				Render(line)
		}

		s.WriteString(line)
		s.WriteString("\n")
	}

	// Detail pane for the selected aircraft.
	r := m.rows[m.selected]
	detailStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	s.WriteString("\n")
	s.WriteString(detailStyle.Render(fmt.Sprintf("  %s (%s)  %s", r.Label, r.ICAO24, r.Country)))
	s.WriteString("\n")
	s.WriteString(detailStyle.Render(fmt.Sprintf("  Altitude: %s  Speed: %s  Track: %s", r.Altitude, r.Speed, r.Track)))
	s.WriteString("\n")
	detail := fmt.Sprintf("  Climb: %s  Status: %s", r.Climb, r.Status)
	if r.Distance != "" {
		detail += fmt.Sprintf("  Distance: %s", r.Distance)
	}
	s.WriteString(detailStyle.Render(detail))
	s.WriteString("\n\n")

	s.WriteString(dimStyle.Render("↑/↓: Select  G: End  Q: Quit"))
	s.WriteString("\n")

	return s.String()
}

// runTUI blocks until the user quits the snapshot browser.
func runTUI(snap *opensky.Snapshot, loc geoloc.Location, radiusKm float64) error {
	p := tea.NewProgram(newTUIModel(snap, loc, radiusKm), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
