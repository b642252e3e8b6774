package terminology

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
)

// WriteReference prints the official Global terminology
func WriteReference(w io.Writer) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, titleStyle.Render("OFFICIAL GLOBAL TERMINOLOGY REFERENCE"))
	fmt.Fprintln(w, rule)

	section(w, "Running Styles",
		"Global Term    | JP Term    | Description",
		"---------------|------------|---------------------------",
		"Front Runner   | Runner     | Leads from start (Nige)",
		"Pace Chaser    | Leader     | Stays near front (Senko)",
		"Late Surger    | Betweener  | Middle of pack (Sashi)",
		"End Closer     | Chaser     | Stays at back (Oikomi)",
	)
	section(w, "Distances",
		"Sprint  - 1000-1400m",
		"Mile    - 1401-1800m",
		"Medium  - 1801-2400m",
		"Long    - 2401m+",
	)
	section(w, "Ground Types",
		"Turf - Grass track",
		"Dirt - Dirt track",
	)
	section(w, "Stats", "Speed, Stamina, Power, Guts, Wit")
	section(w, "Support Card Types", "Speed, Stamina, Power, Guts, Wit, Friend, Group")
	fmt.Fprintln(w)
}

func section(w io.Writer, name string, lines ...string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, sectionStyle.Render("["+name+"]"))
	for _, l := range lines {
		fmt.Fprintln(w, "  "+l)
	}
}
