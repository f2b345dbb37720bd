// Package theme maps named color palettes onto the tcell styles panes draw
// with.
package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Theme is a named palette of hex colors.
type Theme struct {
	Name string

	Background string
	Surface    string

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
}

// Styles are the resolved tcell styles for a theme.
type Styles struct {
	Text          tcell.Style
	Muted         tcell.Style
	Accent        tcell.Style
	Title         tcell.Style
	Border        tcell.Style
	BorderFocused tcell.Style
	Cursor        tcell.Style
	Highlight     tcell.Style // overlay for the row under a focused cursor
	Selected      tcell.Style
	Ellipsis      tcell.Style
	Scrollbar     tcell.Style
	Menu          tcell.Style
	MenuFocused   tcell.Style
	MenuDisabled  tcell.Style
	Notification  tcell.Style
	Success       tcell.Style
	Warning       tcell.Style
	Danger        tcell.Style
}

// Styles resolves the palette.
func (t Theme) Styles() Styles {
	base := tcell.StyleDefault.Background(hexToColor(t.Background))
	fg := func(hex string) tcell.Style { return base.Foreground(hexToColor(hex)) }

	return Styles{
		Text:          fg(t.Text),
		Muted:         fg(t.Muted),
		Accent:        fg(t.Accent),
		Title:         fg(t.Accent).Bold(true),
		Border:        fg(t.Border),
		BorderFocused: fg(t.BorderFocus),
		Cursor:        fg(t.Accent).Bold(true),
		Highlight:     tcell.StyleDefault.Reverse(true),
		Selected: tcell.StyleDefault.
			Background(hexToColor(t.SelectionBg)).
			Foreground(hexToColor(t.SelectionText)),
		Ellipsis:     fg(t.Faint),
		Scrollbar:    fg(t.Accent),
		Menu:         fg(t.Text),
		MenuFocused:  fg(t.Accent).Reverse(true),
		MenuDisabled: fg(t.Faint),
		Notification: fg(t.Warning),
		Success:      fg(t.Success).Bold(true),
		Warning:      fg(t.Warning),
		Danger:       fg(t.Danger).Bold(true),
	}
}

func hexToColor(hex string) tcell.Color {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return tcell.ColorDefault
	}
	return tcell.GetColor(hex)
}

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// Get returns a theme by name, falling back to Nightfox.
func Get(name string) Theme {
	if t, ok := themes[strings.TrimSpace(name)]; ok {
		return t
	}
	return nightfoxTheme()
}

// Next returns the next theme name in the cycle.
func Next(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// Names returns available theme names.
func Names() []string {
	return append([]string(nil), themeOrder...)
}

// Plain is a colorless style set that leaves the terminal palette alone.
func Plain() Styles {
	d := tcell.StyleDefault
	return Styles{
		Text:          d,
		Muted:         d.Dim(true),
		Accent:        d,
		Title:         d.Bold(true),
		Border:        d,
		BorderFocused: d.Bold(true),
		Cursor:        d.Bold(true),
		Highlight:     d.Reverse(true),
		Selected:      d.Reverse(true),
		Ellipsis:      d.Dim(true),
		Scrollbar:     d,
		Menu:          d,
		MenuFocused:   d.Reverse(true),
		MenuDisabled:  d.Dim(true),
		Notification:  d,
		Success:       d.Bold(true),
		Warning:       d,
		Danger:        d.Bold(true),
	}
}

func nightfoxTheme() Theme {
	// https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name:          "Nightfox",
		Background:    "#192330",
		Surface:       "#212e3f",
		SelectionBg:   "#2b3b51",
		SelectionText: "#cdcecf",
		Border:        "#39506d",
		BorderFocus:   "#719cd6",
		Text:          "#cdcecf",
		Muted:         "#738091",
		Faint:         "#71839b",
		Accent:        "#719cd6",
		Success:       "#81b29a",
		Warning:       "#dbc074",
		Danger:        "#c94f6d",
	}
}

func kanagawaTheme() Theme {
	// https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name:          "Kanagawa",
		Background:    "#1F1F28",
		Surface:       "#2A2A37",
		SelectionBg:   "#2D4F67",
		SelectionText: "#DCD7BA",
		Border:        "#54546D",
		BorderFocus:   "#7E9CD8",
		Text:          "#DCD7BA",
		Muted:         "#C8C093",
		Faint:         "#727169",
		Accent:        "#7E9CD8",
		Success:       "#98BB6C",
		Warning:       "#E6C384",
		Danger:        "#E46876",
	}
}

func slateTheme() Theme {
	// Tailwind slate/sky
	return Theme{
		Name:          "Slate",
		Background:    "#0f172a",
		Surface:       "#1e293b",
		SelectionBg:   "#0284c7",
		SelectionText: "#f8fafc",
		Border:        "#334155",
		BorderFocus:   "#38bdf8",
		Text:          "#f1f5f9",
		Muted:         "#94a3b8",
		Faint:         "#64748b",
		Accent:        "#38bdf8",
		Success:       "#22c55e",
		Warning:       "#f59e0b",
		Danger:        "#ef4444",
	}
}
