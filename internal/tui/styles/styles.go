package styles

import "github.com/charmbracelet/lipgloss"

// Oxocarbon palette, base16 oxocarbon-dark
var (
	OxocarbonBase00 = lipgloss.Color("#262626") // UI elements
	OxocarbonBase01 = lipgloss.Color("#393939") // borders
	OxocarbonBase02 = lipgloss.Color("#525252")
	OxocarbonBase03 = lipgloss.Color("#767676") // muted
	OxocarbonBase04 = lipgloss.Color("#dde1e6")
	OxocarbonBase05 = lipgloss.Color("#f2f4f8") // primary foreground
	OxocarbonWhite  = lipgloss.Color("#ffffff")

	OxocarbonBlue   = lipgloss.Color("#78a9ff")
	OxocarbonPink   = lipgloss.Color("#ee5396")
	OxocarbonRed    = lipgloss.Color("#ff5252")
	OxocarbonCyan   = lipgloss.Color("#33b1ff")
	OxocarbonGreen  = lipgloss.Color("#42be65")
	OxocarbonPurple = lipgloss.Color("#be95ff") // main accent
	OxocarbonMauve  = lipgloss.Color("#d1aaff")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(OxocarbonWhite).
			Background(OxocarbonPurple).
			Padding(0, 1).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(OxocarbonMauve).
			Bold(true)

	// Search box, thick purple left border when focused
	InputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(OxocarbonBase02).
			BorderLeft(true).
			PaddingLeft(2).
			MarginLeft(3)

	InputFocusedStyle = InputStyle.
				BorderStyle(lipgloss.ThickBorder()).
				BorderForeground(OxocarbonPurple)

	// One result entry
	ItemStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(OxocarbonBase02).
			BorderLeft(true).
			PaddingLeft(2).
			MarginLeft(3)

	ItemSelectedStyle = ItemStyle.
				BorderStyle(lipgloss.ThickBorder()).
				BorderForeground(OxocarbonPurple)

	ItemTitleStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase05).
			Bold(true)

	ItemSelectedTitleStyle = lipgloss.NewStyle().
				Foreground(OxocarbonPurple).
				Bold(true)

	MetadataStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase04)

	URLStyle = lipgloss.NewStyle().
			Foreground(OxocarbonCyan).
			Italic(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase03).
			MarginTop(1)

	// Pill shaped toggles for search type and translation
	BadgeStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase04).
			Background(OxocarbonBase01).
			Padding(0, 1).
			MarginRight(1)

	BadgeActiveStyle = lipgloss.NewStyle().
				Foreground(OxocarbonWhite).
				Background(OxocarbonPurple).
				Padding(0, 1).
				MarginRight(1).
				Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(OxocarbonRed).
			Bold(true).
			MarginLeft(3)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(OxocarbonPurple)

	PageControlStyle = lipgloss.NewStyle().
				Foreground(OxocarbonBase05).
				MarginLeft(3)

	PageArrowStyle = lipgloss.NewStyle().
			Foreground(OxocarbonPurple).
			Bold(true)

	PageArrowDisabledStyle = lipgloss.NewStyle().
				Foreground(OxocarbonBase02)

	FooterStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase05).
			Background(OxocarbonBase01).
			Padding(0, 1)

	EpisodeCountStyle = lipgloss.NewStyle().
				Foreground(OxocarbonGreen)
)

// Badge renders a toggle option, highlighted when active
func Badge(label string, active bool) string {
	if active {
		return BadgeActiveStyle.Render(label)
	}
	return BadgeStyle.Render(label)
}
