package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Title     = lipgloss.NewStyle().Bold(true)
	TabActive = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7DCE13"))
	Tab       = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
	Header    = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	Footer    = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777"))
	Box       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	Card      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#00115A")).Padding(0, 1)
	Danger    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	Warn      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAF00"))
	Good      = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD7AF"))
	Faint     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C"))
)

var rarityColors = map[string]lipgloss.Color{
	"basic":     "#BBBBBB",
	"common":    "#BBBBBB",
	"uncommon":  "#5FD75F",
	"rare":      "#5F87FF",
	"epic":      "#AF5FFF",
	"legendary": "#FFAF00",
	"mythic":    "#FF5F87",
	"godly":     "#FFFF5F",
	"secret":    "#FFFFFF",
	"exclusive": "#00D7D7",
}

// Rarity colours a rarity label; unknown rarities render faint.
func Rarity(r string) lipgloss.Style {
	if c, ok := rarityColors[strings.ToLower(r)]; ok {
		return lipgloss.NewStyle().Bold(true).Foreground(c)
	}
	return Faint
}
