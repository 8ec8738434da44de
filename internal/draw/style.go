package draw

import "github.com/charmbracelet/lipgloss"

// Palette shared by the game client and the CLI reports.
var (
	LabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0f2fe")).Bold(true)
	DangerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171")).Bold(true)
	HintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	TitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#fbbf24")).Bold(true)
	ScoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#facc15"))
	HealthStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80"))
	InputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f8fafc")).Underline(true)
	MatchStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#38bdf8")).Underline(true)
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Underline(true)
)

// HealthBar renders health as a fixed-width bar, turning red when low.
func HealthBar(health, maxHealth, width int) string {
	if maxHealth <= 0 || width <= 0 {
		return ""
	}
	filled := health * width / maxHealth
	filled = min(max(filled, 0), width)
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = BlockFull
		} else {
			bar[i] = '░'
		}
	}
	style := HealthStyle
	if health*10 < maxHealth*3 {
		style = DangerStyle
	}
	return style.Render(string(bar))
}
