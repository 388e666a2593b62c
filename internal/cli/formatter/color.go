package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/itinerary/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Rose palette shared with the web stylesheet.
var (
	ColorAccent = lipgloss.Color("#f472b6")
	ColorSoft   = lipgloss.Color("#ffd6e7")
	ColorGreen  = lipgloss.Color("#22c55e")
	ColorYellow = lipgloss.Color("#d97706")
	ColorRed    = lipgloss.Color("#dc2626")
	ColorBlue   = lipgloss.Color("#2563eb")
	ColorDim    = lipgloss.Color("#9ca3af")
	ColorFg     = lipgloss.Color("#f9fafb")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PriorityColor returns the style for a plan priority.
func PriorityColor(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return StyleRed
	case domain.PriorityMedium:
		return StyleYellow
	case domain.PriorityLow:
		return StyleBlue
	default:
		return StyleDim
	}
}

// PriorityPill renders a priority such as "● High", or a dim dash.
func PriorityPill(p domain.Priority) string {
	if p == domain.PriorityNone {
		return StyleDim.Render("--")
	}
	return PriorityColor(p).Render("● " + string(p))
}

// CategoryBadge renders the category name in its configured color.
func CategoryBadge(c domain.Category, style domain.CategoryStyle) string {
	label := string(c)
	if style.Icon != "" {
		label = style.Icon + " " + label
	}
	if style.Color == "" {
		return label
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(style.Color)).Render(label)
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
