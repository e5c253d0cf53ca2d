package ui

import "charm.land/lipgloss/v2"

type Theme struct {
	Header   lipgloss.Style
	Status   lipgloss.Style
	Border   lipgloss.Border
	Frame    lipgloss.Style
	Title    lipgloss.Style
	Cell     lipgloss.Style
	Blank    lipgloss.Style
	Cursor   lipgloss.Style
	Message  lipgloss.Style
	Latest   lipgloss.Style
	Error    lipgloss.Style
	Overlay  lipgloss.Style
	Progress [3]string
}

func DefaultTheme() Theme {
	return ThemeForVariant("modern_arcade")
}

func ThemeForVariant(variant string) Theme {
	switch variant {
	case "high_contrast":
		return highContrastTheme()
	case "retro_terminal":
		return retroTerminalTheme()
	default:
		return modernArcadeTheme()
	}
}

func modernArcadeTheme() Theme {
	amber := lipgloss.Color("#FFC857")
	brick := lipgloss.Color("#FF6F91")
	ink := lipgloss.Color("#0E1420")
	slate := lipgloss.Color("#1B2740")
	powder := lipgloss.Color("#EAF2FF")
	blue := lipgloss.Color("#5EEBFF")
	border := lipgloss.Color("#4B5F8A")

	return Theme{
		Header: lipgloss.NewStyle().
			Background(slate).
			Foreground(powder).
			Bold(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CAAC6")),
		Border: lipgloss.RoundedBorder(),
		Frame:  lipgloss.NewStyle().Foreground(border),
		Title:  lipgloss.NewStyle().Foreground(blue).Bold(true),
		Cell:   lipgloss.NewStyle().Foreground(powder),
		Blank:  lipgloss.NewStyle().Foreground(border),
		Cursor: lipgloss.NewStyle().
			Background(amber).
			Foreground(ink).
			Bold(true),
		Message: lipgloss.NewStyle().Foreground(powder),
		Latest:  lipgloss.NewStyle().Foreground(blue).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(brick).Bold(true),
		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(blue).
			Background(ink).
			Foreground(powder).
			Padding(1, 2),
		Progress: [3]string{"#5EC2FF", "#79E6A6", "#F2D16B"},
	}
}

func highContrastTheme() Theme {
	white := lipgloss.Color("#FFFFFF")
	black := lipgloss.Color("#000000")
	yellow := lipgloss.Color("#FFFF00")

	return Theme{
		Header:   lipgloss.NewStyle().Background(white).Foreground(black).Bold(true),
		Status:   lipgloss.NewStyle().Foreground(white),
		Border:   lipgloss.ThickBorder(),
		Frame:    lipgloss.NewStyle().Foreground(white),
		Title:    lipgloss.NewStyle().Foreground(yellow).Bold(true),
		Cell:     lipgloss.NewStyle().Foreground(white).Bold(true),
		Blank:    lipgloss.NewStyle().Foreground(white),
		Cursor:   lipgloss.NewStyle().Background(yellow).Foreground(black).Bold(true),
		Message:  lipgloss.NewStyle().Foreground(white),
		Latest:   lipgloss.NewStyle().Foreground(yellow).Bold(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true).Underline(true),
		Overlay:  lipgloss.NewStyle().BorderStyle(lipgloss.ThickBorder()).BorderForeground(yellow).Background(black).Foreground(white).Padding(1, 2),
		Progress: [3]string{"#FFFF00", "#FFFFFF", "#FFFF00"},
	}
}

func retroTerminalTheme() Theme {
	lime := lipgloss.Color("#9CF5A2")
	amber := lipgloss.Color("#E5D47A")
	deep := lipgloss.Color("#07150A")
	forest := lipgloss.Color("#12301A")
	glow := lipgloss.Color("#C5F7C4")

	return Theme{
		Header:   lipgloss.NewStyle().Background(forest).Foreground(glow),
		Status:   lipgloss.NewStyle().Foreground(lime),
		Border:   lipgloss.DoubleBorder(),
		Frame:    lipgloss.NewStyle().Foreground(forest),
		Title:    lipgloss.NewStyle().Foreground(amber).Bold(true),
		Cell:     lipgloss.NewStyle().Foreground(glow),
		Blank:    lipgloss.NewStyle().Foreground(forest),
		Cursor:   lipgloss.NewStyle().Background(lime).Foreground(deep),
		Message:  lipgloss.NewStyle().Foreground(glow),
		Latest:   lipgloss.NewStyle().Foreground(lime).Bold(true),
		Error:    lipgloss.NewStyle().Foreground(amber).Bold(true),
		Overlay:  lipgloss.NewStyle().BorderStyle(lipgloss.DoubleBorder()).BorderForeground(lime).Background(deep).Foreground(glow).Padding(1, 2),
		Progress: [3]string{"#12301A", "#9CF5A2", "#E5D47A"},
	}
}
