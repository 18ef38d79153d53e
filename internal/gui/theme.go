package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// ConsoleTheme is the dark, couch-readable look of the shell. The variant
// requested by the OS is ignored.
type ConsoleTheme struct{}

func NewConsoleTheme() fyne.Theme {
	return &ConsoleTheme{}
}

func (t *ConsoleTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return color.RGBA{R: 0, G: 0, B: 18, A: 255}

	case theme.ColorNameHeaderBackground, theme.ColorNameMenuBackground, theme.ColorNameOverlayBackground:
		return color.RGBA{R: 12, G: 14, B: 36, A: 255}

	case theme.ColorNameButton, theme.ColorNameInputBackground:
		return color.RGBA{R: 28, G: 32, B: 64, A: 255}

	case theme.ColorNameForeground:
		return color.RGBA{R: 240, G: 242, B: 255, A: 255}

	case theme.ColorNamePrimary:
		return color.RGBA{R: 0, G: 112, B: 209, A: 255}

	case theme.ColorNameHover:
		return color.RGBA{R: 255, G: 255, B: 255, A: 25}

	case theme.ColorNameFocus:
		return t.Color(theme.ColorNamePrimary, theme.VariantDark)

	default:
		return theme.DefaultTheme().Color(name, theme.VariantDark)
	}
}

func (t *ConsoleTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *ConsoleTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size enlarges text and padding for viewing from a distance.
func (t *ConsoleTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 16
	case theme.SizeNamePadding:
		return 6
	default:
		return theme.DefaultTheme().Size(name)
	}
}
