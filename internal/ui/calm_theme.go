package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// CalmTheme is a soft, low-contrast palette with roomy touch targets
type CalmTheme struct{}

// NewCalmTheme creates a new calm theme
func NewCalmTheme() fyne.Theme {
	return &CalmTheme{}
}

// Color returns theme colors
func (t *CalmTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameSuccess:
		return color.RGBA{R: 102, G: 187, B: 106, A: 255} // Soft green
	case theme.ColorNameError:
		return color.RGBA{R: 229, G: 115, B: 115, A: 255} // Muted red
	case theme.ColorNameWarning:
		return color.RGBA{R: 255, G: 213, B: 79, A: 255} // Warm yellow
	case theme.ColorNamePrimary:
		return color.RGBA{R: 79, G: 155, B: 201, A: 255} // Calm blue
	case theme.ColorNameBackground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 28, G: 36, B: 44, A: 255}
		}
		return color.RGBA{R: 244, G: 248, B: 251, A: 255}
	case theme.ColorNameForeground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 236, G: 240, B: 243, A: 255}
		}
		return color.RGBA{R: 45, G: 55, B: 72, A: 255}
	}

	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *CalmTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *CalmTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes; text and padding are larger than default for
// young readers
func (t *CalmTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 6
	case theme.SizeNameInnerPadding:
		return 10
	case theme.SizeNameText:
		return 16
	case theme.SizeNameHeadingText:
		return 24
	case theme.SizeNameSubHeadingText:
		return 19
	case theme.SizeNameCaptionText:
		return 12
	case theme.SizeNameInputRadius:
		return 10
	case theme.SizeNameSelectionRadius:
		return 8
	}

	return theme.DefaultTheme().Size(name)
}
