// Package apptheme pins the fyne theme to the stored dark or light choice
// instead of following the desktop preference.
package apptheme

import (
	"image/color"

	"autoclicker/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

type fixedVariant struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

func (fixed fixedVariant) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return fixed.Theme.Color(name, fixed.variant)
}

// For returns the theme for a stored theme name. Unknown names get dark.
func For(name string) fyne.Theme {
	variant := theme.VariantDark
	if name == model.ThemeLight {
		variant = theme.VariantLight
	}
	return fixedVariant{Theme: theme.DefaultTheme(), variant: variant}
}

// Apply switches app to the named theme.
func Apply(app fyne.App, name string) {
	app.Settings().SetTheme(For(name))
}
