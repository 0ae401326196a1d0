package model

// Theme is a display theme key for a session
type Theme string

const (
	ThemeNeonStudio   Theme = "neon-studio"
	ThemeSunsetArcade Theme = "sunset-arcade"
	ThemeClassicNight Theme = "classic-night"

	DefaultTheme = ThemeNeonStudio
)

// Themes maps theme keys to display names
var Themes = map[Theme]string{
	ThemeNeonStudio:   "Neon Studio",
	ThemeSunsetArcade: "Sunset Arcade",
	ThemeClassicNight: "Classic Night",
}

// Valid reports whether the theme is a known key
func (t Theme) Valid() bool {
	_, ok := Themes[t]
	return ok
}
