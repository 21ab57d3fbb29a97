package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette colors (ANSI 256).
const (
	ColorHeader    = lipgloss.Color("39")
	ColorPinned    = lipgloss.Color("252")
	ColorPinnedBg  = lipgloss.Color("236")
	ColorSelected  = lipgloss.Color("229")
	ColorSelectBg  = lipgloss.Color("57")
	ColorMuted     = lipgloss.Color("240")
	ColorHighlight = lipgloss.Color("205")
	ColorLightBg   = lipgloss.Color("254")
	ColorLightText = lipgloss.Color("235")
)

// ErrUnknownTheme is returned by ThemeByName for unregistered names.
var ErrUnknownTheme = errors.New("unknown theme")

// Theme maps painter styles to lipgloss styles.
type Theme struct {
	Name   string
	styles [styleCount]lipgloss.Style
}

// Style returns the lipgloss style for id.
func (t Theme) Style(id StyleID) lipgloss.Style {
	if int(id) >= len(t.styles) {
		return lipgloss.NewStyle()
	}
	return t.styles[id]
}

// With returns a copy of t with id restyled.
func (t Theme) With(id StyleID, s lipgloss.Style) Theme {
	if int(id) < len(t.styles) {
		t.styles[id] = s
	}
	return t
}

func plainStyles() [styleCount]lipgloss.Style {
	var s [styleCount]lipgloss.Style
	for i := range s {
		s[i] = lipgloss.NewStyle()
	}
	return s
}

// PlainTheme renders without any styling.
func PlainTheme() Theme {
	return Theme{Name: "plain", styles: plainStyles()}
}

// DarkTheme is the default theme.
func DarkTheme() Theme {
	s := plainStyles()
	s[StyleHeader] = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	s[StylePinned] = lipgloss.NewStyle().Foreground(ColorPinned).Background(ColorPinnedBg)
	s[StylePinnedHeader] = lipgloss.NewStyle().Foreground(ColorHeader).Background(ColorPinnedBg).Bold(true)
	s[StyleSelected] = lipgloss.NewStyle().Foreground(ColorSelected).Background(ColorSelectBg)
	s[StyleScrollTrack] = lipgloss.NewStyle().Foreground(ColorMuted)
	s[StyleScrollThumb] = lipgloss.NewStyle().Foreground(ColorHighlight)
	s[StyleStatus] = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	return Theme{Name: "dark", styles: s}
}

// LightTheme suits light terminal backgrounds.
func LightTheme() Theme {
	s := plainStyles()
	s[StyleHeader] = lipgloss.NewStyle().Foreground(ColorSelectBg).Bold(true)
	s[StylePinned] = lipgloss.NewStyle().Foreground(ColorLightText).Background(ColorLightBg)
	s[StylePinnedHeader] = lipgloss.NewStyle().Foreground(ColorSelectBg).Background(ColorLightBg).Bold(true)
	s[StyleSelected] = lipgloss.NewStyle().Reverse(true)
	s[StyleScrollTrack] = lipgloss.NewStyle().Foreground(ColorMuted)
	s[StyleScrollThumb] = lipgloss.NewStyle().Foreground(ColorSelectBg)
	s[StyleStatus] = lipgloss.NewStyle().Foreground(ColorMuted)
	return Theme{Name: "light", styles: s}
}

//nolint:gochecknoglobals // Registry of built-in themes.
var themes = map[string]func() Theme{
	"dark":  DarkTheme,
	"light": LightTheme,
	"plain": PlainTheme,
}

// ThemeNames lists the built-in theme names, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme. The empty name selects the dark theme.
func ThemeByName(name string) (Theme, error) {
	if name == "" {
		return DarkTheme(), nil
	}
	fn, ok := themes[strings.ToLower(name)]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownTheme, name, strings.Join(ThemeNames(), ", "))
	}
	return fn(), nil
}
