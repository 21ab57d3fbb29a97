package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/vtable/internal/viewport"
)

func TestCanvas_TextPadsAndTruncates(t *testing.T) {
	c := NewCanvas(8, 2)

	c.Text(0, 0, 8, "abc", StyleHeader)
	assert.Equal(t, "abc     ", c.PlainLine(0))
	_, style := c.Cell(5, 0)
	assert.Equal(t, StyleHeader, style)

	c.Text(0, 1, 6, "abcdefghij", StyleBody)
	line := c.PlainLine(1)
	assert.True(t, strings.HasPrefix(line, "abcde"), line)
	assert.Contains(t, line, ellipsis)
	assert.NotContains(t, line, "f")
}

func TestCanvas_ClipsNegativeOrigin(t *testing.T) {
	c := NewCanvas(6, 1)
	c.Text(-2, 0, 5, "hello", StyleBody)
	assert.Equal(t, "llo   ", c.PlainLine(0))

	c.Text(0, 5, 3, "zzz", StyleBody)
	assert.Equal(t, "llo   ", c.Plain(), "rows outside the canvas are dropped")
}

func TestCanvas_StripsEscapes(t *testing.T) {
	c := NewCanvas(6, 2)
	c.Text(0, 0, 6, "\x1b[31mred\x1b[0m", StyleBody)
	c.Text(0, 1, 6, "a\tb", StyleBody)

	assert.Equal(t, "red   ", c.PlainLine(0))
	assert.Equal(t, "a b   ", c.PlainLine(1))
}

// TestCanvas_WideRunes verifies double-width runes occupy two cells and are
// blanked when cut in half.
func TestCanvas_WideRunes(t *testing.T) {
	c := NewCanvas(6, 1)
	c.Text(0, 0, 6, "日本語", StyleBody)
	assert.Equal(t, "日本語", c.PlainLine(0))
	r, _ := c.Cell(1, 0)
	assert.Equal(t, continuation, r)

	c.Text(1, 0, 1, "x", StyleBody)
	assert.Equal(t, " x本語", c.PlainLine(0))

	clipped := NewCanvas(6, 1)
	clipped.SetClip(viewport.Rect{X: 1, Width: 5, Height: 1})
	clipped.Text(0, 0, 4, "日本", StyleBody)
	assert.Equal(t, "  本  ", clipped.PlainLine(0))
}

func TestCanvas_FillRespectsClip(t *testing.T) {
	c := NewCanvas(4, 2)
	c.SetClip(viewport.Rect{X: 1, Y: 1, Width: 2, Height: 1})
	c.Fill(viewport.Rect{Width: 4, Height: 2}, '#', StylePinned)
	c.ResetClip()

	assert.Equal(t, "    \n ## ", c.Plain())
}

func TestCanvas_RenderMatchesPlain(t *testing.T) {
	c := NewCanvas(10, 2)
	c.Text(0, 0, 5, "head", StyleHeader)
	c.Text(5, 0, 5, "pin", StylePinned)
	c.Text(0, 1, 10, "body 日本", StyleSelected)

	for _, theme := range []Theme{PlainTheme(), DarkTheme(), LightTheme()} {
		out := c.Render(theme)
		assert.Equal(t, c.Plain(), ansi.Strip(out), theme.Name)
	}
}

func TestThemeByName(t *testing.T) {
	dark, err := ThemeByName("")
	require.NoError(t, err)
	assert.Equal(t, "dark", dark.Name)

	light, err := ThemeByName("LIGHT")
	require.NoError(t, err)
	assert.Equal(t, "light", light.Name)

	_, err = ThemeByName("neon")
	require.ErrorIs(t, err, ErrUnknownTheme)
	assert.Contains(t, err.Error(), "dark, light, plain")

	assert.Equal(t, []string{"dark", "light", "plain"}, ThemeNames())
}
