package ui

import (
	"bytes"
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestColorConstants(t *testing.T) {
	colors := []lipgloss.Color{
		ColorNeonPink,
		ColorNeonCyan,
		ColorNeonPurple,
		ColorNeonGreen,
		ColorNeonOrange,
		ColorNeonAmber,
		ColorDeepVoid,
		ColorDarkSurface,
		ColorGlassBorder,
		ColorSuccess,
		ColorError,
		ColorWarning,
		ColorInfo,
		ColorPrimary,
		ColorSecondary,
		ColorMuted,
	}

	for _, color := range colors {
		colorStr := string(color)
		assert.True(t, colorStr[0] == '#', "color should start with #: %s", colorStr)
		assert.Len(t, colorStr, 7, "color should be 7 chars (#RRGGBB): %s", colorStr)
	}
}

func TestSemanticColorsAreUnique(t *testing.T) {
	seen := make(map[lipgloss.Color]bool)
	for _, c := range []lipgloss.Color{ColorSuccess, ColorError, ColorWarning, ColorInfo} {
		assert.False(t, seen[c], "duplicate semantic color %s", c)
		seen[c] = true
	}
}

func TestGradientColors(t *testing.T) {
	assert.Len(t, GradientColors, 4)
}

func TestStylesAreFunctional(t *testing.T) {
	styles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Success", SuccessStyle()},
		{"Error", ErrorStyle()},
		{"Warning", WarningStyle()},
		{"Info", InfoStyle()},
		{"Muted", MutedStyle()},
	}

	for _, tt := range styles {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.style.Render("test text"), "test text")
		})
	}
}

func TestSymbolsAreUnique(t *testing.T) {
	symbols := []string{
		SymbolSuccess,
		SymbolFail,
		SymbolPending,
		SymbolProgress,
		SymbolComplete,
		SymbolSkipped,
		SymbolWarning,
	}

	seen := make(map[string]bool)
	for _, s := range symbols {
		assert.False(t, seen[s], "duplicate symbol %s", s)
		seen[s] = true
	}
}

func TestDisableColors(t *testing.T) {
	assert.NotPanics(t, DisableColors)
	assert.Equal(t, "plain", ErrorStyle().Render("plain"))
}

func TestPrintWarning(t *testing.T) {
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	PrintWarning("test warning message")

	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)

	assert.Contains(t, buf.String(), "test warning message")
	assert.Contains(t, buf.String(), SymbolWarning)
}
