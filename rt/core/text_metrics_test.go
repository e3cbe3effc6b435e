package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFontMeasurer(t *testing.T) {
	m, err := NewFontMeasurer(nil, 14)
	require.NoError(t, err)

	assert.Greater(t, m.LineHeight(), float32(0))
	assert.Greater(t, m.Ascent(), float32(0))
	assert.Equal(t, float32(0), m.MeasureText(""))

	// monospace: width grows linearly with rune count
	one := m.MeasureText("a")
	assert.Greater(t, one, float32(0))
	assert.InDelta(t, one*4, m.MeasureText("abcd"), 0.01)
}

func TestFontMeasurerBadData(t *testing.T) {
	_, err := NewFontMeasurer([]byte("not a font"), 14)
	assert.Error(t, err)

	var m *FontMeasurer
	assert.Equal(t, float32(0), m.MeasureText("x"))
}
