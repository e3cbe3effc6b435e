package ggcanvas

import (
	"testing"
	"time"

	"github.com/gekko3d/debugdraw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvas_FillRect(t *testing.T) {
	c, err := New(64, 32, nil, 12)
	require.NoError(t, err)
	defer c.Close()

	c.Clear()
	c.FillRect(10, 10, 20, 10, debugdraw.ColorRed)
	img := c.Image()

	_, _, _, inside := img.At(20, 15).RGBA()
	_, _, _, outside := img.At(50, 5).RGBA()
	assert.NotZero(t, inside)
	assert.Zero(t, outside)
}

func TestCanvas_Metrics(t *testing.T) {
	c, err := New(64, 32, nil, 12)
	require.NoError(t, err)
	defer c.Close()

	w, h := c.Size()
	assert.Equal(t, float32(64), w)
	assert.Equal(t, float32(32), h)
	assert.Greater(t, c.LineHeight(), float32(0))
	assert.Greater(t, c.MeasureText("abcd"), c.MeasureText("a"))
}

func TestCanvas_InvalidSize(t *testing.T) {
	_, err := New(0, 10, nil, 12)
	assert.Error(t, err)
}

func TestCanvas_DrawsOverlay(t *testing.T) {
	c, err := New(320, 120, nil, 12)
	require.NoError(t, err)
	defer c.Close()

	o := debugdraw.New()
	o.SetText("fps", 60, debugdraw.WithDuration(time.Hour))
	c.Clear()
	o.Draw(c)

	cfg := o.Config().Text
	// top-left pixel of the text background
	x, y := int(cfg.Offset[0])+1, int(cfg.Offset[1])+1
	_, _, _, a := c.Image().At(x, y).RGBA()
	assert.NotZero(t, a)

	require.NoError(t, c.Resize(640, 240))
	w, _ := c.Size()
	assert.Equal(t, float32(640), w)
}
