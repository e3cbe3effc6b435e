// Package ggcanvas rasterizes the debug overlay in software with gogpu/gg.
package ggcanvas

import (
	"fmt"
	"image"

	"github.com/gekko3d/debugdraw"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gomono"
)

// Canvas implements debugdraw.Canvas on top of a gg.Context.
type Canvas struct {
	dc     *gg.Context
	face   text.Face
	ascent float32
	lineH  float32
}

// New creates a width x height canvas using the given font data at size
// points. A nil font selects Go Mono.
func New(width, height int, ttf []byte, size float64) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	if ttf == nil {
		ttf = gomono.TTF
	}
	src, err := text.NewFontSource(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to load overlay font: %w", err)
	}
	face := src.Face(size)
	dc := gg.NewContext(width, height)
	dc.SetFont(face)

	m := face.Metrics()
	return &Canvas{
		dc:     dc,
		face:   face,
		ascent: float32(m.Ascent),
		lineH:  float32(m.LineHeight()),
	}, nil
}

// Context exposes the underlying gg context.
func (c *Canvas) Context() *gg.Context { return c.dc }

// Resize reallocates the backing pixmap when the size changed.
func (c *Canvas) Resize(width, height int) error {
	if err := c.dc.Resize(width, height); err != nil {
		return fmt.Errorf("failed to resize overlay canvas: %w", err)
	}
	return nil
}

// Clear makes the whole canvas transparent. Call before Overlay.Draw.
func (c *Canvas) Clear() { c.dc.Clear() }

// Image returns the rasterized overlay as RGBA.
func (c *Canvas) Image() *image.RGBA {
	img := c.dc.Image()
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.Set(x, y, img.At(x, y))
		}
	}
	return out
}

func (c *Canvas) Close() error { return c.dc.Close() }

func (c *Canvas) setColor(col debugdraw.Color) {
	c.dc.SetRGBA(float64(col[0]), float64(col[1]), float64(col[2]), float64(col[3]))
}

func (c *Canvas) Size() (float32, float32) {
	return float32(c.dc.Width()), float32(c.dc.Height())
}

func (c *Canvas) MeasureText(s string) float32 {
	w, _ := c.dc.MeasureString(s)
	return float32(w)
}

func (c *Canvas) LineHeight() float32 { return c.lineH }

func (c *Canvas) FillRect(x, y, w, h float32, col debugdraw.Color) {
	c.setColor(col)
	c.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	_ = c.dc.Fill()
}

func (c *Canvas) StrokeRect(x, y, w, h float32, col debugdraw.Color) {
	c.setColor(col)
	c.dc.SetLineWidth(1)
	// half pixel inset keeps the 1px border inside the rect
	c.dc.DrawRectangle(float64(x)+0.5, float64(y)+0.5, float64(w)-1, float64(h)-1)
	_ = c.dc.Stroke()
}

func (c *Canvas) DrawLine(x1, y1, x2, y2, width float32, col debugdraw.Color) {
	c.setColor(col)
	c.dc.SetLineWidth(float64(max(width, 1)))
	c.dc.DrawLine(float64(x1), float64(y1), float64(x2), float64(y2))
	_ = c.dc.Stroke()
}

// DrawText takes the top of the line; gg draws on the baseline.
func (c *Canvas) DrawText(s string, x, y float32, col debugdraw.Color) {
	c.setColor(col)
	c.dc.DrawString(s, float64(x), float64(y+c.ascent))
}

var _ debugdraw.Canvas = (*Canvas)(nil)
