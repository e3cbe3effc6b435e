package core

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
)

// FontMeasurer measures overlay text without a GPU or raster target.
type FontMeasurer struct {
	face font.Face
}

// NewFontMeasurer parses the given TTF/OTF data at fontSize points (72 DPI).
// A nil font uses the embedded Go Mono face.
func NewFontMeasurer(ttf []byte, fontSize float64) (*FontMeasurer, error) {
	if ttf == nil {
		ttf = gomono.TTF
	}
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face: %w", err)
	}
	return &FontMeasurer{face: face}, nil
}

// MeasureText returns the advance width of a single line.
func (m *FontMeasurer) MeasureText(text string) float32 {
	if m == nil {
		return 0
	}
	return float32(font.MeasureString(m.face, text)) / 64.0
}

func (m *FontMeasurer) LineHeight() float32 {
	if m == nil {
		return 0
	}
	return float32(m.face.Metrics().Height.Ceil())
}

// Ascent is the baseline offset from the top of a line.
func (m *FontMeasurer) Ascent() float32 {
	if m == nil {
		return 0
	}
	return float32(m.face.Metrics().Ascent.Ceil())
}
