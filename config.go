package debugdraw

import (
	"fmt"
	"time"
)

// Color is linear RGBA in 0..1, laid out the way the GPU instance buffer expects.
type Color [4]float32

func RGBA(r, g, b, a float32) Color { return Color{r, g, b, a} }

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

var (
	ColorWhite  = Color{1, 1, 1, 1}
	ColorBlack  = Color{0, 0, 0, 1}
	ColorRed    = Color{1, 0, 0, 1}
	ColorGreen  = Color{0, 1, 0, 1}
	ColorBlue   = Color{0, 0, 1, 1}
	ColorYellow = Color{1, 1, 0, 1}
	ColorCyan   = Color{0, 1, 1, 1}
	ColorOrange = Color{1, 0.5, 0, 1}
)

// Anchor is the screen corner a 2D block grows from.
type Anchor int

const (
	AnchorLeftTop Anchor = iota
	AnchorRightTop
	AnchorLeftBottom
	AnchorRightBottom
)

var anchorNames = map[Anchor]string{
	AnchorLeftTop:     "left_top",
	AnchorRightTop:    "right_top",
	AnchorLeftBottom:  "left_bottom",
	AnchorRightBottom: "right_bottom",
}

func (a Anchor) String() string {
	if s, ok := anchorNames[a]; ok {
		return s
	}
	return "unknown"
}

func (a Anchor) IsRight() bool  { return a == AnchorRightTop || a == AnchorRightBottom }
func (a Anchor) IsBottom() bool { return a == AnchorLeftBottom || a == AnchorRightBottom }

func (a Anchor) MarshalText() ([]byte, error) {
	s, ok := anchorNames[a]
	if !ok {
		return nil, fmt.Errorf("invalid anchor %d", int(a))
	}
	return []byte(s), nil
}

func (a *Anchor) UnmarshalText(b []byte) error {
	for k, v := range anchorNames {
		if v == string(b) {
			*a = k
			return nil
		}
	}
	return fmt.Errorf("unknown anchor %q", string(b))
}

// Duration is a time.Duration stored as "250ms" style text in config files.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(b), err)
	}
	d.Duration = v
	return nil
}

// GraphTextFlags selects the annotations drawn next to the FPS graph.
type GraphTextFlags uint8

const (
	GraphTextCurrent GraphTextFlags = 1 << iota
	GraphTextAvg
	GraphTextMax
	GraphTextMin

	GraphTextAll = GraphTextCurrent | GraphTextAvg | GraphTextMax | GraphTextMin
)

type TextConfig struct {
	Anchor          Anchor     `toml:"anchor"`
	Offset          [2]float32 `toml:"offset"`
	Padding         [2]float32 `toml:"padding"`
	DefaultDuration Duration   `toml:"default_duration"`
	ForegroundColor Color      `toml:"foreground_color"`
	BackgroundColor Color      `toml:"background_color"`
	FontSize        float64    `toml:"font_size"`
}

type GraphConfig struct {
	Enabled bool   `toml:"enabled"`
	Anchor  Anchor `toml:"anchor"`
	// Size[0] is both the width in pixels and the number of retained samples.
	Size            [2]int         `toml:"size"`
	Offset          [2]float32     `toml:"offset"`
	FrameTimeMode   bool           `toml:"frame_time_mode"`
	CenteredLine    bool           `toml:"centered_line"`
	TextFlags       GraphTextFlags `toml:"text_flags"`
	LineWidth       float32        `toml:"line_width"`
	BackgroundColor Color          `toml:"background_color"`
	BorderColor     Color          `toml:"border_color"`
	LineColor       Color          `toml:"line_color"`
	TextColor       Color          `toml:"text_color"`
}

// Palette holds default colors used when a submission carries none.
type Palette struct {
	Line         Color `toml:"line"`
	Path         Color `toml:"path"`
	Arrow        Color `toml:"arrow"`
	Box          Color `toml:"box"`
	Sphere       Color `toml:"sphere"`
	Cylinder     Color `toml:"cylinder"`
	Position     Color `toml:"position"`
	Point        Color `toml:"point"`
	Frustum      Color `toml:"frustum"`
	Grid         Color `toml:"grid"`
	LineHit      Color `toml:"line_hit"`
	LineAfterHit Color `toml:"line_after_hit"`
	AxisX        Color `toml:"axis_x"`
	AxisY        Color `toml:"axis_y"`
	AxisZ        Color `toml:"axis_z"`
}

type Config struct {
	Enabled        bool `toml:"enabled"`
	FrustumCulling bool `toml:"frustum_culling"`
	// Freeze3D keeps the last built batches on screen while primitives keep expiring.
	Freeze3D bool `toml:"freeze_3d"`
	// ForceCameraFromScene makes the Driver ignore the viewport camera.
	ForceCameraFromScene bool `toml:"force_camera_from_scene"`
	ShowStats            bool `toml:"show_stats"`

	ArrowHeadSize     float32 `toml:"arrow_head_size"`
	LineHitMarkerSize float32 `toml:"line_hit_marker_size"`
	PointSize         float32 `toml:"point_size"`

	Text    TextConfig  `toml:"text"`
	Graph   GraphConfig `toml:"graph"`
	Palette Palette     `toml:"palette"`
}

func DefaultConfig() Config {
	return Config{
		Enabled:           true,
		FrustumCulling:    true,
		ArrowHeadSize:     0.25,
		LineHitMarkerSize: 0.15,
		PointSize:         0.1,
		Text: TextConfig{
			Anchor:          AnchorLeftTop,
			Offset:          [2]float32{8, 8},
			Padding:         [2]float32{2, 1},
			DefaultDuration: Duration{500 * time.Millisecond},
			ForegroundColor: ColorWhite,
			BackgroundColor: Color{0.2, 0.2, 0.2, 0.75},
			FontSize:        12,
		},
		Graph: GraphConfig{
			Enabled:         false,
			Anchor:          AnchorRightTop,
			Size:            [2]int{150, 40},
			Offset:          [2]float32{8, 8},
			FrameTimeMode:   true,
			CenteredLine:    true,
			TextFlags:       GraphTextAll,
			LineWidth:       1,
			BackgroundColor: Color{0.2, 0.2, 0.2, 0.6},
			BorderColor:     Color{0, 0, 0, 1},
			LineColor:       ColorOrange,
			TextColor:       ColorWhite,
		},
		Palette: Palette{
			Line:         ColorCyan,
			Path:         ColorCyan,
			Arrow:        ColorYellow,
			Box:          ColorGreen,
			Sphere:       Color{0.2, 0.6, 1, 1},
			Cylinder:     Color{0.8, 0.4, 1, 1},
			Position:     ColorOrange,
			Point:        ColorRed,
			Frustum:      Color{1, 0.3, 0.3, 1},
			Grid:         Color{0.5, 0.5, 0.5, 1},
			LineHit:      ColorRed,
			LineAfterHit: ColorGreen,
			AxisX:        ColorRed,
			AxisY:        ColorGreen,
			AxisZ:        ColorBlue,
		},
	}
}
