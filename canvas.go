package debugdraw

// Canvas is the 2D target the overlay redraw writes into. Coordinates are
// pixels with the origin at the top-left, y growing down.
type Canvas interface {
	Size() (w, h float32)
	MeasureText(text string) float32
	LineHeight() float32
	FillRect(x, y, w, h float32, c Color)
	StrokeRect(x, y, w, h float32, c Color)
	DrawLine(x1, y1, x2, y2, width float32, c Color)
	// DrawText draws a single line with its top-left corner at (x, y).
	DrawText(text string, x, y float32, c Color)
}

// Surface3D receives the batches rebuilt by Update. Slices are only valid
// for the duration of the call.
type Surface3D interface {
	UpdateInstances(kind ShapeKind, instances []InstanceData)
	UpdateLines(vertices []LineVertex)
}

// TextMeasurer provides font metrics to a RecordingCanvas.
type TextMeasurer interface {
	MeasureText(text string) float32
	LineHeight() float32
}

type DrawOp int

const (
	OpFillRect DrawOp = iota
	OpStrokeRect
	OpLine
	OpText
)

// DrawCommand is one recorded canvas call.
type DrawCommand struct {
	Op    DrawOp
	X, Y  float32
	W, H  float32 // second point for OpLine
	Width float32
	Text  string
	Color Color
}

// RecordingCanvas keeps draw calls as a command list. Backends that rasterize
// on another thread replay it; tests inspect it.
type RecordingCanvas struct {
	Width, Height float32
	Measurer      TextMeasurer
	// Used when Measurer is nil.
	CharWidth, LineH float32

	Commands []DrawCommand
}

func NewRecordingCanvas(w, h float32, m TextMeasurer) *RecordingCanvas {
	return &RecordingCanvas{Width: w, Height: h, Measurer: m, CharWidth: 7, LineH: 14}
}

func (c *RecordingCanvas) Reset() { c.Commands = c.Commands[:0] }

func (c *RecordingCanvas) Size() (float32, float32) { return c.Width, c.Height }

func (c *RecordingCanvas) MeasureText(text string) float32 {
	if c.Measurer != nil {
		return c.Measurer.MeasureText(text)
	}
	return float32(len([]rune(text))) * c.CharWidth
}

func (c *RecordingCanvas) LineHeight() float32 {
	if c.Measurer != nil {
		return c.Measurer.LineHeight()
	}
	return c.LineH
}

func (c *RecordingCanvas) FillRect(x, y, w, h float32, col Color) {
	c.Commands = append(c.Commands, DrawCommand{Op: OpFillRect, X: x, Y: y, W: w, H: h, Color: col})
}

func (c *RecordingCanvas) StrokeRect(x, y, w, h float32, col Color) {
	c.Commands = append(c.Commands, DrawCommand{Op: OpStrokeRect, X: x, Y: y, W: w, H: h, Color: col})
}

func (c *RecordingCanvas) DrawLine(x1, y1, x2, y2, width float32, col Color) {
	c.Commands = append(c.Commands, DrawCommand{Op: OpLine, X: x1, Y: y1, W: x2, H: y2, Width: width, Color: col})
}

func (c *RecordingCanvas) DrawText(text string, x, y float32, col Color) {
	c.Commands = append(c.Commands, DrawCommand{Op: OpText, X: x, Y: y, Text: text, Color: col})
}

// Texts returns the recorded text commands in draw order.
func (c *RecordingCanvas) Texts() []string {
	var out []string
	for _, cmd := range c.Commands {
		if cmd.Op == OpText {
			out = append(out, cmd.Text)
		}
	}
	return out
}

// Replay draws the recorded commands onto another canvas.
func (c *RecordingCanvas) Replay(dst Canvas) {
	for _, cmd := range c.Commands {
		switch cmd.Op {
		case OpFillRect:
			dst.FillRect(cmd.X, cmd.Y, cmd.W, cmd.H, cmd.Color)
		case OpStrokeRect:
			dst.StrokeRect(cmd.X, cmd.Y, cmd.W, cmd.H, cmd.Color)
		case OpLine:
			dst.DrawLine(cmd.X, cmd.Y, cmd.W, cmd.H, cmd.Width, cmd.Color)
		case OpText:
			dst.DrawText(cmd.Text, cmd.X, cmd.Y, cmd.Color)
		}
	}
}
