package debugdraw

// textLine is one laid out overlay row.
type textLine struct {
	key        string // key, group title, or "key : " when a value follows
	value      string
	keyColor   Color
	valueColor Color
	title      bool
}

func (l textLine) String() string { return l.key + l.value }

// layoutLines flattens the groups into rows in draw order.
func (t *textEngine) layoutLines(cfg *TextConfig) []textLine {
	var lines []textLine
	for _, g := range t.sortedGroups() {
		keyColor := cfg.ForegroundColor
		if g.HasColor {
			keyColor = g.Color
		}
		if g.ShowTitle && g.Title != "" {
			lines = append(lines, textLine{key: g.Title, keyColor: keyColor, title: true})
		}
		for _, e := range g.sortedEntries() {
			l := textLine{key: e.Key, keyColor: keyColor}
			if e.HasValue {
				l.key += " : "
				l.value = e.Value
				l.valueColor = keyColor
				if e.HasValueColor {
					l.valueColor = e.ValueColor
				}
			}
			lines = append(lines, l)
		}
	}
	return lines
}

// drawTextBlock paints lines anchored to one corner of the canvas. reserved is
// vertical space already taken at that corner (by the FPS graph).
func drawTextBlock(c Canvas, cfg *TextConfig, lines []textLine, reserved float32) {
	if len(lines) == 0 {
		return
	}
	cw, ch := c.Size()
	padX, padY := cfg.Padding[0], cfg.Padding[1]
	rowH := c.LineHeight() + 2*padY
	total := rowH * float32(len(lines))

	y := cfg.Offset[1] + reserved
	if cfg.Anchor.IsBottom() {
		y = ch - cfg.Offset[1] - reserved - total
	}

	for _, l := range lines {
		keyW := c.MeasureText(l.key)
		w := keyW + c.MeasureText(l.value) + 2*padX

		x := cfg.Offset[0]
		if cfg.Anchor.IsRight() {
			x = cw - cfg.Offset[0] - w
		}

		c.FillRect(x, y, w, rowH, cfg.BackgroundColor)
		c.DrawText(l.key, x+padX, y+padY, l.keyColor)
		if l.value != "" {
			c.DrawText(l.value, x+padX+keyW, y+padY, l.valueColor)
		}
		y += rowH
	}
}
