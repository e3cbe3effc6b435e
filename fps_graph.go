package debugdraw

import (
	"fmt"
	"time"
)

// fpsGraph keeps a ring of recent frame durations in seconds.
type fpsGraph struct {
	samples []float32
	cursor  int
	filled  int
}

// update records one frame. The ring is reallocated when width changes.
func (g *fpsGraph) update(dt time.Duration, width int) {
	if dt <= 0 {
		return
	}
	if width < 2 {
		width = 2
	}
	s := float32(dt.Seconds())
	if width != len(g.samples) {
		g.samples = make([]float32, width)
		// duplicated at both ends so a fresh ring does not draw as flat zero
		g.samples[0] = s
		g.samples[width-1] = s
		g.filled = 1
		g.cursor = 1
		return
	}
	g.samples[g.cursor] = s
	g.cursor = (g.cursor + 1) % len(g.samples)
	if g.filled < len(g.samples) {
		g.filled++
	}
}

func graphValue(s float32, frameTime bool) float32 {
	if frameTime {
		return s * 1000
	}
	return 1 / s
}

type graphStats struct {
	Current, Avg, Min, Max float32
	Count                  int
}

// stats covers non-zero samples only.
func (g *fpsGraph) stats(frameTime bool) graphStats {
	var st graphStats
	n := len(g.samples)
	if n == 0 {
		return st
	}
	var sum float32
	for _, s := range g.samples {
		if s == 0 {
			continue
		}
		v := graphValue(s, frameTime)
		if st.Count == 0 || v < st.Min {
			st.Min = v
		}
		if st.Count == 0 || v > st.Max {
			st.Max = v
		}
		sum += v
		st.Count++
	}
	if st.Count == 0 {
		return st
	}
	st.Avg = sum / float32(st.Count)
	if last := g.samples[(g.cursor-1+n)%n]; last != 0 {
		st.Current = graphValue(last, frameTime)
	}
	return st
}

// rect returns the graph's screen rectangle for the canvas size.
func graphRect(cfg *GraphConfig, cw, ch float32) (x, y, w, h float32) {
	w, h = float32(cfg.Size[0]), float32(cfg.Size[1])
	x, y = cfg.Offset[0], cfg.Offset[1]
	if cfg.Anchor.IsRight() {
		x = cw - cfg.Offset[0] - w
	}
	if cfg.Anchor.IsBottom() {
		y = ch - cfg.Offset[1] - h
	}
	return
}

func (g *fpsGraph) draw(c Canvas, cfg *GraphConfig) {
	cw, ch := c.Size()
	x, y, w, h := graphRect(cfg, cw, ch)
	c.FillRect(x, y, w, h, cfg.BackgroundColor)

	st := g.stats(cfg.FrameTimeMode)
	n := len(g.samples)
	if st.Count > 0 && st.Max > 0 {
		hm := h / st.Max
		var center float32
		if cfg.CenteredLine {
			center = (h - hm*(st.Max-st.Min)) / 2
		}
		step := w / float32(n-1)

		var px, py float32
		havePrev := false
		for i := 0; i < n; i++ {
			s := g.samples[(g.cursor+i)%n]
			if s == 0 {
				havePrev = false
				continue
			}
			v := graphValue(s, cfg.FrameTimeMode)
			sx := x + float32(i)*step
			sy := y + h - v*hm + center
			if havePrev {
				c.DrawLine(px, py, sx, sy, cfg.LineWidth, cfg.LineColor)
			}
			px, py, havePrev = sx, sy, true
		}
	}
	c.StrokeRect(x, y, w, h, cfg.BorderColor)

	if st.Count == 0 || cfg.TextFlags == 0 {
		return
	}
	unit := "fps"
	if cfg.FrameTimeMode {
		unit = "ms"
	}
	lh := c.LineHeight()
	label := func(text string, right, bottom bool) {
		lx, ly := x+2, y+1
		if right {
			lx = x + w - 2 - c.MeasureText(text)
		}
		if bottom {
			ly = y + h - 1 - lh
		}
		c.DrawText(text, lx, ly, cfg.TextColor)
	}
	if cfg.TextFlags&GraphTextMax != 0 {
		label(fmt.Sprintf("max %.1f", st.Max), false, false)
	}
	if cfg.TextFlags&GraphTextCurrent != 0 {
		label(fmt.Sprintf("%.1f %s", st.Current, unit), true, false)
	}
	if cfg.TextFlags&GraphTextMin != 0 {
		label(fmt.Sprintf("min %.1f", st.Min), false, true)
	}
	if cfg.TextFlags&GraphTextAvg != 0 {
		label(fmt.Sprintf("avg %.1f", st.Avg), true, true)
	}
}
