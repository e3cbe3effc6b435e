package debugdraw

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// TextEntry is one key/value line of the overlay.
type TextEntry struct {
	delayed
	Key      string
	Value    string
	HasValue bool
	Priority int

	ValueColor    Color
	HasValueColor bool
}

func (e *TextEntry) String() string {
	if !e.HasValue {
		return e.Key
	}
	return e.Key + " : " + e.Value
}

// TextGroup is a titled, prioritized set of entries keyed by entry key.
type TextGroup struct {
	Title     string
	Priority  int
	Color     Color
	HasColor  bool
	ShowTitle bool

	entries map[string]*TextEntry
}

func newTextGroup(title string) *TextGroup {
	return &TextGroup{Title: title, entries: make(map[string]*TextEntry)}
}

func (g *TextGroup) Len() int { return len(g.entries) }

// sortedEntries returns the entries by priority, then key.
func (g *TextGroup) sortedEntries() []*TextEntry {
	out := make([]*TextEntry, 0, len(g.entries))
	for _, e := range g.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// textEngine holds the text groups. Guarded by the Overlay lock.
type textEngine struct {
	groups  map[string]*TextGroup
	def     *TextGroup
	current *TextGroup
	// dirty is set whenever the rendered text changes.
	dirty bool
}

func newTextEngine() *textEngine {
	def := newTextGroup("")
	return &textEngine{
		groups:  map[string]*TextGroup{"": def},
		def:     def,
		current: def,
	}
}

func (t *textEngine) beginGroup(title string, priority int, color Color, hasColor, showTitle bool) {
	g, ok := t.groups[title]
	if !ok {
		g = newTextGroup(title)
		t.groups[title] = g
	}
	if g.Priority != priority || g.Color != color || g.HasColor != hasColor || g.ShowTitle != showTitle {
		if len(g.entries) > 0 {
			t.dirty = true
		}
		g.Priority = priority
		g.Color = color
		g.HasColor = hasColor
		g.ShowTitle = showTitle
	}
	t.current = g
}

func (t *textEngine) endGroup() {
	t.current = t.def
}

func (t *textEngine) setText(now time.Time, key string, value string, hasValue bool, o *drawOptions, duration time.Duration) {
	g := t.current
	e, ok := g.entries[key]
	unchanged := ok && e.Value == value && e.HasValue == hasValue && e.Priority == o.priority &&
		e.ValueColor == o.valueColor && e.HasValueColor == o.hasValueColor
	if unchanged && duration > 0 {
		// the drawn line stays valid; only its lifetime moves
		e.extend(now, duration)
		return
	}
	// a drawn one-frame line has to be drawn again to stay on screen
	if !unchanged || e.usedOnce {
		t.dirty = true
	}
	if !ok {
		e = &TextEntry{delayed: delayed{kind: primitiveText}, Key: key}
		g.entries[key] = e
	}
	e.Value = value
	e.HasValue = hasValue
	e.Priority = o.priority
	e.ValueColor = o.valueColor
	e.HasValueColor = o.hasValueColor
	e.expireAt(now, duration)
}

// prune drops expired entries and empty groups other than the default one.
func (t *textEngine) prune(now time.Time, enabled bool, counts *pruneCounts) int {
	removed := 0
	for title, g := range t.groups {
		for key, e := range g.entries {
			if e.expired(now, enabled) {
				delete(g.entries, key)
				counts.record(&e.delayed)
				removed++
			}
		}
		if len(g.entries) == 0 && g != t.def && g != t.current {
			delete(t.groups, title)
		}
	}
	if removed > 0 {
		t.dirty = true
	}
	return removed
}

// clear drops every entry and every group except the default one.
func (t *textEngine) clear() {
	for title, g := range t.groups {
		if len(g.entries) > 0 {
			t.dirty = true
		}
		if g == t.def {
			clear(g.entries)
			continue
		}
		delete(t.groups, title)
	}
	t.current = t.def
}

// markDrawn flags every entry as rendered at least once.
func (t *textEngine) markDrawn() {
	for _, g := range t.groups {
		for _, e := range g.entries {
			e.usedOnce = true
		}
	}
}

func (t *textEngine) entryCount() int {
	n := 0
	for _, g := range t.groups {
		n += len(g.entries)
	}
	return n
}

// sortedGroups returns non-empty groups by priority, then title.
func (t *textEngine) sortedGroups() []*TextGroup {
	out := make([]*TextGroup, 0, len(t.groups))
	for _, g := range t.groups {
		if len(g.entries) > 0 {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].Title < out[j].Title
	})
	return out
}

// formatValue renders a text value the way the overlay shows it.
func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float32:
		return strconv.FormatFloat(float64(x), 'f', 3, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', 3, 64)
	case mgl32.Vec2:
		return fmt.Sprintf("(%.2f, %.2f)", x[0], x[1])
	case mgl32.Vec3:
		return fmt.Sprintf("(%.2f, %.2f, %.2f)", x[0], x[1], x[2])
	case mgl32.Vec4:
		return fmt.Sprintf("(%.2f, %.2f, %.2f, %.2f)", x[0], x[1], x[2], x[3])
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}
