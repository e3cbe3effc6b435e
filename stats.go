package debugdraw

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Stats describes the last Update.
type Stats struct {
	Instances  int // visible instances over all shape kinds
	Wireframes int // visible line records
	PerKind    [shapeKindCount]int
	LiveLines  int
	LiveShapes int
	LiveTexts  int
	PoolIdle   int
	PoolMade   int

	Pruned int
	// Pruned split by primitive kind.
	PrunedLines  int
	PrunedShapes int
	PrunedTexts  int

	Timings map[string]time.Duration
	order   []string
}

// RenderCount is instances plus wireframes drawn in the last Update.
func (s *Stats) RenderCount() int { return s.Instances + s.Wireframes }

func (s *Stats) beginScope(name string) time.Time {
	if s.Timings == nil {
		s.Timings = make(map[string]time.Duration)
	}
	if _, ok := s.Timings[name]; !ok {
		s.order = append(s.order, name)
	}
	return time.Now()
}

func (s *Stats) endScope(name string, start time.Time) {
	s.Timings[name] = time.Since(start)
}

// clone copies the stats so callers never share the timings map.
func (s *Stats) clone() Stats {
	out := *s
	out.Timings = make(map[string]time.Duration, len(s.Timings))
	for k, v := range s.Timings {
		out.Timings[k] = v
	}
	out.order = append([]string(nil), s.order...)
	return out
}

// Counters returns the named counters, sorted by name.
func (s *Stats) Counters() [][2]string {
	counts := map[string]int{
		"instances":     s.Instances,
		"wireframes":    s.Wireframes,
		"live_lines":    s.LiveLines,
		"live_shapes":   s.LiveShapes,
		"live_texts":    s.LiveTexts,
		"pruned":        s.Pruned,
		"pruned_lines":  s.PrunedLines,
		"pruned_shapes": s.PrunedShapes,
		"pruned_texts":  s.PrunedTexts,
		"pool_idle":     s.PoolIdle,
		"pool_made":     s.PoolMade,
	}
	for i, n := range s.PerKind {
		if n > 0 {
			counts[ShapeKind(i).String()] = n
		}
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([][2]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, [2]string{k, fmt.Sprint(counts[k])})
	}
	return out
}

func (s *Stats) String() string {
	var sb strings.Builder
	sb.WriteString("Timings (CPU):\n")
	for _, name := range s.order {
		ms := float64(s.Timings[name].Microseconds()) / 1000.0
		sb.WriteString(fmt.Sprintf("  %-15s: %.2f ms\n", name, ms))
	}
	sb.WriteString("\nStats:\n")
	for _, kv := range s.Counters() {
		sb.WriteString(fmt.Sprintf("  %-15s: %s\n", kv[0], kv[1]))
	}
	return sb.String()
}
