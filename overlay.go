package debugdraw

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gekko3d/debugdraw/rt/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

const statsGroupTitle = "Debug Draw"

// Overlay owns every transient debug primitive and text entry. Submission
// methods are safe from any goroutine; Update and Draw belong to one render
// goroutine.
type Overlay struct {
	id      uuid.UUID
	logger  Logger
	clock   Clock
	surface Surface3D
	cfg     atomic.Pointer[Config]

	// mu guards everything below. Pool locks are never taken after it on the
	// submit path.
	mu         sync.Mutex
	reg        *registry
	batchers   [shapeKindCount]*InstanceBatcher
	lines      lineBatcher
	text       *textEngine
	graph      fpsGraph
	frustum    core.Frustum
	hasFrustum bool
	stats      Stats
}

type OverlayOption func(*Overlay)

func WithLogger(l Logger) OverlayOption {
	return func(o *Overlay) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithClock(c Clock) OverlayOption {
	return func(o *Overlay) {
		if c != nil {
			o.clock = c
		}
	}
}

func WithConfig(cfg Config) OverlayOption {
	return func(o *Overlay) { o.cfg.Store(&cfg) }
}

// WithSurface sets the receiver of rebuilt 3D batches.
func WithSurface(s Surface3D) OverlayOption {
	return func(o *Overlay) { o.surface = s }
}

func New(opts ...OverlayOption) *Overlay {
	o := &Overlay{
		id:     uuid.New(),
		logger: NewNopLogger(),
		clock:  SystemClock{},
		reg:    newRegistry(),
		text:   newTextEngine(),
	}
	def := DefaultConfig()
	o.cfg.Store(&def)
	for i := range o.batchers {
		o.batchers[i] = newInstanceBatcher(ShapeKind(i))
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger.Infof("debug overlay %s created", o.id)
	return o
}

func (o *Overlay) ID() uuid.UUID { return o.id }

func (o *Overlay) Logger() Logger { return o.logger }

// Config returns the current configuration snapshot.
func (o *Overlay) Config() Config { return *o.cfg.Load() }

// UpdateConfig applies fn to a copy of the configuration and publishes it.
// The change is visible to the next submission or frame.
// Concurrent updates retry on top of each other, so none is lost; fn may run
// more than once.
func (o *Overlay) UpdateConfig(fn func(*Config)) {
	for {
		cur := o.cfg.Load()
		next := *cur
		fn(&next)
		if o.cfg.CompareAndSwap(cur, &next) {
			break
		}
	}
	o.logger.Debugf("debug overlay %s config updated", o.id)
}

func (o *Overlay) SetConfig(cfg Config) {
	o.cfg.Store(&cfg)
	o.logger.Infof("debug overlay %s config replaced", o.id)
}

func (o *Overlay) SetSurface(s Surface3D) {
	o.mu.Lock()
	o.surface = s
	o.mu.Unlock()
}

// SetFrustum sets the culling planes in the order near, far, left, top, right,
// bottom. Anything other than six planes disables culling.
func (o *Overlay) SetFrustum(planes []mgl32.Vec4) {
	f, ok := core.FrustumFromSlice(planes)
	if !ok && len(planes) != 0 {
		o.logger.Debugf("ignoring frustum with %d planes", len(planes))
	}
	o.mu.Lock()
	o.frustum = f
	o.hasFrustum = ok
	o.mu.Unlock()
}

// Frustum returns the culling planes, if any.
func (o *Overlay) Frustum() (core.Frustum, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.frustum, o.hasFrustum
}

// Update prunes expired records, culls the rest against the frustum and
// rebuilds the batches, in that order.
func (o *Overlay) Update(dt time.Duration) {
	cfg := o.cfg.Load()
	now := o.clock.Now()

	o.mu.Lock()
	defer o.mu.Unlock()

	st := &o.stats
	o.text.endGroup()

	start := st.beginScope("prune")
	var counts pruneCounts
	o.text.prune(now, cfg.Enabled, &counts)
	o.reg.prune(now, cfg.Enabled, &counts)
	st.Pruned = counts.total()
	st.PrunedLines, st.PrunedShapes, st.PrunedTexts = counts.lines, counts.shapes, counts.texts
	st.endScope("prune", start)

	o.graph.update(dt, cfg.Graph.Size[0])

	if !cfg.Enabled {
		o.hideAll()
		o.collectCounts(st)
		return
	}
	if cfg.Freeze3D {
		o.collectCounts(st)
		return
	}

	start = st.beginScope("cull")
	o.cull(cfg.FrustumCulling && o.hasFrustum)
	st.endScope("cull", start)

	start = st.beginScope("rebuild")
	st.Instances = 0
	for i, b := range o.batchers {
		n := b.Rebuild(o.reg.instances[i])
		st.PerKind[i] = n
		st.Instances += n
	}
	st.Wireframes = o.lines.rebuild(o.reg.lines)
	st.endScope("rebuild", start)

	o.pushSurface()
	o.collectCounts(st)

	if cfg.ShowStats {
		o.injectStats(now, cfg)
	}
}

func (o *Overlay) cull(enabled bool) {
	if !enabled {
		for _, l := range o.reg.lines {
			l.visible = true
		}
		for _, set := range o.reg.instances {
			for _, inst := range set {
				inst.visible = true
			}
		}
		return
	}
	for _, l := range o.reg.lines {
		l.visible = core.AABBInFrustum(l.Bounds, o.frustum)
	}
	for _, set := range o.reg.instances {
		for _, inst := range set {
			inst.visible = core.SphereInFrustum(inst.Bounds.Center, inst.Bounds.Radius, o.frustum)
		}
	}
}

func (o *Overlay) hideAll() {
	for _, b := range o.batchers {
		b.HideAll()
	}
	o.lines.hideAll()
	o.stats.Instances = 0
	o.stats.Wireframes = 0
	o.stats.PerKind = [shapeKindCount]int{}
	o.pushSurface()
}

func (o *Overlay) pushSurface() {
	if o.surface == nil {
		return
	}
	for _, b := range o.batchers {
		o.surface.UpdateInstances(b.Kind(), b.Instances())
	}
	o.surface.UpdateLines(o.lines.vertices)
}

func (o *Overlay) collectCounts(st *Stats) {
	st.LiveLines = len(o.reg.lines)
	st.LiveShapes = o.reg.liveInstances()
	st.LiveTexts = o.text.entryCount()
	st.PoolIdle = o.reg.poolIdle()
	st.PoolMade = o.reg.poolCreated()
}

func (o *Overlay) injectStats(now time.Time, cfg *Config) {
	o.text.beginGroup(statsGroupTitle, 1<<20, cfg.Text.ForegroundColor, false, true)
	opts := drawOptions{}
	for i, kv := range o.stats.Counters() {
		opts.priority = i
		o.text.setText(now, kv[0], kv[1], true, &opts, 0)
	}
	o.text.endGroup()
}

// Draw paints the FPS graph and the text overlay onto c.
func (o *Overlay) Draw(c Canvas) {
	cfg := o.cfg.Load()

	o.mu.Lock()
	defer o.mu.Unlock()

	o.text.markDrawn()
	o.text.dirty = false

	var reserved float32
	if cfg.Graph.Enabled {
		o.graph.draw(c, &cfg.Graph)
		if cfg.Graph.Anchor == cfg.Text.Anchor {
			reserved = float32(cfg.Graph.Size[1]) + cfg.Graph.Offset[1]
		}
	}
	drawTextBlock(c, &cfg.Text, o.text.layoutLines(&cfg.Text), reserved)
}

// NeedsRedraw reports whether the 2D overlay changed since the last Draw.
func (o *Overlay) NeedsRedraw() bool {
	if o.cfg.Load().Graph.Enabled {
		return true
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.text.dirty
}

// Stats returns a copy of the statistics of the last Update.
func (o *Overlay) Stats() Stats {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stats.clone()
}

func (o *Overlay) RenderCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stats.RenderCount()
}

// VisibleCount is the size of the kind's batch after the last Update.
func (o *Overlay) VisibleCount(kind ShapeKind) int {
	if !kind.Valid() {
		return 0
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.batchers[kind].Active()
}

// LineVertices returns a copy of the line batch built by the last Update.
func (o *Overlay) LineVertices() []LineVertex {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]LineVertex(nil), o.lines.vertices...)
}

// TextLines returns the overlay rows in draw order.
func (o *Overlay) TextLines() []string {
	cfg := o.cfg.Load()
	o.mu.Lock()
	defer o.mu.Unlock()
	lines := o.text.layoutLines(&cfg.Text)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out
}

// BeginTextGroup makes title the target of following SetText calls until
// EndTextGroup. WithColor sets the group color.
func (o *Overlay) BeginTextGroup(title string, priority int, showTitle bool, opts ...Option) {
	if !o.cfg.Load().Enabled {
		return
	}
	op := collectOptions(opts)
	o.mu.Lock()
	o.text.beginGroup(title, priority, op.color, op.hasColor, showTitle)
	o.mu.Unlock()
}

func (o *Overlay) EndTextGroup() {
	o.mu.Lock()
	o.text.endGroup()
	o.mu.Unlock()
}

// SetText upserts a line in the current group. A nil value shows the key alone.
func (o *Overlay) SetText(key string, value any, opts ...Option) {
	cfg := o.cfg.Load()
	if !cfg.Enabled {
		return
	}
	op := collectOptions(opts)
	var s string
	if value != nil {
		s = formatValue(value)
	}
	now := o.clock.Now()
	o.mu.Lock()
	o.text.setText(now, key, s, value != nil, &op, op.textDuration(cfg.Text.DefaultDuration.Duration))
	o.mu.Unlock()
}

// Clear2D drops every text entry.
func (o *Overlay) Clear2D() {
	o.mu.Lock()
	o.text.clear()
	o.mu.Unlock()
}

// Clear3D drops every line and shape.
func (o *Overlay) Clear3D() {
	o.mu.Lock()
	o.reg.clear()
	o.mu.Unlock()
}

func (o *Overlay) ClearAll() {
	o.mu.Lock()
	o.reg.clear()
	o.text.clear()
	o.mu.Unlock()
}
