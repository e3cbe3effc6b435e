package debugdraw

import (
	"time"

	"github.com/gekko3d/debugdraw/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

type ShapeKind = core.ShapeKind

const (
	ShapeCube            = core.ShapeCube
	ShapeCenteredCube    = core.ShapeCenteredCube
	ShapeArrowhead       = core.ShapeArrowhead
	ShapeBillboardSquare = core.ShapeBillboardSquare
	ShapePositionCross   = core.ShapePositionCross
	ShapeSphere          = core.ShapeSphere
	ShapeCylinder        = core.ShapeCylinder

	shapeKindCount = core.ShapeKindCount
)

type primitiveKind uint8

const (
	primitiveLine primitiveKind = iota
	primitiveInstance
	primitiveText
)

// delayed is the expiration header shared by every transient record.
type delayed struct {
	kind       primitiveKind
	expiration time.Time
	// usedOnce is set once the record made it into a built frame.
	usedOnce bool
	visible  bool
}

func (d *delayed) header() *delayed { return d }

func (d *delayed) expireAt(now time.Time, duration time.Duration) {
	d.expiration = now.Add(duration)
	d.usedOnce = false
	d.visible = true
}

// extend moves the expiration without touching usedOnce.
func (d *delayed) extend(now time.Time, duration time.Duration) {
	d.expiration = now.Add(duration)
}

// expired reports whether the record may be dropped. A zero duration record
// always survives until it has been drawn once.
func (d *delayed) expired(now time.Time, enabled bool) bool {
	return !enabled || (now.After(d.expiration) && d.usedOnce)
}

// pruneCounts tallies removed records by primitive kind.
type pruneCounts struct {
	lines  int
	shapes int
	texts  int
}

func (c *pruneCounts) record(h *delayed) {
	if c == nil {
		return
	}
	switch h.kind {
	case primitiveLine:
		c.lines++
	case primitiveInstance:
		c.shapes++
	case primitiveText:
		c.texts++
	}
}

func (c *pruneCounts) total() int { return c.lines + c.shapes + c.texts }

type headered interface {
	header() *delayed
}

func resetHeader[T headered](item T) {
	h := item.header()
	h.usedOnce = false
	h.visible = true
}

type LinePrimitive struct {
	delayed
	Points []mgl32.Vec3
	// List interprets Points as independent segments (pairs) instead of a path.
	List   bool
	Color  Color
	Bounds core.AABB
}

func newLinePrimitive() *LinePrimitive {
	return &LinePrimitive{delayed: delayed{kind: primitiveLine, visible: true}}
}

// SetPoints copies the points into the record's own storage and refreshes its bounds.
func (l *LinePrimitive) SetPoints(points []mgl32.Vec3, list bool) {
	l.Points = append(l.Points[:0], points...)
	l.List = list
	if list && len(l.Points)%2 == 1 {
		l.Points = l.Points[:len(l.Points)-1]
	}
	l.Bounds = core.BoundsOfPolyline(l.Points)
}

// SegmentCount is the number of line segments the record expands to.
func (l *LinePrimitive) SegmentCount() int {
	if l.List {
		return len(l.Points) / 2
	}
	if len(l.Points) < 2 {
		return 0
	}
	return len(l.Points) - 1
}

type InstancePrimitive struct {
	delayed
	Shape     ShapeKind
	Transform mgl32.Mat4
	Color     Color
	Bounds    core.Sphere
}

func newInstancePrimitive(kind ShapeKind) func() *InstancePrimitive {
	return func() *InstancePrimitive {
		return &InstancePrimitive{
			delayed: delayed{kind: primitiveInstance, visible: true},
			Shape:   kind,
		}
	}
}
