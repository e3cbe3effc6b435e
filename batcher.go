package debugdraw

import (
	"github.com/gekko3d/debugdraw/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

// InstanceData matches the per-instance vertex attributes of the debug shader.
type InstanceData struct {
	ModelMat mgl32.Mat4
	Color    Color
}

// LineVertex matches the line vertex attributes of the debug shader.
type LineVertex struct {
	Pos   mgl32.Vec3
	Color Color
}

// InstanceBatcher packs the visible instances of one shape kind into a
// contiguous buffer. Slot order follows the live set and is not stable
// across frames.
type InstanceBatcher struct {
	kind   ShapeKind
	buffer []InstanceData
	active int
}

func newInstanceBatcher(kind ShapeKind) *InstanceBatcher {
	return &InstanceBatcher{kind: kind}
}

func (b *InstanceBatcher) Kind() ShapeKind { return b.kind }

// Rebuild writes every visible primitive into the buffer and returns the
// number written. Every primitive passed in counts as used afterwards.
func (b *InstanceBatcher) Rebuild(live []*InstancePrimitive) int {
	if cap(b.buffer) < len(live) {
		b.buffer = make([]InstanceData, len(live))
	}
	b.buffer = b.buffer[:cap(b.buffer)]

	n := 0
	for _, inst := range live {
		inst.usedOnce = true
		if !inst.visible {
			continue
		}
		b.buffer[n] = InstanceData{ModelMat: inst.Transform, Color: inst.Color}
		n++
	}
	b.active = n
	return n
}

// HideAll drops the active count and leaves buffer contents alone.
func (b *InstanceBatcher) HideAll() {
	b.active = 0
}

// Instances returns the active slice of the buffer, valid until the next Rebuild.
func (b *InstanceBatcher) Instances() []InstanceData {
	return b.buffer[:b.active]
}

func (b *InstanceBatcher) Active() int   { return b.active }
func (b *InstanceBatcher) Capacity() int { return cap(b.buffer) }

// lineBatcher expands visible line records into one line-list vertex buffer.
type lineBatcher struct {
	vertices []LineVertex
	scratch  []mgl32.Vec3
	active   int // visible line records
}

func (b *lineBatcher) rebuild(live []*LinePrimitive) int {
	b.vertices = b.vertices[:0]
	n := 0
	for _, l := range live {
		l.usedOnce = true
		if !l.visible || l.SegmentCount() == 0 {
			continue
		}
		points := l.Points
		if !l.List {
			b.scratch = core.AppendPathLines(b.scratch[:0], l.Points)
			points = b.scratch
		}
		for _, p := range points {
			b.vertices = append(b.vertices, LineVertex{Pos: p, Color: l.Color})
		}
		n++
	}
	b.active = n
	return n
}

func (b *lineBatcher) hideAll() {
	b.vertices = b.vertices[:0]
	b.active = 0
}
