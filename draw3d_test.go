package debugdraw

import (
	"math"
	"testing"
	"time"

	"github.com/gekko3d/debugdraw/rt/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func liveCounts(o *Overlay) (lines int, shapes [shapeKindCount]int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i, set := range o.reg.instances {
		shapes[i] = len(set)
	}
	return len(o.reg.lines), shapes
}

func TestDraw_MalformedInputIsDropped(t *testing.T) {
	o, _ := newTestOverlay(t)

	o.DrawLinePath([]mgl32.Vec3{{1, 2, 3}})
	o.DrawLines(nil)
	o.DrawSphere(mgl32.Vec3{}, 0)
	o.DrawSphere(mgl32.Vec3{}, -1)
	o.DrawBox(mgl32.Vec3{}, mgl32.QuatIdent(), mgl32.Vec3{1, 0, 1})
	o.DrawCylinder(mgl32.Vec3{}, mgl32.QuatIdent(), 1, -2)
	o.DrawArrow(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 1})
	o.DrawRay(mgl32.Vec3{}, mgl32.Vec3{}, 5)
	o.DrawBillboardSquare(mgl32.Vec3{}, 0)
	o.DrawCameraFrustum(make([]mgl32.Vec4, 5))
	o.DrawGrid(mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, 4, 4)

	lines, shapes := liveCounts(o)
	assert.Zero(t, lines)
	assert.Equal(t, [shapeKindCount]int{}, shapes)
}

func TestDraw_ShapesLandInTheirBatch(t *testing.T) {
	o, _ := newTestOverlay(t)

	o.DrawBox(mgl32.Vec3{}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1})
	o.DrawAABB(core.AABB{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 2, 3}})
	o.DrawSphere(mgl32.Vec3{}, 2)
	o.DrawCylinder(mgl32.Vec3{}, mgl32.QuatIdent(), 1, 2)
	o.DrawPosition(mgl32.Ident4())
	o.DrawBillboardSquare(mgl32.Vec3{}, 0.5)
	o.DrawArrowhead(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	o.Update(time.Millisecond)

	for _, k := range []ShapeKind{ShapeCenteredCube, ShapeCube, ShapeSphere, ShapeCylinder, ShapePositionCross, ShapeBillboardSquare, ShapeArrowhead} {
		assert.Equal(t, 1, o.VisibleCount(k), k.String())
	}
}

func TestDraw_SphereTransform(t *testing.T) {
	o, _ := newTestOverlay(t)
	o.DrawSphere(mgl32.Vec3{1, 2, 3}, 2, WithColor(ColorRed))

	o.mu.Lock()
	inst := o.reg.instances[ShapeSphere][0]
	o.mu.Unlock()

	// template radius is 0.5, so the scale is the diameter
	assert.InDelta(t, 4, inst.Transform.At(0, 0), 1e-5)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, inst.Transform.Col(3).Vec3())
	assert.Equal(t, float32(2), inst.Bounds.Radius)
	assert.Equal(t, ColorRed, inst.Color)
}

func TestDraw_PaletteDefaults(t *testing.T) {
	o, _ := newTestOverlay(t)
	o.DrawLine(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0})
	o.DrawSphere(mgl32.Vec3{}, 1)

	cfg := o.Config()
	o.mu.Lock()
	defer o.mu.Unlock()
	assert.Equal(t, cfg.Palette.Line, o.reg.lines[0].Color)
	assert.Equal(t, cfg.Palette.Sphere, o.reg.instances[ShapeSphere][0].Color)
}

func TestDraw_LineHit(t *testing.T) {
	o, _ := newTestOverlay(t)
	cfg := o.Config()
	o.DrawLineHit(mgl32.Vec3{}, mgl32.Vec3{10, 0, 0}, mgl32.Vec3{4, 0, 0}, true)

	o.mu.Lock()
	require.Len(t, o.reg.lines, 2)
	assert.Equal(t, cfg.Palette.LineHit, o.reg.lines[0].Color)
	assert.Equal(t, cfg.Palette.LineAfterHit, o.reg.lines[1].Color)
	assert.Equal(t, mgl32.Vec3{4, 0, 0}, o.reg.lines[0].Points[1])
	require.Len(t, o.reg.instances[ShapeBillboardSquare], 1)
	assert.Equal(t, mgl32.Vec3{4, 0, 0}, o.reg.instances[ShapeBillboardSquare][0].Bounds.Center)
	o.mu.Unlock()

	o.Clear3D()
	o.DrawLineHit(mgl32.Vec3{}, mgl32.Vec3{10, 0, 0}, mgl32.Vec3{}, false)
	lines, shapes := liveCounts(o)
	assert.Equal(t, 1, lines)
	assert.Zero(t, shapes[ShapeBillboardSquare])
}

func TestDraw_ArrowPathAndGizmo(t *testing.T) {
	o, _ := newTestOverlay(t)
	o.DrawArrowPath([]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}})
	lines, shapes := liveCounts(o)
	assert.Equal(t, 1, lines)
	assert.Equal(t, 2, shapes[ShapeArrowhead])

	o.Clear3D()
	o.DrawGizmo(mgl32.Translate3D(1, 2, 3))
	lines, shapes = liveCounts(o)
	assert.Equal(t, 3, lines)
	assert.Equal(t, 3, shapes[ShapeArrowhead])

	cfg := o.Config()
	o.mu.Lock()
	defer o.mu.Unlock()
	assert.Equal(t, cfg.Palette.AxisX, o.reg.lines[0].Color)
	assert.Equal(t, cfg.Palette.AxisZ, o.reg.lines[2].Color)
	assert.Equal(t, mgl32.Vec3{1, 2, 4}, o.reg.lines[2].Points[1])
}

func TestDraw_ArrowheadPointsAlongDirection(t *testing.T) {
	o, _ := newTestOverlay(t)
	o.DrawArrowhead(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{1, 0, 0}, WithSize(2))

	o.mu.Lock()
	inst := o.reg.instances[ShapeArrowhead][0]
	o.mu.Unlock()

	// template base sits at z=-1, so it ends up behind the tip along -dir
	base := inst.Transform.Mul4x1(mgl32.Vec4{0, 0, -1, 1}).Vec3()
	assert.InDelta(t, -2, base.X(), 1e-4)
	assert.InDelta(t, 5, base.Z(), 1e-4)
}

func TestDraw_PointsAndGrid(t *testing.T) {
	o, _ := newTestOverlay(t)
	o.DrawPoints([]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}})
	o.DrawGrid(mgl32.Vec3{}, mgl32.Vec3{4, 0, 0}, mgl32.Vec3{0, 0, 4}, 4, 2)
	o.Update(time.Millisecond)

	assert.Equal(t, 3, o.VisibleCount(ShapeBillboardSquare))
	// (4+1) + (2+1) segments
	assert.Len(t, o.LineVertices(), 16)
}

func TestDraw_GridSubdivisionLimit(t *testing.T) {
	o, _ := newTestOverlay(t)
	require.NotPanics(t, func() {
		o.DrawGrid(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}, math.MaxInt, 1)
		o.DrawGrid(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}, 1, core.MaxGridSubdivisions+1)
	})
	lines, _ := liveCounts(o)
	assert.Zero(t, lines)

	o.DrawGrid(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}, core.MaxGridSubdivisions, 1)
	o.Update(time.Millisecond)
	assert.Len(t, o.LineVertices(), (core.MaxGridSubdivisions+1+2)*2)
}

func TestDraw_CameraFrustum(t *testing.T) {
	o, _ := newTestOverlay(t)
	o.DrawCameraFrustumMatrix(mgl32.Perspective(mgl32.DegToRad(60), 1.5, 0.5, 20))
	o.Update(time.Millisecond)
	assert.Len(t, o.LineVertices(), 24, "12 hexahedron edges")
}

func TestDraw_LinesListDropsOddPoint(t *testing.T) {
	o, _ := newTestOverlay(t)
	o.DrawLines([]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}})
	o.Update(time.Millisecond)
	assert.Len(t, o.LineVertices(), 2)
}
