package debugdraw

import (
	"math"

	"github.com/gekko3d/debugdraw/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

// submitLine copies points into a pooled record. The pool is taken before the
// overlay lock.
func (o *Overlay) submitLine(points []mgl32.Vec3, list bool, color Color, op *drawOptions) {
	if len(points) < 2 {
		o.logger.Debugf("dropping line with %d points", len(points))
		return
	}
	l := o.reg.linePool.Get()
	l.SetPoints(points, list)
	l.Color = color
	l.expireAt(o.clock.Now(), op.shapeDuration())

	o.mu.Lock()
	o.reg.addLine(l)
	o.mu.Unlock()
}

func (o *Overlay) submitInstance(kind ShapeKind, m mgl32.Mat4, color Color, bounds core.Sphere, op *drawOptions) {
	if !kind.Valid() {
		o.logger.Debugf("dropping instance of invalid shape %d", int(kind))
		return
	}
	if !(bounds.Radius > 0) {
		o.logger.Debugf("dropping %s with radius %v", kind, bounds.Radius)
		return
	}
	inst := o.reg.instancePools[kind].Get()
	inst.Transform = m
	inst.Color = color
	inst.Bounds = bounds
	inst.expireAt(o.clock.Now(), op.shapeDuration())

	o.mu.Lock()
	o.reg.addInstance(inst)
	o.mu.Unlock()
}

// active returns the config and options for a submission, or nil when
// debugging is off.
func (o *Overlay) active(opts []Option) (*Config, *drawOptions) {
	cfg := o.cfg.Load()
	if !cfg.Enabled {
		return nil, nil
	}
	op := collectOptions(opts)
	return cfg, &op
}

func (o *Overlay) DrawLine(a, b mgl32.Vec3, opts ...Option) {
	cfg, op := o.active(opts)
	if cfg == nil {
		return
	}
	o.submitLine([]mgl32.Vec3{a, b}, false, op.colorOr(cfg.Palette.Line), op)
}

// DrawLines draws independent segments; every two points form one line.
func (o *Overlay) DrawLines(pairs []mgl32.Vec3, opts ...Option) {
	cfg, op := o.active(opts)
	if cfg == nil {
		return
	}
	o.submitLine(pairs, true, op.colorOr(cfg.Palette.Line), op)
}

func (o *Overlay) DrawRay(origin, dir mgl32.Vec3, length float32, opts ...Option) {
	cfg, op := o.active(opts)
	if cfg == nil {
		return
	}
	if dir.Len() < 1e-6 || length <= 0 {
		o.logger.Debugf("dropping degenerate ray")
		return
	}
	end := origin.Add(dir.Normalize().Mul(length))
	o.submitLine([]mgl32.Vec3{origin, end}, false, op.colorOr(cfg.Palette.Line), op)
}

// DrawLinePath draws a connected polyline.
func (o *Overlay) DrawLinePath(points []mgl32.Vec3, opts ...Option) {
	cfg, op := o.active(opts)
	if cfg == nil {
		return
	}
	o.submitLine(points, false, op.colorOr(cfg.Palette.Path), op)
}

func (o *Overlay) arrowhead(tip, dir mgl32.Vec3, size float32, color Color, op *drawOptions) {
	if dir.Len() < 1e-6 {
		return
	}
	dir = dir.Normalize()
	m := core.TRS(tip, core.LookRotation(dir), mgl32.Vec3{size, size, size})
	bounds := core.Sphere{Center: tip.Sub(dir.Mul(size / 2)), Radius: size}
	o.submitInstance(ShapeArrowhead, m, color, bounds, op)
}

// DrawArrowhead places an arrowhead with its tip at pos pointing along dir.
func (o *Overlay) DrawArrowhead(pos, dir mgl32.Vec3, opts ...Option) {
	cfg, op := o.active(opts)
	if cfg == nil {
		return
	}
	size := op.sizeOr(cfg.ArrowHeadSize)
	if dir.Len() < 1e-6 || size <= 0 {
		o.logger.Debugf("dropping degenerate arrowhead")
		return
	}
	o.arrowhead(pos, dir, size, op.colorOr(cfg.Palette.Arrow), op)
}

func (o *Overlay) DrawArrow(from, to mgl32.Vec3, opts ...Option) {
	cfg, op := o.active(opts)
	if cfg == nil {
		return
	}
	dir := to.Sub(from)
	if dir.Len() < 1e-6 {
		o.logger.Debugf("dropping zero length arrow")
		return
	}
	color := op.colorOr(cfg.Palette.Arrow)
	o.submitLine([]mgl32.Vec3{from, to}, false, color, op)
	if size := op.sizeOr(cfg.ArrowHeadSize); size > 0 {
		o.arrowhead(to, dir, size, color, op)
	}
}

// DrawArrowPath draws a polyline with an arrowhead at the end of every segment.
func (o *Overlay) DrawArrowPath(points []mgl32.Vec3, opts ...Option) {
	cfg, op := o.active(opts)
	if cfg == nil {
		return
	}
	if len(points) < 2 {
		o.logger.Debugf("dropping arrow path with %d points", len(points))
		return
	}
	color := op.colorOr(cfg.Palette.Arrow)
	o.submitLine(points, false, color, op)
	size := op.sizeOr(cfg.ArrowHeadSize)
	if size <= 0 {
		return
	}
	for i := 1; i < len(points); i++ {
		o.arrowhead(points[i], points[i].Sub(points[i-1]), size, color, op)
	}
}

// DrawLineHit draws a ray test result. On a hit the line is split at hit and
// a marker is placed there; otherwise the whole line uses the hit color.
func (o *Overlay) DrawLineHit(start, end, hit mgl32.Vec3, isHit bool, opts ...Option) {
	cfg, op := o.active(opts)
	if cfg == nil {
		return
	}
	hitColor := op.colorOr(cfg.Palette.LineHit)
	if !isHit {
		o.submitLine([]mgl32.Vec3{start, end}, false, hitColor, op)
		return
	}
	o.submitLine([]mgl32.Vec3{start, hit}, false, hitColor, op)
	o.submitLine([]mgl32.Vec3{hit, end}, false, cfg.Palette.LineAfterHit, op)
	if size := op.sizeOr(cfg.LineHitMarkerSize); size > 0 {
		o.billboard(hit, size, hitColor, op)
	}
}

// DrawBox draws an oriented box centered at center.
func (o *Overlay) DrawBox(center mgl32.Vec3, rotation mgl32.Quat, size mgl32.Vec3, opts ...Option) {
	cfg, op := o.active(opts)
	if cfg == nil {
		return
	}
	if size.X() <= 0 || size.Y() <= 0 || size.Z() <= 0 {
		o.logger.Debugf("dropping box with size %v", size)
		return
	}
	m := core.TRS(center, rotation, size)
	o.submitInstance(ShapeCenteredCube, m, op.colorOr(cfg.Palette.Box), core.Sphere{Center: center, Radius: size.Len() / 2}, op)
}

func (o *Overlay) DrawAABB(box core.AABB, opts ...Option) {
	cfg, op := o.active(opts)
	if cfg == nil {
		return
	}
	size := box.Size()
	if size.X() < 0 || size.Y() < 0 || size.Z() < 0 || size.Len() == 0 {
		o.logger.Debugf("dropping inverted aabb %v", box)
		return
	}
	m := mgl32.Translate3D(box.Min.X(), box.Min.Y(), box.Min.Z()).Mul4(mgl32.Scale3D(size.X(), size.Y(), size.Z()))
	o.submitInstance(ShapeCube, m, op.colorOr(cfg.Palette.Box), core.Sphere{Center: box.Center(), Radius: box.Extents().Len()}, op)
}

func (o *Overlay) DrawSphere(center mgl32.Vec3, radius float32, opts ...Option) {
	cfg, op := o.active(opts)
	if cfg == nil {
		return
	}
	d := radius * 2
	m := mgl32.Translate3D(center.X(), center.Y(), center.Z()).Mul4(mgl32.Scale3D(d, d, d))
	o.submitInstance(ShapeSphere, m, op.colorOr(cfg.Palette.Sphere), core.Sphere{Center: center, Radius: radius}, op)
}

// DrawCylinder draws a cylinder whose axis is the rotated Y axis.
func (o *Overlay) DrawCylinder(center mgl32.Vec3, rotation mgl32.Quat, radius, height float32, opts ...Option) {
	cfg, op := o.active(opts)
	if cfg == nil {
		return
	}
	if radius <= 0 || height <= 0 {
		o.logger.Debugf("dropping cylinder r=%v h=%v", radius, height)
		return
	}
	m := core.TRS(center, rotation, mgl32.Vec3{radius * 2, height, radius * 2})
	r := float32(math.Hypot(float64(radius), float64(height/2)))
	o.submitInstance(ShapeCylinder, m, op.colorOr(cfg.Palette.Cylinder), core.Sphere{Center: center, Radius: r}, op)
}

// DrawPosition draws an axis cross of unit length transformed by m.
func (o *Overlay) DrawPosition(m mgl32.Mat4, opts ...Option) {
	cfg, op := o.active(opts)
	if cfg == nil {
		return
	}
	o.submitInstance(ShapePositionCross, m, op.colorOr(cfg.Palette.Position), core.SphereFromTransform(m, mgl32.Vec3{}, 0.5), op)
}

// DrawGizmo draws the X, Y and Z basis vectors of m as arrows. WithColor
// overrides all three axis colors.
func (o *Overlay) DrawGizmo(m mgl32.Mat4, opts ...Option) {
	cfg, op := o.active(opts)
	if cfg == nil {
		return
	}
	origin := m.Col(3).Vec3()
	axes := [3]Color{cfg.Palette.AxisX, cfg.Palette.AxisY, cfg.Palette.AxisZ}
	size := op.sizeOr(cfg.ArrowHeadSize)
	for i, axisColor := range axes {
		axis := m.Col(i).Vec3()
		if axis.Len() < 1e-6 {
			continue
		}
		color := op.colorOr(axisColor)
		tip := origin.Add(axis)
		o.submitLine([]mgl32.Vec3{origin, tip}, false, color, op)
		if size > 0 {
			o.arrowhead(tip, axis, size, color, op)
		}
	}
}

func (o *Overlay) billboard(pos mgl32.Vec3, size float32, color Color, op *drawOptions) {
	m := mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).Mul4(mgl32.Scale3D(size, size, size))
	o.submitInstance(ShapeBillboardSquare, m, color, core.Sphere{Center: pos, Radius: size * math.Sqrt2 / 2}, op)
}

// DrawBillboardSquare draws a camera facing square of edge size.
func (o *Overlay) DrawBillboardSquare(pos mgl32.Vec3, size float32, opts ...Option) {
	cfg, op := o.active(opts)
	if cfg == nil {
		return
	}
	if size <= 0 {
		o.logger.Debugf("dropping billboard with size %v", size)
		return
	}
	o.billboard(pos, size, op.colorOr(cfg.Palette.Point), op)
}

// DrawPoints draws every point as a billboard square of the configured point size.
func (o *Overlay) DrawPoints(points []mgl32.Vec3, opts ...Option) {
	cfg, op := o.active(opts)
	if cfg == nil {
		return
	}
	size := op.sizeOr(cfg.PointSize)
	if size <= 0 {
		return
	}
	color := op.colorOr(cfg.Palette.Point)
	for _, p := range points {
		o.billboard(p, size, color, op)
	}
}

// DrawCameraFrustum draws the hexahedron bounded by six planes given as
// near, far, left, top, right, bottom. Other orders produce a wrong shape or
// nothing.
func (o *Overlay) DrawCameraFrustum(planes []mgl32.Vec4, opts ...Option) {
	cfg, op := o.active(opts)
	if cfg == nil {
		return
	}
	f, ok := core.FrustumFromSlice(planes)
	if !ok {
		o.logger.Debugf("dropping camera frustum with %d planes", len(planes))
		return
	}
	verts, ok := core.CameraFrustumLines(f)
	if !ok {
		o.logger.Debugf("dropping degenerate camera frustum")
		return
	}
	o.submitLine(verts, true, op.colorOr(cfg.Palette.Frustum), op)
}

// DrawCameraFrustumMatrix draws the frustum of a view-projection matrix.
func (o *Overlay) DrawCameraFrustumMatrix(viewProj mgl32.Mat4, opts ...Option) {
	f := core.ExtractFrustum(viewProj)
	o.DrawCameraFrustum(f[:], opts...)
}

// DrawGrid draws a grid spanning xAxis and yAxis from origin. Grids with more
// than core.MaxGridSubdivisions cells along an axis are dropped.
func (o *Overlay) DrawGrid(origin, xAxis, yAxis mgl32.Vec3, subdivX, subdivY int, opts ...Option) {
	cfg, op := o.active(opts)
	if cfg == nil {
		return
	}
	if xAxis.Len() < 1e-6 || yAxis.Len() < 1e-6 {
		o.logger.Debugf("dropping degenerate grid")
		return
	}
	if subdivX > core.MaxGridSubdivisions || subdivY > core.MaxGridSubdivisions {
		o.logger.Debugf("dropping grid with %dx%d subdivisions", subdivX, subdivY)
		return
	}
	o.submitLine(core.GridLines(origin, xAxis, yAxis, subdivX, subdivY), true, op.colorOr(cfg.Palette.Grid), op)
}
