package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// All meshes in this file are line lists: every two vertices form one segment.

const (
	SphereDetail   = 16
	CylinderDetail = 24
)

var cubeCorners = [8]mgl32.Vec3{
	{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1},
	{0, 1, 0}, {1, 1, 0}, {1, 1, 1}, {0, 1, 1},
}

// Corner index pairs for the 12 edges of a hexahedron laid out as
// bottom quad (0..3) and top quad (4..7).
var hexEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

func hexahedronLines(corners [8]mgl32.Vec3) []mgl32.Vec3 {
	verts := make([]mgl32.Vec3, 0, len(hexEdges)*2)
	for _, e := range hexEdges {
		verts = append(verts, corners[e[0]], corners[e[1]])
	}
	return verts
}

// CubeLines is a unit cube spanning 0..1 on every axis.
func CubeLines() []mgl32.Vec3 {
	return hexahedronLines(cubeCorners)
}

// CenteredCubeLines is a unit cube spanning -0.5..0.5.
func CenteredCubeLines() []mgl32.Vec3 {
	var corners [8]mgl32.Vec3
	half := mgl32.Vec3{0.5, 0.5, 0.5}
	for i, c := range cubeCorners {
		corners[i] = c.Sub(half)
	}
	return hexahedronLines(corners)
}

// ArrowheadLines is a four sided pyramid with its tip at the origin and its
// base at z = -1 (half width 0.25), so +Z is the pointing direction.
func ArrowheadLines() []mgl32.Vec3 {
	tip := mgl32.Vec3{0, 0, 0}
	const w = 0.25
	base := [4]mgl32.Vec3{{-w, -w, -1}, {w, -w, -1}, {w, w, -1}, {-w, w, -1}}
	verts := make([]mgl32.Vec3, 0, 16)
	for i := 0; i < 4; i++ {
		verts = append(verts, tip, base[i])
		verts = append(verts, base[i], base[(i+1)%4])
	}
	return verts
}

// SquareLines is a unit square in the XY plane spanning -0.5..0.5.
func SquareLines() []mgl32.Vec3 {
	const h = 0.5
	return []mgl32.Vec3{
		{-h, -h, 0}, {h, -h, 0},
		{h, -h, 0}, {h, h, 0},
		{h, h, 0}, {-h, h, 0},
		{-h, h, 0}, {-h, -h, 0},
	}
}

// PositionCrossLines is three axis segments of length 1 through the origin.
func PositionCrossLines() []mgl32.Vec3 {
	const h = 0.5
	return []mgl32.Vec3{
		{-h, 0, 0}, {h, 0, 0},
		{0, -h, 0}, {0, h, 0},
		{0, 0, -h}, {0, 0, h},
	}
}

// SphereLines is a latitude/longitude wireframe of radius 0.5.
// detail controls the number of segments per ring, minimum 4.
func SphereLines(detail int) []mgl32.Vec3 {
	if detail < 4 {
		detail = 4
	}
	const r = 0.5
	lats := detail / 2
	lons := detail

	point := func(lat, lon int) mgl32.Vec3 {
		theta := math.Pi * float64(lat) / float64(lats)
		phi := 2 * math.Pi * float64(lon) / float64(lons)
		st, ct := math.Sincos(theta)
		sp, cp := math.Sincos(phi)
		return mgl32.Vec3{float32(r * st * cp), float32(r * ct), float32(r * st * sp)}
	}

	var verts []mgl32.Vec3
	for lat := 0; lat <= lats; lat++ {
		for lon := 0; lon < lons; lon++ {
			p := point(lat, lon)
			// ring segment, poles collapse to a point and are skipped
			if lat > 0 && lat < lats {
				verts = append(verts, p, point(lat, lon+1))
			}
			// meridian segment
			if lat < lats {
				verts = append(verts, p, point(lat+1, lon))
			}
		}
	}
	return verts
}

func circle(radius float32, y float32, segments int) []mgl32.Vec3 {
	verts := make([]mgl32.Vec3, 0, segments*2)
	step := 2 * math.Pi / float64(segments)
	for i := 0; i < segments; i++ {
		s1, c1 := math.Sincos(float64(i) * step)
		s2, c2 := math.Sincos(float64(i+1) * step)
		verts = append(verts,
			mgl32.Vec3{radius * float32(c1), y, radius * float32(s1)},
			mgl32.Vec3{radius * float32(c2), y, radius * float32(s2)})
	}
	return verts
}

// CylinderLines is a Y-up cylinder of radius 0.5 and height 1 centered on the origin.
func CylinderLines(segments int) []mgl32.Vec3 {
	if segments < 4 {
		segments = 4
	}
	const r, h = 0.5, 0.5
	verts := circle(r, h, segments)
	verts = append(verts, circle(r, -h, segments)...)
	for i := 0; i < 4; i++ {
		s, c := math.Sincos(float64(i) * math.Pi / 2)
		x, z := float32(r*c), float32(r*s)
		verts = append(verts, mgl32.Vec3{x, h, z}, mgl32.Vec3{x, -h, z})
	}
	return verts
}

// CameraFrustumLines builds the 12 edges of the frustum hexahedron.
// See FrustumCorners for the plane order precondition.
func CameraFrustumLines(planes Frustum) ([]mgl32.Vec3, bool) {
	c, ok := FrustumCorners(planes)
	if !ok {
		return nil, false
	}
	// near quad 0..3 and far quad 4..7 already match the hexahedron layout
	return hexahedronLines(c), true
}

// MaxGridSubdivisions bounds each grid axis.
const MaxGridSubdivisions = 1024

// PathLines converts a polyline into a line list.
func PathLines(points []mgl32.Vec3) []mgl32.Vec3 {
	if len(points) < 2 {
		return nil
	}
	return AppendPathLines(make([]mgl32.Vec3, 0, (len(points)-1)*2), points)
}

// AppendPathLines appends the segments of a polyline to dst as a line list.
func AppendPathLines(dst, points []mgl32.Vec3) []mgl32.Vec3 {
	for i := 0; i < len(points)-1; i++ {
		dst = append(dst, points[i], points[i+1])
	}
	return dst
}

// GridLines builds a grid of (subdivX+1)+(subdivY+1) lines starting at origin
// and spanning the two axis vectors. Subdivisions are clamped to
// [1, MaxGridSubdivisions].
func GridLines(origin, xAxis, yAxis mgl32.Vec3, subdivX, subdivY int) []mgl32.Vec3 {
	subdivX = min(max(subdivX, 1), MaxGridSubdivisions)
	subdivY = min(max(subdivY, 1), MaxGridSubdivisions)
	verts := make([]mgl32.Vec3, 0, (subdivX+subdivY+2)*2)
	for i := 0; i <= subdivX; i++ {
		p := origin.Add(xAxis.Mul(float32(i) / float32(subdivX)))
		verts = append(verts, p, p.Add(yAxis))
	}
	for i := 0; i <= subdivY; i++ {
		p := origin.Add(yAxis.Mul(float32(i) / float32(subdivY)))
		verts = append(verts, p, p.Add(xAxis))
	}
	return verts
}

// ShapeLines returns the instancing template of a shape kind.
func ShapeLines(kind ShapeKind) []mgl32.Vec3 {
	switch kind {
	case ShapeCube:
		return CubeLines()
	case ShapeCenteredCube:
		return CenteredCubeLines()
	case ShapeArrowhead:
		return ArrowheadLines()
	case ShapeBillboardSquare:
		return SquareLines()
	case ShapePositionCross:
		return PositionCrossLines()
	case ShapeSphere:
		return SphereLines(SphereDetail)
	case ShapeCylinder:
		return CylinderLines(CylinderDetail)
	}
	return nil
}
