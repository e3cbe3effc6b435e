package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis aligned bounding box given by its min and max corners.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// BoundsOfPolyline expands a box by every point of the path.
// An empty path yields the zero box.
func BoundsOfPolyline(points []mgl32.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	b := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min = mgl32.Vec3{min(b.Min.X(), p.X()), min(b.Min.Y(), p.Y()), min(b.Min.Z(), p.Z())}
		b.Max = mgl32.Vec3{max(b.Max.X(), p.X()), max(b.Max.Y(), p.Y()), max(b.Max.Z(), p.Z())}
	}
	return b
}

func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Extents returns the half size of the box.
func (b AABB) Extents() mgl32.Vec3 {
	return b.Max.Sub(b.Min).Mul(0.5)
}

func (b AABB) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Sphere is a bounding sphere.
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

// SphereFromTransform bounds a local sphere (localCenter, localRadius) placed by m.
// The radius is scaled by the longest basis vector so the result stays conservative
// under non-uniform scale.
func SphereFromTransform(m mgl32.Mat4, localCenter mgl32.Vec3, localRadius float32) Sphere {
	center := m.Mul4x1(localCenter.Vec4(1)).Vec3()
	sx := m.Col(0).Vec3().Len()
	sy := m.Col(1).Vec3().Len()
	sz := m.Col(2).Vec3().Len()
	return Sphere{
		Center: center,
		Radius: localRadius * max(sx, max(sy, sz)),
	}
}
