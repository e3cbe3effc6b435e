package core

import "github.com/go-gl/mathgl/mgl32"

// Frustum plane slots. Hosts must supply planes in exactly this order.
const (
	PlaneNear = iota
	PlaneFar
	PlaneLeft
	PlaneTop
	PlaneRight
	PlaneBottom
)

// Frustum is six planes in Ax+By+Cz+D=0 form with the normal pointing OUTSIDE,
// ordered near, far, left, top, right, bottom.
type Frustum [6]mgl32.Vec4

// FrustumFromSlice accepts only a 6 plane slice. Anything else reports false
// and the caller should skip culling for the frame.
func FrustumFromSlice(planes []mgl32.Vec4) (Frustum, bool) {
	var f Frustum
	if len(planes) != 6 {
		return f, false
	}
	copy(f[:], planes)
	return f, true
}

func planeDistance(plane mgl32.Vec4, p mgl32.Vec3) float32 {
	return plane[0]*p[0] + plane[1]*p[1] + plane[2]*p[2] + plane[3]
}

// SphereInFrustum reports whether a sphere is inside or intersecting the frustum.
// A sphere whose center lies further than radius in front of any plane is outside.
func SphereInFrustum(center mgl32.Vec3, radius float32, planes Frustum) bool {
	for i := 0; i < 6; i++ {
		if planeDistance(planes[i], center) > radius {
			return false
		}
	}
	return true
}

// AABBInFrustum checks if an AABB is visible within the frustum.
// The test can report boxes near frustum corners as visible, it never hides a visible box.
func AABBInFrustum(box AABB, planes Frustum) bool {
	center := box.Center()
	ext := box.Extents()
	for i := 0; i < 6; i++ {
		plane := planes[i]

		// Corner deepest behind the plane (most inside).
		var p mgl32.Vec3
		for a := 0; a < 3; a++ {
			if plane[a] > 0 {
				p[a] = center[a] - ext[a]
			} else {
				p[a] = center[a] + ext[a]
			}
		}

		if planeDistance(plane, p) > 0 {
			return false
		}
	}
	return true
}
