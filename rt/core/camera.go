package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type CameraState struct {
	Position    mgl32.Vec3
	Yaw         float32
	Pitch       float32
	Speed       float32
	Sensitivity float32
	FovY        float32 // degrees
	Near, Far   float32
}

func NewCameraState() *CameraState {
	return &CameraState{
		Position:    mgl32.Vec3{0, 2, 20},
		Speed:       10.0,
		Sensitivity: 0.003,
		FovY:        60,
		Near:        0.1,
		Far:         1000,
	}
}

func (c *CameraState) GetForward() mgl32.Vec3 {
	// Y-up, yaw around Y, zero yaw looks down -Z
	return mgl32.Vec3{
		float32(math.Cos(float64(c.Pitch)) * math.Sin(float64(c.Yaw))),
		float32(math.Sin(float64(c.Pitch))),
		float32(-math.Cos(float64(c.Pitch)) * math.Cos(float64(c.Yaw))),
	}
}

func (c *CameraState) GetRight() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(math.Cos(float64(c.Yaw))),
		0,
		float32(math.Sin(float64(c.Yaw))),
	}
}

func (c *CameraState) GetViewMatrix() mgl32.Mat4 {
	eye := c.Position
	return mgl32.LookAtV(eye, eye.Add(c.GetForward()), mgl32.Vec3{0, 1, 0})
}

func (c *CameraState) GetProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// ExtractFrustum extracts the 6 planes of the frustum from the view-projection matrix.
// Returns planes in order: Near, Far, Left, Top, Right, Bottom, normals pointing out.
// Plane is Ax + By + Cz + D = 0.
func ExtractFrustum(vp mgl32.Mat4) Frustum {
	row := func(r int) mgl32.Vec4 {
		return mgl32.Vec4{vp.At(r, 0), vp.At(r, 1), vp.At(r, 2), vp.At(r, 3)}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	var planes Frustum
	// Row combinations give inward normals (OpenGL-style -1..1 depth), flip them.
	planes[PlaneNear] = r3.Add(r2).Mul(-1)
	planes[PlaneFar] = r3.Sub(r2).Mul(-1)
	planes[PlaneLeft] = r3.Add(r0).Mul(-1)
	planes[PlaneTop] = r3.Sub(r1).Mul(-1)
	planes[PlaneRight] = r3.Sub(r0).Mul(-1)
	planes[PlaneBottom] = r3.Add(r1).Mul(-1)

	for i := 0; i < 6; i++ {
		length := planes[i].Vec3().Len()
		if length > 0 {
			planes[i] = planes[i].Mul(1.0 / length)
		}
	}
	return planes
}

// intersectPlanes returns the point shared by three planes.
func intersectPlanes(a, b, c mgl32.Vec4) (mgl32.Vec3, bool) {
	n1, n2, n3 := a.Vec3(), b.Vec3(), c.Vec3()
	c23 := n2.Cross(n3)
	denom := n1.Dot(c23)
	if float32(math.Abs(float64(denom))) < 1e-6 {
		return mgl32.Vec3{}, false
	}
	p := c23.Mul(-a[3]).
		Add(n3.Cross(n1).Mul(-b[3])).
		Add(n1.Cross(n2).Mul(-c[3]))
	return p.Mul(1 / denom), true
}

// FrustumCorners reconstructs the eight frustum corners. Near corners come first,
// each quad ordered top-left, top-right, bottom-right, bottom-left.
// Planes in another order than near, far, left, top, right, bottom produce a
// degenerate result or false.
func FrustumCorners(planes Frustum) ([8]mgl32.Vec3, bool) {
	var corners [8]mgl32.Vec3
	sides := [4][2]int{
		{PlaneLeft, PlaneTop},
		{PlaneRight, PlaneTop},
		{PlaneRight, PlaneBottom},
		{PlaneLeft, PlaneBottom},
	}
	for d, depth := range [2]int{PlaneNear, PlaneFar} {
		for i, s := range sides {
			p, ok := intersectPlanes(planes[depth], planes[s[0]], planes[s[1]])
			if !ok {
				return corners, false
			}
			corners[d*4+i] = p
		}
	}
	return corners, true
}
