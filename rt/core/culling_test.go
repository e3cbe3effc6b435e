package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func testFrustum() Frustum {
	// Camera at origin looking down -Z
	// Perspective: 90 deg FOV, Aspect 1.0, Near 1, Far 100
	proj := mgl32.Perspective(mgl32.DegToRad(90), 1.0, 1.0, 100.0)
	view := mgl32.LookAtV(
		mgl32.Vec3{0, 0, 0},  // Eye
		mgl32.Vec3{0, 0, -1}, // Center
		mgl32.Vec3{0, 1, 0},  // Up
	)
	return ExtractFrustum(proj.Mul4(view))
}

func TestAABBFrustumCulling(t *testing.T) {
	planes := testFrustum()

	tests := []struct {
		name     string
		aabbMin  mgl32.Vec3
		aabbMax  mgl32.Vec3
		expected bool
	}{
		{
			name:     "Inside (center)",
			aabbMin:  mgl32.Vec3{-1, -1, -10},
			aabbMax:  mgl32.Vec3{1, 1, -5},
			expected: true,
		},
		{
			name:     "Outside (Left)",
			aabbMin:  mgl32.Vec3{-20, -1, -10},
			aabbMax:  mgl32.Vec3{-15, 1, -5},
			expected: false,
		},
		{
			name:     "Outside (Right)",
			aabbMin:  mgl32.Vec3{15, -1, -10},
			aabbMax:  mgl32.Vec3{20, 1, -5},
			expected: false,
		},
		{
			name:     "Outside (Top)",
			aabbMin:  mgl32.Vec3{-1, 15, -10},
			aabbMax:  mgl32.Vec3{1, 20, -5},
			expected: false,
		},
		{
			name:     "Outside (Behind/Near)",
			aabbMin:  mgl32.Vec3{-1, -1, 2},
			aabbMax:  mgl32.Vec3{1, 1, 5},
			expected: false,
		},
		{
			name:     "Outside (Far)",
			aabbMin:  mgl32.Vec3{-1, -1, -200},
			aabbMax:  mgl32.Vec3{1, 1, -150},
			expected: false,
		},
		{
			name:     "Intersecting (Left Plane)",
			aabbMin:  mgl32.Vec3{-15, -1, -10}, // Left edge is at roughly -10 (tan(45)*10)
			aabbMax:  mgl32.Vec3{-5, 1, -5},
			expected: true,
		},
		{
			name:     "Encompassing (Huge box)",
			aabbMin:  mgl32.Vec3{-1000, -1000, -1000},
			aabbMax:  mgl32.Vec3{1000, 1000, 1000},
			expected: true,
		},
	}

	for _, tc := range tests {
		visible := AABBInFrustum(AABB{Min: tc.aabbMin, Max: tc.aabbMax}, planes)
		if visible != tc.expected {
			t.Errorf("Test %s failed: expected %v, got %v", tc.name, tc.expected, visible)
			center := tc.aabbMin.Add(tc.aabbMax).Mul(0.5)
			for i, p := range planes {
				t.Logf("  P%d: %v, Dist(Center)=%f", i, p, p.Dot(center.Vec4(1.0)))
			}
		}
	}
}

func TestSphereFrustumCulling(t *testing.T) {
	planes := testFrustum()

	tests := []struct {
		name     string
		center   mgl32.Vec3
		radius   float32
		expected bool
	}{
		{"Inside", mgl32.Vec3{0, 0, -10}, 1, true},
		{"Point at frustum center", mgl32.Vec3{0, 0, -50.5}, 0, true},
		{"Outside left", mgl32.Vec3{-30, 0, -10}, 1, false},
		{"Touching left", mgl32.Vec3{-11, 0, -10}, 2, true},
		{"Behind camera", mgl32.Vec3{0, 0, 5}, 1, false},
		{"Beyond far", mgl32.Vec3{0, 0, -120}, 5, false},
		{"Straddling far", mgl32.Vec3{0, 0, -102}, 5, true},
	}

	for _, tc := range tests {
		if got := SphereInFrustum(tc.center, tc.radius, planes); got != tc.expected {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.expected, got)
		}
	}
}

// Each plane alone must reject a box lying fully on its outer side.
func TestSinglePlaneRejection(t *testing.T) {
	planes := testFrustum()
	for i, p := range planes {
		n := p.Vec3()
		// A point 5 units outside plane i.
		onPlane := n.Mul(-p[3])
		outside := onPlane.Add(n.Mul(5))
		box := AABB{Min: outside.Sub(mgl32.Vec3{1, 1, 1}), Max: outside.Add(mgl32.Vec3{1, 1, 1})}

		if AABBInFrustum(box, planes) {
			t.Errorf("plane %d: box outside the plane reported visible", i)
		}
		if SphereInFrustum(outside, 1, planes) {
			t.Errorf("plane %d: sphere outside the plane reported visible", i)
		}
	}
}

func TestFrustumFromSlice(t *testing.T) {
	if _, ok := FrustumFromSlice(make([]mgl32.Vec4, 4)); ok {
		t.Error("4 planes should be rejected")
	}
	if _, ok := FrustumFromSlice(nil); ok {
		t.Error("nil planes should be rejected")
	}
	planes := testFrustum()
	f, ok := FrustumFromSlice(planes[:])
	if !ok || f != planes {
		t.Error("6 planes should round trip")
	}
}

func TestFrustumOrtho(t *testing.T) {
	proj := mgl32.Ortho(-10, 10, -10, 10, 0, 20)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	planes := ExtractFrustum(proj.Mul4(view))

	if !AABBInFrustum(AABB{Min: mgl32.Vec3{-1, -1, -6}, Max: mgl32.Vec3{1, 1, -4}}, planes) {
		t.Error("Ortho: AABB should be inside")
	}

	// Near=0 => Z=0. Far=20 => Z=-20.
	if AABBInFrustum(AABB{Min: mgl32.Vec3{-1, -1, -26}, Max: mgl32.Vec3{1, 1, -24}}, planes) {
		t.Error("Ortho: AABB at -25 should be outside (Far=20 => Z=-20)")
	}
}
