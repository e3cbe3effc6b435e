package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestBoundsOfPolyline(t *testing.T) {
	empty := BoundsOfPolyline(nil)
	if empty != (AABB{}) {
		t.Errorf("empty path should give the zero box, got %v", empty)
	}

	b := BoundsOfPolyline([]mgl32.Vec3{{1, -2, 3}, {-4, 5, 0}, {2, 2, 2}})
	if b.Min != (mgl32.Vec3{-4, -2, 0}) || b.Max != (mgl32.Vec3{2, 5, 3}) {
		t.Errorf("unexpected bounds %v", b)
	}
	if b.Center() != (mgl32.Vec3{-1, 1.5, 1.5}) {
		t.Errorf("unexpected center %v", b.Center())
	}
	if b.Extents() != (mgl32.Vec3{3, 3.5, 1.5}) {
		t.Errorf("unexpected extents %v", b.Extents())
	}
}

func TestSphereFromTransform(t *testing.T) {
	m := TRS(mgl32.Vec3{10, 0, 0}, mgl32.QuatIdent(), mgl32.Vec3{2, 4, 1})
	s := SphereFromTransform(m, mgl32.Vec3{}, 0.5)

	if !closeEnough(s.Center.X(), 10, 1e-5) {
		t.Errorf("center should follow translation, got %v", s.Center)
	}
	if !closeEnough(s.Radius, 2, 1e-5) {
		t.Errorf("radius should use the largest scale axis, got %f", s.Radius)
	}
}

func TestTransformComposition(t *testing.T) {
	tr := NewTransform()
	tr.Position = mgl32.Vec3{10, 20, 30}
	tr.Scale = mgl32.Vec3{2, 2, 2}

	p := tr.ObjectToWorld().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	if !closeEnough(p.X(), 12, 1e-5) || !closeEnough(p.Y(), 20, 1e-5) {
		t.Errorf("unexpected transformed point %v", p)
	}

	q := LookRotation(mgl32.Vec3{1, 0, 0})
	d := q.Rotate(mgl32.Vec3{0, 0, 1})
	if !closeEnough(d.X(), 1, 1e-4) {
		t.Errorf("+Z should rotate onto +X, got %v", d)
	}
	if LookRotation(mgl32.Vec3{}) != mgl32.QuatIdent() {
		t.Error("zero direction should give identity")
	}
}

func closeEnough(a, b, epsilon float32) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < epsilon
}
