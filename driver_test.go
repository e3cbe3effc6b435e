package debugdraw

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriver_AttachTwicePanics(t *testing.T) {
	d := NewDriver(newManualClock())
	a := New(WithClock(newManualClock()))
	b := New(WithClock(newManualClock()))

	d.Attach(a)
	require.NotPanics(t, func() { d.Attach(a) }, "reattaching the same overlay is fine")

	require.PanicsWithValue(t, fmt.Sprintf("Multiple debug overlays attached: %s and %s", a.ID(), b.ID()), func() {
		d.Attach(b)
	})
	assert.Same(t, a, d.Overlay())
}

func lookingDownNegZ() CameraFunc {
	return func() (mgl32.Mat4, bool) {
		proj := mgl32.Perspective(mgl32.DegToRad(60), 1, 0.1, 100)
		view := mgl32.LookAtV(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
		return proj.Mul4(view), true
	}
}

func lookingDownPosZ() CameraFunc {
	return func() (mgl32.Mat4, bool) {
		proj := mgl32.Perspective(mgl32.DegToRad(60), 1, 0.1, 100)
		view := mgl32.LookAtV(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0})
		return proj.Mul4(view), true
	}
}

func TestDriver_TickUsesCameraFrustum(t *testing.T) {
	clock := newManualClock()
	o := New(WithClock(clock))
	d := NewDriver(clock)
	d.Attach(o)
	d.Viewport = lookingDownNegZ()
	d.Scene = lookingDownPosZ()

	o.DrawSphere(mgl32.Vec3{0, 0, -10}, 1, WithDuration(time.Hour))
	d.Tick()
	_, ok := o.Frustum()
	require.True(t, ok)
	assert.Equal(t, 1, o.VisibleCount(ShapeSphere), "viewport camera sees -Z")

	o.UpdateConfig(func(c *Config) { c.ForceCameraFromScene = true })
	clock.Advance(16 * time.Millisecond)
	d.Tick()
	assert.Equal(t, 0, o.VisibleCount(ShapeSphere), "scene camera looks the other way")
}

func TestDriver_MissingCameraDisablesCulling(t *testing.T) {
	clock := newManualClock()
	o := New(WithClock(clock))
	d := NewDriver(clock)
	d.Attach(o)
	d.Viewport = CameraFunc(func() (mgl32.Mat4, bool) { return mgl32.Mat4{}, false })

	o.DrawSphere(mgl32.Vec3{0, 0, 1000}, 1)
	d.Tick()
	_, ok := o.Frustum()
	assert.False(t, ok)
	assert.Equal(t, 1, o.VisibleCount(ShapeSphere))
}

func TestDriver_TickFeedsGraph(t *testing.T) {
	clock := newManualClock()
	o := New(WithClock(clock))
	o.UpdateConfig(func(c *Config) { c.Graph.Enabled = true })
	d := NewDriver(clock)
	d.Attach(o)

	d.Tick() // first tick has no delta
	for i := 0; i < 5; i++ {
		clock.Advance(20 * time.Millisecond)
		d.Tick()
	}
	o.mu.Lock()
	st := o.graph.stats(true)
	o.mu.Unlock()
	// the opening sample is stored at both ends of the ring
	assert.Equal(t, 6, st.Count)
	assert.InDelta(t, 20, st.Avg, 1e-3)
}

func TestDriver_Redraw(t *testing.T) {
	clock := newManualClock()
	o := New(WithClock(clock))
	d := NewDriver(clock)
	c := NewRecordingCanvas(320, 200, nil)
	assert.False(t, d.Redraw(c, true), "no overlay attached")

	d.Attach(o)
	o.SetText("hello", nil)
	assert.True(t, d.Redraw(c, false))
	assert.Equal(t, []string{"hello"}, c.Texts())

	c.Reset()
	assert.False(t, d.Redraw(c, false), "nothing changed")
	assert.True(t, d.Redraw(c, true))
}

func TestDriver_RepeatedTextExpiresWithoutRedraws(t *testing.T) {
	clock := newManualClock()
	o := New(WithClock(clock))
	d := NewDriver(clock)
	d.Attach(o)
	c := NewRecordingCanvas(640, 480, nil)

	drawn := 0
	for i := 0; i < 2; i++ {
		o.SetText("speed", "10")
		clock.Advance(100 * time.Millisecond)
		d.Tick()
		if d.Redraw(c, false) {
			drawn++
		}
	}
	assert.Equal(t, 1, drawn, "unchanged text does not ask for a redraw")

	for i := 0; i < 100; i++ {
		clock.Advance(100 * time.Millisecond)
		d.Tick()
		d.Redraw(c, false)
	}
	assert.Empty(t, o.TextLines())
	assert.Zero(t, o.Stats().LiveTexts)
}
