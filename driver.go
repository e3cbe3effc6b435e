package debugdraw

import (
	"fmt"

	"github.com/gekko3d/debugdraw/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraSource supplies the view-projection matrix used for culling.
// ok is false when no camera is available this frame.
type CameraSource interface {
	ViewProjection() (vp mgl32.Mat4, ok bool)
}

type CameraFunc func() (mgl32.Mat4, bool)

func (f CameraFunc) ViewProjection() (mgl32.Mat4, bool) { return f() }

// Driver runs one Overlay from the host frame loop. It owns exactly one
// overlay; attaching another one is a programming error.
type Driver struct {
	overlay *Overlay
	clock   Clock
	frame   FrameTime

	// Viewport is the editor or window camera.
	Viewport CameraSource
	// Scene is the camera of the running scene.
	Scene CameraSource
}

func NewDriver(clock Clock) *Driver {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Driver{clock: clock}
}

// Attach binds o to the driver. It panics if a different overlay is attached.
func (d *Driver) Attach(o *Overlay) {
	if o == nil {
		panic("Attach: overlay is nil")
	}
	if d.overlay != nil {
		if d.overlay != o {
			o.logger.Errorf("Multiple debug overlays attached: %s and %s", d.overlay.id, o.id)
			panic(fmt.Sprintf("Multiple debug overlays attached: %s and %s", d.overlay.id, o.id))
		}
		return
	}
	d.overlay = o
	o.logger.Infof("debug overlay %s attached", o.id)
}

func (d *Driver) Overlay() *Overlay { return d.overlay }

// camera picks the culling camera: the viewport unless the scene camera is
// forced or the viewport is missing.
func (d *Driver) camera(cfg *Config) CameraSource {
	if cfg.ForceCameraFromScene || d.Viewport == nil {
		return d.Scene
	}
	return d.Viewport
}

// Tick advances the frame clock, refreshes the culling frustum and updates the
// overlay.
func (d *Driver) Tick() {
	if d.overlay == nil {
		return
	}
	dt := d.frame.tick(d.clock.Now())
	o := d.overlay

	var planes []mgl32.Vec4
	if cam := d.camera(o.cfg.Load()); cam != nil {
		if vp, ok := cam.ViewProjection(); ok {
			f := core.ExtractFrustum(vp)
			planes = f[:]
		}
	}
	o.SetFrustum(planes)
	o.Update(dt)
}

// Redraw paints the overlay onto c when it changed or force is set. It
// reports whether anything was drawn.
func (d *Driver) Redraw(c Canvas, force bool) bool {
	if d.overlay == nil || c == nil {
		return false
	}
	if !force && !d.overlay.NeedsRedraw() {
		return false
	}
	d.overlay.Draw(c)
	return true
}
