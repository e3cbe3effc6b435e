package app

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/gekko3d/debugdraw"
	"github.com/gekko3d/debugdraw/ggcanvas"
	"github.com/gekko3d/debugdraw/rt/core"
	"github.com/gekko3d/debugdraw/rt/gpu"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// SceneFunc submits the frame's debug content. t is seconds since start.
type SceneFunc func(o *debugdraw.Overlay, t float64)

// App is a standalone glfw + WebGPU viewer for a debug overlay.
type App struct {
	Window   *glfw.Window
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Surface  *wgpu.Surface
	Config   *wgpu.SurfaceConfiguration

	Logger  debugdraw.Logger
	Overlay *debugdraw.Overlay
	Driver  *debugdraw.Driver
	Canvas  *ggcanvas.Canvas
	Debug   *gpu.DebugPass
	Blit    *gpu.OverlayPass
	Camera  *core.CameraState
	Scene   SceneFunc

	ClearColor    wgpu.Color
	MouseCaptured bool
	StartTime     float64
	LastTime      float64
	forceRedraw   bool
}

func NewApp(window *glfw.Window, overlay *debugdraw.Overlay) *App {
	return &App{
		Window:     window,
		Logger:     overlay.Logger(),
		Overlay:    overlay,
		Driver:     debugdraw.NewDriver(nil),
		Camera:     core.NewCameraState(),
		ClearColor: wgpu.Color{R: 0.08, G: 0.08, B: 0.1, A: 1},
	}
}

func (a *App) Init() error {
	a.Instance = wgpu.CreateInstance(nil)
	a.Surface = a.Instance.CreateSurface(GetSurfaceDescriptor(a.Window))

	adapter, err := a.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: a.Surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("failed to request adapter: %w", err)
	}
	a.Adapter = adapter

	a.Device, err = adapter.RequestDevice(nil)
	if err != nil {
		return fmt.Errorf("failed to request device: %w", err)
	}
	a.Queue = a.Device.GetQueue()

	width, height := a.Window.GetFramebufferSize()
	caps := a.Surface.GetCapabilities(adapter)
	a.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	a.Surface.Configure(adapter, a.Device, a.Config)

	a.Debug, err = gpu.NewDebugPass(a.Device, a.Config.Format, a.Logger)
	if err != nil {
		return err
	}
	a.Blit, err = gpu.NewOverlayPass(a.Device, a.Config.Format, width, height)
	if err != nil {
		return err
	}
	a.Canvas, err = ggcanvas.New(width, height, nil, a.Overlay.Config().Text.FontSize)
	if err != nil {
		return err
	}

	a.Overlay.SetSurface(a.Debug)
	a.Driver.Attach(a.Overlay)
	a.Driver.Viewport = debugdraw.CameraFunc(func() (mgl32.Mat4, bool) {
		view, proj := a.matrices()
		return proj.Mul4(view), true
	})

	a.StartTime = glfw.GetTime()
	a.LastTime = a.StartTime
	a.forceRedraw = true
	a.Logger.Infof("viewer initialized %dx%d format=%v", width, height, a.Config.Format)
	return nil
}

func (a *App) matrices() (view, proj mgl32.Mat4) {
	aspect := float32(1)
	if a.Config != nil && a.Config.Height > 0 {
		aspect = float32(a.Config.Width) / float32(a.Config.Height)
	}
	return a.Camera.GetViewMatrix(), a.Camera.GetProjectionMatrix(aspect)
}

func (a *App) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	a.Config.Width = uint32(w)
	a.Config.Height = uint32(h)
	a.Surface.Configure(a.Adapter, a.Device, a.Config)
	if err := a.Canvas.Resize(w, h); err != nil {
		a.Logger.Errorf("%v", err)
	}
	if err := a.Blit.Resize(w, h); err != nil {
		a.Logger.Errorf("%v", err)
	}
	a.forceRedraw = true
}

// Look applies a mouse delta to the fly camera.
func (a *App) Look(dx, dy float64) {
	a.Camera.Yaw += float32(dx) * a.Camera.Sensitivity
	a.Camera.Pitch -= float32(dy) * a.Camera.Sensitivity
	a.Camera.Pitch = mgl32.Clamp(a.Camera.Pitch, -1.55, 1.55)
}

func (a *App) move(dt float32) {
	var dir mgl32.Vec3
	fwd, right := a.Camera.GetForward(), a.Camera.GetRight()
	if a.Window.GetKey(glfw.KeyW) == glfw.Press {
		dir = dir.Add(fwd)
	}
	if a.Window.GetKey(glfw.KeyS) == glfw.Press {
		dir = dir.Sub(fwd)
	}
	if a.Window.GetKey(glfw.KeyD) == glfw.Press {
		dir = dir.Add(right)
	}
	if a.Window.GetKey(glfw.KeyA) == glfw.Press {
		dir = dir.Sub(right)
	}
	if a.Window.GetKey(glfw.KeySpace) == glfw.Press {
		dir = dir.Add(mgl32.Vec3{0, 1, 0})
	}
	if a.Window.GetKey(glfw.KeyLeftControl) == glfw.Press {
		dir = dir.Sub(mgl32.Vec3{0, 1, 0})
	}
	if dir.Len() > 0 {
		a.Camera.Position = a.Camera.Position.Add(dir.Normalize().Mul(a.Camera.Speed * dt))
	}
}

// Update runs the scene callback and advances the overlay one frame.
func (a *App) Update() {
	now := glfw.GetTime()
	dt := float32(now - a.LastTime)
	a.LastTime = now
	a.move(dt)

	view, proj := a.matrices()
	a.Debug.SetCamera(view, proj)

	if a.Scene != nil {
		a.Scene(a.Overlay, now-a.StartTime)
	}
	a.Driver.Tick()

	if a.forceRedraw || a.Overlay.NeedsRedraw() {
		a.Canvas.Clear()
		a.Driver.Redraw(a.Canvas, true)
		if err := a.Blit.Upload(a.Canvas.Image()); err != nil {
			a.Logger.Errorf("%v", err)
		}
		a.forceRedraw = false
	}
}

func (a *App) Render() {
	nextTexture, err := a.Surface.GetCurrentTexture()
	if err != nil {
		a.Logger.Errorf("GetCurrentTexture failed: %v", err)
		return
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		a.Logger.Errorf("CreateView failed: %v", err)
		return
	}
	defer view.Release()

	encoder, err := a.Device.CreateCommandEncoder(nil)
	if err != nil {
		a.Logger.Errorf("CreateCommandEncoder failed: %v", err)
		return
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: a.ClearColor,
		}},
	})
	a.Debug.Draw(pass)
	a.Blit.Draw(pass)
	if err := pass.End(); err != nil {
		a.Logger.Errorf("render pass End failed: %v", err)
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		a.Logger.Errorf("encoder Finish failed: %v", err)
		return
	}
	a.Queue.Submit(cmd)
	a.Surface.Present()
}

func (a *App) Release() {
	if a.Debug != nil {
		a.Debug.Release()
	}
	if a.Blit != nil {
		a.Blit.Release()
	}
	if a.Canvas != nil {
		_ = a.Canvas.Close()
	}
}

func GetSurfaceDescriptor(w *glfw.Window) *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(w)
}
