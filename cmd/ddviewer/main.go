package main

import (
	"flag"
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/gekko3d/debugdraw"
	"github.com/gekko3d/debugdraw/rt/app"
	"github.com/gekko3d/debugdraw/rt/core"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "TOML overlay config")
	debug := flag.Bool("debug", false, "Enable debug logging")
	graph := flag.Bool("graph", false, "Force the FPS graph on")
	stats := flag.Bool("stats", false, "Show overlay statistics")
	flag.Parse()

	logger := debugdraw.NewDefaultLogger("ddviewer", *debug)

	cfg := debugdraw.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = debugdraw.LoadConfigFile(*configPath); err != nil {
			logger.Errorf("%v", err)
		}
	}
	cfg.Graph.Enabled = cfg.Graph.Enabled || *graph
	cfg.ShowStats = cfg.ShowStats || *stats
	overlay := debugdraw.New(debugdraw.WithLogger(logger), debugdraw.WithConfig(cfg))

	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err := glfw.CreateWindow(1280, 720, "Debug Draw Viewer", nil, nil)
	if err != nil {
		panic(err)
	}
	defer window.Destroy()

	application := app.NewApp(window, overlay)
	if err := application.Init(); err != nil {
		panic(err)
	}
	defer application.Release()
	application.Scene = demoScene

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		application.Resize(width, height)
	})

	var lastX, lastY float64
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if application.MouseCaptured {
			application.Look(xpos-lastX, ypos-lastY)
		}
		lastX, lastY = xpos, ypos
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyTab:
			application.MouseCaptured = !application.MouseCaptured
			if application.MouseCaptured {
				w.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
			} else {
				w.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
			}
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyF1:
			overlay.UpdateConfig(func(c *debugdraw.Config) { c.Enabled = !c.Enabled })
		case glfw.KeyF2:
			overlay.UpdateConfig(func(c *debugdraw.Config) { c.FrustumCulling = !c.FrustumCulling })
		case glfw.KeyF3:
			overlay.UpdateConfig(func(c *debugdraw.Config) { c.Freeze3D = !c.Freeze3D })
		case glfw.KeyF4:
			overlay.UpdateConfig(func(c *debugdraw.Config) { c.Graph.FrameTimeMode = !c.Graph.FrameTimeMode })
		case glfw.KeyF5:
			overlay.UpdateConfig(func(c *debugdraw.Config) { c.ShowStats = !c.ShowStats })
		case glfw.KeyC:
			overlay.ClearAll()
		}
	})

	for !window.ShouldClose() {
		glfw.PollEvents()
		application.Update()
		application.Render()
	}
}

// demoScene exercises every submission kind once per frame.
func demoScene(o *debugdraw.Overlay, t float64) {
	ft := float32(t)

	o.DrawGrid(mgl32.Vec3{-10, 0, -10}, mgl32.Vec3{20, 0, 0}, mgl32.Vec3{0, 0, 20}, 20, 20)
	o.DrawGizmo(mgl32.Ident4())

	orbit := mgl32.Vec3{float32(math.Cos(t)) * 5, 1, float32(math.Sin(t)) * 5}
	o.DrawSphere(orbit, 0.5, debugdraw.WithColor(debugdraw.ColorOrange))
	o.DrawArrow(mgl32.Vec3{0, 1, 0}, orbit)

	rot := mgl32.QuatRotate(ft*0.5, mgl32.Vec3{0, 1, 0})
	o.DrawBox(mgl32.Vec3{-4, 1, -4}, rot, mgl32.Vec3{2, 2, 2})
	o.DrawAABB(core.AABB{Min: mgl32.Vec3{3, 0, -5}, Max: mgl32.Vec3{5, 3, -3}}, debugdraw.WithColor(debugdraw.ColorGreen))
	o.DrawCylinder(mgl32.Vec3{-4, 1, 4}, mgl32.QuatIdent(), 0.75, 2)
	o.DrawPosition(mgl32.Translate3D(4, 0.5, 4))

	path := make([]mgl32.Vec3, 0, 16)
	for i := 0; i < 16; i++ {
		a := float64(i)/15*2*math.Pi + t
		path = append(path, mgl32.Vec3{float32(math.Cos(a)) * 8, 0.2 + float32(i)*0.1, float32(math.Sin(a)) * 8})
	}
	o.DrawLinePath(path)
	o.DrawPoints(path[:4])
	o.DrawArrowPath([]mgl32.Vec3{{-8, 0.1, 8}, {-6, 0.1, 6}, {-8, 0.1, 4}})

	start, end := mgl32.Vec3{-6, 3, 0}, mgl32.Vec3{6, 3, 0}
	hit := start.Add(end.Sub(start).Mul(0.5 + 0.4*float32(math.Sin(t))))
	o.DrawLineHit(start, end, hit, true)
	o.DrawBillboardSquare(mgl32.Vec3{0, 4, 0}, 0.5, debugdraw.WithColor(debugdraw.RGBA(1, 0, 1, 1)))

	eye := mgl32.Vec3{0, 3, 8}
	view := mgl32.LookAtV(eye, eye.Add(mgl32.Vec3{float32(math.Sin(t * 0.3)), -0.3, -1}), mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(40), 16.0/9.0, 0.5, 6)
	o.DrawCameraFrustumMatrix(proj.Mul4(view))

	o.SetText("time", fmt.Sprintf("%.1fs", t))
	o.SetText("orbit", orbit)
	o.BeginTextGroup("Controls", 10, true)
	o.SetText("Tab", "capture mouse", debugdraw.WithPriority(0))
	o.SetText("F1..F5", "toggle enabled/culling/freeze/graph/stats", debugdraw.WithPriority(1))
	o.SetText("C", "clear", debugdraw.WithPriority(2), debugdraw.WithDuration(time.Second))
	o.EndTextGroup()
}
