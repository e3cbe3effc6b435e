package gpu

import (
	"fmt"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/debugdraw"
	"github.com/gekko3d/debugdraw/rt/core"
	"github.com/gekko3d/debugdraw/rt/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

// ShapeVertex matches the WGSL template vertex input.
type ShapeVertex struct {
	Pos [3]float32
}

// CameraUniform matches the WGSL Camera struct.
type CameraUniform struct {
	ViewProj mgl32.Mat4
}

const instanceMargin = 128

// DebugPass draws the overlay's 3D batches: one instanced line-list draw per
// shape kind plus one draw for free lines. It implements debugdraw.Surface3D.
type DebugPass struct {
	Device *wgpu.Device
	Queue  *wgpu.Queue
	Logger debugdraw.Logger

	InstancedPipeline *wgpu.RenderPipeline
	LinePipeline      *wgpu.RenderPipeline
	CameraBuffer      *wgpu.Buffer
	CameraBindGroup   *wgpu.BindGroup

	VertexBuffer *wgpu.Buffer
	ShapeOffsets [core.ShapeKindCount]uint32
	ShapeCounts  [core.ShapeKindCount]uint32

	InstanceBuffers [core.ShapeKindCount]*wgpu.Buffer
	InstanceCaps    [core.ShapeKindCount]uint32
	InstanceCounts  [core.ShapeKindCount]uint32

	LineBuffer *wgpu.Buffer
	LineCap    uint32
	LineCount  uint32

	billboards []debugdraw.InstanceData
	camRight   mgl32.Vec3
	camUp      mgl32.Vec3
	camForward mgl32.Vec3
}

func NewDebugPass(device *wgpu.Device, format wgpu.TextureFormat, logger debugdraw.Logger) (*DebugPass, error) {
	if logger == nil {
		logger = debugdraw.NewNopLogger()
	}
	shaderModule, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "DebugDrawShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.DebugWGSL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create debug shader: %w", err)
	}

	bgl, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "DebugDrawCameraBGL",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(unsafe.Sizeof(CameraUniform{})),
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create camera layout: %w", err)
	}

	layout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		BindGroupLayouts: []*wgpu.BindGroupLayout{bgl},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline layout: %w", err)
	}

	fragment := &wgpu.FragmentState{
		Module:     shaderModule,
		EntryPoint: "fs_main",
		Targets: []wgpu.ColorTargetState{
			{
				Format:    format,
				WriteMask: wgpu.ColorWriteMaskAll,
				Blend: &wgpu.BlendState{
					Color: wgpu.BlendComponent{
						Operation: wgpu.BlendOperationAdd,
						SrcFactor: wgpu.BlendFactorSrcAlpha,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
					},
					Alpha: wgpu.BlendComponent{
						Operation: wgpu.BlendOperationAdd,
						SrcFactor: wgpu.BlendFactorOne,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
					},
				},
			},
		},
	}
	primitive := wgpu.PrimitiveState{
		Topology:  wgpu.PrimitiveTopologyLineList,
		FrontFace: wgpu.FrontFaceCCW,
		CullMode:  wgpu.CullModeNone,
	}
	multisample := wgpu.MultisampleState{Count: 1, Mask: 0xFFFFFFFF}

	instanced, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "DebugDrawInstancedPipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     shaderModule,
			EntryPoint: "vs_instanced",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(unsafe.Sizeof(ShapeVertex{})),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					},
				},
				{
					ArrayStride: uint64(unsafe.Sizeof(debugdraw.InstanceData{})),
					StepMode:    wgpu.VertexStepModeInstance,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 2},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 3},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 4},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 5},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 64, ShaderLocation: 6},
					},
				},
			},
		},
		Fragment:    fragment,
		Primitive:   primitive,
		Multisample: multisample,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create instanced pipeline: %w", err)
	}

	lines, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "DebugDrawLinePipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     shaderModule,
			EntryPoint: "vs_lines",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(unsafe.Sizeof(debugdraw.LineVertex{})),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1},
					},
				},
			},
		},
		Fragment:    fragment,
		Primitive:   primitive,
		Multisample: multisample,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create line pipeline: %w", err)
	}

	p := &DebugPass{
		Device:            device,
		Queue:             device.GetQueue(),
		Logger:            logger,
		InstancedPipeline: instanced,
		LinePipeline:      lines,
		camRight:          mgl32.Vec3{1, 0, 0},
		camUp:             mgl32.Vec3{0, 1, 0},
		camForward:        mgl32.Vec3{0, 0, 1},
	}

	p.CameraBuffer, err = device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "DebugDrawCamera",
		Size:  uint64(unsafe.Sizeof(CameraUniform{})),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create camera buffer: %w", err)
	}
	p.CameraBindGroup, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "DebugDrawCameraBG",
		Layout: bgl,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: p.CameraBuffer, Size: uint64(unsafe.Sizeof(CameraUniform{}))},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create camera bind group: %w", err)
	}

	vertices, offsets, counts := BuildShapeTemplates()
	p.ShapeOffsets = offsets
	p.ShapeCounts = counts
	vSize := uint64(len(vertices) * int(unsafe.Sizeof(ShapeVertex{})))
	p.VertexBuffer, err = device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "DebugDrawTemplates",
		Size:  vSize,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create template buffer: %w", err)
	}
	p.Queue.WriteBuffer(p.VertexBuffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), vSize))

	return p, nil
}

// BuildShapeTemplates concatenates every shape template into one vertex list
// and returns where each kind starts and how many vertices it has.
func BuildShapeTemplates() (vertices []ShapeVertex, offsets, counts [core.ShapeKindCount]uint32) {
	for _, kind := range core.AllShapeKinds() {
		lines := core.ShapeLines(kind)
		offsets[kind] = uint32(len(vertices))
		counts[kind] = uint32(len(lines))
		for _, v := range lines {
			vertices = append(vertices, ShapeVertex{Pos: v})
		}
	}
	return vertices, offsets, counts
}

// SetCamera uploads the view-projection and remembers the camera basis for
// billboards.
func (p *DebugPass) SetCamera(view, proj mgl32.Mat4) {
	u := CameraUniform{ViewProj: proj.Mul4(view)}
	p.Queue.WriteBuffer(p.CameraBuffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&u)), unsafe.Sizeof(u)))

	// rows of the view rotation are the camera axes in world space
	p.camRight = mgl32.Vec3{view.At(0, 0), view.At(0, 1), view.At(0, 2)}
	p.camUp = mgl32.Vec3{view.At(1, 0), view.At(1, 1), view.At(1, 2)}
	p.camForward = mgl32.Vec3{view.At(2, 0), view.At(2, 1), view.At(2, 2)}
}

// FaceCamera rewrites the rotation of m so its XY plane faces the camera,
// keeping translation and the X scale.
func FaceCamera(m mgl32.Mat4, right, up, forward mgl32.Vec3) mgl32.Mat4 {
	s := m.Col(0).Vec3().Len()
	out := m
	out.SetCol(0, right.Mul(s).Vec4(0))
	out.SetCol(1, up.Mul(s).Vec4(0))
	out.SetCol(2, forward.Mul(s).Vec4(0))
	return out
}

// UpdateInstances uploads one kind's batch.
func (p *DebugPass) UpdateInstances(kind debugdraw.ShapeKind, instances []debugdraw.InstanceData) {
	if !kind.Valid() {
		return
	}
	p.InstanceCounts[kind] = uint32(len(instances))
	if len(instances) == 0 {
		return
	}
	if kind == debugdraw.ShapeBillboardSquare {
		p.billboards = append(p.billboards[:0], instances...)
		for i := range p.billboards {
			p.billboards[i].ModelMat = FaceCamera(p.billboards[i].ModelMat, p.camRight, p.camUp, p.camForward)
		}
		instances = p.billboards
	}

	count := uint32(len(instances))
	if p.InstanceBuffers[kind] == nil || p.InstanceCaps[kind] < count {
		if p.InstanceBuffers[kind] != nil {
			p.InstanceBuffers[kind].Release()
		}
		var err error
		p.InstanceCaps[kind] = count + instanceMargin
		p.InstanceBuffers[kind], err = p.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "DebugDrawInstances_" + kind.String(),
			Size:  uint64(p.InstanceCaps[kind]) * uint64(unsafe.Sizeof(debugdraw.InstanceData{})),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			p.Logger.Errorf("failed to grow %s instance buffer: %v", kind, err)
			p.InstanceBuffers[kind] = nil
			p.InstanceCaps[kind] = 0
			p.InstanceCounts[kind] = 0
			return
		}
	}
	size := uint64(count) * uint64(unsafe.Sizeof(debugdraw.InstanceData{}))
	p.Queue.WriteBuffer(p.InstanceBuffers[kind], 0, unsafe.Slice((*byte)(unsafe.Pointer(&instances[0])), size))
}

// UpdateLines uploads the free line vertices.
func (p *DebugPass) UpdateLines(vertices []debugdraw.LineVertex) {
	p.LineCount = uint32(len(vertices))
	if len(vertices) == 0 {
		return
	}
	if p.LineBuffer == nil || p.LineCap < p.LineCount {
		if p.LineBuffer != nil {
			p.LineBuffer.Release()
		}
		var err error
		p.LineCap = p.LineCount + instanceMargin*2
		p.LineBuffer, err = p.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "DebugDrawLines",
			Size:  uint64(p.LineCap) * uint64(unsafe.Sizeof(debugdraw.LineVertex{})),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			p.Logger.Errorf("failed to grow line buffer: %v", err)
			p.LineBuffer = nil
			p.LineCap = 0
			p.LineCount = 0
			return
		}
	}
	size := uint64(p.LineCount) * uint64(unsafe.Sizeof(debugdraw.LineVertex{}))
	p.Queue.WriteBuffer(p.LineBuffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), size))
}

// Draw records the debug geometry into an open render pass.
func (p *DebugPass) Draw(pass *wgpu.RenderPassEncoder) {
	pass.SetPipeline(p.InstancedPipeline)
	pass.SetBindGroup(0, p.CameraBindGroup, nil)
	pass.SetVertexBuffer(0, p.VertexBuffer, 0, p.VertexBuffer.GetSize())
	for kind := range p.InstanceBuffers {
		count := p.InstanceCounts[kind]
		if count == 0 || p.InstanceBuffers[kind] == nil {
			continue
		}
		pass.SetVertexBuffer(1, p.InstanceBuffers[kind], 0, p.InstanceBuffers[kind].GetSize())
		pass.Draw(p.ShapeCounts[kind], count, p.ShapeOffsets[kind], 0)
	}

	if p.LineCount == 0 || p.LineBuffer == nil {
		return
	}
	pass.SetPipeline(p.LinePipeline)
	pass.SetBindGroup(0, p.CameraBindGroup, nil)
	pass.SetVertexBuffer(0, p.LineBuffer, 0, p.LineBuffer.GetSize())
	pass.Draw(p.LineCount, 1, 0, 0)
}

func (p *DebugPass) Release() {
	for i, b := range p.InstanceBuffers {
		if b != nil {
			b.Release()
			p.InstanceBuffers[i] = nil
		}
	}
	if p.LineBuffer != nil {
		p.LineBuffer.Release()
		p.LineBuffer = nil
	}
	if p.VertexBuffer != nil {
		p.VertexBuffer.Release()
		p.VertexBuffer = nil
	}
	if p.CameraBuffer != nil {
		p.CameraBuffer.Release()
		p.CameraBuffer = nil
	}
}

var _ debugdraw.Surface3D = (*DebugPass)(nil)
