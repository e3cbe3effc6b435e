package gpu

import (
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/debugdraw/rt/shaders"
)

// OverlayPass blits a CPU-rasterized RGBA overlay over the frame.
type OverlayPass struct {
	Device *wgpu.Device
	Queue  *wgpu.Queue

	Pipeline  *wgpu.RenderPipeline
	Sampler   *wgpu.Sampler
	Texture   *wgpu.Texture
	View      *wgpu.TextureView
	BindGroup *wgpu.BindGroup

	Width  uint32
	Height uint32
}

func NewOverlayPass(device *wgpu.Device, format wgpu.TextureFormat, width, height int) (*OverlayPass, error) {
	mod, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "OverlayShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.OverlayWGSL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create overlay shader: %w", err)
	}

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "OverlayPipeline",
		Vertex: wgpu.VertexState{
			Module:     mod,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     mod,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format: format,
				Blend: &wgpu.BlendState{
					Color: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorSrcAlpha,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						Operation: wgpu.BlendOperationAdd,
					},
					Alpha: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorOne,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						Operation: wgpu.BlendOperationAdd,
					},
				},
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleList,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create overlay pipeline: %w", err)
	}

	sampler, err := device.CreateSampler(&wgpu.SamplerDescriptor{
		MinFilter:     wgpu.FilterModeNearest,
		MagFilter:     wgpu.FilterModeNearest,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create overlay sampler: %w", err)
	}

	p := &OverlayPass{
		Device:   device,
		Queue:    device.GetQueue(),
		Pipeline: pipeline,
		Sampler:  sampler,
	}
	if err := p.Resize(width, height); err != nil {
		return nil, err
	}
	return p, nil
}

// Resize recreates the overlay texture and its bind group.
func (p *OverlayPass) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid overlay size %dx%d", width, height)
	}
	if p.Texture != nil && p.Width == uint32(width) && p.Height == uint32(height) {
		return nil
	}
	p.releaseTexture()

	tex, err := p.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Debug Overlay",
		Size:          wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return fmt.Errorf("failed to create overlay texture: %w", err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return fmt.Errorf("failed to create overlay view: %w", err)
	}
	bg, err := p.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: p.Pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: view},
			{Binding: 1, Sampler: p.Sampler},
		},
	})
	if err != nil {
		view.Release()
		tex.Release()
		return fmt.Errorf("failed to create overlay bind group: %w", err)
	}

	p.Texture, p.View, p.BindGroup = tex, view, bg
	p.Width, p.Height = uint32(width), uint32(height)
	return nil
}

// Upload copies img into the overlay texture. Sizes must match.
func (p *OverlayPass) Upload(img *image.RGBA) error {
	b := img.Bounds()
	if uint32(b.Dx()) != p.Width || uint32(b.Dy()) != p.Height {
		return fmt.Errorf("overlay image %dx%d does not match texture %dx%d", b.Dx(), b.Dy(), p.Width, p.Height)
	}
	p.Queue.WriteTexture(p.Texture.AsImageCopy(), img.Pix, &wgpu.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(img.Stride),
		RowsPerImage: p.Height,
	}, &wgpu.Extent3D{Width: p.Width, Height: p.Height, DepthOrArrayLayers: 1})
	return nil
}

// Draw records the fullscreen blit into an open render pass.
func (p *OverlayPass) Draw(pass *wgpu.RenderPassEncoder) {
	if p.BindGroup == nil {
		return
	}
	pass.SetPipeline(p.Pipeline)
	pass.SetBindGroup(0, p.BindGroup, nil)
	pass.Draw(3, 1, 0, 0)
}

func (p *OverlayPass) releaseTexture() {
	if p.BindGroup != nil {
		p.BindGroup.Release()
		p.BindGroup = nil
	}
	if p.View != nil {
		p.View.Release()
		p.View = nil
	}
	if p.Texture != nil {
		p.Texture.Release()
		p.Texture = nil
	}
}

func (p *OverlayPass) Release() {
	p.releaseTexture()
	if p.Sampler != nil {
		p.Sampler.Release()
		p.Sampler = nil
	}
}
