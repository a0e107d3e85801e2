package app

import (
	"fmt"
	"unsafe"

	"github.com/gekko3d/galaxy/pointsrt/rt/core"
	"github.com/gekko3d/galaxy/pointsrt/rt/shaders"

	"github.com/cogentcore/webgpu/wgpu"
)

var textVertexSize = uint64(unsafe.Sizeof(core.TextVertex{}))

// textOverlay draws screen space text from a baked glyph atlas. It is
// rebuilt from Items every frame.
type textOverlay struct {
	device *wgpu.Device
	queue  *wgpu.Queue
	glyphs *core.TextRenderer

	atlas     *wgpu.Texture
	atlasView *wgpu.TextureView
	sampler   *wgpu.Sampler
	pipeline  *wgpu.RenderPipeline
	bindGroup *wgpu.BindGroup
	vertices  *wgpu.Buffer
	count     uint32

	Items []core.TextItem
}

func newTextOverlay(device *wgpu.Device, queue *wgpu.Queue, format wgpu.TextureFormat, fontSize float64) (*textOverlay, error) {
	glyphs, err := core.NewTextRenderer(fontSize)
	if err != nil {
		return nil, err
	}
	o := &textOverlay{device: device, queue: queue, glyphs: glyphs}
	if err := o.uploadAtlas(); err != nil {
		o.release()
		return nil, err
	}
	if err := o.createPipeline(format); err != nil {
		o.release()
		return nil, err
	}
	return o, nil
}

func (o *textOverlay) uploadAtlas() error {
	img := o.glyphs.AtlasImage
	size := wgpu.Extent3D{
		Width:              uint32(img.Bounds().Dx()),
		Height:             uint32(img.Bounds().Dy()),
		DepthOrArrayLayers: 1,
	}
	var err error
	o.atlas, err = o.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Glyph Atlas",
		Size:          size,
		Format:        wgpu.TextureFormatR8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return fmt.Errorf("glyph atlas: %w", err)
	}
	o.queue.WriteTexture(o.atlas.AsImageCopy(), img.Pix, &wgpu.TextureDataLayout{
		BytesPerRow:  uint32(img.Stride),
		RowsPerImage: size.Height,
	}, &size)

	if o.atlasView, err = o.atlas.CreateView(nil); err != nil {
		return fmt.Errorf("glyph atlas view: %w", err)
	}
	o.sampler, err = o.device.CreateSampler(&wgpu.SamplerDescriptor{
		MinFilter:     wgpu.FilterModeLinear,
		MagFilter:     wgpu.FilterModeLinear,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("glyph sampler: %w", err)
	}
	return nil
}

func (o *textOverlay) createPipeline(format wgpu.TextureFormat) error {
	mod, err := o.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Overlay Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.TextWGSL},
	})
	if err != nil {
		return fmt.Errorf("overlay shader: %w", err)
	}
	defer mod.Release()

	alphaBlend := &wgpu.BlendState{
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
	}
	o.pipeline, err = o.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "Overlay Pipeline",
		Vertex: wgpu.VertexState{
			Module:     mod,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: textVertexSize,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x2, Offset: uint64(unsafe.Offsetof(core.TextVertex{}.Pos)), ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x2, Offset: uint64(unsafe.Offsetof(core.TextVertex{}.UV)), ShaderLocation: 1},
					{Format: wgpu.VertexFormatFloat32x4, Offset: uint64(unsafe.Offsetof(core.TextVertex{}.Color)), ShaderLocation: 2},
				},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     mod,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				Blend:     alphaBlend,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive:   wgpu.PrimitiveState{Topology: wgpu.PrimitiveTopologyTriangleList},
		Multisample: wgpu.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
	})
	if err != nil {
		return fmt.Errorf("overlay pipeline: %w", err)
	}

	o.bindGroup, err = o.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: o.pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: o.atlasView},
			{Binding: 1, Sampler: o.sampler},
		},
	})
	if err != nil {
		return fmt.Errorf("overlay bind group: %w", err)
	}
	return nil
}

func (o *textOverlay) add(text string, x, y, scale float32, color [4]float32) {
	o.Items = append(o.Items, core.TextItem{Text: text, Position: [2]float32{x, y}, Scale: scale, Color: color})
}

// prepare lays out Items for a width x height target and uploads the
// vertices, growing the buffer when needed.
func (o *textOverlay) prepare(width, height uint32) error {
	o.count = 0
	verts := o.glyphs.BuildVertices(o.Items, int(width), int(height))
	if len(verts) == 0 {
		return nil
	}
	size := uint64(len(verts)) * textVertexSize
	if o.vertices == nil || o.vertices.GetSize() < size {
		if o.vertices != nil {
			o.vertices.Release()
			o.vertices = nil
		}
		buf, err := o.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "Overlay Vertices",
			Size:  size,
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("overlay vertices: %w", err)
		}
		o.vertices = buf
	}
	o.queue.WriteBuffer(o.vertices, 0, unsafe.Slice((*byte)(unsafe.Pointer(&verts[0])), size))
	o.count = uint32(len(verts))
	return nil
}

func (o *textOverlay) draw(pass *wgpu.RenderPassEncoder) {
	if o.count == 0 {
		return
	}
	pass.SetPipeline(o.pipeline)
	pass.SetBindGroup(0, o.bindGroup, nil)
	pass.SetVertexBuffer(0, o.vertices, 0, uint64(o.count)*textVertexSize)
	pass.Draw(o.count, 1, 0, 0)
}

func (o *textOverlay) clear() {
	o.Items = o.Items[:0]
	o.count = 0
}

func (o *textOverlay) release() {
	if o.vertices != nil {
		o.vertices.Release()
	}
	if o.bindGroup != nil {
		o.bindGroup.Release()
	}
	if o.pipeline != nil {
		o.pipeline.Release()
	}
	if o.sampler != nil {
		o.sampler.Release()
	}
	if o.atlasView != nil {
		o.atlasView.Release()
	}
	if o.atlas != nil {
		o.atlas.Release()
	}
	*o = textOverlay{}
}
