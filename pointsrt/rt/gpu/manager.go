package gpu

import (
	"github.com/gekko3d/galaxy/pointsrt/rt/core"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// PointSet is the GPU copy of one particle buffer: an instance-rate
// position stream and a color stream of equal length.
type PointSet struct {
	ID        uuid.UUID
	Positions *wgpu.Buffer
	Colors    *wgpu.Buffer
	Count     uint32
}

func (p *PointSet) Release() {
	if p == nil {
		return
	}
	if p.Positions != nil {
		p.Positions.Release()
		p.Positions = nil
	}
	if p.Colors != nil {
		p.Colors.Release()
		p.Colors = nil
	}
	p.Count = 0
}

type PointBufferManager struct {
	Device *wgpu.Device

	CameraBuf *wgpu.Buffer
	BindGroup *wgpu.BindGroup

	// Current is the set drawn each frame, nil while nothing is installed.
	Current *PointSet
}

func NewPointBufferManager(device *wgpu.Device) *PointBufferManager {
	return &PointBufferManager{Device: device}
}

func (m *PointBufferManager) ensureBuffer(name string, buf **wgpu.Buffer, data []byte, usage wgpu.BufferUsage) bool {
	neededSize := uint64(len(data))
	if neededSize%4 != 0 {
		neededSize += 4 - (neededSize % 4)
	}

	current := *buf
	if current == nil || current.GetSize() < neededSize {
		if current != nil {
			current.Release()
		}

		newBuf, err := m.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            name,
			Size:             neededSize,
			Usage:            usage | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			panic(err)
		}
		*buf = newBuf

		if len(data) > 0 {
			m.Device.GetQueue().WriteBuffer(*buf, 0, data)
		}
		return true
	}
	if len(data) > 0 {
		m.Device.GetQueue().WriteBuffer(*buf, 0, data)
	}
	return false
}

// UpdateCamera writes the uniform and reports whether the buffer was
// recreated, in which case the bind group must be rebuilt.
func (m *PointBufferManager) UpdateCamera(u core.CameraUniform) bool {
	return m.ensureBuffer("Camera UB", &m.CameraBuf, u.Bytes(), wgpu.BufferUsageUniform)
}

func (m *PointBufferManager) CreateBindGroup(pipeline *wgpu.RenderPipeline) error {
	if m.BindGroup != nil {
		m.BindGroup.Release()
	}
	bg, err := m.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Points BG",
		Layout: pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: m.CameraBuf, Size: core.CameraUniformSize},
		},
	})
	if err != nil {
		return err
	}
	m.BindGroup = bg
	return nil
}

// Upload copies positions and colors into fresh vertex buffers and makes
// them current. The previous set stays alive until it is passed to
// ReleasePoints.
func (m *PointBufferManager) Upload(id uuid.UUID, positions, colors []mgl32.Vec3) *PointSet {
	set := &PointSet{ID: id, Count: uint32(min(len(positions), len(colors)))}
	if set.Count > 0 {
		m.ensureBuffer("Points Pos VB", &set.Positions, core.Vec3Bytes(positions[:set.Count]), wgpu.BufferUsageVertex)
		m.ensureBuffer("Points Color VB", &set.Colors, core.Vec3Bytes(colors[:set.Count]), wgpu.BufferUsageVertex)
	}
	m.Current = set
	return set
}

// ReleasePoints frees set. Releasing the current set clears it.
func (m *PointBufferManager) ReleasePoints(set *PointSet) {
	if set == nil {
		return
	}
	if m.Current == set {
		m.Current = nil
	}
	set.Release()
}

func (m *PointBufferManager) Release() {
	m.ReleasePoints(m.Current)
	if m.BindGroup != nil {
		m.BindGroup.Release()
		m.BindGroup = nil
	}
	if m.CameraBuf != nil {
		m.CameraBuf.Release()
		m.CameraBuf = nil
	}
}
