package core

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraUniformSize is the byte size of the points shader's Camera struct
// rounded up to the uniform buffer alignment.
const CameraUniformSize = 256

// CameraUniform mirrors struct Camera in points.wgsl.
type CameraUniform struct {
	View           mgl32.Mat4
	Proj           mgl32.Mat4
	PointSize      float32
	PixelRatio     float32
	ViewportWidth  float32
	ViewportHeight float32
}

// Bytes packs the uniform little endian, matrices column major.
func (u CameraUniform) Bytes() []byte {
	buf := make([]byte, CameraUniformSize)
	off := 0
	put := func(v float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	for _, v := range u.View {
		put(v)
	}
	for _, v := range u.Proj {
		put(v)
	}
	put(u.PointSize)
	put(u.PixelRatio)
	put(u.ViewportWidth)
	put(u.ViewportHeight)
	return buf
}
