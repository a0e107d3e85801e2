package core

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Vec3Stride is the vertex stride of one position or color.
const Vec3Stride = uint64(unsafe.Sizeof(mgl32.Vec3{}))

// Vec3Bytes views v as raw bytes without copying. The result aliases v.
func Vec3Bytes(v []mgl32.Vec3) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*int(Vec3Stride))
}
