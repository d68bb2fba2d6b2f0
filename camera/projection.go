package camera

import (
	"math"

	"github.com/seqsense/pcgol/mat"
)

// Perspective returns a column-major perspective projection.
// fovy is the vertical field of view in radians.
func Perspective(fovy, aspect, near, far float32) mat.Mat4 {
	halfFovCot := 1 / float32(math.Tan(float64(fovy/2)))
	return mat.Mat4{
		halfFovCot / aspect, 0, 0, 0,
		0, halfFovCot, 0, 0,
		0, 0, -(far + near) / (far - near), -1,
		0, 0, -2 * far * near / (far - near), 0,
	}
}

// LookAt returns a column-major view matrix placing the eye at eye and
// looking toward center.
func LookAt(eye, center, up mat.Vec3) mat.Mat4 {
	f := center.Sub(eye).Normalized()
	s := f.Cross(up).Normalized()
	u := s.Cross(f)
	return mat.Mat4{
		s[0], u[0], -f[0], 0,
		s[1], u[1], -f[1], 0,
		s[2], u[2], -f[2], 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}
