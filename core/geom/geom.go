/*
Package geom provides the small amount of vector arithmetic needed for laying
out glyph quads: 2D/3D/4D vectors and 4×4 matrices in row-major order, as
defined by golang.org/x/image/math/f32.

Matrix functions follow the conventions of GLSL-style math libraries:
Translate and Scale post-multiply, i.e. Translate(m, v) = m · T(v), so a chain
of calls reads in the order the transformations are applied to a point, last
one first.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package geom

import (
	"math"

	"golang.org/x/image/math/f32"
)

// Identity returns the 4×4 identity matrix.
func Identity() f32.Mat4 {
	return f32.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// IsIdentity is true if m is the identity matrix.
func IsIdentity(m f32.Mat4) bool {
	return m == Identity()
}

// Mul returns the matrix product a · b.
func Mul(a, b f32.Mat4) f32.Mat4 {
	var m f32.Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[r*4+k] * b[k*4+c]
			}
			m[r*4+c] = sum
		}
	}
	return m
}

// Translate returns m · T(v).
func Translate(m f32.Mat4, v f32.Vec3) f32.Mat4 {
	t := Identity()
	t[3], t[7], t[11] = v[0], v[1], v[2]
	return Mul(m, t)
}

// Scale returns m · S(v).
func Scale(m f32.Mat4, v f32.Vec3) f32.Mat4 {
	s := Identity()
	s[0], s[5], s[10] = v[0], v[1], v[2]
	return Mul(m, s)
}

// TransformPoint multiplies m with the homogeneous point (p, 1) and returns
// the first three components. No perspective division takes place.
func TransformPoint(m f32.Mat4, p f32.Vec3) f32.Vec3 {
	return f32.Vec3{
		m[0]*p[0] + m[1]*p[1] + m[2]*p[2] + m[3],
		m[4]*p[0] + m[5]*p[1] + m[6]*p[2] + m[7],
		m[8]*p[0] + m[9]*p[1] + m[10]*p[2] + m[11],
	}
}

// Add3 returns a + b.
func Add3(a, b f32.Vec3) f32.Vec3 {
	return f32.Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub3 returns a - b.
func Sub3(a, b f32.Vec3) f32.Vec3 {
	return f32.Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Length3 returns the euclidean length of v.
func Length3(v f32.Vec3) float32 {
	return float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
}

// Distance3 returns the euclidean distance between a and b.
func Distance3(a, b f32.Vec3) float32 {
	return Length3(Sub3(a, b))
}

// Max2 returns the component-wise maximum of a and b.
func Max2(a, b f32.Vec2) f32.Vec2 {
	return f32.Vec2{max32(a[0], b[0]), max32(a[1], b[1])}
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
