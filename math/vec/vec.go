// SPDX-License-Identifier: GPL-2.0-or-later

package vec

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Vec3 is a position or direction in map space. Source maps are z-up.
type Vec3 struct {
	X, Y, Z float32
}

func FromArray(a [3]float32) Vec3 {
	return Vec3{a[0], a[1], a[2]}
}

func FromInt16(a [3]int16) Vec3 {
	return Vec3{float32(a[0]), float32(a[1]), float32(a[2])}
}

// Idx returns the component along axis i, 0 = x, 1 = y, 2 = z.
func (v Vec3) Idx(i int) float32 {
	switch i {
	default:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g %g %g)", v.X, v.Y, v.Z)
}

// Length returns the length of the vector
func (v Vec3) Length() float32 {
	return math32.Sqrt(Dot(v, v))
}

// Sub returns a - b
func Sub(a, b Vec3) Vec3 {
	return Vec3{
		X: a.X - b.X,
		Y: a.Y - b.Y,
		Z: a.Z - b.Z,
	}
}

// Scale returns the vector multiplied by the skalar s
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{
		X: v.X * s,
		Y: v.Y * s,
		Z: v.Z * s,
	}
}

func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Normalize returns the normalized vector
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Dot returns a dot b
func Dot(a Vec3, b Vec3) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns a cross b
func Cross(a, b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Lerp computes a weighted average between two points
func Lerp(a, b Vec3, frac float32) Vec3 {
	fi := 1 - frac
	return Vec3{
		fi*a.X + frac*b.X,
		fi*a.Y + frac*b.Y,
		fi*a.Z + frac*b.Z,
	}
}

func minmax(a, b float32) (float32, float32) {
	if a < b {
		return a, b
	}
	return b, a
}

// MinMax returns the component wise minimum and maximum of a and b.
func MinMax(a, b Vec3) (Vec3, Vec3) {
	var r, s Vec3
	r.X, s.X = minmax(a.X, b.X)
	r.Y, s.Y = minmax(a.Y, b.Y)
	r.Z, s.Z = minmax(a.Z, b.Z)
	return r, s
}
