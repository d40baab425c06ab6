// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"vkcsgo/math/vec"
)

type Plane struct {
	Normal   vec.Vec3
	Dist     float32
	Type     int32
	SignBits byte // bit i is set if Normal[i] is negative
}

func newPlane(p *plane) Plane {
	r := Plane{
		Normal: vec.FromArray(p.Normal),
		Dist:   p.Dist,
		Type:   p.Type,
	}
	for i := 0; i < 3; i++ {
		if r.Normal.Idx(i) < 0 {
			r.SignBits |= 1 << i
		}
	}
	return r
}

// Distance returns the signed distance of p to the plane.
func (p *Plane) Distance(v vec.Vec3) float32 {
	if p.Type < 3 {
		return v.Idx(int(p.Type)) - p.Dist
	}
	return vec.Dot(v, p.Normal) - p.Dist
}

// BoxOnPlaneSide returns 1 if the box is in front of the plane, 2 if it
// is behind it and 3 if the plane crosses it.
func (p *Plane) BoxOnPlaneSide(mins, maxs vec.Vec3) int {
	if p.Type < 3 {
		if p.Dist <= mins.Idx(int(p.Type)) {
			return 1
		}
		if p.Dist >= maxs.Idx(int(p.Type)) {
			return 2
		}
		return 3
	}
	n := p.Normal
	var d1, d2 float32
	switch p.SignBits {
	case 0:
		d1 = n.X*maxs.X + n.Y*maxs.Y + n.Z*maxs.Z
		d2 = n.X*mins.X + n.Y*mins.Y + n.Z*mins.Z
	case 1:
		d1 = n.X*mins.X + n.Y*maxs.Y + n.Z*maxs.Z
		d2 = n.X*maxs.X + n.Y*mins.Y + n.Z*mins.Z
	case 2:
		d1 = n.X*maxs.X + n.Y*mins.Y + n.Z*maxs.Z
		d2 = n.X*mins.X + n.Y*maxs.Y + n.Z*mins.Z
	case 3:
		d1 = n.X*mins.X + n.Y*mins.Y + n.Z*maxs.Z
		d2 = n.X*maxs.X + n.Y*maxs.Y + n.Z*mins.Z
	case 4:
		d1 = n.X*maxs.X + n.Y*maxs.Y + n.Z*mins.Z
		d2 = n.X*mins.X + n.Y*mins.Y + n.Z*maxs.Z
	case 5:
		d1 = n.X*mins.X + n.Y*maxs.Y + n.Z*mins.Z
		d2 = n.X*maxs.X + n.Y*mins.Y + n.Z*maxs.Z
	case 6:
		d1 = n.X*maxs.X + n.Y*mins.Y + n.Z*mins.Z
		d2 = n.X*mins.X + n.Y*maxs.Y + n.Z*maxs.Z
	default:
		d1 = n.X*mins.X + n.Y*mins.Y + n.Z*mins.Z
		d2 = n.X*maxs.X + n.Y*maxs.Y + n.Z*maxs.Z
	}
	sides := 0
	if d1 >= p.Dist {
		sides = 1
	}
	if d2 < p.Dist {
		sides |= 2
	}
	return sides
}
