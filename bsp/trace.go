// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"log/slog"

	"vkcsgo/math"
	"vkcsgo/math/vec"
)

type TracePlane struct {
	Normal   vec.Vec3
	Distance float32
}

type Trace struct {
	AllSolid   bool // the whole segment is inside solid leafs
	StartSolid bool
	Fraction   float32 // 1 if nothing was hit
	EndPos     vec.Vec3
	Plane      TracePlane // plane of the impact point
}

// TraceLine moves a point from start to end through model and stops at the
// first leaf with solid contents.
func (m *Map) TraceLine(model int, start, end vec.Vec3) (Trace, error) {
	root, err := m.root(model)
	if err != nil {
		return Trace{}, err
	}
	t := &tracer{root: root}
	t.trace = Trace{
		AllSolid: true,
		Fraction: 1,
		EndPos:   end,
	}
	t.recursiveCheck(root, 0, 1, start, end)
	return t.trace, nil
}

type tracer struct {
	root  Node
	trace Trace
}

func solid(contents int32) bool {
	return contents != contentsNode && contents&ContentsSolid != 0
}

func pointContents(node Node, p vec.Vec3) int32 {
	for {
		switch n := node.(type) {
		case *MNode:
			if n.Plane.Distance(p) < 0 {
				node = n.Children[1]
			} else {
				node = n.Children[0]
			}
		default:
			return node.Contents()
		}
	}
}

// recursiveCheck returns false once the impact point has been found.
func (t *tracer) recursiveCheck(node Node, p1f, p2f float32, p1, p2 vec.Vec3) bool {
	const epsilon = 0.03125 // (1/32) to keep floating point happy
	n, ok := node.(*MNode)
	if !ok {
		if !solid(node.Contents()) {
			t.trace.AllSolid = false
		} else {
			t.trace.StartSolid = true
		}
		return true
	}
	plane := &n.Plane
	t1 := plane.Distance(p1)
	t2 := plane.Distance(p2)
	if t1 >= 0 && t2 >= 0 {
		return t.recursiveCheck(n.Children[0], p1f, p2f, p1, p2)
	}
	if t1 < 0 && t2 < 0 {
		return t.recursiveCheck(n.Children[1], p1f, p2f, p1, p2)
	}

	// put the crosspoint epsilon units on the near side
	var frac float32
	if t1 < 0 {
		frac = (t1 + epsilon) / (t1 - t2)
	} else {
		frac = (t1 - epsilon) / (t1 - t2)
	}
	frac = math.Clamp(0, frac, 1)
	midf := math.Lerp(p1f, p2f, frac)
	mid := vec.Lerp(p1, p2, frac)
	side := 0
	if t1 < 0 {
		side = 1
	}

	// move up to the node
	if !t.recursiveCheck(n.Children[side], p1f, midf, p1, mid) {
		return false
	}
	if !solid(pointContents(n.Children[side^1], mid)) {
		return t.recursiveCheck(n.Children[side^1], midf, p2f, mid, p2)
	}
	if t.trace.AllSolid {
		return false // never got out of the solid area
	}
	// the other side of the node is solid, this is the impact point
	if side == 0 {
		t.trace.Plane = TracePlane{Normal: plane.Normal, Distance: plane.Dist}
	} else {
		t.trace.Plane = TracePlane{Normal: plane.Normal.Neg(), Distance: -plane.Dist}
	}
	for solid(pointContents(t.root, mid)) {
		// shouldn't really happen, but does occasionally
		frac -= 0.1
		if frac < 0 {
			t.trace.Fraction = midf
			t.trace.EndPos = mid
			slog.Debug("trace backed up past the start")
			return false
		}
		midf = math.Lerp(p1f, p2f, frac)
		mid = vec.Lerp(p1, p2, frac)
	}
	t.trace.Fraction = midf
	t.trace.EndPos = mid
	return false
}
