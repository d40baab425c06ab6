// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"math"

	"github.com/pkg/errors"

	"vkcsgo/math/vec"
)

func convertVertices(in []vertex) []vec.Vec3 {
	out := make([]vec.Vec3, len(in))
	for i := range in {
		out[i] = vec.FromArray(in[i].Point)
	}
	return out
}

func convertEdges(in []edge) []Edge {
	out := make([]Edge, len(in))
	for i, e := range in {
		out[i] = Edge{V: e.V}
	}
	return out
}

func convertFaces(in []face) []Face {
	out := make([]Face, len(in))
	for i := range in {
		f := &in[i]
		out[i] = Face{
			FirstSurfedge: int(f.FirstEdge),
			EdgeCount:     int(f.NumEdges),
			Plane:         int(f.PlaneNum),
			Side:          f.Side,
			OnNode:        f.OnNode != 0,
			TexInfo:       int(f.TexInfo),
			DispInfo:      int(f.DispInfo),
			Styles:        f.Styles,
			LightOffset:   f.LightOfs,
			Area:          f.Area,
		}
	}
	return out
}

// edgeIndex returns the edge a surfedge refers to.
func edgeIndex(surfedge int32) int {
	if surfedge < 0 {
		return -int(surfedge)
	}
	return int(surfedge)
}

// checkGeometry makes sure every face only references existing surfedges,
// edges and vertices, so Triangulate can not fail on a loaded map.
func (m *Map) checkGeometry() error {
	for i, e := range m.Edges {
		for _, v := range e.V {
			if !inRange(v, len(m.Vertices)) {
				return corrupt("edge %d: vertex %d of %d", i, v, len(m.Vertices))
			}
		}
	}
	for i, se := range m.Surfedges {
		if se == math.MinInt32 || !inRange(edgeIndex(se), len(m.Edges)) {
			return corrupt("surfedge %d: edge %d of %d", i, se, len(m.Edges))
		}
	}
	for i := range m.Faces {
		f := &m.Faces[i]
		if !spanInRange(f.FirstSurfedge, f.EdgeCount, len(m.Surfedges)) {
			return corrupt("face %d: surfedges %d+%d of %d", i, f.FirstSurfedge, f.EdgeCount, len(m.Surfedges))
		}
		if !inRange(f.Plane, len(m.Planes)) {
			return corrupt("face %d: plane %d of %d", i, f.Plane, len(m.Planes))
		}
		if f.TexInfo != -1 && !inRange(f.TexInfo, len(m.TexInfos)) {
			return corrupt("face %d: texinfo %d of %d", i, f.TexInfo, len(m.TexInfos))
		}
	}
	return nil
}

// Triangulate returns the triangle fan of face as vertex indices. The
// first vertex of the first surfedge is shared by all triangles.
// Faces with less than 3 edges have no triangles.
func (m *Map) Triangulate(face int) ([][3]uint16, error) {
	if !inRange(face, len(m.Faces)) {
		return nil, errors.Errorf("no face %d, map has %d", face, len(m.Faces))
	}
	f := &m.Faces[face]
	if f.EdgeCount < 3 {
		return nil, nil
	}
	if !spanInRange(f.FirstSurfedge, f.EdgeCount, len(m.Surfedges)) {
		return nil, corrupt("face %d: surfedges %d+%d of %d", face, f.FirstSurfedge, f.EdgeCount, len(m.Surfedges))
	}
	surfedge := func(j int) (int32, Edge, error) {
		se := m.Surfedges[f.FirstSurfedge+j]
		ei := edgeIndex(se)
		if se == math.MinInt32 || !inRange(ei, len(m.Edges)) {
			return 0, Edge{}, corrupt("face %d: edge %d of %d", face, se, len(m.Edges))
		}
		return se, m.Edges[ei], nil
	}
	_, first, err := surfedge(0)
	if err != nil {
		return nil, err
	}
	fan := first.V[0]
	tris := make([][3]uint16, 0, f.EdgeCount-2)
	for j := 1; j < f.EdgeCount-1; j++ {
		se, e, err := surfedge(j)
		if err != nil {
			return nil, err
		}
		if se >= 0 {
			tris = append(tris, [3]uint16{fan, e.V[0], e.V[1]})
		} else {
			tris = append(tris, [3]uint16{fan, e.V[1], e.V[0]})
		}
	}
	return tris, nil
}

// FaceNormal returns the unit normal of the first triangle of face, which
// follows the winding of Triangulate. Faces without triangles and
// degenerate ones have a zero normal.
func (m *Map) FaceNormal(face int) (vec.Vec3, error) {
	tris, err := m.Triangulate(face)
	if err != nil || len(tris) == 0 {
		return vec.Vec3{}, err
	}
	a := m.Vertices[tris[0][0]]
	b := m.Vertices[tris[0][1]]
	c := m.Vertices[tris[0][2]]
	return vec.Cross(vec.Sub(b, a), vec.Sub(c, a)).Normalize(), nil
}

// Mesh returns one index buffer holding the triangles of all faces, in order.
func (m *Map) Mesh(faces []int) ([]uint32, error) {
	var out []uint32
	for _, f := range faces {
		tris, err := m.Triangulate(f)
		if err != nil {
			return nil, err
		}
		for _, t := range tris {
			out = append(out, uint32(t[0]), uint32(t[1]), uint32(t[2]))
		}
	}
	return out, nil
}

// ModelFaces returns the indices of the faces that belong to model.
func (m *Map) ModelFaces(model int) ([]int, error) {
	if !inRange(model, len(m.Models)) {
		return nil, errors.Errorf("no model %d, map has %d", model, len(m.Models))
	}
	mod := &m.Models[model]
	if !spanInRange(mod.FirstFace, mod.FaceCount, len(m.Faces)) {
		return nil, corrupt("model %d: faces %d+%d of %d", model, mod.FirstFace, mod.FaceCount, len(m.Faces))
	}
	out := make([]int, mod.FaceCount)
	for i := range out {
		out[i] = mod.FirstFace + i
	}
	return out, nil
}
