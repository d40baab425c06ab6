// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"vkcsgo/math/vec"
)

// Leaf content flags, a subset of the CONTENTS_* values of the Source sdk.
const (
	ContentsEmpty       = 0
	ContentsSolid       = 0x1
	ContentsWindow      = 0x2
	ContentsGrate       = 0x8
	ContentsSlime       = 0x10
	ContentsWater       = 0x20
	ContentsMoveable    = 0x4000
	ContentsPlayerClip  = 0x10000
	ContentsMonsterClip = 0x20000
	ContentsDetail      = 0x8000000
	ContentsTranslucent = 0x10000000
	ContentsLadder      = 0x20000000

	// Contents of every MNode, leaves never use it.
	contentsNode = -1
)

type Edge struct {
	V [2]uint16
}

// Face is a convex polygon spanning EdgeCount consecutive surfedges.
type Face struct {
	FirstSurfedge int
	EdgeCount     int

	Plane       int
	Side        byte
	OnNode      bool
	TexInfo     int // -1 if the face has no texture
	DispInfo    int // -1 if the face is not a displacement
	Styles      [4]byte
	LightOffset int32
	Area        float32
}

// TextureInfo is the texdata of a map with its name resolved.
type TextureInfo struct {
	Name         string
	Reflectivity vec.Vec3
	Width        int
	Height       int
	ViewWidth    int
	ViewHeight   int
}

type TexInfo struct {
	TextureVecs  [2][4]float32
	LightmapVecs [2][4]float32
	Flags        int32
	TexData      int // index into TextureInfos or -1
}

// Node is either an *MNode or an *MLeaf.
type Node interface {
	Contents() int32
}

type MNode struct {
	Index    int
	Plane    Plane
	Children [2]Node // front, back
	Mins     [3]int16
	Maxs     [3]int16
	Faces    []int
	Area     int16
}

func (n *MNode) Contents() int32 {
	return contentsNode
}

type MLeaf struct {
	Index       int
	contents    int32
	Cluster     int16
	Area        int16
	Flags       int16
	Mins        [3]int16
	Maxs        [3]int16
	WaterDataID int16
	// Faces index Map.Faces. Empty when the cluster is outside of the
	// visibility data.
	Faces []int
}

func (l *MLeaf) Contents() int32 {
	return l.contents
}

// Model, either the world (model 0) or a brush entity
type Model struct {
	Mins      vec.Vec3
	Maxs      vec.Vec3
	Origin    vec.Vec3
	HeadNode  int
	FirstFace int
	FaceCount int

	// Tree is the MNode of HeadNode.
	Tree *MNode
}

// Map is a fully decoded map. It does not reference the file it was read from.
type Map struct {
	Version  int
	Revision int

	Vertices     []vec.Vec3
	Edges        []Edge
	Surfedges    []int32
	Faces        []Face
	Planes       []Plane
	TextureInfos []TextureInfo
	TexInfos     []TexInfo
	Models       []Model
	Entities     []*Entity

	NumClusters int
	// Visibility is the raw visibility lump, see ClusterPVS.
	Visibility []byte
}

// Summary holds the element counts of a map.
type Summary struct {
	Version      int
	Revision     int
	Vertices     int
	Edges        int
	Surfedges    int
	Faces        int
	Planes       int
	TextureInfos int
	TexInfos     int
	Models       int
	Entities     int
	Clusters     int
	Nodes        int
	Leafs        int
}

func (m *Map) Summary() Summary {
	s := Summary{
		Version:      m.Version,
		Revision:     m.Revision,
		Vertices:     len(m.Vertices),
		Edges:        len(m.Edges),
		Surfedges:    len(m.Surfedges),
		Faces:        len(m.Faces),
		Planes:       len(m.Planes),
		TextureInfos: len(m.TextureInfos),
		TexInfos:     len(m.TexInfos),
		Models:       len(m.Models),
		Entities:     len(m.Entities),
		Clusters:     m.NumClusters,
	}
	for _, mod := range m.Models {
		if mod.Tree == nil {
			continue
		}
		Walk(mod.Tree, func(n Node) bool {
			switch n.(type) {
			case *MNode:
				s.Nodes++
			case *MLeaf:
				s.Leafs++
			}
			return true
		})
	}
	return s
}

// Walk calls fn for n and, depth first and front before back, for every
// node below it. Children of a node are skipped if fn returns false.
func Walk(n Node, fn func(Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	if mn, ok := n.(*MNode); ok {
		Walk(mn.Children[0], fn)
		Walk(mn.Children[1], fn)
	}
}
