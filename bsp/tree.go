// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"github.com/pkg/errors"

	"vkcsgo/math/vec"
)

// treeSource holds the flat arrays the trees are built from.
type treeSource struct {
	planes    []Plane
	nodes     []node
	leafs     []leaf
	leafFaces []uint16
	faceCount int
	// leafs in clusters [0, numClusters) get their face lists
	numClusters int
	// nodes already part of the tree being built
	visited []bool
}

// buildTree returns the subtree of the child reference ref. Refs >= 0 are
// node indices, negative refs are leaf -(ref+1).
func (t *treeSource) buildTree(ref int32) (Node, error) {
	if ref < 0 {
		return t.buildLeaf(-(int(ref) + 1))
	}
	return t.buildNode(int(ref))
}

// buildNode builds the subtree of node idx. A node may only appear once
// per tree, which rules out cycles and shared subtrees.
func (t *treeSource) buildNode(idx int) (*MNode, error) {
	if !inRange(idx, len(t.nodes)) {
		return nil, corrupt("node %d of %d", idx, len(t.nodes))
	}
	if len(t.visited) != len(t.nodes) {
		t.visited = make([]bool, len(t.nodes))
	}
	if t.visited[idx] {
		return nil, corrupt("node %d referenced twice", idx)
	}
	t.visited[idx] = true
	dn := &t.nodes[idx]
	if !inRange(dn.PlaneNum, len(t.planes)) {
		return nil, corrupt("node %d: plane %d of %d", idx, dn.PlaneNum, len(t.planes))
	}
	if !spanInRange(dn.FirstFace, dn.NumFaces, t.faceCount) {
		return nil, corrupt("node %d: faces %d+%d of %d", idx, dn.FirstFace, dn.NumFaces, t.faceCount)
	}
	n := &MNode{
		Index: idx,
		Plane: t.planes[dn.PlaneNum],
		Mins:  dn.Mins,
		Maxs:  dn.Maxs,
		Area:  dn.Area,
	}
	if dn.NumFaces > 0 {
		n.Faces = make([]int, dn.NumFaces)
		for i := range n.Faces {
			n.Faces[i] = int(dn.FirstFace) + i
		}
	}
	for i, c := range dn.Children {
		child, err := t.buildTree(c)
		if err != nil {
			return nil, err
		}
		n.Children[i] = child
	}
	return n, nil
}

func (t *treeSource) buildLeaf(idx int) (*MLeaf, error) {
	if !inRange(idx, len(t.leafs)) {
		return nil, corrupt("leaf %d of %d", idx, len(t.leafs))
	}
	dl := &t.leafs[idx]
	l := &MLeaf{
		Index:       idx,
		contents:    dl.Contents,
		Cluster:     dl.Cluster,
		Area:        dl.area(),
		Flags:       dl.flags(),
		Mins:        dl.Mins,
		Maxs:        dl.Maxs,
		WaterDataID: dl.LeafWaterDataID,
	}
	if !inRange(dl.Cluster, t.numClusters) {
		// solid or outside of the world
		return l, nil
	}
	first, count := int(dl.FirstLeafFace), int(dl.NumLeafFaces)
	if !spanInRange(first, count, len(t.leafFaces)) {
		return nil, corrupt("leaf %d: leaffaces %d+%d of %d", idx, first, count, len(t.leafFaces))
	}
	l.Faces = make([]int, 0, count)
	for _, f := range t.leafFaces[first : first+count] {
		if !inRange(f, t.faceCount) {
			return nil, corrupt("leaf %d: face %d of %d", idx, f, t.faceCount)
		}
		l.Faces = append(l.Faces, int(f))
	}
	return l, nil
}

// buildTrees builds the tree of every model. The root of each tree is the
// head node of the model, its children are built from the head node's
// child references.
func (t *treeSource) buildTrees(models []model) ([]Model, error) {
	out := make([]Model, len(models))
	for i := range models {
		dm := &models[i]
		if !spanInRange(dm.FirstFace, dm.NumFaces, t.faceCount) {
			return nil, corrupt("model %d: faces %d+%d of %d", i, dm.FirstFace, dm.NumFaces, t.faceCount)
		}
		t.visited = make([]bool, len(t.nodes))
		root, err := t.buildNode(int(dm.HeadNode))
		if err != nil {
			return nil, errors.WithMessagef(err, "model %d", i)
		}
		out[i] = Model{
			Mins:      vec.FromArray(dm.Mins),
			Maxs:      vec.FromArray(dm.Maxs),
			Origin:    vec.FromArray(dm.Origin),
			HeadNode:  int(dm.HeadNode),
			FirstFace: int(dm.FirstFace),
			FaceCount: int(dm.NumFaces),
			Tree:      root,
		}
	}
	return out, nil
}
