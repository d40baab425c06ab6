// SPDX-License-Identifier: GPL-2.0-or-later
package bsp

import (
	"encoding/binary"
	"sort"

	"github.com/pkg/errors"

	"vkcsgo/math/vec"
)

func (m *Map) root(model int) (*MNode, error) {
	if m == nil || !inRange(model, len(m.Models)) || m.Models[model].Tree == nil {
		return nil, errors.Errorf("no model %d", model)
	}
	return m.Models[model].Tree, nil
}

// PointInLeaf returns the leaf of model that contains p.
func (m *Map) PointInLeaf(model int, p vec.Vec3) (*MLeaf, error) {
	root, err := m.root(model)
	if err != nil {
		return nil, err
	}
	var node Node = root
	for {
		switch n := node.(type) {
		case *MLeaf:
			return n, nil
		case *MNode:
			if n.Plane.Distance(p) > 0 {
				node = n.Children[0]
			} else {
				node = n.Children[1]
			}
		default:
			return nil, errors.Errorf("model %d: broken tree", model)
		}
	}
}

// ClusterPVS returns the potentially visible set of cluster, one bit per
// cluster.
func (m *Map) ClusterPVS(cluster int) ([]byte, error) {
	row := (m.NumClusters + 7) / 8
	if !inRange(cluster, m.NumClusters) {
		return nil, errors.Errorf("no cluster %d, map has %d", cluster, m.NumClusters)
	}
	// cluster count, then a pvs and pas offset per cluster
	ofs := int(int32(binary.LittleEndian.Uint32(m.Visibility[4+8*cluster:])))
	if !inRange(ofs, len(m.Visibility)) {
		return nil, corrupt("cluster %d: pvs offset %d of %d", cluster, ofs, len(m.Visibility))
	}
	return decompressVis(m.Visibility[ofs:], row)
}

// decompressVis expands a run length encoded visibility row. Bytes are
// copied as is, except for zero, which is followed by the number of zero
// bytes it stands for:
// 70550311
// gets uncompressed to
// 700000500011	(7 5x0 5 3x0 1 1)
func decompressVis(in []byte, row int) ([]byte, error) {
	out := make([]byte, row)
	j := 0
	for i := 0; j < row; i++ {
		if i >= len(in) {
			return nil, corrupt("visibility row ends after %d of %d bytes", j, row)
		}
		if in[i] != 0 {
			out[j] = in[i]
			j++
			continue
		}
		i++
		if i >= len(in) {
			return nil, corrupt("visibility row ends inside a zero run")
		}
		// runs may overshoot the row, the rest is ignored
		j += int(in[i])
	}
	return out, nil
}

// ClusterVisible reports whether cluster to may be seen from cluster from.
func (m *Map) ClusterVisible(from, to int) (bool, error) {
	if !inRange(to, m.NumClusters) {
		return false, errors.Errorf("no cluster %d, map has %d", to, m.NumClusters)
	}
	pvs, err := m.ClusterPVS(from)
	if err != nil {
		return false, err
	}
	return pvs[to>>3]&(1<<(to&7)) != 0, nil
}

// ClusterFaces groups the faces of model by the cluster of the leafs that
// reference them. Face lists are sorted and free of duplicates.
func (m *Map) ClusterFaces(model int) (map[int][]int, error) {
	root, err := m.root(model)
	if err != nil {
		return nil, err
	}
	seen := make(map[int]map[int]bool)
	Walk(root, func(n Node) bool {
		l, ok := n.(*MLeaf)
		if !ok || len(l.Faces) == 0 {
			return true
		}
		c := int(l.Cluster)
		if seen[c] == nil {
			seen[c] = make(map[int]bool)
		}
		for _, f := range l.Faces {
			seen[c][f] = true
		}
		return true
	})
	out := make(map[int][]int, len(seen))
	for c, faces := range seen {
		list := make([]int, 0, len(faces))
		for f := range faces {
			list = append(list, f)
		}
		sort.Ints(list)
		out[c] = list
	}
	return out, nil
}

// LeafsInBox returns the leafs of model touched by the box spanned by
// the corners a and b.
func (m *Map) LeafsInBox(model int, a, b vec.Vec3) ([]*MLeaf, error) {
	root, err := m.root(model)
	if err != nil {
		return nil, err
	}
	mins, maxs := vec.MinMax(a, b)
	var out []*MLeaf
	var walk func(Node)
	walk = func(node Node) {
		switch n := node.(type) {
		case *MLeaf:
			out = append(out, n)
		case *MNode:
			sides := n.Plane.BoxOnPlaneSide(mins, maxs)
			if sides&1 != 0 {
				walk(n.Children[0])
			}
			if sides&2 != 0 {
				walk(n.Children[1])
			}
		}
	}
	walk(root)
	return out, nil
}
