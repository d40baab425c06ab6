// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"bytes"
	"encoding/binary"
	"reflect"
	"testing"

	"github.com/pkg/errors"

	"vkcsgo/math/vec"
)

// visRows builds a visibility lump with one compressed pvs row per cluster.
func visRows(rows ...[]byte) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, int32(len(rows)))
	ofs := int32(4 + 8*len(rows))
	for _, r := range rows {
		binary.Write(&buf, binary.LittleEndian, [2]int32{ofs, ofs})
		ofs += int32(len(r))
	}
	for _, r := range rows {
		buf.Write(r)
	}
	return buf.Bytes()
}

func testMap(t *testing.T) *Map {
	t.Helper()
	root, err := testTree().buildNode(0)
	if err != nil {
		t.Fatalf("buildNode: %v", err)
	}
	return &Map{
		Models:      []Model{{Tree: root}},
		NumClusters: 3,
		Visibility: visRows(
			[]byte{0x05},
			[]byte{0x00, 0x01},
			[]byte{0x07},
		),
	}
}

func TestVisDecompress(t *testing.T) {
	in := []byte{7, 0, 5, 5, 0, 3, 1, 1}
	want := []byte{7, 0, 0, 0, 0, 0, 5, 0, 0, 0, 1, 1}
	got, err := decompressVis(in, len(want))
	if err != nil {
		t.Fatalf("decompressVis: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("decompressVis(%v) = %v, want %v", in, got, want)
	}
	// a run may reach past the end of the row
	got, err = decompressVis([]byte{3, 0, 9}, 4)
	if err != nil || !bytes.Equal(got, []byte{3, 0, 0, 0}) {
		t.Errorf("overlong run: %v, %v", got, err)
	}
	for _, in := range [][]byte{{7}, {7, 0}, nil} {
		if _, err := decompressVis(in, 2); !errors.Is(err, ErrDataCorruption) {
			t.Errorf("decompressVis(%v): err = %v, want ErrDataCorruption", in, err)
		}
	}
}

func TestClusterVisible(t *testing.T) {
	m := testMap(t)
	tests := []struct {
		from, to int
		want     bool
	}{
		{0, 0, true},
		{0, 1, false},
		{0, 2, true},
		{1, 0, false},
		{1, 1, false},
		{2, 1, true},
	}
	for _, tc := range tests {
		got, err := m.ClusterVisible(tc.from, tc.to)
		if err != nil {
			t.Errorf("ClusterVisible(%d, %d): %v", tc.from, tc.to, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ClusterVisible(%d, %d) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
	if _, err := m.ClusterVisible(0, 3); err == nil {
		t.Errorf("ClusterVisible(0, 3) did not fail")
	}
	if _, err := m.ClusterPVS(-1); err == nil {
		t.Errorf("ClusterPVS(-1) did not fail")
	}
}

func TestClusterPVSCorrupt(t *testing.T) {
	m := testMap(t)
	binary.LittleEndian.PutUint32(m.Visibility[4:], 1000)
	if _, err := m.ClusterPVS(0); !errors.Is(err, ErrDataCorruption) {
		t.Errorf("err = %v, want ErrDataCorruption", err)
	}
}

func TestPointInLeaf(t *testing.T) {
	m := testMap(t)
	tests := []struct {
		p    vec.Vec3
		leaf int
	}{
		{vec.Vec3{X: 1, Y: 1, Z: 0}, 0},
		{vec.Vec3{X: 1, Y: -1, Z: 0}, 1},
		{vec.Vec3{X: 1, Y: 0, Z: 0}, 1},
		{vec.Vec3{X: -1, Y: 0, Z: 1}, 2},
		{vec.Vec3{X: -1, Y: 0, Z: -1}, 0},
		{vec.Vec3{X: 1, Y: 0, Z: -1}, 1},
	}
	for _, tc := range tests {
		l, err := m.PointInLeaf(0, tc.p)
		if err != nil {
			t.Errorf("PointInLeaf(%v): %v", tc.p, err)
			continue
		}
		if l.Index != tc.leaf {
			t.Errorf("PointInLeaf(%v) = leaf %d, want %d", tc.p, l.Index, tc.leaf)
		}
	}
	if _, err := m.PointInLeaf(1, vec.Vec3{}); err == nil {
		t.Errorf("PointInLeaf of missing model did not fail")
	}
}

func TestClusterFaces(t *testing.T) {
	m := testMap(t)
	got, err := m.ClusterFaces(0)
	if err != nil {
		t.Fatalf("ClusterFaces: %v", err)
	}
	want := map[int][]int{0: {1, 3}, 1: {0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ClusterFaces = %v, want %v", got, want)
	}
}

func TestLeafsInBox(t *testing.T) {
	m := testMap(t)
	tests := []struct {
		mins, maxs vec.Vec3
		want       []int
	}{
		{vec.Vec3{X: 1, Y: 1, Z: 1}, vec.Vec3{X: 2, Y: 2, Z: 2}, []int{0}},
		{vec.Vec3{X: 1, Y: -2, Z: 1}, vec.Vec3{X: 2, Y: 2, Z: 2}, []int{0, 1}},
		{vec.Vec3{X: -2, Y: -2, Z: 1}, vec.Vec3{X: -1, Y: -1, Z: 2}, []int{2}},
		{vec.Vec3{X: -1, Y: -1, Z: -1}, vec.Vec3{X: 1, Y: 1, Z: 1}, []int{0, 1, 2, 3, 0}},
		{vec.Vec3{X: 2, Y: 2, Z: 2}, vec.Vec3{X: 1, Y: 1, Z: 1}, []int{0}},
	}
	for _, tc := range tests {
		leafs, err := m.LeafsInBox(0, tc.mins, tc.maxs)
		if err != nil {
			t.Errorf("LeafsInBox(%v, %v): %v", tc.mins, tc.maxs, err)
			continue
		}
		var got []int
		for _, l := range leafs {
			got = append(got, l.Index)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("LeafsInBox(%v, %v) = %v, want %v", tc.mins, tc.maxs, got, tc.want)
		}
	}
}

func TestSummary(t *testing.T) {
	m := testMap(t)
	m.Models = append(m.Models, Model{})
	s := m.Summary()
	if s.Nodes != 4 || s.Leafs != 5 || s.Models != 2 || s.Clusters != 3 {
		t.Errorf("Summary = %+v", s)
	}
}
