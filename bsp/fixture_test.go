// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// fixture writes synthetic map files.
type fixture struct {
	ident    int32
	version  int32
	lumps    map[lumpIndex][]byte
	versions map[lumpIndex]int32
}

func newFixture() *fixture {
	return &fixture{
		ident:    vbspIdent,
		version:  21,
		lumps:    make(map[lumpIndex][]byte),
		versions: make(map[lumpIndex]int32),
	}
}

// set stores data, which has to be encodable by binary.Write, as lump idx.
func (f *fixture) set(t *testing.T, idx lumpIndex, data any) {
	t.Helper()
	if b, ok := data.([]byte); ok {
		f.lumps[idx] = b
		return
	}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, data); err != nil {
		t.Fatalf("encode %v: %v", idx, err)
	}
	f.lumps[idx] = buf.Bytes()
}

func (f *fixture) header() header {
	h := header{Ident: f.ident, Version: f.version, MapRevision: 7}
	ofs := int32(headerSize)
	for i := lumpIndex(0); i < headerLumps; i++ {
		d := f.lumps[i]
		h.Lumps[i] = lump{Offset: ofs, Length: int32(len(d)), Version: f.versions[i]}
		ofs += int32(len(d))
	}
	return h
}

func (f *fixture) bytes(t *testing.T) []byte {
	t.Helper()
	return f.bytesWithHeader(t, f.header())
}

func (f *fixture) bytesWithHeader(t *testing.T, h header) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, &h); err != nil {
		t.Fatalf("encode header: %v", err)
	}
	for i := lumpIndex(0); i < headerLumps; i++ {
		buf.Write(f.lumps[i])
	}
	return buf.Bytes()
}

func (f *fixture) file(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "test.bsp")
	if err := os.WriteFile(p, f.bytes(t), 0o644); err != nil {
		t.Fatalf("write map: %v", err)
	}
	return p
}

// visLump builds a visibility lump whose clusters all share one pvs row.
func visLump(clusters int, row []byte) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, int32(clusters))
	ofs := int32(4 + 8*clusters)
	for i := 0; i < clusters; i++ {
		binary.Write(&buf, binary.LittleEndian, [2]int32{ofs, ofs})
	}
	buf.Write(row)
	return buf.Bytes()
}

// quadFixture is a map with one model: a 64x64 quad on the floor, one node
// whose children both point at leaf 0, and a single cluster.
func quadFixture(t *testing.T) *fixture {
	f := newFixture()
	f.set(t, lumpVertexes, []vertex{
		{[3]float32{0, 0, 0}},
		{[3]float32{64, 0, 0}},
		{[3]float32{64, 64, 0}},
		{[3]float32{0, 64, 0}},
	})
	f.set(t, lumpEdges, []edge{{[2]uint16{0, 1}}, {[2]uint16{1, 2}}, {[2]uint16{2, 3}}, {[2]uint16{3, 0}}})
	f.set(t, lumpSurfEdges, []int32{0, 1, 2, 3})
	f.set(t, lumpFaces, []face{{FirstEdge: 0, NumEdges: 4, TexInfo: 0, DispInfo: -1, Area: 4096}})
	f.set(t, lumpVisibility, visLump(1, []byte{0x01}))
	f.set(t, lumpTexData, []texData{{
		Reflectivity:      [3]float32{0.5, 0.25, 1},
		NameStringTableID: 1,
		Width:             128, Height: 64, ViewWidth: 128, ViewHeight: 64,
	}})
	f.set(t, lumpTexDataStringTable, []int32{0, 9})
	f.set(t, lumpTexDataStringData, []byte("DEV/GRAY\x00TOOLS/TOOLSNODRAW\x00"))
	f.set(t, lumpTexInfo, []texInfo{{TexData: 0}})
	f.set(t, lumpPlanes, []plane{{Normal: [3]float32{0, 0, 1}, Dist: 0, Type: 2}})
	f.set(t, lumpNodes, []node{{PlaneNum: 0, Children: [2]int32{-1, -1}, Maxs: [3]int16{64, 64, 0}, NumFaces: 1}})
	f.set(t, lumpLeafs, []leaf{{Contents: ContentsEmpty, Cluster: 0, AreaFlags: 1 | 3<<9, NumLeafFaces: 1}})
	f.versions[lumpLeafs] = 1
	f.set(t, lumpLeafFaces, []uint16{0})
	f.set(t, lumpModels, []model{{Maxs: [3]float32{64, 64, 0}, HeadNode: 0, NumFaces: 1}})
	f.set(t, lumpEntities, []byte("{\n\"classname\" \"worldspawn\"\n\"skyname\" \"sky_dust\"\n}\n\x00"))
	return f
}
