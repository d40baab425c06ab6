// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import "fmt"

// On-disk records. All of them are little endian and tightly packed, so
// binary.Size matches the sizes of the C structs.

const (
	headerLumps = 64
	// "VBSP" read as a little endian int32
	vbspIdent = 'V' | 'B'<<8 | 'S'<<16 | 'P'<<24

	minVersion = 19
	maxVersion = 21
	// maps before this version carry an ambient light cube in every leaf,
	// later ones only if the leaf lump has version 0
	leafAmbientVersion = 20
)

type lumpIndex int

const (
	lumpEntities           lumpIndex = 0
	lumpPlanes             lumpIndex = 1
	lumpTexData            lumpIndex = 2
	lumpVertexes           lumpIndex = 3
	lumpVisibility         lumpIndex = 4
	lumpNodes              lumpIndex = 5
	lumpTexInfo            lumpIndex = 6
	lumpFaces              lumpIndex = 7
	lumpLeafs              lumpIndex = 10
	lumpEdges              lumpIndex = 12
	lumpSurfEdges          lumpIndex = 13
	lumpModels             lumpIndex = 14
	lumpLeafFaces          lumpIndex = 16
	lumpTexDataStringData  lumpIndex = 43
	lumpTexDataStringTable lumpIndex = 44
)

var lumpNames = map[lumpIndex]string{
	lumpEntities:           "entities",
	lumpPlanes:             "planes",
	lumpTexData:            "texdata",
	lumpVertexes:           "vertexes",
	lumpVisibility:         "visibility",
	lumpNodes:              "nodes",
	lumpTexInfo:            "texinfo",
	lumpFaces:              "faces",
	lumpLeafs:              "leafs",
	lumpEdges:              "edges",
	lumpSurfEdges:          "surfedges",
	lumpModels:             "models",
	lumpLeafFaces:          "leaffaces",
	lumpTexDataStringData:  "texdata string data",
	lumpTexDataStringTable: "texdata string table",
}

func (l lumpIndex) String() string {
	if n, ok := lumpNames[l]; ok {
		return n
	}
	return fmt.Sprintf("lump %d", int(l))
}

// called lump_t in c
type lump struct {
	Offset  int32
	Length  int32
	Version int32
	// uncompressed size for lzma lumps, zero otherwise
	FourCC [4]byte
}

type header struct {
	Ident       int32
	Version     int32
	Lumps       [headerLumps]lump
	MapRevision int32
}

// 1036 bytes
const headerSize = 8 + headerLumps*16 + 4

type vertex struct {
	Point [3]float32
}

type edge struct {
	V [2]uint16
}

type plane struct {
	Normal [3]float32
	Dist   float32
	Type   int32 // 0-2 axial in x,y,z, 3-5 closest to x,y,z
}

type texData struct {
	Reflectivity      [3]float32
	NameStringTableID int32
	Width             int32
	Height            int32
	ViewWidth         int32
	ViewHeight        int32
}

type texInfo struct {
	TextureVecs  [2][4]float32 // [s/t][xyz offset]
	LightmapVecs [2][4]float32
	Flags        int32
	TexData      int32
}

type face struct {
	PlaneNum                    uint16
	Side                        uint8
	OnNode                      uint8
	FirstEdge                   int32 // index into surfedges
	NumEdges                    int16 // number of surfedges
	TexInfo                     int16
	DispInfo                    int16
	SurfaceFogVolumeID          int16
	Styles                      [4]uint8
	LightOfs                    int32
	Area                        float32
	LightmapTextureMinsInLuxels [2]int32
	LightmapTextureSizeInLuxels [2]int32
	OrigFace                    int32
	NumPrims                    uint16
	FirstPrimID                 uint16
	SmoothingGroups             uint32
}

type node struct {
	PlaneNum  int32
	Children  [2]int32 // negative numbers are -(leafs+1), not nodes
	Mins      [3]int16
	Maxs      [3]int16
	FirstFace uint16
	NumFaces  uint16
	Area      int16
	Padding   int16
}

type leaf struct {
	Contents        int32
	Cluster         int16
	AreaFlags       int16 // area:9 flags:7
	Mins            [3]int16
	Maxs            [3]int16
	FirstLeafFace   uint16
	NumLeafFaces    uint16
	FirstLeafBrush  uint16
	NumLeafBrushes  uint16
	LeafWaterDataID int16
	Padding         int16
}

// leafV0 is the leaf layout of version 19 maps.
type leafV0 struct {
	Contents        int32
	Cluster         int16
	AreaFlags       int16
	Mins            [3]int16
	Maxs            [3]int16
	FirstLeafFace   uint16
	NumLeafFaces    uint16
	FirstLeafBrush  uint16
	NumLeafBrushes  uint16
	LeafWaterDataID int16
	AmbientLighting [6][4]byte // CompressedLightCube, one rgbexp color per axis direction
	Padding         int16
}

func (l *leafV0) leaf() leaf {
	return leaf{
		Contents:        l.Contents,
		Cluster:         l.Cluster,
		AreaFlags:       l.AreaFlags,
		Mins:            l.Mins,
		Maxs:            l.Maxs,
		FirstLeafFace:   l.FirstLeafFace,
		NumLeafFaces:    l.NumLeafFaces,
		FirstLeafBrush:  l.FirstLeafBrush,
		NumLeafBrushes:  l.NumLeafBrushes,
		LeafWaterDataID: l.LeafWaterDataID,
	}
}

func (l *leaf) area() int16 {
	return l.AreaFlags & 0x1ff
}

func (l *leaf) flags() int16 {
	return (l.AreaFlags >> 9) & 0x7f
}

type model struct {
	Mins      [3]float32
	Maxs      [3]float32
	Origin    [3]float32
	HeadNode  int32
	FirstFace int32
	NumFaces  int32
}
