// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"encoding/binary"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
)

// Load reads the map file at path.
func Load(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioError(err, "open map")
	}
	defer f.Close()
	m, err := Decode(f)
	if err != nil {
		return nil, errors.WithMessagef(err, "load %s", path)
	}
	return m, nil
}

func readHeader(r io.ReadSeeker) (*header, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, ioError(err, "seek header")
	}
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errors.Wrap(ErrInvalidFormat, "file is shorter than the header")
		}
		return nil, ioError(err, "read header")
	}
	if h.Ident != vbspIdent {
		return nil, errors.Wrapf(ErrInvalidFormat, "ident %#08x is not VBSP", uint32(h.Ident))
	}
	if h.Version < minVersion || h.Version > maxVersion {
		return nil, errors.Wrapf(ErrUnsupportedVersion, "version %d", h.Version)
	}
	return &h, nil
}

// readLeafs picks the leaf layout from the version of the leaf lump,
// version 0 carries the ambient light cube. Maps before
// leafAmbientVersion always use that layout.
func readLeafs(h *header, r io.ReadSeeker) ([]leaf, error) {
	if h.Version >= leafAmbientVersion && h.Lumps[lumpLeafs].Version > 0 {
		return decodeLump[leaf](h, r, lumpLeafs)
	}
	old, err := decodeLump[leafV0](h, r, lumpLeafs)
	if err != nil {
		return nil, err
	}
	out := make([]leaf, len(old))
	for i := range old {
		out[i] = old[i].leaf()
	}
	return out, nil
}

// visibility returns the number of clusters of the visibility lump. The
// lump starts with the cluster count, followed by a pvs and pas offset
// per cluster.
func visibility(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}
	if len(data) < 4 {
		return 0, corrupt("visibility: %d bytes", len(data))
	}
	n := int32(binary.LittleEndian.Uint32(data))
	if n < 0 || int64(4+8*int64(n)) > int64(len(data)) {
		return 0, corrupt("visibility: %d clusters in %d bytes", n, len(data))
	}
	return int(n), nil
}

// Decode reads a map from r. r is read from the start, whatever its
// current position is.
func Decode(r io.ReadSeeker) (*Map, error) {
	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	slog.Debug("map header", "version", h.Version, "revision", h.MapRevision)

	vertices, err := decodeLump[vertex](h, r, lumpVertexes)
	if err != nil {
		return nil, err
	}
	edges, err := decodeLump[edge](h, r, lumpEdges)
	if err != nil {
		return nil, err
	}
	surfedges, err := decodeLump[int32](h, r, lumpSurfEdges)
	if err != nil {
		return nil, err
	}
	faces, err := decodeLump[face](h, r, lumpFaces)
	if err != nil {
		return nil, err
	}
	vis, _, err := readLump(h, r, lumpVisibility, 0)
	if err != nil {
		return nil, err
	}
	numClusters, err := visibility(vis)
	if err != nil {
		return nil, err
	}
	texDatas, err := decodeLump[texData](h, r, lumpTexData)
	if err != nil {
		return nil, err
	}
	stringTable, err := decodeLump[int32](h, r, lumpTexDataStringTable)
	if err != nil {
		return nil, err
	}
	stringData, _, err := readLump(h, r, lumpTexDataStringData, 0)
	if err != nil {
		return nil, err
	}
	nodes, err := decodeLump[node](h, r, lumpNodes)
	if err != nil {
		return nil, err
	}
	leafs, err := readLeafs(h, r)
	if err != nil {
		return nil, err
	}
	models, err := decodeLump[model](h, r, lumpModels)
	if err != nil {
		return nil, err
	}
	leafFaces, err := decodeLump[uint16](h, r, lumpLeafFaces)
	if err != nil {
		return nil, err
	}
	planes, err := decodeLump[plane](h, r, lumpPlanes)
	if err != nil {
		return nil, err
	}
	texInfos, err := decodeLump[texInfo](h, r, lumpTexInfo)
	if err != nil {
		return nil, err
	}
	entities, _, err := readLump(h, r, lumpEntities, 0)
	if err != nil {
		return nil, err
	}

	m := &Map{
		Version:     int(h.Version),
		Revision:    int(h.MapRevision),
		Vertices:    convertVertices(vertices),
		Edges:       convertEdges(edges),
		Surfedges:   surfedges,
		Faces:       convertFaces(faces),
		Planes:      make([]Plane, len(planes)),
		NumClusters: numClusters,
		Visibility:  vis,
	}
	for i := range planes {
		m.Planes[i] = newPlane(&planes[i])
	}
	if m.TextureInfos, err = convertTextureInfos(texDatas, stringTable, stringData); err != nil {
		return nil, err
	}
	if m.TexInfos, err = convertTexInfos(texInfos, len(m.TextureInfos)); err != nil {
		return nil, err
	}
	if err := m.checkGeometry(); err != nil {
		return nil, err
	}
	if m.Entities, err = decodeEntities(entities); err != nil {
		return nil, err
	}

	ts := &treeSource{
		planes:      m.Planes,
		nodes:       nodes,
		leafs:       leafs,
		leafFaces:   leafFaces,
		faceCount:   len(m.Faces),
		numClusters: numClusters,
	}
	if m.Models, err = ts.buildTrees(models); err != nil {
		return nil, err
	}
	slog.Debug("map loaded", "faces", len(m.Faces), "models", len(m.Models), "clusters", numClusters)
	return m, nil
}
