// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"bytes"

	"golang.org/x/text/encoding/charmap"

	"vkcsgo/math/vec"
)

// decodeString converts map text, which the tools write in the windows
// codepage, to utf-8.
func decodeString(b []byte) (string, error) {
	s, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(s), nil
}

// textureName resolves the name with the given string table id. The table
// holds byte offsets of nul terminated strings inside data.
func textureName(table []int32, data []byte, id int32) (string, error) {
	if !inRange(id, len(table)) {
		return "", corrupt("texture name %d of %d", id, len(table))
	}
	ofs := table[id]
	if !inRange(ofs, len(data)) {
		return "", corrupt("texture name %d: offset %d of %d", id, ofs, len(data))
	}
	s := data[ofs:]
	n := bytes.IndexByte(s, 0)
	if n == -1 {
		return "", corrupt("texture name %d: missing terminator", id)
	}
	name, err := decodeString(s[:n])
	if err != nil {
		return "", corrupt("texture name %d: %v", id, err)
	}
	return name, nil
}

func convertTextureInfos(in []texData, table []int32, data []byte) ([]TextureInfo, error) {
	out := make([]TextureInfo, len(in))
	for i := range in {
		t := &in[i]
		name, err := textureName(table, data, t.NameStringTableID)
		if err != nil {
			return nil, err
		}
		out[i] = TextureInfo{
			Name:         name,
			Reflectivity: vec.FromArray(t.Reflectivity),
			Width:        int(t.Width),
			Height:       int(t.Height),
			ViewWidth:    int(t.ViewWidth),
			ViewHeight:   int(t.ViewHeight),
		}
	}
	return out, nil
}

func convertTexInfos(in []texInfo, textureCount int) ([]TexInfo, error) {
	out := make([]TexInfo, len(in))
	for i := range in {
		t := &in[i]
		if t.TexData != -1 && !inRange(t.TexData, textureCount) {
			return nil, corrupt("texinfo %d: texdata %d of %d", i, t.TexData, textureCount)
		}
		out[i] = TexInfo{
			TextureVecs:  t.TextureVecs,
			LightmapVecs: t.LightmapVecs,
			Flags:        t.Flags,
			TexData:      int(t.TexData),
		}
	}
	return out, nil
}

// Texture returns the texture of face, nil if it has none.
func (m *Map) Texture(face int) *TextureInfo {
	if !inRange(face, len(m.Faces)) {
		return nil
	}
	ti := m.Faces[face].TexInfo
	if !inRange(ti, len(m.TexInfos)) {
		return nil
	}
	td := m.TexInfos[ti].TexData
	if !inRange(td, len(m.TextureInfos)) {
		return nil
	}
	return &m.TextureInfos[td]
}
