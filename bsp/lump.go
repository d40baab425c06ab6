// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"bytes"
	"encoding/binary"
	"io"
	"log/slog"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// readLump reads the raw bytes of lump idx. With elemSize > 0 the lump has
// to hold a whole number of elemSize records and their count is returned,
// with elemSize == 0 the count is 0.
func readLump(h *header, r io.ReadSeeker, idx lumpIndex, elemSize int) ([]byte, int, error) {
	if idx < 0 || idx >= headerLumps {
		return nil, 0, corrupt("lump index %d", int(idx))
	}
	l := h.Lumps[idx]
	if l.Offset < 0 || l.Length < 0 {
		return nil, 0, corrupt("%v: offset %d length %d", idx, l.Offset, l.Length)
	}
	if l.FourCC != [4]byte{} {
		return nil, 0, errors.Wrapf(ErrUnsupportedVersion, "%v: compressed lump", idx)
	}
	if elemSize > 0 && int(l.Length)%elemSize != 0 {
		return nil, 0, corrupt("%v: length %d is not a multiple of %d", idx, l.Length, elemSize)
	}
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, 0, ioError(err, "%v: seek", idx)
	}
	if int64(l.Offset)+int64(l.Length) > end {
		return nil, 0, corrupt("%v: %d bytes at %d past end of file (%d)", idx, l.Length, l.Offset, end)
	}
	if _, err := r.Seek(int64(l.Offset), io.SeekStart); err != nil {
		return nil, 0, ioError(err, "%v: seek", idx)
	}
	buf := make([]byte, l.Length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, 0, ioError(err, "%v: read", idx)
	}
	count := 0
	if elemSize > 0 {
		count = len(buf) / elemSize
	}
	return buf, count, nil
}

// decodeLump reads lump idx as an array of T.
func decodeLump[T any](h *header, r io.ReadSeeker, idx lumpIndex) ([]T, error) {
	var zero T
	size := binary.Size(zero)
	data, count, err := readLump(h, r, idx, size)
	if err != nil {
		return nil, err
	}
	out := make([]T, count)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, out); err != nil {
		return nil, corrupt("%v: %v", idx, err)
	}
	slog.Debug("read lump", "lump", idx, "bytes", len(data), "count", count)
	return out, nil
}

// inRange reports whether i is a valid index of an array of length n.
func inRange[I constraints.Integer](i I, n int) bool {
	return i >= 0 && uint64(i) < uint64(n)
}

// spanInRange reports whether [first, first+count) lies inside an array of length n.
func spanInRange[I, J constraints.Integer](first I, count J, n int) bool {
	if first < 0 || count < 0 {
		return false
	}
	return int64(first)+int64(count) <= int64(n)
}
