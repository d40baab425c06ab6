// SPDX-License-Identifier: GPL-2.0-or-later
package bsp

import (
	"bytes"
	"sort"
	"strconv"
	"strings"

	"vkcsgo/math/vec"
)

type Entity struct {
	properties map[string]string
}

func NewEntity(p []byte) *Entity {
	e := &Entity{properties: make(map[string]string)}
	// every line of interest has the form
	// "key" "value"
	for _, l := range bytes.Split(p, []byte("\n")) {
		var fields []string
		for len(fields) < 2 {
			q := bytes.IndexByte(l, '"')
			if q == -1 {
				break
			}
			l = l[q+1:]
			q = bytes.IndexByte(l, '"')
			if q == -1 {
				break
			}
			fields = append(fields, string(l[:q]))
			l = l[q+1:]
		}
		if len(fields) == 2 {
			e.properties[fields[0]] = fields[1]
		}
	}
	return e
}

func (e *Entity) Property(name string) (string, bool) {
	v, ok := e.properties[name]
	return v, ok
}

// Name returns the classname of the entity.
func (e *Entity) Name() (string, bool) {
	v, ok := e.properties["classname"]
	return v, ok
}

func (e *Entity) PropertyNames() []string {
	n := make([]string, 0, len(e.properties))
	for k := range e.properties {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

// Origin parses the "origin" property, "x y z".
func (e *Entity) Origin() (vec.Vec3, bool) {
	v, ok := e.properties["origin"]
	if !ok {
		return vec.Vec3{}, false
	}
	f := strings.Fields(v)
	if len(f) != 3 {
		return vec.Vec3{}, false
	}
	var r [3]float32
	for i, s := range f {
		x, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return vec.Vec3{}, false
		}
		r[i] = float32(x)
	}
	return vec.FromArray(r), true
}

// ParseEntities splits the entity lump into its entities. It returns nil
// if the braces do not match.
func ParseEntities(data []byte) []*Entity {
	/*
		The data looks like:
		{
		"classname" "worldspawn"
		"skyname" "sky_dust"
		}
		{
		"origin" "-1216 -1216 64"
		"classname" "info_player_terrorist"
		}
	*/
	es := []*Entity{}
	var depth int
	var quoted bool
	start := -1
	for i, b := range data {
		switch b {
		case '"':
			quoted = !quoted
		case '{':
			if quoted {
				break
			}
			if start == -1 {
				start = i
			} else {
				depth++
			}
		case '}':
			if quoted {
				break
			}
			if start == -1 {
				return nil
			}
			if depth == 0 {
				es = append(es, NewEntity(data[start:i+1]))
				start = -1
			} else {
				depth--
			}
		}
	}
	if start != -1 {
		return nil
	}
	return es
}

func decodeEntities(data []byte) ([]*Entity, error) {
	// the lump is nul terminated
	if n := bytes.IndexByte(data, 0); n != -1 {
		data = data[:n]
	}
	if len(data) == 0 {
		return nil, nil
	}
	s, err := decodeString(data)
	if err != nil {
		return nil, corrupt("entities: %v", err)
	}
	es := ParseEntities([]byte(s))
	if es == nil {
		return nil, corrupt("entities: unbalanced braces")
	}
	return es, nil
}
