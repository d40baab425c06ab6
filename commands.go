// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"vkcsgo/bsp"
	"vkcsgo/math/vec"
)

var infoCmd = &cobra.Command{
	Use:   "info <map.bsp>",
	Short: "Print the element counts of a map",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := bsp.Load(args[0])
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			return writeSummaryJSON(cmd.OutOrStdout(), m)
		}
		return writeSummary(cmd.OutOrStdout(), m)
	},
}

var treeCmd = &cobra.Command{
	Use:   "tree <map.bsp>",
	Short: "Print the bsp tree of a model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := bsp.Load(args[0])
		if err != nil {
			return err
		}
		model, _ := cmd.Flags().GetInt("model")
		if model < 0 || model >= len(m.Models) {
			return errors.Errorf("no model %d, map has %d", model, len(m.Models))
		}
		return writeTree(cmd.OutOrStdout(), m.Models[model].Tree)
	},
}

var leafCmd = &cobra.Command{
	Use:   "leaf <map.bsp> <x> <y> <z>",
	Short: "Find the world leaf around a point",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		var p [3]float32
		for i, s := range args[1:] {
			f, err := strconv.ParseFloat(s, 32)
			if err != nil {
				return errors.Wrapf(err, "coordinate %d", i)
			}
			p[i] = float32(f)
		}
		m, err := bsp.Load(args[0])
		if err != nil {
			return err
		}
		return writeLeaf(cmd.OutOrStdout(), m, vec.FromArray(p))
	},
}

func init() {
	infoCmd.Flags().Bool("json", false, "Print JSON")
	treeCmd.Flags().Int("model", 0, "Model index, 0 is the world")
}

func summaryFields(s bsp.Summary) []struct {
	name  string
	value int
} {
	return []struct {
		name  string
		value int
	}{
		{"version", s.Version},
		{"revision", s.Revision},
		{"vertices", s.Vertices},
		{"edges", s.Edges},
		{"surfedges", s.Surfedges},
		{"faces", s.Faces},
		{"planes", s.Planes},
		{"textures", s.TextureInfos},
		{"texinfos", s.TexInfos},
		{"models", s.Models},
		{"entities", s.Entities},
		{"clusters", s.Clusters},
		{"nodes", s.Nodes},
		{"leafs", s.Leafs},
	}
}

func writeSummary(w io.Writer, m *bsp.Map) error {
	for _, f := range summaryFields(m.Summary()) {
		if _, err := fmt.Fprintf(w, "%-10s %d\n", f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

func writeSummaryJSON(w io.Writer, m *bsp.Map) error {
	fields := make(map[string]any)
	for _, f := range summaryFields(m.Summary()) {
		fields[f.name] = f.value
	}
	var textures []any
	for _, t := range m.TextureInfos {
		textures = append(textures, t.Name)
	}
	fields["texture_names"] = textures
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return err
	}
	b, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func writeTree(w io.Writer, root bsp.Node) error {
	var err error
	var dump func(n bsp.Node, depth int)
	dump = func(n bsp.Node, depth int) {
		if err != nil {
			return
		}
		indent := strings.Repeat("  ", depth)
		switch n := n.(type) {
		case *bsp.MNode:
			p := n.Plane
			_, err = fmt.Fprintf(w, "%snode %d plane %v %g box %v %v faces %d\n",
				indent, n.Index, p.Normal, p.Dist, vec.FromInt16(n.Mins), vec.FromInt16(n.Maxs), len(n.Faces))
			dump(n.Children[0], depth+1)
			dump(n.Children[1], depth+1)
		case *bsp.MLeaf:
			_, err = fmt.Fprintf(w, "%sleaf %d cluster %d contents %#x faces %v\n", indent, n.Index, n.Cluster, n.Contents(), n.Faces)
		}
	}
	dump(root, 0)
	return err
}

func writeLeaf(w io.Writer, m *bsp.Map, p vec.Vec3) error {
	l, err := m.PointInLeaf(0, p)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "leaf %d cluster %d area %d contents %#x faces %v\n", l.Index, l.Cluster, l.Area, l.Contents(), l.Faces); err != nil {
		return err
	}
	if l.Cluster < 0 || int(l.Cluster) >= m.NumClusters {
		return nil
	}
	var visible []int
	for c := 0; c < m.NumClusters; c++ {
		ok, err := m.ClusterVisible(int(l.Cluster), c)
		if err != nil {
			return err
		}
		if ok {
			visible = append(visible, c)
		}
	}
	_, err = fmt.Fprintf(w, "visible clusters %v\n", visible)
	return err
}
