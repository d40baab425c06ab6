// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"vkcsgo/bsp"
)

var objCmd = &cobra.Command{
	Use:   "obj <map.bsp>",
	Short: "Export the faces of a model as Wavefront OBJ",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := bsp.Load(args[0])
		if err != nil {
			return err
		}
		model, _ := cmd.Flags().GetInt("model")
		output, _ := cmd.Flags().GetString("output")
		w := cmd.OutOrStdout()
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return errors.Wrap(err, "create output file")
			}
			defer f.Close()
			w = f
		}
		return writeOBJ(w, m, model)
	},
}

func init() {
	objCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	objCmd.Flags().Int("model", 0, "Model index, 0 is the world")
}

// writeOBJ writes all vertices of m and the triangles of the faces of
// model, grouped by texture. Every face gets its own normal.
func writeOBJ(w io.Writer, m *bsp.Map, model int) error {
	faces, err := m.ModelFaces(model)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# model %d, %d faces\n", model, len(faces))
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	group := ""
	normals := 0
	for _, f := range faces {
		tris, err := m.Triangulate(f)
		if err != nil {
			return err
		}
		if len(tris) == 0 {
			continue
		}
		n, err := m.FaceNormal(f)
		if err != nil {
			return err
		}
		name := "notexture"
		if tex := m.Texture(f); tex != nil {
			name = tex.Name
		}
		if name != group {
			fmt.Fprintf(bw, "g %s\n", name)
			group = name
		}
		fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
		normals++
		for _, t := range tris {
			// obj indices start at 1
			fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", int(t[0])+1, normals, int(t[1])+1, normals, int(t[2])+1, normals)
		}
	}
	return bw.Flush()
}
