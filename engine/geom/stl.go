package geom

import (
	"bufio"
	"fmt"
	"io"
)

// WriteSTL writes m as an ASCII STL solid. Zero-area triangles, which the
// lathe produces where the profile touches the axis, are skipped.
func WriteSTL(w io.Writer, name string, m *Mesh3D) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "solid %s\n", name)
	if m != nil {
		for _, tri := range m.Triangles {
			n := tri.FaceNormal()
			if n == (Vec3{}) {
				continue
			}
			fmt.Fprintf(bw, "  facet normal %g %g %g\n    outer loop\n", n.X, n.Y, n.Z)
			for _, v := range tri.V {
				fmt.Fprintf(bw, "      vertex %g %g %g\n", v.Pos.X, v.Pos.Y, v.Pos.Z)
			}
			fmt.Fprintf(bw, "    endloop\n  endfacet\n")
		}
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write stl %s: %w", name, err)
	}
	return nil
}
