// export_stl revolves a formula about one axis and writes the solid as an
// ASCII STL file, using the same sampling and lathe settings as the viewer.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/1siamBot/solids/engine/config"
	"github.com/1siamBot/solids/engine/geom"
	"github.com/1siamBot/solids/engine/plot"
	"github.com/1siamBot/solids/engine/revolve"
)

func main() {
	f := flag.String("f", "", "Formula in x, e.g. \"x^2\"")
	aText := flag.String("a", "", "Lower bound (default from config)")
	bText := flag.String("b", "", "Upper bound (default from config)")
	axisName := flag.String("axis", "x", "Axis of revolution: x or y")
	out := flag.String("o", "solid.stl", "Output file")
	configPath := flag.String("config", "", "TOML settings file (default: built-in)")
	flag.Parse()

	if *f == "" {
		fmt.Fprintln(os.Stderr, "Usage: export_stl -f <formula> [-a A] [-b B] [-axis x|y] [-o file.stl]")
		os.Exit(1)
	}

	var axis revolve.Axis
	switch *axisName {
	case "x", "X":
		axis = revolve.AxisX
	case "y", "Y":
		axis = revolve.AxisY
	default:
		log.Fatalf("unknown axis %q", *axisName)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	iv := plot.ParseInterval(*aText, *bText, cfg.DefaultInterval())
	s := revolve.BuildSolid(*f, iv, cfg.Sampling.RadialSegments, axis, cfg.SolidMaterial(axis, 0))
	if s == nil {
		log.Fatalf("%s on [%g, %g] about %v has no solid", *f, iv.A, iv.B, axis)
	}

	if err := save(*out, fmt.Sprintf("revolve_%v", axis), s.Mesh); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %s: %d triangles, interval [%g, %g]", *out, s.Mesh.TriangleCount(), iv.A, iv.B)
}

// save writes m to path. The file is closed before returning and a failed
// close is reported, since buffered data may not have reached the disk.
func save(path, name string, m *geom.Mesh3D) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := geom.WriteSTL(file, name, m); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
