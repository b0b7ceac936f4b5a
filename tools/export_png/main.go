// export_png renders one view of the viewer to a PNG without opening a
// window. The inputs go through the same regenerate path as the Plot button.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"

	"github.com/1siamBot/solids/engine/app"
	"github.com/1siamBot/solids/engine/config"
	"github.com/1siamBot/solids/engine/raster"
	"github.com/1siamBot/solids/engine/scene"
)

func main() {
	f1 := flag.String("f1", "", "First formula")
	f2 := flag.String("f2", "", "Second formula")
	aText := flag.String("a", "", "Lower bound (default from config)")
	bText := flag.String("b", "", "Upper bound (default from config)")
	viewName := flag.String("view", string(scene.Graph2D), "View: graph2D, graph3DX or graph3DY")
	out := flag.String("o", "view.png", "Output file")
	configPath := flag.String("config", "", "TOML settings file (default: built-in)")
	w := flag.Int("w", 0, "Width in pixels (default: panel width)")
	h := flag.Int("h", 0, "Height in pixels (default: panel height)")
	flag.Parse()

	if *f1 == "" && *f2 == "" {
		fmt.Fprintln(os.Stderr, "Usage: export_png -f1 <formula> [-f2 <formula>] [-a A] [-b B] [-view id] [-o file.png]")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *w <= 0 {
		*w = cfg.Window.PanelWidth
	}
	if *h <= 0 {
		*h = cfg.Window.PanelHeight
	}

	a := app.New(cfg)
	a.Inputs = app.Inputs{Formula1: *f1, Formula2: *f2, AText: *aText, BText: *bText}
	a.RegenerateAll()

	v, err := a.Scenes.View(scene.ID(*viewName))
	if err != nil {
		log.Fatal(err)
	}
	// One step settles label positions and camera matrices.
	v.Camera.Resize(*w, *h)
	a.Scenes.Update()

	img := raster.Render(raster.Build(v, *w, *h))

	if err := save(*out, img); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %s (%dx%d, view %s)", *out, *w, *h, v.ID)
}

// save writes img to path as PNG, closing the file before returning.
func save(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := raster.WritePNG(file, img); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
