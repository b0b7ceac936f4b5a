package main

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveWritesDecodablePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 12, 7))
	path := filepath.Join(t.TempDir(), "view.png")
	if err := save(path, img); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	back, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if back.Bounds() != img.Bounds() {
		t.Errorf("decoded bounds %v; want %v", back.Bounds(), img.Bounds())
	}
}

func TestSaveReportsCreateError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "view.png")
	if err := save(path, image.NewRGBA(image.Rect(0, 0, 1, 1))); err == nil {
		t.Error("save into a missing directory succeeded")
	}
}
