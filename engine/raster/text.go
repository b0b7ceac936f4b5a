package raster

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Face is the bitmap face used for labels and panel text.
var Face font.Face = basicfont.Face7x13

// TextSize returns the pixel size of s set in Face.
func TextSize(s string) (w, h int) {
	adv := font.MeasureString(Face, s)
	m := Face.Metrics()
	return adv.Ceil(), (m.Ascent + m.Descent).Ceil()
}

// DrawText draws s centred on (cx, cy).
func DrawText(dst draw.Image, s string, cx, cy int, col color.Color) {
	w, h := TextSize(s)
	DrawTextAt(dst, s, cx-w/2, cy-h/2, col)
}

// DrawTextAt draws s with its top-left corner at (x, y).
func DrawTextAt(dst draw.Image, s string, x, y int, col color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: Face,
		Dot:  fixed.P(x, y+Face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// TextImage renders s onto a transparent image just large enough to hold
// it. The window renderer uploads these once per string.
func TextImage(s string, col color.Color) *image.RGBA {
	w, h := TextSize(s)
	if w == 0 {
		w = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	DrawTextAt(img, s, 0, 0, col)
	return img
}
