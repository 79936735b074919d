package render

import (
	"image"
	"image/color"
	"math"
)

var fieldLine = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xd8}

type fieldPalette struct {
	light color.RGBA
	dark  color.RGBA
	mow   func(x, y, w, h int) bool
}

var fieldVariants = []fieldPalette{
	{
		light: color.RGBA{R: 0x43, G: 0x8a, B: 0x3a, A: 0xff},
		dark:  color.RGBA{R: 0x3a, G: 0x7d, B: 0x2c, A: 0xff},
		mow: func(_, y, _, h int) bool {
			return (y*12/max(h, 1))%2 == 1
		},
	},
	{
		light: color.RGBA{R: 0x36, G: 0x7a, B: 0x31, A: 0xff},
		dark:  color.RGBA{R: 0x2f, G: 0x6b, B: 0x2a, A: 0xff},
		mow: func(x, y, w, h int) bool {
			return ((x*8/max(w, 1))+(y*12/max(h, 1)))%2 == 1
		},
	},
}

// FieldVariants is the number of built-in textures.
func FieldVariants() int {
	return len(fieldVariants)
}

// FieldTexture paints built-in field texture variant at w×h, pitch markings included.
// Out-of-range variants wrap around.
func FieldTexture(variant, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return img
	}
	n := len(fieldVariants)
	palette := fieldVariants[((variant%n)+n)%n]
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if palette.mow(x, y, w, h) {
				img.SetRGBA(x, y, palette.dark)
			} else {
				img.SetRGBA(x, y, palette.light)
			}
		}
	}
	drawMarkings(img)
	return img
}

// drawMarkings draws a portrait pitch with the attacking goal at the top.
func drawMarkings(img *image.RGBA) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	t := max(2, w/200)
	inset := int(math.Round(float64(min(w, h)) * 0.04))
	pitch := image.Rect(inset, inset, w-inset, h-inset)

	outline(img, pitch, t)
	midY := pitch.Min.Y + pitch.Dy()/2
	fillRect(img, image.Rect(pitch.Min.X, midY-t/2, pitch.Max.X, midY-t/2+t), fieldLine)

	centre := image.Pt(pitch.Min.X+pitch.Dx()/2, midY)
	strokeRing(img, centre, int(float64(pitch.Dx())*0.13), t, fieldLine)
	fillCircle(img, centre, t+1, fieldLine)

	boxW := int(float64(pitch.Dx()) * 0.44)
	boxH := int(float64(pitch.Dy()) * 0.16)
	goalW := int(float64(pitch.Dx()) * 0.2)
	goalH := int(float64(pitch.Dy()) * 0.06)
	spot := int(float64(pitch.Dy()) * 0.11)

	top := image.Rect(centre.X-boxW/2, pitch.Min.Y, centre.X+boxW/2, pitch.Min.Y+boxH)
	bottom := image.Rect(centre.X-boxW/2, pitch.Max.Y-boxH, centre.X+boxW/2, pitch.Max.Y)
	outline(img, top, t)
	outline(img, bottom, t)
	outline(img, image.Rect(centre.X-goalW/2, pitch.Min.Y, centre.X+goalW/2, pitch.Min.Y+goalH), t)
	outline(img, image.Rect(centre.X-goalW/2, pitch.Max.Y-goalH, centre.X+goalW/2, pitch.Max.Y), t)
	fillCircle(img, image.Pt(centre.X, pitch.Min.Y+spot), t, fieldLine)
	fillCircle(img, image.Pt(centre.X, pitch.Max.Y-spot), t, fieldLine)
}

func outline(img *image.RGBA, r image.Rectangle, t int) {
	fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+t), fieldLine)
	fillRect(img, image.Rect(r.Min.X, r.Max.Y-t, r.Max.X, r.Max.Y), fieldLine)
	fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+t, r.Max.Y), fieldLine)
	fillRect(img, image.Rect(r.Max.X-t, r.Min.Y, r.Max.X, r.Max.Y), fieldLine)
}
