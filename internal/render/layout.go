package render

import (
	"image"
	"math"
)

// Card proportions relative to the field width.
const (
	cardWidthRatio = 0.12
	minCardWidth   = 48
	nameRowHeight  = 16
	badgeRowHeight = 16
	cardPadding    = 4
)

// FieldRect is where the field texture lands on the canvas: scaled around the
// centre and shifted vertically by FieldOffsetY percent of the canvas height.
func FieldRect(s Scene) image.Rectangle {
	scale := s.FieldScale
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Round(float64(s.Size.Width) * scale))
	h := int(math.Round(float64(s.Size.Height) * scale))
	x0 := (s.Size.Width - w) / 2
	y0 := (s.Size.Height-h)/2 + int(math.Round(float64(s.Size.Height)*float64(s.FieldOffsetY)/100))
	return image.Rect(x0, y0, x0+w, y0+h)
}

// CardWidth is the marker card width for a field rectangle.
func CardWidth(field image.Rectangle) int {
	return max(minCardWidth, int(math.Round(float64(field.Dx())*cardWidthRatio)))
}

// CardRect centres a marker card on its slot.
func CardRect(field image.Rectangle, m Marker) image.Rectangle {
	w := CardWidth(field)
	h := w + nameRowHeight + badgeRowHeight + cardPadding
	cx := field.Min.X + int(math.Round(float64(field.Dx())*m.X/100))
	cy := field.Min.Y + int(math.Round(float64(field.Dy())*m.Y/100))
	return image.Rect(cx-w/2, cy-h/2, cx-w/2+w, cy-h/2+h)
}

// BackgroundRect sizes src to cover the canvas and offsets it like CSS background-position.
func BackgroundRect(canvas image.Rectangle, src image.Rectangle, posX, posY float64) image.Rectangle {
	cw, ch := float64(canvas.Dx()), float64(canvas.Dy())
	sw, sh := float64(src.Dx()), float64(src.Dy())
	if sw == 0 || sh == 0 {
		return canvas
	}
	scale := math.Max(cw/sw, ch/sh)
	w, h := sw*scale, sh*scale
	x := (cw - w) * posX / 100
	y := (ch - h) * posY / 100
	return image.Rect(
		canvas.Min.X+int(math.Round(x)),
		canvas.Min.Y+int(math.Round(y)),
		canvas.Min.X+int(math.Round(x+w)),
		canvas.Min.Y+int(math.Round(y+h)),
	)
}
