package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	captainYellow = color.RGBA{R: 0xfc, G: 0xc4, B: 0x19, A: 0xff}
	cardFill      = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xeb}
	canvasFill    = color.RGBA{R: 0x1a, G: 0x1b, B: 0x1e, A: 0xff}
	nameInk       = color.RGBA{R: 0x21, G: 0x25, B: 0x29, A: 0xff}
	textFace      = basicfont.Face7x13
)

// ParseHexColor accepts #rgb, #rrggbb and #rrggbbaa.
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}) + "ff"
	case 4:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
	case 6:
		hex += "ff"
	case 8:
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func mustColor(s string, fallback color.RGBA) color.RGBA {
	c, err := ParseHexColor(s)
	if err != nil {
		return fallback
	}
	return c
}

// contrastInk picks black or white text for a background.
func contrastInk(bg color.RGBA) color.RGBA {
	luma := 0.299*float64(bg.R) + 0.587*float64(bg.G) + 0.114*float64(bg.B)
	if luma > 160 {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
}

// roundedMask is an alpha mask of a w×h rectangle with rounded corners.
func roundedMask(w, h, radius int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	radius = min(radius, w/2, h/2)
	r := float64(radius)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cx, cy := float64(x)+0.5, float64(y)+0.5
			dx, dy := 0.0, 0.0
			if cx < r {
				dx = r - cx
			} else if cx > float64(w)-r {
				dx = cx - (float64(w) - r)
			}
			if cy < r {
				dy = r - cy
			} else if cy > float64(h)-r {
				dy = cy - (float64(h) - r)
			}
			if dx > 0 && dy > 0 {
				d := math.Hypot(dx, dy)
				if d > r {
					if d-r < 1 {
						mask.SetAlpha(x, y, color.Alpha{A: uint8(255 * (1 - (d - r)))})
					}
					continue
				}
			}
			mask.SetAlpha(x, y, color.Alpha{A: 0xff})
		}
	}
	return mask
}

func fillRounded(dst draw.Image, r image.Rectangle, radius int, c color.Color) {
	if r.Empty() {
		return
	}
	mask := roundedMask(r.Dx(), r.Dy(), radius)
	draw.DrawMask(dst, r, image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
}

func fillCircle(dst draw.Image, center image.Point, radius int, c color.Color) {
	r := image.Rect(center.X-radius, center.Y-radius, center.X+radius, center.Y+radius)
	fillRounded(dst, r, radius, c)
}

func fillRect(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Over)
}

// strokeRing draws a circle outline of the given thickness.
func strokeRing(dst draw.Image, center image.Point, radius, thickness int, c color.Color) {
	half := float64(thickness) / 2
	bounds := image.Rect(center.X-radius-thickness, center.Y-radius-thickness, center.X+radius+thickness+1, center.Y+radius+thickness+1).Intersect(dst.Bounds())
	src := image.NewUniform(c)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			d := math.Hypot(float64(x-center.X)+0.5, float64(y-center.Y)+0.5)
			if math.Abs(d-float64(radius)) <= half {
				draw.Draw(dst, image.Rect(x, y, x+1, y+1), src, image.Point{}, draw.Over)
			}
		}
	}
}

func textWidth(s string) int {
	return font.MeasureString(textFace, s).Ceil()
}

// fitText shortens s with an ellipsis until it fits maxWidth.
func fitText(s string, maxWidth int) string {
	if textWidth(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "..."
		if textWidth(candidate) <= maxWidth {
			return candidate
		}
	}
	return ""
}

// drawCentredText draws s centred horizontally in r and vertically on its midline.
func drawCentredText(dst draw.Image, r image.Rectangle, s string, c color.Color) {
	s = fitText(s, r.Dx())
	if s == "" {
		return
	}
	metrics := textFace.Metrics()
	textHeight := (metrics.Ascent + metrics.Descent).Ceil()
	x := r.Min.X + (r.Dx()-textWidth(s))/2
	y := r.Min.Y + (r.Dy()-textHeight)/2 + metrics.Ascent.Ceil()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: textFace,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
