package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"

	"github.com/riskibarqy/lineup-studio/internal/domain/lineup"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// JerseySize is the edge of the square shirt artwork.
const JerseySize = 120

type point struct{ x, y float64 }

// Shirt outline in a 120×120 box, seen from the back.
var (
	shirtBody = []point{
		{36, 14}, {50, 10}, {60, 16}, {70, 10}, {84, 14},
		{90, 26}, {90, 112}, {30, 112}, {30, 26},
	}
	leftSleeve  = []point{{36, 14}, {30, 26}, {30, 50}, {16, 56}, {4, 36}}
	rightSleeve = []point{{84, 14}, {90, 26}, {90, 50}, {104, 56}, {116, 36}}
)

// ShirtRenderer draws a back-view shirt with the squad number.
type ShirtRenderer struct{}

func NewShirtRenderer() *ShirtRenderer {
	return &ShirtRenderer{}
}

func (ShirtRenderer) Render(opts lineup.JerseyOptions, number int) (image.Image, error) {
	shirt, err := ParseHexColor(opts.ShirtColor)
	if err != nil {
		return nil, fmt.Errorf("shirt color: %w", err)
	}
	sleeve, err := ParseHexColor(opts.SleeveColor)
	if err != nil {
		return nil, fmt.Errorf("sleeve color: %w", err)
	}
	text, err := ParseHexColor(opts.TextColor)
	if err != nil {
		return nil, fmt.Errorf("text color: %w", err)
	}
	pattern, err := ParseHexColor(opts.ShirtStyleColor)
	if err != nil {
		return nil, fmt.Errorf("style color: %w", err)
	}
	painted, ok := patterns[opts.ShirtStyle]
	if !ok {
		return nil, fmt.Errorf("unknown shirt style %q", opts.ShirtStyle)
	}

	img := image.NewRGBA(image.Rect(0, 0, JerseySize, JerseySize))
	for y := 0; y < JerseySize; y++ {
		for x := 0; x < JerseySize; x++ {
			p := point{float64(x) + 0.5, float64(y) + 0.5}
			switch {
			case inside(p, leftSleeve) || inside(p, rightSleeve):
				img.SetRGBA(x, y, sleeve)
			case inside(p, shirtBody):
				if painted(p.x-30, p.y-10) {
					img.SetRGBA(x, y, pattern)
				} else {
					img.SetRGBA(x, y, shirt)
				}
			}
		}
	}

	if number >= lineup.MinNumber && number <= lineup.MaxNumber {
		drawNumber(img, strconv.Itoa(number), text)
	}
	return img, nil
}

// patterns take body-local coordinates (0..60 across, 0..102 down).
var patterns = map[lineup.ShirtStyle]func(x, y float64) bool{
	lineup.ShirtStylePlain:        func(_, _ float64) bool { return false },
	lineup.ShirtStyleStriped:      func(x, _ float64) bool { return math.Mod(x, 15) >= 7.5 },
	lineup.ShirtStyleStripedThin:  func(x, _ float64) bool { return math.Mod(x, 8) < 3 },
	lineup.ShirtStyleStripedThick: func(x, _ float64) bool { return math.Mod(x, 30) >= 15 },
	lineup.ShirtStyleDashed: func(x, y float64) bool {
		return math.Mod(x, 12) < 4 && math.Mod(y, 12) < 7
	},
	lineup.ShirtStyleTwoColor: func(x, _ float64) bool { return x >= 30 },
	lineup.ShirtStyleWaves: func(x, y float64) bool {
		return math.Mod(y+4*math.Sin(x/6)+8, 14) < 6
	},
	lineup.ShirtStyleCheckered: func(x, y float64) bool {
		return (int(x/10)+int(y/10))%2 == 1
	},
	lineup.ShirtStyleHoops:      func(_, y float64) bool { return math.Mod(y, 16) >= 8 },
	lineup.ShirtStyleSingleBand: func(_, y float64) bool { return y >= 34 && y < 48 },
}

// inside is an even-odd ray cast.
func inside(p point, poly []point) bool {
	in := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.y > p.y) != (b.y > p.y) && p.x < (b.x-a.x)*(p.y-a.y)/(b.y-a.y)+a.x {
			in = !in
		}
	}
	return in
}

// drawNumber renders the number with the bitmap face and scales it up onto the chest.
func drawNumber(dst *image.RGBA, s string, c color.RGBA) {
	w := font.MeasureString(textFace, s).Ceil()
	metrics := textFace.Metrics()
	h := (metrics.Ascent + metrics.Descent).Ceil()

	glyphs := image.NewRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  glyphs,
		Src:  image.NewUniform(c),
		Face: textFace,
		Dot:  fixed.P(0, metrics.Ascent.Ceil()),
	}
	d.DrawString(s)

	const scale = 4
	tw, th := w*scale, h*scale
	if tw > 56 {
		th = th * 56 / tw
		tw = 56
	}
	x0 := JerseySize/2 - tw/2
	y0 := 62 - th/2
	xdraw.NearestNeighbor.Scale(dst, image.Rect(x0, y0, x0+tw, y0+th), glyphs, glyphs.Bounds(), draw.Over, nil)
}
