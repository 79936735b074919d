package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/riskibarqy/lineup-studio/internal/domain/lineup"
	xdraw "golang.org/x/image/draw"
)

// PNGRasterizer composes scenes natively, without a browser.
type PNGRasterizer struct {
	jersey JerseyRenderer
}

func NewPNGRasterizer(jersey JerseyRenderer) *PNGRasterizer {
	if jersey == nil {
		jersey = NewShirtRenderer()
	}
	return &PNGRasterizer{jersey: jersey}
}

func (r *PNGRasterizer) Capture(ctx context.Context, scene Scene) ([]byte, error) {
	img, err := r.Draw(ctx, scene)
	if err != nil {
		return nil, err
	}
	return EncodePNG(img)
}

// Draw composes the scene into an RGBA image: canvas, background, field, then cards in slot order.
func (r *PNGRasterizer) Draw(ctx context.Context, scene Scene) (*image.RGBA, error) {
	if !scene.Size.Valid() {
		return nil, fmt.Errorf("%w: size %dx%d", ErrNotRenderable, scene.Size.Width, scene.Size.Height)
	}
	canvas := image.NewRGBA(image.Rect(0, 0, scene.Size.Width, scene.Size.Height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(canvasFill), image.Point{}, draw.Src)

	if scene.Background != nil {
		bg, err := decodeDataURLImage(scene.Background.DataURL)
		if err != nil {
			return nil, fmt.Errorf("custom background: %w", err)
		}
		dst := BackgroundRect(canvas.Bounds(), bg.Bounds(), scene.Background.PositionX, scene.Background.PositionY)
		xdraw.ApproxBiLinear.Scale(canvas, dst, bg, bg.Bounds(), draw.Over, nil)
	}

	field := FieldRect(scene)
	texture := FieldTexture(scene.FieldVariant, field.Dx(), field.Dy())
	draw.Draw(canvas, field, texture, image.Point{}, draw.Over)

	jersey, err := r.jerseyCache(scene)
	if err != nil {
		return nil, err
	}
	for _, m := range scene.Markers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		art, err := jersey(m.Player.Number)
		if err != nil {
			return nil, fmt.Errorf("jersey for %s: %w", m.SlotID, err)
		}
		r.drawCard(canvas, CardRect(field, m), scene, m, art)
	}
	return canvas, nil
}

// jerseyCache renders each distinct number once per capture.
func (r *PNGRasterizer) jerseyCache(scene Scene) (func(int) (image.Image, error), error) {
	if err := lineup.ValidateJerseyOptions(scene.Jersey); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotRenderable, err)
	}
	cache := make(map[int]image.Image)
	return func(number int) (image.Image, error) {
		if img, ok := cache[number]; ok {
			return img, nil
		}
		img, err := r.jersey.Render(scene.Jersey, number)
		if err != nil {
			return nil, err
		}
		cache[number] = img
		return img, nil
	}, nil
}

func (r *PNGRasterizer) drawCard(canvas *image.RGBA, card image.Rectangle, scene Scene, m Marker, art image.Image) {
	fillRounded(canvas, card, scene.CornerRadius, cardFill)
	if m.Editing {
		strokeRounded(canvas, card, scene.CornerRadius, captainYellow)
	}

	w := card.Dx()
	shirt := image.Rect(card.Min.X+cardPadding, card.Min.Y+cardPadding, card.Max.X-cardPadding, card.Min.Y+w-cardPadding)
	xdraw.ApproxBiLinear.Scale(canvas, shirt, art, art.Bounds(), draw.Over, nil)

	if m.Player.IsCaptain {
		radius := max(6, w/9)
		centre := image.Pt(shirt.Max.X-radius/2, shirt.Min.Y+radius/2)
		fillCircle(canvas, centre, radius, captainYellow)
		drawCentredText(canvas, image.Rect(centre.X-radius, centre.Y-radius, centre.X+radius, centre.Y+radius), "C", nameInk)
	}

	nameRow := image.Rect(card.Min.X+2, card.Min.Y+w, card.Max.X-2, card.Min.Y+w+nameRowHeight)
	drawCentredText(canvas, nameRow, m.Player.Name, nameInk)

	badge := image.Rect(card.Min.X+cardPadding, nameRow.Max.Y, card.Max.X-cardPadding, nameRow.Max.Y+badgeRowHeight)
	badgeColor := mustColor(scene.BadgeColor, mustColor(lineup.DefaultBadgeColor, canvasFill))
	fillRounded(canvas, badge, scene.CornerRadius/2, badgeColor)
	drawCentredText(canvas, badge, m.Label, contrastInk(badgeColor))
}

func strokeRounded(canvas *image.RGBA, r image.Rectangle, radius int, c color.Color) {
	outer := roundedMask(r.Dx()+4, r.Dy()+4, radius+2)
	inner := roundedMask(r.Dx(), r.Dy(), radius)
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			a := int(outer.AlphaAt(x+2, y+2).A) - int(inner.AlphaAt(x, y).A)
			outer.Pix[outer.PixOffset(x+2, y+2)] = uint8(max(a, 0))
		}
	}
	dst := r.Inset(-2)
	draw.DrawMask(canvas, dst, image.NewUniform(c), image.Point{}, outer, image.Point{}, draw.Over)
}
