package render

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/riskibarqy/lineup-studio/internal/domain/formation"
	"github.com/riskibarqy/lineup-studio/internal/domain/lineup"
)

var ErrNotRenderable = errors.New("lineup surface is not renderable")

const (
	DefaultWidth  = 800
	DefaultHeight = 800
	MaxDimension  = 4096
)

// Rasterizer turns a composed scene into PNG bytes.
type Rasterizer interface {
	Capture(ctx context.Context, scene Scene) ([]byte, error)
}

// JerseyRenderer draws the shirt artwork for one player.
type JerseyRenderer interface {
	Render(opts lineup.JerseyOptions, number int) (image.Image, error)
}

// Size is the surface size in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0 && s.Width <= MaxDimension && s.Height <= MaxDimension
}

// Background is an uploaded image drawn under the field.
type Background struct {
	DataURL   string
	PositionX float64
	PositionY float64
}

// Marker is one player card. X and Y are percentages of the field rectangle.
type Marker struct {
	SlotID  string
	Label   string
	X       float64
	Y       float64
	Player  lineup.PlayerData
	Editing bool
}

// Scene is everything needed to draw the lineup graphic.
type Scene struct {
	Size         Size
	FieldVariant int
	FieldScale   float64
	FieldOffsetY int
	Background   *Background
	CornerRadius int
	BadgeColor   string
	Jersey       lineup.JerseyOptions
	Markers      []Marker
}

// Composer derives scenes from builder state.
type Composer struct {
	catalog *formation.Catalog
	size    Size
}

// NewComposer uses size for scenes requested without explicit dimensions.
func NewComposer(catalog *formation.Catalog, size Size) *Composer {
	if !size.Valid() {
		size = Size{Width: DefaultWidth, Height: DefaultHeight}
	}
	return &Composer{catalog: catalog, size: size}
}

func (c *Composer) DefaultSize() Size {
	return c.size
}

// Compose is a pure function of state. A zero size falls back to the composer default.
func (c *Composer) Compose(state lineup.State, size Size) (Scene, error) {
	if size == (Size{}) {
		size = c.size
	}
	if !size.Valid() {
		return Scene{}, fmt.Errorf("%w: size %dx%d", ErrNotRenderable, size.Width, size.Height)
	}
	f, ok := c.catalog.Lookup(state.Formation)
	if !ok {
		return Scene{}, fmt.Errorf("%w: unknown formation %q", ErrNotRenderable, state.Formation)
	}

	p := state.Presentation
	scene := Scene{
		Size:         size,
		FieldVariant: p.ActiveFieldVariant,
		FieldScale:   p.FieldScale,
		FieldOffsetY: p.FieldPositionY,
		CornerRadius: p.PaperRadius.Pixels(),
		BadgeColor:   state.BadgeColor,
		Jersey:       state.JerseyOptions,
		Markers:      make([]Marker, 0, len(f.Slots)),
	}
	if p.HasCustomBackground() {
		scene.Background = &Background{
			DataURL:   p.CustomBackground,
			PositionX: p.BackgroundPositionX,
			PositionY: p.BackgroundPositionY,
		}
	}

	for _, slot := range f.Slots {
		player, ok := state.Players[slot.ID]
		if !ok {
			player = lineup.DefaultPlayer()
		}
		scene.Markers = append(scene.Markers, Marker{
			SlotID:  slot.ID,
			Label:   slot.Label,
			X:       slot.X,
			Y:       slot.Y,
			Player:  player,
			Editing: state.Editor.Open && state.Editor.SlotID == slot.ID,
		})
	}
	return scene, nil
}
