package render

import (
	"fmt"
	"html/template"
	"io"
	"math"

	"github.com/riskibarqy/lineup-studio/internal/domain/lineup"
)

// SurfaceElementID is the root node of the HTML surface.
const SurfaceElementID = "lineup-surface"

var surfaceTemplate = template.Must(template.New("surface").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Lineup</title>
<style>
html, body { margin: 0; padding: 0; background: #1a1b1e; }
#lineup-surface { position: relative; overflow: hidden; font-family: sans-serif; }
#lineup-surface .background { position: absolute; inset: 0; background-repeat: no-repeat; background-size: cover; }
#lineup-surface .field { position: absolute; }
#lineup-surface .marker { position: absolute; box-sizing: border-box; background: rgba(255,255,255,0.92); text-align: center; cursor: pointer; padding: 4px; }
#lineup-surface .marker.editing { outline: 2px solid #fcc419; }
#lineup-surface .marker img.jersey { display: block; width: 100%; }
#lineup-surface .marker .captain { position: absolute; top: 2px; right: 2px; width: 18px; height: 18px; border-radius: 50%; background: #fcc419; color: #212529; font-size: 12px; font-weight: bold; line-height: 18px; }
#lineup-surface .marker .name { font-size: 12px; color: #212529; white-space: nowrap; overflow: hidden; text-overflow: ellipsis; height: 16px; }
#lineup-surface .marker .badge { font-size: 11px; font-weight: bold; height: 16px; line-height: 16px; }
</style>
</head>
<body>
<div id="lineup-surface" style="{{.Style}}">
{{- if .Background}}
<div class="background" style="{{.Background}}"></div>
{{- end}}
<img class="field" alt="" src="{{.Field}}" style="{{.FieldStyle}}">
{{- range .Markers}}
<div class="marker{{if .Editing}} editing{{end}}" data-slot="{{.SlotID}}" style="{{.Style}}">
<img class="jersey" alt="{{.Number}}" src="{{.Jersey}}">
{{- if .Captain}}<div class="captain">C</div>{{end}}
<div class="name">{{.Name}}</div>
<div class="badge" style="{{.BadgeStyle}}">{{.Label}}</div>
</div>
{{- end}}
</div>
</body>
</html>
`))

type surfaceView struct {
	Style      template.CSS
	Background template.CSS
	Field      template.URL
	FieldStyle template.CSS
	Markers    []markerView
}

type markerView struct {
	SlotID     string
	Label      string
	Name       string
	Number     int
	Captain    bool
	Editing    bool
	Jersey     template.URL
	Style      template.CSS
	BadgeStyle template.CSS
}

// HTMLSurface renders a scene as a standalone HTML document. Markers carry
// data-slot attributes so a page script can open the editor for a slot.
type HTMLSurface struct {
	jersey JerseyRenderer
}

func NewHTMLSurface(jersey JerseyRenderer) *HTMLSurface {
	if jersey == nil {
		jersey = NewShirtRenderer()
	}
	return &HTMLSurface{jersey: jersey}
}

func (s *HTMLSurface) Render(w io.Writer, scene Scene) error {
	view, err := s.view(scene)
	if err != nil {
		return err
	}
	return surfaceTemplate.Execute(w, view)
}

func (s *HTMLSurface) view(scene Scene) (surfaceView, error) {
	if !scene.Size.Valid() {
		return surfaceView{}, fmt.Errorf("%w: size %dx%d", ErrNotRenderable, scene.Size.Width, scene.Size.Height)
	}
	if err := lineup.ValidateJerseyOptions(scene.Jersey); err != nil {
		return surfaceView{}, fmt.Errorf("%w: %v", ErrNotRenderable, err)
	}

	field := FieldRect(scene)
	fieldURL, err := PNGDataURL(FieldTexture(scene.FieldVariant, field.Dx(), field.Dy()))
	if err != nil {
		return surfaceView{}, err
	}

	view := surfaceView{
		Style: template.CSS(fmt.Sprintf("width: %dpx; height: %dpx;", scene.Size.Width, scene.Size.Height)),
		Field: template.URL(fieldURL),
		FieldStyle: template.CSS(fmt.Sprintf("left: %dpx; top: %dpx; width: %dpx; height: %dpx;",
			field.Min.X, field.Min.Y, field.Dx(), field.Dy())),
		Markers: make([]markerView, 0, len(scene.Markers)),
	}
	if bg := scene.Background; bg != nil {
		view.Background = template.CSS(fmt.Sprintf("background-image: url('%s'); background-position: %s%% %s%%;",
			bg.DataURL, formatPercent(bg.PositionX), formatPercent(bg.PositionY)))
	}

	badge := mustColor(scene.BadgeColor, mustColor(lineup.DefaultBadgeColor, canvasFill))
	ink := contrastInk(badge)
	badgeStyle := template.CSS(fmt.Sprintf("background: %s; color: %s; border-radius: %dpx;",
		cssColor(badge), cssColor(ink), scene.CornerRadius/2))

	jerseys := make(map[int]template.URL)
	for _, m := range scene.Markers {
		url, ok := jerseys[m.Player.Number]
		if !ok {
			img, err := s.jersey.Render(scene.Jersey, m.Player.Number)
			if err != nil {
				return surfaceView{}, fmt.Errorf("jersey for %s: %w", m.SlotID, err)
			}
			encoded, err := PNGDataURL(img)
			if err != nil {
				return surfaceView{}, err
			}
			url = template.URL(encoded)
			jerseys[m.Player.Number] = url
		}

		card := CardRect(field, m)
		view.Markers = append(view.Markers, markerView{
			SlotID:  m.SlotID,
			Label:   m.Label,
			Name:    m.Player.Name,
			Number:  m.Player.Number,
			Captain: m.Player.IsCaptain,
			Editing: m.Editing,
			Jersey:  url,
			Style: template.CSS(fmt.Sprintf("left: %dpx; top: %dpx; width: %dpx; height: %dpx; border-radius: %dpx;",
				card.Min.X, card.Min.Y, card.Dx(), card.Dy(), scene.CornerRadius)),
			BadgeStyle: badgeStyle,
		})
	}
	return view, nil
}

func cssColor(c interface{ RGBA() (r, g, b, a uint32) }) string {
	r, g, b, a := c.RGBA()
	return fmt.Sprintf("rgba(%d,%d,%d,%.3f)", r>>8, g>>8, b>>8, float64(a>>8)/255)
}

func formatPercent(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int(v))
	}
	return fmt.Sprintf("%.2f", v)
}
