package lineup

import (
	"maps"

	"github.com/riskibarqy/lineup-studio/internal/domain/formation"
)

const (
	MinNumber = 1
	MaxNumber = 99

	DefaultBadgeColor = "#007bff"

	MinFieldScale     = 0.5
	MaxFieldScale     = 1.0
	DefaultFieldScale = 0.8

	MinFieldPositionY = -10
	MaxFieldPositionY = 10

	DefaultBackgroundPosition = 50.0

	// FieldVariantCount is the number of built-in field textures.
	FieldVariantCount = 2
)

// PlayerData is what the user typed for one formation slot.
type PlayerData struct {
	Name      string `json:"name" validate:"max=64"`
	Number    int    `json:"number" validate:"min=1,max=99"`
	IsCaptain bool   `json:"isCaptain"`
}

func DefaultPlayer() PlayerData {
	return PlayerData{Name: "", Number: MinNumber, IsCaptain: false}
}

// Roster maps slot id to player data for the active formation.
type Roster map[string]PlayerData

// NewRoster returns a default player for every slot of f.
func NewRoster(f formation.Formation) Roster {
	out := make(Roster, len(f.Slots))
	for _, slot := range f.Slots {
		out[slot.ID] = DefaultPlayer()
	}
	return out
}

func (r Roster) Clone() Roster {
	if r == nil {
		return nil
	}
	return maps.Clone(r)
}

// Captain returns the slot holding the armband, if any.
func (r Roster) Captain() (string, bool) {
	for slotID, p := range r {
		if p.IsCaptain {
			return slotID, true
		}
	}
	return "", false
}

// CaptainCount is exposed so imports can reject documents breaking the single captain rule.
func (r Roster) CaptainCount() int {
	n := 0
	for _, p := range r {
		if p.IsCaptain {
			n++
		}
	}
	return n
}

// MatchesFormation reports whether the key set equals exactly the slot ids of f.
func (r Roster) MatchesFormation(f formation.Formation) bool {
	if len(r) != len(f.Slots) {
		return false
	}
	for _, slot := range f.Slots {
		if _, ok := r[slot.ID]; !ok {
			return false
		}
	}
	return true
}

type ShirtStyle string

const (
	ShirtStylePlain        ShirtStyle = "plain"
	ShirtStyleStriped      ShirtStyle = "striped"
	ShirtStyleDashed       ShirtStyle = "dashed"
	ShirtStyleTwoColor     ShirtStyle = "two-color"
	ShirtStyleStripedThin  ShirtStyle = "striped-thin"
	ShirtStyleStripedThick ShirtStyle = "striped-thick"
	ShirtStyleWaves        ShirtStyle = "waves"
	ShirtStyleCheckered    ShirtStyle = "checkered"
	ShirtStyleHoops        ShirtStyle = "hoops"
	ShirtStyleSingleBand   ShirtStyle = "single-band"
)

// ShirtStyles lists every pattern in picker order.
func ShirtStyles() []ShirtStyle {
	return []ShirtStyle{
		ShirtStylePlain,
		ShirtStyleStriped,
		ShirtStyleDashed,
		ShirtStyleTwoColor,
		ShirtStyleStripedThin,
		ShirtStyleStripedThick,
		ShirtStyleWaves,
		ShirtStyleCheckered,
		ShirtStyleHoops,
		ShirtStyleSingleBand,
	}
}

// JerseyOptions is applied to every player's shirt.
type JerseyOptions struct {
	ShirtColor      string     `json:"shirtColor" validate:"required,hexcolor"`
	SleeveColor     string     `json:"sleeveColor" validate:"required,hexcolor"`
	TextColor       string     `json:"textColor" validate:"required,hexcolor"`
	ShirtStyleColor string     `json:"shirtStyleColor" validate:"required,hexcolor"`
	ShirtStyle      ShirtStyle `json:"shirtStyle" validate:"required,oneof=plain striped dashed two-color striped-thin striped-thick waves checkered hoops single-band"`
}

func DefaultJerseyOptions() JerseyOptions {
	return JerseyOptions{
		ShirtColor:      "#007bff",
		SleeveColor:     "#ffffff",
		TextColor:       "#ffffff",
		ShirtStyleColor: "#ffffff",
		ShirtStyle:      ShirtStylePlain,
	}
}

type PaperRadius string

const (
	PaperRadiusXS PaperRadius = "xs"
	PaperRadiusSM PaperRadius = "sm"
	PaperRadiusMD PaperRadius = "md"
	PaperRadiusLG PaperRadius = "lg"
	PaperRadiusXL PaperRadius = "xl"
)

func (r PaperRadius) Valid() bool {
	switch r {
	case PaperRadiusXS, PaperRadiusSM, PaperRadiusMD, PaperRadiusLG, PaperRadiusXL:
		return true
	}
	return false
}

// Pixels is the corner radius for the size token.
func (r PaperRadius) Pixels() int {
	switch r {
	case PaperRadiusXS:
		return 2
	case PaperRadiusSM:
		return 4
	case PaperRadiusLG:
		return 16
	case PaperRadiusXL:
		return 32
	default:
		return 8
	}
}

// Presentation holds the purely visual layout knobs. Only defaults survive a session.
type Presentation struct {
	ActiveFieldVariant  int         `json:"activeFieldVariant"`
	PaperRadius         PaperRadius `json:"paperRadius"`
	CustomBackground    string      `json:"customBackground,omitempty"`
	BackgroundPositionX float64     `json:"backgroundPositionX"`
	BackgroundPositionY float64     `json:"backgroundPositionY"`
	FieldPositionY      int         `json:"fieldPositionY"`
	FieldScale          float64     `json:"fieldScale"`
}

func DefaultPresentation() Presentation {
	return Presentation{
		ActiveFieldVariant:  0,
		PaperRadius:         PaperRadiusMD,
		BackgroundPositionX: DefaultBackgroundPosition,
		BackgroundPositionY: DefaultBackgroundPosition,
		FieldPositionY:      0,
		FieldScale:          DefaultFieldScale,
	}
}

func (p Presentation) HasCustomBackground() bool {
	return p.CustomBackground != ""
}

// Draft is the persisted part of a lineup.
type Draft struct {
	Formation     string        `json:"formation"`
	Players       Roster        `json:"players"`
	JerseyOptions JerseyOptions `json:"jerseyOptions"`
	BadgeColor    string        `json:"badgeColor"`
}

// DefaultDraft starts from the catalog default formation with an empty roster.
func DefaultDraft(catalog *formation.Catalog) Draft {
	return Draft{
		Formation:     catalog.Default(),
		Players:       NewRoster(catalog.MustLookup(catalog.Default())),
		JerseyOptions: DefaultJerseyOptions(),
		BadgeColor:    DefaultBadgeColor,
	}
}

// EditorState tracks the player edit dialog.
type EditorState struct {
	SlotID string `json:"slotId,omitempty"`
	Open   bool   `json:"open"`
}

// State is everything the builder owns.
type State struct {
	Draft
	Presentation Presentation `json:"presentation"`
	Editor       EditorState  `json:"editor"`
}

func (s State) Clone() State {
	out := s
	out.Players = s.Players.Clone()
	return out
}
