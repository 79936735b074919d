package lineup

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
)

var (
	// ErrDocumentUnparseable means the bytes are not valid JSON.
	ErrDocumentUnparseable = errors.New("lineup document is not valid JSON")
	// ErrDocumentIncomplete means formation or players is missing.
	ErrDocumentIncomplete = errors.New("lineup document requires formation and players")
	// ErrDocumentInvalid means a present field holds a value of the wrong shape.
	ErrDocumentInvalid = errors.New("lineup document has an invalid field")
)

// ExportFileName and ImageFileName are the download names of the two exports.
const (
	ExportFileName = "lineup.json"
	ImageFileName  = "lineup.png"
)

// Document is the exported lineup file.
type Document struct {
	Formation           string        `json:"formation"`
	Players             Roster        `json:"players"`
	JerseyOptions       JerseyOptions `json:"jerseyOptions"`
	BadgeColor          string        `json:"badgeColor"`
	FieldScale          float64       `json:"fieldScale"`
	BackgroundPositionX float64       `json:"backgroundPositionX"`
	BackgroundPositionY float64       `json:"backgroundPositionY"`
	FieldPositionY      int           `json:"fieldPositionY"`
}

// NewDocument snapshots the exportable part of a state.
func NewDocument(s State) Document {
	return Document{
		Formation:           s.Formation,
		Players:             s.Players.Clone(),
		JerseyOptions:       s.JerseyOptions,
		BadgeColor:          s.BadgeColor,
		FieldScale:          s.Presentation.FieldScale,
		BackgroundPositionX: s.Presentation.BackgroundPositionX,
		BackgroundPositionY: s.Presentation.BackgroundPositionY,
		FieldPositionY:      s.Presentation.FieldPositionY,
	}
}

func (d Document) Marshal() ([]byte, error) {
	return sonic.ConfigStd.MarshalIndent(d, "", "  ")
}

// DocumentOverlay is a parsed import. Formation and Players are always set;
// every other field is nil when its key was absent from the document.
type DocumentOverlay struct {
	Formation           string
	Players             Roster
	JerseyOptions       *JerseyOptions
	BadgeColor          *string
	FieldScale          *float64
	BackgroundPositionX *float64
	BackgroundPositionY *float64
	FieldPositionY      *int
}

// ParseDocument decodes an import by key presence: a key holding 0 or "" is present.
func ParseDocument(raw []byte) (DocumentOverlay, error) {
	var root any
	if err := sonic.Unmarshal(raw, &root); err != nil {
		return DocumentOverlay{}, fmt.Errorf("%w: %v", ErrDocumentUnparseable, err)
	}
	// Valid JSON whose root is not an object (null, an array, a scalar) has no formation or players.
	if _, ok := root.(map[string]any); !ok {
		return DocumentOverlay{}, ErrDocumentIncomplete
	}
	var fields map[string]json.RawMessage
	if err := sonic.Unmarshal(raw, &fields); err != nil {
		return DocumentOverlay{}, fmt.Errorf("%w: %v", ErrDocumentUnparseable, err)
	}

	formationRaw, hasFormation := fields["formation"]
	playersRaw, hasPlayers := fields["players"]
	if !hasFormation || !hasPlayers {
		return DocumentOverlay{}, ErrDocumentIncomplete
	}

	var out DocumentOverlay
	if err := decodeField("formation", formationRaw, &out.Formation); err != nil {
		return DocumentOverlay{}, err
	}
	if err := decodeField("players", playersRaw, &out.Players); err != nil {
		return DocumentOverlay{}, err
	}
	if out.Formation == "" || out.Players == nil {
		return DocumentOverlay{}, ErrDocumentIncomplete
	}

	var err error
	if out.JerseyOptions, err = optionalField[JerseyOptions](fields, "jerseyOptions"); err != nil {
		return DocumentOverlay{}, err
	}
	if out.BadgeColor, err = optionalField[string](fields, "badgeColor"); err != nil {
		return DocumentOverlay{}, err
	}
	if out.FieldScale, err = optionalField[float64](fields, "fieldScale"); err != nil {
		return DocumentOverlay{}, err
	}
	if out.BackgroundPositionX, err = optionalField[float64](fields, "backgroundPositionX"); err != nil {
		return DocumentOverlay{}, err
	}
	if out.BackgroundPositionY, err = optionalField[float64](fields, "backgroundPositionY"); err != nil {
		return DocumentOverlay{}, err
	}
	if out.FieldPositionY, err = optionalField[int](fields, "fieldPositionY"); err != nil {
		return DocumentOverlay{}, err
	}
	return out, nil
}

func optionalField[T any](fields map[string]json.RawMessage, key string) (*T, error) {
	raw, ok := fields[key]
	if !ok {
		return nil, nil
	}
	var v T
	if err := decodeField(key, raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func decodeField(key string, raw json.RawMessage, dst any) error {
	if err := sonic.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDocumentInvalid, key, err)
	}
	return nil
}
