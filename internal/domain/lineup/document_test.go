package lineup

import (
	"errors"
	"testing"

	"github.com/riskibarqy/lineup-studio/internal/domain/formation"
)

func TestParseDocument_PresenceNotTruthiness(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"formation":"4-4-2","players":{"GK":{"name":"","number":1,"isCaptain":false}},
		"fieldPositionY":0,"backgroundPositionX":0,"badgeColor":"#000000"}`)

	doc, err := ParseDocument(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Formation != "4-4-2" {
		t.Fatalf("expected formation 4-4-2, got %q", doc.Formation)
	}
	if doc.FieldPositionY == nil || *doc.FieldPositionY != 0 {
		t.Fatalf("expected present fieldPositionY=0, got %v", doc.FieldPositionY)
	}
	if doc.BackgroundPositionX == nil || *doc.BackgroundPositionX != 0 {
		t.Fatalf("expected present backgroundPositionX=0, got %v", doc.BackgroundPositionX)
	}
	if doc.BackgroundPositionY != nil || doc.FieldScale != nil || doc.JerseyOptions != nil {
		t.Fatalf("expected absent keys to stay nil: %+v", doc)
	}
}

func TestParseDocument_Rejections(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		raw  string
		want error
	}{
		"empty object":     {raw: `{}`, want: ErrDocumentIncomplete},
		"players only":     {raw: `{"players":{}}`, want: ErrDocumentIncomplete},
		"formation only":   {raw: `{"formation":"3-5-2"}`, want: ErrDocumentIncomplete},
		"null":             {raw: `null`, want: ErrDocumentIncomplete},
		"broken json":      {raw: `{"formation":`, want: ErrDocumentUnparseable},
		"array":            {raw: `[1,2]`, want: ErrDocumentIncomplete},
		"empty array":      {raw: `[]`, want: ErrDocumentIncomplete},
		"number":           {raw: `42`, want: ErrDocumentIncomplete},
		"string":           {raw: `"x"`, want: ErrDocumentIncomplete},
		"players wrong":    {raw: `{"formation":"3-5-2","players":[]}`, want: ErrDocumentInvalid},
		"fractional field": {raw: `{"formation":"3-5-2","players":{},"fieldPositionY":2.5}`, want: ErrDocumentInvalid},
	}

	for name, tc := range cases {
		if _, err := ParseDocument([]byte(tc.raw)); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", name, tc.want, err)
		}
	}
}

func TestDocument_MarshalThenParseKeepsEveryField(t *testing.T) {
	t.Parallel()

	catalog := formation.Builtin()
	state := State{Draft: DefaultDraft(catalog), Presentation: DefaultPresentation()}
	state.Players["GK"] = PlayerData{Name: "Buffon", Number: 1, IsCaptain: true}
	state.JerseyOptions.ShirtStyle = ShirtStyleHoops
	state.Presentation.FieldScale = 0.65
	state.Presentation.FieldPositionY = -4
	state.Presentation.BackgroundPositionX = 12.5

	raw, err := NewDocument(state).Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	doc, err := ParseDocument(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if doc.Players["GK"] != state.Players["GK"] {
		t.Fatalf("expected GK %+v, got %+v", state.Players["GK"], doc.Players["GK"])
	}
	if *doc.JerseyOptions != state.JerseyOptions {
		t.Fatalf("expected jersey %+v, got %+v", state.JerseyOptions, *doc.JerseyOptions)
	}
	if *doc.FieldScale != 0.65 || *doc.FieldPositionY != -4 || *doc.BackgroundPositionX != 12.5 {
		t.Fatalf("unexpected presentation fields: %v %v %v", *doc.FieldScale, *doc.FieldPositionY, *doc.BackgroundPositionX)
	}
}

func TestEncodeDraft_DecodesBack(t *testing.T) {
	t.Parallel()

	draft := DefaultDraft(formation.Builtin())
	draft.Players["CB1"] = PlayerData{Name: "Nesta \"Sandro\"", Number: 13}

	values, err := EncodeDraft(draft)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if values[KeyFormation] != "3-5-2" || values[KeyBadgeColor] != DefaultBadgeColor {
		t.Fatalf("expected raw string values, got %q / %q", values[KeyFormation], values[KeyBadgeColor])
	}

	players, err := DecodePlayers(values[KeyPlayers])
	if err != nil {
		t.Fatalf("decode players: %v", err)
	}
	if players["CB1"] != draft.Players["CB1"] {
		t.Fatalf("expected %+v, got %+v", draft.Players["CB1"], players["CB1"])
	}
	jersey, err := DecodeJerseyOptions(values[KeyJerseyOptions])
	if err != nil {
		t.Fatalf("decode jersey: %v", err)
	}
	if jersey != draft.JerseyOptions {
		t.Fatalf("expected %+v, got %+v", draft.JerseyOptions, jersey)
	}
}

func TestValidation(t *testing.T) {
	t.Parallel()

	if err := ValidateJerseyOptions(DefaultJerseyOptions()); err != nil {
		t.Fatalf("default jersey should validate: %v", err)
	}
	bad := DefaultJerseyOptions()
	bad.ShirtStyle = "zigzag"
	if err := ValidateJerseyOptions(bad); err == nil {
		t.Fatalf("expected unknown shirt style to fail")
	}
	bad = DefaultJerseyOptions()
	bad.TextColor = "white"
	if err := ValidateJerseyOptions(bad); err == nil {
		t.Fatalf("expected non-hex color to fail")
	}
	if err := ValidatePresentation(DefaultPresentation()); err != nil {
		t.Fatalf("default presentation should validate: %v", err)
	}
	if err := ValidateFieldScale(0.45); err == nil {
		t.Fatalf("expected scale below range to fail")
	}
	if err := ValidateFieldPositionY(11); err == nil {
		t.Fatalf("expected field position above range to fail")
	}
	if err := ValidatePlayers(Roster{"GK": {Number: 1, IsCaptain: true}, "CB1": {Number: 2, IsCaptain: true}}); err == nil {
		t.Fatalf("expected two captains to fail")
	}
}
