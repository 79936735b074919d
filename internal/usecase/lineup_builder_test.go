package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/lineup-studio/internal/domain/formation"
	"github.com/riskibarqy/lineup-studio/internal/domain/lineup"
	"github.com/riskibarqy/lineup-studio/internal/infrastructure/storage/cookie"
	"github.com/riskibarqy/lineup-studio/internal/infrastructure/storage/memory"
	"github.com/riskibarqy/lineup-studio/internal/platform/logging"
	"github.com/riskibarqy/lineup-studio/internal/render"
)

type failingRasterizer struct{}

func (failingRasterizer) Capture(context.Context, render.Scene) ([]byte, error) {
	return nil, errors.New("browser crashed")
}

type failingStorage struct {
	lineup.Storage
}

func (failingStorage) Set(context.Context, string, string, time.Duration) error {
	return errors.New("disk full")
}

func newTestBuilder(t *testing.T, storage lineup.Storage) *LineupBuilder {
	t.Helper()

	if storage == nil {
		storage = memory.NewDraftStorage()
	}
	b, err := NewLineupBuilder(context.Background(), LineupBuilderDeps{
		Catalog: formation.Builtin(),
		Storage: storage,
		Logger:  logging.NewNop(),
	})
	if err != nil {
		t.Fatalf("new lineup builder: %v", err)
	}
	return b
}

func rosterKeys(r lineup.Roster) []string {
	out := make([]string, 0, len(r))
	for k := range r {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedSlotIDs(f formation.Formation) []string {
	out := f.SlotIDs()
	sort.Strings(out)
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLineupBuilder_DefaultState(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t, nil)
	state := b.State()

	if state.Formation != formation.DefaultID {
		t.Fatalf("expected formation %s, got %s", formation.DefaultID, state.Formation)
	}
	if len(state.Players) != 11 {
		t.Fatalf("expected 11 players, got %d", len(state.Players))
	}
	for slotID, p := range state.Players {
		if p != lineup.DefaultPlayer() {
			t.Fatalf("expected default player in %s, got %+v", slotID, p)
		}
	}
	if state.BadgeColor != lineup.DefaultBadgeColor {
		t.Fatalf("expected badge color %s, got %s", lineup.DefaultBadgeColor, state.BadgeColor)
	}
	if state.Presentation != lineup.DefaultPresentation() {
		t.Fatalf("unexpected presentation: %+v", state.Presentation)
	}
}

func TestLineupBuilder_SelectFormationReplacesSlots(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	b := newTestBuilder(t, nil)
	if err := b.EditPlayer(ctx, "GK", lineup.Rename{Name: "Buffon"}); err != nil {
		t.Fatalf("rename: %v", err)
	}

	catalog := formation.Builtin()
	for _, id := range catalog.IDs() {
		if err := b.SelectFormation(ctx, id); err != nil {
			t.Fatalf("select %s: %v", id, err)
		}
		state := b.State()
		want := sortedSlotIDs(catalog.MustLookup(id))
		if got := rosterKeys(state.Players); !equalStrings(got, want) {
			t.Fatalf("formation %s: expected slots %v, got %v", id, want, got)
		}
		for slotID, p := range state.Players {
			if p != lineup.DefaultPlayer() {
				t.Fatalf("formation %s: expected reset player in %s, got %+v", id, slotID, p)
			}
		}
	}

	if err := b.SelectFormation(ctx, "2-2-6"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown formation, got %v", err)
	}
}

func TestLineupBuilder_CaptainStaysUnique(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	b := newTestBuilder(t, nil)

	if err := b.EditPlayer(ctx, "GK", lineup.SetCaptain{Captain: true}); err != nil {
		t.Fatalf("captain GK: %v", err)
	}
	if err := b.EditPlayer(ctx, "CB1", lineup.SetCaptain{Captain: true}); err != nil {
		t.Fatalf("captain CB1: %v", err)
	}

	state := b.State()
	if state.Players["GK"].IsCaptain {
		t.Fatalf("expected GK to lose the armband")
	}
	if !state.Players["CB1"].IsCaptain {
		t.Fatalf("expected CB1 to be captain")
	}
	if got := state.Players.CaptainCount(); got != 1 {
		t.Fatalf("expected 1 captain, got %d", got)
	}

	if err := b.EditPlayer(ctx, "CB1", lineup.SetCaptain{Captain: false}); err != nil {
		t.Fatalf("clear captain: %v", err)
	}
	if got := b.State().Players.CaptainCount(); got != 0 {
		t.Fatalf("expected no captain, got %d", got)
	}
}

func TestLineupBuilder_EditPlayerErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	b := newTestBuilder(t, nil)
	before := b.State()

	if err := b.EditPlayer(ctx, "LW", lineup.Rename{Name: "Nobody"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := b.EditPlayer(ctx, "GK", lineup.Renumber{Number: 100}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if got := b.State(); got.Players["GK"] != before.Players["GK"] {
		t.Fatalf("expected GK unchanged, got %+v", got.Players["GK"])
	}
}

func TestLineupBuilder_ExportImportRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	src := newTestBuilder(t, nil)
	if err := src.SelectFormation(ctx, "4-4-2"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := src.EditPlayer(ctx, "GK", lineup.Rename{Name: "Casillas"}); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if err := src.EditPlayer(ctx, "GK", lineup.SetCaptain{Captain: true}); err != nil {
		t.Fatalf("captain: %v", err)
	}
	if err := src.SetBadgeColor(ctx, "#ff0000"); err != nil {
		t.Fatalf("badge: %v", err)
	}
	if err := src.SetFieldScale(0.6); err != nil {
		t.Fatalf("scale: %v", err)
	}
	if err := src.SetFieldPositionY(-4); err != nil {
		t.Fatalf("field y: %v", err)
	}

	raw, err := src.ExportJSON()
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	dst := newTestBuilder(t, nil)
	if err := dst.ImportJSON(ctx, raw); err != nil {
		t.Fatalf("import: %v", err)
	}

	want := lineup.NewDocument(src.State())
	got := lineup.NewDocument(dst.State())
	if got.Formation != want.Formation || got.BadgeColor != want.BadgeColor ||
		got.FieldScale != want.FieldScale || got.FieldPositionY != want.FieldPositionY ||
		got.JerseyOptions != want.JerseyOptions {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	for slotID, p := range want.Players {
		if got.Players[slotID] != p {
			t.Fatalf("slot %s: expected %+v, got %+v", slotID, p, got.Players[slotID])
		}
	}
}

func TestLineupBuilder_ImportRejectsIncompleteDocuments(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	b := newTestBuilder(t, nil)
	if err := b.SetBadgeColor(ctx, "#123456"); err != nil {
		t.Fatalf("badge: %v", err)
	}
	before := b.State()

	cases := map[string]struct {
		raw  string
		want error
	}{
		"empty object":      {raw: `{}`, want: ErrMalformedImport},
		"missing players":   {raw: `{"formation":"4-4-2"}`, want: ErrMalformedImport},
		"unknown formation": {raw: `{"formation":"9-9-9","players":{}}`, want: ErrMalformedImport},
		"foreign slot":      {raw: `{"formation":"4-4-2","players":{"XX":{"name":"a","number":1,"isCaptain":false}}}`, want: ErrMalformedImport},
		"two captains":      {raw: `{"formation":"3-5-2","players":{"GK":{"name":"","number":1,"isCaptain":true},"CB1":{"name":"","number":2,"isCaptain":true}}}`, want: ErrMalformedImport},
		"bad badge color":   {raw: `{"formation":"3-5-2","players":{},"badgeColor":"red"}`, want: ErrMalformedImport},
		"array root":        {raw: `[]`, want: ErrMalformedImport},
		"number root":       {raw: `42`, want: ErrMalformedImport},
		"not json":          {raw: `lineup`, want: ErrUnparseableImport},
	}

	for name, tc := range cases {
		if err := b.ImportJSON(ctx, []byte(tc.raw)); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", name, tc.want, err)
		}
	}

	after := b.State()
	if after.BadgeColor != before.BadgeColor || after.Formation != before.Formation {
		t.Fatalf("expected state unchanged, got %+v", after.Draft)
	}
}

func TestLineupBuilder_ImportOverlaysOnlyPresentKeys(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	b := newTestBuilder(t, nil)
	if err := b.SetBadgeColor(ctx, "#abcdef"); err != nil {
		t.Fatalf("badge: %v", err)
	}
	if err := b.SetFieldScale(0.7); err != nil {
		t.Fatalf("scale: %v", err)
	}
	jersey := b.State().JerseyOptions

	raw := `{"formation":"4-3-3","players":{"GK":{"name":"Neuer","number":1,"isCaptain":false}},"fieldPositionY":0,"backgroundPositionX":0}`
	if err := b.ImportJSON(ctx, []byte(raw)); err != nil {
		t.Fatalf("import: %v", err)
	}

	state := b.State()
	if state.Formation != "4-3-3" || state.Players["GK"].Name != "Neuer" {
		t.Fatalf("expected imported formation and players, got %s %+v", state.Formation, state.Players["GK"])
	}
	if state.BadgeColor != "#abcdef" {
		t.Fatalf("expected absent badge color to be kept, got %s", state.BadgeColor)
	}
	if state.JerseyOptions != jersey {
		t.Fatalf("expected absent jersey options to be kept, got %+v", state.JerseyOptions)
	}
	if state.Presentation.FieldScale != 0.7 {
		t.Fatalf("expected absent field scale to be kept, got %v", state.Presentation.FieldScale)
	}
	if state.Presentation.BackgroundPositionX != 0 {
		t.Fatalf("expected present zero to be imported, got %v", state.Presentation.BackgroundPositionX)
	}
	if state.Presentation.BackgroundPositionY != lineup.DefaultBackgroundPosition {
		t.Fatalf("expected background y kept, got %v", state.Presentation.BackgroundPositionY)
	}
}

func TestLineupBuilder_ResetAllRestoresDefaults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := memory.NewDraftStorage()
	b := newTestBuilder(t, storage)

	if err := b.SelectFormation(ctx, "5-4-1"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := b.SetBadgeColor(ctx, "#000000"); err != nil {
		t.Fatalf("badge: %v", err)
	}
	if err := b.SetPaperRadius(lineup.PaperRadiusXL); err != nil {
		t.Fatalf("radius: %v", err)
	}
	if err := b.SetBackgroundPosition(10, 90); err != nil {
		t.Fatalf("position: %v", err)
	}
	b.ToggleFieldVariant()
	if err := b.OpenEditor("GK"); err != nil {
		t.Fatalf("open editor: %v", err)
	}

	if err := b.ResetAll(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	state := b.State()
	if state.Formation != formation.DefaultID || state.BadgeColor != lineup.DefaultBadgeColor {
		t.Fatalf("expected default draft, got %+v", state.Draft)
	}
	if state.Presentation != lineup.DefaultPresentation() {
		t.Fatalf("expected default presentation, got %+v", state.Presentation)
	}
	if state.Editor.Open {
		t.Fatalf("expected editor closed")
	}
	for _, key := range lineup.DraftKeys() {
		if _, ok, _ := storage.Get(ctx, key); ok {
			t.Fatalf("expected %s to be removed from storage", key)
		}
	}
}

func TestLineupBuilder_ToggleFieldVariantHasPeriodTwo(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t, nil)
	seen := []int{}
	for i := 0; i < 4; i++ {
		b.ToggleFieldVariant()
		seen = append(seen, b.State().Presentation.ActiveFieldVariant)
	}
	want := []int{1, 0, 1, 0}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, seen)
		}
	}
}

func TestLineupBuilder_PersistsAndRestoresDraft(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := memory.NewDraftStorage()
	b := newTestBuilder(t, storage)
	if err := b.SelectFormation(ctx, "4-2-3-1"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := b.EditPlayer(ctx, "GK", lineup.Renumber{Number: 23}); err != nil {
		t.Fatalf("renumber: %v", err)
	}
	opts := lineup.DefaultJerseyOptions()
	opts.ShirtStyle = lineup.ShirtStyleHoops
	if err := b.SetJerseyOptions(ctx, opts); err != nil {
		t.Fatalf("jersey: %v", err)
	}

	restored := newTestBuilder(t, storage)
	state := restored.State()
	if state.Formation != "4-2-3-1" || state.Players["GK"].Number != 23 || state.JerseyOptions.ShirtStyle != lineup.ShirtStyleHoops {
		t.Fatalf("expected restored draft, got %+v", state.Draft)
	}
	if state.Presentation != lineup.DefaultPresentation() {
		t.Fatalf("expected presentation defaults after restore, got %+v", state.Presentation)
	}
}

func TestLineupBuilder_CorruptStorageFallsBackPerKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := memory.NewDraftStorage()
	seed := map[string]string{
		lineup.KeyFormation:     "4-4-2",
		lineup.KeyPlayers:       `{"GK":`,
		lineup.KeyJerseyOptions: `{"shirtColor":"nope"}`,
		lineup.KeyBadgeColor:    "#00ff00",
	}
	for k, v := range seed {
		if err := storage.Set(ctx, k, v, time.Hour); err != nil {
			t.Fatalf("seed %s: %v", k, err)
		}
	}

	state := newTestBuilder(t, storage).State()
	if state.Formation != "4-4-2" {
		t.Fatalf("expected stored formation, got %s", state.Formation)
	}
	want := sortedSlotIDs(formation.Builtin().MustLookup("4-4-2"))
	if got := rosterKeys(state.Players); !equalStrings(got, want) {
		t.Fatalf("expected fresh 4-4-2 roster, got %v", got)
	}
	if state.JerseyOptions != lineup.DefaultJerseyOptions() {
		t.Fatalf("expected default jersey options, got %+v", state.JerseyOptions)
	}
	if state.BadgeColor != "#00ff00" {
		t.Fatalf("expected stored badge color, got %s", state.BadgeColor)
	}
}

func TestLineupBuilder_StoredPlayersForOtherFormationAreIgnored(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := memory.NewDraftStorage()
	_ = storage.Set(ctx, lineup.KeyFormation, "4-4-2", time.Hour)
	_ = storage.Set(ctx, lineup.KeyPlayers, `{"GK":{"name":"Solo","number":1,"isCaptain":false}}`, time.Hour)

	state := newTestBuilder(t, storage).State()
	if state.Players["GK"].Name != "" || len(state.Players) != 11 {
		t.Fatalf("expected regenerated roster, got %+v", state.Players)
	}
}

func TestLineupBuilder_UploadBackground(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t, nil)
	if err := b.UploadBackground(context.Background(), []byte("definitely not an image")); !errors.Is(err, ErrUnreadableImage) {
		t.Fatalf("expected ErrUnreadableImage, got %v", err)
	}
	if b.State().Presentation.HasCustomBackground() {
		t.Fatalf("expected no background after failed upload")
	}

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	if err := b.UploadBackground(context.Background(), buf.Bytes()); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !b.State().Presentation.HasCustomBackground() {
		t.Fatalf("expected background to be set")
	}

	if err := b.SetBackgroundPosition(20, 30); err != nil {
		t.Fatalf("position: %v", err)
	}
	b.RemoveBackground()
	state := b.State()
	if state.Presentation.HasCustomBackground() {
		t.Fatalf("expected background removed")
	}
	if state.Presentation.BackgroundPositionX != 20 || state.Presentation.BackgroundPositionY != 30 {
		t.Fatalf("expected offsets kept, got %+v", state.Presentation)
	}
}

func TestLineupBuilder_ExportImage(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t, nil)
	out, err := b.ExportImage(context.Background(), render.Size{Width: 320, Height: 240})
	if err != nil {
		t.Fatalf("export image: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if cfg.Width != 320 || cfg.Height != 240 {
		t.Fatalf("expected 320x240, got %dx%d", cfg.Width, cfg.Height)
	}

	if _, err := b.ExportImage(context.Background(), render.Size{Width: -1, Height: 10}); !errors.Is(err, ErrSurfaceUnavailable) {
		t.Fatalf("expected ErrSurfaceUnavailable, got %v", err)
	}
}

func TestLineupBuilder_ExportImageRasterizerFailure(t *testing.T) {
	t.Parallel()

	b, err := NewLineupBuilder(context.Background(), LineupBuilderDeps{
		Catalog:    formation.Builtin(),
		Storage:    memory.NewDraftStorage(),
		Rasterizer: failingRasterizer{},
		Logger:     logging.NewNop(),
	})
	if err != nil {
		t.Fatalf("new builder: %v", err)
	}
	before := b.State()

	if _, err := b.ExportImage(context.Background(), render.Size{}); !errors.Is(err, ErrRasterization) {
		t.Fatalf("expected ErrRasterization, got %v", err)
	}
	if b.State().Formation != before.Formation {
		t.Fatalf("expected state unchanged")
	}
}

func TestLineupBuilder_FailedPersistKeepsState(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t, failingStorage{Storage: memory.NewDraftStorage()})
	err := b.SelectFormation(context.Background(), "4-4-2")
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if got := b.State().Formation; got != formation.DefaultID {
		t.Fatalf("expected formation unchanged, got %s", got)
	}
}

func TestLineupBuilder_Editor(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t, nil)
	if err := b.OpenEditor("ZZ"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := b.OpenEditor("ST1"); err != nil {
		t.Fatalf("open: %v", err)
	}
	scene, err := b.Surface(render.Size{})
	if err != nil {
		t.Fatalf("surface: %v", err)
	}
	editing := 0
	for _, m := range scene.Markers {
		if m.Editing {
			editing++
			if m.SlotID != "ST1" {
				t.Fatalf("expected ST1 marker to be editing, got %s", m.SlotID)
			}
		}
	}
	if editing != 1 {
		t.Fatalf("expected one editing marker, got %d", editing)
	}
	b.CloseEditor()
	if b.State().Editor.Open {
		t.Fatalf("expected editor closed")
	}
}

func TestLineupBuilder_WithTransientState(t *testing.T) {
	t.Parallel()

	p := lineup.DefaultPresentation()
	p.ActiveFieldVariant = 1
	p.PaperRadius = lineup.PaperRadiusLG

	b, err := NewLineupBuilder(context.Background(), LineupBuilderDeps{
		Catalog: formation.Builtin(),
		Storage: memory.NewDraftStorage(),
		Logger:  logging.NewNop(),
	}, WithTransientState(p, lineup.EditorState{SlotID: "NOPE", Open: true}))
	if err != nil {
		t.Fatalf("new builder: %v", err)
	}

	state := b.State()
	if state.Presentation != p {
		t.Fatalf("expected restored presentation, got %+v", state.Presentation)
	}
	if state.Editor.Open {
		t.Fatalf("expected editor on unknown slot to be dropped")
	}
}

// oversizedLineup is a valid 4-4-2 document whose players do not fit in one cookie.
func oversizedLineup(t *testing.T) []byte {
	t.Helper()

	f, ok := formation.Builtin().Lookup("4-4-2")
	if !ok {
		t.Fatalf("missing 4-4-2")
	}
	name := strings.Repeat("Ł", 60)
	players := make([]string, 0, len(f.Slots))
	for i, slot := range f.Slots {
		players = append(players, fmt.Sprintf(`%q:{"name":%q,"number":%d,"isCaptain":false}`, slot.ID, name, i+1))
	}
	return []byte(`{"formation":"4-4-2","players":{` + strings.Join(players, ",") + `}}`)
}

func TestLineupBuilder_ImportTooLargeForCookiesWritesNothing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rec := httptest.NewRecorder()
	storage := cookie.New(rec, httptest.NewRequest(http.MethodPost, "/v1/lineup/import", nil), cookie.DefaultOptions())
	b := newTestBuilder(t, storage)
	before := b.State()

	err := b.ImportJSON(ctx, oversizedLineup(t))
	if !errors.Is(err, ErrMalformedImport) {
		t.Fatalf("expected ErrMalformedImport, got %v", err)
	}
	if !errors.Is(err, lineup.ErrValueTooLarge) {
		t.Fatalf("expected cause lineup.ErrValueTooLarge, got %v", err)
	}
	if cookies := rec.Result().Cookies(); len(cookies) != 0 {
		t.Fatalf("expected no Set-Cookie on a rejected import, got %+v", cookies)
	}
	if got := b.State(); got.Formation != before.Formation || len(got.Players) != len(before.Players) {
		t.Fatalf("expected state unchanged, got formation %s", got.Formation)
	}
}

func TestLineupBuilder_CommitTooLargeForCookiesIsInvalidInput(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rec := httptest.NewRecorder()
	storage := cookie.New(rec, httptest.NewRequest(http.MethodPatch, "/", nil), cookie.DefaultOptions())
	b := newTestBuilder(t, storage)

	next := b.State().Draft
	next.Players = next.Players.Clone()
	for slotID, p := range next.Players {
		p.Name = strings.Repeat("Ł", 64)
		next.Players[slotID] = p
	}

	if err := b.commitDraft(ctx, next); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if cookies := rec.Result().Cookies(); len(cookies) != 0 {
		t.Fatalf("expected no Set-Cookie, got %+v", cookies)
	}
	if b.State().Players["GK"].Name != "" {
		t.Fatalf("expected roster unchanged")
	}
}
