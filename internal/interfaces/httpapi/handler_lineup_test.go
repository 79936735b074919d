package httpapi

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/lineup-studio/internal/domain/formation"
	"github.com/riskibarqy/lineup-studio/internal/domain/lineup"
	"github.com/riskibarqy/lineup-studio/internal/infrastructure/session"
	"github.com/riskibarqy/lineup-studio/internal/infrastructure/storage/cookie"
	"github.com/riskibarqy/lineup-studio/internal/infrastructure/storage/memory"
	"github.com/riskibarqy/lineup-studio/internal/platform/logging"
)

type lineupEnvelope struct {
	APIVersion string       `json:"apiVersion"`
	Data       lineup.State `json:"data"`
	Error      *struct {
		Code   int    `json:"code"`
		Status string `json:"status"`
		Errors []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

type lineupClient struct {
	t       *testing.T
	router  http.Handler
	cookies map[string]*http.Cookie
}

func newLineupClient(t *testing.T, drafts DraftStorage) *lineupClient {
	t.Helper()

	handler := NewHandler(HandlerConfig{
		Drafts:   drafts,
		Sessions: session.NewStore(0),
		Logger:   logging.NewNop(),
	})
	return &lineupClient{
		t:       t,
		router:  NewRouter(handler, logging.NewNop(), nil, cookie.DefaultOptions()),
		cookies: map[string]*http.Cookie{},
	}
}

func newServerDraftClient(t *testing.T) *lineupClient {
	return newLineupClient(t, ServerDrafts{Store: memory.NewDraftStore()})
}

// do sends a request carrying the jar and keeps every cookie the response sets.
func (c *lineupClient) do(method, path, contentType string, body io.Reader) *httptest.ResponseRecorder {
	c.t.Helper()

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return rec
}

func (c *lineupClient) json(method, path, body string) (*httptest.ResponseRecorder, lineupEnvelope) {
	c.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	rec := c.do(method, path, "application/json", reader)

	var env lineupEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		c.t.Fatalf("unmarshal %s %s response %q: %v", method, path, rec.Body.String(), err)
	}
	return rec, env
}

func reasonOf(env lineupEnvelope) string {
	if env.Error == nil || len(env.Error.Errors) == 0 {
		return ""
	}
	return env.Error.Errors[0].Reason
}

func testPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestLineupHandlers_DefaultLineupMintsClient(t *testing.T) {
	t.Parallel()

	client := newServerDraftClient(t)
	rec, env := client.json(http.MethodGet, "/v1/lineup", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if env.APIVersion != googleAPIVersion {
		t.Fatalf("expected apiVersion %s, got %s", googleAPIVersion, env.APIVersion)
	}
	if env.Data.Formation != formation.DefaultID {
		t.Fatalf("expected default formation %s, got %s", formation.DefaultID, env.Data.Formation)
	}
	if len(env.Data.Players) != 11 {
		t.Fatalf("expected 11 players, got %d", len(env.Data.Players))
	}
	if env.Data.BadgeColor != lineup.DefaultBadgeColor {
		t.Fatalf("expected default badge color, got %s", env.Data.BadgeColor)
	}
	if _, ok := client.cookies[clientCookieName]; !ok {
		t.Fatalf("expected client cookie to be minted")
	}
}

func TestLineupHandlers_FormationAndPlayerEdits(t *testing.T) {
	t.Parallel()

	client := newServerDraftClient(t)

	rec, env := client.json(http.MethodPut, "/v1/lineup/formation", `{"formation":"4-3-3"}`)
	if rec.Code != http.StatusOK || env.Data.Formation != "4-3-3" {
		t.Fatalf("select formation: status=%d formation=%s", rec.Code, env.Data.Formation)
	}

	if rec, _ := client.json(http.MethodPatch, "/v1/lineup/players/GK", `{"field":"name","value":"Keeper"}`); rec.Code != http.StatusOK {
		t.Fatalf("rename: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec, _ := client.json(http.MethodPatch, "/v1/lineup/players/GK", `{"field":"number","value":13}`); rec.Code != http.StatusOK {
		t.Fatalf("renumber: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec, _ := client.json(http.MethodPatch, "/v1/lineup/players/GK", `{"field":"isCaptain","value":true}`); rec.Code != http.StatusOK {
		t.Fatalf("captain: expected 200, got %d", rec.Code)
	}
	_, env = client.json(http.MethodPatch, "/v1/lineup/players/LB", `{"field":"isCaptain","value":true}`)

	if got := env.Data.Players["GK"]; got.Name != "Keeper" || got.Number != 13 || got.IsCaptain {
		t.Fatalf("unexpected GK %+v", got)
	}
	if !env.Data.Players["LB"].IsCaptain || env.Data.Players.CaptainCount() != 1 {
		t.Fatalf("expected LB to hold the only armband, got %+v", env.Data.Players)
	}

	// A fresh request sees the persisted draft.
	_, env = client.json(http.MethodGet, "/v1/lineup", "")
	if env.Data.Formation != "4-3-3" || env.Data.Players["GK"].Name != "Keeper" {
		t.Fatalf("draft did not persist: %+v", env.Data.Draft)
	}
}

func TestLineupHandlers_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantReason string
	}{
		{name: "unknown formation", method: http.MethodPut, path: "/v1/lineup/formation", body: `{"formation":"2-2-6"}`, wantStatus: http.StatusBadRequest, wantReason: "invalidInput"},
		{name: "missing formation", method: http.MethodPut, path: "/v1/lineup/formation", body: `{}`, wantStatus: http.StatusBadRequest, wantReason: "invalidInput"},
		{name: "unknown field", method: http.MethodPatch, path: "/v1/lineup/players/GK", body: `{"field":"position","value":"x"}`, wantStatus: http.StatusBadRequest, wantReason: "invalidInput"},
		{name: "missing value", method: http.MethodPatch, path: "/v1/lineup/players/GK", body: `{"field":"name"}`, wantStatus: http.StatusBadRequest, wantReason: "invalidInput"},
		{name: "number out of range", method: http.MethodPatch, path: "/v1/lineup/players/GK", body: `{"field":"number","value":100}`, wantStatus: http.StatusBadRequest, wantReason: "invalidInput"},
		{name: "unknown slot", method: http.MethodPatch, path: "/v1/lineup/players/XX", body: `{"field":"name","value":"A"}`, wantStatus: http.StatusNotFound, wantReason: "notFound"},
		{name: "bad badge color", method: http.MethodPut, path: "/v1/lineup/badge-color", body: `{"badgeColor":"blue"}`, wantStatus: http.StatusBadRequest, wantReason: "invalidInput"},
		{name: "bad jersey style", method: http.MethodPut, path: "/v1/lineup/jersey", body: `{"shirtColor":"#000000","sleeveColor":"#000000","textColor":"#ffffff","shirtStyleColor":"#ffffff","shirtStyle":"zigzag"}`, wantStatus: http.StatusBadRequest, wantReason: "invalidInput"},
		{name: "field scale too big", method: http.MethodPatch, path: "/v1/lineup/presentation", body: `{"fieldScale":1.5}`, wantStatus: http.StatusBadRequest, wantReason: "invalidInput"},
		{name: "editor for unknown slot", method: http.MethodPost, path: "/v1/lineup/editor/XX", wantStatus: http.StatusNotFound, wantReason: "notFound"},
		{name: "broken json", method: http.MethodPut, path: "/v1/lineup/formation", body: `{`, wantStatus: http.StatusBadRequest, wantReason: "invalidInput"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := newServerDraftClient(t)
			rec, env := client.json(tt.method, tt.path, tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if got := reasonOf(env); got != tt.wantReason {
				t.Fatalf("expected reason %s, got %s", tt.wantReason, got)
			}
		})
	}
}

func TestLineupHandlers_PresentationIsAllOrNothing(t *testing.T) {
	t.Parallel()

	client := newServerDraftClient(t)

	rec, env := client.json(http.MethodPatch, "/v1/lineup/presentation", `{"paperRadius":"xl","fieldScale":0.6,"backgroundPositionX":10,"fieldPositionY":-4}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	p := env.Data.Presentation
	if p.PaperRadius != lineup.PaperRadiusXL || p.FieldScale != 0.6 || p.BackgroundPositionX != 10 || p.BackgroundPositionY != 50 || p.FieldPositionY != -4 {
		t.Fatalf("unexpected presentation %+v", p)
	}

	rec, _ = client.json(http.MethodPatch, "/v1/lineup/presentation", `{"paperRadius":"sm","fieldPositionY":40}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	_, env = client.json(http.MethodGet, "/v1/lineup", "")
	if env.Data.Presentation.PaperRadius != lineup.PaperRadiusXL {
		t.Fatalf("expected rejected update to leave radius xl, got %s", env.Data.Presentation.PaperRadius)
	}

	_, env = client.json(http.MethodPost, "/v1/lineup/field/toggle", "")
	if env.Data.Presentation.ActiveFieldVariant != 1 {
		t.Fatalf("expected field variant 1, got %d", env.Data.Presentation.ActiveFieldVariant)
	}
	_, env = client.json(http.MethodPost, "/v1/lineup/field/toggle", "")
	if env.Data.Presentation.ActiveFieldVariant != 0 {
		t.Fatalf("expected field variant 0, got %d", env.Data.Presentation.ActiveFieldVariant)
	}
}

func TestLineupHandlers_EditorLifecycle(t *testing.T) {
	t.Parallel()

	client := newServerDraftClient(t)

	_, env := client.json(http.MethodPost, "/v1/lineup/editor/GK", "")
	if !env.Data.Editor.Open || env.Data.Editor.SlotID != "GK" {
		t.Fatalf("expected editor open on GK, got %+v", env.Data.Editor)
	}
	_, env = client.json(http.MethodGet, "/v1/lineup", "")
	if !env.Data.Editor.Open {
		t.Fatalf("expected editor state to survive between requests")
	}
	_, env = client.json(http.MethodDelete, "/v1/lineup/editor", "")
	if env.Data.Editor.Open {
		t.Fatalf("expected editor closed, got %+v", env.Data.Editor)
	}
}

func TestLineupHandlers_BackgroundUpload(t *testing.T) {
	t.Parallel()

	client := newServerDraftClient(t)

	rec := client.do(http.MethodPut, "/v1/lineup/background", "image/png", bytes.NewReader(testPNG(t)))
	if rec.Code != http.StatusOK {
		t.Fatalf("raw upload: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	_, env := client.json(http.MethodGet, "/v1/lineup", "")
	if !strings.HasPrefix(env.Data.Presentation.CustomBackground, "data:image/png;base64,") {
		t.Fatalf("expected png data url background, got %.40q", env.Data.Presentation.CustomBackground)
	}

	_, env = client.json(http.MethodDelete, "/v1/lineup/background", "")
	if env.Data.Presentation.HasCustomBackground() {
		t.Fatalf("expected background removed")
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "pitch.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	_, _ = part.Write(testPNG(t))
	_ = mw.Close()

	rec = client.do(http.MethodPut, "/v1/lineup/background", mw.FormDataContentType(), &body)
	if rec.Code != http.StatusOK {
		t.Fatalf("multipart upload: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = client.do(http.MethodPut, "/v1/lineup/background", "text/plain", strings.NewReader("not an image"))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("garbage upload: expected 422, got %d", rec.Code)
	}
}

func TestLineupHandlers_UploadTooLarge(t *testing.T) {
	t.Parallel()

	handler := NewHandler(HandlerConfig{
		Drafts:         ServerDrafts{Store: memory.NewDraftStore()},
		MaxUploadBytes: 16,
		Logger:         logging.NewNop(),
	})
	router := NewRouter(handler, logging.NewNop(), nil, cookie.DefaultOptions())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/v1/lineup/background", bytes.NewReader(testPNG(t))))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestLineupHandlers_ExportImportRoundTrip(t *testing.T) {
	t.Parallel()

	source := newServerDraftClient(t)
	source.json(http.MethodPut, "/v1/lineup/formation", `{"formation":"4-4-2"}`)
	source.json(http.MethodPatch, "/v1/lineup/players/ST1", `{"field":"name","value":"Striker"}`)
	source.json(http.MethodPut, "/v1/lineup/badge-color", `{"badgeColor":"#ff0000"}`)

	rec := source.do(http.MethodGet, "/v1/lineup/export.json", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export: expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="lineup.json"` {
		t.Fatalf("unexpected content disposition %q", got)
	}
	exported := rec.Body.String()

	target := newServerDraftClient(t)
	rec2, env := target.json(http.MethodPost, "/v1/lineup/import", exported)
	if rec2.Code != http.StatusOK {
		t.Fatalf("import: expected 200, got %d: %s", rec2.Code, rec2.Body.String())
	}
	if env.Data.Formation != "4-4-2" || env.Data.Players["ST1"].Name != "Striker" || env.Data.BadgeColor != "#ff0000" {
		t.Fatalf("unexpected imported state %+v", env.Data.Draft)
	}
}

func TestLineupHandlers_ImportRejections(t *testing.T) {
	t.Parallel()

	client := newServerDraftClient(t)

	rec, env := client.json(http.MethodPost, "/v1/lineup/import", `not json`)
	if rec.Code != http.StatusBadRequest || reasonOf(env) != "unparseableImport" {
		t.Fatalf("expected 400 unparseableImport, got %d %s", rec.Code, reasonOf(env))
	}

	rec, env = client.json(http.MethodPost, "/v1/lineup/import", `{"formation":"4-4-2"}`)
	if rec.Code != http.StatusUnprocessableEntity || reasonOf(env) != "malformedImport" {
		t.Fatalf("expected 422 malformedImport, got %d %s", rec.Code, reasonOf(env))
	}

	rec, env = client.json(http.MethodPost, "/v1/lineup/import", `[]`)
	if rec.Code != http.StatusUnprocessableEntity || reasonOf(env) != "malformedImport" {
		t.Fatalf("expected 422 malformedImport for an array root, got %d %s", rec.Code, reasonOf(env))
	}

	_, env = client.json(http.MethodGet, "/v1/lineup", "")
	if env.Data.Formation != formation.DefaultID {
		t.Fatalf("expected failed imports to leave the lineup untouched, got %s", env.Data.Formation)
	}
}

func TestLineupHandlers_ExportImageAndSurface(t *testing.T) {
	t.Parallel()

	client := newServerDraftClient(t)

	rec := client.do(http.MethodGet, "/v1/lineup/export.png?width=270&height=338", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export png: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "image/png" {
		t.Fatalf("expected image/png, got %s", got)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("decode exported png: %v", err)
	}
	if cfg.Width != 270 || cfg.Height != 338 {
		t.Fatalf("expected 270x338, got %dx%d", cfg.Width, cfg.Height)
	}

	rec = client.do(http.MethodGet, "/v1/lineup/export.png?width=270", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for half a size, got %d", rec.Code)
	}

	rec = client.do(http.MethodGet, "/v1/lineup/surface", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("surface: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("expected html surface, got %s", rec.Header().Get("Content-Type"))
	}
}

func TestLineupHandlers_ResetRestoresDefaults(t *testing.T) {
	t.Parallel()

	client := newServerDraftClient(t)
	client.json(http.MethodPut, "/v1/lineup/formation", `{"formation":"3-4-3"}`)
	client.json(http.MethodPatch, "/v1/lineup/presentation", `{"paperRadius":"lg"}`)

	_, env := client.json(http.MethodPost, "/v1/lineup/reset", "")
	if env.Data.Formation != formation.DefaultID || env.Data.Presentation.PaperRadius != lineup.PaperRadiusMD {
		t.Fatalf("expected defaults after reset, got formation=%s radius=%s", env.Data.Formation, env.Data.Presentation.PaperRadius)
	}
}

func TestLineupHandlers_CookieDraftsRoundTrip(t *testing.T) {
	t.Parallel()

	client := newLineupClient(t, CookieDrafts{Options: cookie.DefaultOptions()})

	client.json(http.MethodPut, "/v1/lineup/formation", `{"formation":"4-3-3"}`)
	client.json(http.MethodPatch, "/v1/lineup/players/RB", `{"field":"name","value":"Full Back"}`)

	for _, key := range lineup.DraftKeys() {
		if _, ok := client.cookies[key]; !ok {
			t.Fatalf("expected draft cookie %s to be set", key)
		}
	}

	_, env := client.json(http.MethodGet, "/v1/lineup", "")
	if env.Data.Formation != "4-3-3" || env.Data.Players["RB"].Name != "Full Back" {
		t.Fatalf("expected draft restored from cookies, got %+v", env.Data.Draft)
	}

	client.json(http.MethodPost, "/v1/lineup/reset", "")
	_, env = client.json(http.MethodGet, "/v1/lineup", "")
	if env.Data.Formation != formation.DefaultID {
		t.Fatalf("expected reset to clear cookie draft, got %s", env.Data.Formation)
	}
}

func TestListFormations(t *testing.T) {
	t.Parallel()

	router := NewRouter(NewHandler(HandlerConfig{Logger: logging.NewNop()}), logging.NewNop(), nil, cookie.DefaultOptions())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/formations", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var env struct {
		Data formationsDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.Data.Default != formation.DefaultID || len(env.Data.Formations) == 0 {
		t.Fatalf("unexpected formations %+v", env.Data)
	}
}
