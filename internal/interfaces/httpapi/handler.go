package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/lineup-studio/internal/domain/formation"
	"github.com/riskibarqy/lineup-studio/internal/infrastructure/session"
	"github.com/riskibarqy/lineup-studio/internal/platform/logging"
	"github.com/riskibarqy/lineup-studio/internal/render"
	"github.com/riskibarqy/lineup-studio/internal/usecase"
)

const (
	defaultMaxUploadBytes = 10 << 20
	maxJSONBodyBytes      = 1 << 20
	defaultSessionTTL     = 24 * time.Hour
)

type HandlerConfig struct {
	Catalog        *formation.Catalog
	Composer       *render.Composer
	Rasterizer     render.Rasterizer
	Surface        *render.HTMLSurface
	Drafts         DraftStorage
	Sessions       *session.Store
	LeagueService  *usecase.LeagueService
	MaxUploadBytes int64
	Logger         *logging.Logger
}

type Handler struct {
	catalog        *formation.Catalog
	composer       *render.Composer
	rasterizer     render.Rasterizer
	surface        *render.HTMLSurface
	drafts         DraftStorage
	sessions       *session.Store
	leagueService  *usecase.LeagueService
	maxUploadBytes int64
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.Catalog == nil {
		cfg.Catalog = formation.Builtin()
	}
	if cfg.Composer == nil {
		cfg.Composer = render.NewComposer(cfg.Catalog, render.Size{})
	}
	if cfg.Rasterizer == nil {
		cfg.Rasterizer = render.NewPNGRasterizer(nil)
	}
	if cfg.Surface == nil {
		cfg.Surface = render.NewHTMLSurface(nil)
	}
	if cfg.Drafts == nil {
		cfg.Drafts = CookieDrafts{}
	}
	if cfg.Sessions == nil {
		cfg.Sessions = session.NewStore(defaultSessionTTL)
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}

	return &Handler{
		catalog:        cfg.Catalog,
		composer:       cfg.Composer,
		rasterizer:     cfg.Rasterizer,
		surface:        cfg.Surface,
		drafts:         cfg.Drafts,
		sessions:       cfg.Sessions,
		leagueService:  cfg.LeagueService,
		maxUploadBytes: cfg.MaxUploadBytes,
		logger:         cfg.Logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListFormations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFormations")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, formationsDTO{
		Default:    h.catalog.Default(),
		Formations: h.catalog.All(),
	})
}

type formationsDTO struct {
	Default    string                `json:"default"`
	Formations []formation.Formation `json:"formations"`
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a bounded JSON body into dst and validates it.
func (h *Handler) decodeRequest(ctx context.Context, w http.ResponseWriter, r *http.Request, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read body: %w", usecase.ErrInvalidInput, err)
	}
	if err := sonic.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}
