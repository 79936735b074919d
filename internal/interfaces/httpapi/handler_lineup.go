package httpapi

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/lineup-studio/internal/domain/lineup"
	"github.com/riskibarqy/lineup-studio/internal/infrastructure/session"
	"github.com/riskibarqy/lineup-studio/internal/render"
	"github.com/riskibarqy/lineup-studio/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

type selectFormationRequest struct {
	Formation string `json:"formation" validate:"required"`
}

type editPlayerRequest struct {
	Field string `json:"field" validate:"required,oneof=name number isCaptain"`
	Value any    `json:"value"`
}

type badgeColorRequest struct {
	BadgeColor string `json:"badgeColor" validate:"required"`
}

type presentationRequest struct {
	PaperRadius         *lineup.PaperRadius `json:"paperRadius"`
	FieldScale          *float64            `json:"fieldScale"`
	BackgroundPositionX *float64            `json:"backgroundPositionX"`
	BackgroundPositionY *float64            `json:"backgroundPositionY"`
	FieldPositionY      *int                `json:"fieldPositionY"`
}

type lineupOp func(ctx context.Context, b *usecase.LineupBuilder) error

// runLineup rebuilds the client's builder from draft storage plus the session,
// applies op and keeps the transient state only when op succeeds.
func (h *Handler) runLineup(ctx context.Context, w http.ResponseWriter, r *http.Request, op lineupOp) (*usecase.LineupBuilder, error) {
	clientID, ok := clientIDFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: client id is missing from request context", usecase.ErrInvalidInput)
	}

	var opts []usecase.LineupBuilderOption
	if st, ok := h.sessions.Load(ctx, clientID); ok {
		opts = append(opts, usecase.WithTransientState(st.Presentation, st.Editor))
	}
	builder, err := usecase.NewLineupBuilder(ctx, usecase.LineupBuilderDeps{
		Catalog:    h.catalog,
		Storage:    h.drafts.ForRequest(w, r, clientID),
		Composer:   h.composer,
		Rasterizer: h.rasterizer,
		Logger:     h.logger,
	}, opts...)
	if err != nil {
		return nil, err
	}

	if op != nil {
		if err := op(ctx, builder); err != nil {
			return nil, err
		}
	}

	state := builder.State()
	h.sessions.Save(ctx, clientID, session.State{Presentation: state.Presentation, Editor: state.Editor})
	return builder, nil
}

// serveLineup runs op and answers with the resulting state.
func (h *Handler) serveLineup(w http.ResponseWriter, r *http.Request, spanName, logMsg string, op lineupOp) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	builder, err := h.runLineup(ctx, w, r, op)
	if err != nil {
		h.logger.WarnContext(ctx, logMsg, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, builder.State())
}

func (h *Handler) GetLineup(w http.ResponseWriter, r *http.Request) {
	h.serveLineup(w, r, "httpapi.Handler.GetLineup", "get lineup failed", nil)
}

func (h *Handler) SelectFormation(w http.ResponseWriter, r *http.Request) {
	h.serveLineup(w, r, "httpapi.Handler.SelectFormation", "select formation failed", func(ctx context.Context, b *usecase.LineupBuilder) error {
		var req selectFormationRequest
		if err := h.decodeRequest(ctx, w, r, &req); err != nil {
			return err
		}
		return b.SelectFormation(ctx, strings.TrimSpace(req.Formation))
	})
}

func (h *Handler) EditPlayer(w http.ResponseWriter, r *http.Request) {
	slotID := strings.TrimSpace(r.PathValue("slotID"))
	h.serveLineup(w, r, "httpapi.Handler.EditPlayer", "edit player failed", func(ctx context.Context, b *usecase.LineupBuilder) error {
		var req editPlayerRequest
		if err := h.decodeRequest(ctx, w, r, &req); err != nil {
			return err
		}
		if req.Value == nil {
			return fmt.Errorf("%w: value is required", usecase.ErrInvalidInput)
		}
		mutation, err := lineup.ParsePlayerMutation(req.Field, req.Value)
		if err != nil {
			return fmt.Errorf("%w: %w", usecase.ErrInvalidInput, err)
		}
		return b.EditPlayer(ctx, slotID, mutation)
	})
}

func (h *Handler) SetJerseyOptions(w http.ResponseWriter, r *http.Request) {
	h.serveLineup(w, r, "httpapi.Handler.SetJerseyOptions", "set jersey options failed", func(ctx context.Context, b *usecase.LineupBuilder) error {
		var req lineup.JerseyOptions
		if err := h.decodeRequest(ctx, w, r, &req); err != nil {
			return err
		}
		return b.SetJerseyOptions(ctx, req)
	})
}

func (h *Handler) SetBadgeColor(w http.ResponseWriter, r *http.Request) {
	h.serveLineup(w, r, "httpapi.Handler.SetBadgeColor", "set badge color failed", func(ctx context.Context, b *usecase.LineupBuilder) error {
		var req badgeColorRequest
		if err := h.decodeRequest(ctx, w, r, &req); err != nil {
			return err
		}
		return b.SetBadgeColor(ctx, strings.TrimSpace(req.BadgeColor))
	})
}

// UpdatePresentation applies every present knob or none of them.
func (h *Handler) UpdatePresentation(w http.ResponseWriter, r *http.Request) {
	h.serveLineup(w, r, "httpapi.Handler.UpdatePresentation", "update presentation failed", func(ctx context.Context, b *usecase.LineupBuilder) error {
		var req presentationRequest
		if err := h.decodeRequest(ctx, w, r, &req); err != nil {
			return err
		}

		current := b.State().Presentation
		if req.PaperRadius != nil {
			if err := b.SetPaperRadius(*req.PaperRadius); err != nil {
				return err
			}
		}
		if req.FieldScale != nil {
			if err := b.SetFieldScale(*req.FieldScale); err != nil {
				return err
			}
		}
		if req.BackgroundPositionX != nil || req.BackgroundPositionY != nil {
			x, y := current.BackgroundPositionX, current.BackgroundPositionY
			if req.BackgroundPositionX != nil {
				x = *req.BackgroundPositionX
			}
			if req.BackgroundPositionY != nil {
				y = *req.BackgroundPositionY
			}
			if err := b.SetBackgroundPosition(x, y); err != nil {
				return err
			}
		}
		if req.FieldPositionY != nil {
			if err := b.SetFieldPositionY(*req.FieldPositionY); err != nil {
				return err
			}
		}
		return nil
	})
}

func (h *Handler) ToggleFieldVariant(w http.ResponseWriter, r *http.Request) {
	h.serveLineup(w, r, "httpapi.Handler.ToggleFieldVariant", "toggle field variant failed", func(_ context.Context, b *usecase.LineupBuilder) error {
		b.ToggleFieldVariant()
		return nil
	})
}

// UploadBackground accepts the image as the raw body or as the multipart "file" field.
func (h *Handler) UploadBackground(w http.ResponseWriter, r *http.Request) {
	h.serveLineup(w, r, "httpapi.Handler.UploadBackground", "upload background failed", func(ctx context.Context, b *usecase.LineupBuilder) error {
		data, err := h.readUpload(w, r)
		if err != nil {
			return err
		}
		return b.UploadBackground(ctx, data)
	})
}

func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body := http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		data, err := io.ReadAll(body)
		if err != nil {
			return nil, fmt.Errorf("%w: read upload: %w", usecase.ErrInvalidInput, err)
		}
		return data, nil
	}

	r.Body = body
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		return nil, fmt.Errorf("%w: parse multipart upload: %w", usecase.ErrInvalidInput, err)
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("%w: multipart field \"file\" is required", usecase.ErrInvalidInput)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: read upload: %w", usecase.ErrInvalidInput, err)
	}
	return data, nil
}

func (h *Handler) RemoveBackground(w http.ResponseWriter, r *http.Request) {
	h.serveLineup(w, r, "httpapi.Handler.RemoveBackground", "remove background failed", func(_ context.Context, b *usecase.LineupBuilder) error {
		b.RemoveBackground()
		return nil
	})
}

func (h *Handler) ResetLineup(w http.ResponseWriter, r *http.Request) {
	h.serveLineup(w, r, "httpapi.Handler.ResetLineup", "reset lineup failed", func(ctx context.Context, b *usecase.LineupBuilder) error {
		return b.ResetAll(ctx)
	})
}

func (h *Handler) ImportLineup(w http.ResponseWriter, r *http.Request) {
	h.serveLineup(w, r, "httpapi.Handler.ImportLineup", "import lineup failed", func(ctx context.Context, b *usecase.LineupBuilder) error {
		raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes))
		if err != nil {
			return fmt.Errorf("%w: read body: %w", usecase.ErrInvalidInput, err)
		}
		return b.ImportJSON(ctx, raw)
	})
}

func (h *Handler) OpenEditor(w http.ResponseWriter, r *http.Request) {
	slotID := strings.TrimSpace(r.PathValue("slotID"))
	h.serveLineup(w, r, "httpapi.Handler.OpenEditor", "open editor failed", func(_ context.Context, b *usecase.LineupBuilder) error {
		return b.OpenEditor(slotID)
	})
}

func (h *Handler) CloseEditor(w http.ResponseWriter, r *http.Request) {
	h.serveLineup(w, r, "httpapi.Handler.CloseEditor", "close editor failed", func(_ context.Context, b *usecase.LineupBuilder) error {
		b.CloseEditor()
		return nil
	})
}

func (h *Handler) ExportLineupJSON(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportLineupJSON")
	defer span.End()

	builder, err := h.runLineup(ctx, w, r, nil)
	if err != nil {
		h.logger.WarnContext(ctx, "export lineup json failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	out, err := builder.ExportJSON()
	if err != nil {
		h.logger.ErrorContext(ctx, "export lineup json failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeAttachment(w, "application/json", lineup.ExportFileName, out)
}

func (h *Handler) ExportLineupImage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportLineupImage")
	defer span.End()

	size, err := parseSize(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	builder, err := h.runLineup(ctx, w, r, nil)
	if err != nil {
		h.logger.WarnContext(ctx, "export lineup image failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	out, err := builder.ExportImage(ctx, size)
	if err != nil {
		h.logger.WarnContext(ctx, "export lineup image failed", "width", size.Width, "height", size.Height, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeAttachment(w, "image/png", lineup.ImageFileName, out)
}

// GetLineupSurface serves the HTML rendition of the lineup graphic.
func (h *Handler) GetLineupSurface(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLineupSurface")
	defer span.End()

	size, err := parseSize(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	builder, err := h.runLineup(ctx, w, r, nil)
	if err != nil {
		h.logger.WarnContext(ctx, "get lineup surface failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	scene, err := builder.Surface(size)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := h.surface.Render(buf, scene); err != nil {
		h.logger.ErrorContext(ctx, "render lineup surface failed", "error", err)
		writeError(ctx, w, fmt.Errorf("%w: %w", usecase.ErrSurfaceUnavailable, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.B)
}

// parseSize reads width and height; both or neither must be given.
func parseSize(r *http.Request) (render.Size, error) {
	q := r.URL.Query()
	rawW, rawH := strings.TrimSpace(q.Get("width")), strings.TrimSpace(q.Get("height"))
	if rawW == "" && rawH == "" {
		return render.Size{}, nil
	}
	if rawW == "" || rawH == "" {
		return render.Size{}, fmt.Errorf("%w: width and height must be given together", usecase.ErrInvalidInput)
	}
	width, err := strconv.Atoi(rawW)
	if err != nil {
		return render.Size{}, fmt.Errorf("%w: invalid width %q", usecase.ErrInvalidInput, rawW)
	}
	height, err := strconv.Atoi(rawH)
	if err != nil {
		return render.Size{}, fmt.Errorf("%w: invalid height %q", usecase.ErrInvalidInput, rawH)
	}
	return render.Size{Width: width, Height: height}, nil
}
