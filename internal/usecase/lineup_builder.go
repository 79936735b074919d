package usecase

import (
	"context"
	"errors"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/lineup-studio/internal/domain/formation"
	"github.com/riskibarqy/lineup-studio/internal/domain/lineup"
	"github.com/riskibarqy/lineup-studio/internal/platform/logging"
	"github.com/riskibarqy/lineup-studio/internal/render"
	"go.opentelemetry.io/otel/attribute"
)

// LineupBuilderDeps are the collaborators of a builder.
type LineupBuilderDeps struct {
	Catalog    *formation.Catalog
	Storage    lineup.Storage
	Composer   *render.Composer
	Rasterizer render.Rasterizer
	Logger     *logging.Logger
}

type LineupBuilderOption func(*LineupBuilder)

// WithTransientState restores presentation and editor state kept outside the draft storage.
// Invalid presentation values and editors pointing at unknown slots are dropped.
func WithTransientState(p lineup.Presentation, editor lineup.EditorState) LineupBuilderOption {
	return func(b *LineupBuilder) {
		if lineup.ValidatePresentation(p) == nil {
			b.state.Presentation = p
		}
		if _, ok := b.state.Players[editor.SlotID]; ok && editor.Open {
			b.state.Editor = editor
		}
	}
}

// LineupBuilder owns one lineup being edited. It is not safe for concurrent use;
// callers serialise edits the way a single UI event loop would.
type LineupBuilder struct {
	catalog    *formation.Catalog
	storage    lineup.Storage
	composer   *render.Composer
	rasterizer render.Rasterizer
	logger     *logging.Logger

	state lineup.State
}

// NewLineupBuilder seeds each persisted field independently from storage, falling
// back to its default when the key is missing or undecodable.
func NewLineupBuilder(ctx context.Context, deps LineupBuilderDeps, opts ...LineupBuilderOption) (*LineupBuilder, error) {
	if deps.Catalog == nil {
		return nil, fmt.Errorf("formation catalog is required")
	}
	if deps.Storage == nil {
		return nil, fmt.Errorf("draft storage is required")
	}
	if deps.Composer == nil {
		deps.Composer = render.NewComposer(deps.Catalog, render.Size{})
	}
	if deps.Rasterizer == nil {
		deps.Rasterizer = render.NewPNGRasterizer(nil)
	}
	if deps.Logger == nil {
		deps.Logger = logging.Default()
	}

	b := &LineupBuilder{
		catalog:    deps.Catalog,
		storage:    deps.Storage,
		composer:   deps.Composer,
		rasterizer: deps.Rasterizer,
		logger:     deps.Logger,
		state: lineup.State{
			Draft:        lineup.DefaultDraft(deps.Catalog),
			Presentation: lineup.DefaultPresentation(),
		},
	}
	if err := b.seed(ctx); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

func (b *LineupBuilder) seed(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupBuilder.seed")
	defer span.End()

	values := make(map[string]string, 4)
	for _, key := range lineup.DraftKeys() {
		raw, ok, err := b.storage.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("%w: read draft %s: %w", ErrDependencyUnavailable, key, err)
		}
		if ok {
			values[key] = raw
		}
	}

	if raw, ok := values[lineup.KeyFormation]; ok {
		if b.catalog.Has(raw) {
			b.state.Formation = raw
			b.state.Players = lineup.NewRoster(b.catalog.MustLookup(raw))
		} else {
			b.logger.WarnContext(ctx, "ignore stored formation", "formation", raw)
		}
	}

	if raw, ok := values[lineup.KeyPlayers]; ok {
		players, err := lineup.DecodePlayers(raw)
		switch {
		case err != nil:
			b.logger.WarnContext(ctx, "ignore stored players", "error", err)
		case !players.MatchesFormation(b.formation()):
			b.logger.WarnContext(ctx, "ignore stored players for another formation", "formation", b.state.Formation)
		default:
			if err := lineup.ValidatePlayers(players); err != nil {
				b.logger.WarnContext(ctx, "ignore invalid stored players", "error", err)
				break
			}
			b.state.Players = players
		}
	}

	if raw, ok := values[lineup.KeyJerseyOptions]; ok {
		jersey, err := lineup.DecodeJerseyOptions(raw)
		if err == nil {
			err = lineup.ValidateJerseyOptions(jersey)
		}
		if err != nil {
			b.logger.WarnContext(ctx, "ignore stored jersey options", "error", err)
		} else {
			b.state.JerseyOptions = jersey
		}
	}

	if raw, ok := values[lineup.KeyBadgeColor]; ok {
		if err := lineup.ValidateColor(raw); err != nil {
			b.logger.WarnContext(ctx, "ignore stored badge color", "error", err)
		} else {
			b.state.BadgeColor = raw
		}
	}
	return nil
}

// State returns a deep copy of the current state.
func (b *LineupBuilder) State() lineup.State {
	return b.state.Clone()
}

// Catalog exposes the formations the builder accepts.
func (b *LineupBuilder) Catalog() *formation.Catalog {
	return b.catalog
}

func (b *LineupBuilder) formation() formation.Formation {
	return b.catalog.MustLookup(b.state.Formation)
}

// SelectFormation switches layout and discards every player edit.
func (b *LineupBuilder) SelectFormation(ctx context.Context, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupBuilder.SelectFormation", attribute.String("lineup.formation", id))
	defer span.End()

	f, ok := b.catalog.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: unknown formation %q", ErrInvalidInput, id)
	}

	next := b.state.Draft
	next.Formation = f.ID
	next.Players = lineup.NewRoster(f)
	if err := b.commitDraft(ctx, next); err != nil {
		return err
	}
	b.state.Editor = lineup.EditorState{}
	return nil
}

// EditPlayer applies one typed mutation to a slot.
func (b *LineupBuilder) EditPlayer(ctx context.Context, slotID string, mutation lineup.PlayerMutation) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupBuilder.EditPlayer", attribute.String("lineup.slot", slotID))
	defer span.End()

	players, err := lineup.ApplyPlayerMutation(b.state.Players, slotID, mutation)
	if err != nil {
		if errors.Is(err, lineup.ErrUnknownSlot) {
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	next := b.state.Draft
	next.Players = players
	return b.commitDraft(ctx, next)
}

func (b *LineupBuilder) SetJerseyOptions(ctx context.Context, opts lineup.JerseyOptions) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupBuilder.SetJerseyOptions")
	defer span.End()

	if err := lineup.ValidateJerseyOptions(opts); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	next := b.state.Draft
	next.JerseyOptions = opts
	return b.commitDraft(ctx, next)
}

func (b *LineupBuilder) SetBadgeColor(ctx context.Context, color string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupBuilder.SetBadgeColor")
	defer span.End()

	if err := lineup.ValidateColor(color); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	next := b.state.Draft
	next.BadgeColor = color
	return b.commitDraft(ctx, next)
}

func (b *LineupBuilder) SetPaperRadius(radius lineup.PaperRadius) error {
	if !radius.Valid() {
		return fmt.Errorf("%w: paper radius %q", ErrInvalidInput, radius)
	}
	b.state.Presentation.PaperRadius = radius
	return nil
}

func (b *LineupBuilder) SetFieldScale(scale float64) error {
	if err := lineup.ValidateFieldScale(scale); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	b.state.Presentation.FieldScale = scale
	return nil
}

func (b *LineupBuilder) SetBackgroundPosition(x, y float64) error {
	if err := lineup.ValidateBackgroundPosition(x, y); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	b.state.Presentation.BackgroundPositionX = x
	b.state.Presentation.BackgroundPositionY = y
	return nil
}

func (b *LineupBuilder) SetFieldPositionY(y int) error {
	if err := lineup.ValidateFieldPositionY(y); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	b.state.Presentation.FieldPositionY = y
	return nil
}

// UploadBackground stores the image as a data URL. Unreadable input leaves state
// unchanged and is reported to the caller.
func (b *LineupBuilder) UploadBackground(ctx context.Context, data []byte) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupBuilder.UploadBackground")
	defer span.End()

	url, err := render.BackgroundDataURL(data)
	if err != nil {
		b.logger.WarnContext(ctx, "reject background upload", "bytes", len(data), "error", err)
		return crerr.WithHint(fmt.Errorf("%w: %w", ErrUnreadableImage, err), "upload a PNG, JPEG, GIF or WebP image")
	}
	b.state.Presentation.CustomBackground = url
	return nil
}

// RemoveBackground keeps the background offsets for the next upload.
func (b *LineupBuilder) RemoveBackground() {
	b.state.Presentation.CustomBackground = ""
}

func (b *LineupBuilder) ToggleFieldVariant() {
	b.state.Presentation.ActiveFieldVariant = (b.state.Presentation.ActiveFieldVariant + 1) % lineup.FieldVariantCount
}

// OpenEditor marks slotID as the one being edited.
func (b *LineupBuilder) OpenEditor(slotID string) error {
	if _, ok := b.state.Players[slotID]; !ok {
		return fmt.Errorf("%w: %w: %q", ErrNotFound, lineup.ErrUnknownSlot, slotID)
	}
	b.state.Editor = lineup.EditorState{SlotID: slotID, Open: true}
	return nil
}

func (b *LineupBuilder) CloseEditor() {
	b.state.Editor = lineup.EditorState{}
}

// ResetAll restores every default and erases the stored draft.
func (b *LineupBuilder) ResetAll(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupBuilder.ResetAll")
	defer span.End()

	var errs []error
	for _, key := range lineup.DraftKeys() {
		if err := b.storage.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
		}
	}

	b.state = lineup.State{
		Draft:        lineup.DefaultDraft(b.catalog),
		Presentation: lineup.DefaultPresentation(),
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: clear draft: %w", ErrDependencyUnavailable, errors.Join(errs...))
	}
	b.logger.InfoContext(ctx, "lineup reset")
	return nil
}

// ExportJSON serialises the exportable fields. It never changes state.
func (b *LineupBuilder) ExportJSON() ([]byte, error) {
	out, err := lineup.NewDocument(b.state).Marshal()
	if err != nil {
		return nil, crerr.Wrap(err, "export lineup")
	}
	return out, nil
}

// ImportJSON replaces formation and players and overlays the optional fields
// present in the document. Any failure leaves the state untouched.
func (b *LineupBuilder) ImportJSON(ctx context.Context, raw []byte) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupBuilder.ImportJSON")
	defer span.End()

	doc, err := lineup.ParseDocument(raw)
	switch {
	case errors.Is(err, lineup.ErrDocumentUnparseable):
		return recordSpanError(span, fmt.Errorf("%w: %w", ErrUnparseableImport, err))
	case err != nil:
		return recordSpanError(span, crerr.WithHint(fmt.Errorf("%w: %w", ErrMalformedImport, err), "a lineup file needs both formation and players"))
	}

	next, err := b.overlay(doc)
	if err != nil {
		return recordSpanError(span, crerr.WithHint(fmt.Errorf("%w: %w", ErrMalformedImport, err), "export a lineup to see the expected shape"))
	}
	if _, err := b.encodeDraft(next.Draft); errors.Is(err, lineup.ErrValueTooLarge) {
		return recordSpanError(span, crerr.WithHint(fmt.Errorf("%w: %w", ErrMalformedImport, err), "the lineup is too large to save; shorten player names"))
	}

	if err := b.commitDraft(ctx, next.Draft); err != nil {
		return err
	}
	b.state.Presentation = next.Presentation
	b.state.Editor = lineup.EditorState{}
	b.logger.InfoContext(ctx, "lineup imported", "formation", next.Formation)
	return nil
}

func (b *LineupBuilder) overlay(doc lineup.DocumentOverlay) (lineup.State, error) {
	f, ok := b.catalog.Lookup(doc.Formation)
	if !ok {
		return lineup.State{}, fmt.Errorf("unknown formation %q", doc.Formation)
	}

	players := lineup.NewRoster(f)
	for slotID, p := range doc.Players {
		if !f.HasSlot(slotID) {
			return lineup.State{}, fmt.Errorf("slot %q is not part of %s", slotID, f.ID)
		}
		players[slotID] = p
	}
	if err := lineup.ValidatePlayers(players); err != nil {
		return lineup.State{}, err
	}

	next := b.state.Clone()
	next.Formation = f.ID
	next.Players = players
	if doc.JerseyOptions != nil {
		if err := lineup.ValidateJerseyOptions(*doc.JerseyOptions); err != nil {
			return lineup.State{}, err
		}
		next.JerseyOptions = *doc.JerseyOptions
	}
	if doc.BadgeColor != nil {
		if err := lineup.ValidateColor(*doc.BadgeColor); err != nil {
			return lineup.State{}, err
		}
		next.BadgeColor = *doc.BadgeColor
	}
	if doc.FieldScale != nil {
		next.Presentation.FieldScale = *doc.FieldScale
	}
	if doc.BackgroundPositionX != nil {
		next.Presentation.BackgroundPositionX = *doc.BackgroundPositionX
	}
	if doc.BackgroundPositionY != nil {
		next.Presentation.BackgroundPositionY = *doc.BackgroundPositionY
	}
	if doc.FieldPositionY != nil {
		next.Presentation.FieldPositionY = *doc.FieldPositionY
	}
	if err := lineup.ValidatePresentation(next.Presentation); err != nil {
		return lineup.State{}, err
	}
	return next, nil
}

// ExportImage rasterises the current surface at size; a zero size uses the composer default.
func (b *LineupBuilder) ExportImage(ctx context.Context, size render.Size) ([]byte, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupBuilder.ExportImage")
	defer span.End()

	scene, err := b.Surface(size)
	if err != nil {
		return nil, recordSpanError(span, err)
	}
	span.SetAttributes(attribute.Int("lineup.width", scene.Size.Width), attribute.Int("lineup.height", scene.Size.Height))

	out, err := b.rasterizer.Capture(ctx, scene)
	if err != nil {
		b.logger.ErrorContext(ctx, "rasterize lineup failed", "error", err)
		return nil, recordSpanError(span, fmt.Errorf("%w: %w", ErrRasterization, err))
	}
	return out, nil
}

// Surface composes the presentation scene for the current state.
func (b *LineupBuilder) Surface(size render.Size) (render.Scene, error) {
	scene, err := b.composer.Compose(b.state, size)
	if err != nil {
		return render.Scene{}, fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
	}
	return scene, nil
}

// encodeDraft encodes next and checks every value against the storage's
// limits before anything is written.
func (b *LineupBuilder) encodeDraft(next lineup.Draft) (map[string]string, error) {
	values, err := lineup.EncodeDraft(next)
	if err != nil {
		return nil, crerr.Wrap(err, "encode draft")
	}
	if err := lineup.CheckDraft(b.storage, values); err != nil {
		return nil, err
	}
	return values, nil
}

// commitDraft writes every draft key and only then adopts the draft.
func (b *LineupBuilder) commitDraft(ctx context.Context, next lineup.Draft) error {
	values, err := b.encodeDraft(next)
	if errors.Is(err, lineup.ErrValueTooLarge) {
		return crerr.WithHint(fmt.Errorf("%w: %w", ErrInvalidInput, err), "shorten player names to fit the saved lineup")
	}
	if err != nil {
		return err
	}
	for _, key := range lineup.DraftKeys() {
		if err := b.storage.Set(ctx, key, values[key], lineup.DraftRetention); err != nil {
			return fmt.Errorf("%w: persist draft %s: %w", ErrDependencyUnavailable, key, err)
		}
	}
	b.state.Draft = next
	return nil
}
