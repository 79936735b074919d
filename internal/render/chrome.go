package render

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/riskibarqy/lineup-studio/internal/platform/logging"
)

// ChromeRasterizer screenshots the HTML surface in headless Chrome. With an
// empty RemoteURL a local browser is started per capture.
type ChromeRasterizer struct {
	surface     *HTMLSurface
	remoteURL   string
	timeout     time.Duration
	deviceScale float64
	logger      *logging.Logger
}

type ChromeConfig struct {
	RemoteURL   string
	Timeout     time.Duration
	DeviceScale float64
	Logger      *logging.Logger
}

func NewChromeRasterizer(surface *HTMLSurface, cfg ChromeConfig) *ChromeRasterizer {
	if surface == nil {
		surface = NewHTMLSurface(nil)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.DeviceScale <= 0 {
		cfg.DeviceScale = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &ChromeRasterizer{
		surface:     surface,
		remoteURL:   cfg.RemoteURL,
		timeout:     cfg.Timeout,
		deviceScale: cfg.DeviceScale,
		logger:      cfg.Logger,
	}
}

func (r *ChromeRasterizer) Capture(ctx context.Context, scene Scene) ([]byte, error) {
	var doc bytes.Buffer
	if err := r.surface.Render(&doc, scene); err != nil {
		return nil, err
	}

	allocCtx, cancelAlloc := r.allocator(ctx)
	defer cancelAlloc()

	taskCtx, cancelTask := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(format string, args ...any) {
		r.logger.DebugContext(ctx, "chromedp", "detail", fmt.Sprintf(format, args...))
	}))
	defer cancelTask()

	taskCtx, cancelTimeout := context.WithTimeout(taskCtx, r.timeout)
	defer cancelTimeout()

	selector := "#" + SurfaceElementID
	var shot []byte
	err := chromedp.Run(taskCtx,
		emulation.SetDeviceMetricsOverride(int64(scene.Size.Width), int64(scene.Size.Height), r.deviceScale, false),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, doc.String()).Do(ctx)
		}),
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Screenshot(selector, &shot, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome capture: %w", err)
	}
	return shot, nil
}

func (r *ChromeRasterizer) allocator(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.remoteURL != "" {
		return chromedp.NewRemoteAllocator(ctx, r.remoteURL)
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.DisableGPU)
	return chromedp.NewExecAllocator(ctx, opts...)
}
