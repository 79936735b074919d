package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/valyala/bytebufferpool"
	_ "golang.org/x/image/webp"
)

var ErrUnreadableImage = errors.New("image could not be read")

// MaxBackgroundPixels bounds decoded uploads (roughly a 6000×4000 photo).
const MaxBackgroundPixels = 24_000_000

// BackgroundDataURL validates an uploaded image and returns it as a data URL.
func BackgroundDataURL(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty upload", ErrUnreadableImage)
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrUnreadableImage, mt.String())
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnreadableImage, mt.String(), err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > MaxBackgroundPixels {
		return "", fmt.Errorf("%w: %dx%d is out of bounds", ErrUnreadableImage, cfg.Width, cfg.Height)
	}
	return EncodeDataURL(mt.String(), data), nil
}

func EncodeDataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL accepts base64 data URLs only.
func DecodeDataURL(s string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, fmt.Errorf("%w: not a data URL", ErrUnreadableImage)
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: data URL has no payload", ErrUnreadableImage)
	}
	mime, isBase64 := strings.CutSuffix(header, ";base64")
	if !isBase64 {
		return "", nil, fmt.Errorf("%w: data URL is not base64", ErrUnreadableImage)
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}
	return mime, data, nil
}

func decodeDataURLImage(s string) (image.Image, error) {
	_, data, err := DecodeDataURL(s)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}
	return img, nil
}

// EncodePNG encodes through a pooled buffer and returns an owned copy.
func EncodePNG(img image.Image) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return append([]byte(nil), buf.B...), nil
}

// PNGDataURL is EncodePNG wrapped as a data URL for HTML output.
func PNGDataURL(img image.Image) (string, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	return EncodeDataURL("image/png", data), nil
}
