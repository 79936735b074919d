package cookie

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/riskibarqy/lineup-studio/internal/domain/lineup"
)

// MaxValueBytes keeps a single cookie under the common 4KB browser limit.
const MaxValueBytes = 3800

var ErrValueTooLarge = lineup.ErrValueTooLarge

type Options struct {
	Path     string
	Secure   bool
	SameSite http.SameSite
}

func DefaultOptions() Options {
	return Options{Path: "/", SameSite: http.SameSiteLaxMode}
}

// Storage reads draft keys from the request cookies and writes them back as
// Set-Cookie headers. Values are percent-encoded like a browser cookie library
// would, so JSON payloads survive. Writes are visible to later reads of the same request.
type Storage struct {
	w       http.ResponseWriter
	r       *http.Request
	opts    Options
	pending map[string]*string
	now     func() time.Time
}

func New(w http.ResponseWriter, r *http.Request, opts Options) *Storage {
	if opts.Path == "" {
		opts.Path = "/"
	}
	return &Storage{
		w:       w,
		r:       r,
		opts:    opts,
		pending: make(map[string]*string),
		now:     time.Now,
	}
}

func (s *Storage) Get(_ context.Context, key string) (string, bool, error) {
	if v, ok := s.pending[key]; ok {
		if v == nil {
			return "", false, nil
		}
		return *v, true, nil
	}

	c, err := s.r.Cookie(key)
	if err != nil {
		return "", false, nil
	}
	value, err := url.PathUnescape(c.Value)
	if err != nil {
		// An undecodable cookie is treated as absent so the default applies.
		return "", false, nil
	}
	return value, true, nil
}

// CheckValue reports whether value fits in one cookie once encoded.
func (s *Storage) CheckValue(key, value string) error {
	if n := len(url.PathEscape(value)); n > MaxValueBytes {
		return fmt.Errorf("%w: %s is %d bytes as a cookie, limit %d", ErrValueTooLarge, key, n, MaxValueBytes)
	}
	return nil
}

func (s *Storage) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if err := s.CheckValue(key, value); err != nil {
		return err
	}
	encoded := url.PathEscape(value)

	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    encoded,
		Path:     s.opts.Path,
		Expires:  s.now().Add(ttl).UTC(),
		MaxAge:   int(ttl.Seconds()),
		Secure:   s.opts.Secure,
		SameSite: s.opts.SameSite,
	})
	s.pending[key] = &value
	return nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    "",
		Path:     s.opts.Path,
		Expires:  time.Unix(0, 0).UTC(),
		MaxAge:   -1,
		Secure:   s.opts.Secure,
		SameSite: s.opts.SameSite,
	})
	s.pending[key] = nil
	return nil
}
