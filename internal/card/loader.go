package card

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF format support
	_ "image/jpeg" // JPEG format support
	_ "image/png"  // PNG format support
	"net/url"

	"go.uber.org/zap"
	_ "golang.org/x/image/webp" // WebP format support
)

// ErrorKind classifies why an image could not be loaded.
type ErrorKind int

const (
	KindInvalidURL ErrorKind = iota
	KindNetwork
	KindUnsupportedFormat
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidURL:
		return "invalid_url"
	case KindNetwork:
		return "network"
	case KindUnsupportedFormat:
		return "unsupported_format"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// LoadError is returned by Loader.Load.
type LoadError struct {
	Kind ErrorKind
	URL  string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load image %q (%s): %v", e.URL, e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Loader fetches and decodes images for the card slots.
type Loader struct {
	logger  *zap.Logger
	fetcher Fetcher
}

func NewLoader(logger *zap.Logger, fetcher Fetcher) *Loader {
	return &Loader{logger: logger, fetcher: fetcher}
}

// Load fetches url and decodes it into an image.
func (l *Loader) Load(ctx context.Context, rawURL string) (image.Image, error) {
	u, err := url.Parse(rawURL)
	if err != nil || rawURL == "" || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		if err == nil {
			err = errors.New("not an absolute http(s) url")
		}
		return nil, &LoadError{Kind: KindInvalidURL, URL: rawURL, Err: err}
	}

	data, err := l.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		kind := KindNetwork
		if errors.Is(err, ErrSVG) {
			kind = KindUnsupportedFormat
		}
		return nil, &LoadError{Kind: kind, URL: rawURL, Err: err}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		kind := KindDecode
		if errors.Is(err, image.ErrFormat) {
			kind = KindUnsupportedFormat
		}
		return nil, &LoadError{Kind: kind, URL: rawURL, Err: err}
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, &LoadError{Kind: KindDecode, URL: rawURL, Err: fmt.Errorf("invalid image dimensions: %dx%d", b.Dx(), b.Dy())}
	}

	return img, nil
}

// LoadOrFallback tries primaryURL, then fallbackURL, then returns placeholder.
// Failures are logged and never returned.
func (l *Loader) LoadOrFallback(ctx context.Context, primaryURL, fallbackURL string, placeholder image.Image) image.Image {
	for _, candidate := range []string{primaryURL, fallbackURL} {
		if candidate == "" {
			continue
		}
		img, err := l.Load(ctx, candidate)
		if err == nil {
			return img
		}

		var le *LoadError
		if errors.As(err, &le) {
			l.logger.Warn("Image load failed",
				zap.String("url", candidate),
				zap.Stringer("kind", le.Kind),
				zap.Error(le.Err))
		} else {
			l.logger.Warn("Image load failed", zap.String("url", candidate), zap.Error(err))
		}
	}
	return placeholder
}
