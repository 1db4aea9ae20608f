package card

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"go.uber.org/zap"
)

// stubFetcher serves canned responses keyed by URL.
type stubFetcher struct {
	data  map[string][]byte
	errs  map[string]error
	calls []string
}

func (f *stubFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.calls = append(f.calls, url)
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	if d, ok := f.data[url]; ok {
		return d, nil
	}
	return nil, errors.New("connection refused")
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestLoader_Load(t *testing.T) {
	fetcher := &stubFetcher{
		data: map[string][]byte{
			"https://img.test/ok.png":  pngBytes(t, 4, 3),
			"https://img.test/bad.png": []byte("not an image"),
		},
		errs: map[string]error{
			"https://img.test/logo.svg": ErrSVG,
		},
	}
	loader := NewLoader(zap.NewNop(), fetcher)

	tests := []struct {
		name     string
		url      string
		wantKind ErrorKind
		wantErr  bool
	}{
		{name: "decodes png", url: "https://img.test/ok.png"},
		{name: "empty url", url: "", wantErr: true, wantKind: KindInvalidURL},
		{name: "relative url", url: "/cover.png", wantErr: true, wantKind: KindInvalidURL},
		{name: "network failure", url: "https://img.test/missing.png", wantErr: true, wantKind: KindNetwork},
		{name: "svg", url: "https://img.test/logo.svg", wantErr: true, wantKind: KindUnsupportedFormat},
		{name: "garbage bytes", url: "https://img.test/bad.png", wantErr: true, wantKind: KindUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := loader.Load(context.Background(), tt.url)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
					t.Errorf("unexpected bounds %v", b)
				}
				return
			}

			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("expected *LoadError, got %v", err)
			}
			if le.Kind != tt.wantKind {
				t.Errorf("expected kind %s, got %s", tt.wantKind, le.Kind)
			}
		})
	}
}

func TestLoader_LoadOrFallback(t *testing.T) {
	placeholder := image.NewRGBA(image.Rect(0, 0, 1, 1))

	t.Run("uses fallback url", func(t *testing.T) {
		fetcher := &stubFetcher{data: map[string][]byte{"https://img.test/fallback.png": pngBytes(t, 2, 2)}}
		loader := NewLoader(zap.NewNop(), fetcher)

		img := loader.LoadOrFallback(context.Background(), "https://img.test/gone.png", "https://img.test/fallback.png", placeholder)
		if img == image.Image(placeholder) || img.Bounds().Dx() != 2 {
			t.Fatalf("expected the fallback image, got %v", img.Bounds())
		}
		if len(fetcher.calls) != 2 {
			t.Errorf("expected 2 fetches, got %v", fetcher.calls)
		}
	})

	t.Run("uses placeholder when everything fails", func(t *testing.T) {
		loader := NewLoader(zap.NewNop(), &stubFetcher{})

		img := loader.LoadOrFallback(context.Background(), "https://img.test/a.png", "https://img.test/b.png", placeholder)
		if img != image.Image(placeholder) {
			t.Fatal("expected placeholder")
		}
	})

	t.Run("skips empty urls", func(t *testing.T) {
		fetcher := &stubFetcher{}
		loader := NewLoader(zap.NewNop(), fetcher)

		_ = loader.LoadOrFallback(context.Background(), "", "", placeholder)
		if len(fetcher.calls) != 0 {
			t.Errorf("expected no fetches, got %v", fetcher.calls)
		}
	})
}
