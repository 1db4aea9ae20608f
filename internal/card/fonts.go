package card

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	fontsOnce   sync.Once
	fontsErr    error
	regularFont *opentype.Font
	boldFont    *opentype.Font
)

func loadFonts() error {
	fontsOnce.Do(func() {
		regularFont, fontsErr = opentype.Parse(goregular.TTF)
		if fontsErr != nil {
			fontsErr = fmt.Errorf("parse regular font: %w", fontsErr)
			return
		}
		boldFont, fontsErr = opentype.Parse(gobold.TTF)
		if fontsErr != nil {
			fontsErr = fmt.Errorf("parse bold font: %w", fontsErr)
		}
	})
	return fontsErr
}

// faces hands out font faces for one render. opentype faces keep internal
// buffers, so they are never shared between renders.
type faces struct {
	cache map[faceKey]font.Face
}

type faceKey struct {
	bold bool
	size float64
}

func newFaces() (*faces, error) {
	if err := loadFonts(); err != nil {
		return nil, err
	}
	return &faces{cache: make(map[faceKey]font.Face)}, nil
}

func (f *faces) get(bold bool, size float64) (font.Face, error) {
	key := faceKey{bold: bold, size: size}
	if face, ok := f.cache[key]; ok {
		return face, nil
	}

	src := regularFont
	if bold {
		src = boldFont
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create %.0fpx face: %w", size, err)
	}
	f.cache[key] = face
	return face, nil
}

func (f *faces) close() {
	for _, face := range f.cache {
		_ = face.Close()
	}
}
