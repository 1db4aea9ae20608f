package card

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"go.uber.org/zap"

	"tunecard/internal/config"
	"tunecard/internal/domain"
	"tunecard/pkg/util"
)

// FileName is the attachment name used for rendered cards.
const FileName = "now-playing.png"

const (
	cardWidth  = 1100
	cardHeight = 450
	coverSize  = 450

	compactWidth  = 800
	compactHeight = 250
	compactThumb  = 200

	compactTitleLimit = 40
	compactTitleKeep  = 37
)

type rect struct {
	x, y, w, h float64
}

var (
	panel = rect{x: 470, y: 30, w: 600, h: 390}
	bar   = rect{x: panel.x + 30, y: panel.y + 240, w: panel.w - 60, h: 30}
)

// Request is everything a render needs. Nothing survives a render.
type Request struct {
	Track     domain.Track
	Requester domain.Requester
}

// Renderer draws now-playing cards.
type Renderer struct {
	logger *zap.Logger
	loader *Loader
	opts   config.CardOptions
}

func NewRenderer(logger *zap.Logger, loader *Loader, opts config.CardOptions) *Renderer {
	return &Renderer{logger: logger, loader: loader, opts: opts}
}

type slot struct {
	url         string
	fallbackURL string
	placeholder image.Image
}

// loadSlots fetches every slot concurrently. A slot that could not be
// loaded, even because ctx ended, gets its placeholder.
func (r *Renderer) loadSlots(ctx context.Context, slots []slot) []image.Image {
	out := make([]image.Image, len(slots))
	idx := make([]int, len(slots))
	for i := range idx {
		idx[i] = i
	}

	err := util.Parallel(ctx, idx, len(slots), func(ctx context.Context, i int) error {
		s := slots[i]
		out[i] = r.loader.LoadOrFallback(ctx, s.url, s.fallbackURL, s.placeholder)
		return nil
	})
	if err != nil {
		r.logger.Debug("Image loading interrupted, using placeholders", zap.Error(err))
	}

	for i, img := range out {
		if img == nil {
			out[i] = slots[i].placeholder
		}
	}
	return out
}

// Render draws the full 1100x450 card: artwork on the left, a rounded info
// panel with title, artist, duration, progress and requester on the right.
func (r *Renderer) Render(ctx context.Context, req Request) ([]byte, error) {
	fc, err := newFaces()
	if err != nil {
		return nil, err
	}
	defer fc.close()

	imgs := r.loadSlots(ctx, []slot{
		{url: req.Track.Artwork(), fallbackURL: r.opts.ArtworkFallbackURL, placeholder: artworkPlaceholder()},
		{url: req.Requester.AvatarURL, fallbackURL: r.opts.AvatarFallbackURL, placeholder: avatarPlaceholder()},
		{url: r.opts.LogoURL, placeholder: logoPlaceholder()},
	})
	cover, avatar, logo := imgs[0], imgs[1], imgs[2]

	dc := gg.NewContext(cardWidth, cardHeight)

	// Artwork
	dc.DrawImage(imaging.Fill(cover, coverSize, coverSize, imaging.Center, imaging.Lanczos), 0, 0)
	dc.SetRGBA(0, 0, 0, 0.35)
	dc.DrawRectangle(0, 0, coverSize, coverSize)
	dc.Fill()

	// Panel
	dc.SetHexColor("#121212")
	roundRect(dc, panel.x, panel.y, panel.w, panel.h, 25)
	dc.Fill()

	// Title
	if err := r.setFace(dc, fc, true, 36); err != nil {
		return nil, err
	}
	dc.SetRGB(1, 1, 1)
	for i, line := range WrapText(dc, stripUnsupported(req.Track.Title), panel.w-60) {
		dc.DrawString(line, panel.x+30, panel.y+50+float64(i)*44)
	}

	// Artist
	artist := stripUnsupported(req.Track.Author)
	if artist == "" {
		artist = "Unknown Artist"
	}
	if err := r.setFace(dc, fc, false, 28); err != nil {
		return nil, err
	}
	dc.SetRGBA(1, 1, 1, 0.85)
	dc.DrawString(artist, panel.x+30, panel.y+140)

	// Duration
	duration := req.Track.Duration
	if duration == "" {
		duration = "N/A"
	}
	if err := r.setFace(dc, fc, false, 24); err != nil {
		return nil, err
	}
	dc.SetRGBA(1, 1, 1, 0.7)
	dc.DrawString("Duration: "+duration, panel.x+30, panel.y+190)

	// Progress
	ratio := Progress(req.Track.Position, req.Track.RawDuration)
	dc.SetHexColor("#333333")
	roundRect(dc, bar.x, bar.y, bar.w, bar.h, 15)
	dc.Fill()

	if fill := bar.w * ratio; fill > 0 {
		grad := gg.NewLinearGradient(bar.x, bar.y, bar.x+bar.w, bar.y)
		grad.AddColorStop(0, colorSpotifyGreen)
		grad.AddColorStop(1, color.RGBA{0x1e, 0xd7, 0x60, 0xff})
		dc.SetFillStyle(grad)
		roundRect(dc, bar.x, bar.y, fill, bar.h, 15)
		dc.Fill()
	}

	if err := r.setFace(dc, fc, false, 20); err != nil {
		return nil, err
	}
	dc.SetRGB(1, 1, 1)
	dc.DrawString(FormatTime(req.Track.Position), bar.x, bar.y+bar.h+25)
	dc.DrawString(FormatTime(req.Track.RawDuration), bar.x+bar.w-60, bar.y+bar.h+25)

	// Requester
	cx, cy := panel.x+90, panel.y+panel.h-60
	dc.Push()
	dc.DrawCircle(cx, cy, 40)
	dc.Clip()
	dc.DrawImage(imaging.Fill(avatar, 80, 80, imaging.Center, imaging.Lanczos), int(cx-40), int(cy-40))
	dc.Pop()

	username := stripUnsupported(req.Requester.Username)
	if username == "" {
		username = "Unknown"
	}
	if err := r.setFace(dc, fc, false, 22); err != nil {
		return nil, err
	}
	dc.SetHexColor("#cccccc")
	dc.DrawString("Added by "+username, panel.x+140, panel.y+panel.h-60)

	// Platform
	dc.DrawImage(imaging.Resize(logo, 60, 60, imaging.Lanczos), 1020, 370)

	r.logger.Debug("Rendered card", zap.String("track", req.Track.ID), zap.Float64("progress", ratio))
	return encode(dc)
}

// RenderCompact draws the 800x250 card posted as the /music-play reply.
func (r *Renderer) RenderCompact(ctx context.Context, req Request) ([]byte, error) {
	fc, err := newFaces()
	if err != nil {
		return nil, err
	}
	defer fc.close()

	imgs := r.loadSlots(ctx, []slot{
		{url: req.Track.Thumbnail, fallbackURL: r.opts.ArtworkFallbackURL, placeholder: artworkPlaceholder()},
	})
	thumb := imgs[0]

	dc := gg.NewContext(compactWidth, compactHeight)

	dc.DrawImage(imaging.Fill(thumb, compactWidth, compactHeight, imaging.Center, imaging.Lanczos), 0, 0)
	dc.SetRGBA(0, 0, 0, 0.6)
	dc.DrawRectangle(0, 0, compactWidth, compactHeight)
	dc.Fill()

	if err := r.setFace(dc, fc, true, 28); err != nil {
		return nil, err
	}
	dc.SetRGB(1, 1, 1)
	title := Truncate(stripUnsupported(req.Track.Title), compactTitleLimit, compactTitleKeep)
	dc.DrawString(title, 250, 80)

	if err := r.setFace(dc, fc, false, 20); err != nil {
		return nil, err
	}
	dc.SetHexColor("#cccccc")
	dc.DrawString("Duration: "+req.Track.Duration, 250, 120)
	dc.DrawString("Added by "+stripUnsupported(req.Requester.Name()), 250, 150)

	dc.DrawImage(imaging.Fill(thumb, compactThumb, compactThumb, imaging.Center, imaging.Lanczos), 20, 25)

	r.logger.Debug("Rendered compact card", zap.String("track", req.Track.ID))
	return encode(dc)
}

func (r *Renderer) setFace(dc *gg.Context, fc *faces, bold bool, size float64) error {
	face, err := fc.get(bold, size)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	return nil
}

func encode(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
