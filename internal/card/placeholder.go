package card

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/fogleman/gg"
)

var (
	colorArtworkPanel = color.RGBA{0x22, 0x22, 0x22, 0xff}
	colorSpotifyGreen = color.RGBA{0x1d, 0xb9, 0x54, 0xff}
)

// artworkPlaceholder is the flat panel shown when no artwork can be loaded.
func artworkPlaceholder() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 450, 450))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: colorArtworkPanel}, image.Point{}, draw.Src)
	return img
}

// avatarPlaceholder draws a generic head-and-shoulders silhouette.
func avatarPlaceholder() image.Image {
	const size = 80
	dc := gg.NewContext(size, size)
	dc.SetHexColor("#4f545c")
	dc.DrawRectangle(0, 0, size, size)
	dc.Fill()

	dc.SetHexColor("#dcddde")
	dc.DrawCircle(size/2, size*0.38, size*0.18)
	dc.Fill()
	dc.DrawEllipse(size/2, size*0.95, size*0.34, size*0.3)
	dc.Fill()
	return dc.Image()
}

// logoPlaceholder draws a green disc with three sound-wave arcs.
func logoPlaceholder() image.Image {
	const size = 60
	dc := gg.NewContext(size, size)
	dc.SetColor(colorSpotifyGreen)
	dc.DrawCircle(size/2, size/2, size/2)
	dc.Fill()

	dc.SetHexColor("#000000")
	dc.SetLineCapRound()
	for i, w := range []float64{5, 4, 3} {
		r := size * (0.36 - float64(i)*0.08)
		dc.SetLineWidth(w)
		dc.DrawArc(size/2, size*0.78+float64(i)*2, r, 1.2*math.Pi, 1.8*math.Pi)
		dc.Stroke()
	}
	return dc.Image()
}
