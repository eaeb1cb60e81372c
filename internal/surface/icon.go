package surface

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

const iconSize = 64

var (
	iconRunning = renderIcon(color.RGBA{R: 0x4C, G: 0xAF, B: 0x50, A: 0xFF}) // green
	iconIdle    = renderIcon(color.RGBA{R: 0xF4, G: 0x43, B: 0x36, A: 0xFF}) // red
)

// renderIcon draws a filled circle with a white center dot and returns it
// PNG-encoded for the tray.
func renderIcon(fill color.RGBA) []byte {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))

	center := float64(iconSize) / 2
	outer := center - 4
	inner := 8.0
	white := color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}

	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			dx := float64(x) + 0.5 - center
			dy := float64(y) + 0.5 - center
			d2 := dx*dx + dy*dy
			switch {
			case d2 <= inner*inner:
				img.SetRGBA(x, y, white)
			case d2 <= outer*outer:
				img.SetRGBA(x, y, fill)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		// Encoding an in-memory RGBA image cannot fail in practice.
		panic(err)
	}
	return buf.Bytes()
}
