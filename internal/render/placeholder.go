package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// placeholder draws title and msg centered on a light background.
func placeholder(w io.Writer, title, msg string, size Size) error {
	rgba := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	draw.Draw(rgba, rgba.Bounds(), image.NewUniform(color.RGBA{R: 248, G: 248, B: 248, A: 255}), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	lineH := face.Metrics().Height.Ceil() + 6
	lines := make([]string, 0, 2)
	if t := strings.TrimSpace(title); t != "" {
		lines = append(lines, t)
	}
	lines = append(lines, msg)

	y := size.Height/2 - (len(lines)*lineH)/2 + face.Metrics().Ascent.Ceil()
	for i, line := range lines {
		col := color.RGBA{R: 90, G: 90, B: 90, A: 255}
		if i == 0 && len(lines) > 1 {
			col = color.RGBA{R: 30, G: 30, B: 30, A: 255}
		}
		dr := &font.Drawer{Dst: rgba, Src: image.NewUniform(col), Face: face}
		tw := dr.MeasureString(line).Ceil()
		x := (size.Width - tw) / 2
		if x < 8 {
			x = 8
		}
		dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
		dr.DrawString(line)
		y += lineH
	}
	return png.Encode(w, rgba)
}
