package termtest

import "image/color"

// DefaultPalette is the standard 256-color palette: 16 named colors (0-15), 216 color cube (16-231), 24 grayscale (232-255).
var DefaultPalette = [256]color.RGBA{
	// Standard colors (0-7)
	{0, 0, 0, 255},
	{205, 49, 49, 255},
	{13, 188, 121, 255},
	{229, 229, 16, 255},
	{36, 114, 200, 255},
	{188, 63, 188, 255},
	{17, 168, 205, 255},
	{229, 229, 229, 255},

	// Bright colors (8-15)
	{102, 102, 102, 255},
	{241, 76, 76, 255},
	{35, 209, 139, 255},
	{245, 245, 67, 255},
	{59, 142, 234, 255},
	{214, 112, 214, 255},
	{41, 184, 219, 255},
	{255, 255, 255, 255},
}

func init() {
	// 6x6x6 color cube (16-231)
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				DefaultPalette[i] = color.RGBA{R: cubeLevel(r), G: cubeLevel(g), B: cubeLevel(b), A: 255}
				i++
			}
		}
	}

	// Grayscale ramp (232-255)
	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		DefaultPalette[232+j] = color.RGBA{gray, gray, gray, 255}
	}
}

// cubeLevel maps a color cube coordinate (0-5) to the xterm channel value.
func cubeLevel(n int) uint8 {
	if n == 0 {
		return 0
	}
	return uint8(55 + n*40)
}

var (
	// DefaultForeground is the color of text with no foreground set.
	DefaultForeground = color.RGBA{229, 229, 229, 255}
	// DefaultBackground is the color of cells with no background set.
	DefaultBackground = color.RGBA{0, 0, 0, 255}
	// DefaultRegionColor outlines Sixel regions in screenshots.
	DefaultRegionColor = color.RGBA{255, 0, 255, 255}
)

// Resolve returns the palette entry for c, or def when no index is set.
// A nil palette means DefaultPalette.
func (c Color) Resolve(palette *[256]color.RGBA, def color.RGBA) color.RGBA {
	if !c.Set {
		return def
	}
	if palette == nil {
		palette = &DefaultPalette
	}
	return palette[c.Index]
}
