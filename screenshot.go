package termtest

import (
	"image"
	"image/color"
	"image/draw"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ScreenshotConfig controls how the screen is rendered to an image.
// Sixel pixel data is never decoded; each region is drawn as an outline of the cells it covers.
type ScreenshotConfig struct {
	// Font face to use for rendering. If nil, uses basicfont.Face7x13.
	Font font.Face

	// CellWidth and CellHeight override the cell dimensions.
	// If zero, derived from font metrics.
	CellWidth  int
	CellHeight int

	// Palette is the 256-color palette. If nil, uses DefaultPalette.
	Palette *[256]color.RGBA

	// DefaultFG is the default foreground color. If nil, uses DefaultForeground.
	DefaultFG *color.RGBA

	// DefaultBG is the default background color. If nil, uses DefaultBackground.
	DefaultBG *color.RGBA

	// RegionColor outlines Sixel regions. If nil, uses DefaultRegionColor.
	RegionColor *color.RGBA

	// HideRegions disables the Sixel region outlines.
	HideRegions bool

	// ShowCursor controls whether to render the cursor. Default true.
	ShowCursor *bool
}

// LoadFont loads a TrueType or OpenType font from a file path.
func LoadFont(path string, size float64) (font.Face, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadFontFromReader(f, size)
}

// LoadFontFromReader loads a TrueType or OpenType font from an io.Reader.
func LoadFontFromReader(r io.Reader, size float64) (font.Face, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}

	return opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Screenshot renders the screen to an RGBA image using default settings (basicfont, default palette).
func (s *Screen) Screenshot() *image.RGBA {
	return s.ScreenshotWithConfig(&ScreenshotConfig{})
}

// ScreenshotWithConfig renders the screen with custom font and colors.
// Useful as a debug artifact when a bounds assertion fails.
func (s *Screen) ScreenshotWithConfig(cfg *ScreenshotConfig) *image.RGBA {
	face := cfg.Font
	if face == nil {
		face = basicfont.Face7x13
	}
	metrics := face.Metrics()

	cellWidth := cfg.CellWidth
	if cellWidth == 0 {
		adv, _ := face.GlyphAdvance('M')
		cellWidth = adv.Ceil()
		if cellWidth == 0 {
			cellWidth = 7 // fallback for basicfont
		}
	}
	cellHeight := cfg.CellHeight
	if cellHeight == 0 {
		cellHeight = metrics.Height.Ceil()
	}

	palette := cfg.Palette
	defaultFG := DefaultForeground
	if cfg.DefaultFG != nil {
		defaultFG = *cfg.DefaultFG
	}
	defaultBG := DefaultBackground
	if cfg.DefaultBG != nil {
		defaultBG = *cfg.DefaultBG
	}
	regionColor := DefaultRegionColor
	if cfg.RegionColor != nil {
		regionColor = *cfg.RegionColor
	}
	showCursor := true
	if cfg.ShowCursor != nil {
		showCursor = *cfg.ShowCursor
	}

	rows, cols := s.Size()
	img := image.NewRGBA(image.Rect(0, 0, cols*cellWidth, rows*cellHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(defaultBG), image.Point{}, draw.Src)

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cell := s.grid.Cell(row, col)
			if cell == nil || cell.IsWideSpacer() {
				continue
			}

			x, y := col*cellWidth, row*cellHeight
			w := cellWidth
			if cell.IsWide() {
				w *= 2
			}
			fg := cell.Fg.Resolve(palette, defaultFG)
			bg := cell.Bg.Resolve(palette, defaultBG)

			if cell.Bg.Set {
				draw.Draw(img, image.Rect(x, y, x+w, y+cellHeight), image.NewUniform(bg), image.Point{}, draw.Src)
			}

			if cell.Char == 0 || cell.Char == ' ' {
				continue
			}

			baseline := y + metrics.Ascent.Ceil()
			d := &font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(fg),
				Face: face,
				Dot:  fixed.P(x, baseline),
			}
			d.DrawString(string(cell.Char))

			if cell.Bold() {
				// Overstrike one pixel to the right.
				d.Dot = fixed.P(x+1, baseline)
				d.DrawString(string(cell.Char))
			}

			if cell.Underline() {
				underlineY := min(baseline+2, y+cellHeight-1)
				for px := 0; px < w; px++ {
					img.Set(x+px, underlineY, fg)
				}
			}
		}
	}

	if showCursor {
		cur := s.grid.Cursor()
		invertRect(img, image.Rect(cur.Col*cellWidth, cur.Row*cellHeight, (cur.Col+1)*cellWidth, (cur.Row+1)*cellHeight))
	}

	if !cfg.HideRegions {
		for _, r := range s.regions {
			b := r.Bounds()
			outlineRect(img, image.Rect(
				b.Col*cellWidth, b.Row*cellHeight,
				(b.Col+b.Width)*cellWidth, (b.Row+b.Height)*cellHeight,
			), regionColor)
		}
	}

	return img
}

// invertRect inverts the colors inside rect, clipped to the image.
func invertRect(img *image.RGBA, rect image.Rectangle) {
	rect = rect.Intersect(img.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			c := img.RGBAAt(x, y)
			img.SetRGBA(x, y, color.RGBA{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B, A: 255})
		}
	}
}

// outlineRect draws a one pixel border along rect. Parts outside the image are clipped.
func outlineRect(img *image.RGBA, rect image.Rectangle, c color.RGBA) {
	if rect.Empty() {
		return
	}
	bounds := img.Bounds()
	set := func(x, y int) {
		if (image.Point{X: x, Y: y}).In(bounds) {
			img.SetRGBA(x, y, c)
		}
	}
	for x := rect.Min.X; x < rect.Max.X; x++ {
		set(x, rect.Min.Y)
		set(x, rect.Max.Y-1)
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		set(rect.Min.X, y)
		set(rect.Max.X-1, y)
	}
}
