package termtest

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile describes the pixel geometry of a terminal, used to convert Sixel
// images to cells. A Profile implements SizeProvider.
type Profile struct {
	Name       string `yaml:"name" json:"name"`
	CellWidth  int    `yaml:"cell_width" json:"cell_width"`
	CellHeight int    `yaml:"cell_height" json:"cell_height"`
	Rows       int    `yaml:"rows,omitempty" json:"rows,omitempty"`
	Cols       int    `yaml:"cols,omitempty" json:"cols,omitempty"`
}

var (
	// DefaultProfile maps one cell to 8 pixels wide and one Sixel band (6 pixels) tall.
	DefaultProfile = Profile{Name: "default", CellWidth: DefaultCellWidth, CellHeight: DefaultCellHeight}

	// XtermProfile matches xterm's default 8x16 font.
	XtermProfile = Profile{Name: "xterm", CellWidth: 8, CellHeight: 16}
)

// BuiltinProfiles returns the profiles available without a profile file.
func BuiltinProfiles() []Profile {
	return []Profile{DefaultProfile, XtermProfile}
}

// CellSizePixels returns the cell size, falling back to the defaults for unset values.
func (p Profile) CellSizePixels() (width, height int) {
	width, height = p.CellWidth, p.CellHeight
	if width <= 0 {
		width = DefaultCellWidth
	}
	if height <= 0 {
		height = DefaultCellHeight
	}
	return width, height
}

// WindowSizePixels returns the size of the whole grid in pixels.
func (p Profile) WindowSizePixels() (width, height int) {
	rows, cols := p.Rows, p.Cols
	if rows <= 0 {
		rows = DEFAULT_ROWS
	}
	if cols <= 0 {
		cols = DEFAULT_COLS
	}
	cw, ch := p.CellSizePixels()
	return cols * cw, rows * ch
}

// LoadProfiles reads a YAML list of profiles.
//
//	- name: kitty
//	  cell_width: 10
//	  cell_height: 20
func LoadProfiles(r io.Reader) ([]Profile, error) {
	var profiles []Profile
	if err := yaml.NewDecoder(r).Decode(&profiles); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode profiles: %w", err)
	}

	for i, p := range profiles {
		if p.Name == "" {
			return nil, fmt.Errorf("profile %d: missing name", i)
		}
		if p.CellWidth < 0 || p.CellHeight < 0 {
			return nil, fmt.Errorf("profile %q: negative cell size %dx%d", p.Name, p.CellWidth, p.CellHeight)
		}
	}
	return profiles, nil
}

// FindProfile returns the profile with the given name (case-insensitive).
func FindProfile(profiles []Profile, name string) (Profile, bool) {
	for _, p := range profiles {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Profile{}, false
}
