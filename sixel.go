package termtest

import (
	"bytes"
	"fmt"
	"strconv"
)

// SixelIntroducer is the DCS final byte that starts a Sixel image (ESC P ... q).
const SixelIntroducer = 'q'

// Raster attribute limits.
const (
	// DefaultSixelWidth and DefaultSixelHeight are used when a payload has no usable raster attributes.
	DefaultSixelWidth  = 100
	DefaultSixelHeight = 100

	MinSixelDimension = 1
	MaxSixelDimension = 10000

	// LargeSixelDimension is the size above which a declared dimension is reported as suspicious.
	// Such values are kept; the report is informational only.
	LargeSixelDimension = 2000
)

// Raster is the outcome of reading the declared size of a Sixel payload.
type Raster struct {
	Width  uint32
	Height uint32

	// Declared is false when the default size was used.
	Declared bool

	// Diagnostics lists non-fatal problems found while reading the attributes.
	Diagnostics []string
}

// ParseRaster extracts the pixel size from the raster attributes ("Pan;Pad;Ph;Pv) of a Sixel payload.
//
// Only declared metadata is read; pixel data is never decoded. Bytes after '"'
// are scanned for up to four numeric fields [aspect, background, width, height].
// ';' ends a field (empty fields allowed). Scanning stops at the first Sixel
// command ('#', '!', '-', '$') or data byte (0x3F-0x7E). Any other non-digit
// byte ends a non-empty field and is otherwise skipped as noise.
//
// A missing marker, fewer than four fields, or an unparsable width/height falls
// back to 100x100. Both dimensions are clamped to [1, 10000].
func ParseRaster(data []byte) Raster {
	start := bytes.IndexByte(data, '"')
	if start < 0 {
		return defaultRaster("sixel payload has no raster attributes, assuming 100x100")
	}

	fields := rasterFields(data[start+1:])
	if len(fields) < 4 {
		return defaultRaster(fmt.Sprintf("sixel raster attributes have %d of 4 fields, assuming 100x100", len(fields)))
	}

	width, werr := strconv.ParseUint(fields[2], 10, 32)
	height, herr := strconv.ParseUint(fields[3], 10, 32)
	if werr != nil || herr != nil {
		return defaultRaster(fmt.Sprintf("sixel raster size %q x %q is not numeric, assuming 100x100", fields[2], fields[3]))
	}

	r := Raster{Declared: true}
	r.Width = r.clamp("width", width)
	r.Height = r.clamp("height", height)
	return r
}

func defaultRaster(reason string) Raster {
	return Raster{
		Width:       DefaultSixelWidth,
		Height:      DefaultSixelHeight,
		Diagnostics: []string{reason},
	}
}

func (r *Raster) clamp(name string, v uint64) uint32 {
	switch {
	case v < MinSixelDimension:
		r.Diagnostics = append(r.Diagnostics, fmt.Sprintf("sixel %s %d below minimum, clamped to %d", name, v, MinSixelDimension))
		return MinSixelDimension
	case v > MaxSixelDimension:
		r.Diagnostics = append(r.Diagnostics, fmt.Sprintf("sixel %s %d above maximum, clamped to %d", name, v, MaxSixelDimension))
		return MaxSixelDimension
	case v > LargeSixelDimension:
		r.Diagnostics = append(r.Diagnostics, fmt.Sprintf("sixel %s %d is unusually large", name, v))
	}
	return uint32(v)
}

// rasterFields splits raster attribute text into at most four numeric fields.
func rasterFields(data []byte) []string {
	fields := make([]string, 0, 4)
	cur := -1 // start of the pending digit run
	end := len(data)
scan:
	for i := 0; i < len(data) && len(fields) < 4; i++ {
		b := data[i]
		switch {
		case isSixelCommand(b):
			end = i
			break scan
		case b >= '0' && b <= '9':
			if cur < 0 {
				cur = i
			}
		case b == ';':
			if cur < 0 {
				fields = append(fields, "")
			} else {
				fields = append(fields, string(data[cur:i]))
				cur = -1
			}
		default:
			if cur >= 0 {
				fields = append(fields, string(data[cur:i]))
				cur = -1
			}
		}
	}
	if cur >= 0 && len(fields) < 4 {
		fields = append(fields, string(data[cur:end]))
	}
	return fields
}

// isSixelCommand reports whether b starts a color, repeat or line command or
// is a sixel data byte.
func isSixelCommand(b byte) bool {
	switch b {
	case '#', '!', '-', '$':
		return true
	}
	return b >= 0x3F && b <= 0x7E
}

// sixelMode is the DCS parse state of a screen: idle or accumulating a Sixel payload.
type sixelMode interface {
	isSixelMode()
}

// idleMode means no Sixel payload is being collected; DCS puts are ignored.
type idleMode struct{}

// accumulatingSixel collects a Sixel payload started at anchor.
type accumulatingSixel struct {
	anchor Position
	params [][]uint16
	buffer []byte
}

func (idleMode) isSixelMode()           {}
func (*accumulatingSixel) isSixelMode() {}
