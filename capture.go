package termtest

import (
	"fmt"
	"strings"
)

// Capture is a point-in-time copy of the Sixel regions of a screen.
// It holds no reference to its source, so it can be compared with later captures
// to detect graphics being added or cleared across screen transitions.
type Capture struct {
	regions []SixelRegion
}

// NewCapture copies the current Sixel regions of s.
func NewCapture(s *Screen) *Capture {
	return &Capture{regions: s.SixelRegions()}
}

// Capture copies the current Sixel regions.
func (s *Screen) Capture() *Capture {
	return NewCapture(s)
}

// CaptureRegions builds a capture from an explicit region list. The list is copied.
func CaptureRegions(regions []SixelRegion) *Capture {
	return &Capture{regions: cloneRegions(regions)}
}

// Regions returns a copy of the captured regions in drawing order.
func (c *Capture) Regions() []SixelRegion {
	return cloneRegions(c.regions)
}

// Len returns the number of captured regions.
func (c *Capture) Len() int {
	return len(c.regions)
}

// IsEmpty returns true if no region was captured.
func (c *Capture) IsEmpty() bool {
	return len(c.regions) == 0
}

func (c *Capture) filter(keep func(SixelRegion) bool) []SixelRegion {
	var out []SixelRegion
	for _, r := range c.regions {
		if keep(r) {
			out = append(out, r.clone())
		}
	}
	return out
}

// SequencesInArea returns the regions lying entirely inside area.
func (c *Capture) SequencesInArea(area Area) []SixelRegion {
	return c.filter(func(r SixelRegion) bool { return r.IsWithinCells(area) })
}

// SequencesOutsideArea returns the regions not lying entirely inside area.
func (c *Capture) SequencesOutsideArea(area Area) []SixelRegion {
	return c.filter(func(r SixelRegion) bool { return !r.IsWithinCells(area) })
}

// SequencesOverlapping returns the regions sharing at least one cell with area.
func (c *Capture) SequencesOverlapping(area Area) []SixelRegion {
	return c.filter(func(r SixelRegion) bool { return r.OverlapsCells(area) })
}

// SequencesAtRow returns the regions anchored on row.
func (c *Capture) SequencesAtRow(row int) []SixelRegion {
	return c.filter(func(r SixelRegion) bool { return r.StartRow == row })
}

// HasSequencesIn returns true if at least one region lies entirely inside area.
func (c *Capture) HasSequencesIn(area Area) bool {
	for _, r := range c.regions {
		if r.IsWithinCells(area) {
			return true
		}
	}
	return false
}

// AssertAllWithin returns a *BoundsError listing every region that is not entirely inside area.
func (c *Capture) AssertAllWithin(area Area) error {
	outside := c.SequencesOutsideArea(area)
	if len(outside) == 0 {
		return nil
	}
	return &BoundsError{Area: area, Regions: outside}
}

// BoundingBox returns the smallest area enclosing every region.
// Returns false if the capture is empty.
func (c *Capture) BoundingBox() (Area, bool) {
	if len(c.regions) == 0 {
		return Area{}, false
	}

	first := c.regions[0]
	minRow, minCol := first.StartRow, first.StartCol
	end := first.EndPosition()
	maxRow, maxCol := end.Row, end.Col
	for _, r := range c.regions[1:] {
		end := r.EndPosition()
		minRow = min(minRow, r.StartRow)
		minCol = min(minCol, r.StartCol)
		maxRow = max(maxRow, end.Row)
		maxCol = max(maxCol, end.Col)
	}
	return Area{Row: minRow, Col: minCol, Width: maxCol - minCol, Height: maxRow - minRow}, true
}

// TotalCoverage sums the cell area of every region. Overlapping cells are counted once per region.
func (c *Capture) TotalCoverage() int {
	total := 0
	for _, r := range c.regions {
		total += r.WidthCells * r.HeightCells
	}
	return total
}

// DiffersFrom returns true unless both captures hold equal regions in the same order.
// A nil capture is treated as empty.
func (c *Capture) DiffersFrom(other *Capture) bool {
	a, b := c.list(), other.list()
	if len(a) != len(b) {
		return true
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return true
		}
	}
	return false
}

// CaptureDiff lists the regions that changed between two captures.
type CaptureDiff struct {
	// Added holds regions present in the newer capture only.
	Added []SixelRegion `json:"added,omitempty"`
	// Removed holds regions present in the older capture only.
	Removed []SixelRegion `json:"removed,omitempty"`
}

// IsEmpty returns true if nothing changed.
func (d CaptureDiff) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// Diff compares c (older) with next (newer). Regions are matched by equality;
// duplicates are matched one to one. A nil capture is treated as empty.
func (c *Capture) Diff(next *Capture) CaptureDiff {
	older, newer := c.list(), next.list()
	return CaptureDiff{
		Added:   subtractRegions(newer, older),
		Removed: subtractRegions(older, newer),
	}
}

// list returns the regions without copying; nil for a nil capture.
func (c *Capture) list() []SixelRegion {
	if c == nil {
		return nil
	}
	return c.regions
}

// subtractRegions returns the regions of a without a match in b.
func subtractRegions(a, b []SixelRegion) []SixelRegion {
	used := make([]bool, len(b))
	var out []SixelRegion
	for _, r := range a {
		found := false
		for j, other := range b {
			if !used[j] && r.Equal(other) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			out = append(out, r.clone())
		}
	}
	return out
}

// BoundsError reports the regions found outside an expected area.
type BoundsError struct {
	Area    Area
	Regions []SixelRegion
}

func (e *BoundsError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d sixel region(s) outside area %s:", len(e.Regions), e.Area)
	for _, r := range e.Regions {
		end := r.EndPosition()
		fmt.Fprintf(&sb, "\n  at (%d, %d) to (%d, %d), %dx%d cells",
			r.StartRow, r.StartCol, end.Row, end.Col, r.WidthCells, r.HeightCells)
	}
	return sb.String()
}
