package termtest

import (
	"bytes"
	"fmt"
)

// Area is a rectangle of cells, anchored at its top-left corner.
type Area struct {
	Row    int `json:"row"`
	Col    int `json:"col"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewArea creates an area from its top-left corner and size in cells.
func NewArea(row, col, width, height int) Area {
	return Area{Row: row, Col: col, Width: width, Height: height}
}

// End returns the exclusive bottom-right corner.
func (a Area) End() Position {
	return Position{Row: a.Row + a.Height, Col: a.Col + a.Width}
}

// IsEmpty returns true if the area covers no cells.
func (a Area) IsEmpty() bool {
	return a.Width <= 0 || a.Height <= 0
}

// Contains returns true if the cell at (row, col) lies inside the area.
// An empty area contains nothing.
func (a Area) Contains(row, col int) bool {
	if a.IsEmpty() {
		return false
	}
	end := a.End()
	return row >= a.Row && row < end.Row && col >= a.Col && col < end.Col
}

func (a Area) String() string {
	return fmt.Sprintf("(%d, %d) %dx%d", a.Row, a.Col, a.Width, a.Height)
}

// SixelRegion records one Sixel image drawn on the screen.
//
// The anchor is the cursor position when the image started. It is captured
// once and never adjusted, so after a scroll or resize it can refer to cells
// that are no longer on screen. Regions are immutable once recorded.
type SixelRegion struct {
	StartRow    int    `json:"start_row"`
	StartCol    int    `json:"start_col"`
	WidthPx     uint32 `json:"width_px"`
	HeightPx    uint32 `json:"height_px"`
	WidthCells  int    `json:"width_cells"`
	HeightCells int    `json:"height_cells"`
	Data        []byte `json:"-"`
}

// EndPosition returns the exclusive bottom-right corner in cells.
func (r SixelRegion) EndPosition() Position {
	return Position{Row: r.StartRow + r.HeightCells, Col: r.StartCol + r.WidthCells}
}

// Bounds returns the cells covered by the region.
func (r SixelRegion) Bounds() Area {
	return Area{Row: r.StartRow, Col: r.StartCol, Width: r.WidthCells, Height: r.HeightCells}
}

func (r SixelRegion) isEmpty() bool {
	return r.WidthCells <= 0 || r.HeightCells <= 0
}

// IsWithinCells returns true if the region lies entirely inside area.
//
// An empty area contains nothing. A region without extent is within the area
// iff the area contains its anchor cell.
func (r SixelRegion) IsWithinCells(area Area) bool {
	if area.IsEmpty() {
		return false
	}
	if r.isEmpty() {
		return area.Contains(r.StartRow, r.StartCol)
	}

	end := r.EndPosition()
	areaEnd := area.End()
	return r.StartRow >= area.Row &&
		r.StartCol >= area.Col &&
		end.Row <= areaEnd.Row &&
		end.Col <= areaEnd.Col
}

// OverlapsCells returns true if the region shares at least one cell with area.
// Regions and areas without extent never overlap anything.
func (r SixelRegion) OverlapsCells(area Area) bool {
	if area.IsEmpty() || r.isEmpty() {
		return false
	}

	end := r.EndPosition()
	areaEnd := area.End()
	disjoint := end.Row <= area.Row ||
		areaEnd.Row <= r.StartRow ||
		end.Col <= area.Col ||
		areaEnd.Col <= r.StartCol
	return !disjoint
}

// Equal compares position, dimensions and payload.
func (r SixelRegion) Equal(other SixelRegion) bool {
	return r.StartRow == other.StartRow &&
		r.StartCol == other.StartCol &&
		r.WidthPx == other.WidthPx &&
		r.HeightPx == other.HeightPx &&
		r.WidthCells == other.WidthCells &&
		r.HeightCells == other.HeightCells &&
		bytes.Equal(r.Data, other.Data)
}

func (r SixelRegion) String() string {
	return fmt.Sprintf("sixel at (%d, %d) %dx%d px, %dx%d cells",
		r.StartRow, r.StartCol, r.WidthPx, r.HeightPx, r.WidthCells, r.HeightCells)
}

// clone returns a copy that shares no memory with r.
func (r SixelRegion) clone() SixelRegion {
	r.Data = append([]byte(nil), r.Data...)
	return r
}
