package termtest

// Default cell size in pixels used to convert Sixel dimensions to cells.
// One Sixel band is 6 pixels tall, so a row of cells maps to one band.
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 6
)

// CellsFromPixels converts a pixel size to the number of cells it covers.
//
// Each axis is rounded up, so a partially covered cell counts as occupied and
// bounds checks never under-report the area an image uses. The result is at
// least 1x1, even for a 0x0 image. A zero cell size falls back to the defaults.
func CellsFromPixels(widthPx, heightPx, pxPerCol, pxPerRow uint32) (cols, rows int) {
	if pxPerCol == 0 {
		pxPerCol = DefaultCellWidth
	}
	if pxPerRow == 0 {
		pxPerRow = DefaultCellHeight
	}
	return ceilCells(widthPx, pxPerCol), ceilCells(heightPx, pxPerRow)
}

func ceilCells(px, per uint32) int {
	n := (uint64(px) + uint64(per) - 1) / uint64(per)
	if n < 1 {
		n = 1
	}
	return int(n)
}
