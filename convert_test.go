package termtest

import "testing"

func TestCellsFromPixels(t *testing.T) {
	tests := []struct {
		w, h, cw, ch uint32
		cols, rows   int
	}{
		{100, 60, 8, 6, 13, 10},
		{100, 50, 8, 6, 13, 9},
		{0, 0, 8, 6, 1, 1},
		{8, 6, 8, 6, 1, 1},
		{9, 7, 8, 6, 2, 2},
		{100, 100, 8, 16, 13, 7},
		{10000, 10000, 1, 1, 10000, 10000},
	}

	for _, tt := range tests {
		cols, rows := CellsFromPixels(tt.w, tt.h, tt.cw, tt.ch)
		if cols != tt.cols || rows != tt.rows {
			t.Errorf("CellsFromPixels(%d, %d, %d, %d) = (%d, %d), want (%d, %d)",
				tt.w, tt.h, tt.cw, tt.ch, cols, rows, tt.cols, tt.rows)
		}
	}
}

func TestCellsFromPixelsZeroCellSize(t *testing.T) {
	cols, rows := CellsFromPixels(100, 60, 0, 0)

	if cols != 13 || rows != 10 {
		t.Errorf("expected defaults to give (13, 10), got (%d, %d)", cols, rows)
	}
}

func TestCellsFromPixelsMonotonic(t *testing.T) {
	prevCols, prevRows := 0, 0
	for px := uint32(0); px <= 200; px++ {
		cols, rows := CellsFromPixels(px, px, 8, 6)
		if cols < prevCols || rows < prevRows {
			t.Fatalf("not monotonic at %d px: (%d, %d) after (%d, %d)", px, cols, rows, prevCols, prevRows)
		}
		prevCols, prevRows = cols, rows
	}
}

func TestCellsFromPixelsLargeValues(t *testing.T) {
	cols, rows := CellsFromPixels(^uint32(0), ^uint32(0), 1, 1)

	if cols != int(^uint32(0)) || rows != int(^uint32(0)) {
		t.Errorf("expected no overflow, got (%d, %d)", cols, rows)
	}
}
