package termtest

import (
	"fmt"
	"io"
	"strings"
)

// ScreenReader is the read-only surface needed to compare two screen implementations.
type ScreenReader interface {
	// Size returns the grid dimensions.
	Size() (rows, cols int)
	// CursorPos returns the cursor position (0-based).
	CursorPos() (row, col int)
	// Cell returns the cell at (row, col), or nil if out of bounds.
	Cell(row, col int) *Cell
}

// ScreenFeeder is a ScreenReader that accepts terminal output.
type ScreenFeeder interface {
	ScreenReader
	io.Writer
}

var _ ScreenFeeder = (*Screen)(nil)

// SnapshotOf deep-copies the grid and cursor of any ScreenReader.
func SnapshotOf(r ScreenReader) GridSnapshot {
	rows, cols := r.Size()
	snap := GridSnapshot{
		Rows:  rows,
		Cols:  cols,
		Cells: make([][]Cell, rows),
	}
	for row := 0; row < rows; row++ {
		snap.Cells[row] = make([]Cell, cols)
		for col := 0; col < cols; col++ {
			if cell := r.Cell(row, col); cell != nil {
				snap.Cells[row][col] = *cell
			}
		}
	}
	snap.Cursor.Row, snap.Cursor.Col = r.CursorPos()
	return snap
}

// IssueType categorizes comparison issues.
type IssueType int

const (
	IssueSizeMismatch   IssueType = iota // Grid dimensions differ
	IssueCursorMismatch                  // Cursor position differs
	IssueCharMismatch                    // Character differs
	IssueColorMismatch                   // FG or BG color differs
	IssueAttrMismatch                    // Flags differ
)

func (t IssueType) String() string {
	switch t {
	case IssueSizeMismatch:
		return "size"
	case IssueCursorMismatch:
		return "cursor"
	case IssueCharMismatch:
		return "char"
	case IssueColorMismatch:
		return "color"
	case IssueAttrMismatch:
		return "attr"
	default:
		return fmt.Sprintf("IssueType(%d)", int(t))
	}
}

// Issue is one difference between a reference screen and a screen under test.
type Issue struct {
	Type     IssueType `json:"type"`
	Row      int       `json:"row"`
	Col      int       `json:"col"`
	Expected string    `json:"expected"`
	Actual   string    `json:"actual"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s mismatch at (%d, %d): expected %s, got %s", i.Type, i.Row, i.Col, i.Expected, i.Actual)
}

// Comparison holds the outcome of comparing two screens.
type Comparison struct {
	Passed bool    `json:"passed"`
	Issues []Issue `json:"issues,omitempty"`
}

// Err returns a *MismatchError describing every issue, or nil if the screens match.
func (c *Comparison) Err() error {
	if c.Passed {
		return nil
	}
	return &MismatchError{Issues: c.Issues}
}

func (c *Comparison) add(issue Issue) {
	c.Passed = false
	c.Issues = append(c.Issues, issue)
}

// MismatchError reports that two screens fed the same input ended in different states.
type MismatchError struct {
	Issues []Issue
}

func (e *MismatchError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "screens differ in %d place(s):", len(e.Issues))
	for _, issue := range e.Issues {
		sb.WriteString("\n  ")
		sb.WriteString(issue.String())
	}
	return sb.String()
}

// CompareScreens compares the grid and cursor of a reference screen with a screen under test.
// Cells outside the smaller of the two grids are not compared; a size difference is reported once.
func CompareScreens(ref, sut ScreenReader) *Comparison {
	return CompareSnapshots(SnapshotOf(ref), SnapshotOf(sut))
}

// CompareSnapshots compares two grid snapshots cell by cell.
func CompareSnapshots(expected, actual GridSnapshot) *Comparison {
	result := &Comparison{Passed: true}

	if expected.Rows != actual.Rows || expected.Cols != actual.Cols {
		result.add(Issue{
			Type:     IssueSizeMismatch,
			Expected: fmt.Sprintf("%dx%d", expected.Rows, expected.Cols),
			Actual:   fmt.Sprintf("%dx%d", actual.Rows, actual.Cols),
		})
	}

	if expected.Cursor != actual.Cursor {
		result.add(Issue{
			Type:     IssueCursorMismatch,
			Row:      actual.Cursor.Row,
			Col:      actual.Cursor.Col,
			Expected: expected.Cursor.String(),
			Actual:   actual.Cursor.String(),
		})
	}

	rows := min(expected.Rows, actual.Rows)
	cols := min(expected.Cols, actual.Cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			exp, act := expected.Cell(row, col), actual.Cell(row, col)
			if exp == nil || act == nil {
				continue
			}
			if exp.Char != act.Char {
				result.add(Issue{
					Type:     IssueCharMismatch,
					Row:      row,
					Col:      col,
					Expected: fmt.Sprintf("%q", exp.Char),
					Actual:   fmt.Sprintf("%q", act.Char),
				})
			}
			if exp.Fg != act.Fg || exp.Bg != act.Bg {
				result.add(Issue{
					Type:     IssueColorMismatch,
					Row:      row,
					Col:      col,
					Expected: fmt.Sprintf("fg=%s bg=%s", exp.Fg, exp.Bg),
					Actual:   fmt.Sprintf("fg=%s bg=%s", act.Fg, act.Bg),
				})
			}
			if exp.Flags != act.Flags {
				result.add(Issue{
					Type:     IssueAttrMismatch,
					Row:      row,
					Col:      col,
					Expected: fmt.Sprintf("%05b", exp.Flags),
					Actual:   fmt.Sprintf("%05b", act.Flags),
				})
			}
		}
	}

	return result
}

// FindFirstDivergence replays data into ref and sut in chunks of step bytes,
// comparing snapshots after each chunk. It returns the number of bytes fed when
// the screens first differed, or -1 if they never did.
//
// Both screens should be freshly constructed with the same size.
func FindFirstDivergence(data []byte, ref, sut ScreenFeeder, step int) (int, error) {
	if step <= 0 {
		step = 1
	}

	if !SnapshotOf(ref).Equal(SnapshotOf(sut)) {
		return 0, nil
	}

	for offset := 0; offset < len(data); offset += step {
		end := min(offset+step, len(data))
		chunk := data[offset:end]
		if _, err := ref.Write(chunk); err != nil {
			return -1, fmt.Errorf("write reference at offset %d: %w", offset, err)
		}
		if _, err := sut.Write(chunk); err != nil {
			return -1, fmt.Errorf("write screen under test at offset %d: %w", offset, err)
		}
		if !SnapshotOf(ref).Equal(SnapshotOf(sut)) {
			return end, nil
		}
	}
	return -1, nil
}
