package headlessterm

import "testing"

func lineText(l Line) string {
	var rs []rune
	for i := 0; i < l.Len(); i++ {
		c := l.cells[i]
		if c.IsWidePadding() {
			continue
		}
		if c.IsEmpty() {
			rs = append(rs, ' ')
			continue
		}
		rs = append(rs, c.Runes()...)
	}
	return string(rs)
}

func writeString(t *testing.T, sb *Scrollback, size Size, cursor Position, s string) Position {
	t.Helper()
	for _, r := range s {
		var err error
		cursor, err = sb.WriteAtCursor(size, cursor, NewCell(r, Default()))
		if err != nil {
			t.Fatalf("unexpected error writing %q: %v", r, err)
		}
	}
	return cursor
}

func TestScrollbackWriteSimple(t *testing.T) {
	size := Size{Width: 5, Height: 3}
	sb := NewScrollback(10)
	writeString(t, sb, size, Position{}, "abc")

	line, ok := sb.GetLine(size, 0)
	if !ok {
		t.Fatal("expected row 0 to exist")
	}
	if got := lineText(line); got != "abc" {
		t.Errorf("expected %q, got %q", "abc", got)
	}
}

func TestScrollbackWrapsAtWidth(t *testing.T) {
	size := Size{Width: 5, Height: 3}
	sb := NewScrollback(10)
	cursor := writeString(t, sb, size, Position{}, "abcdef")

	if cursor != (Position{Row: 1, Col: 1}) {
		t.Errorf("expected cursor at {1,1} after wrap, got %+v", cursor)
	}

	line0, _ := sb.GetLine(size, 0)
	line1, _ := sb.GetLine(size, 1)
	if !line0.IsWrapped() {
		t.Error("expected row 0 to be marked wrapped")
	}
	if got := lineText(line0); got != "abcde" {
		t.Errorf("row 0: got %q", got)
	}
	if got := lineText(line1); got != "f" {
		t.Errorf("row 1: got %q", got)
	}
}

func TestScrollbackWideCharWrapsAtRightEdge(t *testing.T) {
	size := Size{Width: 5, Height: 3}
	sb := NewScrollback(10)
	cursor := writeString(t, sb, size, Position{}, "abcd")
	cursor, err := sb.WriteAtCursor(size, cursor, NewCell(rune(0x1F60A), Default()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cursor.Row != 1 || cursor.Col != 2 {
		t.Errorf("expected wide char pushed to next row, got %+v", cursor)
	}
	line0, _ := sb.GetLine(size, 0)
	if !line0.IsWrapped() {
		t.Error("expected row 0 wrapped when a wide char cannot fit")
	}
	if got := lineText(line0); got != "abcd" {
		t.Errorf("row 0: expected trailing column left untouched, got %q", got)
	}
}

func TestScrollbackMaxLinesTruncates(t *testing.T) {
	size := Size{Width: 5, Height: 2}
	sb := NewScrollback(3)

	// Fill the window, then push 5 more lines past the bottom margin via
	// advanceRow, as a real linefeed-driven scroll would.
	row := 0
	for i := 0; i < size.Height-1; i++ {
		row = sb.advanceRow(size, row)
	}
	for i := 0; i < 5; i++ {
		row = sb.advanceRow(size, row)
	}

	if sb.buf.Len() != 3 {
		t.Errorf("expected retained buffer capped at maxLines=3, got %d", sb.buf.Len())
	}
	if row != size.Height-1 {
		t.Errorf("expected row pinned at bottom margin %d, got %d", size.Height-1, row)
	}
}

func TestScrollbackVisibleLinesWindow(t *testing.T) {
	size := Size{Width: 5, Height: 2}
	sb := NewScrollback(10)
	for row := 0; row < 4; row++ {
		sb.WriteAtCursor(size, Position{Row: row, Col: 0}, NewCell(rune('A'+row), Default()))
	}

	visible := sb.VisibleLines(size)
	if len(visible) != 2 {
		t.Fatalf("expected 2 visible lines, got %d", len(visible))
	}
	if lineText(visible[0]) != "C" || lineText(visible[1]) != "D" {
		t.Errorf("expected bottom two rows C,D visible, got %q,%q", lineText(visible[0]), lineText(visible[1]))
	}
}

func TestScrollbackBottomLinesAndAllLines(t *testing.T) {
	size := Size{Width: 5, Height: 2}
	sb := NewScrollback(10)
	for row := 0; row < 4; row++ {
		sb.WriteAtCursor(size, Position{Row: row, Col: 0}, NewCell(rune('A'+row), Default()))
	}

	bottom := sb.BottomLines(2)
	if lineText(bottom[0]) != "C" || lineText(bottom[1]) != "D" {
		t.Errorf("expected bottom lines C,D, got %q,%q", lineText(bottom[0]), lineText(bottom[1]))
	}

	all := sb.AllLines()
	if len(all) != 4 {
		t.Fatalf("expected 4 retained lines, got %d", len(all))
	}
	want := []string{"A", "B", "C", "D"}
	for i, w := range want {
		if got := lineText(all[i]); got != w {
			t.Errorf("AllLines[%d]: expected %q, got %q", i, w, got)
		}
	}
}

func TestScrollbackReflowPreservesContent(t *testing.T) {
	size := Size{Width: 5, Height: 3}
	sb := NewScrollback(10)
	writeString(t, sb, size, Position{}, "abcdef")

	sb.Reflow(3)

	newSize := Size{Width: 3, Height: 3}
	line0, ok0 := sb.GetLine(newSize, 0)
	line1, ok1 := sb.GetLine(newSize, 1)
	if !ok0 || !ok1 {
		t.Fatal("expected two reflowed rows")
	}
	if got := lineText(line0); got != "abc" {
		t.Errorf("row 0: expected %q, got %q", "abc", got)
	}
	if !line0.IsWrapped() {
		t.Error("expected row 0 to remain wrapped after reflow")
	}
	if got := lineText(line1); got != "def" {
		t.Errorf("row 1: expected %q, got %q", "def", got)
	}
	if line1.IsWrapped() {
		t.Error("expected row 1 to be the final (unwrapped) chunk")
	}
}

func setupFiveRows(t *testing.T, sb *Scrollback, size Size) {
	t.Helper()
	for row := 0; row < 5; row++ {
		if _, err := sb.WriteAtCursor(size, Position{Row: row, Col: 0}, NewCell(rune('A'+row), Default())); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
}

func TestScrollbackEraseToEndHonoursScrollRegion(t *testing.T) {
	size := Size{Width: 5, Height: 5}
	sb := NewScrollback(10)
	setupFiveRows(t, sb, size)
	sb.SetScrollRegion(WindowRegion(1, 3))
	sb.SetOriginMode(OriginModeScrollRegion)

	sb.EraseToEnd(size, Position{Row: 1, Col: 0})

	want := []string{"A", "", "", "D", "E"}
	for row, w := range want {
		line, _ := sb.GetLine(size, row)
		if got := lineText(line); got != w {
			t.Errorf("row %d: expected %q, got %q", row, w, got)
		}
	}
}

func TestScrollbackEraseToEndWithoutOriginModeIgnoresRegion(t *testing.T) {
	size := Size{Width: 5, Height: 5}
	sb := NewScrollback(10)
	setupFiveRows(t, sb, size)
	sb.SetScrollRegion(WindowRegion(1, 3))

	sb.EraseToEnd(size, Position{Row: 1, Col: 0})

	want := []string{"A", "", "", "", ""}
	for row, w := range want {
		line, _ := sb.GetLine(size, row)
		if got := lineText(line); got != w {
			t.Errorf("row %d: expected %q, got %q", row, w, got)
		}
	}
}

func TestScrollbackInsertLinesWithinRegion(t *testing.T) {
	size := Size{Width: 5, Height: 5}
	sb := NewScrollback(10)
	setupFiveRows(t, sb, size)
	sb.SetScrollRegion(WindowRegion(1, 4))
	sb.SetOriginMode(OriginModeScrollRegion)

	sb.InsertLines(size, Position{Row: 1, Col: 0}, 1)

	want := []string{"A", "", "B", "C", "E"}
	for row, w := range want {
		line, _ := sb.GetLine(size, row)
		if got := lineText(line); got != w {
			t.Errorf("row %d: expected %q, got %q", row, w, got)
		}
	}
}

func TestScrollbackDeleteLinesWithinRegion(t *testing.T) {
	size := Size{Width: 5, Height: 5}
	sb := NewScrollback(10)
	setupFiveRows(t, sb, size)
	sb.SetScrollRegion(WindowRegion(1, 4))
	sb.SetOriginMode(OriginModeScrollRegion)

	sb.DeleteLines(size, Position{Row: 1, Col: 0}, 1)

	want := []string{"A", "C", "D", "", "E"}
	for row, w := range want {
		line, _ := sb.GetLine(size, row)
		if got := lineText(line); got != w {
			t.Errorf("row %d: expected %q, got %q", row, w, got)
		}
	}
}

func TestScrollbackScrollOffsetClampsAndResets(t *testing.T) {
	size := Size{Width: 5, Height: 2}
	sb := NewScrollback(5)
	for row := 0; row < 4; row++ {
		sb.WriteAtCursor(size, Position{Row: row, Col: 0}, NewCell(rune('A'+row), Default()))
	}

	sb.ScrollUp(100)
	if sb.ScrollOffset() != sb.MaxLines() {
		t.Errorf("expected scroll offset clamped to maxLines=%d, got %d", sb.MaxLines(), sb.ScrollOffset())
	}

	sb.ScrollDown(1000)
	if sb.ScrollOffset() != 0 {
		t.Errorf("expected scroll offset to saturate at 0, got %d", sb.ScrollOffset())
	}

	sb.ScrollUp(1)
	if sb.ScrollOffset() == 0 {
		t.Fatal("expected nonzero scroll offset before writing")
	}
	sb.WriteAtCursor(size, Position{Row: 3, Col: 1}, NewCell('x', Default()))
	if sb.ScrollOffset() != 0 {
		t.Error("expected a write at the cursor to snap the scroll offset back to 0")
	}
}
