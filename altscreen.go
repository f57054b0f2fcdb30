package headlessterm

import "fmt"

// AltScreen is the fixed-height alternate screen buffer used by full-screen
// applications. Unlike Scrollback it always holds exactly Size.Height
// lines, top-at-front, and retains nothing: overflow at the bottom scrolls
// the top line off for good.
type AltScreen struct {
	buf          []Line
	scrollRegion ScrollRegion
	originMode   OriginMode
}

// NewAltScreen returns a height-line alt screen of empty lines.
func NewAltScreen(size Size) *AltScreen {
	buf := make([]Line, size.Height)
	for i := range buf {
		buf[i] = NewLine()
	}
	return &AltScreen{buf: buf, scrollRegion: TrackSizeRegion()}
}

// ScrollRegion returns the active scroll region.
func (a *AltScreen) ScrollRegion() ScrollRegion { return a.scrollRegion }

// SetScrollRegion sets the active scroll region.
func (a *AltScreen) SetScrollRegion(r ScrollRegion) { a.scrollRegion = r }

// OriginMode returns the active origin mode.
func (a *AltScreen) OriginMode() OriginMode { return a.originMode }

// SetOriginMode sets the active origin mode.
func (a *AltScreen) SetOriginMode(m OriginMode) { a.originMode = m }

// Reset clobbers the buffer back to height empty lines, used when entering
// the alt screen.
func (a *AltScreen) Reset(size Size) {
	a.buf = make([]Line, size.Height)
	for i := range a.buf {
		a.buf[i] = NewLine()
	}
}

// WriteAtCursor mirrors Scrollback.WriteAtCursor, but on overflow at the
// bottom-right it pops the top line and pushes a new empty one at the
// bottom (scroll-up by one, no retention) instead of growing storage.
func (a *AltScreen) WriteAtCursor(size Size, cursor Position, cell Cell) (Position, error) {
	if size.Width < 1 {
		return cursor, fmt.Errorf("headlessterm: cannot write to zero-width terminal")
	}

	if cursor.Col >= size.Width || (cell.Width() == 2 && cursor.Col+1 >= size.Width) {
		a.buf[cursor.Row].SetWrapped(true)
		cursor.Col = 0
		cursor.Row = a.advanceRow(size, cursor.Row)
	}

	if err := a.buf[cursor.Row].SetCell(size.Width, cursor.Col, cell); err != nil {
		return cursor, err
	}
	cursor.Col++
	if cell.Width() == 2 {
		if err := a.buf[cursor.Row].SetCell(size.Width, cursor.Col, WidePaddingCell(cell.Attrs())); err != nil {
			return cursor, err
		}
		cursor.Col++
	}

	return cursor, nil
}

// advanceRow moves row down by one, scrolling when it would cross the
// bottom margin: within an active scroll region (origin mode active) it
// discards the region's top line via DeleteLines instead of the whole
// buffer, matching the erase/IL/DL scroll-region gate in erasableRows;
// otherwise it scrolls the whole buffer (top line off for good, blank
// line at the bottom).
func (a *AltScreen) advanceRow(size Size, row int) int {
	top, bottom := a.erasableRows(size)
	if row < bottom-1 {
		return row + 1
	}
	if a.originMode == OriginModeScrollRegion && a.scrollRegion.Kind == ScrollRegionWindow {
		a.DeleteLines(size, Position{Row: top}, 1)
		return row
	}
	a.buf = append(a.buf[1:], NewLine())
	return row
}

// Resize trims or extends the buffer to the new height/width without
// reflowing content (alt screens don't carry scrollback to reflow).
func (a *AltScreen) Resize(newSize Size) {
	for i := range a.buf {
		a.buf[i].Truncate(newSize.Width)
	}
	switch {
	case newSize.Height > len(a.buf):
		for len(a.buf) < newSize.Height {
			a.buf = append(a.buf, NewLine())
		}
	case newSize.Height < len(a.buf):
		a.buf = a.buf[:newSize.Height]
	}
}

// GetLine returns the line at row.
func (a *AltScreen) GetLine(row int) Line { return a.buf[row] }

// GetLineMut edits the line at row in place.
func (a *AltScreen) GetLineMut(row int, edit func(*Line)) {
	edit(&a.buf[row])
}

func (a *AltScreen) erasableRows(size Size) (top, bottom int) {
	if a.originMode == OriginModeScrollRegion && a.scrollRegion.Kind == ScrollRegionWindow {
		return a.scrollRegion.Bounds(size.Height)
	}
	return 0, len(a.buf)
}

// EraseToEnd implements ED 0.
func (a *AltScreen) EraseToEnd(size Size, cursor Position) {
	a.buf[cursor.Row].Erase(SectionToEnd(cursor.Col))
	_, bottom := a.erasableRows(size)
	for i := cursor.Row + 1; i < bottom; i++ {
		a.buf[i].Truncate(0)
	}
}

// EraseFromStart implements ED 1.
func (a *AltScreen) EraseFromStart(size Size, cursor Position) {
	top, _ := a.erasableRows(size)
	for i := top; i < cursor.Row; i++ {
		a.buf[i].Truncate(0)
	}
	a.buf[cursor.Row].Erase(SectionStartTo(cursor.Col))
}

// Erase implements ED 2/3; alt screens have no scrollback to additionally
// clear, so includeScrollback has no extra effect here.
func (a *AltScreen) Erase(size Size, includeScrollback bool) {
	top, bottom := a.erasableRows(size)
	for i := top; i < bottom; i++ {
		a.buf[i].Truncate(0)
	}
}

// InsertLines implements IL within the active scroll region.
func (a *AltScreen) InsertLines(size Size, cursor Position, n int) {
	top, bottom := a.erasableRows(size)
	if cursor.Row < top || cursor.Row >= bottom {
		return
	}
	kept := append([]Line(nil), a.buf[cursor.Row:bottom]...)
	for row := cursor.Row; row < bottom; row++ {
		idx := row - cursor.Row
		if idx < n {
			a.buf[row] = NewLine()
			continue
		}
		a.buf[row] = kept[idx-n]
	}
}

// DeleteLines implements DL within the active scroll region.
func (a *AltScreen) DeleteLines(size Size, cursor Position, n int) {
	top, bottom := a.erasableRows(size)
	if cursor.Row < top || cursor.Row >= bottom {
		return
	}
	n = min(n, bottom-cursor.Row)
	kept := append([]Line(nil), a.buf[cursor.Row+n:bottom]...)
	for row := cursor.Row; row < bottom; row++ {
		idx := row - cursor.Row
		if idx < len(kept) {
			a.buf[row] = kept[idx]
			continue
		}
		a.buf[row] = NewLine()
	}
}
