package headlessterm

// screenKind discriminates which grid variant a Screen currently wraps.
type screenKind uint8

const (
	screenScrollback screenKind = iota
	screenAlt
)

// Screen is a façade polymorphic over Scrollback and AltScreen. It owns the
// cursor and saved-cursor state that is common to both, and dispatches
// editing operations to whichever grid variant is active.
type Screen struct {
	kind        screenKind
	scrollback  *Scrollback
	altscreen   *AltScreen
	size        Size
	cursor      Position
	savedCursor SavedCursor
}

// NewScrollbackScreen returns a Screen backed by a Scrollback, clamping
// scrollbackLines up to size.Height.
func NewScrollbackScreen(scrollbackLines int, size Size) *Screen {
	if scrollbackLines < size.Height {
		scrollbackLines = size.Height
	}
	return &Screen{kind: screenScrollback, scrollback: NewScrollback(scrollbackLines), size: size}
}

// NewAltScreenScreen returns a Screen backed by an AltScreen.
func NewAltScreenScreen(size Size) *Screen {
	return &Screen{kind: screenAlt, altscreen: NewAltScreen(size), size: size}
}

func (s *Screen) IsAlt() bool { return s.kind == screenAlt }

// Size returns the screen's window dimensions.
func (s *Screen) Size() Size { return s.size }

// Cursor returns the current cursor position.
func (s *Screen) Cursor() Position { return s.cursor }

// SetCursor sets the cursor position without clamping.
func (s *Screen) SetCursor(p Position) { s.cursor = p }

// SavedCursor returns the saved-cursor slot.
func (s *Screen) SavedCursor() SavedCursor { return s.savedCursor }

// SaveCursor writes pos/attrs into the saved-cursor slot (ESC 7 / CSI s).
func (s *Screen) SaveCursor(pos Position, attrs Attrs) {
	s.savedCursor = SavedCursor{Pos: pos, Attrs: attrs}
}

// ScrollRegion returns the active grid's scroll region.
func (s *Screen) ScrollRegion() ScrollRegion {
	if s.kind == screenScrollback {
		return s.scrollback.ScrollRegion()
	}
	return s.altscreen.ScrollRegion()
}

// SetScrollRegion sets the active grid's scroll region.
func (s *Screen) SetScrollRegion(r ScrollRegion) {
	if s.kind == screenScrollback {
		s.scrollback.SetScrollRegion(r)
	} else {
		s.altscreen.SetScrollRegion(r)
	}
}

// OriginMode returns the active grid's origin mode.
func (s *Screen) OriginMode() OriginMode {
	if s.kind == screenScrollback {
		return s.scrollback.OriginMode()
	}
	return s.altscreen.OriginMode()
}

// SetOriginMode sets the active grid's origin mode.
func (s *Screen) SetOriginMode(m OriginMode) {
	if s.kind == screenScrollback {
		s.scrollback.SetOriginMode(m)
	} else {
		s.altscreen.SetOriginMode(m)
	}
}

// Clamp confines the cursor to the window, honouring origin mode: under
// OriginModeScrollRegion with an active Window region, the cursor is
// additionally clamped into the region's row range.
func (s *Screen) Clamp() {
	s.cursor = s.cursor.Clamp(s.size)
	if s.OriginMode() == OriginModeScrollRegion {
		top, bottom := s.ScrollRegion().Bounds(s.size.Height)
		if s.cursor.Row < top {
			s.cursor.Row = top
		}
		if s.cursor.Row > bottom-1 {
			s.cursor.Row = bottom - 1
		}
	}
}

// LineFeed implements LF: moves the cursor down one row, scrolling the
// active region when the cursor is already at the bottom margin.
func (s *Screen) LineFeed() {
	if s.kind == screenScrollback {
		s.cursor.Row = s.scrollback.advanceRow(s.size, s.cursor.Row)
	} else {
		s.cursor.Row = s.altscreen.advanceRow(s.size, s.cursor.Row)
	}
}

// WriteAtCursor writes cell at the cursor, advancing it.
func (s *Screen) WriteAtCursor(cell Cell) error {
	var (
		next Position
		err  error
	)
	if s.kind == screenScrollback {
		next, err = s.scrollback.WriteAtCursor(s.size, s.cursor, cell)
	} else {
		next, err = s.altscreen.WriteAtCursor(s.size, s.cursor, cell)
	}
	if err != nil {
		return err
	}
	s.cursor = next
	return nil
}

// GetCell returns the cell at the given visible position.
func (s *Screen) GetCell(pos Position) Cell {
	if s.kind == screenScrollback {
		line, ok := s.scrollback.GetLine(s.size, pos.Row)
		if !ok {
			return emptyCell
		}
		return line.GetCell(s.size.Width, pos.Col)
	}
	return s.altscreen.GetLine(pos.Row).GetCell(s.size.Width, pos.Col)
}

// SetCellAt writes cell at the given absolute visible position, bypassing
// cursor advance. Used to attach a combining mark to an already-written
// cell.
func (s *Screen) SetCellAt(pos Position, cell Cell) {
	s.editLine(pos.Row, func(l *Line) { l.SetCell(s.size.Width, pos.Col, cell) })
}

// ResetScrollOffset snaps the scrollback view back to the bottom; a no-op
// on an alt screen.
func (s *Screen) ResetScrollOffset() {
	if s.kind == screenScrollback {
		s.scrollback.scrollOffset = 0
	}
}

// EraseToEnd implements ED 0.
func (s *Screen) EraseToEnd() {
	if s.kind == screenScrollback {
		s.scrollback.EraseToEnd(s.size, s.cursor)
	} else {
		s.altscreen.EraseToEnd(s.size, s.cursor)
	}
}

// EraseFromStart implements ED 1.
func (s *Screen) EraseFromStart() {
	if s.kind == screenScrollback {
		s.scrollback.EraseFromStart(s.size, s.cursor)
	} else {
		s.altscreen.EraseFromStart(s.size, s.cursor)
	}
}

// Erase implements ED 2/3.
func (s *Screen) Erase(includeScrollback bool) {
	if s.kind == screenScrollback {
		s.scrollback.Erase(s.size, includeScrollback)
	} else {
		s.altscreen.Erase(s.size, includeScrollback)
	}
}

// EraseToEndOfLine implements EL 0.
func (s *Screen) EraseToEndOfLine() {
	s.editLine(s.cursor.Row, func(l *Line) { l.Erase(SectionToEnd(s.cursor.Col)) })
}

// EraseToStartOfLine implements EL 1.
func (s *Screen) EraseToStartOfLine() {
	s.editLine(s.cursor.Row, func(l *Line) { l.Erase(SectionStartTo(s.cursor.Col)) })
}

// EraseLine implements EL 2.
func (s *Screen) EraseLine() {
	s.editLine(s.cursor.Row, func(l *Line) { l.Erase(SectionWhole()) })
}

// InsertCharacter implements ICH at the cursor.
func (s *Screen) InsertCharacter(n int) {
	s.editLine(s.cursor.Row, func(l *Line) { l.InsertCharacter(s.size.Width, s.cursor.Col, n) })
}

// DeleteCharacter implements DCH at the cursor, backfilling with attrs.
func (s *Screen) DeleteCharacter(attrs Attrs, n int) {
	s.editLine(s.cursor.Row, func(l *Line) { l.DeleteCharacter(s.size.Width, s.cursor.Col, attrs, n) })
}

func (s *Screen) editLine(row int, edit func(*Line)) {
	if s.kind == screenScrollback {
		s.scrollback.GetLineMut(s.size, row, edit)
	} else {
		s.altscreen.GetLineMut(row, edit)
	}
}

// InsertLines implements IL.
func (s *Screen) InsertLines(n int) {
	if s.kind == screenScrollback {
		s.scrollback.InsertLines(s.size, s.cursor, n)
	} else {
		s.altscreen.InsertLines(s.size, s.cursor, n)
	}
}

// DeleteLines implements DL.
func (s *Screen) DeleteLines(n int) {
	if s.kind == screenScrollback {
		s.scrollback.DeleteLines(s.size, s.cursor, n)
	} else {
		s.altscreen.DeleteLines(s.size, s.cursor, n)
	}
}

// Fill overwrites every cell of the active screen with r at default attrs,
// used by DECALN's alignment test pattern.
func (s *Screen) Fill(r rune) {
	cell := NewCell(r, Default())
	for row := 0; row < s.size.Height; row++ {
		s.editLine(row, func(l *Line) {
			for col := 0; col < s.size.Width; col++ {
				l.SetCell(s.size.Width, col, cell)
			}
		})
	}
}

// Resize reflows (scrollback) or trims/extends (altscreen) to newSize, then
// clamps the cursor and saved cursor.
func (s *Screen) Resize(newSize Size) {
	if s.kind == screenScrollback {
		if newSize.Width != s.size.Width {
			s.scrollback.Reflow(newSize.Width)
		}
	} else {
		s.altscreen.Resize(newSize)
	}
	s.size = newSize
	s.Clamp()
	s.savedCursor.Pos = s.savedCursor.Pos.Clamp(newSize)
}

// ScrollbackLines returns the scrollback capacity, or (0, false) for an
// alt screen.
func (s *Screen) ScrollbackLines() (int, bool) {
	if s.kind != screenScrollback {
		return 0, false
	}
	return s.scrollback.MaxLines(), true
}

// SetScrollbackLines sets the scrollback capacity; a no-op on an alt
// screen.
func (s *Screen) SetScrollbackLines(n int) {
	if s.kind == screenScrollback {
		s.scrollback.SetMaxLines(n)
	}
}

// ScrollUp increases the scrollback scroll offset; a no-op on an alt
// screen.
func (s *Screen) ScrollUp(n int) {
	if s.kind == screenScrollback {
		s.scrollback.ScrollUp(n)
	}
}

// ScrollDown decreases the scrollback scroll offset; a no-op on an alt
// screen.
func (s *Screen) ScrollDown(n int) {
	if s.kind == screenScrollback {
		s.scrollback.ScrollDown(n)
	}
}

// ScrollOffset returns the scrollback scroll offset, or 0 on an alt screen.
func (s *Screen) ScrollOffset() int {
	if s.kind == screenScrollback {
		return s.scrollback.ScrollOffset()
	}
	return 0
}

// ResetAlt clobbers the alt screen's buffer to fresh empty lines (used on
// entering the alt screen). No-op on a scrollback screen.
func (s *Screen) ResetAlt() {
	if s.kind == screenAlt {
		s.altscreen.Reset(s.size)
	}
}

// VisibleLines returns the in-view lines top-to-bottom.
func (s *Screen) VisibleLines() []Line {
	if s.kind == screenScrollback {
		return s.scrollback.VisibleLines(s.size)
	}
	lines := make([]Line, s.size.Height)
	for row := 0; row < s.size.Height; row++ {
		lines[row] = s.altscreen.GetLine(row)
	}
	return lines
}

// BottomLines returns the bottom-most n lines of retained scrollback (the
// alt screen has none to retain beyond what's visible).
func (s *Screen) BottomLines(n int) []Line {
	if s.kind == screenScrollback {
		return s.scrollback.BottomLines(n)
	}
	return s.VisibleLines()
}

// AllRetainedLines returns every retained scrollback line, top to bottom.
// Valid only for a scrollback-backed screen.
func (s *Screen) AllRetainedLines() []Line {
	if s.kind == screenScrollback {
		return s.scrollback.AllLines()
	}
	return s.VisibleLines()
}
