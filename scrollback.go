package headlessterm

import "fmt"

// Scrollback is a bounded deque of Lines backing the primary screen. It
// stores the bottom (most recent) line at the front of its deque, since new
// output prepends cheaply while the window scrolls; AltScreen stores the
// opposite orientation because it writes at a fixed position instead.
type Scrollback struct {
	buf          *deque[Line]
	maxLines     int
	scrollOffset int
	scrollRegion ScrollRegion
	originMode   OriginMode
}

// NewScrollback returns an empty scrollback holding up to maxLines lines.
func NewScrollback(maxLines int) *Scrollback {
	return &Scrollback{buf: newDeque[Line](), maxLines: maxLines, scrollRegion: TrackSizeRegion()}
}

// MaxLines returns the configured scrollback capacity.
func (s *Scrollback) MaxLines() int { return s.maxLines }

// SetMaxLines changes the scrollback capacity, dropping the oldest lines
// (from the back of the deque) if it shrinks below the current length.
func (s *Scrollback) SetMaxLines(n int) {
	s.buf.Truncate(n)
	s.maxLines = n
}

// ScrollRegion returns the active scroll region.
func (s *Scrollback) ScrollRegion() ScrollRegion { return s.scrollRegion }

// SetScrollRegion sets the active scroll region.
func (s *Scrollback) SetScrollRegion(r ScrollRegion) { s.scrollRegion = r }

// OriginMode returns the active origin mode.
func (s *Scrollback) OriginMode() OriginMode { return s.originMode }

// SetOriginMode sets the active origin mode.
func (s *Scrollback) SetOriginMode(m OriginMode) { s.originMode = m }

// ScrollOffset returns how many lines the view has scrolled up from the
// bottom.
func (s *Scrollback) ScrollOffset() int { return s.scrollOffset }

// ScrollUp increases the scroll offset by n, clamped to maxLines.
func (s *Scrollback) ScrollUp(n int) {
	s.scrollOffset += n
	if s.scrollOffset > s.maxLines {
		s.scrollOffset = s.maxLines
	}
}

// ScrollDown decreases the scroll offset by n, saturating at 0.
func (s *Scrollback) ScrollDown(n int) {
	s.scrollOffset -= n
	if s.scrollOffset < 0 {
		s.scrollOffset = 0
	}
}

// gridStart returns the deque index one past the topmost in-view line.
func (s *Scrollback) gridStart(size Size) int {
	limit := size.Height + s.scrollOffset
	if s.buf.Len() < limit {
		return s.buf.Len()
	}
	return limit
}

// GetLine returns the line at visible row, or (zero, false) if row has no
// backing storage yet.
func (s *Scrollback) GetLine(size Size, row int) (Line, bool) {
	start := s.gridStart(size)
	if row >= start {
		return Line{}, false
	}
	return s.buf.At(start - 1 - row), true
}

func (s *Scrollback) setLine(size Size, row int, line Line) {
	start := s.gridStart(size)
	if row >= start {
		return
	}
	s.buf.Set(start-1-row, line)
}

func (s *Scrollback) addLine(line Line) {
	s.buf.PushFront(line)
	s.buf.Truncate(s.maxLines)
}

// advanceRow moves row down by one, scrolling when it would cross the
// bottom margin: within the whole window this grows retained history by
// one line, preserving what scrolls off; within an explicit scroll region
// (origin mode active) it discards the region's top line instead, matching
// the erase/IL/DL scroll-region gate in erasableRows.
func (s *Scrollback) advanceRow(size Size, row int) int {
	top, bottom := s.erasableRows(size)
	if row < bottom-1 {
		return row + 1
	}
	if s.originMode == OriginModeScrollRegion && s.scrollRegion.Kind == ScrollRegionWindow {
		s.DeleteLines(size, Position{Row: top}, 1)
		return row
	}
	s.addLine(NewLine())
	return row
}

// WriteAtCursor writes cell at cursor, handling wrap and scrollback growth,
// and returns the new cursor position.
func (s *Scrollback) WriteAtCursor(size Size, cursor Position, cell Cell) (Position, error) {
	if size.Width < 1 {
		return cursor, fmt.Errorf("headlessterm: cannot write to zero-width terminal")
	}
	s.scrollOffset = 0

	// A cursor below the window scrolls it: lines are added until the row
	// has storage (always at least one), and the cursor lands on the bottom row.
	if cursor.Row >= size.Height {
		grow := max(1, cursor.Row+1-s.buf.Len())
		for i := 0; i < grow; i++ {
			s.addLine(NewLine())
		}
		cursor.Row = size.Height - 1
	}

	for s.buf.Len() < cursor.Row+1 {
		s.addLine(NewLine())
	}

	if cursor.Col >= size.Width {
		line, ok := s.GetLine(size, cursor.Row)
		if ok {
			line.SetWrapped(true)
			s.setLine(size, cursor.Row, line)
		}
		cursor.Col = 0
		cursor.Row = s.advanceRow(size, cursor.Row)
	}

	if cell.Width() == 2 && cursor.Col+1 >= size.Width {
		line, ok := s.GetLine(size, cursor.Row)
		if ok {
			line.SetWrapped(true)
			s.setLine(size, cursor.Row, line)
		}
		cursor.Col = 0
		cursor.Row = s.advanceRow(size, cursor.Row)
	}

	for s.buf.Len() < cursor.Row+1 {
		s.addLine(NewLine())
	}

	line, _ := s.GetLine(size, cursor.Row)
	if err := line.SetCell(size.Width, cursor.Col, cell); err != nil {
		return cursor, err
	}
	cursor.Col++

	if cell.Width() == 2 {
		if err := line.SetCell(size.Width, cursor.Col, WidePaddingCell(cell.Attrs())); err != nil {
			return cursor, err
		}
		cursor.Col++
	}
	s.setLine(size, cursor.Row, line)

	return cursor, nil
}

// Reflow re-chunks every logical (wrap-joined) line to newWidth, preserving
// content across wraps. It drains the deque from its back (the oldest,
// top-most line) to its front (the newest, bottom-most line), accumulating
// wrapped runs into one logical line before re-splitting.
func (s *Scrollback) Reflow(newWidth int) {
	newBuf := newDeque[Line]()
	var logical []Line

	for {
		gridLine, ok := s.buf.PopBack()
		if !ok {
			break
		}
		isWrapped := gridLine.IsWrapped()
		logical = append(logical, gridLine)

		if isWrapped {
			continue
		}

		var cells []Cell
		for _, l := range logical {
			cells = append(cells, l.cells...)
		}
		logical = logical[:0]

		if len(cells) == 0 {
			newBuf.PushFront(NewLine())
			continue
		}

		for off := 0; off < len(cells); off += newWidth {
			end := off + newWidth
			if end > len(cells) {
				end = len(cells)
			}
			chunk := Line{cells: append([]Cell(nil), cells[off:end]...)}
			chunk.SetWrapped(end < len(cells))
			newBuf.PushFront(chunk)
		}
	}

	s.buf = newBuf
}

// erasableRows resolves the affected row range for erase operations:
// honouring origin mode + scroll region when both are in effect, else the
// whole window.
func (s *Scrollback) erasableRows(size Size) (top, bottom int) {
	if s.originMode == OriginModeScrollRegion && s.scrollRegion.Kind == ScrollRegionWindow {
		return s.scrollRegion.Bounds(size.Height)
	}
	return 0, size.Height
}

// EraseToEnd erases from cursor to the bottom of the window, or of the
// scroll region when erasableRows limits it (ED 0).
func (s *Scrollback) EraseToEnd(size Size, cursor Position) {
	line, ok := s.GetLine(size, cursor.Row)
	if ok {
		line.Erase(SectionToEnd(cursor.Col))
		s.setLine(size, cursor.Row, line)
	}
	_, bottom := s.erasableRows(size)
	for row := cursor.Row + 1; row < bottom; row++ {
		s.setLine(size, row, NewLine())
	}
}

// EraseFromStart erases from the top of the window, or of the scroll
// region when erasableRows limits it, to cursor (ED 1).
func (s *Scrollback) EraseFromStart(size Size, cursor Position) {
	top, _ := s.erasableRows(size)
	for row := top; row < cursor.Row; row++ {
		s.setLine(size, row, NewLine())
	}
	line, ok := s.GetLine(size, cursor.Row)
	if ok {
		line.Erase(SectionStartTo(cursor.Col))
		s.setLine(size, cursor.Row, line)
	}
}

// Erase clears the visible window, or only the scroll region when
// erasableRows limits it (ED 2), and additionally the retained scrollback
// history when includeScrollback is set (ED 3).
func (s *Scrollback) Erase(size Size, includeScrollback bool) {
	top, bottom := s.erasableRows(size)
	for row := top; row < bottom; row++ {
		s.setLine(size, row, NewLine())
	}
	if includeScrollback {
		s.buf.Truncate(s.gridStart(size))
	}
}

// InsertLines implements IL: if cursor.Row lies inside the active scroll
// region, shifts the rows from cursor.Row to the region's bottom down by n,
// dropping the rows pushed past the bottom and filling the vacated rows
// with empty lines. Outside the region it does nothing.
func (s *Scrollback) InsertLines(size Size, cursor Position, n int) {
	top, bottom := s.erasableRows(size)
	if cursor.Row < top || cursor.Row >= bottom {
		return
	}

	var kept []Line
	for row := cursor.Row; row < bottom; row++ {
		l, ok := s.GetLine(size, row)
		if !ok {
			l = NewLine()
		}
		kept = append(kept, l)
	}

	for row := cursor.Row; row < bottom; row++ {
		idx := row - cursor.Row
		if idx < n {
			s.setLine(size, row, NewLine())
			continue
		}
		s.setLine(size, row, kept[idx-n])
	}
}

// DeleteLines implements DL, symmetric to InsertLines.
func (s *Scrollback) DeleteLines(size Size, cursor Position, n int) {
	top, bottom := s.erasableRows(size)
	if cursor.Row < top || cursor.Row >= bottom {
		return
	}
	n = min(n, bottom-cursor.Row)

	var kept []Line
	for row := cursor.Row + n; row < bottom; row++ {
		l, ok := s.GetLine(size, row)
		if !ok {
			l = NewLine()
		}
		kept = append(kept, l)
	}

	for row := cursor.Row; row < bottom; row++ {
		idx := row - cursor.Row
		if idx < len(kept) {
			s.setLine(size, row, kept[idx])
			continue
		}
		s.setLine(size, row, NewLine())
	}
}

// GetLineMut applies edit to the line at row, allocating the backing line
// if missing, then writes the edited line back.
func (s *Scrollback) GetLineMut(size Size, row int, edit func(*Line)) {
	line, ok := s.GetLine(size, row)
	if !ok {
		for s.buf.Len() < row+1 {
			s.addLine(NewLine())
		}
		line, _ = s.GetLine(size, row)
	}
	edit(&line)
	s.setLine(size, row, line)
}

// VisibleLines returns the in-view lines from the top of the window to the
// bottom, bottom-most line last. Rows with no backing storage yet are
// omitted, so fewer than size.Height lines may be returned.
func (s *Scrollback) VisibleLines(size Size) []Line {
	start := s.gridStart(size)
	n := min(start, size.Height)
	lines := make([]Line, n)
	for row := 0; row < n; row++ {
		lines[row], _ = s.GetLine(size, row)
	}
	return lines
}

// BottomLines returns the bottom-most n lines of retained scrollback,
// top-to-bottom, ignoring the current scroll offset.
func (s *Scrollback) BottomLines(n int) []Line {
	count := min(n, s.buf.Len())
	lines := make([]Line, count)
	for i := 0; i < count; i++ {
		lines[count-1-i] = s.buf.At(i)
	}
	return lines
}

// AllLines returns every retained line, top (oldest) to bottom (newest).
func (s *Scrollback) AllLines() []Line {
	return s.BottomLines(s.buf.Len())
}
