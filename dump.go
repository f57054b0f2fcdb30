package headlessterm

import (
	"sort"
	"strconv"
)

// ContentRegionKind discriminates the three ContentRegion variants.
type ContentRegionKind uint8

const (
	// RegionAllKind selects the full retained scrollback plus the visible
	// screen.
	RegionAllKind ContentRegionKind = iota
	// RegionScreenKind selects only the currently visible lines.
	RegionScreenKind
	// RegionBottomLinesKind selects the bottom N lines of retained
	// scrollback, independent of the current scroll offset.
	RegionBottomLinesKind
)

// ContentRegion selects what Contents/Dump should emit.
type ContentRegion struct {
	Kind ContentRegionKind
	N    int
}

// RegionAll selects scrollback plus the visible screen.
func RegionAll() ContentRegion { return ContentRegion{Kind: RegionAllKind} }

// RegionScreen selects only the visible lines.
func RegionScreen() ContentRegion { return ContentRegion{Kind: RegionScreenKind} }

// RegionBottomLines selects the bottom n lines of retained scrollback.
func RegionBottomLines(n int) ContentRegion {
	return ContentRegion{Kind: RegionBottomLinesKind, N: n}
}

// Dump serialises t's state into a byte sequence that, fed to a fresh
// conforming terminal, reproduces the visible display and restores mode
// such that subsequent writes inherit the correct cursor attrs. It emits,
// in order: SGR reset, home and clear; the selected lines separated by
// CRLF; the scroll region if one is set; the scroll offset (RegionAll
// only); the cursor position; SGR reset plus the cursor attrs; then the
// title, working-directory and palette OSCs.
func (t *Terminal) Dump(region ContentRegion) []byte {
	var buf []byte
	screen := t.activeScreen()

	buf = append(buf, CSI('m').AppendTo(nil)...)
	buf = append(buf, CSI('H', 1, 1).AppendTo(nil)...)
	buf = append(buf, CSI('J').AppendTo(nil)...)

	lines := t.selectLines(screen, region)
	for i, line := range lines {
		buf = appendLineWithAttrs(buf, line)
		if i != len(lines)-1 {
			buf = append(buf, '\r', '\n')
		}
	}

	if sr := screen.ScrollRegion(); sr.Kind == ScrollRegionWindow {
		buf = append(buf, CSI('r', uint16(sr.Top+1), uint16(sr.Bottom)).AppendTo(nil)...)
	}

	if offset := screen.ScrollOffset(); offset > 0 && region.Kind == RegionAllKind {
		buf = append(buf, CSI('S', uint16(offset)).AppendTo(nil)...)
	}

	cursor := screen.Cursor()
	buf = append(buf, CSI('H', uint16(cursor.Row+1), uint16(cursor.Col+1)).AppendTo(nil)...)

	buf = append(buf, CSI('m').AppendTo(nil)...)
	for _, code := range Default().TransitionTo(t.cursorAttrs) {
		buf = append(buf, code.AppendTo(nil)...)
	}

	buf = appendTitleOSC(buf, t)
	buf = appendWorkingDirOSC(buf, t)
	buf = appendPaletteOSC(buf, t)

	return buf
}

func (t *Terminal) selectLines(screen *Screen, region ContentRegion) []Line {
	switch region.Kind {
	case RegionScreenKind:
		return screen.VisibleLines()
	case RegionBottomLinesKind:
		return screen.BottomLines(region.N)
	default:
		if screen.IsAlt() {
			return screen.VisibleLines()
		}
		return screen.AllRetainedLines()
	}
}

// appendLineWithAttrs serialises one line's cells under per-line attr reset
// semantics: the line starts at default attrs, emits minimal SGR
// transitions between cells, and resets to default before the line ends.
func appendLineWithAttrs(buf []byte, line Line) []byte {
	current := Default()
	for _, cell := range line.cells {
		if cell.IsWidePadding() {
			continue
		}
		attrs := cell.Attrs()
		if !current.Equal(attrs) {
			for _, code := range current.TransitionTo(attrs) {
				buf = code.AppendTo(buf)
			}
			current = attrs
		}
		buf = cell.AppendTo(buf)
	}
	if !current.IsDefault() {
		for _, code := range current.TransitionTo(Default()) {
			buf = code.AppendTo(buf)
		}
	}
	return buf
}

func appendTitleOSC(buf []byte, t *Terminal) []byte {
	switch {
	case t.titleSet && t.iconSet && string(t.title) == string(t.iconName):
		buf = append(buf, 0x1b, ']')
		buf = append(buf, "0;"...)
		buf = append(buf, t.title...)
		buf = append(buf, 0x1b, '\\')
	default:
		if t.iconSet {
			buf = append(buf, 0x1b, ']')
			buf = append(buf, "1;"...)
			buf = append(buf, t.iconName...)
			buf = append(buf, 0x1b, '\\')
		}
		if t.titleSet {
			buf = append(buf, 0x1b, ']')
			buf = append(buf, "2;"...)
			buf = append(buf, t.title...)
			buf = append(buf, 0x1b, '\\')
		}
	}
	return buf
}

func appendWorkingDirOSC(buf []byte, t *Terminal) []byte {
	if !t.workingDirSet {
		return buf
	}
	buf = append(buf, 0x1b, ']')
	buf = append(buf, "7;"...)
	buf = append(buf, t.workingDirHost...)
	buf = append(buf, ';')
	buf = append(buf, t.workingDirDir...)
	buf = append(buf, 0x1b, '\\')
	return buf
}

func appendPaletteOSC(buf []byte, t *Terminal) []byte {
	indices := make([]int, 0, len(t.paletteOverrides))
	for i := range t.paletteOverrides {
		indices = append(indices, int(i))
	}
	sort.Ints(indices)
	for _, i := range indices {
		buf = append(buf, 0x1b, ']')
		buf = append(buf, "4;"...)
		buf = append(buf, strconv.Itoa(i)...)
		buf = append(buf, ';')
		buf = append(buf, t.paletteOverrides[uint8(i)]...)
		buf = append(buf, 0x1b, '\\')
	}
	return buf
}
