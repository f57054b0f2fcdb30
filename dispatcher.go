package headlessterm

import (
	govte "github.com/danielgatis/go-vte/vte"
)

// Ensure Terminal implements the go-vte Performer contract: the raw,
// byte-level callback shape (print/execute/csi_dispatch/osc_dispatch/
// esc_dispatch, plus the DCS hook/put/unhook trio this library leaves
// unimplemented) that the parser drives one input byte at a time.
var _ govte.Performer = (*Terminal)(nil)

// Print is called by the parser for each decoded, non-control rune.
func (t *Terminal) Print(c rune) {
	screen := t.activeScreen()
	screen.ResetScrollOffset()

	if runeWidth(c) <= 0 {
		t.appendCombining(screen, c)
		return
	}

	cell := NewCell(c, t.cursorAttrs)
	if err := screen.WriteAtCursor(cell); err != nil {
		t.warn("write_at_cursor failed", "error", err)
	}
}

// appendCombining attaches a zero-width rune to the grapheme cluster of the
// cell immediately to the left of the cursor, per the invariant that
// zero-width characters belong to the preceding cell.
func (t *Terminal) appendCombining(screen *Screen, c rune) {
	cursor := screen.Cursor()
	if cursor.Col == 0 {
		t.warn("dropped zero-width rune with no preceding cell", "rune", c)
		return
	}
	pos := Position{Row: cursor.Row, Col: cursor.Col - 1}
	cell := screen.GetCell(pos)
	if cell.IsEmpty() {
		t.warn("dropped zero-width rune with no preceding cell", "rune", c)
		return
	}
	cell.AddChar(c)
	screen.SetCellAt(pos, cell)
}

// Execute handles C0/C1 control bytes outside of CSI/OSC/ESC framing.
func (t *Terminal) Execute(b byte) {
	screen := t.activeScreen()
	switch b {
	case '\n':
		screen.LineFeed()
	case '\r':
		cursor := screen.Cursor()
		cursor.Col = 0
		screen.SetCursor(cursor)
	default:
		t.warn("ignored control byte", "byte", b)
	}
}

// Hook, Put, and Unhook implement the DCS (Device Control String) leg of
// the Performer contract. DCS-hooked payloads are out of scope for this
// library, so these log and drop rather than buffer a payload nobody
// consumes.
func (t *Terminal) Hook(params [][]uint16, intermediates []byte, ignore bool, action byte) {
	t.warn("ignored DCS hook", "action", action)
}

func (t *Terminal) Put(b byte) {}

func (t *Terminal) Unhook() {}

// CsiDispatch handles a complete CSI sequence.
func (t *Terminal) CsiDispatch(params [][]uint16, intermediates []byte, ignore bool, action byte) {
	if ignore {
		t.warn("ignored malformed CSI sequence", "action", action)
		return
	}

	screen := t.activeScreen()
	hasQuestionMark := len(intermediates) == 1 && intermediates[0] == '?'

	switch action {
	case 'A':
		t.moveCursor(screen, -csiParam(params, 0, 1), 0, false)
	case 'B':
		t.moveCursor(screen, csiParam(params, 0, 1), 0, false)
	case 'C':
		t.moveCursor(screen, 0, csiParam(params, 0, 1), false)
	case 'D':
		t.moveCursor(screen, 0, -csiParam(params, 0, 1), false)
	case 'E':
		t.moveCursor(screen, csiParam(params, 0, 1), 0, true)
	case 'F':
		t.moveCursor(screen, -csiParam(params, 0, 1), 0, true)
	case 'G':
		cursor := screen.Cursor()
		cursor.Col = csiParam(params, 0, 1) - 1
		screen.SetCursor(cursor)
		screen.Clamp()
	case 'H':
		t.cursorPosition(screen, params)
	case 'J':
		t.eraseDisplay(screen, csiParam(params, 0, 0))
	case 'K':
		t.eraseLine(screen, csiParam(params, 0, 0))
	case 'L':
		screen.InsertLines(csiParam(params, 0, 1))
	case 'M':
		screen.DeleteLines(csiParam(params, 0, 1))
	case 'S':
		screen.ScrollUp(csiParam(params, 0, 1))
	case 'T':
		screen.ScrollDown(csiParam(params, 0, 1))
	case '@':
		screen.InsertCharacter(csiParam(params, 0, 1))
	case 'P':
		screen.DeleteCharacter(t.cursorAttrs, csiParam(params, 0, 1))
	case 's':
		screen.SaveCursor(screen.Cursor(), t.cursorAttrs)
	case 'u':
		t.restoreCursor(screen)
	case 'm':
		t.sgrDispatch(params)
	case 'r':
		t.setScrollRegion(screen, params)
	case 'h':
		t.setMode(screen, params, hasQuestionMark, true)
	case 'l':
		t.setMode(screen, params, hasQuestionMark, false)
	case 'n':
		// DSR: the real downstream terminal answers; this library never
		// owns the response channel.
	default:
		t.warn("unknown CSI action", "action", string(action))
	}
}

func csiParam(params [][]uint16, i int, def uint16) int {
	if i >= len(params) || len(params[i]) == 0 || params[i][0] == 0 {
		return int(def)
	}
	return int(params[i][0])
}

func (t *Terminal) moveCursor(screen *Screen, rows, cols int, resetCol bool) {
	cursor := screen.Cursor()
	cursor.Row += rows
	cursor.Col += cols
	if resetCol {
		cursor.Col = 0
	}
	screen.SetCursor(cursor)
	screen.Clamp()
}

func (t *Terminal) cursorPosition(screen *Screen, params [][]uint16) {
	row := csiParam(params, 0, 1) - 1
	col := csiParam(params, 1, 1) - 1
	if screen.OriginMode() == OriginModeScrollRegion {
		top, _ := screen.ScrollRegion().Bounds(screen.Size().Height)
		row += top
	}
	screen.SetCursor(Position{Row: row, Col: col})
	screen.Clamp()
}

func (t *Terminal) eraseDisplay(screen *Screen, mode int) {
	switch mode {
	case 0:
		screen.EraseToEnd()
	case 1:
		screen.EraseFromStart()
	case 2:
		screen.Erase(false)
	case 3:
		screen.Erase(true)
	default:
		t.warn("unknown ED mode", "mode", mode)
	}
}

func (t *Terminal) eraseLine(screen *Screen, mode int) {
	switch mode {
	case 0:
		screen.EraseToEndOfLine()
	case 1:
		screen.EraseToStartOfLine()
	case 2:
		screen.EraseLine()
	default:
		t.warn("unknown EL mode", "mode", mode)
	}
}

func (t *Terminal) restoreCursor(screen *Screen) {
	saved := screen.SavedCursor()
	screen.SetCursor(saved.Pos)
	t.cursorAttrs = saved.Attrs
	screen.Clamp()
}

func (t *Terminal) setScrollRegion(screen *Screen, params [][]uint16) {
	height := screen.Size().Height
	switch {
	case len(params) == 0:
		screen.SetScrollRegion(TrackSizeRegion())
	case len(params) == 1:
		top := csiParam(params, 0, 1) - 1
		screen.SetScrollRegion(WindowRegion(top, height))
	default:
		top := csiParam(params, 0, 1) - 1
		bottom := csiParam(params, 1, uint16(height))
		screen.SetScrollRegion(WindowRegion(top, bottom))
	}
}

func (t *Terminal) setMode(screen *Screen, params [][]uint16, private, enable bool) {
	if !private {
		t.warn("unsupported non-private mode", "enable", enable)
		return
	}
	for _, group := range params {
		if len(group) == 0 {
			continue
		}
		switch group[0] {
		case 1049:
			if enable {
				t.enterAltScreen()
			} else {
				t.exitAltScreen()
			}
		case 6:
			if enable {
				screen.SetOriginMode(OriginModeScrollRegion)
			} else {
				screen.SetOriginMode(OriginModeTerm)
			}
			screen.Clamp()
		default:
			t.warn("unknown private mode", "mode", group[0])
		}
	}
}

// sgrDispatch applies a run of SGR codes (one per parameter group) to the
// dispatcher's current cursor attrs.
func (t *Terminal) sgrDispatch(params [][]uint16) {
	if len(params) == 0 {
		t.cursorAttrs = Default()
		return
	}
	for i := 0; i < len(params); i++ {
		code := csiParam(params, i, 0)
		switch {
		case code == 0:
			t.cursorAttrs = Default()
		case code == 1:
			t.cursorAttrs.Weight = WeightBold
		case code == 2:
			t.cursorAttrs.Weight = WeightFaint
		case code == 22:
			t.cursorAttrs.Weight = WeightNone
		case code == 3:
			t.cursorAttrs.Italic = true
		case code == 23:
			t.cursorAttrs.Italic = false
		case code == 4:
			t.cursorAttrs.Underline = UnderlineSingle
		case code == 21:
			t.cursorAttrs.Underline = UnderlineDouble
		case code == 24:
			t.cursorAttrs.Underline = UnderlineNone
		case code == 5:
			t.cursorAttrs.Blink = BlinkSlow
		case code == 6:
			t.cursorAttrs.Blink = BlinkRapid
		case code == 25:
			t.cursorAttrs.Blink = BlinkNone
		case code == 7:
			t.cursorAttrs.Inverse = true
		case code == 27:
			t.cursorAttrs.Inverse = false
		case code == 8:
			t.cursorAttrs.Conceal = true
		case code == 28:
			t.cursorAttrs.Conceal = false
		case code == 9:
			t.cursorAttrs.Strikethrough = true
		case code == 29:
			t.cursorAttrs.Strikethrough = false
		case code == 51:
			t.cursorAttrs.Framed = FramedFrame
		case code == 52:
			t.cursorAttrs.Framed = FramedCircle
		case code == 54:
			t.cursorAttrs.Framed = FramedNone
		case code == 53:
			t.cursorAttrs.Overline = true
		case code == 55:
			t.cursorAttrs.Overline = false
		case code == 39:
			t.cursorAttrs.Fg = DefaultColor
		case code == 49:
			t.cursorAttrs.Bg = DefaultColor
		case code >= 30 && code <= 37:
			t.cursorAttrs.Fg = Indexed(uint8(code - 30))
		case code >= 90 && code <= 97:
			t.cursorAttrs.Fg = Indexed(uint8(code - 90 + 8))
		case code >= 40 && code <= 47:
			t.cursorAttrs.Bg = Indexed(uint8(code - 40))
		case code >= 100 && code <= 107:
			t.cursorAttrs.Bg = Indexed(uint8(code - 100 + 8))
		case code == 38:
			i = t.sgrExtendedColor(params, i, true)
		case code == 48:
			i = t.sgrExtendedColor(params, i, false)
		default:
			t.warn("unknown SGR code", "code", code)
		}
	}
}

// sgrExtendedColor parses the "38;5;i", "38;2;r;g;b" (and 48-prefixed
// background equivalents) extended color forms starting at params[i],
// returning the index of the last parameter group it consumed.
func (t *Terminal) sgrExtendedColor(params [][]uint16, i int, foreground bool) int {
	if i+1 >= len(params) {
		t.warn("truncated extended SGR color")
		return i
	}
	switch csiParam(params, i+1, 0) {
	case 5:
		if i+2 >= len(params) {
			t.warn("truncated indexed SGR color")
			return i + 1
		}
		idx := uint8(csiParam(params, i+2, 0))
		if foreground {
			t.cursorAttrs.Fg = Indexed(idx)
		} else {
			t.cursorAttrs.Bg = Indexed(idx)
		}
		return i + 2
	case 2:
		if i+4 >= len(params) {
			t.warn("truncated truecolor SGR color")
			return i + 1
		}
		r := uint8(csiParam(params, i+2, 0))
		g := uint8(csiParam(params, i+3, 0))
		b := uint8(csiParam(params, i+4, 0))
		if foreground {
			t.cursorAttrs.Fg = RGB(r, g, b)
		} else {
			t.cursorAttrs.Bg = RGB(r, g, b)
		}
		return i + 4
	default:
		t.warn("unknown extended SGR color mode")
		return i + 1
	}
}

// OscDispatch handles a complete OSC sequence. bellTerminated is
// informational only: both ST and BEL terminators carry identical
// semantics here.
func (t *Terminal) OscDispatch(params [][]byte, bellTerminated bool) {
	if len(params) == 0 {
		return
	}
	switch string(params[0]) {
	case "0":
		if len(params) > 1 {
			t.setTitle(string(params[1]))
			t.setIconName(string(params[1]))
		}
	case "1":
		if len(params) > 1 {
			t.setIconName(string(params[1]))
		}
	case "2":
		if len(params) > 1 {
			t.setTitle(string(params[1]))
		}
	case "4":
		t.oscSetPalette(params[1:])
	case "104":
		t.oscClearPalette(params[1:])
	case "7":
		if len(params) > 2 {
			t.setWorkingDirectory(string(params[1]), string(params[2]))
		}
	case "8":
		t.oscHyperlink(params[1:])
	default:
		t.warn("unknown OSC", "code", string(params[0]))
	}
}

func (t *Terminal) oscSetPalette(rest [][]byte) {
	for i := 0; i+1 < len(rest); i += 2 {
		idx, ok := parseUint8(rest[i])
		if !ok {
			t.warn("malformed OSC 4 index", "value", string(rest[i]))
			continue
		}
		spec := rest[i+1]
		if string(spec) == "?" {
			continue
		}
		if t.paletteOverrides == nil {
			t.paletteOverrides = make(map[uint8][]byte)
		}
		t.paletteOverrides[idx] = append([]byte(nil), spec...)
	}
}

func (t *Terminal) oscClearPalette(rest [][]byte) {
	for _, raw := range rest {
		idx, ok := parseUint8(raw)
		if !ok {
			t.warn("malformed OSC 104 index", "value", string(raw))
			continue
		}
		delete(t.paletteOverrides, idx)
	}
}

func (t *Terminal) oscHyperlink(rest [][]byte) {
	var params, url []byte
	if len(rest) > 0 {
		params = rest[0]
	}
	if len(rest) > 1 {
		url = rest[1]
	}
	if len(params) == 0 && len(url) == 0 {
		t.cursorAttrs.Link = nil
		return
	}
	t.cursorAttrs.Link = &Hyperlink{Params: append([]byte(nil), params...), URL: append([]byte(nil), url...)}
}

func parseUint8(b []byte) (uint8, bool) {
	if len(b) == 0 {
		return 0, false
	}
	var n int
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
		if n > 255 {
			return 0, false
		}
	}
	return uint8(n), true
}

// EscDispatch handles a two-or-three-byte ESC sequence.
func (t *Terminal) EscDispatch(intermediates []byte, ignore bool, b byte) {
	if ignore {
		t.warn("ignored malformed ESC sequence", "byte", b)
		return
	}
	screen := t.activeScreen()
	if len(intermediates) == 1 && intermediates[0] == '#' && b == '8' {
		screen.Fill('E')
		return
	}
	switch b {
	case '7':
		screen.SaveCursor(screen.Cursor(), t.cursorAttrs)
	case '8':
		t.restoreCursor(screen)
	case 'c':
		t.fullReset()
	default:
		t.warn("unknown ESC sequence", "byte", b)
	}
}
