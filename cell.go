package headlessterm

import "unicode/utf8"

// emptyCell is the shared representation of an unwritten grid position.
// It is returned by value from GetCell so callers never observe aliasing,
// but keeping one instance avoids re-deriving the zero value at each call
// site.
var emptyCell = Cell{width: 0, isEmpty: true, attrs: Default()}

// Cell holds one grid position's grapheme cluster, display width, and
// style. A cell spans 1 or 2 terminal columns; a wide cell's second column
// is occupied by a separate wide-padding cell so that column indices stay
// one-cell-per-column.
type Cell struct {
	grapheme    []rune
	width       uint8
	isEmpty     bool
	widePadding bool
	attrs       Attrs
}

// NewCell builds a cell from a single printable rune. It panics if c is a
// control character or has zero display width, since those can never
// legally occupy a grid position on their own.
func NewCell(c rune, attrs Attrs) Cell {
	w := runeWidth(c)
	if w <= 0 {
		panic("headlessterm: cannot create a cell from a control or zero-width character")
	}
	return Cell{grapheme: []rune{c}, width: uint8(w), attrs: attrs}
}

// EmptyCell returns an unwritten cell carrying attrs (used so erased
// regions pick up the current background color per SGR semantics).
func EmptyCell(attrs Attrs) Cell {
	return Cell{isEmpty: true, attrs: attrs}
}

// WidePaddingCell returns the filler cell placed in the second column of a
// wide character.
func WidePaddingCell(attrs Attrs) Cell {
	return Cell{isEmpty: true, widePadding: true, attrs: attrs}
}

// AddChar appends a zero-width combining character (e.g. a diacritic) to
// the cell's grapheme cluster. It panics if r itself has non-zero width,
// since such a character belongs in its own cell.
func (c *Cell) AddChar(r rune) {
	if runeWidth(r) != 0 {
		panic("headlessterm: non-zero-width character appended to an existing cell")
	}
	c.grapheme = append(c.grapheme, r)
}

// IsEmpty reports whether the cell has never been written (or was erased).
func (c Cell) IsEmpty() bool { return c.isEmpty }

// IsWidePadding reports whether the cell is the second column of a wide
// character and should be skipped when rendering/dumping.
func (c Cell) IsWidePadding() bool { return c.widePadding }

// Width returns the cell's display width: 0 for empty/padding cells, 1 or
// 2 otherwise.
func (c Cell) Width() uint8 { return c.width }

// Attrs returns the cell's style.
func (c Cell) Attrs() Attrs { return c.attrs }

// Runes returns the cell's grapheme cluster (base character plus any
// combining marks). Empty for empty/padding cells.
func (c Cell) Runes() []rune { return c.grapheme }

// AppendTo appends the cell's grapheme cluster to buf as UTF-8, or a
// single space for empty (non-padding) cells. Padding cells contribute
// nothing, since the preceding wide cell already accounts for both
// columns.
func (c Cell) AppendTo(buf []byte) []byte {
	if c.widePadding {
		return buf
	}
	if c.isEmpty || len(c.grapheme) == 0 {
		return utf8.AppendRune(buf, ' ')
	}
	for _, r := range c.grapheme {
		buf = utf8.AppendRune(buf, r)
	}
	return buf
}
