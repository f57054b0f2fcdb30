package headlessterm

import "testing"

func TestLineSetGetCell(t *testing.T) {
	l := NewLine()
	if err := l.SetCell(10, 3, NewCell('x', Default())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := l.GetCell(10, 3); got.IsEmpty() || string(got.Runes()) != "x" {
		t.Errorf("expected 'x' at col 3, got %+v", got)
	}
	if got := l.GetCell(10, 0); !got.IsEmpty() {
		t.Errorf("expected column 0 to be implicitly empty, got %+v", got)
	}
	if got := l.GetCell(10, 9); !got.IsEmpty() {
		t.Errorf("expected trailing untouched column to be empty, got %+v", got)
	}
}

func TestLineSetCellOutOfBounds(t *testing.T) {
	l := NewLine()
	if err := l.SetCell(5, 5, NewCell('x', Default())); err == nil {
		t.Error("expected error writing at col == width")
	}
}

func TestLineGetCellPastWidthIsEmpty(t *testing.T) {
	l := NewLine()
	l.SetCell(10, 2, NewCell('x', Default()))
	if got := l.GetCell(2, 5); !got.IsEmpty() {
		t.Errorf("expected column past width to be empty, got %+v", got)
	}
}

func TestLineTruncate(t *testing.T) {
	l := NewLine()
	l.SetCell(10, 0, NewCell('a', Default()))
	l.SetCell(10, 1, NewCell('b', Default()))
	l.SetCell(10, 2, NewCell('c', Default()))

	l.Truncate(2)
	if l.Len() != 2 {
		t.Errorf("expected length 2 after truncate, got %d", l.Len())
	}

	l.Truncate(10)
	if l.Len() != 2 {
		t.Errorf("truncate to a larger n must not grow the line, got %d", l.Len())
	}
}

func TestLineEraseStartTo(t *testing.T) {
	l := NewLine()
	l.SetCell(10, 0, NewCell('a', Default()))
	l.SetCell(10, 1, NewCell('b', Default()))
	l.SetCell(10, 2, NewCell('c', Default()))
	l.SetWrapped(true)

	l.Erase(SectionStartTo(1))

	if got := l.GetCell(10, 0); !got.IsEmpty() {
		t.Errorf("expected col 0 cleared, got %+v", got)
	}
	if got := l.GetCell(10, 1); !got.IsEmpty() {
		t.Errorf("expected col 1 cleared, got %+v", got)
	}
	if got := l.GetCell(10, 2); got.IsEmpty() || string(got.Runes()) != "c" {
		t.Errorf("expected col 2 untouched, got %+v", got)
	}
	if !l.IsWrapped() {
		t.Error("SectionStartTo must not clear the wrapped flag")
	}
}

func TestLineEraseToEnd(t *testing.T) {
	l := NewLine()
	l.SetCell(10, 0, NewCell('a', Default()))
	l.SetCell(10, 1, NewCell('b', Default()))
	l.SetCell(10, 2, NewCell('c', Default()))
	l.SetWrapped(true)

	l.Erase(SectionToEnd(1))

	if l.Len() != 1 {
		t.Errorf("expected length 1 after erase-to-end at col 1, got %d", l.Len())
	}
	if l.IsWrapped() {
		t.Error("SectionToEnd must clear the wrapped flag")
	}
}

func TestLineEraseWhole(t *testing.T) {
	l := NewLine()
	l.SetCell(10, 0, NewCell('a', Default()))
	l.SetWrapped(true)

	l.Erase(SectionWhole())

	if l.Len() != 0 {
		t.Errorf("expected length 0 after whole erase, got %d", l.Len())
	}
	if l.IsWrapped() {
		t.Error("SectionWhole must clear the wrapped flag")
	}
}

func TestLineInsertCharacter(t *testing.T) {
	l := NewLine()
	l.SetCell(5, 0, NewCell('a', Default()))
	l.SetCell(5, 1, NewCell('b', Default()))
	l.SetCell(5, 2, NewCell('c', Default()))

	l.InsertCharacter(5, 1, 2)

	want := []string{"a", "", "", "b", "c"}
	for i, w := range want {
		got := l.GetCell(5, i)
		gotStr := ""
		if !got.IsEmpty() {
			gotStr = string(got.Runes())
		}
		if gotStr != w {
			t.Errorf("col %d: expected %q, got %q", i, w, gotStr)
		}
	}
}

func TestLineInsertCharacterDropsOverflow(t *testing.T) {
	l := NewLine()
	for i := 0; i < 5; i++ {
		l.SetCell(5, i, NewCell(rune('a'+i), Default()))
	}

	l.InsertCharacter(5, 0, 3)

	if l.Len() > 5 {
		t.Errorf("expected line truncated to width 5, got length %d", l.Len())
	}
}

func TestLineDeleteCharacter(t *testing.T) {
	l := NewLine()
	l.SetCell(5, 0, NewCell('a', Default()))
	l.SetCell(5, 1, NewCell('b', Default()))
	l.SetCell(5, 2, NewCell('c', Default()))

	bg := Default()
	bg.Bg = Color{Kind: ColorIndexed, Index: 1}
	l.DeleteCharacter(5, 0, bg, 2)

	if got := l.GetCell(5, 0); got.IsEmpty() || string(got.Runes()) != "c" {
		t.Errorf("expected 'c' shifted to col 0, got %+v", got)
	}
	for col := 1; col < 5; col++ {
		got := l.GetCell(5, col)
		if !got.IsEmpty() {
			t.Errorf("expected col %d backfilled empty, got %+v", col, got)
		}
	}
	if got := l.GetCell(5, 4); got.Attrs().Bg != bg.Bg {
		t.Errorf("expected rightmost backfilled cell to carry supplied attrs, got %+v", got.Attrs())
	}
}
