package headlessterm

import (
	"strings"
	"testing"
)

func TestDumpBasicTextScreen(t *testing.T) {
	term := New(10, Size{Width: 10, Height: 2})
	term.Process([]byte("hi"))

	got := string(term.Contents(RegionScreen()))
	want := "\x1b[m\x1b[1;1H\x1b[J" + "hi" + "\x1b[1;3H\x1b[m"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestDumpScrollRegionEmitsCSIr(t *testing.T) {
	term := New(10, Size{Width: 5, Height: 5})
	term.CsiDispatch(csiParams(2, 4), nil, false, 'r')

	got := string(term.Contents(RegionScreen()))
	if !strings.Contains(got, "\x1b[2;4r") {
		t.Errorf("expected scroll region CSI in dump, got %q", got)
	}
}

func TestDumpNoScrollRegionOmitsCSIr(t *testing.T) {
	term := New(10, Size{Width: 5, Height: 5})

	got := string(term.Contents(RegionScreen()))
	if strings.Contains(got, "\x1b[1;5r") {
		t.Errorf("expected no scroll region CSI for the default whole-window region, got %q", got)
	}
}

func TestDumpScrollOffsetOnlyForRegionAll(t *testing.T) {
	term := New(50, Size{Width: 5, Height: 2})
	screen := term.activeScreen()
	screen.ScrollUp(3)

	all := string(term.Contents(RegionAll()))
	if !strings.Contains(all, "\x1b[3S") {
		t.Errorf("expected scroll offset CSI in RegionAll dump, got %q", all)
	}

	onScreen := string(term.Contents(RegionScreen()))
	if strings.Contains(onScreen, "\x1b[3S") {
		t.Errorf("expected no scroll offset CSI in RegionScreen dump, got %q", onScreen)
	}
}

func TestDumpSGRMinimality(t *testing.T) {
	term := New(5, Size{Width: 5, Height: 1})
	term.CsiDispatch(csiParams(31), nil, false, 'm')
	term.Print('a')
	term.Print('b')

	got := string(term.Contents(RegionScreen()))
	want := "\x1b[m\x1b[1;1H\x1b[J" + "\x1b[31m" + "ab" + "\x1b[39m" + "\x1b[1;3H" + "\x1b[m" + "\x1b[31m"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestDumpTitleSameAsIconEmitsOSC0(t *testing.T) {
	term := New(5, Size{Width: 5, Height: 1})
	term.OscDispatch([][]byte{[]byte("0"), []byte("same")}, true)

	got := string(term.Contents(RegionScreen()))
	if !strings.Contains(got, "\x1b]0;same\x1b\\") {
		t.Errorf("expected combined OSC 0, got %q", got)
	}
	if strings.Contains(got, "\x1b]1;") || strings.Contains(got, "\x1b]2;") {
		t.Errorf("expected no separate OSC 1/2 when title == icon, got %q", got)
	}
}

func TestDumpTitleDifferentFromIconEmitsSeparateOSC(t *testing.T) {
	term := New(5, Size{Width: 5, Height: 1})
	term.OscDispatch([][]byte{[]byte("2"), []byte("title")}, true)
	term.OscDispatch([][]byte{[]byte("1"), []byte("icon")}, true)

	got := string(term.Contents(RegionScreen()))
	iconIdx := strings.Index(got, "\x1b]1;icon\x1b\\")
	titleIdx := strings.Index(got, "\x1b]2;title\x1b\\")
	if iconIdx == -1 || titleIdx == -1 {
		t.Fatalf("expected both separate OSC 1 and OSC 2, got %q", got)
	}
	if iconIdx > titleIdx {
		t.Errorf("expected icon OSC before title OSC, got %q", got)
	}
}

func TestDumpWorkingDirectoryOSC7(t *testing.T) {
	term := New(5, Size{Width: 5, Height: 1})
	term.OscDispatch([][]byte{[]byte("7"), []byte("host"), []byte("file:///tmp")}, true)

	got := string(term.Contents(RegionScreen()))
	if !strings.Contains(got, "\x1b]7;host;file:///tmp\x1b\\") {
		t.Errorf("expected working directory OSC 7, got %q", got)
	}
}

func TestDumpPaletteSortedAscending(t *testing.T) {
	term := New(5, Size{Width: 5, Height: 1})
	term.OscDispatch([][]byte{
		[]byte("4"), []byte("5"), []byte("rgb:1/2/3"),
		[]byte("2"), []byte("rgb:4/5/6"),
	}, true)

	got := string(term.Contents(RegionScreen()))
	idx2 := strings.Index(got, "\x1b]4;2;rgb:4/5/6\x1b\\")
	idx5 := strings.Index(got, "\x1b]4;5;rgb:1/2/3\x1b\\")
	if idx2 == -1 || idx5 == -1 {
		t.Fatalf("expected both palette overrides present, got %q", got)
	}
	if idx2 > idx5 {
		t.Errorf("expected ascending palette index order, got %q", got)
	}
}

func TestDumpRegionAllIncludesRetainedScrollback(t *testing.T) {
	term := New(50, Size{Width: 5, Height: 2})
	for i := 0; i < 5; i++ {
		term.Print(rune('A' + i))
		term.Execute('\n')
		term.Execute('\r')
	}

	got := string(term.Contents(RegionAll()))
	for i := 0; i < 5; i++ {
		if !strings.ContainsRune(got, rune('A'+i)) {
			t.Errorf("expected retained line %q in RegionAll dump, got %q", string(rune('A'+i)), got)
		}
	}
}
