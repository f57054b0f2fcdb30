package headlessterm

// FontWeight is a tri-state dimension: no weight override, bold, or faint.
type FontWeight uint8

const (
	WeightNone FontWeight = iota
	WeightBold
	WeightFaint
)

// Underline is a tri-state dimension: none, single, or double.
type Underline uint8

const (
	UnderlineNone Underline = iota
	UnderlineSingle
	UnderlineDouble
)

// Blink is a tri-state dimension: none, slow, or rapid.
type Blink uint8

const (
	BlinkNone Blink = iota
	BlinkSlow
	BlinkRapid
)

// Framed is a tri-state dimension: none, framed, or circled.
type Framed uint8

const (
	FramedNone Framed = iota
	FramedFrame
	FramedCircle
)

// Hyperlink associates a cell's attrs with an OSC 8 link target.
type Hyperlink struct {
	Params []byte
	URL    []byte
}

// Equal reports whether two hyperlinks (including nil) carry the same
// params and URL.
func (h *Hyperlink) Equal(other *Hyperlink) bool {
	if h == nil || other == nil {
		return h == other
	}
	return string(h.Params) == string(other.Params) && string(h.URL) == string(other.URL)
}

// Attrs is the complete per-cell style. The zero value is Attrs{} with
// every dimension at its "no style" default, and is the baseline against
// which SGR transitions in attrs_diff.go are emitted.
type Attrs struct {
	Fg, Bg        Color
	Weight        FontWeight
	Italic        bool
	Inverse       bool
	Conceal       bool
	Strikethrough bool
	Overline      bool
	Underline     Underline
	Blink         Blink
	Framed        Framed
	Link          *Hyperlink
}

// Default returns the "no style" attrs value.
func Default() Attrs {
	return Attrs{}
}

// Equal reports whether a and b represent the same style, including
// hyperlink target.
func (a Attrs) Equal(b Attrs) bool {
	if a.Fg != b.Fg || a.Bg != b.Bg {
		return false
	}
	if a.Weight != b.Weight || a.Italic != b.Italic || a.Inverse != b.Inverse {
		return false
	}
	if a.Conceal != b.Conceal || a.Strikethrough != b.Strikethrough || a.Overline != b.Overline {
		return false
	}
	if a.Underline != b.Underline || a.Blink != b.Blink || a.Framed != b.Framed {
		return false
	}
	return a.Link.Equal(b.Link)
}

// IsDefault reports whether a is the zero "no style" value.
func (a Attrs) IsDefault() bool {
	return a.Equal(Attrs{})
}
