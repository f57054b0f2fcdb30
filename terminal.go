package headlessterm

import (
	"log/slog"
	"sync"

	govte "github.com/danielgatis/go-vte/vte"
)

// Terminal is a headless terminal emulator: it consumes a byte stream
// containing UTF-8 text intermixed with CSI/OSC/ESC control sequences and
// maintains the structured screen state a real terminal would display. On
// request it serialises that state back into an escape-sequence byte
// stream (Contents/Dump) that reproduces the display on a fresh conforming
// terminal.
//
// There is no concurrency inside Terminal: Process and Contents must not
// overlap from the caller's perspective. The mutex below exists so a
// concurrent host (a multiplexer serving several attached clients) can
// safely call in from multiple goroutines without building its own
// locking layer; it is not a concurrency model of its own.
type Terminal struct {
	mu sync.RWMutex

	scrollbackScreen *Screen
	altScreen        *Screen
	mode             screenKind

	cursorAttrs Attrs

	title    []byte
	titleSet bool
	iconName []byte
	iconSet  bool

	workingDirHost []byte
	workingDirDir  []byte
	workingDirSet  bool

	paletteOverrides map[uint8][]byte

	logger             *slog.Logger
	titleProvider      TitleProvider
	workingDirProvider WorkingDirectoryProvider
	middleware         *Middleware

	parser *govte.Parser

	initialScrollbackLines int
}

// Option configures a Terminal during construction.
type Option func(*Terminal)

// WithTitleProvider sets the handler for window title/icon-name changes.
// Defaults to a no-op if not set.
func WithTitleProvider(p TitleProvider) Option {
	return func(t *Terminal) { t.titleProvider = p }
}

// WithWorkingDirectoryProvider sets the handler for OSC 7 reports.
// Defaults to a no-op if not set.
func WithWorkingDirectoryProvider(p WorkingDirectoryProvider) Option {
	return func(t *Terminal) { t.workingDirProvider = p }
}

// WithMiddleware merges mw into the terminal's middleware hooks.
func WithMiddleware(mw *Middleware) Option {
	return func(t *Terminal) {
		if t.middleware == nil {
			t.middleware = &Middleware{}
		}
		t.middleware.Merge(mw)
	}
}

// New creates a terminal of the given size, retaining up to
// maxScrollbackLines of history (clamped up to size.Height). It panics if
// size.Width is less than 1.
func New(maxScrollbackLines int, size Size, opts ...Option) *Terminal {
	if size.Width < 1 {
		panic("headlessterm: cannot create a zero-width terminal")
	}
	t := &Terminal{
		cursorAttrs:        Default(),
		logger:             defaultLogger,
		titleProvider:      NoopTitle{},
		workingDirProvider: NoopWorkingDirectory{},
		parser:             govte.NewParser(),
	}

	for _, opt := range opts {
		opt(t)
	}

	t.scrollbackScreen = NewScrollbackScreen(maxScrollbackLines, size)
	t.altScreen = NewAltScreenScreen(size)
	t.mode = screenScrollback
	t.initialScrollbackLines = maxScrollbackLines

	return t
}

func (t *Terminal) activeScreen() *Screen {
	if t.mode == screenAlt {
		return t.altScreen
	}
	return t.scrollbackScreen
}

func (t *Terminal) warn(msg string, args ...any) {
	t.logger.Warn(msg, args...)
}

// Size returns the terminal's current window dimensions.
func (t *Terminal) Size() Size {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.scrollbackScreen.Size()
}

// Resize changes the window dimensions, reflowing the primary screen and
// trimming/extending the alt screen, then clamps both cursors.
func (t *Terminal) Resize(size Size) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scrollbackScreen.Resize(size)
	t.altScreen.Resize(size)
}

// ScrollbackLines returns the configured scrollback capacity.
func (t *Terminal) ScrollbackLines() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, _ := t.scrollbackScreen.ScrollbackLines()
	return n
}

// SetScrollbackLines changes the scrollback capacity, trimming the oldest
// retained lines if it shrinks.
func (t *Terminal) SetScrollbackLines(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scrollbackScreen.SetScrollbackLines(n)
}

// Process feeds data through the VT parser, dispatching each recognised
// control sequence into the active screen. Malformed or unrecognised
// sequences are logged at warn level and otherwise ignored; Process never
// returns an error.
func (t *Terminal) Process(data []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, b := range data {
		t.parser.Advance(t, b)
	}
}

// Contents serialises the requested region of terminal state into an
// escape-sequence byte stream that reproduces the display on a fresh
// conforming terminal. See Dump for the exact emission order.
func (t *Terminal) Contents(region ContentRegion) []byte {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Dump(region)
}

func (t *Terminal) setTitle(title string) {
	apply := func(title string) {
		t.title = []byte(title)
		t.titleSet = true
		t.titleProvider.SetTitle(title)
	}
	if t.middleware != nil && t.middleware.SetTitle != nil {
		t.middleware.SetTitle(title, apply)
		return
	}
	apply(title)
}

func (t *Terminal) setIconName(name string) {
	apply := func(name string) {
		t.iconName = []byte(name)
		t.iconSet = true
		t.titleProvider.SetIconName(name)
	}
	if t.middleware != nil && t.middleware.SetIconName != nil {
		t.middleware.SetIconName(name, apply)
		return
	}
	apply(name)
}

func (t *Terminal) setWorkingDirectory(host, dir string) {
	apply := func(host, dir string) {
		t.workingDirHost = []byte(host)
		t.workingDirDir = []byte(dir)
		t.workingDirSet = true
		t.workingDirProvider.SetWorkingDirectory(host, dir)
	}
	if t.middleware != nil && t.middleware.SetWorkingDirectory != nil {
		t.middleware.SetWorkingDirectory(host, dir, apply)
		return
	}
	apply(host, dir)
}

// enterAltScreen switches the active screen to the alternate buffer,
// clobbering it to a fresh, empty grid (the prior alt-screen contents, if
// any, are discarded — entering never shows stale content).
func (t *Terminal) enterAltScreen() {
	if t.mode == screenAlt {
		return
	}
	t.altScreen.ResetAlt()
	t.altScreen.SetCursor(t.scrollbackScreen.Cursor())
	t.mode = screenAlt
}

// exitAltScreen switches back to the primary screen, which was never
// mutated while the alt screen was active.
func (t *Terminal) exitAltScreen() {
	t.mode = screenScrollback
}

// fullReset implements ESC c (RIS): clears both screens, resets cursor
// attrs and mode state, and drops title/working-dir/palette overrides.
func (t *Terminal) fullReset() {
	size := t.scrollbackScreen.Size()
	t.scrollbackScreen = NewScrollbackScreen(t.initialScrollbackLines, size)
	t.altScreen = NewAltScreenScreen(size)
	t.mode = screenScrollback
	t.cursorAttrs = Default()
	t.title, t.iconName = nil, nil
	t.titleSet, t.iconSet = false, false
	t.workingDirHost, t.workingDirDir = nil, nil
	t.workingDirSet = false
	t.paletteOverrides = nil
}
